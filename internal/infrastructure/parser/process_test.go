package parser

import (
	"testing"

	"github.com/renan-b-eth/Automacao-Diario/internal/domain"
)

const detailURL = "https://urh.test/dgsdad/SelecaoPublica/ETEC/PSS/Detalhes.aspx?oljioahohafnav87412=101"

const detailPage = `
<html><body>
  <h1>EDITAL DE ABERTURA Nº 229/11/2026</h1>
  <p>CÓD. DA UNIDADE: 229 - UNIDADE DE ENSINO: Etec Albert Einstein - CIDADE: São Paulo</p>
  <p>DISCIPLINA: 12 - Matemática REQUISITO: Licenciatura</p>
  <ul>
    <li><a href="docs/Edital_Convocacao_2024.pdf">Convocação para prova</a></li>
    <li><a href="docs/DEFERIMENTO.DOC">Deferimento de inscrições</a></li>
    <li><a href="docs/planilha.xlsx">Planilha</a></li>
    <li><a href="docs/sem_nome.pdf?v=2"></a></li>
  </ul>
</body></html>`

func TestProcessParserMetadata(t *testing.T) {
	t.Parallel()

	record, _, err := NewProcessParser().Parse(detailURL, []byte(detailPage))
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}

	if record.DetailURL != detailURL {
		t.Fatalf("unexpected detail url: %s", record.DetailURL)
	}
	if record.Edital != "229/11/2026" {
		t.Fatalf("unexpected edital: %q", record.Edital)
	}
	if record.Unit != "Etec Albert Einstein" {
		t.Fatalf("unexpected unit: %q", record.Unit)
	}
	if record.City != "São Paulo" {
		t.Fatalf("unexpected city: %q", record.City)
	}
	if record.Subject != "Matemática" {
		t.Fatalf("unexpected subject: %q", record.Subject)
	}
}

func TestProcessParserDocuments(t *testing.T) {
	t.Parallel()

	_, docs, err := NewProcessParser().Parse(detailURL, []byte(detailPage))
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}

	if len(docs) != 3 {
		t.Fatalf("expected 3 documents (xlsx ignored), got %d", len(docs))
	}

	first := docs[0]
	if first.URL != "https://urh.test/dgsdad/SelecaoPublica/ETEC/PSS/docs/Edital_Convocacao_2024.pdf" {
		t.Fatalf("unexpected document url: %s", first.URL)
	}
	if first.Name != "Convocação para prova" {
		t.Fatalf("unexpected document name: %q", first.Name)
	}
	if first.Ext != "pdf" {
		t.Fatalf("unexpected ext: %q", first.Ext)
	}
	if first.Phase != domain.PhaseConvocacao {
		t.Fatalf("unexpected phase: %q", first.Phase)
	}

	if docs[1].Ext != "docx" {
		t.Fatalf("expected .DOC normalized to docx, got %q", docs[1].Ext)
	}
	if docs[1].Phase != domain.PhaseDeferimento {
		t.Fatalf("unexpected phase for deferimento doc: %q", docs[1].Phase)
	}

	if docs[2].Name != "sem_nome.pdf" {
		t.Fatalf("expected basename fallback, got %q", docs[2].Name)
	}
}

func TestProcessParserMissingMetadata(t *testing.T) {
	t.Parallel()

	record, docs, err := NewProcessParser().Parse(detailURL, []byte(`<html><body><p>página incompleta</p></body></html>`))
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if record.Edital != "" || record.Unit != "" || record.City != "" || record.Subject != "" {
		t.Fatalf("expected empty metadata, got %+v", record)
	}
	if len(docs) != 0 {
		t.Fatalf("expected no documents, got %d", len(docs))
	}
}

func TestProcessParserCourseFallback(t *testing.T) {
	t.Parallel()

	page := []byte(`<html><body>
	  <p>UNIDADE DE ENSINO: Fatec Zona Leste - CIDADE: São Paulo CURSO: Análise e Desenvolvimento de Sistemas REQUISITO: Mestrado</p>
	</body></html>`)

	record, _, err := NewProcessParser().Parse(detailURL, page)
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if record.Subject != "Análise e Desenvolvimento de Sistemas" {
		t.Fatalf("expected course fallback, got %q", record.Subject)
	}
}
