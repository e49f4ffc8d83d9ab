package usecase

import (
	"fmt"
	"strings"

	"github.com/renan-b-eth/Automacao-Diario/internal/domain"
)

const excerptLimit = 300

// renderAlert formats one alert event as the human-readable WhatsApp text.
func renderAlert(event domain.AlertEvent) string {
	switch event.Kind {
	case domain.AlertNameFoundCPS:
		return renderFound(event.Document)
	case domain.AlertNewDocumentNoName:
		return renderNewDocument(event.Document)
	case domain.AlertNameFoundDOE:
		return renderDOE(event.DOE)
	}
	return ""
}

func renderFound(doc domain.DocumentRef) string {
	return "🚨🚨🚨 *SEU NOME FOI ENCONTRADO!* 🚨🚨🚨\n\n" +
		metaBlock(doc.Process) + "\n\n" +
		fmt.Sprintf("📄 *Documento:* %s\n", doc.Name) +
		fmt.Sprintf("🔖 *Fase:* %s\n", doc.Phase) +
		fmt.Sprintf("🔗 *Arquivo:* %s\n", doc.URL) +
		fmt.Sprintf("📋 *Página:* %s", processURL(doc.Process))
}

func renderNewDocument(doc domain.DocumentRef) string {
	return "⚠️ *Nova publicação detectada*\n\n" +
		metaBlock(doc.Process) + "\n\n" +
		fmt.Sprintf("📄 *Documento:* %s\n", doc.Name) +
		fmt.Sprintf("🔖 *Fase:* %s\n", doc.Phase) +
		"Seu nome *não* foi encontrado na busca automática.\n" +
		fmt.Sprintf("🔗 *Arquivo:* %s\n", doc.URL) +
		fmt.Sprintf("📋 *Página:* %s", processURL(doc.Process))
}

func renderDOE(pub domain.DOEPublication) string {
	var builder strings.Builder
	builder.WriteString("📰 *SEU NOME NO DIÁRIO OFICIAL!* 📰\n\n")
	builder.WriteString(fmt.Sprintf("📌 *Publicação:* %s\n", pub.Title))
	builder.WriteString(fmt.Sprintf("📅 *Data:* %s\n", pub.Date))
	builder.WriteString(fmt.Sprintf("🏛️ *Seção:* %s\n", pub.Hierarchy))
	builder.WriteString(fmt.Sprintf("🔎 *Menções encontradas:* %d\n", pub.Matches))

	if pub.Excerpt != "" {
		builder.WriteString(fmt.Sprintf("📝 *Trecho:* _%s_\n", truncate(pub.Excerpt, excerptLimit)))
	}
	if pub.URL != "" {
		builder.WriteString(fmt.Sprintf("🔗 *Link:* %s", pub.URL))
	}

	return builder.String()
}

func metaBlock(record *domain.ProcessRecord) string {
	if record == nil {
		return ""
	}

	var lines []string
	if record.Edital != "" {
		lines = append(lines, fmt.Sprintf("📌 *Edital:* %s", record.Edital))
	}
	if record.Unit != "" {
		lines = append(lines, fmt.Sprintf("🏫 *Unidade:* %s", record.Unit))
	}
	if record.City != "" {
		lines = append(lines, fmt.Sprintf("📍 *Cidade:* %s", record.City))
	}
	if record.Subject != "" {
		lines = append(lines, fmt.Sprintf("📚 *Disciplina:* %s", record.Subject))
	}
	lines = append(lines, fmt.Sprintf("🗂️ *Tipo:* %s", record.Listing))

	return strings.Join(lines, "\n")
}

func processURL(record *domain.ProcessRecord) string {
	if record == nil {
		return ""
	}
	return record.DetailURL
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "…"
}
