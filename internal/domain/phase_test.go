package domain

import "testing"

func TestClassifyPhase(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		url  string
		want Phase
	}{
		{"Edital_Convocacao_2024.pdf", "", PhaseConvocacao},
		{"Abertura_Inscricoes.pdf", "", PhaseAbertura},
		{"documento_aleatorio.pdf", "", PhaseOutro},
		{"Resultado Prova Escrita", "", PhaseResultado},
		{"DEFERIMENTO E INDEFERIMENTO.pdf", "", PhaseDeferimento},
		{"Homologação do Processo", "", PhaseHomologacao},
		{"Reabertura_Inscricoes.pdf", "", PhaseReabertura},
		{"edital", "https://urh.test/docs/CLASSIFICACAOFINAL229.pdf", PhaseClassificacao},
		{"edital", "https://urh.test/docs/CONVOCAO229.pdf", PhaseConvocacao},
		{"Resultado Redução e Isenção de Taxa", "", PhaseIsencao},
	}

	for _, tc := range cases {
		if got := ClassifyPhase(tc.name, tc.url); got != tc.want {
			t.Fatalf("ClassifyPhase(%q, %q) = %q, want %q", tc.name, tc.url, got, tc.want)
		}
	}
}

// A document naming two stages reports the later one.
func TestClassifyPhaseLaterStageWins(t *testing.T) {
	t.Parallel()

	if got := ClassifyPhase("Edital de Abertura e Convocação.pdf", ""); got != PhaseConvocacao {
		t.Fatalf("expected Convocação, got %q", got)
	}
	if got := ClassifyPhase("Resultado e Classificação Final.pdf", ""); got != PhaseClassificacao {
		t.Fatalf("expected Classificação Final, got %q", got)
	}
}

// Phase labels surface verbatim in alerts and in the history file, so they
// must keep their published wording.
func TestPhaseLabels(t *testing.T) {
	t.Parallel()

	labels := map[Phase]string{
		PhaseClassificacao: "Classificação Final",
		PhaseConvocacao:    "Convocação",
		PhaseOutro:         "Outro",
	}
	for phase, want := range labels {
		if string(phase) != want {
			t.Fatalf("phase label %q, want %q", phase, want)
		}
	}
}
