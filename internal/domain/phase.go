package domain

import (
	"strings"

	"github.com/renan-b-eth/Automacao-Diario/internal/textutil"
)

// Phase is the stage of a selection process a document reports.
type Phase string

const (
	PhaseProrrogacao   Phase = "Prorrogação"
	PhaseConvocacao    Phase = "Convocação"
	PhaseHomologacao   Phase = "Homologação"
	PhaseClassificacao Phase = "Classificação Final"
	PhaseResultado     Phase = "Resultado"
	PhaseDeferimento   Phase = "Deferimento/Indeferimento"
	PhaseBanca         Phase = "Banca Examinadora"
	PhaseCronograma    Phase = "Alteração de Cronograma"
	PhaseComissao      Phase = "Alteração da Comissão"
	PhaseReabertura    Phase = "Reabertura"
	PhaseIsencao       Phase = "Redução/Isenção de Taxa"
	PhaseAbertura      Phase = "Abertura"
	PhaseOutro         Phase = "Outro"
)

// phaseRules is ordered latest-stage-first: a document announcing two stages
// is reporting the later one, so the first matching rule wins. Keywords are
// matched as substrings of the folded name+URL, which also covers the portal's
// compressed file names (CLASSIFICAOFINAL, CONVOCAO).
var phaseRules = []struct {
	phase    Phase
	keywords []string
}{
	{PhaseProrrogacao, []string{"prorroga"}},
	{PhaseConvocacao, []string{"convoca"}},
	{PhaseHomologacao, []string{"homologa"}},
	{PhaseClassificacao, []string{"classifica"}},
	// Fee-waiver outcomes are titled "Resultado Redução/Isenção…", so this
	// rule must sit above the generic resultado rule.
	{PhaseIsencao, []string{"isencao", "reducao"}},
	{PhaseResultado, []string{"resultado"}},
	{PhaseDeferimento, []string{"deferimento"}},
	{PhaseBanca, []string{"banca"}},
	{PhaseCronograma, []string{"cronograma"}},
	{PhaseComissao, []string{"comissao"}},
	{PhaseReabertura, []string{"reabertura"}},
	{PhaseAbertura, []string{"abertura"}},
}

// ClassifyPhase maps a document's name and URL to a phase tag. Unclassified
// documents get PhaseOutro; classification never fails.
func ClassifyPhase(name, url string) Phase {
	combined := textutil.Fold(name + " " + url)
	for _, rule := range phaseRules {
		for _, kw := range rule.keywords {
			if strings.Contains(combined, kw) {
				return rule.phase
			}
		}
	}
	return PhaseOutro
}
