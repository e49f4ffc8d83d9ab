package usecase

import (
	"context"
	"fmt"

	"github.com/renan-b-eth/Automacao-Diario/internal/domain"
	"github.com/renan-b-eth/Automacao-Diario/internal/ports"
	"github.com/renan-b-eth/Automacao-Diario/internal/textutil"
)

// Analyzer downloads a document into memory, extracts its text and searches
// for the tracked name. Matching is case-, diacritic- and whitespace-
// insensitive since extraction output is full of artifacts.
type Analyzer struct {
	fetcher     ports.Fetcher
	extractor   ports.TextExtractor
	trackedName string
}

// NewAnalyzer wires the fetch and extraction collaborators.
func NewAnalyzer(fetcher ports.Fetcher, extractor ports.TextExtractor, trackedName string) *Analyzer {
	return &Analyzer{
		fetcher:     fetcher,
		extractor:   extractor,
		trackedName: trackedName,
	}
}

// Analyze reports whether the tracked name appears in the document. A
// download or extraction failure is returned as an error so the caller can
// tell "analyzed, not found" apart from "could not analyze".
func (a *Analyzer) Analyze(ctx context.Context, doc domain.DocumentRef) (bool, error) {
	content, err := a.fetcher.Fetch(ctx, doc.URL)
	if err != nil {
		return false, fmt.Errorf("download document: %w", err)
	}

	text, err := a.extractor.Extract(doc.Name, doc.Ext, content)
	if err != nil {
		return false, fmt.Errorf("extract text: %w", err)
	}

	return textutil.ContainsFolded(text, a.trackedName), nil
}
