package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/renan-b-eth/Automacao-Diario/internal/domain"
	"github.com/renan-b-eth/Automacao-Diario/internal/ports"
)

// ErrNoTrackedName is the one configuration failure that aborts a run.
var ErrNoTrackedName = errors.New("tracked name is not configured")

// PipelineDeps wires all driven adapters into the orchestration pipeline.
type PipelineDeps struct {
	Sources     []domain.Source
	TrackedName string
	Fetcher     ports.Fetcher
	Listing     ports.ListingParser
	Process     ports.ProcessParser
	History     ports.HistoryStore
	Analyzer    *Analyzer
	DOE         ports.DOESearcher
	Notifier    ports.Notifier
	Logger      *slog.Logger
}

// Pipeline walks every configured listing source, dedups discovered documents
// against the history store, routes new ones through the analyzer and emits
// alert events. A failure on one source, process page or document is logged
// and skipped; only missing configuration aborts the run.
type Pipeline struct {
	sources     []domain.Source
	trackedName string
	fetcher     ports.Fetcher
	listing     ports.ListingParser
	process     ports.ProcessParser
	history     ports.HistoryStore
	analyzer    *Analyzer
	doe         ports.DOESearcher
	notifier    ports.Notifier
	logger      *slog.Logger
}

// NewPipeline constructs the orchestration component.
func NewPipeline(deps PipelineDeps) *Pipeline {
	return &Pipeline{
		sources:     deps.Sources,
		trackedName: deps.TrackedName,
		fetcher:     deps.Fetcher,
		listing:     deps.Listing,
		process:     deps.Process,
		history:     deps.History,
		analyzer:    deps.Analyzer,
		doe:         deps.DOE,
		notifier:    deps.Notifier,
		logger:      deps.Logger,
	}
}

// Run executes one full crawl: all sources, then the DOE search.
func (p *Pipeline) Run(ctx context.Context) error {
	if p.trackedName == "" {
		return ErrNoTrackedName
	}

	if err := p.history.Load(ctx); err != nil {
		// Running without history would re-download and re-alert everything.
		return err
	}

	p.info("run started", "tracked_name", p.trackedName, "sources", len(p.sources), "history", p.history.Len())

	newDocs := 0
	for _, source := range p.sources {
		newDocs += p.processSource(ctx, source)
	}

	newDOE := p.searchDOE(ctx)

	p.info("run finished", "new_documents", newDocs, "new_doe", newDOE, "history", p.history.Len())
	return nil
}

// processSource walks one listing page and returns how many new documents it
// produced.
func (p *Pipeline) processSource(ctx context.Context, source domain.Source) int {
	label := source.Label()

	page, err := p.fetcher.Fetch(ctx, source.URL)
	if err != nil {
		p.warn("listing fetch failed", "source", label, "error", err)
		return 0
	}

	links, err := p.listing.DetailLinks(source.URL, page)
	if err != nil {
		p.warn("listing parse failed", "source", label, "error", err)
		return 0
	}
	if len(links) == 0 {
		p.warn("no processes found on listing page", "source", label, "url", source.URL)
		return 0
	}

	p.info("listing scanned", "source", label, "processes", len(links))

	newDocs := 0
	for _, link := range links {
		newDocs += p.processDetailPage(ctx, link, label)
	}
	return newDocs
}

func (p *Pipeline) processDetailPage(ctx context.Context, detailURL, label string) int {
	page, err := p.fetcher.Fetch(ctx, detailURL)
	if err != nil {
		p.warn("process page fetch failed", "url", detailURL, "error", err)
		return 0
	}

	record, docs, err := p.process.Parse(detailURL, page)
	if err != nil {
		p.warn("process page parse failed", "url", detailURL, "error", err)
		return 0
	}
	record.Listing = label

	newDocs := 0
	for i := range docs {
		doc := docs[i]
		doc.Process = &record

		if p.history.Has(doc.URL) {
			continue
		}

		p.info("new document", "phase", doc.Phase, "name", doc.Name, "edital", record.Edital)
		found, err := p.analyzer.Analyze(ctx, doc)
		if err != nil {
			// A broken document is still marked processed so it is not
			// retried on every run, but it never produces an alert.
			p.warn("document analysis failed", "url", doc.URL, "name", doc.Name, "error", err)
		} else {
			kind := domain.AlertNewDocumentNoName
			if found {
				kind = domain.AlertNameFoundCPS
			}
			p.emit(ctx, domain.AlertEvent{Kind: kind, Document: doc})
		}

		entry := domain.HistoryEntry{
			Name:       doc.Name,
			Phase:      string(doc.Phase),
			DetailPage: record.DetailURL,
			Listing:    record.Listing,
			Edital:     record.Edital,
			Unit:       record.Unit,
			City:       record.City,
			Subject:    record.Subject,
			NameFound:  found,
		}
		if err := p.history.MarkProcessed(ctx, doc.URL, entry); err != nil {
			p.error("history write failed", "url", doc.URL, "error", err)
			continue
		}
		newDocs++
	}

	return newDocs
}

// searchDOE runs the gazette search and returns how many new publications it
// produced. The DOE step never aborts the run.
func (p *Pipeline) searchDOE(ctx context.Context) int {
	if p.doe == nil {
		return 0
	}

	pubs, err := p.doe.Search(ctx, p.trackedName)
	if err != nil {
		// Partial pages may still have produced matches; process them.
		p.warn("doe search failed", "error", err)
	}

	newPubs := 0
	for _, pub := range pubs {
		key := domain.DOEKeyPrefix + pub.ID
		if p.history.Has(key) {
			continue
		}

		p.info("new doe publication", "title", pub.Title, "date", pub.Date, "matches", pub.Matches)
		p.emit(ctx, domain.AlertEvent{Kind: domain.AlertNameFoundDOE, DOE: pub})

		entry := domain.HistoryEntry{
			Source:    "DOE-SP",
			Title:     pub.Title,
			Date:      pub.Date,
			Hierarchy: pub.Hierarchy,
			URL:       pub.URL,
			Matches:   pub.Matches,
			NameFound: true,
		}
		if err := p.history.MarkProcessed(ctx, key, entry); err != nil {
			p.error("history write failed", "id", key, "error", err)
			continue
		}
		newPubs++
	}

	return newPubs
}

// emit sends one alert; notification failures never block remaining alerts.
func (p *Pipeline) emit(ctx context.Context, event domain.AlertEvent) {
	if p.notifier == nil {
		return
	}
	if err := p.notifier.Send(ctx, renderAlert(event)); err != nil {
		p.warn("notification failed", "kind", event.Kind, "error", err)
	}
}

func (p *Pipeline) info(msg string, args ...any) {
	if p.logger != nil {
		p.logger.Info(msg, args...)
	}
}

func (p *Pipeline) warn(msg string, args ...any) {
	if p.logger != nil {
		p.logger.Warn(msg, args...)
	}
}

func (p *Pipeline) error(msg string, args ...any) {
	if p.logger != nil {
		p.logger.Error(msg, args...)
	}
}
