package ports

import (
	"context"
	"time"

	"github.com/renan-b-eth/Automacao-Diario/internal/domain"
)

// Fetcher retrieves raw bytes for a URL; the HTTP transport lives behind it.
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// ListingParser extracts process-detail URLs from a listing page.
type ListingParser interface {
	DetailLinks(listingURL string, page []byte) ([]string, error)
}

// ProcessParser extracts metadata and document links from a detail page.
type ProcessParser interface {
	Parse(detailURL string, page []byte) (domain.ProcessRecord, []domain.DocumentRef, error)
}

// HistoryStore is the persisted de-duplication memory across runs. Marking is
// idempotent and must persist incrementally so an interrupted run never causes
// re-downloads.
type HistoryStore interface {
	Load(ctx context.Context) error
	Has(id string) bool
	MarkProcessed(ctx context.Context, id string, entry domain.HistoryEntry) error
	Len() int
}

// TextExtractor turns document bytes into plain text; the concrete PDF/DOCX
// libraries live behind it.
type TextExtractor interface {
	Extract(filename, ext string, content []byte) (string, error)
}

// DOESearcher queries the state gazette for publications mentioning a name
// within a recent window.
type DOESearcher interface {
	Search(ctx context.Context, name string) ([]domain.DOEPublication, error)
}

// Notifier delivers one human-readable message per alert event.
type Notifier interface {
	Send(ctx context.Context, message string) error
}

// Scheduler controls when pipeline runs execute.
type Scheduler interface {
	Start(ctx context.Context, job func(time.Time)) error
	Stop(ctx context.Context) error
}
