package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/renan-b-eth/Automacao-Diario/internal/ports"
)

// Fetcher retrieves raw page and document bytes with a browser-like
// User-Agent; the portal serves empty GridViews to unknown agents.
type Fetcher struct {
	client    *http.Client
	userAgent string
}

var _ ports.Fetcher = (*Fetcher)(nil)

// New wires an HTTP client; a nil client gets the given timeout applied.
func New(client *http.Client, userAgent string, timeout time.Duration) *Fetcher {
	if client == nil {
		if timeout <= 0 {
			timeout = 30 * time.Second
		}
		client = &http.Client{Timeout: timeout}
	}
	return &Fetcher{client: client, userAgent: userAgent}
}

// Fetch performs a GET and returns the full body.
func (f *Fetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	if f.userAgent != "" {
		req.Header.Set("User-Agent", f.userAgent)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%s returned %s", url, resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body %s: %w", url, err)
	}

	return body, nil
}
