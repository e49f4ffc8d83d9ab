package doe

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/renan-b-eth/Automacao-Diario/internal/domain"
	"github.com/renan-b-eth/Automacao-Diario/internal/ports"
)

// Client talks to the DOE SP public search API. The API returns structured
// publication matches directly, so no HTML parsing is involved.
type Client struct {
	apiBase    string
	siteBase   string
	journalID  string
	searchDays int
	pageSize   int
	userAgent  string
	http       *http.Client
	now        func() time.Time
}

var _ ports.DOESearcher = (*Client)(nil)

// Options parameterize the search window and paging.
type Options struct {
	APIBase    string
	SiteBase   string
	JournalID  string
	SearchDays int
	PageSize   int
	UserAgent  string
	Client     *http.Client
}

// NewClient creates a reusable search client.
func NewClient(opts Options) *Client {
	httpClient := opts.Client
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	searchDays := opts.SearchDays
	if searchDays <= 0 {
		searchDays = 30
	}
	pageSize := opts.PageSize
	if pageSize <= 0 {
		pageSize = 20
	}
	return &Client{
		apiBase:    strings.TrimSuffix(opts.APIBase, "/"),
		siteBase:   strings.TrimSuffix(opts.SiteBase, "/"),
		journalID:  opts.JournalID,
		searchDays: searchDays,
		pageSize:   pageSize,
		userAgent:  opts.UserAgent,
		http:       httpClient,
		now:        time.Now,
	}
}

type searchResponse struct {
	Items []struct {
		ID              string `json:"id"`
		Title           string `json:"title"`
		Slug            string `json:"slug"`
		Hierarchy       string `json:"hierarchy"`
		Excerpt         string `json:"excerpt"`
		Date            string `json:"date"`
		TotalTermsFound int    `json:"totalTermsFound"`
	} `json:"items"`
	HasNextPage bool `json:"hasNextPage"`
}

// Search pages through every publication mentioning the name within the
// configured window. On a mid-paging failure the matches collected so far are
// returned together with the error; the caller decides how loudly to log.
func (c *Client) Search(ctx context.Context, name string) ([]domain.DOEPublication, error) {
	to := c.now()
	from := to.AddDate(0, 0, -c.searchDays)

	var results []domain.DOEPublication
	for page := 1; ; page++ {
		resp, err := c.fetchPage(ctx, name, from, to, page)
		if err != nil {
			return results, fmt.Errorf("doe search page %d: %w", page, err)
		}

		for _, item := range resp.Items {
			pub := domain.DOEPublication{
				ID:        item.ID,
				Title:     item.Title,
				Hierarchy: item.Hierarchy,
				Excerpt:   item.Excerpt,
				Matches:   item.TotalTermsFound,
			}
			if pub.Title == "" {
				pub.Title = "Sem título"
			}
			if len(item.Date) >= 10 {
				pub.Date = item.Date[:10]
			} else {
				pub.Date = item.Date
			}
			if item.Slug != "" {
				pub.URL = c.siteBase + "/" + item.Slug
			}
			results = append(results, pub)
		}

		if len(resp.Items) == 0 || !resp.HasNextPage {
			break
		}
	}

	return results, nil
}

func (c *Client) fetchPage(ctx context.Context, name string, from, to time.Time, page int) (searchResponse, error) {
	query := url.Values{}
	query.Set("Terms", name)
	query.Set("FromDate", from.Format("2006-01-02"))
	query.Set("ToDate", to.Format("2006-01-02"))
	query.Set("JournalId", c.journalID)
	query.Set("PageNumber", strconv.Itoa(page))
	query.Set("PageSize", strconv.Itoa(c.pageSize))
	query.Set("SortField", "Date")

	endpoint := c.apiBase + "/v2/advanced-search/publications?" + query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return searchResponse{}, fmt.Errorf("new request: %w", err)
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return searchResponse{}, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return searchResponse{}, fmt.Errorf("unexpected status %s", resp.Status)
	}

	var decoded searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return searchResponse{}, fmt.Errorf("decode response: %w", err)
	}

	return decoded, nil
}
