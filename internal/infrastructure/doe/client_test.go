package doe

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestSearchPagination(t *testing.T) {
	t.Parallel()

	var gotTerms, gotJournal string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		gotTerms = q.Get("Terms")
		gotJournal = q.Get("JournalId")

		switch q.Get("PageNumber") {
		case "1":
			_ = json.NewEncoder(w).Encode(map[string]any{
				"items": []map[string]any{{
					"id":              "pub-1",
					"title":           "Nomeação de docentes",
					"slug":            "executivo/2026/nomeacao",
					"hierarchy":       "Executivo > CPS",
					"excerpt":         "… Renan Bezerra dos Santos …",
					"date":            "2026-08-20T00:00:00Z",
					"totalTermsFound": 2,
				}},
				"hasNextPage": true,
			})
		case "2":
			_ = json.NewEncoder(w).Encode(map[string]any{
				"items":       []map[string]any{{"id": "pub-2", "date": "2026-08-19"}},
				"hasNextPage": false,
			})
		default:
			t.Errorf("unexpected page %s", q.Get("PageNumber"))
		}
	}))
	defer server.Close()

	client := NewClient(Options{
		APIBase:   server.URL,
		SiteBase:  "https://www.doe.sp.gov.br",
		JournalID: "journal-x",
		PageSize:  1,
		Client:    server.Client(),
	})
	client.now = func() time.Time { return time.Date(2026, time.August, 29, 12, 0, 0, 0, time.UTC) }

	pubs, err := client.Search(context.Background(), "Renan Bezerra dos Santos")
	if err != nil {
		t.Fatalf("Search error: %v", err)
	}

	if gotTerms != "Renan Bezerra dos Santos" {
		t.Fatalf("unexpected Terms param: %q", gotTerms)
	}
	if gotJournal != "journal-x" {
		t.Fatalf("unexpected JournalId param: %q", gotJournal)
	}

	if len(pubs) != 2 {
		t.Fatalf("expected 2 publications, got %d", len(pubs))
	}

	first := pubs[0]
	if first.ID != "pub-1" {
		t.Fatalf("unexpected id: %s", first.ID)
	}
	if first.Date != "2026-08-20" {
		t.Fatalf("expected truncated date, got %q", first.Date)
	}
	if first.URL != "https://www.doe.sp.gov.br/executivo/2026/nomeacao" {
		t.Fatalf("unexpected url: %s", first.URL)
	}
	if first.Matches != 2 {
		t.Fatalf("unexpected match count: %d", first.Matches)
	}

	if pubs[1].Title != "Sem título" {
		t.Fatalf("expected title fallback, got %q", pubs[1].Title)
	}
	if pubs[1].URL != "" {
		t.Fatalf("expected empty url without slug, got %q", pubs[1].URL)
	}
}

func TestSearchFailureKeepsPartialResults(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("PageNumber") == "1" {
			_ = json.NewEncoder(w).Encode(map[string]any{
				"items":       []map[string]any{{"id": "pub-1", "title": "Primeira"}},
				"hasNextPage": true,
			})
			return
		}
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := NewClient(Options{APIBase: server.URL, Client: server.Client()})

	pubs, err := client.Search(context.Background(), "Renan")
	if err == nil {
		t.Fatalf("expected error from failing page")
	}
	if len(pubs) != 1 || pubs[0].ID != "pub-1" {
		t.Fatalf("expected partial results, got %v", pubs)
	}
}
