package parser

import (
	"bytes"
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/renan-b-eth/Automacao-Diario/internal/ports"
)

// detailMarker is the query parameter the CPS portal puts on every
// process-detail link inside its listing GridViews.
const detailMarker = "oljioahohafnav87412"

// ListingParser extracts process-detail links from a CPS listing page.
// It is stateless; every call re-parses from scratch.
type ListingParser struct {
	maxPerPage int
}

var _ ports.ListingParser = (*ListingParser)(nil)

// NewListingParser caps the number of processes taken per page; zero or
// negative means 50.
func NewListingParser(maxPerPage int) *ListingParser {
	if maxPerPage <= 0 {
		maxPerPage = 50
	}
	return &ListingParser{maxPerPage: maxPerPage}
}

// DetailLinks returns the unique detail-page URLs found on the listing page,
// in page order. Malformed anchors are skipped; zero links is not an error
// (the caller decides whether an empty page is worth a warning).
func (p *ListingParser) DetailLinks(listingURL string, page []byte) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(page))
	if err != nil {
		return nil, fmt.Errorf("parse listing page: %w", err)
	}

	base, err := url.Parse(listingURL)
	if err != nil {
		return nil, fmt.Errorf("invalid listing url %s: %w", listingURL, err)
	}

	var links []string
	seen := map[string]struct{}{}

	doc.Find("a[href]").Each(func(i int, a *goquery.Selection) {
		href, ok := a.Attr("href")
		if !ok || !strings.Contains(href, detailMarker) {
			return
		}
		// javascript:__doPostBack links are the GridView sort headers.
		if strings.HasPrefix(href, "javascript:") {
			return
		}
		ref, err := url.Parse(href)
		if err != nil {
			return
		}
		full := base.ResolveReference(ref).String()
		if _, ok := seen[full]; ok {
			return
		}
		seen[full] = struct{}{}
		links = append(links, full)
	})

	if len(links) > p.maxPerPage {
		links = links[:p.maxPerPage]
	}

	return links, nil
}
