package parser

import (
	"bytes"
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/renan-b-eth/Automacao-Diario/internal/domain"
	"github.com/renan-b-eth/Automacao-Diario/internal/ports"
)

// Metadata labels as they appear in the detail-page text. The page is an ASPX
// render without stable ids, so fields are matched against known label text;
// anything not found stays empty.
var (
	editalExpr   = regexp.MustCompile(`(?i)EDITAL\s+DE\s+ABERTURA\s+N[ºo°]\s*([\d/]+)`)
	unitCityExpr = regexp.MustCompile(`(?i)UNIDADE\s+DE\s+ENSINO:\s*(.+?)\s*-\s*CIDADE:\s*(.+?)\s*(?:CURSO|DISCIPLINA|COMPONENTE|REQUISITO|Os pedidos|Per[ií]odo|$)`)
	subjectExpr  = regexp.MustCompile(`(?i)(?:DISCIPLINA|COMPONENTE\s+CURRICULAR):\s*(?:\d+\s*-\s*)?(.+?)\s*(?:REQUISITO|Os pedidos|Per[ií]odo|$)`)
	courseExpr   = regexp.MustCompile(`(?i)CURSO:\s*(.+?)\s*(?:DISCIPLINA|COMPONENTE|REQUISITO|Os pedidos|Per[ií]odo|$)`)

	docLinkExpr = regexp.MustCompile(`(?i)\.(pdf|docx?)(\?.*)?$`)
)

// ProcessParser extracts process metadata and document links from a
// process-detail page.
type ProcessParser struct{}

var _ ports.ProcessParser = (*ProcessParser)(nil)

// NewProcessParser builds the stateless detail-page parser.
func NewProcessParser() *ProcessParser {
	return &ProcessParser{}
}

// Parse returns the process record plus every PDF/DOCX link, in page order.
// Links with other extensions are ignored.
func (p *ProcessParser) Parse(detailURL string, page []byte) (domain.ProcessRecord, []domain.DocumentRef, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(page))
	if err != nil {
		return domain.ProcessRecord{}, nil, fmt.Errorf("parse detail page: %w", err)
	}

	base, err := url.Parse(detailURL)
	if err != nil {
		return domain.ProcessRecord{}, nil, fmt.Errorf("invalid detail url %s: %w", detailURL, err)
	}

	record := extractMetadata(doc)
	record.DetailURL = detailURL

	var docs []domain.DocumentRef
	doc.Find("a[href]").Each(func(i int, a *goquery.Selection) {
		href, _ := a.Attr("href")
		match := docLinkExpr.FindStringSubmatch(href)
		if match == nil {
			return
		}
		ref, err := url.Parse(href)
		if err != nil {
			return
		}
		full := base.ResolveReference(ref).String()

		name := strings.TrimSpace(a.Text())
		if name == "" {
			name = lastPathSegment(href)
		}

		ext := strings.ToLower(match[1])
		if ext == "doc" {
			ext = "docx"
		}

		docs = append(docs, domain.DocumentRef{
			URL:   full,
			Name:  name,
			Ext:   ext,
			Phase: domain.ClassifyPhase(name, full),
		})
	})

	return record, docs, nil
}

func extractMetadata(doc *goquery.Document) domain.ProcessRecord {
	text := strings.Join(strings.Fields(doc.Text()), " ")

	var record domain.ProcessRecord

	if m := editalExpr.FindStringSubmatch(text); m != nil {
		record.Edital = strings.TrimSpace(m[1])
	}

	if m := unitCityExpr.FindStringSubmatch(text); m != nil {
		record.Unit = strings.TrimSpace(m[1])
		record.City = strings.TrimSpace(m[2])
	}

	if m := subjectExpr.FindStringSubmatch(text); m != nil {
		record.Subject = strings.TrimSpace(m[1])
	}
	if record.Subject == "" {
		if m := courseExpr.FindStringSubmatch(text); m != nil {
			record.Subject = strings.TrimSpace(m[1])
		}
	}

	return record
}

func lastPathSegment(href string) string {
	href = strings.SplitN(href, "?", 2)[0]
	if idx := strings.LastIndex(href, "/"); idx >= 0 {
		return href[idx+1:]
	}
	return href
}
