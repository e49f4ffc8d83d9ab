package parser

import "testing"

const listingURL = "https://urh.test/dgsdad/SelecaoPublica/ETEC/PSS/Abertos.aspx"

func TestDetailLinks(t *testing.T) {
	t.Parallel()

	page := []byte(`
	<table class="grid">
	  <tr><td><a href="Detalhes.aspx?oljioahohafnav87412=101">Edital 101</a></td></tr>
	  <tr><td><a href="javascript:__doPostBack('grid','Sort$Edital')">Edital</a></td></tr>
	  <tr><td><a href="Detalhes.aspx?oljioahohafnav87412=102">Edital 102</a></td></tr>
	  <tr><td><a href="Detalhes.aspx?oljioahohafnav87412=101">Edital 101 de novo</a></td></tr>
	  <tr><td><a href="/outra/pagina.aspx">Sem marcador</a></td></tr>
	</table>`)

	links, err := NewListingParser(50).DetailLinks(listingURL, page)
	if err != nil {
		t.Fatalf("DetailLinks error: %v", err)
	}

	want := []string{
		"https://urh.test/dgsdad/SelecaoPublica/ETEC/PSS/Detalhes.aspx?oljioahohafnav87412=101",
		"https://urh.test/dgsdad/SelecaoPublica/ETEC/PSS/Detalhes.aspx?oljioahohafnav87412=102",
	}

	if len(links) != len(want) {
		t.Fatalf("expected %d links, got %d: %v", len(want), len(links), links)
	}
	for i := range want {
		if links[i] != want[i] {
			t.Fatalf("link %d = %s, want %s", i, links[i], want[i])
		}
	}
}

func TestDetailLinksEmptyPage(t *testing.T) {
	t.Parallel()

	links, err := NewListingParser(50).DetailLinks(listingURL, []byte(`<html><body><p>Manutenção</p></body></html>`))
	if err != nil {
		t.Fatalf("empty page must not error: %v", err)
	}
	if len(links) != 0 {
		t.Fatalf("expected no links, got %v", links)
	}
}

func TestDetailLinksCap(t *testing.T) {
	t.Parallel()

	var page []byte
	for i := 0; i < 5; i++ {
		page = append(page, []byte(`<a href="Detalhes.aspx?oljioahohafnav87412=`+string(rune('a'+i))+`">x</a>`)...)
	}

	links, err := NewListingParser(3).DetailLinks(listingURL, page)
	if err != nil {
		t.Fatalf("DetailLinks error: %v", err)
	}
	if len(links) != 3 {
		t.Fatalf("expected cap at 3 links, got %d", len(links))
	}
}
