// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package conference

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"
)

func overrideNDSS(t *testing.T, programURLs []string) {
	t.Helper()
	old := ndssProgramURLPatterns
	ndssProgramURLPatterns = programURLs
	t.Cleanup(func() { ndssProgramURLPatterns = old })
}

func TestNDSSProgramScrape(t *testing.T) {
	program := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `<html><body>
<div class="paper">
	<div class="title">DNS Cache Snooping Revisited</div>
	<div class="authors">Kim Lowe, Liu Wen</div>
	<a href="https://example.org/ndss/dns.pdf">pdf</a>
</div>
<p>We snoop caches.</p>
</body></html>`)
	}))
	defer program.Close()
	overrideNDSS(t, []string{program.URL})

	deps, _ := testDeps(program.Client())

	papers := NDSS{}.Extract(context.Background(), 2020, deps)
	if len(papers) != 1 {
		t.Fatalf("len(papers) = %d, want 1", len(papers))
	}
	p := papers[0]
	if p.Title != "DNS Cache Snooping Revisited" {
		t.Errorf("Title = %q", p.Title)
	}
	if !reflect.DeepEqual(p.Authors, []string{"Kim Lowe", "Liu Wen"}) {
		t.Errorf("Authors = %v", p.Authors)
	}
	if p.Abstract == nil || *p.Abstract != "We snoop caches." {
		t.Errorf("Abstract = %v", p.Abstract)
	}
}

// ndssDetailPage builds a detail page in the 2016 per-paper layout.
func ndssDetailPage(title, authors, pdf, abstract string) string {
	return fmt.Sprintf(`<html><body>
<h1> %s </h1>
<div class="byline">%s</div>
<p class="paper-abstract">%s</p>
<a href="https://example.org/misc.html">Misc</a>
<a href="%s">Paper</a>
</body></html>`, title, authors, abstract, pdf)
}

func TestNDSSDetailCrawl(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/ndss2016-program/", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `<html><body>
<a class="paper-link" href="/papers/one.html">One</a>
<a class="paper-link" href="papers/two.html">Two</a>
<a href="/unrelated.html">Unrelated</a>
</body></html>`)
	})
	mux.HandleFunc("/papers/one.html", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, ndssDetailPage("Tracking Protection Bypass", "Mia Noor, Omar Pell", "https://example.org/ndss/one.pdf", "We bypass protections."))
	})
	mux.HandleFunc("/ndss2016-program/papers/two.html", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, ndssDetailPage("Second Paper", "Quinn Roy", "https://example.org/ndss/two.pdf", "Second abstract."))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()
	overrideNDSS(t, []string{srv.URL + "/ndss2016-program/"})

	deps, _ := testDeps(srv.Client())

	papers := NDSS{}.Extract(context.Background(), 2016, deps)
	if len(papers) != 2 {
		t.Fatalf("len(papers) = %d, want 2", len(papers))
	}

	first := papers[0]
	if first.Title != "Tracking Protection Bypass" {
		t.Errorf("Title = %q, want trimmed first heading", first.Title)
	}
	if !reflect.DeepEqual(first.Authors, []string{"Mia Noor", "Omar Pell"}) {
		t.Errorf("Authors = %v, want comma-split element after heading", first.Authors)
	}
	if first.PDFURL == nil || *first.PDFURL != "https://example.org/ndss/one.pdf" {
		t.Errorf("PDFURL = %v, want the anchor labelled Paper", first.PDFURL)
	}
	if first.Abstract == nil || *first.Abstract != "We bypass protections." {
		t.Errorf("Abstract = %v", first.Abstract)
	}

	if papers[1].Title != "Second Paper" {
		t.Errorf("relative detail link not resolved, got %q", papers[1].Title)
	}
}

func TestNDSSDetailFetchFailureSkipsPaper(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/ndss2016-program/", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `<a class="paper-link" href="/papers/gone.html">Gone</a>
<a class="paper-link" href="/papers/ok.html">OK</a>`)
	})
	mux.HandleFunc("/papers/ok.html", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, ndssDetailPage("Remaining Paper", "Sara Tell", "https://example.org/ok.pdf", "Still here."))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()
	overrideNDSS(t, []string{srv.URL + "/ndss2016-program/"})

	deps, buf := testDeps(srv.Client())

	papers := NDSS{}.Extract(context.Background(), 2016, deps)
	if len(papers) != 1 || papers[0].Title != "Remaining Paper" {
		t.Fatalf("papers = %v, want only the reachable detail page", papers)
	}
	if !strings.Contains(buf.String(), "could not fetch any page from") {
		t.Errorf("log = %q, want a notice for the failed detail fetch", buf.String())
	}
}

func TestNDSSDetailMissingFields(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/ndss2016-program/", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `<a class="paper-link" href="/papers/bare.html">Bare</a>`)
	})
	mux.HandleFunc("/papers/bare.html", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `<html><body><h1>Bare Title</h1></body></html>`)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()
	overrideNDSS(t, []string{srv.URL + "/ndss2016-program/"})

	deps, _ := testDeps(srv.Client())

	papers := NDSS{}.Extract(context.Background(), 2016, deps)
	if len(papers) != 1 {
		t.Fatalf("len(papers) = %d, want 1", len(papers))
	}
	p := papers[0]
	if p.Title != "Bare Title" {
		t.Errorf("Title = %q", p.Title)
	}
	if len(p.Authors) != 0 {
		t.Errorf("Authors = %v, want empty", p.Authors)
	}
	if p.PDFURL != nil || p.Abstract != nil {
		t.Errorf("optional fields should be nil, got pdf=%v abstract=%v", p.PDFURL, p.Abstract)
	}
}
