// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package conference

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/dmintz/secpapers/internal/fetcher"
	"github.com/dmintz/secpapers/internal/httputil"
	"github.com/dmintz/secpapers/pkg/types"
)

// crossrefAPIBase is the Crossref works endpoint. Declared as a var so
// tests can substitute an httptest server.
var crossrefAPIBase = "https://api.crossref.org/works"

var ccsProgramURLPatterns = []string{
	"https://www.sigsac.org/ccs/CCS%d/program.html",
	"https://www.sigsac.org/ccs/CCS%d/program/",
}

// acmMemberID is ACM's Crossref member identifier.
const acmMemberID = "320"

// ccsFilterCutoffYear is the first year queried with member/date
// filters. Older CCS proceedings are inconsistently tagged in
// Crossref, so a bibliographic text query matches them better.
const ccsFilterCutoffYear = 2017

// ACMCCS extracts ACM Conference on Computer and Communications
// Security papers.
type ACMCCS struct{}

// Name returns the registry key.
func (ACMCCS) Name() string { return "ccs" }

// Extract prefers the Crossref metadata API and falls back to
// scraping the program page.
func (ACMCCS) Extract(ctx context.Context, year int, deps Deps) []types.Paper {
	return run(ctx, deps, "ccs", crossrefStrategy(year), ccsScrapeStrategy(year))
}

// crossrefStrategy queries Crossref and keeps only works whose
// container title names the conference.
func crossrefStrategy(year int) strategy {
	return func(ctx context.Context, deps Deps) ([]types.Paper, error) {
		params := url.Values{
			"rows": {strconv.Itoa(maxAPIRows(deps.Config))},
		}
		if year >= ccsFilterCutoffYear {
			params.Set("filter", fmt.Sprintf(
				"member:%s,type:proceedings-article,from-pub-date:%d-01-01,until-pub-date:%d-12-31",
				acmMemberID, year, year))
		} else {
			params.Set("query.bibliographic", fmt.Sprintf("CCS %d", year))
		}
		if deps.Config.CrossrefMailto != "" {
			params.Set("mailto", deps.Config.CrossrefMailto)
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, crossrefAPIBase+"?"+params.Encode(), nil)
		if err != nil {
			return nil, fmt.Errorf("creating request: %w", err)
		}
		req.Header.Set("User-Agent", deps.Config.UserAgent)

		resp, err := httputil.DoWithRetry(ctx, deps.Client, req, 0)
		if err != nil {
			return nil, fmt.Errorf("Crossref API request: %w", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("Crossref API returned HTTP %d", resp.StatusCode)
		}

		var cr crossrefResponse
		if err := json.NewDecoder(resp.Body).Decode(&cr); err != nil {
			return nil, fmt.Errorf("parsing Crossref response: %w", err)
		}

		papers := []types.Paper{}
		for _, work := range cr.Message.Items {
			if !mentionsCCS(work.ContainerTitle) {
				continue
			}

			title := ""
			if len(work.Title) > 0 {
				title = strings.TrimSpace(work.Title[0])
			}

			var authors []string
			for _, a := range work.Author {
				name := strings.TrimSpace(strings.TrimSpace(a.Given) + " " + strings.TrimSpace(a.Family))
				if name != "" {
					authors = append(authors, name)
				}
			}

			var pdfURL *string
			for _, link := range work.Link {
				if link.ContentType == "application/pdf" && link.URL != "" {
					u := link.URL
					pdfURL = &u
					break
				}
			}

			papers = append(papers, types.NewPaper(title, authors, pdfURL, optional(stripJATS(work.Abstract))))
		}
		return papers, nil
	}
}

// mentionsCCS reports whether any container title names the venue.
func mentionsCCS(titles []string) bool {
	for _, t := range titles {
		if strings.Contains(t, "CCS") || strings.Contains(t, "Computer and Communications Security") {
			return true
		}
	}
	return false
}

var jatsTagPattern = regexp.MustCompile(`</?jats:[^>]*>`)

// stripJATS removes JATS markup from Crossref abstracts.
func stripJATS(s string) string {
	return strings.TrimSpace(jatsTagPattern.ReplaceAllString(s, ""))
}

// ccsScrapeStrategy parses the sigsac.org program page: h3 title,
// p.authors byline, div.abstract block.
func ccsScrapeStrategy(year int) strategy {
	return func(ctx context.Context, deps Deps) ([]types.Paper, error) {
		res, ok := fetcher.First(ctx, deps.Client, expandYear(ccsProgramURLPatterns, year), deps.Config.HTTPConfig, deps.Log)
		if !ok {
			return nil, nil
		}
		doc, err := parseDoc(res.Body)
		if err != nil {
			return nil, fmt.Errorf("parsing program page: %w", err)
		}

		papers := []types.Paper{}
		doc.Find("div.paper").Each(func(_ int, item *goquery.Selection) {
			papers = append(papers, types.NewPaper(
				fieldText(item.Find("h3")),
				splitAuthors(item.Find("p.authors").First().Text()),
				pdfAnchor(item),
				optional(fieldText(item.Find("div.abstract"))),
			))
		})
		return papers, nil
	}
}

// Crossref works API JSON structures.
type crossrefResponse struct {
	Message crossrefMessage `json:"message"`
}

type crossrefMessage struct {
	TotalResults int            `json:"total-results"`
	Items        []crossrefWork `json:"items"`
}

type crossrefWork struct {
	Title          []string         `json:"title"`
	ContainerTitle []string         `json:"container-title"`
	Author         []crossrefAuthor `json:"author"`
	Link           []crossrefLink   `json:"link"`
	Abstract       string           `json:"abstract"`
}

type crossrefAuthor struct {
	Given  string `json:"given"`
	Family string `json:"family"`
}

type crossrefLink struct {
	URL         string `json:"URL"`
	ContentType string `json:"content-type"`
}
