// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package conference maps fetched conference pages and metadata API
// responses to normalized paper records. One extractor per venue; each
// extractor tries an ordered list of strategies (metadata API first
// where one exists, page scrape as fallback) and never surfaces an
// error to the caller: failures degrade to empty fields or an empty
// list with a diagnostic on the log writer.
package conference

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"sort"

	"github.com/dmintz/secpapers/pkg/types"
)

// Deps carries the collaborators an extractor needs for one run.
type Deps struct {
	Client *http.Client
	Config types.CrawlConfig
	Log    io.Writer
}

// Extractor produces the paper records for one venue and year.
type Extractor interface {
	Name() string
	Extract(ctx context.Context, year int, deps Deps) []types.Paper
}

var registry = map[string]Extractor{
	"sp":     IEEESP{},
	"ccs":    ACMCCS{},
	"usenix": USENIXSecurity{},
	"ndss":   NDSS{},
}

// Lookup returns the extractor registered under key.
func Lookup(key string) (Extractor, bool) {
	e, ok := registry[key]
	return e, ok
}

// Keys returns the registered conference keys, sorted.
func Keys() []string {
	keys := make([]string, 0, len(registry))
	for k := range registry {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// strategy is one way of obtaining records for a venue/year. A nil,
// nil return means the strategy does not apply (e.g. no API key) and
// the next one should be tried without noise; an error is reported as
// a warning before falling through; an empty list also falls through.
type strategy func(ctx context.Context, deps Deps) ([]types.Paper, error)

// run evaluates strategies in order and returns the first non-empty
// result, or an empty list when none produced records.
func run(ctx context.Context, deps Deps, name string, strategies ...strategy) []types.Paper {
	for _, s := range strategies {
		papers, err := s(ctx, deps)
		if err != nil {
			fmt.Fprintf(deps.Log, "warning: %s: %v\n", name, err)
			continue
		}
		if len(papers) > 0 {
			return papers
		}
	}
	return []types.Paper{}
}

const defaultMaxAPIRows = 500

// maxAPIRows returns the configured API row cap or the default.
func maxAPIRows(cfg types.CrawlConfig) int {
	if cfg.MaxAPIRows > 0 {
		return cfg.MaxAPIRows
	}
	return defaultMaxAPIRows
}

// expandYear substitutes year into each URL pattern. Patterns without
// a verb (as substituted by tests) pass through unchanged.
func expandYear(patterns []string, year int) []string {
	urls := make([]string, len(patterns))
	for i, p := range patterns {
		if containsVerb(p) {
			urls[i] = fmt.Sprintf(p, year)
		} else {
			urls[i] = p
		}
	}
	return urls
}

func containsVerb(pattern string) bool {
	for i := 0; i+1 < len(pattern); i++ {
		if pattern[i] == '%' && pattern[i+1] == 'd' {
			return true
		}
	}
	return false
}
