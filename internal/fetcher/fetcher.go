// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package fetcher retrieves the first reachable page from an ordered
// list of candidate URLs. Conference sites have moved across several
// URL schemes over the years, so every extractor works from a
// candidate list rather than a single address.
package fetcher

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/dmintz/secpapers/pkg/types"
)

// Result holds a fetched page. URL is the candidate that answered,
// which callers need to resolve relative links against.
type Result struct {
	Body string
	URL  string
}

// First tries each candidate URL in order and returns the body of the
// first response with status 200. Transport errors and non-200
// statuses move on to the next candidate; there are no per-candidate
// retries. When every candidate fails a single notice naming all of
// them is written to w and ok is false.
func First(ctx context.Context, client *http.Client, urls []string, cfg types.HTTPConfig, w io.Writer) (Result, bool) {
	for _, url := range urls {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			continue
		}
		req.Header.Set("User-Agent", cfg.UserAgent)

		resp, err := client.Do(req)
		if err != nil {
			continue
		}
		if resp.StatusCode != http.StatusOK {
			io.Copy(io.Discard, resp.Body)
			resp.Body.Close()
			continue
		}

		body, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			continue
		}
		return Result{Body: string(body), URL: url}, true
	}

	fmt.Fprintf(w, "could not fetch any page from: %s\n", strings.Join(urls, ", "))
	return Result{}, false
}
