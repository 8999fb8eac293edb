package types

import "time"

// HTTPConfig holds shared HTTP settings for stages that make network
// requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "secpapers/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// CrawlConfig holds settings for a crawl run.
type CrawlConfig struct {
	HTTPConfig `yaml:",inline"`

	// XploreAPIKey enables the IEEE Xplore metadata API path. When
	// empty the IEEE S&P extractor scrapes the program page instead.
	XploreAPIKey string `json:"xplore_api_key,omitempty" yaml:"xplore_api_key,omitempty"`

	// CrossrefMailto is sent as the mailto parameter on Crossref
	// requests for polite pool access.
	CrossrefMailto string `json:"crossref_mailto,omitempty" yaml:"crossref_mailto,omitempty"`

	// MaxAPIRows caps the number of records requested from metadata
	// APIs in a single call (default 500).
	MaxAPIRows int `json:"max_api_rows" yaml:"max_api_rows"`

	// DetailDelay is the pause between consecutive detail-page
	// fetches during a two-step crawl (default 0).
	DetailDelay time.Duration `json:"detail_delay" yaml:"detail_delay"`
}
