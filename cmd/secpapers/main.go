// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the secpapers CLI.
package main

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/dmintz/secpapers/internal/conference"
	"github.com/dmintz/secpapers/internal/secrets"
	"github.com/dmintz/secpapers/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

const (
	defaultTimeout   = 30 * time.Second
	defaultUserAgent = "secpapers/0.1"
	secretsDir       = ".secrets/"
)

// rootCmd is the base command. The crawl itself is the root action:
// secpapers <year> <conference>.
var rootCmd = &cobra.Command{
	Use:   "secpapers <year> <conference>",
	Short: "Fetch paper metadata from the top four security conferences",
	Long: `secpapers retrieves title, authors, PDF link, and abstract for papers
published at IEEE S&P (sp), ACM CCS (ccs), USENIX Security (usenix), and
NDSS (ndss) for a given year, and writes them as a JSON array.

Where a metadata API is available and configured (IEEE Xplore for sp,
Crossref for ccs) it is preferred; otherwise the conference program page
is scraped. Extraction failures are not fatal: the result degrades to an
empty array with a notice on stderr.`,
	Args: cobra.ExactArgs(2),
	RunE: runCrawl,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./secpapers.yaml or ~/.config/secpapers/config.yaml)")
	rootCmd.Flags().String("output", "", "write results to this file instead of stdout")
	rootCmd.Flags().String("format", "json", "output format: json, table, or csl")
	rootCmd.Flags().Duration("timeout", 0, "HTTP request timeout (default 30s)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("secpapers")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "secpapers"))
		}
	}

	viper.SetEnvPrefix("SECPAPERS")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func runCrawl(cmd *cobra.Command, args []string) error {
	year, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("year must be an integer, got %q", args[0])
	}
	ext, ok := conference.Lookup(args[1])
	if !ok {
		return fmt.Errorf("unknown conference %q (choose one of: %s)", args[1], strings.Join(conference.Keys(), ", "))
	}

	format, _ := cmd.Flags().GetString("format")
	switch format {
	case "json", "table", "csl":
	default:
		return fmt.Errorf("unknown format %q (choose one of: json, table, csl)", format)
	}

	loaded, err := secrets.Load(secretsDir)
	if err != nil {
		return err
	}

	timeout, _ := cmd.Flags().GetDuration("timeout")
	if timeout == 0 {
		timeout = viper.GetDuration("timeout")
	}
	if timeout == 0 {
		timeout = defaultTimeout
	}

	cfg := types.CrawlConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:   timeout,
			UserAgent: defaultUserAgent,
		},
		XploreAPIKey:   firstNonEmpty(viper.GetString("xplore_api_key"), loaded["ieee-xplore-api-key"]),
		CrossrefMailto: firstNonEmpty(viper.GetString("crossref_mailto"), loaded["crossref-mailto"]),
		MaxAPIRows:     viper.GetInt("max_api_rows"),
		DetailDelay:    viper.GetDuration("detail_delay"),
	}

	deps := conference.Deps{
		Client: &http.Client{Timeout: cfg.Timeout},
		Config: cfg,
		Log:    os.Stderr,
	}
	papers := ext.Extract(cmd.Context(), year, deps)

	out := os.Stdout
	if path, _ := cmd.Flags().GetString("output"); path != "" {
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("creating output file: %w", err)
		}
		defer f.Close()
		out = f
	}

	switch format {
	case "table":
		conference.FormatTable(papers, out)
		return nil
	case "csl":
		return conference.FormatCSL(papers, out)
	default:
		return conference.FormatJSON(papers, out)
	}
}

// firstNonEmpty returns the first non-empty string; config and env
// take precedence over the secrets directory.
func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
