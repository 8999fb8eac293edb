// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package conference

import (
	"fmt"
	"io"
	"strings"
	"unicode"

	"go.yaml.in/yaml/v3"

	"github.com/dmintz/secpapers/pkg/types"
)

// CSLItem represents a bibliographic entry in CSL (Citation Style
// Language) format, consumable by Pandoc and reference managers.
type CSLItem struct {
	ID       string    `yaml:"id"`
	Type     string    `yaml:"type"`
	Title    string    `yaml:"title"`
	Author   []CSLName `yaml:"author,omitempty"`
	Abstract string    `yaml:"abstract,omitempty"`
	URL      string    `yaml:"URL,omitempty"`
}

// CSLName represents a person's name in CSL format.
type CSLName struct {
	Family  string `yaml:"family,omitempty"`
	Given   string `yaml:"given,omitempty"`
	Literal string `yaml:"literal,omitempty"`
}

// FormatCSL writes papers as a CSL-YAML list to w.
func FormatCSL(papers []types.Paper, w io.Writer) error {
	items := make([]CSLItem, len(papers))
	for i, p := range papers {
		items[i] = toCSLItem(p, i)
	}
	enc := yaml.NewEncoder(w)
	defer enc.Close()
	return enc.Encode(items)
}

// toCSLItem converts a Paper to a CSLItem. The id is a slug derived
// from the title, with a positional fallback for untitled entries.
func toCSLItem(p types.Paper, pos int) CSLItem {
	id := titleSlug(p.Title)
	if id == "" {
		id = fmt.Sprintf("paper-%d", pos+1)
	}

	item := CSLItem{
		ID:    id,
		Type:  "paper-conference",
		Title: p.Title,
	}
	if p.Abstract != nil {
		item.Abstract = *p.Abstract
	}
	if p.PDFURL != nil {
		item.URL = *p.PDFURL
	}
	for _, a := range p.Authors {
		item.Author = append(item.Author, parseAuthorName(a))
	}
	return item
}

// parseAuthorName splits a full name on the last space: everything
// before is given, the last token is family. Single-token names use
// the literal field.
func parseAuthorName(name string) CSLName {
	name = strings.TrimSpace(name)
	if name == "" {
		return CSLName{}
	}
	idx := strings.LastIndex(name, " ")
	if idx < 0 {
		return CSLName{Literal: name}
	}
	return CSLName{
		Given:  name[:idx],
		Family: name[idx+1:],
	}
}

// titleSlug lowercases the first few title words and joins them with
// hyphens, dropping punctuation.
func titleSlug(title string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(title) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
			b.WriteRune(r)
		}
	}
	words := strings.Fields(b.String())
	if len(words) > 6 {
		words = words[:6]
	}
	return strings.Join(words, "-")
}
