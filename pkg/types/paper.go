// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types holds the record and configuration types shared across
// the crawler stages.
package types

// Paper is the normalized record for one conference paper. PDFURL and
// Abstract are nil when the source page or API did not expose them;
// they serialize as JSON null. Authors preserves source order and may
// be empty, but is never emitted as null.
type Paper struct {
	// Title is the paper title, whitespace-trimmed.
	Title string `json:"title" yaml:"title"`

	// Authors lists the paper authors in source order.
	Authors []string `json:"authors" yaml:"authors"`

	// PDFURL points at the full text when a PDF link was found.
	PDFURL *string `json:"pdf_url" yaml:"pdf_url"`

	// Abstract is the paper abstract when one was found.
	Abstract *string `json:"abstract" yaml:"abstract"`
}

// NewPaper builds a Paper, normalizing a nil author list to an empty
// one so the record always serializes with an array.
func NewPaper(title string, authors []string, pdfURL, abstract *string) Paper {
	if authors == nil {
		authors = []string{}
	}
	return Paper{Title: title, Authors: authors, PDFURL: pdfURL, Abstract: abstract}
}
