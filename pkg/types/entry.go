// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"net/url"
	"strings"
)

// WebFile pairs a remote URL with the local filename it is stored under.
// Values are immutable once constructed; build them with NewWebFile.
type WebFile struct {
	URL      string `json:"url"`
	Filename string `json:"filename"`
}

// NewWebFile builds a WebFile. When filename is empty it is derived from
// the last non-empty path segment of rawURL. No validation is performed;
// a malformed URL degrades to splitting the raw string.
func NewWebFile(rawURL, filename string) WebFile {
	if filename == "" {
		filename = filenameFromURL(rawURL)
	}
	return WebFile{URL: rawURL, Filename: filename}
}

func filenameFromURL(rawURL string) string {
	path := rawURL
	if u, err := url.Parse(rawURL); err == nil && u.Path != "" {
		path = u.Path
	}
	segments := strings.Split(path, "/")
	for i := len(segments) - 1; i >= 0; i-- {
		if segments[i] != "" {
			return segments[i]
		}
	}
	return path
}

// Conference is one read-only manifest record: a conference and the
// ordered volume identifiers ("P/P95") to mirror for it.
type Conference struct {
	ID          string   `json:"id" yaml:"id"`
	Name        string   `json:"name" yaml:"name"`
	Description string   `json:"description" yaml:"description"`
	Volumes     []string `json:"volumes" yaml:"volumes"`
}

// Entry is one paper's metadata and file references within a volume.
// Author and Title hold the literal "NA" when the index page markup did
// not yield them; PDF and Bib are nil when the entry block carried no
// matching anchor. Entries are never mutated after parsing.
type Entry struct {
	Volume  string   `json:"volume"`
	Section string   `json:"section"`
	Author  string   `json:"author"`
	Title   string   `json:"title"`
	PDF     *WebFile `json:"pdf,omitempty"`
	Bib     *WebFile `json:"bib,omitempty"`
}
