// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package index extracts paper entries from conference-volume index pages.
//
// A volume index page is a flat sequence of blocks under one content
// container: h1 headings name sections, and every block after the first
// heading describes one paper. The parser walks the blocks in document
// order and degrades gracefully on missing markup; only a page without
// any content container is an error.
package index

import (
	"fmt"
	"io"
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/pdiddy/anthology-mirror/pkg/types"
)

// placeholder is substituted for author or title when the entry block
// carries no usable markup. This is deliberate degradation, not an error.
const placeholder = "NA"

// StructuralError reports an index page with neither a content region
// nor a body to walk. It fails the whole volume load.
type StructuralError struct {
	Volume string
}

func (e *StructuralError) Error() string {
	return fmt.Sprintf("volume %s: index page has no content or body container", e.Volume)
}

var spaceRun = regexp.MustCompile(`\s+`)

// collapse trims s and squeezes internal whitespace runs to single spaces.
func collapse(s string) string {
	return strings.TrimSpace(spaceRun.ReplaceAllString(s, " "))
}

// Parser extracts entries from one volume's index HTML. Base is the URL
// of the index page itself; anchor hrefs are resolved against it.
type Parser struct {
	base *url.URL
}

// New returns a Parser resolving relative links against base. A nil base
// leaves hrefs untouched.
func New(base *url.URL) *Parser {
	return &Parser{base: base}
}

// Parse walks the page's primary content container and returns the
// entries in document order. The container is the element with id
// "content", or the document body when no such element exists; a page
// with neither yields a *StructuralError. Blocks before the first h1
// heading are front matter and produce no entries.
func (p *Parser) Parse(r io.Reader, volume string) ([]types.Entry, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("volume %s: parsing index HTML: %w", volume, err)
	}

	container := doc.Find("#content").First()
	if container.Length() == 0 {
		container = doc.Find("body").First()
	}
	if container.Length() == 0 {
		return nil, &StructuralError{Volume: volume}
	}

	var (
		entries []types.Entry
		section string
		seen    bool
	)
	container.Children().Each(func(_ int, block *goquery.Selection) {
		if goquery.NodeName(block) == "h1" {
			section = collapse(block.Text())
			seen = true
			return
		}
		if !seen {
			return
		}
		entries = append(entries, p.parseBlock(block, volume, section))
	})

	return entries, nil
}

// parseBlock extracts one entry from a block. Only the first matching
// anchor, bold span, and italic span count; later ones are ignored.
func (p *Parser) parseBlock(block *goquery.Selection, volume, section string) types.Entry {
	entry := types.Entry{
		Volume:  volume,
		Section: section,
		Author:  placeholder,
		Title:   placeholder,
	}

	if author := collapse(block.Find("b").First().Text()); author != "" {
		entry.Author = author
	}
	if title := collapse(block.Find("i").First().Text()); title != "" {
		entry.Title = title
	}

	if href, text, ok := firstAnchor(block, "pdf"); ok {
		entry.PDF = p.webFile(href, text, "pdf")
	}
	if href, text, ok := firstAnchor(block, "bib"); ok {
		entry.Bib = p.webFile(href, text, "bib")
	}

	return entry
}

// firstAnchor returns the href and text of the first anchor in the block
// whose URL ends in suffix.
func firstAnchor(block *goquery.Selection, suffix string) (href, text string, ok bool) {
	block.Find("a").EachWithBreak(func(_ int, a *goquery.Selection) bool {
		h, exists := a.Attr("href")
		if !exists || !strings.HasSuffix(h, suffix) {
			return true
		}
		href, text, ok = h, a.Text(), true
		return false
	})
	return href, text, ok
}

// webFile builds the entry's file reference. The local filename comes
// from the anchor text with the extension appended when missing; an
// anchor with no text falls back to the URL-derived default.
func (p *Parser) webFile(href, text, ext string) *types.WebFile {
	abs := href
	if p.base != nil {
		if u, err := url.Parse(href); err == nil {
			abs = p.base.ResolveReference(u).String()
		}
	}

	name := collapse(text)
	if name != "" && !strings.HasSuffix(name, "."+ext) {
		name += "." + ext
	}

	wf := types.NewWebFile(abs, name)
	return &wf
}
