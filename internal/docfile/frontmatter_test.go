package docfile

import (
	"testing"
)

// TestParseFrontMatter_Basic verifies a well-formed block is split from
// the body.
func TestParseFrontMatter_Basic(t *testing.T) {
	doc := `---
title: Returns Policy
tags: faq, returns
---

You can return any order within 30 days.
`

	meta, body := ParseFrontMatter(doc)

	if meta["title"] != "Returns Policy" {
		t.Errorf("title: got %q", meta["title"])
	}
	if meta["tags"] != "faq, returns" {
		t.Errorf("tags: got %q", meta["tags"])
	}
	if body != "You can return any order within 30 days.\n" {
		t.Errorf("body: got %q", body)
	}
}

// TestParseFrontMatter_NoBlock verifies documents without front matter
// pass through unchanged.
func TestParseFrontMatter_NoBlock(t *testing.T) {
	doc := "Just body text.\nNo front matter here.\n"
	meta, body := ParseFrontMatter(doc)

	if len(meta) != 0 {
		t.Errorf("expected empty meta, got %v", meta)
	}
	if body != doc {
		t.Errorf("body changed: got %q", body)
	}
}

// TestParseFrontMatter_Unterminated verifies an unclosed block is treated
// as body.
func TestParseFrontMatter_Unterminated(t *testing.T) {
	doc := "---\ntitle: Broken\nbody never starts"
	meta, body := ParseFrontMatter(doc)

	if len(meta) != 0 {
		t.Errorf("expected empty meta, got %v", meta)
	}
	if body != doc {
		t.Errorf("body: got %q", body)
	}
}

// TestParseFrontMatter_MalformedLines verifies lines without a colon are
// skipped and values keep embedded colons.
func TestParseFrontMatter_MalformedLines(t *testing.T) {
	doc := `---
title: Shipping: EU
not a key value line
: empty key
---
Body.
`

	meta, body := ParseFrontMatter(doc)

	if meta["title"] != "Shipping: EU" {
		t.Errorf("title: got %q", meta["title"])
	}
	if len(meta) != 1 {
		t.Errorf("expected only title, got %v", meta)
	}
	if body != "Body.\n" {
		t.Errorf("body: got %q", body)
	}
}

// TestExtractOutline verifies title and section extraction.
func TestExtractOutline(t *testing.T) {
	body := []byte(`# Care Guide

Intro.

## Washing

Cold water only.

## Drying

Lay flat.
`)

	outline := ExtractOutline(body)
	if outline.Title != "Care Guide" {
		t.Errorf("title: got %q", outline.Title)
	}

	want := []string{"Care Guide", "Washing", "Drying"}
	if len(outline.Sections) != len(want) {
		t.Fatalf("sections: got %v", outline.Sections)
	}
	for i, w := range want {
		if outline.Sections[i] != w {
			t.Errorf("section %d: got %q, want %q", i, outline.Sections[i], w)
		}
	}
}

// TestExtractOutline_NoHeadings verifies plain text yields an empty
// outline.
func TestExtractOutline_NoHeadings(t *testing.T) {
	outline := ExtractOutline([]byte("plain text without headings"))
	if outline.Title != "" || len(outline.Sections) != 0 {
		t.Errorf("expected empty outline, got %+v", outline)
	}
}
