// Package docfile parses support documents: an optional front-matter block
// followed by a markdown body.
package docfile

import (
	"strings"
)

const frontMatterDelimiter = "---"

// ParseFrontMatter splits a document into its front-matter mapping and
// body. The front matter is a leading block delimited by lines consisting
// solely of "---", parsed as flat "key: value" lines. This is deliberately
// not a structured-data parser: nested values, lists and quoting are not
// supported, and lines without a colon are ignored.
//
// A document without a front-matter block returns an empty map and the
// text unchanged.
func ParseFrontMatter(text string) (map[string]string, string) {
	meta := map[string]string{}

	rest, ok := strings.CutPrefix(text, frontMatterDelimiter+"\n")
	if !ok {
		return meta, text
	}

	block, body, ok := strings.Cut(rest, "\n"+frontMatterDelimiter+"\n")
	if !ok {
		// Unterminated block: treat the whole text as body.
		return meta, text
	}

	for _, line := range strings.Split(block, "\n") {
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		meta[key] = strings.TrimSpace(value)
	}

	return meta, strings.TrimPrefix(body, "\n")
}
