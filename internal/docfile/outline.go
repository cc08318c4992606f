package docfile

import (
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
	"go.abhg.dev/goldmark/toc"
)

// Outline describes the heading structure of a markdown body.
type Outline struct {
	Title    string   // first top-level heading, empty if none
	Sections []string // H1/H2 heading titles in document order
}

var markdown = goldmark.New(
	goldmark.WithParserOptions(
		parser.WithAutoHeadingID(),
	),
)

// ExtractOutline parses the markdown body and returns its title and
// section headings. Documents without headings yield an empty outline.
func ExtractOutline(body []byte) Outline {
	doc := markdown.Parser().Parse(text.NewReader(body))

	tree, err := toc.Inspect(doc, body,
		toc.MinDepth(1),
		toc.MaxDepth(2),
		toc.Compact(true),
	)
	if err != nil || len(tree.Items) == 0 {
		return Outline{}
	}

	var out Outline
	out.Title = string(tree.Items[0].Title)
	collectTitles(tree.Items, &out.Sections)
	return out
}

func collectTitles(items toc.Items, titles *[]string) {
	for _, item := range items {
		*titles = append(*titles, string(item.Title))
		if len(item.Items) > 0 {
			collectTitles(item.Items, titles)
		}
	}
}
