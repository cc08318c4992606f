// Package source enumerates and fetches support documents from a content
// tree, either a local directory or a GitHub docs repository.
package source

import "context"

// Document is one raw support document before parsing.
type Document struct {
	Path    string // slash-separated path relative to the content root
	Content string
}

// Source lists and fetches documents with the recognized extension.
type Source interface {
	// List returns the relative paths of all documents, in stable order.
	List(ctx context.Context) ([]string, error)
	// Fetch returns the document at the given relative path.
	Fetch(ctx context.Context, path string) (*Document, error)
}

// DocExtension is the recognized document file extension.
const DocExtension = ".md"
