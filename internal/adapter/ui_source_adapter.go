package adapter

import (
	m "github.com/mouse-blink/treesync/internal/model"
	"github.com/mouse-blink/treesync/internal/parser"
)

// UISourceAdapter encapsulates parsing of UI source so the domain layer can
// focus on edit rules while delegating the grammar to an infrastructure
// component.
type UISourceAdapter interface {
	// Parse builds the node trees of text. It never fails; a degraded parse
	// is reported through ParsedDocument.Err.
	Parse(text string, path m.Path) *m.ParsedDocument
	// ParseElement parses a standalone element expression.
	ParseElement(snippet string) (*m.Node, error)
}

// LocalUISourceAdapter provides a concrete UISourceAdapter backed by the
// internal parser.
type LocalUISourceAdapter struct {
	parser *parser.Parser
}

// NewLocalUISourceAdapter constructs a LocalUISourceAdapter recognising
// functions annotated with marker.
func NewLocalUISourceAdapter(marker string) *LocalUISourceAdapter {
	return &LocalUISourceAdapter{parser: parser.New(parser.WithMarker(marker))}
}

// Parse builds the document tree for the provided text/path pair.
func (a *LocalUISourceAdapter) Parse(text string, path m.Path) *m.ParsedDocument {
	return a.parser.Parse(text, path)
}

// ParseElement parses snippet as one element expression.
func (a *LocalUISourceAdapter) ParseElement(snippet string) (*m.Node, error) {
	return parser.ParseElement(snippet)
}
