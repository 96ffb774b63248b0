// Package model defines the data structures shared by the parser, the
// synchronizer and the designer session.
package model

// Path represents a file system path.
type Path string

// Span is a half-open byte range [Start, End) into a document's text.
type Span struct {
	Start int
	End   int
}

// IsValid reports whether the span covers a non-negative, ordered range.
func (s Span) IsValid() bool {
	return s.Start >= 0 && s.End >= s.Start
}

// Len returns the number of bytes covered.
func (s Span) Len() int {
	return s.End - s.Start
}

// Contains reports whether other lies entirely inside s.
func (s Span) Contains(other Span) bool {
	return other.Start >= s.Start && other.End <= s.End
}

// Overlaps reports whether the two spans share at least one byte.
func (s Span) Overlaps(other Span) bool {
	return s.Start < other.End && other.Start < s.End
}

// Text returns the slice of text covered by the span, or "" when the span
// does not fit the text.
func (s Span) Text(text string) string {
	if !s.IsValid() || s.End > len(text) {
		return ""
	}

	return text[s.Start:s.End]
}

// SourceDocument is the text the designer session edits.
type SourceDocument struct {
	Text        string
	Path        Path // empty for documents loaded from memory
	DisplayName string
	Dirty       bool
}

// Name returns the display name, falling back to the path.
func (d SourceDocument) Name() string {
	if d.DisplayName != "" {
		return d.DisplayName
	}

	return string(d.Path)
}

// Function is one top-level UI-building function.
type Function struct {
	Name string
	Root *Node // nil when the body holds no element
	Span Span
}

// ParsedDocument is the immutable result of one parse.
type ParsedDocument struct {
	Path                 Path
	Functions            []Function
	HasRenderableContent bool
	// Err is set when the parser gave up; Functions is then empty.
	Err error
}

// Degraded reports whether the parse failed and produced an empty tree.
func (d *ParsedDocument) Degraded() bool {
	return d == nil || d.Err != nil
}

// Function returns the named function, or the first one when name is empty.
func (d *ParsedDocument) Function(name string) (*Function, bool) {
	if d == nil || len(d.Functions) == 0 {
		return nil, false
	}

	if name == "" {
		return &d.Functions[0], true
	}

	for i := range d.Functions {
		if d.Functions[i].Name == name {
			return &d.Functions[i], true
		}
	}

	return nil, false
}

// NodeCount returns the number of nodes across all functions.
func (d *ParsedDocument) NodeCount() int {
	if d == nil {
		return 0
	}

	count := 0

	for _, fn := range d.Functions {
		Walk(fn.Root, func(*Node) bool {
			count++
			return true
		})
	}

	return count
}
