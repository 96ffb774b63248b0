// Package domain contains the text synchronizer, the edit history and the
// designer session built on top of them.
package domain

import (
	"strings"

	"github.com/mouse-blink/treesync/internal/adapter"
	m "github.com/mouse-blink/treesync/internal/model"
)

// DefaultIndent is the indentation unit used when no sibling shows one.
const DefaultIndent = "    "

// Synchronizer translates structural edits into minimal splices of the
// source text. Every operation parses text fresh, so callers never need to
// keep a tree in step with it.
type Synchronizer interface {
	UpdateNodeProperty(text string, ref m.NodeRef, name string, value any) m.SyncResult
	AddModifierCall(text string, ref m.NodeRef, name string, args ...Arg) m.SyncResult
	RemoveModifierCall(text string, ref m.NodeRef, name string) m.SyncResult
	AddChildNode(text string, parent m.NodeRef, snippet string) m.SyncResult
	InsertElement(text string, parent m.NodeRef, kind m.Kind) m.SyncResult
	RemoveNode(text string, ref m.NodeRef) m.SyncResult
	WrapNodeWithContainer(text string, ref m.NodeRef, container m.Kind) m.SyncResult
}

// SyncOption configures a Synchronizer.
type SyncOption func(*synchronizer)

// WithIndent sets the indentation unit for inserted children.
func WithIndent(unit string) SyncOption {
	return func(s *synchronizer) {
		if unit != "" {
			s.indent = unit
		}
	}
}

type synchronizer struct {
	source adapter.UISourceAdapter
	indent string
}

// NewSynchronizer creates a Synchronizer parsing through source.
func NewSynchronizer(source adapter.UISourceAdapter, opts ...SyncOption) Synchronizer {
	s := &synchronizer{source: source, indent: DefaultIndent}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// locate parses text and resolves ref to a node.
func (s *synchronizer) locate(text string, ref m.NodeRef) (*m.Node, *m.SyncError) {
	doc := s.source.Parse(text, "")
	if doc.Degraded() {
		return nil, &m.SyncError{Kind: m.ErrKindParseDegraded, Msg: doc.Err.Error(), Err: doc.Err}
	}

	fn, ok := doc.Function(ref.Function)
	if !ok {
		if ref.Function == "" {
			return nil, m.NewSyncError(m.ErrKindNodeNotFound, "document has no UI functions")
		}

		return nil, m.NewSyncError(m.ErrKindNodeNotFound, "function %q", ref.Function)
	}

	node, ok := m.FindByID(fn.Root, ref.ID)
	if !ok {
		return nil, m.NewSyncError(m.ErrKindNodeNotFound, "%s", ref)
	}

	if !node.Span.IsValid() || node.Span.End > len(text) || !strings.HasPrefix(text[node.Span.Start:], node.Name) {
		return nil, m.NewSyncError(m.ErrKindAmbiguousSpan, "span of %s does not start with %q", ref, node.Name)
	}

	return node, nil
}

// apply splices text and verifies that the result still parses.
func (s *synchronizer) apply(text string, splice m.Splice) m.SyncResult {
	updated, ok := replaceRange(text, splice.Start, splice.End, splice.Text)
	if !ok {
		return m.Failed(m.ErrKindAmbiguousSpan, "range [%d, %d) outside the document", splice.Start, splice.End)
	}

	if doc := s.source.Parse(updated, ""); doc.Degraded() {
		return m.SyncResult{Err: &m.SyncError{Kind: m.ErrKindParseDegraded, Msg: "edit breaks the document: " + doc.Err.Error(), Err: doc.Err}}
	}

	return m.Succeeded(updated, splice)
}

func failure(err *m.SyncError) m.SyncResult {
	return m.SyncResult{Err: err}
}

func syncErrorOf(err error) *m.SyncError {
	if syncErr, ok := err.(*m.SyncError); ok {
		return syncErr
	}

	return &m.SyncError{Kind: m.ErrKindUnrepresentableValue, Msg: err.Error(), Err: err}
}

func (s *synchronizer) UpdateNodeProperty(text string, ref m.NodeRef, name string, value any) m.SyncResult {
	if !isIdentifier(name) {
		return m.Failed(m.ErrKindUnrepresentableValue, "invalid property name %q", name)
	}

	lit, err := FormatValue(value)
	if err != nil {
		return failure(syncErrorOf(err))
	}

	node, serr := s.locate(text, ref)
	if serr != nil {
		return failure(serr)
	}

	switch node.PropertyCount(name) {
	case 0:
		return s.apply(text, s.appendProperty(text, node, name+" = "+lit))
	case 1:
		prop, _ := node.Property(name)
		return s.apply(text, m.Splice{Start: prop.ValueSpan.Start, End: prop.ValueSpan.End, Text: lit})
	default:
		return m.Failed(m.ErrKindAmbiguousSpan, "property %q given more than once", name)
	}
}

// appendProperty places entry after the last argument, following the
// layout the argument list already has.
func (s *synchronizer) appendProperty(text string, node *m.Node, entry string) m.Splice {
	if !node.HasArgs {
		return m.Splice{Start: node.NameSpan.End, End: node.NameSpan.End, Text: "(" + entry + ")"}
	}

	open := node.ArgsSpan.Start
	closing := node.ArgsSpan.End - 1

	var first, last *m.Argument

	for _, group := range [][]m.Argument{node.Args, node.Properties} {
		for i := range group {
			arg := &group[i]
			if first == nil || arg.Span.Start < first.Span.Start {
				first = arg
			}

			if last == nil || arg.Span.End > last.Span.End {
				last = arg
			}
		}
	}

	if last == nil {
		if strings.TrimSpace(text[open+1:closing]) == "" {
			return m.Splice{Start: open + 1, End: closing, Text: entry}
		}

		return m.Splice{Start: closing, End: closing, Text: entry}
	}

	multiline := strings.Contains(text[open:first.Span.Start], "\n")
	indent := lineIndent(text, last.Span.Start)

	sep := ", "
	if multiline {
		sep = ",\n" + indent
	}

	pos := trimSpaceBefore(text, closing, last.Span.End)
	if pos > last.Span.End && text[pos-1] == ',' {
		// trailing comma: the new entry takes one too
		if multiline {
			return m.Splice{Start: pos, End: pos, Text: "\n" + indent + entry + ","}
		}

		return m.Splice{Start: pos, End: pos, Text: " " + entry + ","}
	}

	return m.Splice{Start: last.Span.End, End: last.Span.End, Text: sep + entry}
}

func (s *synchronizer) AddModifierCall(text string, ref m.NodeRef, name string, args ...Arg) m.SyncResult {
	if !isIdentifier(name) {
		return m.Failed(m.ErrKindUnrepresentableValue, "invalid modifier name %q", name)
	}

	rendered, err := formatArgs(args)
	if err != nil {
		return failure(syncErrorOf(err))
	}

	node, serr := s.locate(text, ref)
	if serr != nil {
		return failure(serr)
	}

	call := "." + name + "(" + rendered + ")"

	// a chain laid out one call per line gets the new call on its own line
	if n := len(node.Modifiers); n > 0 {
		prevEnd := node.BaseEnd
		if n > 1 {
			prevEnd = node.Modifiers[n-2].Span.End
		}

		last := node.Modifiers[n-1]
		if strings.Contains(text[prevEnd:last.Span.Start], "\n") {
			call = "\n" + lineIndent(text, last.Span.Start) + call
		}
	}

	return s.apply(text, m.Splice{Start: node.Span.End, End: node.Span.End, Text: call})
}

func (s *synchronizer) RemoveModifierCall(text string, ref m.NodeRef, name string) m.SyncResult {
	node, serr := s.locate(text, ref)
	if serr != nil {
		return failure(serr)
	}

	idx := node.ModifierIndex(name)
	if idx < 0 {
		return m.Failed(m.ErrKindModifierNotFound, "%q on %s", name, ref)
	}

	prevEnd := node.BaseEnd
	if idx > 0 {
		prevEnd = node.Modifiers[idx-1].Span.End
	}

	mod := node.Modifiers[idx]
	start := trimSpaceBefore(text, mod.Span.Start, prevEnd)

	return s.apply(text, m.Splice{Start: start, End: mod.Span.End})
}

func (s *synchronizer) AddChildNode(text string, parent m.NodeRef, snippet string) m.SyncResult {
	snippet = strings.TrimSpace(snippet)
	if _, err := s.source.ParseElement(snippet); err != nil {
		return m.SyncResult{Err: &m.SyncError{Kind: m.ErrKindParseDegraded, Msg: "snippet: " + err.Error(), Err: err}}
	}

	node, serr := s.locate(text, parent)
	if serr != nil {
		return failure(serr)
	}

	splice := s.childSplice(text, node, snippet)

	result := s.apply(text, splice)
	if !result.Success {
		return result
	}

	// the snippet must land as exactly one new child of parent
	updated, serr := s.locate(result.Text, parent)
	if serr != nil {
		return failure(serr)
	}

	if len(updated.Children) != len(node.Children)+1 {
		return m.Failed(m.ErrKindAmbiguousSpan, "snippet did not land as a child of %s", parent)
	}

	return result
}

func (s *synchronizer) childSplice(text string, node *m.Node, snippet string) m.Splice {
	parentIndent := lineIndent(text, node.Span.Start)

	if !node.HasBlock {
		childIndent := parentIndent + s.indent
		body := " {\n" + childIndent + reindent(snippet, childIndent) + "\n" + parentIndent + "}"

		return m.Splice{Start: node.BaseEnd, End: node.BaseEnd, Text: body}
	}

	open := node.BlockSpan.Start
	closing := node.BlockSpan.End - 1
	contentEnd := trimSpaceBefore(text, closing, open+1)

	if contentEnd == open+1 {
		childIndent := parentIndent + s.indent
		body := "\n" + childIndent + reindent(snippet, childIndent) + "\n" + parentIndent

		return m.Splice{Start: open + 1, End: closing, Text: body}
	}

	if !strings.Contains(text[open:closing], "\n") {
		// keep a one-line block on one line
		return m.Splice{Start: contentEnd, End: contentEnd, Text: "; " + snippet}
	}

	childIndent := parentIndent + s.indent
	if n := len(node.Children); n > 0 && beginsLine(text, node.Children[n-1].Span.Start) {
		childIndent = lineIndent(text, node.Children[n-1].Span.Start)
	}

	return m.Splice{Start: contentEnd, End: contentEnd, Text: "\n" + childIndent + reindent(snippet, childIndent)}
}

func (s *synchronizer) InsertElement(text string, parent m.NodeRef, kind m.Kind) m.SyncResult {
	snippet, ok := DefaultSnippet(kind)
	if !ok {
		return m.Failed(m.ErrKindInvalidKind, "no element template for %q", kind)
	}

	return s.AddChildNode(text, parent, snippet)
}

func (s *synchronizer) RemoveNode(text string, ref m.NodeRef) m.SyncResult {
	node, serr := s.locate(text, ref)
	if serr != nil {
		return failure(serr)
	}

	start, end := node.Span.Start, node.Span.End

	if k := skipBlanks(text, end); k < len(text) && (text[k] == ';' || text[k] == ',') {
		end = k + 1

		// a sibling continuing the line takes the removed node's place
		if k := skipBlanks(text, end); k < len(text) && text[k] != '\n' && text[k] != '\r' {
			end = k
		}
	}

	if beginsLine(text, start) {
		k := skipBlanks(text, end)
		if k == len(text) || text[k] == '\n' || text[k] == '\r' {
			start = lineStart(text, start)
			end = k

			switch {
			case strings.HasPrefix(text[end:], "\r\n"):
				end += 2
			case strings.HasPrefix(text[end:], "\n"):
				end++
			}
		}

		return s.apply(text, m.Splice{Start: start, End: end})
	}

	// the body of an `if`, `else`, `=` or `->` is replaced by an empty block
	if needsPlaceholder(text, start) {
		return s.apply(text, m.Splice{Start: start, End: node.Span.End, Text: "{}"})
	}

	return s.apply(text, m.Splice{Start: start, End: end})
}

func needsPlaceholder(text string, pos int) bool {
	before := strings.TrimRight(text[lineStart(text, pos):pos], " \t")

	switch {
	case strings.HasSuffix(before, "->"):
		return true
	case strings.HasSuffix(before, "else"):
		return len(before) == 4 || !isWordByte(before[len(before)-5])
	case strings.HasSuffix(before, "="):
		return len(before) == 1 || strings.IndexByte("=!<>", before[len(before)-2]) < 0
	case strings.HasSuffix(before, ")"):
		open := matchingOpen(before)
		if open < 0 {
			return false
		}

		head := strings.TrimRight(before[:open], " \t")
		for _, kw := range []string{"if", "while", "for"} {
			if strings.HasSuffix(head, kw) && (len(head) == len(kw) || !isWordByte(head[len(head)-len(kw)-1])) {
				return true
			}
		}
	}

	return false
}

// matchingOpen finds the '(' balancing the ')' that ends line.
func matchingOpen(line string) int {
	depth := 0

	for i := len(line) - 1; i >= 0; i-- {
		switch line[i] {
		case ')':
			depth++
		case '(':
			depth--
			if depth == 0 {
				return i
			}
		}
	}

	return -1
}

func isWordByte(c byte) bool {
	return c == '_' || c >= '0' && c <= '9' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
}

func (s *synchronizer) WrapNodeWithContainer(text string, ref m.NodeRef, container m.Kind) m.SyncResult {
	if !container.IsContainer() {
		return m.Failed(m.ErrKindInvalidKind, "%q is not a container", container)
	}

	node, serr := s.locate(text, ref)
	if serr != nil {
		return failure(serr)
	}

	wrapped := string(container) + " { " + node.Span.Text(text) + " }"

	return s.apply(text, m.Splice{Start: node.Span.Start, End: node.Span.End, Text: wrapped})
}
