package parser

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	m "github.com/mouse-blink/treesync/internal/model"
)

// DefaultMarker is the annotation that marks UI-building functions.
const DefaultMarker = "Composable"

// StructureError reports unbalanced or malformed structure.
type StructureError struct {
	Offset int
	Msg    string
}

func (e *StructureError) Error() string {
	return fmt.Sprintf("offset %d: %s", e.Offset, e.Msg)
}

// Option configures a Parser.
type Option func(*Parser)

// WithMarker sets the annotation name that marks UI-building functions.
func WithMarker(marker string) Option {
	return func(p *Parser) {
		if marker != "" {
			p.marker = strings.TrimPrefix(marker, "@")
		}
	}
}

// Parser extracts UI-building functions from source text. It holds no
// per-document state and is safe for concurrent use.
type Parser struct {
	marker string
}

// New creates a Parser.
func New(opts ...Option) *Parser {
	p := &Parser{marker: DefaultMarker}
	for _, opt := range opts {
		opt(p)
	}

	return p
}

// Parse parses text with the default marker.
func Parse(text string, path m.Path) *m.ParsedDocument {
	return New().Parse(text, path)
}

// Parse never fails outright: lexical or structural problems yield a
// document with no functions and Err set.
func (p *Parser) Parse(text string, path m.Path) *m.ParsedDocument {
	doc := &m.ParsedDocument{Path: path}

	tokens, err := Tokenize(text)
	if err != nil {
		doc.Err = err
		return doc
	}

	match, err := matchBrackets(tokens)
	if err != nil {
		doc.Err = err
		return doc
	}

	s := &scanner{tokens: tokens, match: match, text: text}
	doc.Functions = s.functions(p.marker)

	for _, fn := range doc.Functions {
		if fn.Root != nil {
			doc.HasRenderableContent = true
			break
		}
	}

	return doc
}

// ParseElement parses snippet as a single element expression, as inserted
// by the synchronizer. The returned node's spans are relative to snippet.
func ParseElement(snippet string) (*m.Node, error) {
	tokens, err := Tokenize(snippet)
	if err != nil {
		return nil, err
	}

	match, err := matchBrackets(tokens)
	if err != nil {
		return nil, err
	}

	s := &scanner{tokens: tokens, match: match, text: snippet}
	if len(tokens) == 0 || !s.isElementStart(0, true) {
		return nil, &StructureError{Offset: 0, Msg: "snippet is not an element expression"}
	}

	node, next := s.element(0)
	if next != len(tokens) {
		return nil, &StructureError{Offset: tokens[next].Start, Msg: "unexpected text after element"}
	}

	m.AssignIdentities(node)

	return node, nil
}

func matchBrackets(tokens []Token) ([]int, error) {
	match := make([]int, len(tokens))
	for i := range match {
		match[i] = -1
	}

	pairs := map[string]string{")": "(", "}": "{", "]": "["}

	var stack []int

	for i, tok := range tokens {
		if tok.Type != TokenPunct {
			continue
		}

		switch tok.Text {
		case "(", "{", "[":
			stack = append(stack, i)
		case ")", "}", "]":
			if len(stack) == 0 || tokens[stack[len(stack)-1]].Text != pairs[tok.Text] {
				return nil, &StructureError{Offset: tok.Start, Msg: fmt.Sprintf("unbalanced %q", tok.Text)}
			}

			open := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			match[open] = i
			match[i] = open
		}
	}

	if len(stack) > 0 {
		tok := tokens[stack[len(stack)-1]]
		return nil, &StructureError{Offset: tok.Start, Msg: fmt.Sprintf("unclosed %q", tok.Text)}
	}

	return match, nil
}

type scanner struct {
	tokens []Token
	match  []int
	text   string
}

// keywords after which pending annotations no longer apply to a function
var declKeywords = map[string]struct{}{
	"class": {}, "object": {}, "interface": {}, "val": {}, "var": {},
	"typealias": {}, "import": {}, "package": {}, "enum": {},
}

func (s *scanner) functions(marker string) []m.Function {
	var (
		functions   []m.Function
		annotations []string
		annotStart  = -1
	)

	reset := func() {
		annotations = nil
		annotStart = -1
	}

	for i := 0; i < len(s.tokens); {
		tok := s.tokens[i]

		switch {
		case tok.Is("@"):
			name, next := s.annotation(i)
			if annotStart < 0 {
				annotStart = tok.Start
			}

			annotations = append(annotations, name)
			i = next
		case tok.Type == TokenIdent && tok.Text == "fun":
			fn, next, ok := s.function(i)
			if ok && hasAnnotation(annotations, marker) {
				if annotStart >= 0 {
					fn.Span.Start = annotStart
				}

				functions = append(functions, fn)
			}

			reset()
			i = next
		case tok.Is("(") || tok.Is("{") || tok.Is("["):
			reset()
			i = s.match[i] + 1
		case tok.Type == TokenIdent:
			if _, ok := declKeywords[tok.Text]; ok {
				reset()
			}
			i++
		default:
			i++
		}
	}

	return functions
}

// annotation reads `@Name`, `@a.b.Name`, `@file:Name` and an optional
// argument list, returning the last name segment.
func (s *scanner) annotation(i int) (string, int) {
	j := i + 1
	name := ""

	for j < len(s.tokens) {
		tok := s.tokens[j]
		if tok.Type != TokenIdent {
			break
		}

		name = tok.Text
		j++

		if j < len(s.tokens) && (s.tokens[j].Is(".") || s.tokens[j].Is(":")) {
			j++
			continue
		}

		break
	}

	if j < len(s.tokens) && s.tokens[j].Is("(") && !s.tokens[j].NewlineBefore {
		j = s.match[j] + 1
	}

	return name, j
}

func hasAnnotation(annotations []string, marker string) bool {
	for _, a := range annotations {
		if a == marker {
			return true
		}
	}

	return false
}

// function parses a declaration starting at the `fun` keyword.
func (s *scanner) function(i int) (m.Function, int, bool) {
	fn := m.Function{Span: m.Span{Start: s.tokens[i].Start}}

	// the name is the identifier right before the parameter list; receivers
	// and type parameters come earlier
	j := i + 1
	for j < len(s.tokens) {
		tok := s.tokens[j]
		if tok.Type == TokenIdent && j+1 < len(s.tokens) && s.tokens[j+1].Is("(") {
			fn.Name = tok.Text
			j = s.match[j+1] + 1

			break
		}

		if tok.Is("{") || tok.Is("}") || tok.Is("(") {
			return fn, j, false
		}
		j++
	}

	if fn.Name == "" {
		return fn, j, false
	}

	// skip an optional return type up to the body
	for j < len(s.tokens) {
		tok := s.tokens[j]

		switch {
		case tok.Is("{"):
			end := s.match[j]
			roots := s.block(j+1, end)

			if len(roots) > 0 {
				fn.Root = roots[0]
			}

			fn.Span.End = s.tokens[end].End
			m.AssignIdentities(fn.Root)

			return fn, end + 1, true
		case tok.Is("="):
			j++
			if j < len(s.tokens) && s.isElementStart(j, true) {
				root, next := s.element(j)
				fn.Root = root
				fn.Span.End = root.Span.End
				m.AssignIdentities(fn.Root)

				return fn, next, true
			}

			fn.Span.End = s.tokens[j-1].End

			return fn, j, true
		case tok.Is("(") || tok.Is("["):
			j = s.match[j] + 1
		case tok.Is("}") || tok.Is(")") || tok.Is("]") || tok.Is("@"):
			return fn, j, false
		case tok.Type == TokenIdent && tok.Text == "fun":
			return fn, j, false
		default:
			j++
		}
	}

	return fn, j, false
}

// block collects the elements found between token indexes from and to.
// Braces of non-element constructs are searched too, and their elements
// are flattened into the result.
func (s *scanner) block(from, to int) []*m.Node {
	var nodes []*m.Node

	for k := from; k < to; {
		tok := s.tokens[k]

		stmtStart := k == from || tok.NewlineBefore || s.tokens[k-1].Is(";") || s.tokens[k-1].Is("->")
		if s.isElementStart(k, stmtStart) {
			node, next := s.element(k)
			nodes = append(nodes, node)
			k = next

			continue
		}

		switch {
		case tok.Is("{"):
			nodes = append(nodes, s.block(k+1, s.match[k])...)
			k = s.match[k] + 1
		case tok.Is("(") || tok.Is("["):
			k = s.match[k] + 1
		default:
			k++
		}
	}

	return nodes
}

func (s *scanner) isElementStart(k int, stmtStart bool) bool {
	tok := s.tokens[k]
	if tok.Type != TokenIdent || !startsUpper(tok.Text) {
		return false
	}

	if k > 0 {
		prev := s.tokens[k-1]
		if prev.Is(".") || prev.Is("?.") || prev.Is("::") || prev.Is(":") || prev.Is("@") ||
			(prev.Type == TokenIdent && prev.Text == "fun") {
			return false
		}
	}

	if k+1 >= len(s.tokens) {
		return false
	}

	next := s.tokens[k+1]
	if !next.Is("(") && !(next.Is("{") && !next.NewlineBefore) {
		return false
	}

	return m.KindOf(tok.Text) != m.KindCustom || stmtStart
}

func startsUpper(s string) bool {
	r, _ := utf8.DecodeRuneInString(s)
	return unicode.IsUpper(r)
}

// element parses an element expression starting at token k and returns the
// node and the index of the first token after it.
func (s *scanner) element(k int) (*m.Node, int) {
	name := s.tokens[k]
	node := &m.Node{
		Kind:     m.KindOf(name.Text),
		Name:     name.Text,
		NameSpan: m.Span{Start: name.Start, End: name.End},
	}

	j := k + 1
	if j < len(s.tokens) && s.tokens[j].Is("(") {
		end := s.match[j]
		node.HasArgs = true
		node.ArgsSpan = m.Span{Start: s.tokens[j].Start, End: s.tokens[end].End}

		for _, arg := range s.arguments(j+1, end) {
			if arg.Name != "" {
				node.Properties = append(node.Properties, arg)
			} else {
				node.Args = append(node.Args, arg)
			}
		}

		j = end + 1
	}

	if j < len(s.tokens) && s.tokens[j].Is("{") && !s.tokens[j].NewlineBefore {
		end := s.match[j]
		node.HasBlock = true
		node.BlockSpan = m.Span{Start: s.tokens[j].Start, End: s.tokens[end].End}
		node.Children = s.block(j+1, end)
		j = end + 1
	}

	node.BaseEnd = s.tokens[j-1].End
	end := node.BaseEnd

	for j+1 < len(s.tokens) && s.tokens[j].Is(".") && s.tokens[j+1].Type == TokenIdent {
		mod := m.ModifierCall{Name: s.tokens[j+1].Text}
		start := s.tokens[j].Start
		next := j + 2

		if next < len(s.tokens) && s.tokens[next].Is("(") && !s.tokens[next].NewlineBefore {
			closing := s.match[next]
			mod.Arguments = s.arguments(next+1, closing)
			next = closing + 1
		}

		if next < len(s.tokens) && s.tokens[next].Is("{") && !s.tokens[next].NewlineBefore {
			closing := s.match[next]
			span := m.Span{Start: s.tokens[next].Start, End: s.tokens[closing].End}
			mod.Arguments = append(mod.Arguments, m.Argument{
				Value:     m.OpaqueValue(span.Text(s.text)),
				Span:      span,
				ValueSpan: span,
			})
			next = closing + 1
		}

		mod.Span = m.Span{Start: start, End: s.tokens[next-1].End}
		node.Modifiers = append(node.Modifiers, mod)
		end = mod.Span.End
		j = next
	}

	node.Span = m.Span{Start: name.Start, End: end}

	return node, j
}
