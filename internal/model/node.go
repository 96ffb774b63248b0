package model

// Kind is the closed set of UI element kinds the designer understands.
type Kind string

// Container kinds accept children and can wrap other nodes.
const (
	KindColumn     Kind = "Column"
	KindRow        Kind = "Row"
	KindBox        Kind = "Box"
	KindCard       Kind = "Card"
	KindSurface    Kind = "Surface"
	KindScaffold   Kind = "Scaffold"
	KindLazyColumn Kind = "LazyColumn"
	KindLazyRow    Kind = "LazyRow"
)

// Leaf kinds.
const (
	KindText      Kind = "Text"
	KindButton    Kind = "Button"
	KindImage     Kind = "Image"
	KindIcon      Kind = "Icon"
	KindSpacer    Kind = "Spacer"
	KindDivider   Kind = "Divider"
	KindTextField Kind = "TextField"
	KindCheckbox  Kind = "Checkbox"
	KindSwitch    Kind = "Switch"
	KindSlider    Kind = "Slider"
)

// KindCustom marks a call to a component outside the known set. The callee
// text is kept in Node.Name.
const KindCustom Kind = "Custom"

var containerKinds = map[Kind]struct{}{
	KindColumn: {}, KindRow: {}, KindBox: {}, KindCard: {},
	KindSurface: {}, KindScaffold: {}, KindLazyColumn: {}, KindLazyRow: {},
}

var leafKinds = map[Kind]struct{}{
	KindText: {}, KindButton: {}, KindImage: {}, KindIcon: {}, KindSpacer: {},
	KindDivider: {}, KindTextField: {}, KindCheckbox: {}, KindSwitch: {}, KindSlider: {},
}

// KindOf maps a callee name onto its kind.
func KindOf(name string) Kind {
	k := Kind(name)
	if k.IsKnown() {
		return k
	}

	return KindCustom
}

// IsKnown reports whether k is one of the built-in element kinds.
func (k Kind) IsKnown() bool {
	_, container := containerKinds[k]
	_, leaf := leafKinds[k]

	return container || leaf
}

// IsContainer reports whether k lays out children.
func (k Kind) IsContainer() bool {
	_, ok := containerKinds[k]
	return ok
}

// Kinds returns every built-in kind, containers first.
func Kinds() []Kind {
	return []Kind{
		KindColumn, KindRow, KindBox, KindCard, KindSurface, KindScaffold, KindLazyColumn, KindLazyRow,
		KindText, KindButton, KindImage, KindIcon, KindSpacer, KindDivider, KindTextField,
		KindCheckbox, KindSwitch, KindSlider,
	}
}

// Argument is one entry of an argument list. Name is empty for positional
// arguments.
type Argument struct {
	Name      string
	Value     PropertyValue
	Span      Span // whole argument, name included
	ValueSpan Span
}

// ModifierCall is one `.name(args)` link of the chain trailing an element.
// Span starts at the leading dot.
type ModifierCall struct {
	Name      string
	Arguments []Argument
	Span      Span
}

// Node is one element-construction site in the source.
type Node struct {
	ID         Identity
	Kind       Kind
	Name       string     // callee text, equal to Kind for built-in kinds
	Properties []Argument // keyword arguments, in source order
	Args       []Argument // positional arguments
	Modifiers  []ModifierCall
	Children   []*Node

	Span      Span // callee start to the end of the last modifier
	NameSpan  Span
	ArgsSpan  Span // '(' .. ')', zero value when absent
	BlockSpan Span // '{' .. '}', zero value when absent
	BaseEnd   int  // end of the construction expression, before modifiers

	HasArgs  bool
	HasBlock bool
}

// Property returns the keyword argument with the given name.
func (n *Node) Property(name string) (Argument, bool) {
	for _, p := range n.Properties {
		if p.Name == name {
			return p, true
		}
	}

	return Argument{}, false
}

// PropertyCount counts keyword arguments carrying name.
func (n *Node) PropertyCount(name string) int {
	count := 0

	for _, p := range n.Properties {
		if p.Name == name {
			count++
		}
	}

	return count
}

// ModifierIndex returns the index of the last modifier named name, or -1.
func (n *Node) ModifierIndex(name string) int {
	for i := len(n.Modifiers) - 1; i >= 0; i-- {
		if n.Modifiers[i].Name == name {
			return i
		}
	}

	return -1
}

// Contains reports whether other lies inside n's span.
func (n *Node) Contains(other *Node) bool {
	return other != nil && n.Span.Contains(other.Span)
}

// ModifierNames lists modifier names in chain order.
func (n *Node) ModifierNames() []string {
	names := make([]string, 0, len(n.Modifiers))
	for _, mod := range n.Modifiers {
		names = append(names, mod.Name)
	}

	return names
}

// Walk visits root and its descendants in depth-first pre-order. Returning
// false from fn skips the node's children.
func Walk(root *Node, fn func(*Node) bool) {
	if root == nil {
		return
	}

	if !fn(root) {
		return
	}

	for _, child := range root.Children {
		Walk(child, fn)
	}
}

// FindByID searches root in pre-order and returns the node whose identity is
// exactly id.
func FindByID(root *Node, id Identity) (*Node, bool) {
	var found *Node

	Walk(root, func(n *Node) bool {
		if found != nil {
			return false
		}

		if n.ID == id {
			found = n
			return false
		}

		return true
	})

	return found, found != nil
}
