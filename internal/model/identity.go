package model

import (
	"strconv"
	"strings"
)

// RootID is the identity of every function's root node.
const RootID Identity = "0"

// Identity is a structural path from the function root, for example "0.2.1".
// It is recomputed on every parse and shifts when earlier siblings are added
// or removed.
type Identity string

// Child returns the identity of the i-th child.
func (id Identity) Child(i int) Identity {
	return Identity(string(id) + "." + strconv.Itoa(i))
}

// Parent returns the parent identity; the root has none.
func (id Identity) Parent() (Identity, bool) {
	i := strings.LastIndexByte(string(id), '.')
	if i < 0 {
		return "", false
	}

	return id[:i], true
}

// Depth is the number of steps below the root.
func (id Identity) Depth() int {
	return strings.Count(string(id), ".")
}

// HasPrefix reports whether id is prefix itself or one of its descendants.
func (id Identity) HasPrefix(prefix Identity) bool {
	if id == prefix {
		return true
	}

	return strings.HasPrefix(string(id), string(prefix)+".")
}

// Valid reports whether id is a well-formed path rooted at "0".
func (id Identity) Valid() bool {
	parts := strings.Split(string(id), ".")
	if parts[0] != string(RootID) {
		return false
	}

	for _, p := range parts[1:] {
		if p == "" || strings.Trim(p, "0123456789") != "" || (len(p) > 1 && p[0] == '0') {
			return false
		}
	}

	return true
}

// AssignIdentities numbers root and its descendants with structural paths in
// a single pre-order walk.
func AssignIdentities(root *Node) {
	if root == nil {
		return
	}

	assign(root, RootID)
}

func assign(n *Node, id Identity) {
	n.ID = id
	for i, child := range n.Children {
		assign(child, id.Child(i))
	}
}

// NodeRef addresses a node inside one function of a document. An empty
// Function selects the first function.
type NodeRef struct {
	Function string
	ID       Identity
}

func (r NodeRef) String() string {
	if r.Function == "" {
		return string(r.ID)
	}

	return r.Function + ":" + string(r.ID)
}
