package parser

import (
	sitter "github.com/smacker/go-tree-sitter"
)

// Node is a borrowed view into the concrete syntax tree. It carries the
// numeric kind id, the kind name, byte and row/column spans, and the
// structural helpers the metric kernels are built on.
type Node struct {
	ts *sitter.Node
}

// Wrap adapts a tree-sitter node. Returns nil for a nil node.
func Wrap(n *sitter.Node) *Node {
	if n == nil {
		return nil
	}
	return &Node{ts: n}
}

// TS returns the underlying tree-sitter node.
func (n *Node) TS() *sitter.Node { return n.ts }

// Kind returns the node kind name (grammar node type).
func (n *Node) Kind() string { return n.ts.Type() }

// KindID returns the 16-bit numeric kind id.
func (n *Node) KindID() uint16 { return uint16(n.ts.Symbol()) }

// StartByte returns the byte offset where the node starts.
func (n *Node) StartByte() int { return int(n.ts.StartByte()) }

// EndByte returns the byte offset one past the node end.
func (n *Node) EndByte() int { return int(n.ts.EndByte()) }

// StartRow returns the 0-based row of the node start.
func (n *Node) StartRow() int { return int(n.ts.StartPoint().Row) }

// StartCol returns the 0-based column of the node start.
func (n *Node) StartCol() int { return int(n.ts.StartPoint().Column) }

// EndRow returns the 0-based row of the node end.
func (n *Node) EndRow() int { return int(n.ts.EndPoint().Row) }

// EndCol returns the 0-based column of the node end.
func (n *Node) EndCol() int { return int(n.ts.EndPoint().Column) }

// ChildCount returns the number of children, anonymous tokens included.
func (n *Node) ChildCount() int { return int(n.ts.ChildCount()) }

// Child returns the i-th child, or nil when out of range.
func (n *Node) Child(i int) *Node {
	if i < 0 || i >= n.ChildCount() {
		return nil
	}
	return Wrap(n.ts.Child(i))
}

// ChildByField returns the child bound to a grammar field name.
func (n *Node) ChildByField(name string) *Node {
	return Wrap(n.ts.ChildByFieldName(name))
}

// Parent returns the parent node, or nil at the root.
func (n *Node) Parent() *Node { return Wrap(n.ts.Parent()) }

// NextSibling returns the following sibling, anonymous tokens included.
func (n *Node) NextSibling() *Node { return Wrap(n.ts.NextSibling()) }

// PrevSibling returns the preceding sibling, anonymous tokens included.
func (n *Node) PrevSibling() *Node { return Wrap(n.ts.PrevSibling()) }

// IsNamed reports whether the node is a named grammar node rather than an
// anonymous token.
func (n *Node) IsNamed() bool { return n.ts.IsNamed() }

// HasError reports whether the subtree contains parse errors.
func (n *Node) HasError() bool { return n.ts.HasError() }

// IsError reports whether the node itself is an error node.
func (n *Node) IsError() bool { return n.ts.Type() == "ERROR" }

// Text returns the source text covered by the node.
func (n *Node) Text(source []byte) string { return NodeText(n, source) }

// Cursor returns a tree cursor positioned on the node.
func (n *Node) Cursor() *sitter.TreeCursor { return sitter.NewTreeCursor(n.ts) }

// HasChild reports whether any direct child has the given kind.
func (n *Node) HasChild(kind string) bool {
	for i := 0; i < n.ChildCount(); i++ {
		if n.ts.Child(i).Type() == kind {
			return true
		}
	}
	return false
}

// HasSibling reports whether any sibling (the node itself included) has the
// given kind.
func (n *Node) HasSibling(kind string) bool {
	parent := n.ts.Parent()
	if parent == nil {
		return false
	}
	for i := 0; i < int(parent.ChildCount()); i++ {
		if parent.Child(i).Type() == kind {
			return true
		}
	}
	return false
}

// FirstOccurrence performs a depth-first, left-first search below the node
// (the node itself included) and returns the first descendant satisfying
// the predicate.
func (n *Node) FirstOccurrence(pred func(*Node) bool) *Node {
	stack := []*Node{n}
	for len(stack) > 0 {
		node := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if pred(node) {
			return node
		}
		for i := node.ChildCount() - 1; i >= 0; i-- {
			stack = append(stack, node.Child(i))
		}
	}
	return nil
}

// ActOnNode invokes action on the node and every descendant, depth-first
// and left-first.
func (n *Node) ActOnNode(action func(*Node)) {
	stack := []*Node{n}
	for len(stack) > 0 {
		node := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		action(node)
		for i := node.ChildCount() - 1; i >= 0; i-- {
			stack = append(stack, node.Child(i))
		}
	}
}

// ActOnChild invokes action on every direct child in source order.
func (n *Node) ActOnChild(action func(*Node)) {
	for i := 0; i < n.ChildCount(); i++ {
		action(n.Child(i))
	}
}

// CountSpecificAncestors walks parents until the first ancestor matching
// stop and counts the ancestors matching match seen on the way. This is
// the primitive behind nesting depth and callable classification.
func (n *Node) CountSpecificAncestors(match, stop func(*Node) bool) int {
	count := 0
	for node := n.Parent(); node != nil; node = node.Parent() {
		if stop(node) {
			break
		}
		if match(node) {
			count++
		}
	}
	return count
}

// KindIn reports whether the node kind is one of the given kinds.
func (n *Node) KindIn(kinds map[string]bool) bool {
	return kinds[n.Kind()]
}
