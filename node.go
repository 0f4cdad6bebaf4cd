// SPDX-License-Identifier: MIT
package arbor

import (
	"context"
	"fmt"
)

type (
	// Node defines a member of a [Tree].
	//
	// Synchronization is unnecessary, the type is designed for single write multiple read.
	Node[T Constraint] struct {
		// parent contains a reference to the upper Node.
		parent *Node[T]

		// value contains the node's data.
		value T

		// children holds references to nodes at a lower level, in insertion order.
		children []*Node[T]
	}
)

// NewNode instantiates a [Node].
func NewNode[T Constraint](value T) *Node[T] {
	return &Node[T]{value: value}
}

// Value retrieves the [Node]'s data.
func (n *Node[T]) Value() T { return n.value }

// SetValue updates the [Node]'s data.
//
// Intended for visitor callbacks; altering values on a [Tree] using a locate
// cache leaves stale cache entries behind.
func (n *Node[T]) SetValue(value T) { n.value = value }

// Parent retrieves a reference to the [Node]'s parent.
//
// Value is nil for the root node.
func (n *Node[T]) Parent() *Node[T] { return n.parent }

// IsLeaf checks for the absence of children.
func (n *Node[T]) IsLeaf() bool { return len(n.children) < 1 }

// Children lists the immediate children for a [Node] in insertion order.
func (n *Node[T]) Children(_ context.Context) (children List[T]) {
	children = make(List[T], len(n.children))
	copy(children, n.children)

	return
}

// Child retrieves an immediate child.
func (n *Node[T]) Child(_ context.Context, childValue T) (child *Node[T], ok bool) {
	for index := range n.children {
		if n.children[index].value == childValue {
			child, ok = n.children[index], true
			return
		}
	}

	return
}

// AddChild to a [Node].
//
// Throws an error on existing immediate child.
func (n *Node[T]) AddChild(ctx context.Context, child *Node[T]) (err error) {
	if _, ok := n.Child(ctx, child.value); ok {
		return fmt.Errorf(notChildErrFmt, child.value, ErrAlreadyChild, n.value)
	}

	child.parent = n
	n.children = append(n.children, child)

	return
}
