// SPDX-License-Identifier: MIT
package bst

type (
	// Node defines a member of a [Tree].
	//
	// Each child subtree is owned exclusively by its parent; no parent
	// back-reference is held.
	Node[T Constraint] struct {
		// value contains the node's data.
		value T

		left  *Node[T]
		right *Node[T]
	}
)

// NewNode instantiates a [Node].
func NewNode[T Constraint](value T) *Node[T] {
	return &Node[T]{value: value}
}

// Value retrieves the [Node]'s data.
func (n *Node[T]) Value() T { return n.value }

// Left retrieves the [Node]'s left child; nil when absent.
func (n *Node[T]) Left() *Node[T] { return n.left }

// Right retrieves the [Node]'s right child; nil when absent.
func (n *Node[T]) Right() *Node[T] { return n.right }

// IsLeaf checks for the absence of children.
func (n *Node[T]) IsLeaf() bool { return n.left == nil && n.right == nil }

// height counts the nodes along the longest root-to-leaf path.
func (n *Node[T]) height() int {
	if n == nil {
		return 0
	}

	left, right := n.left.height(), n.right.height()
	if left > right {
		return left + 1
	}

	return right + 1
}
