// SPDX-License-Identifier: MIT

// Package bst implements an unbalanced binary search tree.
//
// No rebalancing occurs: inserting values in sorted order degrades the tree
// to a linked list with O(n) operations.
package bst

import (
	"context"
	"errors"

	"golang.org/x/exp/constraints"
)

// Constraint is a wrapper interface containing comparable & constraints.Ordered.
type Constraint interface {
	comparable
	constraints.Ordered
}

type (
	// Tree defines a binary search tree holding a set of unique, totally
	// ordered values.
	//
	// Synchronization is unnecessary, the type is designed for single write multiple read.
	Tree[T Constraint] struct {
		// cfg contains a pointer to a [Config] shared by all Tree operations.
		cfg *Config

		// root holds the top-level [Node]; nil for an empty Tree.
		root *Node[T]

		// size counts the nodes held by the Tree.
		size int
	}

	// TraverseComm defines a channel to communicate info between [Tree] operations & it's callers.
	TraverseComm[T Constraint] struct {
		node *Node[T]
		err  error
	}

	// Option defines the Tree functional option type.
	Option[T Constraint] func(*Tree[T])
)

const traverseBufferSize = 10

// Errors encountered when handling a Tree.
var (
	ErrEmptyTree = errors.New("empty tree")
)

// New instantiates an empty [Tree]; the first [Tree.Add] seeds the root.
func New[T Constraint](options ...Option[T]) *Tree[T] {
	t := &Tree[T]{cfg: defConfig}

	for _, opt := range options {
		opt(t)
	}

	return t
}

// WithConfig configures the [Tree] [Config].
func WithConfig[T Constraint](cfg *Config) Option[T] {
	cfg.Validate()
	return func(t *Tree[T]) { t.cfg = cfg }
}

// Config retrieves the [Tree]'s Config.
func (t *Tree[T]) Config() *Config { return t.cfg }

// Root retrieves the [Tree]'s root [Node]; nil for an empty Tree.
func (t *Tree[T]) Root() *Node[T] { return t.root }

// IsEmpty checks for the absence of a root [Node].
func (t *Tree[T]) IsEmpty() bool { return t.root == nil }

// Len is the number of values in the [Tree].
func (t *Tree[T]) Len() int { return t.size }

// Add a value to the [Tree], preserving its ordering.
//
// A duplicate value is dropped without an error; added reports whether a
// node was created. At most one node is created per call.
func (t *Tree[T]) Add(_ context.Context, value T) (added bool) {
	if t.root == nil {
		t.root, t.size = NewNode(value), 1
		return true
	}

	current := t.root
	for {
		switch {
		case value > current.value:
			if current.right == nil {
				current.right = NewNode(value)
				t.size++
				return true
			}
			current = current.right
		case value < current.value:
			if current.left == nil {
				current.left = NewNode(value)
				t.size++
				return true
			}
			current = current.left
		default:
			// Values are unique across the Tree; drop the duplicate.
			if t.cfg.Debug {
				t.cfg.Logger.Debugf("duplicate (%v) dropped", value)
			}

			return false
		}
	}
}

// Contains checks for a value's membership in the [Tree].
//
// Absence is a normal false result, not an error.
func (t *Tree[T]) Contains(_ context.Context, value T) (ok bool) {
	current := t.root
	for current != nil {
		switch {
		case value > current.value:
			current = current.right
		case value < current.value:
			current = current.left
		default:
			return true
		}
	}

	return
}

// Walk performs in-order traversal on a [Tree], pushing its nodes to its
// channel argument; values arrive in strictly ascending order.
//
// An explicit stack replaces recursion; the [Tree]'s depth is caller data
// dependent. Walking an empty Tree closes the channel without sending.
// A context.Context is used to terminate the walk operation.
func (t *Tree[T]) Walk(ctx context.Context, traverseChan chan TraverseComm[T]) {
	defer close(traverseChan)

	if t.root == nil {
		return
	}

	select {
	case <-ctx.Done():
		// Received context cancellation.
		traverseChan <- TraverseComm[T]{err: ctx.Err()}
		return
	default:
		stack := make([]*Node[T], 0, traverseBufferSize)

		current := t.root
		for current != nil || len(stack) > 0 {
			// Descend to the leftmost pending node.
			for current != nil {
				stack = append(stack, current)
				current = current.left
			}

			top := len(stack) - 1
			current, stack = stack[top], stack[:top]

			// Send node to caller via the channel.
			traverseChan <- TraverseComm[T]{node: current}

			current = current.right
		}
	}
}

// Values lists the [Tree]'s values in ascending order.
func (t *Tree[T]) Values(ctx context.Context) (values []T, err error) {
	values = make([]T, 0, t.size)
	traverseChan := make(chan TraverseComm[T], traverseBufferSize)

	go t.Walk(ctx, traverseChan)

	for {
		resl, proceed := <-traverseChan
		if !proceed {
			break
		}
		if err = resl.err; err != nil {
			return
		}

		values = append(values, resl.node.value)
	}

	if t.cfg.Debug {
		t.cfg.Logger.Debugf("walked: %+v", values)
	}

	return
}

// Min retrieves the smallest value in the [Tree].
func (t *Tree[T]) Min(_ context.Context) (value T, err error) {
	if t.root == nil {
		err = ErrEmptyTree
		return
	}

	current := t.root
	for current.left != nil {
		current = current.left
	}
	value = current.value

	return
}

// Max retrieves the largest value in the [Tree].
func (t *Tree[T]) Max(_ context.Context) (value T, err error) {
	if t.root == nil {
		err = ErrEmptyTree
		return
	}

	current := t.root
	for current.right != nil {
		current = current.right
	}
	value = current.value

	return
}

// Height counts the nodes along the [Tree]'s longest root-to-leaf path.
//
// Sorted insertion order yields Height == Len; no rebalancing occurs.
func (t *Tree[T]) Height() int { return t.root.height() }
