// SPDX-License-Identifier: MIT

// Package arbor implements a rooted, arbitrary-arity tree with value-keyed
// insertion and pre-order traversal.
package arbor

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/panjf2000/ants/v2"
	"golang.org/x/exp/constraints"
)

// Constraint is a wrapper interface containing comparable & constraints.Ordered.
type Constraint interface {
	comparable
	constraints.Ordered
}

type (
	// Tree defines an n-array tree keyed by node values.
	//
	// Synchronization is unnecessary, the type is designed for single write multiple read.
	Tree[T Constraint] struct {
		// cfg contains a pointer to a [Config] shared by all Tree operations.
		cfg *Config

		// root holds the top-level [Node]; nil for an empty Tree.
		root *Node[T]

		// locateCache holds references to previously located nodes.
		locateCache map[T]*Node[T]

		// firstMatch restricts Add to the first located parent.
		firstMatch bool
	}

	// List is a type wrapper for []*Node.
	List[T Constraint] []*Node[T]

	// TraverseComm defines a channel to communicate info between [Tree] operations & it's callers.
	TraverseComm[T Constraint] struct {
		node *Node[T]
		err  error
	}

	// Option defines the Tree functional option type.
	Option[T Constraint] func(*Tree[T])
)

const (
	traverseBufferSize = 10

	notChildErrFmt = "(%v) %w (%v)"
)

// Errors encountered when handling a Tree.
var (
	ErrNotFound = errors.New("not found")

	ErrNoLeaves     = errors.New("lacks leaves; tree is empty")
	ErrAlreadyChild = errors.New("is a child of")
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

// UseLocateCache enables the usage of a cache for [Tree.Locate] operations.
func UseLocateCache[T Constraint]() Option[T] {
	return func(t *Tree[T]) { t.locateCache = make(map[T]*Node[T]) }
}

// FirstMatch restricts [Tree.Add] to the first parent found in pre-order.
//
// The default appends a new leaf under every node matching the parent value.
func FirstMatch[T Constraint]() Option[T] {
	return func(t *Tree[T]) { t.firstMatch = true }
}

// Config retrieves the [Tree]'s Config.
func (t *Tree[T]) Config() *Config { return t.cfg }

// Root retrieves the [Tree]'s root [Node]; nil for an empty Tree.
func (t *Tree[T]) Root() *Node[T] { return t.root }

// IsEmpty checks for the absence of a root [Node].
func (t *Tree[T]) IsEmpty() bool { return t.root == nil }

// Add a value under the node(s) matching parentValue.
//
// The first insertion into an empty [Tree] seeds the root; parentValue is
// ignored. Subsequent insertions run in two phases: a read-only search for
// the parent value followed by a mutation appending a fresh leaf under every
// match, or only the first pre-order match with the [FirstMatch] option.
//
// An absent parentValue drops the insertion without an error. A parent
// already holding an immediate child with the value is skipped, keeping
// repeated insertions idempotent; the operation either fully completes or
// leaves the Tree untouched.
func (t *Tree[T]) Add(ctx context.Context, value, parentValue T) (err error) {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	if t.root == nil {
		t.root = NewNode(value)
		return
	}

	parents, err := t.LocateAll(ctx, parentValue)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			// Inherited behavior: a missing parent silently drops the insertion.
			t.cfg.Logger.Debugf("parent (%v) not found, dropping (%v)", parentValue, value)
			err = nil
		}

		return
	}

	if t.firstMatch {
		parents = parents[:1]
	}

	for _, parent := range parents {
		// An existing immediate leaf is skipped, not an error.
		if _, ok := parent.Child(ctx, value); ok {
			continue
		}

		if err = parent.AddChild(ctx, NewNode(value)); err != nil {
			return
		}
	}

	return
}

// Traverse visits every [Node] depth-first pre-order: a node before any of
// its descendants, children in insertion order.
//
// The callback may update node values but must not alter the [Tree]'s
// topology. Traversing an empty Tree is a no-op.
func (t *Tree[T]) Traverse(ctx context.Context, visit func(node *Node[T])) (err error) {
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

		visit(resl.node)
	}

	return
}

// Walk performs depth-first pre-order traversal on a [Tree], pushing its
// nodes to its channel argument.
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
		stack := List[T]{t.root}

		for {
			stackLen := len(stack)
			if stackLen < 1 {
				break
			}

			// Pop from the stack top.
			var front *Node[T]
			front, stack = stack[stackLen-1], stack[:stackLen-1]

			// Send node to caller via the channel.
			traverseChan <- TraverseComm[T]{node: front}

			// Push children in reverse; popping restores insertion order.
			for index := len(front.children) - 1; index >= 0; index-- {
				stack = append(stack, front.children[index])
			}
		}
	}
}

// Locate searches for a value & returns it's [Node].
//
// The search fans the root's child subtrees out on the shared ants goroutine
// pool, falling back to the caller's goroutine when a submission is rejected.
// The operation completes before returning; callers observe it as synchronous.
func (t *Tree[T]) Locate(ctx context.Context, value T) (node *Node[T], err error) {
	if t.root == nil {
		err = ErrNotFound
		return
	}
	if t.root.value == value {
		return t.root, nil
	}

	if t.locateCache != nil {
		if cached, ok := t.locateCache[value]; ok {
			return cached, nil
		}
	}

	matchChan := make(chan *Node[T], 1)

	locateCtx, locateCancel := context.WithCancel(ctx)
	defer locateCancel()

	wg := new(sync.WaitGroup)
	for index := range t.root.children {
		child := t.root.children[index]

		wg.Add(1)
		task := func() {
			defer wg.Done()
			child.locate(locateCtx, value, matchChan)
		}
		if pErr := ants.Submit(task); pErr != nil {
			task()
		}
	}
	go func() {
		wg.Wait()
		close(matchChan)
	}()

	node, proceed := <-matchChan
	if !proceed || node == nil {
		// A cancelled search is inconclusive, not a miss.
		if err = ctx.Err(); err == nil {
			err = ErrNotFound
		}

		return
	}
	locateCancel()

	if t.locateCache != nil {
		t.locateCache[value] = node
	}

	return
}

// locate walks a subtree sequentially, offering the first match to matchChan.
func (n *Node[T]) locate(ctx context.Context, value T, matchChan chan<- *Node[T]) {
	select {
	case <-ctx.Done():
		return
	default:
	}

	if n.value == value {
		select {
		case matchChan <- n:
		case <-ctx.Done():
		}

		return
	}

	for _, child := range n.children {
		child.locate(ctx, value, matchChan)
	}
}

// LocateAll searches for a value & returns all matching [Node](s) in
// pre-order.
//
// This is the read-only phase of [Tree.Add]; [Tree.Locate] serves the
// single-match case.
func (t *Tree[T]) LocateAll(ctx context.Context, value T) (nodes List[T], err error) {
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

		if resl.node.value == value {
			nodes = append(nodes, resl.node)
		}
	}

	if len(nodes) < 1 {
		err = ErrNotFound
	}

	return
}

// Leaves returns an array of terminal [Node](s).
//
// An error here indicates an empty [Tree].
func (t *Tree[T]) Leaves(ctx context.Context) (termNodes List[T], err error) {
	termNodes = make(List[T], 0)
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

		if resl.node.IsLeaf() {
			termNodes = append(termNodes, resl.node)
		}
	}

	if len(termNodes) < 1 {
		err = ErrNoLeaves
	}

	return
}

// Values lists the [Tree]'s values in pre-order.
func (t *Tree[T]) Values(ctx context.Context) (values []T, err error) {
	values = make([]T, 0)
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

// Len counts the [Node](s) in a [Tree].
//
// NOTE: This operation is expensive.
func (t *Tree[T]) Len(ctx context.Context) (count int, err error) {
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

		count++
	}

	return
}

// Len is the number of elements in the collection.
func (l *List[T]) Len() int { return len(*l) }

// Less reports whether the element with index i must sort before the element with index j.
func (l *List[T]) Less(i int, j int) bool { return (*l)[i].value < (*l)[j].value }

// Swap swaps the elements with indexes i and j.
func (l *List[T]) Swap(i int, j int) { (*l)[i], (*l)[j] = (*l)[j], (*l)[i] }

// Values returns an array of values for a [List].
func (l *List[T]) Values(_ context.Context, sortValues ...bool) (values []T) {
	values = make([]T, len(*l))
	for index := range *l {
		values[index] = (*l)[index].value
	}

	if len(sortValues) > 0 && sortValues[0] {
		sort.Slice(values, func(i, j int) bool { return values[i] < values[j] })
	}

	return
}
