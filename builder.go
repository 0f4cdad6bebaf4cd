// SPDX-License-Identifier: MIT
package arbor

import (
	"context"
	"errors"
	"fmt"

	"github.com/davecgh/go-spew/spew"
	"github.com/sirupsen/logrus"
)

type (
	// Builder defines an interface for entities that can be read into a Tree.
	Builder[T Constraint] interface {
		// Value obtains the value stored by the Builder.
		Value() T
		// Parent obtains the parent stored by the Builder
		Parent() T
	}

	// BuildSource is a wrapper type for []Builder used to generate the Tree.
	BuildSource[T Constraint] struct {
		debug  bool
		logger logrus.FieldLogger

		list      []Builder[T]
		isOrdered bool
	}

	// DefaultBuilder is a sample Builder interface implementation.
	DefaultBuilder struct {
		value  string
		parent string
	}

	// BuildOption defines the BuildSource functional option type.
	BuildOption[T Constraint] func(*BuildSource[T])
)

// Tree building errors.
var (
	ErrBuildTree = errors.New("failed to build tree")

	ErrMissingRootNode   = errors.New("missing root node")
	ErrMultipleRootNodes = errors.New("tree has multiple root nodes")

	ErrEmptyTreeSrc   = errors.New("empty tree source")
	ErrInvalidTreeSrc = errors.New("invalid tree source")

	ErrLocateParents = errors.New("unable to locate parents(s)")

	ErrPanicked = errors.New("recovery from panic")
)

// Value obtains the value stored by the DefaultBuilder.
func (d *DefaultBuilder) Value() string { return d.value }

// Parent obtains the parent stored by the DefaultBuilder
func (d *DefaultBuilder) Parent() string { return d.parent }

// NewBuildSource instantiates a BuildSource.
func NewBuildSource[T Constraint](options ...BuildOption[T]) *BuildSource[T] {
	b := &BuildSource[T]{list: []Builder[T]{}, logger: defConfig.Logger}

	for _, opt := range options {
		opt(b)
	}

	return b
}

// WithBuilders configures the underlying list.
func WithBuilders[T Constraint](list []Builder[T]) BuildOption[T] {
	return func(b *BuildSource[T]) { b.list = list }
}

// WithBuildLogger configures the logger option.
func WithBuildLogger[T Constraint](logger logrus.FieldLogger) BuildOption[T] {
	return func(b *BuildSource[T]) { b.logger = logger }
}

// WithDebug configures the debug option
func WithDebug[T Constraint](debug bool) BuildOption[T] {
	return func(b *BuildSource[T]) { b.debug = debug }
}

// Ordered marks the BuildSource's list as parent-before-child ordered.
func Ordered[T Constraint]() BuildOption[T] {
	return func(b *BuildSource[T]) { b.isOrdered = true }
}

// Len retrieves the length of the BuildSource.
func (b *BuildSource[T]) Len() int { return len(b.list) }

// Cut a value at some index from the BuildSource.
func (b *BuildSource[T]) Cut(index int) {
	if index == 0 {
		b.list = b.list[1:]
		return
	}

	upper := index + 1
	// Cut upto (excluding) `index`, cut from (including) `index+1`.
	b.list = append(b.list[:index], b.list[upper:]...)
}

// Build generates a [Tree] from a BuildSource.
//
// The root entry is identified by a zero-valued parent; values must be
// unique across the BuildSource for parentage to resolve.
func (b *BuildSource[T]) Build(ctx context.Context, options ...Option[T]) (t *Tree[T], err error) {
	defer func() {
		if err != nil {
			err = fmt.Errorf("%w: %w", ErrBuildTree, err)
		}
	}()

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrPanicked, r)
		}

		if err != nil {
			// Skip expensive operation if not debug.
			if b.debug {
				b.logger.Debugf("current tree: %s \nsource remnants: %s", spew.Sprint(t), spew.Sprint(b))
			}

			err = fmt.Errorf("%w: %w", ErrInvalidTreeSrc, err)
		}
	}()

	if b.Len() < 1 {
		err = ErrEmptyTreeSrc
		return
	}

	var rootValue T
	cache := make(map[T]struct{})

	select {
	case <-ctx.Done():
		err = ctx.Err()
		return
	default:
		t = New(options...)

		rootIndex := 0
		for index := range b.list {
			if b.list[index].Parent() != rootValue {
				continue
			}

			// Disallow additional root node(s).
			if !t.IsEmpty() {
				err = ErrMultipleRootNodes
				return
			}
			id := b.list[index].Value()
			t.root, cache[id] = NewNode(id), struct{}{}

			rootIndex = index
		}
		if t.IsEmpty() {
			err = ErrMissingRootNode
			return
		}

		// Remove the root node from the build source.
		prevLen := b.Len()
		if b.debug {
			b.logger.Debugf("source: %+v\n", *b)
		}
		b.Cut(rootIndex)
		if b.debug {
			b.logger.Debugf("source (without root): %+v\n", *b)
		}

		for {
			lenSrc := b.Len()
			if lenSrc < 1 {
				return
			}

			if lenSrc == prevLen {
				err = fmt.Errorf("%w for: %s", ErrLocateParents, spew.Sprint(b))
				return
			}
			prevLen = lenSrc

			for index := 0; index < lenSrc; index++ {
				node := b.list[index]
				parentID := node.Parent()

				// Parent not in tree.
				if _, ok := cache[parentID]; !ok {
					continue
				}

				// The cache membership check above guarantees the parent
				// resolves; Add locates it and appends the leaf.
				childID := node.Value()
				if err = t.Add(ctx, childID, parentID); err != nil {
					return
				}
				cache[childID] = struct{}{}

				// Remove added node from the build source.
				b.Cut(index)

				// Allow for unordered BuildSources.
				//
				// Adds extraneous opcodes compared to the ordered BuildSource's operation.
				if !b.isOrdered {
					break
				}

				index--
				lenSrc--
			}
		}
	}
}
