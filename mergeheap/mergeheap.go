/*
Copyright 2025 The stlite-go Authors. All rights reserved.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package mergeheap

import (
	"cmp"
	"errors"

	"github.com/bojuzhang/stlite-go/metrics"
)

var ErrIllegalArguments = errors.New("illegal arguments")
var ErrEmptyContainer = errors.New("empty container")

// Comparator reports whether a orders before b under a strict weak
// ordering. A comparison may fail for certain pairs; a failing
// comparison aborts the surrounding operation and the error is returned
// to the caller verbatim, with the heap left as it was.
type Comparator[T any] func(a, b T) (bool, error)

// NaturalLess orders values by <, making the heap a max-priority-queue.
func NaturalLess[T cmp.Ordered]() Comparator[T] {
	return func(a, b T) (bool, error) {
		return a < b, nil
	}
}

type node[T any] struct {
	val   T
	left  *node[T]
	right *node[T]
}

// Heap is a mergeable priority queue backed by a leftist-style binary
// heap. Every node is owned by exactly one heap; Merge transfers the
// donor's whole tree without copying. Operations that compare elements
// run every comparison before mutating any link, so a failing
// comparator never leaves a heap partially relinked.
//
// Not safe for concurrent use.
type Heap[T any] struct {
	root *node[T]
	n    int

	less Comparator[T]

	metrics metrics.HeapMetrics
}

// New builds an empty heap from opts. The comparator is mandatory.
func New[T any](opts *Options[T]) (*Heap[T], error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	m := opts.metrics
	if m == nil {
		m = metrics.NewNopHeapMetrics()
	}

	return &Heap[T]{
		less:    opts.comparator,
		metrics: m,
	}, nil
}

// NewOrdered builds an empty heap over the natural < ordering of T, so
// Top yields the maximum element.
func NewOrdered[T cmp.Ordered]() *Heap[T] {
	h, _ := New(DefaultOptions[T]().WithComparator(NaturalLess[T]()))
	return h
}

func (h *Heap[T]) Len() int {
	return h.n
}

func (h *Heap[T]) IsEmpty() bool {
	return h.n == 0
}

// Top returns the extremal element without removing it. No comparison
// is performed.
func (h *Heap[T]) Top() (T, error) {
	if h.root == nil {
		var zero T
		return zero, ErrEmptyContainer
	}

	return h.root.val, nil
}

// Push inserts v into the heap.
func (h *Heap[T]) Push(v T) error {
	nd := &node[T]{val: v}

	plan, err := h.planMerge(h.root, nd)
	if err != nil {
		h.metrics.IncComparatorFailures()
		return err
	}

	h.root = applyMerge(h.root, nd, plan)
	h.n++

	h.metrics.IncPushes()
	h.metrics.SetEntries(h.n)

	return nil
}

// Pop removes and returns the extremal element. The merge of the two
// child subtrees is planned in full before the root is unlinked, so a
// failing comparator leaves the heap exactly as it was.
func (h *Heap[T]) Pop() (T, error) {
	var zero T

	if h.root == nil {
		return zero, ErrEmptyContainer
	}

	plan, err := h.planMerge(h.root.left, h.root.right)
	if err != nil {
		h.metrics.IncComparatorFailures()
		return zero, err
	}

	top := h.root.val
	h.root = applyMerge(h.root.left, h.root.right, plan)
	h.n--

	h.metrics.IncPops()
	h.metrics.SetEntries(h.n)

	return top, nil
}

// Merge absorbs the whole content of other with a single structural
// merge, leaving other empty. Merging a heap into itself is a no-op.
// Both heaps must have been built over the same ordering. If the
// comparator fails, neither heap is modified.
func (h *Heap[T]) Merge(other *Heap[T]) error {
	if other == nil {
		return ErrIllegalArguments
	}

	if h == other {
		return nil
	}

	plan, err := h.planMerge(h.root, other.root)
	if err != nil {
		h.metrics.IncComparatorFailures()
		return err
	}

	h.root = applyMerge(h.root, other.root, plan)
	h.n += other.n

	other.root = nil
	other.n = 0

	h.metrics.IncMerges()
	h.metrics.SetEntries(h.n)

	return nil
}

// Clone returns a deep copy sharing no nodes with h. The copy reuses
// the comparator and the metrics collector of the original.
func (h *Heap[T]) Clone() *Heap[T] {
	return &Heap[T]{
		root:    cloneNode(h.root),
		n:       h.n,
		less:    h.less,
		metrics: h.metrics,
	}
}

// Clear drops every element.
func (h *Heap[T]) Clear() {
	h.root = nil
	h.n = 0

	h.metrics.SetEntries(0)
}

// planMerge walks the node pairs the structural merge of x and y will
// visit and runs every comparison up front, recording at each level
// whether the first tree loses. Neither tree is touched, so a failing
// comparison aborts with both trees intact.
func (h *Heap[T]) planMerge(x, y *node[T]) ([]bool, error) {
	if x == nil || y == nil {
		return nil, nil
	}

	plan := make([]bool, 0, 16)

	for x != nil && y != nil {
		xLoses, err := h.less(x.val, y.val)
		if err != nil {
			return nil, err
		}

		if xLoses {
			x, y = y, x
		}
		plan = append(plan, xLoses)

		// next pair: the winner's displaced right subtree vs the loser
		x = x.right
	}

	return plan, nil
}

// applyMerge relinks the two trees following a recorded plan. It runs
// no comparisons and cannot fail. The winner keeps its root: its former
// right subtree is merged with the loser and attached on the left,
// while its former left subtree moves to the right slot.
func applyMerge[T any](x, y *node[T], plan []bool) *node[T] {
	if x == nil {
		return y
	}
	if y == nil {
		return x
	}

	if plan[0] {
		x, y = y, x
	}

	x.left, x.right = applyMerge(x.right, y, plan[1:]), x.left

	return x
}

func cloneNode[T any](nd *node[T]) *node[T] {
	if nd == nil {
		return nil
	}

	return &node[T]{
		val:   nd.val,
		left:  cloneNode(nd.left),
		right: cloneNode(nd.right),
	}
}
