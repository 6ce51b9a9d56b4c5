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
	"errors"
	"math/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/require"
)

var errComparisonFailed = errors.New("comparison failed")

// switchableComparator orders ints by < until failing is set.
type switchableComparator struct {
	failing bool
}

func (c *switchableComparator) less(a, b int) (bool, error) {
	if c.failing {
		return false, errComparisonFailed
	}
	return a < b, nil
}

func newIntHeap(t *testing.T) *Heap[int] {
	h, err := New(DefaultOptions[int]().WithComparator(NaturalLess[int]()))
	require.NoError(t, err)
	return h
}

func drain(t *testing.T, h *Heap[int]) []int {
	vs := make([]int, 0, h.Len())

	for !h.IsEmpty() {
		v, err := h.Pop()
		require.NoError(t, err)
		vs = append(vs, v)
	}

	_, err := h.Pop()
	require.ErrorIs(t, err, ErrEmptyContainer)

	return vs
}

func TestHeapCreation(t *testing.T) {
	_, err := New[int](nil)
	require.ErrorIs(t, err, ErrInvalidOptions)

	_, err = New(DefaultOptions[int]())
	require.ErrorIs(t, err, ErrInvalidOptions)

	h := newIntHeap(t)
	require.NotNil(t, h)
	require.True(t, h.IsEmpty())
	require.Zero(t, h.Len())

	_, err = h.Top()
	require.ErrorIs(t, err, ErrEmptyContainer)

	_, err = h.Pop()
	require.ErrorIs(t, err, ErrEmptyContainer)
}

func TestPushPopMergeScenario(t *testing.T) {
	h := newIntHeap(t)

	for _, v := range []int{5, 3, 8, 1} {
		require.NoError(t, h.Push(v))
	}
	require.Equal(t, 4, h.Len())

	top, err := h.Top()
	require.NoError(t, err)
	require.Equal(t, 8, top)

	v, err := h.Pop()
	require.NoError(t, err)
	require.Equal(t, 8, v)

	top, err = h.Top()
	require.NoError(t, err)
	require.Equal(t, 5, top)

	h2 := newIntHeap(t)
	require.NoError(t, h2.Push(10))
	require.NoError(t, h2.Push(20))

	err = h2.Merge(h)
	require.NoError(t, err)

	require.Equal(t, 5, h2.Len())
	require.True(t, h.IsEmpty())
	require.Zero(t, h.Len())

	top, err = h2.Top()
	require.NoError(t, err)
	require.Equal(t, 20, top)

	_, err = h.Pop()
	require.ErrorIs(t, err, ErrEmptyContainer)
}

func TestHeapOrderInvariant(t *testing.T) {
	h := newIntHeap(t)

	n := 1_000
	expected := make([]int, n)

	for i := 0; i < n; i++ {
		expected[i] = rand.Intn(100)
		require.NoError(t, h.Push(expected[i]))
	}
	require.Equal(t, n, h.Len())

	sort.Sort(sort.Reverse(sort.IntSlice(expected)))

	require.Equal(t, expected, drain(t, h))
}

func TestInterleavedPushPop(t *testing.T) {
	h := newIntHeap(t)

	pushed := 0
	popped := 0

	for i := 0; i < 10_000; i++ {
		if rand.Intn(3) > 0 || h.IsEmpty() {
			require.NoError(t, h.Push(rand.Intn(1_000)))
			pushed++
			continue
		}

		top, err := h.Top()
		require.NoError(t, err)

		v, err := h.Pop()
		require.NoError(t, err)
		require.Equal(t, top, v)

		if !h.IsEmpty() {
			next, err := h.Top()
			require.NoError(t, err)
			require.LessOrEqual(t, next, v)
		}

		popped++
	}

	require.Equal(t, pushed-popped, h.Len())
}

func TestMergeDrainsSource(t *testing.T) {
	h1 := newIntHeap(t)
	h2 := newIntHeap(t)

	m := 100 + rand.Intn(100)
	n := 100 + rand.Intn(100)

	all := make([]int, 0, m+n)

	for i := 0; i < m; i++ {
		v := rand.Intn(1_000)
		require.NoError(t, h1.Push(v))
		all = append(all, v)
	}

	for i := 0; i < n; i++ {
		v := rand.Intn(1_000)
		require.NoError(t, h2.Push(v))
		all = append(all, v)
	}

	require.NoError(t, h1.Merge(h2))

	require.Equal(t, m+n, h1.Len())
	require.True(t, h2.IsEmpty())
	require.Zero(t, h2.Len())

	_, err := h2.Pop()
	require.ErrorIs(t, err, ErrEmptyContainer)

	sort.Sort(sort.Reverse(sort.IntSlice(all)))
	require.Equal(t, all, drain(t, h1))
}

func TestSelfMergeIsNoOp(t *testing.T) {
	h := newIntHeap(t)

	for _, v := range []int{7, 11, 2} {
		require.NoError(t, h.Push(v))
	}

	require.NoError(t, h.Merge(h))

	require.Equal(t, 3, h.Len())

	top, err := h.Top()
	require.NoError(t, err)
	require.Equal(t, 11, top)

	require.Equal(t, []int{11, 7, 2}, drain(t, h))
}

func TestMergeNilHeap(t *testing.T) {
	h := newIntHeap(t)
	require.ErrorIs(t, h.Merge(nil), ErrIllegalArguments)
}

func TestMergeWithEmptySides(t *testing.T) {
	// an always-failing comparator proves no comparison runs when
	// either side is empty
	cmp := &switchableComparator{failing: true}

	newHeap := func() *Heap[int] {
		h, err := New(DefaultOptions[int]().WithComparator(cmp.less))
		require.NoError(t, err)
		return h
	}

	empty1 := newHeap()
	empty2 := newHeap()
	require.NoError(t, empty1.Merge(empty2))
	require.True(t, empty1.IsEmpty())

	cmp.failing = false

	full := newHeap()
	require.NoError(t, full.Push(1))
	require.NoError(t, full.Push(2))

	cmp.failing = true

	donor := newHeap()
	require.NoError(t, full.Merge(donor))
	require.Equal(t, 2, full.Len())

	receiver := newHeap()
	require.NoError(t, receiver.Merge(full))
	require.Equal(t, 2, receiver.Len())
	require.True(t, full.IsEmpty())

	cmp.failing = false
	require.Equal(t, []int{2, 1}, drain(t, receiver))
}

func TestCloneIndependence(t *testing.T) {
	h := newIntHeap(t)

	for _, v := range []int{4, 9, 6, 1} {
		require.NoError(t, h.Push(v))
	}

	c := h.Clone()
	require.Equal(t, h.Len(), c.Len())

	v, err := c.Pop()
	require.NoError(t, err)
	require.Equal(t, 9, v)
	require.Equal(t, 3, c.Len())
	require.Equal(t, 4, h.Len())

	top, err := h.Top()
	require.NoError(t, err)
	require.Equal(t, 9, top)

	require.NoError(t, h.Push(100))
	require.Equal(t, 5, h.Len())
	require.Equal(t, 3, c.Len())

	require.Equal(t, []int{100, 9, 6, 4, 1}, drain(t, h))
	require.Equal(t, []int{6, 4, 1}, drain(t, c))
}

func TestCloneEmptyHeap(t *testing.T) {
	h := newIntHeap(t)

	c := h.Clone()
	require.True(t, c.IsEmpty())

	require.NoError(t, c.Push(1))
	require.True(t, h.IsEmpty())
	require.Equal(t, 1, c.Len())
}

func TestPushAtomicity(t *testing.T) {
	cmp := &switchableComparator{}

	h, err := New(DefaultOptions[int]().WithComparator(cmp.less))
	require.NoError(t, err)

	for _, v := range []int{5, 3, 8} {
		require.NoError(t, h.Push(v))
	}

	cmp.failing = true

	err = h.Push(42)
	require.ErrorIs(t, err, errComparisonFailed)

	require.Equal(t, 3, h.Len())

	top, err := h.Top()
	require.NoError(t, err)
	require.Equal(t, 8, top)

	cmp.failing = false

	require.Equal(t, []int{8, 5, 3}, drain(t, h))
}

func TestPopAtomicity(t *testing.T) {
	cmp := &switchableComparator{}

	h, err := New(DefaultOptions[int]().WithComparator(cmp.less))
	require.NoError(t, err)

	// descending pushes leave the root with two children, so the
	// post-removal merge must actually compare
	for _, v := range []int{3, 2, 1} {
		require.NoError(t, h.Push(v))
	}

	cmp.failing = true

	_, err = h.Pop()
	require.ErrorIs(t, err, errComparisonFailed)

	require.Equal(t, 3, h.Len())

	top, err := h.Top()
	require.NoError(t, err)
	require.Equal(t, 3, top)

	cmp.failing = false

	require.Equal(t, []int{3, 2, 1}, drain(t, h))
}

func TestMergeAtomicity(t *testing.T) {
	cmp := &switchableComparator{}

	newHeap := func(vs ...int) *Heap[int] {
		h, err := New(DefaultOptions[int]().WithComparator(cmp.less))
		require.NoError(t, err)
		for _, v := range vs {
			require.NoError(t, h.Push(v))
		}
		return h
	}

	h1 := newHeap(5, 3, 8, 1)
	h2 := newHeap(10, 20)

	cmp.failing = true

	err := h1.Merge(h2)
	require.ErrorIs(t, err, errComparisonFailed)

	require.Equal(t, 4, h1.Len())
	require.Equal(t, 2, h2.Len())

	top, err := h1.Top()
	require.NoError(t, err)
	require.Equal(t, 8, top)

	top, err = h2.Top()
	require.NoError(t, err)
	require.Equal(t, 20, top)

	cmp.failing = false

	require.Equal(t, []int{8, 5, 3, 1}, drain(t, h1))
	require.Equal(t, []int{20, 10}, drain(t, h2))
}

func TestEqualPriorityElements(t *testing.T) {
	h := newIntHeap(t)

	require.NoError(t, h.Push(7))
	require.NoError(t, h.Push(7))
	require.NoError(t, h.Push(3))

	require.Equal(t, []int{7, 7, 3}, drain(t, h))
}

func TestCustomOrdering(t *testing.T) {
	// reversed comparator makes the heap a min-priority-queue
	h, err := New(DefaultOptions[int]().WithComparator(
		func(a, b int) (bool, error) {
			return a > b, nil
		},
	))
	require.NoError(t, err)

	for _, v := range []int{5, 3, 8, 1} {
		require.NoError(t, h.Push(v))
	}

	require.Equal(t, []int{1, 3, 5, 8}, drain(t, h))
}

func TestStructElements(t *testing.T) {
	type task struct {
		name     string
		priority int
	}

	h, err := New(DefaultOptions[task]().WithComparator(
		func(a, b task) (bool, error) {
			return a.priority < b.priority, nil
		},
	))
	require.NoError(t, err)

	require.NoError(t, h.Push(task{name: "low", priority: 1}))
	require.NoError(t, h.Push(task{name: "high", priority: 10}))
	require.NoError(t, h.Push(task{name: "mid", priority: 5}))

	v, err := h.Pop()
	require.NoError(t, err)
	require.Equal(t, "high", v.name)

	v, err = h.Pop()
	require.NoError(t, err)
	require.Equal(t, "mid", v.name)
}

func TestClear(t *testing.T) {
	h := newIntHeap(t)

	for i := 0; i < 10; i++ {
		require.NoError(t, h.Push(i))
	}

	h.Clear()

	require.True(t, h.IsEmpty())
	require.Zero(t, h.Len())

	_, err := h.Top()
	require.ErrorIs(t, err, ErrEmptyContainer)

	require.NoError(t, h.Push(1))
	require.Equal(t, 1, h.Len())
}

func TestNewOrdered(t *testing.T) {
	h := NewOrdered[string]()

	for _, s := range []string{"pear", "apple", "plum"} {
		require.NoError(t, h.Push(s))
	}

	top, err := h.Top()
	require.NoError(t, err)
	require.Equal(t, "plum", top)
}

func TestRandomizedMerges(t *testing.T) {
	heaps := make([]*Heap[int], 8)
	all := make([]int, 0, 8*50)

	for i := range heaps {
		heaps[i] = newIntHeap(t)

		for j := 0; j < 50; j++ {
			v := rand.Intn(10_000)
			require.NoError(t, heaps[i].Push(v))
			all = append(all, v)
		}
	}

	for len(heaps) > 1 {
		require.NoError(t, heaps[0].Merge(heaps[len(heaps)-1]))
		require.True(t, heaps[len(heaps)-1].IsEmpty())
		heaps = heaps[:len(heaps)-1]
	}

	require.Equal(t, len(all), heaps[0].Len())

	sort.Sort(sort.Reverse(sort.IntSlice(all)))
	require.Equal(t, all, drain(t, heaps[0]))
}
