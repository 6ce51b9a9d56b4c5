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
package vector

import "errors"

var ErrIllegalArguments = errors.New("illegal arguments")
var ErrIndexOutOfRange = errors.New("index out of range")
var ErrEmptyContainer = errors.New("empty container")

const minCapacity = 4

// Vector is a contiguous growable sequence with bounds-checked access
// and geometric growth. Not safe for concurrent use.
type Vector[T any] struct {
	data []T
	n    int
}

func New[T any](capacity int) (*Vector[T], error) {
	if capacity < 0 {
		return nil, ErrIllegalArguments
	}

	if capacity < minCapacity {
		capacity = minCapacity
	}

	return &Vector[T]{
		data: make([]T, capacity),
	}, nil
}

func (v *Vector[T]) Len() int {
	return v.n
}

func (v *Vector[T]) Cap() int {
	return len(v.data)
}

func (v *Vector[T]) IsEmpty() bool {
	return v.n == 0
}

func (v *Vector[T]) Append(x T) {
	v.resize(v.n + 1)

	v.data[v.n] = x
	v.n++
}

func (v *Vector[T]) Get(i int) (T, error) {
	if i < 0 || i >= v.n {
		var zero T
		return zero, ErrIndexOutOfRange
	}

	return v.data[i], nil
}

func (v *Vector[T]) Set(i int, x T) error {
	if i < 0 || i >= v.n {
		return ErrIndexOutOfRange
	}

	v.data[i] = x

	return nil
}

// Insert places x at position i, shifting the tail one slot to the
// right. i == Len() appends.
func (v *Vector[T]) Insert(i int, x T) error {
	if i < 0 || i > v.n {
		return ErrIndexOutOfRange
	}

	v.resize(v.n + 1)

	copy(v.data[i+1:v.n+1], v.data[i:v.n])
	v.data[i] = x
	v.n++

	return nil
}

// Remove deletes and returns the element at position i, shifting the
// tail one slot to the left.
func (v *Vector[T]) Remove(i int) (T, error) {
	var zero T

	if v.n == 0 {
		return zero, ErrEmptyContainer
	}

	if i < 0 || i >= v.n {
		return zero, ErrIndexOutOfRange
	}

	x := v.data[i]

	copy(v.data[i:v.n-1], v.data[i+1:v.n])
	v.data[v.n-1] = zero
	v.n--

	return x, nil
}

func (v *Vector[T]) Back() (T, error) {
	if v.n == 0 {
		var zero T
		return zero, ErrEmptyContainer
	}

	return v.data[v.n-1], nil
}

func (v *Vector[T]) PopBack() (T, error) {
	return v.Remove(v.n - 1)
}

func (v *Vector[T]) Clear() {
	var zero T

	for i := 0; i < v.n; i++ {
		v.data[i] = zero
	}

	v.n = 0
}

// Clone returns a deep copy sharing no storage with v.
func (v *Vector[T]) Clone() *Vector[T] {
	data := make([]T, len(v.data))
	copy(data, v.data[:v.n])

	return &Vector[T]{
		data: data,
		n:    v.n,
	}
}

// Apply calls fun on every element in positional order, stopping at the
// first error.
func (v *Vector[T]) Apply(fun func(i int, x T) error) error {
	for i := 0; i < v.n; i++ {
		if err := fun(i, v.data[i]); err != nil {
			return err
		}
	}

	return nil
}

func (v *Vector[T]) resize(need int) {
	if need <= len(v.data) {
		return
	}

	newCap := 2 * len(v.data)
	if newCap < minCapacity {
		newCap = minCapacity
	}
	for newCap < need {
		newCap *= 2
	}

	newData := make([]T, newCap)
	copy(newData, v.data[:v.n])

	v.data = newData
}
