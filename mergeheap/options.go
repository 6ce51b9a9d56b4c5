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
	"fmt"

	"github.com/bojuzhang/stlite-go/metrics"
)

var ErrInvalidOptions = errors.New("invalid options")

type Options[T any] struct {
	comparator Comparator[T]

	metrics metrics.HeapMetrics
}

func DefaultOptions[T any]() *Options[T] {
	return &Options[T]{}
}

func (opts *Options[T]) Validate() error {
	if opts == nil {
		return fmt.Errorf("%w: nil options", ErrInvalidOptions)
	}

	if opts.comparator == nil {
		return fmt.Errorf("%w: nil comparator", ErrInvalidOptions)
	}

	return nil
}

func (opts *Options[T]) WithComparator(comparator Comparator[T]) *Options[T] {
	opts.comparator = comparator
	return opts
}

func (opts *Options[T]) WithMetrics(m metrics.HeapMetrics) *Options[T] {
	opts.metrics = m
	return opts
}
