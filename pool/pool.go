// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

// Package pool implements a reusable append buffer that hands out owned
// slices carved from an internal growable region.
package pool

import (
	"unsafe"

	"go4.org/mem"
)

// An Appender accumulates values of type T and hands out owned slices of
// the accumulated tail on demand.  Appends are amortized O(1), and a
// slice returned by Extract is never invalidated by later appends.
//
// The zero value is ready for use.  An Appender must not be copied after
// first use.
type Appender[T any] struct {
	buf  []T
	base int // start of the pending (not yet extracted) tail
}

// minRegion returns the minimum region size in elements.
func (a *Appender[T]) minRegion() int {
	var zero T
	n := 65536 / int(unsafe.Sizeof(zero))
	if n < 100 {
		n = 100
	}
	return n
}

// reserve ensures space for n more elements.  While nothing has been
// extracted the region grows in place by doubling; afterwards a fresh
// region is allocated and the pending tail moved, so that every slice
// previously returned by Extract keeps its storage.
func (a *Appender[T]) reserve(n int) {
	if len(a.buf)+n <= cap(a.buf) {
		return
	}
	chunk := a.minRegion()
	if a.base == 0 {
		size := max(chunk, 2*cap(a.buf), len(a.buf)+n)
		grown := make([]T, len(a.buf), size)
		copy(grown, a.buf)
		a.buf = grown
		return
	}
	live := len(a.buf) - a.base
	size := (live + n + chunk - 1) / chunk * chunk
	fresh := make([]T, live, size)
	copy(fresh, a.buf[a.base:])
	a.buf = fresh
	a.base = 0
}

// Put appends a single value to the pending tail.
func (a *Appender[T]) Put(v T) {
	a.reserve(1)
	a.buf = append(a.buf, v)
}

// PutSlice appends the contents of vs to the pending tail.
func (a *Appender[T]) PutSlice(vs []T) {
	a.reserve(len(vs))
	a.buf = append(a.buf, vs...)
}

// Extract returns the pending tail as an owned slice and starts a new
// empty tail.  The returned slice remains valid for the life of the
// program; later appends go into fresh space.  Extract returns nil if
// the tail is empty.
func (a *Appender[T]) Extract() []T {
	if a.base == len(a.buf) {
		return nil
	}
	out := a.buf[a.base:len(a.buf):len(a.buf)]
	a.base = len(a.buf)
	return out
}

// Len reports the number of pending elements.
func (a *Appender[T]) Len() int { return len(a.buf) - a.base }

// ExtractString returns the pending tail of a as a string and rewinds the
// tail, reusing its space for the next append.  Unlike Extract this does
// not retire the region: the string is already an independent copy.
func ExtractString(a *Appender[byte]) string {
	s := string(a.buf[a.base:])
	a.buf = a.buf[:a.base]
	return s
}

// AppendRO appends the contents of the read-only memory view src to the
// pending tail of a.
func AppendRO(a *Appender[byte], src mem.RO) {
	a.reserve(src.Len())
	a.buf = mem.Append(a.buf, src)
}
