// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package pool_test

import (
	"testing"

	"github.com/creachadair/sdlite/pool"
	"github.com/google/go-cmp/cmp"
	"go4.org/mem"
)

func TestAppender(t *testing.T) {
	var a pool.Appender[int]

	if got := a.Extract(); got != nil {
		t.Errorf("Extract of empty appender: got %v, want nil", got)
	}

	a.Put(1)
	a.Put(2)
	a.PutSlice([]int{3, 4, 5})
	if got := a.Len(); got != 5 {
		t.Errorf("Len: got %d, want 5", got)
	}

	first := a.Extract()
	if diff := cmp.Diff([]int{1, 2, 3, 4, 5}, first); diff != "" {
		t.Errorf("First extract: (-want, +got)\n%s", diff)
	}
	if got := a.Len(); got != 0 {
		t.Errorf("Len after extract: got %d, want 0", got)
	}

	a.Put(6)
	second := a.Extract()
	if diff := cmp.Diff([]int{6}, second); diff != "" {
		t.Errorf("Second extract: (-want, +got)\n%s", diff)
	}
	if diff := cmp.Diff([]int{1, 2, 3, 4, 5}, first); diff != "" {
		t.Errorf("First extract after reuse: (-want, +got)\n%s", diff)
	}
}

// Slices handed out by Extract must survive arbitrary later growth.
func TestAppenderGrowth(t *testing.T) {
	var a pool.Appender[int]

	var extracted [][]int
	for i := 0; i < 100; i++ {
		for j := 0; j < i+1; j++ {
			a.Put(100*i + j)
		}
		extracted = append(extracted, a.Extract())
	}
	for i, got := range extracted {
		want := make([]int, i+1)
		for j := range want {
			want[j] = 100*i + j
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("Extract %d: (-want, +got)\n%s", i, diff)
		}
	}
}

// A pending tail must move intact when growth forces a fresh region.
func TestAppenderTailMove(t *testing.T) {
	var a pool.Appender[byte]

	a.PutSlice([]byte("keep me"))
	kept := a.Extract()

	// Force the region to turn over while a tail is pending.
	a.PutSlice([]byte("pending-"))
	big := make([]byte, 200000)
	for i := range big {
		big[i] = byte('a' + i%26)
	}
	a.PutSlice(big)

	got := a.Extract()
	if len(got) != len("pending-")+len(big) {
		t.Fatalf("Extract length: got %d, want %d", len(got), len("pending-")+len(big))
	}
	if string(got[:8]) != "pending-" {
		t.Errorf("Tail prefix: got %q, want \"pending-\"", got[:8])
	}
	if string(kept) != "keep me" {
		t.Errorf("Prior extract: got %q, want \"keep me\"", kept)
	}
}

func TestExtractString(t *testing.T) {
	var a pool.Appender[byte]

	a.PutSlice([]byte("hello"))
	if got := pool.ExtractString(&a); got != "hello" {
		t.Errorf("ExtractString: got %q, want \"hello\"", got)
	}
	if got := a.Len(); got != 0 {
		t.Errorf("Len after ExtractString: got %d, want 0", got)
	}

	// The rewound space is reused without disturbing the result.
	a.PutSlice([]byte("world"))
	if got := pool.ExtractString(&a); got != "world" {
		t.Errorf("Second ExtractString: got %q, want \"world\"", got)
	}
}

func TestAppendRO(t *testing.T) {
	var a pool.Appender[byte]

	pool.AppendRO(&a, mem.S("read"))
	pool.AppendRO(&a, mem.S("only"))
	if got := pool.ExtractString(&a); got != "readonly" {
		t.Errorf("ExtractString: got %q, want \"readonly\"", got)
	}
}
