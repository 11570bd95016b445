// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2016 Datadog, Inc.

package tracer

import (
	"sync"

	"github.com/petermattis/goid"

	"github.com/tracelayer/tracelayer/ddtrace"
)

// currentStore is a process-wide registry of per-goroutine "current"
// trace contexts. It is the closest Go analogue of a thread-confined
// cell: goroutines, not OS threads, are the unit of execution the
// library can actually key off, and a goroutine that spawns a child does
// not share its slot with it, matching the confinement invariant.
type currentStore struct {
	mu    sync.Mutex
	cells map[int64]ddtrace.TraceContext
	set   map[int64]bool
}

func newCurrentStore() *currentStore {
	return &currentStore{
		cells: make(map[int64]ddtrace.TraceContext),
		set:   make(map[int64]bool),
	}
}

// Guard restores the cell's previous value when released. Guards are
// confined to the goroutine that created them: releasing one from a
// different goroutine than its creator is a misuse the library does not
// attempt to detect.
type Guard struct {
	store    *currentStore
	gid      int64
	prev     ddtrace.TraceContext
	prevSet  bool
	released bool
}

// SetCurrent replaces the calling goroutine's current context, returning
// a Guard that restores the previous value on Release.
func (s *currentStore) SetCurrent(ctx ddtrace.TraceContext) *Guard {
	gid := goid.Get()
	s.mu.Lock()
	prev, prevSet := s.cells[gid], s.set[gid]
	s.cells[gid] = ctx
	s.set[gid] = true
	s.mu.Unlock()
	return &Guard{store: s, gid: gid, prev: prev, prevSet: prevSet}
}

// Current returns the calling goroutine's current context, if any.
func (s *currentStore) Current() (ddtrace.TraceContext, bool) {
	gid := goid.Get()
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cells[gid], s.set[gid]
}

// Release restores the cell to the value captured when the guard was
// created. It is idempotent: releasing twice only restores once.
//
// Guard disposal is assumed LIFO-nested; this restores unconditionally
// from the saved value rather than checking that the cell still holds
// what this guard last set — a blind restore can never leave the cell in
// a state no guard ever produced, whereas a compare-and-restore can wedge
// the cell on the misused inner guard's value forever if the outer guard
// released first.
func (g *Guard) Release() {
	if g.released {
		return
	}
	g.released = true
	g.store.mu.Lock()
	defer g.store.mu.Unlock()
	if g.prevSet {
		g.store.cells[g.gid] = g.prev
		g.store.set[g.gid] = true
	} else {
		delete(g.store.cells, g.gid)
		delete(g.store.set, g.gid)
	}
}
