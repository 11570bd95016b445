// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2016 Datadog, Inc.

package tracer

import (
	"math/rand"
	"sync"
	"time"

	"github.com/petermattis/goid"

	"github.com/tracelayer/tracelayer/ddtrace"
)

// idgen hands out 64-bit identifiers from a per-goroutine math/rand
// source. Ids need only be cryptographically unseeded and reasonably
// uniform. Rather than sharing one *rand.Rand, each goroutine gets its
// own source the first time it asks, keyed by goroutine id exactly like
// the current-context store. Looking the source up takes g.mu on every
// draw; the draw itself runs on the goroutine's own source.
type idgen struct {
	mu      sync.Mutex
	sources map[int64]*rand.Rand
}

func newIDGen() *idgen {
	return &idgen{sources: make(map[int64]*rand.Rand)}
}

func (g *idgen) sourceFor(gid int64) *rand.Rand {
	g.mu.Lock()
	defer g.mu.Unlock()
	r, ok := g.sources[gid]
	if !ok {
		r = rand.New(rand.NewSource(time.Now().UnixNano() ^ gid))
		g.sources[gid] = r
	}
	return r
}

// NextSpanID draws a new non-zero span id.
func (g *idgen) NextSpanID() ddtrace.SpanID {
	r := g.sourceFor(goid.Get())
	for {
		if v := r.Uint64(); v != 0 {
			return ddtrace.SpanID(v)
		}
	}
}

// NextTraceID draws a new non-zero 8-byte trace id.
func (g *idgen) NextTraceID() ddtrace.TraceID {
	r := g.sourceFor(goid.Get())
	for {
		if v := r.Uint64(); v != 0 {
			return ddtrace.NewTraceID64(v)
		}
	}
}
