// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2016 Datadog, Inc.

package tracer

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tracelayer/tracelayer/ddtrace"
)

func TestCurrentStoreSetAndRelease(t *testing.T) {
	s := newCurrentStore()

	_, ok := s.Current()
	assert.False(t, ok, "nothing installed yet")

	ctx := ddtrace.NewRootContext(ddtrace.NewTraceID64(1), ddtrace.SpanID(1), ddtrace.DefaultSamplingFlags)
	guard := s.SetCurrent(ctx)

	got, ok := s.Current()
	assert.True(t, ok)
	assert.Equal(t, ctx, got)

	guard.Release()
	_, ok = s.Current()
	assert.False(t, ok, "releasing the only guard restores the empty cell")
}

func TestCurrentStoreNestedLIFO(t *testing.T) {
	s := newCurrentStore()

	outer := ddtrace.NewRootContext(ddtrace.NewTraceID64(1), ddtrace.SpanID(1), ddtrace.DefaultSamplingFlags)
	outerGuard := s.SetCurrent(outer)

	inner := ddtrace.NewChildContext(outer, ddtrace.SpanID(2))
	innerGuard := s.SetCurrent(inner)

	got, _ := s.Current()
	assert.Equal(t, inner, got)

	innerGuard.Release()
	got, ok := s.Current()
	assert.True(t, ok)
	assert.Equal(t, outer, got, "releasing the inner guard restores the outer context")

	outerGuard.Release()
	_, ok = s.Current()
	assert.False(t, ok)
}

func TestCurrentStoreReleaseIsIdempotent(t *testing.T) {
	s := newCurrentStore()
	ctx := ddtrace.NewRootContext(ddtrace.NewTraceID64(1), ddtrace.SpanID(1), ddtrace.DefaultSamplingFlags)
	guard := s.SetCurrent(ctx)

	guard.Release()
	assert.NotPanics(t, func() { guard.Release() })

	_, ok := s.Current()
	assert.False(t, ok)
}

func TestCurrentStoreIsGoroutineConfined(t *testing.T) {
	s := newCurrentStore()
	ctx := ddtrace.NewRootContext(ddtrace.NewTraceID64(1), ddtrace.SpanID(1), ddtrace.DefaultSamplingFlags)
	s.SetCurrent(ctx)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, ok := s.Current()
		assert.False(t, ok, "a fresh goroutine has no current context of its own")
	}()
	wg.Wait()
}
