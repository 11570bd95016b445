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

func newTestTracer(reporter ddtrace.Reporter) *Tracer {
	opts := []StartOption{WithSampler(AlwaysSample), WithService("test-svc")}
	if reporter != nil {
		opts = append(opts, WithReporter(reporter))
	}
	return NewTracer(opts...)
}

func TestRootChildGrandchildLifecycle(t *testing.T) {
	rec := NewSpanRecorder()
	tr := newTestTracer(rec)

	root := tr.NewTrace()
	root.SetName("handle-request").SetKind(ddtrace.Server)

	child := tr.NextSpan()
	child.SetName("call-downstream").SetKind(ddtrace.Client)

	grandchild := tr.NextSpan()
	grandchild.SetName("decode")

	assert.Equal(t, child.Context().TraceID, grandchild.Context().TraceID)
	parent, ok := grandchild.Context().Parent()
	assert.True(t, ok)
	assert.Equal(t, child.Context().SpanID, parent)

	grandchild.Finish()
	child.Finish()
	root.Finish()

	spans := rec.Spans()
	assert.Len(t, spans, 3)
	_, ok = tr.Current()
	assert.False(t, ok, "finishing the root releases the goroutine's current context entirely")
}

func TestFinishIsIdempotent(t *testing.T) {
	rec := NewSpanRecorder()
	tr := newTestTracer(rec)

	s := tr.NewTrace()
	s.Finish()
	s.Finish()

	assert.Len(t, rec.Spans(), 1, "a double Finish must not report twice")
}

func TestDetachAttachAcrossGoroutines(t *testing.T) {
	rec := NewSpanRecorder()
	tr := newTestTracer(rec)

	parent := tr.NewTrace()
	parent.SetName("dispatch")
	detached := parent.Detach()

	_, ok := tr.Current()
	assert.False(t, ok, "Detach releases the creating goroutine's current context")

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		attached := detached.Attach()
		got, ok := tr.Current()
		assert.True(t, ok)
		assert.Equal(t, attached.Context(), got)
		attached.Finish()
	}()
	wg.Wait()

	assert.Len(t, rec.Spans(), 1)
}

func TestSampledOutSpanBuildsNoRecord(t *testing.T) {
	rec := NewSpanRecorder()
	tr := newTestTracer(nil)
	tr.sampler = NeverSample
	tr.reporter = rec

	s := tr.NewTrace()
	s.SetName("dropped").Tag("k", "v")
	s.Finish()

	assert.Empty(t, rec.Spans(), "a span sampled out never reaches the reporter")
}

func TestJoinTraceMarksShared(t *testing.T) {
	rec := NewSpanRecorder()
	tr := newTestTracer(rec)

	peer := ddtrace.NewRootContext(ddtrace.NewTraceID64(7), ddtrace.SpanID(8), ddtrace.DefaultSamplingFlags.WithSampled(ddtrace.SampledYes))
	s := tr.JoinTrace(peer)
	s.Finish()

	spans := rec.Spans()
	assert.Len(t, spans, 1)
	assert.True(t, spans[0].Shared)
}

func TestJoinTraceWithUndecidedFlagsIsNotShared(t *testing.T) {
	rec := NewSpanRecorder()
	tr := newTestTracer(rec)

	peer := ddtrace.NewRootContext(ddtrace.NewTraceID64(7), ddtrace.SpanID(8), ddtrace.DefaultSamplingFlags)
	s := tr.JoinTrace(peer)
	s.Finish()

	spans := rec.Spans()
	assert.Len(t, spans, 1)
	assert.False(t, spans[0].Shared, "an undecided peer cannot be assumed to be timing this span too")
}

func TestGlobalTagsAppliedToEverySpan(t *testing.T) {
	rec := NewSpanRecorder()
	tr := NewTracer(WithSampler(AlwaysSample), WithReporter(rec), WithGlobalTag("env", "test"))

	s := tr.NewTrace()
	s.Finish()

	spans := rec.Spans()
	assert.Len(t, spans, 1)
	assert.Equal(t, "test", spans[0].Tags["env"])
}
