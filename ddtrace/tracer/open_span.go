// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2016 Datadog, Inc.

package tracer

import (
	"time"

	"go.uber.org/atomic"

	"github.com/tracelayer/tracelayer/ddtrace"
)

// spanCore is the state shared between an OpenSpan and whichever
// DetachedSpan it converts into, across any number of attach/detach
// round trips. finalized guards against reporting the same span twice,
// independent of which handle disposal triggers it.
type spanCore struct {
	tracer    *Tracer
	ctx       ddtrace.TraceContext
	builder   *spanBuilder // nil for a no-op span (sampled out)
	finalized atomic.Bool
}

func (c *spanCore) setName(name string) {
	if c.builder != nil {
		c.builder.setName(name)
	}
}

func (c *spanCore) setKind(kind ddtrace.Kind) {
	if c.builder != nil {
		c.builder.setKind(kind)
	}
}

func (c *spanCore) setRemoteEndpoint(e ddtrace.Endpoint) {
	if c.builder != nil {
		c.builder.setRemoteEndpoint(e)
	}
}

func (c *spanCore) annotate(value string) {
	if c.builder != nil {
		c.builder.annotate(value)
	}
}

func (c *spanCore) tag(key, value string) {
	if c.builder != nil {
		c.builder.tag(key, value)
	}
}

func (c *spanCore) finalize() {
	if !c.finalized.CompareAndSwap(false, true) {
		return
	}
	if c.builder != nil {
		rec := c.builder.build(time.Now())
		c.tracer.reporter.Report(rec)
	}
}

// OpenSpan is an attached open span: it owns a current-context
// guard on the goroutine that created it, so child spans created on
// that same goroutine inherit its context. It is not safe to hand to
// another goroutine — Detach first.
type OpenSpan struct {
	core  *spanCore
	guard *Guard
}

// DetachedSpan is an open span with no current-context ties: safe to
// transfer across goroutines, and to bind to an asynchronous
// computation.
type DetachedSpan struct {
	core *spanCore
}

func newOpenSpan(t *Tracer, ctx ddtrace.TraceContext, builder *spanBuilder) *OpenSpan {
	core := &spanCore{tracer: t, ctx: ctx, builder: builder}
	return &OpenSpan{core: core, guard: t.current.SetCurrent(ctx)}
}

// Context returns the span's trace context.
func (s *OpenSpan) Context() ddtrace.TraceContext { return s.core.ctx }

// SetName sets the span's name, lowercased.
func (s *OpenSpan) SetName(name string) ddtrace.Span { s.core.setName(name); return s }

// SetKind sets the span's kind.
func (s *OpenSpan) SetKind(kind ddtrace.Kind) ddtrace.Span { s.core.setKind(kind); return s }

// SetRemoteEndpoint records the endpoint on the other side of the call.
func (s *OpenSpan) SetRemoteEndpoint(e ddtrace.Endpoint) ddtrace.Span {
	s.core.setRemoteEndpoint(e)
	return s
}

// Annotate records a timestamped event.
func (s *OpenSpan) Annotate(value string) ddtrace.Span { s.core.annotate(value); return s }

// Tag sets a key/value tag.
func (s *OpenSpan) Tag(key, value string) ddtrace.Span { s.core.tag(key, value); return s }

// Detach releases the current-context guard and returns a handle that
// carries the same underlying span state but is safe to move across
// goroutines. Finishing this OpenSpan afterward is a no-op: the span
// state moves to the returned handle and this one keeps only the context.
func (s *OpenSpan) Detach() *DetachedSpan {
	s.guard.Release()
	d := &DetachedSpan{core: s.core}
	s.core = &spanCore{tracer: d.core.tracer, ctx: d.core.ctx}
	return d
}

// Finish releases the current-context guard and, if this is a real
// span, finalizes it and hands the record to the reporter.
func (s *OpenSpan) Finish() {
	s.guard.Release()
	s.core.finalize()
}

// Context returns the span's trace context.
func (s *DetachedSpan) Context() ddtrace.TraceContext { return s.core.ctx }

// SetName sets the span's name, lowercased.
func (s *DetachedSpan) SetName(name string) *DetachedSpan { s.core.setName(name); return s }

// SetKind sets the span's kind.
func (s *DetachedSpan) SetKind(kind ddtrace.Kind) *DetachedSpan { s.core.setKind(kind); return s }

// SetRemoteEndpoint records the endpoint on the other side of the call.
func (s *DetachedSpan) SetRemoteEndpoint(e ddtrace.Endpoint) *DetachedSpan {
	s.core.setRemoteEndpoint(e)
	return s
}

// Annotate records a timestamped event.
func (s *DetachedSpan) Annotate(value string) *DetachedSpan { s.core.annotate(value); return s }

// Tag sets a key/value tag.
func (s *DetachedSpan) Tag(key, value string) *DetachedSpan { s.core.tag(key, value); return s }

// Attach re-installs the span's context as current on the calling
// goroutine, returning an OpenSpan tied to it.
func (s *DetachedSpan) Attach() *OpenSpan {
	return &OpenSpan{core: s.core, guard: s.core.tracer.current.SetCurrent(s.core.ctx)}
}

// Finish finalizes the span, if it is a real one, with no
// current-context interaction.
func (s *DetachedSpan) Finish() {
	s.core.finalize()
}
