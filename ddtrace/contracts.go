// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2016 Datadog, Inc.

package ddtrace

// Sampler is a pure function of a trace id that decides whether a trace's
// spans should be recorded. It is consulted at most once per trace, on
// the first span in which the sampling decision is undecided.
type Sampler interface {
	Sample(id TraceID) bool
}

// Reporter consumes one completed span at a time. It is invoked
// synchronously from the owning span's disposal and therefore must not
// block.
type Reporter interface {
	Report(s SpanModel)
}

// Span is the minimal surface a tracer's open-span handle exposes to code
// that only needs to mutate and finish it, independent of the concrete
// engine that produced it. The concrete implementation lives in
// ddtrace/tracer; this interface exists so the global-tracer indirection
// in internal/globaltracer can refer to spans without importing the
// engine package.
type Span interface {
	Context() TraceContext
	SetName(name string) Span
	SetKind(kind Kind) Span
	SetRemoteEndpoint(e Endpoint) Span
	Annotate(value string) Span
	Tag(key, value string) Span
	Finish()
}

// Tracer creates and reports spans. The concrete implementation lives in
// ddtrace/tracer; this interface is what the process-wide registry in
// internal/globaltracer holds, and what the free-function sugar in the
// tracer package forwards to.
type Tracer interface {
	NewTrace() Span
	NewTraceFrom(flags SamplingFlags) Span
	JoinTrace(ctx TraceContext) Span
	NewChild(parent TraceContext) Span
	NextSpan() Span
	// Current returns the calling goroutine's current trace context, if
	// any.
	Current() (TraceContext, bool)
	Stop()
}
