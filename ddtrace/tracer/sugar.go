// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2016 Datadog, Inc.

package tracer

import (
	"github.com/tracelayer/tracelayer/ddtrace"
	"github.com/tracelayer/tracelayer/internal/globaltracer"
)

// This file is the free-function sugar layered over the global tracer
// singleton: every operation here forwards to whatever Tracer is
// currently installed via Start, or to a no-op tracer before the first
// Start. Applications that want Detach/Bind should hold onto a *Tracer
// from NewTracer directly instead of using this sugar.

// NewTrace starts a new trace with no parent, using the global tracer.
func NewTrace() ddtrace.Span { return globaltracer.Current().NewTrace() }

// NewTraceFrom starts a new trace with no parent and the given sampling
// flags, using the global tracer.
func NewTraceFrom(flags ddtrace.SamplingFlags) ddtrace.Span {
	return globaltracer.Current().NewTraceFrom(flags)
}

// JoinTrace installs ctx as the global tracer's current context and opens
// its server-side span.
func JoinTrace(ctx ddtrace.TraceContext) ddtrace.Span {
	return globaltracer.Current().JoinTrace(ctx)
}

// NewChild opens a span parented to parent, using the global tracer.
func NewChild(parent ddtrace.TraceContext) ddtrace.Span {
	return globaltracer.Current().NewChild(parent)
}

// NextSpan opens a span parented to the global tracer's current context
// on the calling goroutine, or starts a new trace if there is none.
func NextSpan() ddtrace.Span { return globaltracer.Current().NextSpan() }

// CurrentContext returns the global tracer's current context on the
// calling goroutine, if any.
func CurrentContext() (ddtrace.TraceContext, bool) { return globaltracer.Current().Current() }
