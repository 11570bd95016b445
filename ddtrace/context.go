// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2016 Datadog, Inc.

package ddtrace

// TraceContext is the value that propagates to child spans and across
// process boundaries: a trace id, an optional parent span id, this span's
// own id, and the sampling flags in effect. It is a plain value type and
// is never mutated in place; derivation always produces a new value.
type TraceContext struct {
	TraceID  TraceID
	ParentID SpanID
	SpanID   SpanID
	Flags    SamplingFlags

	hasParent bool
}

// NewRootContext builds a context with no parent.
func NewRootContext(traceID TraceID, spanID SpanID, flags SamplingFlags) TraceContext {
	return TraceContext{TraceID: traceID, SpanID: spanID, Flags: flags}
}

// NewChildContext builds a context that descends from parent, inheriting
// its trace id and sampling flags.
func NewChildContext(parent TraceContext, childSpanID SpanID) TraceContext {
	return TraceContext{
		TraceID:   parent.TraceID,
		ParentID:  parent.SpanID,
		SpanID:    childSpanID,
		Flags:     parent.Flags,
		hasParent: true,
	}
}

// Parent returns the parent span id and whether one is set. A root context
// has no parent.
func (c TraceContext) Parent() (SpanID, bool) { return c.ParentID, c.hasParent }

// IsRoot reports whether this context has no parent.
func (c TraceContext) IsRoot() bool { return !c.hasParent }

// WithFlags returns a copy of c with the sampling flags replaced.
func (c TraceContext) WithFlags(f SamplingFlags) TraceContext {
	c.Flags = f
	return c
}
