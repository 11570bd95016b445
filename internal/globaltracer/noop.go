// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2016 Datadog, Inc.

package globaltracer

import "github.com/tracelayer/tracelayer/ddtrace"

var _ ddtrace.Tracer = noopTracer{}

// noopTracer is installed before any application calls Install. Every
// method succeeds and hands back noopSpan, so traces recorded before
// installation are silently lost rather than surfacing a nil-pointer panic
// to application code.
type noopTracer struct{}

func (noopTracer) NewTrace() ddtrace.Span                              { return noopSpan{} }
func (noopTracer) NewTraceFrom(ddtrace.SamplingFlags) ddtrace.Span     { return noopSpan{} }
func (noopTracer) JoinTrace(ddtrace.TraceContext) ddtrace.Span         { return noopSpan{} }
func (noopTracer) NewChild(ddtrace.TraceContext) ddtrace.Span          { return noopSpan{} }
func (noopTracer) NextSpan() ddtrace.Span                              { return noopSpan{} }
func (noopTracer) Current() (ddtrace.TraceContext, bool)               { return ddtrace.TraceContext{}, false }
func (noopTracer) Stop()                                               {}

var _ ddtrace.Span = noopSpan{}

// noopSpan discards every mutation and reports nothing on Finish.
type noopSpan struct{}

func (noopSpan) Context() ddtrace.TraceContext                { return ddtrace.TraceContext{} }
func (s noopSpan) SetName(string) ddtrace.Span                { return s }
func (s noopSpan) SetKind(ddtrace.Kind) ddtrace.Span          { return s }
func (s noopSpan) SetRemoteEndpoint(ddtrace.Endpoint) ddtrace.Span { return s }
func (s noopSpan) Annotate(string) ddtrace.Span               { return s }
func (s noopSpan) Tag(string, string) ddtrace.Span            { return s }
func (noopSpan) Finish()                                      {}
