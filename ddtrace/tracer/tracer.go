// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2016 Datadog, Inc.

// Package tracer is the engine of the library: the span record builder,
// the canonical sampler and reporter implementations (the identifier,
// context and span record types and the contracts themselves live in
// package ddtrace), the per-goroutine current-context
// store, the Tracer singleton, the open-span guard, the async binding
// adapter, the B3 header codec and Zipkin v2 JSON codec, and the HTTP
// reporter pipeline.
package tracer

import (
	"os"
	"path/filepath"

	"github.com/tracelayer/tracelayer/ddtrace"
	"github.com/tracelayer/tracelayer/internal/globaltracer"
)

// config accumulates the options passed to NewTracer/Start.
type config struct {
	serviceName string
	endpoint    ddtrace.Endpoint
	hasEndpoint bool
	sampler     ddtrace.Sampler
	reporter    ddtrace.Reporter
	globalTags  map[string]string
}

// StartOption configures a Tracer at construction time.
type StartOption func(*config)

// WithService sets the local endpoint's service name. Defaults to the
// running binary's base name.
func WithService(name string) StartOption {
	return func(c *config) { c.serviceName = name }
}

// WithEndpoint sets the local endpoint outright, taking precedence over
// WithService.
func WithEndpoint(e ddtrace.Endpoint) StartOption {
	return func(c *config) { c.endpoint = e; c.hasEndpoint = true }
}

// WithSampler sets the sampler consulted for undecided traces. Defaults to
// AlwaysSample.
func WithSampler(s ddtrace.Sampler) StartOption {
	return func(c *config) { c.sampler = s }
}

// WithReporter sets the reporter that consumes finished spans. Defaults to
// a logging reporter.
func WithReporter(r ddtrace.Reporter) StartOption {
	return func(c *config) { c.reporter = r }
}

// WithGlobalTag adds a tag applied to every span this tracer creates.
func WithGlobalTag(key, value string) StartOption {
	return func(c *config) {
		if c.globalTags == nil {
			c.globalTags = make(map[string]string)
		}
		c.globalTags[key] = value
	}
}

func newConfig(opts ...StartOption) *config {
	c := &config{}
	for _, opt := range opts {
		opt(c)
	}
	if c.sampler == nil {
		c.sampler = AlwaysSample
	}
	if c.reporter == nil {
		c.reporter = NewLoggingReporter()
	}
	if !c.hasEndpoint {
		name := c.serviceName
		if name == "" {
			name = filepath.Base(os.Args[0])
		}
		c.endpoint = ddtrace.NewEndpoint(name)
	}
	return c
}

// Tracer is the process-wide, write-once resource: it composes a sampler,
// a reporter, and a local endpoint, and is the sole factory for open
// spans. A zero Tracer is not usable; construct one with NewTracer.
//
// Tracer's span-creation methods return the concrete *OpenSpan rather than
// ddtrace.Span, so that callers using a Tracer directly as an explicit
// dependency keep access to Detach and the other OpenSpan-only operations.
// asTracer adapts a *Tracer to ddtrace.Tracer for the package-level
// free-function sugar backed by the global singleton, which only needs
// the narrower Span surface.
type Tracer struct {
	sampler       ddtrace.Sampler
	reporter      ddtrace.Reporter
	localEndpoint ddtrace.Endpoint
	globalTags    map[string]string
	current       *currentStore
	ids           *idgen
}

// NewTracer builds a standalone Tracer. Most applications want Start, which
// also installs the tracer as the process-wide default consulted by the
// package-level free functions.
func NewTracer(opts ...StartOption) *Tracer {
	c := newConfig(opts...)
	return &Tracer{
		sampler:       c.sampler,
		reporter:      c.reporter,
		localEndpoint: c.endpoint,
		globalTags:    c.globalTags,
		current:       newCurrentStore(),
		ids:           newIDGen(),
	}
}

// Start constructs a Tracer from opts and installs it as the global tracer
// consulted by the package-level free functions (NewTrace, NewChild, ...).
// A second Start call before Stop returns globaltracer.ErrAlreadyInstalled
// rather than silently replacing the running tracer.
func Start(opts ...StartOption) error {
	return globaltracer.Install(asTracer{NewTracer(opts...)})
}

// Stop uninstalls the global tracer, if one is installed, and stops its
// reporter. Subsequent calls to the package-level free functions resume
// producing no-op spans.
func Stop() {
	globaltracer.Stop()
}

// Current returns the calling goroutine's current trace context, if any.
func (t *Tracer) Current() (ddtrace.TraceContext, bool) {
	return t.current.Current()
}

func (t *Tracer) applyGlobalTags(s *OpenSpan) {
	for k, v := range t.globalTags {
		s.Tag(k, v)
	}
}

// NewTraceFrom generates a fresh 8-byte identifier used for both trace id
// and span id, and builds a root context carrying the supplied flags.
func (t *Tracer) NewTraceFrom(flags ddtrace.SamplingFlags) *OpenSpan {
	id := t.ids.NextTraceID()
	ctx := ddtrace.NewRootContext(id, ddtrace.SpanID(id.Low()), flags)
	return t.startSpan(ctx, false)
}

// NewTrace is NewTraceFrom with the default sampling flags: undecided,
// not debug.
func (t *Tracer) NewTrace() *OpenSpan {
	return t.NewTraceFrom(ddtrace.DefaultSamplingFlags)
}

// JoinTrace installs ctx as-is: this span is the server-side half of a
// span whose client-side was recorded by a peer, so it is marked shared
// unless the peer left the sampling decision undecided.
func (t *Tracer) JoinTrace(ctx ddtrace.TraceContext) *OpenSpan {
	return t.startSpan(ctx, true)
}

// NewChild generates a new span id, copies the parent's trace id and
// flags, and sets parent_id to the parent's span id.
func (t *Tracer) NewChild(parent ddtrace.TraceContext) *OpenSpan {
	childID := t.ids.NextSpanID()
	ctx := ddtrace.NewChildContext(parent, childID)
	return t.startSpan(ctx, false)
}

// NextSpan is NewChild(current) if a current context exists on the calling
// goroutine, else NewTrace().
func (t *Tracer) NextSpan() *OpenSpan {
	if parent, ok := t.current.Current(); ok {
		return t.NewChild(parent)
	}
	return t.NewTrace()
}

// startSpan resolves the sampling decision, if undecided, and materializes
// either a real open span or a no-op one.
func (t *Tracer) startSpan(ctx ddtrace.TraceContext, shared bool) *OpenSpan {
	if !ctx.Flags.Decided() {
		decision := ddtrace.SampledNo
		if t.sampler.Sample(ctx.TraceID) {
			decision = ddtrace.SampledYes
		}
		ctx = ctx.WithFlags(ctx.Flags.WithSampled(decision))
		// The upstream expressed no opinion, so this process cannot assume
		// a peer is timing this span: it is not shared even from JoinTrace.
		shared = false
	}

	var builder *spanBuilder
	if ctx.Flags.Sampled() == ddtrace.SampledYes {
		builder = newSpanBuilder(ctx, t.localEndpoint, shared)
	}
	s := newOpenSpan(t, ctx, builder)
	t.applyGlobalTags(s)
	return s
}

// Stop releases resources held by the tracer's reporter, if it implements
// an optional Stopper contract.
func (t *Tracer) Stop() {
	if stopper, ok := t.reporter.(interface{ Stop() }); ok {
		stopper.Stop()
	}
}

// asTracer narrows a *Tracer's *OpenSpan-returning methods to ddtrace.Span,
// satisfying ddtrace.Tracer for internal/globaltracer's process-wide
// registry. *OpenSpan already implements ddtrace.Span, so this is a pure
// type-level narrowing with no behavioral difference.
type asTracer struct{ t *Tracer }

var _ ddtrace.Tracer = asTracer{}

func (a asTracer) NewTrace() ddtrace.Span                       { return a.t.NewTrace() }
func (a asTracer) NewTraceFrom(f ddtrace.SamplingFlags) ddtrace.Span { return a.t.NewTraceFrom(f) }
func (a asTracer) JoinTrace(ctx ddtrace.TraceContext) ddtrace.Span   { return a.t.JoinTrace(ctx) }
func (a asTracer) NewChild(parent ddtrace.TraceContext) ddtrace.Span { return a.t.NewChild(parent) }
func (a asTracer) NextSpan() ddtrace.Span                        { return a.t.NextSpan() }
func (a asTracer) Current() (ddtrace.TraceContext, bool)         { return a.t.Current() }
func (a asTracer) Stop()                                         { a.t.Stop() }
