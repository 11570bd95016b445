// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2016 Datadog, Inc.

package tracer

import (
	"strings"
	"time"

	"github.com/tracelayer/tracelayer/ddtrace"
)

// spanBuilder accumulates the mutable half of an open span. It is never exposed directly; OpenSpan owns
// one and finalizes it into an immutable ddtrace.SpanModel on disposal.
type spanBuilder struct {
	traceID        ddtrace.TraceID
	id             ddtrace.SpanID
	parentID       ddtrace.SpanID
	hasParent      bool
	name           string
	kind           ddtrace.Kind
	hasKind        bool
	timestamp      time.Time
	localEndpoint  ddtrace.Endpoint
	remoteEndpoint ddtrace.Endpoint
	hasRemote      bool
	debug          bool
	shared         bool
	annotations    []ddtrace.Annotation
	tags           map[string]string

	start time.Time // monotonic start instant; duration = time.Since(start)
}

func newSpanBuilder(ctx ddtrace.TraceContext, localEndpoint ddtrace.Endpoint, shared bool) *spanBuilder {
	b := &spanBuilder{
		traceID:       ctx.TraceID,
		id:            ctx.SpanID,
		localEndpoint: localEndpoint,
		debug:         ctx.Flags.Debug(),
		shared:        shared,
		timestamp:     time.Now(),
		start:         time.Now(),
	}
	if p, ok := ctx.Parent(); ok {
		b.parentID = p
		b.hasParent = true
	}
	return b
}

func (b *spanBuilder) setName(name string) {
	b.name = strings.ToLower(name)
}

func (b *spanBuilder) setKind(kind ddtrace.Kind) {
	b.kind = kind
	b.hasKind = true
}

func (b *spanBuilder) setRemoteEndpoint(e ddtrace.Endpoint) {
	b.remoteEndpoint = e
	b.hasRemote = true
}

func (b *spanBuilder) annotate(value string) {
	b.annotations = append(b.annotations, ddtrace.Annotation{Timestamp: time.Now(), Value: value})
}

func (b *spanBuilder) tag(key, value string) {
	if b.tags == nil {
		b.tags = make(map[string]string)
	}
	b.tags[key] = value
}

// build finalizes the builder into an immutable record. The caller
// supplies the finish instant so that detach/attach transitions which
// hand the builder to a new OpenSpan don't affect the measured duration.
func (b *spanBuilder) build(finish time.Time) ddtrace.SpanModel {
	dur := finish.Sub(b.start)
	return ddtrace.SpanModel{
		TraceID:        b.traceID,
		ID:             b.id,
		ParentID:       b.parentID,
		HasParent:      b.hasParent,
		Name:           b.name,
		Kind:           b.kind,
		HasKind:        b.hasKind,
		Timestamp:      b.timestamp,
		HasTimestamp:   true,
		Duration:       dur,
		Debug:          b.debug,
		Shared:         b.shared,
		LocalEndpoint:  b.localEndpoint,
		RemoteEndpoint: b.remoteEndpoint,
		HasRemote:      b.hasRemote,
		Annotations:    b.annotations,
		Tags:           b.tags,
	}
}
