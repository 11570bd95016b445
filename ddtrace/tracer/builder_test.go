// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2016 Datadog, Inc.

package tracer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/tracelayer/tracelayer/ddtrace"
)

func TestSpanBuilderLifecycle(t *testing.T) {
	local := ddtrace.NewEndpoint("svc")
	ctx := ddtrace.NewRootContext(ddtrace.NewTraceID64(1), ddtrace.SpanID(2), ddtrace.DebugSamplingFlags)

	b := newSpanBuilder(ctx, local, false)
	b.setName("GET /widgets")
	b.setKind(ddtrace.Server)
	b.tag("http.status_code", "200")
	b.annotate("sr")

	finish := b.start.Add(5 * time.Millisecond)
	s := b.build(finish)

	assert.Equal(t, "get /widgets", s.Name, "names lowercase")
	assert.Equal(t, ddtrace.Server, s.Kind)
	assert.True(t, s.HasKind)
	assert.Equal(t, 5*time.Millisecond, s.Duration)
	assert.True(t, s.Debug)
	assert.Equal(t, local, s.LocalEndpoint)
	assert.Equal(t, "200", s.Tags["http.status_code"])
	assert.Len(t, s.Annotations, 1)
	assert.Equal(t, "sr", s.Annotations[0].Value)
}

func TestSpanBuilderParentAndRemote(t *testing.T) {
	root := ddtrace.NewRootContext(ddtrace.NewTraceID64(1), ddtrace.SpanID(2), ddtrace.DefaultSamplingFlags)
	child := ddtrace.NewChildContext(root, ddtrace.SpanID(3))

	b := newSpanBuilder(child, ddtrace.Endpoint{}, true)
	remote := ddtrace.NewEndpoint("downstream")
	b.setRemoteEndpoint(remote)

	s := b.build(b.start)
	assert.True(t, s.HasParent)
	assert.Equal(t, ddtrace.SpanID(2), s.ParentID)
	assert.True(t, s.Shared)
	assert.True(t, s.HasRemote)
	assert.Equal(t, remote, s.RemoteEndpoint)
}
