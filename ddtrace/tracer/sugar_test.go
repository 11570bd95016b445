// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2016 Datadog, Inc.

package tracer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tracelayer/tracelayer/ddtrace"
	"github.com/tracelayer/tracelayer/internal/globaltracer"
)

func TestSugarBeforeStartIsNoop(t *testing.T) {
	globaltracer.ResetForTest()
	defer globaltracer.ResetForTest()

	s := NewTrace()
	s.SetName("whatever").Tag("k", "v")
	assert.NotPanics(t, s.Finish)

	_, ok := CurrentContext()
	assert.False(t, ok)
}

func TestSugarForwardsToInstalledTracer(t *testing.T) {
	defer globaltracer.ResetForTest()

	rec := NewSpanRecorder()
	require.NoError(t, Start(WithReporter(rec), WithSampler(AlwaysSample)))
	defer Stop()

	root := NewTrace()
	root.SetName("root").SetKind(ddtrace.Server)

	ctx, ok := CurrentContext()
	require.True(t, ok)
	assert.Equal(t, root.Context(), ctx)

	child := NextSpan()
	child.SetName("child")
	child.Finish()
	root.Finish()

	assert.Len(t, rec.Spans(), 2)
}

func TestJoinTraceAndNewChildSugar(t *testing.T) {
	defer globaltracer.ResetForTest()

	rec := NewSpanRecorder()
	require.NoError(t, Start(WithReporter(rec), WithSampler(AlwaysSample)))
	defer Stop()

	peer := ddtrace.NewRootContext(ddtrace.NewTraceID64(1), ddtrace.SpanID(2), ddtrace.DefaultSamplingFlags.WithSampled(ddtrace.SampledYes))
	s := JoinTrace(peer)
	s.Finish()

	s2 := NewChild(peer)
	s2.Finish()

	assert.Len(t, rec.Spans(), 2)
}
