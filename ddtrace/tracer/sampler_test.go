// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2016 Datadog, Inc.

package tracer

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tracelayer/tracelayer/ddtrace"
)

func TestAlwaysAndNeverSample(t *testing.T) {
	id := ddtrace.NewTraceID64(1)
	assert.True(t, AlwaysSample.Sample(id))
	assert.False(t, NeverSample.Sample(id))
}

func TestNewRateSamplerBounds(t *testing.T) {
	assert.NotPanics(t, func() { NewRateSampler(0) })
	assert.NotPanics(t, func() { NewRateSampler(1) })
	assert.Panics(t, func() { NewRateSampler(-0.1) })
	assert.Panics(t, func() { NewRateSampler(1.1) })
}

func TestRateSamplerExtremes(t *testing.T) {
	id := ddtrace.NewTraceID64(1)

	zero := NewRateSampler(0)
	for i := 0; i < 50; i++ {
		assert.False(t, zero.Sample(id))
	}

	one := NewRateSampler(1)
	for i := 0; i < 50; i++ {
		assert.True(t, one.Sample(id))
	}
}
