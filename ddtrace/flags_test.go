// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2016 Datadog, Inc.

package ddtrace

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSamplingFlagsDebugImpliesSampled(t *testing.T) {
	f := NewSamplingFlags(SampledNo, true)
	assert.Equal(t, SampledYes, f.Sampled())
	assert.True(t, f.Debug())
}

func TestSamplingFlagsDefaults(t *testing.T) {
	assert.False(t, DefaultSamplingFlags.Decided())
	assert.True(t, DebugSamplingFlags.Decided())
	assert.True(t, DebugSamplingFlags.Debug())
}

func TestSamplingFlagsWithSampledClearsDebugOnNo(t *testing.T) {
	f := DebugSamplingFlags.WithSampled(SampledNo)
	assert.Equal(t, SampledNo, f.Sampled())
	assert.False(t, f.Debug(), "debug cannot survive a no decision")
}

func TestSamplingFlagsWithSampledKeepsDebugOnYes(t *testing.T) {
	f := DebugSamplingFlags.WithSampled(SampledYes)
	assert.True(t, f.Debug())
}
