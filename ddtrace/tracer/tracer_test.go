// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2016 Datadog, Inc.

package tracer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tracelayer/tracelayer/internal/globaltracer"
)

func TestStartInstallsGlobalTracer(t *testing.T) {
	defer globaltracer.ResetForTest()

	rec := NewSpanRecorder()
	err := Start(WithReporter(rec), WithSampler(AlwaysSample))
	require.NoError(t, err)
	defer Stop()

	NewTrace().Finish()
	assert.Len(t, rec.Spans(), 1)
}

func TestStartTwiceWithoutStopErrors(t *testing.T) {
	defer globaltracer.ResetForTest()

	require.NoError(t, Start(WithSampler(AlwaysSample)))
	defer Stop()

	err := Start(WithSampler(AlwaysSample))
	assert.ErrorIs(t, err, globaltracer.ErrAlreadyInstalled)
}

func TestStopAllowsReinstall(t *testing.T) {
	defer globaltracer.ResetForTest()

	require.NoError(t, Start(WithSampler(AlwaysSample)))
	Stop()
	assert.NoError(t, Start(WithSampler(AlwaysSample)))
	Stop()
}

func TestNewConfigDefaults(t *testing.T) {
	c := newConfig()
	assert.Equal(t, AlwaysSample, c.sampler)
	assert.NotNil(t, c.reporter)
	assert.NotEmpty(t, c.endpoint.ServiceName)
}

func TestWithServiceSetsEndpointName(t *testing.T) {
	c := newConfig(WithService("checkout"))
	assert.Equal(t, "checkout", c.endpoint.ServiceName)
}
