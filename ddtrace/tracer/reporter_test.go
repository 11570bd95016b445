// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2016 Datadog, Inc.

package tracer

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tracelayer/tracelayer/ddtrace"
)

func TestDiscardReporterDropsEverything(t *testing.T) {
	r := NewDiscardReporter()
	assert.NotPanics(t, func() { r.Report(ddtrace.SpanModel{}) })
}

func TestLoggingReporterDoesNotPanic(t *testing.T) {
	r := NewLoggingReporter()
	assert.NotPanics(t, func() {
		r.Report(ddtrace.SpanModel{Name: "op", TraceID: ddtrace.NewTraceID64(1), ID: ddtrace.SpanID(2)})
	})
}

func TestReporterErrorMessages(t *testing.T) {
	t.Run("http status", func(t *testing.T) {
		e := &ReporterError{Kind: ErrorKindHTTPStatus, Status: 503}
		assert.Contains(t, e.Error(), "503")
		assert.NoError(t, e.Unwrap())
	})

	t.Run("serialization", func(t *testing.T) {
		cause := errors.New("boom")
		e := &ReporterError{Kind: ErrorKindSerialization, Cause: cause}
		assert.Contains(t, e.Error(), "boom")
		assert.Equal(t, cause, e.Unwrap())
	})

	t.Run("transport", func(t *testing.T) {
		cause := errors.New("connection refused")
		e := &ReporterError{Kind: ErrorKindTransport, Cause: cause}
		assert.Contains(t, e.Error(), "connection refused")
		assert.ErrorIs(t, e, cause)
	})
}
