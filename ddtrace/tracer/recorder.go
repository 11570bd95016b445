// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2016 Datadog, Inc.

package tracer

import (
	"sync"

	"github.com/tracelayer/tracelayer/ddtrace"
)

// SpanRecorder is an in-memory Reporter for application unit tests: rather
// than standing up a collector, tests install a Tracer with
// WithReporter(this) and assert against Spans() once their code under
// test has finished.
type SpanRecorder struct {
	mu    sync.Mutex
	spans []ddtrace.SpanModel
}

var _ ddtrace.Reporter = (*SpanRecorder)(nil)

// NewSpanRecorder returns an empty SpanRecorder.
func NewSpanRecorder() *SpanRecorder {
	return &SpanRecorder{}
}

// Report implements ddtrace.Reporter.
func (r *SpanRecorder) Report(s ddtrace.SpanModel) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.spans = append(r.spans, s)
}

// Spans returns every span reported so far, in report order.
func (r *SpanRecorder) Spans() []ddtrace.SpanModel {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]ddtrace.SpanModel, len(r.spans))
	copy(out, r.spans)
	return out
}

// Reset clears every recorded span.
func (r *SpanRecorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.spans = r.spans[:0]
}
