// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2016 Datadog, Inc.

package tracer

import (
	"fmt"

	"github.com/tracelayer/tracelayer/ddtrace"
	"github.com/tracelayer/tracelayer/internal/log"
)

// discardReporter drops every span it receives.
type discardReporter struct{}

func (discardReporter) Report(ddtrace.SpanModel) {}

// NewDiscardReporter returns a Reporter that drops every span, useful
// when tracing is enabled for its context-propagation side effects only.
func NewDiscardReporter() ddtrace.Reporter { return discardReporter{} }

// loggingReporter logs each finished span at Debug level, through
// internal/log so the output obeys the same level/sink as the rest of
// the library.
type loggingReporter struct{}

func (loggingReporter) Report(s ddtrace.SpanModel) {
	log.Debug("span finished: trace_id=%s id=%s name=%q duration=%s", s.TraceID, s.ID, s.Name, s.Duration)
}

// NewLoggingReporter returns a Reporter that logs each finished span via
// internal/log at Debug level. Useful for local development.
func NewLoggingReporter() ddtrace.Reporter { return loggingReporter{} }

// ErrorKind classifies a ReporterError.
type ErrorKind int

const (
	// ErrorKindTransport means the HTTP request itself failed (connect,
	// write, read, timeout at the transport layer).
	ErrorKindTransport ErrorKind = iota
	// ErrorKindHTTPStatus means the request completed but the collector
	// responded with a non-2xx status.
	ErrorKindHTTPStatus
	// ErrorKindSerialization means the batch could not be marshaled to
	// JSON, which indicates a library bug rather than a transient fault.
	ErrorKindSerialization
)

// ReporterError is surfaced on the HTTP reporter's error channel. Exactly one of Status or Cause is meaningful,
// depending on Kind.
type ReporterError struct {
	Kind   ErrorKind
	Status int
	Cause  error
}

func (e *ReporterError) Error() string {
	switch e.Kind {
	case ErrorKindHTTPStatus:
		return fmt.Sprintf("tracer: collector responded %d", e.Status)
	case ErrorKindSerialization:
		return fmt.Sprintf("tracer: failed to serialize span batch: %v", e.Cause)
	default:
		return fmt.Sprintf("tracer: transport error: %v", e.Cause)
	}
}

// Unwrap exposes the wrapped transport or serialization cause, if any.
func (e *ReporterError) Unwrap() error { return e.Cause }
