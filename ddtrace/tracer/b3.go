// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2016 Datadog, Inc.

package tracer

import (
	"net/http"
	"strings"

	"github.com/tracelayer/tracelayer/ddtrace"
	"github.com/tracelayer/tracelayer/ddtrace/ext"
)

// TextMapWriter sets a single key/value pair, the minimal surface a header
// codec needs to inject into.
type TextMapWriter interface {
	Set(key, value string)
}

// TextMapReader reads a single key/value pair by name.
type TextMapReader interface {
	Get(key string) (string, bool)
}

// HTTPHeadersCarrier adapts an http.Header to TextMapWriter/TextMapReader.
type HTTPHeadersCarrier http.Header

var _ TextMapWriter = HTTPHeadersCarrier{}
var _ TextMapReader = HTTPHeadersCarrier{}

// Set implements TextMapWriter.
func (c HTTPHeadersCarrier) Set(key, value string) { http.Header(c).Set(key, value) }

// Get implements TextMapReader.
func (c HTTPHeadersCarrier) Get(key string) (string, bool) {
	v := http.Header(c).Get(key)
	if v == "" {
		return "", false
	}
	return v, true
}

// TextMapCarrier adapts a plain map[string]string to TextMapWriter/
// TextMapReader, for callers not working with http.Header directly.
type TextMapCarrier map[string]string

var _ TextMapWriter = TextMapCarrier{}
var _ TextMapReader = TextMapCarrier{}

// Set implements TextMapWriter.
func (c TextMapCarrier) Set(key, value string) { c[key] = value }

// Get implements TextMapReader.
func (c TextMapCarrier) Get(key string) (string, bool) {
	v, ok := c[key]
	return v, ok
}

// InjectB3Multi encodes ctx as the B3 multi-header form: setters
// prefer this form.
func InjectB3Multi(ctx ddtrace.TraceContext, w TextMapWriter) {
	w.Set(ext.B3TraceID, ctx.TraceID.String())
	w.Set(ext.B3SpanID, ctx.SpanID.String())
	if parent, ok := ctx.Parent(); ok {
		w.Set(ext.B3ParentSpanID, parent.String())
	}
	if ctx.Flags.Debug() {
		w.Set(ext.B3Flags, "1")
	} else if ctx.Flags.Decided() {
		if ctx.Flags.Sampled() == ddtrace.SampledYes {
			w.Set(ext.B3Sampled, "1")
		} else {
			w.Set(ext.B3Sampled, "0")
		}
	}
}

// InjectB3Single encodes ctx as the single b3 header form:
// "{trace}-{span}[-{samp}[-{parent}]]".
func InjectB3Single(ctx ddtrace.TraceContext, w TextMapWriter) {
	var b strings.Builder
	b.WriteString(ctx.TraceID.String())
	b.WriteByte('-')
	b.WriteString(ctx.SpanID.String())

	parent, hasParent := ctx.Parent()
	samp, hasSamp := b3SampChar(ctx.Flags)
	if hasSamp {
		b.WriteByte('-')
		b.WriteString(samp)
	}
	if hasParent {
		// {samp} may be omitted while {parent} is present: the third
		// dash-separated field then holds the parent id directly, and
		// the decoder recognizes it as a span id by not being 0/1/d.
		b.WriteByte('-')
		b.WriteString(parent.String())
	}
	w.Set(ext.B3Single, b.String())
}

func b3SampChar(f ddtrace.SamplingFlags) (string, bool) {
	if f.Debug() {
		return "d", true
	}
	if !f.Decided() {
		return "", false
	}
	if f.Sampled() == ddtrace.SampledYes {
		return "1", true
	}
	return "0", true
}

// ExtractB3 decodes a TraceContext from r, accepting either header form;
// the single b3 header takes precedence when present. Returns ok=false
// when no context is present at all.
func ExtractB3(r TextMapReader) (ddtrace.TraceContext, bool) {
	if v, ok := r.Get(ext.B3Single); ok {
		return parseB3Single(v)
	}
	return parseB3Multi(r)
}

func parseB3Single(v string) (ddtrace.TraceContext, bool) {
	parts := strings.Split(v, "-")
	if len(parts) < 2 {
		return ddtrace.TraceContext{}, false
	}
	traceID, err := ddtrace.ParseTraceID(parts[0])
	if err != nil {
		return ddtrace.TraceContext{}, false
	}
	spanID, err := ddtrace.ParseSpanID(parts[1])
	if err != nil {
		return ddtrace.TraceContext{}, false
	}

	flags := ddtrace.DefaultSamplingFlags
	var parentIdx = -1
	if len(parts) >= 3 {
		switch parts[2] {
		case "0":
			flags = flags.WithSampled(ddtrace.SampledNo)
		case "1":
			flags = flags.WithSampled(ddtrace.SampledYes)
		case "d":
			flags = ddtrace.NewSamplingFlags(ddtrace.SampledYes, true)
		default:
			// {samp} was omitted and this field is actually {parent}.
			parentIdx = 2
		}
		if parentIdx < 0 && len(parts) >= 4 {
			parentIdx = 3
		}
	}

	ctx := ddtrace.NewRootContext(traceID, spanID, flags)
	if parentIdx >= 0 && parentIdx < len(parts) {
		parentID, err := ddtrace.ParseSpanID(parts[parentIdx])
		if err != nil {
			return ddtrace.TraceContext{}, false
		}
		ctx = ddtrace.NewChildContext(ddtrace.NewRootContext(traceID, parentID, flags), spanID)
	}
	return ctx, true
}

func parseB3Multi(r TextMapReader) (ddtrace.TraceContext, bool) {
	traceIDStr, ok := r.Get(ext.B3TraceID)
	if !ok {
		return ddtrace.TraceContext{}, false
	}
	spanIDStr, ok := r.Get(ext.B3SpanID)
	if !ok {
		return ddtrace.TraceContext{}, false
	}
	traceID, err := ddtrace.ParseTraceID(traceIDStr)
	if err != nil {
		return ddtrace.TraceContext{}, false
	}
	spanID, err := ddtrace.ParseSpanID(spanIDStr)
	if err != nil {
		return ddtrace.TraceContext{}, false
	}

	flags := ddtrace.DefaultSamplingFlags
	if sampled, ok := r.Get(ext.B3Sampled); ok {
		if sampled == "1" {
			flags = flags.WithSampled(ddtrace.SampledYes)
		} else {
			flags = flags.WithSampled(ddtrace.SampledNo)
		}
	}
	if debugFlag, ok := r.Get(ext.B3Flags); ok && debugFlag == "1" {
		flags = ddtrace.NewSamplingFlags(ddtrace.SampledYes, true)
	}

	if parentStr, ok := r.Get(ext.B3ParentSpanID); ok {
		parentID, err := ddtrace.ParseSpanID(parentStr)
		if err != nil {
			return ddtrace.TraceContext{}, false
		}
		return ddtrace.NewChildContext(ddtrace.NewRootContext(traceID, parentID, flags), spanID), true
	}
	return ddtrace.NewRootContext(traceID, spanID, flags), true
}
