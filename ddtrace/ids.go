// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2016 Datadog, Inc.

// Package ddtrace contains the wire-level data model shared between the
// tracer engine and its collaborators: identifiers, sampling flags, trace
// contexts, the finished span record, and the two extension-point
// contracts (Sampler, Reporter). Shapes here are pinned by the Zipkin v2
// data model; see https://zipkin.io/zipkin-api/#/default/post_spans.
package ddtrace

import (
	"encoding/hex"
	"fmt"
)

// TraceID identifies all spans that belong to one trace. It is either 8
// or 16 bytes; the original length is preserved so that rendering and
// equality stay faithful to how the id was produced or parsed.
type TraceID struct {
	hi   uint64 // set only when the id is 16 bytes; zero for 8-byte ids
	lo   uint64
	long bool // true when this id carries 16 bytes on the wire
}

// NewTraceID64 builds an 8-byte trace id from the given low bits.
func NewTraceID64(lo uint64) TraceID {
	return TraceID{lo: lo}
}

// NewTraceID128 builds a 16-byte trace id from the given high and low bits.
func NewTraceID128(hi, lo uint64) TraceID {
	return TraceID{hi: hi, lo: lo, long: true}
}

// Long reports whether this id renders as 32 hex digits.
func (t TraceID) Long() bool { return t.long }

// Low returns the low 8 bytes of the id.
func (t TraceID) Low() uint64 { return t.lo }

// High returns the high 8 bytes of the id. It is zero for 8-byte ids.
func (t TraceID) High() uint64 { return t.hi }

// Empty reports whether the id is the zero value.
func (t TraceID) Empty() bool { return t.hi == 0 && t.lo == 0 }

// String renders the id as lowercase hex of its original length: 16 hex
// digits for an 8-byte id, 32 for a 16-byte id.
func (t TraceID) String() string {
	if t.long {
		return fmt.Sprintf("%016x%016x", t.hi, t.lo)
	}
	return fmt.Sprintf("%016x", t.lo)
}

// Equal compares only the meaningful bytes of two trace ids: an 8-byte id
// and a 16-byte id with the same low bits and a zero high half compare
// equal, since the short form is zero-extensible.
func (t TraceID) Equal(o TraceID) bool {
	if t.lo != o.lo {
		return false
	}
	th, oh := t.hi, o.hi
	return th == oh
}

// ParseTraceID parses 16 or 32 lowercase hex digits into a TraceID.
func ParseTraceID(s string) (TraceID, error) {
	switch len(s) {
	case 16:
		lo, err := hex.DecodeString(s)
		if err != nil {
			return TraceID{}, fmt.Errorf("ddtrace: malformed trace id %q: %w", s, err)
		}
		return TraceID{lo: beUint64(lo)}, nil
	case 32:
		b, err := hex.DecodeString(s)
		if err != nil {
			return TraceID{}, fmt.Errorf("ddtrace: malformed trace id %q: %w", s, err)
		}
		return TraceID{hi: beUint64(b[:8]), lo: beUint64(b[8:]), long: true}, nil
	default:
		return TraceID{}, fmt.Errorf("ddtrace: trace id %q must be 16 or 32 hex digits, got %d", s, len(s))
	}
}

// SpanID identifies one span within a trace. It is always 8 bytes and
// renders as 16 lowercase hex digits.
type SpanID uint64

// String renders the span id as 16 lowercase hex digits.
func (s SpanID) String() string {
	return fmt.Sprintf("%016x", uint64(s))
}

// Empty reports whether the id is the zero value.
func (s SpanID) Empty() bool { return s == 0 }

// ParseSpanID parses 16 lowercase hex digits into a SpanID.
func ParseSpanID(s string) (SpanID, error) {
	if len(s) != 16 {
		return 0, fmt.Errorf("ddtrace: span id %q must be 16 hex digits, got %d", s, len(s))
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		return 0, fmt.Errorf("ddtrace: malformed span id %q: %w", s, err)
	}
	return SpanID(beUint64(b)), nil
}

func beUint64(b []byte) uint64 {
	var v uint64
	for _, c := range b {
		v = v<<8 | uint64(c)
	}
	return v
}
