// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2016 Datadog, Inc.

package tracer

import (
	"fmt"
	"net"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"

	"github.com/tracelayer/tracelayer/ddtrace"
)

var jsonAPI = jsoniter.ConfigCompatibleWithStandardLibrary

// jsonEndpoint mirrors the Zipkin v2 endpoint object.
type jsonEndpoint struct {
	ServiceName string `json:"serviceName,omitempty"`
	IPv4        string `json:"ipv4,omitempty"`
	IPv6        string `json:"ipv6,omitempty"`
	Port        uint16 `json:"port,omitempty"`
}

func toJSONEndpoint(e ddtrace.Endpoint) *jsonEndpoint {
	if e.Empty() {
		return nil
	}
	je := &jsonEndpoint{ServiceName: e.ServiceName, Port: e.Port}
	if e.HasIPv4() {
		je.IPv4 = net.IP(e.IPv4[:]).String()
	}
	if e.HasIPv6() {
		je.IPv6 = net.IP(e.IPv6[:]).String()
	}
	return je
}

func fromJSONEndpoint(je *jsonEndpoint) ddtrace.Endpoint {
	if je == nil {
		return ddtrace.Endpoint{}
	}
	e := ddtrace.NewEndpoint(je.ServiceName).WithPort(je.Port)
	if je.IPv4 != "" {
		if ip := net.ParseIP(je.IPv4).To4(); ip != nil {
			var b [4]byte
			copy(b[:], ip)
			e = e.WithIPv4(b)
		}
	}
	if je.IPv6 != "" {
		if ip := net.ParseIP(je.IPv6).To16(); ip != nil {
			var b [16]byte
			copy(b[:], ip)
			e = e.WithIPv6(b)
		}
	}
	return e
}

// jsonAnnotation mirrors the Zipkin v2 annotation object: a microsecond
// Unix timestamp plus a short event value.
type jsonAnnotation struct {
	Timestamp int64         `json:"timestamp"`
	Value     string        `json:"value"`
	Endpoint  *jsonEndpoint `json:"endpoint,omitempty"`
}

// jsonSpan mirrors a Zipkin v2 span object field-for-field.
type jsonSpan struct {
	TraceID        string            `json:"traceId"`
	ID             string            `json:"id"`
	ParentID       string            `json:"parentId,omitempty"`
	Name           string            `json:"name,omitempty"`
	Kind           string            `json:"kind,omitempty"`
	Timestamp      int64             `json:"timestamp,omitempty"`
	Duration       int64             `json:"duration,omitempty"`
	Debug          bool              `json:"debug,omitempty"`
	Shared         bool              `json:"shared,omitempty"`
	LocalEndpoint  *jsonEndpoint     `json:"localEndpoint,omitempty"`
	RemoteEndpoint *jsonEndpoint     `json:"remoteEndpoint,omitempty"`
	Annotations    []jsonAnnotation  `json:"annotations,omitempty"`
	Tags           map[string]string `json:"tags,omitempty"`
}

func timestampMicros(ts int64) int64 {
	if ts < 0 {
		return 0
	}
	return ts / 1000
}

// durationMicros rounds nanos up to whole microseconds, with a floor of 1
// microsecond (zero would denote "absent" on the wire).
func durationMicros(nanos int64) int64 {
	micros := (nanos + 999) / 1000
	if micros < 1 {
		micros = 1
	}
	return micros
}

func toJSONSpan(s ddtrace.SpanModel) jsonSpan {
	js := jsonSpan{
		TraceID: s.TraceID.String(),
		ID:      s.ID.String(),
		Name:    s.Name,
		Debug:   s.Debug,
		Shared:  s.Shared,
		Tags:    s.Tags,
	}
	if s.HasParent {
		js.ParentID = s.ParentID.String()
	}
	if s.HasKind {
		js.Kind = string(s.Kind)
	}
	if s.HasTimestamp {
		js.Timestamp = timestampMicros(s.Timestamp.UnixNano())
	}
	js.Duration = durationMicros(s.Duration.Nanoseconds())
	js.LocalEndpoint = toJSONEndpoint(s.LocalEndpoint)
	if s.HasRemote {
		js.RemoteEndpoint = toJSONEndpoint(s.RemoteEndpoint)
	}
	for _, a := range s.Annotations {
		js.Annotations = append(js.Annotations, jsonAnnotation{
			Timestamp: timestampMicros(a.Timestamp.UnixNano()),
			Value:     a.Value,
		})
	}
	return js
}

// MarshalSpans serializes spans as a JSON array of Zipkin v2 span objects,
// the wire format the HTTP reporter pipeline POSTs to the collector.
func MarshalSpans(spans []ddtrace.SpanModel) ([]byte, error) {
	out := make([]jsonSpan, len(spans))
	for i, s := range spans {
		out[i] = toJSONSpan(s)
	}
	return jsonAPI.Marshal(out)
}

// UnmarshalSpans parses a JSON array of Zipkin v2 span objects back into
// SpanModels. Used by tests verifying the codec's round trip.
func UnmarshalSpans(data []byte) ([]ddtrace.SpanModel, error) {
	var in []jsonSpan
	if err := jsonAPI.Unmarshal(data, &in); err != nil {
		return nil, fmt.Errorf("tracer: malformed span batch: %w", err)
	}
	out := make([]ddtrace.SpanModel, len(in))
	for i, js := range in {
		s, err := fromJSONSpan(js)
		if err != nil {
			return nil, err
		}
		out[i] = s
	}
	return out, nil
}

func microsToTime(us int64) time.Time {
	return time.Unix(0, us*1000)
}

func microsToDuration(us int64) time.Duration {
	return time.Duration(us) * time.Microsecond
}

func fromJSONSpan(js jsonSpan) (ddtrace.SpanModel, error) {
	traceID, err := ddtrace.ParseTraceID(js.TraceID)
	if err != nil {
		return ddtrace.SpanModel{}, err
	}
	id, err := ddtrace.ParseSpanID(js.ID)
	if err != nil {
		return ddtrace.SpanModel{}, err
	}
	s := ddtrace.SpanModel{
		TraceID:       traceID,
		ID:            id,
		Name:          strings.ToLower(js.Name),
		Debug:         js.Debug,
		Shared:        js.Shared,
		Tags:          js.Tags,
		LocalEndpoint: fromJSONEndpoint(js.LocalEndpoint),
	}
	if js.ParentID != "" {
		parentID, err := ddtrace.ParseSpanID(js.ParentID)
		if err != nil {
			return ddtrace.SpanModel{}, err
		}
		s.ParentID = parentID
		s.HasParent = true
	}
	if js.Kind != "" {
		s.Kind = ddtrace.Kind(js.Kind)
		s.HasKind = true
	}
	if js.Timestamp != 0 {
		s.Timestamp = microsToTime(js.Timestamp)
		s.HasTimestamp = true
	}
	if js.Duration != 0 {
		s.Duration = microsToDuration(js.Duration)
	}
	if js.RemoteEndpoint != nil {
		s.RemoteEndpoint = fromJSONEndpoint(js.RemoteEndpoint)
		s.HasRemote = true
	}
	for _, a := range js.Annotations {
		s.Annotations = append(s.Annotations, ddtrace.Annotation{
			Timestamp: microsToTime(a.Timestamp),
			Value:     a.Value,
		})
	}
	return s, nil
}
