// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2016 Datadog, Inc.

// Package ext contains constants used throughout the tracer and its
// propagation codecs: B3 header names and the short annotation event
// codes conventionally used to mark the four sides of an RPC.
package ext

const (
	// B3TraceID is the multi-header trace id field.
	B3TraceID = "X-B3-TraceId"
	// B3SpanID is the multi-header span id field.
	B3SpanID = "X-B3-SpanId"
	// B3ParentSpanID is the multi-header parent span id field.
	B3ParentSpanID = "X-B3-ParentSpanId"
	// B3Sampled is the multi-header sampling decision field: "1" or "0".
	B3Sampled = "X-B3-Sampled"
	// B3Flags is the multi-header debug field: "1" iff debug.
	B3Flags = "X-B3-Flags"
	// B3Single is the single-header form's field name.
	B3Single = "b3"
)

const (
	// AnnotationClientSend marks the instant a client sent a request.
	AnnotationClientSend = "cs"
	// AnnotationClientReceive marks the instant a client received a response.
	AnnotationClientReceive = "cr"
	// AnnotationServerReceive marks the instant a server received a request.
	AnnotationServerReceive = "sr"
	// AnnotationServerSend marks the instant a server sent a response.
	AnnotationServerSend = "ss"
)
