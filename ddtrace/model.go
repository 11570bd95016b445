// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2016 Datadog, Inc.

package ddtrace

import "time"

// Kind classifies the relationship a span has to the remote side of a
// call, per the Zipkin v2 data model.
type Kind string

const (
	// Client marks a span as the caller's side of a remote call.
	Client Kind = "CLIENT"
	// Server marks a span as the callee's side of a remote call.
	Server Kind = "SERVER"
	// Producer marks a span as enqueuing a message for async processing.
	Producer Kind = "PRODUCER"
	// Consumer marks a span as processing a message enqueued elsewhere.
	Consumer Kind = "CONSUMER"
)

// Endpoint describes the process that produced a span.
type Endpoint struct {
	ServiceName string
	IPv4        [4]byte
	IPv6        [16]byte
	Port        uint16

	hasIPv4 bool
	hasIPv6 bool
}

// NewEndpoint builds an Endpoint with the given service name.
func NewEndpoint(serviceName string) Endpoint {
	return Endpoint{ServiceName: serviceName}
}

// WithIPv4 returns a copy of e with the IPv4 address set.
func (e Endpoint) WithIPv4(ip [4]byte) Endpoint {
	e.IPv4 = ip
	e.hasIPv4 = true
	return e
}

// WithIPv6 returns a copy of e with the IPv6 address set.
func (e Endpoint) WithIPv6(ip [16]byte) Endpoint {
	e.IPv6 = ip
	e.hasIPv6 = true
	return e
}

// WithPort returns a copy of e with the port set.
func (e Endpoint) WithPort(port uint16) Endpoint {
	e.Port = port
	return e
}

// HasIPv4 reports whether an IPv4 address is set.
func (e Endpoint) HasIPv4() bool { return e.hasIPv4 }

// HasIPv6 reports whether an IPv6 address is set.
func (e Endpoint) HasIPv6() bool { return e.hasIPv6 }

// Empty reports whether the endpoint carries no information at all.
func (e Endpoint) Empty() bool {
	return e.ServiceName == "" && !e.hasIPv4 && !e.hasIPv6 && e.Port == 0
}

// Annotation is a single timestamped event within a span.
type Annotation struct {
	Timestamp time.Time
	Value     string
}

// SpanModel is the immutable, finished span record handed to a Reporter.
// Field names mirror the Zipkin v2 wire model.
type SpanModel struct {
	TraceID        TraceID
	ID             SpanID
	ParentID       SpanID
	HasParent      bool
	Name           string
	Kind           Kind
	HasKind        bool
	Timestamp      time.Time
	HasTimestamp   bool
	Duration       time.Duration
	Debug          bool
	Shared         bool
	LocalEndpoint  Endpoint
	RemoteEndpoint Endpoint
	HasRemote      bool
	Annotations    []Annotation
	Tags           map[string]string
}
