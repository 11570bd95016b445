// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2016 Datadog, Inc.

// Command tracelayer-demo exercises the full pipeline end to end: a root
// span with a child and a grandchild, reported either to stderr or to a
// Zipkin v2 collector over HTTP.
package main

import (
	"flag"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/tracelayer/tracelayer/ddtrace"
	"github.com/tracelayer/tracelayer/ddtrace/tracer"
	"github.com/tracelayer/tracelayer/internal/log"
)

var (
	collectorURL string
	serviceName  string
)

func main() {
	flag.StringVar(&collectorURL, "collector", "", "Zipkin v2 collector base URL; empty logs spans instead of POSTing them")
	flag.StringVar(&serviceName, "service", "tracelayer-demo", "local endpoint service name")
	flag.Parse()
	run()
}

func run() {
	opts := []tracer.StartOption{
		tracer.WithService(serviceName),
		tracer.WithSampler(tracer.AlwaysSample),
	}
	var reporter *tracer.HTTPReporter
	if collectorURL != "" {
		reporter = tracer.NewHTTPReporter(collectorURL,
			tracer.WithChunkSize(1),
			tracer.WithErrorHandler(func(err error) { fmt.Println("report error:", err) }),
		)
		opts = append(opts, tracer.WithReporter(reporter))
	} else {
		// The default logging reporter writes at Debug level.
		log.SetLevel(log.LevelDebug)
	}

	t := tracer.NewTracer(opts...)
	defer t.Stop()

	// A correlation id for this demo run, carried as a tag rather than
	// as part of the Zipkin wire model.
	requestID := uuid.New().String()

	root := t.NewTrace()
	root.SetName("handle-request").SetKind(ddtrace.Server).Tag("request.id", requestID)

	child := t.NextSpan()
	child.SetName("call-downstream").SetKind(ddtrace.Client)
	time.Sleep(time.Millisecond)

	grandchild := t.NextSpan()
	grandchild.SetName("decode-response")
	time.Sleep(time.Millisecond)

	grandchild.Finish()
	child.Finish()
	root.Finish()
}
