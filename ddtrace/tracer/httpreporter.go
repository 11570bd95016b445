// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2016 Datadog, Inc.

package tracer

import (
	"bytes"
	"net"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"go.uber.org/atomic"
	"golang.org/x/time/rate"

	"github.com/tracelayer/tracelayer/ddtrace"
	"github.com/tracelayer/tracelayer/internal/log"
)

const (
	defaultQueueSize   = 100
	defaultChunkSize   = 20
	defaultConcurrency = 5
	spansPath          = "/api/v2/spans"
)

var defaultDialer = &net.Dialer{
	Timeout:   30 * time.Second,
	KeepAlive: 30 * time.Second,
}

func defaultHTTPClient() *http.Client {
	return &http.Client{
		Transport: &http.Transport{
			Proxy:                 http.ProxyFromEnvironment,
			DialContext:           defaultDialer.DialContext,
			MaxIdleConns:          100,
			IdleConnTimeout:       90 * time.Second,
			TLSHandshakeTimeout:   10 * time.Second,
			ExpectContinueTimeout: 1 * time.Second,
		},
	}
}

// HTTPReporterOption configures an HTTPReporter.
type HTTPReporterOption func(*httpReporterConfig)

type httpReporterConfig struct {
	queueSize   int
	chunkSize   int
	concurrency int
	client      *http.Client
	onError     func(error)
}

// WithQueueSize sets the bounded queue's capacity. Defaults to 100.
func WithQueueSize(n int) HTTPReporterOption {
	return func(c *httpReporterConfig) { c.queueSize = n }
}

// WithChunkSize sets how many spans the background worker batches per
// POST. Panics at construction if n is 0. Defaults to 20.
func WithChunkSize(n int) HTTPReporterOption {
	return func(c *httpReporterConfig) { c.chunkSize = n }
}

// WithConcurrency sets how many POSTs may be in flight simultaneously.
// Panics at construction if n is 0. Defaults to 5.
func WithConcurrency(n int) HTTPReporterOption {
	return func(c *httpReporterConfig) { c.concurrency = n }
}

// WithHTTPClient overrides the *http.Client used for POSTs.
func WithHTTPClient(client *http.Client) HTTPReporterOption {
	return func(c *httpReporterConfig) { c.client = client }
}

// WithErrorHandler overrides how transport/HTTP-status/serialization
// errors are surfaced. Defaults to logging via internal/log.
func WithErrorHandler(f func(error)) HTTPReporterOption {
	return func(c *httpReporterConfig) { c.onError = f }
}

// HTTPReporter is the HTTP reporter pipeline: a bounded queue feeds a
// background batcher that serializes spans to Zipkin v2 JSON and POSTs
// them to a collector, with bounded concurrency and drop-on-full
// back-pressure. Report never blocks the calling goroutine.
type HTTPReporter struct {
	url         string
	client      *http.Client
	chunkSize   int
	queue       chan ddtrace.SpanModel
	sem         chan struct{}
	onError     func(error)
	dropLimiter *rate.Limiter

	stopOnce sync.Once
	stopCh   chan struct{}
	stopping atomic.Bool
	wg       sync.WaitGroup
}

var _ ddtrace.Reporter = (*HTTPReporter)(nil)

// NewHTTPReporter builds an HTTPReporter posting batches to
// collectorURL+"/api/v2/spans" and starts its background worker goroutine.
func NewHTTPReporter(collectorURL string, opts ...HTTPReporterOption) *HTTPReporter {
	cfg := httpReporterConfig{
		queueSize:   defaultQueueSize,
		chunkSize:   defaultChunkSize,
		concurrency: defaultConcurrency,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.chunkSize == 0 {
		panic("tracer: chunk size must be at least 1")
	}
	if cfg.concurrency == 0 {
		panic("tracer: concurrency must be at least 1")
	}
	if cfg.client == nil {
		cfg.client = defaultHTTPClient()
	}
	if cfg.onError == nil {
		cfg.onError = func(err error) { log.Error("tracer: %s", err) }
	}

	r := &HTTPReporter{
		url:         appendSpansPath(collectorURL),
		client:      cfg.client,
		chunkSize:   cfg.chunkSize,
		queue:       make(chan ddtrace.SpanModel, cfg.queueSize),
		sem:         make(chan struct{}, cfg.concurrency),
		onError:     cfg.onError,
		dropLimiter: rate.NewLimiter(rate.Every(time.Second), 1),
		stopCh:      make(chan struct{}),
	}
	r.wg.Add(2)
	go r.run()
	go r.flushLog()
	return r
}

// flushLog periodically flushes internal/log's aggregated error counters
// (see its doc comment) so a burst of identical reporter errors is never
// suppressed indefinitely, only delayed.
func (r *HTTPReporter) flushLog() {
	defer r.wg.Done()
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			log.Flush()
		case <-r.stopCh:
			log.Flush()
			return
		}
	}
}

// appendSpansPath appends /api/v2/spans to raw, preserving any query
// string and ensuring exactly one path separator.
func appendSpansPath(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return strings.TrimSuffix(raw, "/") + spansPath
	}
	u.Path = strings.TrimSuffix(u.Path, "/") + spansPath
	return u.String()
}

// Report implements ddtrace.Reporter: a non-blocking enqueue. On a full
// queue the span is dropped and a rate-limited diagnostic is logged; no
// error is surfaced to the caller.
func (r *HTTPReporter) Report(s ddtrace.SpanModel) {
	select {
	case r.queue <- s:
	default:
		if r.dropLimiter.Allow() {
			log.Warn("tracer: reporter queue full, dropping span %s", s.ID)
		}
	}
}

// Stop drains the queue, waits for in-flight POSTs to finish, and stops
// the background worker. Safe to call more than once.
func (r *HTTPReporter) Stop() {
	r.stopOnce.Do(func() { close(r.stopCh) })
	r.wg.Wait()
}

func (r *HTTPReporter) run() {
	defer r.wg.Done()
	var posts sync.WaitGroup
	defer posts.Wait()
	for {
		var batch []ddtrace.SpanModel
		if !r.stopping.Load() {
			select {
			case s := <-r.queue:
				batch = append(batch, s)
			case <-r.stopCh:
				r.stopping.Store(true)
			}
		}
		batch = r.drainUpTo(r.chunkSize, batch)
		if len(batch) > 0 {
			r.dispatch(batch, &posts)
			continue
		}
		if r.stopping.Load() {
			return
		}
	}
}

// drainUpTo reads additional spans off the queue without blocking, up to
// a total of n, returning fewer if the queue is momentarily empty
// between reads.
func (r *HTTPReporter) drainUpTo(n int, batch []ddtrace.SpanModel) []ddtrace.SpanModel {
	for len(batch) < n {
		select {
		case s := <-r.queue:
			batch = append(batch, s)
		default:
			return batch
		}
	}
	return batch
}

func (r *HTTPReporter) dispatch(batch []ddtrace.SpanModel, posts *sync.WaitGroup) {
	r.sem <- struct{}{}
	posts.Add(1)
	go func() {
		defer posts.Done()
		defer func() { <-r.sem }()
		r.post(batch)
	}()
}

func (r *HTTPReporter) post(batch []ddtrace.SpanModel) {
	body, err := MarshalSpans(batch)
	if err != nil {
		r.onError(&ReporterError{Kind: ErrorKindSerialization, Cause: err})
		return
	}
	req, err := http.NewRequest(http.MethodPost, r.url, bytes.NewReader(body))
	if err != nil {
		r.onError(&ReporterError{Kind: ErrorKindTransport, Cause: err})
		return
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := r.client.Do(req)
	if err != nil {
		r.onError(&ReporterError{Kind: ErrorKindTransport, Cause: err})
		return
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		r.onError(&ReporterError{Kind: ErrorKindHTTPStatus, Status: resp.StatusCode})
	}
}

