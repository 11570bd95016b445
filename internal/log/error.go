// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2016 Datadog, Inc.

package log

import (
	"fmt"
	"sync"
	"time"
)

// defaultErrorLimit bounds how many repeats of the same error format are
// counted exactly before the aggregate switches to a "N+" floor; this
// keeps a single hot error from growing an unbounded string.
const defaultErrorLimit = 200

// errrate selects how Error emits. A value of zero (or less) disables
// aggregation: every Error call is emitted immediately, which is useful
// for tests and for diagnosing a flush bug. Any positive value aggregates
// until the next Flush; only the sign is read, and no flush interval is
// derived from it.
var errrate = time.Minute

var (
	errMu      sync.Mutex
	errEntries = map[string]*errEntry{}
	errOrder   []string
)

type errEntry struct {
	first string
	count int
}

// Error records an error-level message. Unless errrate is zero, repeats
// of the same format string are aggregated and only emitted on the next
// Flush, to keep a tight retry loop from flooding the sink.
func Error(format string, args ...interface{}) {
	if errrate <= 0 {
		emit("ERROR", format, args...)
		return
	}
	errMu.Lock()
	defer errMu.Unlock()
	e, ok := errEntries[format]
	if !ok {
		e = &errEntry{first: fmt.Sprintf(format, args...)}
		errEntries[format] = e
		errOrder = append(errOrder, format)
	}
	e.count++
}

// Flush emits and clears every aggregated error recorded since the last
// Flush. The reporter's background worker calls this periodically so
// that suppressed errors are never lost, only delayed.
func Flush() {
	errMu.Lock()
	entries := errEntries
	order := errOrder
	errEntries = map[string]*errEntry{}
	errOrder = nil
	errMu.Unlock()

	for _, k := range order {
		e := entries[k]
		additional := e.count - 1
		switch {
		case additional <= 0:
			emitRaw("ERROR", e.first)
		case additional >= defaultErrorLimit:
			emitRaw("ERROR", fmt.Sprintf("%s, %d+ additional messages skipped", e.first, defaultErrorLimit))
		default:
			emitRaw("ERROR", fmt.Sprintf("%s, %d additional messages skipped", e.first, additional))
		}
	}
}

func emitRaw(level, m string) {
	mu.Lock()
	l := logger
	mu.Unlock()
	l.Log(msg(level, m))
}
