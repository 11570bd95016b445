// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2016 Datadog, Inc.

// Package globaltracer holds the process-wide, write-once Tracer consulted
// by the package-level free functions in ddtrace/tracer. A second Install
// before Stop returns ErrAlreadyInstalled instead of silently replacing the
// running tracer.
package globaltracer

import (
	"errors"
	"sync"
	"sync/atomic"

	"github.com/tracelayer/tracelayer/ddtrace"
)

// ErrAlreadyInstalled is returned by Install when a tracer is already
// active. Applications never need to check for it before tracing: every
// tracing operation still succeeds against the no-op tracer until Install
// succeeds.
var ErrAlreadyInstalled = errors.New("globaltracer: a tracer is already installed")

type holder struct{ t ddtrace.Tracer }

var (
	val       atomic.Value // holds *holder; read on every hot-path lookup, lock-free
	mu        sync.Mutex   // guards the install-once transition only
	installed bool
)

func init() {
	val.Store(&holder{t: noopTracer{}})
}

// Install sets t as the global tracer. It fails with ErrAlreadyInstalled if
// a tracer is already installed; call Stop first to replace one.
func Install(t ddtrace.Tracer) error {
	mu.Lock()
	defer mu.Unlock()
	if installed {
		return ErrAlreadyInstalled
	}
	installed = true
	val.Store(&holder{t: t})
	return nil
}

// Current returns the active tracer, or a no-op tracer if none has been
// installed. Callers never need to nil-check: every method on the returned
// value is always safe to call.
func Current() ddtrace.Tracer {
	return val.Load().(*holder).t
}

// Stop uninstalls the global tracer, if any, stopping its reporter pipeline
// and reverting subsequent operations to no-op spans.
func Stop() {
	mu.Lock()
	defer mu.Unlock()
	if !installed {
		return
	}
	t := val.Load().(*holder).t
	installed = false
	val.Store(&holder{t: noopTracer{}})
	t.Stop()
}

// ResetForTest clears the installed flag and restores the no-op tracer,
// without stopping whatever was installed. Intended for test teardown
// only, where the installed tracer's lifecycle is managed separately.
func ResetForTest() {
	mu.Lock()
	defer mu.Unlock()
	installed = false
	val.Store(&holder{t: noopTracer{}})
}
