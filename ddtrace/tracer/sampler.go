// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2016 Datadog, Inc.

package tracer

import (
	"fmt"
	"math/rand"
	"sync"

	"github.com/tracelayer/tracelayer/ddtrace"
)

// alwaysSampler always returns the same decision, independent of the
// trace id.
type alwaysSampler bool

func (a alwaysSampler) Sample(ddtrace.TraceID) bool { return bool(a) }

// AlwaysSample is a Sampler that samples every trace.
var AlwaysSample ddtrace.Sampler = alwaysSampler(true)

// NeverSample is a Sampler that samples no trace.
var NeverSample ddtrace.Sampler = alwaysSampler(false)

// rateSampler samples a uniform-random fraction of traces, independent
// of the identifier's bits: each call draws once from a shared
// generator and compares against the configured rate.
type rateSampler struct {
	mu   sync.Mutex
	rnd  *rand.Rand
	rate float64
}

// NewRateSampler returns a Sampler that samples approximately rate
// (a fraction in [0,1]) of traces. It panics if rate is outside that
// range: nonsensical configuration is rejected at construction time
// rather than at use.
func NewRateSampler(rate float64) ddtrace.Sampler {
	if rate < 0 || rate > 1 {
		panic(fmt.Sprintf("tracer: sampling rate must be in [0,1], got %v", rate))
	}
	return &rateSampler{rnd: rand.New(rand.NewSource(rand.Int63())), rate: rate}
}

func (s *rateSampler) Sample(ddtrace.TraceID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rnd.Float64() < s.rate
}
