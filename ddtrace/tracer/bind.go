// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2016 Datadog, Inc.

package tracer

// Task is a computation advanced one step at a time, yielding a value of
// type T once done is true. Bind wraps one so that every step runs with a
// bound trace context installed as current.
type Task[T any] func() (value T, done bool)

// BoundTask is the asynchronous binding adapter: a Task wrapped so
// that every resumption installs the bound span's context as current for
// the step's duration, then uninstalls it, mirroring the install/restore
// a *OpenSpan does for synchronous code. Dropping a BoundTask without
// driving it to completion is legal; Close finishes the span exactly as a
// completed Poll would.
type BoundTask[T any] struct {
	span *DetachedSpan
	fn   Task[T]
	done bool
}

// Bind consumes a detached span and a Task, producing a new Task-like
// value whose Poll installs the span's context around each resumption.
// The detached span must not be used after calling Bind.
func Bind[T any](span *DetachedSpan, fn Task[T]) *BoundTask[T] {
	return &BoundTask[T]{span: span, fn: fn}
}

// Poll advances the computation by one resumption: installs the bound
// context as current on the calling goroutine, delegates to the inner
// Task, then uninstalls before returning. Once the inner Task reports
// done, the bound span is finished (and reported, if real) and further
// Poll calls return the zero value with done=true without invoking the
// inner Task again.
func (b *BoundTask[T]) Poll() (value T, done bool) {
	if b.done {
		var zero T
		return zero, true
	}
	attached := b.span.Attach()
	value, done = b.fn()
	b.span = attached.Detach()
	if done {
		b.done = true
		b.span.Finish()
	}
	return value, done
}

// Close disposes the bound span immediately without running another
// step, for the cancellation case: dropping the outer computation before
// it completes must not leak the span.
func (b *BoundTask[T]) Close() {
	if b.done {
		return
	}
	b.done = true
	b.span.Finish()
}

// RunToCompletion polls task until it reports done, returning its final
// value. This is the common case where the inner computation doesn't
// actually suspend between steps (Go has no stackless coroutines to
// suspend); task's Task func is expected to do its own blocking, if any,
// before returning done=true.
func RunToCompletion[T any](task *BoundTask[T]) T {
	for {
		v, done := task.Poll()
		if done {
			return v
		}
	}
}

// Go runs fn on a new goroutine with span's context bound for the
// goroutine's entire body, the common case of handing a detached span to
// asynchronous work dispatched to another goroutine. The span is finished
// when fn returns.
func Go(span *DetachedSpan, fn func()) {
	go func() {
		task := Bind(span, func() (struct{}, bool) {
			fn()
			return struct{}{}, true
		})
		RunToCompletion(task)
	}()
}
