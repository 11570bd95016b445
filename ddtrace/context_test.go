// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2016 Datadog, Inc.

package ddtrace

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewRootContextHasNoParent(t *testing.T) {
	ctx := NewRootContext(NewTraceID64(1), SpanID(2), DefaultSamplingFlags)
	assert.True(t, ctx.IsRoot())
	_, ok := ctx.Parent()
	assert.False(t, ok)
}

func TestNewChildContextInheritsTraceAndFlags(t *testing.T) {
	root := NewRootContext(NewTraceID64(1), SpanID(2), DebugSamplingFlags)
	child := NewChildContext(root, SpanID(3))

	assert.False(t, child.IsRoot())
	parent, ok := child.Parent()
	assert.True(t, ok)
	assert.Equal(t, root.SpanID, parent)
	assert.True(t, root.TraceID.Equal(child.TraceID))
	assert.Equal(t, root.Flags, child.Flags)
	assert.Equal(t, SpanID(3), child.SpanID)
}

func TestWithFlagsDoesNotMutateOriginal(t *testing.T) {
	root := NewRootContext(NewTraceID64(1), SpanID(2), DefaultSamplingFlags)
	updated := root.WithFlags(DebugSamplingFlags)

	assert.False(t, root.Flags.Decided())
	assert.True(t, updated.Flags.Debug())
}
