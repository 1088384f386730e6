package xmetrics

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

type nilObserver struct{}

func (nilObserver) Start(context.Context, SpanOptions) (context.Context, Span) { return nil, nil }
func (nilObserver) RecordDecisions(context.Context, Decisions, ...Attr)      {}

func TestStart_NilSafety(t *testing.T) {
	//nolint:staticcheck // nil ctx 兼容
	ctx, span := Start(nil, nil, SpanOptions{})
	assert.NotNil(t, ctx)
	assert.IsType(t, NoopSpan{}, span)

	ctx, span = Start(context.Background(), nilObserver{}, SpanOptions{})
	assert.NotNil(t, ctx)
	assert.IsType(t, NoopSpan{}, span)
	span.End(Result{})
}

func TestNoopObserver(t *testing.T) {
	var obs Observer = NoopObserver{}
	//nolint:staticcheck // nil ctx 兼容
	ctx, span := obs.Start(nil, SpanOptions{})
	assert.NotNil(t, ctx)
	span.End(Result{})
	obs.RecordDecisions(ctx, Decisions{Kept: 1})
	Record(ctx, nil, Decisions{Kept: 1})
	Record(ctx, obs, Decisions{Kept: 1})
}

func TestDecisions(t *testing.T) {
	d := Decisions{Kept: 1, Dropped: 2}
	d.Add(Decisions{Kept: 3, Skipped: 4})
	assert.Equal(t, Decisions{Kept: 4, Dropped: 2, Skipped: 4}, d)
	assert.Equal(t, int64(10), d.Seen())
}
