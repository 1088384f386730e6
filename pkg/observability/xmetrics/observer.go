package xmetrics

import "context"

// Status 操作结果状态
type Status string

const (
	StatusOK    Status = "ok"
	StatusError Status = "error"
)

// 决策标签
const (
	DecisionKept    = "kept"
	DecisionDropped = "dropped"
	DecisionSkipped = "skipped"
)

// SpanOptions 观测跨度参数
type SpanOptions struct {
	Component string
	Operation string
	Attrs     []Attr
}

// Result 跨度结束时的结果，Status 为空时由 Err 推导
type Result struct {
	Status Status
	Err    error
	Attrs  []Attr
}

// Span 一次观测跨度
type Span interface {
	End(result Result)
}

// Decisions 一批记录的决策计数
type Decisions struct {
	Kept    int64
	Dropped int64
	Skipped int64
}

// Seen 返回参与决策或被跳过的记录总数
func (d Decisions) Seen() int64 {
	return d.Kept + d.Dropped + d.Skipped
}

// Add 累加另一批计数
func (d *Decisions) Add(o Decisions) {
	d.Kept += o.Kept
	d.Dropped += o.Dropped
	d.Skipped += o.Skipped
}

// Observer 观测接口
type Observer interface {
	// Start 开始一次观测跨度。
	Start(ctx context.Context, opts SpanOptions) (context.Context, Span)

	// RecordDecisions 累加采样决策计数。
	RecordDecisions(ctx context.Context, d Decisions, attrs ...Attr)
}

// NoopObserver 空实现
type NoopObserver struct{}

// Start 返回原 ctx 与空跨度
func (NoopObserver) Start(ctx context.Context, _ SpanOptions) (context.Context, Span) {
	if ctx == nil {
		ctx = context.Background()
	}
	return ctx, NoopSpan{}
}

// RecordDecisions 空实现
func (NoopObserver) RecordDecisions(context.Context, Decisions, ...Attr) {}

// NoopSpan 空跨度
type NoopSpan struct{}

// End 空实现
func (NoopSpan) End(Result) {}

// Start 用 observer 开始跨度，保证返回非 nil 的 ctx 与 Span
//
// observer 为 nil 时返回空跨度。
func Start(ctx context.Context, observer Observer, opts SpanOptions) (context.Context, Span) {
	if ctx == nil {
		ctx = context.Background()
	}
	if observer == nil {
		return ctx, NoopSpan{}
	}
	retCtx, span := observer.Start(ctx, opts)
	if retCtx == nil {
		retCtx = ctx
	}
	if span == nil {
		span = NoopSpan{}
	}
	return retCtx, span
}

// Record 用 observer 记录决策计数，observer 为 nil 时忽略
func Record(ctx context.Context, observer Observer, d Decisions, attrs ...Attr) {
	if observer == nil {
		return
	}
	if ctx == nil {
		ctx = context.Background()
	}
	observer.RecordDecisions(ctx, d, attrs...)
}
