package xfilter

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/hnflee/datafu/pkg/observability/xlog"
	"github.com/hnflee/datafu/pkg/observability/xmetrics"
	"github.com/hnflee/datafu/pkg/sampling/xrecord"
	"github.com/hnflee/datafu/pkg/sampling/xsampling"
)

// component 日志与指标中的组件名
const component = "xfilter"

// ctxCheckInterval 批量求值时检查 ctx 的间隔
const ctxCheckInterval = 1024

// Evaluator 对有序字段做保留判断
//
// *xsampling.KeySampler 与 *xsampling.CompositeSampler 都实现了该接口。
type Evaluator interface {
	Evaluate(fields ...any) (bool, error)
}

// Sink 接收保留的记录，*xrecord.Writer 实现了该接口
type Sink interface {
	Write(row xrecord.Row) error
}

// Option Filter 选项
type Option func(*Filter)

// WithKeyFields 只用指定下标的字段做 key，顺序即参与哈希的顺序
//
// 不设置时使用记录的全部字段。
func WithKeyFields(idx ...int) Option {
	return func(f *Filter) {
		f.keyFields = append([]int(nil), idx...)
	}
}

// WithLogger 设置日志，默认不输出
func WithLogger(l xlog.Logger) Option {
	return func(f *Filter) {
		f.logger = l
	}
}

// WithObserver 设置观测，默认 NoopObserver
func WithObserver(o xmetrics.Observer) Option {
	return func(f *Filter) {
		if o != nil {
			f.observer = o
		}
	}
}

// WithSkipMalformed 无法解析或无法求值的记录是否跳过
//
// 默认 false：遇到第一条这样的记录即返回错误。
// 为 true 时记录被丢弃、计入 Stats.Skipped 并输出 Warn 日志。
func WithSkipMalformed(skip bool) Option {
	return func(f *Filter) {
		f.skipMalformed = skip
	}
}

// Filter 按 key 采样的记录过滤器，构造后只读，可并发使用
type Filter struct {
	eval          Evaluator
	keyFields     []int
	logger        xlog.Logger
	observer      xmetrics.Observer
	skipMalformed bool
	attrs         []xmetrics.Attr
}

// New 创建过滤器
func New(eval Evaluator, opts ...Option) (*Filter, error) {
	if eval == nil {
		return nil, ErrNilSampler
	}
	f := &Filter{
		eval:     eval,
		observer: xmetrics.NoopObserver{},
	}
	for _, opt := range opts {
		if opt == nil {
			return nil, ErrNilOption
		}
		opt(f)
	}
	for _, i := range f.keyFields {
		if i < 0 {
			return nil, fmt.Errorf("%w: %d", ErrKeyFieldOutOfRange, i)
		}
	}

	f.attrs = evaluatorAttrs(eval)
	return f, nil
}

// evaluatorAttrs 已知采样器类型的观测属性
func evaluatorAttrs(eval Evaluator) []xmetrics.Attr {
	switch e := eval.(type) {
	case *xsampling.KeySampler:
		return []xmetrics.Attr{
			xmetrics.String("salt", e.Salt()),
			xmetrics.Float64("rate", e.Rate()),
		}
	case *xsampling.CompositeSampler:
		return []xmetrics.Attr{
			xmetrics.String("mode", e.Mode().String()),
			xmetrics.Int64("members", int64(len(e.Members()))),
		}
	default:
		return nil
	}
}

// Key 返回记录的 key 字段
//
// 未设置 WithKeyFields 时直接返回 fields。
func (f *Filter) Key(fields []any) ([]any, error) {
	if f.keyFields == nil {
		return fields, nil
	}
	key := make([]any, len(f.keyFields))
	for i, idx := range f.keyFields {
		if idx >= len(fields) {
			return nil, fmt.Errorf("%w: %d (record has %d fields)", ErrKeyFieldOutOfRange, idx, len(fields))
		}
		key[i] = fields[idx]
	}
	return key, nil
}

// Keep 判断一条记录是否保留
func (f *Filter) Keep(fields []any) (bool, error) {
	key, err := f.Key(fields)
	if err != nil {
		return false, err
	}
	return f.eval.Evaluate(key...)
}

// keep 与 Keep 相同，同时把保留的 key 计入 stats
func (f *Filter) keep(row xrecord.Row, stats *Stats) (bool, error) {
	key, err := f.Key(row.Fields)
	if err != nil {
		return false, err
	}
	ok, err := f.eval.Evaluate(key...)
	if err != nil {
		return false, err
	}
	if ok {
		stats.Kept++
		stats.Fingerprint.Add(key)
	} else {
		stats.Dropped++
	}
	return ok, nil
}

// Apply 过滤一批记录，返回的切片复用 rows 的底层数组
//
// 出错时 rows 不被修改。
func (f *Filter) Apply(ctx context.Context, rows []xrecord.Row) (kept []xrecord.Row, stats Stats, err error) {
	ctx, span := xmetrics.Start(ctx, f.observer, f.spanOptions("apply"))
	defer func() { span.End(xmetrics.Result{Err: err}) }()

	mask := make([]bool, len(rows))
	stats, err = f.evalChunk(ctx, rows, mask)
	if err != nil {
		return nil, Stats{}, err
	}
	f.report(ctx, "apply", stats, 1)
	return compact(rows, mask), stats, nil
}

// ApplyParallel 把 rows 切成连续的块并行求值，按输入顺序返回保留的记录
//
// 输出、计数与摘要都与 workers 无关。ctx 取消时尚未完成的块停止求值并返回 ctx 的错误。
func (f *Filter) ApplyParallel(ctx context.Context, rows []xrecord.Row, workers int) (kept []xrecord.Row, stats Stats, err error) {
	if workers < 1 {
		return nil, Stats{}, fmt.Errorf("%w: %d", ErrInvalidWorkers, workers)
	}
	ctx, span := xmetrics.Start(ctx, f.observer, f.spanOptions("apply_parallel", xmetrics.Int64("workers", int64(workers))))
	defer func() { span.End(xmetrics.Result{Err: err}) }()

	n := len(rows)
	workers = max(1, min(workers, n))
	size := (n + workers - 1) / workers

	mask := make([]bool, n)
	parts := make([]Stats, workers)
	g, gctx := errgroup.WithContext(ctx)
	for w := range workers {
		lo := w * size
		hi := min(lo+size, n)
		if lo >= hi {
			break
		}
		g.Go(func() error {
			s, err := f.evalChunk(gctx, rows[lo:hi], mask[lo:hi])
			parts[w] = s
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, Stats{}, err
	}

	for _, p := range parts {
		stats.Merge(p)
	}
	f.report(ctx, "apply_parallel", stats, workers)
	return compact(rows, mask), stats, nil
}

// evalChunk 求值 rows 并写入 mask，mask 与 rows 等长
func (f *Filter) evalChunk(ctx context.Context, rows []xrecord.Row, mask []bool) (Stats, error) {
	var stats Stats
	for i, row := range rows {
		if i%ctxCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return stats, err
			}
		}
		ok, err := f.keep(row, &stats)
		if err != nil {
			if !f.skipMalformed {
				return stats, fmt.Errorf("line %d: %w", row.Line, err)
			}
			stats.Skipped++
			f.warnSkipped(ctx, row.Line, err)
			continue
		}
		mask[i] = ok
	}
	return stats, nil
}

// Run 从 src 逐条读取，保留的记录写入 sink，直到 io.EOF
//
// 读取器返回 xrecord.ErrMalformedRecord 时按 WithSkipMalformed 处理；
// 其它读取错误、写入错误与 ctx 取消都会终止并返回已累计的 Stats。
func (f *Filter) Run(ctx context.Context, src xrecord.Reader, sink Sink) (stats Stats, err error) {
	if src == nil || sink == nil {
		return Stats{}, ErrNilSource
	}
	ctx, span := xmetrics.Start(ctx, f.observer, f.spanOptions("run"))
	start := time.Now()
	defer func() {
		span.End(xmetrics.Result{Err: err, Attrs: []xmetrics.Attr{
			xmetrics.Int64("kept", stats.Kept),
			xmetrics.Int64("dropped", stats.Dropped),
		}})
		f.report(ctx, "run", stats, 1, xlog.Duration(time.Since(start)))
	}()

	for {
		if err := ctx.Err(); err != nil {
			return stats, err
		}
		row, err := src.Read()
		if errors.Is(err, io.EOF) {
			return stats, nil
		}
		if err != nil {
			if !f.skipMalformed || !errors.Is(err, xrecord.ErrMalformedRecord) {
				return stats, err
			}
			stats.Skipped++
			f.warnSkipped(ctx, row.Line, err)
			continue
		}

		ok, err := f.keep(row, &stats)
		if err != nil {
			if !f.skipMalformed {
				return stats, fmt.Errorf("line %d: %w", row.Line, err)
			}
			stats.Skipped++
			f.warnSkipped(ctx, row.Line, err)
			continue
		}
		if !ok {
			continue
		}
		if err := sink.Write(row); err != nil {
			return stats, fmt.Errorf("xfilter: write line %d: %w", row.Line, err)
		}
	}
}

func (f *Filter) spanOptions(op string, extra ...xmetrics.Attr) xmetrics.SpanOptions {
	attrs := make([]xmetrics.Attr, 0, len(f.attrs)+len(extra))
	attrs = append(attrs, f.attrs...)
	attrs = append(attrs, extra...)
	return xmetrics.SpanOptions{Component: component, Operation: op, Attrs: attrs}
}

// report 上报计数并输出汇总日志
func (f *Filter) report(ctx context.Context, op string, stats Stats, workers int, extra ...slog.Attr) {
	xmetrics.Record(ctx, f.observer, stats.decisions(), f.attrs...)
	if f.logger == nil {
		return
	}
	attrs := []slog.Attr{
		xlog.Component(component),
		xlog.Operation(op),
		xlog.Kept(stats.Kept),
		xlog.Dropped(stats.Dropped),
		xlog.Skipped(stats.Skipped),
		xlog.Fingerprint(stats.Fingerprint.String()),
	}
	if workers > 1 {
		attrs = append(attrs, slog.Int("workers", workers))
	}
	attrs = append(attrs, extra...)
	f.logger.Info(ctx, "sampling finished", attrs...)
}

func (f *Filter) warnSkipped(ctx context.Context, line int, err error) {
	if f.logger == nil {
		return
	}
	f.logger.Warn(ctx, "record skipped", xlog.Component(component), xlog.Line(line), xlog.Err(err))
}

// compact 按 mask 原地保留记录
func compact(rows []xrecord.Row, mask []bool) []xrecord.Row {
	out := rows[:0]
	for i, ok := range mask {
		if ok {
			out = append(out, rows[i])
		}
	}
	return out
}
