package xmetrics

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

const (
	defaultInstrumentationName = "github.com/hnflee/datafu/xmetrics"
	unknown                    = "unknown"

	metricOperationTotal    = "datafu.sampling.operation.total"
	metricOperationDuration = "datafu.sampling.operation.duration"
	metricRecords           = "datafu.sampling.records"

	attrDecision = "decision"
)

type otelConfig struct {
	instrumentationName string
	tracerProvider      trace.TracerProvider
	meterProvider       metric.MeterProvider
}

// Option OTel Observer 选项
type Option func(*otelConfig)

// WithInstrumentationName 设置 instrumentation 名称，空字符串忽略
func WithInstrumentationName(name string) Option {
	return func(cfg *otelConfig) {
		if name != "" {
			cfg.instrumentationName = name
		}
	}
}

// WithTracerProvider 设置 TracerProvider，nil 时使用全局 provider
func WithTracerProvider(provider trace.TracerProvider) Option {
	return func(cfg *otelConfig) {
		if provider != nil {
			cfg.tracerProvider = provider
		}
	}
}

// WithMeterProvider 设置 MeterProvider，nil 时使用全局 provider
func WithMeterProvider(provider metric.MeterProvider) Option {
	return func(cfg *otelConfig) {
		if provider != nil {
			cfg.meterProvider = provider
		}
	}
}

// OTelObserver 基于 OpenTelemetry 的 Observer
type OTelObserver struct {
	tracer   trace.Tracer
	total    metric.Int64Counter
	duration metric.Float64Histogram
	records  metric.Int64Counter
}

var _ Observer = (*OTelObserver)(nil)

// NewOTelObserver 创建 OTel Observer
func NewOTelObserver(opts ...Option) (*OTelObserver, error) {
	cfg := &otelConfig{
		instrumentationName: defaultInstrumentationName,
		tracerProvider:      otel.GetTracerProvider(),
		meterProvider:       otel.GetMeterProvider(),
	}
	for _, opt := range opts {
		if opt == nil {
			return nil, ErrNilOption
		}
		opt(cfg)
	}

	meter := cfg.meterProvider.Meter(cfg.instrumentationName)

	total, err := meter.Int64Counter(metricOperationTotal,
		metric.WithDescription("sampling operations"),
		metric.WithUnit("1"))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrCreateInstrument, metricOperationTotal, err)
	}
	duration, err := meter.Float64Histogram(metricOperationDuration,
		metric.WithDescription("sampling operation duration"),
		metric.WithUnit("s"))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrCreateInstrument, metricOperationDuration, err)
	}
	records, err := meter.Int64Counter(metricRecords,
		metric.WithDescription("records by sampling decision"),
		metric.WithUnit("{record}"))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrCreateInstrument, metricRecords, err)
	}

	return &OTelObserver{
		tracer:   cfg.tracerProvider.Tracer(cfg.instrumentationName),
		total:    total,
		duration: duration,
		records:  records,
	}, nil
}

// Start 开始一个 internal 跨度
func (o *OTelObserver) Start(ctx context.Context, opts SpanOptions) (context.Context, Span) {
	if ctx == nil {
		ctx = context.Background()
	}
	component := orUnknown(opts.Component)
	operation := orUnknown(opts.Operation)

	attrs := make([]attribute.KeyValue, 0, 2+len(opts.Attrs))
	attrs = append(attrs,
		attribute.String("component", component),
		attribute.String("operation", operation),
	)
	attrs = append(attrs, toOTel(opts.Attrs)...)

	ctx, span := o.tracer.Start(ctx, operation,
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(attrs...))

	return ctx, &otelSpan{
		span:      span,
		observer:  o,
		ctx:       ctx,
		component: component,
		operation: operation,
		start:     time.Now(),
	}
}

// RecordDecisions 按 decision 属性累加计数，零值计数不上报
func (o *OTelObserver) RecordDecisions(ctx context.Context, d Decisions, attrs ...Attr) {
	if ctx == nil {
		ctx = context.Background()
	}
	base := toOTel(attrs)
	add := func(decision string, n int64) {
		if n <= 0 {
			return
		}
		kv := make([]attribute.KeyValue, 0, len(base)+1)
		kv = append(kv, base...)
		kv = append(kv, attribute.String(attrDecision, decision))
		o.records.Add(ctx, n, metric.WithAttributes(kv...))
	}
	add(DecisionKept, d.Kept)
	add(DecisionDropped, d.Dropped)
	add(DecisionSkipped, d.Skipped)
}

type otelSpan struct {
	span      trace.Span
	observer  *OTelObserver
	ctx       context.Context
	component string
	operation string
	start     time.Time
	once      sync.Once
}

// End 结束跨度并记录指标，多次调用只生效一次
func (s *otelSpan) End(result Result) {
	s.once.Do(func() {
		status := result.Status
		if status == "" {
			status = StatusOK
			if result.Err != nil {
				status = StatusError
			}
		}

		if result.Err != nil {
			s.span.RecordError(result.Err)
		}
		if status == StatusError {
			desc := "operation failed"
			if result.Err != nil {
				desc = result.Err.Error()
			}
			s.span.SetStatus(codes.Error, desc)
		} else {
			s.span.SetStatus(codes.Ok, "")
		}
		if len(result.Attrs) > 0 {
			s.span.SetAttributes(toOTel(result.Attrs)...)
		}
		s.span.End()

		// ctx 已取消时指标仍需记录
		ctx := context.WithoutCancel(s.ctx)
		kv := metric.WithAttributes(
			attribute.String("component", s.component),
			attribute.String("operation", s.operation),
			attribute.String("status", string(status)),
		)
		s.observer.total.Add(ctx, 1, kv)
		s.observer.duration.Record(ctx, time.Since(s.start).Seconds(), kv)
	})
}

func orUnknown(s string) string {
	if s == "" {
		return unknown
	}
	return s
}

func toOTel(attrs []Attr) []attribute.KeyValue {
	if len(attrs) == 0 {
		return nil
	}
	out := make([]attribute.KeyValue, 0, len(attrs))
	for _, a := range attrs {
		if a.Key == "" || a.Value == nil {
			continue
		}
		switch v := a.Value.(type) {
		case string:
			out = append(out, attribute.String(a.Key, v))
		case bool:
			out = append(out, attribute.Bool(a.Key, v))
		case int:
			out = append(out, attribute.Int(a.Key, v))
		case int32:
			out = append(out, attribute.Int64(a.Key, int64(v)))
		case int64:
			out = append(out, attribute.Int64(a.Key, v))
		case float64:
			out = append(out, attribute.Float64(a.Key, v))
		default:
			out = append(out, attribute.String(a.Key, fmt.Sprint(v)))
		}
	}
	return out
}
