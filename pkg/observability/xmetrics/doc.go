// Package xmetrics 提供采样管线使用的观测接口（metrics + tracing）。
//
// 业务代码只依赖 [Observer]；默认实现基于 OpenTelemetry，
// 测试或不需要观测时使用 [NoopObserver]。
//
//	obs, err := xmetrics.NewOTelObserver(xmetrics.WithMeterProvider(mp))
//	ctx, span := xmetrics.Start(ctx, obs, xmetrics.SpanOptions{
//		Component: "xfilter",
//		Operation: "apply",
//	})
//	defer span.End(xmetrics.Result{Err: err})
//	xmetrics.Record(ctx, obs, xmetrics.Decisions{Kept: 3, Dropped: 7})
//
// # 指标
//
//   - datafu.sampling.operation.total：操作次数，属性 component / operation / status
//   - datafu.sampling.operation.duration：操作耗时（秒）
//   - datafu.sampling.records：决策计数，属性 decision = kept / dropped / skipped
package xmetrics
