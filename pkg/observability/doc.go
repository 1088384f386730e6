// Package observability 提供可观测性相关的子包。
//
// 子包列表：
//   - xlog: 结构化日志，基于 log/slog 扩展，支持文件轮转
//   - xmetrics: 采样运行的指标与追踪，基于 OpenTelemetry
package observability
