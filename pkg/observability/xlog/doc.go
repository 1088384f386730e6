// Package xlog 提供基于 log/slog 的结构化日志。
//
// 所有日志方法都要求传入 context.Context，便于 handler 从中取值。
//
// # 构建
//
//	logger, cleanup, err := xlog.New().
//		SetLevelString("debug").
//		SetFormat("json").
//		SetRotation("/var/log/xsamplectl.log", xlog.RotationOptions{MaxSizeMB: 100}).
//		Build()
//	if err != nil {
//		return err
//	}
//	defer cleanup()
//
// cleanup 关闭轮转文件，可重复调用。
//
// # 动态级别
//
// Build 返回的 Logger 共享同一个 slog.LevelVar，SetLevel 对派生 Logger 同时生效。
//
// # 全局 Logger
//
// Default/SetDefault 以及包级 Debug/Info/Warn/Error 面向命令行工具等简单场景。
// 库代码应显式持有 Logger。
//
// # 采样属性
//
// Salt、Rate、Seed、Kept、Dropped、Skipped、Line 等构造函数
// 保证采样相关字段在各处使用同一个 key。
package xlog
