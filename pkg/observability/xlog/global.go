package xlog

import (
	"context"
	"log/slog"
	"sync/atomic"
)

var global atomic.Pointer[Logger]

// Default 返回全局 Logger，未设置时惰性创建（stderr，Info，text）
func Default() Logger {
	if l := global.Load(); l != nil {
		return *l
	}
	l, _, err := New().Build()
	if err != nil {
		// 默认参数不会出错，兜底为 slog 默认 handler
		l = NewFromHandler(slog.Default().Handler(), nil)
	}
	global.CompareAndSwap(nil, &l)
	return *global.Load()
}

// SetDefault 替换全局 Logger，nil 忽略
func SetDefault(l Logger) {
	if l == nil {
		return
	}
	global.Store(&l)
}

// ResetDefault 清除全局 Logger，下次 Default 重新创建（测试用）
func ResetDefault() {
	global.Store(nil)
}

// globalLog 比实例方法多一层调用帧
func globalLog(ctx context.Context, level slog.Level, msg string, attrs []slog.Attr) {
	l := Default()
	if xl, ok := l.(*logger); ok {
		xl.log(ctx, level, msg, attrs, 1)
		return
	}
	switch level {
	case slog.LevelDebug:
		l.Debug(ctx, msg, attrs...)
	case slog.LevelInfo:
		l.Info(ctx, msg, attrs...)
	case slog.LevelWarn:
		l.Warn(ctx, msg, attrs...)
	default:
		l.Error(ctx, msg, attrs...)
	}
}

// Debug 使用全局 Logger 输出 Debug 日志
func Debug(ctx context.Context, msg string, attrs ...slog.Attr) {
	globalLog(ctx, slog.LevelDebug, msg, attrs)
}

// Info 使用全局 Logger 输出 Info 日志
func Info(ctx context.Context, msg string, attrs ...slog.Attr) {
	globalLog(ctx, slog.LevelInfo, msg, attrs)
}

// Warn 使用全局 Logger 输出 Warn 日志
func Warn(ctx context.Context, msg string, attrs ...slog.Attr) {
	globalLog(ctx, slog.LevelWarn, msg, attrs)
}

// Error 使用全局 Logger 输出 Error 日志
func Error(ctx context.Context, msg string, attrs ...slog.Attr) {
	globalLog(ctx, slog.LevelError, msg, attrs)
}
