package xlog

import (
	"context"
	"log/slog"
	"runtime"
	"time"
)

// Logger 结构化日志接口
type Logger interface {
	Debug(ctx context.Context, msg string, attrs ...slog.Attr)
	Info(ctx context.Context, msg string, attrs ...slog.Attr)
	Warn(ctx context.Context, msg string, attrs ...slog.Attr)
	Error(ctx context.Context, msg string, attrs ...slog.Attr)

	// With 返回带固定属性的派生 Logger，与原 Logger 共享级别。
	With(attrs ...slog.Attr) Logger

	// SetLevel 动态调整级别。
	SetLevel(level Level)

	// Level 返回当前级别。
	Level() Level

	// Enabled 报告 level 是否会被输出。
	Enabled(ctx context.Context, level Level) bool
}

var _ Logger = (*logger)(nil)

type logger struct {
	handler   slog.Handler
	levelVar  *slog.LevelVar
	addSource bool
}

// NewFromHandler 用现成的 slog.Handler 构造 Logger
//
// handler 自己决定过滤级别；levelVar 为 nil 时新建一个 Info 级别的 LevelVar，
// 此时 SetLevel 只影响 Level 的返回值。
func NewFromHandler(h slog.Handler, levelVar *slog.LevelVar) Logger {
	if levelVar == nil {
		levelVar = new(slog.LevelVar)
	}
	return &logger{handler: h, levelVar: levelVar}
}

// log 统一出口，skip 为调用方到 log 之间的帧数
//
//go:noinline
func (l *logger) log(ctx context.Context, level slog.Level, msg string, attrs []slog.Attr, skip int) {
	if ctx == nil {
		ctx = context.Background()
	}
	if !l.handler.Enabled(ctx, level) {
		return
	}

	var pc uintptr
	if l.addSource {
		var pcs [1]uintptr
		// Callers → log → 方法 → 业务代码
		runtime.Callers(3+skip, pcs[:])
		pc = pcs[0]
	}

	r := slog.NewRecord(time.Now(), level, msg, pc)
	r.AddAttrs(attrs...)
	// 写失败不向业务返回，日志不影响主流程
	_ = l.handler.Handle(ctx, r)
}

func (l *logger) Debug(ctx context.Context, msg string, attrs ...slog.Attr) {
	l.log(ctx, slog.LevelDebug, msg, attrs, 0)
}

func (l *logger) Info(ctx context.Context, msg string, attrs ...slog.Attr) {
	l.log(ctx, slog.LevelInfo, msg, attrs, 0)
}

func (l *logger) Warn(ctx context.Context, msg string, attrs ...slog.Attr) {
	l.log(ctx, slog.LevelWarn, msg, attrs, 0)
}

func (l *logger) Error(ctx context.Context, msg string, attrs ...slog.Attr) {
	l.log(ctx, slog.LevelError, msg, attrs, 0)
}

func (l *logger) With(attrs ...slog.Attr) Logger {
	if len(attrs) == 0 {
		return l
	}
	return &logger{
		handler:   l.handler.WithAttrs(attrs),
		levelVar:  l.levelVar,
		addSource: l.addSource,
	}
}

func (l *logger) SetLevel(level Level) {
	l.levelVar.Set(slog.Level(level))
}

func (l *logger) Level() Level {
	return Level(l.levelVar.Level())
}

func (l *logger) Enabled(ctx context.Context, level Level) bool {
	if ctx == nil {
		ctx = context.Background()
	}
	return l.handler.Enabled(ctx, slog.Level(level))
}
