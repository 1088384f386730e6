package xlog

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/hnflee/datafu/pkg/util/xfile"
)

// 轮转默认值
const (
	DefaultMaxSizeMB  = 100
	DefaultMaxBackups = 7
	DefaultMaxAgeDays = 30
)

// RotationOptions 日志文件轮转参数，零值字段使用默认值
type RotationOptions struct {
	// MaxSizeMB 单个文件上限（MB），默认 DefaultMaxSizeMB。
	MaxSizeMB int
	// MaxBackups 保留的历史文件数，默认 DefaultMaxBackups。
	MaxBackups int
	// MaxAgeDays 历史文件保留天数，默认 DefaultMaxAgeDays。
	MaxAgeDays int
	// Compress 是否 gzip 历史文件。
	Compress bool
	// LocalTime 历史文件名是否使用本地时间。
	LocalTime bool
}

// Builder 日志构建器
type Builder struct {
	output    io.Writer
	levelVar  *slog.LevelVar
	format    string
	addSource bool
	attrs     []slog.Attr
	rotator   *lumberjack.Logger
	err       error
}

// New 创建构建器，默认输出到 stderr，Info 级别，text 格式
func New() *Builder {
	levelVar := new(slog.LevelVar)
	levelVar.Set(slog.LevelInfo)
	return &Builder{
		output:   os.Stderr,
		levelVar: levelVar,
		format:   "text",
	}
}

// SetOutput 设置输出目标，nil 忽略
func (b *Builder) SetOutput(w io.Writer) *Builder {
	if w != nil {
		b.output = w
		b.rotator = nil
	}
	return b
}

// SetLevel 设置级别
func (b *Builder) SetLevel(level Level) *Builder {
	b.levelVar.Set(slog.Level(level))
	return b
}

// SetLevelString 按名称设置级别
func (b *Builder) SetLevelString(s string) *Builder {
	level, err := ParseLevel(s)
	if err != nil {
		b.err = err
		return b
	}
	return b.SetLevel(level)
}

// SetFormat 设置输出格式：text 或 json，空字符串为 text
func (b *Builder) SetFormat(format string) *Builder {
	switch f := strings.ToLower(strings.TrimSpace(format)); f {
	case "":
		b.format = "text"
	case "text", "json":
		b.format = f
	default:
		b.err = fmt.Errorf("%w %q", ErrUnknownFormat, format)
	}
	return b
}

// SetAddSource 是否输出源码位置
func (b *Builder) SetAddSource(enable bool) *Builder {
	b.addSource = enable
	return b
}

// SetAttrs 设置每条日志都带的固定属性
func (b *Builder) SetAttrs(attrs ...slog.Attr) *Builder {
	b.attrs = append(b.attrs, attrs...)
	return b
}

// SetRotation 输出到按大小轮转的文件
//
// 文件在首次写入时才创建。
func (b *Builder) SetRotation(filename string, opts RotationOptions) *Builder {
	if strings.TrimSpace(filename) == "" {
		b.err = ErrEmptyFilename
		return b
	}
	if opts.MaxSizeMB < 0 || opts.MaxBackups < 0 || opts.MaxAgeDays < 0 {
		b.err = fmt.Errorf("%w: negative value in %+v", ErrInvalidRotation, opts)
		return b
	}
	cleaned, err := xfile.CleanPath(filename)
	if err != nil {
		b.err = fmt.Errorf("xlog: rotation file: %w", err)
		return b
	}
	if opts.MaxSizeMB == 0 {
		opts.MaxSizeMB = DefaultMaxSizeMB
	}
	if opts.MaxBackups == 0 {
		opts.MaxBackups = DefaultMaxBackups
	}
	if opts.MaxAgeDays == 0 {
		opts.MaxAgeDays = DefaultMaxAgeDays
	}

	b.rotator = &lumberjack.Logger{
		Filename:   cleaned,
		MaxSize:    opts.MaxSizeMB,
		MaxBackups: opts.MaxBackups,
		MaxAge:     opts.MaxAgeDays,
		Compress:   opts.Compress,
		LocalTime:  opts.LocalTime,
	}
	b.output = b.rotator
	return b
}

// Build 构建 Logger
//
// 返回的清理函数关闭轮转文件，可重复调用，未设置轮转时为空操作。
func (b *Builder) Build() (Logger, func() error, error) {
	if b.err != nil {
		return nil, nil, b.err
	}

	opts := &slog.HandlerOptions{
		Level:     b.levelVar,
		AddSource: b.addSource,
	}
	var handler slog.Handler
	if b.format == "json" {
		handler = slog.NewJSONHandler(b.output, opts)
	} else {
		handler = slog.NewTextHandler(b.output, opts)
	}
	if len(b.attrs) > 0 {
		handler = handler.WithAttrs(b.attrs)
	}

	l := &logger{
		handler:   handler,
		levelVar:  b.levelVar,
		addSource: b.addSource,
	}
	return l, b.cleanup(), nil
}

func (b *Builder) cleanup() func() error {
	rotator := b.rotator
	var once sync.Once
	return func() error {
		var err error
		once.Do(func() {
			if rotator != nil {
				err = rotator.Close()
			}
		})
		return err
	}
}
