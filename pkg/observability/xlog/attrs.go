package xlog

import (
	"log/slog"
	"time"
)

// 常用属性 key
const (
	KeyError       = "error"
	KeyDuration    = "duration"
	KeyComponent   = "component"
	KeyOperation   = "operation"
	KeySalt        = "salt"
	KeyRate        = "rate"
	KeySeed        = "seed"
	KeyKept        = "kept"
	KeyDropped     = "dropped"
	KeySkipped     = "skipped"
	KeyLine        = "line"
	KeyFingerprint = "fingerprint"
)

// Err 错误属性，err 为 nil 时返回空属性（slog 会忽略）
func Err(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.String(KeyError, err.Error())
}

// Duration 耗时属性
func Duration(d time.Duration) slog.Attr {
	return slog.String(KeyDuration, d.String())
}

// Component 组件名
func Component(name string) slog.Attr {
	return slog.String(KeyComponent, name)
}

// Operation 操作名
func Operation(name string) slog.Attr {
	return slog.String(KeyOperation, name)
}

// Salt 采样盐值
func Salt(salt string) slog.Attr {
	return slog.String(KeySalt, salt)
}

// Rate 采样率
func Rate(rate float64) slog.Attr {
	return slog.Float64(KeyRate, rate)
}

// Seed 由盐值得到的种子
func Seed(seed int32) slog.Attr {
	return slog.Int64(KeySeed, int64(seed))
}

// Kept 保留的记录数
func Kept(n int64) slog.Attr {
	return slog.Int64(KeyKept, n)
}

// Dropped 丢弃的记录数
func Dropped(n int64) slog.Attr {
	return slog.Int64(KeyDropped, n)
}

// Skipped 因解析失败跳过的记录数
func Skipped(n int64) slog.Attr {
	return slog.Int64(KeySkipped, n)
}

// Line 输入行号
func Line(n int) slog.Attr {
	return slog.Int(KeyLine, n)
}

// Fingerprint 样本成员摘要
func Fingerprint(fp string) slog.Attr {
	return slog.String(KeyFingerprint, fp)
}
