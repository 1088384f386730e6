package xsampling

import "errors"

// 采样器创建相关的错误
var (
	// ErrInvalidRate 表示采样比率字符串无法解析为十进制数
	ErrInvalidRate = errors.New("xsampling: malformed sampling rate")

	// ErrDigestUnavailable 表示运行环境无法提供 SHA-1 摘要算法
	ErrDigestUnavailable = errors.New("xsampling: sha-1 digest unavailable")

	// ErrNilFieldsFunc 表示 KeySampler 未配置 FieldsFunc 就调用了 ShouldSample
	ErrNilFieldsFunc = errors.New("xsampling: fields func must not be nil")

	// ErrNilOption 表示传入了 nil 的选项函数
	ErrNilOption = errors.New("xsampling: nil option")

	// ErrInvalidMode 表示组合模式不是 all 或 any
	ErrInvalidMode = errors.New("xsampling: invalid composite mode, want all or any")

	// ErrNilSampler 表示 CompositeSampler 的成员为 nil
	ErrNilSampler = errors.New("xsampling: sampler must not be nil")
)
