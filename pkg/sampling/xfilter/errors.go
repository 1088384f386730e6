package xfilter

import "errors"

var (
	// ErrNilSampler 表示构造 Filter 时采样器为 nil。
	ErrNilSampler = errors.New("xfilter: nil sampler")

	// ErrKeyFieldOutOfRange 表示 key 字段下标为负或超出记录长度。
	ErrKeyFieldOutOfRange = errors.New("xfilter: key field out of range")

	// ErrInvalidWorkers 表示并行度小于 1。
	ErrInvalidWorkers = errors.New("xfilter: workers must be positive")

	// ErrNilOption 表示传入了 nil Option。
	ErrNilOption = errors.New("xfilter: nil option")

	// ErrNilSource 表示 Run 的输入或输出为 nil。
	ErrNilSource = errors.New("xfilter: nil source or sink")
)
