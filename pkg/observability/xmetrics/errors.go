package xmetrics

import "errors"

var (
	// ErrCreateInstrument 表示创建 OTel 指标失败。
	ErrCreateInstrument = errors.New("xmetrics: create instrument failed")

	// ErrNilOption 表示传入了 nil Option。
	ErrNilOption = errors.New("xmetrics: nil option")
)
