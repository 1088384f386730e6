package xlog

import "errors"

var (
	// ErrUnknownLevel 表示无法识别的日志级别名。
	ErrUnknownLevel = errors.New("xlog: unknown level")

	// ErrUnknownFormat 表示输出格式既不是 text 也不是 json。
	ErrUnknownFormat = errors.New("xlog: unknown format")

	// ErrEmptyFilename 表示 SetRotation 的文件名为空。
	ErrEmptyFilename = errors.New("xlog: empty rotation filename")

	// ErrInvalidRotation 表示轮转参数不合法。
	ErrInvalidRotation = errors.New("xlog: invalid rotation options")
)
