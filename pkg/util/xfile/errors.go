package xfile

import "errors"

var (
	// ErrEmptyPath 表示路径为空。
	ErrEmptyPath = errors.New("xfile: path is required")

	// ErrInvalidPath 表示路径指向目录或没有文件名。
	ErrInvalidPath = errors.New("xfile: invalid path")

	// ErrNullByte 表示路径中包含空字节，内核会在该处截断路径。
	ErrNullByte = errors.New("xfile: path contains null byte")
)
