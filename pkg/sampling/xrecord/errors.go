package xrecord

import "errors"

var (
	// ErrInvalidSchema 表示 schema 定义不合法（空列名、重复列名等）。
	ErrInvalidSchema = errors.New("xrecord: invalid schema")

	// ErrUnknownFieldType 表示 schema 中出现了不支持的字段类型。
	ErrUnknownFieldType = errors.New("xrecord: unknown field type")

	// ErrUnknownField 表示按名称引用了 schema 中不存在的列。
	ErrUnknownField = errors.New("xrecord: unknown field")

	// ErrMalformedRecord 表示某一行无法按 schema 解析。
	ErrMalformedRecord = errors.New("xrecord: malformed record")

	// ErrNilSchema 表示读取器的 schema 为 nil。
	ErrNilSchema = errors.New("xrecord: nil schema")
)
