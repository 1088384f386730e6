package xrecord

import (
	"bytes"
	"fmt"
)

// Row 一条已解析的记录
type Row struct {
	// Line 记录在输入中的起始行号（从 1 开始）。
	Line int

	// Fields 按 schema 顺序排列的字段值。
	Fields []any

	// Raw 记录的原始字节，不含行尾换行符。写出时原样输出。
	Raw []byte
}

// Reader 逐条读取记录，读完返回 io.EOF
type Reader interface {
	Read() (Row, error)
}

// malformed 构造带行号的 ErrMalformedRecord
func malformed(line int, format string, args ...any) error {
	return fmt.Errorf("%w: line %d: %s", ErrMalformedRecord, line, fmt.Sprintf(format, args...))
}

// trimEOL 去掉末尾的 "\n" 或 "\r\n"
func trimEOL(b []byte) []byte {
	b = bytes.TrimSuffix(b, []byte{'\n'})
	return bytes.TrimSuffix(b, []byte{'\r'})
}
