package xrecord

import (
	"bufio"
	"io"
)

// Writer 把保留的记录按原始字节写出，每条一行
//
// 调用方负责在结束时调用 Flush。
type Writer struct {
	bw   *bufio.Writer
	rows int64
}

// NewWriter 创建写出器
func NewWriter(w io.Writer) *Writer {
	return &Writer{bw: bufio.NewWriter(w)}
}

// Write 写出一条记录
func (w *Writer) Write(row Row) error {
	if err := w.WriteRaw(row.Raw); err != nil {
		return err
	}
	w.rows++
	return nil
}

// WriteRaw 写出一行原始字节（如 CSV 表头），不计入 Rows
func (w *Writer) WriteRaw(raw []byte) error {
	if _, err := w.bw.Write(raw); err != nil {
		return err
	}
	return w.bw.WriteByte('\n')
}

// Rows 返回已写出的记录数
func (w *Writer) Rows() int64 {
	return w.rows
}

// Flush 把缓冲写入底层 io.Writer
func (w *Writer) Flush() error {
	return w.bw.Flush()
}
