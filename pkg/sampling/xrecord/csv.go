package xrecord

import (
	"bytes"
	"encoding/csv"
	"errors"
	"io"
	"slices"
)

// CSVOption CSV 读取器选项
type CSVOption func(*csvOptions)

type csvOptions struct {
	delimiter  rune
	header     bool
	lazyQuotes bool
}

// WithDelimiter 设置分隔符，默认 ','
func WithDelimiter(d rune) CSVOption {
	return func(o *csvOptions) {
		if d != 0 {
			o.delimiter = d
		}
	}
}

// WithHeader 设置首行是否为表头
//
// 表头行不参与采样。若构造时未提供 schema，则按表头列名生成一个
// 全部为 bytearray 的 schema。
func WithHeader(header bool) CSVOption {
	return func(o *csvOptions) {
		o.header = header
	}
}

// WithLazyQuotes 允许未转义的引号出现在字段中
func WithLazyQuotes(lazy bool) CSVOption {
	return func(o *csvOptions) {
		o.lazyQuotes = lazy
	}
}

// CSVReader 分隔符文本读取器
//
// 每条记录的 Raw 取自输入中该记录实际占用的字节，
// 包含引号与嵌入换行，因此写出结果与输入逐字节一致。
type CSVReader struct {
	rec    *recorder
	cr     *csv.Reader
	schema *Schema
	opts   csvOptions

	headerDone bool
	headerRaw  []byte
	headerCols []string
	last       int64
}

// NewCSVReader 创建 CSV 读取器
func NewCSVReader(r io.Reader, schema *Schema, opts ...CSVOption) *CSVReader {
	o := csvOptions{delimiter: ','}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	rec := &recorder{r: r}
	cr := csv.NewReader(rec)
	cr.Comma = o.delimiter
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = o.lazyQuotes

	return &CSVReader{
		rec:        rec,
		cr:         cr,
		schema:     schema,
		opts:       o,
		headerDone: !o.header,
	}
}

// Schema 返回读取器使用的 schema
//
// 由表头推导 schema 时，需先调用 Header 或 Read。
func (r *CSVReader) Schema() *Schema {
	return r.schema
}

// Header 读取并返回表头
//
// 未启用表头时返回 nil。多次调用返回同一结果。
func (r *CSVReader) Header() (cols []string, raw []byte, err error) {
	if err := r.readHeader(); err != nil {
		return nil, nil, err
	}
	return slices.Clone(r.headerCols), bytes.Clone(r.headerRaw), nil
}

func (r *CSVReader) readHeader() error {
	if r.headerDone {
		return nil
	}
	cols, err := r.cr.Read()
	raw := r.take()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return io.EOF
		}
		return malformed(1, "header: %v", err)
	}
	r.headerDone = true
	r.headerCols = cols
	r.headerRaw = raw

	if r.schema == nil {
		fields := make([]Field, len(cols))
		for i, c := range cols {
			fields[i] = Field{Name: c, Type: TypeByteArray}
		}
		s, err := NewSchema(fields...)
		if err != nil {
			return err
		}
		r.schema = s
	}
	return nil
}

// Read 读取下一条记录
func (r *CSVReader) Read() (Row, error) {
	if err := r.readHeader(); err != nil {
		return Row{}, err
	}
	if r.schema == nil {
		return Row{}, ErrNilSchema
	}

	cells, err := r.cr.Read()
	raw := r.take()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return Row{}, io.EOF
		}
		var pe *csv.ParseError
		if errors.As(err, &pe) {
			return Row{Line: pe.StartLine, Raw: raw}, malformed(pe.StartLine, "%v", pe.Err)
		}
		return Row{}, err
	}

	line, _ := r.cr.FieldPos(0)
	row := Row{Line: line, Raw: raw}
	if len(cells) != r.schema.Len() {
		return row, malformed(line, "got %d fields, want %d", len(cells), r.schema.Len())
	}

	row.Fields = make([]any, len(cells))
	for i, cell := range cells {
		f := r.schema.fields[i]
		v, err := f.Type.Parse(cell)
		if err != nil {
			return row, malformed(line, "field %q: %v", f.Name, err)
		}
		row.Fields[i] = v
	}
	return row, nil
}

// take 取出上一次 Read 消费的原始字节
func (r *CSVReader) take() []byte {
	end := r.cr.InputOffset()
	raw := r.rec.take(r.last, end)
	r.last = end
	return trimEOL(skipBlankLines(raw))
}

// skipBlankLines 去掉 csv.Reader 跳过的前导空行
func skipBlankLines(b []byte) []byte {
	for {
		switch {
		case bytes.HasPrefix(b, []byte{'\n'}):
			b = b[1:]
		case bytes.HasPrefix(b, []byte{'\r', '\n'}):
			b = b[2:]
		default:
			return b
		}
	}
}

// recorder 记录 csv.Reader 读入的字节，按偏移切出每条记录的原文
type recorder struct {
	r    io.Reader
	buf  []byte
	base int64
}

func (rc *recorder) Read(p []byte) (int, error) {
	n, err := rc.r.Read(p)
	rc.buf = append(rc.buf, p[:n]...)
	return n, err
}

// take 返回 [start, end) 区间的副本，并丢弃 end 之前的缓冲
func (rc *recorder) take(start, end int64) []byte {
	raw := bytes.Clone(rc.buf[start-rc.base : end-rc.base])
	rc.buf = rc.buf[:copy(rc.buf, rc.buf[end-rc.base:])]
	rc.base = end
	return raw
}
