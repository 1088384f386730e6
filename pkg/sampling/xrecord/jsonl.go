package xrecord

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
)

// JSONLReader 每行一个 JSON 对象的读取器
//
// 字段按 schema 中的列名从对象顶层取值。空行被跳过，但仍计入行号。
type JSONLReader struct {
	br     *bufio.Reader
	schema *Schema
	line   int
}

// NewJSONLReader 创建 JSONL 读取器
func NewJSONLReader(r io.Reader, schema *Schema) *JSONLReader {
	return &JSONLReader{
		br:     bufio.NewReader(r),
		schema: schema,
	}
}

// Schema 返回读取器使用的 schema
func (r *JSONLReader) Schema() *Schema {
	return r.schema
}

// Read 读取下一条记录
func (r *JSONLReader) Read() (Row, error) {
	if r.schema == nil {
		return Row{}, ErrNilSchema
	}

	for {
		b, err := r.br.ReadBytes('\n')
		if len(b) == 0 && err != nil {
			return Row{}, err
		}
		if err != nil && !errors.Is(err, io.EOF) {
			return Row{}, err
		}
		r.line++

		raw := trimEOL(b)
		if len(bytes.TrimSpace(raw)) == 0 {
			continue
		}
		row := Row{Line: r.line, Raw: raw}
		fields, perr := r.parse(raw)
		if perr != nil {
			return row, perr
		}
		row.Fields = fields
		return row, nil
	}
}

func (r *JSONLReader) parse(raw []byte) ([]any, error) {
	var obj map[string]any
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&obj); err != nil {
		return nil, malformed(r.line, "%v", err)
	}
	if obj == nil {
		return nil, malformed(r.line, "not a JSON object")
	}
	if dec.More() {
		return nil, malformed(r.line, "trailing data after object")
	}

	fields := make([]any, r.schema.Len())
	for i, f := range r.schema.fields {
		v, err := jsonField(f.Type, obj[f.Name])
		if err != nil {
			return nil, malformed(r.line, "field %q: %v", f.Name, err)
		}
		fields[i] = v
	}
	return fields, nil
}

// jsonField 把解码后的 JSON 值转换为列类型
//
// 字符串按文本规则解析；数字与布尔值只接受与列类型相容的组合。
func jsonField(t FieldType, v any) (any, error) {
	switch x := v.(type) {
	case nil:
		return nil, nil
	case string:
		if x == "" && (t == TypeCharArray || t == TypeByteArray) {
			return convertString(t, x), nil
		}
		return t.Parse(x)
	case json.Number:
		switch t {
		case TypeCharArray, TypeByteArray:
			return convertString(t, x.String()), nil
		case TypeBoolean:
			return nil, fmt.Errorf("number %s for boolean column", x)
		default:
			return t.Parse(x.String())
		}
	case bool:
		switch t {
		case TypeBoolean:
			return x, nil
		case TypeCharArray, TypeByteArray:
			return convertString(t, strconv.FormatBool(x)), nil
		default:
			return nil, fmt.Errorf("boolean for %s column", t)
		}
	default:
		return nil, fmt.Errorf("unsupported JSON value %T for %s column", v, t)
	}
}

func convertString(t FieldType, s string) any {
	if t == TypeByteArray {
		return []byte(s)
	}
	return s
}
