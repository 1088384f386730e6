package xrecord

import (
	"fmt"
	"strconv"
	"strings"
)

// FieldType 字段类型
type FieldType int

// 支持的字段类型
const (
	TypeByteArray FieldType = iota
	TypeCharArray
	TypeInt
	TypeLong
	TypeFloat
	TypeDouble
	TypeBoolean
)

// String 返回类型名
func (t FieldType) String() string {
	switch t {
	case TypeByteArray:
		return "bytearray"
	case TypeCharArray:
		return "chararray"
	case TypeInt:
		return "int"
	case TypeLong:
		return "long"
	case TypeFloat:
		return "float"
	case TypeDouble:
		return "double"
	case TypeBoolean:
		return "boolean"
	default:
		return "FieldType(" + strconv.Itoa(int(t)) + ")"
	}
}

// ParseFieldType 解析类型名（大小写不敏感）
//
// 除标准名称外还接受常见别名：string、bytes、bool、int32、int64、float32、float64。
func ParseFieldType(s string) (FieldType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "bytearray", "bytes":
		return TypeByteArray, nil
	case "chararray", "string":
		return TypeCharArray, nil
	case "int", "int32":
		return TypeInt, nil
	case "long", "int64":
		return TypeLong, nil
	case "float", "float32":
		return TypeFloat, nil
	case "double", "float64":
		return TypeDouble, nil
	case "boolean", "bool":
		return TypeBoolean, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownFieldType, s)
	}
}

// Parse 把文本按类型转换为字段值
//
// 空字符串返回 nil。数值与布尔类型会先去掉首尾空白。
func (t FieldType) Parse(s string) (any, error) {
	if s == "" {
		return nil, nil
	}
	switch t {
	case TypeByteArray:
		return []byte(s), nil
	case TypeCharArray:
		return s, nil
	}

	v := strings.TrimSpace(s)
	switch t {
	case TypeInt:
		n, err := strconv.ParseInt(v, 10, 32)
		if err != nil {
			return nil, err
		}
		return int32(n), nil
	case TypeLong:
		return strconv.ParseInt(v, 10, 64)
	case TypeFloat:
		f, err := strconv.ParseFloat(v, 32)
		if err != nil {
			return nil, err
		}
		return float32(f), nil
	case TypeDouble:
		return strconv.ParseFloat(v, 64)
	case TypeBoolean:
		switch strings.ToLower(v) {
		case "true":
			return true, nil
		case "false":
			return false, nil
		default:
			return nil, fmt.Errorf("invalid boolean %q", s)
		}
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownFieldType, t)
	}
}

// Field 一列的定义
type Field struct {
	Name string
	Type FieldType
}

// Schema 有序的列定义，构造后只读
type Schema struct {
	fields []Field
	index  map[string]int
}

// NewSchema 创建 schema
//
// 列名不能为空也不能重复，否则返回 [ErrInvalidSchema]。
func NewSchema(fields ...Field) (*Schema, error) {
	if len(fields) == 0 {
		return nil, fmt.Errorf("%w: no fields", ErrInvalidSchema)
	}
	s := &Schema{
		fields: make([]Field, len(fields)),
		index:  make(map[string]int, len(fields)),
	}
	for i, f := range fields {
		if f.Name == "" {
			return nil, fmt.Errorf("%w: field %d has empty name", ErrInvalidSchema, i)
		}
		if _, dup := s.index[f.Name]; dup {
			return nil, fmt.Errorf("%w: duplicate field %q", ErrInvalidSchema, f.Name)
		}
		if f.Type < TypeByteArray || f.Type > TypeBoolean {
			return nil, fmt.Errorf("%w: field %q: %s", ErrUnknownFieldType, f.Name, f.Type)
		}
		s.fields[i] = f
		s.index[f.Name] = i
	}
	return s, nil
}

// ParseSchema 解析 "name:type, name:type" 形式的 schema
//
// 省略类型的列（如 "id"）为 bytearray。
func ParseSchema(def string) (*Schema, error) {
	parts := strings.Split(def, ",")
	fields := make([]Field, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		name, typ, hasType := strings.Cut(part, ":")
		f := Field{Name: strings.TrimSpace(name), Type: TypeByteArray}
		if hasType {
			t, err := ParseFieldType(typ)
			if err != nil {
				return nil, fmt.Errorf("field %q: %w", f.Name, err)
			}
			f.Type = t
		}
		fields = append(fields, f)
	}
	return NewSchema(fields...)
}

// Len 返回列数
func (s *Schema) Len() int {
	return len(s.fields)
}

// Fields 返回列定义的副本
func (s *Schema) Fields() []Field {
	out := make([]Field, len(s.fields))
	copy(out, s.fields)
	return out
}

// Field 返回第 i 列
func (s *Schema) Field(i int) Field {
	return s.fields[i]
}

// Index 返回列名对应的下标
func (s *Schema) Index(name string) (int, bool) {
	i, ok := s.index[name]
	return i, ok
}

// Indexes 把一组列名解析为下标，顺序与入参一致
func (s *Schema) Indexes(names []string) ([]int, error) {
	out := make([]int, len(names))
	for i, name := range names {
		idx, ok := s.index[name]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownField, name)
		}
		out[i] = idx
	}
	return out, nil
}

// String 返回 ParseSchema 可以解析回来的表示
func (s *Schema) String() string {
	var b strings.Builder
	for i, f := range s.fields {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(f.Name)
		b.WriteByte(':')
		b.WriteString(f.Type.String())
	}
	return b.String()
}
