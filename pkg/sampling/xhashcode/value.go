package xhashcode

import (
	"fmt"
	"math"
	"reflect"
)

// Hashable 由自带哈希身份的字段类型实现。
//
// HashCode 必须与所在流水线对该值使用的哈希保持一致，并且对同一个值稳定。
type Hashable interface {
	HashCode() int32
}

// 布尔值的固定哈希
const (
	trueHash  int32 = 1231
	falseHash int32 = 1237
)

// Value 计算单个字段值的哈希。
//
// 固定映射表：
//   - nil、nil 指针：NullHash（0）
//   - string：[String]；[]rune 等同于对应的 string
//   - bool：true 为 1231，false 为 1237
//   - int8、int16、int32、uint8、uint16：数值本身
//   - int、int64、uint、uint32、uint64：[Int64]
//   - float32：[Float32]；float64：[Float64]
//   - []byte：[Bytes]
//   - []any：[Tuple]（嵌套元组）
//   - map[string]any：[Map]
//   - [Hashable]：值自身的 HashCode()
//   - 指向以上类型的指针：解引用后的哈希
//
// 其他类型返回包装了 [ErrUnsupportedType] 的错误。
func Value(v any) (int32, error) {
	switch x := v.(type) {
	case nil:
		return NullHash, nil
	case Hashable:
		if isNilPointer(x) {
			return NullHash, nil
		}
		return x.HashCode(), nil
	case string:
		return String(x), nil
	case []rune:
		return String(string(x)), nil
	case bool:
		return Bool(x), nil
	case int8:
		return int32(x), nil
	case int16:
		return int32(x), nil
	case int32:
		return x, nil
	case uint8:
		return int32(x), nil
	case uint16:
		return int32(x), nil
	case int:
		return Int64(int64(x)), nil
	case int64:
		return Int64(x), nil
	case uint:
		return Int64(int64(x)), nil
	case uint32:
		return Int64(int64(x)), nil
	case uint64:
		return Int64(int64(x)), nil
	case float32:
		return Float32(x), nil
	case float64:
		return Float64(x), nil
	case []byte:
		return Bytes(x), nil
	case []any:
		return Tuple(x)
	case map[string]any:
		return Map(x)
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return NullHash, nil
		}
		return Value(rv.Elem().Interface())
	}
	return 0, fmt.Errorf("%w: %T", ErrUnsupportedType, v)
}

// Bool 返回布尔值的固定哈希。
func Bool(b bool) int32 {
	if b {
		return trueHash
	}
	return falseHash
}

// Int64 返回 64 位整数的哈希：高 32 位与低 32 位异或后截断。
//
// 无符号整数按补码位模式参与计算。
func Int64(v int64) int32 {
	u := uint64(v)
	return int32(u ^ (u >> 32))
}

// Float32 返回 float32 的哈希，即 IEEE-754 位模式；所有 NaN 归一为 0x7fc00000。
func Float32(f float32) int32 {
	if math.IsNaN(float64(f)) {
		return 0x7fc00000
	}
	return int32(math.Float32bits(f))
}

// Float64 返回 float64 的哈希；所有 NaN 归一为 0x7ff8000000000000 后再折叠。
//
// 注意 0.0 与 -0.0 的哈希不同。
func Float64(f float64) int32 {
	bits := math.Float64bits(f)
	if math.IsNaN(f) {
		bits = 0x7ff8000000000000
	}
	return int32(bits ^ (bits >> 32))
}

// Bytes 返回字节数组的哈希：h 从 1 开始，每个字节按有符号 8 位整数累加。
func Bytes(b []byte) int32 {
	h := int32(1)
	for _, c := range b {
		h = h*Prime + int32(int8(c))
	}
	return h
}

// Tuple 返回嵌套元组的哈希：h 从 17 开始，跳过 nil 元素。
//
// 与顶层记录的 [Combine]（从 0 开始、nil 按 0 参与）不同，这里对应的是
// 元组作为单个字段值时的哈希身份。
func Tuple(elems []any) (int32, error) {
	h := int32(17)
	for _, e := range elems {
		if e == nil {
			continue
		}
		eh, err := Value(e)
		if err != nil {
			return 0, err
		}
		h = h*Prime + eh
	}
	return h, nil
}

// Map 返回 map 的哈希：各条目 String(key) ^ Value(value) 之和。
//
// 加法满足交换律，因此结果与 Go map 的迭代顺序无关。
func Map(m map[string]any) (int32, error) {
	var h int32
	for k, v := range m {
		vh, err := Value(v)
		if err != nil {
			return 0, err
		}
		h += String(k) ^ vh
	}
	return h, nil
}

func isNilPointer(v any) bool {
	rv := reflect.ValueOf(v)
	return rv.Kind() == reflect.Pointer && rv.IsNil()
}
