package xfilter

import (
	"encoding/binary"
	"fmt"
	"maps"
	"math"
	"reflect"
	"slices"

	"github.com/cespare/xxhash/v2"

	"github.com/hnflee/datafu/pkg/sampling/xhashcode"
)

// Fingerprint 保留 key 集合的摘要
//
// 每个 key 按类型编码后取 xxhash，再做模 2^64 求和，
// 因此与记录顺序、分块方式无关，但对重复 key 敏感。
type Fingerprint struct {
	sum   uint64
	count int64
}

// Add 加入一个 key
func (fp *Fingerprint) Add(key []any) {
	var stack [128]byte
	fp.sum += xxhash.Sum64(appendKey(stack[:0], key))
	fp.count++
}

// Merge 合并另一个摘要
func (fp *Fingerprint) Merge(o Fingerprint) {
	fp.sum += o.sum
	fp.count += o.count
}

// Sum64 返回摘要值
func (fp Fingerprint) Sum64() uint64 { return fp.sum }

// Count 返回加入的 key 数
func (fp Fingerprint) Count() int64 { return fp.count }

// String 形如 "9f3c0a1b2c3d4e5f/42"
func (fp Fingerprint) String() string {
	return fmt.Sprintf("%016x/%d", fp.sum, fp.count)
}

// appendKey 带类型标签的编码，"1" 与 1 与 []byte("1") 互不相同
//
// 类型归类与 xhashcode.Value 一致：指针按指向的值编码，
// 所以同一份数据无论以值还是指针传入，摘要都相同。
func appendKey(b []byte, key []any) []byte {
	b = binary.AppendUvarint(b, uint64(len(key)))
	for _, v := range key {
		b = appendValue(b, v)
	}
	return b
}

func appendValue(b []byte, v any) []byte {
	switch x := v.(type) {
	case nil:
		return append(b, 'n')
	case xhashcode.Hashable:
		if isNilPointer(x) {
			return append(b, 'n')
		}
		b = append(b, 'h')
		return binary.BigEndian.AppendUint32(b, uint32(x.HashCode()))
	case string:
		return appendString(b, 's', x)
	case []rune:
		return appendString(b, 's', string(x))
	case []byte:
		return appendString(b, 'y', string(x))
	case bool:
		if x {
			return append(b, 't')
		}
		return append(b, 'f')
	case int8:
		return appendInt(b, int32(x))
	case int16:
		return appendInt(b, int32(x))
	case int32:
		return appendInt(b, x)
	case uint8:
		return appendInt(b, int32(x))
	case uint16:
		return appendInt(b, int32(x))
	case int:
		return appendLong(b, uint64(x))
	case int64:
		return appendLong(b, uint64(x))
	case uint:
		return appendLong(b, uint64(x))
	case uint32:
		return appendLong(b, uint64(x))
	case uint64:
		return appendLong(b, x)
	case float32:
		b = append(b, 'F')
		return binary.BigEndian.AppendUint32(b, math.Float32bits(x))
	case float64:
		b = append(b, 'D')
		return binary.BigEndian.AppendUint64(b, math.Float64bits(x))
	case []any:
		b = append(b, 'T')
		return appendKey(b, x)
	case map[string]any:
		keys := slices.Sorted(maps.Keys(x))
		b = append(b, 'M')
		b = binary.AppendUvarint(b, uint64(len(keys)))
		for _, k := range keys {
			b = appendString(b, 's', k)
			b = appendValue(b, x[k])
		}
		return b
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return append(b, 'n')
		}
		return appendValue(b, rv.Elem().Interface())
	}
	// 求值阶段已拒绝其余类型，保留的 key 不会走到这里
	return appendString(b, 'v', fmt.Sprintf("%T:%v", v, v))
}

func appendString(b []byte, tag byte, s string) []byte {
	b = append(b, tag)
	b = binary.AppendUvarint(b, uint64(len(s)))
	return append(b, s...)
}

func appendInt(b []byte, v int32) []byte {
	b = append(b, 'i')
	return binary.BigEndian.AppendUint32(b, uint32(v))
}

func appendLong(b []byte, v uint64) []byte {
	b = append(b, 'l')
	return binary.BigEndian.AppendUint64(b, v)
}

func isNilPointer(v any) bool {
	rv := reflect.ValueOf(v)
	return rv.Kind() == reflect.Pointer && rv.IsNil()
}
