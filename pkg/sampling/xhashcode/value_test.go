package xhashcode

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixedHash 测试用的 Hashable 实现
type fixedHash int32

func (f fixedHash) HashCode() int32 { return int32(f) }

// ptrHash 指针接收者的 Hashable 实现
type ptrHash struct{ h int32 }

func (p *ptrHash) HashCode() int32 { return p.h }

func TestValue(t *testing.T) {
	s := "A"
	var nilStr *string
	var nilPtrHash *ptrHash

	tests := []struct {
		name string
		in   any
		want int32
	}{
		{"nil", nil, NullHash},
		{"string", "A", 65},
		{"runes", []rune("hello"), 99162322},
		{"true", true, 1231},
		{"false", false, 1237},
		{"int8_negative", int8(-3), -3},
		{"int16", int16(300), 300},
		{"int32", int32(-7), -7},
		{"uint8", uint8(255), 255},
		{"uint16", uint16(65535), 65535},
		{"int_small", 7, 7},
		{"int64_high_bits", int64(1) << 40, 256},
		{"int64_minus_one", int64(-1), 0},
		{"int64_max", int64(math.MaxInt64), math.MinInt32},
		{"uint32", uint32(1), 1},
		{"uint64_max", uint64(math.MaxUint64), 0},
		{"uint64_shift32", uint64(1) << 32, 1},
		{"float32", float32(1.5), 1069547520},
		{"float32_nan", float32(math.NaN()), 2143289344},
		{"float64", 1.5, 1073217536},
		{"float64_zero", 0.0, 0},
		{"float64_neg_zero", math.Copysign(0, -1), math.MinInt32},
		{"float64_nan", math.NaN(), 2146959360},
		{"bytes", []byte("abc"), 126145},
		{"bytes_signed", []byte{0xff}, 30},
		{"bytes_empty", []byte{}, 1},
		{"tuple", []any{"A", "1"}, 18401},
		{"tuple_skips_nil", []any{"A", nil}, 592},
		{"tuple_empty", []any{}, 17},
		{"map", map[string]any{"a": 1}, 96},
		{"map_empty", map[string]any{}, 0},
		{"hashable", fixedHash(99), 99},
		{"hashable_pointer", &ptrHash{h: 5}, 5},
		{"hashable_nil_pointer", nilPtrHash, NullHash},
		{"string_pointer", &s, 65},
		{"nil_string_pointer", nilStr, NullHash},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Value(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestValue_Unsupported(t *testing.T) {
	tests := []struct {
		name string
		in   any
	}{
		{"struct", struct{}{}},
		{"time", time.Unix(0, 0)},
		{"complex", complex(1, 2)},
		{"int_slice", []int{1, 2}},
		{"nested_tuple_bad_elem", []any{"ok", struct{}{}}},
		{"map_bad_value", map[string]any{"k": struct{}{}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Value(tt.in)
			assert.ErrorIs(t, err, ErrUnsupportedType)
		})
	}
}

func TestMap_OrderIndependent(t *testing.T) {
	m := map[string]any{"a": 1, "b": "x", "c": true, "d": nil}
	first, err := Map(m)
	require.NoError(t, err)
	for range 20 {
		got, err := Map(m)
		require.NoError(t, err)
		assert.Equal(t, first, got)
	}
}

func TestIntWidths(t *testing.T) {
	// 小的非负整数在 32/64 位下哈希一致，负数不一致
	assert.Equal(t, int32(7), Int64(7))
	assert.Equal(t, int32(0), Int64(-1))

	v, err := Value(int32(-1))
	require.NoError(t, err)
	assert.Equal(t, int32(-1), v)
}
