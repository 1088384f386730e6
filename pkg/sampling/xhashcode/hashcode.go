package xhashcode

import (
	"fmt"
	"unicode/utf16"
)

// AlgorithmPoly31 是本包哈希算法的名称与版本。
//
// 任何会改变哈希结果的修改都必须提升版本号，
// 否则新旧流水线之间的采样结果会静默地不一致。
const AlgorithmPoly31 = "poly31-utf16/v1"

const (
	// Prime 组合哈希使用的乘数。
	Prime int32 = 31

	// NullHash 空值（nil）的哈希哨兵值。
	NullHash int32 = 0

	// 第一个需要代理对编码的码点
	surrSelf = 0x10000
)

// String 计算字符串的固定多项式哈希。
//
// 字符串按 UTF-16 码元迭代：BMP 之外的码点拆成代理对后分别参与计算，
// 非法 UTF-8 字节按 U+FFFD 处理。结果与 JVM 的 String.hashCode 一致。
//
// 盐值派生种子也使用此函数。
func String(s string) int32 {
	var h int32
	for _, r := range s {
		if r < surrSelf {
			h = h*Prime + int32(r)
			continue
		}
		r1, r2 := utf16.EncodeRune(r)
		h = h*Prime + int32(r1)
		h = h*Prime + int32(r2)
	}
	return h
}

// Fold 把已经算好的字段哈希按顺序折叠成组合哈希。
//
// 空输入返回 0。每一步都按 int32 回绕。
func Fold(hashes ...int32) int32 {
	var h int32
	for _, fh := range hashes {
		h = h*Prime + fh
	}
	return h
}

// Combine 计算一条记录的组合哈希。
//
// 字段顺序是契约的一部分：交换字段通常会得到不同的结果。
// 空记录返回 0。任一字段类型不受支持时返回包装了 [ErrUnsupportedType] 的错误。
func Combine(fields []any) (int32, error) {
	var h int32
	for i, f := range fields {
		fh, err := Value(f)
		if err != nil {
			return 0, fmt.Errorf("xhashcode: field %d: %w", i, err)
		}
		h = h*Prime + fh
	}
	return h, nil
}
