package xhashcode

import "errors"

// ErrUnsupportedType 表示字段值的类型不在固定哈希表中。
//
// 支持的类型见 [Value]。自定义类型可实现 [Hashable] 接口。
var ErrUnsupportedType = errors.New("xhashcode: unsupported field type")
