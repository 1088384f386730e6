// Package xhashcode 提供固定版本的字段哈希算法，用于把一条记录的有序字段折叠成
// 一个 int32 组合哈希。
//
// # 算法
//
// 算法名为 [AlgorithmPoly31]（"poly31-utf16/v1"）：
//
//   - 字符串：对 UTF-16 码元做 s[0]*31^(n-1) + ... + s[n-1] 多项式哈希
//   - 组合哈希：h = h*31 + fieldHash，从 h = 0 开始
//   - 全程使用 int32 补码回绕，不提升到更宽的整数类型
//
// 各类型字段的哈希与 JVM 上的数据处理引擎保持一致，这样 Go 流水线与历史采样结果可以
// 逐位对齐。具体映射见 [Value]。
//
// 注意：不要用 Go 运行时的 map 哈希或 hash/maphash 替代本包。
// 它们的种子按进程随机化，跨进程、跨版本都不稳定，会让采样结果无法复现。
//
// # 空值
//
// nil（包括 nil 指针）统一哈希为 [NullHash]（0），不会返回错误，
// 因此缺失字段不会让采样谓词失败。
//
// # 并发安全
//
// 包内所有函数都是无状态纯函数，可在任意 goroutine 中并发调用。
package xhashcode
