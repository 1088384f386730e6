// Package sampling 提供按 key 确定性采样相关的子包。
//
// 子包列表：
//   - xhashcode: 与 JVM hashCode 一致的字段哈希与组合哈希
//   - xsampling: 盐值与采样率配置、种子展开、按 key 采样判断
//   - xrecord: 带类型 schema 的 CSV/JSONL 记录读写
//   - xfilter: 把采样判断套用到记录流，支持并行批处理与成员摘要
//
// 同样的盐值、采样率与 key 在任何进程、任何时间得到相同的决策。
package sampling
