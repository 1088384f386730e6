// Package xsampling 提供基于记录内容的确定性采样谓词。
//
// 给定一条记录（有序字段序列）和采样比率，xsampling 用一个与记录内容绑定的
// 伪随机值决定保留还是丢弃。相同的记录和盐值在任何一次运行、任何一个 worker、
// 任何并行度下都得到相同的决策，因此重跑、重试、重新分区都不会改变样本成员。
//
// # 决策流程
//
//	hash  := xhashcode.Combine(fields)  // 组合哈希，int32 回绕
//	value := Expand(cfg.Seed(), hash)   // SHA-1 展开为 double
//	keep  := Decide(value, cfg.Rate())  // value <= rate
//
// # 配置
//
// [Config] 在构造时一次性解析：
//   - [NewConfig](rate)：使用默认盐值 [DefaultSalt]（"323148"）
//   - [NewConfigWithSalt](salt, rate)：自定义盐值，空字符串也是合法盐值
//
// rate 以十进制字符串给出，解析失败返回 [ErrInvalidRate]。
// 解析之外不做区间校验：rate <= 0 几乎丢弃全部记录，rate >= 1 保留全部记录。
// 种子 seed = xhashcode.String(salt)，使用固定版本的字符串哈希，
// 不依赖 Go 运行时的哈希实现。
//
// # Expand 的取值范围
//
// Expand 取 SHA-1 摘要前 4 字节作为有符号 int32 d，
// 结果为 ((d / MaxInt32) + 1) / 2，取值范围是 [-0.5/MaxInt32, 1.0]：
//   - d == MinInt32 时结果略小于 0，因此 rate = 0 时仍可能保留极少数记录
//   - d == MaxInt32 时结果恰好为 1.0，rate = 1 时仍然保留
//
// 这是为了与历史采样数据逐位一致而保留的行为，不做截断。
//
// # 错误
//
// 只有两类错误，都发生在构造阶段：
//   - [ErrInvalidRate]：rate 字符串格式错误
//   - [ErrDigestUnavailable]：运行环境无法提供 SHA-1（例如只允许 FIPS 认可算法）
//
// 逐条记录的求值路径不会失败；只有字段类型超出固定哈希表时，
// [KeySampler.Evaluate] 才返回 xhashcode.ErrUnsupportedType。
//
// # 组合
//
// [KeySampler] 与 [CompositeSampler] 都实现 [Predicate]，可以通过 [All]/[Any]
// 组合，例如要求记录同时落在两个不同盐值的样本中。组合既能按字段求值
// （Evaluate），也能作为 [Sampler] 按 ctx 判断。
//
// # 并发安全
//
// 所有采样器在构造后都是只读的，可在多个 goroutine 中同时使用，无需加锁。
package xsampling
