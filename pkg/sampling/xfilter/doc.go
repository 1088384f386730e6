// Package xfilter 把按 key 采样接入记录管线。
//
// Filter 对每条记录取出 key 字段（默认全部字段），交给采样器求值，
// 保留结果为 true 的记录：
//
//	sampler, _ := xsampling.NewKeySampler(cfg)
//	f, err := xfilter.New(sampler, xfilter.WithKeyFields(0))
//	kept, stats, err := f.ApplyParallel(ctx, rows, 8)
//
// 单条记录的决策只取决于 key 与采样配置，因此 Apply、ApplyParallel 与 Run
// 对同一输入给出相同的保留集合，ApplyParallel 的输出与 worker 数无关。
//
// [Stats.Fingerprint] 是保留 key 的与顺序无关的摘要，
// 可用来核对两次运行（或不同并行度）得到的样本成员是否一致。
package xfilter
