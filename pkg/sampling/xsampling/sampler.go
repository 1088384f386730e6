package xsampling

import "context"

// Sampler 采样策略接口
//
// 采样器用于决定是否保留某个事件或记录。
// 返回 true 表示保留，false 表示丢弃。
type Sampler interface {
	// ShouldSample 判断是否应该采样
	//
	// ctx 携带采样决策所需的上下文信息，
	// 如 KeySampler 通过 FieldsFunc 从 ctx 中取出当前记录的字段。
	ShouldSample(ctx context.Context) bool
}

// SamplerFunc 把普通函数适配为 Sampler
type SamplerFunc func(ctx context.Context) bool

// ShouldSample 调用 f(ctx)
func (f SamplerFunc) ShouldSample(ctx context.Context) bool {
	return f(ctx)
}

var _ Sampler = SamplerFunc(nil)
