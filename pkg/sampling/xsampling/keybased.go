package xsampling

import (
	"context"

	"github.com/hnflee/datafu/pkg/sampling/xhashcode"
)

// FieldsFunc 从上下文中取出当前记录的有序字段
//
// 供 [KeySampler.ShouldSample] 使用，使 KeySampler 可以作为通用 [Sampler] 参与组合。
type FieldsFunc func(ctx context.Context) []any

// KeyOption 配置 KeySampler 的可选参数
type KeyOption func(*KeySampler)

// WithFieldsFunc 设置 ShouldSample 使用的字段提取函数
//
// nil 会被忽略。
func WithFieldsFunc(fn FieldsFunc) KeyOption {
	return func(s *KeySampler) {
		if fn != nil {
			s.fieldsFunc = fn
		}
	}
}

// WithOnHashError 设置 ShouldSample 无法计算哈希时的回调
//
// 以下情况会触发回调，随后记录按丢弃处理：
//   - 未配置 FieldsFunc（错误为 ErrNilFieldsFunc）
//   - 字段类型不在固定哈希表中（错误包装 xhashcode.ErrUnsupportedType）
//
// 回调在求值路径上同步执行，应保持轻量（如原子计数器递增）。nil 会被忽略。
func WithOnHashError(fn func(error)) KeyOption {
	return func(s *KeySampler) {
		if fn != nil {
			s.onHashError = fn
		}
	}
}

// KeySampler 按记录内容做确定性采样
//
// 对相同的字段序列和相同的 Config，总是给出相同的决策，
// 与调用顺序、时间、goroutine 以及并行度都无关。
// 构造后只读，可在多个 goroutine 中共享。
type KeySampler struct {
	cfg         Config
	fieldsFunc  FieldsFunc
	onHashError func(error)
}

// NewKeySampler 创建按 key 确定性采样的采样器
//
// 构造时检查 SHA-1 是否可用，不可用时返回 [ErrDigestUnavailable]。
// nil option 返回 [ErrNilOption]。
//
// 示例：
//
//	cfg, err := xsampling.NewConfigWithSalt("experiment-7", "0.05")
//	if err != nil {
//	    return err
//	}
//	sampler, err := xsampling.NewKeySampler(cfg)
//	if err != nil {
//	    return err
//	}
//	keep, err := sampler.Evaluate(userID, country)
func NewKeySampler(cfg Config, opts ...KeyOption) (*KeySampler, error) {
	if err := digestReady(); err != nil {
		return nil, err
	}
	s := &KeySampler{cfg: cfg}
	for _, opt := range opts {
		if opt == nil {
			return nil, ErrNilOption
		}
		opt(s)
	}
	return s, nil
}

// Evaluate 判断由 fields 组成的记录是否保留
//
// 等价于 Decide(Expand(seed, Combine(fields)), rate)。
// 空记录的组合哈希为 0，依然得到有效的决策；nil 字段按 0 参与哈希。
// 只有字段类型不受支持时才返回错误。
func (s *KeySampler) Evaluate(fields ...any) (bool, error) {
	h, err := xhashcode.Combine(fields)
	if err != nil {
		return false, err
	}
	return s.EvaluateHash(h), nil
}

// EvaluateHash 用调用方已算好的组合哈希做决策，永不失败
func (s *KeySampler) EvaluateHash(h int32) bool {
	return Decide(Expand(s.cfg.seed, h), s.cfg.rate)
}

// Expanded 返回记录对应的展开值，用于诊断和一致性核对
func (s *KeySampler) Expanded(fields ...any) (float64, error) {
	h, err := xhashcode.Combine(fields)
	if err != nil {
		return 0, err
	}
	return Expand(s.cfg.seed, h), nil
}

// ShouldSample 通过 FieldsFunc 从 ctx 取出字段后求值
//
// 未配置 FieldsFunc 或字段无法哈希时，触发 WithOnHashError 回调并丢弃。
func (s *KeySampler) ShouldSample(ctx context.Context) bool {
	if s.fieldsFunc == nil {
		s.reportHashError(ErrNilFieldsFunc)
		return false
	}
	if ctx == nil {
		ctx = context.Background()
	}
	keep, err := s.Evaluate(s.fieldsFunc(ctx)...)
	if err != nil {
		s.reportHashError(err)
		return false
	}
	return keep
}

func (s *KeySampler) reportHashError(err error) {
	if s.onHashError != nil {
		s.onHashError(err)
	}
}

// Config 返回采样配置
func (s *KeySampler) Config() Config {
	return s.cfg
}

// Rate 返回采样比率
func (s *KeySampler) Rate() float64 {
	return s.cfg.rate
}

// Seed 返回种子
func (s *KeySampler) Seed() int32 {
	return s.cfg.seed
}

// Salt 返回盐值
func (s *KeySampler) Salt() string {
	return s.cfg.salt
}

var _ Sampler = (*KeySampler)(nil)
