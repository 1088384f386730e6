package xsampling

import (
	"context"
	"fmt"
	"strings"
)

// Predicate 既能按字段求值、又能作为 Sampler 使用的采样器
//
// *KeySampler 与 *CompositeSampler 都实现了它，因此组合可以嵌套。
type Predicate interface {
	Sampler
	Evaluate(fields ...any) (bool, error)
}

// CompositeMode 组合模式
type CompositeMode int

const (
	// ModeAll 所有成员都保留时才保留，成员为空时保留全部
	ModeAll CompositeMode = iota
	// ModeAny 任一成员保留即保留，成员为空时全部丢弃
	ModeAny
)

// String 返回 "all" 或 "any"
func (m CompositeMode) String() string {
	switch m {
	case ModeAll:
		return "all"
	case ModeAny:
		return "any"
	default:
		return fmt.Sprintf("CompositeMode(%d)", int(m))
	}
}

// ParseMode 解析组合模式，接受 all/and 与 any/or（大小写不敏感），空字符串为 all
func ParseMode(s string) (CompositeMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "all", "and":
		return ModeAll, nil
	case "any", "or":
		return ModeAny, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidMode, s)
	}
}

// CompositeSampler 对同一组字段按多个采样器求值后取交集或并集
//
// 典型用法是多个盐值：每个盐值是一个独立的样本，
// ModeAll 得到同时落在所有样本中的记录，ModeAny 得到落在任一样本中的记录。
// 成员都是确定性的，组合结果同样是确定性的。求值短路。
type CompositeSampler struct {
	members []Predicate
	mode    CompositeMode
}

// NewCompositeSampler 创建组合采样器
//
// 非法 mode 返回 [ErrInvalidMode]，nil 成员返回 [ErrNilSampler]。
func NewCompositeSampler(mode CompositeMode, members ...Predicate) (*CompositeSampler, error) {
	if mode != ModeAll && mode != ModeAny {
		return nil, fmt.Errorf("%w: %d", ErrInvalidMode, int(mode))
	}
	for i, m := range members {
		if m == nil {
			return nil, fmt.Errorf("%w: member %d", ErrNilSampler, i)
		}
	}
	return &CompositeSampler{
		members: append([]Predicate(nil), members...),
		mode:    mode,
	}, nil
}

// All 等同于 NewCompositeSampler(ModeAll, members...)
func All(members ...Predicate) (*CompositeSampler, error) {
	return NewCompositeSampler(ModeAll, members...)
}

// Any 等同于 NewCompositeSampler(ModeAny, members...)
func Any(members ...Predicate) (*CompositeSampler, error) {
	return NewCompositeSampler(ModeAny, members...)
}

// Evaluate 按成员顺序求值，遇到第一个能决定结果的成员即返回
//
// 成员返回的错误原样返回，此时决策无效。
func (s *CompositeSampler) Evaluate(fields ...any) (bool, error) {
	for _, m := range s.members {
		ok, err := m.Evaluate(fields...)
		if err != nil {
			return false, err
		}
		if s.decided(ok) {
			return ok, nil
		}
	}
	return s.mode == ModeAll, nil
}

// ShouldSample 与 Evaluate 相同的短路规则，字段由各成员自己从 ctx 取出
func (s *CompositeSampler) ShouldSample(ctx context.Context) bool {
	for _, m := range s.members {
		if ok := m.ShouldSample(ctx); s.decided(ok) {
			return ok
		}
	}
	return s.mode == ModeAll
}

// decided all 模式下一个 false、any 模式下一个 true 就能决定结果
func (s *CompositeSampler) decided(ok bool) bool {
	return ok == (s.mode == ModeAny)
}

// Mode 返回组合模式
func (s *CompositeSampler) Mode() CompositeMode {
	return s.mode
}

// Members 返回成员的副本
func (s *CompositeSampler) Members() []Predicate {
	return append([]Predicate(nil), s.members...)
}

var (
	_ Predicate = (*CompositeSampler)(nil)
	_ Predicate = (*KeySampler)(nil)
)
