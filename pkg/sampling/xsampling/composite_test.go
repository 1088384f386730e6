package xsampling

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// constPredicate 固定结果的成员，calls 记录被求值的次数
type constPredicate struct {
	keep  bool
	err   error
	calls *int
}

func (p constPredicate) Evaluate(...any) (bool, error) {
	if p.calls != nil {
		*p.calls++
	}
	return p.keep, p.err
}

func (p constPredicate) ShouldSample(context.Context) bool {
	if p.calls != nil {
		*p.calls++
	}
	return p.keep && p.err == nil
}

func TestSamplerFunc(t *testing.T) {
	called := false
	var s Sampler = SamplerFunc(func(context.Context) bool {
		called = true
		return true
	})
	assert.True(t, s.ShouldSample(context.Background()))
	assert.True(t, called)
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		in   string
		want CompositeMode
	}{
		{"", ModeAll},
		{"all", ModeAll},
		{"AND", ModeAll},
		{" any ", ModeAny},
		{"or", ModeAny},
	}
	for _, tt := range tests {
		got, err := ParseMode(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	_, err := ParseMode("xor")
	assert.ErrorIs(t, err, ErrInvalidMode)

	assert.Equal(t, "all", ModeAll.String())
	assert.Equal(t, "any", ModeAny.String())
	assert.Equal(t, "CompositeMode(9)", CompositeMode(9).String())
}

func TestNewCompositeSampler_Errors(t *testing.T) {
	_, err := NewCompositeSampler(CompositeMode(5), constPredicate{keep: true})
	assert.ErrorIs(t, err, ErrInvalidMode)

	_, err = All(constPredicate{keep: true}, nil)
	assert.ErrorIs(t, err, ErrNilSampler)

	_, err = Any(nil)
	assert.ErrorIs(t, err, ErrNilSampler)
}

func TestCompositeSampler_Logic(t *testing.T) {
	yes, no := constPredicate{keep: true}, constPredicate{keep: false}

	tests := []struct {
		name    string
		mode    CompositeMode
		members []Predicate
		want    bool
	}{
		{"all_empty", ModeAll, nil, true},
		{"any_empty", ModeAny, nil, false},
		{"all_true", ModeAll, []Predicate{yes, yes}, true},
		{"all_one_false", ModeAll, []Predicate{yes, no}, false},
		{"any_one_true", ModeAny, []Predicate{no, yes}, true},
		{"any_all_false", ModeAny, []Predicate{no, no}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := NewCompositeSampler(tt.mode, tt.members...)
			require.NoError(t, err)

			got, err := s.Evaluate("k")
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.want, s.ShouldSample(context.Background()))
			assert.Equal(t, tt.mode, s.Mode())
		})
	}
}

func TestCompositeSampler_ShortCircuit(t *testing.T) {
	calls := 0
	counting := constPredicate{keep: true, calls: &calls}

	all, err := All(constPredicate{keep: false}, counting)
	require.NoError(t, err)
	ok, err := all.Evaluate("k")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.False(t, all.ShouldSample(context.Background()))

	either, err := Any(constPredicate{keep: true}, counting)
	require.NoError(t, err)
	ok, err = either.Evaluate("k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.True(t, either.ShouldSample(context.Background()))

	assert.Zero(t, calls)
}

func TestCompositeSampler_EvaluateError(t *testing.T) {
	boom := errors.New("boom")
	s, err := Any(constPredicate{keep: false}, constPredicate{err: boom})
	require.NoError(t, err)

	_, err = s.Evaluate("k")
	assert.ErrorIs(t, err, boom)

	// 真实成员：不支持的字段类型向上传递
	ks := mustSampler(t, DefaultSalt, "1")
	s, err = All(ks)
	require.NoError(t, err)
	_, err = s.Evaluate(struct{}{})
	assert.Error(t, err)
}

func TestCompositeSampler_MembersCopy(t *testing.T) {
	input := []Predicate{constPredicate{keep: true}, constPredicate{keep: false}}
	s, err := Any(input...)
	require.NoError(t, err)

	input[0] = constPredicate{keep: false}
	got := s.Members()
	got[1] = constPredicate{keep: true}

	assert.True(t, s.ShouldSample(context.Background()))
	assert.Len(t, s.Members(), 2)
}

func TestCompositeSampler_KnownKeys(t *testing.T) {
	half := mustSampler(t, DefaultSalt, "0.5")
	all := mustSampler(t, DefaultSalt, "1")
	none := mustSampler(t, DefaultSalt, "0")

	both, err := All(half, all)
	require.NoError(t, err)
	either, err := Any(half, none)
	require.NoError(t, err)
	nested, err := Any(none, both)
	require.NoError(t, err)

	// 默认盐值、rate 0.5：B 与 user-42 保留，A 与 hello 丢弃
	for key, want := range map[string]bool{"A": false, "B": true, "hello": false, "user-42": true} {
		for _, s := range []*CompositeSampler{both, either, nested} {
			got, err := s.Evaluate(key)
			require.NoError(t, err)
			assert.Equal(t, want, got, "%s/%s", s.Mode(), key)
		}
	}
}

func TestCompositeSampler_IndependentSalts(t *testing.T) {
	a := mustSampler(t, "cohort-a", "0.5", WithFieldsFunc(fieldsFromContext))
	b := mustSampler(t, "cohort-b", "0.5", WithFieldsFunc(fieldsFromContext))

	both, err := All(a, b)
	require.NoError(t, err)
	either, err := Any(a, b)
	require.NoError(t, err)

	total := 4000
	nBoth, nEither := 0, 0
	for _, rec := range records(total) {
		ka, err := a.Evaluate(rec...)
		require.NoError(t, err)
		kb, err := b.Evaluate(rec...)
		require.NoError(t, err)

		gotBoth, err := both.Evaluate(rec...)
		require.NoError(t, err)
		gotEither, err := either.Evaluate(rec...)
		require.NoError(t, err)
		require.Equal(t, ka && kb, gotBoth)
		require.Equal(t, ka || kb, gotEither)

		ctx := context.WithValue(context.Background(), fieldsKey{}, rec)
		require.Equal(t, gotBoth, both.ShouldSample(ctx))
		require.Equal(t, gotEither, either.ShouldSample(ctx))
		if gotBoth {
			nBoth++
		}
		if gotEither {
			nEither++
		}
	}

	// 两个独立的 50% 样本：交集约 25%，并集约 75%
	assert.InDelta(t, 0.25, float64(nBoth)/float64(total), 0.04)
	assert.InDelta(t, 0.75, float64(nEither)/float64(total), 0.04)
}
