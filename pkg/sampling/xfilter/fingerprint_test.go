package xfilter

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFingerprint_OrderIndependent(t *testing.T) {
	keys := [][]any{{"a"}, {"b", int32(1)}, {nil}, {2.5, true}}

	var fwd, rev Fingerprint
	for _, k := range keys {
		fwd.Add(k)
	}
	for i := len(keys) - 1; i >= 0; i-- {
		rev.Add(keys[i])
	}
	assert.Equal(t, fwd, rev)
	assert.Equal(t, int64(4), fwd.Count())
}

func TestFingerprint_Merge(t *testing.T) {
	var whole, a, b Fingerprint
	for i, k := range [][]any{{"x"}, {"y"}, {"z"}} {
		whole.Add(k)
		if i == 0 {
			a.Add(k)
		} else {
			b.Add(k)
		}
	}
	a.Merge(b)
	assert.Equal(t, whole, a)
}

func TestFingerprint_TypeSensitive(t *testing.T) {
	sum := func(key ...any) uint64 {
		var fp Fingerprint
		fp.Add(key)
		return fp.Sum64()
	}

	seen := map[uint64]string{}
	cases := map[string][]any{
		"string":       {"1"},
		"int32":        {int32(1)},
		"int64":        {int64(1)},
		"bytes":        {[]byte("1")},
		"float32":      {float32(1)},
		"float64":      {float64(1)},
		"nil":          {nil},
		"empty":        {},
		"two_fields":   {"a", "b"},
		"joined":       {"ab"},
		"split_differ": {"a", "bc"},
	}
	for name, key := range cases {
		s := sum(key...)
		if other, dup := seen[s]; dup {
			t.Fatalf("%s and %s share a fingerprint", name, other)
		}
		seen[s] = name
	}
	assert.Equal(t, sum("a", "bc"), sum("a", "bc"))
}

func TestFingerprint_DuplicatesCount(t *testing.T) {
	var once, twice Fingerprint
	once.Add([]any{"a"})
	twice.Add([]any{"a"})
	twice.Add([]any{"a"})
	assert.NotEqual(t, once.Sum64(), twice.Sum64())
}

func TestFingerprint_String(t *testing.T) {
	var fp Fingerprint
	assert.Equal(t, "0000000000000000/0", fp.String())
	fp.Add([]any{"a"})
	assert.Regexp(t, `^[0-9a-f]{16}/1$`, fp.String())
}

type userID int32

func (u userID) HashCode() int32 { return int32(u) }

func TestFingerprint_PointersFollowValue(t *testing.T) {
	sum := func(key ...any) uint64 {
		var fp Fingerprint
		fp.Add(key)
		return fp.Sum64()
	}

	a, b := "user-42", "user-42"
	n1, n2 := int64(7), int64(7)
	var nilStr *string

	assert.Equal(t, sum(&a), sum(&b))
	assert.Equal(t, sum("user-42"), sum(&a))
	assert.Equal(t, sum(&n1, "x"), sum(&n2, "x"))
	assert.Equal(t, sum(nil), sum(nilStr))

	pa := &a
	assert.Equal(t, sum(&pa), sum("user-42"))
}

func TestFingerprint_CompositeValues(t *testing.T) {
	sum := func(key ...any) uint64 {
		var fp Fingerprint
		fp.Add(key)
		return fp.Sum64()
	}

	m1 := map[string]any{"a": int32(1), "b": "x", "c": []any{true, nil}}
	m2 := map[string]any{"c": []any{true, nil}, "b": "x", "a": int32(1)}
	for range 20 {
		assert.Equal(t, sum(m1), sum(m2))
	}

	assert.Equal(t, sum([]any{"a", int32(1)}), sum([]any{"a", int32(1)}))
	assert.NotEqual(t, sum([]any{"a", int32(1)}), sum("a", int32(1)), "nested tuple differs from flat key")
	assert.Equal(t, sum([]rune("ab")), sum("ab"))
	assert.Equal(t, sum(int8(3)), sum(int32(3)))
	assert.Equal(t, sum(uint64(3)), sum(int64(3)))
	assert.NotEqual(t, sum(int32(3)), sum(int64(3)))

	id := userID(5)
	assert.Equal(t, sum(userID(5)), sum(&id))
	assert.NotEqual(t, sum(userID(5)), sum(int32(5)))
}
