package xhashcode

import "testing"

func BenchmarkString(b *testing.B) {
	b.ReportAllocs()
	for b.Loop() {
		_ = String("user-0123456789")
	}
}

func BenchmarkCombine(b *testing.B) {
	fields := []any{"user-0123456789", int32(42), 3.14, true, nil}
	b.ReportAllocs()
	for b.Loop() {
		_, _ = Combine(fields)
	}
}

func BenchmarkFold(b *testing.B) {
	hashes := []int32{1, 2, 3, 4, 5}
	b.ReportAllocs()
	for b.Loop() {
		_ = Fold(hashes...)
	}
}
