package xsampling

import (
	"context"
	"testing"
)

func BenchmarkExpand(b *testing.B) {
	b.ReportAllocs()
	var h int32
	for b.Loop() {
		_ = Expand(defaultSeed, h)
		h++
	}
}

func BenchmarkKeySampler_Evaluate(b *testing.B) {
	s := mustSampler(b, DefaultSalt, "0.1")
	fields := []any{"user-0123456789", int32(42)}

	b.ReportAllocs()
	for b.Loop() {
		_, _ = s.Evaluate(fields...)
	}
}

func BenchmarkKeySampler_EvaluateHash(b *testing.B) {
	s := mustSampler(b, DefaultSalt, "0.1")

	b.ReportAllocs()
	var h int32
	for b.Loop() {
		_ = s.EvaluateHash(h)
		h++
	}
}

func BenchmarkKeySampler_ShouldSample(b *testing.B) {
	fields := []any{"user-0123456789"}
	s := mustSampler(b, DefaultSalt, "0.1", WithFieldsFunc(func(context.Context) []any {
		return fields
	}))
	ctx := context.Background()

	b.ReportAllocs()
	for b.Loop() {
		_ = s.ShouldSample(ctx)
	}
}

func BenchmarkKeySampler_Parallel(b *testing.B) {
	s := mustSampler(b, DefaultSalt, "0.1")

	b.ReportAllocs()
	b.RunParallel(func(pb *testing.PB) {
		var h int32
		for pb.Next() {
			_ = s.EvaluateHash(h)
			h++
		}
	})
}
