package netelab

import (
	"context"
	"testing"
)

func BenchmarkElaborateCorpus(b *testing.B) {
	src, err := DirTree("testdata/corpus")
	if err != nil {
		b.Fatalf("DirTree failed: %v", err)
	}

	ctx := context.Background()

	b.ResetTimer()
	for b.Loop() {
		res, err := ElaborateSource(ctx, WithSource(src))
		if err != nil {
			b.Fatalf("ElaborateSource failed: %v", err)
		}
		_ = res
	}
}

func BenchmarkElaborateTop(b *testing.B) {
	src, err := DirTree("testdata/rtl")
	if err != nil {
		b.Fatalf("DirTree failed: %v", err)
	}

	ctx := context.Background()

	b.ResetTimer()
	for b.Loop() {
		res, err := ElaborateSource(ctx, WithSource(src), WithTop("alu"))
		if err != nil {
			b.Fatalf("ElaborateSource failed: %v", err)
		}
		_ = res
	}
}

func BenchmarkFingerprint(b *testing.B) {
	src, err := DirTree("testdata/rtl")
	if err != nil {
		b.Fatalf("DirTree failed: %v", err)
	}
	res, err := ElaborateSource(context.Background(), WithSource(src))
	if err != nil {
		b.Fatalf("ElaborateSource failed: %v", err)
	}
	d := res.Unit("alu").Design

	b.ResetTimer()
	for b.Loop() {
		_ = d.Fingerprint()
	}
}
