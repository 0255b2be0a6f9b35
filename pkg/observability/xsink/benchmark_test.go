package xsink

import (
	"path/filepath"
	"testing"
	"time"
)

func BenchmarkFormatLine(b *testing.B) {
	now := time.Now()

	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_ = formatLine(now, LevelInfo, "benchmark log line with some payload")
	}
}

func BenchmarkSinkLog(b *testing.B) {
	s, err := New(filepath.Join(b.TempDir(), "bench.log"), "",
		WithQueueDepth(b.N+1),
	)
	if err != nil {
		b.Fatal(err)
	}
	defer s.Close()

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		s.Info("benchmark log line with some payload")
	}
}

func BenchmarkSinkLogParallel(b *testing.B) {
	s, err := New(filepath.Join(b.TempDir(), "bench.log"), "",
		WithQueueDepth(1<<16),
	)
	if err != nil {
		b.Fatal(err)
	}
	defer s.Close()

	b.ReportAllocs()
	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			s.Info("benchmark log line with some payload")
		}
	})
}
