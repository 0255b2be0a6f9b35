package xrotate

import (
	"path/filepath"
	"testing"
	"time"
)

func BenchmarkFileRotatorWrite(b *testing.B) {
	target := filepath.Join(b.TempDir(), "bench.log")
	r, err := NewFile(target)
	if err != nil {
		b.Fatal(err)
	}
	defer r.Close()

	line := []byte("2024-01-31T23:59:59Z INFO benchmark log line with some payload\n")

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := r.Write(line); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkFileRotatorWriteFlushEvery1 每条都 fsync 的最坏情况，
// 用于对照批量刷盘带来的吞吐差距
func BenchmarkFileRotatorWriteFlushEvery1(b *testing.B) {
	target := filepath.Join(b.TempDir(), "bench.log")
	r, err := NewFile(target, WithFlushEvery(1))
	if err != nil {
		b.Fatal(err)
	}
	defer r.Close()

	line := []byte("2024-01-31T23:59:59Z INFO benchmark log line with some payload\n")

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := r.Write(line); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkThrottleTick(b *testing.B) {
	th := throttle{checkEvery: DefaultCheckEvery, interval: DefaultCheckInterval}
	now := time.Now()

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		th.tick(now)
	}
}

func BenchmarkArchiveName(b *testing.B) {
	now := time.Now()

	b.Run("numbering", func(b *testing.B) {
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			_ = archiveName("/var/log/app.log", PolicyNumbering, now)
		}
	})
	b.Run("date_uuid", func(b *testing.B) {
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			_ = archiveName("/var/log/app.log", PolicyDateUUID, now)
		}
	})
}
