package xsink

import (
	"testing"

	"go.uber.org/goleak"
)

// TestMain 验证所有测试结束后没有 goroutine 泄漏。
// Sink 的串行队列 worker 必须随 Close 一起退出。
func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}
