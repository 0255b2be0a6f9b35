package xrotate

import "time"

// 节流默认值
const (
	// DefaultCheckEvery 默认每多少次写调用触发一次大小检查
	DefaultCheckEvery = 50000

	// DefaultCheckInterval 默认距上次检查多久后强制触发一次大小检查
	DefaultCheckInterval = 8 * time.Minute
)

// throttle 大小检查节流器。
//
// 高写入量下每次写都 stat 文件的开销不可接受，节流器用计数阈值约束
// 最坏检查频率，用时间阈值约束最坏过期程度，两者先到先触发。
//
// 非并发安全，由持有者（FileRotator 的互斥锁 / Sink 的串行队列）保证独占访问。
type throttle struct {
	checkEvery int64
	interval   time.Duration

	calls     int64
	lastCheck time.Time
}

// checkDue 判断是否到达检查时机。
// calls 恰好为零也视为到期，覆盖首次调用（此时 lastCheck 尚无意义）。
func checkDue(calls, checkEvery int64, elapsed, interval time.Duration) bool {
	return calls == 0 || calls >= checkEvery || elapsed >= interval
}

// tick 记录一次写调用，返回是否应执行大小检查。
//
// 触发时计数归零、时间戳刷新——无论随后是否真的发生轮转。
// 判定在计数递增之前进行，因此触发后的下一次调用看到的计数是 1 而非 0，
// 不会连续触发。
func (t *throttle) tick(now time.Time) bool {
	due := checkDue(t.calls, t.checkEvery, now.Sub(t.lastCheck), t.interval)
	if due {
		t.calls = 0
		t.lastCheck = now
	}
	t.calls++
	return due
}
