package xsink

import "sync"

// priorityDepth 优先通道缓冲大小。
// 优先任务（刷盘、挂起）是低频的控制信号，小缓冲足够。
const priorityDepth = 4

// serialQueue 单 worker 串行队列。
//
// 同一队列上提交的任务严格串行执行，这是 Sink 写入与轮转全序的来源。
// 优先通道在每个调度点先于任务队列被消费：生命周期信号（刷盘、挂起）
// 最多等待当前正在执行的一个任务，不会被积压的日志行饿死。
type serialQueue struct {
	tasks    chan func()
	priority chan func()
	stopped  chan struct{}
	// terminated 在 worker 退出时关闭。此后不会再有任务被执行，
	// 等待优先任务结果的调用方据此放弃等待（见 Sink.Flush）。
	terminated chan struct{}
	stopOnce   sync.Once
	wg         sync.WaitGroup
}

// newSerialQueue 创建并启动串行队列，depth 为任务队列缓冲大小（最小 1）。
func newSerialQueue(depth int) *serialQueue {
	if depth < 1 {
		depth = 1
	}
	q := &serialQueue{
		tasks:      make(chan func(), depth),
		priority:   make(chan func(), priorityDepth),
		stopped:    make(chan struct{}),
		terminated: make(chan struct{}),
	}
	q.wg.Add(1)
	go q.worker()
	return q
}

// worker 唯一的工作协程。
// 不检查 stopped 信号，只靠任务队列关闭退出，确保 stop 时排空剩余任务。
func (q *serialQueue) worker() {
	defer q.wg.Done()
	defer close(q.terminated)
	for {
		// 每个调度点先尝试优先通道
		select {
		case fn := <-q.priority:
			q.run(fn)
			continue
		default:
		}

		select {
		case fn := <-q.priority:
			q.run(fn)
		case fn, ok := <-q.tasks:
			if !ok {
				// 队列已关闭：消费掉残留的优先任务再退出，
				// 保证 stop 前成功提交的控制信号不被丢弃
				for {
					select {
					case fn := <-q.priority:
						q.run(fn)
					default:
						return
					}
				}
			}
			q.run(fn)
		}
	}
}

// run 安全执行任务，panic 被隔离（任务是内部闭包，这里是最后防线）。
func (q *serialQueue) run(fn func()) {
	defer func() { _ = recover() }()
	fn()
}

// submit 非阻塞提交任务。队列满或已停止返回 false。
func (q *serialQueue) submit(fn func()) (ok bool) {
	// stop() 关闭 stopped 后、关闭 tasks 前的窗口内，
	// select 可能恰好选中 tasks 发送分支，recover 捕获 send on closed panic
	defer func() {
		if r := recover(); r != nil {
			ok = false
		}
	}()

	select {
	case <-q.stopped:
		return false
	case q.tasks <- fn:
		return true
	default:
		return false
	}
}

// submitPriority 阻塞提交优先任务。队列已停止返回 false。
// 优先通道从不关闭，发送不会 panic。
func (q *serialQueue) submitPriority(fn func()) bool {
	select {
	case <-q.stopped:
		return false
	case q.priority <- fn:
		return true
	}
}

// stop 停止队列：拒绝新任务，排空已提交任务后返回。
func (q *serialQueue) stop() {
	q.stopOnce.Do(func() {
		close(q.stopped)
		close(q.tasks)
		q.wg.Wait()
	})
}
