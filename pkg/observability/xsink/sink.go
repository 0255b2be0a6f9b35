package xsink

import (
	"fmt"
	"io"
	"sync/atomic"
	"time"

	"github.com/omeyang/xsink/pkg/observability/xrotate"
	"github.com/omeyang/xsink/pkg/util/xfile"
)

// Sink 默认配置值
const (
	// DefaultQueueDepth 默认串行队列缓冲大小
	DefaultQueueDepth = 1024

	// lineTimeLayout 日志行时间戳格式（UTC，固定宽度）
	lineTimeLayout = "2006-01-02T15:04:05.000Z07:00"
)

// sinkConfig Sink 配置。
type sinkConfig struct {
	// MinLevel 低于该级别的日志被直接丢弃（默认 LevelDebug，即全部记录）
	MinLevel Level

	// QueueDepth 串行队列缓冲大小
	QueueDepth int

	// OnError 内部错误回调：写失败、刷盘失败、轮转失败、队列满丢弃
	// 都从这里上报。约束同 xrotate：回调不得再经由本 Sink 记日志。
	OnError func(error)

	// RotateOpts 透传给轮转引擎的选项
	RotateOpts []xrotate.FileOption
}

// Option Sink 配置选项函数
type Option func(*sinkConfig)

// WithMinLevel 设置最低记录级别，低于该级别的调用被丢弃
func WithMinLevel(l Level) Option {
	return func(c *sinkConfig) { c.MinLevel = l }
}

// WithQueueDepth 设置串行队列缓冲大小
func WithQueueDepth(n int) Option {
	return func(c *sinkConfig) { c.QueueDepth = n }
}

// WithOnError 设置内部错误回调（同时作为轮转引擎的错误侧通道）
func WithOnError(fn func(error)) Option {
	return func(c *sinkConfig) { c.OnError = fn }
}

// WithObserver 设置轮转事件观察者
func WithObserver(o xrotate.Observer) Option {
	return func(c *sinkConfig) {
		c.RotateOpts = append(c.RotateOpts, xrotate.WithObserver(o))
	}
}

// WithRotateOptions 追加轮转引擎选项（大小阈值、命名策略、节流参数等）
func WithRotateOptions(opts ...xrotate.FileOption) Option {
	return func(c *sinkConfig) {
		c.RotateOpts = append(c.RotateOpts, opts...)
	}
}

// rotator 是 Sink 对轮转引擎的依赖面，*xrotate.FileRotator 实现它。
// 以接口依赖便于在测试中注入故障。
type rotator interface {
	io.WriteCloser
	Flush() error
	Rotate() error
	Pause()
	Resume()
}

var _ rotator = (*xrotate.FileRotator)(nil)

// Sink 文件后端的日志汇聚端。
//
// Log 及级别便捷方法并发安全且永不返回错误；运行期故障一律走 OnError
// 侧通道。写入与轮转由单 worker 串行队列排序，同一 Sink 内有全序。
type Sink struct {
	rot    rotator
	q      *serialQueue
	cfg    sinkConfig
	closed atomic.Bool

	// nowFn 时钟注入，仅用于测试（nil 时使用 time.Now）
	nowFn func() time.Time
}

// New 创建文件日志汇聚端。
//
// perm 为八进制权限串（如 "640"），空串使用默认权限；
// 非法路径与非法权限串是构造期硬错误。目标文件在构造期立即打开。
func New(path, perm string, opts ...Option) (*Sink, error) {
	cfg := sinkConfig{
		MinLevel:   LevelDebug,
		QueueDepth: DefaultQueueDepth,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	mode := xrotate.DefaultFileMode
	if perm != "" {
		parsed, err := xfile.ParsePerm(perm)
		if err != nil {
			return nil, err
		}
		mode = parsed
	}

	// 显式选项放在后面，允许覆盖权限与错误回调
	rotateOpts := append([]xrotate.FileOption{
		xrotate.WithFileMode(mode),
		xrotate.WithOnError(cfg.OnError),
	}, cfg.RotateOpts...)

	rot, err := xrotate.NewFile(path, rotateOpts...)
	if err != nil {
		return nil, err
	}

	return &Sink{
		rot: rot,
		q:   newSerialQueue(cfg.QueueDepth),
		cfg: cfg,
	}, nil
}

// Log 记录一条日志。
//
// fire-and-forget：格式化后非阻塞提交到串行队列，本方法不做任何 I/O。
// Sink 已关闭、级别不足时直接丢弃；队列满时丢弃并上报 [ErrQueueFull]。
func (s *Sink) Log(level Level, msg string) {
	if s.closed.Load() || level < s.cfg.MinLevel {
		return
	}
	line := formatLine(s.now(), level, msg)
	if !s.q.submit(func() { s.writeLine(line) }) {
		s.report(ErrQueueFull)
	}
}

// Debug 记录 DEBUG 级别日志。
func (s *Sink) Debug(msg string) { s.Log(LevelDebug, msg) }

// Info 记录 INFO 级别日志。
func (s *Sink) Info(msg string) { s.Log(LevelInfo, msg) }

// Warn 记录 WARN 级别日志。
func (s *Sink) Warn(msg string) { s.Log(LevelWarn, msg) }

// Error 记录 ERROR 级别日志。
func (s *Sink) Error(msg string) { s.Log(LevelError, msg) }

// Flush 强制刷盘，绕过批量阈值。
//
// 通过优先通道注入串行上下文：最多等待当前正在执行的一个任务，
// 不等待队列里积压的日志行。同步返回刷盘结果。
func (s *Sink) Flush() error {
	return s.runPriority(func() error { return s.rot.Flush() })
}

// Rotate 手动触发一次轮转，绕过节流与大小检查。
// 与写入同在串行上下文内执行，不会与进行中的写入交错。
func (s *Sink) Rotate() error {
	return s.runPriority(func() error { return s.rot.Rotate() })
}

// Suspend 进入挂起状态：强制刷盘并暂停轮转。
// 对应宿主应用的"进入后台"等生命周期信号。写入不受影响。
func (s *Sink) Suspend() error {
	return s.runPriority(func() error {
		err := s.rot.Flush()
		s.rot.Pause()
		return err
	})
}

// Resume 退出挂起状态，恢复轮转。
func (s *Sink) Resume() {
	if !s.closed.Load() {
		s.rot.Resume()
	}
}

// Close 关闭 Sink：拒绝新日志、排空队列、最终刷盘并关闭轮转器。
// 重复调用返回 [ErrClosed]。
func (s *Sink) Close() error {
	if s.closed.Swap(true) {
		return ErrClosed
	}
	s.q.stop()
	return s.rot.Close()
}

// runPriority 在串行上下文内同步执行一个控制操作。
func (s *Sink) runPriority(op func() error) error {
	if s.closed.Load() {
		return ErrClosed
	}
	done := make(chan error, 1)
	if !s.q.submitPriority(func() { done <- op() }) {
		return ErrClosed
	}
	select {
	case err := <-done:
		return err
	case <-s.q.terminated:
		// worker 已退出。任务可能恰好在退出前的排空阶段被执行过，
		// 非阻塞复查一次结果，否则按已关闭处理
		select {
		case err := <-done:
			return err
		default:
			return ErrClosed
		}
	}
}

// writeLine 串行上下文内的实际写入。错误被吞掉并走侧通道上报。
func (s *Sink) writeLine(line []byte) {
	if _, err := s.rot.Write(line); err != nil {
		s.report(fmt.Errorf("write line: %w", err))
	}
}

// formatLine 格式化一条日志行：<UTC 时间戳> <级别> <消息>\n
func formatLine(now time.Time, level Level, msg string) []byte {
	ts := now.UTC().Format(lineTimeLayout)
	lv := level.String()
	b := make([]byte, 0, len(ts)+1+len(lv)+1+len(msg)+1)
	b = append(b, ts...)
	b = append(b, ' ')
	b = append(b, lv...)
	b = append(b, ' ')
	b = append(b, msg...)
	b = append(b, '\n')
	return b
}

// report 通过回调上报内部错误，panic 被隔离。
func (s *Sink) report(err error) {
	if err != nil && s.cfg.OnError != nil {
		defer func() { _ = recover() }()
		s.cfg.OnError(err)
	}
}

func (s *Sink) now() time.Time {
	if s.nowFn != nil {
		return s.nowFn()
	}
	return time.Now()
}
