package xrotate

import (
	"fmt"
	"os"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	retry "github.com/avast/retry-go/v5"

	"github.com/omeyang/xsink/pkg/util/xfile"
	"github.com/omeyang/xsink/pkg/util/xstat"
)

// FileRotator 默认配置值
const (
	// DefaultMaxFileSize 默认目标文件大小阈值（字节）
	DefaultMaxFileSize uint64 = 500 << 20

	// DefaultMaxArchives 默认保留的归档文件数量
	DefaultMaxArchives uint8 = 5

	// DefaultFlushEvery 默认每多少次未落盘写入执行一次 fsync
	DefaultFlushEvery = 200

	// DefaultFileMode 默认目标文件权限
	DefaultFileMode os.FileMode = 0o600

	// 降级重开的重试参数：轮转后重建目标文件失败时，
	// 下一次写入最多重试 reopenAttempts 次
	reopenAttempts = 3
	reopenDelay    = 10 * time.Millisecond
)

// fileConfig 自研轮转引擎配置。
type fileConfig struct {
	// MaxFileSize 目标文件大小阈值（字节），超过触发轮转
	MaxFileSize uint64

	// MaxArchives 保留的归档数量上限。
	// 只在淘汰阶段生效，构造期不校验（0 表示轮转后不保留任何归档）。
	MaxArchives uint8

	// Policy 归档命名策略
	Policy SuffixPolicy

	// CheckEvery / CheckInterval 大小检查节流阈值，先到先触发
	CheckEvery    int64
	CheckInterval time.Duration

	// FlushEvery 未落盘写入的 fsync 批量阈值。
	// 这是持久性与吞吐的权衡：进程崩溃最多丢 FlushEvery 条缓冲日志。
	FlushEvery int

	// FileMode 目标文件权限，仅允许权限位（0000~0777）
	FileMode os.FileMode

	// Observer 可选的轮转事件观察者
	Observer Observer

	// OnError 可选的内部错误回调。
	//
	// 轮转各步骤、fsync、大小检查的失败都从这里上报。默认为 nil（静默忽略）。
	//
	// 安全约束：回调函数不得向同一 Rotator 写入数据，否则会导致递归死锁。
	// 推荐输出到 os.Stderr 或独立的日志通道。
	OnError func(error)
}

// FileOption 自研轮转引擎配置选项函数
type FileOption func(*fileConfig)

// WithMaxFileSize 设置目标文件大小阈值（字节）
func WithMaxFileSize(n uint64) FileOption {
	return func(c *fileConfig) { c.MaxFileSize = n }
}

// WithMaxArchives 设置保留的归档数量上限
func WithMaxArchives(n uint8) FileOption {
	return func(c *fileConfig) { c.MaxArchives = n }
}

// WithPolicy 设置归档命名策略
func WithPolicy(p SuffixPolicy) FileOption {
	return func(c *fileConfig) { c.Policy = p }
}

// WithCheckEvery 设置触发大小检查的写调用计数阈值
func WithCheckEvery(n int64) FileOption {
	return func(c *fileConfig) { c.CheckEvery = n }
}

// WithCheckInterval 设置触发大小检查的时间阈值
func WithCheckInterval(d time.Duration) FileOption {
	return func(c *fileConfig) { c.CheckInterval = d }
}

// WithFlushEvery 设置 fsync 的批量阈值
func WithFlushEvery(n int) FileOption {
	return func(c *fileConfig) { c.FlushEvery = n }
}

// WithFileMode 设置目标文件权限（构造与每次轮转后重建时使用）
func WithFileMode(mode os.FileMode) FileOption {
	return func(c *fileConfig) { c.FileMode = mode }
}

// WithObserver 设置轮转事件观察者
func WithObserver(o Observer) FileOption {
	return func(c *fileConfig) { c.Observer = o }
}

// WithOnError 设置内部错误回调
//
// 设计决策: 不使用 slog 等日志库记录内部错误，避免 Rotator 作为日志输出目标时
// 产生递归写入（写失败 → 打日志 → 再写失败 → 栈溢出/死锁）。
// 回调函数不得向同一 Rotator 写入数据。
func WithOnError(fn func(error)) FileOption {
	return func(c *fileConfig) { c.OnError = fn }
}

// 编译时断言：FileRotator 实现 Rotator 接口
var _ Rotator = (*FileRotator)(nil)

// FileRotator 自研轮转引擎。
//
// 写入路径：追加写 → 递增未落盘计数 → 按阈值 fsync → 节流器判定是否
// 执行大小检查 → 超限则轮转。轮转四步（重编号、归档、淘汰、重建）
// 每步独立容错，失败走 OnError 侧通道，绝不传染到 Write 的返回值
// （Write 只返回追加写本身的 I/O 错误）。
//
// 并发安全由互斥锁保证；作为 xsink 的输出目标时写入已被串行队列排好序，
// 锁上没有竞争。
type FileRotator struct {
	mu   sync.Mutex
	f    *os.File // nil 表示降级状态（轮转后重建失败）
	path string
	cfg  fileConfig

	th       throttle
	unsynced int // 自上次 fsync 以来的写入条数

	closed atomic.Bool
	paused atomic.Bool

	// nowFn 时钟注入，仅用于测试（nil 时使用 time.Now）
	nowFn func() time.Time
}

// NewFile 创建自研轮转引擎。
//
// 目标文件在构造期立即打开（追加模式），打开失败属于构造期硬错误。
// 会对文件路径进行规范化和安全检查，并自动创建不存在的父目录（权限 0750）。
func NewFile(filename string, opts ...FileOption) (*FileRotator, error) {
	if filename == "" {
		return nil, ErrEmptyFilename
	}

	cfg := fileConfig{
		MaxFileSize:   DefaultMaxFileSize,
		MaxArchives:   DefaultMaxArchives,
		Policy:        PolicyNumbering,
		CheckEvery:    DefaultCheckEvery,
		CheckInterval: DefaultCheckInterval,
		FlushEvery:    DefaultFlushEvery,
		FileMode:      DefaultFileMode,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	if err := validateFileConfig(&cfg); err != nil {
		return nil, err
	}

	safePath, err := xfile.SanitizePath(filename)
	if err != nil {
		return nil, err
	}
	if err := xfile.EnsureDir(safePath); err != nil {
		return nil, err
	}

	r := &FileRotator{
		path: safePath,
		cfg:  cfg,
		th:   throttle{checkEvery: cfg.CheckEvery, interval: cfg.CheckInterval},
	}
	if err := r.reopen(); err != nil {
		return nil, fmt.Errorf("open target file: %w", err)
	}
	return r, nil
}

// validateFileConfig 验证自研引擎配置。
// 注意 MaxArchives 刻意不做 >0 校验：它只是淘汰阶段的保留上限。
func validateFileConfig(cfg *fileConfig) error {
	if cfg.MaxFileSize == 0 {
		return fmt.Errorf("%w: must be positive", ErrInvalidMaxFileSize)
	}
	if !cfg.Policy.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidPolicy, string(cfg.Policy))
	}
	if cfg.CheckEvery <= 0 {
		return fmt.Errorf("%w: CheckEvery got %d, want > 0", ErrInvalidThrottle, cfg.CheckEvery)
	}
	if cfg.CheckInterval <= 0 {
		return fmt.Errorf("%w: CheckInterval got %v, want > 0", ErrInvalidThrottle, cfg.CheckInterval)
	}
	if cfg.FlushEvery <= 0 {
		return fmt.Errorf("%w: got %d, want > 0", ErrInvalidFlushEvery, cfg.FlushEvery)
	}
	// FileMode 仅允许权限位，拒绝文件类型位、setuid/setgid 等
	if cfg.FileMode == 0 || cfg.FileMode&^os.FileMode(0o777) != 0 {
		return fmt.Errorf("%w: got %04o, only permission bits (0001~0777) allowed",
			ErrInvalidFileMode, cfg.FileMode)
	}
	return nil
}

// Write 实现 io.Writer 接口。
//
// 降级状态下（上次轮转后重建目标文件失败）先带退避重试重开，
// 仍失败时返回包裹 [ErrReopenFailed] 的错误。
func (r *FileRotator) Write(p []byte) (n int, err error) {
	if r.closed.Load() {
		return 0, ErrClosed
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	// Close 与 Write 竞争时，锁内复查保证 ErrClosed 契约可靠
	if r.closed.Load() {
		return 0, ErrClosed
	}

	if r.f == nil {
		if rerr := r.reopenWithRetry(); rerr != nil {
			return 0, fmt.Errorf("%w: %w", ErrReopenFailed, rerr)
		}
	}

	n, err = r.f.Write(p)
	if err != nil {
		return n, err
	}

	r.unsynced++
	r.flushIfNeeded(false)

	if r.th.tick(r.now()) {
		r.checkSizeLocked()
	}
	return n, nil
}

// Flush 强制将缓冲写入落盘（fsync），绕过批量阈值。
// 由宿主的生命周期信号（如进程挂起）触发，通过 xsink 的优先通道注入。
func (r *FileRotator) Flush() error {
	if r.closed.Load() {
		return ErrClosed
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed.Load() {
		return ErrClosed
	}
	if r.f == nil || r.unsynced == 0 {
		return nil
	}
	err := r.f.Sync()
	r.unsynced = 0
	return err
}

// Rotate 手动触发轮转，绕过节流与大小检查。
// 轮转被 [FileRotator.Pause] 暂停期间返回 [ErrPaused]。
func (r *FileRotator) Rotate() error {
	if r.closed.Load() {
		return ErrClosed
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed.Load() {
		return ErrClosed
	}
	if r.paused.Load() {
		return ErrPaused
	}
	r.rotateLocked(r.now())
	return nil
}

// Pause 暂停轮转。写入与刷盘不受影响，只是大小超限不再触发归档。
// 对应宿主应用的"进入后台"等外部暂停信号。
func (r *FileRotator) Pause() { r.paused.Store(true) }

// Resume 恢复轮转。
func (r *FileRotator) Resume() { r.paused.Store(false) }

// Close 实现 io.Closer 接口。
//
// 关闭前强制刷盘一次。关闭后调用 Write、Flush 或 Rotate 将返回 [ErrClosed]，
// 重复调用 Close 也返回 [ErrClosed]。
//
// 设计决策: 使用 CAS 原语标记关闭状态，首次 Close 失败后不重置标记，
// 确保关闭后不会有新的写入到达底层文件。
func (r *FileRotator) Close() error {
	if r.closed.Swap(true) {
		return ErrClosed
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.f == nil {
		return nil
	}
	if r.unsynced > 0 {
		if err := r.f.Sync(); err != nil {
			r.report(fmt.Errorf("flush on close: %w", err))
		}
	}
	err := r.f.Close()
	r.f = nil
	return err
}

// flushIfNeeded 按阈值批量 fsync。
// force 为 true 时只要有未落盘写入就立即刷盘。刷盘失败走侧通道上报，
// 计数照常归零（同一批数据重复 fsync 失败只会产生重复告警，不会修复）。
func (r *FileRotator) flushIfNeeded(force bool) {
	if r.f == nil || r.unsynced == 0 {
		return
	}
	if !force && r.unsynced < r.cfg.FlushEvery {
		return
	}
	if err := r.f.Sync(); err != nil {
		r.report(fmt.Errorf("fsync: %w", err))
	}
	r.unsynced = 0
}

// checkSizeLocked 节流器触发后的实际大小检查。
// stat 失败上报后放弃本轮检查（节流器已重置，下个周期再查）。
func (r *FileRotator) checkSizeLocked() {
	meta, err := xstat.Meta(r.path)
	if err != nil {
		r.report(fmt.Errorf("size check: %w", err))
		return
	}
	if uint64(meta.Size) > r.cfg.MaxFileSize {
		r.rotateLocked(r.now())
	}
}

// rotateLocked 轮转执行器。
//
// 四个步骤各自独立容错：单步失败上报后继续，只有数据依赖会让后续步骤
// 自然退化（如归档改名失败时，目标文件保持原位继续被追加）。
// 暂停门控在入口处检查。
func (r *FileRotator) rotateLocked(now time.Time) {
	if r.paused.Load() {
		return
	}

	// 1. 重编号旧归档（仅编号策略；时间戳策略名字天然不冲突，整步跳过）
	if r.cfg.Policy == PolicyNumbering {
		r.renumberLocked()
	}

	// 2. 归档当前目标文件：先落盘、关闭句柄，再原地改名（rename 而非拷贝）
	r.flushIfNeeded(true)
	if r.f != nil {
		if err := r.f.Close(); err != nil {
			r.report(fmt.Errorf("close before archive: %w", err))
		}
		r.f = nil
	}
	dest := archiveName(r.path, r.cfg.Policy, now)
	if err := os.Rename(r.path, dest); err != nil {
		r.report(fmt.Errorf("archive target: %w", err))
	} else {
		r.notifyArchived(r.path, dest)
	}

	// 3. 淘汰超出保留数量的最旧归档
	r.evictLocked()

	// 4. 重建目标文件。失败进入降级状态：下一次 Write 带退避重试
	if err := r.reopen(); err != nil {
		r.report(fmt.Errorf("%w: %w", ErrReopenFailed, err))
	}
}

// renumberLocked 重编号存量编号归档，腾出 .1 槽位。
//
// 按修改时间升序分配代号：最旧的拿最大号（count+1），最新的拿 2。
// 从最旧往最新处理，每次改名的目标号都大于剩余归档的现有号，
// 正常情况下不会自相冲突。目标位置已被占用时跳过该次改名（防覆盖），
// 作为告知性事件上报。
//
// 只有编号后缀的归档参与重编号；目录里混入的时间戳归档保持原名，
// 它们仍按修改时间参与淘汰。
func (r *FileRotator) renumberLocked() {
	all := listArchives(r.path, r.report)
	numbered := all[:0:0]
	for _, a := range all {
		if isNumericSuffix(a.path[len(r.path)+1:]) {
			numbered = append(numbered, a)
		}
	}

	count := len(numbered)
	for i, a := range numbered {
		gen := count + 1 - i
		dest := r.path + "." + strconv.Itoa(gen)
		if a.path == dest {
			continue
		}
		if _, err := xstat.Meta(dest); err == nil {
			r.report(fmt.Errorf("%w: %s", ErrRenumberSkipped, dest))
			continue
		}
		if err := os.Rename(a.path, dest); err != nil {
			r.report(fmt.Errorf("renumber %s -> %s: %w", a.path, dest, err))
		}
	}
}

// evictLocked 重新枚举归档，删除超出 MaxArchives 的最旧若干个。
func (r *FileRotator) evictLocked() {
	archives := listArchives(r.path, r.report)
	excess := len(archives) - int(r.cfg.MaxArchives)
	for i := 0; i < excess; i++ {
		path := archives[i].path
		if err := os.Remove(path); err != nil {
			r.report(fmt.Errorf("evict archive %s: %w", path, err))
			continue
		}
		r.notifyRemoved(path)
	}
}

// reopen 以配置的权限重建（或首次打开）目标文件，并复位刷盘计数。
func (r *FileRotator) reopen() error {
	//#nosec G302 G304 -- 路径已经 SanitizePath，权限由调用方配置决定
	f, err := os.OpenFile(r.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, r.cfg.FileMode)
	if err != nil {
		return err
	}
	r.f = f
	r.unsynced = 0
	return nil
}

// reopenWithRetry 降级状态下的有限重试重开。
//
// 设计决策: 轮转后重建失败不让写入永久瘫痪——下一次写入时带固定间隔
// 重试有限次，用尽仍失败则把错误返回给本次 Write 的调用方（xsink 层
// 负责吞掉并走侧通道）。不做后台自愈协程，避免引擎持有额外生命周期。
func (r *FileRotator) reopenWithRetry() error {
	return retry.New(
		retry.Attempts(reopenAttempts),
		retry.Delay(reopenDelay),
		retry.MaxJitter(0),
		retry.LastErrorOnly(true),
	).Do(r.reopen)
}

// report 通过回调上报内部错误。
// 回调 panic 被 recover 隔离，防止错误通知反向中断写入主流程。
func (r *FileRotator) report(err error) {
	if err != nil && r.cfg.OnError != nil {
		defer func() { _ = recover() }()
		r.cfg.OnError(err)
	}
}

// notifyArchived 尽力而为地通知观察者归档事件。
func (r *FileRotator) notifyArchived(oldPath, newPath string) {
	if r.cfg.Observer != nil {
		defer func() { _ = recover() }()
		r.cfg.Observer.Archived(oldPath, newPath)
	}
}

// notifyRemoved 尽力而为地通知观察者淘汰事件。
func (r *FileRotator) notifyRemoved(path string) {
	if r.cfg.Observer != nil {
		defer func() { _ = recover() }()
		r.cfg.Observer.ArchiveRemoved(path)
	}
}

func (r *FileRotator) now() time.Time {
	if r.nowFn != nil {
		return r.nowFn()
	}
	return time.Now()
}
