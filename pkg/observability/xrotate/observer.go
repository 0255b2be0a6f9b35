package xrotate

// Observer 轮转事件观察者。
//
// 回调是尽力而为的通知：返回值不被消费，panic 会被隔离，
// 失败不影响轮转流程本身。回调在轮转执行的串行上下文内同步调用，
// 应保持轻量；耗时处理建议用 [NewEventObserver] 的 channel 形态异步消费。
//
// 设计决策: 观察者由构造方显式注入并交由 Rotator 持有，
// 不做弱引用式的回调反向依赖，生命周期随 Rotator 一起结束。
type Observer interface {
	// Archived 当前目标文件被改名为新归档后调用。
	Archived(oldPath, newPath string)

	// ArchiveRemoved 一个超出保留数量的归档被删除后调用。
	ArchiveRemoved(path string)
}

// ObserverFuncs 以函数字段形式实现 [Observer]，nil 字段表示忽略该事件。
type ObserverFuncs struct {
	OnArchived       func(oldPath, newPath string)
	OnArchiveRemoved func(path string)
}

// Archived 实现 [Observer]。
func (o ObserverFuncs) Archived(oldPath, newPath string) {
	if o.OnArchived != nil {
		o.OnArchived(oldPath, newPath)
	}
}

// ArchiveRemoved 实现 [Observer]。
func (o ObserverFuncs) ArchiveRemoved(path string) {
	if o.OnArchiveRemoved != nil {
		o.OnArchiveRemoved(path)
	}
}

// EventType 轮转事件类型。
type EventType int

const (
	// EventArchived 目标文件完成归档
	EventArchived EventType = iota + 1
	// EventArchiveRemoved 归档被淘汰删除
	EventArchiveRemoved
)

// Event 一次轮转事件。
type Event struct {
	Type EventType
	// OldPath 归档事件中是轮转前的目标文件路径，删除事件中是被删归档路径
	OldPath string
	// NewPath 仅归档事件有值：新归档路径
	NewPath string
}

// EventObserver 把观察者回调转成带缓冲的事件 channel。
//
// 发送是非阻塞的：channel 满时丢弃事件而不是阻塞轮转路径，
// 事件是监控性质的通知，不承诺不丢。
type EventObserver struct {
	ch chan Event
}

// NewEventObserver 创建 channel 形态的观察者，buf 为缓冲大小（最小 1）。
func NewEventObserver(buf int) *EventObserver {
	if buf < 1 {
		buf = 1
	}
	return &EventObserver{ch: make(chan Event, buf)}
}

// Events 返回只读事件 channel。
func (o *EventObserver) Events() <-chan Event { return o.ch }

// Archived 实现 [Observer]。
func (o *EventObserver) Archived(oldPath, newPath string) {
	select {
	case o.ch <- Event{Type: EventArchived, OldPath: oldPath, NewPath: newPath}:
	default:
	}
}

// ArchiveRemoved 实现 [Observer]。
func (o *EventObserver) ArchiveRemoved(path string) {
	select {
	case o.ch <- Event{Type: EventArchiveRemoved, OldPath: path}:
	default:
	}
}
