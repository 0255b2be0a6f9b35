package xrotate

import "errors"

// 配置校验错误
var (
	// ErrEmptyFilename 文件名为空
	ErrEmptyFilename = errors.New("xrotate: filename is required")

	// ErrInvalidPolicy 未知的归档命名策略
	ErrInvalidPolicy = errors.New("xrotate: invalid suffix policy")

	// ErrInvalidMaxFileSize MaxFileSize 为零
	ErrInvalidMaxFileSize = errors.New("xrotate: invalid MaxFileSize")

	// ErrInvalidThrottle 节流阈值无效（CheckEvery 和 CheckInterval 必须为正）
	ErrInvalidThrottle = errors.New("xrotate: invalid throttle threshold")

	// ErrInvalidFlushEvery FlushEvery 必须为正
	ErrInvalidFlushEvery = errors.New("xrotate: invalid FlushEvery")

	// ErrInvalidFileMode FileMode 包含非权限位（仅允许低 9 位 0000~0777）
	ErrInvalidFileMode = errors.New("xrotate: invalid FileMode")

	// ErrInvalidMaxSize MaxSizeMB 值无效（必须在 1~10240 范围内）
	ErrInvalidMaxSize = errors.New("xrotate: invalid MaxSizeMB")

	// ErrInvalidMaxBackups MaxBackups 值无效（必须在 0~1024 范围内）
	ErrInvalidMaxBackups = errors.New("xrotate: invalid MaxBackups")

	// ErrInvalidMaxAge MaxAgeDays 值无效（必须在 0~3650 范围内）
	ErrInvalidMaxAge = errors.New("xrotate: invalid MaxAgeDays")

	// ErrNoCleanupPolicy MaxBackups 和 MaxAgeDays 不能同时为 0
	ErrNoCleanupPolicy = errors.New("xrotate: no cleanup policy configured")
)

// 运行期错误
var (
	// ErrClosed 轮转器已关闭
	ErrClosed = errors.New("xrotate: rotator is closed")

	// ErrPaused 轮转被外部信号暂停，手动 Rotate 被拒绝
	ErrPaused = errors.New("xrotate: rotation is paused")

	// ErrReopenFailed 轮转后重建目标文件失败，写入进入降级状态
	ErrReopenFailed = errors.New("xrotate: reopen target file failed")

	// ErrRenumberSkipped 重编号目标位置已被占用，为防覆盖跳过该次改名。
	// 属于告知性上报（数据未受损），通过 OnError 侧通道送出，
	// 调用方可用 errors.Is 过滤。
	ErrRenumberSkipped = errors.New("xrotate: renumber destination occupied, rename skipped")
)
