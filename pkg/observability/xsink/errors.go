package xsink

import "errors"

// 预定义错误变量
var (
	// ErrClosed Sink 已关闭
	ErrClosed = errors.New("xsink: sink closed")

	// ErrQueueFull 串行队列已满，日志行被丢弃（仅通过 OnError 上报）
	ErrQueueFull = errors.New("xsink: queue full, line dropped")

	// ErrInvalidLevel 未知的日志级别
	ErrInvalidLevel = errors.New("xsink: invalid level")

	// ErrInvalidConfig 配置字段取值非法
	ErrInvalidConfig = errors.New("xsink: invalid config")

	// ErrUnsupportedFormat 不支持的配置格式
	ErrUnsupportedFormat = errors.New("xsink: unsupported config format")

	// ErrParseConfig 配置解析失败
	ErrParseConfig = errors.New("xsink: parse config failed")
)
