// Package xsink 提供文件后端的日志汇聚端：格式化日志行、串行写入
// 带轮转能力的目标文件（基于 xrotate），并向调用方承诺"记日志永不失败"。
//
// 核心语义:
//   - Log 是非阻塞的 fire-and-forget：格式化后交给单 worker 串行队列，
//     队列满时丢弃并走 OnError 侧通道，任何运行期文件系统故障都不会
//     传染给日志调用方
//   - 单 worker 串行执行保证同一 Sink 的写入与轮转有全序，
//     轮转引擎的互斥锁上没有竞争
//   - Flush/Suspend 走优先通道注入串行上下文：worker 总是先消费
//     优先通道再消费任务队列，生命周期信号不会被积压的日志行饿死
//
// 生命周期:
//   - Suspend 强制刷盘并暂停轮转（对应宿主"进入后台"），Resume 恢复
//   - Close 排空队列、最终刷盘、关闭轮转器；重复关闭返回 ErrClosed
//
// 配置:
//   - 构造参数为目标路径 + 八进制权限串（如 "640"）+ Option 列表，
//     非法路径与权限串是构造期硬错误
//   - LoadConfig 支持从 YAML/JSON 加载 FileConfig（koanf）
//
// 使用示例:
//
//	s, err := xsink.New("/var/log/app.log", "640",
//		xsink.WithMinLevel(xsink.LevelInfo),
//		xsink.WithRotateOptions(
//			xrotate.WithMaxFileSize(64<<20),
//			xrotate.WithPolicy(xrotate.PolicyDateUUID),
//		),
//	)
//	if err != nil {
//		return err
//	}
//	defer s.Close()
//
//	s.Info("service started")
package xsink
