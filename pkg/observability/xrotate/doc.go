// Package xrotate 提供日志文件轮转功能。
//
// Rotator 接口定义了轮转器的核心行为（Write/Close/Rotate），所有实现并发安全。
//
// # 当前实现
//
//   - [NewFile]: 自研轮转引擎，按节流的大小检查触发轮转，
//     支持顺序编号（.1/.2/...）与时间戳+UUID 两种归档命名策略，
//     按计数阈值批量 fsync
//   - [NewLumberjack]: 基于 lumberjack v2 的按大小轮转，
//     提供 gzip 压缩与按天数清理（自研引擎不做这两件事）
//
// # 自研引擎的轮转流程
//
// 每次写入递增调用计数；当计数或距上次检查的时间超过阈值时执行一次
// 大小检查（避免每次写入都 stat），超限则轮转：
//
//  1. 顺序编号策略下重编号旧归档（按修改时间升序，最旧的编到最大号，
//     腾出 .1 槽位；目标位置已被占用时跳过改名，防止覆盖）
//  2. 将当前目标文件改名为归档（编号策略固定 .1；时间戳策略用
//     UTC 时间戳 + 小写 UUID，同一秒内多次轮转也不会撞名）
//  3. 淘汰超出保留数量的最旧归档
//  4. 以配置的权限重建目标文件
//
// 每一步独立容错：单步失败通过 OnError 上报后继续执行后续步骤，
// 绝不向 Write 调用方抛出轮转错误。
//
// # 内部错误上报
//
// 设计决策: 不使用 slog 等日志库记录内部错误，避免 Rotator 作为日志输出目标时
// 产生递归写入（写失败 → 打日志 → 再写失败 → 栈溢出/死锁）。
// 使用 WithOnError 注入回调；回调函数不得向同一 Rotator 写入数据。
//
// # 扩展新实现
//
//  1. 创建新文件实现 Rotator 接口
//  2. 定义独立的 Config 和 Option
//  3. 提供独立的构造函数
//  4. 不修改 Rotator 接口
package xrotate
