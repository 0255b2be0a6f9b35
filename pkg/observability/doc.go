// Package observability 提供可观测性相关的子包。
//
// 子包列表：
//   - xrotate: 日志文件轮转引擎（节流大小检查、归档重编号、批量刷盘）
//   - xsink: 文件后端的日志汇聚端，基于 xrotate 的串行写入前端
//
// 设计原则：
//   - 记日志永不失败：运行期文件系统故障走错误侧通道，不传染调用方
//   - 单 Sink 内写入与轮转有全序
//   - 轮转引擎以 Rotator 接口开放扩展（自研引擎与 lumberjack 双实现）
package observability
