// Package xstat 提供文件元数据（大小、修改时间）的统一获取能力。
//
// 轮转决策只依赖两个元数据：目标文件的当前大小（是否超过轮转阈值）和
// 归档文件的修改时间（重编号与淘汰的排序依据）。本包将这两个查询收敛为
// 一个能力入口 [Meta]，按平台提供实现：
//
//   - Linux: 直接走 golang.org/x/sys/unix 的 Stat 系统调用，
//     避免 os.Stat 构造 FileInfo 的额外分配（高频大小检查路径）
//   - 其他平台: os.Stat 回退实现
//
// 两个实现行为一致，调用方无需感知平台差异。
package xstat
