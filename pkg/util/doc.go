// Package util 提供通用工具相关的子包。
//
// 子包列表：
//   - xfile: 文件操作工具，路径净化、目录创建、权限串解析
//   - xstat: 文件元数据查询，按平台选择 stat 实现
//
// 设计原则：
//   - 安全处理路径遍历和非法权限输入
//   - 跨平台兼容
package util
