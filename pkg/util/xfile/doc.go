// Package xfile 提供日志文件路径与权限的校验工具。
//
// # 路径校验
//
// SanitizePath 只做格式净化（空路径、空字节、相对路径穿越、显式目录路径），
// 不做目录隔离。路径穿越检测使用精确的路径段匹配，只有 ".." 作为独立路径段
// 时才被视为穿越，以 ".." 开头的合法文件名（如 "..config"）不会被误判。
//
// # 权限字符串
//
// ParsePerm 解析 "640" 形式的八进制权限字符串，是 Sink 构造期的硬校验之一：
// 非法权限在构造时报错，而不是在首次写入时才暴露。
//
// # 错误处理
//
// 预定义错误变量支持 [errors.Is] 判断：
//
//	_, err := xfile.SanitizePath("../etc/passwd")
//	if errors.Is(err, xfile.ErrPathTraversal) {
//	    // 处理路径穿越
//	}
package xfile
