package xfile

import (
	"fmt"
	"path/filepath"
	"strings"
)

// containsNullByte 检测路径是否包含空字节。
// Linux 内核在 VFS 层会在空字节处截断路径，导致 Go 代码与操作系统看到的路径不一致。
func containsNullByte(path string) bool {
	return strings.ContainsRune(path, 0)
}

// hasDotDotSegment 检测路径中是否包含 ".." 作为独立路径段。
// 使用逐字符扫描实现零内存分配。同时将 '/' 和 '\' 视为分隔符，
// 以检测 Windows 风格路径穿越（即使在 Linux 上）。
func hasDotDotSegment(path string) bool {
	i := 0
	for i < len(path) {
		// 跳过分隔符
		if path[i] == '/' || path[i] == '\\' {
			i++
			continue
		}
		// 找到段的结束位置
		j := i
		for j < len(path) && path[j] != '/' && path[j] != '\\' {
			j++
		}
		if j-i == 2 && path[i] == '.' && path[i+1] == '.' {
			return true
		}
		i = j
	}
	return false
}

// SanitizePath 对日志文件路径进行安全检查和规范化。
//
// 功能：
//   - 路径规范化（消除 . 和冗余斜杠）
//   - 阻止相对路径穿越（如 "../etc/passwd"）
//   - 拒绝空路径和显式目录路径（尾随 "/" 或 "\"）
//
// 安全边界：本函数仅做格式净化，不限制目标目录。绝对路径中的 ".."
// 会被 filepath.Clean 正常解析（"/var/log/../etc" -> "/etc"），
// 这是合法的绝对路径，不是穿越。
//
// 返回规范化后的路径，或错误（如果路径格式无效）。
func SanitizePath(filename string) (string, error) {
	if filename == "" {
		return "", fmt.Errorf("filename is required: %w", ErrEmptyPath)
	}

	if containsNullByte(filename) {
		return "", fmt.Errorf("filename contains null byte: %w", ErrNullByte)
	}

	// 必须在 filepath.Clean 之前检查尾部分隔符，因为 Clean 会移除尾部斜杠。
	// 同时检查 / 和 \：Linux 上以 "\" 结尾的文件名理论上合法，但几乎总是
	// 跨平台拼接错误，为安全起见统一拒绝。
	if strings.HasSuffix(filename, "/") || strings.HasSuffix(filename, "\\") {
		return "", fmt.Errorf("path is a directory: %w", ErrInvalidPath)
	}

	cleaned := filepath.Clean(filename)

	// 不能使用 strings.Contains(cleaned, "..")：会误伤合法文件名
	// （如 "app..2024.log"）。按路径段精确判断。
	if hasDotDotSegment(cleaned) {
		return "", fmt.Errorf("path traversal in filename: %w", ErrPathTraversal)
	}

	base := filepath.Base(cleaned)
	if base == "." || base == string(filepath.Separator) {
		return "", fmt.Errorf("no file name specified: %w", ErrInvalidPath)
	}

	return cleaned, nil
}
