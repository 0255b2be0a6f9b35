package xfile

import (
	"fmt"
	"os"
	"strconv"
)

// ParsePerm 解析八进制风格的文件权限字符串（如 "640"、"0644"）。
//
// 规则：
//   - 1~4 位八进制数字，可带前导 0
//   - 解析结果必须落在权限位范围内（0000~0777），
//     不允许文件类型位或 setuid/setgid/sticky 位
//
// 这是 Sink 构造期校验：非法权限字符串在构造时返回错误（errors.Is 可匹配
// [ErrInvalidPerm]），而不是延迟到首次打开文件时才暴露。
func ParsePerm(s string) (os.FileMode, error) {
	if s == "" {
		return 0, fmt.Errorf("permission string is required: %w", ErrInvalidPerm)
	}
	if len(s) > 4 {
		return 0, fmt.Errorf("permission string %q too long: %w", s, ErrInvalidPerm)
	}
	n, err := strconv.ParseUint(s, 8, 32)
	if err != nil {
		return 0, fmt.Errorf("permission string %q is not octal: %w", s, ErrInvalidPerm)
	}
	mode := os.FileMode(n)
	if mode&^os.FileMode(0o777) != 0 {
		return 0, fmt.Errorf("permission %04o exceeds permission bits (0000~0777): %w", mode, ErrInvalidPerm)
	}
	return mode, nil
}
