//go:build !linux

package xstat

import "os"

// fileMeta 非 Linux 平台回退实现：os.Stat。
// 行为与 Linux 实现一致（错误形态同为 *os.PathError）。
func fileMeta(path string) (FileMeta, error) {
	info, err := os.Stat(path)
	if err != nil {
		return FileMeta{}, err
	}
	return FileMeta{Size: info.Size(), ModTime: info.ModTime()}, nil
}
