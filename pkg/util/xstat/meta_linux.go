//go:build linux

package xstat

import (
	"os"
	"time"

	"golang.org/x/sys/unix"
)

// 系统调用函数变量，支持测试中 mock 替换以覆盖错误路径。
// 注意：mock 测试不可使用 t.Parallel()，因为替换包级变量会引发竞态。
var statFn = unix.Stat

// fileMeta Linux 实现：直接走 stat(2)，跳过 os.Stat 的 FileInfo 封装。
//
// 错误统一包装为 *os.PathError，与 os.Stat 的错误形态对齐，
// 调用方可用 os.IsNotExist / errors.Is(err, fs.ErrNotExist) 判断。
func fileMeta(path string) (FileMeta, error) {
	var st unix.Stat_t
	if err := statFn(path, &st); err != nil {
		return FileMeta{}, &os.PathError{Op: "stat", Path: path, Err: err}
	}
	// Timespec 字段在 32 位架构上是 int32，经 Unix() 统一转换
	sec, nsec := st.Mtim.Unix()
	return FileMeta{
		Size:    st.Size,
		ModTime: time.Unix(sec, nsec),
	}, nil
}
