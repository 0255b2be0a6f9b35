package xstat

import "time"

// FileMeta 文件元数据。
type FileMeta struct {
	// Size 文件大小（字节）
	Size int64
	// ModTime 最后修改时间
	ModTime time.Time
}

// Meta 返回指定路径的文件元数据。
//
// 文件不存在或不可访问时返回底层错误（os.IsNotExist 可判断），
// 由调用方决定降级策略。
func Meta(path string) (FileMeta, error) {
	return fileMeta(path)
}
