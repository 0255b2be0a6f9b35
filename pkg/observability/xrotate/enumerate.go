package xrotate

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/omeyang/xsink/pkg/util/xstat"
)

// readDirFn 目录读取函数变量，支持测试中 mock 替换以覆盖枚举失败路径。
// 注意：mock 测试不可使用 t.Parallel()，因为替换包级变量会引发竞态。
var readDirFn = os.ReadDir

// archiveEntry 一个存量归档文件及其修改时间。
type archiveEntry struct {
	path    string
	modTime time.Time
}

// listArchives 枚举目标文件的同目录归档，按修改时间升序（最旧在前）返回。
//
// 归档的判定：去掉轮转后缀后与目标文件名相同的兄弟文件，排除目标文件本身
// 与无关的同前缀文件（见 [isRotationSuffix]）。
//
// 任何枚举失败（目录不可读、单个文件 stat 失败）都通过 report 上报并降级：
// 目录级失败返回空切片，文件级失败跳过该文件。轮转路径因此退化为
// "没有归档"而不是让写入失败。
func listArchives(target string, report func(error)) []archiveEntry {
	dir := filepath.Dir(target)
	base := filepath.Base(target)
	prefix := base + "."

	entries, err := readDirFn(dir)
	if err != nil {
		report(fmt.Errorf("list archives: read dir %s: %w", dir, err))
		return nil
	}

	var archives []archiveEntry
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || name == base || !strings.HasPrefix(name, prefix) {
			continue
		}
		if !isRotationSuffix(name[len(prefix):]) {
			continue
		}
		path := filepath.Join(dir, name)
		meta, err := xstat.Meta(path)
		if err != nil {
			// 枚举与轮转之间文件可能被外部删除，跳过即可
			report(fmt.Errorf("list archives: %w", err))
			continue
		}
		archives = append(archives, archiveEntry{path: path, modTime: meta.ModTime})
	}

	sort.Slice(archives, func(i, j int) bool {
		if archives[i].modTime.Equal(archives[j].modTime) {
			// 修改时间相同（粗粒度文件系统时间戳）时按路径名稳定排序，
			// 保证重编号与淘汰顺序可重现
			return archives[i].path < archives[j].path
		}
		return archives[i].modTime.Before(archives[j].modTime)
	})
	return archives
}
