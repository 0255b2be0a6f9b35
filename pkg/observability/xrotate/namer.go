package xrotate

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// archiveTimeLayout 时间戳策略的归档时间格式（UTC，定宽）。
// 对应 20240131T235959Z 形态：日期时间紧凑拼接，偏移为零时输出 Z。
const archiveTimeLayout = "20060102T150405Z0700"

// archiveName 计算当前目标文件的归档名。
//
// 编号策略固定返回 <target>.1：执行器的重编号阶段已经腾出了 .1 槽位。
// 时间戳策略追加 UTC 时间戳加小写 UUID，UUID 保证同一秒内多次轮转不撞名。
func archiveName(target string, policy SuffixPolicy, now time.Time) string {
	if policy == PolicyDateUUID {
		return target + "." + now.UTC().Format(archiveTimeLayout) + "_" + strings.ToLower(uuid.NewString())
	}
	return target + ".1"
}

// isNumericSuffix 报告 s 是否为纯数字的正整数编号（"1"、"42"）。
// 空串、前导零（"01"）、非数字字符都不是合法编号。
func isNumericSuffix(s string) bool {
	if s == "" || s == "0" {
		return false
	}
	if s[0] == '0' {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// isDateUUIDSuffix 报告 s 是否为时间戳策略产生的归档后缀
// （<时间戳>_<UUID>，两段都必须完整解析成功）。
func isDateUUIDSuffix(s string) bool {
	ts, id, ok := strings.Cut(s, "_")
	if !ok {
		return false
	}
	if _, err := time.Parse(archiveTimeLayout, ts); err != nil {
		return false
	}
	if _, err := uuid.Parse(id); err != nil {
		return false
	}
	return true
}

// isRotationSuffix 报告 s 是否为任一策略产生的归档后缀。
// 枚举器用它区分"本目标文件的归档"和恰好同前缀的无关文件
// （如 app.log.bak、app.log.gz 不会被当成归档参与重编号或淘汰）。
func isRotationSuffix(s string) bool {
	return isNumericSuffix(s) || isDateUUIDSuffix(s)
}
