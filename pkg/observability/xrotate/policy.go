package xrotate

import (
	"fmt"
	"strings"
)

// SuffixPolicy 归档文件的命名策略。
type SuffixPolicy string

const (
	// PolicyNumbering 顺序编号策略：归档命名为 <target>.<N>，
	// N 为正整数，数字越小越新（.1 永远是最近一次归档）。
	// 每次轮转前对存量归档做一轮重编号，腾出 .1 槽位。
	PolicyNumbering SuffixPolicy = "numbering"

	// PolicyDateUUID 时间戳策略：归档命名为
	// <target>.<UTC 时间戳>_<小写 UUID>。
	// 名字天然不冲突，不需要重编号；归档顺序由修改时间决定。
	PolicyDateUUID SuffixPolicy = "date_uuid"
)

// IsValid 报告策略值是否为已知策略。
func (p SuffixPolicy) IsValid() bool {
	return p == PolicyNumbering || p == PolicyDateUUID
}

// String 实现 fmt.Stringer。
func (p SuffixPolicy) String() string { return string(p) }

// MarshalText 实现 encoding.TextMarshaler 接口
//
// 支持配置序列化场景（YAML/JSON）。
func (p SuffixPolicy) MarshalText() ([]byte, error) {
	if !p.IsValid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidPolicy, string(p))
	}
	return []byte(p), nil
}

// UnmarshalText 实现 encoding.TextUnmarshaler 接口
//
// 支持从配置文件直接反序列化命名策略。
func (p *SuffixPolicy) UnmarshalText(data []byte) error {
	parsed, err := ParseSuffixPolicy(string(data))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// ParseSuffixPolicy 解析字符串为命名策略。
// 支持 numbering/date_uuid（大小写不敏感），输入会自动 TrimSpace。
// 空字符串视为使用默认策略 [PolicyNumbering]，避免误把"没填"变成配置错误。
func ParseSuffixPolicy(s string) (SuffixPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "numbering":
		return PolicyNumbering, nil
	case "date_uuid":
		return PolicyDateUUID, nil
	default:
		return PolicyNumbering, fmt.Errorf("%w: %q", ErrInvalidPolicy, s)
	}
}
