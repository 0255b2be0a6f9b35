package xrotate

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// 归档命名测试
// =============================================================================

// TestArchiveNameNumbering 编号策略无条件返回 .1（重编号阶段已腾出槽位）
func TestArchiveNameNumbering(t *testing.T) {
	got := archiveName("/var/log/app.log", PolicyNumbering, time.Now())
	assert.Equal(t, "/var/log/app.log.1", got)
}

// TestArchiveNameDateUUID 时间戳策略：UTC 时间戳 + 下划线 + 小写 UUID
func TestArchiveNameDateUUID(t *testing.T) {
	at := time.Date(2024, 1, 31, 23, 59, 59, 0, time.UTC)
	got := archiveName("/var/log/app.log", PolicyDateUUID, at)

	require.True(t, strings.HasPrefix(got, "/var/log/app.log."))
	suffix := strings.TrimPrefix(got, "/var/log/app.log.")

	ts, id, ok := strings.Cut(suffix, "_")
	require.True(t, ok, "后缀必须包含下划线分隔: %s", suffix)

	parsed, err := time.Parse(archiveTimeLayout, ts)
	require.NoError(t, err)
	assert.True(t, parsed.Equal(at), "时间戳应还原为归档时刻")
	assert.Equal(t, "20240131T235959Z", ts, "UTC 时间戳为定宽 Z 结尾格式")

	_, err = uuid.Parse(id)
	require.NoError(t, err)
	assert.Equal(t, strings.ToLower(id), id, "UUID 必须为小写")
}

// TestArchiveNameDateUUIDNoCollision 同一时刻的两次命名不冲突（UUID 区分）
func TestArchiveNameDateUUIDNoCollision(t *testing.T) {
	at := time.Now()
	a := archiveName("/var/log/app.log", PolicyDateUUID, at)
	b := archiveName("/var/log/app.log", PolicyDateUUID, at)
	assert.NotEqual(t, a, b)
}

// TestArchiveNameLocalTimeConvertedToUTC 非 UTC 时区输入被归一化
func TestArchiveNameLocalTimeConvertedToUTC(t *testing.T) {
	loc := time.FixedZone("UTC+8", 8*3600)
	at := time.Date(2024, 2, 1, 7, 59, 59, 0, loc)
	got := archiveName("app.log", PolicyDateUUID, at)
	assert.Contains(t, got, "app.log.20240131T235959Z_")
}

// =============================================================================
// 后缀识别测试
// =============================================================================

func TestIsNumericSuffix(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{name: "最小编号", input: "1", want: true},
		{name: "多位编号", input: "42", want: true},
		{name: "空串", input: "", want: false},
		{name: "零不是合法编号", input: "0", want: false},
		{name: "前导零", input: "01", want: false},
		{name: "混入字母", input: "1a", want: false},
		{name: "负号", input: "-1", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isNumericSuffix(tt.input))
		})
	}
}

func TestIsRotationSuffix(t *testing.T) {
	// 真实时间戳策略产生的后缀必须被识别
	generated := archiveName("app.log", PolicyDateUUID, time.Now())
	suffix := strings.TrimPrefix(generated, "app.log.")
	assert.True(t, isRotationSuffix(suffix))

	assert.True(t, isRotationSuffix("3"))

	// 常见的无关后缀不能被误判为归档
	assert.False(t, isRotationSuffix("bak"))
	assert.False(t, isRotationSuffix("gz"))
	assert.False(t, isRotationSuffix("20240131_notauuid"))
	assert.False(t, isRotationSuffix("20240131T235959Z"))
	assert.False(t, isRotationSuffix(""))
}
