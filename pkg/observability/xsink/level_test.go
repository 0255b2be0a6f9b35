package xsink

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Level
		wantErr bool
	}{
		{name: "debug", input: "debug", want: LevelDebug},
		{name: "info", input: "info", want: LevelInfo},
		{name: "warn", input: "warn", want: LevelWarn},
		{name: "warning 别名", input: "warning", want: LevelWarn},
		{name: "error", input: "error", want: LevelError},
		{name: "大小写不敏感", input: "ERROR", want: LevelError},
		{name: "自动去空白", input: "  info  ", want: LevelInfo},
		{name: "未知级别", input: "trace", wantErr: true},
		{name: "空串", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseLevel(tt.input)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidLevel)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLevelString(t *testing.T) {
	assert.Equal(t, "DEBUG", LevelDebug.String())
	assert.Equal(t, "INFO", LevelInfo.String())
	assert.Equal(t, "WARN", LevelWarn.String())
	assert.Equal(t, "ERROR", LevelError.String())
	// 非标准级别委托给 slog
	assert.Equal(t, "INFO+2", Level(2).String())
}

func TestLevelTextRoundTrip(t *testing.T) {
	data, err := LevelWarn.MarshalText()
	require.NoError(t, err)

	var l Level
	require.NoError(t, l.UnmarshalText(data))
	assert.Equal(t, LevelWarn, l)

	assert.Error(t, l.UnmarshalText([]byte("trace")))
	assert.Equal(t, LevelWarn, l, "解析失败不改写原值")
}
