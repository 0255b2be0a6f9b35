package xfile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// EnsureDir 测试
// =============================================================================

func TestEnsureDir(t *testing.T) {
	tmpDir := t.TempDir()

	filename := filepath.Join(tmpDir, "nested", "deep", "app.log")
	require.NoError(t, EnsureDir(filename))

	info, err := os.Stat(filepath.Dir(filename))
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestEnsureDirExisting(t *testing.T) {
	tmpDir := t.TempDir()

	// 目录已存在时不报错，也不修改其权限
	filename := filepath.Join(tmpDir, "app.log")
	require.NoError(t, EnsureDir(filename))
	require.NoError(t, EnsureDir(filename))
}

func TestEnsureDirNoParent(t *testing.T) {
	// 纯文件名没有父目录，直接成功
	assert.NoError(t, EnsureDir("app.log"))
}

func TestEnsureDirWithPermValidation(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		perm     os.FileMode
		wantErr  error
	}{
		{
			name:     "空路径",
			filename: "",
			perm:     0750,
			wantErr:  ErrEmptyPath,
		},
		{
			name:     "空字节",
			filename: "a\x00/b.log",
			perm:     0750,
			wantErr:  ErrNullByte,
		},
		{
			name:     "缺少所有者执行位",
			filename: "a/b.log",
			perm:     0640,
			wantErr:  ErrInvalidPerm,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := EnsureDirWithPerm(tt.filename, tt.perm)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
