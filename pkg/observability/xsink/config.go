package xsink

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"

	"github.com/omeyang/xsink/pkg/observability/xrotate"
)

// Format 配置格式。
type Format string

// 支持的配置格式
const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// FileConfig 从配置文件映射出的 Sink 配置。
//
// 零值字段在 [FileConfig.NewSink] 时落到各自的默认值；
// Level 与 Policy 通过 TextUnmarshaler 钩子直接从字符串反序列化。
type FileConfig struct {
	// Path 目标文件路径（必填）
	Path string `koanf:"path"`

	// Perm 八进制权限串（如 "640"），空串使用默认权限
	Perm string `koanf:"perm"`

	// Level 最低记录级别（debug/info/warn/error）
	Level Level `koanf:"level"`

	// Policy 归档命名策略（numbering/date_uuid）
	Policy xrotate.SuffixPolicy `koanf:"policy"`

	// MaxFileSize 目标文件大小阈值（字节）
	MaxFileSize uint64 `koanf:"max_file_size"`

	// MaxArchives 保留归档数量（0~255）
	MaxArchives int `koanf:"max_archives"`

	// CheckEvery / CheckInterval 大小检查节流阈值
	CheckEvery    int64         `koanf:"check_every"`
	CheckInterval time.Duration `koanf:"check_interval"`

	// FlushEvery fsync 批量阈值
	FlushEvery int `koanf:"flush_every"`

	// QueueDepth 串行队列缓冲大小
	QueueDepth int `koanf:"queue_depth"`
}

// defaultFileConfig 返回带默认值的配置，koanf 反序列化在其上覆盖。
func defaultFileConfig() FileConfig {
	return FileConfig{
		Level:         LevelDebug,
		Policy:        xrotate.PolicyNumbering,
		MaxFileSize:   xrotate.DefaultMaxFileSize,
		MaxArchives:   int(xrotate.DefaultMaxArchives),
		CheckEvery:    xrotate.DefaultCheckEvery,
		CheckInterval: xrotate.DefaultCheckInterval,
		FlushEvery:    xrotate.DefaultFlushEvery,
		QueueDepth:    DefaultQueueDepth,
	}
}

// LoadConfig 从字节数据加载 Sink 配置，format 指定数据格式。
// 适用于 K8s ConfigMap 等非文件来源。
func LoadConfig(data []byte, format Format) (*FileConfig, error) {
	var parser koanf.Parser
	switch format {
	case FormatYAML:
		parser = yaml.Parser()
	case FormatJSON:
		parser = json.Parser()
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, string(format))
	}

	k := koanf.New(".")
	if err := k.Load(rawbytes.Provider(data), parser); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParseConfig, err)
	}

	cfg := defaultFileConfig()
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParseConfig, err)
	}
	return &cfg, nil
}

// LoadConfigFile 从配置文件加载 Sink 配置。
// 根据文件扩展名自动检测格式（.yaml/.yml 或 .json）。
func LoadConfigFile(path string) (*FileConfig, error) {
	format, err := detectFormat(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path) //#nosec G304 -- 配置路径由调用方指定
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParseConfig, err)
	}
	return LoadConfig(data, format)
}

// NewSink 按配置构造 Sink，opts 追加在配置映射出的选项之后（可覆盖）。
func (c *FileConfig) NewSink(opts ...Option) (*Sink, error) {
	if c.MaxArchives < 0 || c.MaxArchives > 255 {
		return nil, fmt.Errorf("%w: max_archives got %d, want 0~255", ErrInvalidConfig, c.MaxArchives)
	}

	all := append([]Option{
		WithMinLevel(c.Level),
		WithQueueDepth(c.QueueDepth),
		WithRotateOptions(
			xrotate.WithMaxFileSize(c.MaxFileSize),
			xrotate.WithMaxArchives(uint8(c.MaxArchives)),
			xrotate.WithPolicy(c.Policy),
			xrotate.WithCheckEvery(c.CheckEvery),
			xrotate.WithCheckInterval(c.CheckInterval),
			xrotate.WithFlushEvery(c.FlushEvery),
		),
	}, opts...)

	return New(c.Path, c.Perm, all...)
}

// detectFormat 根据文件扩展名检测配置格式。
func detectFormat(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("%w: unknown extension %q", ErrUnsupportedFormat, filepath.Ext(path))
	}
}
