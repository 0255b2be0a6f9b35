package xsink_test

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/omeyang/xsink/pkg/observability/xrotate"
	"github.com/omeyang/xsink/pkg/observability/xsink"
)

// ExampleNew 演示 Sink 的基础用法。
func ExampleNew() {
	dir, _ := os.MkdirTemp("", "xsink-example")
	defer os.RemoveAll(dir)

	s, err := xsink.New(filepath.Join(dir, "app.log"), "640",
		xsink.WithMinLevel(xsink.LevelInfo),
		xsink.WithRotateOptions(
			xrotate.WithMaxFileSize(64<<20),
			xrotate.WithMaxArchives(5),
		),
	)
	if err != nil {
		fmt.Println("create failed:", err)
		return
	}
	defer s.Close()

	s.Info("service started")
	s.Debug("filtered out by level")

	if err := s.Flush(); err != nil {
		fmt.Println("flush failed:", err)
		return
	}
	fmt.Println("logged")
	// Output: logged
}

// ExampleLoadConfig 演示从 YAML 配置构造 Sink。
func ExampleLoadConfig() {
	dir, _ := os.MkdirTemp("", "xsink-example")
	defer os.RemoveAll(dir)

	raw := fmt.Appendf(nil, `
path: %s
perm: "600"
level: info
policy: date_uuid
max_file_size: 33554432
max_archives: 7
`, filepath.Join(dir, "app.log"))

	cfg, err := xsink.LoadConfig(raw, xsink.FormatYAML)
	if err != nil {
		fmt.Println("load failed:", err)
		return
	}

	s, err := cfg.NewSink()
	if err != nil {
		fmt.Println("create failed:", err)
		return
	}
	defer s.Close()

	s.Warn("disk usage above soft limit")
	fmt.Println("policy:", cfg.Policy)
	// Output: policy: date_uuid
}

// ExampleSink_Suspend 演示挂起/恢复生命周期信号。
func ExampleSink_Suspend() {
	dir, _ := os.MkdirTemp("", "xsink-example")
	defer os.RemoveAll(dir)

	s, err := xsink.New(filepath.Join(dir, "app.log"), "")
	if err != nil {
		fmt.Println("create failed:", err)
		return
	}
	defer s.Close()

	s.Info("entering background")
	if err := s.Suspend(); err != nil {
		fmt.Println("suspend failed:", err)
		return
	}
	// ……宿主处于后台，轮转被暂停，写入照常……
	s.Resume()

	fmt.Println("resumed")
	// Output: resumed
}
