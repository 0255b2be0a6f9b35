package main

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestUsageError(t *testing.T) {
	err := &usageError{msg: "缺少参数"}
	if err.Error() != "缺少参数" {
		t.Errorf("usageError.Error() = %q", err.Error())
	}

	var target *usageError
	if !errors.As(error(err), &target) {
		t.Error("usageError 应可通过 errors.As 检测")
	}
}

func TestCreateAppCommands(t *testing.T) {
	app := createApp()

	want := map[string]bool{"pipe": false, "check": false}
	for _, cmd := range app.Commands {
		if _, ok := want[cmd.Name]; ok {
			want[cmd.Name] = true
		}
	}
	for name, found := range want {
		if !found {
			t.Errorf("缺少子命令 %q", name)
		}
	}
}

func TestCheckCommand(t *testing.T) {
	tmpDir := t.TempDir()
	cfgPath := filepath.Join(tmpDir, "sink.yaml")
	if err := os.WriteFile(cfgPath, []byte("path: /var/log/app.log\nlevel: info\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	app := createApp()
	if err := app.Run(context.Background(), []string{"xsinkctl", "check", cfgPath}); err != nil {
		t.Errorf("check 有效配置应成功: %v", err)
	}
}

func TestCheckCommandMissingArg(t *testing.T) {
	app := createApp()
	err := app.Run(context.Background(), []string{"xsinkctl", "check"})

	var usageErr *usageError
	if !errors.As(err, &usageErr) {
		t.Errorf("缺少参数应返回 usageError，得到: %v", err)
	}
}

func TestCheckCommandInvalidConfig(t *testing.T) {
	tmpDir := t.TempDir()
	cfgPath := filepath.Join(tmpDir, "sink.yaml")
	if err := os.WriteFile(cfgPath, []byte("level: trace\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	app := createApp()
	if err := app.Run(context.Background(), []string{"xsinkctl", "check", cfgPath}); err == nil {
		t.Error("非法配置应返回错误")
	}
}
