package xrotate_test

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/omeyang/xsink/pkg/observability/xrotate"
)

// ExampleNewFile 演示自研轮转引擎的基础用法。
func ExampleNewFile() {
	dir, _ := os.MkdirTemp("", "xrotate-example")
	defer os.RemoveAll(dir)

	r, err := xrotate.NewFile(filepath.Join(dir, "app.log"),
		xrotate.WithMaxFileSize(64<<20),
		xrotate.WithMaxArchives(3),
		xrotate.WithPolicy(xrotate.PolicyNumbering),
		xrotate.WithOnError(func(err error) {
			fmt.Fprintln(os.Stderr, "rotate:", err)
		}),
	)
	if err != nil {
		fmt.Println("create failed:", err)
		return
	}
	defer r.Close()

	if _, err := r.Write([]byte("hello rotation\n")); err != nil {
		fmt.Println("write failed:", err)
		return
	}
	fmt.Println("written")
	// Output: written
}

// ExampleNewFile_observer 演示通过观察者接收轮转事件。
func ExampleNewFile_observer() {
	dir, _ := os.MkdirTemp("", "xrotate-example")
	defer os.RemoveAll(dir)
	target := filepath.Join(dir, "app.log")

	r, err := xrotate.NewFile(target,
		xrotate.WithObserver(xrotate.ObserverFuncs{
			OnArchived: func(oldPath, newPath string) {
				fmt.Println("archived:", filepath.Base(newPath))
			},
		}),
	)
	if err != nil {
		fmt.Println("create failed:", err)
		return
	}
	defer r.Close()

	_, _ = r.Write([]byte("x\n"))
	_ = r.Rotate()
	// Output: archived: app.log.1
}

// ExampleNewLumberjack 演示 lumberjack 实现的用法（gzip 压缩 + 按天清理）。
func ExampleNewLumberjack() {
	dir, _ := os.MkdirTemp("", "xrotate-example")
	defer os.RemoveAll(dir)

	r, err := xrotate.NewLumberjack(filepath.Join(dir, "app.log"),
		xrotate.WithMaxSize(100),
		xrotate.WithMaxBackups(7),
		xrotate.WithMaxAge(30),
		xrotate.WithCompress(true),
	)
	if err != nil {
		fmt.Println("create failed:", err)
		return
	}
	defer r.Close()

	if _, err := r.Write([]byte("hello lumberjack\n")); err != nil {
		fmt.Println("write failed:", err)
		return
	}
	fmt.Println("written")
	// Output: written
}
