// xsinkctl 是 xsink 日志汇聚端的命令行工具。
//
// 用法:
//
//	xsinkctl [全局选项] <命令> [命令参数]
//
// 命令:
//
//	pipe           把标准输入逐行写入带轮转能力的目标文件
//	check <file>   校验 Sink 配置文件（YAML/JSON）
//	help           显示帮助信息
//
// pipe 命令说明:
//
//	从标准输入读取文本行，经 Sink 格式化后写入 --path 指定的目标文件，
//	按配置的大小阈值自动轮转。收到 SIGHUP 时手动触发一次轮转
//	（logrotate 式用法）。EOF 或 SIGINT/SIGTERM 时排空队列后退出。
//
// 退出码:
//
//	0: 执行成功
//	1: 运行期错误（目标文件无法打开、配置文件无效等）
//	2: 参数错误（未知 flag、未知命令等）
//
// 示例:
//
//	journalctl -f | xsinkctl pipe --path /var/log/app.log --max-size 67108864
//	xsinkctl pipe --path app.log --policy date_uuid --max-archives 10
//	xsinkctl pipe --config sink.yaml
//	xsinkctl check sink.yaml
package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"
)

// 版本信息（可通过 -ldflags 注入，例如:
//
//	go build -ldflags "-X main.Version=1.0.0 -X main.GitCommit=$(git rev-parse --short HEAD)"
//
// ）。
var (
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
)

func main() {
	os.Exit(run())
}

// createApp 创建 CLI 应用。
func createApp() *cli.Command {
	return &cli.Command{
		Name:           "xsinkctl",
		Usage:          "xsink 日志汇聚端命令行工具",
		Version:        fmt.Sprintf("%s (commit: %s)", Version, GitCommit),
		Commands:       createCommands(),
		DefaultCommand: "help",
		// 设计决策: 禁止 urfave/cli 直接调用 os.Exit，
		// 由 run() 统一处理退出码映射，确保与文档退出码契约一致。
		ExitErrHandler: func(_ context.Context, _ *cli.Command, err error) {
			if _, ok := err.(cli.ExitCoder); ok {
				fmt.Fprintln(os.Stderr, err)
			}
		},
	}
}

func run() int {
	app := createApp()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	setupSignalHandler(ctx, cancel)

	if err := app.Run(ctx, os.Args); err != nil {
		var usageErr *usageError
		if errors.As(err, &usageErr) {
			fmt.Fprintf(os.Stderr, "参数错误: %v\n", usageErr)
			return 2
		}
		// CLI 框架产生的参数错误（未知 flag、未知命令）同样返回退出码 2
		var exitCoder cli.ExitCoder
		if errors.As(err, &exitCoder) {
			return 2
		}
		fmt.Fprintf(os.Stderr, "错误: %v\n", err)
		return 1
	}

	return 0
}
