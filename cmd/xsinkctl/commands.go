package main

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"

	"github.com/omeyang/xsink/pkg/observability/xrotate"
	"github.com/omeyang/xsink/pkg/observability/xsink"
)

// usageError 表示参数错误（退出码 2）。
type usageError struct {
	msg string
}

func (e *usageError) Error() string { return e.msg }

// createCommands 创建所有子命令。
func createCommands() []*cli.Command {
	return []*cli.Command{
		createPipeCommand(),
		createCheckCommand(),
	}
}

// createPipeCommand 创建 pipe 子命令（标准输入 → 轮转文件）。
func createPipeCommand() *cli.Command {
	return &cli.Command{
		Name:    "pipe",
		Aliases: []string{"p"},
		Usage:   "把标准输入逐行写入带轮转能力的目标文件",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "config",
				Usage: "Sink 配置文件（YAML/JSON），与其余 flag 互斥",
			},
			&cli.StringFlag{
				Name:  "path",
				Usage: "目标文件路径",
			},
			&cli.StringFlag{
				Name:  "perm",
				Usage: "目标文件八进制权限串",
				Value: "640",
			},
			&cli.StringFlag{
				Name:  "policy",
				Usage: "归档命名策略 (numbering/date_uuid)",
				Value: string(xrotate.PolicyNumbering),
			},
			&cli.StringFlag{
				Name:  "level",
				Usage: "写入的日志级别 (debug/info/warn/error)",
				Value: "info",
			},
			&cli.Uint64Flag{
				Name:  "max-size",
				Usage: "目标文件大小阈值（字节）",
				Value: xrotate.DefaultMaxFileSize,
			},
			&cli.UintFlag{
				Name:  "max-archives",
				Usage: "保留归档数量 (0~255)",
				Value: uint(xrotate.DefaultMaxArchives),
			},
			&cli.Int64Flag{
				Name:  "check-every",
				Usage: "大小检查的写调用计数阈值",
				Value: xrotate.DefaultCheckEvery,
			},
			&cli.DurationFlag{
				Name:  "check-interval",
				Usage: "大小检查的时间阈值",
				Value: xrotate.DefaultCheckInterval,
			},
			&cli.IntFlag{
				Name:  "flush-every",
				Usage: "fsync 批量阈值",
				Value: xrotate.DefaultFlushEvery,
			},
		},
		Action: cmdPipe,
	}
}

// createCheckCommand 创建 check 子命令（配置文件校验）。
func createCheckCommand() *cli.Command {
	return &cli.Command{
		Name:      "check",
		Usage:     "校验 Sink 配置文件",
		ArgsUsage: "<file>",
		Action: func(_ context.Context, cmd *cli.Command) error {
			if cmd.Args().Len() != 1 {
				return &usageError{msg: "check 需要一个配置文件参数"}
			}
			cfg, err := xsink.LoadConfigFile(cmd.Args().First())
			if err != nil {
				return err
			}
			fmt.Printf("配置有效: path=%s policy=%s level=%s max_file_size=%d max_archives=%d\n",
				cfg.Path, cfg.Policy, cfg.Level, cfg.MaxFileSize, cfg.MaxArchives)
			return nil
		},
	}
}

// cmdPipe pipe 命令实现。
func cmdPipe(ctx context.Context, cmd *cli.Command) error {
	sink, level, err := buildSink(cmd)
	if err != nil {
		return err
	}
	defer sink.Close()

	// SIGHUP 手动触发轮转（logrotate 式用法）
	hup := make(chan os.Signal, 1)
	signal.Notify(hup, syscall.SIGHUP)
	defer signal.Stop(hup)

	lines := make(chan string)
	scanErr := make(chan error, 1)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(os.Stdin)
		scanner.Buffer(make([]byte, 0, 64<<10), 1<<20)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		scanErr <- scanner.Err()
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-hup:
			if rerr := sink.Rotate(); rerr != nil {
				slog.Warn("manual rotate failed", "error", rerr)
			}
		case line, ok := <-lines:
			if !ok {
				select {
				case serr := <-scanErr:
					return serr
				default:
					return nil
				}
			}
			sink.Log(level, line)
		}
	}
}

// buildSink 从 --config 或离散 flag 构造 Sink。
func buildSink(cmd *cli.Command) (*xsink.Sink, xsink.Level, error) {
	level, err := xsink.ParseLevel(cmd.String("level"))
	if err != nil {
		return nil, 0, &usageError{msg: err.Error()}
	}

	// 运行期故障走 stderr，不经由 Sink 自身
	onError := xsink.WithOnError(func(err error) {
		slog.Warn("sink internal error", "error", err)
	})

	if cfgPath := cmd.String("config"); cfgPath != "" {
		cfg, cerr := xsink.LoadConfigFile(cfgPath)
		if cerr != nil {
			return nil, 0, cerr
		}
		s, serr := cfg.NewSink(onError)
		return s, level, serr
	}

	path := cmd.String("path")
	if path == "" {
		return nil, 0, &usageError{msg: "缺少 --path（或改用 --config）"}
	}

	policy, err := xrotate.ParseSuffixPolicy(cmd.String("policy"))
	if err != nil {
		return nil, 0, &usageError{msg: err.Error()}
	}
	maxArchives := cmd.Uint("max-archives")
	if maxArchives > 255 {
		return nil, 0, &usageError{msg: fmt.Sprintf("--max-archives 超出 0~255: %d", maxArchives)}
	}

	s, err := xsink.New(path, cmd.String("perm"),
		onError,
		xsink.WithRotateOptions(
			xrotate.WithMaxFileSize(cmd.Uint64("max-size")),
			xrotate.WithMaxArchives(uint8(maxArchives)),
			xrotate.WithPolicy(policy),
			xrotate.WithCheckEvery(cmd.Int64("check-every")),
			xrotate.WithCheckInterval(cmd.Duration("check-interval")),
			xrotate.WithFlushEvery(cmd.Int("flush-every")),
		),
	)
	return s, level, err
}

// setupSignalHandler 设置信号处理。
// SIGINT/SIGTERM 取消根 context，让 pipe 循环排空后退出。
func setupSignalHandler(ctx context.Context, cancel context.CancelFunc) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		select {
		case <-sigCh:
			cancel()
			// 第二次信号直接退出，避免排空阶段卡死时无法终止
			<-sigCh
			os.Exit(1)
		case <-ctx.Done():
		}
	}()
}
