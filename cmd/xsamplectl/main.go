// xsamplectl 对记录流做确定性的按 key 采样。
//
// 用法:
//
//	xsamplectl [全局选项] <命令> [命令参数]
//
// 全局选项:
//
//	--log-level    日志级别 debug/info/warn/error（默认 info）
//	--log-format   日志格式 text/json（默认 text）
//	--log-file     日志写入按大小轮转的文件（默认 stderr）
//
// 命令:
//
//	sample         过滤输入，只输出被采中的记录
//	hash           打印一组字段的组合哈希、摘要整数、展开值与决策
//	seed           打印盐值对应的种子
//
// 退出码:
//
//	0: 成功
//	1: 运行失败（读写错误、记录无法解析等）
//	2: 参数错误（rate 无法解析、缺少 schema、未知字段类型等）
//
// 示例:
//
//	xsamplectl sample -r 0.1 --schema 'user_id:chararray,n:int' -k user_id < in.csv > out.csv
//	xsamplectl sample -c job.yaml -i in.csv -o out.csv -w 8
//	xsamplectl hash --rate 0.5 s:user-42 i:7
//	xsamplectl seed experiment-7
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"
)

// 版本信息，通过 -ldflags "-X main.Version=..." 注入
var (
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildTime = "unknown"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	setupSignalHandler(cancel)

	os.Exit(run(ctx, os.Args, os.Stdin, os.Stdout, os.Stderr))
}

// usageError 参数错误，退出码 2
type usageError struct {
	err error
}

func (e *usageError) Error() string { return e.err.Error() }

func (e *usageError) Unwrap() error { return e.err }

func usagef(format string, args ...any) error {
	return &usageError{err: fmt.Errorf(format, args...)}
}

func createApp(stdin io.Reader, stdout, stderr io.Writer) *cli.Command {
	return &cli.Command{
		Name:      "xsamplectl",
		Usage:     "按 key 确定性采样",
		Version:   fmt.Sprintf("%s (commit: %s, built: %s)", Version, GitCommit, BuildTime),
		Reader:    stdin,
		Writer:    stdout,
		ErrWriter: stderr,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "log-level", Usage: "日志级别 debug/info/warn/error", Value: "info"},
			&cli.StringFlag{Name: "log-format", Usage: "日志格式 text/json", Value: "text"},
			&cli.StringFlag{Name: "log-file", Usage: "日志文件（按大小轮转），默认输出到 stderr"},
		},
		Commands:     createCommands(),
		OnUsageError: onUsageError,
		// 退出码统一由 run 决定
		ExitErrHandler: func(context.Context, *cli.Command, error) {},
	}
}

func onUsageError(_ context.Context, _ *cli.Command, err error, _ bool) error {
	return &usageError{err: err}
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	app := createApp(stdin, stdout, stderr)
	err := app.Run(ctx, args)
	if err == nil {
		return 0
	}

	var ue *usageError
	if errors.As(err, &ue) {
		fmt.Fprintf(stderr, "参数错误: %v\n", ue)
		return 2
	}
	fmt.Fprintf(stderr, "错误: %v\n", err)
	return 1
}

// setupSignalHandler 第一次 SIGINT/SIGTERM 取消 ctx，第二次强制退出
func setupSignalHandler(cancel context.CancelFunc) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()

		<-sigCh
		signal.Stop(sigCh)
		os.Exit(130)
	}()
}
