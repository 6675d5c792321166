// Package command 提供各子命令共享的配置加载、日志与输入输出辅助。
package command

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/lwmacct/251219-go-pkg-pctexp/internal/config"
	"github.com/lwmacct/251219-go-pkg-pctexp/internal/version"
	"github.com/lwmacct/251219-go-pkg-pctexp/pkg/cfgm"
	"github.com/lwmacct/251219-go-pkg-pctexp/pkg/pctexp"
)

// Defaults 为默认配置的单一来源。
var Defaults = config.DefaultConfig()

// EnvPrefix 配置项的环境变量前缀。
const EnvPrefix = "PCTEXP_"

// 退出码
const (
	ExitFailure         = 1
	ExitInvalidFormat   = 2
	ExitMissingVariable = 3
)

// GlobalFlags 为根命令的全局 flags，子命令自动继承。
var GlobalFlags = []cli.Flag{
	&cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "配置文件路径 (.yaml/.json)",
	},
	&cli.StringFlag{
		Name:  "log-level",
		Value: Defaults.Log.Level,
		Usage: "日志级别 (debug/info/warn/error)",
	},
	&cli.StringFlag{
		Name:  "log-format",
		Value: Defaults.Log.Format,
		Usage: "日志格式 (text/json)",
	},
}

// LoadConfig 加载配置并按配置初始化默认 logger。
//
// 加载顺序：默认值 → 配置文件 → PCTEXP_ 环境变量 → 显式设置的 CLI flags。
func LoadConfig(cmd *cli.Command) (*config.Config, error) {
	opts := []cfgm.Option{cfgm.WithEnvPrefix(EnvPrefix)}
	if path := cmd.String("config"); path != "" {
		opts = append(opts, cfgm.WithConfigPaths(path))
	}

	cfg, err := cfgm.LoadCmd(cmd, config.DefaultConfig(), version.AppRawName, opts...)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	slog.SetDefault(NewLogger(cfg.Log, os.Stderr))

	return cfg, nil
}

// NewLogger 按配置创建 slog.Logger，未知级别按 info 处理。
func NewLogger(cfg config.LogConfig, w io.Writer) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	if strings.EqualFold(cfg.Format, "json") {
		return slog.New(slog.NewJSONHandler(w, opts))
	}

	return slog.New(slog.NewTextHandler(w, opts))
}

// ExitError 将展开错误映射为带退出码的 CLI 错误。
//
//   - 格式错误 → 2
//   - 变量缺失 → 3
//   - 其他 → 1
func ExitError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, pctexp.ErrInvalidFormat):
		return cli.Exit(err.Error(), ExitInvalidFormat)
	case errors.Is(err, pctexp.ErrMissingVariable):
		return cli.Exit(err.Error(), ExitMissingVariable)
	default:
		return cli.Exit(err.Error(), ExitFailure)
	}
}

// Inputs 返回待处理的文本：有位置参数时使用参数，否则按行读取 r。
func Inputs(args []string, r io.Reader) ([]string, error) {
	if len(args) > 0 {
		return args, nil
	}
	if r == nil {
		return nil, nil
	}

	var lines []string
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}

	return lines, nil
}

// Stdin 返回根命令的输入，未设置时为 os.Stdin。
func Stdin(cmd *cli.Command) io.Reader {
	if r := cmd.Root().Reader; r != nil {
		return r
	}

	return os.Stdin
}

// Stdout 返回根命令的输出，未设置时为 os.Stdout。
func Stdout(cmd *cli.Command) io.Writer {
	if w := cmd.Root().Writer; w != nil {
		return w
	}

	return os.Stdout
}
