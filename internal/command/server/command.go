// Package server 提供 HTTP 展开服务命令。
package server

import (
	"github.com/urfave/cli/v3"

	"github.com/lwmacct/251219-go-pkg-pctexp/internal/command"
	"github.com/lwmacct/251219-go-pkg-pctexp/internal/version"
)

// Command 服务器命令
var Command = &cli.Command{
	Name:     "server",
	Usage:    "启动 HTTP 展开服务",
	Action:   action,
	Commands: []*cli.Command{version.Command},
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:    "server-addr",
			Aliases: []string{"a"},
			Value:   command.Defaults.Server.Addr,
			Usage:   "服务器监听地址",
		},
		&cli.DurationFlag{
			Name:  "server-timeout",
			Value: command.Defaults.Server.Timeout,
			Usage: "HTTP 读写超时",
		},
		&cli.DurationFlag{
			Name:  "server-idletime",
			Value: command.Defaults.Server.Idletime,
			Usage: "HTTP 空闲超时",
		},
		&cli.BoolFlag{
			Name:  "server-allow-env",
			Value: command.Defaults.Server.AllowEnv,
			Usage: "允许请求使用服务端进程环境变量",
		},
		&cli.StringFlag{
			Name:  "server-body-limit",
			Value: command.Defaults.Server.BodyLimit,
			Usage: "请求体大小上限 (如 1M)",
		},
	},
}
