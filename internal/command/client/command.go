// Package client 提供 HTTP 展开服务的客户端命令。
package client

import (
	"github.com/urfave/cli/v3"

	"github.com/lwmacct/251219-go-pkg-pctexp/internal/command"
	"github.com/lwmacct/251219-go-pkg-pctexp/internal/version"
)

// Command 客户端命令
var Command = &cli.Command{
	Name:  "client",
	Usage: "HTTP 展开服务客户端",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:    "client-url",
			Aliases: []string{"s"},
			Value:   command.Defaults.Client.URL,
			Usage:   "服务器地址",
		},
		&cli.DurationFlag{
			Name:  "client-timeout",
			Value: command.Defaults.Client.Timeout,
			Usage: "请求超时时间",
		},
		&cli.IntFlag{
			Name:  "client-retries",
			Value: command.Defaults.Client.Retries,
			Usage: "重试次数",
		},
	},
	Commands: []*cli.Command{
		version.Command,
		{
			Name:   "health",
			Usage:  "检查服务器健康状态",
			Action: healthAction,
		},
		{
			Name:      "split",
			Usage:     "由服务端切分文本",
			ArgsUsage: "TEXT",
			Action:    splitAction,
		},
		{
			Name:      "check",
			Usage:     "由服务端校验文本",
			ArgsUsage: "TEXT",
			Action:    checkAction,
		},
		{
			Name:      "expand",
			Usage:     "由服务端展开文本",
			ArgsUsage: "TEXT",
			Flags: []cli.Flag{
				&cli.StringMapFlag{
					Name:    "var",
					Aliases: []string{"v"},
					Usage:   "变量，可重复 (NAME=value)",
				},
				&cli.BoolFlag{
					Name:  "env",
					Usage: "允许回退到服务端环境变量 (需服务端开启 allow-env)",
				},
			},
			Action: expandAction,
		},
	},
}
