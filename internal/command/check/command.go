// Package check 提供 check 命令：校验文本结构并列出引用的变量。
package check

import (
	"github.com/urfave/cli/v3"

	"github.com/lwmacct/251219-go-pkg-pctexp/internal/command"
)

// Command 校验命令
var Command = &cli.Command{
	Name:      "check",
	Usage:     "校验文本并列出引用的变量",
	ArgsUsage: "[TEXT...]",
	Flags: []cli.Flag{
		&cli.BoolFlag{
			Name:  "resolve",
			Usage: "同时检查变量能否从配置的来源解析",
		},
		&cli.BoolFlag{
			Name:  "expand-env",
			Value: command.Defaults.Expand.Env,
			Usage: "使用进程环境变量 (配合 --resolve)",
		},
		&cli.StringFlag{
			Name:  "expand-vars-file",
			Usage: "变量文件 (配合 --resolve)",
		},
		&cli.StringMapFlag{
			Name:    "expand-vars",
			Aliases: []string{"v"},
			Usage:   "额外变量 (配合 --resolve)",
		},
	},
	Action: action,
}
