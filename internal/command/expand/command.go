// Package expand 提供 expand 命令。
package expand

import (
	"github.com/urfave/cli/v3"

	"github.com/lwmacct/251219-go-pkg-pctexp/internal/command"
)

// Command 展开命令
var Command = &cli.Command{
	Name:      "expand",
	Usage:     "展开文本中的 %NAME% 变量",
	ArgsUsage: "[TEXT...]",
	Description: "每个参数单独展开并输出一行；没有参数时逐行读取标准输入。\n" +
		"变量来源优先级：--expand-vars > --expand-vars-file > 环境变量。",
	Flags: []cli.Flag{
		&cli.BoolFlag{
			Name:  "expand-env",
			Value: command.Defaults.Expand.Env,
			Usage: "使用进程环境变量",
		},
		&cli.StringFlag{
			Name:  "expand-vars-file",
			Value: command.Defaults.Expand.VarsFile,
			Usage: "变量文件 (.yaml/.json/.env)",
		},
		&cli.StringMapFlag{
			Name:    "expand-vars",
			Aliases: []string{"v"},
			Usage:   "额外变量，可重复 (NAME=value)",
		},
	},
	Action: action,
}
