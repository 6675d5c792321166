// Package split 提供 split 命令：输出文本的片段结构而不解析变量。
package split

import (
	"github.com/urfave/cli/v3"
)

// Command 切分命令
var Command = &cli.Command{
	Name:      "split",
	Usage:     "切分文本为字面量与变量片段",
	ArgsUsage: "[TEXT...]",
	Description: "每个参数单独切分；没有参数时逐行读取标准输入。\n" +
		"输出格式 text 为每行 KIND<TAB>OFFSET<TAB>TEXT，不同输入之间以空行分隔。",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:    "format",
			Aliases: []string{"f"},
			Value:   FormatText,
			Usage:   "输出格式 (text/json/yaml)",
		},
	},
	Action: action,
}
