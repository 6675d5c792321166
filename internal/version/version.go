// Package version 提供构建信息与 version 子命令。
//
// Version / Commit / BuildTime 通过 ldflags 注入：
//
//	go build -ldflags "-X github.com/lwmacct/251219-go-pkg-pctexp/internal/version.Version=v1.0.0"
package version

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"
)

// AppRawName 应用名称，同时用于默认配置路径与环境变量前缀。
const AppRawName = "pctexp"

var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

// GetVersion 返回版本字符串。
func GetVersion() string {
	if Commit == "unknown" || Commit == "" {
		return Version
	}

	return Version + " (" + Commit + ")"
}

// Command 打印构建信息。
var Command = &cli.Command{
	Name:  "version",
	Usage: "显示版本信息",
	Action: func(_ context.Context, cmd *cli.Command) error {
		w := cmd.Root().Writer
		_, _ = fmt.Fprintf(w, "%s %s\n", AppRawName, Version)
		_, _ = fmt.Fprintf(w, "commit:     %s\n", Commit)
		_, _ = fmt.Fprintf(w, "build time: %s\n", BuildTime)

		return nil
	},
}
