package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/lwmacct/251219-go-pkg-pctexp/internal/command"
	"github.com/lwmacct/251219-go-pkg-pctexp/internal/command/check"
	"github.com/lwmacct/251219-go-pkg-pctexp/internal/command/client"
	"github.com/lwmacct/251219-go-pkg-pctexp/internal/command/expand"
	"github.com/lwmacct/251219-go-pkg-pctexp/internal/command/server"
	"github.com/lwmacct/251219-go-pkg-pctexp/internal/command/split"
	"github.com/lwmacct/251219-go-pkg-pctexp/internal/version"
)

func main() {
	app := &cli.Command{
		Name:    version.AppRawName,
		Usage:   "%NAME% 变量展开工具",
		Version: version.GetVersion(),
		Flags:   command.GlobalFlags,
		Commands: []*cli.Command{
			version.Command,
			split.Command,
			expand.Command,
			check.Command,
			server.Command,
			client.Command,
		},
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
