package expand

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/urfave/cli/v3"

	"github.com/lwmacct/251219-go-pkg-pctexp/internal/command"
	"github.com/lwmacct/251219-go-pkg-pctexp/internal/vars"
	"github.com/lwmacct/251219-go-pkg-pctexp/pkg/pctexp"
)

func action(_ context.Context, cmd *cli.Command) error {
	cfg, err := command.LoadConfig(cmd)
	if err != nil {
		return command.ExitError(err)
	}

	src, err := vars.Build(cfg.Expand)
	if errors.Is(err, vars.ErrNoSource) {
		slog.Warn("No variable source enabled, every variable will be reported missing")
	} else if err != nil {
		return command.ExitError(err)
	}

	inputs, err := command.Inputs(cmd.Args().Slice(), command.Stdin(cmd))
	if err != nil {
		return command.ExitError(err)
	}

	return command.ExitError(Run(command.Stdout(cmd), inputs, src))
}

// Run 逐个展开 inputs 并写入 w，每个结果一行。
//
// 遇到第一个错误即停止；出错的输入不产生任何输出。
func Run(w io.Writer, inputs []string, src pctexp.Source) error {
	for i, in := range inputs {
		out, err := pctexp.Expand(in, src)
		if err != nil {
			slog.Debug("Expand failed", "input", i+1, "error", err)
			if len(inputs) > 1 {
				return fmt.Errorf("input %d: %w", i+1, err)
			}

			return err
		}
		if _, err := fmt.Fprintln(w, out); err != nil {
			return err
		}
	}

	return nil
}
