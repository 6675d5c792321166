package check

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

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

	var src pctexp.Source
	if cmd.Bool("resolve") {
		src, err = vars.Build(cfg.Expand)
		if err != nil && !errors.Is(err, vars.ErrNoSource) {
			return command.ExitError(err)
		}
	}

	inputs, err := command.Inputs(cmd.Args().Slice(), command.Stdin(cmd))
	if err != nil {
		return command.ExitError(err)
	}

	return command.ExitError(Run(command.Stdout(cmd), inputs, src))
}

// Run 校验每个输入并输出一行报告：
//
//	ok<TAB>NAME,NAME
//	invalid<TAB>错误信息
//
// src 非 nil 时额外要求所有变量可解析，缺失的变量报告为 missing。
// 返回第一个错误，但会检查并报告全部输入。
func Run(w io.Writer, inputs []string, src pctexp.Source) error {
	var firstErr error
	record := func(err error) {
		if firstErr == nil {
			firstErr = err
		}
	}

	for _, in := range inputs {
		names, err := pctexp.Names(in)
		if err != nil {
			record(err)
			if _, werr := fmt.Fprintf(w, "invalid\t%s\n", err); werr != nil {
				return werr
			}

			continue
		}

		if src != nil {
			if _, err := pctexp.Expand(in, src); err != nil {
				record(err)
				missing := unresolved(names, src)
				if _, werr := fmt.Fprintf(w, "missing\t%s\n", strings.Join(missing, ",")); werr != nil {
					return werr
				}

				continue
			}
		}

		if _, werr := fmt.Fprintf(w, "ok\t%s\n", strings.Join(names, ",")); werr != nil {
			return werr
		}
	}

	return firstErr
}

func unresolved(names []string, src pctexp.Source) []string {
	var missing []string
	for _, name := range names {
		if _, ok := src.Get(name); !ok {
			missing = append(missing, name)
		}
	}

	return missing
}
