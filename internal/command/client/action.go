package client

import (
	"context"
	"fmt"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/lwmacct/251219-go-pkg-pctexp/internal/command"
	"github.com/lwmacct/251219-go-pkg-pctexp/internal/config"
	"github.com/lwmacct/251219-go-pkg-pctexp/internal/httpapi"
)

func newClient(cmd *cli.Command) (*httpapi.Client, error) {
	cfg, err := command.LoadConfig(cmd)
	if err != nil {
		return nil, err
	}

	return clientFor(cfg.Client), nil
}

func clientFor(cfg config.ClientConfig) *httpapi.Client {
	return httpapi.NewClient(cfg.URL, cfg.Timeout, cfg.Retries)
}

// textArg 返回唯一的位置参数。
func textArg(cmd *cli.Command) (string, error) {
	if cmd.Args().Len() != 1 {
		return "", fmt.Errorf("%s: expected exactly one TEXT argument, got %d", cmd.Name, cmd.Args().Len())
	}

	return cmd.Args().First(), nil
}

func healthAction(ctx context.Context, cmd *cli.Command) error {
	c, err := newClient(cmd)
	if err != nil {
		return command.ExitError(err)
	}

	resp, err := c.Health(ctx)
	if err != nil {
		return command.ExitError(err)
	}
	_, _ = fmt.Fprintln(command.Stdout(cmd), resp.Status)

	return nil
}

func splitAction(ctx context.Context, cmd *cli.Command) error {
	text, err := textArg(cmd)
	if err != nil {
		return command.ExitError(err)
	}
	c, err := newClient(cmd)
	if err != nil {
		return command.ExitError(err)
	}

	resp, err := c.Split(ctx, text)
	if err != nil {
		return command.ExitError(err)
	}

	w := command.Stdout(cmd)
	for _, e := range resp.Entries {
		_, _ = fmt.Fprintf(w, "%s\t%d\t%s\n", e.Kind, e.Offset, e.Text)
	}

	return nil
}

func checkAction(ctx context.Context, cmd *cli.Command) error {
	text, err := textArg(cmd)
	if err != nil {
		return command.ExitError(err)
	}
	c, err := newClient(cmd)
	if err != nil {
		return command.ExitError(err)
	}

	resp, err := c.Check(ctx, text)
	if err != nil {
		return command.ExitError(err)
	}
	_, _ = fmt.Fprintf(command.Stdout(cmd), "ok\t%s\n", strings.Join(resp.Names, ","))

	return nil
}

func expandAction(ctx context.Context, cmd *cli.Command) error {
	text, err := textArg(cmd)
	if err != nil {
		return command.ExitError(err)
	}
	c, err := newClient(cmd)
	if err != nil {
		return command.ExitError(err)
	}

	resp, err := c.Expand(ctx, httpapi.ExpandRequest{
		Text: text,
		Vars: cmd.StringMap("var"),
		Env:  cmd.Bool("env"),
	})
	if err != nil {
		return command.ExitError(err)
	}
	_, _ = fmt.Fprintln(command.Stdout(cmd), resp.Result)

	return nil
}
