package split

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"github.com/urfave/cli/v3"
	yamlv3 "go.yaml.in/yaml/v3"

	"github.com/lwmacct/251219-go-pkg-pctexp/internal/command"
	"github.com/lwmacct/251219-go-pkg-pctexp/pkg/pctexp"
)

// 输出格式
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Result 单个输入的切分结果。
type Result struct {
	Input   string  `json:"input" yaml:"input"`
	Entries []Entry `json:"entries" yaml:"entries"`
	Error   string  `json:"error,omitempty" yaml:"error,omitempty"`
}

// Entry 片段的序列化形式。
type Entry struct {
	Kind   string `json:"kind" yaml:"kind"`
	Text   string `json:"text" yaml:"text"`
	Offset int    `json:"offset" yaml:"offset"`
}

func action(_ context.Context, cmd *cli.Command) error {
	if _, err := command.LoadConfig(cmd); err != nil {
		return command.ExitError(err)
	}

	inputs, err := command.Inputs(cmd.Args().Slice(), command.Stdin(cmd))
	if err != nil {
		return command.ExitError(err)
	}

	results, firstErr := SplitAll(inputs)
	slog.Debug("Split inputs", "count", len(inputs), "failed", firstErr != nil)

	if err := Render(command.Stdout(cmd), cmd.String("format"), results); err != nil {
		return command.ExitError(err)
	}

	return command.ExitError(firstErr)
}

// SplitAll 切分每个输入；格式错误记录在对应 Result 中，并返回第一个错误。
//
// 出错的输入保留错误之前已产出的片段。
func SplitAll(inputs []string) ([]Result, error) {
	var firstErr error
	results := make([]Result, 0, len(inputs))

	for _, in := range inputs {
		res := Result{Input: in, Entries: []Entry{}}
		sp := pctexp.Split(in)
		for sp.Scan() {
			e := sp.Entry()
			res.Entries = append(res.Entries, Entry{Kind: e.Kind.String(), Text: e.Text, Offset: e.Offset})
		}
		if err := sp.Err(); err != nil {
			res.Error = err.Error()
			if firstErr == nil {
				firstErr = err
			}
		}
		results = append(results, res)
	}

	return results, firstErr
}

// Render 按格式输出结果。
func Render(w io.Writer, format string, results []Result) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")

		return enc.Encode(results)
	case FormatYAML:
		enc := yamlv3.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(results); err != nil {
			return err
		}

		return enc.Close()
	case FormatText, "":
		return renderText(w, results)
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}

func renderText(w io.Writer, results []Result) error {
	for i, res := range results {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		for _, e := range res.Entries {
			if _, err := fmt.Fprintf(w, "%s\t%d\t%s\n", e.Kind, e.Offset, e.Text); err != nil {
				return err
			}
		}
		if res.Error != "" {
			if _, err := fmt.Fprintf(w, "error\t-\t%s\n", res.Error); err != nil {
				return err
			}
		}
	}

	return nil
}
