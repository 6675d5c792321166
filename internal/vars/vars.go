// Package vars 组装 CLI 与服务端使用的变量来源。
package vars

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	yamlv3 "go.yaml.in/yaml/v3"

	"github.com/lwmacct/251219-go-pkg-pctexp/internal/config"
	"github.com/lwmacct/251219-go-pkg-pctexp/pkg/pctexp"
)

// LoadFile 读取变量文件。
//
// 按扩展名选择格式：
//   - .yaml / .yml - YAML 对象
//   - .json - JSON 对象
//   - 其他 (.env 或无扩展名) - dotenv
//
// YAML/JSON 的嵌套对象以 "." 拼接 key 展平，标量按 fmt.Sprint 转为字符串，null 为空字符串。
func LoadFile(path string) (pctexp.Map, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml", ".json":
		content, err := os.ReadFile(path) //nolint:gosec // path is user supplied on purpose
		if err != nil {
			return nil, fmt.Errorf("read vars file: %w", err)
		}

		return parseStructured(path, content)
	default:
		env, err := godotenv.Read(path)
		if err != nil {
			return nil, fmt.Errorf("read vars file %s: %w", path, err)
		}

		return pctexp.Map(env), nil
	}
}

func parseStructured(path string, content []byte) (pctexp.Map, error) {
	var raw map[string]any
	var err error
	if strings.EqualFold(filepath.Ext(path), ".json") {
		err = json.Unmarshal(content, &raw)
	} else {
		err = yamlv3.Unmarshal(content, &raw)
	}
	if err != nil {
		return nil, fmt.Errorf("parse vars file %s: %w", path, err)
	}

	out := make(pctexp.Map, len(raw))
	flatten(raw, "", out)

	return out, nil
}

func flatten(data map[string]any, prefix string, out pctexp.Map) {
	for key, value := range data {
		fullKey := key
		if prefix != "" {
			fullKey = prefix + "." + key
		}

		switch typed := value.(type) {
		case map[string]any:
			flatten(typed, fullKey, out)
		case nil:
			out[fullKey] = ""
		default:
			out[fullKey] = fmt.Sprint(typed)
		}
	}
}

// ErrNoSource 表示配置中未启用任何变量来源。
var ErrNoSource = errors.New("no variable source configured")

// Build 按配置组装变量来源，优先级 (从高到低)：
//  1. cfg.Vars
//  2. cfg.VarsFile
//  3. 进程环境变量 (cfg.Env)
//
// 三者均未启用时返回 [ErrNoSource]，调用方可选择使用空来源继续。
func Build(cfg config.ExpandConfig) (pctexp.Source, error) {
	var sources []pctexp.Source

	if len(cfg.Vars) > 0 {
		sources = append(sources, pctexp.Map(cfg.Vars))
	}
	if cfg.VarsFile != "" {
		fileVars, err := LoadFile(cfg.VarsFile)
		if err != nil {
			return nil, err
		}
		sources = append(sources, fileVars)
	}
	if cfg.Env {
		sources = append(sources, pctexp.Env())
	}

	if len(sources) == 0 {
		return pctexp.Map{}, ErrNoSource
	}

	return pctexp.Chain(sources...), nil
}
