package cfgm

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/lwmacct/251219-go-pkg-pctexp/pkg/pctexp"
)

// DefaultPaths 返回默认配置文件的搜索顺序。
//
// appName 可选，提供后会前置应用专属路径：
//  1. ./.appname.yaml
//  2. ~/.appname.yaml
//  3. /etc/appname/config.yaml
//  4. config.yaml
//  5. config/config.yaml
func DefaultPaths(appName ...string) []string {
	var paths []string

	if len(appName) > 0 && appName[0] != "" {
		name := appName[0]
		paths = append(paths, "."+name+".yaml")
		if home, err := os.UserHomeDir(); err == nil {
			paths = append(paths, filepath.Join(home, "."+name+".yaml"))
		}
		paths = append(paths, "/etc/"+name+"/config.yaml")
	}

	return append(paths, "config.yaml", "config/config.yaml")
}

// Load 读取配置并按优先级合并。
//
// 优先级 (从低到高)：
//  1. 默认值 - defaultConfig
//  2. 配置文件 - [WithConfigPaths] / [WithAppName]，字符串值经 %NAME% 展开
//  3. 环境变量(前缀) - [WithEnvPrefix]
//  4. CLI flags - [WithCommand]
func Load[T any](defaultConfig T, opts ...Option) (*T, error) {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	if len(o.configPaths) == 0 {
		o.configPaths = DefaultPaths(o.appName)
	}
	if o.expandSrc == nil {
		o.expandSrc = pctexp.Env()
	}

	configMap := structToMap(defaultConfig)

	fileMap, err := loadFirstFile(o)
	if err != nil {
		return nil, err
	}
	if fileMap != nil {
		mergeMaps(configMap, fileMap)
	}

	if o.envPrefix != "" {
		bindings := generateEnvBindings(o.envPrefix, collectConfigKeys(defaultConfig))
		slog.Debug("Generated env bindings", "prefix", o.envPrefix, "count", len(bindings))
		for envKey, configPath := range bindings {
			if val := os.Getenv(envKey); val != "" {
				setByPath(configMap, configPath, val)
				slog.Debug("Loaded env binding", "env", envKey, "path", configPath)
			}
		}
	}

	if o.cmd != nil {
		applyCLIFlags(o.cmd, configMap, reflect.TypeOf(defaultConfig), "")
	}

	var cfg T
	if err := decodeConfigMap(configMap, &cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	return &cfg, nil
}

// loadFirstFile 读取第一个存在的配置文件；都不存在时返回 nil。
func loadFirstFile(o *options) (map[string]any, error) {
	for _, path := range o.configPaths {
		if o.baseDir != "" && !filepath.IsAbs(path) {
			path = filepath.Join(o.baseDir, path)
		}

		content, err := os.ReadFile(path) //nolint:gosec // path is from trusted config
		if err != nil {
			continue
		}

		fileMap, err := parseConfigBytes(path, content)
		if err != nil {
			return nil, fmt.Errorf("parse config file %s: %w", path, err)
		}

		if !o.noExpand {
			fileMap, err = pctexp.ExpandMap(fileMap, o.expandSrc)
			if err != nil {
				return nil, fmt.Errorf("expand config file %s: %w", path, err)
			}
		}

		slog.Debug("Loaded config from file", "path", path, "expand", !o.noExpand)

		return fileMap, nil
	}

	slog.Debug("No config file found, using defaults")

	return nil, nil
}

// LoadCmd 是 [Load] 的 CLI 版本：注入 [WithCommand]，appName 非空时注入 [WithAppName]。
func LoadCmd[T any](cmd *cli.Command, defaultConfig T, appName string, opts ...Option) (*T, error) {
	base := []Option{WithCommand(cmd)}
	if appName != "" {
		base = append(base, WithAppName(appName))
	}

	return Load(defaultConfig, append(base, opts...)...)
}

// MustLoadCmd 调用 [LoadCmd] 并在失败时 panic，适合启动阶段。
func MustLoadCmd[T any](cmd *cli.Command, defaultConfig T, appName string, opts ...Option) *T {
	cfg, err := LoadCmd(cmd, defaultConfig, appName, opts...)
	if err != nil {
		panic(fmt.Sprintf("cfgm: failed to load config: %v", err))
	}

	return cfg
}

// ═══════════════════════════════════════════════════════════════════════════
// 环境变量绑定
// ═══════════════════════════════════════════════════════════════════════════

// collectConfigKeys 收集可绑定环境变量的叶子 key（如 expand.vars-file）。
func collectConfigKeys[T any](defaultConfig T) []string {
	var keys []string
	walkConfigFields(reflect.TypeOf(defaultConfig), "", func(fullKey string, field reflect.StructField) {
		if field.Type.Kind() == reflect.Map {
			return
		}
		keys = append(keys, fullKey)
	})

	return keys
}

// generateEnvBindings 根据配置 key 生成 环境变量名 → key 的映射。
//
//	expand.vars-file → PCTEXP_EXPAND_VARS_FILE
func generateEnvBindings(prefix string, keys []string) map[string]string {
	replacer := strings.NewReplacer(".", "_", "-", "_")
	bindings := make(map[string]string, len(keys))
	for _, key := range keys {
		bindings[prefix+strings.ToUpper(replacer.Replace(key))] = key
	}

	return bindings
}

// walkConfigFields 深度优先遍历带 json tag 的叶子字段。
func walkConfigFields(typ reflect.Type, prefix string, fn func(fullKey string, field reflect.StructField)) {
	if typ.Kind() == reflect.Pointer {
		typ = typ.Elem()
	}
	if typ.Kind() != reflect.Struct {
		return
	}

	for i := range typ.NumField() {
		field := typ.Field(i)
		key := configTagName(field)
		if key == "" {
			continue
		}

		fullKey := key
		if prefix != "" {
			fullKey = prefix + "." + key
		}

		if isStructType(field.Type) {
			walkConfigFields(field.Type, fullKey, fn)

			continue
		}
		fn(fullKey, field)
	}
}

// ═══════════════════════════════════════════════════════════════════════════
// CLI flags
// ═══════════════════════════════════════════════════════════════════════════

// applyCLIFlags 将用户显式设置的 flags 写入配置 map。
//
// flag 名称由 key 中的 "." 替换为 "-" 得到：
//   - server.addr → --server-addr
//   - expand.vars-file → --expand-vars-file
func applyCLIFlags(cmd *cli.Command, config map[string]any, typ reflect.Type, prefix string) {
	walkConfigFields(typ, prefix, func(fullKey string, field reflect.StructField) {
		flag := strings.ReplaceAll(fullKey, ".", "-")
		if !cmd.IsSet(flag) {
			return
		}
		if val, ok := cliFlagValue(cmd, flag, field.Type); ok {
			setByPath(config, fullKey, val)
		}
	})
}

// cliFlagValue 按字段类型读取 flag 值；不支持的类型返回 false。
func cliFlagValue(cmd *cli.Command, flag string, typ reflect.Type) (any, bool) {
	if typ == durationType {
		return cmd.Duration(flag), true
	}

	switch typ.Kind() {
	case reflect.String:
		return cmd.String(flag), true
	case reflect.Bool:
		return cmd.Bool(flag), true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return cmd.Int(flag), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return cmd.Uint(flag), true
	case reflect.Float32, reflect.Float64:
		return cmd.Float64(flag), true
	case reflect.Slice:
		if typ.Elem().Kind() == reflect.String {
			return cmd.StringSlice(flag), true
		}
	case reflect.Map:
		if typ.Key().Kind() == reflect.String && typ.Elem().Kind() == reflect.String {
			return cmd.StringMap(flag), true
		}
	default:
	}

	return nil, false
}
