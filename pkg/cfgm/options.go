package cfgm

import (
	"github.com/urfave/cli/v3"

	"github.com/lwmacct/251219-go-pkg-pctexp/pkg/pctexp"
)

// options 配置加载选项。
type options struct {
	appName     string // 应用名称，用于生成默认配置路径
	cmd         *cli.Command
	configPaths []string
	baseDir     string // 相对路径的解析基准，空字符串表示当前工作目录
	envPrefix   string
	noExpand    bool          // 是否禁用配置文件变量展开（默认启用）
	expandSrc   pctexp.Source // 变量来源，默认为进程环境变量
}

// Option 配置加载选项函数。
type Option func(*options)

// WithCommand 绑定 CLI 命令，读取显式设置的 flags 以覆盖配置（最高优先级）。
func WithCommand(cmd *cli.Command) Option {
	return func(o *options) {
		o.cmd = cmd
	}
}

// WithAppName 设置应用名称，用于生成默认搜索路径（见 [DefaultPaths]）。
func WithAppName(name string) Option {
	return func(o *options) {
		o.appName = name
	}
}

// WithConfigPaths 设置配置文件搜索路径。
//
// 按顺序查找，命中首个文件即停止；空字符串会被忽略。
func WithConfigPaths(paths ...string) Option {
	return func(o *options) {
		for _, p := range paths {
			if p != "" {
				o.configPaths = append(o.configPaths, p)
			}
		}
	}
}

// WithBaseDir 设置相对配置路径的解析基准。绝对路径不受影响。
func WithBaseDir(path string) Option {
	return func(o *options) {
		o.baseDir = path
	}
}

// WithEnvPrefix 启用环境变量前缀解析。
//
// 环境变量命名规则：
//   - 前缀 + 大写的配置 key
//   - 点号 (.) 和连字符 (-) 转为下划线 (_)
//
// 示例 (前缀为 "PCTEXP_")：
//   - PCTEXP_SERVER_ADDR → server.addr
//   - PCTEXP_EXPAND_VARS_FILE → expand.vars-file
//
// map 类型的 key 不生成绑定。
func WithEnvPrefix(prefix string) Option {
	return func(o *options) {
		o.envPrefix = prefix
	}
}

// WithExpandSource 设置配置文件变量展开使用的来源，默认为 [pctexp.Env]。
func WithExpandSource(src pctexp.Source) Option {
	return func(o *options) {
		o.expandSrc = src
	}
}

// WithoutExpansion 禁用配置文件的 %NAME% 展开，保留原始字符串。
func WithoutExpansion() Option {
	return func(o *options) {
		o.noExpand = true
	}
}
