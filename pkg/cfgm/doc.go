// Package cfgm 提供通用的配置加载功能。
//
// 支持 YAML/JSON，按默认值、配置文件、环境变量与 CLI flags 逐层覆盖。
// 配置 key 使用 json tag 统一描述，YAML 与 JSON 共享同一套 key。
//
// # 加载优先级 (从低到高)
//
//  1. 默认值 - 通过 defaultConfig 参数传入
//  2. 配置文件 - 通过 [WithConfigPaths] 或 [WithAppName] 设置
//  3. 环境变量(前缀) - 通过 [WithEnvPrefix] 自动生成绑定
//  4. CLI flags - 通过 [WithCommand] 选项设置，最高优先级
//
// # 快速开始
//
//	cfg, err := cfgm.LoadCmd(cmd, DefaultConfig(), "myapp",
//	    cfgm.WithEnvPrefix("MYAPP_"),
//	)
//
// # 变量展开
//
// 配置文件解析后，所有字符串值按 [pctexp] 语法展开，默认来源为进程环境变量：
//
//	# config.yaml
//	client:
//	  url: "https://%API_HOST%/v1"
//
// 变量不存在或 % 未闭合时 [Load] 返回错误，错误信息包含 key 路径。
// 使用 [WithExpandSource] 更换来源，使用 [WithoutExpansion] 禁用展开。
//
// # CLI Flag 映射
//
// 仅替换 "." 为 "-"：
//   - server.addr → --server-addr
//   - expand.vars-file → --expand-vars-file
//
// [pctexp]: github.com/lwmacct/251219-go-pkg-pctexp/pkg/pctexp
package cfgm
