// Package config 提供应用配置管理。
//
// 配置加载优先级 (从低到高)：
//  1. 默认值 - DefaultConfig() 函数中定义
//  2. 配置文件 - --config 指定，或按 cfgm.DefaultPaths 搜索
//  3. 环境变量 - 前缀 PCTEXP_
//  4. CLI flags - 仅用户显式设置的 flag
//
// 配置文件中的字符串值会先做 %NAME% 展开（来源为进程环境变量）。
package config

import (
	"time"
)

// Config 应用配置。
type Config struct {
	Server ServerConfig `json:"server" desc:"服务端配置"`
	Client ClientConfig `json:"client" desc:"客户端配置"`
	Expand ExpandConfig `json:"expand" desc:"变量展开配置"`
	Log    LogConfig    `json:"log" desc:"日志配置"`
}

// ServerConfig 服务端配置。
type ServerConfig struct {
	Addr      string        `json:"addr" desc:"服务器监听地址"`
	Timeout   time.Duration `json:"timeout" desc:"HTTP 读写超时"`
	Idletime  time.Duration `json:"idletime" desc:"HTTP 空闲超时"`
	AllowEnv  bool          `json:"allow-env" desc:"允许请求使用服务端进程环境变量"`
	BodyLimit string        `json:"body-limit" desc:"请求体大小上限"`
}

// ClientConfig 客户端配置。
type ClientConfig struct {
	URL     string        `json:"url" desc:"服务器地址"`
	Timeout time.Duration `json:"timeout" desc:"请求超时时间"`
	Retries int           `json:"retries" desc:"重试次数"`
}

// ExpandConfig 本地展开时的变量来源。
//
// 优先级 (从高到低)：Vars → VarsFile → 环境变量。
type ExpandConfig struct {
	Env      bool              `json:"env" desc:"使用进程环境变量"`
	VarsFile string            `json:"vars-file" desc:"变量文件 (.yaml/.json/.env)"`
	Vars     map[string]string `json:"vars" desc:"额外变量 (NAME=value)"`
}

// LogConfig 日志配置。
type LogConfig struct {
	Level  string `json:"level" desc:"日志级别 (debug/info/warn/error)"`
	Format string `json:"format" desc:"日志格式 (text/json)"`
}

// DefaultConfig 返回默认配置。
// 注意：internal/command/command.go 中的 Defaults 变量引用此函数以实现单一配置来源。
func DefaultConfig() Config {
	return Config{
		Server: ServerConfig{
			Addr:      ":40117",
			Timeout:   15 * time.Second,
			Idletime:  60 * time.Second,
			BodyLimit: "1M",
		},
		Client: ClientConfig{
			URL:     "http://localhost:40117",
			Timeout: 30 * time.Second,
			Retries: 3,
		},
		Expand: ExpandConfig{
			Env: true,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}
