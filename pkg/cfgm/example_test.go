package cfgm_test

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/lwmacct/251219-go-pkg-pctexp/pkg/cfgm"
	"github.com/lwmacct/251219-go-pkg-pctexp/pkg/pctexp"
)

// Example_defaultPaths 演示 DefaultPaths 的搜索顺序。
func Example_defaultPaths() {
	fmt.Println("基础路径数量:", len(cfgm.DefaultPaths()))
	fmt.Println("带应用名路径数量:", len(cfgm.DefaultPaths("myapp")))

	// Output:
	// 基础路径数量: 2
	// 带应用名路径数量: 5
}

// Example_load 演示配置文件不存在时回退到默认值。
func Example_load() {
	type Config struct {
		Name  string `json:"name"`
		Debug bool   `json:"debug"`
	}

	cfg, err := cfgm.Load(Config{Name: "default-app"},
		cfgm.WithConfigPaths("nonexistent.yaml"),
	)
	if err != nil {
		fmt.Println("加载失败:", err)

		return
	}

	fmt.Println("Name:", cfg.Name)
	fmt.Println("Debug:", cfg.Debug)

	// Output:
	// Name: default-app
	// Debug: false
}

// Example_load_withExpansion 演示配置文件中的 %NAME% 展开。
func Example_load_withExpansion() {
	type Config struct {
		URL string `json:"url"`
	}

	dir, err := os.MkdirTemp("", "cfgm-example")
	if err != nil {
		fmt.Println(err)

		return
	}
	defer func() { _ = os.RemoveAll(dir) }()

	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("url: https://%HOST%/v1\n"), 0o600); err != nil {
		fmt.Println(err)

		return
	}

	cfg, err := cfgm.Load(Config{},
		cfgm.WithConfigPaths(path),
		cfgm.WithExpandSource(pctexp.Map{"HOST": "api.example.com"}),
	)
	if err != nil {
		fmt.Println("加载失败:", err)

		return
	}
	fmt.Println(cfg.URL)

	// Output:
	// https://api.example.com/v1
}
