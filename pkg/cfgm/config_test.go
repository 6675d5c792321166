package cfgm

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"

	"github.com/lwmacct/251219-go-pkg-pctexp/pkg/pctexp"
)

type testServer struct {
	Addr    string        `json:"addr"`
	Timeout time.Duration `json:"timeout"`
}

type testConfig struct {
	Name   string            `json:"name"`
	Debug  bool              `json:"debug"`
	Server testServer        `json:"server"`
	Vars   map[string]string `json:"vars"`
	Hidden string            `json:"-"`
}

func defaults() testConfig {
	return testConfig{
		Name:   "default",
		Server: testServer{Addr: ":8080", Timeout: time.Second},
	}
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := writeFile(t, "config.yaml", `
name: from-file
server:
  timeout: 5s
vars:
  a: "1"
`)

	cfg, err := Load(defaults(), WithConfigPaths(path))
	require.NoError(t, err)
	assert.Equal(t, "from-file", cfg.Name)
	assert.Equal(t, ":8080", cfg.Server.Addr, "unset keys keep defaults")
	assert.Equal(t, 5*time.Second, cfg.Server.Timeout)
	assert.Equal(t, map[string]string{"a": "1"}, cfg.Vars)
}

func TestLoad_JSONFile(t *testing.T) {
	path := writeFile(t, "config.json", `{"name": "json-app", "debug": true}`)

	cfg, err := Load(defaults(), WithConfigPaths(path))
	require.NoError(t, err)
	assert.Equal(t, "json-app", cfg.Name)
	assert.True(t, cfg.Debug)
}

func TestLoad_FirstExistingFileWins(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.yaml"), []byte("name: b\n"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "c.yaml"), []byte("name: c\n"), 0o600))

	cfg, err := Load(defaults(), WithBaseDir(dir), WithConfigPaths("a.yaml", "b.yaml", "c.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "b", cfg.Name)
}

func TestLoad_Expansion(t *testing.T) {
	t.Setenv("CFGM_TEST_HOST", "example.com")
	path := writeFile(t, "config.yaml", `
server:
  addr: "%CFGM_TEST_HOST%:443"
`)

	cfg, err := Load(defaults(), WithConfigPaths(path))
	require.NoError(t, err)
	assert.Equal(t, "example.com:443", cfg.Server.Addr)

	t.Run("custom source", func(t *testing.T) {
		cfg, err := Load(defaults(),
			WithConfigPaths(path),
			WithExpandSource(pctexp.Map{"CFGM_TEST_HOST": "local"}),
		)
		require.NoError(t, err)
		assert.Equal(t, "local:443", cfg.Server.Addr)
	})

	t.Run("disabled", func(t *testing.T) {
		cfg, err := Load(defaults(), WithConfigPaths(path), WithoutExpansion())
		require.NoError(t, err)
		assert.Equal(t, "%CFGM_TEST_HOST%:443", cfg.Server.Addr)
	})
}

func TestLoad_ExpansionErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr error
		path    string
	}{
		{
			name:    "missing variable",
			content: "name: \"%CFGM_TEST_SURELY_UNSET%\"\n",
			wantErr: pctexp.ErrMissingVariable,
			path:    "name",
		},
		{
			name:    "unterminated",
			content: "server:\n  addr: \"50%\"\n",
			wantErr: pctexp.ErrInvalidFormat,
			path:    "server.addr",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, "config.yaml", tt.content)
			_, err := Load(defaults(), WithConfigPaths(path), WithExpandSource(pctexp.Map{}))
			require.ErrorIs(t, err, tt.wantErr)
			assert.Contains(t, err.Error(), tt.path)
		})
	}
}

func TestLoad_InvalidRoot(t *testing.T) {
	path := writeFile(t, "config.yaml", "- a\n- b\n")
	_, err := Load(defaults(), WithConfigPaths(path))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config root must be object")
}

func TestLoad_EnvPrefix(t *testing.T) {
	t.Setenv("CFGMTEST_NAME", "from-env")
	t.Setenv("CFGMTEST_SERVER_TIMEOUT", "3s")

	cfg, err := Load(defaults(),
		WithConfigPaths(filepath.Join(t.TempDir(), "missing.yaml")),
		WithEnvPrefix("CFGMTEST_"),
	)
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.Name)
	assert.Equal(t, 3*time.Second, cfg.Server.Timeout)
}

func TestLoad_CLIFlagsWin(t *testing.T) {
	t.Setenv("CFGMTEST_NAME", "from-env")

	var got *testConfig
	cmd := &cli.Command{
		Name: "app",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "name"},
			&cli.StringFlag{Name: "server-addr"},
			&cli.DurationFlag{Name: "server-timeout"},
			&cli.StringMapFlag{Name: "vars"},
		},
		Action: func(_ context.Context, cmd *cli.Command) error {
			var err error
			got, err = LoadCmd(cmd, defaults(), "",
				WithConfigPaths(filepath.Join(t.TempDir(), "missing.yaml")),
				WithEnvPrefix("CFGMTEST_"),
			)

			return err
		},
	}

	err := cmd.Run(context.Background(), []string{"app", "--name", "from-flag", "--vars", "k=v"})
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "from-flag", got.Name)
	assert.Equal(t, ":8080", got.Server.Addr, "flags not set on the command line are ignored")
	assert.Equal(t, time.Second, got.Server.Timeout)
	assert.Equal(t, map[string]string{"k": "v"}, got.Vars)
}

func TestCollectConfigKeys(t *testing.T) {
	keys := collectConfigKeys(defaults())
	sort.Strings(keys)
	assert.Equal(t, []string{"debug", "name", "server.addr", "server.timeout"}, keys)
}

func TestGenerateEnvBindings(t *testing.T) {
	got := generateEnvBindings("APP_", []string{"expand.vars-file", "server.addr"})
	assert.Equal(t, map[string]string{
		"APP_EXPAND_VARS_FILE": "expand.vars-file",
		"APP_SERVER_ADDR":      "server.addr",
	}, got)
}

func TestMergeMaps(t *testing.T) {
	dst := map[string]any{
		"a": 1,
		"n": map[string]any{"x": 1, "y": 2},
	}
	mergeMaps(dst, map[string]any{
		"b": 2,
		"n": map[string]any{"y": 3},
	})
	assert.Equal(t, map[string]any{
		"a": 1,
		"b": 2,
		"n": map[string]any{"x": 1, "y": 3},
	}, dst)
}

func TestSetByPath(t *testing.T) {
	dst := map[string]any{"a": "scalar"}
	setByPath(dst, "a.b.c", 1)
	setByPath(dst, "top", true)
	assert.Equal(t, map[string]any{
		"a":   map[string]any{"b": map[string]any{"c": 1}},
		"top": true,
	}, dst)
}

func TestMustLoadCmd_Panics(t *testing.T) {
	path := writeFile(t, "config.yaml", "name: \"%unterminated\"\n")
	assert.Panics(t, func() {
		MustLoadCmd(nil, defaults(), "", WithConfigPaths(path))
	})
}
