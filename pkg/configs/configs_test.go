package configs

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/viper"
)

func TestLoadConfig_Defaults(t *testing.T) {
	// 切到空目录，避免读到仓库里的配置文件
	chdir(t, t.TempDir())
	t.Setenv("HOME", t.TempDir())

	cfg, _, err := LoadConfig("", nil)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if got := strings.Join(cfg.Check.TestCommand, " "); got != "npm run test" {
		t.Errorf("test command = %q", got)
	}
	if cfg.Check.ReportPath != "coverage/coverage-final.json" {
		t.Errorf("report path = %q", cfg.Check.ReportPath)
	}
	if cfg.Check.Format != "text" || cfg.Check.SkipTests || len(cfg.Check.Exclude) != 0 {
		t.Errorf("unexpected check defaults: %+v", cfg.Check)
	}
	if cfg.Log.Level != "warn" || cfg.App.Name != "covgap" {
		t.Errorf("unexpected defaults: log=%+v app=%+v", cfg.Log, cfg.App)
	}
}

func TestLoadConfig_File(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	t.Setenv("HOME", t.TempDir())

	content := `check:
  test_command: ["pnpm", "vitest", "run", "--coverage"]
  format: json
  exclude:
    - "**/*.test.tsx"
`
	if err := os.WriteFile(filepath.Join(dir, ".covgap.yaml"), []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, _, err := LoadConfig("", nil)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if len(cfg.Check.TestCommand) != 4 || cfg.Check.TestCommand[0] != "pnpm" {
		t.Errorf("test command = %v", cfg.Check.TestCommand)
	}
	if cfg.Check.Format != "json" {
		t.Errorf("format = %q", cfg.Check.Format)
	}
	if len(cfg.Check.Exclude) != 1 {
		t.Errorf("exclude = %v", cfg.Check.Exclude)
	}
	// 未配置的项保持默认值
	if cfg.Check.ReportPath != "coverage/coverage-final.json" {
		t.Errorf("report path = %q", cfg.Check.ReportPath)
	}
}

func TestLoadConfig_Env(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("HOME", t.TempDir())
	t.Setenv("COVGAP_CHECK_REPORT_PATH", "out/cov.json")

	cfg, _, err := LoadConfig("", nil)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Check.ReportPath != "out/cov.json" {
		t.Errorf("report path = %q", cfg.Check.ReportPath)
	}
}

func TestLoadConfig_Bind(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("HOME", t.TempDir())

	cfg, v, err := LoadConfig("", func(v *viper.Viper) error {
		v.Set("check.skip_tests", true)
		return nil
	})
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if !cfg.Check.SkipTests {
		t.Errorf("bound value should win over defaults: %+v", cfg.Check)
	}
	if v.ConfigFileUsed() != "" {
		t.Errorf("no config file expected, got %q", v.ConfigFileUsed())
	}

	wantErr := errors.New("bind failed")
	if _, _, err := LoadConfig("", func(*viper.Viper) error { return wantErr }); !errors.Is(err, wantErr) {
		t.Errorf("bind error should be returned, got %v", err)
	}
}

func TestLoadConfig_InvalidFormat(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "covgap.toml")
	if err := os.WriteFile(path, []byte("[check]\nformat = \"xml\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, _, err := LoadConfig(path, nil); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestParseOutputFormat(t *testing.T) {
	cases := map[string]OutputFormat{"": FormatText, "TXT": FormatText, "table": FormatTable, "yml": FormatYAML, "json": FormatJSON, "toml": FormatTOML}
	for in, want := range cases {
		got, err := ParseOutputFormat(in)
		if err != nil || got != want {
			t.Fatalf("%q => %q, %v want %q", in, got, err, want)
		}
	}
	if _, err := ParseOutputFormat("xml"); err == nil {
		t.Fatal("expected error")
	}
}

func TestOutputData(t *testing.T) {
	data := map[string]any{"folder": "src", "files": []string{"a.ts"}}

	var buf bytes.Buffer
	if err := OutputData(data, FormatJSON, &buf); err != nil {
		t.Fatalf("json: %v", err)
	}
	if !strings.Contains(buf.String(), `"folder": "src"`) {
		t.Errorf("json output = %q", buf.String())
	}

	buf.Reset()
	if err := OutputData(data, FormatYAML, &buf); err != nil {
		t.Fatalf("yaml: %v", err)
	}
	if !strings.Contains(buf.String(), "folder: src") {
		t.Errorf("yaml output = %q", buf.String())
	}

	buf.Reset()
	if err := OutputData(data, FormatTOML, &buf); err != nil {
		t.Fatalf("toml: %v", err)
	}
	if !strings.Contains(buf.String(), "folder = 'src'") {
		t.Errorf("toml output = %q", buf.String())
	}

	if err := OutputData(data, FormatText, &buf); err == nil {
		t.Error("text is not a structured format")
	}
}
