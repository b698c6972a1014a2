package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/ntwkui/ntwk/pkg/config"
	"github.com/ntwkui/ntwk/pkg/errors"
)

func TestRootCommandSubcommands(t *testing.T) {
	root := New(&bytes.Buffer{}, LogInfo).RootCommand()

	want := []string{"tui", "render", "serve", "config", "completion"}
	for _, name := range want {
		t.Run(name, func(t *testing.T) {
			cmd, _, err := root.Find([]string{name})
			if err != nil || cmd.Name() != name {
				t.Errorf("Find(%q) = %v, %v", name, cmd, err)
			}
		})
	}
}

func TestLoadConfigFlag(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	data := "[canvas]\nwidth = 800.0\n\n[log]\nlevel = \"debug\"\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	c := New(&bytes.Buffer{}, LogInfo)
	root := c.RootCommand()
	root.SetArgs([]string{"--config", path, "config", "path"})
	if err := root.Execute(); err != nil {
		t.Fatal(err)
	}

	if c.ConfigPath != path {
		t.Errorf("ConfigPath = %q, want %q", c.ConfigPath, path)
	}
	if c.Config.Canvas.Width != 800 || c.Config.Canvas.Height != 600 {
		t.Errorf("canvas = %gx%g, want 800x600", c.Config.Canvas.Width, c.Config.Canvas.Height)
	}
	if got := c.Logger.GetLevel(); got != log.DebugLevel {
		t.Errorf("level = %v, want debug from the file", got)
	}
}

func TestLoadConfigVerboseWins(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	_ = os.WriteFile(path, []byte("[log]\nlevel = \"error\"\n"), 0o644)

	c := New(&bytes.Buffer{}, LogInfo)
	root := c.RootCommand()
	root.SetArgs([]string{"-v", "--config", path, "config", "path"})
	if err := root.Execute(); err != nil {
		t.Fatal(err)
	}
	if !c.Verbose() || c.Logger.GetLevel() != log.DebugLevel {
		t.Errorf("verbose = %v, level = %v, want debug", c.Verbose(), c.Logger.GetLevel())
	}
}

func TestLoadConfigErrors(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.toml")
	_ = os.WriteFile(bad, []byte("[canvas]\nwidht = 10.0\n"), 0o644)

	tests := []struct {
		name string
		path string
		code errors.Code
	}{
		{"missing", filepath.Join(dir, "missing.toml"), errors.ErrCodeFileNotFound},
		{"unknown key", bad, errors.ErrCodeInvalidConfig},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New(&bytes.Buffer{}, LogInfo)
			c.configFlag = tt.path
			if err := c.loadConfig(); !errors.Is(err, tt.code) {
				t.Errorf("loadConfig() error = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestConfigTable(t *testing.T) {
	out := configTable(config.DefaultConfig())
	for _, want := range []string{"Key", "Value", "canvas.width", "500", "log.level", "info", "server.addr"} {
		if !strings.Contains(out, want) {
			t.Errorf("table missing %q:\n%s", want, out)
		}
	}
}

func TestFormatStats(t *testing.T) {
	tests := []struct {
		nodes, edges int
		want         string
	}{
		{0, 0, "0 nodes · 0 edges"},
		{1, 1, "1 node · 1 edge"},
		{3, 2, "3 nodes · 2 edges"},
	}
	for _, tt := range tests {
		if got := formatStats(tt.nodes, tt.edges); got != tt.want {
			t.Errorf("formatStats(%d, %d) = %q, want %q", tt.nodes, tt.edges, got, tt.want)
		}
	}
}

// captureStdout redirects status output for the duration of the test.
func captureStdout(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	old := stdout
	stdout = &buf
	t.Cleanup(func() { stdout = old })
	return &buf
}

func TestConfigShow(t *testing.T) {
	out := captureStdout(t)

	root := New(&bytes.Buffer{}, LogInfo).RootCommand()
	root.SetArgs([]string{"--config", writeConfig(t, "[server]\naddr = \":9000\"\n"), "config", "show", "--toml"})
	if err := root.Execute(); err != nil {
		t.Fatal(err)
	}

	cfg, err := config.Parse(out.Bytes())
	if err != nil {
		t.Fatalf("config show --toml is not a valid config: %v\n%s", err, out)
	}
	if cfg.Server.Addr != ":9000" {
		t.Errorf("addr = %q, want :9000", cfg.Server.Addr)
	}
}

func TestCompletion(t *testing.T) {
	for _, shell := range []string{"bash", "zsh", "fish", "powershell"} {
		t.Run(shell, func(t *testing.T) {
			var out bytes.Buffer
			root := New(&bytes.Buffer{}, LogInfo).RootCommand()
			root.SetOut(&out)
			root.SetArgs([]string{"--config", writeConfig(t, ""), "completion", shell})
			if err := root.Execute(); err != nil {
				t.Fatal(err)
			}
			if !strings.Contains(out.String(), "ntwk") {
				t.Errorf("%s completion does not mention ntwk", shell)
			}
		})
	}
}

func TestStatusOutput(t *testing.T) {
	out := captureStdout(t)

	printSuccess("Rendered %s", "svg")
	printFile("triangle.svg")
	printStats(3, 1)
	printNextStep("Render it", "ntwk render session.toml")

	for _, want := range []string{iconSuccess + " Rendered svg", iconArrow, "triangle.svg", "3 nodes · 1 edge", "ntwk render session.toml"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func writeConfig(t *testing.T, data string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}
