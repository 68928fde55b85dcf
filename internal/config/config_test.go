package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{EnvToken, EnvAPIURL, EnvVersion, EnvWorkspace} {
		t.Setenv(k, "")
	}
}

func TestLoadFromPath(t *testing.T) {
	path := writeConfig(t, `
output: yaml
color: never
default_workspace: work
workspaces:
  work:
    token_source: keyring
    notion_version: "2021-05-13"
    timeout: 30s
  lab:
    token_source: env:LAB_TOKEN
    api_url: http://localhost:8080
`)
	cfg, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Output != "yaml" || cfg.Color != "never" {
		t.Errorf("unexpected top level %+v", cfg)
	}
	if got := cfg.WorkspaceNames(); len(got) != 2 || got[0] != "lab" {
		t.Errorf("WorkspaceNames = %v", got)
	}
}

func TestLoadFromPath_Missing(t *testing.T) {
	cfg, err := LoadFromPath(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cfg.Workspaces) != 0 {
		t.Errorf("expected empty config, got %+v", cfg)
	}
}

func TestLoadFromPath_Invalid(t *testing.T) {
	tests := []struct {
		name, body, want string
	}{
		{"yaml", "output: [", "invalid config file"},
		{"output", "output: table", "Output: must be a valid value"},
		{"default", "default_workspace: ghost", `"ghost" is not defined`},
		{"url", "workspaces:\n  w:\n    api_url: not a url", `workspace "w": APIURL`},
		{"timeout", "workspaces:\n  w:\n    timeout: soon", "Timeout: must be a positive duration"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFromPath(writeConfig(t, tt.body))
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("expected error containing %q, got %v", tt.want, err)
			}
		})
	}
}

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := &Config{Output: "json"}
	if err := cfg.SetWorkspace("work", Workspace{TokenSource: "keyring", Timeout: "5s"}); err != nil {
		t.Fatalf("SetWorkspace: %v", err)
	}
	if err := cfg.SaveToPath(path); err != nil {
		t.Fatalf("SaveToPath: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if info.Mode().Perm() != 0o600 {
		t.Errorf("mode = %v", info.Mode().Perm())
	}
	loaded, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("LoadFromPath: %v", err)
	}
	if loaded.DefaultWorkspace != "work" || loaded.Workspaces["work"].Timeout != "5s" {
		t.Errorf("round trip lost data: %+v", loaded)
	}
}

func TestRemoveWorkspace(t *testing.T) {
	cfg := &Config{}
	_ = cfg.SetWorkspace("a", Workspace{})
	_ = cfg.SetWorkspace("b", Workspace{})
	if cfg.DefaultWorkspace != "a" {
		t.Fatalf("first workspace should be default, got %q", cfg.DefaultWorkspace)
	}
	if err := cfg.RemoveWorkspace("a"); err != nil {
		t.Fatalf("RemoveWorkspace: %v", err)
	}
	if cfg.DefaultWorkspace != "b" {
		t.Errorf("expected b to become default, got %q", cfg.DefaultWorkspace)
	}
	if err := cfg.RemoveWorkspace("a"); err == nil {
		t.Error("expected error removing a missing workspace")
	}
}

func TestResolve(t *testing.T) {
	cfg := &Config{
		DefaultWorkspace: "work",
		Workspaces: map[string]Workspace{
			"work": {TokenSource: "keyring", NotionVersion: "2021-05-13", Timeout: "30s"},
			"lab":  {TokenSource: "env:LAB_TOKEN", APIURL: "http://localhost:8080"},
		},
	}

	tests := []struct {
		name string
		arg  string
		env  map[string]string
		want Settings
	}{
		{
			name: "default workspace",
			want: Settings{Workspace: "work", TokenSource: "keyring", NotionVersion: "2021-05-13", Timeout: 30 * time.Second},
		},
		{
			name: "env workspace",
			env:  map[string]string{EnvWorkspace: "lab"},
			want: Settings{Workspace: "lab", TokenSource: "env:LAB_TOKEN", APIURL: "http://localhost:8080"},
		},
		{
			name: "argument beats env",
			arg:  "work",
			env:  map[string]string{EnvWorkspace: "lab"},
			want: Settings{Workspace: "work", TokenSource: "keyring", NotionVersion: "2021-05-13", Timeout: 30 * time.Second},
		},
		{
			name: "env overrides",
			env:  map[string]string{EnvToken: "secret_x", EnvAPIURL: "http://proxy", EnvVersion: "2022-06-28"},
			want: Settings{Workspace: "work", TokenSource: "env:NOTION_TOKEN", APIURL: "http://proxy", NotionVersion: "2022-06-28", Timeout: 30 * time.Second},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			got, err := cfg.Resolve(tt.arg)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("Resolve() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestResolve_NoWorkspace(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvToken, "secret_x")
	got, err := (&Config{}).Resolve("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Workspace != "" || got.TokenSource != "env:NOTION_TOKEN" {
		t.Errorf("unexpected settings %+v", got)
	}
	if _, err := (&Config{}).Resolve("ghost"); err == nil {
		t.Error("expected error for unknown workspace")
	}
}

func TestPath(t *testing.T) {
	orig := SetPathFunc(func() (string, error) { return "/tmp/x/config.yaml", nil })
	defer SetPathFunc(orig)
	if p, _ := Path(); p != "/tmp/x/config.yaml" {
		t.Errorf("Path() = %q", p)
	}
}
