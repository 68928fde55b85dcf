// Package config loads the YAML configuration file and applies environment
// overrides to produce the settings a Notion client is built from.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"gopkg.in/yaml.v3"
)

// Environment variables that override the file.
const (
	EnvToken     = "NOTION_TOKEN"
	EnvAPIURL    = "NOTION_API_URL"
	EnvVersion   = "NOTION_VERSION"
	EnvWorkspace = "NOTION_WORKSPACE"
)

// Config is the on-disk configuration.
type Config struct {
	// Output is the default output format (json, yaml, text).
	Output string `yaml:"output,omitempty"`
	// Color is the default color mode (auto, always, never).
	Color string `yaml:"color,omitempty"`
	// LogFormat selects the slog handler (text, json).
	LogFormat string `yaml:"log_format,omitempty"`

	DefaultWorkspace string               `yaml:"default_workspace,omitempty"`
	Workspaces       map[string]Workspace `yaml:"workspaces,omitempty"`
}

// Workspace holds per-integration connection settings.
type Workspace struct {
	// TokenSource is "keyring", "env:VAR_NAME", or a literal token.
	TokenSource   string `yaml:"token_source,omitempty"`
	APIURL        string `yaml:"api_url,omitempty"`
	NotionVersion string `yaml:"notion_version,omitempty"`
	// Timeout is a Go duration string, e.g. "30s".
	Timeout string `yaml:"timeout,omitempty"`
}

// Validate checks enumerated settings and every workspace.
func (c *Config) Validate() error {
	err := validation.ValidateStruct(c,
		validation.Field(&c.Output, validation.In("json", "yaml", "text")),
		validation.Field(&c.Color, validation.In("auto", "always", "never")),
		validation.Field(&c.LogFormat, validation.In("text", "json")),
	)
	if err != nil {
		return err
	}
	if c.DefaultWorkspace != "" {
		if _, ok := c.Workspaces[c.DefaultWorkspace]; !ok {
			return fmt.Errorf("default_workspace %q is not defined", c.DefaultWorkspace)
		}
	}
	for _, name := range c.WorkspaceNames() {
		if err := c.Workspaces[name].Validate(); err != nil {
			return fmt.Errorf("workspace %q: %w", name, err)
		}
	}
	return nil
}

// Validate checks the workspace URL and timeout.
func (w Workspace) Validate() error {
	return validation.ValidateStruct(&w,
		validation.Field(&w.APIURL, is.URL),
		validation.Field(&w.Timeout, validation.By(func(any) error {
			if w.Timeout == "" {
				return nil
			}
			d, err := time.ParseDuration(w.Timeout)
			if err != nil || d <= 0 {
				return fmt.Errorf("must be a positive duration")
			}
			return nil
		})),
	)
}

var pathFunc = defaultPath

// SetPathFunc overrides the config path lookup and returns the previous one.
func SetPathFunc(fn func() (string, error)) func() (string, error) {
	orig := pathFunc
	pathFunc = fn
	return orig
}

func defaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "notion-sdk-go", "config.yaml"), nil
}

// Path returns ~/.config/notion-sdk-go/config.yaml.
func Path() (string, error) {
	return pathFunc()
}

// Load reads the default config file. A missing file yields an empty config.
func Load() (*Config, error) {
	path, err := Path()
	if err != nil {
		return &Config{}, nil
	}
	return LoadFromPath(path)
}

// LoadFromPath reads and validates the file at path.
func LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &Config{}, nil
	}
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("invalid config file: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}
	return &cfg, nil
}

// Save writes the config to the default path.
func (c *Config) Save() error {
	path, err := Path()
	if err != nil {
		return err
	}
	return c.SaveToPath(path)
}

// SaveToPath writes the config with owner-only permissions.
func (c *Config) SaveToPath(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}

// SetWorkspace adds or replaces a workspace. The first workspace becomes the default.
func (c *Config) SetWorkspace(name string, ws Workspace) error {
	if name == "" {
		return fmt.Errorf("workspace name cannot be empty")
	}
	if err := ws.Validate(); err != nil {
		return err
	}
	if c.Workspaces == nil {
		c.Workspaces = make(map[string]Workspace)
	}
	if len(c.Workspaces) == 0 {
		c.DefaultWorkspace = name
	}
	c.Workspaces[name] = ws
	return nil
}

// RemoveWorkspace deletes a workspace. If it was the default and exactly one
// workspace remains, that one becomes the default.
func (c *Config) RemoveWorkspace(name string) error {
	if _, ok := c.Workspaces[name]; !ok {
		return fmt.Errorf("workspace %q not found", name)
	}
	delete(c.Workspaces, name)
	if c.DefaultWorkspace == name {
		c.DefaultWorkspace = ""
		if len(c.Workspaces) == 1 {
			c.DefaultWorkspace = c.WorkspaceNames()[0]
		}
	}
	return nil
}

// WorkspaceNames returns the workspace names sorted.
func (c *Config) WorkspaceNames() []string {
	names := make([]string, 0, len(c.Workspaces))
	for name := range c.Workspaces {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Settings are the effective connection settings after overrides.
type Settings struct {
	Workspace     string
	TokenSource   string
	APIURL        string
	NotionVersion string
	Timeout       time.Duration
}

// Resolve picks a workspace and layers environment overrides on top of it.
// name wins over NOTION_WORKSPACE, which wins over default_workspace. With no
// name and a single workspace, that workspace is used. A token in
// NOTION_TOKEN replaces the workspace's token source.
func (c *Config) Resolve(name string) (Settings, error) {
	if name == "" {
		name = os.Getenv(EnvWorkspace)
	}
	if name == "" {
		name = c.DefaultWorkspace
	}
	if name == "" && len(c.Workspaces) == 1 {
		name = c.WorkspaceNames()[0]
	}

	s := Settings{Workspace: name}
	if name != "" {
		ws, ok := c.Workspaces[name]
		if !ok {
			return Settings{}, fmt.Errorf("workspace %q not found", name)
		}
		s.TokenSource, s.APIURL, s.NotionVersion = ws.TokenSource, ws.APIURL, ws.NotionVersion
		if ws.Timeout != "" {
			d, err := time.ParseDuration(ws.Timeout)
			if err != nil {
				return Settings{}, fmt.Errorf("workspace %q: invalid timeout: %w", name, err)
			}
			s.Timeout = d
		}
	}

	if os.Getenv(EnvToken) != "" {
		s.TokenSource = "env:" + EnvToken
	}
	if v := os.Getenv(EnvAPIURL); v != "" {
		s.APIURL = v
	}
	if v := os.Getenv(EnvVersion); v != "" {
		s.NotionVersion = v
	}
	return s, nil
}
