package mcpserver

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the MCP server configuration loaded from mcp.yaml.
type Config struct {
	APIURL   string `yaml:"api_url"`
	SpecPath string `yaml:"spec_path"`
	// Tags limits the exposed operations to those carrying one of these
	// OpenAPI tags. Empty exposes every operation.
	Tags      []string                  `yaml:"tags"`
	Defaults  map[string]MethodDefaults `yaml:"defaults"`
	Overrides map[string]ToolOverride   `yaml:"overrides"`
}

// MethodDefaults defines default MCP annotations for an HTTP method.
type MethodDefaults struct {
	ReadOnly    *bool `yaml:"readonly"`
	Destructive *bool `yaml:"destructive"`
	Idempotent  *bool `yaml:"idempotent"`
}

// ToolOverride allows per-tool customization.
type ToolOverride struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	ReadOnly    *bool  `yaml:"readonly"`
	Destructive *bool  `yaml:"destructive"`
	Idempotent  *bool  `yaml:"idempotent"`
}

// LoadConfig reads and parses the mcp.yaml configuration file. A missing
// file yields the defaults.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return ParseConfig(nil)
	}
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	return ParseConfig(data)
}

// ParseConfig parses mcp.yaml configuration from raw bytes.
func ParseConfig(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse mcp config: %w", err)
	}

	if cfg.APIURL == "" {
		cfg.APIURL = "http://127.0.0.1:8080"
	}
	if cfg.SpecPath == "" {
		cfg.SpecPath = "/docs/openapi.json"
	}
	if cfg.Defaults == nil {
		cfg.Defaults = defaultAnnotations()
	}

	return &cfg, nil
}

func defaultAnnotations() map[string]MethodDefaults {
	t, f := true, false
	return map[string]MethodDefaults{
		"GET":    {ReadOnly: &t, Destructive: &f, Idempotent: &t},
		"POST":   {ReadOnly: &f, Destructive: &f, Idempotent: &f},
		"PUT":    {ReadOnly: &f, Destructive: &f, Idempotent: &t},
		"DELETE": {ReadOnly: &f, Destructive: &t, Idempotent: &t},
	}
}

func (c *Config) exposes(tags []string) bool {
	if len(c.Tags) == 0 {
		return true
	}
	for _, want := range c.Tags {
		for _, tag := range tags {
			if tag == want {
				return true
			}
		}
	}
	return false
}
