package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad(t *testing.T) {
	dir := t.TempDir()

	sourcesPath := filepath.Join(dir, "sources")
	sourcesContent := `# local and remote sources
testdata/article.txt

https://example.com/article
`
	if err := os.WriteFile(sourcesPath, []byte(sourcesContent), 0644); err != nil {
		t.Fatalf("Failed to create test sources file: %v", err)
	}

	content := `logging:
  level: debug
rateLimit:
  requestsPerSecond: 4
  burst: 4
concurrency: 2
sources:
  file: "` + sourcesPath + `"
httpClient:
  timeout: 10
  userAgent: "funcbox-test"
output:
  topWordsCount: 5
  includeStats: true
wordProcessing:
  minWordLength: 3
server:
  mode: fib
  fibN: 20
monitor:
  addr: ":9999"
gateway:
  functionTimeout: 5`

	configPath := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to create test config file: %v", err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Logging.Level != "debug" {
		t.Errorf("Expected Logging.Level = debug, got %s", cfg.Logging.Level)
	}
	if cfg.RateLimit.RequestsPerSecond != 4 {
		t.Errorf("Expected RequestsPerSecond = 4, got %d", cfg.RateLimit.RequestsPerSecond)
	}
	if cfg.Concurrency != 2 {
		t.Errorf("Expected Concurrency = 2, got %d", cfg.Concurrency)
	}
	if len(cfg.Sources.List) != 2 {
		t.Errorf("Expected 2 sources, got %d", len(cfg.Sources.List))
	}
	if cfg.Server.Mode != ModeFib || cfg.Server.FibN != 20 {
		t.Errorf("Expected fib mode with n=20, got %s/%d", cfg.Server.Mode, cfg.Server.FibN)
	}
	// Unset fields fall back to defaults
	if cfg.Server.Addr != ":7080" {
		t.Errorf("Expected default server addr :7080, got %s", cfg.Server.Addr)
	}
	if cfg.Monitor.Addr != ":9999" {
		t.Errorf("Expected monitor addr :9999, got %s", cfg.Monitor.Addr)
	}
	if cfg.Monitor.MaxProcessTime != 2.0 {
		t.Errorf("Expected default MaxProcessTime 2.0, got %v", cfg.Monitor.MaxProcessTime)
	}
	if got := cfg.Gateway.FunctionTimeoutDuration(); got != 5*time.Second {
		t.Errorf("Expected function timeout 5s, got %v", got)
	}
}

func TestLoadEmptyPath(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") error = %v", err)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config is invalid: %v", err)
	}
	if cfg.Server.PodIPEnv != "POD_IP" {
		t.Errorf("Expected PodIPEnv = POD_IP, got %s", cfg.Server.PodIPEnv)
	}
	if cfg.Gateway.Addr != ":7001" {
		t.Errorf("Expected gateway addr :7001, got %s", cfg.Gateway.Addr)
	}
}

func TestLoadFibN(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    int
		wantErr bool
	}{
		{name: "absent uses default", content: "server:\n  mode: fib\n", want: DefaultFibN},
		{name: "explicit zero kept", content: "server:\n  mode: fib\n  fibN: 0\n", want: 0},
		{name: "too large rejected", content: "server:\n  mode: fib\n  fibN: 90\n", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			if err := os.WriteFile(path, []byte(tt.content), 0644); err != nil {
				t.Fatal(err)
			}
			cfg, err := Load(path)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Load() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && cfg.Server.FibN != tt.want {
				t.Errorf("FibN = %d, want %d", cfg.Server.FibN, tt.want)
			}
		})
	}
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := Load(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("Expected error for missing config file")
	}

	badMode := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(badMode, []byte("server:\n  mode: telnet\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(badMode); err == nil {
		t.Error("Expected error for unknown server mode")
	}

	emptySources := filepath.Join(dir, "empty-sources")
	if err := os.WriteFile(emptySources, []byte("# nothing here\n\n"), 0644); err != nil {
		t.Fatal(err)
	}
	withSources := filepath.Join(dir, "sources.yaml")
	if err := os.WriteFile(withSources, []byte("sources:\n  file: "+emptySources+"\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(withSources); err == nil {
		t.Error("Expected error for empty sources file")
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr bool
	}{
		{
			name:    "valid config",
			modify:  func(c *Config) {},
			wantErr: false,
		},
		{
			name:    "invalid rate limit",
			modify:  func(c *Config) { c.RateLimit.RequestsPerSecond = 0 },
			wantErr: true,
		},
		{
			name:    "invalid concurrency",
			modify:  func(c *Config) { c.Concurrency = -1 },
			wantErr: true,
		},
		{
			name:    "unknown mode",
			modify:  func(c *Config) { c.Server.Mode = "echo" },
			wantErr: true,
		},
		{
			name:    "empty monitor addr",
			modify:  func(c *Config) { c.Monitor.Addr = "" },
			wantErr: true,
		},
		{
			name: "inverted process range",
			modify: func(c *Config) {
				c.Monitor.MinProcessTime = 3
				c.Monitor.MaxProcessTime = 1
			},
			wantErr: true,
		},
		{
			name: "inverted temperature range",
			modify: func(c *Config) {
				c.Monitor.MinTemperature = 40
				c.Monitor.MaxTemperature = 30
			},
			wantErr: true,
		},
		{
			name:    "fibN zero",
			modify:  func(c *Config) { c.Server.FibN = 0 },
			wantErr: false,
		},
		{
			name:    "fibN too large",
			modify:  func(c *Config) { c.Server.FibN = 90 },
			wantErr: true,
		},
		{
			name:    "fibN negative",
			modify:  func(c *Config) { c.Server.FibN = -1 },
			wantErr: true,
		},
		{
			name:    "zero function timeout",
			modify:  func(c *Config) { c.Gateway.FunctionTimeout = 0 },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
