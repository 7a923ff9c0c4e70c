// internal/config/config.go
package config

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v2"

	"github.com/NivBraz/funcbox/pkg/compute"
)

// Server modes for the toy HTTP handler.
const (
	ModePodIP    = "podip"
	ModeIfconfig = "ifconfig"
	ModeFib      = "fib"
)

// DefaultFibN is used when server.fibN is absent from the file.
const DefaultFibN = 30

type Config struct {
	Logging        Logging        `yaml:"logging"`
	RateLimit      RateLimit      `yaml:"rateLimit"`
	Concurrency    int            `yaml:"concurrency"`
	HTTPClient     HTTPClient     `yaml:"httpClient"`
	Output         Output         `yaml:"output"`
	WordProcessing WordProcessing `yaml:"wordProcessing"`
	Sources        Sources        `yaml:"sources"`
	Server         Server         `yaml:"server"`
	Monitor        Monitor        `yaml:"monitor"`
	Gateway        Gateway        `yaml:"gateway"`
}

type Logging struct {
	Level       string `yaml:"level"`
	Development bool   `yaml:"development"`
}

type RateLimit struct {
	RequestsPerSecond int `yaml:"requestsPerSecond"`
	Burst             int `yaml:"burst"`
}

type HTTPClient struct {
	Timeout    int    `yaml:"timeout"`
	MaxRetries int    `yaml:"maxRetries"`
	RetryDelay int    `yaml:"retryDelay"`
	UserAgent  string `yaml:"userAgent"`
}

type Output struct {
	TopWordsCount int  `yaml:"topWordsCount"`
	IncludeStats  bool `yaml:"includeStats"`
	PrettyPrint   bool `yaml:"prettyPrint"`
}

type WordProcessing struct {
	MinWordLength int `yaml:"minWordLength"`
	// WordBank is an optional path or URL of a word list; only words in it are counted.
	WordBank string `yaml:"wordBank"`
}

type Sources struct {
	File string `yaml:"file"`
	// Populated from File
	List []string `yaml:"-"`
}

type Server struct {
	Addr            string `yaml:"addr"`
	Mode            string `yaml:"mode"`
	PodIPEnv        string `yaml:"podIPEnv"`
	FibN            int    `yaml:"fibN"`
	IfconfigCommand string `yaml:"ifconfigCommand"`
}

type Monitor struct {
	Addr           string  `yaml:"addr"`
	MinProcessTime float64 `yaml:"minProcessTime"`
	MaxProcessTime float64 `yaml:"maxProcessTime"`
	MinTemperature float64 `yaml:"minTemperature"`
	MaxTemperature float64 `yaml:"maxTemperature"`
}

type Gateway struct {
	Addr              string `yaml:"addr"`
	FunctionTimeout   int    `yaml:"functionTimeout"`
	RequestsPerSecond int    `yaml:"requestsPerSecond"`
	Burst             int    `yaml:"burst"`
}

// FunctionTimeoutDuration is the per-invocation timeout.
func (g Gateway) FunctionTimeoutDuration() time.Duration {
	return time.Duration(g.FunctionTimeout) * time.Second
}

// Default returns a configuration with every default applied.
func Default() *Config {
	cfg := Config{Server: Server{FibN: DefaultFibN}}
	setDefaults(&cfg)
	return &cfg
}

// Load reads and parses the configuration. An empty path yields the defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("error opening config file: %w", err)
	}
	defer f.Close()

	// Absent keys keep their pre-decode value, so an explicit fibN: 0 survives.
	cfg := Config{Server: Server{FibN: DefaultFibN}}
	decoder := yaml.NewDecoder(f)
	if err := decoder.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("error decoding config: %w", err)
	}

	if cfg.Sources.File != "" {
		sources, err := LoadSourcesFile(cfg.Sources.File)
		if err != nil {
			return nil, fmt.Errorf("error loading sources from file: %w", err)
		}
		cfg.Sources.List = sources
	}

	setDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// LoadSourcesFile reads one source per line, skipping blanks and # comments
func LoadSourcesFile(filepath string) ([]string, error) {
	file, err := os.Open(filepath)
	if err != nil {
		return nil, fmt.Errorf("error opening sources file: %w", err)
	}
	defer file.Close()

	var sources []string
	scanner := bufio.NewScanner(file)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" && !strings.HasPrefix(line, "#") {
			sources = append(sources, line)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading sources file: %w", err)
	}

	if len(sources) == 0 {
		return nil, fmt.Errorf("no sources found in file %s", filepath)
	}

	return sources, nil
}

// setDefaults sets default values for configuration
func setDefaults(cfg *Config) {
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.RateLimit.RequestsPerSecond == 0 {
		cfg.RateLimit.RequestsPerSecond = 5
	}
	if cfg.RateLimit.Burst == 0 {
		cfg.RateLimit.Burst = 10
	}
	if cfg.Concurrency == 0 {
		cfg.Concurrency = 4
	}
	if cfg.HTTPClient.Timeout == 0 {
		cfg.HTTPClient.Timeout = 30
	}
	if cfg.HTTPClient.MaxRetries == 0 {
		cfg.HTTPClient.MaxRetries = 3
	}
	if cfg.HTTPClient.RetryDelay == 0 {
		cfg.HTTPClient.RetryDelay = 1
	}
	if cfg.WordProcessing.MinWordLength == 0 {
		cfg.WordProcessing.MinWordLength = 1
	}
	if cfg.Output.TopWordsCount == 0 {
		cfg.Output.TopWordsCount = 10
	}

	if cfg.Server.Addr == "" {
		cfg.Server.Addr = ":7080"
	}
	if cfg.Server.Mode == "" {
		cfg.Server.Mode = ModePodIP
	}
	if cfg.Server.PodIPEnv == "" {
		cfg.Server.PodIPEnv = "POD_IP"
	}
	if cfg.Server.IfconfigCommand == "" {
		cfg.Server.IfconfigCommand = "ifconfig"
	}

	if cfg.Monitor.Addr == "" {
		cfg.Monitor.Addr = ":9290"
	}
	if cfg.Monitor.MinProcessTime == 0 && cfg.Monitor.MaxProcessTime == 0 {
		cfg.Monitor.MinProcessTime = 0.1
		cfg.Monitor.MaxProcessTime = 2.0
	}
	if cfg.Monitor.MinTemperature == 0 && cfg.Monitor.MaxTemperature == 0 {
		cfg.Monitor.MinTemperature = 20.0
		cfg.Monitor.MaxTemperature = 30.0
	}

	if cfg.Gateway.Addr == "" {
		cfg.Gateway.Addr = ":7001"
	}
	if cfg.Gateway.FunctionTimeout == 0 {
		cfg.Gateway.FunctionTimeout = 30
	}
	if cfg.Gateway.RequestsPerSecond == 0 {
		cfg.Gateway.RequestsPerSecond = 20
	}
	if cfg.Gateway.Burst == 0 {
		cfg.Gateway.Burst = 40
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.RateLimit.RequestsPerSecond <= 0 {
		return fmt.Errorf("requestsPerSecond must be positive")
	}
	if c.RateLimit.Burst <= 0 {
		return fmt.Errorf("burst must be positive")
	}
	if c.Concurrency <= 0 {
		return fmt.Errorf("concurrency must be positive")
	}
	if c.WordProcessing.MinWordLength < 0 {
		return fmt.Errorf("minWordLength must not be negative")
	}

	switch c.Server.Mode {
	case ModePodIP, ModeIfconfig, ModeFib:
	default:
		return fmt.Errorf("unknown server mode %q", c.Server.Mode)
	}
	if c.Server.Addr == "" || c.Monitor.Addr == "" || c.Gateway.Addr == "" {
		return fmt.Errorf("listen addresses must not be empty")
	}
	if c.Server.FibN < 0 || c.Server.FibN > compute.MaxFibonacci {
		return fmt.Errorf("fibN must be in 0-%d, got %d", compute.MaxFibonacci, c.Server.FibN)
	}

	if c.Monitor.MinProcessTime < 0 || c.Monitor.MaxProcessTime < c.Monitor.MinProcessTime {
		return fmt.Errorf("invalid monitor process time range [%v, %v]", c.Monitor.MinProcessTime, c.Monitor.MaxProcessTime)
	}
	if c.Monitor.MaxTemperature < c.Monitor.MinTemperature {
		return fmt.Errorf("invalid monitor temperature range [%v, %v]", c.Monitor.MinTemperature, c.Monitor.MaxTemperature)
	}

	if c.Gateway.FunctionTimeout <= 0 {
		return fmt.Errorf("functionTimeout must be positive")
	}
	if c.Gateway.RequestsPerSecond <= 0 || c.Gateway.Burst <= 0 {
		return fmt.Errorf("gateway rate limit must be positive")
	}
	return nil
}
