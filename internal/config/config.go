package config

import (
	"fmt"
	"strings"
	"time"
)

// Default configuration values
const (
	DefaultLocalRPCURL    = "http://localhost:8080"
	DefaultCheckInterval  = 10 * time.Second
	DefaultMaxRetries     = 3
	DefaultRetryDelay     = 1 * time.Second
	DefaultRequestTimeout = 5 * time.Second
	DefaultWindowSize     = 20
	DefaultMetricsPort    = 9090
	DefaultMetricsPath    = "/metrics"
	DefaultAPIPort        = 8081
	DefaultAPIHost        = "0.0.0.0"
	DefaultTimeFormatLogs = "kitchen"
	MinCheckInterval      = 1 * time.Second
)

// Config holds all configuration for syncvisor
type Config struct {
	// Local node
	LocalRPCURL string `mapstructure:"local_rpc_url"`

	// Remote sources
	RemoteRPCURL   string `mapstructure:"remote_rpc_url"`
	ExplorerAPIURL string `mapstructure:"explorer_api_url"`
	ExplorerAPIKey string `mapstructure:"explorer_api_key"`

	// Poll loop
	CheckInterval  time.Duration `mapstructure:"check_interval"`
	MaxRetries     int           `mapstructure:"max_retries"`
	RetryDelay     time.Duration `mapstructure:"retry_delay"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`

	// Proven height search
	WindowSize int64 `mapstructure:"window_size"`

	// Metrics exporter
	MetricsEnabled bool   `mapstructure:"metrics_enabled"`
	MetricsPort    int    `mapstructure:"metrics_port"`
	MetricsPath    string `mapstructure:"metrics_path"`

	// Status API
	APIEnabled     bool     `mapstructure:"api_enabled"`
	APIPort        int      `mapstructure:"api_port"`
	APIHost        string   `mapstructure:"api_host"`
	APIKey         string   `mapstructure:"api_key"`
	APICORSOrigins []string `mapstructure:"api_cors_origins"`

	// Logging
	Debug          bool   `mapstructure:"debug"`
	DisableLogs    bool   `mapstructure:"disable_logs"`
	ColorLogs      bool   `mapstructure:"color_logs"`
	TimeFormatLogs string `mapstructure:"timeformat_logs"`
}

// DefaultConfig returns a Config with default values
func DefaultConfig() *Config {
	return &Config{
		LocalRPCURL:    DefaultLocalRPCURL,
		CheckInterval:  DefaultCheckInterval,
		MaxRetries:     DefaultMaxRetries,
		RetryDelay:     DefaultRetryDelay,
		RequestTimeout: DefaultRequestTimeout,
		WindowSize:     DefaultWindowSize,
		MetricsPort:    DefaultMetricsPort,
		MetricsPath:    DefaultMetricsPath,
		APIPort:        DefaultAPIPort,
		APIHost:        DefaultAPIHost,
		APICORSOrigins: []string{"*"},
		ColorLogs:      true,
		TimeFormatLogs: DefaultTimeFormatLogs,
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.LocalRPCURL == "" {
		return fmt.Errorf("local RPC URL not set")
	}
	if c.RemoteRPCURL == "" && c.ExplorerAPIURL == "" {
		return fmt.Errorf("no remote source configured: set remote_rpc_url or explorer_api_url")
	}
	for name, url := range map[string]string{
		"local_rpc_url":    c.LocalRPCURL,
		"remote_rpc_url":   c.RemoteRPCURL,
		"explorer_api_url": c.ExplorerAPIURL,
	} {
		if url == "" {
			continue
		}
		if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
			return fmt.Errorf("%s must be an http(s) URL, got %q", name, url)
		}
	}
	if c.CheckInterval < MinCheckInterval {
		return fmt.Errorf("check interval too short (minimum %v)", MinCheckInterval)
	}
	if c.MaxRetries < 1 {
		return fmt.Errorf("max retries must be at least 1")
	}
	if c.WindowSize < 1 {
		return fmt.Errorf("window size must be at least 1")
	}
	return nil
}
