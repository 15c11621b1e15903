package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// configTemplate mirrors Config with yaml tags, used only to emit a starter
// configuration file for `syncvisor init`.
type configTemplate struct {
	LocalRPCURL    string `yaml:"local_rpc_url"`
	RemoteRPCURL   string `yaml:"remote_rpc_url"`
	ExplorerAPIURL string `yaml:"explorer_api_url"`
	ExplorerAPIKey string `yaml:"explorer_api_key"`
	CheckInterval  string `yaml:"check_interval"`
	MaxRetries     int    `yaml:"max_retries"`
	RetryDelay     string `yaml:"retry_delay"`
	RequestTimeout string `yaml:"request_timeout"`
	WindowSize     int64  `yaml:"window_size"`
	MetricsEnabled bool          `yaml:"metrics_enabled"`
	MetricsPort    int           `yaml:"metrics_port"`
	MetricsPath    string        `yaml:"metrics_path"`
	APIEnabled     bool          `yaml:"api_enabled"`
	APIPort        int           `yaml:"api_port"`
	APIHost        string        `yaml:"api_host"`
	APIKey         string        `yaml:"api_key"`
	ColorLogs      bool          `yaml:"color_logs"`
	TimeFormatLogs string        `yaml:"timeformat_logs"`
}

// WriteDefaultConfig writes a starter YAML config with default values to
// path. It refuses to overwrite an existing file.
func WriteDefaultConfig(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists: %s", path)
	}

	defaults := DefaultConfig()
	tmpl := configTemplate{
		LocalRPCURL:    defaults.LocalRPCURL,
		CheckInterval:  defaults.CheckInterval.String(),
		MaxRetries:     defaults.MaxRetries,
		RetryDelay:     defaults.RetryDelay.String(),
		RequestTimeout: defaults.RequestTimeout.String(),
		WindowSize:     defaults.WindowSize,
		MetricsPort:    defaults.MetricsPort,
		MetricsPath:    defaults.MetricsPath,
		APIPort:        defaults.APIPort,
		APIHost:        defaults.APIHost,
		ColorLogs:      defaults.ColorLogs,
		TimeFormatLogs: defaults.TimeFormatLogs,
	}

	data, err := yaml.Marshal(&tmpl)
	if err != nil {
		return fmt.Errorf("failed to marshal default config: %w", err)
	}

	header := []byte("# syncvisor configuration\n# Set remote_rpc_url or explorer_api_url before starting.\n")
	return os.WriteFile(path, append(header, data...), 0o644)
}
