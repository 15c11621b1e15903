package config

import (
	"fmt"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/syncvisor/syncvisor/pkg/logger"
)

// Manager loads configuration from file and environment and supports
// hot-reload of the config file while the monitor is running.
type Manager struct {
	v      *viper.Viper
	logger *logger.Logger

	mu      sync.RWMutex
	current *Config

	onChange func(*Config)
}

// NewManager creates a configuration manager. path may be empty, in which
// case the default search locations are used and a missing file is not an
// error (defaults plus environment apply).
func NewManager(path string, log *logger.Logger) *Manager {
	v := viper.New()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("syncvisor")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.syncvisor")
	}

	v.SetEnvPrefix("SYNCVISOR")
	v.AutomaticEnv()

	return &Manager{v: v, logger: log}
}

// Load reads the configuration, applying defaults, file values and
// environment overrides in that order.
func (m *Manager) Load() (*Config, error) {
	defaults := DefaultConfig()
	m.v.SetDefault("local_rpc_url", defaults.LocalRPCURL)
	m.v.SetDefault("check_interval", defaults.CheckInterval)
	m.v.SetDefault("max_retries", defaults.MaxRetries)
	m.v.SetDefault("retry_delay", defaults.RetryDelay)
	m.v.SetDefault("request_timeout", defaults.RequestTimeout)
	m.v.SetDefault("window_size", defaults.WindowSize)
	m.v.SetDefault("metrics_port", defaults.MetricsPort)
	m.v.SetDefault("metrics_path", defaults.MetricsPath)
	m.v.SetDefault("api_port", defaults.APIPort)
	m.v.SetDefault("api_host", defaults.APIHost)
	m.v.SetDefault("api_cors_origins", defaults.APICORSOrigins)
	m.v.SetDefault("color_logs", defaults.ColorLogs)
	m.v.SetDefault("timeformat_logs", defaults.TimeFormatLogs)

	if err := m.v.ReadInConfig(); err != nil {
		// A missing file in the search path is fine; an explicit file or a
		// malformed file is not.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	cfg := &Config{}
	if err := m.v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	m.mu.Lock()
	m.current = cfg
	m.mu.Unlock()

	return cfg, nil
}

// Current returns the most recently loaded configuration.
func (m *Manager) Current() *Config {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current
}

// Watch starts watching the config file and invokes onChange with the
// re-read configuration whenever it changes on disk. Invalid updates are
// logged and dropped; the previous configuration stays in effect.
func (m *Manager) Watch(onChange func(*Config)) {
	m.onChange = onChange

	m.v.OnConfigChange(func(e fsnotify.Event) {
		m.logger.Info("config file changed", zap.String("file", e.Name))

		cfg := &Config{}
		if err := m.v.Unmarshal(cfg); err != nil {
			m.logger.Warn("ignoring config update", zap.Error(err))
			return
		}
		if err := cfg.Validate(); err != nil {
			m.logger.Warn("ignoring invalid config update", zap.Error(err))
			return
		}

		m.mu.Lock()
		m.current = cfg
		m.mu.Unlock()

		if m.onChange != nil {
			m.onChange(cfg)
		}
	})

	m.v.WatchConfig()
}
