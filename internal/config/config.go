// Package config loads dashboard settings from configs/config.yml and
// DASHBOARD_* environment variables.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Fallbacks used when neither the file nor the environment set a value.
const (
	DefaultAPIURL       = "http://localhost:8000"
	DefaultWSURL        = "ws://localhost:8000/ws"
	DefaultPort         = "8080"
	DefaultDBPath       = "app.db"
	DefaultLogLevel     = "info"
	DefaultPollInterval = 5 * time.Second
	DefaultSimPort      = "8000"
	DefaultSimTick      = 1 * time.Second

	envPrefix = "DASHBOARD"
)

// Config holds all dashboard settings.
type Config struct {
	// Backend endpoints
	APIURL string
	WSURL  string // reserved for a push transport; not used by the poller

	// Backend client behaviour
	PollInterval   time.Duration // <=0 disables the periodic loop
	RequestTimeout time.Duration // 0 means no client-side timeout

	// Page markup mounted at startup
	Devices []string

	// Dashboard server
	Port     string
	DBPath   string
	LogLevel string

	Simulator SimulatorConfig
}

// SimulatorConfig configures cmd/chamber-sim.
type SimulatorConfig struct {
	Port     string
	Chambers []string // defaults to Devices
	Tick     time.Duration
}

// Load reads config.yml from the given directories (default "configs").
// A missing file is not an error; defaults and environment still apply.
func Load(paths ...string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	if len(paths) == 0 {
		paths = []string{"configs"}
	}
	for _, p := range paths {
		v.AddConfigPath(p)
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	return fromViper(v), nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("api_url", DefaultAPIURL)
	v.SetDefault("ws_url", DefaultWSURL)
	v.SetDefault("poll.interval", DefaultPollInterval)
	v.SetDefault("backend.request_timeout", time.Duration(0))
	v.SetDefault("devices", []string{})
	v.SetDefault("port", DefaultPort)
	v.SetDefault("db.path", DefaultDBPath)
	v.SetDefault("log.level", DefaultLogLevel)
	v.SetDefault("simulator.port", DefaultSimPort)
	v.SetDefault("simulator.chambers", []string{})
	v.SetDefault("simulator.tick", DefaultSimTick)
}

func fromViper(v *viper.Viper) *Config {
	devices := v.GetStringSlice("devices")
	chambers := v.GetStringSlice("simulator.chambers")
	if len(chambers) == 0 {
		chambers = devices
	}
	tick := v.GetDuration("simulator.tick")
	if tick <= 0 {
		tick = DefaultSimTick
	}
	return &Config{
		APIURL:         orDefault(v.GetString("api_url"), DefaultAPIURL),
		WSURL:          orDefault(v.GetString("ws_url"), DefaultWSURL),
		PollInterval:   v.GetDuration("poll.interval"),
		RequestTimeout: v.GetDuration("backend.request_timeout"),
		Devices:        devices,
		Port:           orDefault(v.GetString("port"), DefaultPort),
		DBPath:         orDefault(v.GetString("db.path"), DefaultDBPath),
		LogLevel:       orDefault(v.GetString("log.level"), DefaultLogLevel),
		Simulator: SimulatorConfig{
			Port:     orDefault(v.GetString("simulator.port"), DefaultSimPort),
			Chambers: chambers,
			Tick:     tick,
		},
	}
}

// orDefault treats an explicitly empty value like an unset one.
func orDefault(s, fallback string) string {
	if strings.TrimSpace(s) == "" {
		return fallback
	}
	return s
}
