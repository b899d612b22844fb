package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// ConsoleConfig is the configuration of the operator console
type ConsoleConfig struct {
	// APIURL is the backend every resource client talks to
	APIURL string `mapstructure:"api_url"`
	Host   string `mapstructure:"host"`
	Port   int    `mapstructure:"port"`
	// PublicImageBase is where browsers fetch pizza images. Defaults to APIURL.
	PublicImageBase string `mapstructure:"public_image_base"`
	// OrphanSweepInterval is how often unreclaimed uploads are retried. Zero disables the sweep.
	OrphanSweepInterval time.Duration `mapstructure:"orphan_sweep_interval"`
	LogLevel            string        `mapstructure:"log_level"`
}

// Addr returns the listen address of the web console
func (c ConsoleConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// ImageBase returns the base URL pizza images are served from
func (c ConsoleConfig) ImageBase() string {
	if c.PublicImageBase != "" {
		return c.PublicImageBase
	}
	return c.APIURL
}

// NewConsoleViper returns a viper instance with the console defaults, reading
// PIZZA_CONSOLE_* environment variables.
func NewConsoleViper() *viper.Viper {
	v := viper.New()
	v.SetDefault("api_url", "http://localhost:9002")
	v.SetDefault("host", "localhost")
	v.SetDefault("port", 8080)
	v.SetDefault("public_image_base", "")
	v.SetDefault("orphan_sweep_interval", "5m")
	v.SetDefault("log_level", "info")

	v.SetEnvPrefix("PIZZA_CONSOLE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	return v
}

// LoadConsoleConfig reads the optional config file into v and decodes it.
// An empty file path searches pizza-console.yaml in the working directory.
// Environment variables take precedence over the file.
func LoadConsoleConfig(v *viper.Viper, file string) (*ConsoleConfig, error) {
	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName("pizza-console")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading console config: %w", err)
		}
		log.Debug("No pizza-console.yaml found, using defaults and environment")
	}

	var cfg ConsoleConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding console config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	log.WithField("api_url", cfg.APIURL).Info("Console configuration loaded")
	return &cfg, nil
}

func (c ConsoleConfig) validate() error {
	parsed, err := url.ParseRequestURI(c.APIURL)
	if err != nil || parsed.Host == "" {
		return fmt.Errorf("invalid api_url %q", c.APIURL)
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Port)
	}
	if c.OrphanSweepInterval < 0 {
		return fmt.Errorf("invalid orphan_sweep_interval %s", c.OrphanSweepInterval)
	}
	return nil
}
