// Package config loads process configuration via viper and builds the
// zap logger the rest of the service uses.
package config

import (
	"fmt"
	"sync"

	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// Config is the full process configuration.
type Config struct {
	Server struct {
		Host string `mapstructure:"host"`
		Port int    `mapstructure:"port"`
	} `mapstructure:"server"`

	Engine struct {
		Admin         string `mapstructure:"admin"`
		BaseDenom     string `mapstructure:"base_denom"`
		QuoteDenom    string `mapstructure:"quote_denom"`
		BaseIncrement uint64 `mapstructure:"base_increment"`
	} `mapstructure:"engine"`

	Store struct {
		Driver   string `mapstructure:"driver"` // "memory" or "bolt"
		BoltPath string `mapstructure:"bolt_path"`
	} `mapstructure:"store"`

	Postgres struct {
		DSN string `mapstructure:"dsn"`
	} `mapstructure:"postgres"`

	NATS struct {
		URL   string `mapstructure:"url"`
		Topic string `mapstructure:"topic"`
	} `mapstructure:"nats"`

	Auth struct {
		JWTSecret     string `mapstructure:"jwt_secret"`
		TokenDuration int    `mapstructure:"token_duration_minutes"`
	} `mapstructure:"auth"`

	RateLimit struct {
		RequestsPerMinute int `mapstructure:"requests_per_minute"`
	} `mapstructure:"rate_limit"`

	Collaborators struct {
		BankURL          string   `mapstructure:"bank_url"`
		HealthAddr       string   `mapstructure:"health_addr"`
		AllowedDenoms    []string `mapstructure:"allowed_denoms"`
		RestrictedDenoms []string `mapstructure:"restricted_denoms"`
		FeeCollector     string   `mapstructure:"fee_collector"`
		FeeBasisPoints   uint64   `mapstructure:"fee_basis_points"`
		MarginFloor      float64  `mapstructure:"margin_floor"`
	} `mapstructure:"collaborators"`

	Monitoring struct {
		PrometheusPort int    `mapstructure:"prometheus_port"`
		LogLevel       string `mapstructure:"log_level"`
	} `mapstructure:"monitoring"`
}

var (
	cfg  *Config
	once sync.Once
)

// Load applies built-in defaults, then configuration from configPath
// (directory), then environment variables prefixed ORDERBOOKD_, each
// source overriding the ones before it.
func Load(configPath string) (*Config, error) {
	var err error

	once.Do(func() {
		cfg = &Config{}
		setDefaults()

		v := viper.New()
		v.SetConfigName("config")
		v.SetConfigType("yaml")

		if configPath != "" {
			v.AddConfigPath(configPath)
		} else {
			v.AddConfigPath(".")
			v.AddConfigPath("./config")
			v.AddConfigPath("/etc/orderbookd")
		}

		v.AutomaticEnv()
		v.SetEnvPrefix("ORDERBOOKD")

		if readErr := v.ReadInConfig(); readErr != nil {
			if _, ok := readErr.(viper.ConfigFileNotFoundError); !ok {
				err = fmt.Errorf("config: read: %w", readErr)
				return
			}
		}

		if unmarshalErr := v.Unmarshal(cfg); unmarshalErr != nil {
			err = fmt.Errorf("config: unmarshal: %w", unmarshalErr)
			return
		}
	})

	return cfg, err
}

func setDefaults() {
	cfg.Server.Host = "0.0.0.0"
	cfg.Server.Port = 8080

	cfg.Engine.BaseDenom = "nhash"
	cfg.Engine.QuoteDenom = "stablecoin"
	cfg.Engine.BaseIncrement = 1_000_000_000

	cfg.Store.Driver = "memory"
	cfg.Store.BoltPath = "orderbook.bolt"

	cfg.Postgres.DSN = "host=localhost user=postgres dbname=orderbook sslmode=disable"

	cfg.NATS.URL = "nats://127.0.0.1:4222"
	cfg.NATS.Topic = "orderbook.matches"

	cfg.Auth.TokenDuration = 60

	cfg.RateLimit.RequestsPerMinute = 300

	cfg.Collaborators.BankURL = "http://127.0.0.1:8081"
	cfg.Collaborators.HealthAddr = "127.0.0.1:50051"
	cfg.Collaborators.AllowedDenoms = []string{"nhash", "stablecoin"}
	cfg.Collaborators.RestrictedDenoms = []string{}
	cfg.Collaborators.FeeCollector = "fee-collector"
	cfg.Collaborators.FeeBasisPoints = 10
	cfg.Collaborators.MarginFloor = 0.2

	cfg.Monitoring.PrometheusPort = 9090
	cfg.Monitoring.LogLevel = "info"
}

// NewLogger builds a zap.Logger for the configured log level.
func NewLogger(c *Config) (*zap.Logger, error) {
	var logger *zap.Logger
	var err error

	switch c.Monitoring.LogLevel {
	case "debug":
		logger, err = zap.NewDevelopment()
	default:
		logger, err = zap.NewProduction()
	}
	if err != nil {
		return nil, fmt.Errorf("config: init logger: %w", err)
	}
	return logger, nil
}
