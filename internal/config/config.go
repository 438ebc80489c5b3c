package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds the full gateway configuration.
type Config struct {
	Server    ServerConfig
	Ledger    LedgerConfig
	Auth      AuthConfig
	Templates TemplateConfig
	Log       LogConfig
}

type ServerConfig struct {
	Host         string
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

func (c *ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// LedgerConfig describes the ledger JSON API and the parties the gateway
// acts for by default.
type LedgerConfig struct {
	// URL is the base URL of the ledger JSON API, without the /v2 suffix.
	URL string
	// OperatorParty is the validator party the gateway acts as when no
	// party is supplied by the caller. It also operates staking pools.
	OperatorParty string
	// DSOParty is the issuer of the native coin. Holdings issued by this
	// party are reported as canton coin.
	DSOParty string
}

// AuthConfig describes the OAuth client-credentials exchange used to obtain
// ledger bearer tokens.
type AuthConfig struct {
	URL          string
	ClientID     string
	ClientSecret string
	Audience     string

	// SafetyMargin is subtracted from the granted token lifetime so a
	// token is refreshed before the ledger would reject it.
	SafetyMargin time.Duration
}

// TemplateConfig holds the fully qualified template identifiers
// (package:Module:Entity) the gateway queries and exercises.
type TemplateConfig struct {
	StakingPool string
	Stake       string
	Holding     string
}

type LogConfig struct {
	Level  string
	Format string
}

// New returns a viper instance with defaults and environment binding set up.
// Flags are bound onto it by the cmd package.
func New() *viper.Viper {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("$HOME/.ledger-gateway")
	v.AddConfigPath(".")

	v.SetEnvPrefix("ALPEND")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 3001)
	v.SetDefault("server.read_timeout", 15*time.Second)
	v.SetDefault("server.write_timeout", 30*time.Second)
	v.SetDefault("auth.safety_margin", time.Minute)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	return v
}

// Load reads configuration from the viper instance. Validation is deferred
// to Validate so client-side commands can run without server settings.
func Load(v *viper.Viper) (*Config, error) {
	if err := v.ReadInConfig(); err != nil {
		// A config file is optional; env and flags may carry everything.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	cfg := &Config{
		Server: ServerConfig{
			Host:         v.GetString("server.host"),
			Port:         v.GetInt("server.port"),
			ReadTimeout:  v.GetDuration("server.read_timeout"),
			WriteTimeout: v.GetDuration("server.write_timeout"),
		},
		Ledger: LedgerConfig{
			URL:           v.GetString("ledger.url"),
			OperatorParty: v.GetString("ledger.operator_party"),
			DSOParty:      v.GetString("ledger.dso_party"),
		},
		Auth: AuthConfig{
			URL:          v.GetString("auth.url"),
			ClientID:     v.GetString("auth.client_id"),
			ClientSecret: v.GetString("auth.client_secret"),
			Audience:     v.GetString("auth.audience"),
			SafetyMargin: v.GetDuration("auth.safety_margin"),
		},
		Templates: TemplateConfig{
			StakingPool: v.GetString("templates.staking_pool"),
			Stake:       v.GetString("templates.stake"),
			Holding:     v.GetString("templates.holding"),
		},
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
		},
	}

	return cfg, nil
}

// Validate checks that everything the server needs to talk to the ledger
// is present.
func (c *Config) Validate() error {
	if c.Ledger.URL == "" {
		return fmt.Errorf("ledger url not set")
	}
	if c.Ledger.OperatorParty == "" {
		return fmt.Errorf("ledger operator party not set")
	}
	if c.Auth.URL == "" {
		return fmt.Errorf("auth url not set")
	}
	if c.Auth.ClientID == "" {
		return fmt.Errorf("auth client id not set")
	}
	if c.Auth.ClientSecret == "" {
		return fmt.Errorf("auth client secret not set")
	}
	if c.Templates.StakingPool == "" {
		return fmt.Errorf("staking pool template not set")
	}
	if c.Templates.Stake == "" {
		return fmt.Errorf("stake template not set")
	}
	if c.Templates.Holding == "" {
		return fmt.Errorf("holding template not set")
	}
	return nil
}
