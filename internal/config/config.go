// Package config manages configuration for the hookbridge receiver and CLI.
// It uses Viper for unified configuration management from files and environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/hookbridge/hookbridge/internal/constants"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Config represents the receiver configuration. It supports loading from a
// YAML file and environment variables; environment variables take precedence.
type Config struct {
	// SigningSecret is the shared secret used to verify request signatures.
	// Either this or SigningSecretParameter must be set unless signature
	// verification is disabled.
	SigningSecret string `mapstructure:"signing_secret" yaml:"signing_secret"`

	// SigningSecretParameter is the name of an AWS SSM parameter holding the
	// signing secret. Resolved at startup when SigningSecret is empty.
	SigningSecretParameter string `mapstructure:"signing_secret_parameter" yaml:"signing_secret_parameter"`

	// SignatureVerification toggles request signature checks. Disabling it is
	// intended for local development or trusted-network deployments only.
	SignatureVerification bool `mapstructure:"signature_verification" yaml:"signature_verification"`

	// AckTimeout is how long the receiver waits for the engine to acknowledge
	// an event before answering with a timeout.
	AckTimeout time.Duration `mapstructure:"ack_timeout" yaml:"ack_timeout" validate:"gt=0"`

	// RequestTimeout bounds the whole request. Zero disables the timeout
	// middleware, letting the environment (e.g. Lambda) enforce its own.
	RequestTimeout time.Duration `mapstructure:"request_timeout" yaml:"request_timeout"`

	// Port is the local development server port.
	Port int `mapstructure:"port" yaml:"port" validate:"gt=0,lt=65536"`

	// LogLevel is the log level for the logger. Defaults to "info".
	LogLevel string `mapstructure:"log_level" yaml:"log_level"`

	// Env selects the execution environment (production, development, cli).
	Env constants.Environment `mapstructure:"env" yaml:"env" validate:"oneof=production development cli"`
}

var validate = validator.New()

// Load loads the configuration using Viper.
// It reads ~/.hookbridge/config.yaml when present, then overlays environment
// variables with the HOOKBRIDGE_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if err := loadConfigFile(v); err != nil {
		// A missing config file is fine; services configure via env vars only.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error loading config file: %w", err)
		}
	}

	v.SetEnvPrefix(constants.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	bindEnvVars(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := validate.Struct(&cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	if cfg.SignatureVerification && cfg.SigningSecret == "" && cfg.SigningSecretParameter == "" {
		return nil, fmt.Errorf(
			"signing_secret (or signing_secret_parameter) is required when signature verification is enabled")
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("signature_verification", true)
	v.SetDefault("ack_timeout", constants.DefaultAckTimeout)
	v.SetDefault("request_timeout", time.Duration(0))
	v.SetDefault("port", constants.DefaultPort)
	v.SetDefault("log_level", "info")
	v.SetDefault("env", string(constants.Development))
}

// bindEnvVars binds each config key explicitly so keys absent from the config
// file are still populated from the environment.
func bindEnvVars(v *viper.Viper) {
	keys := []string{
		"signing_secret",
		"signing_secret_parameter",
		"signature_verification",
		"ack_timeout",
		"request_timeout",
		"port",
		"log_level",
		"env",
	}
	for _, key := range keys {
		_ = v.BindEnv(key)
	}
}

func loadConfigFile(v *viper.Viper) error {
	home, err := os.UserHomeDir()
	if err != nil {
		return viper.ConfigFileNotFoundError{}
	}

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(filepath.Join(home, "."+constants.ProjectName))
	v.AddConfigPath(".")

	return v.ReadInConfig()
}
