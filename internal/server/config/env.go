package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// EnvConfig lists the environment variables the server reads. Unset or
// empty variables leave the current value alone.
type EnvConfig struct {
	EndpointAddrGRPC            string `envconfig:"GRPC_ADDRESS"`
	DatabaseDSN                 string `envconfig:"DATABASE_DSN"`
	SecretKey                   string `envconfig:"JWT_SECRET"`
	EncryptionKey               string `envconfig:"ENCRYPTION_KEY"`
	AccessTokenValidityDuration string `envconfig:"ACCESS_TOKEN_TTL"`
	LogLevel                    string `envconfig:"LOG_LEVEL"`
}

// parseEnv overlays the environment onto config.
func parseEnv(config *Config) error {
	var e EnvConfig
	if err := envconfig.Process("", &e); err != nil {
		return fmt.Errorf("error reading environment: %w", err)
	}

	if e.AccessTokenValidityDuration != "" {
		d, err := time.ParseDuration(e.AccessTokenValidityDuration)
		if err != nil {
			return fmt.Errorf("invalid ACCESS_TOKEN_TTL %q: %w", e.AccessTokenValidityDuration, err)
		}
		config.AccessTokenValidityDuration = d
	}

	setString(&config.EndpointAddrGRPC, e.EndpointAddrGRPC)
	setString(&config.DatabaseDSN, e.DatabaseDSN)
	setString(&config.SecretKey, e.SecretKey)
	setString(&config.EncryptionKey, e.EncryptionKey)
	setString(&config.LogLevel, e.LogLevel)

	return nil
}
