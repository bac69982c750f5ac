package config

import "github.com/kelseyhightower/envconfig"

type EnvConfig struct {
	ServerEndpointAddr string `envconfig:"VAULT_ADDR"`
	AccessToken        string `envconfig:"VAULT_TOKEN"`
}

func parseEnv(cfg *Config) {
	var e EnvConfig
	if err := envconfig.Process("", &e); err != nil {
		panic(err)
	}
	if e.ServerEndpointAddr != "" {
		cfg.ServerEndpointAddr = e.ServerEndpointAddr
	}
	if e.AccessToken != "" {
		cfg.AccessToken = e.AccessToken
	}
}
