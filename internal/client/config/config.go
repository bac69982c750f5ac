package config

import "time"

// Config holds runtime settings for vaultctl.
//
// Fields:
//   - ServerEndpointAddr: host:port of the projectvault gRPC endpoint.
//   - AccessToken: token sent with every vault call.
//   - RequestTimeout: deadline applied to each call.
type Config struct {
	ServerEndpointAddr string
	AccessToken        string
	RequestTimeout     time.Duration
}

// LoadDefaults populates c with defaults for a local server.
func (c *Config) LoadDefaults() {
	c.ServerEndpointAddr = "127.0.0.1:50051"
	c.RequestTimeout = 10 * time.Second
}

// LoadConfig applies defaults, then JSON (if present), the environment and
// command-line flags. Later sources take precedence.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}
