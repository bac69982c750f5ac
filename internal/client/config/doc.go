// Package config loads vaultctl settings: server address, access token and
// request timeout. Sources are applied in order: defaults, a JSON file
// given with -c/-config, the environment (VAULT_ADDR, VAULT_TOKEN) and the
// global flags -a, -t and -i.
package config
