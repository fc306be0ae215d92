package config

import "github.com/caarlos0/env/v11"

// Config holds runtime settings for the Spectra client.
//
// Fields:
//   - DatabaseDSN: path of the local SQLite settings database.
//   - FirestoreProject: GCP project of the remote document store.
//   - CredentialsFile: optional service-account key file; empty uses
//     application default credentials.
//   - LogLevel: debug, info, warn or error.
type Config struct {
	DatabaseDSN      string `env:"SPECTRA_DATABASE_DSN"`
	FirestoreProject string `env:"SPECTRA_FIRESTORE_PROJECT"`
	CredentialsFile  string `env:"SPECTRA_CREDENTIALS_FILE"`
	LogLevel         string `env:"SPECTRA_LOG_LEVEL"`
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.DatabaseDSN = "spectra.db"
	c.FirestoreProject = "spectra-app"
	c.CredentialsFile = ""
	c.LogLevel = "info"
}

// LoadConfig constructs a Config by applying defaults, then overlaying a
// JSON file (if given via -c/-config), environment variables and finally
// command-line flags. Later sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}

// parseEnv overlays Config with environment variables. Unset variables
// leave the current values untouched.
func parseEnv(cfg *Config) {
	if err := env.Parse(cfg); err != nil {
		panic(err)
	}
}
