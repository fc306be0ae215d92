package config

import (
	"encoding/json"
	"os"

	"github.com/HASANPOWER/Spectra-App/internal/flagx"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Values are
// copied into the runtime Config after parsing; empty fields are skipped so
// a partial file only overrides what it names.
type JsonConfig struct {
	DatabaseDSN      string `json:"database_dsn"`
	FirestoreProject string `json:"firestore_project"`
	CredentialsFile  string `json:"credentials_file"`
	LogLevel         string `json:"log_level"`
}

// parseJson overlays Config with values loaded from a JSON file. The file
// path comes from the -c or -config flags; without them nothing is loaded.
// Read or unmarshal errors panic, callers may recover if desired.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.DatabaseDSN != "" {
		cfg.DatabaseDSN = jc.DatabaseDSN
	}
	if jc.FirestoreProject != "" {
		cfg.FirestoreProject = jc.FirestoreProject
	}
	if jc.CredentialsFile != "" {
		cfg.CredentialsFile = jc.CredentialsFile
	}
	if jc.LogLevel != "" {
		cfg.LogLevel = jc.LogLevel
	}
}
