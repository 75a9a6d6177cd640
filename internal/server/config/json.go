package config

import (
	"encoding/json"
	"os"
	"time"

	"postboard/internal/flagx"
	"postboard/internal/timex"
)

// JsonConfig is an intermediate DTO used only for reading JSON configuration
// files. It uses timex.Duration for interval fields, which allows parsing
// both string values such as "1h" and integer nanoseconds. After
// unmarshalling, its fields are copied into the runtime Config struct.
type JsonConfig struct {
	Addr           string         `json:"addr"`
	DatabaseDSN    string         `json:"database_dsn"`
	SecretKey      string         `json:"secret_key"`
	TokenValidity  timex.Duration `json:"token_validity"`
	HashIterations int            `json:"hash_iterations"`
	CertFile       string         `json:"cert_file"`
	KeyFile        string         `json:"key_file"`
}

// parseJson loads configuration values from a JSON file into the provided
// Config instance. The file path comes from the -c or -config command-line
// flags; when neither is set, no JSON file is loaded. If the file cannot be
// read or contains invalid JSON, the function panics.
func parseJson(config *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()

	// nothing to load
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	config.Addr = c.Addr
	config.DatabaseDSN = c.DatabaseDSN
	config.SecretKey = c.SecretKey
	config.TokenValidity = time.Duration(c.TokenValidity.Duration)
	config.HashIterations = c.HashIterations
	config.CertFile = c.CertFile
	config.KeyFile = c.KeyFile
}
