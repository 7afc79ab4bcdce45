package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/recipebox/internal/flagx"
	"github.com/dmitrijs2005/recipebox/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Absent keys
// keep the current value.
type JsonConfig struct {
	ServerURL      *string         `json:"server_url"`
	RequestTimeout *timex.Duration `json:"request_timeout"`
	SessionBackend *string         `json:"session_backend"`
	SQLiteDSN      *string         `json:"sqlite_dsn"`
	RedisAddr      *string         `json:"redis_addr"`
	RedisDB        *int            `json:"redis_db"`
	RedisPassword  *string         `json:"redis_password"`
	RedisPrefix    *string         `json:"redis_prefix"`
	LogLevel       *string         `json:"log_level"`
}

func set[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}

// parseJson overlays Config with values loaded from the file named by -c or
// -config. Panics on read or unmarshal errors.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.ConfigFile(os.Args[1:])
	if jsonConfigFile == "" {
		return
	}

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	set(&cfg.ServerURL, jc.ServerURL)
	if jc.RequestTimeout != nil {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	set(&cfg.SessionBackend, jc.SessionBackend)
	set(&cfg.SQLiteDSN, jc.SQLiteDSN)
	set(&cfg.RedisAddr, jc.RedisAddr)
	set(&cfg.RedisDB, jc.RedisDB)
	set(&cfg.RedisPassword, jc.RedisPassword)
	set(&cfg.RedisPrefix, jc.RedisPrefix)
	set(&cfg.LogLevel, jc.LogLevel)
}
