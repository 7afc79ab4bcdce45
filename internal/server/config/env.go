package config

import (
	"errors"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"github.com/dmitrijs2005/recipebox/internal/flagx"
)

// parseEnv loads the dotenv file (-env, default ".env") without overriding
// variables already set, then overlays every RECIPEBOX_* variable that is
// present. Unset variables leave the field untouched.
func parseEnv(config *Config) {
	envFile := flagx.EnvFile(os.Args[1:])
	explicit := envFile != ""
	if !explicit {
		envFile = ".env"
	}

	if err := godotenv.Load(envFile); err != nil {
		if explicit || !errors.Is(err, fs.ErrNotExist) {
			panic(err)
		}
	}

	if err := envconfig.Process(EnvPrefix, config); err != nil {
		panic(err)
	}
}
