package config

import (
	"errors"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"github.com/dmitrijs2005/recipebox/internal/flagx"
)

func parseEnv(cfg *Config) {
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

	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		panic(err)
	}
}
