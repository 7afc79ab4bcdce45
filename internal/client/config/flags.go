package config

import (
	"flag"
	"os"

	"github.com/dmitrijs2005/recipebox/internal/flagx"
)

// parseFlags populates Config fields from command-line flags. Only the flags
// listed here are parsed, so other components may define their own.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{
		"-a", "-timeout", "-session", "-db", "-redis", "-redis-db", "-redis-password", "-redis-prefix", "-log",
	})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.ServerURL, "a", cfg.ServerURL, "base URL of the RecipeBox API")
	fs.DurationVar(&cfg.RequestTimeout, "timeout", cfg.RequestTimeout, "request timeout")
	fs.StringVar(&cfg.SessionBackend, "session", cfg.SessionBackend, "session backend (sqlite or redis)")
	fs.StringVar(&cfg.SQLiteDSN, "db", cfg.SQLiteDSN, "SQLite DSN")
	fs.StringVar(&cfg.RedisAddr, "redis", cfg.RedisAddr, "Redis address")
	fs.IntVar(&cfg.RedisDB, "redis-db", cfg.RedisDB, "Redis database")
	fs.StringVar(&cfg.RedisPassword, "redis-password", cfg.RedisPassword, "Redis password")
	fs.StringVar(&cfg.RedisPrefix, "redis-prefix", cfg.RedisPrefix, "Redis key prefix")
	fs.StringVar(&cfg.LogLevel, "log", cfg.LogLevel, "log level")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
