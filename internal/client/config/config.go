package config

import "time"

const EnvPrefix = "RECIPEBOX"

// Session backends.
const (
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
)

// Config holds runtime settings for the RecipeBox CLI.
type Config struct {
	ServerURL      string        `envconfig:"SERVER_URL"`
	RequestTimeout time.Duration `envconfig:"REQUEST_TIMEOUT"`
	SessionBackend string        `envconfig:"SESSION_BACKEND"`
	SQLiteDSN      string        `envconfig:"SQLITE_DSN"`
	RedisAddr      string        `envconfig:"REDIS_ADDR"`
	RedisDB        int           `envconfig:"REDIS_DB"`
	RedisPassword  string        `envconfig:"REDIS_PASSWORD"`
	RedisPrefix    string        `envconfig:"REDIS_PREFIX"`
	LogLevel       string        `envconfig:"CLIENT_LOG_LEVEL"`
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerURL = "http://127.0.0.1:8080"
	c.RequestTimeout = 10 * time.Second
	c.SessionBackend = BackendSQLite
	c.SQLiteDSN = "recipebox.db"
	c.RedisAddr = "127.0.0.1:6379"
	c.RedisDB = 0
	c.RedisPassword = ""
	c.RedisPrefix = "recipebox:session"
	c.LogLevel = "warn"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON, the environment and command-line flags. Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}
