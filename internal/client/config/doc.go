// Package config loads runtime configuration for the RecipeBox CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected via -c or -config.
//  3. A dotenv file (-env, default ".env") and RECIPEBOX_* environment variables.
//  4. Command-line flags, which override earlier values.
//
// Supported flags
//
//	-a string               base URL of the RecipeBox HTTP API
//	-timeout duration       per-request timeout
//	-session string         session backend: sqlite or redis
//	-db string              SQLite DSN of the local session store
//	-redis string           Redis address
//	-redis-db int           Redis database number
//	-redis-password string  Redis password
//	-redis-prefix string    key prefix of the session slot in Redis
//	-log string             log level
//
// # JSON schema
//
// Durations accept strings like "10s" or integer nanoseconds:
//
//	{
//	  "server_url": "http://127.0.0.1:8080",
//	  "request_timeout": "10s",
//	  "session_backend": "redis",
//	  "redis_addr": "127.0.0.1:6379"
//	}
package config
