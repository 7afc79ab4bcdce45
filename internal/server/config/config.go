// Package config handles configuration for the server component: defaults,
// a JSON overlay, .env and environment variables, then command-line flags.
package config

import "time"

// EnvPrefix prefixes every environment variable, e.g. RECIPEBOX_HTTP_ADDR.
const EnvPrefix = "RECIPEBOX"

// Config holds runtime settings for the RecipeBox server.
//
// An empty DatabaseDSN selects the in-memory mock store; SimulatedLatency
// applies only to that store. An empty GenAIAPIKey disables description
// generation and an empty AMQPURL disables event publishing.
type Config struct {
	EndpointAddrHTTP            string        `envconfig:"HTTP_ADDR"`
	EndpointAddrGRPC            string        `envconfig:"GRPC_ADDR"`
	DatabaseDSN                 string        `envconfig:"DATABASE_DSN"`
	SeedData                    bool          `envconfig:"SEED_DATA"`
	SimulatedLatency            time.Duration `envconfig:"SIMULATED_LATENCY"`
	SecretKey                   string        `envconfig:"SECRET_KEY"`
	AccessTokenValidityDuration time.Duration `envconfig:"ACCESS_TOKEN_VALIDITY"`
	LogLevel                    string        `envconfig:"LOG_LEVEL"`
	GenAIAPIKey                 string        `envconfig:"GENAI_API_KEY"`
	GenAIModel                  string        `envconfig:"GENAI_MODEL"`
	S3RootUser                  string        `envconfig:"S3_ROOT_USER"`
	S3RootPassword              string        `envconfig:"S3_ROOT_PASSWORD"`
	S3Bucket                    string        `envconfig:"S3_BUCKET"`
	S3Region                    string        `envconfig:"S3_REGION"`
	S3BaseEndpoint              string        `envconfig:"S3_BASE_ENDPOINT"`
	AMQPURL                     string        `envconfig:"AMQP_URL"`
	AMQPExchange                string        `envconfig:"AMQP_EXCHANGE"`
}

// LoadDefaults populates Config with development defaults.
// NOTE: SecretKey must be overridden outside development.
func (c *Config) LoadDefaults() {
	c.EndpointAddrHTTP = ":8080"
	c.EndpointAddrGRPC = ":50051"
	c.DatabaseDSN = ""
	c.SeedData = true
	c.SimulatedLatency = 500 * time.Millisecond
	c.SecretKey = "secretKey"
	c.AccessTokenValidityDuration = 24 * time.Hour
	c.LogLevel = "info"
	c.GenAIModel = "gemini-2.5-flash"
	c.S3RootUser = "admin"
	c.S3RootPassword = "secretpassword"
	c.S3Bucket = "recipes"
	c.S3Region = "us-east-1"
	c.S3BaseEndpoint = "http://127.0.0.1:9000"
	c.AMQPExchange = "recipebox.events"
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional JSON file, the environment and finally command-line flags.
// Malformed input panics, as the server cannot start without a config.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}
