package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/recipebox/internal/flagx"
	"github.com/dmitrijs2005/recipebox/internal/timex"
)

// JsonConfig is the on-disk shape of the config file. Durations accept
// strings such as "500ms" or integer nanoseconds. Pointer fields distinguish
// "absent" from zero so a file may override only some settings.
type JsonConfig struct {
	EndpointAddrHTTP            *string         `json:"endpoint_addr_http"`
	EndpointAddrGRPC            *string         `json:"endpoint_addr_grpc"`
	DatabaseDSN                 *string         `json:"database_dsn"`
	SeedData                    *bool           `json:"seed_data"`
	SimulatedLatency            *timex.Duration `json:"simulated_latency"`
	SecretKey                   *string         `json:"secret_key"`
	AccessTokenValidityDuration *timex.Duration `json:"access_token_validity_duration"`
	LogLevel                    *string         `json:"log_level"`
	GenAIAPIKey                 *string         `json:"genai_api_key"`
	GenAIModel                  *string         `json:"genai_model"`
	S3RootUser                  *string         `json:"s3_root_user"`
	S3RootPassword              *string         `json:"s3_root_password"`
	S3Bucket                    *string         `json:"s3_bucket"`
	S3Region                    *string         `json:"s3_region"`
	S3BaseEndpoint              *string         `json:"s3_base_endpoint"`
	AMQPURL                     *string         `json:"amqp_url"`
	AMQPExchange                *string         `json:"amqp_exchange"`
}

func set[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}

// parseJson overlays the file named by -c or -config, if any.
func parseJson(config *Config) {
	jsonConfigFile := flagx.ConfigFile(os.Args[1:])
	if jsonConfigFile == "" {
		return
	}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	set(&config.EndpointAddrHTTP, c.EndpointAddrHTTP)
	set(&config.EndpointAddrGRPC, c.EndpointAddrGRPC)
	set(&config.DatabaseDSN, c.DatabaseDSN)
	set(&config.SeedData, c.SeedData)
	if c.SimulatedLatency != nil {
		config.SimulatedLatency = c.SimulatedLatency.Duration
	}
	set(&config.SecretKey, c.SecretKey)
	if c.AccessTokenValidityDuration != nil {
		config.AccessTokenValidityDuration = c.AccessTokenValidityDuration.Duration
	}
	set(&config.LogLevel, c.LogLevel)
	set(&config.GenAIAPIKey, c.GenAIAPIKey)
	set(&config.GenAIModel, c.GenAIModel)
	set(&config.S3RootUser, c.S3RootUser)
	set(&config.S3RootPassword, c.S3RootPassword)
	set(&config.S3Bucket, c.S3Bucket)
	set(&config.S3Region, c.S3Region)
	set(&config.S3BaseEndpoint, c.S3BaseEndpoint)
	set(&config.AMQPURL, c.AMQPURL)
	set(&config.AMQPExchange, c.AMQPExchange)
}
