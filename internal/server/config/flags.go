package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/recipebox/internal/flagx"
)

// parseFlags populates server Config fields from command-line flags.
//
//	-a string         HTTP bind address (e.g. ":8080")
//	-grpc string      gRPC bind address (e.g. ":50051")
//	-d string         PostgreSQL DSN, empty for the in-memory store
//	-seed bool        load mock data into the in-memory store
//	-latency dur      simulated latency of the in-memory store
//	-s string         JWT HMAC secret key
//	-t int            access token validity, minutes
//	-log string       log level (debug, info, warn, error)
//	-ai-key string    GenAI API key
//	-ai-model string  GenAI model
//	-u string         S3 root user
//	-p string         S3 root password
//	-b string         S3 bucket
//	-region string    S3 region
//	-e string         S3 base endpoint
//	-amqp string      AMQP URL, empty disables events
//	-exchange string  AMQP exchange
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{
		"-a", "-grpc", "-d", "-seed", "-latency", "-s", "-t", "-log", "-ai-key", "-ai-model",
		"-u", "-p", "-b", "-region", "-e", "-amqp", "-exchange",
	})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddrHTTP, "a", config.EndpointAddrHTTP, "HTTP address and port to run server")
	fs.StringVar(&config.EndpointAddrGRPC, "grpc", config.EndpointAddrGRPC, "gRPC address and port")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.BoolVar(&config.SeedData, "seed", config.SeedData, "seed in-memory store with mock data")
	fs.DurationVar(&config.SimulatedLatency, "latency", config.SimulatedLatency, "simulated latency of the in-memory store")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")

	accessTokenValidityDuration := fs.Int("t", int(config.AccessTokenValidityDuration.Minutes()), "access_token_validity_duration (in minutes)")

	fs.StringVar(&config.LogLevel, "log", config.LogLevel, "log level")
	fs.StringVar(&config.GenAIAPIKey, "ai-key", config.GenAIAPIKey, "GenAI API key")
	fs.StringVar(&config.GenAIModel, "ai-model", config.GenAIModel, "GenAI model")
	fs.StringVar(&config.S3RootUser, "u", config.S3RootUser, "S3 root user")
	fs.StringVar(&config.S3RootPassword, "p", config.S3RootPassword, "S3 root password")
	fs.StringVar(&config.S3Bucket, "b", config.S3Bucket, "S3 bucket")
	fs.StringVar(&config.S3Region, "region", config.S3Region, "S3 region")
	fs.StringVar(&config.S3BaseEndpoint, "e", config.S3BaseEndpoint, "S3 base endpoint")
	fs.StringVar(&config.AMQPURL, "amqp", config.AMQPURL, "AMQP URL")
	fs.StringVar(&config.AMQPExchange, "exchange", config.AMQPExchange, "AMQP exchange")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.AccessTokenValidityDuration = time.Duration(*accessTokenValidityDuration) * time.Minute
}
