// Package config reads service settings from the environment.
package config

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"
)

const (
	StorageDynamoDB = "dynamodb"
	StorageMemory   = "memory"
)

type DynamoDBOptions struct {
	Region          string `env:"AWS_REGION" envDefault:"us-east-1"`
	AccessKeyID     string `env:"AWS_ACCESS_KEY_ID" envDefault:"local"`
	SecretAccessKey string `env:"AWS_SECRET_ACCESS_KEY" envDefault:"local"`
	// Endpoint points the client at DynamoDB Local, e.g. http://dynamodb:8000.
	Endpoint string `env:"DYNAMODB_ENDPOINT"`

	CustomersTable  string `env:"CUSTOMERS_TABLE" envDefault:"customers"`
	WorkOrdersTable string `env:"WORK_ORDERS_TABLE" envDefault:"work_orders"`
	ProjectsTable   string `env:"PROJECTS_TABLE" envDefault:"projects"`
}

type LogOptions struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"json"`
}

type Config struct {
	Port           string `env:"PORT" envDefault:"8080"`
	StorageBackend string `env:"STORAGE_BACKEND" envDefault:"dynamodb"`
	MetricsPath    string `env:"METRICS_PATH" envDefault:"/metrics"`

	MaxUploadBytes    int64    `env:"MAX_UPLOAD_BYTES" envDefault:"5242880"`
	StrategicAccounts []string `env:"STRATEGIC_ACCOUNTS" envDefault:"texas instruments,northrop grumman" envSeparator:","`

	DynamoDB DynamoDBOptions
	Log      LogOptions
}

// Load parses the environment. .env files are loaded by main before this runs.
func Load() (Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return Config{}, err
	}
	cfg.StorageBackend = strings.ToLower(strings.TrimSpace(cfg.StorageBackend))
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch c.StorageBackend {
	case StorageDynamoDB, StorageMemory:
	default:
		return fmt.Errorf("STORAGE_BACKEND must be %q or %q, got %q", StorageDynamoDB, StorageMemory, c.StorageBackend)
	}
	if c.MaxUploadBytes <= 0 {
		return fmt.Errorf("MAX_UPLOAD_BYTES must be positive, got %d", c.MaxUploadBytes)
	}
	if !strings.HasPrefix(c.MetricsPath, "/") {
		return fmt.Errorf("METRICS_PATH must start with /, got %q", c.MetricsPath)
	}
	return nil
}
