package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	_ "github.com/joho/godotenv/autoload"

	"github.com/meetnearme/identity-api/functions/gateway/constants"
)

type Config struct {
	GoEnv string `env:"GO_ENV" env-default:"production"`

	AWSRegion       string `env:"AWS_REGION" env-default:"us-east-1"`
	UserPoolID      string `env:"USER_POOL_ID" env-required:"true"`
	CognitoEndpoint string `env:"COGNITO_ENDPOINT" env-default:""`
	AccessKeyID     string `env:"AWS_ACCESS_KEY" env-default:""`
	SecretAccessKey string `env:"SECRET_ACCESS_KEY" env-default:""`

	IdentifierAttribute   string        `env:"IDENTIFIER_ATTRIBUTE" env-default:"custom:cpf"`
	ListUsersPageSize     int32         `env:"LIST_USERS_PAGE_SIZE" env-default:"60"`
	UpstreamTimeout       time.Duration `env:"UPSTREAM_TIMEOUT" env-default:"5s"`
	ExposeUpstreamErrors  bool          `env:"EXPOSE_UPSTREAM_ERRORS" env-default:"false"`
	SuppressInviteMessage bool          `env:"SUPPRESS_INVITE_MESSAGE" env-default:"false"`

	LogLevel string `env:"LOG_LEVEL" env-default:"info"`

	NatsURL                string `env:"NATS_URL" env-default:""`
	NatsUserStreamName     string `env:"NATS_USER_STREAM_NAME" env-default:"USERS"`
	NatsUserCreatedSubject string `env:"NATS_USER_CREATED_SUBJECT" env-default:"users.created"`

	LocalPort int `env:"LOCAL_PORT" env-default:"8000"`
}

// Load reads the configuration from the process environment.
func Load() (*Config, error) {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	if err := cfg.normalize(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) normalize() error {
	if c.UserPoolID == "" {
		return fmt.Errorf("USER_POOL_ID must not be empty")
	}
	if c.IdentifierAttribute == "" {
		return fmt.Errorf("IDENTIFIER_ATTRIBUTE must not be empty")
	}
	if c.UpstreamTimeout < 0 {
		return fmt.Errorf("UPSTREAM_TIMEOUT must not be negative, got %s", c.UpstreamTimeout)
	}
	if c.ListUsersPageSize < 1 || c.ListUsersPageSize > constants.MAX_LIST_USERS_PAGE_SIZE {
		c.ListUsersPageSize = constants.MAX_LIST_USERS_PAGE_SIZE
	}
	return nil
}

func (c *Config) IsDev() bool {
	return c.GoEnv == "dev"
}

// HasStaticCredentials reports whether both halves of a static key pair are set.
func (c *Config) HasStaticCredentials() bool {
	return c.AccessKeyID != "" && c.SecretAccessKey != ""
}
