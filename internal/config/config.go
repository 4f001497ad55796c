// Package config loads the service configuration from the environment.
//
// Values are layered: built-in defaults first, then MEMBERSHIP_* variables
// (a local .env file is read into the environment on import). The merged
// result is validated before anything else starts.
package config

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/go-viper/mapstructure/v2"
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix is stripped from every variable before it is mapped. Nested
// fields use "." in the variable name:
//
//	MEMBERSHIP_SERVER.PORT -> server.port -> Config.Server.Port
const EnvPrefix = "MEMBERSHIP_"

// ServiceName labels logs, traces and the New Relic application.
const ServiceName = "membership"

type Config struct {
	Primary       Primary              `koanf:"primary" validate:"required"`
	Server        ServerConfig         `koanf:"server" validate:"required"`
	Database      DatabaseConfig       `koanf:"database" validate:"required"`
	Redis         RedisConfig          `koanf:"redis" validate:"required"`
	Auth          AuthConfig           `koanf:"auth" validate:"required"`
	Integration   IntegrationConfig    `koanf:"integration" validate:"required"`
	Observability *ObservabilityConfig `koanf:"observability" validate:"required"`
}

type Primary struct {
	Env string `koanf:"env" validate:"required"`
}

type ServerConfig struct {
	Port               string        `koanf:"port" validate:"required"`
	ReadTimeout        time.Duration `koanf:"read_timeout" validate:"min=1s"`
	WriteTimeout       time.Duration `koanf:"write_timeout" validate:"min=1s"`
	IdleTimeout        time.Duration `koanf:"idle_timeout" validate:"min=1s"`
	ShutdownTimeout    time.Duration `koanf:"shutdown_timeout" validate:"min=1s"`
	CORSAllowedOrigins []string      `koanf:"cors_allowed_origins" validate:"required,min=1"`

	// BaseURL is the public origin RSVP self-service links are built on.
	BaseURL string `koanf:"base_url" validate:"required,url"`

	// RSVPRateLimit is the number of RSVP writes allowed per client per second.
	RSVPRateLimit float64 `koanf:"rsvp_rate_limit" validate:"gt=0"`
}

type DatabaseConfig struct {
	Host            string        `koanf:"host" validate:"required"`
	Port            int           `koanf:"port" validate:"required"`
	User            string        `koanf:"user" validate:"required"`
	Password        string        `koanf:"password" validate:"required"`
	Name            string        `koanf:"name" validate:"required"`
	SSLMode         string        `koanf:"ssl_mode" validate:"oneof=disable allow prefer require verify-ca verify-full"`
	MaxOpenConns    int           `koanf:"max_open_conns" validate:"min=1"`
	MaxIdleConns    int           `koanf:"max_idle_conns" validate:"min=0"`
	ConnMaxLifetime time.Duration `koanf:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `koanf:"conn_max_idle_time"`
}

// RedisConfig backs flash messages and the asynq task queue.
type RedisConfig struct {
	Address string `koanf:"address" validate:"required,hostname_port"`
}

type AuthConfig struct {
	// SecretKey is the Clerk backend key.
	SecretKey string `koanf:"secret_key" validate:"required"`

	// APIKeys are accepted by the read-only meetings API.
	APIKeys []string `koanf:"api_keys"`
}

type IntegrationConfig struct {
	ResendAPIKey string `koanf:"resend_api_key" validate:"required"`
	EmailFrom    string `koanf:"email_from" validate:"required"`

	MeetupAPIKey  string `koanf:"meetup_api_key"`
	MeetupGroup   string `koanf:"meetup_group"`
	MeetupBaseURL string `koanf:"meetup_base_url" validate:"required,url"`

	// RecaptchaSecret guards anonymous RSVP forms. It may only be left empty
	// in the local environment, where tokens are checked for presence only.
	RecaptchaSecret string `koanf:"recaptcha_secret"`
}

// defaults is the bottom configuration layer.
func defaults() map[string]any {
	return map[string]any{
		"server.read_timeout":     10 * time.Second,
		"server.write_timeout":    30 * time.Second,
		"server.idle_timeout":     60 * time.Second,
		"server.shutdown_timeout": 30 * time.Second,
		"server.rsvp_rate_limit":  2.0,

		"database.port":               5432,
		"database.ssl_mode":           "disable",
		"database.max_open_conns":     10,
		"database.max_idle_conns":     2,
		"database.conn_max_lifetime":  time.Hour,
		"database.conn_max_idle_time": 30 * time.Minute,

		"integration.meetup_base_url": "https://api.meetup.com",

		"observability.logging.level":                         "info",
		"observability.logging.format":                        "json",
		"observability.logging.slow_query_threshold":          100 * time.Millisecond,
		"observability.new_relic.app_log_forwarding_enabled":  true,
		"observability.new_relic.distributed_tracing_enabled": true,
		"observability.health_checks.enabled":                 true,
		"observability.health_checks.interval":                30 * time.Second,
		"observability.health_checks.timeout":                 5 * time.Second,
		"observability.health_checks.checks":                  []string{"database", "redis"},
	}
}

// LoadConfig merges defaults with the environment and validates the result.
func LoadConfig() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("loading config defaults: %w", err)
	}

	err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("loading env config: %w", err)
	}

	cfg := &Config{}
	if err := k.UnmarshalWithConf("", cfg, unmarshalConf()); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}

	cfg.normalize()

	if err := validator.New(validator.WithRequiredStructEnabled()).Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if err := cfg.validateEnvironment(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if err := cfg.Observability.Validate(); err != nil {
		return nil, fmt.Errorf("invalid observability config: %w", err)
	}

	return cfg, nil
}

// LocalEnv is the primary.env value of a developer machine.
const LocalEnv = "local"

// validateEnvironment checks rules that depend on primary.env.
func (c *Config) validateEnvironment() error {
	if c.Primary.Env != LocalEnv && strings.TrimSpace(c.Integration.RecaptchaSecret) == "" {
		return fmt.Errorf("integration.recaptcha_secret is required when primary.env is %q", c.Primary.Env)
	}
	return nil
}

// unmarshalConf decodes durations from either Go duration strings ("30s")
// or bare integers, which are read as seconds, and splits comma separated
// lists.
func unmarshalConf() koanf.UnmarshalConf {
	return koanf.UnmarshalConf{
		DecoderConfig: &mapstructure.DecoderConfig{
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.DecodeHookFuncType(secondsToDurationHook),
				mapstructure.StringToTimeDurationHookFunc(),
				mapstructure.StringToSliceHookFunc(","),
				mapstructure.TextUnmarshallerHookFunc(),
			),
			WeaklyTypedInput: true,
		},
	}
}

var durationType = reflect.TypeOf(time.Duration(0))

func secondsToDurationHook(from, to reflect.Type, data any) (any, error) {
	if from.Kind() != reflect.String || to != durationType {
		return data, nil
	}
	seconds, err := strconv.ParseInt(strings.TrimSpace(reflect.ValueOf(data).String()), 10, 64)
	if err != nil {
		return data, nil
	}
	return time.Duration(seconds) * time.Second, nil
}

// normalize derives values that are not configured directly.
func (c *Config) normalize() {
	if c.Observability == nil {
		c.Observability = DefaultObservabilityConfig()
	}
	c.Observability.ServiceName = ServiceName
	c.Observability.Environment = c.Primary.Env

	c.Server.BaseURL = strings.TrimRight(c.Server.BaseURL, "/")
	c.Integration.MeetupBaseURL = strings.TrimRight(c.Integration.MeetupBaseURL, "/")
}
