package config

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/spf13/viper"
)

// AppConfig holds the configuration for the application.
// Tags used:
// - mapstructure: used by viper to unmarshal
// - default: default value to set if missing
// - required: if "true", error if missing
type AppConfig struct {
	// Environment specifies the runtime environment (e.g., development, production).
	Environment string `mapstructure:"APP_ENV" default:"development"`
	// LogLevel defines the logging verbosity (e.g., debug, info, error).
	LogLevel string `mapstructure:"LOG_LEVEL" default:"info"`
	// ServerPort is the port where the server will listen.
	ServerPort int `mapstructure:"SERVER_PORT" default:"8080"`

	// Redis holds the document store connection details.
	Redis RedisConfig `mapstructure:",squash"`

	// Collections holds the names of the persisted order collections.
	Collections CollectionsConfig `mapstructure:",squash"`

	// Notify holds the status-change notification settings.
	Notify NotifyConfig `mapstructure:",squash"`

	// Settlement holds the settlement batch-commit settings.
	Settlement SettlementConfig `mapstructure:",squash"`
}

// RedisConfig holds the connection details for the Redis-backed document store.
type RedisConfig struct {
	// URL is the Redis connection string, e.g. redis://localhost:6379/0.
	URL string `mapstructure:"REDIS_URL" required:"true"`
}

// CollectionsConfig names the document collections the engine reads and writes.
type CollectionsConfig struct {
	// Orders is the collection holding customer retail orders.
	Orders string `mapstructure:"ORDERS_COLLECTION" default:"orders"`
	// PoolOrders is the collection holding inter-dispensary pool orders.
	PoolOrders string `mapstructure:"POOL_ORDERS_COLLECTION" default:"productPoolOrders"`
	// Dispensaries is the collection holding dispensary profiles.
	Dispensaries string `mapstructure:"DISPENSARIES_COLLECTION" default:"dispensaries"`
}

// NotifyConfig holds the outbound status-change notification settings.
type NotifyConfig struct {
	// Channel is the pub/sub channel for shipment status events.
	Channel string `mapstructure:"NOTIFY_CHANNEL" default:"shipment-status-events"`
	// WebhookURL, when set, mirrors every status event to an HTTP endpoint.
	WebhookURL string `mapstructure:"NOTIFY_WEBHOOK_URL"`
}

// SettlementConfig holds the settlement batch-commit settings.
type SettlementConfig struct {
	// MaxAttempts bounds the retries for a failed settlement batch commit.
	MaxAttempts int `mapstructure:"SETTLE_MAX_ATTEMPTS" default:"3"`
}

// Load loads configuration from .env files and environment variables.
func Load(path string) (*AppConfig, error) {
	v := viper.New()

	v.AutomaticEnv()

	v.AddConfigPath(path)
	v.SetConfigName(".env")
	v.SetConfigType("env")

	if err := v.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config AppConfig

	if err := processTags(v, &config); err != nil {
		return nil, err
	}

	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode into struct: %w", err)
	}

	if err := validateRequired(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// processTags iterates over the struct fields and sets default values in Viper.
func processTags(v *viper.Viper, config interface{}) error {
	val := reflect.ValueOf(config)
	if val.Kind() == reflect.Ptr {
		val = val.Elem()
	}

	t := val.Type()

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)

		if field.Type.Kind() == reflect.Struct {
			if err := processTags(v, val.Field(i).Addr().Interface()); err != nil {
				return err
			}
			continue
		}

		key := field.Tag.Get("mapstructure")
		defaultValue := field.Tag.Get("default")

		if key != "" {
			v.BindEnv(key)
		}

		if key != "" && defaultValue != "" {
			v.SetDefault(key, defaultValue)
		}
	}
	return nil
}

// validateRequired checks if fields marked as required have non-zero values.
func validateRequired(config interface{}) error {
	val := reflect.ValueOf(config)
	if val.Kind() == reflect.Ptr {
		val = val.Elem()
	}

	t := val.Type()

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)

		if field.Type.Kind() == reflect.Struct {
			if err := validateRequired(val.Field(i).Addr().Interface()); err != nil {
				return err
			}
			continue
		}

		required := field.Tag.Get("required")
		if required == "true" {
			value := val.Field(i)
			if isZero(value) {
				key := field.Tag.Get("mapstructure")
				return fmt.Errorf("missing required configuration: %s", key)
			}
		}
	}
	return nil
}

// isZero checks if a reflect.Value is the zero value for its type.
func isZero(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.String:
		return v.String() == ""
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int() == 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return v.Uint() == 0
	case reflect.Float32, reflect.Float64:
		return v.Float() == 0
	case reflect.Bool:
		return !v.Bool()
	case reflect.Slice, reflect.Map:
		return v.Len() == 0
	default:
		return v.IsZero()
	}
}
