package config

import (
	"reflect"
	"strings"

	"equipment-validator/core/catalog"
	"equipment-validator/core/database"
	"equipment-validator/core/logger"
	"equipment-validator/core/ofsc"
	"equipment-validator/core/server"
	"equipment-validator/core/storage"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
// It is divided into partial configurations for better modularity.
type Config struct {
	// Server holds configuration for the HTTP server.
	Server server.Config `mapstructure:"server"`
	// Log holds configuration for the logger.
	Log logger.Config `mapstructure:"log"`
	// Database holds configuration for the rule overrides database.
	Database database.Config `mapstructure:"database"`
	// Storage holds configuration for the rule snapshot bucket.
	Storage storage.Config `mapstructure:"storage"`
	// OFSC holds the field service REST API settings.
	OFSC ofsc.Config `mapstructure:"ofsc"`
	// Catalog holds the equipment description cache settings.
	Catalog catalog.Config `mapstructure:"catalog"`
	// Rules selects where rules are loaded from and how they are cached.
	Rules RulesConfig `mapstructure:"rules"`
}

// RulesConfig selects the rule provider.
type RulesConfig struct {
	// Source is one of ofsc, storage, database.
	Source string `mapstructure:"source" default:"ofsc"`
	// Object is the snapshot object name used by the storage source.
	Object string `mapstructure:"object" default:"rules/current.json"`
	// CacheTTLSeconds is how long loaded rules are reused.
	CacheTTLSeconds int `mapstructure:"cache_ttl_seconds" default:"300"`
	// DuplicatePolicy is last or first.
	DuplicatePolicy string `mapstructure:"duplicate_policy" default:"last"`
}

// LoadConfig loads configuration from environment variables and .env file.
func LoadConfig(path string) (*Config, error) {
	envPath := path + "/.env"
	if path == "." {
		envPath = ".env"
	}

	// Ignore error if file doesn't exist (e.g. production)
	_ = godotenv.Overload(envPath)

	v := viper.New()

	bindValues(v, Config{}, "")

	// Map environment variables to nested keys (e.g. OFSC_CLIENT_ID -> ofsc.client_id)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// bindValues uses reflection to iterate over the struct and set default values in Viper
// based on the 'default' and 'mapstructure' tags.
func bindValues(v *viper.Viper, iface any, prefix string) {
	t := reflect.TypeOf(iface)

	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("mapstructure")
		if tag == "" {
			continue
		}

		key := tag
		if prefix != "" {
			key = prefix + "." + tag
		}

		if field.Type.Kind() == reflect.Struct {
			bindValues(v, reflect.New(field.Type).Elem().Interface(), key)
			continue
		}

		// Always set default (even if empty) to register the key for AutomaticEnv
		v.SetDefault(key, field.Tag.Get("default"))
	}
}
