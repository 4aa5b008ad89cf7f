package catalog

// Config holds configuration for the equipment type catalog.
type Config struct {
	// TTLSeconds is how long loaded descriptions stay valid.
	TTLSeconds int `mapstructure:"ttl_seconds" default:"3600"`
	// Languages is the comma separated translation preference.
	Languages string `mapstructure:"languages" default:"es,en"`
}
