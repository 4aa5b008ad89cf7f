package ofsc

// Config holds configuration for the field service REST API.
type Config struct {
	// URL is the instance URL. Only scheme and host are used.
	URL string `mapstructure:"url" default:""`
	// ClientID is the REST application client id.
	ClientID string `mapstructure:"client_id" default:""`
	// ClientSecret is the REST application client secret.
	ClientSecret string `mapstructure:"client_secret" default:""`
	// TimeoutSeconds bounds every request.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
	// RulesProperty is the metadata property holding the rule configuration.
	RulesProperty string `mapstructure:"rules_property" default:"XA_REGLAS_EQ_FUENTE_CONTROL"`
	// EquipmentTypeProperty is the enumeration property describing equipment types.
	EquipmentTypeProperty string `mapstructure:"equipment_type_property" default:"XI_EQUIPMENTTYPE"`
	// PageSize is the page size for enumeration listings.
	PageSize int `mapstructure:"page_size" default:"100"`
}
