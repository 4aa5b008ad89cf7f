// Package config provides configuration management for the equipment validator.
//
// Values come from environment variables, optionally seeded from a .env file.
// Defaults live in `default` struct tags on each section and are registered in
// Viper by reflection, so every key is also bindable from the environment
// (SECTION_KEY, e.g. OFSC_CLIENT_SECRET).
//
// # Configuration Structure
//
//   - Server: HTTP port, API key and timeouts
//   - Log: level and format
//   - Database: rule overrides database (mysql or sqlite)
//   - Storage: S3/MinIO bucket holding the rule snapshot
//   - OFSC: field service instance URL, REST credentials and property names
//   - Catalog: description cache TTL and language preference
//   - Rules: rule source, snapshot object, cache TTL and duplicate policy
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Server.Port)
package config
