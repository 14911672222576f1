// Package config provides configuration management for Lunar Assistant.
//
// It uses Viper to read environment variables, with an optional .env file
// loaded first through godotenv. Defaults come from the `default` struct
// tags of each section and are registered by reflection, which also makes
// every key visible to AutomaticEnv.
//
// # Configuration Structure
//
// Each section's struct lives in the package that consumes it:
//   - Server: HTTP port, API key, timeouts
//   - Log: level and format
//   - Database: driver (mysql, sqlite) and connection details
//   - Storage: S3/MinIO credentials and bucket
//   - Rules: rule configuration backend (storage, database) and key prefix
//   - Platform: Discord API URL, bot token, bot role name, rate and retries
//   - Sources: holdings source URLs, timeouts and rate limits
//   - Reconcile: per-user lock timeout
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    return err
//	}
//	fmt.Println(cfg.Server.Port)
package config
