// Package config provides configuration management for projectctl.
//
// Configuration is layered, later sources winning:
//
//   - Built-in defaults
//   - appsettings.<Environment>.yml (APP_CONFIG_PATH, default ".")
//   - A .env file in the working directory
//   - Environment variables
//
// # Key Configuration Options
//
//   - ConnectionStrings__DefaultConnection: PostgreSQL connection string
//   - DATABASE_URL: Shorthand for the DefaultConnection connection string
//   - APP_ENVIRONMENT: Selects the settings file (default "Development")
//   - APP_LOG_LEVEL: Logging verbosity (trace, debug, info, warn, error)
//   - APP_SQL_LOG: Log every SQL statement at debug level
//
// A loaded *Config is passed explicitly to the packages that need it; there
// is no process-wide configuration.
package config
