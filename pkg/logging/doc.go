// Package logging configures console logging for projectctl.
//
// Logs are written with zerolog's console writer to stderr so that stdout
// carries only the report. GormLogger adapts zerolog to gorm's logger
// interface; SQL statements are logged at debug level when sql_log is set.
package logging
