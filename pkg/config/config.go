package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	DefaultConfigPath  = "."
	DefaultEnvironment = "Development"

	// DefaultConnectionName is the connection string used to reach the datastore.
	DefaultConnectionName = "DefaultConnection"

	connectionStringEnvPrefix = "ConnectionStrings__"
)

// ErrMissingConnectionString is returned when a required connection string
// resolves to an empty value.
var ErrMissingConnectionString = errors.New("connection string is not configured")

// Config holds the application settings after all sources have been applied.
type Config struct {
	// ConnectionStrings maps a connection name to its connection string
	ConnectionStrings map[string]string `yaml:"connection_strings" json:"connection_strings"`

	// LogLevel is the minimum level written to the console log
	LogLevel string `yaml:"log_level" json:"log_level" validate:"omitempty,oneof=trace debug info warn error"`

	// SQLLog logs every SQL statement at debug level
	SQLLog bool `yaml:"sql_log" json:"sql_log"`

	// Environment selects the appsettings.<Environment>.yml file
	Environment string `yaml:"-" json:"environment" validate:"required"`

	// sources tracks where each value came from
	sources map[string]string

	// configFilePath is the path to the config file
	configFilePath string
}

// Attribute represents a configuration attribute with its value and source
type Attribute struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Source string `json:"source"`
}

// Options controls where Load looks for configuration.
type Options struct {
	// File is an explicit config file path. When set, the file must exist.
	File string
	// DotEnv is the .env file loaded before reading the environment.
	DotEnv string
}

func newDefault() *Config {
	return &Config{
		ConnectionStrings: map[string]string{},
		LogLevel:          "info",
		SQLLog:            false,
		Environment:       DefaultEnvironment,
		sources:           make(map[string]string),
	}
}

// Load reads configuration from the config file, the .env file and the
// process environment. Environment variables take precedence over file values.
func Load(opts Options) (*Config, error) {
	dotEnv := opts.DotEnv
	if dotEnv == "" {
		dotEnv = ".env"
	}
	// godotenv never overrides variables that are already set
	if err := godotenv.Load(dotEnv); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load %s: %w", dotEnv, err)
	}

	config := newDefault()
	for _, name := range []string{"log_level", "sql_log", "environment"} {
		config.sources[name] = "default"
	}

	if env := os.Getenv("APP_ENVIRONMENT"); env != "" {
		config.Environment = env
		config.sources["environment"] = "environment"
	}

	required := opts.File != ""
	config.configFilePath = opts.File
	if config.configFilePath == "" {
		configPath := os.Getenv("APP_CONFIG_PATH")
		if configPath == "" {
			configPath = DefaultConfigPath
		}
		config.configFilePath = filepath.Join(configPath, fileName(config.Environment))
	}

	data, err := os.ReadFile(config.configFilePath)
	switch {
	case err == nil:
		var fileConfig Config
		if err := yaml.Unmarshal(data, &fileConfig); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", config.configFilePath, err)
		}
		config.applyFileConfig(&fileConfig)
	case required || !errors.Is(err, os.ErrNotExist):
		return nil, fmt.Errorf("failed to read config file %s: %w", config.configFilePath, err)
	}

	if err := config.applyEnvConfig(os.Environ()); err != nil {
		return nil, err
	}

	return config, nil
}

func fileName(environment string) string {
	return fmt.Sprintf("appsettings.%s.yml", environment)
}

func (c *Config) applyFileConfig(file *Config) {
	for name, value := range file.ConnectionStrings {
		c.ConnectionStrings[name] = value
		c.sources[connectionKey(name)] = "file"
	}
	if file.LogLevel != "" {
		c.LogLevel = file.LogLevel
		c.sources["log_level"] = "file"
	}
	if file.SQLLog {
		c.SQLLog = true
		c.sources["sql_log"] = "file"
	}
}

func (c *Config) applyEnvConfig(environ []string) error {
	for _, kv := range environ {
		key, value, ok := strings.Cut(kv, "=")
		if !ok || value == "" {
			continue
		}
		if len(key) > len(connectionStringEnvPrefix) && strings.EqualFold(key[:len(connectionStringEnvPrefix)], connectionStringEnvPrefix) {
			c.setConnectionString(key[len(connectionStringEnvPrefix):], value, "environment")
		}
	}
	if val := os.Getenv("DATABASE_URL"); val != "" {
		c.setConnectionString(DefaultConnectionName, val, "environment")
	}
	if val := os.Getenv("APP_LOG_LEVEL"); val != "" {
		c.LogLevel = strings.ToLower(val)
		c.sources["log_level"] = "environment"
	}
	if val := os.Getenv("APP_SQL_LOG"); val != "" {
		b, err := strconv.ParseBool(val)
		if err != nil {
			return fmt.Errorf("invalid APP_SQL_LOG %q: %w", val, err)
		}
		c.SQLLog = b
		c.sources["sql_log"] = "environment"
	}
	return nil
}

// setConnectionString replaces any existing entry whose name matches
// case-insensitively so file and environment spellings collapse to one key.
func (c *Config) setConnectionString(name, value, source string) {
	for existing := range c.ConnectionStrings {
		if strings.EqualFold(existing, name) {
			name = existing
			break
		}
	}
	c.ConnectionStrings[name] = value
	c.sources[connectionKey(name)] = source
}

func connectionKey(name string) string {
	return "connection_strings." + name
}

// ConfigFilePath returns the path to the config file
func (c *Config) ConfigFilePath() string {
	return c.configFilePath
}

// Source returns the source of a configuration attribute
func (c *Config) Source(name string) string {
	if c.sources == nil {
		return "default"
	}
	if s, ok := c.sources[name]; ok {
		return s
	}
	return "default"
}

// ConnectionString looks up a connection string by name, ignoring case.
func (c *Config) ConnectionString(name string) string {
	if v, ok := c.ConnectionStrings[name]; ok {
		return v
	}
	for k, v := range c.ConnectionStrings {
		if strings.EqualFold(k, name) {
			return v
		}
	}
	return ""
}

// RequireConnectionString is ConnectionString but fails on an empty value.
func (c *Config) RequireConnectionString(name string) (string, error) {
	v := strings.TrimSpace(c.ConnectionString(name))
	if v == "" {
		return "", fmt.Errorf("%w: %s", ErrMissingConnectionString, name)
	}
	return v, nil
}

// SetLogLevel overrides the log level and records where the value came from.
func (c *Config) SetLogLevel(level, source string) {
	c.LogLevel = strings.ToLower(level)
	if c.sources == nil {
		c.sources = make(map[string]string)
	}
	c.sources["log_level"] = source
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// Attributes returns all configuration attributes with their values and sources
func (c *Config) Attributes() []Attribute {
	attrs := []Attribute{
		{Name: "environment", Value: c.Environment, Source: c.Source("environment")},
		{Name: "log_level", Value: c.LogLevel, Source: c.Source("log_level")},
		{Name: "sql_log", Value: strconv.FormatBool(c.SQLLog), Source: c.Source("sql_log")},
	}

	names := make([]string, 0, len(c.ConnectionStrings))
	for name := range c.ConnectionStrings {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		key := connectionKey(name)
		attrs = append(attrs, Attribute{Name: key, Value: redact(c.ConnectionStrings[name]), Source: c.Source(key)})
	}
	return attrs
}

const redacted = "xxxxx"

// password and sslpassword settings of a keyword/value connection string
var dsnPassword = regexp.MustCompile(`(\b(?:ssl)?password\s*=\s*)('(?:[^'\\]|\\.)*'|[^\s']\S*)`)

// redact masks the password of a connection string in any of the forms pgx
// accepts: URL userinfo, URL query parameter and keyword/value.
func redact(conn string) string {
	var masked string
	if strings.HasPrefix(conn, "postgres://") || strings.HasPrefix(conn, "postgresql://") {
		masked = redactURL(conn)
	} else {
		masked = dsnPassword.ReplaceAllString(conn, "${1}"+redacted)
	}

	// pgx found a password the masking above did not remove
	if pgConfig, err := pgconn.ParseConfig(conn); err == nil && pgConfig.Password != "" && strings.Contains(masked, pgConfig.Password) {
		return redacted
	}
	return masked
}

func redactURL(conn string) string {
	u, err := url.Parse(conn)
	if err != nil {
		return redacted
	}
	if _, ok := u.User.Password(); ok {
		u.User = url.UserPassword(u.User.Username(), redacted)
	}
	query := u.Query()
	changed := false
	for _, key := range []string{"password", "sslpassword"} {
		if query.Has(key) {
			query.Set(key, redacted)
			changed = true
		}
	}
	if changed {
		u.RawQuery = query.Encode()
	}
	return u.String()
}

// FormatText returns a text representation of the configuration
func (c *Config) FormatText() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Config file: %s\n\n", c.configFilePath))
	sb.WriteString(fmt.Sprintf("%-40s %-50s %s\n", "NAME", "VALUE", "SOURCE"))
	sb.WriteString(fmt.Sprintf("%-40s %-50s %s\n", "----", "-----", "------"))

	for _, attr := range c.Attributes() {
		value := attr.Value
		if value == "" {
			value = "(not set)"
		}
		sb.WriteString(fmt.Sprintf("%-40s %-50s %s\n", attr.Name, value, attr.Source))
	}
	return sb.String()
}

// FormatJSON returns a JSON representation of the configuration
func (c *Config) FormatJSON() (string, error) {
	result := map[string]interface{}{
		"config_file": c.configFilePath,
		"attributes":  c.Attributes(),
	}
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}
