package db

import (
	"database/sql"
	"errors"
	"fmt"

	pgxzero "github.com/jackc/pgx-zerolog"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/jackc/pgx/v5/tracelog"
	"github.com/rs/zerolog"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/doodlesbykumbi/clientprojects/pkg/config"
	"github.com/doodlesbykumbi/clientprojects/pkg/logging"
)

// Config holds database connection configuration
type Config struct {
	// URL is the database connection string
	URL string
	// SQLLog logs every statement at debug level
	SQLLog bool
	// TraceWire attaches a pgx tracer logging connection and protocol events
	TraceWire bool
	// Logger receives gorm's log output
	Logger zerolog.Logger
	// Conn is an existing connection to wrap instead of dialing URL
	Conn *sql.DB
}

// FromAppConfig resolves the DefaultConnection connection string.
func FromAppConfig(cfg *config.Config, log zerolog.Logger) (Config, error) {
	url, err := cfg.RequireConnectionString(config.DefaultConnectionName)
	if err != nil {
		return Config{}, err
	}
	return Config{
		URL:       url,
		SQLLog:    cfg.SQLLog,
		TraceWire: log.GetLevel() == zerolog.TraceLevel,
		Logger:    log,
	}, nil
}

// Connect opens a gorm session against PostgreSQL.
func Connect(cfg Config) (*gorm.DB, error) {
	conn := cfg.Conn
	if conn == nil {
		if cfg.URL == "" {
			return nil, fmt.Errorf("%w: %s", config.ErrMissingConnectionString, config.DefaultConnectionName)
		}
		var err error
		if conn, err = open(cfg); err != nil {
			return nil, err
		}
	}

	db, err := gorm.Open(
		constraintDialector{&postgres.Dialector{Config: &postgres.Config{Conn: conn}}},
		&gorm.Config{
			Logger:         logging.NewGormLogger(cfg.Logger, cfg.SQLLog),
			TranslateError: true,
		},
	)
	if err != nil {
		if cfg.Conn == nil {
			_ = conn.Close()
		}
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return db, nil
}

// constraintDialector translates driver errors like the postgres dialector
// but keeps the *pgconn.PgError in the chain, so the violated constraint
// name survives TranslateError.
type constraintDialector struct {
	*postgres.Dialector
}

func (d constraintDialector) Translate(err error) error {
	translated := d.Dialector.Translate(err)
	if translated == nil || errors.Is(translated, err) {
		return translated
	}
	return fmt.Errorf("%w: %w", translated, err)
}

// open builds the pgx backed connection pool for cfg.URL.
func open(cfg Config) (*sql.DB, error) {
	connConfig, err := pgx.ParseConfig(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse connection string: %w", err)
	}
	// disables implicit prepared statement usage
	connConfig.DefaultQueryExecMode = pgx.QueryExecModeSimpleProtocol

	if cfg.TraceWire {
		connConfig.Tracer = &tracelog.TraceLog{
			Logger:   pgxzero.NewLogger(cfg.Logger),
			LogLevel: tracelog.LogLevelTrace,
		}
	}
	return stdlib.OpenDB(*connConfig), nil
}

// Close releases the connection pool behind db.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
