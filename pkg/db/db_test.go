package db

import (
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/doodlesbykumbi/clientprojects/pkg/config"
	"github.com/doodlesbykumbi/clientprojects/pkg/dberr"
)

func TestFromAppConfig(t *testing.T) {
	cfg := &config.Config{
		ConnectionStrings: map[string]string{"DefaultConnection": "postgres://localhost/clients"},
		SQLLog:            true,
	}

	dbCfg, err := FromAppConfig(cfg, zerolog.Nop())
	require.NoError(t, err)
	assert.Equal(t, "postgres://localhost/clients", dbCfg.URL)
	assert.True(t, dbCfg.SQLLog)
}

func TestFromAppConfigMissingConnectionString(t *testing.T) {
	_, err := FromAppConfig(&config.Config{}, zerolog.Nop())
	assert.ErrorIs(t, err, config.ErrMissingConnectionString)
}

func TestConnectRequiresURL(t *testing.T) {
	_, err := Connect(Config{})
	assert.ErrorIs(t, err, config.ErrMissingConnectionString)
}

func TestConnectWrapsExistingConn(t *testing.T) {
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)

	gormDB, err := Connect(Config{Conn: conn, Logger: zerolog.Nop()})
	require.NoError(t, err)
	assert.True(t, gormDB.Config.TranslateError)

	mock.ExpectClose()
	require.NoError(t, Close(gormDB))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFromAppConfigTraceWire(t *testing.T) {
	cfg := &config.Config{ConnectionStrings: map[string]string{"DefaultConnection": "postgres://localhost/clients"}}

	dbCfg, err := FromAppConfig(cfg, zerolog.Nop().Level(zerolog.TraceLevel))
	require.NoError(t, err)
	assert.True(t, dbCfg.TraceWire)

	dbCfg, err = FromAppConfig(cfg, zerolog.Nop().Level(zerolog.InfoLevel))
	require.NoError(t, err)
	assert.False(t, dbCfg.TraceWire)
}

func TestConnectRejectsMalformedURL(t *testing.T) {
	_, err := Connect(Config{URL: "postgres://localhost:notaport/clients", Logger: zerolog.Nop()})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse connection string")
}

func TestOpenDoesNotDial(t *testing.T) {
	conn, err := open(Config{URL: "postgres://u:p@127.0.0.1:1/clients", TraceWire: true, Logger: zerolog.Nop()})
	require.NoError(t, err)
	assert.NoError(t, conn.Close())
}

func TestTranslateKeepsConstraint(t *testing.T) {
	d := constraintDialector{&postgres.Dialector{Config: &postgres.Config{}}}

	err := d.Translate(&pgconn.PgError{Code: "23505", ConstraintName: "IX_Client_Name"})
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
	assert.Equal(t, "IX_Client_Name", dberr.Constraint(err))
	assert.Equal(t, dberr.UniqueViolation, dberr.Classify(err))

	other := &pgconn.PgError{Code: "42P01"}
	assert.Same(t, other, d.Translate(other))

	plain := errors.New("connection reset")
	assert.Equal(t, plain, d.Translate(plain))
}
