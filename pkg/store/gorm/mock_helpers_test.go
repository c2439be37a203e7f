package gorm

import (
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/doodlesbykumbi/clientprojects/pkg/db"
)

// MockDB wraps sqlmock for easier test setup
type MockDB struct {
	DB     *sql.DB
	Mock   sqlmock.Sqlmock
	GormDB *gorm.DB
}

// newMockDB opens a gorm session over sqlmock with the same options
// db.Connect uses against a real server.
func newMockDB(t *testing.T) *MockDB {
	t.Helper()

	conn, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}

	gormDB, err := db.Connect(db.Config{Conn: conn, Logger: zerolog.Nop()})
	if err != nil {
		_ = conn.Close()
		t.Fatalf("failed to open gorm: %v", err)
	}

	t.Cleanup(func() { _ = conn.Close() })
	return &MockDB{DB: conn, Mock: mock, GormDB: gormDB}
}

// VerifyExpectations checks all expectations were met
func (m *MockDB) VerifyExpectations(t *testing.T) {
	t.Helper()
	if err := m.Mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}
