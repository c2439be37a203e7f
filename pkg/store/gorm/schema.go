package gorm

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/doodlesbykumbi/clientprojects/pkg/model"
	"github.com/doodlesbykumbi/clientprojects/pkg/store"
)

var _ store.SchemaStore = (*SchemaStore)(nil)

// SchemaStore implements store.SchemaStore with gorm's migrator.
type SchemaStore struct {
	db     *gorm.DB
	models []interface{}
}

// NewSchemaStore creates a SchemaStore for the mapped models.
func NewSchemaStore(db *gorm.DB) *SchemaStore {
	return &SchemaStore{db: db, models: model.All()}
}

// Drop removes the join table and every model table.
func (s *SchemaStore) Drop(ctx context.Context) error {
	tx := s.db.WithContext(ctx)

	// not a model, so the migrator does not know about it
	if err := tx.Exec("DROP TABLE IF EXISTS ? CASCADE", clause.Table{Name: model.ClientUserTable}).Error; err != nil {
		return fmt.Errorf("failed to drop table %s: %w", model.ClientUserTable, err)
	}
	if err := tx.Migrator().DropTable(s.models...); err != nil {
		return fmt.Errorf("failed to drop tables: %w", err)
	}
	return nil
}

// Create creates every model table with its keys, foreign keys and indexes.
func (s *SchemaStore) Create(ctx context.Context) error {
	if err := s.db.WithContext(ctx).AutoMigrate(s.models...); err != nil {
		return fmt.Errorf("failed to create tables: %w", err)
	}
	return nil
}

// Reset drops and recreates the schema.
func (s *SchemaStore) Reset(ctx context.Context) error {
	if err := s.Drop(ctx); err != nil {
		return err
	}
	return s.Create(ctx)
}
