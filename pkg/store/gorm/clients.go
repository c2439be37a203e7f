package gorm

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/doodlesbykumbi/clientprojects/pkg/model"
	"github.com/doodlesbykumbi/clientprojects/pkg/store"
)

// Ensure ClientsStore implements store.ClientsStore
var _ store.ClientsStore = (*ClientsStore)(nil)

// ClientsStore implements store.ClientsStore using GORM
type ClientsStore struct {
	db *gorm.DB
}

// NewClientsStore creates a new ClientsStore
func NewClientsStore(db *gorm.DB) *ClientsStore {
	return &ClientsStore{db: db}
}

// Transaction wraps operations in a database transaction.
func (s *ClientsStore) Transaction(ctx context.Context, fn func(store.ClientsStore) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&ClientsStore{db: tx})
	})
}

// CreateClients inserts the clients and, through the has-many association,
// their projects.
func (s *ClientsStore) CreateClients(ctx context.Context, clients []model.Client) error {
	if len(clients) == 0 {
		return nil
	}
	if err := s.db.WithContext(ctx).Create(&clients).Error; err != nil {
		return fmt.Errorf("failed to create clients: %w", err)
	}
	return nil
}

// ClientsWithProjectNameContaining filters with a semi-join and then loads
// the full project collection of each match.
func (s *ClientsStore) ClientsWithProjectNameContaining(ctx context.Context, substr string) ([]model.Client, error) {
	var clients []model.Client
	err := s.db.WithContext(ctx).
		Scopes(HavingProjectNameContaining(substr), WithProjects).
		Find(&clients).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query clients: %w", err)
	}
	return clients, nil
}

// HavingProjectNameContaining keeps the clients owning at least one project
// whose name contains substr. It does not load any projects.
func HavingProjectNameContaining(substr string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		projects := db.Session(&gorm.Session{NewDB: true}).
			Model(&model.Project{}).
			Select("1").
			Where(`"Project".client_id = "Client".id AND "Project".name LIKE ?`, containsPattern(substr))
		return db.Model(&model.Client{}).Where("EXISTS (?)", projects)
	}
}

// WithProjects eagerly loads every project of the selected clients.
func WithProjects(db *gorm.DB) *gorm.DB {
	return db.Preload("Projects")
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern builds a LIKE pattern matching substr literally anywhere.
// Backslash is PostgreSQL's default LIKE escape character.
func containsPattern(substr string) string {
	return "%" + likeEscaper.Replace(substr) + "%"
}
