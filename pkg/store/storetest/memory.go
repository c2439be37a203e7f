package storetest

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/doodlesbykumbi/clientprojects/pkg/model"
	"github.com/doodlesbykumbi/clientprojects/pkg/store"
)

var _ store.ClientsStore = (*Memory)(nil)

// Memory is an in-memory store.ClientsStore. Client names and project names
// within a client are unique, and violations report gorm.ErrDuplicatedKey
// together with the index name like the gorm store does.
type Memory struct {
	mu      sync.Mutex
	clients []model.Client
}

// NewMemory returns an empty Memory store.
func NewMemory() *Memory {
	return &Memory{}
}

// Clients returns a copy of the committed clients in insertion order.
func (m *Memory) Clients() []model.Client {
	m.mu.Lock()
	defer m.mu.Unlock()
	return cloneClients(m.clients)
}

// Transaction runs fn against a scratch copy and keeps the copy only when fn
// succeeds.
func (m *Memory) Transaction(ctx context.Context, fn func(store.ClientsStore) error) error {
	m.mu.Lock()
	tx := &Memory{clients: cloneClients(m.clients)}
	m.mu.Unlock()

	if err := fn(tx); err != nil {
		return err
	}

	m.mu.Lock()
	m.clients = tx.clients
	m.mu.Unlock()
	return nil
}

// CreateClients assigns missing ids, links projects to their client and
// appends everything, or nothing when a uniqueness rule is broken.
func (m *Memory) CreateClients(ctx context.Context, clients []model.Client) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	names := make(map[string]bool, len(m.clients)+len(clients))
	for _, c := range m.clients {
		names[c.Name] = true
	}
	for i := range clients {
		c := &clients[i]
		if names[c.Name] {
			return fmt.Errorf("failed to create clients: client %q: %w", c.Name, uniqueViolation(model.ClientNameIndex))
		}
		names[c.Name] = true

		projects := make(map[string]bool, len(c.Projects))
		for _, p := range c.Projects {
			if projects[p.Name] {
				return fmt.Errorf("failed to create clients: project %q of %q: %w", p.Name, c.Name, uniqueViolation(model.ProjectNameIndex))
			}
			projects[p.Name] = true
		}
	}

	for i := range clients {
		c := &clients[i]
		if c.ID == uuid.Nil {
			c.ID = uuid.New()
		}
		for j := range c.Projects {
			p := &c.Projects[j]
			if p.ID == uuid.Nil {
				p.ID = uuid.New()
			}
			p.ClientID = c.ID
		}
	}
	m.clients = append(m.clients, cloneClients(clients)...)
	return nil
}

// ClientsWithProjectNameContaining matches with strings.Contains, which is
// case-sensitive like LIKE.
func (m *Memory) ClientsWithProjectNameContaining(ctx context.Context, substr string) ([]model.Client, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	var out []model.Client
	for _, c := range m.clients {
		for _, p := range c.Projects {
			if strings.Contains(p.Name, substr) {
				out = append(out, cloneClients([]model.Client{c})...)
				break
			}
		}
	}
	return out, nil
}

func cloneClients(in []model.Client) []model.Client {
	if in == nil {
		return nil
	}
	out := make([]model.Client, len(in))
	for i, c := range in {
		out[i] = c
		if c.Projects != nil {
			out[i].Projects = append([]model.Project(nil), c.Projects...)
		}
	}
	return out
}

func uniqueViolation(index string) error {
	return fmt.Errorf("%w: %w", gorm.ErrDuplicatedKey, &pgconn.PgError{
		Severity:       "ERROR",
		Code:           "23505",
		Message:        "duplicate key value violates unique constraint \"" + index + "\"",
		ConstraintName: index,
	})
}
