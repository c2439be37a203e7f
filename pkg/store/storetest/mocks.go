package storetest

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/doodlesbykumbi/clientprojects/pkg/model"
	"github.com/doodlesbykumbi/clientprojects/pkg/store"
)

var (
	_ store.SchemaStore  = (*MockSchemaStore)(nil)
	_ store.ClientsStore = (*MockClientsStore)(nil)
	_ store.HealthStore  = (*MockHealthStore)(nil)
)

// MockSchemaStore implements store.SchemaStore for testing using testify/mock
type MockSchemaStore struct {
	mock.Mock
}

func (m *MockSchemaStore) Drop(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockSchemaStore) Create(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockSchemaStore) Reset(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

// MockClientsStore implements store.ClientsStore for testing using testify/mock.
// Transaction records the call and, unless an error is configured, runs fn
// against the mock itself.
type MockClientsStore struct {
	mock.Mock
}

func (m *MockClientsStore) Transaction(ctx context.Context, fn func(store.ClientsStore) error) error {
	if err := m.Called(ctx).Error(0); err != nil {
		return err
	}
	return fn(m)
}

func (m *MockClientsStore) CreateClients(ctx context.Context, clients []model.Client) error {
	return m.Called(ctx, clients).Error(0)
}

func (m *MockClientsStore) ClientsWithProjectNameContaining(ctx context.Context, substr string) ([]model.Client, error) {
	args := m.Called(ctx, substr)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Client), args.Error(1)
}

// MockHealthStore implements store.HealthStore for testing using testify/mock
type MockHealthStore struct {
	mock.Mock
}

func (m *MockHealthStore) CheckConnectivity(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}
