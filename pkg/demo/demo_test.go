package demo

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/doodlesbykumbi/clientprojects/pkg/store/storetest"
)

func TestRun(t *testing.T) {
	schema := &storetest.MockSchemaStore{}
	schema.On("Reset", mock.Anything).Return(nil).Once()

	var out, logs bytes.Buffer
	r := &Runner{
		Schema:  schema,
		Clients: storetest.NewMemory(),
		Out:     &out,
		Log:     zerolog.New(&logs),
	}

	require.NoError(t, r.Run(context.Background()))
	schema.AssertExpectations(t)

	assert.Contains(t, out.String(), "Client 1\n  Client1 proj 1\n  Client1 proj 2\n  Client1 proj 3\n")
	assert.NotContains(t, out.String(), "Client 333")
	assert.NotContains(t, out.String(), `"level"`, "logs must not reach the report")
	assert.Contains(t, logs.String(), `"clients":3`)
	assert.Contains(t, logs.String(), `"projects":0`)
}

func TestRunStopsOnResetError(t *testing.T) {
	schema := &storetest.MockSchemaStore{}
	schema.On("Reset", mock.Anything).Return(errors.New("failed to create tables: boom"))
	clients := &storetest.MockClientsStore{}

	var out bytes.Buffer
	r := &Runner{Schema: schema, Clients: clients, Out: &out, Log: zerolog.Nop()}

	err := r.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to create tables")
	clients.AssertNotCalled(t, "Transaction", mock.Anything)
	assert.Empty(t, out.String())
}

func TestRunStopsOnSeedError(t *testing.T) {
	schema := &storetest.MockSchemaStore{}
	schema.On("Reset", mock.Anything).Return(nil)
	clients := &storetest.MockClientsStore{}
	clients.On("Transaction", mock.Anything).Return(errors.New("duplicate key"))

	var out bytes.Buffer
	r := &Runner{Schema: schema, Clients: clients, Out: &out, Log: zerolog.Nop()}

	err := r.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to seed clients")
	clients.AssertNotCalled(t, "ClientsWithProjectNameContaining", mock.Anything, mock.Anything)
	assert.Empty(t, out.String())
}
