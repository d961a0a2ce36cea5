package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/diarioapp/diario/internal/store"
)

// TableReader is a mock for store.TableReader.
type TableReader struct {
	mock.Mock
}

func (m *TableReader) ReadTable(ctx context.Context) (store.Table, error) {
	args := m.Called(ctx)
	if t, ok := args.Get(0).(store.Table); ok {
		return t, args.Error(1)
	}
	return store.Table{}, args.Error(1)
}

// CellWriter is a mock for store.CellWriter.
type CellWriter struct {
	mock.Mock
}

func (m *CellWriter) ReadTable(ctx context.Context) (store.Table, error) {
	args := m.Called(ctx)
	if t, ok := args.Get(0).(store.Table); ok {
		return t, args.Error(1)
	}
	return store.Table{}, args.Error(1)
}

func (m *CellWriter) UpdateCell(ctx context.Context, row, col int, value string) error {
	args := m.Called(ctx, row, col, value)
	return args.Error(0)
}
