package sheet

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/diarioapp/diario/internal/store"
)

func TestNewAPIClient_MissingCredential(t *testing.T) {
	_, err := NewAPIClient(context.Background(), "sheet-id", nil)
	require.ErrorIs(t, err, store.ErrAuth)
}

func TestNewAPIClient_MalformedCredential(t *testing.T) {
	_, err := NewAPIClient(context.Background(), "sheet-id", []byte("{not json"))
	require.ErrorIs(t, err, store.ErrAuth)
}

func TestColumnName(t *testing.T) {
	cases := map[int]string{
		1:  "A",
		7:  "G",
		26: "Z",
		27: "AA",
		52: "AZ",
		53: "BA",
	}
	for col, want := range cases {
		require.Equal(t, want, columnName(col))
	}
}

func TestCellString(t *testing.T) {
	require.Equal(t, "", cellString(nil))
	require.Equal(t, "✅", cellString("✅"))
	require.Equal(t, "42", cellString(42))
}
