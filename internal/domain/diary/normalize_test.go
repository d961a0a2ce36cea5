package diary_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/diarioapp/diario/internal/domain/diary"
	"github.com/diarioapp/diario/internal/store"
)

func TestNormalize_RenamesByFragment(t *testing.T) {
	raw := store.Table{
		Columns: []string{"DATA", "Orario", "Materia X", "STATO!!"},
		Rows: [][]string{
			{"2026-08-25", "08:00", "Matematica", "✅"},
		},
	}

	got := diary.Normalize(raw)

	require.Contains(t, got.Columns, "Data")
	require.Contains(t, got.Columns, "Ora")
	require.Contains(t, got.Columns, "Materia")
	require.Contains(t, got.Columns, "Stato")

	// matched columns keep their position
	require.Equal(t, []string{"Data", "Ora", "Materia", "Stato"}, got.Columns[:4])

	// unmatched canonical columns are appended and empty
	for _, name := range []string{"Giorno", "Attività", "Tipo", "Punteggio", "Note"} {
		idx := got.ColumnIndex(name)
		require.GreaterOrEqual(t, idx, 4, name)
		require.Equal(t, "", got.Cell(0, idx), name)
	}
}

func TestNormalize_DoesNotMutateInput(t *testing.T) {
	raw := store.Table{
		Columns: []string{"data"},
		Rows:    [][]string{{"2026-08-25"}},
	}
	_ = diary.Normalize(raw)
	require.Equal(t, []string{"data"}, raw.Columns)
	require.Len(t, raw.Rows[0], 1)
}

func TestNormalize_DuplicateHeaderLastWins(t *testing.T) {
	// Two columns match the "data" fragment. The later one must win when
	// entries are built; this last-write-wins behavior is documented and
	// pinned here.
	raw := store.Table{
		Columns: []string{"Data inizio", "Data fine", "Ora"},
		Rows: [][]string{
			{"2026-08-01", "2026-08-02", "08:00"},
		},
	}

	normalized := diary.Normalize(raw)
	entries := diary.Entries(normalized, diary.DefaultPoints())
	require.Len(t, entries, 1)
	require.Equal(t, "2026-08-02", entries[0].Date)
}

func TestNormalize_KeepsUnmatchedColumns(t *testing.T) {
	raw := store.Table{
		Columns: []string{"Data", "Missione speciale"},
		Rows:    [][]string{{"2026-08-25", "leggere 10 pagine"}},
	}
	got := diary.Normalize(raw)
	require.Equal(t, "Missione speciale", got.Columns[1])
	require.Equal(t, "leggere 10 pagine", got.Cell(0, 1))
}

func TestEntries_ScoresAndDates(t *testing.T) {
	raw := store.Table{
		Columns: []string{"Data", "Giorno", "Ora", "Attività", "Materia", "Tipo", "Stato", "Punteggio", "Note"},
		Rows: [][]string{
			{"2026-08-25", "Martedì", "08:00", "Studio", "Matematica", "Compiti", "✅", "", "ripasso"},
			{"25/08/2026", "", "09:00", "", "Storia", "", "⚠️", "", ""},
			{"non una data", "", "10:00", "", "", "", "❌", "", ""},
		},
	}

	entries := diary.Entries(diary.Normalize(raw), diary.DefaultPoints())
	require.Len(t, entries, 3)

	require.Equal(t, 10, entries[0].Score)
	require.True(t, entries[0].HasDay)
	require.Equal(t, time.Date(2026, 8, 25, 0, 0, 0, 0, time.UTC), entries[0].Day)
	require.Equal(t, "Matematica", entries[0].Subject)
	require.Equal(t, "ripasso", entries[0].Notes)

	// Italian-locale date format parses to the same day
	require.True(t, entries[1].HasDay)
	require.Equal(t, entries[0].Day, entries[1].Day)

	// opaque date: excluded from day views but still scored
	require.False(t, entries[2].HasDay)
	require.Equal(t, 0, entries[2].Score)
}

func TestParseDate(t *testing.T) {
	cases := []struct {
		in string
		ok bool
	}{
		{"2026-08-25", true},
		{"25/08/2026", true},
		{"5/8/2026", true},
		{" 2026-08-25 ", true},
		{"", false},
		{"domani", false},
		{"2026/08/25", false},
	}
	for _, tc := range cases {
		_, ok := diary.ParseDate(tc.in)
		require.Equal(t, tc.ok, ok, tc.in)
	}
}
