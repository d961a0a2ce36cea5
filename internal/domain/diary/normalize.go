package diary

import (
	"strings"
	"time"

	"github.com/diarioapp/diario/internal/store"
)

// Canonical column names of the diary template, in schema order.
const (
	ColData      = "Data"
	ColGiorno    = "Giorno"
	ColOra       = "Ora"
	ColAttivita  = "Attività"
	ColMateria   = "Materia"
	ColTipo      = "Tipo"
	ColStato     = "Stato"
	ColPunteggio = "Punteggio"
	ColNote      = "Note"
)

var canonicalColumns = []string{
	ColData, ColGiorno, ColOra, ColAttivita, ColMateria,
	ColTipo, ColStato, ColPunteggio, ColNote,
}

// headerFragments maps lowercase header fragments to canonical names. Order
// matters: the first fragment contained in a header decides its canonical
// name.
var headerFragments = []struct {
	fragment  string
	canonical string
}{
	{"data", ColData},
	{"gior", ColGiorno},
	{"ora", ColOra},
	{"attiv", ColAttivita},
	{"mater", ColMateria},
	{"tipo", ColTipo},
	{"stat", ColStato},
	{"punt", ColPunteggio},
	{"note", ColNote},
}

// canonicalFor matches a source header against the fragment table.
func canonicalFor(header string) (string, bool) {
	lc := strings.ToLower(strings.TrimSpace(header))
	for _, f := range headerFragments {
		if strings.Contains(lc, f.fragment) {
			return f.canonical, true
		}
	}
	return "", false
}

// canonicalIndexes maps canonical column names to column indexes in t. When
// two columns match the same canonical name the later one wins; callers rely
// on this documented last-write-wins behavior.
func canonicalIndexes(t store.Table) map[string]int {
	idx := make(map[string]int)
	for i, col := range t.Columns {
		if name, ok := canonicalFor(col); ok {
			idx[name] = i
		}
	}
	return idx
}

// Normalize renames matched columns to their canonical names, keeps column
// order and unmatched columns as they are, and appends any missing canonical
// column filled with empty text.
func Normalize(raw store.Table) store.Table {
	t := raw.Clone()
	for i, col := range t.Columns {
		if name, ok := canonicalFor(col); ok {
			t.Columns[i] = name
		}
	}
	for _, name := range canonicalColumns {
		if t.ColumnIndex(name) >= 0 {
			continue
		}
		t.Columns = append(t.Columns, name)
		for i := range t.Rows {
			t.Rows[i] = append(t.Rows[i], "")
		}
	}
	return t
}

// Entries builds the entry list from a normalized table, recomputing each
// score from the current points.
func Entries(normalized store.Table, points Points) []Entry {
	idx := canonicalIndexes(normalized)
	cell := func(row int, name string) string {
		col, ok := idx[name]
		if !ok {
			return ""
		}
		return normalized.Cell(row, col)
	}

	entries := make([]Entry, 0, len(normalized.Rows))
	for i := range normalized.Rows {
		e := Entry{
			Row:      i,
			Date:     cell(i, ColData),
			Weekday:  cell(i, ColGiorno),
			Time:     cell(i, ColOra),
			Activity: cell(i, ColAttivita),
			Subject:  cell(i, ColMateria),
			Kind:     cell(i, ColTipo),
			Status:   Status(strings.TrimSpace(cell(i, ColStato))),
			Notes:    cell(i, ColNote),
		}
		e.Day, e.HasDay = ParseDate(e.Date)
		e.Score = Score(e.Status, points)
		entries = append(entries, e)
	}
	return entries
}

// dateFormats are the shapes a Google Sheets date cell shows up as in an
// Italian-locale sheet, plus ISO.
var dateFormats = []string{"2006-01-02", "02/01/2006", "2/1/2006"}

// ParseDate parses a diary date cell. Unparseable dates are treated as
// opaque text: the entry stays in aggregates but is excluded from day views.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateFormats {
		if d, err := time.Parse(layout, s); err == nil {
			return d, true
		}
	}
	return time.Time{}, false
}
