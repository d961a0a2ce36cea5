package store

// Table is an ordered tabular snapshot of the remote sheet: a header row plus
// data rows, all cells as strings. Column order is the storage order and is
// preserved through normalization and export.
type Table struct {
	Columns []string
	Rows    [][]string
}

// IsEmpty reports whether the table has no columns and no rows.
func (t Table) IsEmpty() bool {
	return len(t.Columns) == 0 && len(t.Rows) == 0
}

// ColumnIndex returns the index of the first column with the given name, or
// -1 if no column matches.
func (t Table) ColumnIndex(name string) int {
	for i, c := range t.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// Cell returns the cell at (row, col), or "" when the coordinates fall
// outside the table. Short rows read as empty cells.
func (t Table) Cell(row, col int) string {
	if row < 0 || row >= len(t.Rows) || col < 0 {
		return ""
	}
	r := t.Rows[row]
	if col >= len(r) {
		return ""
	}
	return r[col]
}

// Clone returns a deep copy so callers can rewrite headers or append columns
// without aliasing the original.
func (t Table) Clone() Table {
	out := Table{
		Columns: append([]string(nil), t.Columns...),
		Rows:    make([][]string, len(t.Rows)),
	}
	for i, r := range t.Rows {
		out.Rows[i] = append([]string(nil), r...)
	}
	return out
}
