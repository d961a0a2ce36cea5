package store

import "context"

// TableReader fetches the current remote table.
type TableReader interface {
	ReadTable(ctx context.Context) (Table, error)
}

// CellWriter reads the remote table and patches single cells in place.
// Coordinates are 1-based sheet coordinates: row 1 is the header row, column 1
// is the leftmost column.
type CellWriter interface {
	TableReader
	UpdateCell(ctx context.Context, row, col int, value string) error
}
