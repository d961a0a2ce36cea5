package sheet

import (
	"context"
	"encoding/csv"
	"fmt"
	"net/http"
	"time"

	"github.com/diarioapp/diario/internal/store"
)

// ExportURL builds the anonymous CSV export URL for a spreadsheet's first tab.
func ExportURL(sheetID string) string {
	return fmt.Sprintf("https://docs.google.com/spreadsheets/d/%s/export?format=csv&gid=0", sheetID)
}

// CSVClient reads a published spreadsheet through its public CSV export.
// No credential is needed; the sheet must be shared by link.
type CSVClient struct {
	exportURL  string
	httpClient *http.Client
}

// NewCSVClient creates a client for the given export URL.
func NewCSVClient(exportURL string) *CSVClient {
	return &CSVClient{
		exportURL:  exportURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// ReadTable fetches and parses the CSV export. The first record is the header
// row; short records are padded so every row has one cell per column.
func (c *CSVClient) ReadTable(ctx context.Context) (store.Table, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.exportURL, nil)
	if err != nil {
		return store.Table{}, fmt.Errorf("%w: %v", store.ErrFetch, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return store.Table{}, fmt.Errorf("%w: %v", store.ErrFetch, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return store.Table{}, fmt.Errorf("%w: unexpected status %d", store.ErrFetch, resp.StatusCode)
	}

	reader := csv.NewReader(resp.Body)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return store.Table{}, fmt.Errorf("%w: parsing csv: %v", store.ErrFetch, err)
	}
	if len(records) == 0 {
		return store.Table{}, nil
	}

	table := store.Table{Columns: records[0]}
	for _, rec := range records[1:] {
		row := make([]string, len(table.Columns))
		copy(row, rec)
		table.Rows = append(table.Rows, row)
	}
	return table, nil
}
