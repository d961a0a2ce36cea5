package sheet

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/diarioapp/diario/internal/store"
)

// credentialScopes are the spreadsheet and drive read/write scopes the
// service account must be granted.
var credentialScopes = []string{
	"https://www.googleapis.com/auth/spreadsheets",
	"https://www.googleapis.com/auth/drive",
}

// APIClient talks to the Google Sheets API with a service-account credential.
// All ranges omit the sheet prefix, which resolves them to the first sheet of
// the document.
type APIClient struct {
	svc           *sheets.Service
	spreadsheetID string
}

// NewAPIClient validates the credential JSON and builds an authenticated
// client for the given spreadsheet.
func NewAPIClient(ctx context.Context, spreadsheetID string, credentialJSON []byte) (*APIClient, error) {
	if len(credentialJSON) == 0 {
		return nil, fmt.Errorf("%w: no credential supplied", store.ErrAuth)
	}
	if _, err := google.CredentialsFromJSON(ctx, credentialJSON, credentialScopes...); err != nil {
		return nil, fmt.Errorf("%w: %v", store.ErrAuth, err)
	}

	svc, err := sheets.NewService(ctx,
		option.WithCredentialsJSON(credentialJSON),
		option.WithScopes(credentialScopes...),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", store.ErrWriteUnavailable, err)
	}

	return &APIClient{svc: svc, spreadsheetID: spreadsheetID}, nil
}

// ReadTable reads every populated cell of the first sheet. The first row is
// the header; rows are padded to the header width.
func (c *APIClient) ReadTable(ctx context.Context) (store.Table, error) {
	resp, err := c.svc.Spreadsheets.Values.Get(c.spreadsheetID, "A1:ZZ").Context(ctx).Do()
	if err != nil {
		return store.Table{}, fmt.Errorf("%w: %v", readErrKind(err), err)
	}
	if len(resp.Values) == 0 {
		return store.Table{}, nil
	}

	columns := make([]string, len(resp.Values[0]))
	for i, v := range resp.Values[0] {
		columns[i] = cellString(v)
	}

	table := store.Table{Columns: columns}
	for _, raw := range resp.Values[1:] {
		row := make([]string, len(columns))
		for i := range row {
			if i < len(raw) {
				row[i] = cellString(raw[i])
			}
		}
		table.Rows = append(table.Rows, row)
	}
	return table, nil
}

// UpdateCell overwrites one cell at 1-based sheet coordinates.
func (c *APIClient) UpdateCell(ctx context.Context, row, col int, value string) error {
	cellRange := fmt.Sprintf("%s%d", columnName(col), row)
	body := &sheets.ValueRange{Values: [][]any{{value}}}
	_, err := c.svc.Spreadsheets.Values.Update(c.spreadsheetID, cellRange, body).
		ValueInputOption("USER_ENTERED").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("%w: %v", store.ErrWrite, err)
	}
	return nil
}

func readErrKind(err error) error {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		if apiErr.Code == http.StatusUnauthorized || apiErr.Code == http.StatusForbidden {
			return store.ErrAuth
		}
	}
	return store.ErrFetch
}

func cellString(v any) string {
	if v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", v)
}

// columnName converts a 1-based column index to its A1 letter form.
func columnName(col int) string {
	name := ""
	for col > 0 {
		col--
		name = string(rune('A'+col%26)) + name
		col /= 26
	}
	return name
}
