package diary

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/diarioapp/diario/internal/store"
)

// ClientFactory builds an authenticated read-write client from a
// service-account credential. It fails with store.ErrAuth on a bad credential
// and store.ErrWriteUnavailable when the client cannot be constructed.
type ClientFactory func(ctx context.Context, credentialJSON []byte) (store.CellWriter, error)

// Service orchestrates loading, scoring and saving diary entries.
type Service struct {
	reader store.TableReader
	writer ClientFactory
	logger *slog.Logger
}

// NewService creates a diary service. reader serves read-only loads, writer
// builds per-credential read-write clients.
func NewService(reader store.TableReader, writer ClientFactory, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{reader: reader, writer: writer, logger: logger}
}

// Options carries the session-scoped settings every operation depends on.
type Options struct {
	Mode           Mode
	Points         Points
	CredentialJSON []byte
}

// Snapshot is one loaded view of the sheet: the raw table as stored, the
// normalized table, and the scored entries.
type Snapshot struct {
	Mode    Mode
	Points  Points
	Raw     store.Table
	Table   store.Table
	Entries []Entry
}

// Load fetches the sheet in the session's mode. On failure it returns an
// empty snapshot together with the error so the view stays renderable.
func (s *Service) Load(ctx context.Context, opts Options) (*Snapshot, error) {
	empty := &Snapshot{Mode: opts.Mode, Points: opts.Points, Table: Normalize(store.Table{})}

	var raw store.Table
	var err error
	switch opts.Mode {
	case ModeReadWrite:
		if len(opts.CredentialJSON) == 0 {
			return empty, fmt.Errorf("%w: upload a service-account credential to enable writing", store.ErrAuth)
		}
		var client store.CellWriter
		client, err = s.writer(ctx, opts.CredentialJSON)
		if err == nil {
			raw, err = client.ReadTable(ctx)
		}
	default:
		raw, err = s.reader.ReadTable(ctx)
	}
	if err != nil {
		s.logger.Warn("sheet load failed", "mode", opts.Mode, "error", err)
		return empty, err
	}

	normalized := Normalize(raw)
	return &Snapshot{
		Mode:    opts.Mode,
		Points:  opts.Points,
		Raw:     raw,
		Table:   normalized,
		Entries: Entries(normalized, opts.Points),
	}, nil
}

// SaveStatus patches the Stato cell of the first remote row whose Data and
// Ora cells equal the key. At most one attempt, no retry; the read cache is
// not invalidated, so the change may not show up until the cache window
// elapses.
func (s *Service) SaveStatus(ctx context.Context, opts Options, key EntryKey, status Status) error {
	if opts.Mode != ModeReadWrite || len(opts.CredentialJSON) == 0 {
		return ErrReadOnly
	}
	if _, ok := ParseStatus(string(status)); !ok {
		return ErrInvalidStatus
	}

	client, err := s.writer(ctx, opts.CredentialJSON)
	if err != nil {
		return err
	}

	table, err := client.ReadTable(ctx)
	if err != nil {
		return err
	}

	statoCol, ok := canonicalIndexes(table)[ColStato]
	if !ok {
		return fmt.Errorf("%w: sheet has no status column", store.ErrRowNotFound)
	}
	row, ok := locateRow(table, key)
	if !ok {
		return store.ErrRowNotFound
	}

	// 1-based sheet coordinates; data rows start under the header at row 2.
	if err := client.UpdateCell(ctx, row+2, statoCol+1, strings.TrimSpace(string(status))); err != nil {
		return err
	}
	s.logger.Info("status saved", "date", key.Date, "time", key.Time, "status", string(status))
	return nil
}

// locateRow scans the table in storage order and returns the 0-based index
// of the first row matching the key by exact string equality on the Data and
// Ora columns. This is the legacy matching strategy; it fails silently on
// duplicate keys by picking the first.
func locateRow(t store.Table, key EntryKey) (int, bool) {
	idx := canonicalIndexes(t)
	dataCol, okData := idx[ColData]
	oraCol, okOra := idx[ColOra]
	if !okData || !okOra {
		return 0, false
	}
	for i := range t.Rows {
		if t.Cell(i, dataCol) == key.Date && t.Cell(i, oraCol) == key.Time {
			return i, true
		}
	}
	return 0, false
}

// Summary holds the three header metrics.
type Summary struct {
	TotalPoints int
	MarkedHours int
	ModeLabel   string
}

// Summary computes total points, the count of positively scored rows and the
// mode label.
func (sn *Snapshot) Summary() Summary {
	sum := Summary{ModeLabel: sn.Mode.Label()}
	for _, e := range sn.Entries {
		sum.TotalPoints += e.Score
		if e.Score > 0 {
			sum.MarkedHours++
		}
	}
	return sum
}

// Today returns the entries whose date parses to the given day. Entries with
// opaque dates are excluded.
func (sn *Snapshot) Today(day time.Time) []Entry {
	y, m, d := day.Date()
	var out []Entry
	for _, e := range sn.Entries {
		if !e.HasDay {
			continue
		}
		ey, em, ed := e.Day.Date()
		if ey == y && em == m && ed == d {
			out = append(out, e)
		}
	}
	return out
}

// DayScore is one point of the daily trend.
type DayScore struct {
	Day    time.Time
	Points int
}

// DailyTrend groups entries by parsed date and sums their scores, sorted
// chronologically. Entries with opaque dates are left out; an empty result
// means the view shows a placeholder instead of a chart.
func (sn *Snapshot) DailyTrend() []DayScore {
	totals := make(map[time.Time]int)
	for _, e := range sn.Entries {
		if !e.HasDay {
			continue
		}
		totals[e.Day] += e.Score
	}
	trend := make([]DayScore, 0, len(totals))
	for day, pts := range totals {
		trend = append(trend, DayScore{Day: day, Points: pts})
	}
	sort.Slice(trend, func(i, j int) bool { return trend[i].Day.Before(trend[j].Day) })
	return trend
}

// Missions is the synthesized missions panel: the raw columns that look like
// mission descriptions, with their first rows.
type Missions struct {
	Columns []string
	Rows    [][]string
}

// missionsHead is how many rows the missions panel shows.
const missionsHead = 5

// Missions scans the raw, pre-normalization headers for mission-like columns
// and returns their first rows. An empty column list means the view shows the
// placeholder.
func (sn *Snapshot) Missions() Missions {
	var cols []int
	var m Missions
	for i, c := range sn.Raw.Columns {
		lc := strings.ToLower(c)
		if strings.Contains(lc, "mission") || strings.Contains(lc, "descr") {
			cols = append(cols, i)
			m.Columns = append(m.Columns, c)
		}
	}
	if len(cols) == 0 {
		return m
	}
	for i := range sn.Raw.Rows {
		if i >= missionsHead {
			break
		}
		row := make([]string, len(cols))
		for j, col := range cols {
			row[j] = sn.Raw.Cell(i, col)
		}
		m.Rows = append(m.Rows, row)
	}
	return m
}
