package diary

import (
	"strings"
	"time"
)

// Status is the completion marker of a diary entry. The markers are the
// emoji the sheet template uses; anything else scores zero.
type Status string

const (
	StatusNone    Status = ""
	StatusDone    Status = "✅"
	StatusPartial Status = "⚠️"
	StatusMissed  Status = "❌"
)

// ParseStatus trims the input and reports whether it is one of the four
// accepted markers.
func ParseStatus(s string) (Status, bool) {
	switch st := Status(strings.TrimSpace(s)); st {
	case StatusNone, StatusDone, StatusPartial, StatusMissed:
		return st, true
	default:
		return StatusNone, false
	}
}

// Mode selects how the remote sheet is reached.
type Mode string

const (
	ModeReadOnly  Mode = "read_only"
	ModeReadWrite Mode = "read_write"
)

// Valid reports whether m is a known mode.
func (m Mode) Valid() bool {
	return m == ModeReadOnly || m == ModeReadWrite
}

// Label is the display form shown in the summary metrics.
func (m Mode) Label() string {
	return strings.ToUpper(string(m))
}

// Points maps each status marker to its score. Values are session-scoped and
// never persisted.
type Points struct {
	Done    int `yaml:"done"`
	Partial int `yaml:"partial"`
	Missed  int `yaml:"missed"`
}

// DefaultPoints returns the template's default scoring.
func DefaultPoints() Points {
	return Points{Done: 10, Partial: 5, Missed: 0}
}

// Validate checks the bounds the settings form enforces: done 1..100,
// partial and missed 0..100.
func (p Points) Validate() error {
	if p.Done < 1 || p.Done > 100 {
		return ErrInvalidPoints
	}
	if p.Partial < 0 || p.Partial > 100 {
		return ErrInvalidPoints
	}
	if p.Missed < 0 || p.Missed > 100 {
		return ErrInvalidPoints
	}
	return nil
}

// Entry is one diary row after normalization. Score is always recomputed
// from Status and the session's Points, never read from the sheet.
type Entry struct {
	Date     string
	Day      time.Time
	HasDay   bool
	Weekday  string
	Time     string
	Activity string
	Subject  string
	Kind     string
	Status   Status
	Score    int
	Notes    string
	Row      int
}

// EntryKey identifies a row for writes. There is no stable row identifier in
// the sheet, so matching on (Data, Ora) is a best-effort heuristic.
type EntryKey struct {
	Date string
	Time string
}
