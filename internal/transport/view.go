package transport

import (
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"strings"

	"github.com/diarioapp/diario/internal/domain/diary"
)

//go:embed templates/*.html
var templateFS embed.FS

var dashboardTmpl = template.Must(template.ParseFS(templateFS, "templates/*.html"))

// statusChoices are the selector options, in display order.
var statusChoices = []diary.Status{
	diary.StatusNone,
	diary.StatusDone,
	diary.StatusPartial,
	diary.StatusMissed,
}

// entryCard is one today-row with its currently selected status. After a
// failed save the attempted status stays selected.
type entryCard struct {
	diary.Entry
	Selected diary.Status
}

type trendLabel struct {
	Label  string
	Points int
}

type dashboardView struct {
	TodayLabel string
	Summary    diary.Summary
	Cards      []entryCard
	Missions   diary.Missions
	HasTrend   bool
	TrendPath  string
	TrendDays  []trendLabel

	Mode          diary.Mode
	ReadWrite     bool
	HasCredential bool
	Points        diary.Points
	Statuses      []diary.Status

	Flash     string
	FlashKind string
	LoadError string
}

func (s *Server) buildView(r *http.Request, snap *diary.Snapshot, loadErr error, attempt saveAttempt) dashboardView {
	now := s.now()
	opts := s.sessions.Options(r.Context())

	view := dashboardView{
		TodayLabel:    now.Format("Monday 02 January 2006"),
		Summary:       snap.Summary(),
		Missions:      snap.Missions(),
		Mode:          opts.Mode,
		ReadWrite:     opts.Mode == diary.ModeReadWrite,
		HasCredential: len(opts.CredentialJSON) > 0,
		Points:        opts.Points,
		Statuses:      statusChoices,
	}

	for _, e := range snap.Today(now) {
		card := entryCard{Entry: e, Selected: e.Status}
		if attempt.Key.Date == e.Date && attempt.Key.Time == e.Time {
			card.Selected = attempt.Status
		}
		view.Cards = append(view.Cards, card)
	}

	trend := snap.DailyTrend()
	if len(trend) > 0 {
		view.HasTrend = true
		view.TrendPath = trendPolyline(trend, 300, 90)
		for _, p := range trend {
			view.TrendDays = append(view.TrendDays, trendLabel{
				Label:  p.Day.Format("02/01"),
				Points: p.Points,
			})
		}
	}

	if kind, msg := s.sessions.TakeFlash(r.Context()); msg != "" {
		view.FlashKind, view.Flash = kind, msg
	}
	if loadErr != nil {
		view.LoadError = loadMessage(loadErr)
	}
	return view
}

func (s *Server) render(w http.ResponseWriter, view dashboardView) {
	var buf strings.Builder
	if err := dashboardTmpl.ExecuteTemplate(&buf, "dashboard.html", view); err != nil {
		s.internalError(w, fmt.Errorf("rendering dashboard: %w", err))
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(buf.String()))
}

// trendPolyline maps the daily totals onto SVG polyline coordinates inside a
// w x h viewBox with a small margin.
func trendPolyline(trend []diary.DayScore, w, h int) string {
	const margin = 6.0
	maxPts := 1
	for _, p := range trend {
		if p.Points > maxPts {
			maxPts = p.Points
		}
	}

	innerW := float64(w) - 2*margin
	innerH := float64(h) - 2*margin
	coords := make([]string, 0, len(trend))
	for i, p := range trend {
		x := margin + innerW/2
		if len(trend) > 1 {
			x = margin + innerW*float64(i)/float64(len(trend)-1)
		}
		y := margin + innerH*(1-float64(p.Points)/float64(maxPts))
		coords = append(coords, fmt.Sprintf("%.1f,%.1f", x, y))
	}
	return strings.Join(coords, " ")
}
