package transport

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/diarioapp/diario/internal/domain/diary"
	"github.com/diarioapp/diario/internal/export"
	"github.com/diarioapp/diario/internal/store"
)

// maxCredentialSize bounds uploaded service-account files.
const maxCredentialSize = 1 << 20

// Server renders the diary dashboard and dispatches user actions.
type Server struct {
	diary    *diary.Service
	sessions *SessionStore
	logger   *slog.Logger
	now      func() time.Time
}

// NewRouter wires the dashboard routes with session middleware.
func NewRouter(svc *diary.Service, sessions *SessionStore, logger *slog.Logger) *chi.Mux {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		diary:    svc,
		sessions: sessions,
		logger:   logger,
		now:      time.Now,
	}

	r := chi.NewRouter()
	r.Use(sessions.Middleware)

	r.Get("/", s.handleDashboard)
	r.Post("/settings", s.handleSettings)
	r.Post("/credential", s.handleCredential)
	r.Post("/save", s.handleSave)
	r.Get("/export", s.handleExport)
	r.Get("/health", s.handleHealth)

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	opts := s.sessions.Options(r.Context())
	snap, err := s.diary.Load(r.Context(), opts)

	view := s.buildView(r, snap, err, saveAttempt{})
	s.render(w, view)
}

// saveAttempt keeps a failed save's edit visible on re-render.
type saveAttempt struct {
	Key    diary.EntryKey
	Status diary.Status
}

func (s *Server) handleSave(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	key := diary.EntryKey{
		Date: r.PostFormValue("date"),
		Time: r.PostFormValue("time"),
	}
	status, ok := diary.ParseStatus(r.PostFormValue("status"))
	if !ok {
		s.sessions.SetFlash(r.Context(), flashError, "Stato non valido.")
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	opts := s.sessions.Options(r.Context())
	if err := s.diary.SaveStatus(r.Context(), opts, key, status); err != nil {
		s.logger.Warn("save failed", "date", key.Date, "time", key.Time, "error", err)
		// re-render with the unsaved edit still selected
		snap, loadErr := s.diary.Load(r.Context(), opts)
		view := s.buildView(r, snap, loadErr, saveAttempt{Key: key, Status: status})
		view.FlashKind, view.Flash = flashError, saveMessage(err)
		s.render(w, view)
		return
	}

	s.sessions.SetFlash(r.Context(), flashSuccess, "✅ Stato aggiornato sul foglio.")
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleSettings(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	mode := diary.Mode(r.PostFormValue("mode"))
	if !mode.Valid() {
		s.sessions.SetFlash(r.Context(), flashError, "Modalità non valida.")
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	points, err := parsePoints(r)
	if err != nil {
		s.sessions.SetFlash(r.Context(), flashError, "Punteggi non validi: usa valori tra 0 e 100 (✅ almeno 1).")
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	s.sessions.Update(r.Context(), func(sess *Session) {
		sess.Mode = mode
		sess.Points = points
	})
	s.sessions.SetFlash(r.Context(), flashSuccess, "Impostazioni aggiornate.")
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func parsePoints(r *http.Request) (diary.Points, error) {
	var p diary.Points
	for _, f := range []struct {
		field string
		dst   *int
	}{
		{"points_done", &p.Done},
		{"points_partial", &p.Partial},
		{"points_missed", &p.Missed},
	} {
		v, err := strconv.Atoi(r.PostFormValue(f.field))
		if err != nil {
			return diary.Points{}, fmt.Errorf("parsing %s: %w", f.field, err)
		}
		*f.dst = v
	}
	if err := p.Validate(); err != nil {
		return diary.Points{}, err
	}
	return p, nil
}

func (s *Server) handleCredential(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxCredentialSize); err != nil {
		s.sessions.SetFlash(r.Context(), flashError, "Caricamento del file fallito.")
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	file, _, err := r.FormFile("credential")
	if err != nil {
		s.sessions.SetFlash(r.Context(), flashError, "Seleziona il file JSON della service account.")
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxCredentialSize))
	if err != nil {
		s.sessions.SetFlash(r.Context(), flashError, "Lettura del file fallita.")
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	tmp, err := os.CreateTemp("", "diario-credential-*.json")
	if err != nil {
		s.internalError(w, fmt.Errorf("creating credential temp file: %w", err))
		return
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		s.internalError(w, fmt.Errorf("writing credential temp file: %w", err))
		return
	}
	if err := tmp.Close(); err != nil {
		s.internalError(w, fmt.Errorf("closing credential temp file: %w", err))
		return
	}

	s.sessions.SetCredentialPath(r.Context(), tmp.Name())
	s.sessions.SetFlash(r.Context(), flashSuccess, "Credenziale caricata.")
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	opts := s.sessions.Options(r.Context())
	snap, err := s.diary.Load(r.Context(), opts)
	if err != nil {
		s.sessions.SetFlash(r.Context(), flashError, loadMessage(err))
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	data, err := export.Snapshot(snap.Raw)
	if err != nil {
		s.internalError(w, fmt.Errorf("exporting snapshot: %w", err))
		return
	}

	w.Header().Set("Content-Type", export.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.Filename))
	_, _ = w.Write(data)
}

// internalError logs the real error and returns a generic message to the
// client.
func (s *Server) internalError(w http.ResponseWriter, err error) {
	s.logger.Error("internal error", "error", err)
	http.Error(w, "internal server error", http.StatusInternalServerError)
}

const (
	flashSuccess = "success"
	flashError   = "error"
)

func loadMessage(err error) string {
	switch {
	case errors.Is(err, store.ErrAuth):
		return "Errore autenticazione Google: carica un JSON service account valido."
	case errors.Is(err, store.ErrWriteUnavailable):
		return "Client Google Sheets non disponibile."
	default:
		return "Errore nel leggere il foglio."
	}
}

func saveMessage(err error) string {
	switch {
	case errors.Is(err, diary.ErrReadOnly):
		return "Per salvare sul foglio attiva la modalità read-write e carica il JSON della service account."
	case errors.Is(err, diary.ErrInvalidStatus):
		return "Stato non valido."
	case errors.Is(err, store.ErrRowNotFound):
		return "Non ho trovato la riga corrispondente da aggiornare."
	case errors.Is(err, store.ErrAuth):
		return "Errore autenticazione Google."
	case errors.Is(err, store.ErrWriteUnavailable):
		return "Client Google Sheets non disponibile."
	case errors.Is(err, store.ErrWrite):
		return "Errore di scrittura sul foglio."
	default:
		return "Errore nel leggere il foglio."
	}
}
