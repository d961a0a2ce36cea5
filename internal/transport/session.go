package transport

import (
	"context"
	"net/http"
	"os"
	"sync"

	"github.com/google/uuid"

	"github.com/diarioapp/diario/internal/domain/diary"
)

const sessionCookie = "diario_session"

type sessionKey struct{}

// Session carries the per-browser options: operating mode, point values and
// the path of the session's service-account credential. Nothing here is
// persisted beyond the process.
type Session struct {
	ID             string
	Mode           diary.Mode
	Points         diary.Points
	CredentialPath string
	// credentialUploaded marks CredentialPath as a temp file owned by this
	// session, safe to delete when replaced.
	credentialUploaded bool
	flash              string
	flashKind          string
}

// Defaults are the settings a fresh session starts from.
type Defaults struct {
	Mode           diary.Mode
	Points         diary.Points
	CredentialPath string
}

// SessionStore keeps sessions in memory, keyed by cookie ID.
type SessionStore struct {
	mu       sync.Mutex
	sessions map[string]*Session
	defaults Defaults
}

// NewSessionStore creates a store handing out sessions seeded with defaults.
func NewSessionStore(defaults Defaults) *SessionStore {
	return &SessionStore{
		sessions: make(map[string]*Session),
		defaults: defaults,
	}
}

// Middleware assigns a session cookie when absent and stores the session ID
// in the request context.
func (s *SessionStore) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var id string
		if c, err := r.Cookie(sessionCookie); err == nil && c.Value != "" {
			id = c.Value
		} else {
			id = uuid.NewString()
			http.SetCookie(w, &http.Cookie{
				Name:     sessionCookie,
				Value:    id,
				Path:     "/",
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})
		}
		ctx := context.WithValue(r.Context(), sessionKey{}, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func sessionIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(sessionKey{}).(string)
	return id
}

// Get returns the session for the request context, creating it on first use.
func (s *SessionStore) Get(ctx context.Context) *Session {
	id := sessionIDFromContext(ctx)
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if !ok {
		sess = &Session{
			ID:             id,
			Mode:           s.defaults.Mode,
			Points:         s.defaults.Points,
			CredentialPath: s.defaults.CredentialPath,
		}
		s.sessions[id] = sess
	}
	return sess
}

// Update applies fn to the session under the store lock.
func (s *SessionStore) Update(ctx context.Context, fn func(*Session)) {
	sess := s.Get(ctx)
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(sess)
}

// SetFlash stores a one-shot message shown on the next dashboard render.
func (s *SessionStore) SetFlash(ctx context.Context, kind, msg string) {
	s.Update(ctx, func(sess *Session) {
		sess.flashKind = kind
		sess.flash = msg
	})
}

// TakeFlash pops the pending flash message, if any.
func (s *SessionStore) TakeFlash(ctx context.Context) (kind, msg string) {
	sess := s.Get(ctx)
	s.mu.Lock()
	defer s.mu.Unlock()
	kind, msg = sess.flashKind, sess.flash
	sess.flashKind, sess.flash = "", ""
	return kind, msg
}

// Options builds the diary options for the session, reading the credential
// file if one is configured. An unreadable credential degrades to no
// credential; the save path reports the missing-credential warning.
func (s *SessionStore) Options(ctx context.Context) diary.Options {
	sess := s.Get(ctx)
	s.mu.Lock()
	mode, points, path := sess.Mode, sess.Points, sess.CredentialPath
	s.mu.Unlock()

	opts := diary.Options{Mode: mode, Points: points}
	if path != "" {
		if data, err := os.ReadFile(path); err == nil {
			opts.CredentialJSON = data
		}
	}
	return opts
}

// SetCredentialPath records an uploaded credential temp file, removing the
// previously uploaded one.
func (s *SessionStore) SetCredentialPath(ctx context.Context, path string) {
	s.Update(ctx, func(sess *Session) {
		if sess.credentialUploaded && sess.CredentialPath != "" && sess.CredentialPath != path {
			_ = os.Remove(sess.CredentialPath)
		}
		sess.CredentialPath = path
		sess.credentialUploaded = true
	})
}
