package web

import (
	"bytes"
	"html/template"
	"net/http"
	"sync"
	"time"

	"github.com/vytor/flashdeck/internal/app"
	"github.com/vytor/flashdeck/internal/logger"
	"github.com/vytor/flashdeck/internal/notify"
	"github.com/vytor/flashdeck/internal/view"
)

// Toasts is the read side of the notification service.
type Toasts interface {
	Active() []notify.Toast
}

// Server binds the controller to HTML pages and form posts. Handlers that
// touch application state run one at a time.
type Server struct {
	ctrl      *app.Controller
	toasts    Toasts
	templates *template.Template
	now       func() time.Time

	mu sync.Mutex
}

// Option configures a Server.
type Option func(*Server)

// WithClock overrides time.Now for relative dates on the page.
func WithClock(now func() time.Time) Option {
	return func(s *Server) {
		s.now = now
	}
}

func NewServer(ctrl *app.Controller, toasts Toasts, opts ...Option) (*Server, error) {
	tmpl, err := LoadTemplates()
	if err != nil {
		return nil, err
	}
	s := &Server{
		ctrl:      ctrl,
		toasts:    toasts,
		templates: tmpl,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

type pageData struct {
	view.Page
	Toasts  []notify.Toast
	NoDecks string
	NoHint  string
	NoCards string
}

type confirmData struct {
	Title   string
	Message string
	Action  string
	Toasts  []notify.Toast
}

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())
	log.Debug("rendering home page")

	s.mu.Lock()
	page := view.Render(s.ctrl.State(), s.now())
	s.mu.Unlock()

	s.render(w, r, "page", pageData{
		Page:    page,
		Toasts:  s.toasts.Active(),
		NoDecks: view.NoDecks,
		NoHint:  view.NoDecksHint,
		NoCards: view.NoCards,
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}

// render executes the named template into a buffer first so a failing
// template never leaves a half-written page.
func (s *Server) render(w http.ResponseWriter, r *http.Request, name string, data any) {
	var b bytes.Buffer
	if err := s.templates.ExecuteTemplate(&b, name, data); err != nil {
		handleError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	b.WriteTo(w)
}

func redirectHome(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
