package notify

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/vytor/flashdeck/internal/logger"
)

// Kind selects how a notification is styled.
type Kind string

const (
	Info    Kind = "info"
	Success Kind = "success"
	Error   Kind = "error"
)

// Normalize maps empty or unknown kinds to Info.
func (k Kind) Normalize() Kind {
	switch k {
	case Success, Error:
		return k
	default:
		return Info
	}
}

// Default display timings of a toast.
const (
	DefaultDisplay = 3 * time.Second
	DefaultExit    = 300 * time.Millisecond
)

// Toast is a single transient message.
type Toast struct {
	ID        string
	Message   string
	Kind      Kind
	CreatedAt time.Time
	// Leaving is set once the display time is over and the exit transition runs.
	Leaving bool
}

// Notifier is what the controller needs from the notification service.
type Notifier interface {
	Notify(message string, kind Kind)
}

// Service keeps the toasts currently on screen. Each toast removes itself
// after Display+Exit. Safe for concurrent use.
type Service struct {
	mu      sync.Mutex
	toasts  []*Toast
	timers  map[string]*time.Timer
	display time.Duration
	exit    time.Duration
	now     func() time.Time
	log     *logger.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithTimings overrides the display and exit durations.
func WithTimings(display, exit time.Duration) Option {
	return func(s *Service) {
		s.display = display
		s.exit = exit
	}
}

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// WithLogger sets the logger notifications are mirrored to.
func WithLogger(l *logger.Logger) Option {
	return func(s *Service) {
		s.log = l
	}
}

func New(opts ...Option) *Service {
	s := &Service{
		timers:  map[string]*time.Timer{},
		display: DefaultDisplay,
		exit:    DefaultExit,
		now:     time.Now,
		log:     logger.Default().WithPrefix("notify"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Notify shows message until it expires. It never blocks on the UI.
func (s *Service) Notify(message string, kind Kind) {
	kind = kind.Normalize()
	t := &Toast{
		ID:        uuid.NewString(),
		Message:   message,
		Kind:      kind,
		CreatedAt: s.now(),
	}

	if kind == Error {
		s.log.Warn("notification: %s", message)
	} else {
		s.log.Debug("notification (%s): %s", kind, message)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.toasts = append(s.toasts, t)
	s.timers[t.ID] = time.AfterFunc(s.display+s.exit, func() { s.Dismiss(t.ID) })
}

// Dismiss removes a toast right away. Unknown ids are ignored.
func (s *Service) Dismiss(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if timer, ok := s.timers[id]; ok {
		timer.Stop()
		delete(s.timers, id)
	}
	for i, t := range s.toasts {
		if t.ID == id {
			s.toasts = append(s.toasts[:i], s.toasts[i+1:]...)
			return
		}
	}
}

// Active returns copies of the visible toasts, oldest first.
func (s *Service) Active() []Toast {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	out := make([]Toast, 0, len(s.toasts))
	for _, t := range s.toasts {
		age := now.Sub(t.CreatedAt)
		if age >= s.display+s.exit {
			continue
		}
		c := *t
		c.Leaving = age >= s.display
		out = append(out, c)
	}
	return out
}

// Close stops pending timers and clears all toasts.
func (s *Service) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, timer := range s.timers {
		timer.Stop()
		delete(s.timers, id)
	}
	s.toasts = nil
}
