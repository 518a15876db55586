package access

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/travelsuite/tenancy/pkg/logger"
	"github.com/travelsuite/tenancy/pkg/tenant"
)

// SessionSource reads the authenticated session from a request. It returns
// ErrUnauthenticated when the request carries none.
type SessionSource interface {
	Session(r *http.Request) (Session, error)
}

// SessionSourceFunc adapts a function to SessionSource.
type SessionSourceFunc func(r *http.Request) (Session, error)

func (f SessionSourceFunc) Session(r *http.Request) (Session, error) { return f(r) }

// HandlerFunc is a handler that receives the access context of the caller.
type HandlerFunc func(w http.ResponseWriter, r *http.Request, ac Context)

// ErrorHandler renders an authentication or authorization failure.
type ErrorHandler func(w http.ResponseWriter, r *http.Request, err error)

// Guard authenticates requests before they reach tenant-scoped handlers.
type Guard struct {
	builder      *Builder
	sessions     SessionSource
	errorHandler ErrorHandler
	log          *slog.Logger
}

type GuardOption func(*Guard)

func WithGuardErrorHandler(h ErrorHandler) GuardOption {
	return func(g *Guard) {
		if h != nil {
			g.errorHandler = h
		}
	}
}

func WithGuardLogger(l *slog.Logger) GuardOption {
	return func(g *Guard) {
		if l != nil {
			g.log = l
		}
	}
}

func NewGuard(builder *Builder, sessions SessionSource, opts ...GuardOption) *Guard {
	g := &Guard{
		builder:      builder,
		sessions:     sessions,
		errorHandler: DefaultErrorHandler,
		log:          logger.Discard(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// WithTenant runs h with the caller's access context. Without an
// authenticated session it answers 401, and when the session's tenant is gone
// it answers 404; h is never called in either case.
func (g *Guard) WithTenant(h HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ac, err := g.authenticate(r)
		if err != nil {
			g.errorHandler(w, r, err)
			return
		}
		h(w, r.WithContext(WithContext(r.Context(), ac)), ac)
	}
}

// Middleware stores the access context in the request context for handlers
// that read it with FromContext.
func (g *Guard) Middleware(next http.Handler) http.Handler {
	return g.WithTenant(func(w http.ResponseWriter, r *http.Request, _ Context) {
		next.ServeHTTP(w, r)
	})
}

func (g *Guard) authenticate(r *http.Request) (Context, error) {
	s, err := g.sessions.Session(r)
	if err != nil {
		if !errors.Is(err, ErrUnauthenticated) {
			g.log.DebugContext(r.Context(), "session rejected",
				logger.Component("access.guard"), logger.Error(err))
		}
		return Context{}, errors.Join(ErrUnauthenticated, err)
	}
	ac, err := g.builder.Build(s)
	if err != nil {
		return Context{}, err
	}
	if err := g.builder.CheckTenant(r.Context(), ac); err != nil {
		return Context{}, err
	}
	return ac, nil
}

// DefaultErrorHandler answers 401, 403, 404 or 500 as plain text.
func DefaultErrorHandler(w http.ResponseWriter, _ *http.Request, err error) {
	switch {
	case errors.Is(err, tenant.ErrTenantNotFound):
		http.Error(w, "tenant not found", http.StatusNotFound)
	case errors.Is(err, ErrUnauthenticated):
		http.Error(w, "unauthorized", http.StatusUnauthorized)
	case errors.Is(err, ErrForbidden):
		http.Error(w, "forbidden", http.StatusForbidden)
	default:
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
}
