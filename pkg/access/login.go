package access

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"github.com/travelsuite/tenancy/pkg/logger"
	"github.com/travelsuite/tenancy/pkg/sanitizer"
)

var (
	ErrUserNotFound       = errors.New("access: user not found")
	ErrInvalidCredentials = errors.New("access: invalid email or password")
)

// Credentials is the stored login record of a user.
type Credentials struct {
	UserID       string
	TenantID     string
	Email        string
	PasswordHash []byte
	Active       bool
	Roles        []string
}

// CredentialStore looks up login records. It returns ErrUserNotFound for
// unknown emails.
type CredentialStore interface {
	CredentialsByEmail(ctx context.Context, email string) (Credentials, error)
}

// dummyHash keeps the response time of unknown emails close to that of a
// wrong password.
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("dummy-password"), bcrypt.MinCost)

// PasswordLogin checks email and password and produces a Session.
type PasswordLogin struct {
	store CredentialStore
	log   *slog.Logger
}

func NewPasswordLogin(store CredentialStore, log *slog.Logger) *PasswordLogin {
	if log == nil {
		log = logger.Discard()
	}
	return &PasswordLogin{store: store, log: log}
}

// Authenticate returns ErrInvalidCredentials for unknown users, inactive
// users and wrong passwords alike.
func (l *PasswordLogin) Authenticate(ctx context.Context, email, password string) (Session, error) {
	email = sanitizer.NormalizeEmail(email)

	c, err := l.store.CredentialsByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
			return Session{}, ErrInvalidCredentials
		}
		return Session{}, fmt.Errorf("lookup credentials: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword(c.PasswordHash, []byte(password)); err != nil || !c.Active {
		l.log.InfoContext(ctx, "login rejected",
			logger.Component("access.login"), logger.UserID(c.UserID))
		return Session{}, ErrInvalidCredentials
	}

	return Session{
		UserID:   c.UserID,
		TenantID: c.TenantID,
		Email:    c.Email,
		Roles:    c.Roles,
	}, nil
}
