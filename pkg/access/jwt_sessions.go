package access

import (
	"errors"
	"net/http"
	"time"

	"github.com/travelsuite/tenancy/pkg/jwt"
)

// DefaultSessionTTL is the lifetime of tokens issued by JWTSessions.
const DefaultSessionTTL = 24 * time.Hour

type sessionClaims struct {
	TenantID string   `json:"tenant_id,omitempty"`
	Email    string   `json:"email,omitempty"`
	Roles    []string `json:"roles,omitempty"`
	jwt.RegisteredClaims
}

// JWTSessions carries sessions in HS256 bearer tokens.
type JWTSessions struct {
	tokens *jwt.Service
	ttl    time.Duration
	now    func() time.Time
}

// NewJWTSessions returns a SessionSource over tokens. A non-positive ttl
// selects DefaultSessionTTL.
func NewJWTSessions(tokens *jwt.Service, ttl time.Duration) *JWTSessions {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &JWTSessions{tokens: tokens, ttl: ttl, now: time.Now}
}

// Issue signs a token for s.
func (j *JWTSessions) Issue(s Session) (string, error) {
	if !s.Authenticated() {
		return "", ErrUnauthenticated
	}
	now := j.now()
	return j.tokens.Generate(&sessionClaims{
		TenantID: s.TenantID,
		Email:    s.Email,
		Roles:    s.Roles,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   s.UserID,
			Issuer:    j.tokens.Issuer(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(j.ttl)),
		},
	})
}

// Session reads the bearer token of r. Missing, invalid and expired tokens
// all yield ErrUnauthenticated.
func (j *JWTSessions) Session(r *http.Request) (Session, error) {
	raw, err := jwt.BearerToken(r)
	if err != nil {
		return Session{}, errors.Join(ErrUnauthenticated, err)
	}
	var c sessionClaims
	if err := j.tokens.Parse(raw, &c); err != nil {
		return Session{}, errors.Join(ErrUnauthenticated, err)
	}
	s := Session{
		UserID:   c.Subject,
		TenantID: c.TenantID,
		Email:    c.Email,
		Roles:    c.Roles,
	}
	if !s.Authenticated() {
		return Session{}, ErrUnauthenticated
	}
	return s, nil
}
