package jwt_test

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/travelsuite/tenancy/pkg/jwt"
)

type testClaims struct {
	Name string `json:"name,omitempty"`
	jwt.RegisteredClaims
}

func validClaims() *testClaims {
	return &testClaims{
		Name: "Siti",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-1",
			Issuer:    "travelsuite",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
}

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("with signing key", func(t *testing.T) {
		t.Parallel()
		svc, err := jwt.New([]byte("secret"), jwt.WithIssuer("travelsuite"))
		require.NoError(t, err)
		assert.Equal(t, "travelsuite", svc.Issuer())
	})

	t.Run("with empty signing key", func(t *testing.T) {
		t.Parallel()
		svc, err := jwt.NewFromString("")
		require.ErrorIs(t, err, jwt.ErrMissingSigningKey)
		assert.Nil(t, svc)
	})
}

func TestGenerateAndParse(t *testing.T) {
	t.Parallel()

	svc, err := jwt.NewFromString("secret", jwt.WithIssuer("travelsuite"))
	require.NoError(t, err)

	t.Run("round trip", func(t *testing.T) {
		t.Parallel()
		token, err := svc.Generate(validClaims())
		require.NoError(t, err)
		assert.Len(t, strings.Split(token, "."), 3)

		var parsed testClaims
		require.NoError(t, svc.Parse(token, &parsed))
		assert.Equal(t, "Siti", parsed.Name)
		assert.Equal(t, "user-1", parsed.Subject)
	})

	t.Run("nil claims", func(t *testing.T) {
		t.Parallel()
		_, err := svc.Generate(nil)
		assert.ErrorIs(t, err, jwt.ErrMissingClaims)
		assert.ErrorIs(t, svc.Parse("x.y.z", nil), jwt.ErrMissingClaims)
	})

	t.Run("malformed token", func(t *testing.T) {
		t.Parallel()
		var parsed testClaims
		assert.ErrorIs(t, svc.Parse("not-a-token", &parsed), jwt.ErrInvalidToken)
	})

	t.Run("expired token", func(t *testing.T) {
		t.Parallel()
		c := validClaims()
		c.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Minute))
		token, err := svc.Generate(c)
		require.NoError(t, err)

		var parsed testClaims
		assert.ErrorIs(t, svc.Parse(token, &parsed), jwt.ErrExpiredToken)
	})

	t.Run("leeway accepts small skew", func(t *testing.T) {
		t.Parallel()
		lenient, err := jwt.NewFromString("secret", jwt.WithLeeway(time.Minute))
		require.NoError(t, err)

		c := validClaims()
		c.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-10 * time.Second))
		token, err := lenient.Generate(c)
		require.NoError(t, err)

		var parsed testClaims
		assert.NoError(t, lenient.Parse(token, &parsed))
	})

	t.Run("wrong key", func(t *testing.T) {
		t.Parallel()
		other, err := jwt.NewFromString("other-secret")
		require.NoError(t, err)
		token, err := other.Generate(validClaims())
		require.NoError(t, err)

		var parsed testClaims
		assert.ErrorIs(t, svc.Parse(token, &parsed), jwt.ErrInvalidSignature)
	})

	t.Run("wrong issuer", func(t *testing.T) {
		t.Parallel()
		c := validClaims()
		c.Issuer = "someone-else"
		token, err := svc.Generate(c)
		require.NoError(t, err)

		var parsed testClaims
		assert.ErrorIs(t, svc.Parse(token, &parsed), jwt.ErrInvalidToken)
	})

	t.Run("unsigned token is rejected", func(t *testing.T) {
		t.Parallel()
		token, err := gojwt.NewWithClaims(gojwt.SigningMethodNone, validClaims()).
			SignedString(gojwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)

		var parsed testClaims
		assert.ErrorIs(t, svc.Parse(token, &parsed), jwt.ErrInvalidSignature)
	})
}

func TestBearerToken(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		header string
		want   string
		ok     bool
	}{
		{name: "bearer", header: "Bearer abc.def.ghi", want: "abc.def.ghi", ok: true},
		{name: "lowercase scheme", header: "bearer abc", want: "abc", ok: true},
		{name: "missing", header: ""},
		{name: "basic", header: "Basic dXNlcjpwYXNz"},
		{name: "empty token", header: "Bearer  "},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			r := httptest.NewRequest("GET", "/", nil)
			if tt.header != "" {
				r.Header.Set("Authorization", tt.header)
			}
			got, err := jwt.BearerToken(r)
			if !tt.ok {
				assert.ErrorIs(t, err, jwt.ErrMissingToken)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
