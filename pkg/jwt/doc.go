// Package jwt signs and verifies HS256 JSON Web Tokens.
//
// Service is a thin layer over github.com/golang-jwt/jwt/v5 that pins the
// signing method, optionally checks the issuer, and folds library errors into
// the sentinels in this package so callers can branch with errors.Is.
//
//	svc, err := jwt.NewFromString(secret, jwt.WithIssuer("travelsuite"))
//	if err != nil {
//		// handle
//	}
//
//	type claims struct {
//		TenantID string `json:"tenant_id"`
//		jwt.RegisteredClaims
//	}
//
//	token, err := svc.Generate(claims{TenantID: "acme", RegisteredClaims: jwt.RegisteredClaims{
//		Subject:   userID,
//		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
//	}})
//
//	var parsed claims
//	err = svc.Parse(token, &parsed)
package jwt
