// Package auth resolves the signed-in player's identity from the locally
// stored id-token.
package auth

import (
	"log/slog"
	"os"
	"strings"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
)

// Identity supplies the current user id, or reports that nobody is signed in.
type Identity interface {
	CurrentUserID() (string, bool)
}

// TokenFileProvider reads the id-token written at sign-in and extracts the
// subject claim. The token's signature was verified by the sign-in flow; here
// it is only decoded, with an expiry check softened by the configured leeway.
type TokenFileProvider struct {
	path   string
	leeway time.Duration
	log    *slog.Logger
}

// NewTokenFileProvider builds a provider for the token at path.
func NewTokenFileProvider(path string, leeway time.Duration, log *slog.Logger) *TokenFileProvider {
	if log == nil {
		log = slog.Default()
	}

	return &TokenFileProvider{
		path:   path,
		leeway: leeway,
		log:    log,
	}
}

// CurrentUserID returns the subject of the stored id-token. Any failure —
// missing file, malformed token, expired claims — means "not signed in".
func (p *TokenFileProvider) CurrentUserID() (string, bool) {
	data, err := os.ReadFile(p.path)
	if err != nil {
		return "", false
	}

	raw := strings.TrimSpace(string(data))
	if raw == "" {
		return "", false
	}

	claims := &jwt.RegisteredClaims{}
	parser := jwt.NewParser(jwt.WithoutClaimsValidation())
	if _, _, err := parser.ParseUnverified(raw, claims); err != nil {
		p.log.Warn("failed to parse id token", "error", err)
		return "", false
	}

	if claims.ExpiresAt != nil && time.Now().After(claims.ExpiresAt.Time.Add(p.leeway)) {
		return "", false
	}

	if claims.Subject == "" {
		return "", false
	}

	return claims.Subject, true
}

// StaticIdentity returns a fixed user id; used in tests and tooling.
type StaticIdentity string

func (s StaticIdentity) CurrentUserID() (string, bool) {
	if s == "" {
		return "", false
	}

	return string(s), true
}
