package ghost

import (
	"encoding/hex"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// tokenTTL is the validity window Ghost expects for Admin API tokens.
const tokenTTL = 300 * time.Second

// TokenSource mints short-lived HS256 tokens from an admin API key.  A fresh
// token is produced for every request; tokens are never cached or reused.
type TokenSource struct {
	key      string
	audience string
	now      func() time.Time
}

// NewTokenSource builds a token source for the given admin key and API
// version.  The key is validated lazily, on the first Token call, so that a
// misconfigured credential surfaces as an error result rather than a startup
// fault.
func NewTokenSource(key, version string) *TokenSource {
	return &TokenSource{
		key:      key,
		audience: "/" + version + "/admin/",
		now:      time.Now,
	}
}

// Token returns a signed credential valid for the next five minutes.  The key
// id travels in the token header (kid) as required by Ghost.
func (t *TokenSource) Token() (string, error) {
	id, secret, err := t.credential()
	if err != nil {
		return "", err
	}
	iat := t.now().Unix()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"iat": iat,
		"exp": iat + int64(tokenTTL/time.Second),
		"aud": t.audience,
	})
	token.Header["kid"] = id
	signed, err := token.SignedString(secret)
	if err != nil {
		return "", &SigningError{Err: err}
	}
	return signed, nil
}

// credential splits the configured key into its ID and raw secret bytes.
func (t *TokenSource) credential() (string, []byte, error) {
	parts := strings.Split(t.key, ":")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", nil, ErrInvalidKeyFormat
	}
	secret, err := hex.DecodeString(parts[1])
	if err != nil {
		return "", nil, &SigningError{Err: err}
	}
	return parts[0], secret, nil
}
