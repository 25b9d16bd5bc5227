package token

import (
	"errors"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Kind distinguishes the two token flavours the issuer mints. Access and
// refresh tokens are signed with different secrets and carry different
// lifetimes; a token of one kind never verifies as the other.
type Kind string

const (
	KindAccess  Kind = "access"
	KindRefresh Kind = "refresh"
)

var ErrInvalidToken = errors.New("token is invalid, expired or of the wrong kind")

type Claims struct {
	AccountID int64  `json:"account_id"`
	TokenKind string `json:"token_kind"`
	jwtlib.RegisteredClaims
}

// Issuer mints and verifies signed access/refresh tokens. Key material is
// injected so secrets can be rotated without touching any other component.
type Issuer struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

func NewIssuer(accessSecret, refreshSecret string, accessTTL, refreshTTL time.Duration) *Issuer {
	return &Issuer{
		accessSecret:  []byte(accessSecret),
		refreshSecret: []byte(refreshSecret),
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
	}
}

func (i *Issuer) IssueAccess(accountID int64) (string, error) {
	return i.sign(accountID, KindAccess, i.accessSecret, i.accessTTL)
}

func (i *Issuer) IssueRefresh(accountID int64) (string, error) {
	return i.sign(accountID, KindRefresh, i.refreshSecret, i.refreshTTL)
}

func (i *Issuer) sign(accountID int64, kind Kind, secret []byte, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		AccountID: accountID,
		TokenKind: string(kind),
		RegisteredClaims: jwtlib.RegisteredClaims{
			// iat/exp have one-second precision; the jti is what keeps two
			// tokens for the same account from ever being byte-identical
			ID:        uuid.NewString(),
			ExpiresAt: jwtlib.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwtlib.NewNumericDate(now),
		},
	}
	t := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims)
	return t.SignedString(secret)
}

// Verify parses tokenStr against the secret for the expected kind and returns
// its claims. Signature failures, expiry and kind mismatch all collapse to
// ErrInvalidToken; callers never learn which check failed.
func (i *Issuer) Verify(tokenStr string, kind Kind) (*Claims, error) {
	secret := i.accessSecret
	if kind == KindRefresh {
		secret = i.refreshSecret
	}

	t, err := jwtlib.ParseWithClaims(tokenStr, &Claims{}, func(t *jwtlib.Token) (any, error) {
		if _, ok := t.Method.(*jwtlib.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return secret, nil
	})
	if err != nil || !t.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := t.Claims.(*Claims)
	if !ok || claims.TokenKind != string(kind) {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
