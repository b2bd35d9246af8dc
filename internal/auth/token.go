package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/hlstech/website/internal/model"
)

// TokenTTL is the fixed validity window of a session token. There is no
// server-side revocation list; deactivation is enforced by the live admin
// lookup in the authenticate middleware on the token's next use.
const TokenTTL = 7 * 24 * time.Hour

var (
	ErrTokenExpired   = errors.New("token expired")
	ErrTokenMalformed = errors.New("token malformed")
)

// Claims is the identity a validated token resolves to.
type Claims struct {
	AdminID string
	Role    model.Role
}

// TokenIssuer mints and validates signed HS256 bearer tokens.
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenIssuer(secret string) *TokenIssuer {
	return &TokenIssuer{
		secret: []byte(secret),
		ttl:    TokenTTL,
		now:    time.Now,
	}
}

type tokenClaims struct {
	AdminID string `json:"id"`
	Role    string `json:"role"`
	jwt.RegisteredClaims
}

// Issue creates a signed token embedding the admin's ID and role,
// expiring TokenTTL from now.
func (t *TokenIssuer) Issue(adminID string, role model.Role) (string, error) {
	now := t.now()
	claims := tokenClaims{
		AdminID: adminID,
		Role:    string(role),
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
			Issuer:    "hlstech-api",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(t.secret)
}

// Validate verifies the token's signature and expiry and returns the embedded
// claims. Returns ErrTokenExpired past the expiry and ErrTokenMalformed for
// anything structurally or cryptographically wrong.
func (t *TokenIssuer) Validate(tokenStr string) (*Claims, error) {
	claims := &tokenClaims{}

	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return t.secret, nil
	}, jwt.WithTimeFunc(func() time.Time { return t.now() }))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenMalformed
	}

	if !token.Valid {
		return nil, ErrTokenMalformed
	}

	return &Claims{
		AdminID: claims.AdminID,
		Role:    model.Role(claims.Role),
	}, nil
}
