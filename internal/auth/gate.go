package auth

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"
	"time"

	"weighbridge-backend/internal/config"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// GateKeeper checks the shared gate PIN and hands out short-lived access
// tokens for the API. There are no user accounts: one PIN, one role.
type GateKeeper struct {
	pin     string
	pinHash string
	secret  []byte
	ttl     time.Duration
}

func NewGateKeeper(cfg *config.Config) *GateKeeper {
	return &GateKeeper{
		pin:     strings.TrimSpace(cfg.Access.Pin),
		pinHash: cfg.Access.PinHash,
		secret:  []byte(cfg.Access.TokenSecret),
		ttl:     time.Duration(cfg.Access.TokenTTLMin) * time.Minute,
	}
}

// VerifyPIN checks the submitted code. With a configured bcrypt hash the
// comparison goes through bcrypt; otherwise it is a constant-time equality
// against the plain PIN.
func (g *GateKeeper) VerifyPIN(code string) bool {
	code = strings.TrimSpace(code)
	if code == "" {
		return false
	}
	if g.pinHash != "" {
		return bcrypt.CompareHashAndPassword([]byte(g.pinHash), []byte(code)) == nil
	}
	return subtle.ConstantTimeCompare([]byte(g.pin), []byte(code)) == 1
}

// HashPIN produces a bcrypt hash suitable for APP_PIN_HASH.
func HashPIN(pin string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(pin), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// IssueToken mints a gate session token after a successful PIN check.
func (g *GateKeeper) IssueToken() (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Issuer:    "weighbridge-backend",
		Subject:   "gate",
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(g.ttl)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(g.secret)
}

// ValidateToken checks a gate session token.
func (g *GateKeeper) ValidateToken(tokenString string) error {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{},
		func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
			}
			return g.secret, nil
		})
	if err != nil {
		return err
	}
	if !token.Valid {
		return errors.New("invalid token")
	}
	return nil
}
