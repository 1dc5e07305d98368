package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/nutritrack/foodlog-api/internal/core/domain"
)

// TokenService issues and validates HS256 session tokens. Validity is
// determined purely by decode + expiry check; no store is consulted.
type TokenService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time // injectable for tests
}

func NewTokenService(secret string, ttl time.Duration) *TokenService {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &TokenService{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Issue produces a signed token encoding the user id and an expiry.
func (s *TokenService) Issue(userID string) (string, error) {
	now := s.now().UTC()
	claims := jwt.MapClaims{
		"user_id": userID,
		"iat":     now.Unix(),
		"exp":     now.Add(s.ttl).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(s.secret)
}

// Validate decodes the token and returns the user id it carries.
func (s *TokenService) Validate(token string) (string, error) {
	claims := jwt.MapClaims{}
	parser := jwt.NewParser(jwt.WithTimeFunc(func() time.Time { return s.now() }))

	tkn, err := parser.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return s.secret, nil
	})
	if err != nil || !tkn.Valid {
		return "", domain.ErrInvalidToken
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return "", domain.ErrMalformedClaims
	}
	return userID, nil
}
