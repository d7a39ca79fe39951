package jwt

import (
	"sync"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

const TokenTypeAccess = "access"

type Service interface {
	GenerateAccessToken(subjectID string, role string) (token string, expiresAt int64, err error)
	JWTAuth() *jwtauth.JWTAuth
	RevokeToken(token string)
	IsTokenRevoked(token string) bool
	PurgeExpired() int
}

type JWTService struct {
	accessTokenExpiration time.Duration
	tokenAuth             *jwtauth.JWTAuth
	now                   func() time.Time

	mu sync.RWMutex
	// revokedTokens maps a raw token to its own expiry (unix seconds).
	revokedTokens map[string]int64
}

func (j *JWTService) JWTAuth() *jwtauth.JWTAuth {
	return j.tokenAuth
}

func NewJWTService(secretKey string, accessTokenExpirationTime string) (*JWTService, error) {
	expiration, err := time.ParseDuration(accessTokenExpirationTime)
	if err != nil {
		return nil, err
	}
	return &JWTService{
		accessTokenExpiration: expiration,
		tokenAuth:             jwtauth.New("HS256", []byte(secretKey), nil, jwt.WithAcceptableSkew(30*time.Second)),
		now:                   time.Now,
		revokedTokens:         make(map[string]int64),
	}, nil
}

func (j *JWTService) GenerateAccessToken(subjectID string, role string) (token string, expiresAt int64, err error) {
	expiresAt = j.now().Add(j.accessTokenExpiration).Unix()

	claims := map[string]interface{}{
		"user_id": subjectID,
		"role":    role,
		"type":    TokenTypeAccess,
		"exp":     expiresAt,
	}

	_, tokenString, err := j.tokenAuth.Encode(claims)
	return tokenString, expiresAt, err
}

// RevokeToken denies token until its natural expiry. Tokens that cannot be
// decoded are kept for one full access lifetime.
func (j *JWTService) RevokeToken(token string) {
	expiresAt := j.now().Add(j.accessTokenExpiration).Unix()
	if parsed, err := jwt.ParseString(token, jwt.WithVerify(false), jwt.WithValidate(false)); err == nil {
		if exp := parsed.Expiration(); !exp.IsZero() {
			expiresAt = exp.Unix()
		}
	}

	j.mu.Lock()
	defer j.mu.Unlock()
	j.revokedTokens[token] = expiresAt
}

func (j *JWTService) IsTokenRevoked(token string) bool {
	j.mu.RLock()
	defer j.mu.RUnlock()
	expiresAt, revoked := j.revokedTokens[token]
	return revoked && j.now().Unix() <= expiresAt
}

// PurgeExpired drops revocation entries whose token has expired anyway.
func (j *JWTService) PurgeExpired() int {
	now := j.now().Unix()

	j.mu.Lock()
	defer j.mu.Unlock()
	removed := 0
	for token, expiresAt := range j.revokedTokens {
		if now > expiresAt {
			delete(j.revokedTokens, token)
			removed++
		}
	}
	return removed
}

func (j *JWTService) revokedCount() int {
	j.mu.RLock()
	defer j.mu.RUnlock()
	return len(j.revokedTokens)
}
