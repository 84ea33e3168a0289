package services

import (
	"context"
	"crypto/rsa"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/redis/go-redis/v9"
	"github.com/sony/gobreaker"
	"golang.org/x/crypto/bcrypt"

	"github.com/funaab-ict/clearance-service/internal/config"
	"github.com/funaab-ict/clearance-service/internal/core/domain"
	"github.com/funaab-ict/clearance-service/internal/core/ports"
)

const denylistKeyPrefix = "denylist:"

type AuthService struct {
	userRepo   ports.UserRepository
	privateKey *rsa.PrivateKey
	tokenTTL   time.Duration
	redis      *redis.Client
	redisCB    *gobreaker.CircuitBreaker
}

var _ ports.AuthService = (*AuthService)(nil)

func NewAuthService(
	userRepo ports.UserRepository,
	privateKey *rsa.PrivateKey,
	tokenTTL time.Duration,
	redisClient *redis.Client,
) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		privateKey: privateKey,
		tokenTTL:   tokenTTL,
		redis:      redisClient,
		redisCB:    config.NewCircuitBreaker("Redis-Auth"),
	}
}

// Login verifies the username/password pair and returns a signed token.
// Lookup failures and password mismatches are reported identically so the
// response does not reveal which usernames exist.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return "", fmt.Errorf("incorrect username or password: %w", domain.ErrUnauthenticated)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(password)); err != nil {
		return "", fmt.Errorf("incorrect username or password: %w", domain.ErrUnauthenticated)
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"sub":  user.Username,
		"role": string(user.Role),
		"iat":  now.Unix(),
		"exp":  now.Add(s.tokenTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	return token.SignedString(s.privateKey)
}

// Logout denylists the presented token in Redis until its natural expiry.
func (s *AuthService) Logout(ctx context.Context, tokenString string) error {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodRSA); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return &s.privateKey.PublicKey, nil
	})
	if err != nil || !token.Valid {
		return fmt.Errorf("invalid token: %w", domain.ErrUnauthenticated)
	}

	ttl := s.tokenTTL
	if exp, err := token.Claims.GetExpirationTime(); err == nil && exp != nil {
		if remaining := time.Until(exp.Time); remaining > 0 {
			ttl = remaining
		}
	}

	_, err = s.redisCB.Execute(func() (interface{}, error) {
		return nil, s.redis.Set(ctx, denylistKeyPrefix+HashToken(tokenString), "1", ttl).Err()
	})
	return err
}

// HashToken produces the denylist key for a raw token. Tokens are stored
// hashed so Redis never holds a usable credential.
func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return base64.RawURLEncoding.EncodeToString(sum[:])
}

// DenylistKey is the Redis key a denylisted token is stored under.
func DenylistKey(token string) string {
	return denylistKeyPrefix + HashToken(token)
}
