package auth

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/PedroPerillo/dndice/internal/common/clock"
	"github.com/PedroPerillo/dndice/internal/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/hashicorp/golang-lru/v2/expirable"
)

const (
	// DefaultCacheSize is the number of verified tokens kept in memory
	DefaultCacheSize = 1024

	// DefaultCacheTTL bounds how long a verified token skips signature checks
	DefaultCacheTTL = 5 * time.Minute
)

// Claims is the token body. The subject is the identity id.
type Claims struct {
	Email string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

// Config holds configuration for the verifier
type Config struct {
	// Secret signs and verifies HS256 tokens
	Secret []byte

	// Issuer, when set, is stamped on issued tokens and required on verified ones
	Issuer string

	// Clock defaults to the system clock
	Clock clock.Clock

	CacheSize int
	CacheTTL  time.Duration
}

type cachedIdentity struct {
	identity  *models.Identity
	expiresAt time.Time
}

// Verifier turns bearer tokens into identities
type Verifier struct {
	secret []byte
	issuer string
	clock  clock.Clock
	parser *jwt.Parser
	cache  *expirable.LRU[string, *cachedIdentity]
}

// New creates a verifier
func New(cfg *Config) (*Verifier, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}

	if len(cfg.Secret) == 0 {
		return nil, ErrMissingSecret
	}

	clk := cfg.Clock
	if clk == nil {
		clk = &clock.DefaultClock{}
	}

	size := cfg.CacheSize
	if size <= 0 {
		size = DefaultCacheSize
	}

	ttl := cfg.CacheTTL
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(clk.Now),
	}
	if cfg.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(cfg.Issuer))
	}

	return &Verifier{
		secret: cfg.Secret,
		issuer: cfg.Issuer,
		clock:  clk,
		parser: jwt.NewParser(opts...),
		cache:  expirable.NewLRU[string, *cachedIdentity](size, nil, ttl),
	}, nil
}

func cacheKey(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

// Verify checks the token signature and claims and returns the identity it names
func (v *Verifier) Verify(ctx context.Context, token string) (*models.Identity, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, ErrInvalidToken
	}

	key := cacheKey(token)
	if entry, ok := v.cache.Get(key); ok {
		if v.clock.Now().Before(entry.expiresAt) {
			return entry.identity, nil
		}
		v.cache.Remove(key)
		return nil, fmt.Errorf("%w: token is expired", ErrInvalidToken)
	}

	claims := &Claims{}
	if _, err := v.parser.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		return v.secret, nil
	}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	if claims.Subject == "" {
		return nil, ErrMissingSubject
	}

	identity := &models.Identity{
		ID:    claims.Subject,
		Email: claims.Email,
	}

	v.cache.Add(key, &cachedIdentity{
		identity:  identity,
		expiresAt: claims.ExpiresAt.Time,
	})

	return identity, nil
}

// Issue signs a token for the identity that expires after ttl
func (v *Verifier) Issue(identity *models.Identity, ttl time.Duration) (string, error) {
	if identity == nil || identity.ID == "" {
		return "", ErrMissingSubject
	}

	now := v.clock.Now()
	claims := &Claims{
		Email: identity.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   identity.ID,
			Issuer:    v.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(v.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, nil
}
