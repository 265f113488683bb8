package auth

import (
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/otcheredev/clinic-pos/internal/models"
)

// Claims are the custom JWT claims carried by a login token.
type Claims struct {
	TenantID  string `json:"tenant_id"`
	Role      string `json:"role"`
	BranchIDs string `json:"branch_ids"` // comma-separated identifiers
	Name      string `json:"name"`
	jwt.RegisteredClaims
}

// TokenService signs and verifies login tokens.
type TokenService struct {
	secret   []byte
	issuer   string
	audience string
	ttl      time.Duration
}

// NewTokenService creates a token service with HS256 signing.
func NewTokenService(secret, issuer, audience string, ttl time.Duration) *TokenService {
	return &TokenService{
		secret:   []byte(secret),
		issuer:   issuer,
		audience: audience,
		ttl:      ttl,
	}
}

// Generate mints a token for a user with its branch assignments embedded.
func (s *TokenService) Generate(user *models.User, branchIDs []uuid.UUID) (string, error) {
	parts := make([]string, 0, len(branchIDs))
	for _, id := range branchIDs {
		parts = append(parts, id.String())
	}

	now := time.Now().UTC()
	claims := Claims{
		TenantID:  user.TenantID.String(),
		Role:      string(user.Role),
		BranchIDs: strings.Join(parts, ","),
		Name:      user.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			Issuer:    s.issuer,
			Audience:  jwt.ClaimStrings{s.audience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Verify parses and validates a token and returns its claims.
func (s *TokenService) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	},
		jwt.WithIssuer(s.issuer),
		jwt.WithAudience(s.audience),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}
	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	return claims, nil
}
