// internal/pkg/token/token.go
package token

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/your-org/storefront-api/internal/config"
)

// Claims represents the signed cart token claims
type Claims struct {
	CartID string `json:"cart_id"`
	jwt.RegisteredClaims
}

// Manager issues and parses the opaque cart identifier handed to clients.
type Manager struct {
	config *config.Config
}

// NewManager creates a new cart token manager
func NewManager(cfg *config.Config) *Manager {
	return &Manager{
		config: cfg,
	}
}

// Issue generates a signed token for a cart id. The token expiry mirrors
// the cart's expiry so the cookie and the record age out together.
func (m *Manager) Issue(cartID string, expiresOn time.Time) (string, error) {
	now := time.Now().UTC()

	claims := &Claims{
		CartID: cartID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresOn),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    m.config.App.Name,
			Subject:   fmt.Sprintf("cart:%s", cartID),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(m.config.Cart.TokenSecret))
}

// Parse validates the signature and returns the cart id. Claim expiry is
// not enforced here: a stale-but-present cart is lazily renewed by the
// lifecycle manager, so the identifier must still resolve after the TTL
// has passed.
func (m *Manager) Parse(tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(m.config.Cart.TokenSecret), nil
	}, jwt.WithoutClaimsValidation())

	if err != nil {
		return "", fmt.Errorf("failed to parse cart token: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return "", fmt.Errorf("invalid cart token")
	}

	if claims.CartID == "" {
		return "", fmt.Errorf("cart token carries no cart id")
	}

	return claims.CartID, nil
}
