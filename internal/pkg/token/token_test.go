package token

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/your-org/storefront-api/internal/config"
)

func testManager(secret string) *Manager {
	return NewManager(&config.Config{
		App:  config.AppConfig{Name: "storefront-api"},
		Cart: config.CartConfig{TokenSecret: secret},
	})
}

func TestIssueAndParseRoundTrip(t *testing.T) {
	m := testManager("test-secret")

	signed, err := m.Issue("64f1b2a3c4d5e6f708192a3b", time.Now().Add(time.Hour))
	require.NoError(t, err)

	cartID, err := m.Parse(signed)
	require.NoError(t, err)
	assert.Equal(t, "64f1b2a3c4d5e6f708192a3b", cartID)
}

// An expired token must still resolve: the lifecycle manager renews
// stale carts lazily instead of treating them as gone.
func TestParseAcceptsExpiredToken(t *testing.T) {
	m := testManager("test-secret")

	signed, err := m.Issue("64f1b2a3c4d5e6f708192a3b", time.Now().Add(-48*time.Hour))
	require.NoError(t, err)

	cartID, err := m.Parse(signed)
	require.NoError(t, err)
	assert.Equal(t, "64f1b2a3c4d5e6f708192a3b", cartID)
}

func TestParseRejectsWrongSecret(t *testing.T) {
	signed, err := testManager("secret-a").Issue("64f1b2a3c4d5e6f708192a3b", time.Now().Add(time.Hour))
	require.NoError(t, err)

	_, err = testManager("secret-b").Parse(signed)
	assert.Error(t, err)
}

func TestParseRejectsGarbage(t *testing.T) {
	_, err := testManager("test-secret").Parse("not-a-token")
	assert.Error(t, err)
}
