package googletasks

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"

	"taskpop/internal/config"
)

func TestSaveLoadToken(t *testing.T) {
	path := filepath.Join(t.TempDir(), config.TokenFile)
	tok := &oauth2.Token{
		AccessToken:  "access",
		RefreshToken: "refresh",
		TokenType:    "Bearer",
		Expiry:       time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC),
	}

	require.NoError(t, SaveToken(path, tok))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	got, err := LoadToken(path)
	require.NoError(t, err)
	assert.Equal(t, "refresh", got.RefreshToken)
	assert.True(t, tok.Expiry.Equal(got.Expiry))
}

func TestLoadToken_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), config.TokenFile)
	require.NoError(t, os.WriteFile(path, []byte("not json"), 0600))

	_, err := LoadToken(path)
	assert.ErrorContains(t, err, "invalid token.json")
}

func TestOAuthConfig_Missing(t *testing.T) {
	cfg, err := config.New(t.TempDir())
	require.NoError(t, err)

	_, err = OAuthConfig(cfg)
	assert.ErrorContains(t, err, "oauth_client.json")
	assert.False(t, TokenValid(context.Background(), cfg))
}
