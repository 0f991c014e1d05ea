package cmd

import (
	"bytes"
	"strings"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestTokenCommand(t *testing.T) {
	t.Setenv("JWT_SECRET", "cli-test-secret")
	t.Setenv("JWT_ISSUER", "cli-test")

	out, err := execute(t, "token", "--subject", "clerk-7", "--ttl", "5m")
	require.NoError(t, err)

	claims := &jwt.RegisteredClaims{}
	_, err = jwt.ParseWithClaims(strings.TrimSpace(out), claims, func(*jwt.Token) (any, error) {
		return []byte("cli-test-secret"), nil
	})
	require.NoError(t, err)
	assert.Equal(t, "clerk-7", claims.Subject)
	assert.Equal(t, "cli-test", claims.Issuer)
}

func TestMigrateRejectsUnknownDirection(t *testing.T) {
	_, err := execute(t, "migrate", "sideways")
	assert.Error(t, err)
}

func TestSeedRequiresPostgres(t *testing.T) {
	t.Setenv("LEDGER_STORE", "memory")

	_, err := execute(t, "seed")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "LEDGER_STORE=postgres")
}

func TestWorkerRequiresRedis(t *testing.T) {
	t.Setenv("REDIS_URL", "")

	_, err := execute(t, "worker")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "REDIS_URL")
}
