package seed

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
)

func TestDefaultChart(t *testing.T) {
	accounts, err := DefaultChart()
	require.NoError(t, err)
	assert.Len(t, accounts, 64)

	byNumber := make(map[string]string, len(accounts))
	for _, acc := range accounts {
		byNumber[acc.AccountNumber] = acc.AccountType
	}

	// Every default role must resolve inside the embedded chart.
	roles := domain.DefaultAccountRoles()
	for _, number := range []string{roles.Cash, roles.AccountsReceivable, roles.Revenue, roles.Expense} {
		assert.Contains(t, byNumber, number)
	}
	assert.Equal(t, "Contra-Asset", byNumber["1210"])
	assert.Equal(t, "Revenue", byNumber["4000"])
}

func TestParseRejectsBadCharts(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"malformed", "accounts: [\n"},
		{"missing name", "accounts:\n  - accountNumber: \"1\"\n    accountType: Asset\n    normalBalance: Debit\n"},
		{"duplicate", "accounts:\n  - {accountNumber: \"1\", accountName: A, accountType: Asset, normalBalance: Debit}\n  - {accountNumber: \"1\", accountName: B, accountType: Asset, normalBalance: Debit}\n"},
		{"bad type", "accounts:\n  - {accountNumber: \"1\", accountName: A, accountType: Cash, normalBalance: Debit}\n"},
		{"bad normal balance", "accounts:\n  - {accountNumber: \"1\", accountName: A, accountType: Asset, normalBalance: Left}\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			assert.Error(t, err)
		})
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chart.yaml")
	require.NoError(t, os.WriteFile(path, []byte("accounts:\n  - {accountNumber: \"9000\", accountName: Suspense, accountType: Asset, normalBalance: Debit}\n"), 0o600))

	accounts, err := LoadFile(path)
	require.NoError(t, err)
	require.Len(t, accounts, 1)
	assert.Equal(t, "Suspense", accounts[0].AccountName)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
