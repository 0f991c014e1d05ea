// Package seed holds the default chart of accounts.
package seed

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
	"github.com/SscSPs/ledger_engine/internal/dto"
)

//go:embed chart_of_accounts.yaml
var defaultChart []byte

// Chart is the YAML layout of a chart of accounts file.
type Chart struct {
	Accounts []dto.CreateAccountRequest `yaml:"accounts"`
}

// DefaultChart returns the embedded chart of accounts.
func DefaultChart() ([]dto.CreateAccountRequest, error) {
	return Parse(defaultChart)
}

// LoadFile reads a chart of accounts from a YAML file.
func LoadFile(path string) ([]dto.CreateAccountRequest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read chart file: %w", err)
	}
	return Parse(data)
}

// Parse decodes a chart and rejects duplicate numbers and unknown
// account types or normal balances.
func Parse(data []byte) ([]dto.CreateAccountRequest, error) {
	var chart Chart
	if err := yaml.Unmarshal(data, &chart); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	seen := make(map[string]bool, len(chart.Accounts))
	for i, acc := range chart.Accounts {
		if acc.AccountNumber == "" || acc.AccountName == "" {
			return nil, fmt.Errorf("account %d: number and name are required", i+1)
		}
		if seen[acc.AccountNumber] {
			return nil, fmt.Errorf("account %s listed twice", acc.AccountNumber)
		}
		seen[acc.AccountNumber] = true
		if !domain.AccountType(acc.AccountType).Valid() {
			return nil, fmt.Errorf("account %s: invalid account type %q", acc.AccountNumber, acc.AccountType)
		}
		if !domain.NormalBalance(acc.NormalBalance).Valid() {
			return nil, fmt.Errorf("account %s: invalid normal balance %q", acc.AccountNumber, acc.NormalBalance)
		}
	}
	return chart.Accounts, nil
}
