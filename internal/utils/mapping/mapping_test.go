package mapping

import (
	"testing"
	"time"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestAccountMappingNullableColumns(t *testing.T) {
	acc := domain.Account{Number: "1010", Name: "Cash", AccountType: domain.Asset, NormalBalance: domain.Debit, Balance: decimal.Zero}

	m := ToModelAccount(acc)
	assert.Nil(t, m.SubType)
	assert.Nil(t, m.Description)

	acc.SubType = "Current Asset"
	m = ToModelAccount(acc)
	if assert.NotNil(t, m.SubType) {
		assert.Equal(t, "Current Asset", *m.SubType)
	}
	assert.Equal(t, acc, ToDomainAccount(m))
}

func TestLedgerLineDateIsNormalized(t *testing.T) {
	loc := time.FixedZone("UTC+2", 2*60*60)
	m := ToModelLedgerLine(domain.LedgerLine{LineID: "l1", EntryDate: time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC)})
	m.EntryDate = time.Date(2024, 5, 10, 0, 0, 0, 0, loc)

	d := ToDomainLedgerLine(m)

	assert.Equal(t, time.UTC, d.EntryDate.Location())
	assert.Equal(t, "", d.Description)
}
