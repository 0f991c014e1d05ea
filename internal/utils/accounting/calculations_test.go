package accounting_test

import (
	"testing"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
	"github.com/SscSPs/ledger_engine/internal/utils/accounting"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestBalanceDelta(t *testing.T) {
	tests := []struct {
		name   string
		normal domain.NormalBalance
		debit  string
		credit string
		want   string
	}{
		{name: "debit to debit-normal increases", normal: domain.Debit, debit: "100.00", credit: "0", want: "100.00"},
		{name: "credit to debit-normal decreases", normal: domain.Debit, debit: "0", credit: "40.00", want: "-40.00"},
		{name: "credit to credit-normal increases", normal: domain.Credit, debit: "0", credit: "100.00", want: "100.00"},
		{name: "debit to credit-normal decreases", normal: domain.Credit, debit: "25.50", credit: "0", want: "-25.50"},
		{name: "both sides present nets out", normal: domain.Debit, debit: "10.00", credit: "4.00", want: "6.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := accounting.BalanceDelta(tt.normal, dec(tt.debit), dec(tt.credit))
			assert.True(t, dec(tt.want).Equal(got), "want %s got %s", tt.want, got)
		})
	}
}

func TestSectionAmount(t *testing.T) {
	allowance := domain.Account{NormalBalance: domain.Credit, Balance: dec("50.00")}
	drawings := domain.Account{NormalBalance: domain.Debit, Balance: dec("30.00")}
	capital := domain.Account{NormalBalance: domain.Credit, Balance: dec("1000.00")}

	assert.True(t, dec("-50.00").Equal(accounting.SectionAmount(allowance, domain.Debit)))
	assert.True(t, dec("-30.00").Equal(accounting.SectionAmount(drawings, domain.Credit)))
	assert.True(t, dec("1000.00").Equal(accounting.SectionAmount(capital, domain.Credit)))
	assert.True(t, dec("-1000.00").Equal(accounting.DebitBalance(capital)))
}

func TestTolerance(t *testing.T) {
	assert.False(t, accounting.ExceedsTolerance(dec("100.00"), dec("100.01")), "exactly the tolerance is accepted")
	assert.True(t, accounting.ExceedsTolerance(dec("100.00"), dec("100.02")))
	assert.True(t, accounting.WithinTolerance(dec("100.000"), dec("100.009")))
	assert.False(t, accounting.WithinTolerance(dec("100.00"), dec("100.01")))
}

func TestRoundMoney(t *testing.T) {
	assert.Equal(t, "10.13", accounting.RoundMoney(dec("10.125")).StringFixed(2))
	assert.Equal(t, "10.12", accounting.RoundMoney(dec("10.124")).StringFixed(2))
}

func TestTotalLines(t *testing.T) {
	debits, credits := accounting.TotalLines([]domain.LineInput{
		{AccountNumber: "1010", Debit: dec("60.00"), Credit: decimal.Zero},
		{AccountNumber: "1020", Debit: dec("40.00"), Credit: decimal.Zero},
		{AccountNumber: "3000", Debit: decimal.Zero, Credit: dec("100.00")},
	})
	assert.True(t, dec("100.00").Equal(debits))
	assert.True(t, dec("100.00").Equal(credits))
}

func TestRunningBalances(t *testing.T) {
	lines := []domain.LedgerLine{
		{DebitAmount: dec("100.00"), CreditAmount: decimal.Zero},
		{DebitAmount: decimal.Zero, CreditAmount: dec("30.00")},
		{DebitAmount: dec("5.00"), CreditAmount: decimal.Zero},
	}
	got := accounting.RunningBalances(domain.Debit, lines)

	assert.Len(t, got, 3)
	assert.True(t, dec("100.00").Equal(got[0]))
	assert.True(t, dec("70.00").Equal(got[1]))
	assert.True(t, dec("75.00").Equal(got[2]))
}

func TestNetDeltas(t *testing.T) {
	accounts := map[string]domain.Account{
		"1010": {Number: "1010", NormalBalance: domain.Debit},
		"4000": {Number: "4000", NormalBalance: domain.Credit},
	}
	lines := []domain.LedgerLine{
		{AccountNumber: "1010", DebitAmount: dec("80.00"), CreditAmount: decimal.Zero},
		{AccountNumber: "1010", DebitAmount: dec("20.00"), CreditAmount: decimal.Zero},
		{AccountNumber: "4000", DebitAmount: decimal.Zero, CreditAmount: dec("100.00")},
	}
	deltas := accounting.NetDeltas(lines, accounts)

	assert.True(t, dec("100.00").Equal(deltas["1010"]))
	assert.True(t, dec("100.00").Equal(deltas["4000"]))
}
