package accounting

import (
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	"github.com/shopspring/decimal"
)

// MoneyScale is the number of decimal places kept for monetary amounts.
const MoneyScale = 2

// Tolerance is the absolute difference under which two totals count as equal.
var Tolerance = decimal.RequireFromString("0.01")

// BalanceDelta is the change a (debit, credit) pair causes to an account balance.
// It is the only place the normal-balance projection is defined; posting, the
// general ledger, reports and integrity checks all go through it.
func BalanceDelta(normal domain.NormalBalance, debit, credit decimal.Decimal) decimal.Decimal {
	if normal == domain.Debit {
		return debit.Sub(credit)
	}
	return credit.Sub(debit)
}

// DebitBalance expresses an account balance as a signed debit amount
// (positive means the account carries a net debit).
func DebitBalance(acc domain.Account) decimal.Decimal {
	return SectionAmount(acc, domain.Debit)
}

// SectionAmount expresses an account balance on the natural side of the report
// section it appears in. A Debit-normal account inside a credit-natural section
// (e.g. owner's drawings under equity) therefore reduces the section total.
func SectionAmount(acc domain.Account, sectionNatural domain.NormalBalance) decimal.Decimal {
	return BalanceDelta(sectionNatural, debitSide(acc), creditSide(acc))
}

// debitSide and creditSide split a stored balance back into a (debit, credit)
// pair so that it can be re-projected through BalanceDelta.
func debitSide(acc domain.Account) decimal.Decimal {
	if acc.NormalBalance == domain.Debit {
		return acc.Balance
	}
	return decimal.Zero
}

func creditSide(acc domain.Account) decimal.Decimal {
	if acc.NormalBalance == domain.Debit {
		return decimal.Zero
	}
	return acc.Balance
}

// RoundMoney rounds an amount to MoneyScale places.
func RoundMoney(d decimal.Decimal) decimal.Decimal {
	return d.Round(MoneyScale)
}

// WithinTolerance reports whether |a - b| < Tolerance.
func WithinTolerance(a, b decimal.Decimal) bool {
	return a.Sub(b).Abs().LessThan(Tolerance)
}

// ExceedsTolerance reports whether |a - b| > Tolerance. Entries whose totals
// differ by exactly the tolerance are accepted.
func ExceedsTolerance(a, b decimal.Decimal) bool {
	return a.Sub(b).Abs().GreaterThan(Tolerance)
}

// TotalLines sums the debit and credit sides of proposed lines.
func TotalLines(lines []domain.LineInput) (debits, credits decimal.Decimal) {
	debits, credits = decimal.Zero, decimal.Zero
	for _, l := range lines {
		debits = debits.Add(l.Debit)
		credits = credits.Add(l.Credit)
	}
	return debits, credits
}

// RunningBalances returns the balance after each line, starting at zero.
func RunningBalances(normal domain.NormalBalance, lines []domain.LedgerLine) []decimal.Decimal {
	out := make([]decimal.Decimal, len(lines))
	running := decimal.Zero
	for i, l := range lines {
		running = running.Add(BalanceDelta(normal, l.DebitAmount, l.CreditAmount))
		out[i] = running
	}
	return out
}

// NetDeltas groups lines by account number and sums their balance deltas.
func NetDeltas(lines []domain.LedgerLine, accounts map[string]domain.Account) map[string]decimal.Decimal {
	deltas := make(map[string]decimal.Decimal, len(accounts))
	for _, l := range lines {
		acc := accounts[l.AccountNumber]
		current, ok := deltas[l.AccountNumber]
		if !ok {
			current = decimal.Zero
		}
		deltas[l.AccountNumber] = current.Add(BalanceDelta(acc.NormalBalance, l.DebitAmount, l.CreditAmount))
	}
	return deltas
}
