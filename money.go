package pdfimport

import (
	"fmt"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Money is an exact amount of a currency, held in minor units (cents for EUR).
// The amount is never negative.
type Money struct {
	cur    string
	amount int64 // minor units
}

// MoneyOf returns the Money for an amount of minor units in a currency.
// It panics on a negative amount, extracted amounts are always unsigned.
func MoneyOf(currency string, amount int64) Money {
	if amount < 0 {
		panic(fmt.Sprintf("negative amount %d %s", amount, currency))
	}
	return Money{cur: currency, amount: amount}
}

// MoneyOfDecimal returns d in currency, rounded to its minor unit.
func MoneyOfDecimal(currency string, d decimal.Decimal) Money {
	f := fraction(currency)
	return MoneyOf(currency, d.Round(f).Shift(f).IntPart())
}

// currency returns the money's currency
func (m Money) currency() money.Currency {
	// to get a never nil currency I need to call the Money constructor
	return *money.New(0, m.cur).Currency()
}

// fraction is the number of digits of the minor unit.
func fraction(cur string) int32 { return int32(money.New(0, cur).Currency().Fraction) }

// Currency returns the ISO 4217 code.
func (m Money) Currency() string { return m.cur }

// Amount returns the amount in minor units.
func (m Money) Amount() int64 { return m.amount }

func (m Money) IsZero() bool          { return m.amount == 0 }
func (m Money) Equal(n Money) bool    { return m == n }
func (m Money) LessThan(n Money) bool { return m.amount < cents(m, n).amount }

// Decimal returns the amount in major units.
func (m Money) Decimal() decimal.Decimal {
	return decimal.New(m.amount, -fraction(m.cur))
}

// String returns the string representation of the money value.
func (m Money) String() string {
	cur := m.currency()
	return cur.Formatter().Format(m.amount)
}

// Add returns m+n, both must share the currency.
func (m Money) Add(n Money) Money { return Money{cur: m.cur, amount: m.amount + cents(m, n).amount} }

// Sub returns m-n. It fails if n is greater than m.
func (m Money) Sub(n Money) (Money, error) {
	n = cents(m, n)
	if n.amount > m.amount {
		return Money{}, fmt.Errorf("cannot subtract %s from %s", n, m)
	}
	return Money{cur: m.cur, amount: m.amount - n.amount}, nil
}

// cents checks that both moneys share the currency and returns n.
func cents(m, n Money) Money {
	if m.cur != n.cur {
		panic("currency mismatch " + m.cur + "!=" + n.cur)
	}
	return n
}

// Exchange converts m into currency 'to' at rate, rounding half up to the
// minor unit of the target currency.
func (m Money) Exchange(to string, rate decimal.Decimal) Money {
	return MoneyOfDecimal(to, m.Decimal().Mul(rate))
}
