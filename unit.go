package pdfimport

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// UnitType is a typed string identifying the kind of a Unit.
type UnitType string

const (
	UnitTax        UnitType = "tax"
	UnitFee        UnitType = "fee"
	UnitGrossValue UnitType = "gross-value" // forex
)

// Unit is a monetary line item of a transaction: a tax, a fee, or the gross
// value of a transaction in the currency of its security.
type Unit struct {
	typ    UnitType
	amount Money
	forex  Money           // only for UnitGrossValue
	rate   decimal.Decimal // amount x rate = forex
}

// NewUnit returns a tax or fee unit.
func NewUnit(typ UnitType, amount Money) Unit {
	return Unit{typ: typ, amount: amount}
}

// NewForexUnit returns a gross value unit. It checks that rate converts amount into forex.
func NewForexUnit(amount, forex Money, rate decimal.Decimal) (Unit, error) {
	if got := amount.Exchange(forex.Currency(), rate); !got.Equal(forex) {
		return Unit{}, fmt.Errorf("rate %s converts %s into %s, not %s", rate, amount, got, forex)
	}
	return Unit{typ: UnitGrossValue, amount: amount, forex: forex, rate: rate}, nil
}

func (u Unit) Type() UnitType        { return u.typ }
func (u Unit) Amount() Money         { return u.amount }
func (u Unit) Forex() Money          { return u.forex }
func (u Unit) Rate() decimal.Decimal { return u.rate }

func (u Unit) String() string {
	if u.typ == UnitGrossValue {
		return fmt.Sprintf("%s %s (%s at %s)", u.typ, u.amount, u.forex, u.rate)
	}
	return fmt.Sprintf("%s %s", u.typ, u.amount)
}
