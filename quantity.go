package pdfimport

import "github.com/shopspring/decimal"

// Quantity is an exact number of shares.
type Quantity struct {
	value decimal.Decimal
}

// Q returns the Quantity for an integer or a decimal value.
func Q[T int | int64 | decimal.Decimal](value T) Quantity {
	switch v := any(value).(type) {
	case decimal.Decimal:
		return Quantity{value: v}
	case int:
		return Quantity{value: decimal.NewFromInt(int64(v))}
	case int64:
		return Quantity{value: decimal.NewFromInt(v)}
	default:
		panic("unsupported type")
	}
}

func (q Quantity) Equal(p Quantity) bool    { return q.value.Equal(p.value) }
func (q Quantity) IsZero() bool             { return q.value.IsZero() }
func (q Quantity) IsPositive() bool         { return q.value.IsPositive() }
func (q Quantity) Decimal() decimal.Decimal { return q.value }
func (q Quantity) Div(n int64) Quantity     { return Quantity{value: q.value.Div(decimal.NewFromInt(n))} }
func (q Quantity) String() string           { return q.value.String() }
