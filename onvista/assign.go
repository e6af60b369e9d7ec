package onvista

import (
	"github.com/etnz/pdfimport"
)

func subject(kind pdfimport.Kind) func() pdfimport.BuySell {
	return func() pdfimport.BuySell { return pdfimport.BuySell{Kind: kind} }
}

func accountSubject(kind pdfimport.Kind) func() pdfimport.Account {
	return func() pdfimport.Account { return pdfimport.Account{Kind: kind} }
}

func setSecurity(env *pdfimport.Env, v pdfimport.Values, t pdfimport.BuySell) (pdfimport.BuySell, error) {
	sec, err := env.Security(v)
	if err != nil {
		return t, err
	}
	t.Security = sec
	return t, nil
}

func setShares(env *pdfimport.Env, v pdfimport.Values, t pdfimport.BuySell) (pdfimport.BuySell, error) {
	q, err := pdfimport.ParseShares(v.Get("shares"), v.Get("notation"))
	if err != nil {
		return t, err
	}
	t.Shares = q
	return t, nil
}

func setDate(env *pdfimport.Env, v pdfimport.Values, t pdfimport.BuySell) (pdfimport.BuySell, error) {
	d, err := pdfimport.ParseDate(v.Get("date"))
	if err != nil {
		return t, err
	}
	t.Date = d
	return t, nil
}

func setSharesDate(env *pdfimport.Env, v pdfimport.Values, t pdfimport.BuySell) (pdfimport.BuySell, error) {
	t, err := setShares(env, v, t)
	if err != nil {
		return t, err
	}
	return setDate(env, v, t)
}

// setSettlement reads the cash booked on the account.
func setSettlement(env *pdfimport.Env, v pdfimport.Values, t pdfimport.BuySell) (pdfimport.BuySell, error) {
	t, err := setDate(env, v, t)
	if err != nil {
		return t, err
	}
	m, err := pdfimport.ParseMoney(v.Get("currency"), v.Get("amount"))
	if err != nil {
		return t, err
	}
	t.Currency, t.Amount = m.Currency(), m.Amount()
	return t, nil
}

// setReinvestment reads the shares bought with a dividend, at the
// reinvestment price.
func setReinvestment(env *pdfimport.Env, v pdfimport.Values, t pdfimport.BuySell) (pdfimport.BuySell, error) {
	t, err := setShares(env, v, t)
	if err != nil {
		return t, err
	}
	cur, err := pdfimport.ParseCurrency(v.Get("currency"))
	if err != nil {
		return t, err
	}
	price, err := pdfimport.ParsePrice(v.Get("price"))
	if err != nil {
		return t, err
	}
	m := pdfimport.MoneyOfDecimal(cur, price.Mul(t.Shares.Decimal()))
	t.Currency, t.Amount = m.Currency(), m.Amount()
	return t, nil
}

func setAccountSecurity(env *pdfimport.Env, v pdfimport.Values, t pdfimport.Account) (pdfimport.Account, error) {
	sec, err := env.Security(v)
	if err != nil {
		return t, err
	}
	t.Security = sec
	return t, nil
}

// setAccountShares reads the shares entitled to the payment, and the pay
// day. The pay day defaults to the value date of the booking.
func setAccountShares(env *pdfimport.Env, v pdfimport.Values, t pdfimport.Account) (pdfimport.Account, error) {
	q, err := pdfimport.ParseShares(v.Get("shares"), v.Get("notation"))
	if err != nil {
		return t, err
	}
	s, ok := v.Lookup("date")
	if !ok {
		s = v.Get("valuta")
	}
	d, err := pdfimport.ParseDate(s)
	if err != nil {
		return t, err
	}
	t.Shares, t.Date = q, d
	return t, nil
}

func setAccountAmount(env *pdfimport.Env, v pdfimport.Values, t pdfimport.Account) (pdfimport.Account, error) {
	m, err := pdfimport.ParseMoney(v.Get("currency"), v.Get("amount"))
	if err != nil {
		return t, err
	}
	t.Currency, t.Amount = m.Currency(), m.Amount()
	return t, nil
}

func setPayment(env *pdfimport.Env, v pdfimport.Values, t pdfimport.Account) (pdfimport.Account, error) {
	t, err := setAccountShares(env, v, t)
	if err != nil {
		return t, err
	}
	return setAccountAmount(env, v, t)
}

// unitState is a transaction state holding line items.
type unitState[T any] interface {
	WithUnit(pdfimport.Unit) T
}

// setUnit returns an assign function adding a unit of typ, read from the
// captures name and name+"Currency".
func setUnit[T unitState[T]](typ pdfimport.UnitType, name string) pdfimport.AssignFunc[T] {
	return func(env *pdfimport.Env, v pdfimport.Values, t T) (T, error) {
		m, err := pdfimport.ParseMoney(v.Get(name+"Currency"), v.Get(name))
		if err != nil {
			return t, err
		}
		return t.WithUnit(pdfimport.NewUnit(typ, m)), nil
	}
}

// taxes are withheld line items, e.g. "Kapitalertragsteuer EUR 4,22-".
var taxes = []struct{ label, name string }{
	{`Kapitalertragsteuer`, "tax"},
	{`Solidaritätszuschlag`, "soli"},
	{`Kirchensteuer`, "kirchenst"},
}

// fees are charged line items, e.g. "Handelsplatz Orderprovision EUR 5,00-".
var fees = []struct{ label, name string }{
	{`(.*)Orderprovision `, "brokerage"},
	{`(.*) B\Drsengeb\Dhr `, "stockfees"},
	{`(.*)Maklercourtage\s+`, "agent"},
}

// addTaxes adds the optional tax sections. They may appear anywhere in the
// instance.
func addTaxes[T unitState[T]](tx *pdfimport.Transaction[T]) {
	for _, tax := range taxes {
		tx.Section(tax.name, tax.name+"Currency").
			Optional().
			Detached().
			Match(tax.label + ` (?P<` + tax.name + `Currency>\w{3}) (?P<` + tax.name + `>` + amount + `)-`).
			Assign(setUnit[T](pdfimport.UnitTax, tax.name))
	}
}

// addFees adds the optional fee sections. They may appear anywhere in the
// instance.
func addFees[T unitState[T]](tx *pdfimport.Transaction[T]) {
	for _, fee := range fees {
		tx.Section(fee.name, fee.name+"Currency").
			Optional().
			Detached().
			Match(fee.label + `(?P<` + fee.name + `Currency>\w{3}) (?P<` + fee.name + `>` + amount + `)-`).
			Assign(setUnit[T](pdfimport.UnitFee, fee.name))
	}
}
