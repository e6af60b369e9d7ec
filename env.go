package pdfimport

import (
	"fmt"
	"slices"
	"strings"

	"github.com/etnz/pdfimport/date"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// Converter is the currency conversion service the extraction relies on for
// securities traded in a foreign currency.
type Converter interface {
	// Rate returns the rate converting 'from' into 'to' on day.
	Rate(day date.Date, from, to string) (decimal.Decimal, error)
	// Convert returns m converted into 'to' on day.
	Convert(day date.Date, m Money, to string) (Money, error)
}

// Env holds the collaborators shared by all the block instances of an extraction.
type Env struct {
	Securities   *Securities // get-or-create registry, required
	Converter    Converter   // optional, needed for foreign currency securities
	BaseCurrency string      // currency of securities created without one

	log zerolog.Logger
}

// NewEnv returns an Env with EUR as base currency and no converter.
func NewEnv(securities *Securities) *Env {
	return &Env{Securities: securities, BaseCurrency: "EUR", log: zerolog.Nop()}
}

// SetLogger sets the logger receiving the extraction events.
func (env *Env) SetLogger(log zerolog.Logger) { env.log = log }

// Security returns the security captured as "isin" and "name".
// A new security takes the captured "currency" if any, the base currency otherwise.
func (env *Env) Security(v Values) (*Security, error) {
	isin := strings.TrimSpace(v.Get("isin"))
	name := strings.TrimSpace(v.Get("name"))
	currency := env.BaseCurrency
	if c, ok := v.Lookup("currency"); ok {
		var err error
		if currency, err = ParseCurrency(c); err != nil {
			return nil, err
		}
	}
	sec, created, err := env.Securities.GetOrCreate(isin, name, currency)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedTransactionVariant, err)
	}
	if created {
		ev := env.log.Info()
		if err := ValidateISIN(isin); err != nil {
			ev = env.log.Warn().Err(err)
		}
		ev.Str("isin", isin).Str("name", name).Str("currency", currency).Msg("security created")
	}
	return sec, nil
}

// withGrossValue returns units with a gross value unit appended when the
// security currency differs from the settlement currency of amount.
func (env *Env) withGrossValue(kind Kind, day date.Date, sec *Security, amount Money, units []Unit) ([]Unit, error) {
	if sec.Currency() == amount.Currency() {
		return units, nil
	}
	for _, u := range units {
		if u.Type() == UnitGrossValue {
			return units, nil
		}
	}
	gross, err := grossValue(kind, amount, units)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedTransactionVariant, err)
	}
	if env.Converter == nil {
		return nil, fmt.Errorf("%w: %s to %s on %s: no converter", ErrNoRate, amount.Currency(), sec.Currency(), day)
	}
	rate, err := env.Converter.Rate(day, amount.Currency(), sec.Currency())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoRate, err)
	}
	forex, err := env.Converter.Convert(day, gross, sec.Currency())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoRate, err)
	}
	u, err := NewForexUnit(gross, forex, rate)
	if err != nil {
		return nil, err
	}
	return append(slices.Clip(units), u), nil
}

// grossValue is the value of the shares without fees and taxes: they are
// paid on top of a buy, and withheld from a sale or a dividend.
func grossValue(kind Kind, amount Money, units []Unit) (Money, error) {
	charges := MoneyOf(amount.Currency(), 0)
	for _, u := range units {
		if (u.Type() == UnitFee || u.Type() == UnitTax) && u.Amount().Currency() == amount.Currency() {
			charges = charges.Add(u.Amount())
		}
	}
	if kind == KindBuy {
		return amount.Sub(charges)
	}
	return amount.Add(charges), nil
}
