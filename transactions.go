package pdfimport

import (
	"fmt"
	"slices"

	"github.com/etnz/pdfimport/date"
	"github.com/google/uuid"
)

// Kind is a typed string for identifying a transaction.
type Kind string

// Kinds of extracted transactions.
const (
	KindBuy        Kind = "buy"
	KindSell       Kind = "sell"
	KindTransferIn Kind = "transfer-in"
	KindDividend   Kind = "dividend"
)

// BuySell is the state of a security transaction being extracted: a buy,
// a sell or a transfer in. Taxes and fees belong to the security leg.
//
// Assign functions receive a copy and return the updated state.
type BuySell struct {
	Kind     Kind
	Security *Security
	Shares   Quantity
	Date     date.Date
	Currency string // settlement currency
	Amount   int64  // settlement amount in minor units
	Units    []Unit
}

// WithUnit returns a copy of b with u appended.
func (b BuySell) WithUnit(u Unit) BuySell {
	b.Units = append(slices.Clip(b.Units), u)
	return b
}

// Account is the state of a cash transaction being extracted, a dividend.
// Taxes belong to the cash leg.
type Account struct {
	Kind     Kind
	Security *Security
	Shares   Quantity
	Date     date.Date
	Currency string
	Amount   int64
	Units    []Unit
}

// WithUnit returns a copy of a with u appended.
func (a Account) WithUnit(u Unit) Account {
	a.Units = append(slices.Clip(a.Units), u)
	return a
}

// Source locates the block instance an item was extracted from.
type Source struct {
	Document     string // document name
	Extractor    string // extractor label
	DocumentType string
	Block        string
	From, To     int // line range, 1-based, inclusive
}

func (s Source) String() string {
	return fmt.Sprintf("%s:%d-%d", s.Document, s.From, s.To)
}

// itemNamespace makes Item IDs stable: the same instance always yields the same ID.
var itemNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/etnz/pdfimport/item"))

// Item defines the common interface for all extracted transactions.
type Item interface {
	ID() uuid.UUID
	What() Kind
	When() date.Date
	Security() *Security
	Shares() Quantity
	Amount() Money
	Units() []Unit
	Source() Source
}

// entry holds the fields common to all items.
type entry struct {
	id       uuid.UUID
	kind     Kind
	day      date.Date
	security *Security
	shares   Quantity
	amount   Money
	units    []Unit
	src      Source
}

func newEntry(kind Kind, day date.Date, sec *Security, shares Quantity, amount Money, units []Unit, src Source) entry {
	key := fmt.Sprintf("%s|%s|%s|%s|%d|%d", src.Document, src.Extractor, src.DocumentType, src.Block, src.From, src.To)
	return entry{
		id:       uuid.NewSHA1(itemNamespace, []byte(key)),
		kind:     kind,
		day:      day,
		security: sec,
		shares:   shares,
		amount:   amount,
		units:    slices.Clone(units),
		src:      src,
	}
}

func (e entry) ID() uuid.UUID       { return e.id }
func (e entry) What() Kind          { return e.kind }
func (e entry) When() date.Date     { return e.day }
func (e entry) Security() *Security { return e.security }
func (e entry) Shares() Quantity    { return e.shares }
func (e entry) Amount() Money       { return e.amount }
func (e entry) Source() Source      { return e.src }

// Units returns a copy of the line items.
func (e entry) Units() []Unit { return slices.Clone(e.units) }

// Buy is a purchase of shares, paired with the cash payment.
type Buy struct{ entry }

// Sell is a sale of shares, paired with the cash proceeds.
type Sell struct{ entry }

// TransferIn is a delivery of shares into the portfolio.
type TransferIn struct{ entry }

// Dividend is a cash distribution of a security.
type Dividend struct{ entry }

// Check that all items implement the Item interface.
var (
	_ Item = Buy{}
	_ Item = Sell{}
	_ Item = TransferIn{}
	_ Item = Dividend{}
)

// WrapBuySell turns a completed BuySell into its Item.
func WrapBuySell(env *Env, b BuySell, src Source) (Item, error) {
	switch b.Kind {
	case KindBuy, KindSell, KindTransferIn:
	default:
		return nil, fmt.Errorf("%w: %q is not a security transaction", ErrUnsupportedTransactionVariant, b.Kind)
	}
	if b.Security == nil {
		return nil, fmt.Errorf("%w: %s without a security", ErrUnsupportedTransactionVariant, b.Kind)
	}
	if b.Date.IsZero() {
		return nil, fmt.Errorf("%w: %s without a date", ErrUnsupportedTransactionVariant, b.Kind)
	}
	if !b.Shares.IsPositive() {
		return nil, fmt.Errorf("%w: %s of %s shares", ErrUnsupportedTransactionVariant, b.Kind, b.Shares)
	}
	if b.Currency == "" {
		if b.Kind != KindTransferIn {
			return nil, fmt.Errorf("%w: %s without a settlement amount", ErrUnsupportedTransactionVariant, b.Kind)
		}
		b.Currency = b.Security.Currency()
	}

	amount := MoneyOf(b.Currency, b.Amount)
	units, err := env.withGrossValue(b.Kind, b.Date, b.Security, amount, b.Units)
	if err != nil {
		return nil, err
	}

	e := newEntry(b.Kind, b.Date, b.Security, b.Shares, amount, units, src)
	switch b.Kind {
	case KindBuy:
		return Buy{e}, nil
	case KindSell:
		return Sell{e}, nil
	default:
		return TransferIn{e}, nil
	}
}

// WrapAccount turns a completed Account into its Item.
func WrapAccount(env *Env, a Account, src Source) (Item, error) {
	if a.Kind != KindDividend {
		return nil, fmt.Errorf("%w: %q is not an account transaction", ErrUnsupportedTransactionVariant, a.Kind)
	}
	if a.Security == nil {
		return nil, fmt.Errorf("%w: %s without a security", ErrUnsupportedTransactionVariant, a.Kind)
	}
	if a.Date.IsZero() || a.Currency == "" {
		return nil, fmt.Errorf("%w: %s without a date or an amount", ErrUnsupportedTransactionVariant, a.Kind)
	}
	amount := MoneyOf(a.Currency, a.Amount)
	units, err := env.withGrossValue(a.Kind, a.Date, a.Security, amount, a.Units)
	if err != nil {
		return nil, err
	}
	return Dividend{newEntry(a.Kind, a.Date, a.Security, a.Shares, amount, units, src)}, nil
}
