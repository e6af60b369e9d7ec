package pdfimport

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/rs/zerolog"
)

// orderExtractor reads test documents like orderDoc.
func orderExtractor(label string, ids ...string) *Extractor {
	tx := NewTransaction(func() BuySell { return BuySell{Kind: KindBuy} }).
		Section("name", "isin").
		Match(`Security (?P<name>\S+) (?P<isin>\S+)`).
		Assign(func(env *Env, v Values, t BuySell) (BuySell, error) {
			sec, err := env.Security(v)
			t.Security = sec
			return t, err
		}).
		Section("shares").
		Match(`Shares (?P<shares>\S+)`).
		Assign(func(env *Env, v Values, t BuySell) (BuySell, error) {
			q, err := ParseShares(v.Get("shares"), PieceNotation)
			t.Shares = q
			return t, err
		}).
		Section("date", "currency", "amount").
		Match(`Paid (?P<date>\S+) (?P<currency>\w{3}) (?P<amount>\S+)`).
		Assign(func(env *Env, v Values, t BuySell) (BuySell, error) {
			d, err := ParseDate(v.Get("date"))
			if err != nil {
				return t, err
			}
			m, err := ParseMoney(v.Get("currency"), v.Get("amount"))
			t.Date, t.Currency, t.Amount = d, m.Currency(), m.Amount()
			return t, err
		}).
		Section("fee", "feeCurrency").
		Optional().
		Detached().
		Match(`Fee (?P<feeCurrency>\w{3}) (?P<fee>\S+)`).
		Assign(func(env *Env, v Values, t BuySell) (BuySell, error) {
			m, err := ParseMoney(v.Get("feeCurrency"), v.Get("fee"))
			if err != nil {
				return t, err
			}
			return t.WithUnit(NewUnit(UnitFee, m)), nil
		}).
		Wrap(WrapBuySell)

	e := NewExtractor(label)
	for _, id := range ids {
		e.AddBankIdentifier(id)
	}
	return e.AddDocumentType(NewDocumentType("Order").AddBlock(NewBlock(`Order.*`).Set(tx)))
}

const orderDoc = `Order 1
Security Acme DE0001234567
Shares 10
Paid 14.01.2015 EUR 100,00`

func TestImporter_Extract(t *testing.T) {
	imp := NewImporter(WithExtractors(orderExtractor("generic", ""), orderExtractor("bank", "Bank B")))

	tests := []struct {
		name          string
		text          string
		wantExtractor []string
	}{
		{"generic", orderDoc, []string{"generic"}},
		{"identified", "Bank B\n" + orderDoc, []string{"bank"}},
		{"two orders", orderDoc + "\n" + orderDoc, []string{"generic", "generic"}},
		{"no order", "Your Order list", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := imp.Extract(NewDocument(tt.name, tt.text))
			if len(res.Diagnostics) != 0 {
				t.Errorf("Extract() diagnostics = %v, want none", res.Diagnostics)
			}
			var got []string
			for _, it := range res.Items {
				got = append(got, it.Source().Extractor)
			}
			if strings.Join(got, " ") != strings.Join(tt.wantExtractor, " ") {
				t.Errorf("Extract() extractors = %v, want %v", got, tt.wantExtractor)
			}
		})
	}
}

func TestImporter_ExtractWith(t *testing.T) {
	imp := NewImporter(WithExtractors(orderExtractor("bank", "Bank B")))
	// ExtractWith does not check bank identifiers
	res, err := imp.ExtractWith("bank", NewDocument("doc", orderDoc))
	if err != nil {
		t.Fatalf("ExtractWith() unexpected error: %v", err)
	}
	if len(res.Items) != 1 {
		t.Errorf("ExtractWith() got %d items, want 1", len(res.Items))
	}
	if _, err := imp.ExtractWith("unknown", NewDocument("doc", orderDoc)); err == nil {
		t.Error("ExtractWith(unknown) succeeded, want error")
	}
}

func TestImporter_ExtractAll(t *testing.T) {
	var docs []Document
	for i := range 50 {
		docs = append(docs, NewDocument(fmt.Sprintf("doc-%d", i), orderDoc))
	}
	imp := NewImporter(WithExtractors(orderExtractor("generic")), WithWorkers(8))
	results, err := imp.ExtractAll(context.Background(), docs)
	if err != nil {
		t.Fatalf("ExtractAll() unexpected error: %v", err)
	}
	for i, res := range results {
		if res.Document != docs[i].Name() || len(res.Items) != 1 {
			t.Errorf("ExtractAll()[%d] = %s with %d items, want %s with 1", i, res.Document, len(res.Items), docs[i].Name())
		}
	}
	if got := imp.Securities().Len(); got != 1 {
		t.Errorf("Securities().Len() = %d, want 1", got)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	results, err = imp.ExtractAll(ctx, docs)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("ExtractAll(canceled) error = %v, want %v", err, context.Canceled)
	}
	for i, res := range results {
		if len(res.Items) != 0 {
			t.Errorf("ExtractAll(canceled)[%d] has %d items, want 0", i, len(res.Items))
		}
	}
}

func TestExtractor_Failures(t *testing.T) {
	var logs strings.Builder
	imp := NewImporter(WithExtractors(orderExtractor("generic")), WithLogger(zerolog.New(&logs)))
	text := strings.Join([]string{
		orderDoc,
		strings.Replace(orderDoc, "14.01.2015", "31.02.2015", 1),
		"Order 3\nSecurity Acme DE0001234567",
		orderDoc,
	}, "\n")
	res := imp.Extract(NewDocument("doc", text))
	if got := len(res.Items); got != 2 {
		t.Errorf("Extract() got %d items, want 2", got)
	}
	if got := len(res.Diagnostics); got != 2 {
		t.Fatalf("Extract() got %d diagnostics, want 2", got)
	}
	if d := res.Diagnostics[0]; d.Severity() != Warning || d.Source.From != 5 || d.Source.To != 8 {
		t.Errorf("Diagnostics[0] = %v (%v), want a warning on lines 5-8", d, d.Severity())
	}
	if d := res.Diagnostics[1]; d.Severity() != Discard || d.Section != "shares" {
		t.Errorf("Diagnostics[1] = %v (%v), want a discard in section shares", d, d.Severity())
	}
	if got := strings.Count(logs.String(), "block instance discarded"); got != 2 {
		t.Errorf("logged %d discarded instances, want 2:\n%s", got, logs.String())
	}
}

func TestExtractor_OverlappingDocumentTypes(t *testing.T) {
	notice := NewTransaction(func() Account { return Account{Kind: KindDividend} }).
		Section("name", "isin").
		Match(`Note (?P<name>\S+) (?P<isin>\S+)`).
		Assign(func(env *Env, v Values, a Account) (Account, error) {
			sec, err := env.Security(v)
			a.Security = sec
			return a, err
		}).
		Section("date", "currency", "amount").
		Match(`Credit (?P<date>\S+) (?P<currency>\w{3}) (?P<amount>\S+)`).
		Assign(func(env *Env, v Values, a Account) (Account, error) {
			d, err := ParseDate(v.Get("date"))
			if err != nil {
				return a, err
			}
			m, err := ParseMoney(v.Get("currency"), v.Get("amount"))
			a.Date, a.Currency, a.Amount = d, m.Currency(), m.Amount()
			return a, err
		}).
		Wrap(WrapAccount)
	e := orderExtractor("generic").
		AddDocumentType(NewDocumentType("Notice").AddBlock(NewBlock(`Notice.*`).Set(notice)))

	// the notice starts inside the order instance
	text := strings.Join([]string{
		"Order 1",
		"Security Acme DE0001234567",
		"Notice of credit",
		"Note Acme DE0001234567",
		"Credit 15.01.2015 EUR 2,50",
		"Shares 10",
		"Paid 14.01.2015 EUR 100,00",
	}, "\n")
	res := e.Extract(NewEnv(NewSecurities()), NewDocument("doc", text))
	if len(res.Diagnostics) != 0 {
		t.Errorf("Extract() diagnostics = %v, want none", res.Diagnostics)
	}
	if len(res.Items) != 2 {
		t.Fatalf("Extract() got %d items, want 2", len(res.Items))
	}
	tests := []struct {
		kind     Kind
		amount   int64
		from, to int
	}{
		{KindBuy, 10000, 1, 7},
		{KindDividend, 250, 3, 7},
	}
	for i, tt := range tests {
		it := res.Items[i]
		if it.What() != tt.kind || it.Amount().Amount() != tt.amount {
			t.Errorf("Items[%d] = %s %d, want %s %d", i, it.What(), it.Amount().Amount(), tt.kind, tt.amount)
		}
		if src := it.Source(); src.From != tt.from || src.To != tt.to {
			t.Errorf("Items[%d].Source() = %d-%d, want %d-%d", i, src.From, src.To, tt.from, tt.to)
		}
	}
}

func TestBlock_EndWith(t *testing.T) {
	tx := orderExtractor("generic").DocumentTypes()[0].Blocks()[0].tx
	withEnd := NewExtractor("end").AddDocumentType(
		NewDocumentType("Order").AddBlock(NewBlock(`Order.*`).EndWith(`Total`).Set(tx)))
	text := orderDoc + "\nTotal\nFee EUR 5,00"

	tests := []struct {
		name      string
		e         *Extractor
		wantUnits int
		wantTo    int
	}{
		{"next start or end of document", orderExtractor("generic"), 1, 6},
		{"end line", withEnd, 0, 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := tt.e.Extract(NewEnv(NewSecurities()), NewDocument("doc", text))
			if len(res.Items) != 1 {
				t.Fatalf("Extract() got %d items %v, want 1", len(res.Items), res.Diagnostics)
			}
			it := res.Items[0]
			if got := len(it.Units()); got != tt.wantUnits {
				t.Errorf("Units() = %v, want %d units", it.Units(), tt.wantUnits)
			}
			if got := it.Source().To; got != tt.wantTo {
				t.Errorf("Source().To = %d, want %d", got, tt.wantTo)
			}
		})
	}
}

func TestDocumentType_Activation(t *testing.T) {
	byRegexp := NewDocumentTypeRegexp(`^Order [0-9]+$`)
	tests := []struct {
		t    *DocumentType
		text string
		want bool
	}{
		{NewDocumentType("Order"), "Your Order list", true},
		{NewDocumentType("Order"), "Your list", false},
		{byRegexp, "Header\nOrder 12", true},
		{byRegexp, "Order twelve", false},
	}
	for _, tt := range tests {
		if got := tt.t.activates(NewDocument("doc", tt.text)); got != tt.want {
			t.Errorf("%s.activates(%q) = %v, want %v", tt.t.Name(), tt.text, got, tt.want)
		}
	}
}

func TestSecurities_GetOrCreate(t *testing.T) {
	s := NewSecurities()
	var created atomic.Int32
	var wg sync.WaitGroup
	for range 32 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, ok, err := s.GetOrCreate("DE0001234567", "Acme", "EUR")
			if err != nil {
				t.Errorf("GetOrCreate() unexpected error: %v", err)
			}
			if ok {
				created.Add(1)
			}
		}()
	}
	wg.Wait()
	if got := created.Load(); got != 1 {
		t.Errorf("GetOrCreate() created %d securities, want 1", got)
	}
	if _, _, err := s.GetOrCreate("DE000123", "Short", "EUR"); err == nil {
		t.Error("GetOrCreate(invalid isin) succeeded, want error")
	}
	if got := s.Len(); got != 1 {
		t.Errorf("Len() = %d, want 1", got)
	}
}
