// Package fx is a table of daily exchange rates, the currency converter of
// the extraction of foreign currency transactions.
package fx

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/PaesslerAG/jsonpath"
	"github.com/etnz/pdfimport"
	"github.com/etnz/pdfimport/date"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// inverseDigits is the precision of a rate computed from its inverse pair.
const inverseDigits = 10

// pair is a "conversion from/to".
type pair struct{ from, to string }

// Table holds exchange rates, by currency pair and day.
//
// A rate converts one unit of 'from' into 'to'. The table is not safe for
// concurrent modification, reads are.
type Table struct {
	rates map[pair]*date.History[decimal.Decimal]
}

// Check Table implements the converter.
var _ pdfimport.Converter = (*Table)(nil)

// New returns an empty Table.
func New() *Table {
	return &Table{rates: make(map[pair]*date.History[decimal.Decimal])}
}

// Add records the rate from/to on day.
func (t *Table) Add(day date.Date, from, to string, rate decimal.Decimal) error {
	if err := pdfimport.ValidateCurrency(from); err != nil {
		return err
	}
	if err := pdfimport.ValidateCurrency(to); err != nil {
		return err
	}
	if from == to {
		return fmt.Errorf("cannot add a rate from %s to itself", from)
	}
	if !rate.IsPositive() {
		return fmt.Errorf("invalid rate %s from %s to %s on %s: must be positive", rate, from, to, day)
	}
	if day.IsZero() {
		return fmt.Errorf("invalid rate %s from %s to %s: missing date", rate, from, to)
	}
	p := pair{from, to}
	h, ok := t.rates[p]
	if !ok {
		h = new(date.History[decimal.Decimal])
		t.rates[p] = h
	}
	h.Append(day, rate)
	return nil
}

// Len returns the number of rates.
func (t *Table) Len() int {
	n := 0
	for _, h := range t.rates {
		n += h.Len()
	}
	return n
}

// Pairs returns the currency pairs with at least one rate, as "FROM/TO", sorted.
func (t *Table) Pairs() []string {
	pairs := make([]string, 0, len(t.rates))
	for p := range t.rates {
		pairs = append(pairs, p.from+"/"+p.to)
	}
	slices.Sort(pairs)
	return pairs
}

// Rate returns the rate from/to as of day: the latest known on or before day.
// It falls back to the inverse of the rate to/from.
func (t *Table) Rate(day date.Date, from, to string) (decimal.Decimal, error) {
	if from == to {
		return decimal.NewFromInt(1), nil
	}
	if h, ok := t.rates[pair{from, to}]; ok {
		if r, ok := h.ValueAsOf(day); ok {
			return r, nil
		}
	}
	if h, ok := t.rates[pair{to, from}]; ok {
		if r, ok := h.ValueAsOf(day); ok {
			return decimal.NewFromInt(1).DivRound(r, inverseDigits), nil
		}
	}
	return decimal.Decimal{}, fmt.Errorf("no rate from %s to %s on %s", from, to, day)
}

// Convert returns m in currency 'to', using the rate as of day.
func (t *Table) Convert(day date.Date, m pdfimport.Money, to string) (pdfimport.Money, error) {
	rate, err := t.Rate(day, m.Currency(), to)
	if err != nil {
		return pdfimport.Money{}, err
	}
	return m.Exchange(to, rate), nil
}

// Quote is one rate of the table, as read from files.
type Quote struct {
	Date date.Date
	From string
	To   string
	Rate decimal.Decimal
}

// AddQuotes records all quotes.
func (t *Table) AddQuotes(quotes ...Quote) error {
	for _, q := range quotes {
		if err := t.Add(q.Date, q.From, q.To, q.Rate); err != nil {
			return err
		}
	}
	return nil
}

// UnmarshalYAML reads a mapping with the keys date, from, to and rate.
func (q *Quote) UnmarshalYAML(n *yaml.Node) error {
	if n.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: quote must be a mapping", n.Line)
	}
	fields := make(map[string]string)
	for i := 0; i+1 < len(n.Content); i += 2 {
		fields[n.Content[i].Value] = n.Content[i+1].Value
	}
	parsed, err := quoteOf(fields)
	if err != nil {
		return fmt.Errorf("line %d: %w", n.Line, err)
	}
	*q = parsed
	return nil
}

// quoteOf parses the fields of a quote.
func quoteOf(fields map[string]string) (Quote, error) {
	day, err := date.Parse(fields["date"])
	if err != nil {
		return Quote{}, err
	}
	rate, err := decimal.NewFromString(fields["rate"])
	if err != nil {
		return Quote{}, fmt.Errorf("invalid rate %q: %w", fields["rate"], err)
	}
	return Quote{
		Date: day,
		From: strings.ToUpper(fields["from"]),
		To:   strings.ToUpper(fields["to"]),
		Rate: rate,
	}, nil
}

// LoadYAML reads a YAML sequence of quotes into a new Table.
func LoadYAML(r io.Reader) (*Table, error) {
	var quotes []Quote
	if err := yaml.NewDecoder(r).Decode(&quotes); err != nil && err != io.EOF {
		return nil, fmt.Errorf("cannot decode rates: %w", err)
	}
	t := New()
	if err := t.AddQuotes(quotes...); err != nil {
		return nil, err
	}
	return t, nil
}

// LoadJSON reads the quotes selected by the jsonpath expression path in a
// JSON document. Each selected value is an object with the keys date, from,
// to and rate, the rate being a number or a string.
//
// For instance "$.rates[*]" selects all elements of the "rates" array.
func LoadJSON(r io.Reader, path string) (*Table, error) {
	var jobj any
	if err := json.NewDecoder(r).Decode(&jobj); err != nil {
		return nil, fmt.Errorf("cannot decode rates: %w", err)
	}
	jval, err := jsonpath.Get(path, jobj)
	if err != nil {
		return nil, fmt.Errorf("error selecting %q: %w", path, err)
	}
	// a path can select a single object, or a list of them
	jlist, ok := jval.([]any)
	if !ok {
		jlist = []any{jval}
	}

	t := New()
	for i, jv := range jlist {
		jq, ok := jv.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%s[%d]: not an object: %v", path, i, jv)
		}
		fields := make(map[string]string)
		for k, v := range jq {
			switch v := v.(type) {
			case string:
				fields[k] = v
			case float64:
				fields[k] = decimal.NewFromFloat(v).String()
			default:
				return nil, fmt.Errorf("%s[%d]: invalid %q: %v", path, i, k, v)
			}
		}
		q, err := quoteOf(fields)
		if err != nil {
			return nil, fmt.Errorf("%s[%d]: %w", path, i, err)
		}
		if err := t.AddQuotes(q); err != nil {
			return nil, fmt.Errorf("%s[%d]: %w", path, i, err)
		}
	}
	return t, nil
}
