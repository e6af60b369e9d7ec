package fx

import (
	"strings"
	"testing"

	"github.com/etnz/pdfimport"
	"github.com/etnz/pdfimport/date"
	"github.com/shopspring/decimal"
)

func TestTable_Rate(t *testing.T) {
	table := New()
	must := func(err error) {
		t.Helper()
		if err != nil {
			t.Fatal(err)
		}
	}
	must(table.Add(date.New(2015, 1, 2), "EUR", "USD", decimal.RequireFromString("1.20")))
	must(table.Add(date.New(2015, 1, 14), "EUR", "USD", decimal.RequireFromString("1.25")))

	tests := []struct {
		name     string
		day      date.Date
		from, to string
		want     string
		wantErr  bool
	}{
		{"same currency", date.New(2000, 1, 1), "EUR", "EUR", "1", false},
		{"exact day", date.New(2015, 1, 14), "EUR", "USD", "1.25", false},
		{"as of", date.New(2015, 1, 10), "EUR", "USD", "1.2", false},
		{"after last", date.New(2016, 1, 1), "EUR", "USD", "1.25", false},
		{"inverse", date.New(2015, 1, 14), "USD", "EUR", "0.8", false},
		{"before first", date.New(2014, 12, 31), "EUR", "USD", "", true},
		{"unknown pair", date.New(2015, 1, 14), "EUR", "CHF", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := table.Rate(tt.day, tt.from, tt.to)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Rate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if !got.Equal(decimal.RequireFromString(tt.want)) {
				t.Errorf("Rate() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTable_Add(t *testing.T) {
	table := New()
	day := date.New(2015, 1, 14)
	if err := table.Add(day, "EUR", "EUR", decimal.NewFromInt(1)); err == nil {
		t.Error("Add(EUR, EUR) succeeded, want error")
	}
	if err := table.Add(day, "EUR", "usd", decimal.NewFromInt(1)); err == nil {
		t.Error("Add(EUR, usd) succeeded, want error")
	}
	if err := table.Add(day, "EUR", "USD", decimal.Zero); err == nil {
		t.Error("Add(rate 0) succeeded, want error")
	}
	if err := table.Add(day, "EUR", "USD", decimal.NewFromInt(1)); err != nil {
		t.Errorf("Add() unexpected error: %v", err)
	}
	if got := table.Len(); got != 1 {
		t.Errorf("Len() = %d, want 1", got)
	}
}

func TestTable_Convert(t *testing.T) {
	table := New()
	day := date.New(2015, 1, 14)
	if err := table.Add(day, "EUR", "USD", decimal.RequireFromString("1.10")); err != nil {
		t.Fatal(err)
	}
	got, err := table.Convert(day, pdfimport.MoneyOf("EUR", 5955), "USD")
	if err != nil {
		t.Fatalf("Convert() unexpected error: %v", err)
	}
	if want := pdfimport.MoneyOf("USD", 6551); !got.Equal(want) {
		t.Errorf("Convert() = %v, want %v", got, want)
	}
}

func TestLoadYAML(t *testing.T) {
	input := `
- date: 2015-01-14
  from: EUR
  to: USD
  rate: 1.10
- {date: 2015-01-15, from: eur, to: chf, rate: "1.02"}
`
	table, err := LoadYAML(strings.NewReader(input))
	if err != nil {
		t.Fatalf("LoadYAML() unexpected error: %v", err)
	}
	if got, want := strings.Join(table.Pairs(), " "), "EUR/CHF EUR/USD"; got != want {
		t.Errorf("Pairs() = %q, want %q", got, want)
	}
	r, err := table.Rate(date.New(2015, 1, 14), "EUR", "USD")
	if err != nil {
		t.Fatal(err)
	}
	if !r.Equal(decimal.RequireFromString("1.1")) {
		t.Errorf("Rate() = %v, want 1.1", r)
	}

	if _, err := LoadYAML(strings.NewReader("- date: 14.01.2015\n  from: EUR\n  to: USD\n  rate: 1\n")); err == nil {
		t.Error("LoadYAML(bad date) succeeded, want error")
	}
	if table, err := LoadYAML(strings.NewReader("")); err != nil || table.Len() != 0 {
		t.Errorf("LoadYAML(empty) = %v, %v, want empty table", table, err)
	}
}

func TestLoadJSON(t *testing.T) {
	input := `{
  "source": "test",
  "rates": [
    {"date": "2015-01-14", "from": "EUR", "to": "USD", "rate": 1.1},
    {"date": "2015-01-15", "from": "EUR", "to": "USD", "rate": "1.12"}
  ]
}`
	tests := []struct {
		path    string
		wantLen int
	}{
		{"$.rates[*]", 2},
		{"$.rates[0]", 1},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			table, err := LoadJSON(strings.NewReader(input), tt.path)
			if err != nil {
				t.Fatalf("LoadJSON() unexpected error: %v", err)
			}
			if got := table.Len(); got != tt.wantLen {
				t.Errorf("LoadJSON().Len() = %d, want %d", got, tt.wantLen)
			}
		})
	}

	if _, err := LoadJSON(strings.NewReader(input), "$.source"); err == nil {
		t.Error("LoadJSON($.source) succeeded, want error")
	}
}
