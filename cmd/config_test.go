package cmd

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/etnz/pdfimport"
	"github.com/etnz/pdfimport/date"
	"github.com/etnz/pdfimport/fx"
	"github.com/rs/zerolog"
)

const buyDoc = `Wir haben für Sie gekauft
Gattungsbezeichnung ISIN
Acme Corp Inhaber-Aktien o.N. DE0001234567
Nominal Kurs
STK 25,000 EUR 2,382
Wert Konto-Nr. Betrag zu Ihren Lasten
14.01.2015 172305047 EUR 59,55
`

// writeFile writes content in a new file of the test temp folder.
func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	filename := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(filename, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write %s: %v", name, err)
	}
	return filename
}

// setFlag overrides a global flag for the duration of the test.
func setFlag[T any](t *testing.T, flag *T, value T) {
	t.Helper()
	old := *flag
	*flag = value
	t.Cleanup(func() { *flag = old })
}

func TestDecodeConfig(t *testing.T) {
	c, err := DecodeConfig(strings.NewReader(`
base_currency: USD
workers: 2
securities:
  - isin: DE0001234567
    name: Acme Corp
    currency: EUR
rates:
  - {date: 2015-01-14, from: eur, to: usd, rate: 1.10}
`))
	if err != nil {
		t.Fatalf("DecodeConfig() unexpected error: %v", err)
	}
	if c.BaseCurrency != "USD" || c.Workers != 2 {
		t.Errorf("DecodeConfig() = %q, %d, want USD, 2", c.BaseCurrency, c.Workers)
	}
	if len(c.Securities) != 1 || c.Securities[0].ISIN != "DE0001234567" {
		t.Errorf("DecodeConfig().Securities = %v, want [DE0001234567]", c.Securities)
	}
	if len(c.Rates) != 1 || c.Rates[0].From != "EUR" || c.Rates[0].Rate.String() != "1.1" {
		t.Errorf("DecodeConfig().Rates = %v, want one EUR/USD 1.1 rate", c.Rates)
	}
}

func TestDecodeConfig_Empty(t *testing.T) {
	c, err := DecodeConfig(strings.NewReader(""))
	if err != nil {
		t.Fatalf("DecodeConfig() unexpected error: %v", err)
	}
	if c.BaseCurrency != "" || len(c.Securities) != 0 {
		t.Errorf("DecodeConfig() = %+v, want an empty configuration", c)
	}
}

func TestDecodeConfig_Invalid(t *testing.T) {
	if _, err := DecodeConfig(strings.NewReader("rates:\n  - {date: yesterday}\n")); err == nil {
		t.Error("DecodeConfig() with an invalid date returned no error")
	}
}

func TestLoadConfig(t *testing.T) {
	setFlag(t, configFile, "")

	t.Run("none", func(t *testing.T) {
		t.Setenv(EnvConfig, "")
		c, err := LoadConfig()
		if err != nil || c == nil {
			t.Fatalf("LoadConfig() = %v, %v, want an empty configuration", c, err)
		}
	})
	t.Run("env", func(t *testing.T) {
		t.Setenv(EnvConfig, writeFile(t, "pdfi.yaml", "base_currency: CHF\n"))
		c, err := LoadConfig()
		if err != nil {
			t.Fatalf("LoadConfig() unexpected error: %v", err)
		}
		if c.BaseCurrency != "CHF" {
			t.Errorf("LoadConfig().BaseCurrency = %q, want CHF", c.BaseCurrency)
		}
	})
	t.Run("flag", func(t *testing.T) {
		t.Setenv(EnvConfig, writeFile(t, "env.yaml", "base_currency: CHF\n"))
		setFlag(t, configFile, writeFile(t, "flag.yaml", "base_currency: GBP\n"))
		c, err := LoadConfig()
		if err != nil {
			t.Fatalf("LoadConfig() unexpected error: %v", err)
		}
		if c.BaseCurrency != "GBP" {
			t.Errorf("LoadConfig().BaseCurrency = %q, want GBP", c.BaseCurrency)
		}
	})
	t.Run("missing", func(t *testing.T) {
		setFlag(t, configFile, filepath.Join(t.TempDir(), "missing.yaml"))
		if _, err := LoadConfig(); err == nil {
			t.Error("LoadConfig() of a missing file returned no error")
		}
	})
}

func TestConfig_Registry(t *testing.T) {
	c := &Config{Securities: []SecurityDecl{{ISIN: "DE0001234567", Name: "Acme Corp", Currency: "EUR"}}}
	db, err := c.Registry()
	if err != nil {
		t.Fatalf("Registry() unexpected error: %v", err)
	}
	if sec := db.Get("DE0001234567"); sec == nil || sec.Name() != "Acme Corp" {
		t.Errorf("Registry().Get() = %v, want Acme Corp", sec)
	}

	c.Securities = append(c.Securities, c.Securities[0])
	if _, err := c.Registry(); err == nil {
		t.Error("Registry() with a duplicated security returned no error")
	}
}

func TestConfig_RateTable(t *testing.T) {
	rates := writeFile(t, "rates.json", `{"rates": [
		{"date": "2015-01-14", "from": "EUR", "to": "USD", "rate": 1.10}
	]}`)
	c := &Config{
		RatesJSON: &RatesFile{File: filepath.Base(rates), Path: "$.rates[*]"},
		dir:       filepath.Dir(rates),
	}
	c.Rates = append(c.Rates, mustQuotes(t, "rates:\n  - {date: 2015-01-14, from: EUR, to: CHF, rate: 1.02}\n")...)

	table, err := c.RateTable()
	if err != nil {
		t.Fatalf("RateTable() unexpected error: %v", err)
	}
	if got := table.Len(); got != 2 {
		t.Errorf("RateTable().Len() = %d, want 2", got)
	}
	day := date.New(2015, 1, 14)
	rate, err := table.Rate(day, "USD", "EUR")
	if err != nil || rate.StringFixed(4) != "0.9091" {
		t.Errorf("RateTable().Rate(USD, EUR) = %v, %v, want 0.9091", rate, err)
	}
}

func mustQuotes(t *testing.T, doc string) []fx.Quote {
	t.Helper()
	c, err := DecodeConfig(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("DecodeConfig() unexpected error: %v", err)
	}
	return c.Rates
}

func TestConfig_Importer(t *testing.T) {
	setFlag(t, baseCurrency, "")
	c := &Config{
		Workers:    1,
		Securities: []SecurityDecl{{ISIN: "DE0001234567", Name: "Declared Name", Currency: "EUR"}},
	}
	imp, err := c.Importer(zerolog.Nop())
	if err != nil {
		t.Fatalf("Importer() unexpected error: %v", err)
	}
	res := imp.Extract(pdfimport.NewDocument("buy.txt", buyDoc))
	if len(res.Items) != 1 {
		t.Fatalf("Extract() = %d items, want 1: %v", len(res.Items), res.Diagnostics)
	}
	if got := res.Items[0].Security().Name(); got != "Declared Name" {
		t.Errorf("Extract().Security().Name() = %q, want the declared name", got)
	}
	if got := imp.Securities().Len(); got != 1 {
		t.Errorf("Securities().Len() = %d, want 1", got)
	}
}

func TestConfig_Importer_BaseCurrency(t *testing.T) {
	setFlag(t, baseCurrency, "E1R")
	if _, err := new(Config).Importer(zerolog.Nop()); err == nil {
		t.Error("Importer() with an invalid base currency returned no error")
	}
}

func TestExtract(t *testing.T) {
	setFlag(t, baseCurrency, "")
	imp, err := new(Config).Importer(zerolog.Nop())
	if err != nil {
		t.Fatalf("Importer() unexpected error: %v", err)
	}
	docs, err := readDocuments([]string{writeFile(t, "a.txt", buyDoc), writeFile(t, "b.txt", buyDoc)})
	if err != nil {
		t.Fatalf("readDocuments() unexpected error: %v", err)
	}

	for _, bank := range []string{"", "Onvista"} {
		t.Run("bank="+bank, func(t *testing.T) {
			results, err := extract(context.Background(), imp, bank, docs)
			if err != nil {
				t.Fatalf("extract() unexpected error: %v", err)
			}
			if len(results) != 2 {
				t.Fatalf("extract() = %d results, want 2", len(results))
			}
			for i, r := range results {
				if r.Document != docs[i].Name() || len(r.Items) != 1 {
					t.Errorf("extract()[%d] = %s with %d items, want %s with 1", i, r.Document, len(r.Items), docs[i].Name())
				}
			}
		})
	}

	if _, err := extract(context.Background(), imp, "Unknown", docs); err == nil {
		t.Error("extract() with an unknown bank returned no error")
	}
}

func TestReadDocuments_Missing(t *testing.T) {
	if _, err := readDocuments([]string{filepath.Join(t.TempDir(), "missing.txt")}); err == nil {
		t.Error("readDocuments() of a missing file returned no error")
	}
}

func TestLoadEnv(t *testing.T) {
	const name = "PDFI_TEST_LOAD_ENV"
	t.Setenv(name, "") // restores the variable after the test
	os.Unsetenv(name)

	dir := t.TempDir()
	t.Chdir(dir)
	if err := LoadEnv(); err != nil {
		t.Fatalf("LoadEnv() without .env unexpected error: %v", err)
	}

	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte(name+"=loaded\n"), 0644); err != nil {
		t.Fatalf("Failed to write .env: %v", err)
	}
	if err := LoadEnv(); err != nil {
		t.Fatalf("LoadEnv() unexpected error: %v", err)
	}
	if got := os.Getenv(name); got != "loaded" {
		t.Errorf("LoadEnv() set %s=%q, want loaded", name, got)
	}
}
