package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/etnz/pdfimport"
	"github.com/etnz/pdfimport/fx"
	"github.com/etnz/pdfimport/onvista"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

// Config is the content of the configuration file.
//
//	base_currency: EUR
//	workers: 4
//	securities:
//	  - isin: DE0007164600
//	    name: SAP SE
//	    currency: EUR
//	rates:
//	  - {date: 2023-03-01, from: EUR, to: USD, rate: 1.10}
//	rates_json:
//	  file: ecb.json
//	  path: $.rates[*]
type Config struct {
	BaseCurrency string         `yaml:"base_currency"`
	Workers      int            `yaml:"workers"`
	Securities   []SecurityDecl `yaml:"securities"`
	Rates        []fx.Quote     `yaml:"rates"`
	RatesJSON    *RatesFile     `yaml:"rates_json"`

	dir string // folder of the configuration file
}

// SecurityDecl declares a known security.
type SecurityDecl struct {
	ISIN     string `yaml:"isin"`
	Name     string `yaml:"name"`
	Currency string `yaml:"currency"`
}

// RatesFile points to a JSON document of exchange rates.
type RatesFile struct {
	File string `yaml:"file"`
	Path string `yaml:"path"`
}

// DecodeConfig reads a configuration. An empty document is a valid configuration.
func DecodeConfig(r io.Reader) (*Config, error) {
	c := new(Config)
	if err := yaml.NewDecoder(r).Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("cannot decode configuration: %w", err)
	}
	return c, nil
}

// LoadConfig reads the configuration file from the -config flag, or from
// $PDFI_CONFIG. Without any, it returns an empty configuration.
func LoadConfig() (*Config, error) {
	filename := configPath()
	if filename == "" {
		return new(Config), nil
	}
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("cannot open configuration: %w", err)
	}
	defer f.Close()
	c, err := DecodeConfig(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	c.dir = filepath.Dir(filename)
	return c, nil
}

// Registry returns the security registry seeded with the declared securities.
func (c *Config) Registry() (*pdfimport.Securities, error) {
	db := pdfimport.NewSecurities()
	for _, decl := range c.Securities {
		sec, err := pdfimport.NewSecurity(decl.ISIN, decl.Name, decl.Currency)
		if err != nil {
			return nil, err
		}
		if err := db.Add(sec); err != nil {
			return nil, err
		}
	}
	return db, nil
}

// RateTable returns the exchange rates of the configuration.
func (c *Config) RateTable() (*fx.Table, error) {
	table := fx.New()
	if c.RatesJSON != nil {
		filename := c.RatesJSON.File
		if !filepath.IsAbs(filename) {
			filename = filepath.Join(c.dir, filename)
		}
		f, err := os.Open(filename)
		if err != nil {
			return nil, fmt.Errorf("cannot open rates: %w", err)
		}
		defer f.Close()
		path := c.RatesJSON.Path
		if path == "" {
			path = "$[*]"
		}
		if table, err = fx.LoadJSON(f, path); err != nil {
			return nil, fmt.Errorf("%s: %w", filename, err)
		}
	}
	if err := table.AddQuotes(c.Rates...); err != nil {
		return nil, err
	}
	return table, nil
}

// Importer returns an importer of every known bank, configured by c.
func (c *Config) Importer(log zerolog.Logger) (*pdfimport.Importer, error) {
	db, err := c.Registry()
	if err != nil {
		return nil, err
	}
	rates, err := c.RateTable()
	if err != nil {
		return nil, err
	}
	opts := []pdfimport.Option{
		pdfimport.WithExtractors(onvista.New()),
		pdfimport.WithSecurities(db),
		pdfimport.WithLogger(log),
	}
	if rates.Len() > 0 {
		opts = append(opts, pdfimport.WithConverter(rates))
	}
	cur := c.BaseCurrency
	if *baseCurrency != "" {
		cur = *baseCurrency
	}
	if cur != "" {
		if err := pdfimport.ValidateCurrency(cur); err != nil {
			return nil, err
		}
		opts = append(opts, pdfimport.WithBaseCurrency(cur))
	}
	if c.Workers > 0 {
		opts = append(opts, pdfimport.WithWorkers(c.Workers))
	}
	return pdfimport.NewImporter(opts...), nil
}

// newImporter loads the configuration and returns its importer.
func newImporter() (*pdfimport.Importer, error) {
	c, err := LoadConfig()
	if err != nil {
		return nil, err
	}
	return c.Importer(logger())
}
