package pdfimport

import (
	"context"
	"fmt"
	"runtime"
	"slices"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// Importer runs the configured extractors over documents, sharing one
// securities registry between them.
type Importer struct {
	extractors []*Extractor
	env        *Env
	workers    int
}

// Option configures an Importer.
type Option func(*Importer)

// WithExtractors adds extractors, in priority order.
func WithExtractors(extractors ...*Extractor) Option {
	return func(imp *Importer) { imp.extractors = append(imp.extractors, extractors...) }
}

// WithSecurities sets the registry securities are looked up in, and created into.
func WithSecurities(s *Securities) Option {
	return func(imp *Importer) { imp.env.Securities = s }
}

// WithConverter sets the currency converter used for foreign currency securities.
func WithConverter(c Converter) Option {
	return func(imp *Importer) { imp.env.Converter = c }
}

// WithBaseCurrency sets the currency of securities created without one.
func WithBaseCurrency(cur string) Option {
	return func(imp *Importer) { imp.env.BaseCurrency = cur }
}

// WithLogger sets the logger receiving one event per discarded block instance.
func WithLogger(log zerolog.Logger) Option {
	return func(imp *Importer) { imp.env.SetLogger(log) }
}

// WithWorkers sets the number of documents ExtractAll reads concurrently.
func WithWorkers(n int) Option {
	return func(imp *Importer) { imp.workers = n }
}

// NewImporter returns an Importer with an empty registry, EUR base currency,
// no converter and a silent logger, modified by opts.
func NewImporter(opts ...Option) *Importer {
	imp := &Importer{
		env:     NewEnv(NewSecurities()),
		workers: runtime.GOMAXPROCS(0),
	}
	for _, opt := range opts {
		opt(imp)
	}
	if imp.workers < 1 {
		imp.workers = 1
	}
	return imp
}

func (imp *Importer) Extractors() []*Extractor { return slices.Clone(imp.extractors) }
func (imp *Importer) Securities() *Securities  { return imp.env.Securities }

// Extractor returns the extractor labeled label, or nil.
func (imp *Importer) Extractor(label string) *Extractor {
	for _, e := range imp.extractors {
		if e.Label() == label {
			return e
		}
	}
	return nil
}

// candidates returns the extractors to run on doc: those whose non empty
// bank identifier occurs in doc if any, otherwise all that apply.
func (imp *Importer) candidates(doc Document) []*Extractor {
	var identified, generic []*Extractor
	for _, e := range imp.extractors {
		switch {
		case e.identifies(doc):
			identified = append(identified, e)
		case e.Applies(doc):
			generic = append(generic, e)
		}
	}
	if len(identified) > 0 {
		return identified
	}
	return generic
}

// Extract returns the items of doc, from every candidate extractor.
func (imp *Importer) Extract(doc Document) Result {
	res := Result{Document: doc.Name()}
	for _, e := range imp.candidates(doc) {
		r := e.Extract(imp.env, doc)
		res.Items = append(res.Items, r.Items...)
		res.Diagnostics = append(res.Diagnostics, r.Diagnostics...)
	}
	imp.env.log.Debug().Str("document", doc.Name()).
		Int("items", len(res.Items)).
		Int("diagnostics", len(res.Diagnostics)).
		Msg("document extracted")
	return res
}

// ExtractWith returns the items of doc using only the extractor labeled label.
func (imp *Importer) ExtractWith(label string, doc Document) (Result, error) {
	e := imp.Extractor(label)
	if e == nil {
		return Result{}, fmt.Errorf("unknown extractor %q", label)
	}
	return e.Extract(imp.env, doc), nil
}

// ExtractAll extracts docs concurrently. Results are in the order of docs.
//
// It stops on ctx cancellation and returns its error: results of the
// documents not read by then are zero.
func (imp *Importer) ExtractAll(ctx context.Context, docs []Document) ([]Result, error) {
	results := make([]Result, len(docs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(imp.workers)
	for i, doc := range docs {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = imp.Extract(doc)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, ctx.Err()
}
