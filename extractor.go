package pdfimport

import (
	"fmt"
	"slices"
	"strings"

	"github.com/rs/zerolog"
)

// Result is the outcome of extracting one document.
type Result struct {
	Document    string
	Items       []Item
	Diagnostics []Diagnostic
}

// Extractor is the set of document types one institution issues.
type Extractor struct {
	label       string
	identifiers []string
	types       []*DocumentType
}

// NewExtractor returns an empty Extractor.
// label is the human readable name of the institution.
func NewExtractor(label string) *Extractor {
	return &Extractor{label: label}
}

// AddBankIdentifier adds a text marking the documents of this institution.
// The empty identifier makes the extractor apply to any document.
func (e *Extractor) AddBankIdentifier(id string) *Extractor {
	e.identifiers = append(e.identifiers, id)
	return e
}

// AddDocumentType adds a document type to the extractor.
func (e *Extractor) AddDocumentType(t *DocumentType) *Extractor {
	e.types = append(e.types, t)
	return e
}

func (e *Extractor) Label() string                  { return e.label }
func (e *Extractor) BankIdentifiers() []string      { return slices.Clone(e.identifiers) }
func (e *Extractor) DocumentTypes() []*DocumentType { return slices.Clone(e.types) }

// Applies reports whether the extractor can read doc: it has no bank
// identifier, an empty one, or one that occurs in doc.
func (e *Extractor) Applies(doc Document) bool {
	if len(e.identifiers) == 0 {
		return true
	}
	return slices.ContainsFunc(e.identifiers, func(id string) bool {
		return id == "" || doc.contains(id)
	})
}

// identifies reports whether a non empty bank identifier occurs in doc.
func (e *Extractor) identifies(doc Document) bool {
	return slices.ContainsFunc(e.identifiers, func(id string) bool {
		return id != "" && doc.contains(id)
	})
}

// Extract runs every activated document type over doc.
//
// Items come in document type order, then line order. Instances of one
// document type are disjoint; instances of different document types may
// overlap. Each failing block instance is reported as a Diagnostic and does
// not affect the others.
func (e *Extractor) Extract(env *Env, doc Document) Result {
	res := Result{Document: doc.Name()}
	for _, t := range e.types {
		if !t.activates(doc) {
			continue
		}
		anchors := t.anchors(doc)
		bounds := make([]int, 0, len(anchors))
		for _, a := range anchors {
			bounds = append(bounds, a.line)
		}
		// anchors are in line order, several blocks may start on one line
		bounds = slices.Compact(bounds)

		for _, a := range anchors {
			in := a.span(doc, bounds)
			src := Source{
				Document:     doc.Name(),
				Extractor:    e.label,
				DocumentType: t.Name(),
				Block:        in.block.Name(),
				From:         in.start + 1,
				To:           in.end,
			}
			if in.block.tx == nil {
				d := Diagnostic{Source: src, Err: fmt.Errorf("%w: block has no transaction", ErrUnsupportedTransactionVariant)}
				res.Diagnostics = append(res.Diagnostics, d)
				logDiagnostic(env.log, d)
				continue
			}
			item, section, err := in.block.tx.parse(env, doc.lines, in.start, in.end, src)
			if err != nil {
				d := Diagnostic{Source: src, Section: section, Err: err}
				res.Diagnostics = append(res.Diagnostics, d)
				logDiagnostic(env.log, d)
				continue
			}
			res.Items = append(res.Items, item)
		}
	}
	return res
}

// logDiagnostic logs d at the level of its severity.
func logDiagnostic(log zerolog.Logger, d Diagnostic) {
	var ev *zerolog.Event
	switch d.Severity() {
	case Warning:
		ev = log.Warn()
	case Discard:
		ev = log.Debug()
	default:
		ev = log.Error()
	}
	ev.Str("document", d.Source.Document).
		Str("extractor", d.Source.Extractor).
		Str("block", d.Source.Block).
		Int("from", d.Source.From).
		Int("to", d.Source.To).
		Str("section", d.Section).
		Err(d.Err).
		Msg("block instance discarded")
}

// String lists the label and bank identifiers.
func (e *Extractor) String() string {
	ids := make([]string, 0, len(e.identifiers))
	for _, id := range e.identifiers {
		ids = append(ids, fmt.Sprintf("%q", id))
	}
	return fmt.Sprintf("%s [%s]", e.label, strings.Join(ids, " "))
}
