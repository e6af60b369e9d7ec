package renderer

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/etnz/pdfimport"
	md "github.com/nao1215/markdown"
)

// ExtractorsMarkdown renders the extractors and the document types they read.
func ExtractorsMarkdown(extractors []*pdfimport.Extractor) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Banks")
	for _, e := range extractors {
		var ids []string
		for _, id := range e.BankIdentifiers() {
			if id == "" {
				id = "any document"
			}
			ids = append(ids, id)
		}
		doc.H2(fmt.Sprintf("%s (%s)", e.Label(), strings.Join(ids, ", ")))

		table := md.TableSet{
			Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight},
			Header:    []string{"Document Type", "Blocks"},
		}
		for _, t := range e.DocumentTypes() {
			table.Rows = append(table.Rows, []string{t.Name(), fmt.Sprint(len(t.Blocks()))})
		}
		doc.Table(table)
	}
	return doc.String()
}

// SecuritiesMarkdown renders the securities of a registry.
func SecuritiesMarkdown(securities []*pdfimport.Security) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Securities")
	if len(securities) == 0 {
		doc.PlainText("No securities.")
		return doc.String()
	}
	table := md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignLeft, md.AlignLeft, md.AlignLeft},
		Header:    []string{"ISIN", "Name", "Currency", "Check Digit"},
	}
	for _, s := range securities {
		check := "ok"
		if err := pdfimport.ValidateISIN(s.ISIN()); err != nil {
			check = "invalid"
		}
		table.Rows = append(table.Rows, []string{s.ISIN(), s.Name(), s.Currency(), check})
	}
	doc.Table(table)
	return doc.String()
}
