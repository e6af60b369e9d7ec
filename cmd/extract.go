package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/etnz/pdfimport"
	"github.com/etnz/pdfimport/renderer"
	"github.com/google/subcommands"
)

type extractCmd struct {
	bank    string
	summary bool
}

func (*extractCmd) Name() string { return "extract" }
func (*extractCmd) Synopsis() string {
	return "extract transactions from the text of bank documents"
}
func (*extractCmd) Usage() string {
	return `pdfi extract [-bank <label>] [-s] <file>...

Extract the transactions of each text file, as converted from the bank PDF.
Without files, the document is read from the standard input.

Every discarded block is reported with its lines and the reason.
`
}

func (c *extractCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.bank, "bank", "", "Label of the bank extractor to use. Defaults to any extractor that applies.")
	f.BoolVar(&c.summary, "s", false, "Print one line per transaction only.")
}

func (c *extractCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	imp, err := newImporter()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		return subcommands.ExitFailure
	}

	docs, err := readDocuments(f.Args())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading documents: %v\n", err)
		return subcommands.ExitFailure
	}

	results, err := extract(ctx, imp, c.bank, docs)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error extracting documents: %v\n", err)
		return subcommands.ExitUsageError
	}

	if c.summary {
		for _, r := range results {
			fmt.Print(renderer.Summary(r.Items))
		}
		return subcommands.ExitSuccess
	}
	var b strings.Builder
	for _, r := range results {
		b.WriteString(renderer.ResultMarkdown(r))
		b.WriteString("\n")
	}
	printMarkdown(b.String())
	return subcommands.ExitSuccess
}

// extract runs the importer on docs, restricted to the bank extractor if not empty.
func extract(ctx context.Context, imp *pdfimport.Importer, bank string, docs []pdfimport.Document) ([]pdfimport.Result, error) {
	if bank == "" {
		return imp.ExtractAll(ctx, docs)
	}
	results := make([]pdfimport.Result, 0, len(docs))
	for _, doc := range docs {
		r, err := imp.ExtractWith(bank, doc)
		if err != nil {
			return nil, err
		}
		results = append(results, r)
	}
	return results, nil
}

// readDocuments reads each file as a document, or the standard input if there are none.
func readDocuments(files []string) ([]pdfimport.Document, error) {
	if len(files) == 0 {
		doc, err := pdfimport.ReadDocument("stdin", os.Stdin)
		if err != nil {
			return nil, err
		}
		return []pdfimport.Document{doc}, nil
	}
	docs := make([]pdfimport.Document, 0, len(files))
	for _, name := range files {
		doc, err := readDocument(name)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

func readDocument(name string) (pdfimport.Document, error) {
	f, err := os.Open(name)
	if err != nil {
		return pdfimport.Document{}, err
	}
	defer f.Close()
	doc, err := pdfimport.ReadDocument(name, f)
	if err != nil {
		return pdfimport.Document{}, fmt.Errorf("%s: %w", name, err)
	}
	return doc, nil
}
