package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/pdfimport/renderer"
	"github.com/google/subcommands"
)

type securitiesCmd struct {
	bank string
}

func (*securitiesCmd) Name() string { return "securities" }
func (*securitiesCmd) Synopsis() string {
	return "list the securities declared or found in bank documents"
}
func (*securitiesCmd) Usage() string {
	return `pdfi securities [-bank <label>] <file>...

List the securities of the configuration, and those created while
extracting the files.
`
}

func (c *securitiesCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.bank, "bank", "", "Label of the bank extractor to use. Defaults to any extractor that applies.")
}

func (c *securitiesCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	imp, err := newImporter()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		return subcommands.ExitFailure
	}
	if f.NArg() > 0 {
		docs, err := readDocuments(f.Args())
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading documents: %v\n", err)
			return subcommands.ExitFailure
		}
		if _, err := extract(ctx, imp, c.bank, docs); err != nil {
			fmt.Fprintf(os.Stderr, "Error extracting documents: %v\n", err)
			return subcommands.ExitUsageError
		}
	}
	printMarkdown(renderer.SecuritiesMarkdown(imp.Securities().All()))
	return subcommands.ExitSuccess
}
