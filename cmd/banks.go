package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/pdfimport/renderer"
	"github.com/google/subcommands"
)

type banksCmd struct{}

func (*banksCmd) Name() string     { return "banks" }
func (*banksCmd) Synopsis() string { return "list the supported banks and their document types" }
func (*banksCmd) Usage() string {
	return `pdfi banks

List the bank extractors, the text identifying their documents, and the
document types each one recognizes.
`
}

func (c *banksCmd) SetFlags(f *flag.FlagSet) {}

func (c *banksCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	imp, err := newImporter()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.ExtractorsMarkdown(imp.Extractors()))
	return subcommands.ExitSuccess
}
