// Package cmd implements the CLI application to extract transactions from bank documents.
package cmd

import (
	"errors"
	"flag"
	"io/fs"
	"os"

	"github.com/google/subcommands"
	"github.com/joho/godotenv"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&extractCmd{}, "documents")
	c.Register(&securitiesCmd{}, "documents")

	c.Register(&banksCmd{}, "registry")

	c.Register(&topicCmd{}, "help")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var configFile = flag.String("config", "", "Path to the YAML configuration file. Defaults to $"+EnvConfig+".")
var baseCurrency = flag.String("base-currency", "", "Currency of securities created without one. Overrides the configuration.")

// Verbose routes extraction diagnostics to stderr.
var Verbose = flag.Bool("v", false, "Log extraction diagnostics on stderr.")

// LoadEnv reads the .env file of the working directory, if any.
// Variables already set in the environment are kept.
func LoadEnv() error {
	err := godotenv.Load()
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

// configPath returns the configuration file selected by the flag or the environment.
func configPath() string {
	if *configFile != "" {
		return *configFile
	}
	return os.Getenv(EnvConfig)
}
