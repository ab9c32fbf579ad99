// Package main provides the xmlcore CLI, a thin client of the parser/
// validator/catalog core (spec.md §6 names this "parse | validate |
// catalog resolve" as an external interface, not a component of its
// own).
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	xmlcore "github.com/arborxml/xmlcore/xml"
)

func main() {
	logCfg := &xmlcore.LogConfig{}

	rootCmd := &cobra.Command{
		Use:           "xmlcore",
		Short:         "Parse, validate, and resolve catalogs for XML documents",
		SilenceErrors: true,
		SilenceUsage:  true,
	}
	logCfg.RegisterFlags(rootCmd.PersistentFlags())

	rootCmd.AddCommand(
		newParseCmd(logCfg),
		newValidateCmd(logCfg),
		newCatalogCmd(logCfg),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

// getInputReader opens path for reading, or stdin when path is "-".
func getInputReader(path string) (*os.File, error) {
	if path == "-" || path == "" {
		return os.Stdin, nil
	}
	return os.Open(path)
}

func die(err error) {
	fmt.Fprintf(os.Stderr, "xmlcore: %v\n", err)
	os.Exit(1)
}

func slogFromHandler(h slog.Handler) *slog.Logger {
	return slog.New(h)
}
