package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/arborxml/xmlcore/catalog"
	xmlcore "github.com/arborxml/xmlcore/xml"
)

func newCatalogCmd(logCfg *xmlcore.LogConfig) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Resolve identifiers against OASIS XML Catalogs",
	}
	cmd.AddCommand(newCatalogResolveCmd(logCfg))
	return cmd
}

func newCatalogResolveCmd(logCfg *xmlcore.LogConfig) *cobra.Command {
	var publicID, systemID, catalogPath string
	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "Resolve a PUBLIC/SYSTEM identifier pair against a catalog file",
		RunE: func(_ *cobra.Command, _ []string) error {
			return runCatalogResolve(catalogPath, publicID, systemID)
		},
	}
	cmd.Flags().StringVar(&catalogPath, "catalog", "", "catalog file (required)")
	cmd.Flags().StringVar(&publicID, "public", "", "PUBLIC identifier to resolve")
	cmd.Flags().StringVar(&systemID, "system", "", "SYSTEM identifier to resolve")
	cmd.MarkFlagRequired("catalog")
	return cmd
}

func runCatalogResolve(catalogPath, publicID, systemID string) error {
	f, err := os.Open(catalogPath)
	if err != nil {
		return fmt.Errorf("open %s: %w", catalogPath, err)
	}
	defer f.Close()

	cat, cerr := catalog.Parse(f)
	if cerr != nil {
		return fmt.Errorf("parse catalog %s: %w", catalogPath, cerr)
	}
	cat.Loader = loadSiblingCatalog(catalogPath)

	uri, ok := cat.Resolve(publicID, systemID, map[string]bool{})
	if !ok {
		die(xmlcore.NewResourceError("no catalog entry for public=%q system=%q", publicID, systemID))
	}
	fmt.Fprintln(os.Stdout, uri)
	return nil
}

// loadSiblingCatalog resolves a nextCatalog entry's SYSTEM id relative to
// the directory of the catalog that named it.
func loadSiblingCatalog(basePath string) func(systemID string) (*catalog.Catalog, error) {
	dir := filepath.Dir(basePath)
	return func(systemID string) (*catalog.Catalog, error) {
		path := systemID
		if !filepath.IsAbs(path) {
			path = filepath.Join(dir, path)
		}
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		return catalog.Parse(f)
	}
}
