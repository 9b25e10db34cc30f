package main

import (
	"flag"
	"fmt"
	"io"
	"os"
)

type catalogCmd struct {
	*root
	fs          *flag.FlagSet
	catalogPath string
	out         io.Writer
}

func (c *catalogCmd) Program() string { return c.root.program + " catalog" }

func (c *catalogCmd) FlagSet() *flag.FlagSet { return c.fs }

func parseCatalogCmd(args []string, r *root) (*catalogCmd, error) {
	fs := flag.NewFlagSet("catalog", flag.ExitOnError)
	c := &catalogCmd{root: r, fs: fs, out: os.Stdout}
	fs.Usage = usageFunc(c)
	fs.StringVar(&c.catalogPath, "catalog", "", "page manifest (.yaml or .toml); defaults to the built-in catalog")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() != 0 {
		return nil, &UsageError{of: c}
	}
	return c, nil
}

func (c *catalogCmd) Run() error {
	cat, err := c.loadCatalog(c.catalogPath)
	if err != nil {
		return err
	}
	if cat.Title != "" {
		fmt.Fprintf(c.out, "%s (%d pages)\n", cat.Title, cat.Len())
	}
	for _, p := range cat.Pages() {
		fmt.Fprintf(c.out, "%3d  %-20s %s\n", p.ID, p.ImageName, p.ThumbnailName())
	}
	return nil
}
