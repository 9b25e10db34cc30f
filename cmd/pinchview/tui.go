package main

import (
	"flag"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/example/pinchview/internal/tui"
	"github.com/example/pinchview/internal/viewer"
)

type tuiCmd struct {
	*root
	fs          *flag.FlagSet
	catalogPath string
}

func (c *tuiCmd) Program() string { return c.root.program + " tui" }

func (c *tuiCmd) FlagSet() *flag.FlagSet { return c.fs }

func parseTUICmd(args []string, r *root) (*tuiCmd, error) {
	fs := flag.NewFlagSet("tui", flag.ExitOnError)
	c := &tuiCmd{root: r, fs: fs}
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

func (c *tuiCmd) Run() error {
	cat, err := c.loadCatalog(c.catalogPath)
	if err != nil {
		return err
	}
	session := viewer.NewSession(cat, c.config.Viewer, viewer.WithLogger(c.logger()))
	if _, err := tea.NewProgram(tui.New(session, cat)).Run(); err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}
