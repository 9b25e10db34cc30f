package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/example/pinchview/internal/theme"
)

type themesCmd struct {
	*root
	fs  *flag.FlagSet
	out io.Writer
}

func (c *themesCmd) Program() string { return c.root.program + " themes" }

func (c *themesCmd) FlagSet() *flag.FlagSet { return c.fs }

func parseThemesCmd(args []string, r *root) (*themesCmd, error) {
	fs := flag.NewFlagSet("themes", flag.ExitOnError)
	c := &themesCmd{root: r, fs: fs, out: os.Stdout}
	fs.Usage = usageFunc(c)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() != 0 {
		return nil, &UsageError{of: c}
	}
	return c, nil
}

func (c *themesCmd) Run() error {
	active := ""
	if c.activeTheme != nil {
		active = c.activeTheme.Name
	}
	marker := func(name string) string {
		if name == active {
			return "*"
		}
		return " "
	}
	fmt.Fprintln(c.out, "built-in themes (* marks the active theme):")
	for _, name := range theme.EmbeddedNames() {
		label := name
		if t, err := theme.NewLoader().Load(name); err == nil {
			label = t.Name
		}
		fmt.Fprintf(c.out, "%s %s\n", marker(label), name)
	}
	if c.config == nil || len(c.config.Themes) == 0 {
		return nil
	}
	names := make([]string, 0, len(c.config.Themes))
	for name := range c.config.Themes {
		names = append(names, name)
	}
	sort.Strings(names)
	fmt.Fprintln(c.out, "from configuration:")
	for _, name := range names {
		fmt.Fprintf(c.out, "%s %s\n", marker(c.config.Themes[name].Name), name)
	}
	return nil
}
