package main

import (
	"flag"
	"fmt"
	"path/filepath"

	"github.com/example/pinchview/internal/appstate"
	"github.com/example/pinchview/internal/pageimage"
)

type viewCmd struct {
	*root
	fs          *flag.FlagSet
	catalogPath string
	assetsDir   string
	output      string
	page        int
}

func (c *viewCmd) Program() string { return c.root.program + " view" }

func (c *viewCmd) FlagSet() *flag.FlagSet { return c.fs }

func parseViewCmd(args []string, r *root) (*viewCmd, error) {
	fs := flag.NewFlagSet("view", flag.ExitOnError)
	c := &viewCmd{root: r, fs: fs}
	fs.Usage = usageFunc(c)
	fs.StringVar(&c.catalogPath, "catalog", "", "page manifest (.yaml or .toml); defaults to the built-in catalog")
	fs.StringVar(&c.assetsDir, "assets", r.config.AssetsDir, "directory holding the page images")
	fs.StringVar(&c.output, "output", defaultOutput(r), "where the s key saves snapshots")
	fs.IntVar(&c.page, "page", 0, "page id to open on")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() != 0 {
		return nil, &UsageError{of: c}
	}
	return c, nil
}

func (c *viewCmd) Run() error {
	app, err := c.root.newApp(c.catalogPath, c.assetsDir, c.output)
	if err != nil {
		return err
	}
	if c.page != 0 {
		if err := app.Session().OnSelectPage(c.page); err != nil {
			return fmt.Errorf("view: %w", err)
		}
	}
	c.logger().Debug("opening viewer", "pages", app.Catalog.Len(), "assets", c.assetsDir)
	app.Run()
	return nil
}

// newApp builds the window state shared by the view and snapshot commands.
func (r *root) newApp(catalogPath, assetsDir, output string) (*appstate.AppState, error) {
	cat, err := r.loadCatalog(catalogPath)
	if err != nil {
		return nil, err
	}
	return appstate.New(
		appstate.WithCatalog(cat),
		appstate.WithLimits(r.config.Viewer),
		appstate.WithSource(pageimage.NewSource(assetsDir)),
		appstate.WithTheme(r.activeTheme),
		appstate.WithOutput(output),
		appstate.WithLogger(r.logger()),
		appstate.WithOnSave(r.notifySave),
		appstate.WithOnCopy(r.notifyCopy),
	), nil
}

func defaultOutput(r *root) string {
	if r != nil && r.config != nil && r.config.SaveDir != "" {
		return filepath.Join(r.config.SaveDir, appstate.DefaultOutput)
	}
	return appstate.DefaultOutput
}
