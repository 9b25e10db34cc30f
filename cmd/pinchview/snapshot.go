package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/example/pinchview/internal/appstate"
	"github.com/example/pinchview/internal/render"
)

type snapshotCmd struct {
	*root
	fs          *flag.FlagSet
	catalogPath string
	assetsDir   string
	script      string
	output      string
	page        int
	width       int
	height      int
	toClipboard bool
}

func (c *snapshotCmd) Program() string { return c.root.program + " snapshot" }

func (c *snapshotCmd) FlagSet() *flag.FlagSet { return c.fs }

func parseSnapshotCmd(args []string, r *root) (*snapshotCmd, error) {
	fs := flag.NewFlagSet("snapshot", flag.ExitOnError)
	c := &snapshotCmd{root: r, fs: fs}
	fs.Usage = usageFunc(c)
	fs.StringVar(&c.catalogPath, "catalog", "", "page manifest (.yaml or .toml); defaults to the built-in catalog")
	fs.StringVar(&c.assetsDir, "assets", r.config.AssetsDir, "directory holding the page images")
	fs.StringVar(&c.script, "script", "", "file with events to apply first, - for stdin")
	fs.StringVar(&c.output, "output", defaultOutput(r), "write the PNG to this file")
	fs.IntVar(&c.page, "page", 0, "page id to render")
	fs.IntVar(&c.width, "width", appstate.DefaultWidth, "frame width in pixels")
	fs.IntVar(&c.height, "height", appstate.DefaultHeight, "frame height in pixels")
	fs.BoolVar(&c.toClipboard, "clipboard", false, "copy the frame to the clipboard instead of writing a file")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if c.width <= 0 || c.height <= render.BarHeight {
		return nil, fmt.Errorf("snapshot: frame must be at least 1x%d pixels", render.BarHeight+1)
	}
	if c.script != "" && fs.NArg() != 0 {
		return nil, fmt.Errorf("snapshot: events cannot be given both as arguments and with -script")
	}
	return c, nil
}

func (c *snapshotCmd) Run() error {
	app, err := c.newApp(c.catalogPath, c.assetsDir, c.output)
	if err != nil {
		return err
	}
	events, err := readEvents(c.script, c.fs.Args(), os.Stdin)
	if err != nil {
		return fmt.Errorf("snapshot: %w", err)
	}
	session := app.Session()
	if c.page != 0 {
		if err := session.OnSelectPage(c.page); err != nil {
			return fmt.Errorf("snapshot: %w", err)
		}
	}
	for _, ev := range events {
		if err := session.Apply(ev); err != nil {
			c.logger().Warn("event rejected", "event", ev, "err", err)
		}
	}
	img, err := app.Snapshot(c.width, c.height)
	if err != nil {
		return fmt.Errorf("snapshot: %w", err)
	}
	if c.toClipboard {
		if err := app.Copy(img); err != nil {
			return err
		}
		fmt.Fprintln(os.Stderr, "copied frame to clipboard")
		return nil
	}
	saved, err := app.Save(img)
	if err != nil {
		return err
	}
	if abs, err := filepath.Abs(saved); err == nil {
		saved = abs
	}
	c.logger().Info("saved snapshot", "path", saved, "state", session.State())
	return nil
}
