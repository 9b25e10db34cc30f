package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/example/pinchview/internal/clipboard"
	"github.com/example/pinchview/internal/viewer"
)

type replayCmd struct {
	*root
	fs          *flag.FlagSet
	catalogPath string
	script      string
	copyFinal   bool
	out         io.Writer
	in          io.Reader
}

func (c *replayCmd) Program() string { return c.root.program + " replay" }

func (c *replayCmd) FlagSet() *flag.FlagSet { return c.fs }

func parseReplayCmd(args []string, r *root) (*replayCmd, error) {
	fs := flag.NewFlagSet("replay", flag.ExitOnError)
	c := &replayCmd{root: r, fs: fs, out: os.Stdout, in: os.Stdin}
	fs.Usage = usageFunc(c)
	fs.StringVar(&c.catalogPath, "catalog", "", "page manifest (.yaml or .toml); defaults to the built-in catalog")
	fs.StringVar(&c.script, "script", "", "file with one event per line, - for stdin")
	fs.BoolVar(&c.copyFinal, "copy", false, "copy the final state line to the clipboard")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if c.script == "" && fs.NArg() == 0 {
		return nil, &UsageError{of: c}
	}
	if c.script != "" && fs.NArg() != 0 {
		return nil, fmt.Errorf("replay: events cannot be given both as arguments and with -script")
	}
	return c, nil
}

func (c *replayCmd) Run() error {
	cat, err := c.loadCatalog(c.catalogPath)
	if err != nil {
		return err
	}
	events, err := readEvents(c.script, c.fs.Args(), c.in)
	if err != nil {
		return fmt.Errorf("replay: %w", err)
	}
	session := viewer.NewSession(cat, c.config.Viewer, viewer.WithLogger(c.logger()))
	fmt.Fprintf(c.out, "    %-12s %s\n", "start", session.State())
	rejected := 0
	for _, ev := range events {
		if err := session.Apply(ev); err != nil {
			rejected++
			fmt.Fprintf(c.out, "!!  %-12s %v\n", ev, err)
			continue
		}
		fmt.Fprintf(c.out, "--> %-12s %s\n", ev, session.State())
	}
	c.logger().Debug("replay finished", "events", len(events), "rejected", rejected)
	if c.copyFinal {
		if err := clipboard.WriteText(session.State().String()); err != nil {
			return fmt.Errorf("copy state to clipboard: %w", err)
		}
		c.notifyCopy("state")
	}
	return nil
}

// readEvents loads events from a script path ("-" for in) or parses each
// argument as one event.
func readEvents(script string, args []string, in io.Reader) ([]viewer.Event, error) {
	switch script {
	case "":
	case "-":
		return viewer.ParseScript(in)
	default:
		f, err := os.Open(script)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		return viewer.ParseScript(f)
	}
	events := make([]viewer.Event, 0, len(args))
	for i, arg := range args {
		ev, err := viewer.ParseEvent(arg)
		if err != nil {
			return nil, fmt.Errorf("argument %d %q: %w", i+1, strings.TrimSpace(arg), err)
		}
		events = append(events, ev)
	}
	return events, nil
}
