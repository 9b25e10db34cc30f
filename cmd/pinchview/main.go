package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/example/pinchview/internal/catalog"
	"github.com/example/pinchview/internal/config"
	"github.com/example/pinchview/internal/notify"
	"github.com/example/pinchview/internal/theme"
)

var (
	version            = "dev"
	commit             = ""
	date               = ""
	configPathOverride = ""
)

type runnable interface{ Run() error }

type root struct {
	fs          *flag.FlagSet
	program     string
	ctx         context.Context
	notifier    *notify.Notifier
	config      *config.Config
	configPath  string
	verbose     bool
	saveAlerts  bool
	copyAlerts  bool
	themeName   string
	activeTheme *theme.Theme
}

func (r *root) Program() string {
	return r.program
}

func (r *root) FlagSet() *flag.FlagSet {
	return r.fs
}

func newRoot() *root {
	r := &root{
		fs:      flag.NewFlagSet("pinchview", flag.ExitOnError),
		program: "pinchview",
		ctx:     context.Background(),
		config:  config.New(),
	}
	r.fs.BoolVar(&r.verbose, "v", false, "enable debug logging")
	r.fs.StringVar(&r.configPath, "config", configPathOverride, "read configuration from this file")
	r.fs.BoolVar(&r.saveAlerts, "notify-save", false, "show a desktop notification after saving a snapshot")
	r.fs.BoolVar(&r.copyAlerts, "notify-copy", false, "show a desktop notification after copying to the clipboard")
	// Precedence: CLI > Env > Config > Default
	r.fs.StringVar(&r.themeName, "theme", "", "color theme to use ("+strings.Join(theme.EmbeddedNames(), ", ")+")")
	r.fs.Usage = usageFunc(r)
	return r
}

// loadConfig reads the config file and lets it fill in every root flag the
// user did not set.
func (r *root) loadConfig() {
	set := map[string]bool{}
	r.fs.Visit(func(f *flag.Flag) { set[f.Name] = true })

	cfg, err := config.NewLoader(version, r.configPath).Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to load config: %v\n", err)
		cfg = config.New()
	}
	r.config = cfg
	if !set["notify-save"] {
		r.saveAlerts = cfg.Notify.Save
	}
	if !set["notify-copy"] {
		r.copyAlerts = cfg.Notify.Copy
	}
	if !set["v"] && strings.EqualFold(cfg.LogLevel, "debug") {
		r.verbose = true
	}
}

func (r *root) Run(args []string) error {
	if err := r.fs.Parse(args); err != nil {
		return err
	}
	if r.fs.NArg() < 1 {
		return &UsageError{of: r}
	}
	r.loadConfig()

	level := log.InfoLevel
	if r.verbose {
		level = log.DebugLevel
	} else if lvl, err := log.ParseLevel(r.config.LogLevel); err == nil && r.config.LogLevel != "" {
		level = lvl
	}
	logger := newLogger(os.Stderr, level)
	r.ctx = withLogger(r.ctx, logger)

	r.notifier = notify.New(notify.LoadPreferences(), logger)
	r.notifier.Enable(notify.EventSave, r.saveAlerts)
	r.notifier.Enable(notify.EventCopy, r.copyAlerts)

	r.activeTheme = r.resolveTheme(logger)

	cmdName := r.fs.Arg(0)
	subArgs := r.fs.Args()[1:]

	var (
		cmd runnable
		err error
	)
	switch cmdName {
	case "view":
		cmd, err = parseViewCmd(subArgs, r)
	case "tui":
		cmd, err = parseTUICmd(subArgs, r)
	case "replay":
		cmd, err = parseReplayCmd(subArgs, r)
	case "snapshot":
		cmd, err = parseSnapshotCmd(subArgs, r)
	case "catalog":
		cmd, err = parseCatalogCmd(subArgs, r)
	case "themes":
		cmd, err = parseThemesCmd(subArgs, r)
	case "config":
		cmd, err = parseConfigCmd(subArgs, r)
	case "version":
		cmd = &versionCmd{r: r}
	default:
		err = &UsageError{of: r}
	}
	if err != nil {
		return err
	}
	return cmd.Run()
}

// resolveTheme picks the theme named by -theme, PINCHVIEW_THEME or the
// config, in that order.
func (r *root) resolveTheme(logger *log.Logger) *theme.Theme {
	name := r.themeName
	if name == "" {
		name = os.Getenv("PINCHVIEW_THEME")
	}
	if name == "" {
		name = r.config.Theme
	}
	if t, ok := r.config.Themes[name]; ok {
		return t
	}
	t, err := theme.NewLoader().Load(name)
	if err != nil {
		if name != "" && name != "default" {
			logger.Warn("failed to load theme, using default", "theme", name, "err", err)
		}
		return theme.Default()
	}
	return t
}

// loadCatalog reads the manifest at path, falling back to the configured
// manifest and then the embedded one.
func (r *root) loadCatalog(path string) (*catalog.Catalog, error) {
	if path == "" && r.config != nil {
		path = r.config.Catalog
	}
	cat, err := catalog.LoadOrDefault(path)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	return cat, nil
}

func (r *root) logger() *log.Logger {
	if r == nil || r.ctx == nil {
		return log.Default()
	}
	return loggerFromContext(r.ctx)
}

func main() {
	r := newRoot()
	if err := r.Run(os.Args[1:]); err != nil {
		var uerr *UsageError
		if errors.As(err, &uerr) {
			fmt.Fprintln(os.Stderr, uerr.Error())
			os.Exit(2)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func (r *root) notifySave(path string) {
	if r == nil || r.notifier == nil {
		return
	}
	r.notifier.Save(path)
}

func (r *root) notifyCopy(detail string) {
	if r == nil || r.notifier == nil {
		return
	}
	r.notifier.Copy(detail)
}
