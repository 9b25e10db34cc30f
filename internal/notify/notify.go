// Package notify raises desktop notifications when the viewer saves or
// copies a snapshot.
package notify

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/example/pinchview/internal/platform"
)

// Event identifies a notification trigger.
type Event string

const (
	// EventSave fires when a snapshot is written to disk.
	EventSave Event = "save"
	// EventCopy fires when a view is copied to the clipboard.
	EventCopy Event = "copy"
)

// Preferences holds the title and per-event message templates. Each
// template takes one %s for the detail.
type Preferences struct {
	Title     string
	Templates map[Event]string
}

// DefaultPreferences returns the built-in title and templates.
func DefaultPreferences() Preferences {
	return Preferences{
		Title: platform.AppName,
		Templates: map[Event]string{
			EventSave: "Saved %s",
			EventCopy: "Copied %s to clipboard",
		},
	}
}

// LoadPreferences applies PINCHVIEW_NOTIFY_* environment overrides to the
// defaults.
func LoadPreferences() Preferences {
	prefs := DefaultPreferences()
	if v := strings.TrimSpace(os.Getenv("PINCHVIEW_NOTIFY_TITLE")); v != "" {
		prefs.Title = v
	}
	for key, ev := range map[string]Event{
		"PINCHVIEW_NOTIFY_SAVE_TEXT": EventSave,
		"PINCHVIEW_NOTIFY_COPY_TEXT": EventCopy,
	} {
		if v := strings.TrimSpace(os.Getenv(key)); v != "" {
			prefs.Templates[ev] = v
		}
	}
	return prefs
}

// send is replaced in tests.
var send = platform.Notify

// Notifier sends notifications for enabled events. A nil Notifier is
// silent.
type Notifier struct {
	prefs   Preferences
	enabled map[Event]bool
	logger  *log.Logger
}

// New returns a Notifier with every event disabled.
func New(prefs Preferences, logger *log.Logger) *Notifier {
	cloned := Preferences{Title: prefs.Title, Templates: make(map[Event]string, len(prefs.Templates))}
	for k, v := range prefs.Templates {
		cloned.Templates[k] = v
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Notifier{prefs: cloned, enabled: make(map[Event]bool), logger: logger}
}

// Enable toggles the notifier for the provided event.
func (n *Notifier) Enable(event Event, enabled bool) {
	if n == nil {
		return
	}
	n.enabled[event] = enabled
}

// Save notifies that path was written. The saved file doubles as the
// notification icon.
func (n *Notifier) Save(path string) {
	if !n.enabledFor(EventSave) {
		return
	}
	detail := strings.TrimSpace(path)
	var opts platform.Options
	if abs, err := filepath.Abs(path); err == nil {
		detail = abs
		if _, err := os.Stat(abs); err == nil {
			opts.IconPath = abs
		}
	}
	n.dispatch(EventSave, detail, opts)
}

// Copy notifies that detail was copied.
func (n *Notifier) Copy(detail string) {
	if strings.TrimSpace(detail) == "" {
		detail = "view"
	}
	n.dispatch(EventCopy, detail, platform.Options{})
}

func (n *Notifier) enabledFor(event Event) bool {
	return n != nil && n.enabled[event]
}

func (n *Notifier) dispatch(event Event, detail string, opts platform.Options) {
	if !n.enabledFor(event) {
		return
	}
	tmpl := strings.TrimSpace(n.prefs.Templates[event])
	if tmpl == "" {
		return
	}
	body := strings.TrimSpace(fmt.Sprintf(tmpl, strings.TrimSpace(detail)))
	if body == "" {
		return
	}
	if err := send(n.prefs.Title, body, opts); err != nil {
		n.logger.Warn("notification failed", "event", event, "err", err)
	}
}
