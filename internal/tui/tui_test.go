package tui

import (
	"errors"
	"io"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/example/pinchview/internal/catalog"
	"github.com/example/pinchview/internal/viewer"
)

func keyMsg(key string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
}

func newModel() Model {
	cat := catalog.MustNew(catalog.Page{ID: 1, ImageName: "front"}, catalog.Page{ID: 2, ImageName: "back"})
	cat.Title = "Test"
	s := viewer.NewSession(cat, viewer.DefaultLimits(), viewer.WithLogger(log.New(io.Discard)))
	return New(s, cat)
}

func press(m Model, msgs ...tea.KeyMsg) Model {
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		m = next.(Model)
	}
	return m
}

func TestZoomKeys(t *testing.T) {
	m := press(newModel(), keyMsg("+"), keyMsg("+"))
	if got := m.State().Scale; got != 3 {
		t.Fatalf("expected scale 3, got %v", got)
	}
	m = press(m, keyMsg("-"), keyMsg("-"))
	if !m.State().Fitted() {
		t.Fatalf("expected fitted state, got %v", m.State())
	}
}

func TestArrowPanSnapsBackWhenFitted(t *testing.T) {
	m := press(newModel(), tea.KeyMsg{Type: tea.KeyRight})
	if !m.State().Fitted() {
		t.Fatalf("expected snap back, got %v", m.State())
	}
	m = press(m, keyMsg("+"), tea.KeyMsg{Type: tea.KeyRight}, tea.KeyMsg{Type: tea.KeyDown})
	if got := m.State().Offset; got != (viewer.Point{X: 10, Y: 10}) {
		t.Fatalf("expected offset (10,10), got %v", got)
	}
}

func TestPinchKeys(t *testing.T) {
	m := press(newModel(), keyMsg("]"), keyMsg("]"))
	if got := m.State().Scale; got != 2 {
		t.Fatalf("expected scale 2, got %v", got)
	}
	m = press(m, keyMsg("["), keyMsg("["))
	if !m.State().Fitted() {
		t.Fatalf("expected fitted state after pinching below 1, got %v", m.State())
	}
}

func TestRejectedSelectionShown(t *testing.T) {
	m := press(newModel(), keyMsg("7"))
	if m.State().PageIndex != 1 {
		t.Fatalf("page must not change")
	}
	if !strings.Contains(m.View(), "select 7 rejected") {
		t.Fatalf("expected rejection in view:\n%s", m.View())
	}
	m = press(m, keyMsg("2"))
	if m.State().PageIndex != 2 || strings.Contains(m.View(), "rejected") {
		t.Fatalf("expected page 2 without message")
	}
}

func TestViewShowsDrawerAndMode(t *testing.T) {
	m := newModel()
	v := m.View()
	if !strings.Contains(v, "PinchView - Test") || !strings.Contains(v, "Fitted") {
		t.Fatalf("unexpected view:\n%s", v)
	}
	if strings.Contains(v, "back") {
		t.Fatalf("drawer should be closed")
	}
	m = press(m, tea.KeyMsg{Type: tea.KeyTab}, keyMsg("+"))
	v = m.View()
	if !strings.Contains(v, "back") || !strings.Contains(v, "Zoomed") {
		t.Fatalf("expected open drawer and zoomed mode:\n%s", v)
	}
}

func TestCopyAndQuit(t *testing.T) {
	var copied string
	orig := copyText
	copyText = func(s string) error { copied = s; return nil }
	t.Cleanup(func() { copyText = orig })

	m := press(newModel(), keyMsg("c"))
	if !strings.HasPrefix(copied, "page=1 scale=1.00") {
		t.Fatalf("unexpected copied text %q", copied)
	}

	copyText = func(string) error { return errors.New("no display") }
	m = press(m, keyMsg("c"))
	if !strings.Contains(m.View(), "copy: no display") {
		t.Fatalf("expected copy error in view")
	}

	if _, cmd := m.Update(keyMsg("q")); cmd == nil {
		t.Fatalf("expected quit command")
	}
}
