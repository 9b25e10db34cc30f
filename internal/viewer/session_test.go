package viewer

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestSessionEntryPoints(t *testing.T) {
	s := NewSession(threePages(), DefaultLimits())

	if err := s.OnPinchChanged(3.2); err != nil {
		t.Fatal(err)
	}
	if err := s.OnPinchEnded(); err != nil {
		t.Fatal(err)
	}
	if got := s.State().Scale; got != 3.2 {
		t.Fatalf("expected scale 3.2, got %v", got)
	}
	if err := s.OnDragChanged(Point{X: 7, Y: 9}); err != nil {
		t.Fatal(err)
	}
	if err := s.OnDragEnded(); err != nil {
		t.Fatal(err)
	}
	if got := s.State().Offset; got != (Point{X: 7, Y: 9}) {
		t.Fatalf("expected zoomed drag to keep offset, got %v", got)
	}
	if err := s.OnZoomIn(); err != nil {
		t.Fatal(err)
	}
	if err := s.OnZoomOut(); err != nil {
		t.Fatal(err)
	}
	if err := s.OnReset(); err != nil {
		t.Fatal(err)
	}
	if !s.State().Fitted() {
		t.Fatalf("expected Fitted after reset, got %v", s.State())
	}
	if err := s.OnDoubleTap(); err != nil {
		t.Fatal(err)
	}
	if err := s.OnToggleDrawer(); err != nil {
		t.Fatal(err)
	}
	if err := s.OnToggleInfo(); err != nil {
		t.Fatal(err)
	}
	if err := s.OnSelectPage(2); err != nil {
		t.Fatal(err)
	}
	st := s.State()
	if st.Scale != 5 || !st.DrawerOpen || !st.InfoVisible || st.PageIndex != 2 {
		t.Fatalf("unexpected state %+v", st)
	}
	if s.CurrentPage().ImageName != "middle" {
		t.Fatalf("unexpected current page %+v", s.CurrentPage())
	}
}

func TestSessionRejectedEventIsLogged(t *testing.T) {
	var buf bytes.Buffer
	logger := log.NewWithOptions(&buf, log.Options{Level: log.DebugLevel})
	s := NewSession(threePages(), DefaultLimits(), WithLogger(logger))

	before := s.State()
	err := s.OnSelectPage(7)
	if !errors.Is(err, ErrOutOfRangeSelection) {
		t.Fatalf("expected ErrOutOfRangeSelection, got %v", err)
	}
	if s.State() != before {
		t.Fatalf("state changed on rejected event: %v", s.State())
	}
	if !strings.Contains(buf.String(), "event rejected") {
		t.Fatalf("expected rejection in log output, got %q", buf.String())
	}
}

func TestSessionObservers(t *testing.T) {
	s := NewSession(threePages(), DefaultLimits())
	var seen []string
	s.Observe(func(prev, next State, ev Event) {
		seen = append(seen, ev.String())
		if prev == next && ev.String() != "dragend" {
			t.Errorf("%v: expected state change", ev)
		}
	})
	_ = s.OnZoomIn()
	_ = s.OnSelectPage(99)
	_ = s.OnToggleDrawer()
	if strings.Join(seen, ",") != "zoomin,drawer" {
		t.Fatalf("unexpected observed events %v", seen)
	}
}

func TestWithStateStartsFromGivenState(t *testing.T) {
	start := State{Scale: 3, PageIndex: 3}
	s := NewSession(threePages(), DefaultLimits(), WithState(start))
	if s.State() != start {
		t.Fatalf("expected %v, got %v", start, s.State())
	}
	if s.CurrentPage().ID != 3 {
		t.Fatalf("expected current page 3, got %d", s.CurrentPage().ID)
	}
}
