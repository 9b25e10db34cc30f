package viewer

import (
	"errors"
	"fmt"

	"github.com/example/pinchview/internal/catalog"
)

var (
	// ErrOutOfRangeSelection rejects a page id missing from the catalog.
	ErrOutOfRangeSelection = errors.New("page not in catalog")
	// ErrInvalidMagnification rejects NaN, infinite or negative pinch values.
	ErrInvalidMagnification = errors.New("invalid magnification")
	// ErrInvalidTranslation rejects non-finite drag translations.
	ErrInvalidTranslation = errors.New("invalid translation")
	// ErrUnknownEvent rejects event types the reducer does not handle.
	ErrUnknownEvent = errors.New("unknown event")
)

// Reducer computes state transitions. The zero value is not usable; build
// one with NewReducer.
type Reducer struct {
	Limits  Limits
	Catalog *catalog.Catalog
}

// NewReducer returns a reducer over cat. Invalid limits fall back to
// DefaultLimits.
func NewReducer(cat *catalog.Catalog, limits Limits) *Reducer {
	if limits.Validate() != nil {
		limits = DefaultLimits()
	}
	return &Reducer{Limits: limits, Catalog: cat}
}

// Initial returns the start-up state: Fitted, first page, drawer closed.
func (r *Reducer) Initial() State {
	return State{Scale: FittedScale, PageIndex: r.Catalog.First().ID}
}

// Next applies ev to s. Rejected events return s unchanged together with
// an error wrapping one of the package's sentinel errors; no error is
// fatal.
func (r *Reducer) Next(s State, ev Event) (State, error) {
	maxScale := r.Limits.MaxScale

	switch e := ev.(type) {
	case DoubleTap:
		if s.Scale == FittedScale {
			s.Scale = r.Limits.DoubleTapScale
			return s, nil
		}
		return s.reset(), nil

	case DragChanged:
		// Panning is not gated on zoom; DragEnded snaps an unzoomed page back.
		if !e.Translation.finite() {
			return s, fmt.Errorf("%w: %v", ErrInvalidTranslation, e.Translation)
		}
		s.Offset = e.Translation
		return s, nil

	case DragEnded:
		if s.Scale <= FittedScale {
			return s.reset(), nil
		}
		return s, nil

	case PinchChanged:
		m := e.Magnification
		if !finite(m) || m < 0 {
			return s, fmt.Errorf("%w: %v", ErrInvalidMagnification, m)
		}
		switch {
		case s.Scale >= FittedScale && s.Scale <= maxScale:
			s.Scale = m
		case s.Scale > maxScale:
			s.Scale = maxScale
		}
		return s, nil

	case PinchEnded:
		switch {
		case s.Scale > maxScale:
			s.Scale = maxScale
		case s.Scale <= FittedScale:
			s = s.reset()
		}
		return s, nil

	case ZoomOut:
		if s.Scale > FittedScale {
			s.Scale -= r.Limits.ZoomStep
			if s.Scale <= FittedScale {
				s = s.reset()
			}
		}
		return s, nil

	case ZoomIn:
		if s.Scale < maxScale {
			s.Scale += r.Limits.ZoomStep
			if s.Scale > maxScale {
				s.Scale = maxScale
			}
		}
		return s, nil

	case Reset:
		return s.reset(), nil

	case SelectPage:
		if !r.Catalog.Contains(e.ID) {
			return s, fmt.Errorf("%w: id %d (catalog has %d pages)", ErrOutOfRangeSelection, e.ID, r.Catalog.Len())
		}
		s.PageIndex = e.ID
		return s, nil

	case ToggleDrawer:
		s.DrawerOpen = !s.DrawerOpen
		return s, nil

	case ToggleInfo:
		s.InfoVisible = !s.InfoVisible
		return s, nil
	}
	return s, fmt.Errorf("%w: %T", ErrUnknownEvent, ev)
}

// Replay folds events over s, skipping rejected ones. It returns the final
// state and every rejection in order.
func (r *Reducer) Replay(s State, events []Event) (State, []error) {
	var errs []error
	for _, ev := range events {
		next, err := r.Next(s, ev)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		s = next
	}
	return s, errs
}
