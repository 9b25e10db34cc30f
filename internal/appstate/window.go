package appstate

import (
	"context"
	"image"
	"sync"
	"time"

	"golang.org/x/exp/shiny/driver"
	shiny "golang.org/x/exp/shiny/gesture"
	"golang.org/x/exp/shiny/screen"
	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/lifecycle"
	"golang.org/x/mobile/event/mouse"
	"golang.org/x/mobile/event/paint"
	"golang.org/x/mobile/event/size"
	"golang.org/x/mobile/event/touch"

	"github.com/example/pinchview/internal/gesture"
	"github.com/example/pinchview/internal/render"
	"github.com/example/pinchview/internal/viewer"
)

const (
	// frameDropThreshold bounds consecutive cancelled frames.
	frameDropThreshold = 10

	messageDuration = 2 * time.Second
)

type paintState struct {
	scene render.Scene
}

// Run executes the UI loop using shiny's driver.
func (a *AppState) Run() { driver.Main(a.Main) }

// Main opens the viewer window on s and runs its event loop until the
// window closes or the user quits.
func (a *AppState) Main(s screen.Screen) {
	width, height := DefaultWidth, DefaultHeight
	w, err := s.NewWindow(&screen.NewWindowOptions{Width: width, Height: height, Title: a.Title})
	if err != nil {
		a.logger.Error("new window", "err", err)
		return
	}
	defer w.Release()
	defer a.notifyClose()

	done := make(chan struct{})
	updaterDone := make(chan struct{})
	go func() {
		defer close(updaterDone)
		for {
			select {
			case <-a.updateCh:
				w.Send(paint.Event{})
			case <-done:
				return
			}
		}
	}()

	var paintMu sync.Mutex
	var paintCancel context.CancelFunc
	var dropCount int
	paintCh := make(chan paintState, 1)
	paintDone := make(chan struct{})
	go func() {
		defer close(paintDone)
		for st := range paintCh {
			ctx, cancel := context.WithCancel(context.Background())
			paintMu.Lock()
			paintCancel = cancel
			paintMu.Unlock()
			a.drawFrame(ctx, s, w, st)
			paintMu.Lock()
			paintCancel = nil
			if ctx.Err() == nil {
				dropCount = 0
			}
			paintMu.Unlock()
			cancel()
		}
	}()
	stopPaint := func() {
		paintMu.Lock()
		if paintCancel != nil {
			paintCancel()
		}
		paintMu.Unlock()
	}

	var messageTimer *time.Timer
	// Runs before w.Release: nothing may touch the window afterwards.
	defer func() {
		if messageTimer != nil {
			messageTimer.Stop()
		}
		close(done)
		<-updaterDone
		stopPaint()
		close(paintCh)
		<-paintDone
	}()

	filter := &shiny.EventFilter{EventDeque: w}
	pointer := &gesture.Mouse{Pages: a.Catalog.Pages()}
	wheel := &gesture.Wheel{Factor: gesture.WheelFactor, MaxScale: a.Limits.MaxScale}
	fingers := &gesture.Touch{OnTap: pointer.Tap}

	var message string
	var messageUntil time.Time
	flash := func(msg string) {
		message = msg
		messageUntil = time.Now().Add(messageDuration)
		a.logger.Info(msg)
		w.Send(paint.Event{})
		if messageTimer != nil {
			messageTimer.Stop()
		}
		messageTimer = time.AfterFunc(messageDuration, a.NotifyChanged)
	}

	apply := func(evs ...viewer.Event) {
		for _, ev := range evs {
			if err := a.session.Apply(ev); err != nil {
				flash(err.Error())
			}
		}
	}
	flushWheel := func() {
		if ev, ok := wheel.Flush(); ok {
			apply(ev)
		}
	}

	for {
		e := filter.Filter(w.NextEvent())
		switch e := e.(type) {
		case lifecycle.Event:
			if e.To == lifecycle.StageDead {
				return
			}

		case size.Event:
			width, height = e.WidthPx, e.HeightPx
			w.Send(paint.Event{})

		case paint.Event:
			sc, err := a.Scene(width, height)
			if err != nil {
				a.logger.Error("scene", "err", err)
				continue
			}
			pointer.Layout = sc.Layout
			if time.Now().Before(messageUntil) {
				sc.Message = message
			}
			paintMu.Lock()
			if paintCancel != nil && dropCount < frameDropThreshold {
				paintCancel()
				dropCount++
			}
			paintMu.Unlock()
			st := paintState{scene: sc}
			select {
			case paintCh <- st:
			default:
				select {
				case <-paintCh:
				default:
				}
				paintCh <- st
			}

		case shiny.Event:
			flushWheel()
			apply(pointer.Gesture(e, a.session.State())...)

		case mouse.Event:
			if e.Direction == mouse.DirStep {
				if ev, ok := wheel.Mouse(e, a.session.State()); ok {
					apply(ev)
				}
				continue
			}
			if e.Direction != mouse.DirNone {
				flushWheel()
			}

		case touch.Event:
			flushWheel()
			apply(fingers.Touch(e, a.session.State())...)

		case key.Event:
			if e.Direction == key.DirRelease {
				continue
			}
			flushWheel()
			if d, ok := gesture.Pan(e); ok {
				apply(gesture.PanEvents(a.session.State(), d)...)
				continue
			}
			cmd, ok := gesture.Key(e)
			if !ok {
				continue
			}
			if cmd.Event != nil {
				apply(cmd.Event)
				continue
			}
			switch cmd.Action {
			case gesture.ActionQuit:
				return
			case gesture.ActionSave, gesture.ActionCopy:
				img, err := a.Snapshot(width, height)
				if err != nil {
					flash(err.Error())
					break
				}
				if cmd.Action == gesture.ActionSave {
					path, err := a.Save(img)
					if err != nil {
						a.logger.Error("save", "err", err)
						flash("save failed")
						break
					}
					flash("saved " + path)
					break
				}
				if err := a.Copy(img); err != nil {
					a.logger.Error("copy", "err", err)
					flash("copy failed")
					break
				}
				flash("view copied to clipboard")
			}
			w.Send(paint.Event{})
		}
	}
}

func (a *AppState) drawFrame(ctx context.Context, s screen.Screen, w screen.Window, st paintState) {
	b, err := s.NewBuffer(st.scene.Layout.Size)
	if err != nil {
		a.logger.Error("new buffer", "err", err)
		return
	}
	defer b.Release()

	render.Frame(b.RGBA(), st.scene)
	if ctx.Err() != nil {
		return
	}
	w.Upload(image.Point{}, b, b.Bounds())
	w.Publish()
}
