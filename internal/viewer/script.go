package viewer

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ParseEvent parses one replay script line such as "pinch 3.2" or
// "select 2".
func ParseEvent(line string) (Event, error) {
	fields := strings.Fields(strings.ToLower(strings.TrimSpace(line)))
	if len(fields) == 0 {
		return nil, fmt.Errorf("empty event")
	}
	name, args := fields[0], fields[1:]

	want := func(n int) error {
		if len(args) != n {
			return fmt.Errorf("%s takes %d argument(s), got %d", name, n, len(args))
		}
		return nil
	}

	switch name {
	case "doubletap":
		return DoubleTap{}, want(0)
	case "dragend":
		return DragEnded{}, want(0)
	case "pinchend":
		return PinchEnded{}, want(0)
	case "zoomin":
		return ZoomIn{}, want(0)
	case "zoomout":
		return ZoomOut{}, want(0)
	case "reset":
		return Reset{}, want(0)
	case "drawer":
		return ToggleDrawer{}, want(0)
	case "info":
		return ToggleInfo{}, want(0)
	case "drag":
		if err := want(2); err != nil {
			return nil, err
		}
		x, err := strconv.ParseFloat(args[0], 64)
		if err != nil {
			return nil, fmt.Errorf("drag x: %w", err)
		}
		y, err := strconv.ParseFloat(args[1], 64)
		if err != nil {
			return nil, fmt.Errorf("drag y: %w", err)
		}
		return DragChanged{Translation: Point{X: x, Y: y}}, nil
	case "pinch":
		if err := want(1); err != nil {
			return nil, err
		}
		m, err := strconv.ParseFloat(args[0], 64)
		if err != nil {
			return nil, fmt.Errorf("pinch magnification: %w", err)
		}
		return PinchChanged{Magnification: m}, nil
	case "select":
		if err := want(1); err != nil {
			return nil, err
		}
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return nil, fmt.Errorf("select id: %w", err)
		}
		return SelectPage{ID: id}, nil
	}
	return nil, fmt.Errorf("unknown event %q", name)
}

// ParseScript reads one event per line. Blank lines and lines starting
// with '#' are skipped.
func ParseScript(r io.Reader) ([]Event, error) {
	var events []Event
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		ev, err := ParseEvent(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		events = append(events, ev)
	}
	return events, scanner.Err()
}
