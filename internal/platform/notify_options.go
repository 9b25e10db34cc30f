// Package platform sends desktop notifications through the host's native
// notification service.
package platform

import "time"

// AppName is reported to the notification service as the sender.
const AppName = "PinchView"

// DefaultTimeout is used when Options.Timeout is zero.
const DefaultTimeout = 5 * time.Second

// Options configures how a notification is displayed on the host platform.
type Options struct {
	// IconPath, when non-empty, points to an image shown with the
	// notification where supported.
	IconPath string
	// Timeout is how long the notification stays visible.
	Timeout time.Duration
}

func (o Options) timeout() time.Duration {
	if o.Timeout <= 0 {
		return DefaultTimeout
	}
	return o.Timeout
}
