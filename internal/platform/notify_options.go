package platform

import "time"

// AppName identifies the editor to notification centres.
const AppName = "SnapEdit"

// DefaultExpire is how long a notification stays up when Options.Expire is
// zero.
const DefaultExpire = 5 * time.Second

// Options configures how a notification is displayed on the host platform.
type Options struct {
	// IconPath, when non-empty, points to an image file the notification center
	// should display with the notification if supported by the platform.
	IconPath string
	// Expire overrides DefaultExpire where the platform honours it.
	Expire time.Duration
}

func (o Options) expire() time.Duration {
	if o.Expire <= 0 {
		return DefaultExpire
	}
	return o.Expire
}
