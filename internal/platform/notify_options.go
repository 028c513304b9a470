// Package platform shows desktop notifications with whatever the host
// operating system provides.
package platform

import "time"

// Options configures how a notification is displayed on the host platform.
type Options struct {
	// AppName is reported to notification daemons that group by sender.
	AppName string
	// IconPath, when non-empty, points to an image file the notification center
	// should display with the notification if supported by the platform.
	IconPath string
	// Timeout is how long the notification stays up. Zero leaves it to the
	// platform.
	Timeout time.Duration
}

func (o Options) appName() string {
	if o.AppName == "" {
		return "Sketchpad"
	}
	return o.AppName
}
