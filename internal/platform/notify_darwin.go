//go:build darwin

package platform

import (
	"fmt"
	"os/exec"
)

// Notify posts to Notification Center through osascript. Timeout and icon
// are decided by the user's Notification Center settings.
func Notify(title, body string, opts Options) error {
	if title == "" {
		title = opts.appName()
	}
	script := fmt.Sprintf("display notification %q with title %q", body, title)
	if name := opts.appName(); name != title {
		script += fmt.Sprintf(" subtitle %q", name)
	}
	if err := exec.Command("osascript", "-e", script).Run(); err != nil {
		return fmt.Errorf("osascript: %w", err)
	}
	return nil
}
