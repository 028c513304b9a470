//go:build windows

package platform

import (
	"fmt"
	"os/exec"
)

// Notify shows a toast in the Windows notification center.
func Notify(title, body string, opts Options) error {
	out, err := exec.Command("powershell.exe", "-NoProfile", "-NonInteractive", "-Command", toastScript(title, body, opts)).CombinedOutput()
	if err != nil {
		return fmt.Errorf("powershell toast: %w: %s", err, out)
	}
	return nil
}
