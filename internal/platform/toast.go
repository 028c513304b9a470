package platform

import (
	"encoding/xml"
	"fmt"
	"path/filepath"
	"strings"
)

// toastXML is a ToastGeneric payload: a title line, a body line and an
// optional app logo.
func toastXML(title, body, icon string) string {
	var b strings.Builder
	b.WriteString(`<toast><visual><binding template="ToastGeneric">`)
	for _, line := range []string{title, body} {
		b.WriteString("<text>")
		xml.EscapeText(&b, []byte(line))
		b.WriteString("</text>")
	}
	if icon != "" {
		b.WriteString(`<image placement="appLogoOverride" src="`)
		xml.EscapeText(&b, []byte("file:///"+strings.TrimPrefix(filepath.ToSlash(icon), "/")))
		b.WriteString(`"/>`)
	}
	b.WriteString("</binding></visual></toast>")
	return b.String()
}

// toastScript is the PowerShell program that shows the toast through the
// WinRT notification manager.
func toastScript(title, body string, opts Options) string {
	lines := []string{
		"[Windows.UI.Notifications.ToastNotificationManager, Windows.UI.Notifications, ContentType = WindowsRuntime] > $null",
		"[Windows.Data.Xml.Dom.XmlDocument, Windows.Data.Xml.Dom.XmlDocument, ContentType = WindowsRuntime] > $null",
		"$doc = New-Object Windows.Data.Xml.Dom.XmlDocument",
		"$doc.LoadXml(" + psQuote(toastXML(title, body, strings.TrimSpace(opts.IconPath))) + ")",
		"$toast = [Windows.UI.Notifications.ToastNotification]::new($doc)",
	}
	if opts.Timeout > 0 {
		lines = append(lines, fmt.Sprintf("$toast.ExpirationTime = [DateTimeOffset]::Now.AddMilliseconds(%d)", opts.Timeout.Milliseconds()))
	}
	lines = append(lines, "[Windows.UI.Notifications.ToastNotificationManager]::CreateToastNotifier("+psQuote(opts.appName())+").Show($toast)")
	return strings.Join(lines, "; ")
}

// psQuote makes s a single-quoted PowerShell literal.
func psQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}
