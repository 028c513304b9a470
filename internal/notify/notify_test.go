package notify

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/example/sketchpad/internal/platform"
)

type sent struct {
	title, body string
	opts        platform.Options
}

func capture(n *Notifier) *[]sent {
	var got []sent
	n.send = func(title, body string, opts platform.Options) error {
		got = append(got, sent{title, body, opts})
		return nil
	}
	return &got
}

func TestDisabledEventsStaySilent(t *testing.T) {
	n := New(DefaultPreferences())
	got := capture(n)
	n.Save("x.png")
	n.Copy("")
	if len(*got) != 0 {
		t.Fatalf("sent %d notifications while disabled", len(*got))
	}
	var nilNotifier *Notifier
	nilNotifier.Save("x.png")
	nilNotifier.Enable(EventSave, true)
}

func TestSaveUsesAbsolutePathAndIcon(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "1000.png")
	if err := os.WriteFile(path, []byte("png"), 0o644); err != nil {
		t.Fatal(err)
	}
	n := New(DefaultPreferences())
	n.Enable(EventSave, true)
	got := capture(n)
	n.Save(path)
	if len(*got) != 1 {
		t.Fatalf("sent %d notifications", len(*got))
	}
	s := (*got)[0]
	if s.title != "Sketchpad" || s.body != "Saved "+path || s.opts.IconPath != path {
		t.Fatalf("notification = %+v", s)
	}
	if s.opts.Timeout != 5*time.Second {
		t.Fatalf("timeout = %v", s.opts.Timeout)
	}
}

func TestCopyDefaultDetail(t *testing.T) {
	n := New(DefaultPreferences())
	n.Enable(EventCopy, true)
	got := capture(n)
	n.Copy(" ")
	if len(*got) != 1 || (*got)[0].body != "Copied drawing to clipboard" {
		t.Fatalf("notifications = %+v", *got)
	}
}

func TestLoadPreferencesFromEnv(t *testing.T) {
	t.Setenv("SKETCHPAD_NOTIFY_TITLE", "Board")
	t.Setenv("SKETCHPAD_NOTIFY_TIMEOUT", "2s")
	t.Setenv("SKETCHPAD_NOTIFY_SAVE_TEXT", "Wrote %s")
	t.Setenv("SKETCHPAD_NOTIFY_COPY_TEXT", "Copied!")
	prefs := LoadPreferences()
	if prefs.Title != "Board" || prefs.Timeout != 2*time.Second {
		t.Fatalf("prefs = %+v", prefs)
	}
	n := New(prefs)
	n.Enable(EventCopy, true)
	got := capture(n)
	n.Copy("x")
	if (*got)[0].body != "Copied!" {
		t.Fatalf("body = %q", (*got)[0].body)
	}
}

func TestSendFailureIsLogged(t *testing.T) {
	n := New(DefaultPreferences())
	n.Enable(EventCopy, true)
	calls := 0
	n.send = func(string, string, platform.Options) error {
		calls++
		return errors.New("no bus")
	}
	n.Copy("x")
	if calls != 1 {
		t.Fatalf("send called %d times", calls)
	}
}
