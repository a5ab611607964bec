package notify

import (
	"image"
	"os"
	"strings"
	"testing"

	"github.com/example/gridpaint/internal/platform"
)

type sent struct {
	title, body string
	opts        platform.Options
}

func capture(t *testing.T) *[]sent {
	t.Helper()
	var got []sent
	prev := send
	send = func(title, body string, opts platform.Options) error {
		if opts.IconPath != "" {
			if _, err := os.Stat(opts.IconPath); err != nil {
				t.Errorf("icon %s missing while notifying: %v", opts.IconPath, err)
			}
		}
		got = append(got, sent{title, body, opts})
		return nil
	}
	t.Cleanup(func() { send = prev })
	return &got
}

func TestDisabledEventsAreSilent(t *testing.T) {
	got := capture(t)
	n := New(DefaultPreferences())
	n.Save("a.gp")
	n.Copy("")
	n.Export("a.png", nil)
	var nilNotifier *Notifier
	nilNotifier.Copy("x")
	if len(*got) != 0 {
		t.Fatalf("sent %d notifications, want 0", len(*got))
	}
}

func TestExportWithPreview(t *testing.T) {
	got := capture(t)
	n := New(DefaultPreferences())
	n.Enable(EventExport, true)
	n.Export("art.png", image.NewRGBA(image.Rect(0, 0, 2, 2)))
	if len(*got) != 1 {
		t.Fatalf("sent %d notifications, want 1", len(*got))
	}
	s := (*got)[0]
	if s.title != platform.DefaultAppName || !strings.HasPrefix(s.body, "Exported ") || !strings.HasSuffix(s.body, "art.png") {
		t.Fatalf("unexpected notification %+v", s)
	}
	if s.opts.IconPath == "" {
		t.Fatalf("no preview icon")
	}
	if _, err := os.Stat(s.opts.IconPath); !os.IsNotExist(err) {
		t.Fatalf("preview icon not cleaned up: %v", err)
	}
}

func TestCopyDefaultDetail(t *testing.T) {
	got := capture(t)
	n := New(DefaultPreferences())
	n.Enable(EventCopy, true)
	n.Copy(" ")
	if len(*got) != 1 || (*got)[0].body != "Copied painting to clipboard" {
		t.Fatalf("unexpected notifications %+v", *got)
	}
}

func TestLoadPreferencesFromEnv(t *testing.T) {
	t.Setenv("GRIDPAINT_NOTIFY_TITLE", "Moose")
	t.Setenv("GRIDPAINT_NOTIFY_SAVE_TEXT", "Wrote %s")
	prefs := LoadPreferences()
	if prefs.Title != "Moose" {
		t.Errorf("title %q", prefs.Title)
	}
	if prefs.Events[EventSave].Template != "Wrote %s" {
		t.Errorf("save template %q", prefs.Events[EventSave].Template)
	}
	if prefs.Events[EventCopy].Template != DefaultPreferences().Events[EventCopy].Template {
		t.Errorf("copy template changed")
	}
}
