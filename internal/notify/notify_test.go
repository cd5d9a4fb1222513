package notify

import (
	"errors"
	"image"
	"os"
	"path/filepath"
	"testing"

	"github.com/example/snapedit/internal/platform"
)

type sent struct {
	title, body string
	opts        platform.Options
	iconExisted bool
}

func capture(t *testing.T, err error) *[]sent {
	t.Helper()
	var got []sent
	old := send
	send = func(title, body string, opts platform.Options) error {
		s := sent{title: title, body: body, opts: opts}
		if opts.IconPath != "" {
			_, statErr := os.Stat(opts.IconPath)
			s.iconExisted = statErr == nil
		}
		got = append(got, s)
		return err
	}
	t.Cleanup(func() { send = old })
	return &got
}

func TestDisabledEventsAreSilent(t *testing.T) {
	got := capture(t, nil)
	n := New(DefaultPreferences())
	n.Save("out.jpg")
	n.Copy("")
	n.Crop(image.NewRGBA(image.Rect(0, 0, 2, 2)))
	var nilNotifier *Notifier
	nilNotifier.Enable(EventSave, true)
	nilNotifier.Save("out.jpg")
	if len(*got) != 0 {
		t.Fatalf("expected nothing, got %+v", *got)
	}
}

func TestSaveUsesAbsolutePathAndIcon(t *testing.T) {
	got := capture(t, nil)
	dir := t.TempDir()
	path := filepath.Join(dir, "out.jpg")
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	n := New(DefaultPreferences())
	n.Enable(EventSave, true)
	n.Save(path)
	if len(*got) != 1 {
		t.Fatalf("expected one notification, got %d", len(*got))
	}
	s := (*got)[0]
	if s.title != platform.AppName || s.body != "Saved "+path || s.opts.IconPath != path {
		t.Fatalf("unexpected notification %+v", s)
	}
}

func TestCopyDefaultsDetail(t *testing.T) {
	got := capture(t, errors.New("no bus"))
	n := New(DefaultPreferences())
	n.Enable(EventCopy, true)
	n.Copy("  ")
	if len(*got) != 1 || (*got)[0].body != "Copied image to clipboard" {
		t.Fatalf("unexpected %+v", *got)
	}
}

func TestCropPreviewIsTemporary(t *testing.T) {
	got := capture(t, nil)
	n := New(DefaultPreferences())
	n.Enable(EventCrop, true)
	n.Crop(image.NewRGBA(image.Rect(0, 0, 300, 200)))
	if len(*got) != 1 {
		t.Fatalf("expected one notification")
	}
	s := (*got)[0]
	if s.body != "Cropped to 300x200" || !s.iconExisted {
		t.Fatalf("unexpected %+v", s)
	}
	if _, err := os.Stat(s.opts.IconPath); !os.IsNotExist(err) {
		t.Fatalf("preview should be removed, stat err %v", err)
	}
}

func TestLoadPreferencesFromEnv(t *testing.T) {
	t.Setenv("SNAPEDIT_NOTIFY_TITLE", "Editor")
	t.Setenv("SNAPEDIT_NOTIFY_CROP_TEXT", "Now %s")
	prefs := LoadPreferences()
	if prefs.Title != "Editor" || prefs.Events[EventCrop].Template != "Now %s" {
		t.Fatalf("unexpected prefs %+v", prefs)
	}
	if prefs.Events[EventSave].Template != "Saved %s" {
		t.Fatalf("save template should keep its default")
	}
}
