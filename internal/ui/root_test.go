package ui

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/test"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type stubReadCloser struct {
	io.Reader
	uri fyne.URI
}

func (s *stubReadCloser) Close() error  { return nil }
func (s *stubReadCloser) URI() fyne.URI { return s.uri }

type stubWriteCloser struct {
	buf bytes.Buffer
	uri fyne.URI
}

func (s *stubWriteCloser) Write(p []byte) (int, error) { return s.buf.Write(p) }
func (s *stubWriteCloser) Close() error                { return nil }
func (s *stubWriteCloser) URI() fyne.URI               { return s.uri }

func TestNewRootUIRestoresURLList(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)
	settings.SetURLList("https://a.example\n# skip me\nhttps://b.example\n")

	w := app.NewWindow("test")
	ui := NewRootUI(w, app, nil)

	if ui.urlEntry.Text == "" {
		t.Error("URL entry should be restored from preferences")
	}
	if got := ui.urlCount.Text; got != "2 URLs" {
		t.Errorf("URL count label = %q, want %q", got, "2 URLs")
	}
}

func TestURLCountTracksEntry(t *testing.T) {
	app := test.NewApp()
	w := app.NewWindow("test")
	ui := NewRootUI(w, app, nil)

	ui.urlEntry.SetText("https://one.example\nhttps://two.example\nhttps://three.example\n")
	if got := ui.urlCount.Text; got != "3 URLs" {
		t.Errorf("URL count label = %q, want %q", got, "3 URLs")
	}

	ui.urlEntry.SetText("")
	if got := ui.urlCount.Text; got != "0 URLs" {
		t.Errorf("URL count label = %q, want %q", got, "0 URLs")
	}
}

func TestHandleLoadURLs(t *testing.T) {
	app := test.NewApp()
	w := app.NewWindow("test")
	ui := NewRootUI(w, app, nil)

	rc := &stubReadCloser{
		Reader: strings.NewReader("https://a.example\nhttps://b.example\n"),
		uri:    storage.NewFileURI("/tmp/links.txt"),
	}
	ui.handleLoadURLs(rc, nil)

	if !strings.Contains(ui.urlEntry.Text, "https://b.example") {
		t.Errorf("URL entry = %q, want loaded content", ui.urlEntry.Text)
	}
	if got := ui.urlCount.Text; got != "2 URLs" {
		t.Errorf("URL count label = %q, want %q", got, "2 URLs")
	}
}

func TestHandleLoadURLsErrorIsLogged(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	app := test.NewApp()
	w := app.NewWindow("test")
	ui := NewRootUI(w, app, zap.New(core))
	ui.urlEntry.SetText("https://keep.example\n")

	ui.handleLoadURLs(nil, errors.New("permission denied"))

	if ui.urlEntry.Text != "https://keep.example\n" {
		t.Errorf("URL entry = %q, want unchanged", ui.urlEntry.Text)
	}
	if logs.FilterMessage("load URL list").Len() != 1 {
		t.Error("dialog error should be logged")
	}
}

func TestHandleSaveURLs(t *testing.T) {
	app := test.NewApp()
	w := app.NewWindow("test")
	ui := NewRootUI(w, app, nil)
	ui.urlEntry.SetText("https://a.example\n")

	wc := &stubWriteCloser{uri: storage.NewFileURI("/tmp/links.txt")}
	ui.handleSaveURLs(wc, nil)

	if got := wc.buf.String(); got != "https://a.example\n" {
		t.Errorf("saved content = %q, want the entry text", got)
	}
}

func TestHandleSaveURLsErrorIsLogged(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	app := test.NewApp()
	w := app.NewWindow("test")
	ui := NewRootUI(w, app, zap.New(core))

	ui.handleSaveURLs(nil, errors.New("disk full"))

	if logs.FilterMessage("save URL list").Len() != 1 {
		t.Error("dialog error should be logged")
	}
}

func TestStopButtonInitiallyDisabled(t *testing.T) {
	app := test.NewApp()
	w := app.NewWindow("test")
	ui := NewRootUI(w, app, nil)

	if !ui.stopBtn.Disabled() {
		t.Error("stop button should be disabled before a run starts")
	}
	if ui.startBtn.Disabled() {
		t.Error("start button should be enabled before a run starts")
	}
}
