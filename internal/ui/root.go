// Package ui implements the graphical front end: URL list editing, run
// configuration, and a live log of orchestrator progress.
package ui

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/data/binding"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
	"go.uber.org/zap"

	"github.com/webgrab/webgrab/internal/browser"
	"github.com/webgrab/webgrab/internal/config"
	"github.com/webgrab/webgrab/internal/model"
	"github.com/webgrab/webgrab/internal/run"
)

const (
	windowWidth  = 800
	windowHeight = 700
)

// RootUI is the main window. It is a pure sink for orchestrator events; all
// run logic lives in internal/run.
type RootUI struct {
	window   fyne.Window
	settings *Settings
	logger   *zap.Logger

	urlEntry    *widget.Entry
	urlCount    *widget.Label
	startBtn    *widget.Button
	stopBtn     *widget.Button
	statusLabel *widget.Label
	logLines    binding.StringList
	logList     *widget.List

	settingsDialog *SettingsDialog

	mu        sync.Mutex
	running   bool
	runCancel context.CancelFunc
}

// NewRootUI builds the window content and wires it up.
func NewRootUI(window fyne.Window, app fyne.App, logger *zap.Logger) *RootUI {
	if logger == nil {
		logger = zap.NewNop()
	}
	ui := &RootUI{
		window:   window,
		settings: NewSettings(app),
		logger:   logger,
		logLines: binding.NewStringList(),
	}
	ui.settingsDialog = NewSettingsDialog(ui.settings, window)
	ui.buildUI()
	ui.restoreState()

	window.SetCloseIntercept(ui.onClose)
	window.Resize(fyne.NewSize(windowWidth, windowHeight))
	return ui
}

func (ui *RootUI) buildUI() {
	ui.urlEntry = widget.NewMultiLineEntry()
	ui.urlEntry.SetPlaceHolder("One URL per line; lines starting with # are ignored")
	ui.urlEntry.Wrapping = fyne.TextWrapOff
	ui.urlCount = widget.NewLabel("0 URLs")
	ui.urlEntry.OnChanged = func(string) { ui.updateURLCount() }

	loadBtn := widget.NewButton("Load from File", ui.onLoadURLs)
	saveBtn := widget.NewButton("Save to File", ui.onSaveURLs)
	clearBtn := widget.NewButton("Clear", func() { ui.urlEntry.SetText("") })
	urlButtons := container.NewHBox(loadBtn, saveBtn, clearBtn, ui.urlCount)

	urlSection := container.NewBorder(
		widget.NewLabel("URLs (one per line)"), urlButtons, nil, nil,
		container.NewScroll(ui.urlEntry),
	)

	ui.startBtn = widget.NewButton("Start Download", ui.onStart)
	ui.stopBtn = widget.NewButton("Stop", ui.onStop)
	ui.stopBtn.Disable()
	settingsBtn := widget.NewButton("Settings...", ui.settingsDialog.Show)
	clearLogBtn := widget.NewButton("Clear Log", func() { ui.logLines.Set(nil) })
	ui.statusLabel = widget.NewLabel("Ready")
	controls := container.NewHBox(ui.startBtn, ui.stopBtn, settingsBtn, clearLogBtn, ui.statusLabel)

	ui.logList = widget.NewListWithData(ui.logLines,
		func() fyne.CanvasObject {
			l := widget.NewLabel("")
			l.TextStyle = fyne.TextStyle{Monospace: true}
			return l
		},
		func(item binding.DataItem, obj fyne.CanvasObject) {
			s, _ := item.(binding.String).Get()
			obj.(*widget.Label).SetText(s)
		},
	)
	logSection := container.NewBorder(widget.NewLabel("Log Output"), nil, nil, nil, ui.logList)

	split := container.NewVSplit(urlSection, logSection)
	split.SetOffset(0.4)

	ui.window.SetContent(container.NewBorder(nil, controls, nil, nil, split))
}

// restoreState brings back the URL list from the previous session.
func (ui *RootUI) restoreState() {
	if saved := ui.settings.URLList(); saved != "" {
		ui.urlEntry.SetText(saved)
	}
	ui.updateURLCount()
}

func (ui *RootUI) updateURLCount() {
	targets, _ := run.ReadTargets(strings.NewReader(ui.urlEntry.Text))
	ui.urlCount.SetText(fmt.Sprintf("%d URLs", len(targets)))
}

func (ui *RootUI) onLoadURLs() {
	dialog.ShowFileOpen(ui.handleLoadURLs, ui.window)
}

func (ui *RootUI) handleLoadURLs(rc fyne.URIReadCloser, err error) {
	if err != nil {
		ui.logger.Warn("load URL list", zap.Error(err))
		dialog.ShowError(err, ui.window)
		return
	}
	if rc == nil {
		return // dialog dismissed
	}
	defer rc.Close()
	data, rerr := io.ReadAll(rc)
	if rerr != nil {
		ui.logger.Warn("load URL list", zap.Error(rerr))
		dialog.ShowError(rerr, ui.window)
		return
	}
	ui.urlEntry.SetText(string(data))
	ui.appendLog(fmt.Sprintf("Loaded URLs from: %s", rc.URI().Path()))
}

func (ui *RootUI) onSaveURLs() {
	dialog.ShowFileSave(ui.handleSaveURLs, ui.window)
}

func (ui *RootUI) handleSaveURLs(wc fyne.URIWriteCloser, err error) {
	if err != nil {
		ui.logger.Warn("save URL list", zap.Error(err))
		dialog.ShowError(err, ui.window)
		return
	}
	if wc == nil {
		return // dialog dismissed
	}
	defer wc.Close()
	if _, werr := wc.Write([]byte(ui.urlEntry.Text)); werr != nil {
		ui.logger.Warn("save URL list", zap.Error(werr))
		dialog.ShowError(werr, ui.window)
		return
	}
	ui.appendLog(fmt.Sprintf("Saved URLs to: %s", wc.URI().Path()))
}

func (ui *RootUI) onStart() {
	targets, err := run.ReadTargets(strings.NewReader(ui.urlEntry.Text))
	if err != nil {
		dialog.ShowError(err, ui.window)
		return
	}
	if len(targets) == 0 {
		dialog.ShowInformation("No URLs", "Please add at least one URL.", ui.window)
		return
	}

	cfg, err := ui.settings.RunConfig()
	if err != nil {
		dialog.ShowError(err, ui.window)
		return
	}
	ui.settings.SetURLList(ui.urlEntry.Text)

	execPath, err := browser.Resolve(cfg.Browser, cfg.BrowserPath)
	if err != nil {
		dialog.ShowError(err, ui.window)
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	ui.mu.Lock()
	ui.running = true
	ui.runCancel = cancel
	ui.mu.Unlock()

	ui.startBtn.Disable()
	ui.stopBtn.Enable()
	ui.statusLabel.SetText("Downloading...")

	go ui.runWorker(ctx, cfg, execPath, targets)
}

func (ui *RootUI) onStop() {
	ui.mu.Lock()
	cancel := ui.runCancel
	ui.mu.Unlock()
	if cancel != nil {
		cancel()
	}
	ui.stopBtn.Disable()
	ui.statusLabel.SetText("Stopping after the current attempt...")
}

// runWorker runs the orchestrator off the UI thread; all updates cross back
// via fyne.Do.
func (ui *RootUI) runWorker(ctx context.Context, cfg *config.Config, execPath string, targets []model.Target) {
	defer ui.runFinished()

	bcfg := browser.DefaultConfig()
	bcfg.ExecPath = execPath
	bcfg.DownloadDir = cfg.DownloadDir
	bcfg.Headless = cfg.Headless
	bcfg.PageTimeout = cfg.PageTimeout()
	bcfg.DownloadTimeout = cfg.DownloadTimeout()

	session, err := browser.New(bcfg, ui.logger)
	if err != nil {
		ui.appendLog(fmt.Sprintf("✗ FATAL: %v", err))
		fyne.Do(func() { dialog.ShowError(err, ui.window) })
		return
	}
	defer session.Close()

	ui.appendLog(fmt.Sprintf("Starting downloads: %d URLs -> %s", len(targets), cfg.DownloadDir))
	orch := run.New(cfg, session, run.SinkFunc(ui.publish), ui.logger)
	orch.Run(ctx, targets)
}

func (ui *RootUI) runFinished() {
	ui.mu.Lock()
	ui.running = false
	if ui.runCancel != nil {
		ui.runCancel()
		ui.runCancel = nil
	}
	ui.mu.Unlock()

	fyne.Do(func() {
		ui.startBtn.Enable()
		ui.stopBtn.Disable()
		ui.statusLabel.SetText("Ready")
	})
}

// publish renders one orchestrator event into the log view. Called from the
// worker goroutine.
func (ui *RootUI) publish(e run.Event) {
	switch e.Kind {
	case run.EventTargetStarted:
		ui.appendLog(fmt.Sprintf("[%d/%d] Opening: %s", e.Index, e.Total, e.Target))
		fyne.Do(func() {
			ui.statusLabel.SetText(fmt.Sprintf("Downloading %d/%d...", e.Index, e.Total))
		})
	case run.EventAttemptFinished:
		if e.Attempt.Outcome == model.OutcomeSuccess {
			ui.appendLog(fmt.Sprintf("✓ Complete: %s (%d bytes)", e.Attempt.File.Name, e.Attempt.File.Size))
		} else {
			ui.appendLog(fmt.Sprintf("✗ Attempt %d failed: %s", e.Attempt.Number, e.Attempt.Error))
		}
	case run.EventTargetFinished:
		if e.Result != nil && !e.Result.Succeeded() {
			ui.appendLog(fmt.Sprintf("✗ Giving up on %s", e.Target))
		}
	case run.EventRunFinished:
		ui.showSummary(e.Summary)
	}
}

func (ui *RootUI) showSummary(s *model.Summary) {
	if s == nil {
		return
	}
	ui.appendLog("==================================================")
	ui.appendLog(fmt.Sprintf("Total: %d | Success: %d | Failed: %d", s.Total, s.Succeeded, s.Failed))
	if s.Stopped {
		ui.appendLog(fmt.Sprintf("Stopped by user after %d of %d targets", s.Processed(), s.Total))
	}
	for _, r := range s.FailedResults() {
		ui.appendLog(fmt.Sprintf("  failed: %s (%s)", r.Target, r.LastError()))
	}

	msg := fmt.Sprintf("%d succeeded, %d failed.\nFiles saved to %s", s.Succeeded, s.Failed, s.DownloadDir)
	fyne.Do(func() {
		dialog.ShowInformation("Download Summary", msg, ui.window)
	})
}

// appendLog adds a timestamped line to the log view. Safe from any goroutine.
func (ui *RootUI) appendLog(message string) {
	line := fmt.Sprintf("[%s] %s", time.Now().Format("15:04:05"), message)
	fyne.Do(func() {
		ui.logLines.Append(line)
		ui.logList.ScrollToBottom()
	})
}

func (ui *RootUI) onClose() {
	ui.mu.Lock()
	running := ui.running
	cancel := ui.runCancel
	ui.mu.Unlock()

	if !running {
		ui.window.Close()
		return
	}
	dialog.ShowConfirm("Quit", "Download in progress. Stop and quit?", func(ok bool) {
		if !ok {
			return
		}
		if cancel != nil {
			cancel()
		}
		ui.window.Close()
	}, ui.window)
}
