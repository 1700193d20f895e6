package ui

import (
	"fmt"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/webgrab/webgrab/internal/config"
)

// SettingsDialog edits the run configuration between runs. Values persist
// via Fyne preferences and are never touched mid-run.
type SettingsDialog struct {
	settings *Settings
	window   fyne.Window
	dialog   *dialog.ConfirmDialog

	downloadDirEntry     *widget.Entry
	selectorEntry        *widget.Entry
	presetSelect         *widget.Select
	retriesEntry         *widget.Entry
	delayEntry           *widget.Entry
	pageTimeoutEntry     *widget.Entry
	downloadTimeoutEntry *widget.Entry
	headlessCheck        *widget.Check
	browserSelect        *widget.Select
	browserPathEntry     *widget.Entry
}

// NewSettingsDialog creates the dialog bound to the given settings store.
func NewSettingsDialog(settings *Settings, window fyne.Window) *SettingsDialog {
	sd := &SettingsDialog{settings: settings, window: window}
	sd.createUI()
	return sd
}

// Show loads current values and displays the dialog.
func (sd *SettingsDialog) Show() {
	sd.loadCurrentSettings()
	sd.dialog.Show()
}

func (sd *SettingsDialog) createUI() {
	sd.downloadDirEntry = widget.NewEntry()
	sd.downloadDirEntry.SetPlaceHolder("Download directory path")
	browseDirBtn := widget.NewButton("Browse", sd.onBrowseDirectory)
	downloadDirRow := container.NewBorder(nil, nil, nil, browseDirBtn, sd.downloadDirEntry)

	sd.selectorEntry = widget.NewEntry()
	sd.selectorEntry.SetPlaceHolder(config.DefaultSelector)
	sd.presetSelect = widget.NewSelect(SelectorPresets, func(preset string) {
		sd.selectorEntry.SetText(preset)
	})
	sd.presetSelect.PlaceHolder = "Presets"
	selectorRow := container.NewBorder(nil, nil, nil, sd.presetSelect, sd.selectorEntry)

	sd.retriesEntry = widget.NewEntry()
	sd.retriesEntry.SetPlaceHolder("0-5")
	sd.delayEntry = widget.NewEntry()
	sd.delayEntry.SetPlaceHolder("seconds")
	sd.pageTimeoutEntry = widget.NewEntry()
	sd.pageTimeoutEntry.SetPlaceHolder("seconds")
	sd.downloadTimeoutEntry = widget.NewEntry()
	sd.downloadTimeoutEntry.SetPlaceHolder("seconds")

	sd.headlessCheck = widget.NewCheck("Headless mode (hide browser window)", nil)

	sd.browserSelect = widget.NewSelect(config.KnownBrowsers, func(choice string) {
		sd.updateBrowserPathState(choice)
	})
	sd.browserPathEntry = widget.NewEntry()
	sd.browserPathEntry.SetPlaceHolder("Executable path (browser = custom)")
	browseBrowserBtn := widget.NewButton("Browse", sd.onBrowseBrowser)
	browserPathRow := container.NewBorder(nil, nil, nil, browseBrowserBtn, sd.browserPathEntry)

	form := container.NewVBox(
		widget.NewLabel("Download Settings"),
		widget.NewSeparator(),
		widget.NewLabel("Download Folder:"),
		downloadDirRow,
		widget.NewLabel("Button Selector:"),
		selectorRow,
		widget.NewLabel("Max Retries:"),
		sd.retriesEntry,
		widget.NewLabel("Delay Between Downloads (sec):"),
		sd.delayEntry,
		widget.NewLabel("Page Load Timeout (sec):"),
		sd.pageTimeoutEntry,
		widget.NewLabel("Download Timeout (sec):"),
		sd.downloadTimeoutEntry,
		sd.headlessCheck,
		widget.NewSeparator(),
		widget.NewLabel("Browser"),
		widget.NewSeparator(),
		widget.NewLabel("Browser Type:"),
		sd.browserSelect,
		widget.NewLabel("Browser Path:"),
		browserPathRow,
	)

	sd.dialog = dialog.NewCustomConfirm("Settings", "Save", "Cancel",
		container.NewScroll(form), sd.onSave, sd.window)
	sd.dialog.Resize(fyne.NewSize(520, 560))
}

func (sd *SettingsDialog) loadCurrentSettings() {
	sd.downloadDirEntry.SetText(sd.settings.DownloadDir())
	sd.selectorEntry.SetText(sd.settings.Selector())
	sd.retriesEntry.SetText(strconv.Itoa(sd.settings.MaxRetries()))
	sd.delayEntry.SetText(strconv.Itoa(sd.settings.DelaySeconds()))
	sd.pageTimeoutEntry.SetText(strconv.Itoa(sd.settings.PageTimeoutSeconds()))
	sd.downloadTimeoutEntry.SetText(strconv.Itoa(sd.settings.DownloadTimeoutSeconds()))
	sd.headlessCheck.SetChecked(sd.settings.Headless())
	sd.browserSelect.SetSelected(sd.settings.Browser())
	sd.browserPathEntry.SetText(sd.settings.BrowserPath())
	sd.updateBrowserPathState(sd.settings.Browser())
}

func (sd *SettingsDialog) updateBrowserPathState(choice string) {
	if choice == config.BrowserCustom {
		sd.browserPathEntry.Enable()
	} else {
		sd.browserPathEntry.Disable()
	}
}

func (sd *SettingsDialog) onBrowseDirectory() {
	dialog.ShowFolderOpen(func(uri fyne.ListableURI, err error) {
		if err != nil {
			dialog.ShowError(err, sd.window)
			return
		}
		if uri == nil {
			return
		}
		sd.downloadDirEntry.SetText(uri.Path())
	}, sd.window)
}

func (sd *SettingsDialog) onBrowseBrowser() {
	dialog.ShowFileOpen(func(rc fyne.URIReadCloser, err error) {
		if err != nil {
			dialog.ShowError(err, sd.window)
			return
		}
		if rc == nil {
			return
		}
		rc.Close()
		sd.browserPathEntry.SetText(rc.URI().Path())
	}, sd.window)
}

// onSave validates every field before persisting; invalid values surface an
// error dialog instead of defaulting silently.
func (sd *SettingsDialog) onSave(save bool) {
	if !save {
		return
	}

	ints := map[string]*widget.Entry{
		"max retries":      sd.retriesEntry,
		"delay":            sd.delayEntry,
		"page timeout":     sd.pageTimeoutEntry,
		"download timeout": sd.downloadTimeoutEntry,
	}
	parsed := make(map[string]int, len(ints))
	for name, entry := range ints {
		n, err := strconv.Atoi(entry.Text)
		if err != nil || n < 0 {
			dialog.ShowError(fmt.Errorf("invalid %s: %q", name, entry.Text), sd.window)
			return
		}
		parsed[name] = n
	}
	if sd.selectorEntry.Text == "" {
		dialog.ShowError(fmt.Errorf("button selector must not be empty"), sd.window)
		return
	}

	sd.settings.SetDownloadDir(sd.downloadDirEntry.Text)
	sd.settings.SetSelector(sd.selectorEntry.Text)
	sd.settings.SetMaxRetries(parsed["max retries"])
	sd.settings.SetDelaySeconds(parsed["delay"])
	sd.settings.SetPageTimeoutSeconds(parsed["page timeout"])
	sd.settings.SetDownloadTimeoutSeconds(parsed["download timeout"])
	sd.settings.SetHeadless(sd.headlessCheck.Checked)
	sd.settings.SetBrowser(sd.browserSelect.Selected)
	sd.settings.SetBrowserPath(sd.browserPathEntry.Text)
}
