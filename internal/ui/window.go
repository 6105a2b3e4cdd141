// Package ui implements the desktop window around the batch splitter.
package ui

import (
	"context"
	"errors"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"

	"github.com/oszuidwest/zwfm-wavsplit/internal/scheduler"
	"github.com/oszuidwest/zwfm-wavsplit/internal/splitter"
	"github.com/oszuidwest/zwfm-wavsplit/internal/state"
	"github.com/oszuidwest/zwfm-wavsplit/internal/utils"
	"github.com/oszuidwest/zwfm-wavsplit/pkg/logger"
)

const appID = "nl.zuidwest.wavsplit"

// Window is the main application window. All widget mutations happen on the
// Fyne event thread; worker events arrive through the message pump and are
// rewrapped with fyne.Do.
type Window struct {
	app    fyne.App
	window fyne.Window

	service   *splitter.Service
	queue     *splitter.Queue
	pump      *scheduler.MessagePump
	appState  *state.State
	statePath string

	inputEntry  *widget.Entry
	outputEntry *widget.Entry
	progressBar *widget.ProgressBar
	splitBtn    *widget.Button
	openBtn     *widget.Button
}

// New builds the application window and wires the event pump.
func New(service *splitter.Service, queue *splitter.Queue, appState *state.State, statePath string) *Window {
	a := app.NewWithID(appID)

	w := &Window{
		app:       a,
		window:    a.NewWindow("ZuidWest Audio Splitter"),
		service:   service,
		queue:     queue,
		appState:  appState,
		statePath: statePath,
	}
	w.buildUI()
	w.pump = scheduler.NewMessagePump(queue, w.handleEvent)

	return w
}

// Run shows the window and blocks until it is closed.
func (w *Window) Run() {
	w.pump.Start()
	w.window.ShowAndRun()
}

func (w *Window) buildUI() {
	w.inputEntry = widget.NewEntry()
	w.outputEntry = widget.NewEntry()

	inputBrowse := widget.NewButton("Browse", func() {
		w.browseFolder(w.inputEntry, w.appState.LastInputDir)
	})
	outputBrowse := widget.NewButton("Browse", func() {
		w.browseFolder(w.outputEntry, w.appState.LastOutputDir)
	})

	w.progressBar = widget.NewProgressBar()

	w.splitBtn = widget.NewButton("Split Audio Files", w.startSplit)
	w.openBtn = widget.NewButton("Open Output Directory", w.openOutputDir)
	w.openBtn.Disable()

	content := container.NewVBox(
		widget.NewLabel("Input Directory:"),
		container.NewBorder(nil, nil, nil, inputBrowse, w.inputEntry),
		widget.NewLabel("Output Directory:"),
		container.NewBorder(nil, nil, nil, outputBrowse, w.outputEntry),
		widget.NewSeparator(),
		w.progressBar,
		w.splitBtn,
		w.openBtn,
	)

	w.window.SetContent(content)
	w.window.Resize(fyne.NewSize(520, 300))
	w.window.SetCloseIntercept(w.close)
}

// browseFolder opens a folder picker starting at initialDir and writes the
// selection into entry. The selection also becomes the starting location of
// both pickers for the next time.
func (w *Window) browseFolder(entry *widget.Entry, initialDir string) {
	d := dialog.NewFolderOpen(func(uri fyne.ListableURI, err error) {
		if err != nil || uri == nil {
			return
		}
		path := uri.Path()
		entry.SetText(path)
		w.appState.LastInputDir = path
		w.appState.LastOutputDir = path
	}, w.window)

	if lister, err := storage.ListerForURI(storage.NewFileURI(initialDir)); err == nil {
		d.SetLocation(lister)
	}
	d.Show()
}

// startSplit validates the directory fields and launches one batch on a
// background goroutine. The outcome arrives through the queue.
func (w *Window) startSplit() {
	inputDir := w.inputEntry.Text
	outputDir := w.outputEntry.Text
	if inputDir == "" || outputDir == "" {
		dialog.ShowError(errors.New("Please select both input and output directories."), w.window)
		return
	}

	w.splitBtn.Disable()
	w.progressBar.SetValue(0)

	go func() {
		// Results and errors are reported through the queue.
		_, _ = w.service.Run(context.Background(), inputDir, outputDir)
	}()
}

// handleEvent runs on the pump goroutine.
func (w *Window) handleEvent(ev splitter.Event) {
	fyne.Do(func() {
		switch ev.Kind {
		case splitter.EventProgress:
			w.progressBar.SetValue(float64(ev.Percent) / 100)
		case splitter.EventInfo:
			dialog.ShowInformation(ev.Title, ev.Message, w.window)
			w.openBtn.Enable()
		case splitter.EventError:
			dialog.ShowError(errors.New(ev.Message), w.window)
		case splitter.EventDone:
			w.splitBtn.Enable()
		}
	})
}

func (w *Window) openOutputDir() {
	dir := w.outputEntry.Text
	if dir == "" {
		return
	}
	if err := utils.OpenFolder(dir); err != nil {
		logger.Error("Failed to open output directory %s: %v", dir, err)
	}
}

// close saves the last-used directories and shuts the window down.
func (w *Window) close() {
	if err := w.appState.Save(w.statePath); err != nil {
		logger.Error("Failed to save state file %s: %v", w.statePath, err)
	}
	w.pump.Stop()
	w.window.Close()
}
