package main

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/mitchellh/go-homedir"

	"github.com/cellux/grapher/internal/export"
	"github.com/cellux/grapher/internal/expression"
)

const (
	welcomeMessage = `Welcome to grapher.
Enter the function you would like to graph in terms of x, e.g. sqrt(x).
Write products with *, as in 2*x.
Press Enter to plot it, Escape to exit. Press F1 in the graph for help.`
	addMessage = `Enter the function you would like to add in terms of x, e.g. sqrt(x).
Write products with *, as in 2*x.`
)

var ErrUnsupportedFormat = errors.New("unsupported image format")

func (app *App) welcomePrompt() *Prompt {
	return CreatePrompt("grapher: Enter Function", welcomeMessage, "", PromptCallbacks{
		onConfirm: func(text string) error {
			if text == "" {
				app.Quit()
				return nil
			}
			return app.reg.Add(text)
		},
		onCancel: app.Quit,
	})
}

// PromptAddFunction asks for a new function. Invalid input keeps the
// prompt open with the error shown; empty input adds nothing.
func (app *App) PromptAddFunction() {
	app.OpenPrompt(CreatePrompt("grapher: Add Function", addMessage, "", PromptCallbacks{
		onConfirm: func(text string) error {
			if text == "" {
				return nil
			}
			return app.reg.Add(text)
		},
	}))
}

// PromptDeleteFunction lists the functions and asks for the number of the
// one to remove.
func (app *App) PromptDeleteFunction() {
	if app.reg.Len() == 0 {
		app.SetNotice("there are no functions to delete")
		return
	}
	var sb strings.Builder
	sb.WriteString("Choose the function you want to delete (enter its number).")
	for i, source := range app.reg.List() {
		fmt.Fprintf(&sb, "\n%d. %s", i, source)
	}
	app.OpenPrompt(CreatePrompt("grapher: Delete Function", sb.String(), "", PromptCallbacks{
		onConfirm: func(text string) error {
			text = strings.TrimSpace(text)
			if text == "" {
				return nil
			}
			index, err := strconv.Atoi(text)
			if err != nil {
				return fmt.Errorf("%w: %q is not an integer", expression.ErrInvalidInput, text)
			}
			return app.reg.RemoveAt(index)
		},
	}))
}

// PromptSaveScreenshot asks where to save the window contents. A .png
// path is rendered off screen, everything else is read back from the
// frame buffer into a .bmp file.
func (app *App) PromptSaveScreenshot() {
	app.OpenPrompt(CreatePrompt("grapher: Save Screenshot", "File name (.bmp or .png):", defaultSavePath(".bmp"), PromptCallbacks{
		onConfirm: func(text string) error {
			if strings.TrimSpace(text) == "" {
				return nil
			}
			path, err := resolveSavePath(text)
			if err != nil {
				return err
			}
			if strings.EqualFold(filepath.Ext(path), ".png") {
				app.exportPNG(path)
			} else {
				// read back after the next frame is drawn, without the prompt
				app.pendingShot = path
			}
			return nil
		},
	}))
}

// ExportPNG renders the current view to the default PNG path.
func (app *App) ExportPNG() {
	app.exportPNG(defaultSavePath(".png"))
}

func (app *App) exportPNG(path string) {
	if app.exporting {
		app.SetNotice("an export is already running")
		return
	}
	if err := app.refreshScene(); err != nil {
		app.SetLastError(err)
		return
	}
	if app.png == nil {
		r, err := export.NewRenderer(logger)
		if err != nil {
			app.SetLastError(err)
			return
		}
		app.png = r
	}
	r, scene := app.png, app.scene
	app.SetNotice("exporting " + path)
	app.exporting = true
	go func() {
		err := r.WritePNG(path, scene)
		app.postEvent(func() {
			app.exporting = false
			app.reportSaved(path, err)
		})
	}()
}

func (app *App) reportSaved(path string, err error) {
	if err != nil {
		logger.Error("save failed", "path", path, "err", err)
		app.SetLastError(err)
		return
	}
	logger.Info("saved", "path", path)
	app.SetNotice("saved " + path)
}

// CopyFunctions puts the function list on the clipboard, one per line.
func (app *App) CopyFunctions() {
	if app.reg.Len() == 0 {
		app.SetNotice("there are no functions to copy")
		return
	}
	if err := writeClipboard(strings.Join(app.reg.List(), "\n")); err != nil {
		app.SetLastError(fmt.Errorf("copy to clipboard: %w", err))
		return
	}
	app.SetNotice(app.printer.Sprintf("copied %d functions to the clipboard", app.reg.Len()))
}

func (app *App) OpenNewWindow() {
	if err := app.spawn("-log-level", app.cfg.LogLevel); err != nil {
		app.SetLastError(err)
	}
}

func (app *App) ZoomIn() {
	if err := app.vp.ZoomIn(); err != nil {
		app.SetLastError(err)
		return
	}
	app.markDirty()
}

func (app *App) ZoomOut() {
	if err := app.vp.ZoomOut(); err != nil {
		app.SetLastError(err)
		return
	}
	app.markDirty()
}

// PanBy moves the view by fractions of the window size, in the same
// direction as a pointer drag.
func (app *App) PanBy(fx, fy float64) {
	width, height := app.vp.Size()
	app.vp.Pan(fx*float64(width), fy*float64(height))
	app.markDirty()
}

// ResetView restores the rectangle the program started with.
func (app *App) ResetView() {
	cfg := app.cfg
	if err := app.vp.SetRect(cfg.XMin, cfg.XMax, cfg.YMin, cfg.YMax); err != nil {
		app.SetLastError(err)
		return
	}
	app.markDirty()
}

// startInstance launches another copy of the running executable and does
// not wait for it.
func startInstance(args ...string) error {
	exe, err := os.Executable()
	if err != nil {
		return fmt.Errorf("locate executable: %w", err)
	}
	cmd := exec.Command(exe, args...)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start new window: %w", err)
	}
	return cmd.Process.Release()
}

// defaultSavePath is graph<ext> in the home directory, or in the working
// directory when the home directory is unknown.
func defaultSavePath(ext string) string {
	home, err := homedir.Dir()
	if err != nil {
		return "graph" + ext
	}
	return filepath.Join(home, "graph"+ext)
}

// resolveSavePath expands a leading ~ and appends .bmp when the name has
// no extension.
func resolveSavePath(name string) (string, error) {
	path, err := homedir.Expand(strings.TrimSpace(name))
	if err != nil {
		return "", err
	}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case "":
		path += ".bmp"
	case ".bmp", ".png":
	default:
		return "", fmt.Errorf("%w: %s (use .bmp or .png)", ErrUnsupportedFormat, ext)
	}
	return path, nil
}
