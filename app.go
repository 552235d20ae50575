package main

import (
	"context"
	_ "embed"
	"fmt"
	"image"
	"math"
	"strings"

	"github.com/go-gl/glfw/v3.3/glfw"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/cellux/grapher/internal/export"
	"github.com/cellux/grapher/internal/graph"
)

//go:embed assets/help.txt
var helpText string

// Event is the type of callback functions sent to the app's events channel
type Event func()

const (
	// panFraction is how much of the view an arrow key pans.
	panFraction = 0.1
	// scrollZoomBase is the span factor applied per scroll wheel notch.
	scrollZoomBase = 0.9

	gridLineWidth  = 1
	axisLineWidth  = 2
	curveLineWidth = 2
)

type App struct {
	cfg        *Config
	shouldExit bool

	reg       *graph.Registry
	vp        *graph.Viewport
	sceneOpts graph.SceneOptions
	scene     *graph.Scene
	dirty     bool

	lp         *LineProgram
	gridLines  *LineDrawList
	axisLines  *LineDrawList
	curveLines *LineDrawList
	atlas      *GlyphAtlas
	text       *GlyphDrawList
	png        *export.Renderer

	keymap        KeyMap
	currentPrompt *Prompt
	showHelp      bool
	// suppressChar swallows the char event that follows a key which
	// opened a prompt, so that "a" does not end up in the input field.
	suppressChar bool

	lastError error
	notice    string
	printer   *message.Printer

	winSize image.Point
	fbSize  image.Point

	cursorX, cursorY float64
	dragging         bool

	pendingShot string
	exporting   bool
	events      chan Event

	// spawn starts another instance of the program.
	spawn func(args ...string) error
}

// CreateApp sets up the registry and viewport from cfg. Functions given
// on the command line must compile; when there are none the window opens
// with a welcome prompt.
func CreateApp(cfg *Config) (*App, error) {
	vp, err := graph.NewViewport(cfg.XMin, cfg.XMax, cfg.YMin, cfg.YMax, cfg.Width, cfg.Height)
	if err != nil {
		return nil, err
	}
	app := &App{
		cfg: cfg,
		reg: graph.NewRegistry(),
		vp:  vp,
		sceneOpts: graph.SceneOptions{
			Samples: cfg.Samples,
			Step:    cfg.Step,
		},
		dirty:   true,
		printer: message.NewPrinter(language.English),
		winSize: image.Pt(cfg.Width, cfg.Height),
		fbSize:  image.Pt(cfg.Width, cfg.Height),
		events:  make(chan Event, 64),
		spawn:   startInstance,
	}
	app.reg.OnChange(app.markDirty)
	for _, source := range cfg.Functions {
		if err := app.reg.Add(source); err != nil {
			return nil, fmt.Errorf("function %q: %w", source, err)
		}
	}
	app.initKeymap()
	if app.reg.Len() == 0 {
		app.OpenPrompt(app.welcomePrompt())
	}
	return app, nil
}

func (app *App) initKeymap() {
	km := CreateKeyMap()
	km.BindAll([]string{"a", "S-a"}, app.PromptAddFunction)
	km.BindAll([]string{"d", "S-d"}, app.PromptDeleteFunction)
	km.BindAll([]string{"s", "S-s"}, app.PromptSaveScreenshot)
	km.BindAll([]string{"n", "S-n"}, app.OpenNewWindow)
	km.BindAll([]string{"+", "=", "S-="}, app.ZoomIn)
	km.BindAll([]string{"-"}, app.ZoomOut)
	km.BindAll([]string{"r", "S-r"}, app.ResetView)
	km.Bind("Left", func() { app.PanBy(panFraction, 0) })
	km.Bind("Right", func() { app.PanBy(-panFraction, 0) })
	km.Bind("Up", func() { app.PanBy(0, panFraction) })
	km.Bind("Down", func() { app.PanBy(0, -panFraction) })
	km.Bind("C-e", app.ExportPNG)
	km.Bind("M-w", app.CopyFunctions)
	km.Bind("F1", func() { app.showHelp = !app.showHelp })
	km.Bind("Escape", func() { app.showHelp = false })
	km.Bind("F4", app.Quit)
	km.Bind("C-q", app.Quit)
	app.keymap = km
}

func (app *App) SetLastError(err error) {
	app.lastError = err
	app.notice = ""
}

func (app *App) ClearLastError() {
	app.lastError = nil
}

func (app *App) SetNotice(notice string) {
	app.notice = notice
	app.lastError = nil
}

func (app *App) postEvent(ev Event) {
	app.events <- ev
}

func (app *App) drainEvents() {
	for {
		select {
		case ev := <-app.events:
			ev()
		default:
			return
		}
	}
}

func (app *App) markDirty() {
	app.dirty = true
}

func (app *App) Init() error {
	lp, err := CreateLineProgram()
	if err != nil {
		return err
	}
	app.lp = lp
	app.gridLines = lp.CreateDrawList(gridLineWidth)
	app.axisLines = lp.CreateDrawList(axisLineWidth)
	app.curveLines = lp.CreateDrawList(curveLineWidth)
	atlas, err := CreateGlyphAtlas()
	if err != nil {
		return err
	}
	app.atlas = atlas
	app.text = atlas.CreateDrawList()
	return nil
}

func (app *App) IsRunning() bool {
	return !app.shouldExit
}

func (app *App) Quit() {
	app.shouldExit = true
}

func (app *App) OnKey(key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
	if action != glfw.Press && action != glfw.Repeat {
		return
	}
	app.suppressChar = false
	name := KeyName(key, scancode, mods)
	if name == "" {
		return
	}
	app.HandleKey(name)
}

// HandleKey dispatches a named key. An open prompt receives every key;
// the help overlay is dismissed by any key.
func (app *App) HandleKey(key string) bool {
	if p := app.currentPrompt; p != nil {
		handled := p.HandleKey(key)
		if p.Closed() && app.currentPrompt == p {
			app.ClosePrompt()
		}
		return handled
	}
	if app.showHelp && key != "F4" && key != "C-q" {
		app.showHelp = false
		return true
	}
	app.ClearLastError()
	app.notice = ""
	if app.keymap.HandleKey(key) {
		app.suppressChar = true
		return true
	}
	return false
}

func (app *App) OnChar(char rune) {
	if app.suppressChar {
		app.suppressChar = false
		return
	}
	if app.currentPrompt != nil {
		app.currentPrompt.OnChar(char)
	}
}

func (app *App) OnMouseButton(button glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
	if button != glfw.MouseButtonLeft {
		return
	}
	switch action {
	case glfw.Press:
		app.dragging = app.currentPrompt == nil
	case glfw.Release:
		app.dragging = false
	}
}

func (app *App) OnCursorPos(x, y float64) {
	if app.dragging {
		app.vp.Pan(x-app.cursorX, y-app.cursorY)
		app.markDirty()
	}
	app.cursorX, app.cursorY = x, y
}

func (app *App) OnScroll(xoff, yoff float64) {
	if app.currentPrompt != nil || yoff == 0 {
		return
	}
	factor := math.Pow(scrollZoomBase, yoff)
	if err := app.vp.ZoomAt(factor, app.cursorX, app.cursorY); err != nil {
		app.SetLastError(err)
		return
	}
	app.markDirty()
}

func (app *App) OnWindowSize(width, height int) {
	logger.Debug("OnWindowSize", "width", width, "height", height)
	if width <= 0 || height <= 0 {
		// minimized
		return
	}
	if err := app.vp.Resize(width, height); err != nil {
		logger.Error("resize viewport", "err", err)
		return
	}
	app.winSize = image.Pt(width, height)
	app.markDirty()
}

func (app *App) OnFramebufferSize(width, height int) {
	logger.Debug("OnFramebufferSize", "width", width, "height", height)
	app.fbSize = image.Pt(width, height)
}

func (app *App) BgColor() (r, g, b, a float32) {
	c := glColor(graph.ColorBackground)
	return c[0], c[1], c[2], c[3]
}

// refreshScene rebuilds the scene after the view or the registry changed.
func (app *App) refreshScene() error {
	if !app.dirty && app.scene != nil {
		return nil
	}
	scene, err := graph.BuildScene(context.Background(), app.vp, app.reg, app.sceneOpts)
	if err != nil {
		return err
	}
	app.scene = scene
	app.dirty = false
	return nil
}

func (app *App) Render() error {
	if err := app.refreshScene(); err != nil {
		return err
	}
	app.renderScene(app.scene)
	if path := app.pendingShot; path != "" {
		app.pendingShot = ""
		app.saveScreenshot(path)
	}
	app.renderOverlays()
	return nil
}

func (app *App) renderScene(s *graph.Scene) {
	cx := (s.XMin + s.XMax) / 2
	cy := (s.YMin + s.YMax) / 2
	app.gridLines.Reset(cx, cy)
	for _, l := range s.Grid {
		app.gridLines.DrawLine(l.From, l.To, l.Color)
	}
	app.axisLines.Reset(cx, cy)
	for _, l := range s.Axes {
		app.axisLines.DrawLine(l.From, l.To, l.Color)
	}
	app.curveLines.Reset(cx, cy)
	for _, c := range s.Curves {
		for _, pl := range c.Polylines {
			app.curveLines.DrawPolyline(pl, c.Color)
		}
	}
	app.gridLines.Render(s.XMin, s.XMax, s.YMin, s.YMax)
	app.axisLines.Render(s.XMin, s.XMax, s.YMin, s.YMax)
	app.curveLines.Render(s.XMin, s.XMax, s.YMin, s.YMax)

	text := app.text
	text.Clear()
	ascent := app.atlas.Ascent()
	for _, l := range s.Labels {
		x, baseline := s.LabelOrigin(l, float64(app.atlas.TextWidth(l.Text)), float64(ascent))
		text.DrawString(int(math.Round(x)), int(math.Round(baseline)), l.Text, l.Color)
	}
	app.renderLegend(s)
	text.Render(app.winSize.X, app.winSize.Y)
}

// renderLegend lists the functions in the top left corner in the colour
// of their curves.
func (app *App) renderLegend(s *graph.Scene) {
	if len(s.Curves) == 0 {
		return
	}
	cellW, cellH := app.atlas.CellSize()
	lines := make([]string, len(s.Curves))
	width := 0
	for i, c := range s.Curves {
		lines[i] = fmt.Sprintf("%d. %s", c.Index, c.Source)
		width = max(width, app.atlas.TextWidth(lines[i]))
	}
	pad := cellW / 2
	panel := image.Rect(0, 0, width+2*pad, len(lines)*cellH+2*pad)
	app.text.FillRect(panel, ColorPanel)
	for i, c := range s.Curves {
		app.text.DrawString(pad, pad+i*cellH+app.atlas.Ascent(), lines[i], c.Color)
	}
}

func (app *App) renderOverlays() {
	text := app.text
	text.Clear()
	width, height := app.winSize.X, app.winSize.Y
	if app.showHelp {
		app.renderHelp(width, height)
	}
	if app.currentPrompt != nil {
		app.currentPrompt.Render(text, width, height)
	} else {
		app.renderStatusLine(width, height)
	}
	text.Render(width, height)
}

func (app *App) renderHelp(width, height int) {
	cellW, cellH := app.atlas.CellSize()
	lines := strings.Split(strings.TrimRight(helpText, "\n"), "\n")
	textW := 0
	for _, line := range lines {
		textW = max(textW, app.atlas.TextWidth(line))
	}
	pad := cellW
	w := textW + 2*pad
	h := len(lines)*cellH + 2*pad
	x0 := max(0, (width-w)/2)
	y0 := max(0, (height-h)/2)
	panel := image.Rect(x0, y0, x0+w, y0+h)
	app.text.FillRect(panel, ColorPanelBorder)
	app.text.FillRect(panel.Inset(1), ColorPanel)
	for i, line := range lines {
		app.text.DrawString(x0+pad, y0+pad+i*cellH+app.atlas.Ascent(), line, ColorText)
	}
}

// StatusText is the text of the status line: the last error, a notice,
// or the coordinate under the pointer.
func (app *App) StatusText() string {
	if app.lastError != nil {
		return firstLine(app.lastError.Error())
	}
	if app.notice != "" {
		return app.notice
	}
	x, y := app.vp.ToCoord(app.cursorX, app.cursorY)
	return app.printer.Sprintf("x = %.4f  y = %.4f  functions: %d  (F1: help)", x, y, app.reg.Len())
}

func (app *App) renderStatusLine(width, height int) {
	cellW, cellH := app.atlas.CellSize()
	bar := image.Rect(0, height-cellH-cellW/2, width, height)
	app.text.FillRect(bar, ColorStatusBar)
	fg := ColorText
	switch {
	case app.lastError != nil:
		fg = ColorError
	case app.notice != "":
		fg = ColorNotice
	}
	app.text.DrawString(cellW/2, bar.Min.Y+cellW/4+app.atlas.Ascent(), app.StatusText(), fg)
}

func (app *App) Update() error {
	app.drainEvents()
	return nil
}

func (app *App) OpenPrompt(prompt *Prompt) {
	app.currentPrompt = prompt
	app.dragging = false
}

func (app *App) ClosePrompt() {
	app.currentPrompt = nil
}

func (app *App) Close() error {
	logger.Debug("Close")
	if app.atlas != nil {
		if err := app.atlas.Close(); err != nil {
			return err
		}
	}
	if app.lp != nil {
		if err := app.lp.Close(); err != nil {
			return err
		}
	}
	return nil
}
