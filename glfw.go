package main

import (
	"fmt"
	"runtime"

	gl "github.com/go-gl/gl/v3.1/gles2"
	"github.com/go-gl/glfw/v3.3/glfw"
)

const desiredFPS = 30

func init() {
	// GLFW must be driven from the main OS thread.
	runtime.LockOSThread()
}

type GlfwApp interface {
	Init() error
	IsRunning() bool
	OnKey(key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey)
	OnChar(char rune)
	OnMouseButton(button glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey)
	OnCursorPos(x, y float64)
	OnScroll(xoff, yoff float64)
	OnWindowSize(width, height int)
	OnFramebufferSize(width, height int)
	BgColor() (r, g, b, a float32)
	Render() error
	Update() error
	Close() error
}

func WithGL(windowTitle string, width, height int, app GlfwApp) error {
	err := glfw.Init()
	if err != nil {
		return err
	}
	defer glfw.Terminate()

	glfw.WindowHint(glfw.Resizable, glfw.True)
	glfw.WindowHint(glfw.Focused, glfw.True)
	glfw.WindowHint(glfw.DoubleBuffer, glfw.True)
	glfw.WindowHint(glfw.Visible, glfw.False)
	glfw.WindowHint(glfw.ClientAPI, glfw.OpenGLESAPI)
	glfw.WindowHint(glfw.ContextVersionMajor, 2)
	window, err := glfw.CreateWindow(width, height, windowTitle, nil, nil)
	if err != nil {
		return err
	}
	defer window.Destroy()
	if monitor := glfw.GetPrimaryMonitor(); monitor != nil {
		if mode := monitor.GetVideoMode(); mode != nil {
			window.SetPos((mode.Width-width)/2, (mode.Height-height)/2)
		}
	}
	window.Show()

	framebufferSizeCallback := func(w *glfw.Window, width, height int) {
		gl.Viewport(0, 0, int32(width), int32(height))
		app.OnFramebufferSize(width, height)
	}
	window.SetFramebufferSizeCallback(framebufferSizeCallback)
	window.SetSizeCallback(func(w *glfw.Window, width, height int) {
		app.OnWindowSize(width, height)
	})
	window.SetKeyCallback(func(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
		app.OnKey(key, scancode, action, mods)
	})
	window.SetCharCallback(func(w *glfw.Window, char rune) {
		app.OnChar(char)
	})
	window.SetMouseButtonCallback(func(w *glfw.Window, button glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
		app.OnMouseButton(button, action, mods)
	})
	window.SetCursorPosCallback(func(w *glfw.Window, x, y float64) {
		app.OnCursorPos(x, y)
	})
	window.SetScrollCallback(func(w *glfw.Window, xoff, yoff float64) {
		app.OnScroll(xoff, yoff)
	})
	window.SetCloseCallback(func(w *glfw.Window) {
		w.SetShouldClose(true)
	})
	window.MakeContextCurrent()
	if err := gl.Init(); err != nil {
		return fmt.Errorf("initialize OpenGL: %w", err)
	}
	logger.Debug("OpenGL context", "version", gl.GoStr(gl.GetString(gl.VERSION)))
	if err := app.Init(); err != nil {
		return err
	}
	defer app.Close()
	fbWidth, fbHeight := window.GetFramebufferSize()
	framebufferSizeCallback(window, fbWidth, fbHeight)
	winWidth, winHeight := window.GetSize()
	app.OnWindowSize(winWidth, winHeight)

	for app.IsRunning() && !window.ShouldClose() {
		start := glfw.GetTime()
		gl.ClearColor(app.BgColor())
		gl.Clear(gl.COLOR_BUFFER_BIT)
		if err := app.Render(); err != nil {
			return err
		}
		window.SwapBuffers()
		elapsedSeconds := glfw.GetTime() - start
		frameSeconds := 1.0 / desiredFPS
		if frameSeconds > elapsedSeconds {
			glfw.WaitEventsTimeout(frameSeconds - elapsedSeconds)
		} else {
			glfw.PollEvents()
		}
		if err := app.Update(); err != nil {
			return err
		}
	}
	return nil
}
