package main

import (
	"image"
	"strings"
)

type PromptCallbacks struct {
	// onConfirm receives the entered text. A non-nil error keeps the
	// prompt open and is shown below the input line.
	onConfirm func(string) error
	onCancel  func()
}

// Prompt is a modal text prompt drawn over the graph: a title, a few
// lines of explanation and an input field.
type Prompt struct {
	title     string
	message   []string
	input     *InputField
	err       error
	closed    bool
	callbacks PromptCallbacks
}

func CreatePrompt(title, message, defaultText string, callbacks PromptCallbacks) *Prompt {
	p := &Prompt{
		title:     title,
		callbacks: callbacks,
	}
	if message != "" {
		p.message = strings.Split(message, "\n")
	}
	p.input = CreateInputField(InputFieldCallbacks{
		onConfirm: p.handleConfirm,
		onCancel:  p.handleCancel,
	})
	p.input.SetText(defaultText)
	return p
}

func (p *Prompt) Title() string {
	return p.title
}

func (p *Prompt) Text() string {
	return p.input.Text()
}

func (p *Prompt) SetText(text string) {
	p.input.SetText(text)
}

// Err returns the error of the last rejected confirmation.
func (p *Prompt) Err() error {
	return p.err
}

func (p *Prompt) Closed() bool {
	return p.closed
}

func (p *Prompt) HandleKey(key string) bool {
	return p.input.HandleKey(key)
}

func (p *Prompt) OnChar(char rune) {
	p.input.OnChar(char)
}

func (p *Prompt) handleConfirm() {
	if p.callbacks.onConfirm != nil {
		if err := p.callbacks.onConfirm(p.input.Text()); err != nil {
			p.err = err
			return
		}
	}
	p.err = nil
	p.closed = true
}

func (p *Prompt) handleCancel() {
	p.closed = true
	if p.callbacks.onCancel != nil {
		p.callbacks.onCancel()
	}
}

// Render draws the prompt as a panel along the bottom of a window of the
// given size.
func (p *Prompt) Render(gdl *GlyphDrawList, width, height int) {
	cellW, cellH := gdl.ga.CellSize()
	lines := 2 + len(p.message)
	if p.err != nil {
		lines++
	}
	pad := cellW
	panel := image.Rect(0, height-lines*cellH-2*pad, width, height)
	gdl.FillRect(panel, ColorPanelBorder)
	gdl.FillRect(panel.Inset(1), ColorPanel)

	x := pad
	y := panel.Min.Y + pad
	ascent := gdl.ga.Ascent()
	gdl.DrawString(x, y+ascent, p.title, ColorTitle)
	y += cellH
	for _, line := range p.message {
		gdl.DrawString(x, y+ascent, line, ColorText)
		y += cellH
	}
	const marker = "> "
	gdl.DrawString(x, y+ascent, marker, ColorText)
	inputX := x + gdl.ga.TextWidth(marker)
	p.input.Render(gdl, image.Rect(inputX, y, width-pad, y+cellH), ColorText, ColorCursor)
	y += cellH
	if p.err != nil {
		gdl.DrawString(x, y+ascent, firstLine(p.err.Error()), ColorError)
	}
}

func firstLine(s string) string {
	if i := strings.IndexAny(s, "\r\n"); i >= 0 {
		return s[:i]
	}
	return s
}
