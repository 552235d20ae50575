package main

import (
	"image"
	"image/color"
	"slices"
	"strings"
	"unicode"

	"github.com/atotto/clipboard"
)

// Replaced in tests.
var (
	readClipboard  = clipboard.ReadAll
	writeClipboard = clipboard.WriteAll
)

type InputFieldCallbacks struct {
	onConfirm func()
	onCancel  func()
}

// InputField is a single line editor with Emacs style bindings. Only
// printable ASCII can be typed or yanked into it.
type InputField struct {
	runes     []rune
	point     int
	left      int
	keymap    KeyMap
	callbacks InputFieldCallbacks
}

func CreateInputField(callbacks InputFieldCallbacks) *InputField {
	f := &InputField{callbacks: callbacks}
	f.initKeymap()
	return f
}

func (f *InputField) initKeymap() {
	f.keymap = CreateKeyMap()

	f.keymap.Bind("Left", func() { f.AdvanceColumn(-1) })
	f.keymap.Bind("Right", func() { f.AdvanceColumn(1) })
	f.keymap.Bind("C-b", func() { f.AdvanceColumn(-1) })
	f.keymap.Bind("C-f", func() { f.AdvanceColumn(1) })
	f.keymap.Bind("Home", f.MoveToBOL)
	f.keymap.Bind("End", f.MoveToEOL)
	f.keymap.Bind("C-a", f.MoveToBOL)
	f.keymap.Bind("C-e", f.MoveToEOL)

	f.keymap.Bind("C-Left", f.WordLeft)
	f.keymap.Bind("C-Right", f.WordRight)
	f.keymap.Bind("M-b", f.WordLeft)
	f.keymap.Bind("M-f", f.WordRight)

	f.keymap.Bind("Backspace", func() { f.Backspace() })
	f.keymap.Bind("Delete", func() { f.DeleteRune() })
	f.keymap.Bind("C-d", func() { f.DeleteRune() })
	f.keymap.Bind("C-k", f.kill)
	f.keymap.Bind("C-y", f.yank)
	f.keymap.Bind("Enter", func() {
		if f.callbacks.onConfirm != nil {
			f.callbacks.onConfirm()
		}
	})
	cancel := func() {
		if f.callbacks.onCancel != nil {
			f.callbacks.onCancel()
		}
	}
	f.keymap.Bind("Escape", cancel)
	f.keymap.Bind("C-g", cancel)
}

func (f *InputField) HandleKey(key string) bool {
	return f.keymap.HandleKey(key)
}

func (f *InputField) SetText(text string) {
	f.runes = []rune(text)
	f.point = len(f.runes)
	f.left = 0
}

func (f *InputField) Text() string {
	return string(f.runes)
}

func (f *InputField) Point() int {
	return f.point
}

func (f *InputField) AtBOL() bool {
	return f.point == 0
}

func (f *InputField) AtEOL() bool {
	return f.point == len(f.runes)
}

func (f *InputField) CurrentRune() rune {
	if f.AtEOL() {
		return 0
	}
	return f.runes[f.point]
}

func (f *InputField) AdvanceColumn(amount int) {
	f.point = min(max(f.point+amount, 0), len(f.runes))
}

func (f *InputField) MoveToBOL() {
	f.point = 0
}

func (f *InputField) MoveToEOL() {
	f.point = len(f.runes)
}

func isWordConstituent(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

func (f *InputField) WordLeft() {
	if !f.AtBOL() {
		f.AdvanceColumn(-1)
	}
	for !f.AtBOL() && !isWordConstituent(f.CurrentRune()) {
		f.AdvanceColumn(-1)
	}
	m := f.point
	for !f.AtBOL() && isWordConstituent(f.CurrentRune()) {
		f.AdvanceColumn(-1)
	}
	if f.point != m && !isWordConstituent(f.CurrentRune()) {
		f.AdvanceColumn(1)
	}
}

func (f *InputField) WordRight() {
	for !f.AtEOL() && !isWordConstituent(f.CurrentRune()) {
		f.AdvanceColumn(1)
	}
	for !f.AtEOL() && isWordConstituent(f.CurrentRune()) {
		f.AdvanceColumn(1)
	}
}

func (f *InputField) InsertRune(r rune) {
	if r < 32 || r > 127 {
		return
	}
	f.runes = slices.Insert(f.runes, f.point, r)
	f.point++
}

func (f *InputField) InsertString(s string) {
	for _, r := range s {
		f.InsertRune(r)
	}
}

func (f *InputField) DeleteRune() (deleted rune) {
	if f.AtEOL() {
		return 0
	}
	deleted = f.runes[f.point]
	f.runes = slices.Delete(f.runes, f.point, f.point+1)
	return deleted
}

func (f *InputField) Backspace() (deleted rune) {
	if f.AtBOL() {
		return 0
	}
	f.AdvanceColumn(-1)
	return f.DeleteRune()
}

func (f *InputField) KillToEnd() (deleted []rune) {
	if f.AtEOL() {
		return nil
	}
	deleted = slices.Clone(f.runes[f.point:])
	f.runes = f.runes[:f.point]
	return deleted
}

func (f *InputField) kill() {
	deleted := f.KillToEnd()
	if len(deleted) == 0 {
		return
	}
	if err := writeClipboard(string(deleted)); err != nil {
		logger.Warn("clipboard write failed", "err", err)
	}
}

// yank inserts the first line of the clipboard at point.
func (f *InputField) yank() {
	text, err := readClipboard()
	if err != nil {
		logger.Warn("clipboard read failed", "err", err)
		return
	}
	if i := strings.IndexAny(text, "\r\n"); i >= 0 {
		text = text[:i]
	}
	f.InsertString(text)
}

func (f *InputField) OnChar(char rune) {
	f.InsertRune(char)
}

func (f *InputField) Reset() {
	f.runes = nil
	f.point = 0
	f.left = 0
}

func (f *InputField) ensureCursorVisible(width int) {
	if f.point < f.left {
		f.left = f.point
	}
	if f.point >= f.left+width {
		f.left = f.point - width + 1
	}
	f.left = max(f.left, 0)
}

// Render draws the visible part of the field into rect, one cell per
// rune, with the cursor cell highlighted.
func (f *InputField) Render(gdl *GlyphDrawList, rect image.Rectangle, fg, cursor color.NRGBA) {
	cellW, cellH := gdl.ga.CellSize()
	width := rect.Dx() / cellW
	if width <= 0 {
		return
	}
	f.ensureCursorVisible(width)
	for x := range width {
		idx := f.left + x
		px := rect.Min.X + x*cellW
		if idx == f.point {
			gdl.FillRect(image.Rect(px, rect.Min.Y, px+cellW, rect.Min.Y+cellH), cursor)
		}
		if idx < len(f.runes) {
			gdl.DrawRune(px, rect.Min.Y, f.runes[idx], fg)
		}
	}
}
