package main

import (
	"errors"
	"testing"
)

func typeInto(f *InputField, s string) {
	for _, r := range s {
		f.OnChar(r)
	}
}

func TestInputFieldEditing(t *testing.T) {
	f := CreateInputField(InputFieldCallbacks{})
	typeInto(f, "sin(x)")
	f.HandleKey("Left")
	f.HandleKey("Backspace")
	typeInto(f, "2*x")
	if got := f.Text(); got != "sin(2*x)" {
		t.Fatalf("Text = %q", got)
	}
	f.HandleKey("C-a")
	if f.Point() != 0 {
		t.Fatalf("Point = %d after C-a", f.Point())
	}
	f.HandleKey("C-d")
	typeInto(f, "c")
	f.HandleKey("End")
	if got := f.Text(); got != "cin(2*x)" || f.Point() != 8 {
		t.Fatalf("Text = %q, Point = %d", got, f.Point())
	}
}

func TestInputFieldIgnoresControlAndNonASCII(t *testing.T) {
	f := CreateInputField(InputFieldCallbacks{})
	typeInto(f, "x\n\t²y")
	if got := f.Text(); got != "xy" {
		t.Fatalf("Text = %q", got)
	}
}

func TestInputFieldWordMotion(t *testing.T) {
	f := CreateInputField(InputFieldCallbacks{})
	f.SetText("sqrt(abs(x))")
	f.HandleKey("M-b")
	if f.Point() != 9 {
		t.Fatalf("Point = %d after M-b, want 9", f.Point())
	}
	f.HandleKey("M-b")
	if f.Point() != 5 {
		t.Fatalf("Point = %d after second M-b, want 5", f.Point())
	}
	f.HandleKey("M-f")
	if f.Point() != 8 {
		t.Fatalf("Point = %d after M-f, want 8", f.Point())
	}
}

func TestInputFieldKillAndYank(t *testing.T) {
	var clip string
	savedRead, savedWrite := readClipboard, writeClipboard
	readClipboard = func() (string, error) { return clip, nil }
	writeClipboard = func(s string) error {
		clip = s
		return nil
	}
	defer func() { readClipboard, writeClipboard = savedRead, savedWrite }()

	f := CreateInputField(InputFieldCallbacks{})
	f.SetText("x*x+1")
	f.AdvanceColumn(-2)
	f.HandleKey("C-k")
	if f.Text() != "x*x" || clip != "+1" {
		t.Fatalf("Text = %q, clipboard = %q", f.Text(), clip)
	}
	f.HandleKey("C-a")
	f.HandleKey("C-y")
	if f.Text() != "+1x*x" {
		t.Fatalf("Text = %q after yank", f.Text())
	}

	clip = "cos(x)\nsecond line"
	f.SetText("")
	f.HandleKey("C-y")
	if f.Text() != "cos(x)" {
		t.Fatalf("Text = %q, want only the first clipboard line", f.Text())
	}

	readClipboard = func() (string, error) { return "", errors.New("no clipboard") }
	f.HandleKey("C-y")
	if f.Text() != "cos(x)" {
		t.Fatalf("Text = %q after failed yank", f.Text())
	}
}

func TestInputFieldCallbacks(t *testing.T) {
	var confirmed, cancelled int
	f := CreateInputField(InputFieldCallbacks{
		onConfirm: func() { confirmed++ },
		onCancel:  func() { cancelled++ },
	})
	f.HandleKey("Enter")
	f.HandleKey("Escape")
	f.HandleKey("C-g")
	if confirmed != 1 || cancelled != 2 {
		t.Fatalf("confirmed = %d, cancelled = %d", confirmed, cancelled)
	}
}

func TestInputFieldScroll(t *testing.T) {
	f := CreateInputField(InputFieldCallbacks{})
	f.SetText("0123456789")
	f.ensureCursorVisible(4)
	if f.left != 7 {
		t.Fatalf("left = %d, want 7", f.left)
	}
	f.MoveToBOL()
	f.ensureCursorVisible(4)
	if f.left != 0 {
		t.Fatalf("left = %d, want 0", f.left)
	}
}
