package main

import (
	"testing"

	"github.com/go-gl/glfw/v3.3/glfw"
)

func TestKeyMap(t *testing.T) {
	km := CreateKeyMap()
	var calls []string
	km.Bind("a", func() { calls = append(calls, "a") })
	km.BindAll([]string{"+", "="}, func() { calls = append(calls, "zoom") })
	for _, key := range []string{"a", "=", "b", "+"} {
		km.HandleKey(key)
	}
	want := []string{"a", "zoom", "zoom"}
	if len(calls) != len(want) {
		t.Fatalf("calls = %v, want %v", calls, want)
	}
	for i := range want {
		if calls[i] != want[i] {
			t.Fatalf("calls = %v, want %v", calls, want)
		}
	}
	if km.HandleKey("b") {
		t.Error("unbound key reported as handled")
	}
}

func TestKeyName(t *testing.T) {
	for _, tc := range []struct {
		key  glfw.Key
		mods glfw.ModifierKey
		want string
	}{
		{glfw.KeyF1, 0, "F1"},
		{glfw.KeyEscape, 0, "Escape"},
		{glfw.KeyKPEnter, 0, "Enter"},
		{glfw.KeyKPAdd, 0, "+"},
		{glfw.KeyKPSubtract, 0, "-"},
		{glfw.KeyLeft, glfw.ModControl, "C-Left"},
		{glfw.KeyF4, glfw.ModShift | glfw.ModAlt | glfw.ModControl, "C-M-S-F4"},
		{glfw.KeyLeftShift, glfw.ModShift, ""},
		{glfw.KeyRightControl, glfw.ModControl, ""},
	} {
		if got := KeyName(tc.key, 0, tc.mods); got != tc.want {
			t.Errorf("KeyName(%v, %v) = %q, want %q", tc.key, tc.mods, got, tc.want)
		}
	}
}

func TestWithModifiers(t *testing.T) {
	if got := withModifiers("=", glfw.ModShift); got != "S-=" {
		t.Errorf("got %q", got)
	}
	if got := withModifiers("w", glfw.ModAlt); got != "M-w" {
		t.Errorf("got %q", got)
	}
	if got := withModifiers("e", glfw.ModControl); got != "C-e" {
		t.Errorf("got %q", got)
	}
}
