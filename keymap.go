package main

import "github.com/go-gl/glfw/v3.3/glfw"

type KeyMap map[string]func()

func CreateKeyMap() KeyMap {
	return KeyMap{}
}

func (km KeyMap) HandleKey(key string) bool {
	if handler, ok := km[key]; ok {
		handler()
		return true
	}
	return false
}

func (km KeyMap) Bind(key string, handler func()) {
	km[key] = handler
}

// BindAll binds the same handler to several keys.
func (km KeyMap) BindAll(keys []string, handler func()) {
	for _, key := range keys {
		km[key] = handler
	}
}

var namedKeys = map[glfw.Key]string{
	glfw.KeySpace:      "Space",
	glfw.KeyEscape:     "Escape",
	glfw.KeyEnter:      "Enter",
	glfw.KeyKPEnter:    "Enter",
	glfw.KeyTab:        "Tab",
	glfw.KeyBackspace:  "Backspace",
	glfw.KeyInsert:     "Insert",
	glfw.KeyDelete:     "Delete",
	glfw.KeyRight:      "Right",
	glfw.KeyLeft:       "Left",
	glfw.KeyDown:       "Down",
	glfw.KeyUp:         "Up",
	glfw.KeyPageUp:     "PageUp",
	glfw.KeyPageDown:   "PageDown",
	glfw.KeyHome:       "Home",
	glfw.KeyEnd:        "End",
	glfw.KeyKPAdd:      "+",
	glfw.KeyKPSubtract: "-",
	glfw.KeyF1:         "F1",
	glfw.KeyF2:         "F2",
	glfw.KeyF3:         "F3",
	glfw.KeyF4:         "F4",
	glfw.KeyF5:         "F5",
	glfw.KeyF6:         "F6",
	glfw.KeyF7:         "F7",
	glfw.KeyF8:         "F8",
	glfw.KeyF9:         "F9",
	glfw.KeyF10:        "F10",
	glfw.KeyF11:        "F11",
	glfw.KeyF12:        "F12",
}

// KeyName turns a GLFW key event into the name used in key maps, such as
// "a", "S-=", "C-e" or "M-w". Modifier keys on their own yield "".
func KeyName(key glfw.Key, scancode int, mods glfw.ModifierKey) string {
	var name string
	switch key {
	case glfw.KeyLeftShift, glfw.KeyLeftControl, glfw.KeyLeftAlt, glfw.KeyLeftSuper:
		return ""
	case glfw.KeyRightShift, glfw.KeyRightControl, glfw.KeyRightAlt, glfw.KeyRightSuper:
		return ""
	}
	if n, ok := namedKeys[key]; ok {
		name = n
	} else {
		name = glfw.GetKeyName(key, scancode)
	}
	if name == "" {
		return ""
	}
	return withModifiers(name, mods)
}

func withModifiers(name string, mods glfw.ModifierKey) string {
	if mods&glfw.ModShift != 0 {
		name = "S-" + name
	}
	if mods&glfw.ModAlt != 0 {
		name = "M-" + name
	}
	if mods&glfw.ModControl != 0 {
		name = "C-" + name
	}
	return name
}
