package keyboard

import evdev "github.com/gvalkov/golang-evdev"

var ev2key = map[int]string{
	evdev.KEY_A: "A",
	evdev.KEY_B: "B",
	evdev.KEY_C: "C",
	evdev.KEY_D: "D",
	evdev.KEY_E: "E",
	evdev.KEY_F: "F",
	evdev.KEY_G: "G",
	evdev.KEY_H: "H",
	evdev.KEY_I: "I",
	evdev.KEY_J: "J",
	evdev.KEY_K: "K",
	evdev.KEY_L: "L",
	evdev.KEY_M: "M",
	evdev.KEY_N: "N",
	evdev.KEY_O: "O",
	evdev.KEY_P: "P",
	evdev.KEY_Q: "Q",
	evdev.KEY_R: "R",
	evdev.KEY_S: "S",
	evdev.KEY_T: "T",
	evdev.KEY_U: "U",
	evdev.KEY_V: "V",
	evdev.KEY_W: "W",
	evdev.KEY_X: "X",
	evdev.KEY_Y: "Y",
	evdev.KEY_Z: "Z",

	evdev.KEY_0: "D0",
	evdev.KEY_1: "D1",
	evdev.KEY_2: "D2",
	evdev.KEY_3: "D3",
	evdev.KEY_4: "D4",
	evdev.KEY_5: "D5",
	evdev.KEY_6: "D6",
	evdev.KEY_7: "D7",
	evdev.KEY_8: "D8",
	evdev.KEY_9: "D9",

	evdev.KEY_F1:  "F1",
	evdev.KEY_F2:  "F2",
	evdev.KEY_F3:  "F3",
	evdev.KEY_F4:  "F4",
	evdev.KEY_F5:  "F5",
	evdev.KEY_F6:  "F6",
	evdev.KEY_F7:  "F7",
	evdev.KEY_F8:  "F8",
	evdev.KEY_F9:  "F9",
	evdev.KEY_F10: "F10",
	evdev.KEY_F11: "F11",
	evdev.KEY_F12: "F12",

	evdev.KEY_ESC:        "Escape",
	evdev.KEY_ENTER:      "Return",
	evdev.KEY_SPACE:      "Space",
	evdev.KEY_TAB:        "Tab",
	evdev.KEY_BACKSPACE:  "Back",
	evdev.KEY_CAPSLOCK:   "Capital",
	evdev.KEY_LEFTSHIFT:  "LeftShift",
	evdev.KEY_RIGHTSHIFT: "RightShift",
	evdev.KEY_LEFTCTRL:   "LeftControl",
	evdev.KEY_RIGHTCTRL:  "RightControl",
	evdev.KEY_LEFTALT:    "LeftAlt",
	evdev.KEY_RIGHTALT:   "RightAlt",
	evdev.KEY_LEFTMETA:   "LeftWindowsKey",
	evdev.KEY_RIGHTMETA:  "RightWindowsKey",

	evdev.KEY_UP:    "Up",
	evdev.KEY_DOWN:  "Down",
	evdev.KEY_LEFT:  "Left",
	evdev.KEY_RIGHT: "Right",

	evdev.KEY_INSERT:     "Insert",
	evdev.KEY_DELETE:     "Delete",
	evdev.KEY_HOME:       "Home",
	evdev.KEY_END:        "End",
	evdev.KEY_PAGEUP:     "PageUp",
	evdev.KEY_PAGEDOWN:   "PageDown",
	evdev.KEY_SYSRQ:      "PrintScreen",
	evdev.KEY_SCROLLLOCK: "ScrollLock",
	evdev.KEY_PAUSE:      "Pause",

	evdev.KEY_MINUS:      "Minus",
	evdev.KEY_EQUAL:      "Equals",
	evdev.KEY_LEFTBRACE:  "LeftBracket",
	evdev.KEY_RIGHTBRACE: "RightBracket",
	evdev.KEY_SEMICOLON:  "Semicolon",
	evdev.KEY_APOSTROPHE: "Apostrophe",
	evdev.KEY_GRAVE:      "Grave",
	evdev.KEY_BACKSLASH:  "Backslash",
	evdev.KEY_COMMA:      "Comma",
	evdev.KEY_DOT:        "Period",
	evdev.KEY_SLASH:      "Slash",

	evdev.KEY_NUMLOCK:    "NumberLock",
	evdev.KEY_KP0:        "NumberPad0",
	evdev.KEY_KP1:        "NumberPad1",
	evdev.KEY_KP2:        "NumberPad2",
	evdev.KEY_KP3:        "NumberPad3",
	evdev.KEY_KP4:        "NumberPad4",
	evdev.KEY_KP5:        "NumberPad5",
	evdev.KEY_KP6:        "NumberPad6",
	evdev.KEY_KP7:        "NumberPad7",
	evdev.KEY_KP8:        "NumberPad8",
	evdev.KEY_KP9:        "NumberPad9",
	evdev.KEY_KPPLUS:     "Add",
	evdev.KEY_KPMINUS:    "Subtract",
	evdev.KEY_KPASTERISK: "Multiply",
	evdev.KEY_KPSLASH:    "Divide",
	evdev.KEY_KPDOT:      "Decimal",
	evdev.KEY_KPENTER:    "NumberPadEnter",
}

func keyNames() []string {
	names := make([]string, 0, len(ev2key))
	for _, n := range ev2key {
		names = append(names, n)
	}
	return names
}
