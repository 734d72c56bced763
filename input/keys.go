package input

import "strconv"

// Key is a keyboard scancode, matching USB HID usage IDs.
type Key int

// KeyCount bounds Key values tracked by Keyboard.
const KeyCount = 512

// Keys.
const (
	KeyUnknown Key = 0

	KeyA Key = 4 + iota - 1
	KeyB
	KeyC
	KeyD
	KeyE
	KeyF
	KeyG
	KeyH
	KeyI
	KeyJ
	KeyK
	KeyL
	KeyM
	KeyN
	KeyO
	KeyP
	KeyQ
	KeyR
	KeyS
	KeyT
	KeyU
	KeyV
	KeyW
	KeyX
	KeyY
	KeyZ
	Key1
	Key2
	Key3
	Key4
	Key5
	Key6
	Key7
	Key8
	Key9
	Key0
	KeyEnter
	KeyEscape
	KeyBackspace
	KeyTab
	KeySpace
	KeyMinus
	KeyEquals
	KeyLeftBracket
	KeyRightBracket
	KeyBackslash
)

const (
	KeySemicolon Key = 51 + iota
	KeyApostrophe
	KeyTilde
	KeyComma
	KeyPeriod
	KeySlash
	KeyCapslock
	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12
	KeyPrintScreen
	KeyScrollLock
	KeyPause
	KeyInsert
	KeyHome
	KeyPageUp
	KeyDelete
	KeyEnd
	KeyPageDown
	KeyRight
	KeyLeft
	KeyDown
	KeyUp
)

const (
	KeyLeftControl Key = 224 + iota
	KeyLeftShift
	KeyLeftAlt
	KeyLeftOS
	KeyRightControl
	KeyRightShift
	KeyRightAlt
	KeyRightOS
)

var keyNames = map[Key]string{
	KeyEnter: "Enter", KeyEscape: "Escape", KeyBackspace: "Backspace", KeyTab: "Tab",
	KeySpace: "Space", KeyMinus: "Minus", KeyEquals: "Equals",
	KeyLeftBracket: "LeftBracket", KeyRightBracket: "RightBracket", KeyBackslash: "Backslash",
	KeySemicolon: "Semicolon", KeyApostrophe: "Apostrophe", KeyTilde: "Tilde",
	KeyComma: "Comma", KeyPeriod: "Period", KeySlash: "Slash", KeyCapslock: "Capslock",
	KeyPrintScreen: "PrintScreen", KeyScrollLock: "ScrollLock", KeyPause: "Pause",
	KeyInsert: "Insert", KeyHome: "Home", KeyPageUp: "PageUp", KeyDelete: "Delete",
	KeyEnd: "End", KeyPageDown: "PageDown",
	KeyRight: "Right", KeyLeft: "Left", KeyDown: "Down", KeyUp: "Up",
	KeyLeftControl: "LeftControl", KeyLeftShift: "LeftShift", KeyLeftAlt: "LeftAlt", KeyLeftOS: "LeftOS",
	KeyRightControl: "RightControl", KeyRightShift: "RightShift", KeyRightAlt: "RightAlt", KeyRightOS: "RightOS",
}

// String returns the key name, or "Unknown".
func (k Key) String() string {
	switch {
	case k >= KeyA && k <= KeyZ:
		return string(rune('A' + k - KeyA))
	case k >= Key1 && k <= Key9:
		return string(rune('1' + k - Key1))
	case k == Key0:
		return "0"
	case k >= KeyF1 && k <= KeyF12:
		return "F" + strconv.Itoa(int(k-KeyF1)+1)
	}
	if name, ok := keyNames[k]; ok {
		return name
	}
	return "Unknown"
}

func (k Key) valid() bool { return k > KeyUnknown && k < KeyCount }

// MouseButton is a mouse button index.
type MouseButton int

// MouseButtonCount bounds MouseButton values tracked by Mouse.
const MouseButtonCount = 16

// Mouse buttons.
const (
	MouseLeft MouseButton = iota
	MouseMiddle
	MouseRight
)

func (b MouseButton) valid() bool { return b >= 0 && b < MouseButtonCount }

// Button is a controller button, laid out like an Xbox gamepad.
type Button int

// ButtonCount bounds Button values tracked by Controller.
const ButtonCount = 64

// Controller buttons.
const (
	ButtonA Button = iota
	ButtonB
	ButtonX
	ButtonY
	ButtonBack
	ButtonSelect
	ButtonStart
	ButtonLeftStick
	ButtonRightStick
	ButtonLeftShoulder
	ButtonRightShoulder
	ButtonUp
	ButtonDown
	ButtonLeft
	ButtonRight
)

var buttonNames = [...]string{
	"A", "B", "X", "Y", "Back", "Select", "Start", "LeftStick", "RightStick",
	"LeftShoulder", "RightShoulder", "Up", "Down", "Left", "Right",
}

// String returns the button name, or "Unknown".
func (b Button) String() string {
	if b >= 0 && int(b) < len(buttonNames) {
		return buttonNames[b]
	}
	return "Unknown"
}

// Axis is a controller axis.
type Axis int

// AxisCount bounds Axis values tracked by Controller.
const AxisCount = 16

// Controller axes.
const (
	AxisLeftX Axis = iota
	AxisLeftY
	AxisRightX
	AxisRightY
	AxisLeftTrigger
	AxisRightTrigger
)

// MaxControllers is the number of controller slots.
const MaxControllers = 8
