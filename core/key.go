package core

// Button identifies a controller button.
type Button uint8

// Known buttons, in controller shift register order.
const (
	ButtonA Button = iota
	ButtonB
	ButtonSelect
	ButtonStart
	ButtonUp
	ButtonDown
	ButtonLeft
	ButtonRight
	ButtonCount
)

var buttonNames = [ButtonCount]string{"A", "B", "Select", "Start", "Up", "Down", "Left", "Right"}

func (b Button) String() string {
	if b < ButtonCount {
		return buttonNames[b]
	}
	return "invalid"
}

// KeyEvent defines a button press or release.
type KeyEvent uint8

// Known key events.
const (
	PressA KeyEvent = iota
	PressB
	PressSelect
	PressStart
	PressUp
	PressDown
	PressLeft
	PressRight
	ReleaseA
	ReleaseB
	ReleaseSelect
	ReleaseStart
	ReleaseUp
	ReleaseDown
	ReleaseLeft
	ReleaseRight
	keyEventCount
)

// Press returns the press event for the given button.
func Press(b Button) KeyEvent {
	return PressA + KeyEvent(b)
}

// Release returns the release event for the given button.
func Release(b Button) KeyEvent {
	return ReleaseA + KeyEvent(b)
}

// Valid returns true if e is a known event.
func (e KeyEvent) Valid() bool {
	return e < keyEventCount
}

// Button returns the button the event applies to.
func (e KeyEvent) Button() Button {
	return Button(e % KeyEvent(ButtonCount))
}

// Pressed returns true for press events.
func (e KeyEvent) Pressed() bool {
	return e < ReleaseA
}

func (e KeyEvent) String() string {
	if !e.Valid() {
		return "invalid"
	}
	if e.Pressed() {
		return "press " + e.Button().String()
	}
	return "release " + e.Button().String()
}
