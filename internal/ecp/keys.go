package ecp

import (
	"net/url"
	"unicode/utf8"
)

// Key is a remote key name understood by the device. Named keys (KeySelect,
// KeyVolumeUp, ...) are sent verbatim; a Key holding a single printable rune is
// treated as literal text input and encoded as "Lit_<percent-encoded-rune>".
type Key string

// Named remote keys from the ECP keypress table.
const (
	KeyHome          Key = "Home"
	KeyRev           Key = "Rev"
	KeyFwd           Key = "Fwd"
	KeyPlay          Key = "Play"
	KeySelect        Key = "Select"
	KeyLeft          Key = "Left"
	KeyRight         Key = "Right"
	KeyDown          Key = "Down"
	KeyUp            Key = "Up"
	KeyBack          Key = "Back"
	KeyInstantReplay Key = "InstantReplay"
	KeyInfo          Key = "Info"
	KeyBackspace     Key = "Backspace"
	KeySearch        Key = "Search"
	KeyEnter         Key = "Enter"
	KeyFindRemote    Key = "FindRemote"
	KeyVolumeDown    Key = "VolumeDown"
	KeyVolumeMute    Key = "VolumeMute"
	KeyVolumeUp      Key = "VolumeUp"
	KeyPowerOff      Key = "PowerOff"
	KeyChannelUp     Key = "ChannelUp"
	KeyChannelDown   Key = "ChannelDown"
	KeyInputTuner    Key = "InputTuner"
	KeyInputHDMI1    Key = "InputHDMI1"
	KeyInputHDMI2    Key = "InputHDMI2"
	KeyInputHDMI3    Key = "InputHDMI3"
	KeyInputHDMI4    Key = "InputHDMI4"
	KeyInputAV1      Key = "InputAV1"
)

// Keys lists all named remote keys, in remote-layout order.
var Keys = []Key{
	KeyHome, KeyRev, KeyFwd, KeyPlay, KeySelect,
	KeyLeft, KeyRight, KeyDown, KeyUp, KeyBack,
	KeyInstantReplay, KeyInfo, KeyBackspace, KeySearch, KeyEnter,
	KeyFindRemote, KeyVolumeDown, KeyVolumeMute, KeyVolumeUp,
	KeyPowerOff, KeyChannelUp, KeyChannelDown,
	KeyInputTuner, KeyInputHDMI1, KeyInputHDMI2, KeyInputHDMI3, KeyInputHDMI4, KeyInputAV1,
}

// encode returns the path segment for the key. Multi-character names pass
// through unchanged; a single rune becomes a Lit_ literal so the device
// distinguishes text input from named keys.
func (k Key) encode() string {
	s := string(k)
	if utf8.RuneCountInString(s) == 1 {
		return "Lit_" + url.PathEscape(s)
	}
	return s
}
