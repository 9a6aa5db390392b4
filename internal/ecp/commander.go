package ecp

import (
	"fmt"
	"time"
)

// DefaultWait is the pause appended by Wait when no duration is given
const DefaultWait = 500 * time.Millisecond

// Commander accumulates an ordered script of remote actions against a bound
// Client and executes it with Send. Every chaining method returns the same
// Commander so calls compose:
//
//	err := client.Command().Up(3).Select().Text("hello").Send()
//
// A Commander is not safe for concurrent use; chain, then send, from one
// goroutine. Key methods take an optional repeat count (default 1); a
// non-positive count is recorded as a validation error and reported by Send
// before anything executes.
type Commander struct {
	client  *Client
	actions []func() error
	err     error // first invalid chaining call, surfaced by Send
}

// Press appends count keypresses for key (default 1). This is also the entry
// point for literal letter/digit keys: Press("a") types the character a.
func (m *Commander) Press(key Key, count ...int) *Commander {
	n, err := repeatCount(key, count)
	if err != nil {
		m.fail(err)
		return m
	}
	for i := 0; i < n; i++ {
		m.actions = append(m.actions, func() error {
			return m.client.Keypress(key)
		})
	}
	return m
}

// Text appends a single action that types str on the device.
func (m *Commander) Text(str string) *Commander {
	m.actions = append(m.actions, func() error {
		return m.client.Text(str)
	})
	return m
}

// Wait appends a pause. With no argument the pause is DefaultWait; an
// explicit non-positive duration is a validation error.
func (m *Commander) Wait(d ...time.Duration) *Commander {
	delay := DefaultWait
	if len(d) > 0 {
		delay = d[0]
		if delay <= 0 {
			m.fail(NewValidationError(fmt.Sprintf("wait duration must be positive, got %v", delay)))
			return m
		}
	}
	m.actions = append(m.actions, func() error {
		time.Sleep(delay)
		return nil
	})
	return m
}

// Send executes the pending actions strictly in append order, waiting for
// each to complete before starting the next. It stops at the first failure
// and returns that error; remaining actions are not executed. If any chaining
// call was invalid, Send returns that validation error without sending
// anything.
func (m *Commander) Send() error {
	if m.err != nil {
		return m.err
	}
	for len(m.actions) > 0 {
		action := m.actions[0]
		m.actions = m.actions[1:]
		if err := action(); err != nil {
			return err
		}
	}
	return nil
}

func (m *Commander) fail(err error) {
	if m.err == nil {
		m.err = err
	}
}

func repeatCount(key Key, count []int) (int, error) {
	if len(count) == 0 {
		return 1, nil
	}
	if count[0] < 1 {
		return 0, NewValidationError(fmt.Sprintf("repeat count for %s must be a positive integer, got %d", key, count[0]))
	}
	return count[0], nil
}

// Navigation

// Home appends count presses of the Home key.
func (m *Commander) Home(count ...int) *Commander { return m.Press(KeyHome, count...) }

// Up appends count presses of the Up key.
func (m *Commander) Up(count ...int) *Commander { return m.Press(KeyUp, count...) }

// Down appends count presses of the Down key.
func (m *Commander) Down(count ...int) *Commander { return m.Press(KeyDown, count...) }

// Left appends count presses of the Left key.
func (m *Commander) Left(count ...int) *Commander { return m.Press(KeyLeft, count...) }

// Right appends count presses of the Right key.
func (m *Commander) Right(count ...int) *Commander { return m.Press(KeyRight, count...) }

// Select appends count presses of the Select key.
func (m *Commander) Select(count ...int) *Commander { return m.Press(KeySelect, count...) }

// Back appends count presses of the Back key.
func (m *Commander) Back(count ...int) *Commander { return m.Press(KeyBack, count...) }

// Playback

// Play appends count presses of the Play key (play/pause toggle).
func (m *Commander) Play(count ...int) *Commander { return m.Press(KeyPlay, count...) }

// Rev appends count presses of the rewind key.
func (m *Commander) Rev(count ...int) *Commander { return m.Press(KeyRev, count...) }

// Fwd appends count presses of the fast-forward key.
func (m *Commander) Fwd(count ...int) *Commander { return m.Press(KeyFwd, count...) }

// InstantReplay appends count presses of the instant-replay key.
func (m *Commander) InstantReplay(count ...int) *Commander { return m.Press(KeyInstantReplay, count...) }

// Text entry and info

// Info appends count presses of the Info (options) key.
func (m *Commander) Info(count ...int) *Commander { return m.Press(KeyInfo, count...) }

// Backspace appends count presses of the Backspace key.
func (m *Commander) Backspace(count ...int) *Commander { return m.Press(KeyBackspace, count...) }

// Search appends count presses of the Search key.
func (m *Commander) Search(count ...int) *Commander { return m.Press(KeySearch, count...) }

// Enter appends count presses of the Enter key.
func (m *Commander) Enter(count ...int) *Commander { return m.Press(KeyEnter, count...) }

// FindRemote appends count presses of the find-remote key.
func (m *Commander) FindRemote(count ...int) *Commander { return m.Press(KeyFindRemote, count...) }

// Volume and power

// VolumeUp appends count presses of the volume-up key.
func (m *Commander) VolumeUp(count ...int) *Commander { return m.Press(KeyVolumeUp, count...) }

// VolumeDown appends count presses of the volume-down key.
func (m *Commander) VolumeDown(count ...int) *Commander { return m.Press(KeyVolumeDown, count...) }

// VolumeMute appends count presses of the mute key.
func (m *Commander) VolumeMute(count ...int) *Commander { return m.Press(KeyVolumeMute, count...) }

// PowerOff appends count presses of the power-off key.
func (m *Commander) PowerOff(count ...int) *Commander { return m.Press(KeyPowerOff, count...) }

// Channels and inputs (TV models)

// ChannelUp appends count presses of the channel-up key.
func (m *Commander) ChannelUp(count ...int) *Commander { return m.Press(KeyChannelUp, count...) }

// ChannelDown appends count presses of the channel-down key.
func (m *Commander) ChannelDown(count ...int) *Commander { return m.Press(KeyChannelDown, count...) }

// InputTuner appends count presses of the tuner-input key.
func (m *Commander) InputTuner(count ...int) *Commander { return m.Press(KeyInputTuner, count...) }

// InputHDMI1 appends count presses of the HDMI1-input key.
func (m *Commander) InputHDMI1(count ...int) *Commander { return m.Press(KeyInputHDMI1, count...) }

// InputHDMI2 appends count presses of the HDMI2-input key.
func (m *Commander) InputHDMI2(count ...int) *Commander { return m.Press(KeyInputHDMI2, count...) }

// InputHDMI3 appends count presses of the HDMI3-input key.
func (m *Commander) InputHDMI3(count ...int) *Commander { return m.Press(KeyInputHDMI3, count...) }

// InputHDMI4 appends count presses of the HDMI4-input key.
func (m *Commander) InputHDMI4(count ...int) *Commander { return m.Press(KeyInputHDMI4, count...) }

// InputAV1 appends count presses of the AV1-input key.
func (m *Commander) InputAV1(count ...int) *Commander { return m.Press(KeyInputAV1, count...) }
