// Package ecp implements a client for the Roku External Control Protocol,
// the HTTP interface every Roku device exposes on port 8060.
//
// # Client
//
// A Client is bound to one device address and translates high-level
// operations into ECP endpoints:
//
//	client := ecp.NewClient("192.168.1.60")
//	apps, err := client.Apps()          // GET /query/apps
//	app, err := client.ActiveApp()      // GET /query/active-app (nil on home screen)
//	info, err := client.DeviceInfo()    // GET /query/device-info
//	err = client.Launch("12")           // POST /launch/12
//	err = client.Keypress(ecp.KeyHome)  // POST /keypress/Home
//
// Single printable characters are sent as literal text input: Keypress("a")
// posts /keypress/Lit_a, and Text("hi") sends one literal keypress per rune,
// strictly in order.
//
// # Commander
//
// Commander scripts a sequence of remote actions with per-key repeat counts:
//
//	err := client.Command().
//	    Home().
//	    Wait().
//	    Up(3).
//	    Select().
//	    Text("breaking bad").
//	    Send()
//
// Send executes the queue in append order and stops at the first failure.
//
// # Errors
//
// Failures carry a *DeviceError with a type discriminator: ErrTypeRequest for
// non-2xx responses (with the HTTP status code), ErrTypeProtocol for
// malformed or contract-violating XML, ErrTypeValidation for bad arguments,
// and ErrTypeNetwork/ErrTypeTimeout for transport failures. The IsRequestFailed,
// IsProtocolError, IsValidationError and IsNetworkError helpers match through
// wrapped chains.
package ecp
