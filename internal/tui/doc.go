// Package tui implements the interactive remote-control screen.
//
// The program has four screens: a scanning screen with a spinner while SSDP
// discovery runs, a device picker when more than one device answers, the
// remote pad that maps terminal keys to ECP keypresses, and a text-entry
// overlay that types a whole string on the device.
//
// Keypresses are sent asynchronously through tea commands; the status line
// under the pad shows the last action or its error. The pad is strictly
// one-command-at-a-time from the user's perspective, matching how the device
// treats remote input.
package tui
