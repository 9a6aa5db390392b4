// Package config manages the rokuctl user configuration file.
//
// The registry is a versioned YAML file in the platform config directory
// (e.g. ~/.config/rokuctl/config.yaml). It holds client-side metadata only:
// nicknames and last-seen addresses for known devices, the default device,
// and discovery preferences. Nothing in it reflects live device state.
//
// Writes are atomic (temp file + rename) and the in-process registry is a
// lazily loaded singleton shared by all commands.
package config
