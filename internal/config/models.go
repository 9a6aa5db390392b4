package config

import "time"

// Registry represents the entire user configuration file.
// It stores user-defined metadata for known Roku devices and application
// preferences. Live device state is never cached here - every command
// re-queries the device.
type Registry struct {
	Version     int                `yaml:"version"`
	Devices     map[string]*Device `yaml:"devices,omitempty"` // Keyed by device serial number
	Preferences *Preferences       `yaml:"preferences,omitempty"`
}

// Device represents user-defined metadata for a single Roku device,
// keyed by the device's serial number in the Registry.
type Device struct {
	Nickname string    `yaml:"nickname,omitempty"`  // User-friendly name
	LastAddr string    `yaml:"last_addr,omitempty"` // Last known "host:port" address
	LastSeen time.Time `yaml:"last_seen,omitempty"` // Last discovery/connection time
}

// Preferences represents application-wide user preferences.
type Preferences struct {
	DefaultDevice   string `yaml:"default_device,omitempty"` // Serial of the device commands target by default
	DiscoverTimeout int    `yaml:"discover_timeout"`         // SSDP discovery timeout in seconds
}

// NewRegistry creates a new Registry with default values.
func NewRegistry() *Registry {
	return &Registry{
		Version: 1,
		Devices: make(map[string]*Device),
		Preferences: &Preferences{
			DiscoverTimeout: 10,
		},
	}
}

// GetDevice retrieves device metadata by serial number.
// Returns nil if the device doesn't exist in the registry.
func (r *Registry) GetDevice(serial string) *Device {
	return r.Devices[serial]
}

// EnsureDevice ensures a device entry exists in the registry, creating a
// default entry when missing. Returns the entry either way.
func (r *Registry) EnsureDevice(serial string) *Device {
	if r.Devices == nil {
		r.Devices = make(map[string]*Device)
	}
	if device, exists := r.Devices[serial]; exists {
		return device
	}
	device := &Device{}
	r.Devices[serial] = device
	return device
}

// UpdateDeviceLastSeen updates the last seen timestamp and address for a device.
func (r *Registry) UpdateDeviceLastSeen(serial, addr string) {
	device := r.EnsureDevice(serial)
	device.LastSeen = time.Now()
	device.LastAddr = addr
}

// SetDeviceNickname sets a user-friendly nickname for a device.
func (r *Registry) SetDeviceNickname(serial, nickname string) {
	r.EnsureDevice(serial).Nickname = nickname
}

// SetDefaultDevice marks a device as the default target for commands.
func (r *Registry) SetDefaultDevice(serial string) {
	if r.Preferences == nil {
		r.Preferences = &Preferences{DiscoverTimeout: 10}
	}
	r.Preferences.DefaultDevice = serial
}

// DefaultDeviceAddr returns the last known address of the default device,
// or "" when no default is set or it has never been seen.
func (r *Registry) DefaultDeviceAddr() string {
	if r.Preferences == nil || r.Preferences.DefaultDevice == "" {
		return ""
	}
	device := r.GetDevice(r.Preferences.DefaultDevice)
	if device == nil {
		return ""
	}
	return device.LastAddr
}
