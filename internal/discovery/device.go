package discovery

import (
	"fmt"
	"net"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// DefaultPort is the port the ECP service listens on when the SSDP response
// location carries no explicit port.
const DefaultPort = 8060

// Device represents a discovered Roku device on the network
type Device struct {
	// Location is the control URL from the SSDP LOCATION header
	// (e.g., "http://192.168.1.60:8060/")
	Location string

	// USN is the unique service name (e.g., "uuid:roku:ecp:P0A070000007")
	USN string

	// Serial is the device serial number parsed from the USN
	Serial string

	// Host is the IPv4 address (e.g., "192.168.1.60")
	Host string

	// Port is the ECP port (typically 8060)
	Port int

	// Server is the SERVER header from the SSDP response, when present
	Server string

	// DiscoveredAt is when the device was discovered
	DiscoveredAt time.Time
}

// Address returns the "host:port" form used to construct an ECP client
func (d *Device) Address() string {
	return net.JoinHostPort(d.Host, strconv.Itoa(d.Port))
}

// BaseURL returns the HTTP base URL for the device
func (d *Device) BaseURL() string {
	return "http://" + d.Address()
}

// String returns a human-readable string representation of the device
func (d *Device) String() string {
	if d.Serial != "" {
		return fmt.Sprintf("Roku %s at %s", d.Serial, d.Address())
	}
	return fmt.Sprintf("Roku device at %s", d.Address())
}

// usnSerialPrefix precedes the serial number in Roku USN headers
const usnSerialPrefix = "uuid:roku:ecp:"

// parseResponse builds a Device from a raw SSDP search response datagram.
// Returns nil if the payload is not a Roku ECP announcement.
func parseResponse(payload string, from net.Addr, at time.Time) *Device {
	lines := strings.Split(payload, "\r\n")
	if len(lines) == 0 || !strings.Contains(lines[0], "200") {
		return nil
	}

	headers := make(map[string]string)
	for _, line := range lines[1:] {
		name, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		headers[strings.ToLower(strings.TrimSpace(name))] = strings.TrimSpace(value)
	}

	if st := headers["st"]; st != "" && st != ServiceType {
		return nil
	}

	location := headers["location"]
	if location == "" {
		return nil
	}

	host, port := splitLocation(location)
	if host == "" {
		// Fall back to the datagram source address
		if udp, ok := from.(*net.UDPAddr); ok {
			host = udp.IP.String()
		}
	}
	if host == "" {
		return nil
	}

	usn := headers["usn"]
	return &Device{
		Location:     location,
		USN:          usn,
		Serial:       strings.TrimPrefix(usn, usnSerialPrefix),
		Host:         host,
		Port:         port,
		Server:       headers["server"],
		DiscoveredAt: at,
	}
}

// splitLocation extracts host and port from a LOCATION header URL, defaulting
// the port to the ECP port when absent.
func splitLocation(location string) (string, int) {
	u, err := url.Parse(location)
	if err != nil {
		return "", DefaultPort
	}

	port := DefaultPort
	if p := u.Port(); p != "" {
		if n, err := strconv.Atoi(p); err == nil {
			port = n
		}
	}
	return u.Hostname(), port
}
