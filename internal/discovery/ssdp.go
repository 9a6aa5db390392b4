package discovery

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"

	"go.uber.org/zap"

	"rokuctl/internal/logging"
)

const (
	// ServiceType is the SSDP search target Roku devices answer to
	ServiceType = "roku:ecp"

	// multicastAddr is the SSDP multicast group and port
	multicastAddr = "239.255.255.250:1900"

	// DefaultScanTimeout is the default timeout for device discovery
	DefaultScanTimeout = 10 * time.Second
)

// NoDevicesError is returned by First when the search window elapses without
// a single responder. It is distinct from transport failures: the search
// itself worked, the network is just empty of Roku devices.
type NoDevicesError struct {
	// Timeout is the window that elapsed without a response
	Timeout time.Duration
}

// Error implements the error interface
func (e *NoDevicesError) Error() string {
	return fmt.Sprintf("no Roku devices found within %v", e.Timeout)
}

// IsNoDevices checks if an error means the search window closed empty
func IsNoDevices(err error) bool {
	var e *NoDevicesError
	return errors.As(err, &e)
}

// Scanner handles SSDP device discovery
type Scanner struct {
	// Timeout is the maximum time to wait for responses
	Timeout time.Duration

	// searchAddr is where M-SEARCH datagrams are sent. Overridable in tests
	// to point at a loopback responder.
	searchAddr string
}

// NewScanner creates a new SSDP scanner with default settings
func NewScanner() *Scanner {
	return &Scanner{
		Timeout:    DefaultScanTimeout,
		searchAddr: multicastAddr,
	}
}

// Discover broadcasts an M-SEARCH for Roku devices and collects responders
// for the full timeout window. The returned slice holds every distinct device
// that answered, in arrival order; it is empty (with a nil error) when
// nothing responded.
func (s *Scanner) Discover(ctx context.Context) ([]*Device, error) {
	var devices []*Device
	err := s.search(ctx, func(d *Device) bool {
		devices = append(devices, d)
		return false // keep listening until the window closes
	})
	if err != nil {
		return nil, err
	}
	return devices, nil
}

// First broadcasts an M-SEARCH and resolves with the first responder,
// without waiting for the rest of the window. If the window elapses with
// zero responders, it fails with *NoDevicesError.
func (s *Scanner) First(ctx context.Context) (*Device, error) {
	var first *Device
	err := s.search(ctx, func(d *Device) bool {
		first = d
		return true
	})
	if err != nil {
		return nil, err
	}
	if first == nil {
		return nil, &NoDevicesError{Timeout: s.Timeout}
	}
	return first, nil
}

// search runs one M-SEARCH round. found is called for each distinct device;
// returning true stops the listen loop early. The UDP socket is closed on
// every exit path.
func (s *Scanner) search(ctx context.Context, found func(*Device) bool) error {
	conn, err := net.ListenUDP("udp4", &net.UDPAddr{})
	if err != nil {
		return fmt.Errorf("failed to open discovery socket: %w", err)
	}
	defer func() { _ = conn.Close() }()

	raddr, err := net.ResolveUDPAddr("udp4", s.searchAddr)
	if err != nil {
		return fmt.Errorf("failed to resolve search address: %w", err)
	}

	request := "M-SEARCH * HTTP/1.1\r\n" +
		"HOST: " + multicastAddr + "\r\n" +
		"MAN: \"ssdp:discover\"\r\n" +
		"ST: " + ServiceType + "\r\n" +
		"MX: 3\r\n" +
		"\r\n"

	if _, err := conn.WriteToUDP([]byte(request), raddr); err != nil {
		return fmt.Errorf("failed to send search request: %w", err)
	}
	logging.LogDiscovery("search_sent", zap.String("target", s.searchAddr))

	timeout := s.Timeout
	if timeout <= 0 {
		timeout = DefaultScanTimeout
	}
	deadline := time.Now().Add(timeout)
	if err := conn.SetReadDeadline(deadline); err != nil {
		return fmt.Errorf("failed to set read deadline: %w", err)
	}

	// Unblock the read loop if the caller cancels before the window closes
	stop := make(chan struct{})
	defer close(stop)
	go func() {
		select {
		case <-ctx.Done():
			_ = conn.SetReadDeadline(time.Now())
		case <-stop:
		}
	}()

	seen := make(map[string]bool)
	buf := make([]byte, 4096)
	for {
		n, addr, err := conn.ReadFromUDP(buf)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}
			if ne, ok := err.(net.Error); ok && ne.Timeout() {
				// Window closed
				logging.LogDiscovery("window_closed", zap.Int("responders", len(seen)))
				return nil
			}
			return fmt.Errorf("failed to read search response: %w", err)
		}

		device := parseResponse(string(buf[:n]), addr, time.Now())
		if device == nil {
			logging.LogDiscovery("response_skipped", zap.String("from", addr.String()))
			continue
		}

		key := device.USN
		if key == "" {
			key = device.Address()
		}
		if seen[key] {
			continue
		}
		seen[key] = true

		logging.LogDiscovery("device_found",
			zap.String("serial", device.Serial),
			zap.String("address", device.Address()),
		)
		if found(device) {
			return nil
		}
	}
}
