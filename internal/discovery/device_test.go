package discovery

import (
	"net"
	"testing"
	"time"
)

const mockSearchResponse = "HTTP/1.1 200 OK\r\n" +
	"Cache-Control: max-age=3600\r\n" +
	"ST: roku:ecp\r\n" +
	"Location: http://192.168.1.60:8060/\r\n" +
	"USN: uuid:roku:ecp:P0A070000007\r\n" +
	"Server: Roku UPnP/1.0 Roku/9.3.0\r\n" +
	"\r\n"

func testSource() net.Addr {
	return &net.UDPAddr{IP: net.IPv4(192, 168, 1, 60), Port: 1900}
}

func TestParseResponse(t *testing.T) {
	now := time.Now()
	device := parseResponse(mockSearchResponse, testSource(), now)
	if device == nil {
		t.Fatal("parseResponse() = nil, want device")
	}

	if device.Serial != "P0A070000007" {
		t.Errorf("Serial = %s, want P0A070000007", device.Serial)
	}
	if device.Host != "192.168.1.60" {
		t.Errorf("Host = %s, want 192.168.1.60", device.Host)
	}
	if device.Port != 8060 {
		t.Errorf("Port = %d, want 8060", device.Port)
	}
	if device.USN != "uuid:roku:ecp:P0A070000007" {
		t.Errorf("USN = %s", device.USN)
	}
	if device.Server != "Roku UPnP/1.0 Roku/9.3.0" {
		t.Errorf("Server = %s", device.Server)
	}
	if device.DiscoveredAt != now {
		t.Errorf("DiscoveredAt = %v, want %v", device.DiscoveredAt, now)
	}
}

func TestParseResponse_Rejected(t *testing.T) {
	tests := []struct {
		name    string
		payload string
	}{
		{
			name:    "not a 200 response",
			payload: "HTTP/1.1 404 Not Found\r\n\r\n",
		},
		{
			name: "wrong search target",
			payload: "HTTP/1.1 200 OK\r\n" +
				"ST: upnp:rootdevice\r\n" +
				"Location: http://192.168.1.5:80/desc.xml\r\n\r\n",
		},
		{
			name:    "missing location",
			payload: "HTTP/1.1 200 OK\r\nST: roku:ecp\r\n\r\n",
		},
		{
			name:    "empty payload",
			payload: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if device := parseResponse(tt.payload, testSource(), time.Now()); device != nil {
				t.Errorf("parseResponse() = %+v, want nil", device)
			}
		})
	}
}

func TestParseResponse_LocationWithoutPort(t *testing.T) {
	payload := "HTTP/1.1 200 OK\r\n" +
		"ST: roku:ecp\r\n" +
		"Location: http://192.168.1.61/\r\n" +
		"USN: uuid:roku:ecp:X00100000001\r\n\r\n"

	device := parseResponse(payload, testSource(), time.Now())
	if device == nil {
		t.Fatal("parseResponse() = nil, want device")
	}
	if device.Port != DefaultPort {
		t.Errorf("Port = %d, want default %d", device.Port, DefaultPort)
	}
}

func TestDevice_Address(t *testing.T) {
	device := &Device{Host: "192.168.1.60", Port: 8060}

	if got := device.Address(); got != "192.168.1.60:8060" {
		t.Errorf("Address() = %s, want 192.168.1.60:8060", got)
	}
	if got := device.BaseURL(); got != "http://192.168.1.60:8060" {
		t.Errorf("BaseURL() = %s, want http://192.168.1.60:8060", got)
	}
}

func TestDevice_String(t *testing.T) {
	tests := []struct {
		name   string
		device *Device
		want   string
	}{
		{
			name:   "with serial",
			device: &Device{Serial: "P0A070000007", Host: "192.168.1.60", Port: 8060},
			want:   "Roku P0A070000007 at 192.168.1.60:8060",
		},
		{
			name:   "without serial",
			device: &Device{Host: "192.168.1.61", Port: 8060},
			want:   "Roku device at 192.168.1.61:8060",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.device.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}
