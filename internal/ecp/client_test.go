package ecp

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"sync"
	"testing"
)

const mockAppsResponse = `<?xml version="1.0" encoding="UTF-8" ?>
<apps>
	<app id="12" type="appl" version="4.1.218">Netflix</app>
	<app id="13" type="appl" version="4.10.13">Amazon Video</app>
	<app id="2213" type="appl" version="4.3.15">Roku Media Player</app>
</apps>`

const mockActiveAppResponse = `<?xml version="1.0" encoding="UTF-8" ?>
<active-app>
	<app id="12" type="appl" version="4.1.218">Netflix</app>
</active-app>`

const mockHomeScreenResponse = `<?xml version="1.0" encoding="UTF-8" ?>
<active-app>
	<app>Roku</app>
</active-app>`

const mockDeviceInfoResponse = `<?xml version="1.0" encoding="UTF-8" ?>
<device-info>
	<serial-number>YN00H5555555</serial-number>
	<model-name>Roku Ultra</model-name>
	<user-device-name>Living room</user-device-name>
	<supports_find_remote>true</supports_find_remote>
</device-info>`

// recordingServer returns a test server plus a function that reports the
// request paths it saw, in order.
func recordingServer(t *testing.T, handler http.HandlerFunc) (*Client, func() []string) {
	t.Helper()

	var mu sync.Mutex
	var paths []string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		paths = append(paths, r.Method+" "+r.URL.RequestURI())
		mu.Unlock()
		if handler != nil {
			handler(w, r)
		}
	}))
	t.Cleanup(server.Close)

	return NewClientWithURL(server.URL), func() []string {
		mu.Lock()
		defer mu.Unlock()
		return append([]string(nil), paths...)
	}
}

func TestNewClient_AddressForms(t *testing.T) {
	tests := []struct {
		name    string
		addr    string
		baseURL string
	}{
		{"bare host gets default port", "192.168.1.60", "http://192.168.1.60:8060"},
		{"explicit port kept", "192.168.1.60:9090", "http://192.168.1.60:9090"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := NewClient(tt.addr)
			if client.BaseURL != tt.baseURL {
				t.Errorf("BaseURL = %s, want %s", client.BaseURL, tt.baseURL)
			}
		})
	}
}

func TestApps(t *testing.T) {
	client, _ := recordingServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/query/apps" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Write([]byte(mockAppsResponse))
	})

	apps, err := client.Apps()
	if err != nil {
		t.Fatalf("Apps() error = %v", err)
	}

	if len(apps) != 3 {
		t.Fatalf("Apps() returned %d apps, want 3", len(apps))
	}

	// Document order must be preserved
	wantIDs := []string{"12", "13", "2213"}
	for i, id := range wantIDs {
		if apps[i].ID != id {
			t.Errorf("apps[%d].ID = %s, want %s", i, apps[i].ID, id)
		}
	}

	if apps[0].Name != "Netflix" {
		t.Errorf("apps[0].Name = %q, want Netflix", apps[0].Name)
	}
	if apps[0].Type != "appl" {
		t.Errorf("apps[0].Type = %q, want appl", apps[0].Type)
	}
	if apps[0].Version != "4.1.218" {
		t.Errorf("apps[0].Version = %q, want 4.1.218", apps[0].Version)
	}
}

func TestApps_RequestFailed(t *testing.T) {
	client, _ := recordingServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	_, err := client.Apps()
	if err == nil {
		t.Fatal("Apps() should fail on a 503 response")
	}
	if !IsRequestFailed(err) {
		t.Errorf("error should be a request failure, got %v", err)
	}

	var devErr *DeviceError
	if !errors.As(err, &devErr) || devErr.StatusCode != http.StatusServiceUnavailable {
		t.Errorf("error should carry status 503, got %v", err)
	}
}

func TestActiveApp(t *testing.T) {
	client, _ := recordingServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(mockActiveAppResponse))
	})

	app, err := client.ActiveApp()
	if err != nil {
		t.Fatalf("ActiveApp() error = %v", err)
	}
	if app == nil {
		t.Fatal("ActiveApp() = nil, want app")
	}
	if app.ID != "12" || app.Name != "Netflix" || app.Type != "appl" || app.Version != "4.1.218" {
		t.Errorf("ActiveApp() = %+v, want Netflix record", app)
	}
}

func TestActiveApp_HomeScreen(t *testing.T) {
	client, _ := recordingServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(mockHomeScreenResponse))
	})

	app, err := client.ActiveApp()
	if err != nil {
		t.Fatalf("ActiveApp() error = %v", err)
	}
	if app != nil {
		t.Errorf("ActiveApp() = %+v, want nil for home screen", app)
	}
}

func TestActiveApp_ProtocolViolations(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{
			name: "zero app elements",
			body: `<active-app></active-app>`,
		},
		{
			name: "two app elements",
			body: `<active-app><app id="1">A</app><app id="2">B</app></active-app>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, _ := recordingServer(t, func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(tt.body))
			})

			_, err := client.ActiveApp()
			if err == nil {
				t.Fatal("ActiveApp() should fail")
			}
			if !IsProtocolError(err) {
				t.Errorf("error should be a protocol error, got %v", err)
			}
		})
	}
}

func TestDeviceInfo(t *testing.T) {
	client, _ := recordingServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/query/device-info" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Write([]byte(mockDeviceInfoResponse))
	})

	info, err := client.DeviceInfo()
	if err != nil {
		t.Fatalf("DeviceInfo() error = %v", err)
	}

	want := map[string]string{
		"serialNumber":       "YN00H5555555",
		"modelName":          "Roku Ultra",
		"userDeviceName":     "Living room",
		"supportsFindRemote": "true",
	}
	for key, value := range want {
		if info.Get(key) != value {
			t.Errorf("info[%s] = %q, want %q", key, info.Get(key), value)
		}
	}
	if len(info) != len(want) {
		t.Errorf("DeviceInfo() has %d keys, want %d", len(info), len(want))
	}
}

func TestKeypress_Encoding(t *testing.T) {
	tests := []struct {
		name string
		key  Key
		path string
	}{
		{"named key passes through", KeySelect, "POST /keypress/Select"},
		{"multi-char name untouched", Key("VolumeUp"), "POST /keypress/VolumeUp"},
		{"single letter is literal", Key("a"), "POST /keypress/Lit_a"},
		{"space percent-encoded", Key(" "), "POST /keypress/Lit_%20"},
		{"non-ascii percent-encoded", Key("é"), "POST /keypress/Lit_%C3%A9"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, paths := recordingServer(t, nil)

			if err := client.Keypress(tt.key); err != nil {
				t.Fatalf("Keypress(%q) error = %v", tt.key, err)
			}
			got := paths()
			if len(got) != 1 || got[0] != tt.path {
				t.Errorf("Keypress(%q) issued %v, want [%s]", tt.key, got, tt.path)
			}
		})
	}
}

func TestKeydownKeyup(t *testing.T) {
	client, paths := recordingServer(t, nil)

	if err := client.Keydown(KeyRight); err != nil {
		t.Fatalf("Keydown() error = %v", err)
	}
	if err := client.Keyup(KeyRight); err != nil {
		t.Fatalf("Keyup() error = %v", err)
	}

	want := []string{"POST /keydown/Right", "POST /keyup/Right"}
	got := paths()
	if len(got) != 2 || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("issued %v, want %v", got, want)
	}
}

func TestText_SequentialKeypresses(t *testing.T) {
	client, paths := recordingServer(t, nil)

	if err := client.Text("Hi"); err != nil {
		t.Fatalf("Text() error = %v", err)
	}

	want := []string{"POST /keypress/Lit_H", "POST /keypress/Lit_i"}
	got := paths()
	if len(got) != 2 || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("Text(\"Hi\") issued %v, want %v", got, want)
	}
}

func TestText_StopsAtFirstFailure(t *testing.T) {
	client, paths := recordingServer(t, func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "Lit_b") {
			w.WriteHeader(http.StatusInternalServerError)
		}
	})

	err := client.Text("abc")
	if err == nil {
		t.Fatal("Text() should fail when a keypress fails")
	}
	if !IsRequestFailed(err) {
		t.Errorf("error should be a request failure, got %v", err)
	}

	// The failing character must be the last request; "c" is never sent
	got := paths()
	if len(got) != 2 {
		t.Fatalf("Text(\"abc\") issued %d requests, want 2: %v", len(got), got)
	}
	if got[1] != "POST /keypress/Lit_b" {
		t.Errorf("last request = %s, want POST /keypress/Lit_b", got[1])
	}
}

func TestLaunch(t *testing.T) {
	client, paths := recordingServer(t, nil)

	if err := client.Launch("12"); err != nil {
		t.Fatalf("Launch() error = %v", err)
	}
	got := paths()
	if len(got) != 1 || got[0] != "POST /launch/12" {
		t.Errorf("Launch(12) issued %v", got)
	}
}

func TestLaunchDTV(t *testing.T) {
	tests := []struct {
		name    string
		channel string
		path    string
	}{
		{"without channel", "", "POST /launch/tvinput.dtv"},
		{"with channel", "5.1", "POST /launch/tvinput.dtv?ch=5.1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, paths := recordingServer(t, nil)

			if err := client.LaunchDTV(tt.channel); err != nil {
				t.Fatalf("LaunchDTV(%q) error = %v", tt.channel, err)
			}
			got := paths()
			if len(got) != 1 || got[0] != tt.path {
				t.Errorf("LaunchDTV(%q) issued %v, want [%s]", tt.channel, got, tt.path)
			}
		})
	}
}

func TestIcon(t *testing.T) {
	iconBytes := []byte{0x89, 'P', 'N', 'G', 0x0d, 0x0a}
	client, _ := recordingServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/query/icon/12" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "image/png")
		w.Write(iconBytes)
	})

	path, err := client.Icon("12")
	if err != nil {
		t.Fatalf("Icon() error = %v", err)
	}
	defer os.Remove(path)

	if !strings.HasSuffix(path, ".png") {
		t.Errorf("Icon() path = %s, want .png extension", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read icon file: %v", err)
	}
	if string(data) != string(iconBytes) {
		t.Errorf("icon file content = %v, want %v", data, iconBytes)
	}
}

func TestIcon_RequestFailed(t *testing.T) {
	client, _ := recordingServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	_, err := client.Icon("9999")
	if err == nil {
		t.Fatal("Icon() should fail on 404")
	}
	if !IsRequestFailed(err) {
		t.Errorf("error should be a request failure, got %v", err)
	}
}
