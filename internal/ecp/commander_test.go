package ecp

import (
	"net/http"
	"testing"
	"time"
)

func TestCommander_ExecutesInAppendOrder(t *testing.T) {
	client, paths := recordingServer(t, nil)

	err := client.Command().
		Up(3).
		Select().
		Text("ok").
		Send()
	if err != nil {
		t.Fatalf("Send() error = %v", err)
	}

	want := []string{
		"POST /keypress/Up",
		"POST /keypress/Up",
		"POST /keypress/Up",
		"POST /keypress/Select",
		"POST /keypress/Lit_o",
		"POST /keypress/Lit_k",
	}
	got := paths()
	if len(got) != len(want) {
		t.Fatalf("Send() issued %d requests, want %d: %v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("request %d = %s, want %s", i, got[i], want[i])
		}
	}
}

func TestCommander_AbortsOnFirstFailure(t *testing.T) {
	client, paths := recordingServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/keypress/Select" {
			w.WriteHeader(http.StatusInternalServerError)
		}
	})

	err := client.Command().
		Up(2).
		Select().
		Text("never").
		Send()
	if err == nil {
		t.Fatal("Send() should fail when an action fails")
	}
	if !IsRequestFailed(err) {
		t.Errorf("error should be a request failure, got %v", err)
	}

	// The text sequence must never start
	got := paths()
	if len(got) != 3 {
		t.Fatalf("Send() issued %d requests, want 3: %v", len(got), got)
	}
	if got[2] != "POST /keypress/Select" {
		t.Errorf("last request = %s, want POST /keypress/Select", got[2])
	}
}

func TestCommander_RepeatCountValidation(t *testing.T) {
	tests := []struct {
		name  string
		count int
	}{
		{"zero", 0},
		{"negative", -2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, paths := recordingServer(t, nil)

			err := client.Command().Up(tt.count).Select().Send()
			if err == nil {
				t.Fatal("Send() should surface the validation error")
			}
			if !IsValidationError(err) {
				t.Errorf("error should be a validation error, got %v", err)
			}

			// Nothing may be sent once a chaining call was invalid
			if got := paths(); len(got) != 0 {
				t.Errorf("Send() issued %v, want no requests", got)
			}
		})
	}
}

func TestCommander_DefaultRepeatIsOne(t *testing.T) {
	client, paths := recordingServer(t, nil)

	if err := client.Command().Home().Send(); err != nil {
		t.Fatalf("Send() error = %v", err)
	}
	got := paths()
	if len(got) != 1 || got[0] != "POST /keypress/Home" {
		t.Errorf("Send() issued %v, want one Home press", got)
	}
}

func TestCommander_Wait(t *testing.T) {
	client, paths := recordingServer(t, nil)

	delay := 30 * time.Millisecond
	start := time.Now()
	err := client.Command().
		Select().
		Wait(delay).
		Select().
		Send()
	if err != nil {
		t.Fatalf("Send() error = %v", err)
	}

	if elapsed := time.Since(start); elapsed < delay {
		t.Errorf("Send() completed in %v, want at least %v pause", elapsed, delay)
	}
	if got := paths(); len(got) != 2 {
		t.Errorf("Send() issued %v, want two Select presses", got)
	}
}

func TestCommander_WaitValidation(t *testing.T) {
	client, paths := recordingServer(t, nil)

	err := client.Command().Wait(-time.Second).Select().Send()
	if err == nil {
		t.Fatal("Send() should surface the validation error")
	}
	if !IsValidationError(err) {
		t.Errorf("error should be a validation error, got %v", err)
	}
	if got := paths(); len(got) != 0 {
		t.Errorf("Send() issued %v, want no requests", got)
	}
}

func TestCommander_KeyMethodsMapToKeys(t *testing.T) {
	tests := []struct {
		name  string
		chain func(*Commander, ...int) *Commander
		path  string
	}{
		{"Back", (*Commander).Back, "POST /keypress/Back"},
		{"Play", (*Commander).Play, "POST /keypress/Play"},
		{"InstantReplay", (*Commander).InstantReplay, "POST /keypress/InstantReplay"},
		{"VolumeMute", (*Commander).VolumeMute, "POST /keypress/VolumeMute"},
		{"PowerOff", (*Commander).PowerOff, "POST /keypress/PowerOff"},
		{"InputHDMI2", (*Commander).InputHDMI2, "POST /keypress/InputHDMI2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, paths := recordingServer(t, nil)

			if err := tt.chain(client.Command()).Send(); err != nil {
				t.Fatalf("Send() error = %v", err)
			}
			got := paths()
			if len(got) != 1 || got[0] != tt.path {
				t.Errorf("issued %v, want [%s]", got, tt.path)
			}
		})
	}
}

func TestCommander_QueueDrainedBySend(t *testing.T) {
	client, paths := recordingServer(t, nil)

	commander := client.Command().Select()
	if err := commander.Send(); err != nil {
		t.Fatalf("first Send() error = %v", err)
	}
	if err := commander.Send(); err != nil {
		t.Fatalf("second Send() error = %v", err)
	}

	// Second Send has nothing left to execute
	if got := paths(); len(got) != 1 {
		t.Errorf("issued %v, want a single Select press", got)
	}
}
