package ecp

import (
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"

	"rokuctl/internal/logging"
)

const (
	// DefaultPort is the TCP port the ECP service listens on
	DefaultPort = 8060

	// DefaultTimeout is the default HTTP request timeout
	DefaultTimeout = 10 * time.Second
)

// Client talks to a single Roku device over the ECP HTTP interface.
//
// A Client is bound to one device address for its lifetime and keeps no other
// state: every call re-queries the device, and concurrent calls against the
// same Client are safe.
type Client struct {
	// BaseURL is the base URL for the device (e.g., "http://192.168.1.60:8060")
	BaseURL string

	// HTTPClient is the underlying HTTP client
	HTTPClient *http.Client
}

// NewClient creates a client for the device at addr. addr is "host" or
// "host:port"; the ECP default port is appended when missing.
func NewClient(addr string) *Client {
	if !strings.Contains(addr, ":") {
		addr = fmt.Sprintf("%s:%d", addr, DefaultPort)
	}
	return NewClientWithURL("http://" + addr)
}

// NewClientWithURL creates a client with a full base URL
// (e.g., "http://192.168.1.60:8060").
func NewClientWithURL(baseURL string) *Client {
	return &Client{
		BaseURL:    strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{Timeout: DefaultTimeout},
	}
}

// SetTimeout sets the HTTP request timeout
func (c *Client) SetTimeout(timeout time.Duration) {
	c.HTTPClient.Timeout = timeout
}

// Apps retrieves the installed channels from /query/apps, in the order the
// device reports them.
func (c *Client) Apps() ([]*App, error) {
	resp, err := c.get("/query/apps")
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	doc, err := decodeAppsDocument(resp.Body)
	if err != nil {
		return nil, err
	}

	apps := make([]*App, 0, len(doc.Apps))
	for _, el := range doc.Apps {
		apps = append(apps, el.toApp())
	}
	return apps, nil
}

// ActiveApp retrieves the foreground channel from /query/active-app.
// It returns (nil, nil) when the device is on the home screen, which the
// device signals with an app element carrying no id attribute.
func (c *Client) ActiveApp() (*App, error) {
	resp, err := c.get("/query/active-app")
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	doc, err := decodeAppsDocument(resp.Body)
	if err != nil {
		return nil, err
	}

	if len(doc.Apps) != 1 {
		return nil, NewProtocolError(fmt.Sprintf("active-app response contains %d app elements, expected 1", len(doc.Apps)))
	}

	el := doc.Apps[0]
	if el.ID == nil {
		// Home screen, no active channel
		return nil, nil
	}
	return el.toApp(), nil
}

// DeviceInfo retrieves /query/device-info as a flat key/value map. Wire keys
// are camel-cased ("user-device-name" becomes "userDeviceName"); the key set
// varies by model and firmware.
func (c *Client) DeviceInfo() (DeviceInfo, error) {
	resp, err := c.get("/query/device-info")
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	return parseFlatDocument(resp.Body)
}

// Icon downloads the channel icon for appID into a temporary file and returns
// the file path. The file extension is taken from the response content type.
func (c *Client) Icon(appID string) (string, error) {
	resp, err := c.get("/query/icon/" + url.PathEscape(appID))
	if err != nil {
		return "", err
	}
	defer func() { _ = resp.Body.Close() }()

	ext := "img"
	if mt, _, err := mime.ParseMediaType(resp.Header.Get("Content-Type")); err == nil {
		if rest, ok := strings.CutPrefix(mt, "image/"); ok && rest != "" {
			ext = rest
		}
	}

	f, err := os.CreateTemp("", "roku-icon-*."+ext)
	if err != nil {
		return "", err
	}

	if _, err := io.Copy(f, resp.Body); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", NewNetworkError("failed to download icon", err)
	}
	if err := f.Close(); err != nil {
		return "", err
	}
	return f.Name(), nil
}

// Launch starts the channel with the given app id via /launch/{id}.
func (c *Client) Launch(appID string) error {
	return c.post("/launch/" + url.PathEscape(appID))
}

// LaunchDTV tunes the live-TV input, optionally to a specific channel
// (e.g. "1.1"). An empty channel opens the tuner on its last channel.
func (c *Client) LaunchDTV(channel string) error {
	path := "/launch/tvinput.dtv"
	if channel != "" {
		path += "?ch=" + url.QueryEscape(channel)
	}
	return c.post(path)
}

// Keypress sends a press-and-release for key.
func (c *Client) Keypress(key Key) error {
	return c.post("/keypress/" + key.encode())
}

// Keydown sends a press-and-hold for key. Pair with Keyup.
func (c *Client) Keydown(key Key) error {
	return c.post("/keydown/" + key.encode())
}

// Keyup releases a key previously sent with Keydown.
func (c *Client) Keyup(key Key) error {
	return c.post("/keyup/" + key.encode())
}

// Text types str on the device, one keypress per rune, in order. Each
// keypress completes before the next is sent; the first failure stops the
// sequence and is returned.
func (c *Client) Text(str string) error {
	for _, r := range str {
		if err := c.Keypress(Key(string(r))); err != nil {
			return err
		}
	}
	return nil
}

// Command returns a new Commander bound to this client.
func (c *Client) Command() *Commander {
	return &Commander{client: c}
}

// get performs a GET against the device and returns the response with its
// body still open. The caller must close it. Non-2xx responses are converted
// to a request error with the body already closed.
func (c *Client) get(path string) (*http.Response, error) {
	return c.do(http.MethodGet, path)
}

// post performs a POST with an empty body and discards the response.
func (c *Client) post(path string) error {
	resp, err := c.do(http.MethodPost, path)
	if err != nil {
		return err
	}
	return resp.Body.Close()
}

func (c *Client) do(method, path string) (*http.Response, error) {
	req, err := http.NewRequest(method, c.BaseURL+path, nil)
	if err != nil {
		return nil, NewNetworkError("failed to create request", err)
	}

	start := time.Now()
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		logging.Debug("ECP request failed",
			zap.String("method", method),
			zap.String("url", c.BaseURL+path),
			zap.Error(err),
		)
		return nil, NewNetworkError(fmt.Sprintf("%s %s failed", method, path), err)
	}

	logging.LogRequest(method, c.BaseURL+path, resp.StatusCode, time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_ = resp.Body.Close()
		return nil, NewRequestError(resp.StatusCode, fmt.Sprintf("%s %s returned %s", method, path, resp.Status))
	}
	return resp, nil
}
