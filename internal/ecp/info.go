package ecp

import (
	"encoding/xml"
	"fmt"
	"io"
	"strings"
)

// App identifies an installed channel on the device
type App struct {
	// ID is the channel id used in launch and icon endpoints (e.g., "12")
	ID string

	// Name is the channel display name (e.g., "Netflix")
	Name string

	// Type is the channel type reported by the device (e.g., "appl", "tvin")
	Type string

	// Version is the installed channel version
	Version string
}

// String returns a human-readable string representation of the app
func (a *App) String() string {
	return fmt.Sprintf("%s [%s] (%s %s)", a.Name, a.ID, a.Type, a.Version)
}

// DeviceInfo is the open key/value document from /query/device-info. Keys are
// camel-cased; the set of keys varies by device model and firmware.
type DeviceInfo map[string]string

// Get retrieves a value by camel-cased key, or "" if the device did not
// report the field.
func (d DeviceInfo) Get(key string) string {
	return d[key]
}

// appElement is the typed intermediate for an <app> element. ID is a pointer
// so a missing id attribute is distinguishable from an empty one: on the
// active-app document, no id means "home screen".
type appElement struct {
	ID      *string `xml:"id,attr"`
	Type    string  `xml:"type,attr"`
	Version string  `xml:"version,attr"`
	Name    string  `xml:",chardata"`
}

func (el appElement) toApp() *App {
	app := &App{
		Name:    strings.TrimSpace(el.Name),
		Type:    el.Type,
		Version: el.Version,
	}
	if el.ID != nil {
		app.ID = *el.ID
	}
	return app
}

// appsDocument matches both the <apps> and <active-app> documents: each is a
// root element holding app children (active-app may also hold a screensaver
// element, which is ignored here).
type appsDocument struct {
	Apps []appElement `xml:"app"`
}

func decodeAppsDocument(r io.Reader) (*appsDocument, error) {
	var doc appsDocument
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, NewParseError("failed to parse app list response", err)
	}
	return &doc, nil
}

// parseFlatDocument reads an arbitrarily-shaped flat XML document (a root
// element whose children each hold text) into a map keyed by the camel-cased
// element name. Unknown fields are kept; nesting below the field level is not
// expected on this endpoint and deeper content is ignored.
func parseFlatDocument(r io.Reader) (DeviceInfo, error) {
	dec := xml.NewDecoder(r)
	info := make(DeviceInfo)

	depth := 0
	var field string
	var text strings.Builder

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, NewParseError("failed to parse device-info response", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			depth++
			if depth == 2 {
				field = t.Name.Local
				text.Reset()
			}
		case xml.CharData:
			if depth == 2 {
				text.Write(t)
			}
		case xml.EndElement:
			if depth == 2 {
				info[camelCase(field)] = strings.TrimSpace(text.String())
			}
			depth--
		}
	}

	return info, nil
}

// camelCase converts a hyphen- or underscore-separated wire key to camelCase:
// "user-device-name" -> "userDeviceName", "serial_number" -> "serialNumber".
// Keys without separators pass through unchanged.
func camelCase(key string) string {
	parts := strings.FieldsFunc(key, func(r rune) bool {
		return r == '-' || r == '_'
	})
	if len(parts) == 0 {
		return key
	}

	var b strings.Builder
	b.WriteString(parts[0])
	for _, p := range parts[1:] {
		b.WriteString(strings.ToUpper(p[:1]))
		b.WriteString(p[1:])
	}
	return b.String()
}
