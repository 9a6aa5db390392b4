package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"rokuctl/internal/discovery"
	"rokuctl/internal/ecp"
)

// screen identifies which view the program is showing
type screen int

const (
	screenScanning screen = iota
	screenPicking
	screenRemote
	screenText
)

// Messages for async operations
type scanCompleteMsg struct {
	devices []*discovery.Device
	err     error
}

type pressDoneMsg struct {
	key ecp.Key
	err error
}

type textDoneMsg struct {
	text string
	err  error
}

// remoteKeyMap defines terminal key bindings for the remote pad screen
type remoteKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Left   key.Binding
	Right  key.Binding
	Select key.Binding
	Back   key.Binding
	Home   key.Binding
	Play   key.Binding
	Rev    key.Binding
	Fwd    key.Binding
	Replay key.Binding
	Info   key.Binding
	VolUp  key.Binding
	VolDn  key.Binding
	Mute   key.Binding
	Text   key.Binding
	Quit   key.Binding
}

func defaultRemoteKeyMap() remoteKeyMap {
	return remoteKeyMap{
		Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Left:   key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "left")),
		Right:  key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "right")),
		Select: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select")),
		Back:   key.NewBinding(key.WithKeys("backspace", "esc"), key.WithHelp("bksp", "back")),
		Home:   key.NewBinding(key.WithKeys("H"), key.WithHelp("H", "home")),
		Play:   key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "play/pause")),
		Rev:    key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "rev")),
		Fwd:    key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "fwd")),
		Replay: key.NewBinding(key.WithKeys("R"), key.WithHelp("R", "replay")),
		Info:   key.NewBinding(key.WithKeys("i"), key.WithHelp("i", "info")),
		VolUp:  key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+", "vol up")),
		VolDn:  key.NewBinding(key.WithKeys("-"), key.WithHelp("-", "vol down")),
		Mute:   key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "mute")),
		Text:   key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "type text")),
		Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// deviceItem wraps a discovered Device for use with bubbles/list
type deviceItem struct {
	device *discovery.Device
}

func (d deviceItem) FilterValue() string {
	return d.device.Serial + " " + d.device.Host
}

func (d deviceItem) Title() string {
	if d.device.Serial != "" {
		return "Roku " + d.device.Serial
	}
	return "Roku device"
}

func (d deviceItem) Description() string {
	return d.device.Address()
}

// Model is the bubbletea model for the interactive remote
type Model struct {
	screen  screen
	scanner *discovery.Scanner

	spinner    spinner.Model
	deviceList list.Model
	textInput  textinput.Model
	keys       remoteKeyMap

	client *ecp.Client
	label  string // device label shown in the header

	status  string
	statErr bool

	width  int
	height int
}

// New creates a model that scans for devices first and lets the user pick one.
func New(scanner *discovery.Scanner) Model {
	m := newModel()
	m.screen = screenScanning
	m.scanner = scanner
	return m
}

// NewWithClient creates a model bound to an already-resolved device,
// skipping the discovery screens.
func NewWithClient(client *ecp.Client, label string) Model {
	m := newModel()
	m.screen = screenRemote
	m.client = client
	m.label = label
	return m
}

func newModel() Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(colorAccent)

	ti := textinput.New()
	ti.Placeholder = "text to type on the device"
	ti.PromptStyle = promptStyle
	ti.CharLimit = 256

	dl := list.New(nil, list.NewDefaultDelegate(), 0, 0)
	dl.Title = "Roku devices"
	dl.SetShowStatusBar(false)
	dl.SetFilteringEnabled(false)

	return Model{
		spinner:    sp,
		textInput:  ti,
		deviceList: dl,
		keys:       defaultRemoteKeyMap(),
	}
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	if m.screen == screenScanning {
		return tea.Batch(m.spinner.Tick, scanCmd(m.scanner))
	}
	return nil
}

func scanCmd(scanner *discovery.Scanner) tea.Cmd {
	return func() tea.Msg {
		devices, err := scanner.Discover(context.Background())
		return scanCompleteMsg{devices: devices, err: err}
	}
}

func pressCmd(client *ecp.Client, k ecp.Key) tea.Cmd {
	return func() tea.Msg {
		return pressDoneMsg{key: k, err: client.Keypress(k)}
	}
}

func textCmd(client *ecp.Client, s string) tea.Cmd {
	return func() tea.Msg {
		return textDoneMsg{text: s, err: client.Text(s)}
	}
}

// Update implements tea.Model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.deviceList.SetSize(msg.Width-4, msg.Height-6)
		return m, nil

	case scanCompleteMsg:
		if msg.err != nil {
			m.status = "scan failed: " + msg.err.Error()
			m.statErr = true
			return m, tea.Quit
		}
		if len(msg.devices) == 0 {
			m.status = "no devices found"
			m.statErr = true
			return m, tea.Quit
		}
		if len(msg.devices) == 1 {
			return m.bindDevice(msg.devices[0]), nil
		}
		items := make([]list.Item, 0, len(msg.devices))
		for _, d := range msg.devices {
			items = append(items, deviceItem{device: d})
		}
		m.deviceList.SetItems(items)
		m.screen = screenPicking
		return m, nil

	case pressDoneMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("%s failed: %s", msg.key, msg.err)
			m.statErr = true
		} else {
			m.status = "sent " + string(msg.key)
			m.statErr = false
		}
		return m, nil

	case textDoneMsg:
		if msg.err != nil {
			m.status = "text entry failed: " + msg.err.Error()
			m.statErr = true
		} else {
			m.status = fmt.Sprintf("typed %q", msg.text)
			m.statErr = false
		}
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		switch m.screen {
		case screenScanning:
			if key.Matches(msg, m.keys.Quit) {
				return m, tea.Quit
			}
		case screenPicking:
			return m.updatePicking(msg)
		case screenRemote:
			return m.updateRemote(msg)
		case screenText:
			return m.updateText(msg)
		}
	}

	return m, nil
}

func (m Model) updatePicking(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "enter":
		if item, ok := m.deviceList.SelectedItem().(deviceItem); ok {
			return m.bindDevice(item.device), nil
		}
		return m, nil
	}
	var cmd tea.Cmd
	m.deviceList, cmd = m.deviceList.Update(msg)
	return m, cmd
}

func (m Model) updateRemote(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	keys := m.keys
	switch {
	case key.Matches(msg, keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, keys.Text):
		m.screen = screenText
		m.textInput.SetValue("")
		m.textInput.Focus()
		return m, textinput.Blink
	}

	var k ecp.Key
	switch {
	case key.Matches(msg, keys.Up):
		k = ecp.KeyUp
	case key.Matches(msg, keys.Down):
		k = ecp.KeyDown
	case key.Matches(msg, keys.Left):
		k = ecp.KeyLeft
	case key.Matches(msg, keys.Right):
		k = ecp.KeyRight
	case key.Matches(msg, keys.Select):
		k = ecp.KeySelect
	case key.Matches(msg, keys.Back):
		k = ecp.KeyBack
	case key.Matches(msg, keys.Home):
		k = ecp.KeyHome
	case key.Matches(msg, keys.Play):
		k = ecp.KeyPlay
	case key.Matches(msg, keys.Rev):
		k = ecp.KeyRev
	case key.Matches(msg, keys.Fwd):
		k = ecp.KeyFwd
	case key.Matches(msg, keys.Replay):
		k = ecp.KeyInstantReplay
	case key.Matches(msg, keys.Info):
		k = ecp.KeyInfo
	case key.Matches(msg, keys.VolUp):
		k = ecp.KeyVolumeUp
	case key.Matches(msg, keys.VolDn):
		k = ecp.KeyVolumeDown
	case key.Matches(msg, keys.Mute):
		k = ecp.KeyVolumeMute
	default:
		return m, nil
	}

	m.status = "sending " + string(k) + "..."
	m.statErr = false
	return m, pressCmd(m.client, k)
}

func (m Model) updateText(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.screen = screenRemote
		return m, nil
	case "enter":
		text := m.textInput.Value()
		m.screen = screenRemote
		if text == "" {
			return m, nil
		}
		m.status = fmt.Sprintf("typing %q...", text)
		m.statErr = false
		return m, textCmd(m.client, text)
	}
	var cmd tea.Cmd
	m.textInput, cmd = m.textInput.Update(msg)
	return m, cmd
}

func (m Model) bindDevice(d *discovery.Device) Model {
	m.client = ecp.NewClient(d.Address())
	m.label = d.String()
	m.screen = screenRemote
	m.status = ""
	return m
}

// View implements tea.Model
func (m Model) View() string {
	switch m.screen {
	case screenScanning:
		return fmt.Sprintf("\n %s Scanning for Roku devices...\n\n %s\n",
			m.spinner.View(), hintStyle.Render("q to cancel"))

	case screenPicking:
		return "\n" + m.deviceList.View()

	case screenText:
		return lipgloss.JoinVertical(lipgloss.Left,
			titleStyle.Render("Type on "+m.label),
			m.textInput.View(),
			"",
			hintStyle.Render("enter to send • esc to cancel"),
		)

	default:
		return m.viewRemote()
	}
}

func (m Model) viewRemote() string {
	pad := padStyle.Render(strings.Join([]string{
		"        ↑        ",
		"   ←  enter  →   ",
		"        ↓        ",
		"",
		"  r ⏪  space ⏯  f ⏩",
		"  R replay   i info",
		"  + - vol    m mute",
		"  H home  bksp back",
		"  t type  q quit",
	}, "\n"))

	status := ""
	if m.status != "" {
		if m.statErr {
			status = statusErrStyle.Render(m.status)
		} else {
			status = statusOKStyle.Render(m.status)
		}
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render("rokuctl remote"),
		deviceStyle.Render(m.label),
		pad,
		status,
	)
}
