package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"time"
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"rokuctl/internal/config"
	"rokuctl/internal/discovery"
	"rokuctl/internal/ecp"
	"rokuctl/internal/tui"
)

// deviceEnvVar overrides the target device address, like the --device flag
const deviceEnvVar = "ROKU_DEVICE"

var (
	deviceAddr   string
	scanTimeout  int
	outputFormat string
	dtvChannel   string
)

func init() {
	rootCmd.PersistentFlags().StringVar(&deviceAddr, "device", "", "Device address as host or host:port (skips discovery)")
	rootCmd.PersistentFlags().IntVar(&scanTimeout, "timeout", 10, "Discovery timeout in seconds")

	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(appsCmd)
	rootCmd.AddCommand(activeCmd)
	rootCmd.AddCommand(infoCmd)
	rootCmd.AddCommand(iconCmd)
	rootCmd.AddCommand(launchCmd)
	rootCmd.AddCommand(dtvCmd)
	rootCmd.AddCommand(keypressCmd)
	rootCmd.AddCommand(keydownCmd)
	rootCmd.AddCommand(keyupCmd)
	rootCmd.AddCommand(textCmd)
	rootCmd.AddCommand(remoteCmd)
	rootCmd.AddCommand(deviceCmd)
}

// newScanner builds a scanner honoring the --timeout flag
func newScanner() *discovery.Scanner {
	scanner := discovery.NewScanner()
	if scanTimeout > 0 {
		scanner.Timeout = time.Duration(scanTimeout) * time.Second
	}
	return scanner
}

// resolveAddr picks the target device address: --device flag, then the
// ROKU_DEVICE environment variable, then the registry's default device, then
// the first device SSDP discovery finds.
func resolveAddr() (string, error) {
	if deviceAddr != "" {
		return deviceAddr, nil
	}
	if env := os.Getenv(deviceEnvVar); env != "" {
		return env, nil
	}
	if registry, err := config.LoadRegistry(); err == nil {
		if addr := registry.DefaultDeviceAddr(); addr != "" {
			return addr, nil
		}
	}

	fmt.Fprintf(os.Stderr, "Discovering device (timeout: %ds)...\n", scanTimeout)
	device, err := newScanner().First(context.Background())
	if err != nil {
		if discovery.IsNoDevices(err) {
			return "", fmt.Errorf("%w\nUse --device to specify an address manually", err)
		}
		return "", fmt.Errorf("discovery failed: %w", err)
	}
	return device.Address(), nil
}

// newClient resolves the target address and builds an ECP client for it
func newClient() (*ecp.Client, error) {
	addr, err := resolveAddr()
	if err != nil {
		return nil, err
	}
	return ecp.NewClient(addr), nil
}

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Scan for Roku devices on the network",
	Long: `Scan for Roku devices using SSDP discovery.

Sends a multicast search for the roku:ecp service and lists every device
that answers within the timeout window. Discovered devices are remembered
in the configuration file for later commands.`,
	Example: `  # Scan with the default 10-second window
  rokuctl scan

  # Quick 3-second scan
  rokuctl scan --timeout 3`,
	RunE: runScan,
}

func runScan(cmd *cobra.Command, args []string) error {
	fmt.Printf("Scanning for Roku devices (timeout: %ds)...\n\n", scanTimeout)

	devices, err := newScanner().Discover(context.Background())
	if err != nil {
		return fmt.Errorf("scan failed: %w", err)
	}

	if len(devices) == 0 {
		fmt.Println("No devices found.")
		fmt.Println("\nTroubleshooting:")
		fmt.Println("  - Ensure the device is powered on and connected to this network")
		fmt.Println("  - Check that multicast traffic is allowed on your interface")
		fmt.Println("  - Try increasing --timeout for slower networks")
		fmt.Println("  - Use --device to specify an address manually")
		return nil
	}

	fmt.Printf("Found %d device(s):\n\n", len(devices))
	for i, device := range devices {
		fmt.Printf("%d. %s\n", i+1, device)
		fmt.Printf("   Address:  %s\n", device.Address())
		if device.Server != "" {
			fmt.Printf("   Server:   %s\n", device.Server)
		}
		fmt.Println()
	}

	// Remember responders for later commands
	if registry, err := config.LoadRegistry(); err == nil {
		for _, device := range devices {
			if device.Serial != "" {
				registry.UpdateDeviceLastSeen(device.Serial, device.Address())
			}
		}
		if err := registry.Save(); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not save device registry: %v\n", err)
		}
	}

	fmt.Println("Use 'rokuctl apps --device <addr>' to list installed channels")
	fmt.Println("Use 'rokuctl remote' for the interactive remote")
	return nil
}

var appsCmd = &cobra.Command{
	Use:   "apps",
	Short: "List channels installed on the device",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}
		apps, err := client.Apps()
		if err != nil {
			return fmt.Errorf("failed to list channels: %w", err)
		}

		if outputFormat == "json" {
			return printJSON(apps)
		}
		for _, app := range apps {
			fmt.Printf("%-8s %s\n", app.ID, app.Name)
		}
		return nil
	},
}

var activeCmd = &cobra.Command{
	Use:   "active",
	Short: "Show the channel currently in the foreground",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}
		app, err := client.ActiveApp()
		if err != nil {
			return fmt.Errorf("failed to query active channel: %w", err)
		}
		if app == nil {
			fmt.Println("Home screen (no active channel)")
			return nil
		}
		if outputFormat == "json" {
			return printJSON(app)
		}
		fmt.Println(app)
		return nil
	},
}

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show device information",
	Long: `Display the device-info document reported by the device.

The set of fields varies by model and firmware; keys are shown camel-cased
as the ECP client reports them.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}
		info, err := client.DeviceInfo()
		if err != nil {
			return fmt.Errorf("failed to query device info: %w", err)
		}

		if outputFormat == "json" {
			return printJSON(info)
		}
		keys := make([]string, 0, len(info))
		for k := range info {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Printf("%-28s %s\n", k, info[k])
		}
		return nil
	},
}

func init() {
	appsCmd.Flags().StringVar(&outputFormat, "format", "text", "Output format (text, json)")
	activeCmd.Flags().StringVar(&outputFormat, "format", "text", "Output format (text, json)")
	infoCmd.Flags().StringVar(&outputFormat, "format", "text", "Output format (text, json)")
}

var iconCmd = &cobra.Command{
	Use:   "icon <app-id>",
	Short: "Download a channel icon to a temporary file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}
		path, err := client.Icon(args[0])
		if err != nil {
			return fmt.Errorf("failed to download icon: %w", err)
		}
		fmt.Println(path)
		return nil
	},
}

var launchCmd = &cobra.Command{
	Use:   "launch <app-id>",
	Short: "Launch a channel by id",
	Example: `  # Launch Netflix
  rokuctl launch 12`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}
		if err := client.Launch(args[0]); err != nil {
			return fmt.Errorf("failed to launch channel %s: %w", args[0], err)
		}
		return nil
	},
}

var dtvCmd = &cobra.Command{
	Use:   "dtv",
	Short: "Open the live-TV tuner (TV models)",
	Example: `  # Open the tuner on its last channel
  rokuctl dtv

  # Tune to channel 5.1
  rokuctl dtv --ch 5.1`,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}
		if err := client.LaunchDTV(dtvChannel); err != nil {
			return fmt.Errorf("failed to open tuner: %w", err)
		}
		return nil
	},
}

func init() {
	dtvCmd.Flags().StringVar(&dtvChannel, "ch", "", "Channel to tune to (e.g. 5.1)")
}

var keypressCmd = &cobra.Command{
	Use:   "keypress <key>",
	Short: "Send a press-and-release for a remote key",
	Long: `Send a single remote keypress.

The key is either a named remote key (Select, Home, VolumeUp, ...) or a
single character, which is sent as literal text input.`,
	Example: `  rokuctl keypress Select
  rokuctl keypress a`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return sendKey(args[0], (*ecp.Client).Keypress)
	},
}

var keydownCmd = &cobra.Command{
	Use:   "keydown <key>",
	Short: "Press and hold a remote key",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return sendKey(args[0], (*ecp.Client).Keydown)
	},
}

var keyupCmd = &cobra.Command{
	Use:   "keyup <key>",
	Short: "Release a held remote key",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return sendKey(args[0], (*ecp.Client).Keyup)
	},
}

// sendKey validates the key argument and sends it with the given operation.
// Multi-character arguments must name a known remote key; single characters
// pass through as literal input.
func sendKey(arg string, op func(*ecp.Client, ecp.Key) error) error {
	key := ecp.Key(arg)
	if utf8.RuneCountInString(arg) > 1 && !knownKey(key) {
		return fmt.Errorf("unknown remote key %q (known keys: %v)", arg, ecp.Keys)
	}

	client, err := newClient()
	if err != nil {
		return err
	}
	if err := op(client, key); err != nil {
		return fmt.Errorf("failed to send %s: %w", arg, err)
	}
	return nil
}

func knownKey(key ecp.Key) bool {
	for _, k := range ecp.Keys {
		if k == key {
			return true
		}
	}
	return false
}

var textCmd = &cobra.Command{
	Use:   "text <string>",
	Short: "Type a string on the device",
	Long: `Type a string on the device, one keypress per character, in order.

Useful when a search keyboard is on screen.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}
		if err := client.Text(args[0]); err != nil {
			return fmt.Errorf("text entry failed: %w", err)
		}
		return nil
	},
}

var remoteCmd = &cobra.Command{
	Use:   "remote",
	Short: "Launch the interactive terminal remote",
	Long: `Launch an interactive remote-control session.

Arrow keys navigate, enter selects, space toggles playback, t opens text
entry. If no device is specified, the remote scans for one first.`,
	RunE: runRemote,
}

func runRemote(cmd *cobra.Command, args []string) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("the interactive remote requires a terminal; see 'rokuctl --help' for one-shot commands")
	}

	var model tea.Model
	if deviceAddr != "" || os.Getenv(deviceEnvVar) != "" {
		addr, err := resolveAddr()
		if err != nil {
			return err
		}
		model = tui.NewWithClient(ecp.NewClient(addr), addr)
	} else {
		model = tui.New(newScanner())
	}

	_, err := tea.NewProgram(model, tea.WithAltScreen()).Run()
	return err
}

var deviceCmd = &cobra.Command{
	Use:   "device",
	Short: "Show and manage known devices",
	Long: `Show devices remembered from previous scans.

Use 'device default <serial>' to set the device commands target when
--device is not given.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		registry, err := config.LoadRegistry()
		if err != nil {
			return err
		}
		if len(registry.Devices) == 0 {
			fmt.Println("No known devices. Run 'rokuctl scan' first.")
			return nil
		}

		defaultSerial := ""
		if registry.Preferences != nil {
			defaultSerial = registry.Preferences.DefaultDevice
		}

		serials := make([]string, 0, len(registry.Devices))
		for serial := range registry.Devices {
			serials = append(serials, serial)
		}
		sort.Strings(serials)

		for _, serial := range serials {
			device := registry.Devices[serial]
			marker := " "
			if serial == defaultSerial {
				marker = "*"
			}
			name := device.Nickname
			if name == "" {
				name = "-"
			}
			fmt.Printf("%s %-16s %-20s %s\n", marker, serial, device.LastAddr, name)
		}
		return nil
	},
}

var deviceDefaultCmd = &cobra.Command{
	Use:   "default <serial>",
	Short: "Set the default device for commands",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		registry, err := config.LoadRegistry()
		if err != nil {
			return err
		}
		if registry.GetDevice(args[0]) == nil {
			return fmt.Errorf("unknown device serial %q; run 'rokuctl scan' first", args[0])
		}
		registry.SetDefaultDevice(args[0])
		return registry.Save()
	},
}

var deviceNicknameCmd = &cobra.Command{
	Use:   "nickname <serial> <name>",
	Short: "Set a nickname for a known device",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		registry, err := config.LoadRegistry()
		if err != nil {
			return err
		}
		if registry.GetDevice(args[0]) == nil {
			return fmt.Errorf("unknown device serial %q; run 'rokuctl scan' first", args[0])
		}
		registry.SetDeviceNickname(args[0], args[1])
		return registry.Save()
	},
}

func init() {
	deviceCmd.AddCommand(deviceDefaultCmd)
	deviceCmd.AddCommand(deviceNicknameCmd)
}

func printJSON(v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	fmt.Println(string(data))
	return nil
}
