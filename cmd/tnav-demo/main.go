// Command tnav-demo is a small terminal app that exercises the navigation
// stack: a list screen, a detail screen fed by parameters, and a picker dialog
// that returns a result.
package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/BrandonKowalski/tnav/pkg/tnav"
	"github.com/BrandonKowalski/tnav/pkg/tnav/teahost"
)

var (
	cfgFile  string
	device   string
	lang     string
	messages []string
)

var rootCmd = &cobra.Command{
	Use:   "tnav-demo",
	Short: "Browse a fruit list with tnav navigation",
	Long: `tnav-demo hosts a back stack in a terminal UI.

Keys: up/down to move, enter to open, p to pick a color, h to go home,
esc to go back, ctrl+c to quit. With --device, the hardware back button of
that evdev node also goes back.`,
	SilenceUsage: true,
	RunE:         run,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().StringVarP(&cfgFile, "config", "c", "", "TOML config file")
	rootCmd.Flags().StringVarP(&device, "device", "d", "", "evdev node for the back button, e.g. /dev/input/event3")
	rootCmd.Flags().StringVar(&lang, "lang", "en", "language for screen titles")
	rootCmd.Flags().StringSliceVar(&messages, "messages", nil, "TOML message files, e.g. active.fr.toml")
}

func run(cmd *cobra.Command, _ []string) error {
	cfg := tnav.Config{}
	if cfgFile != "" {
		var err error
		if cfg, err = tnav.LoadConfig(cfgFile); err != nil {
			return err
		}
	}

	opts := cfg.Options()
	opts.LogOutput = io.Discard
	nav := tnav.New(opts)
	defer nav.Shutdown()
	defer tnav.Close()

	localizer, err := teahost.NewLocalizer(lang, messages...)
	if err != nil {
		return err
	}

	m := teahost.New(nav, Menu).
		Register(Menu, newMenuScreen(), teahost.Title("menu.title"), teahost.FromConfig(cfg, Menu.Name())).
		Register(Detail, &detailScreen{}, teahost.Title("detail.title"), teahost.FromConfig(cfg, Detail.Name())).
		Register(Picker, newPickerScreen(), teahost.Dialog(), teahost.Title("picker.title"), teahost.FromConfig(cfg, Picker.Name())).
		SetLocalizer(localizer)

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	if device != "" {
		if err := watchBackButton(ctx, device, nav); err != nil {
			return err
		}
	}

	return teahost.Run(m)
}
