package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/luki/hazard/internal/dashboard"
	"github.com/luki/hazard/internal/logging"
	"github.com/luki/hazard/internal/monitor"
)

// bridgeBuffer is how many dashboard updates may queue while the UI redraws.
const bridgeBuffer = 16

func newRootCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:   "hazard",
		Short: "Simulated environmental-hazard dashboard",
		Long: `hazard fabricates temperature, gas, smoke and motion readings, turns them
into a 0-100 risk score and shows the score as a live series with a log of
danger alerts. Without a subcommand it starts the interactive dashboard.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTUI(cmd, configPath)
		},
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "config file (default: ./hazard.yaml or ~/.config/hazard/hazard.yaml)")
	addConfigFlags(root)

	root.AddCommand(
		newRunCmd(&configPath),
		newScoreCmd(),
		newRecordingsCmd(&configPath),
	)
	return root
}

// tuiLogPath keeps log lines off the terminal the dashboard draws on.
func tuiLogPath() string {
	return filepath.Join(os.TempDir(), "hazard.log")
}

func runTUI(cmd *cobra.Command, configPath string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := loadConfig(cmd, configPath)
	if err != nil {
		return err
	}
	log, err := logging.New(cfg.Log, tuiLogPath())
	if err != nil {
		return err
	}

	bridge := monitor.NewBridge(bridgeBuffer)
	a, err := newApp(cfg, log, dashboard.Options{
		InitialCycle: cfg.Dashboard.InitialCycle,
		AutoStart:    cfg.Dashboard.AutoStart,
		Renderers:    []dashboard.Renderer{bridge},
	})
	if err != nil {
		return err
	}
	defer a.close()

	recording := ""
	if a.rec != nil {
		recording = a.rec.Dir()
	}
	model := monitor.New(a.ctrl, bridge, monitor.Options{
		Interval:     cfg.Dashboard.Interval,
		RecordingDir: recording,
	})
	p := tea.NewProgram(model, tea.WithAltScreen())

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	errc := make(chan error, 1)
	go func() {
		errc <- a.run(ctx)
		p.Quit()
	}()

	_, uiErr := p.Run()
	bridge.Close()
	cancel()

	if err := <-errc; err != nil {
		return err
	}
	if uiErr != nil {
		return fmt.Errorf("dashboard ui: %w", uiErr)
	}
	return nil
}
