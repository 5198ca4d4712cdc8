package main

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/luki/hazard/internal/store"
)

func newRecordingsCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "recordings [day]",
		Short: "Summarize the CSV recordings per day",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, *configPath)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			dir := cfg.Recorder.Dir

			days, err := store.ListDays(dir)
			if err != nil && !errors.Is(err, fs.ErrNotExist) {
				return fmt.Errorf("list recordings: %w", err)
			}
			if len(args) == 1 {
				days = filterDay(days, args[0])
			}
			if len(days) == 0 {
				fmt.Fprintf(out, "no recordings in %s\n", dir)
				return nil
			}

			for _, day := range days {
				cycles, err := store.LoadFile(filepath.Join(dir, day+".csv"))
				if err != nil {
					return fmt.Errorf("load %s: %w", day, err)
				}
				s := store.Summarize(cycles)
				fmt.Fprintf(out, "%s  cycles %4d  alerts %3d  avg %5.1f  peak %3d  safe %d  warning %d  danger %d\n",
					day, s.Cycles, s.Alerts, s.Avg, s.Peak,
					s.Levels["safe"], s.Levels["warning"], s.Levels["danger"])
			}
			return nil
		},
	}
}

func filterDay(days []string, want string) []string {
	for _, d := range days {
		if d == want {
			return []string{d}
		}
	}
	return nil
}
