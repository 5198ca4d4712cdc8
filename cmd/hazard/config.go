package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/luki/hazard/internal/config"
)

// flagKeys maps config keys to the global flags that override them.
var flagKeys = map[string]string{
	"dashboard.interval": "interval",
	"log.level":          "log-level",
	"metrics.addr":       "metrics-addr",
	"recorder.enabled":   "record",
}

func addConfigFlags(cmd *cobra.Command) {
	f := cmd.PersistentFlags()
	f.Duration("interval", 0, "time between automatic cycles (overrides dashboard.interval)")
	f.String("log-level", "", "log level (overrides log.level)")
	f.String("metrics-addr", "", "serve /metrics and /healthz on this address (overrides metrics.addr)")
	f.Bool("record", false, "record every cycle to CSV (overrides recorder.enabled)")
}

// loadConfig reads the configuration with any flags set on cmd layered on
// top of file and environment values.
func loadConfig(cmd *cobra.Command, path string) (*config.Config, error) {
	v := viper.New()
	for key, name := range flagKeys {
		flag := cmd.Flags().Lookup(name)
		if flag == nil {
			continue
		}
		if err := v.BindPFlag(key, flag); err != nil {
			return nil, fmt.Errorf("bind --%s: %w", name, err)
		}
	}
	return config.LoadWith(v, path)
}
