// polechart renders pole charts from a TOML chart definition and a dataset.
//
//	polechart render chart.toml --out chart.png
//	polechart batch north.toml south.toml --out-dir charts --parallel 4
//	polechart inspect chart.toml
//	polechart hit chart.toml --x 175 --y 270
//
// Output settings can also come from POLECHART_* environment variables, e.g.
// POLECHART_FORMAT=svg or POLECHART_LOG_LEVEL=debug.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/iafilius/polechart/src/config"
	"github.com/iafilius/polechart/src/dataset"
	"github.com/iafilius/polechart/src/logger"
	"github.com/iafilius/polechart/src/render"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix("POLECHART")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()
	v.SetDefault("log_level", "info")
	v.SetDefault("parallel", 4)

	root := &cobra.Command{
		Use:           "polechart",
		Short:         "Render multi-row pole charts",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level := v.GetString("log_level")
			if _, err := logger.ParseLevel(level); err != nil {
				return fmt.Errorf("--log-level: %w", err)
			}
			logger.SetLogLevel(level)
			return nil
		},
	}
	pf := root.PersistentFlags()
	pf.String("log-level", "info", "log level (debug, info, warn, error)")
	pf.String("data", "", "dataset file overriding the config's data path")
	pf.String("format", "", "output format: "+strings.Join(render.Formats(), ", "))
	pf.Int("width", 0, "chart width in pixels (config value when 0)")
	pf.Int("height", 0, "chart height in pixels (config value when 0)")
	for _, name := range []string{"log-level", "data", "format", "width", "height"} {
		_ = v.BindPFlag(strings.ReplaceAll(name, "-", "_"), pf.Lookup(name))
	}

	root.AddCommand(
		newRenderCmd(v),
		newBatchCmd(v),
		newInspectCmd(v),
		newHitCmd(v),
	)
	return root
}

// loadChart reads the chart definition and applies flag/env overrides.
func loadChart(v *viper.Viper, path string) (*config.File, error) {
	f, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if err := applyOverrides(v, f); err != nil {
		return nil, err
	}
	return f, nil
}

func applyOverrides(v *viper.Viper, f *config.File) error {
	if d := v.GetString("data"); d != "" {
		f.Data = d
	}
	if s := v.GetString("format"); s != "" {
		f.Format = s
	}
	if w := v.GetInt("width"); w > 0 {
		f.Width = w
	}
	if h := v.GetInt("height"); h > 0 {
		f.Height = h
	}
	_, err := render.ParseFormat(f.Format)
	return err
}

func loadData(f *config.File) ([]any, error) {
	if f.Data == "" {
		return nil, fmt.Errorf("no dataset: set data in the config or pass --data")
	}
	data, err := dataset.Load(f.Data)
	if err != nil {
		return nil, fmt.Errorf("load data: %w", err)
	}
	logger.Debugf("loaded %d records from %s", len(data), f.Data)
	return data, nil
}
