package main

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/iafilius/polechart/src/chart"
	"github.com/iafilius/polechart/src/logger"
	"github.com/iafilius/polechart/src/render"
	"github.com/iafilius/polechart/src/surface"
)

func newRenderCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "render CONFIG",
		Short: "Render one chart to an image file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			defer logger.TimeTrack(time.Now(), "render")
			f, err := loadChart(v, args[0])
			if err != nil {
				return err
			}
			data, err := loadData(f)
			if err != nil {
				return err
			}
			format, _ := render.ParseFormat(f.Format)
			out := v.GetString("out")
			if out == "" {
				out = strings.TrimSuffix(args[0], filepath.Ext(args[0])) + format.Ext()
			}
			if _, err := render.RenderFile(out, format, f.Width, f.Height, f.Options, data); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%dx%d %s, %d categories)\n", out, f.Width, f.Height, format, len(data))
			return nil
		},
	}
	cmd.Flags().StringP("out", "o", "", "output file (CONFIG with the format extension when empty)")
	_ = v.BindPFlag("out", cmd.Flags().Lookup("out"))
	return cmd
}

func newBatchCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "batch CONFIG...",
		Short: "Render several charts concurrently",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			outDir := v.GetString("out_dir")
			jobs := make([]render.Job, 0, len(args))
			for _, path := range args {
				job, err := render.JobFromConfig(path, outDir)
				if err != nil {
					return err
				}
				if err := applyOverrides(v, job.File); err != nil {
					return fmt.Errorf("%s: %w", path, err)
				}
				format, _ := render.ParseFormat(job.File.Format)
				job.Out = filepath.Join(outDir, job.Name+format.Ext())
				jobs = append(jobs, job)
			}
			results, err := render.Batch(cmd.Context(), jobs, v.GetInt("parallel"))
			w := cmd.OutOrStdout()
			for _, r := range results {
				if r.Err != nil {
					fmt.Fprintf(w, "FAIL %s: %v\n", r.Name, r.Err)
					continue
				}
				fmt.Fprintf(w, "ok   %s -> %s (%s)\n", r.Name, r.Out, r.Duration.Round(time.Millisecond))
			}
			return err
		},
	}
	cmd.Flags().String("out-dir", ".", "directory for rendered charts")
	cmd.Flags().Int("parallel", 4, "charts rendered at once")
	_ = v.BindPFlag("out_dir", cmd.Flags().Lookup("out-dir"))
	_ = v.BindPFlag("parallel", cmd.Flags().Lookup("parallel"))
	return cmd
}

// drawRecorded draws the chart on a recording surface, which needs no
// encoder and keeps the geometry for inspection.
func drawRecorded(v *viper.Viper, path string) (*chart.Controller, error) {
	f, err := loadChart(v, path)
	if err != nil {
		return nil, err
	}
	data, err := loadData(f)
	if err != nil {
		return nil, err
	}
	rec, err := surface.NewRecorder(f.Width, f.Height)
	if err != nil {
		return nil, err
	}
	ctl, err := chart.NewController(rec, f.Width, f.Height)
	if err != nil {
		return nil, err
	}
	if err := ctl.Draw(f.Options, data); err != nil {
		return nil, err
	}
	return ctl, nil
}

func newInspectCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect CONFIG",
		Short: "Print tick positions and plotted points",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctl, err := drawRecorded(v, args[0])
			if err != nil {
				return err
			}
			writeInspect(cmd.OutOrStdout(), ctl)
			return nil
		},
	}
}

func writeInspect(w io.Writer, ctl *chart.Controller) {
	cfg, _ := ctl.Config()
	width, height := ctl.Size()
	ticks := ctl.Ticks()
	fmt.Fprintf(w, "Chart %gx%g: %d records, %d categories, %d rows\n", width, height, len(ctl.Data()), len(ticks), len(cfg.Rows))
	fmt.Fprintf(w, "Axis %s (%s)\n", cfg.Axis.Title, cfg.Axis.KeyPath)
	for i, t := range ticks {
		label := t.Label
		if label == "" {
			label = "(none)"
		}
		fmt.Fprintf(w, "  tick %d: %s x=%.1f\n", i, label, t.X)
	}
	for r, row := range ctl.Series() {
		rc := cfg.Rows[r]
		fmt.Fprintf(w, "Row %d %s (%s) range %s..%s %s\n", r, rc.Title, rc.KeyPath,
			chart.FormatValue(rc.Min), chart.FormatValue(rc.Max), rc.PercentageName)
		for _, s := range row {
			if len(s.Points) == 0 {
				fmt.Fprintf(w, "  %s: no data\n", s.Label)
				continue
			}
			parts := make([]string, len(s.Points))
			for i, p := range s.Points {
				parts[i] = fmt.Sprintf("%s (%s) y=%.1f", chart.FormatValue(p.Value), chart.FormatPercentage(p.Percentage), p.Y)
			}
			fmt.Fprintf(w, "  %s: %s\n", s.Label, strings.Join(parts, ", "))
		}
	}
}

func newHitCmd(v *viper.Viper) *cobra.Command {
	var x, y float64
	cmd := &cobra.Command{
		Use:   "hit CONFIG",
		Short: "Report the point and category under a pointer position",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctl, err := drawRecorded(v, args[0])
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "cursor: %s\n", ctl.PointerMove(x, y))
			if cat, ok := ctl.CategoryAt(x, y); ok {
				fmt.Fprintf(w, "category: %d %s\n", cat, ctl.Ticks()[cat].Label)
			} else {
				fmt.Fprintln(w, "category: none")
			}
			if hit, ok := ctl.PointAt(x, y); ok {
				fmt.Fprintf(w, "point: %s\n", hit)
			} else {
				fmt.Fprintln(w, "point: none")
			}
			return nil
		},
	}
	cmd.Flags().Float64Var(&x, "x", 0, "pointer x")
	cmd.Flags().Float64Var(&y, "y", 0, "pointer y")
	return cmd
}
