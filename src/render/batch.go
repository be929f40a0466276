package render

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/iafilius/polechart/src/config"
	"github.com/iafilius/polechart/src/dataset"
	"github.com/iafilius/polechart/src/logger"
)

// Job is one chart to export. Data is loaded from File.Data when nil.
type Job struct {
	Name string
	File *config.File
	Data []any
	Out  string
}

// Result reports one finished job.
type Result struct {
	Name     string
	Out      string
	Duration time.Duration
	Err      error
}

// JobFromConfig loads a chart config and derives the output path: outDir
// joined with the config's base name and the format extension.
func JobFromConfig(path, outDir string) (Job, error) {
	f, err := config.Load(path)
	if err != nil {
		return Job{}, err
	}
	format, err := ParseFormat(f.Format)
	if err != nil {
		return Job{}, fmt.Errorf("config %s: %w", path, err)
	}
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return Job{Name: name, File: f, Out: filepath.Join(outDir, name+format.Ext())}, nil
}

// Run renders a single job.
func (j Job) Run() error {
	if j.File == nil {
		return fmt.Errorf("job %s: no config", j.Name)
	}
	format, err := ParseFormat(j.File.Format)
	if err != nil {
		return err
	}
	data := j.Data
	if data == nil {
		if j.File.Data == "" {
			return fmt.Errorf("job %s: no data", j.Name)
		}
		if data, err = dataset.Load(j.File.Data); err != nil {
			return fmt.Errorf("load data: %w", err)
		}
	}
	_, err = RenderFile(j.Out, format, j.File.Width, j.File.Height, j.File.Options, data)
	return err
}

// Batch renders jobs with at most parallel in flight (unbounded when
// parallel < 1). A failing job does not stop the others; results and the
// joined error both keep job order. Jobs not yet started when ctx is
// cancelled report ctx.Err().
func Batch(ctx context.Context, jobs []Job, parallel int) ([]Result, error) {
	results := make([]Result, len(jobs))
	g, gctx := errgroup.WithContext(ctx)
	if parallel > 0 {
		g.SetLimit(parallel)
	}

	// indexed by job so the joined error keeps job order
	errs := make([]error, len(jobs))
	for i, job := range jobs {
		g.Go(func() error {
			res := Result{Name: job.Name, Out: job.Out}
			if err := gctx.Err(); err != nil {
				res.Err = err
			} else {
				start := time.Now()
				res.Err = job.Run()
				res.Duration = time.Since(start)
			}
			results[i] = res
			if res.Err != nil {
				logger.Warnf("render %s failed: %v", job.Name, res.Err)
				errs[i] = fmt.Errorf("%s: %w", job.Name, res.Err)
				return nil // non-fatal
			}
			logger.Debugf("rendered %s -> %s in %s", job.Name, job.Out, res.Duration)
			return nil
		})
	}
	_ = g.Wait()
	return results, errors.Join(errs...)
}
