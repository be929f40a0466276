package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/widget"

	"github.com/iafilius/polechart/src/chart"
	"github.com/iafilius/polechart/src/config"
	"github.com/iafilius/polechart/src/dataset"
	"github.com/iafilius/polechart/src/logger"
	"github.com/iafilius/polechart/src/render"
	"github.com/iafilius/polechart/src/surface"
)

// viewer holds the loaded chart and the raster it is drawn on.
type viewer struct {
	configPath string
	dataPath   string

	file   *config.File
	data   []any
	raster *surface.Raster
	ctl    *chart.Controller

	img     *canvas.Image
	overlay *chartOverlay
	status  *widget.Label
}

func (v *viewer) imageSize() (float32, float32) {
	if v.raster == nil {
		return 0, 0
	}
	w, h := v.raster.Size()
	return float32(w), float32(h)
}

func (v *viewer) ticks() []chart.TickPoint {
	if v.ctl == nil {
		return nil
	}
	return v.ctl.Ticks()
}

// load reads the config and dataset again and redraws. On error the
// previous chart stays on screen.
func (v *viewer) load() error {
	f, err := config.Load(v.configPath)
	if err != nil {
		return err
	}
	if v.dataPath != "" {
		f.Data = v.dataPath
	}
	if f.Data == "" {
		return fmt.Errorf("no dataset: set data in %s or pass -data", v.configPath)
	}
	data, err := dataset.Load(f.Data)
	if err != nil {
		return fmt.Errorf("load data: %w", err)
	}

	raster, ctl := v.raster, v.ctl
	if raster == nil {
		raster, err = surface.NewRaster(f.Width, f.Height)
	} else if w, h := raster.Size(); w != f.Width || h != f.Height {
		raster, err = surface.NewRaster(f.Width, f.Height)
		ctl = nil
	}
	if err != nil {
		return err
	}
	if ctl == nil {
		if ctl, err = chart.NewController(raster, f.Width, f.Height); err != nil {
			return err
		}
	}
	if err := ctl.Draw(f.Options, data); err != nil {
		return err
	}
	v.file, v.data, v.raster, v.ctl = f, data, raster, ctl
	logger.Infof("loaded %s: %d categories, %d rows", v.configPath, len(data), len(f.Rows))
	return nil
}

// refresh pushes the raster to the screen.
func (v *viewer) refresh() {
	if v.img != nil && v.raster != nil {
		v.img.Image = v.raster.Image()
		v.img.Refresh()
	}
	if v.overlay != nil {
		v.overlay.Refresh()
	}
}

func (v *viewer) reload() {
	if err := v.load(); err != nil {
		logger.Warnf("reload %s: %v", v.configPath, err)
		v.setStatus("Reload failed: " + err.Error())
		return
	}
	v.refresh()
	v.setStatus(fmt.Sprintf("%s: %d categories", filepath.Base(v.configPath), len(v.data)))
}

// export writes the current chart next to the config file.
func (v *viewer) export(format render.Format) (string, error) {
	if v.file == nil {
		return "", fmt.Errorf("nothing loaded")
	}
	out := strings.TrimSuffix(v.configPath, filepath.Ext(v.configPath)) + format.Ext()
	if _, err := render.RenderFile(out, format, v.file.Width, v.file.Height, v.file.Options, v.data); err != nil {
		return "", err
	}
	return out, nil
}

func (v *viewer) setStatus(s string) {
	if v.status != nil {
		v.status.SetText(s)
	}
}
