// poleview shows a pole chart in a window. Hovering a marker shows its
// value; the category column under the pointer is highlighted.
//
//	poleview -config chart.toml [-data poles.jsonl]
package main

import (
	"flag"
	"fmt"
	"os"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"

	"github.com/iafilius/polechart/src/logger"
	"github.com/iafilius/polechart/src/render"
)

func main() {
	var configFlag, dataFlag, levelFlag string
	flag.StringVar(&configFlag, "config", "", "Path to the chart TOML file")
	flag.StringVar(&dataFlag, "data", "", "Dataset overriding the config's data path")
	flag.StringVar(&levelFlag, "log-level", "info", "Log level (debug, info, warn, error)")
	flag.Parse()
	logger.SetLogLevel(levelFlag)
	if configFlag == "" {
		fmt.Fprintln(os.Stderr, "usage: poleview -config chart.toml [-data file]")
		os.Exit(2)
	}

	v := &viewer{configPath: configFlag, dataPath: dataFlag}
	if err := v.load(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	a := app.NewWithID("com.polechart.viewer")
	w := a.NewWindow("Pole Chart - " + configFlag)
	w.Resize(fyne.NewSize(float32(v.file.Width), float32(v.file.Height)+40))

	v.img = canvas.NewImageFromImage(v.raster.Image())
	v.img.FillMode = canvas.ImageFillContain
	v.img.ScaleMode = canvas.ImageScaleSmooth
	v.overlay = newChartOverlay(v)
	v.status = widget.NewLabel("")

	exportBtn := func(f render.Format) func() {
		return func() {
			out, err := v.export(f)
			if err != nil {
				dialog.ShowError(err, w)
				return
			}
			v.setStatus("Exported " + out)
		}
	}
	toolbar := container.NewHBox(
		widget.NewButton("Reload", v.reload),
		widget.NewButton("Export PNG", exportBtn(render.FormatPNG)),
		widget.NewButton("Export SVG", exportBtn(render.FormatSVG)),
		v.status,
	)
	w.SetContent(container.NewBorder(toolbar, nil, nil, nil, container.NewStack(v.img, v.overlay)))

	w.SetMainMenu(fyne.NewMainMenu(fyne.NewMenu("File",
		fyne.NewMenuItem("Reload", v.reload),
		fyne.NewMenuItem("Export PNG", exportBtn(render.FormatPNG)),
		fyne.NewMenuItem("Export SVG", exportBtn(render.FormatSVG)),
	)))
	canv := w.Canvas()
	for _, mod := range []fyne.KeyModifier{fyne.KeyModifierSuper, fyne.KeyModifierControl} {
		canv.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyR, Modifier: mod}, func(fyne.Shortcut) { v.reload() })
		canv.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyW, Modifier: mod}, func(fyne.Shortcut) { w.Close() })
	}

	v.setStatus(fmt.Sprintf("%d categories", len(v.data)))
	w.ShowAndRun()
}
