// Package config loads and saves chart definitions stored as TOML.
//
// A file carries the output settings (size, format, data path) next to the
// chart options:
//
//	width = 800
//	format = "svg"
//	data = "poles.jsonl"
//
//	[axis]
//	key_path = "pole.name"
//
//	[[rows]]
//	title = "Speed"
//	key_path = "speed"
//	max = 120.0
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/iafilius/polechart/src/chart"
)

const (
	DefaultWidth  = 800
	DefaultFormat = "png"
)

// File is one chart definition.
type File struct {
	Width  int    `toml:"width,omitempty"`
	Height int    `toml:"height,omitempty"`
	Format string `toml:"format,omitempty"`
	// Data is the dataset path, relative to the config file.
	Data string `toml:"data,omitempty"`

	chart.Options
}

// Dimensions derives the chart height from its width when no height is
// set: a third of the width, kept between 280 and 520 pixels. Widths below
// 800 are raised to 800.
func Dimensions(rawW int) (int, int) {
	w := rawW
	if w < DefaultWidth {
		w = DefaultWidth
	}
	h := int(float32(w) * 0.33)
	if h < 280 {
		h = 280
	}
	if h > 520 {
		h = 520
	}
	return w, h
}

// Load reads path, applies defaults and validates the chart options.
func Load(path string) (*File, error) {
	var f File
	md, err := toml.DecodeFile(path, &f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return nil, fmt.Errorf("unknown config keys in %s: %s", path, strings.Join(keys, ", "))
	}
	if f.Data != "" && !filepath.IsAbs(f.Data) {
		f.Data = filepath.Join(filepath.Dir(path), f.Data)
	}
	if err := f.applyDefaults(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return &f, nil
}

func (f *File) applyDefaults() error {
	switch {
	case f.Width < 0 || f.Height < 0:
		return fmt.Errorf("invalid size %dx%d", f.Width, f.Height)
	case f.Width == 0 && f.Height == 0:
		f.Width, f.Height = Dimensions(DefaultWidth)
	case f.Height == 0:
		_, f.Height = Dimensions(f.Width)
	case f.Width == 0:
		f.Width = DefaultWidth
	}
	f.Format = strings.ToLower(strings.TrimSpace(f.Format))
	if f.Format == "" {
		f.Format = DefaultFormat
	}
	if _, err := chart.Merge(f.Options); err != nil {
		return err
	}
	return nil
}

// Save writes f to path as TOML.
func (f *File) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer out.Close()
	if err := toml.NewEncoder(out).Encode(f); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return out.Close()
}
