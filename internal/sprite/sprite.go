// Package sprite writes Pokémon sprite images to disk and combines an
// evolution line into a single side-by-side strip.
package sprite

import (
	"bytes"
	"errors"
	"fmt"
	"image/png"
	"os"
	"path/filepath"

	gim "github.com/ozankasikci/go-image-merge"

	"github.com/nao1215/pokedex/internal/model"
)

var (
	// ErrNotPNG is returned when sprite data is not a PNG image.
	ErrNotPNG = errors.New("sprite is not a PNG image")

	// ErrNoSprites is returned when there is nothing to save or merge.
	ErrNoSprites = errors.New("no sprites to merge")
)

// Save writes data to dir/<name>.png and returns the path.
// The name is normalized so "Mr. Mime" and "mr. mime" land in one file.
func Save(dir, name string, data []byte) (string, error) {
	if _, err := png.DecodeConfig(bytes.NewReader(data)); err != nil {
		return "", fmt.Errorf("%w: %s: %w", ErrNotPNG, name, err)
	}

	base := filepath.Base(model.NormalizeName(name))
	if base == "." || base == string(filepath.Separator) || base == "" {
		return "", fmt.Errorf("invalid sprite name %q", name)
	}

	if err := os.MkdirAll(dir, 0750); err != nil {
		return "", fmt.Errorf("failed to create sprite directory: %w", err)
	}

	path := filepath.Join(dir, base+".png")
	if err := os.WriteFile(path, data, 0600); err != nil {
		return "", fmt.Errorf("failed to write sprite: %w", err)
	}
	return path, nil
}

// SaveEntry saves every downloaded sprite of the entry's evolution line,
// in line order. Stages without image data are skipped.
func SaveEntry(dir string, entry *model.Entry) ([]string, error) {
	var paths []string
	for _, stage := range entry.Evolution {
		if len(stage.Sprite) == 0 {
			continue
		}
		path, err := Save(dir, stage.Name, stage.Sprite)
		if err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// Strip merges the PNG files at paths left to right into one image
// written to out.
func Strip(paths []string, out string) error {
	if len(paths) == 0 {
		return ErrNoSprites
	}

	grids := make([]*gim.Grid, 0, len(paths))
	for _, p := range paths {
		grids = append(grids, &gim.Grid{ImageFilePath: p})
	}

	rgba, err := gim.New(grids, len(grids), 1).Merge()
	if err != nil {
		return fmt.Errorf("failed to merge sprites: %w", err)
	}

	if dir := filepath.Dir(out); dir != "" {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	f, err := os.Create(out) //nolint:gosec // output path is chosen by the user
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", out, err)
	}
	if err := png.Encode(f, rgba); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to encode strip: %w", err)
	}
	return f.Close()
}
