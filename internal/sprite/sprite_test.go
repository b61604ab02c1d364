package sprite

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/nao1215/pokedex/internal/model"
)

func testPNG(t *testing.T, size int) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, size, size))
	for y := range size {
		for x := range size {
			img.Set(x, y, color.RGBA{R: 200, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("failed to encode png: %v", err)
	}
	return buf.Bytes()
}

func TestSave(t *testing.T) {
	t.Parallel()

	t.Run("writes normalized file name", func(t *testing.T) {
		t.Parallel()

		dir := filepath.Join(t.TempDir(), "sprites")
		data := testPNG(t, 4)

		path, err := Save(dir, " Pikachu ", data)
		if err != nil {
			t.Fatalf("Save failed: %v", err)
		}
		if path != filepath.Join(dir, "pikachu.png") {
			t.Errorf("path = %s", path)
		}
		got, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("failed to read sprite: %v", err)
		}
		if !bytes.Equal(got, data) {
			t.Error("file contents differ")
		}
	})

	t.Run("rejects non-png data", func(t *testing.T) {
		t.Parallel()

		_, err := Save(t.TempDir(), "pikachu", []byte("<html>"))
		if !errors.Is(err, ErrNotPNG) {
			t.Errorf("expected ErrNotPNG, got %v", err)
		}
	})

	t.Run("path components are stripped", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		path, err := Save(dir, "../../evil", testPNG(t, 2))
		if err != nil {
			t.Fatalf("Save failed: %v", err)
		}
		if filepath.Dir(path) != dir {
			t.Errorf("sprite escaped directory: %s", path)
		}
	})
}

func TestSaveEntry(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	entry := &model.Entry{Evolution: []model.EvolutionStage{
		{Name: "pichu"},
		{Name: "pikachu", Sprite: testPNG(t, 4)},
		{Name: "raichu", Sprite: testPNG(t, 4)},
	}}

	paths, err := SaveEntry(dir, entry)
	if err != nil {
		t.Fatalf("SaveEntry failed: %v", err)
	}
	want := []string{filepath.Join(dir, "pikachu.png"), filepath.Join(dir, "raichu.png")}
	if len(paths) != len(want) || paths[0] != want[0] || paths[1] != want[1] {
		t.Errorf("paths = %v, want %v", paths, want)
	}
}

func TestStrip(t *testing.T) {
	t.Parallel()

	t.Run("merges left to right", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		var paths []string
		for _, name := range []string{"pichu", "pikachu", "raichu"} {
			p, err := Save(dir, name, testPNG(t, 8))
			if err != nil {
				t.Fatalf("Save failed: %v", err)
			}
			paths = append(paths, p)
		}

		out := filepath.Join(dir, "strip", "pikachu-line.png")
		if err := Strip(paths, out); err != nil {
			t.Fatalf("Strip failed: %v", err)
		}

		f, err := os.Open(out)
		if err != nil {
			t.Fatalf("failed to open strip: %v", err)
		}
		defer f.Close()
		cfg, err := png.DecodeConfig(f)
		if err != nil {
			t.Fatalf("strip is not a png: %v", err)
		}
		if cfg.Width != 24 || cfg.Height != 8 {
			t.Errorf("strip size = %dx%d, want 24x8", cfg.Width, cfg.Height)
		}
	})

	t.Run("no sprites", func(t *testing.T) {
		t.Parallel()

		if err := Strip(nil, filepath.Join(t.TempDir(), "x.png")); !errors.Is(err, ErrNoSprites) {
			t.Errorf("expected ErrNoSprites, got %v", err)
		}
	})
}
