package game

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"log/slog"
	"os"

	"github.com/ncruces/zenity"

	"github.com/iburimskiy/constellation/internal/soundtrack"
)

func (g *Game) openSoundtrackDialog() error {
	filename, err := zenity.SelectFile(
		zenity.Title("Open Soundtrack"),
		zenity.FileFilters{{
			Name:     "Audio",
			Patterns: soundtrack.Patterns,
		}},
	)
	if err != nil {
		if errors.Is(err, zenity.ErrCanceled) {
			return nil
		}
		return err
	}
	if err := g.LoadSoundtrack(filename); err != nil {
		return err
	}
	g.status = "Playing " + g.player.Track()
	return nil
}

// saveSnapshotDialog grabs the constellation as it is now and asks where to
// write it.
func (g *Game) saveSnapshotDialog() error {
	if g.canvas == nil {
		return nil
	}
	img := g.canvas.Snapshot()
	filename, err := zenity.SelectFileSave(
		zenity.Title("Save Snapshot"),
		zenity.Filename("constellation.png"),
		zenity.ConfirmOverwrite(),
		zenity.FileFilters{{
			Name:     "PNG image",
			Patterns: []string{"*.png"},
		}},
	)
	if err != nil {
		if errors.Is(err, zenity.ErrCanceled) {
			return nil
		}
		return err
	}
	if err := writePNG(filename, img); err != nil {
		return err
	}
	g.status = "Snapshot saved to " + filename
	slog.Info("Snapshot saved", "path", filename, "width", img.Bounds().Dx(), "height", img.Bounds().Dy())
	return nil
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create snapshot: %w", err)
	}
	if err := png.Encode(f, img); err != nil {
		_ = f.Close()
		return fmt.Errorf("encode snapshot: %w", err)
	}
	return f.Close()
}
