package dpadcursor

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// statsOverlay displays FPS/TPS and the cursor state in the top-left corner.
// The text is refreshed every ~0.5 seconds.
type statsOverlay struct {
	img        *ebiten.Image
	sinceFlush float64
}

func newStatsOverlay() *statsOverlay {
	// 220x48 is enough for three short lines.
	return &statsOverlay{img: ebiten.NewImage(220, 48), sinceFlush: 1}
}

func statsText(fps, tps float64, v CursorView) string {
	return fmt.Sprintf("FPS: %.1f\nTPS: %.1f\n%s (%.0f, %.0f)",
		fps, tps, v.Mode, v.Position.X, v.Position.Y)
}

func (o *statsOverlay) draw(screen *ebiten.Image, dt float64, v CursorView) {
	o.sinceFlush += dt
	if o.sinceFlush >= 0.5 {
		o.sinceFlush = 0
		o.img.Clear()
		// Semi-transparent background for readability
		o.img.Fill(color.RGBA{0, 0, 0, 128})
		ebitenutil.DebugPrint(o.img, statsText(ebiten.ActualFPS(), ebiten.ActualTPS(), v))
	}
	screen.DrawImage(o.img, nil)
}
