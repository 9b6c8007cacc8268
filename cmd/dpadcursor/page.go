package main

import (
	"image/color"
	"log/slog"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/phanxgames/dpadcursor"
)

const (
	pageTile     = 96
	pageCols     = 24
	pageRows     = 40
	pageMinScale = 0.25
	pageMaxScale = 4
)

type tileID struct{ col, row int }

type dragState struct {
	active bool
	moved  bool
	last   dpadcursor.Vec2
}

type pinchState struct {
	active     bool
	startDist  float64
	startScale float64
}

type selectionState struct {
	active   bool
	from, to dpadcursor.Vec2
}

// page is a scrollable, zoomable grid of tiles that only understands
// pointer input. Clicking a tile toggles it, long-pressing flags it, and
// dragging pans the grid.
type page struct {
	logger *slog.Logger

	viewW, viewH float64
	offset       dpadcursor.Vec2
	scale        float64
	// nativeScroll off forces edge motion through the synthetic drag.
	nativeScroll bool

	marked  map[tileID]bool
	flagged map[tileID]bool
	hover   dpadcursor.Vec2

	drag      dragState
	pinch     pinchState
	selection selectionState
}

func newPage(logger *slog.Logger) *page {
	return &page{
		logger:       logger,
		scale:        1,
		nativeScroll: true,
		marked:       make(map[tileID]bool),
		flagged:      make(map[tileID]bool),
	}
}

func (p *page) setViewport(w, h int) {
	p.viewW, p.viewH = float64(w), float64(h)
	p.clampOffset()
}

func (p *page) contentSize() (float64, float64) {
	return pageCols * pageTile * p.scale, pageRows * pageTile * p.scale
}

func (p *page) maxOffset() (float64, float64) {
	cw, ch := p.contentSize()
	return math.Max(0, cw-p.viewW), math.Max(0, ch-p.viewH)
}

func (p *page) clampOffset() {
	mx, my := p.maxOffset()
	p.offset.X = math.Min(math.Max(p.offset.X, 0), mx)
	p.offset.Y = math.Min(math.Max(p.offset.Y, 0), my)
}

func (p *page) tileAt(x, y float64) (tileID, bool) {
	cx := (x + p.offset.X) / (pageTile * p.scale)
	cy := (y + p.offset.Y) / (pageTile * p.scale)
	id := tileID{col: int(math.Floor(cx)), row: int(math.Floor(cy))}
	if id.col < 0 || id.row < 0 || id.col >= pageCols || id.row >= pageRows {
		return id, false
	}
	return id, true
}

func (p *page) DispatchPointerEvent(ev dpadcursor.PointerEvent) {
	pos := dpadcursor.Vec2{X: ev.X, Y: ev.Y}
	switch ev.Action {
	case dpadcursor.ActionHoverMove:
		p.hover = pos
	case dpadcursor.ActionDown:
		p.drag = dragState{active: true, last: pos}
	case dpadcursor.ActionPointer2Down:
		p.drag.moved = true
		p.pinch = pinchState{active: true, startDist: pointerDist(ev), startScale: p.scale}
	case dpadcursor.ActionMove:
		if p.pinch.active && ev.PointerCount == 2 {
			p.zoomTo(ev)
			return
		}
		if !p.drag.active {
			return
		}
		dx, dy := ev.X-p.drag.last.X, ev.Y-p.drag.last.Y
		if dx != 0 || dy != 0 {
			p.drag.moved = true
		}
		p.offset.X -= dx
		p.offset.Y -= dy
		p.clampOffset()
		p.drag.last = pos
		p.hover = pos
	case dpadcursor.ActionPointer2Up:
		p.pinch.active = false
	case dpadcursor.ActionUp:
		if p.drag.active && !p.drag.moved {
			if id, ok := p.tileAt(ev.X, ev.Y); ok {
				p.marked[id] = !p.marked[id]
				p.logger.Debug("tile toggled", "col", id.col, "row", id.row, "marked", p.marked[id])
			}
		}
		p.drag = dragState{}
		p.pinch = pinchState{}
	case dpadcursor.ActionCancel:
		p.drag = dragState{}
		p.pinch = pinchState{}
	}
}

func pointerDist(ev dpadcursor.PointerEvent) float64 {
	return math.Hypot(ev.X2-ev.X, ev.Y2-ev.Y)
}

// zoomTo rescales around the midpoint of the two pointers.
func (p *page) zoomTo(ev dpadcursor.PointerEvent) {
	if p.pinch.startDist == 0 {
		return
	}
	scale := p.pinch.startScale * pointerDist(ev) / p.pinch.startDist
	scale = math.Min(math.Max(scale, pageMinScale), pageMaxScale)
	mx, my := (ev.X+ev.X2)/2, (ev.Y+ev.Y2)/2
	k := scale / p.scale
	p.offset.X = (p.offset.X+mx)*k - mx
	p.offset.Y = (p.offset.Y+my)*k - my
	p.scale = scale
	p.clampOffset()
}

// CanScroll reports whether the grid still has room in the direction asked.
func (p *page) CanScroll(dx, dy float64) bool {
	if !p.nativeScroll {
		return false
	}
	mx, my := p.maxOffset()
	canX := dx == 0 || (dx > 0 && p.offset.X < mx) || (dx < 0 && p.offset.X > 0)
	canY := dy == 0 || (dy > 0 && p.offset.Y < my) || (dy < 0 && p.offset.Y > 0)
	return canX && canY
}

func (p *page) ScrollBy(dx, dy float64) {
	p.offset.X += dx
	p.offset.Y += dy
	p.clampOffset()
}

func (p *page) LongPress(x, y int) {
	if id, ok := p.tileAt(float64(x), float64(y)); ok {
		p.flagged[id] = !p.flagged[id]
		p.logger.Info("tile flagged", "col", id.col, "row", id.row, "flagged", p.flagged[id])
	}
}

func (p *page) TextSelectionStart(x, y int) {
	at := dpadcursor.Vec2{X: float64(x), Y: float64(y)}
	p.selection = selectionState{active: true, from: at, to: at}
}

func (p *page) TextSelectionMove(x, y int) {
	p.selection.to = dpadcursor.Vec2{X: float64(x), Y: float64(y)}
}

func (p *page) TextSelectionEnd(x, y int) {
	p.selection.to = dpadcursor.Vec2{X: float64(x), Y: float64(y)}
	p.selection.active = false
	p.logger.Info("selection", "from", p.selection.from, "to", p.selection.to)
}

func (p *page) TextSelectionCancel() {
	p.selection = selectionState{}
}

var (
	tileLight   = color.RGBA{R: 0x3a, G: 0x3f, B: 0x52, A: 0xff}
	tileDark    = color.RGBA{R: 0x2e, G: 0x32, B: 0x42, A: 0xff}
	tileMarked  = color.RGBA{R: 0x4f, G: 0xb4, B: 0xff, A: 0xff}
	tileFlagged = color.RGBA{R: 0xff, G: 0x9a, B: 0x3c, A: 0xff}
	tileHover   = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0x30}
	selectColor = color.RGBA{R: 0x7c, G: 0xe3, B: 0x8b, A: 0xff}
)

func (p *page) Draw(screen *ebiten.Image) {
	if b := screen.Bounds(); float64(b.Dx()) != p.viewW || float64(b.Dy()) != p.viewH {
		p.setViewport(b.Dx(), b.Dy())
	}
	size := pageTile * p.scale
	c0 := int(math.Max(0, math.Floor(p.offset.X/size)))
	r0 := int(math.Max(0, math.Floor(p.offset.Y/size)))
	c1 := min(pageCols, int(math.Ceil((p.offset.X+p.viewW)/size)))
	r1 := min(pageRows, int(math.Ceil((p.offset.Y+p.viewH)/size)))
	gap := float32(math.Max(1, 2*p.scale))

	for row := r0; row < r1; row++ {
		for col := c0; col < c1; col++ {
			id := tileID{col: col, row: row}
			clr := tileDark
			if (col+row)%2 == 0 {
				clr = tileLight
			}
			switch {
			case p.flagged[id]:
				clr = tileFlagged
			case p.marked[id]:
				clr = tileMarked
			}
			x := float32(float64(col)*size - p.offset.X)
			y := float32(float64(row)*size - p.offset.Y)
			vector.DrawFilledRect(screen, x, y, float32(size)-gap, float32(size)-gap, clr, false)
		}
	}

	if id, ok := p.tileAt(p.hover.X, p.hover.Y); ok {
		x := float32(float64(id.col)*size - p.offset.X)
		y := float32(float64(id.row)*size - p.offset.Y)
		vector.DrawFilledRect(screen, x, y, float32(size)-gap, float32(size)-gap, tileHover, false)
	}

	if p.selection.from != p.selection.to {
		x := math.Min(p.selection.from.X, p.selection.to.X)
		y := math.Min(p.selection.from.Y, p.selection.to.Y)
		w := math.Abs(p.selection.to.X - p.selection.from.X)
		h := math.Abs(p.selection.to.Y - p.selection.from.Y)
		vector.StrokeRect(screen, float32(x), float32(y), float32(w), float32(h), 2, selectColor, true)
	}
}
