package game

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/iburimskiy/constellation/internal/field"
	"github.com/iburimskiy/constellation/internal/moon"
	"github.com/iburimskiy/constellation/internal/page"
)

const (
	glyphW         = 6
	chapterMarginX = 64
	chapterBodyTop = 56
	chapterLineH   = 18
	revealFrames   = 36
)

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(g.colors.background)

	vp := g.viewport()
	for _, s := range g.layout.Sections {
		if !page.Intersects(s.Rect, vp) {
			continue
		}
		r := vp.ToScreen(s.Rect)
		switch s.Kind {
		case page.KindHero:
			g.drawHero(screen, s, r)
		case page.KindRail:
			g.drawRail(screen, s, r)
		case page.KindReveal:
			g.drawReveal(screen, s, r)
		case page.KindChapter:
			g.drawChapter(screen, s, r)
		case page.KindFooter:
			g.drawFooter(screen, s, r)
		}
	}

	g.drawProgressBar(screen)
	g.drawMenu(screen)
	if g.showHUD {
		g.drawHUD(screen)
	}
}

func (g *Game) drawHero(screen *ebiten.Image, s page.Section, r page.Rect) {
	if g.canvas != nil {
		g.canvas.DrawTo(screen, r.X, r.Y)
	}

	// cover
	coverW, coverH := 180.0, 260.0
	cx := r.Right() - coverW - 96
	cy := r.Y + r.H*0.22 + g.parallax.Cover
	vector.DrawFilledRect(screen, float32(cx), float32(cy), float32(coverW), float32(coverH), withAlpha(g.colors.accent, 0.85), false)
	vector.StrokeRect(screen, float32(cx), float32(cy), float32(coverW), float32(coverH), 2, color.RGBA{R: 255, G: 255, B: 255, A: 120}, false)
	ebitenutil.DebugPrintAt(screen, strings.ToUpper(s.Title), int(cx)+12, int(cy+coverH)-40)

	// text
	tx := int(r.X) + 64
	ty := int(r.Y + r.H*0.4 + g.parallax.Text)
	ebitenutil.DebugPrintAt(screen, s.Title, tx, ty)
	for i, line := range s.Body {
		ebitenutil.DebugPrintAt(screen, line, tx, ty+28+i*18)
	}
}

func (g *Game) drawRail(screen *ebiten.Image, s page.Section, r page.Rect) {
	ebitenutil.DebugPrintAt(screen, s.Title, chapterMarginX, int(r.Y)+12)
	y := r.Y + 48
	h := r.H - 64
	for i, item := range s.Body {
		x := railItemGap + float64(i)*(railItemW+railItemGap) - g.railX
		if x+railItemW < 0 || x > r.Right() {
			continue
		}
		vector.DrawFilledRect(screen, float32(x), float32(y), railItemW, float32(h), color.RGBA{R: 28, G: 30, B: 40, A: 255}, false)
		vector.StrokeRect(screen, float32(x), float32(y), railItemW, float32(h), 1, color.RGBA{R: 70, G: 74, B: 92, A: 255}, false)
		ebitenutil.DebugPrintAt(screen, item, int(x)+12, int(y)+12)
	}
}

// drawReveal fades a section in and slides it up once it has been revealed.
func (g *Game) drawReveal(screen *ebiten.Image, s page.Section, r page.Rect) {
	if !g.revealer.Revealed(s.ID) {
		return
	}
	at := g.revealAt[s.ID]
	t := clamp01(float64(g.ticks-at) / revealFrames)
	y := r.Y + (1-t)*24
	w := r.W - 2*chapterMarginX
	vector.DrawFilledRect(screen, chapterMarginX, float32(y), float32(w), float32(r.H), color.NRGBA{R: 24, G: 26, B: 34, A: uint8(255 * t)}, false)
	vector.DrawFilledRect(screen, chapterMarginX, float32(y), 4, float32(r.H), withAlpha(g.colors.accent, t), false)
	if t > 0.5 {
		for i, line := range s.Body {
			ebitenutil.DebugPrintAt(screen, line, chapterMarginX+24, int(y+r.H/2)-8+i*18)
		}
	}
}

func (g *Game) drawChapter(screen *ebiten.Image, s page.Section, r page.Rect) {
	ebitenutil.DebugPrintAt(screen, s.Title, chapterMarginX, int(r.Y)+16)
	for i, line := range s.Body {
		ebitenutil.DebugPrintAt(screen, line, chapterMarginX, int(r.Y)+chapterBodyTop+i*chapterLineH)
	}
	for _, hit := range g.chapterLinkRects() {
		rc := hit.rect
		ebitenutil.DebugPrintAt(screen, linkLabel(hit.link), int(rc.X)+4, int(rc.Y))
		vector.StrokeLine(screen, float32(rc.X), float32(rc.Bottom()), float32(rc.Right()), float32(rc.Bottom()), 1, withAlpha(g.colors.accent, 0.8), false)
	}
}

// linkLabel renders numbered links (footnote references) in capitals, the
// closest the debug font gets to small caps.
func linkLabel(l page.Link) string {
	if page.NumberedLink(l.Text) {
		return strings.ToUpper(l.Text)
	}
	return l.Text
}

func (g *Game) drawFooter(screen *ebiten.Image, s page.Section, r page.Rect) {
	vector.StrokeLine(screen, chapterMarginX, float32(r.Y), float32(r.Right()-chapterMarginX), float32(r.Y), 1, color.RGBA{R: 70, G: 74, B: 92, A: 255}, false)
	ebitenutil.DebugPrintAt(screen, s.Title, chapterMarginX, int(r.Y)+16)
	for i, line := range s.Body {
		ebitenutil.DebugPrintAt(screen, line, chapterMarginX, int(r.Y)+40+i*18)
	}
}

func (g *Game) drawProgressBar(screen *ebiten.Image) {
	if _, ok := g.layout.Find("bp-chapter"); !ok {
		return
	}
	w := float32(g.width)
	vector.DrawFilledRect(screen, 0, 0, w, 3, color.RGBA{A: 26}, false)
	vector.DrawFilledRect(screen, 0, 0, w*float32(g.progress/100), 3, g.colors.accent, false)
}

func (g *Game) drawMenu(screen *ebiten.Image) {
	t := g.toggleRect()
	bg := color.RGBA{R: 28, G: 30, B: 40, A: 220}
	vector.DrawFilledRect(screen, float32(t.X), float32(t.Y), float32(t.W), float32(t.H), bg, false)

	white := color.RGBA{R: 255, G: 255, B: 255, A: 255}
	x0, x1 := float32(t.X+9), float32(t.Right()-9)
	if g.menu.Icon() == "close" {
		y0, y1 := float32(t.Y+9), float32(t.Bottom()-9)
		vector.StrokeLine(screen, x0, y0, x1, y1, 2, white, true)
		vector.StrokeLine(screen, x0, y1, x1, y0, 2, white, true)
	} else {
		for i := 0; i < 3; i++ {
			y := float32(t.Y + 11 + float64(i)*7)
			vector.StrokeLine(screen, x0, y, x1, y, 2, white, true)
		}
	}

	if !g.menu.Open() {
		return
	}
	p := g.menuRect()
	vector.DrawFilledRect(screen, float32(p.X), float32(p.Y), float32(p.W), float32(p.H), bg, false)
	vector.StrokeRect(screen, float32(p.X), float32(p.Y), float32(p.W), float32(p.H), 1, color.RGBA{R: 70, G: 74, B: 92, A: 255}, false)
	for i, l := range page.Nav {
		ebitenutil.DebugPrintAt(screen, l.Text, int(p.X)+16, int(p.Y)+8+i*menuItemH+6)
	}
}

func (g *Game) drawHUD(screen *ebiten.Image) {
	phase := moon.PhaseAt(g.now())
	lines := []string{
		fmt.Sprintf("FPS %.0f  TPS %.0f  up %s", ebiten.ActualFPS(), ebiten.ActualTPS(), formatDuration(g.now().Sub(g.startedAt))),
		fmt.Sprintf("nodes %d  frames %d  %s", g.field.Len(), g.animatorFrames(), g.animatorState()),
		fmt.Sprintf("%s  %.0f%% lit  day %.1f  %s", moonGlyph(phase), phase.Illumination*100, phase.Age, phase.Name),
		fmt.Sprintf("reading %.0f%%  menu aria-expanded=%s", g.progress, g.menu.AriaExpanded()),
	}
	if px, py := g.field.Pointer(); px != field.OffscreenPointer || py != field.OffscreenPointer {
		lines = append(lines, fmt.Sprintf("pointer %.0f,%.0f", px, py))
	}
	if track := g.player.Track(); track != "" {
		state := "paused"
		if g.player.Playing() {
			state = "playing"
		}
		lines = append(lines, fmt.Sprintf("soundtrack %s (%s)", track, state))
	}

	status := g.status
	if g.lastErr != nil {
		status += " | Error: " + g.lastErr.Error()
	}
	if status != "" {
		lines = append(lines, status)
	}

	y := g.height - 12 - len(lines)*16
	for i, line := range lines {
		ebitenutil.DebugPrintAt(screen, line, 12, y+i*16)
	}

	if g.level > 0 {
		bx, by := float32(12), float32(y-12)
		vector.DrawFilledRect(screen, bx, by, 120, 6, color.RGBA{R: 28, G: 30, B: 40, A: 220}, false)
		vector.DrawFilledRect(screen, bx, by, 120*float32(clamp01(g.level)), 6, g.colors.accent, false)
	}
}

func (g *Game) animatorFrames() uint64 {
	if g.animator == nil {
		return 0
	}
	return g.animator.Frames()
}

func (g *Game) animatorState() string {
	switch {
	case g.animator == nil:
		return "no canvas"
	case g.animator.Running():
		return "running"
	default:
		return "paused (hero hidden)"
	}
}

func withAlpha(c color.NRGBA, a float64) color.NRGBA {
	c.A = uint8(255 * clamp01(a))
	return c
}
