package game

import (
	"log/slog"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/iburimskiy/constellation/internal/page"
)

const (
	wheelStep   = 40
	arrowStep   = 8
	railStep    = 40
	railItemW   = 180
	railItemGap = 16
)

func (g *Game) handleInput() error {
	justPressed := func(k ebiten.Key) bool {
		pressed := ebiten.IsKeyPressed(k)
		jp := pressed && !g.prevKey[k]
		g.prevKey[k] = pressed
		return jp
	}

	if justPressed(ebiten.KeyEscape) {
		if !g.menu.Escape() {
			return ebiten.Termination
		}
	}
	if justPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}
	if justPressed(ebiten.KeyH) {
		g.showHUD = !g.showHUD
	}
	if justPressed(ebiten.KeySpace) {
		if g.player.TogglePause() {
			g.status = "Soundtrack paused"
		} else {
			g.status = "Soundtrack playing"
		}
	}
	if justPressed(ebiten.KeyS) {
		g.report(g.saveSnapshotDialog())
	}
	if justPressed(ebiten.KeyO) {
		g.report(g.openSoundtrackDialog())
	}

	jump := float64(g.height) * 0.9
	switch {
	case justPressed(ebiten.KeyPageDown):
		g.scroller.ScrollTo(g.scroller.Pos() + jump)
	case justPressed(ebiten.KeyPageUp):
		g.scroller.ScrollTo(g.scroller.Pos() - jump)
	case justPressed(ebiten.KeyHome):
		g.scroller.ScrollTo(0)
	case justPressed(ebiten.KeyEnd):
		g.scroller.ScrollTo(g.layout.MaxScroll(float64(g.height)))
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowDown) {
		g.scroller.ScrollBy(arrowStep)
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowUp) {
		g.scroller.ScrollBy(-arrowStep)
	}

	g.handleWheel()

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		mx, my := ebiten.CursorPosition()
		g.handleClick(float64(mx), float64(my))
	}
	return nil
}

func (g *Game) report(err error) {
	if err != nil {
		g.lastErr = err
		slog.Warn("Action failed", "error", err)
	}
}

func (g *Game) handleWheel() {
	dx, dy := ebiten.Wheel()
	if dx == 0 && dy == 0 {
		return
	}
	mx, my := ebiten.CursorPosition()
	docY := float64(my) + g.scroller.Pos()
	if s, ok := g.layout.SectionAt(float64(mx), docY); ok && s.Kind == page.KindRail {
		if d, ok := page.RailWheel(dx, dy); ok {
			g.scroller.ScrollBy(-d * wheelStep)
			return
		}
		g.scrollRail(s, -dx*railStep)
		return
	}
	g.scroller.ScrollBy(-dy * wheelStep)
}

func (g *Game) scrollRail(s page.Section, delta float64) {
	content := float64(len(s.Body))*(railItemW+railItemGap) + railItemGap
	limit := max(0, content-s.Rect.W)
	g.railX = min(max(g.railX+delta, 0), limit)
}

func (g *Game) handleClick(x, y float64) {
	inToggle := g.toggleRect().Contains(x, y)
	if inToggle {
		open := g.menu.Toggle()
		slog.Debug("Menu toggled", "aria_expanded", g.menu.AriaExpanded(), "open", open)
		return
	}

	inMenu := false
	if g.menu.Open() {
		panel := g.menuRect()
		inMenu = panel.Contains(x, y)
		if inMenu {
			if i := g.menuItemAt(y); i >= 0 {
				g.followAnchor(page.Nav[i].Href)
			}
			return
		}
	}
	g.menu.ClickOutside(inMenu, inToggle)

	for _, hit := range g.chapterLinkRects() {
		if hit.rect.Contains(x, y) {
			g.followAnchor(hit.link.Href)
			return
		}
	}
}

func (g *Game) followAnchor(href string) {
	y, ok := page.ResolveAnchor(href, g.layout)
	if !ok {
		slog.Debug("Anchor ignored", "href", href)
		return
	}
	g.scroller.ScrollTo(y)
}

// toggleRect is the menu button in window coordinates.
func (g *Game) toggleRect() page.Rect {
	const size, margin = 36, 16
	return page.Rect{X: float64(g.width) - size - margin, Y: 12, W: size, H: size}
}

const menuItemH = 28

func (g *Game) menuRect() page.Rect {
	const w, margin = 220, 16
	return page.Rect{
		X: float64(g.width) - w - margin,
		Y: 56,
		W: w,
		H: float64(len(page.Nav)*menuItemH + 16),
	}
}

func (g *Game) menuItemAt(y float64) int {
	i := int((y - g.menuRect().Y - 8) / menuItemH)
	if y < g.menuRect().Y+8 || i >= len(page.Nav) {
		return -1
	}
	return i
}

type linkHit struct {
	link page.Link
	rect page.Rect
}

// chapterLinkRects lays the chapter's links out on one row below its body,
// in window coordinates.
func (g *Game) chapterLinkRects() []linkHit {
	ch, ok := g.layout.Find("bp-chapter")
	if !ok {
		return nil
	}
	y := ch.Rect.Y - g.scroller.Pos() + chapterBodyTop + float64(len(ch.Body))*chapterLineH + 24
	x := float64(chapterMarginX)
	hits := make([]linkHit, 0, len(ch.Links))
	for _, l := range ch.Links {
		w := float64(len(linkLabel(l))*glyphW + 8)
		hits = append(hits, linkHit{link: l, rect: page.Rect{X: x, Y: y, W: w, H: 18}})
		x += w + 16
	}
	return hits
}
