package game

import (
	"image"
	"image/color"
	"image/png"
	"math/rand"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iburimskiy/constellation/internal/config"
	"github.com/iburimskiy/constellation/internal/field"
	"github.com/iburimskiy/constellation/internal/frame"
	"github.com/iburimskiy/constellation/internal/moon"
	"github.com/iburimskiy/constellation/internal/page"
)

func newTestGame(t *testing.T) *Game {
	t.Helper()
	g := NewGame(Options{Config: config.Default(), Rand: rand.New(rand.NewSource(1))})
	require.NotNil(t, g.field)
	require.NotNil(t, g.animator)
	g.scroller.SetMax(g.layout.MaxScroll(float64(g.height)))
	return g
}

type nopSurface struct{}

func (nopSurface) Resize(width, height, dpr float64) {}
func (nopSurface) Clear() {}
func (nopSurface) StrokeLine(x0, y0, x1, y1, width float64, clr color.Color) {}
func (nopSurface) FillCircle(cx, cy, r float64, clr color.Color) {}
func (nopSurface) StrokeCircle(cx, cy, r, width float64, clr color.Color) {}

// offscreenField swaps the canvas for a surface that draws nothing and
// seeds the particles at the hero size.
func offscreenField(t *testing.T, g *Game) page.Section {
	t.Helper()
	hero, ok := g.layout.Find(heroID)
	require.True(t, ok)
	g.field = field.New(nopSurface{}, field.DefaultConfig(), rand.New(rand.NewSource(3)))
	g.animator = frame.NewAnimator(g.field, g.frames)
	g.field.Init(hero.Rect.W, hero.Rect.H, 1)
	return hero
}

func TestNewGameBuildsPage(t *testing.T) {
	g := newTestGame(t)
	_, ok := g.layout.Find(heroID)
	assert.True(t, ok)
	assert.True(t, g.layoutDirty)
	assert.False(t, g.animator.Running())
	assert.Equal(t, color.NRGBA{R: 0xd6, G: 0x33, B: 0x6c, A: 0xff}, g.colors.accent)
}

func TestToggleClickOpensMenu(t *testing.T) {
	g := newTestGame(t)
	tr := g.toggleRect()

	g.handleClick(tr.X+1, tr.Y+1)
	assert.True(t, g.menu.Open())

	g.handleClick(tr.X+1, tr.Y+1)
	assert.False(t, g.menu.Open())
}

func TestClickOutsideClosesMenu(t *testing.T) {
	g := newTestGame(t)
	g.menu.Toggle()

	p := g.menuRect()
	g.handleClick(p.X+2, p.Y+1)
	assert.True(t, g.menu.Open())

	g.handleClick(5, float64(g.height)-5)
	assert.False(t, g.menu.Open())
}

func TestMenuEntryScrollsToAnchor(t *testing.T) {
	g := newTestGame(t)
	g.menu.Toggle()

	idx := -1
	for i, l := range page.Nav {
		if l.Href == "#bp-chapter" {
			idx = i
		}
	}
	require.GreaterOrEqual(t, idx, 0)

	p := g.menuRect()
	y := p.Y + 8 + float64(idx)*menuItemH + 4
	require.Equal(t, idx, g.menuItemAt(y))
	g.handleClick(p.X+10, y)

	assert.True(t, g.scroller.Animating())
	ch, _ := g.layout.Find("bp-chapter")
	for i := 0; i < 500 && g.scroller.Tick(); i++ {
	}
	assert.Equal(t, min(ch.Rect.Y, g.layout.MaxScroll(float64(g.height))), g.scroller.Pos())
}

func TestPortalEntryIsIgnored(t *testing.T) {
	g := newTestGame(t)
	g.followAnchor("#/portal/account")
	assert.False(t, g.scroller.Animating())
	assert.Zero(t, g.scroller.Pos())
}

func TestMenuItemAtOutsideRows(t *testing.T) {
	g := newTestGame(t)
	p := g.menuRect()
	assert.Equal(t, -1, g.menuItemAt(p.Y+2))
	assert.Equal(t, -1, g.menuItemAt(p.Y+8+float64(len(page.Nav))*menuItemH+1))
	assert.Equal(t, 0, g.menuItemAt(p.Y+9))
}

func TestChapterLinksFollowScroll(t *testing.T) {
	g := newTestGame(t)
	before := g.chapterLinkRects()
	require.Len(t, before, 3)
	assert.Equal(t, "NOTE 1", linkLabel(before[0].link))
	assert.Equal(t, "the keeper", linkLabel(before[2].link))

	g.scroller.Jump(100)
	after := g.chapterLinkRects()
	assert.Equal(t, before[0].rect.Y-100, after[0].rect.Y)
	assert.Less(t, after[0].rect.Right(), after[1].rect.X)
}

func TestChapterLinkClickScrolls(t *testing.T) {
	g := newTestGame(t)
	g.scroller.Jump(g.layout.MaxScroll(float64(g.height)))
	hits := g.chapterLinkRects()
	require.NotEmpty(t, hits)

	keeper := hits[2]
	g.handleClick(keeper.rect.X+1, keeper.rect.Y+1)
	rail, _ := g.layout.Find("bp-sections")
	for i := 0; i < 500 && g.scroller.Tick(); i++ {
	}
	assert.Equal(t, rail.Rect.Y, g.scroller.Pos())
}

func TestScrollRailClamps(t *testing.T) {
	g := newTestGame(t)
	rail, ok := g.layout.Find("bp-sections")
	require.True(t, ok)

	g.scrollRail(rail, -50)
	assert.Zero(t, g.railX)

	g.scrollRail(rail, 1e6)
	content := float64(len(rail.Body))*(railItemW+railItemGap) + railItemGap
	assert.Equal(t, max(0, content-rail.Rect.W), g.railX)
}

func TestDrainReloadsAppliesPalette(t *testing.T) {
	reloads := make(chan *config.Config, 1)
	g := NewGame(Options{Config: config.Default(), Reloads: reloads, Rand: rand.New(rand.NewSource(2))})

	next := config.Default()
	next.HUD = false
	next.Palette.Accent = "#00ff00"
	reloads <- next
	g.drainReloads()

	assert.False(t, g.showHUD)
	assert.Equal(t, color.NRGBA{G: 0xff, A: 0xff}, g.colors.accent)
	assert.Equal(t, "Configuration reloaded", g.status)

	close(reloads)
	g.drainReloads()
	assert.Nil(t, g.reloads)
}

func TestWritePNG(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 4, 3))
	img.Set(1, 1, color.RGBA{R: 214, G: 51, B: 108, A: 255})
	path := filepath.Join(t.TempDir(), "snap.png")
	require.NoError(t, writePNG(path, img))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	decoded, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, img.Bounds(), decoded.Bounds())
	r, _, _, _ := decoded.At(1, 1).RGBA()
	assert.Equal(t, uint32(214*0x101), r)
}

func TestWritePNGBadPath(t *testing.T) {
	err := writePNG(filepath.Join(t.TempDir(), "missing", "snap.png"), image.NewRGBA(image.Rect(0, 0, 1, 1)))
	assert.Error(t, err)
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "00:00", formatDuration(0))
	assert.Equal(t, "01:05", formatDuration(65*time.Second))
	assert.Equal(t, "61:01", formatDuration(61*time.Minute+time.Second))
}

func TestMoonGlyph(t *testing.T) {
	assert.Equal(t, "( )", moonGlyph(moon.Phase{Illumination: 0}))
	assert.Equal(t, "(O)", moonGlyph(moon.Phase{Illumination: 1, Fraction: 0.5}))
	assert.Equal(t, "( D", moonGlyph(moon.Phase{Illumination: 0.5, Fraction: 0.25}))
	assert.Equal(t, "C )", moonGlyph(moon.Phase{Illumination: 0.5, Fraction: 0.75}))
}

func TestHeroVisibilityDrivesAnimator(t *testing.T) {
	g := newTestGame(t)
	offscreenField(t, g)

	g.scroller.Jump(g.layout.MaxScroll(float64(g.height)))
	g.feedConstellation(g.viewport(), 10, 10, true)
	assert.False(t, g.animator.Running())
	assert.Zero(t, g.frames.Len())
	assert.Zero(t, g.animator.Frames())

	g.scroller.Jump(0)
	g.feedConstellation(g.viewport(), 10, 10, true)
	g.feedConstellation(g.viewport(), 10, 10, true)
	assert.True(t, g.animator.Running())
	assert.Equal(t, 1, g.frames.Len())
	assert.Equal(t, uint64(2), g.animator.Frames())

	g.scroller.Jump(g.layout.MaxScroll(float64(g.height)))
	g.feedConstellation(g.viewport(), 10, 10, true)
	assert.False(t, g.animator.Running())
	assert.Zero(t, g.frames.Len())
	assert.Equal(t, uint64(2), g.animator.Frames())
}

func TestPointerFollowsCursorInsideHero(t *testing.T) {
	g := newTestGame(t)
	hero := offscreenField(t, g)
	g.scroller.Jump(100)

	g.feedConstellation(g.viewport(), 30, 40, true)
	x, y := g.field.Pointer()
	assert.Equal(t, 30-hero.Rect.X, x)
	assert.Equal(t, 140-hero.Rect.Y, y)

	// 600 + 100 lands below the hero.
	g.feedConstellation(g.viewport(), 30, 600, true)
	x, y = g.field.Pointer()
	assert.Equal(t, field.OffscreenPointer, x)
	assert.Equal(t, field.OffscreenPointer, y)

	g.feedConstellation(g.viewport(), 30, 40, true)
	g.feedConstellation(g.viewport(), 30, 40, false)
	x, y = g.field.Pointer()
	assert.Equal(t, field.OffscreenPointer, x)
	assert.Equal(t, field.OffscreenPointer, y)
}

func TestMenuClickDoesNotReachLinkBelow(t *testing.T) {
	g := newTestGame(t)
	g.width, g.height = 300, 200
	g.layout = page.Build(300, 200)
	g.scroller.SetMax(g.layout.MaxScroll(200))
	require.Equal(t, "#bp-hero", page.Nav[0].Href)

	// Scroll the first chapter link under the first menu row.
	p := g.menuRect()
	rowY := p.Y + 8 + 4
	link := g.chapterLinkRects()[0]
	g.scroller.Jump(link.rect.Y - (rowY - 8))
	link = g.chapterLinkRects()[0]
	require.True(t, link.rect.Contains(p.X+1, rowY))

	g.menu.Toggle()
	g.handleClick(p.X+1, rowY)
	for i := 0; i < 500 && g.scroller.Tick(); i++ {
	}
	assert.Zero(t, g.scroller.Pos())
}

func TestKeepAnchorAfterRelayout(t *testing.T) {
	g := newTestGame(t)
	old, ok := g.layout.Find("bp-chapter")
	require.True(t, ok)

	g.layout = page.Build(600, 400)
	g.scroller.SetMax(g.layout.MaxScroll(400))
	ch, _ := g.layout.Find("bp-chapter")
	require.NotEqual(t, old.Rect.Y, ch.Rect.Y)

	g.keepAnchor(old, old.Rect.Y+30)
	assert.Equal(t, ch.Rect.Y+30, g.scroller.Pos())
}
