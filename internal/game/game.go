package game

import (
	"image/color"
	"log/slog"
	"math/rand"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/iburimskiy/constellation/internal/canvas"
	"github.com/iburimskiy/constellation/internal/config"
	"github.com/iburimskiy/constellation/internal/field"
	"github.com/iburimskiy/constellation/internal/frame"
	"github.com/iburimskiy/constellation/internal/page"
	"github.com/iburimskiy/constellation/internal/soundtrack"
)

type Options struct {
	Config  *config.Config
	Reloads <-chan *config.Config
	Rand    *rand.Rand
}

type colors struct {
	background color.NRGBA
	accent     color.NRGBA
}

type Game struct {
	cfg    *config.Config
	colors colors

	// page
	layout   *page.Layout
	scroller page.Scroller
	parallax page.Parallax
	revealer *page.Revealer
	menu     page.Menu
	railX    float64
	progress float64
	revealAt map[string]int

	// constellation
	canvas   *canvas.Canvas
	field    *field.Field
	frames   *frame.Queue
	animator *frame.Animator
	started  bool

	// soundtrack
	player *soundtrack.Player
	level  float64

	reloads <-chan *config.Config

	width, height int
	layoutDirty   bool
	ticks         int
	startedAt     time.Time
	now           func() time.Time

	// input edge detection
	prevKey map[ebiten.Key]bool

	showHUD bool
	status  string
	lastErr error
}

func NewGame(opts Options) *Game {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	rng := opts.Rand
	if rng == nil {
		seed := cfg.Seed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		rng = rand.New(rand.NewSource(seed))
	}

	g := &Game{
		cfg:         cfg,
		scroller:    page.NewScroller(),
		revealer:    page.NewRevealer(),
		revealAt:    map[string]int{},
		frames:      frame.NewQueue(),
		player:      soundtrack.NewPlayer(),
		reloads:     opts.Reloads,
		width:       cfg.Window.Width,
		height:      cfg.Window.Height,
		layoutDirty: true,
		now:         time.Now,
		prevKey:     map[ebiten.Key]bool{},
		showHUD:     cfg.HUD,
	}
	g.startedAt = g.now()
	g.layout = page.Build(float64(g.width), float64(g.height))

	if _, ok := g.layout.Find(heroID); ok {
		g.canvas = canvas.New()
		g.field = field.New(g.canvas, field.DefaultConfig(), rng)
		g.animator = frame.NewAnimator(g.field, g.frames)
	} else {
		slog.Debug("No hero on page, constellation disabled")
	}
	g.applyPalette(cfg.Palette)
	return g
}

const heroID = "bp-hero"

func (g *Game) applyPalette(p config.Palette) {
	g.colors = colors{
		background: config.MustHex(p.Background),
		accent:     config.MustHex(p.Accent),
	}
	g.field.SetPalette(field.Palette{
		Accent:  config.MustHex(p.Accent),
		Neutral: config.MustHex(p.Neutral),
		Link:    config.MustHex(p.Link),
	})
}

// LoadSoundtrack starts the ambient track at path.
func (g *Game) LoadSoundtrack(path string) error {
	if err := g.player.Load(path); err != nil {
		g.lastErr = err
		return err
	}
	g.lastErr = nil
	return nil
}

func (g *Game) Update() error {
	g.ticks++
	g.drainReloads()
	if g.layoutDirty {
		g.relayout()
	}

	if err := g.handleInput(); err != nil {
		return err
	}

	g.scroller.Tick()
	vp := g.viewport()
	g.parallax.Update(vp.ScrollY, vp.Height)
	for _, id := range g.revealer.Observe(g.layout, vp) {
		g.revealAt[id] = g.ticks
	}
	if ch, ok := g.layout.Find("bp-chapter"); ok {
		g.progress = page.ReadingProgress(ch.Rect.Y, ch.Rect.H, vp.ScrollY, vp.Height)
	}

	g.updateConstellation(vp)
	g.level = g.player.Level()
	return nil
}

func (g *Game) drainReloads() {
	for {
		select {
		case cfg, ok := <-g.reloads:
			if !ok {
				g.reloads = nil
				return
			}
			g.applyPalette(cfg.Palette)
			g.showHUD = cfg.HUD
			g.cfg.Palette = cfg.Palette
			g.cfg.HUD = cfg.HUD
			g.status = "Configuration reloaded"
			slog.Info("Configuration applied")
		default:
			return
		}
	}
}

func (g *Game) relayout() {
	g.layoutDirty = false
	top := g.scroller.Pos()
	anchor, anchored := g.layout.SectionAt(g.layout.Width/2, top)
	g.layout = page.Build(float64(g.width), float64(g.height))
	g.scroller.SetMax(g.layout.MaxScroll(float64(g.height)))
	if anchored && top > 0 {
		g.keepAnchor(anchor, top)
	}

	hero, ok := g.layout.Find(heroID)
	if !ok {
		return
	}
	dpr := deviceScale()
	if !g.started {
		g.field.Init(hero.Rect.W, hero.Rect.H, dpr)
		g.started = true
		slog.Info("Constellation initialized",
			"particles", g.field.Len(),
			"width", hero.Rect.W, "height", hero.Rect.H, "dpr", dpr)
		return
	}
	g.field.Resize(hero.Rect.W, hero.Rect.H, dpr)
	_, _, capped := g.field.Size()
	slog.Debug("Constellation resized", "width", hero.Rect.W, "height", hero.Rect.H, "dpr", capped)
}

// keepAnchor scrolls so the section that was under the top edge before a
// relayout stays there, at the same offset into it when it still fits.
func (g *Game) keepAnchor(old page.Section, top float64) {
	s, ok := g.layout.Find(old.ID)
	if !ok {
		return
	}
	offset := min(top-old.Rect.Y, s.Rect.H)
	g.scroller.Jump(s.Rect.Y + offset)
}

func (g *Game) viewport() page.Viewport {
	return page.Viewport{
		ScrollY: g.scroller.Pos(),
		Width:   float64(g.width),
		Height:  float64(g.height),
	}
}

func (g *Game) updateConstellation(vp page.Viewport) {
	mx, my := ebiten.CursorPosition()
	g.feedConstellation(vp, mx, my, ebiten.IsFocused())
}

// feedConstellation hands the cursor (window coordinates) and the hero's
// visibility to the field, then lets the frame queue run one tick.
func (g *Game) feedConstellation(vp page.Viewport, cx, cy int, focused bool) {
	if g.animator == nil {
		return
	}
	hero, ok := g.layout.Find(heroID)
	if !ok {
		return
	}

	docX, docY := float64(cx), float64(cy)+vp.ScrollY
	if focused && hero.Rect.Contains(docX, docY) {
		g.field.SetPointer(docX-hero.Rect.X, docY-hero.Rect.Y)
	} else {
		g.field.ClearPointer()
	}

	visible := page.Intersects(hero.Rect, vp)
	if visible != g.animator.Visible() {
		slog.Debug("Hero visibility changed", "visible", visible)
	}
	g.animator.SetVisible(visible)
	g.frames.Step()
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != g.width || outsideHeight != g.height {
		g.width, g.height = outsideWidth, outsideHeight
		g.layoutDirty = true
	}
	return outsideWidth, outsideHeight
}

func (g *Game) Close() error {
	return g.player.Close()
}

func deviceScale() float64 {
	if m := ebiten.Monitor(); m != nil {
		return m.DeviceScaleFactor()
	}
	return 1
}
