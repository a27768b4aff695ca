package main

import (
	"fmt"
	"image/color"
	"log"
	"path/filepath"

	"github.com/ebitenui/ebitenui"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.design/x/clipboard"

	"github.com/milk9111/dragtrack/config"
	"github.com/milk9111/dragtrack/driver"
	"github.com/milk9111/dragtrack/pointer"
	"github.com/milk9111/dragtrack/script"
	"github.com/milk9111/dragtrack/sheet"
)

var defaultBackground = color.NRGBA{R: 18, G: 18, B: 24, A: 255}

type Game struct {
	frames int

	cfgPath string
	cfg     *config.Config

	bus     *pointer.Bus
	tracker *pointer.Tracker
	input   *driver.Input
	base    []driver.Region
	sheet   *sheet.Sheet
	hooks   *script.Runtime
	watcher *config.Watcher

	ui      *ebitenui.UI
	readout *widget.Text

	clipboardOK bool
	prevPressed bool
}

func NewGame(cfgPath string, cfg *config.Config, clipboardOK bool) *Game {
	g := &Game{
		cfgPath:     cfgPath,
		cfg:         cfg,
		bus:         pointer.NewBus(),
		clipboardOK: clipboardOK,
	}

	g.applyConfig(cfg)
	g.input = driver.NewInput(g.bus, driver.NewRegions(g.base...))

	mode, err := cfg.TrackerMode()
	if err != nil {
		// Load already validated the mode; reaching here means a reload
		// raced a bad edit, so fall back rather than die.
		log.Printf("[config] %v, using both", err)
		mode = pointer.ModeBoth
	}
	g.setMode(mode)

	g.loadHooks(cfg.Script)

	dirs := watchDirs(cfgPath, cfg.Script)
	if w, err := config.NewWatcher(dirs...); err != nil {
		fmt.Printf("[watch] disabled: %v\n", err)
	} else {
		g.watcher = w
	}

	g.ui, g.readout = newHUD(g)
	return g
}

// applyConfig rebuilds the parts derived from the yaml document.
func (g *Game) applyConfig(cfg *config.Config) {
	g.cfg = cfg
	g.base = g.base[:0]
	for _, r := range cfg.Regions {
		g.base = append(g.base, driver.Region{Name: r.Name, Bounds: r.Bounds()})
	}
	g.sheet = sheet.New(cfg.Sheet, float64(cfg.Window.Height))
}

// setMode swaps in a fresh tracker; mode is immutable per tracker
// instance, so switching means detach old, attach new.
func (g *Game) setMode(mode pointer.Mode) {
	if g.tracker != nil {
		g.tracker.Detach()
	}
	g.prevPressed = false
	g.tracker = pointer.New(mode, pointer.WithListener(g.onSnapshot))
	g.tracker.Attach(g.bus)
}

func (g *Game) loadHooks(path string) {
	if path == "" {
		g.hooks = nil
		return
	}
	hooks, err := script.Load(path)
	if err != nil {
		fmt.Printf("[script] %v\n", err)
		g.hooks = nil
		return
	}
	g.hooks = hooks
}

// onSnapshot fans tracker changes out to the hook script. The listener
// only sees snapshots, so the event kind is recovered from the pressed
// edge.
func (g *Game) onSnapshot(snap pointer.Snapshot) {
	event := "move"
	switch {
	case snap.IsMouseDown && !g.prevPressed:
		event = "press"
	case !snap.IsMouseDown:
		event = "release"
	}
	g.prevPressed = snap.IsMouseDown

	if g.hooks == nil {
		return
	}
	if err := g.hooks.Dispatch(event, snap); err != nil {
		fmt.Printf("[script] %s: %v\n", event, err)
	}
}

func (g *Game) Update() error {
	g.frames++

	g.drainWatcher()

	// The sheet carries its hit region with it, so regions are rebuilt
	// every tick before polling.
	regions := driver.NewRegions(g.base...)
	regions.Add(g.sheet.GrabRegion())
	g.input.SetRegions(regions)

	g.input.Update()
	snap := g.tracker.Snapshot()
	g.sheet.Update(snap)

	if g.clipboardOK && inpututil.IsKeyJustPressed(ebiten.KeyC) {
		clipboard.Write(clipboard.FmtText, []byte(snapshotLine(snap)))
	}

	g.readout.Label = fmt.Sprintf("mode: %s\n%s", g.tracker.Mode(), snapshotLine(snap))
	g.ui.Update()

	return nil
}

func (g *Game) drainWatcher() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case ev, ok := <-g.watcher.Events:
			if !ok {
				g.watcher = nil
				return
			}
			g.reload(ev)
		case err, ok := <-g.watcher.Errors:
			if ok {
				fmt.Printf("[watch] %v\n", err)
			}
		default:
			return
		}
	}
}

func (g *Game) reload(ev config.ReloadEvent) {
	if ev.Kind == config.ReloadScript {
		g.loadHooks(g.cfg.Script)
		fmt.Printf("[script] reloaded %s\n", ev.Path)
		return
	}

	cfg, err := config.Load(g.cfgPath)
	if err != nil {
		fmt.Printf("[config] reload failed: %v\n", err)
		return
	}
	g.applyConfig(cfg)
	if mode, err := cfg.TrackerMode(); err == nil && mode != g.tracker.Mode() {
		g.setMode(mode)
	}
	fmt.Printf("[config] reloaded %s\n", ev.Path)
}

func (g *Game) Draw(screen *ebiten.Image) {
	bg := defaultBackground
	if g.hooks != nil {
		if r, green, b, ok := g.hooks.Background(); ok {
			bg = color.NRGBA{R: r, G: green, B: b, A: 255}
		}
	}
	screen.Fill(bg)

	snap := g.tracker.Snapshot()
	for _, region := range g.base {
		if region.Name == "backdrop" {
			continue
		}
		c := color.NRGBA{R: 0x3c, G: 0x40, B: 0x52, A: 0xff}
		if snap.IsMouseDown && snap.TouchedElement == region.Name {
			c = color.NRGBA{R: 0x4e, G: 0x54, B: 0x6e, A: 0xff}
		}
		b := region.Bounds
		vector.DrawFilledRect(screen,
			float32(b.X), float32(b.Y), float32(b.Width), float32(b.Height), c, false)
	}

	g.sheet.Draw(screen)
	g.ui.Draw(screen)

	ebitenutil.DebugPrintAt(screen,
		fmt.Sprintf("Frames: %d    FPS: %.2f", g.frames, ebiten.ActualFPS()),
		0, g.cfg.Window.Height-16)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.cfg.Window.Width, g.cfg.Window.Height
}

// Close releases the input subscription and the file watcher; safe to
// call more than once.
func (g *Game) Close() {
	g.tracker.Detach()
	if g.watcher != nil {
		_ = g.watcher.Close()
		g.watcher = nil
	}
}

func snapshotLine(snap pointer.Snapshot) string {
	return fmt.Sprintf("dx=%.0f dy=%.0f down=%v element=%q goingDown=%s goingRight=%s",
		snap.DeltaX, snap.DeltaY, snap.IsMouseDown, snap.TouchedElement,
		optBoolString(snap.GoingDown), optBoolString(snap.GoingRight))
}

func optBoolString(b pointer.OptBool) string {
	if !b.Valid {
		return "unset"
	}
	return fmt.Sprintf("%v", b.Bool)
}

func watchDirs(paths ...string) []string {
	var dirs []string
	seen := map[string]bool{}
	for _, p := range paths {
		if p == "" {
			continue
		}
		dir := filepath.Dir(p)
		if !seen[dir] {
			seen[dir] = true
			dirs = append(dirs, dir)
		}
	}
	return dirs
}
