// Package desktop runs the game in a native window, with ebiten.
//
// Ebiten calls Update at a fixed rate: each call advances the game's virtual clock by
// one tick, so all game callbacks run on ebiten's goroutine.
package desktop

import (
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/janpfeifer/GoMemory/internal/banner"
	"github.com/janpfeifer/GoMemory/internal/game"
	"k8s.io/klog/v2"
)

// Size of ebitenutil's debug font glyphs.
const (
	glyphWidth  = 6
	glyphHeight = 16
)

// rect is a screen area.
type rect struct {
	x, y, w, h float64
}

func (r rect) contains(x, y float64) bool {
	return x >= r.x && y >= r.y && x < r.x+r.w && y < r.y+r.h
}

// Game implements ebiten.Game.
type Game struct {
	cfg        *game.Config
	sched      *game.ManualScheduler
	printer    *banner.Printer
	controller *game.Controller
	audio      *Audio

	showCredits   bool
	status        string
	prevMouseLeft bool
	prevKeys      map[ebiten.Key]bool
}

// New creates the game and shows its start screen. audio may be nil, for a silent game.
func New(cfg *game.Config, audio *Audio) (*Game, error) {
	g := &Game{
		cfg:      cfg,
		audio:    audio,
		sched:    game.NewManualScheduler(time.Now()),
		prevKeys: make(map[ebiten.Key]bool),
	}
	g.printer = banner.NewPrinter(g.sched)
	var cues game.AudioCues
	if audio != nil {
		cues = audio
	}
	controller, err := game.NewController(game.Options{
		Config:    cfg,
		Scheduler: g.sched,
		Announcer: g.printer,
		Audio:     cues,
		Listener: func(e game.Event) {
			if e.Type == game.EventStateChanged {
				klog.V(1).Infof("desktop: %s", e)
			}
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create game: %w", err)
	}
	g.controller = controller
	g.controller.Boot()
	return g, nil
}

// Update implements ebiten.Game.
func (g *Game) Update() error {
	g.handleInput()
	g.sched.Advance(time.Second / time.Duration(ebiten.TPS()))
	return nil
}

// pressed reports whether k went down since the last Update.
func (g *Game) pressed(k ebiten.Key, current map[ebiten.Key]bool) bool {
	current[k] = ebiten.IsKeyPressed(k)
	return current[k] && !g.prevKeys[k]
}

func (g *Game) handleInput() {
	currentKeys := map[ebiten.Key]bool{}

	// 1-3: power-ups.
	powerUpKeys := [game.NumKinds]ebiten.Key{ebiten.Key1, ebiten.Key2, ebiten.Key3}
	for kind, k := range powerUpKeys {
		if g.pressed(k, currentKeys) {
			g.controller.UsePowerUp(game.Kind(kind))
		}
	}

	// Enter / Space: the prompt button.
	enter := g.pressed(ebiten.KeyEnter, currentKeys)
	space := g.pressed(ebiten.KeySpace, currentKeys)
	if enter || space {
		g.pressPrompt()
	}

	// M: sound on/off.
	if g.pressed(ebiten.KeyM, currentKeys) && g.audio != nil {
		g.audio.Toggle()
	}

	// A: about dialog. C: copy the first credits link.
	if g.pressed(ebiten.KeyA, currentKeys) {
		g.showCredits = !g.showCredits
	}
	if g.pressed(ebiten.KeyC, currentKeys) && g.showCredits {
		g.copyCreditsLink()
	}

	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		if !g.prevMouseLeft {
			mx, my := ebiten.CursorPosition()
			g.handleClick(float64(mx), float64(my))
		}
	}
	g.prevMouseLeft = ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	g.prevKeys = currentKeys
}

func (g *Game) handleClick(x, y float64) {
	if g.showCredits {
		g.showCredits = false
		return
	}
	if g.controller.Prompt() != game.PromptNone && g.promptRect().contains(x, y) {
		g.pressPrompt()
		return
	}
	if index := g.cardAt(x, y); index >= 0 {
		g.controller.SelectCard(index)
	}
}

func (g *Game) pressPrompt() {
	switch g.controller.Prompt() {
	case game.PromptContinue:
		g.controller.Continue()
	case game.PromptStart:
		g.controller.Start()
	case game.PromptRetry:
		g.controller.Retry()
	}
}

func (g *Game) copyCreditsLink() {
	for _, segment := range game.Credits() {
		if segment.Link == "" {
			continue
		}
		if err := clipboard.WriteAll(segment.Link); err != nil {
			klog.Warningf("desktop: failed to copy %s: %v", segment.Link, err)
			g.status = "CLIPBOARD NOT AVAILABLE"
			return
		}
		g.status = "COPIED " + segment.Link
		return
	}
}

// cardAt returns the index of the top-most card under (x, y), or -1.
func (g *Game) cardAt(x, y float64) int {
	cards := g.controller.Match.Cards()
	size := float64(g.cfg.Board.CardSize)
	for i := len(cards) - 1; i >= 0; i-- {
		card := cards[i]
		if (rect{card.X, card.Y, size, size}).contains(x, y) {
			return card.Index
		}
	}
	return -1
}

func (g *Game) promptRect() rect {
	w := float64(len(g.controller.Prompt().Label())*glyphWidth + 40)
	h := float64(glyphHeight + 20)
	return rect{float64(g.cfg.Board.Width)/2 - w/2, float64(g.cfg.Board.Height)*0.75 - h/2, w, h}
}

// Draw implements ebiten.Game.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor)

	if grid := g.controller.Growth.Grid(); grid != nil {
		size := float32(g.cfg.Growth.CellSize)
		for _, cell := range grid.Cells() {
			vector.FillRect(screen, float32(cell.X)*size, float32(cell.Y)*size, size, size,
				colorOf(grid.At(cell).Color), false)
		}
	}

	size := float32(g.cfg.Board.CardSize)
	for _, card := range g.controller.Match.Cards() {
		c := cardBackColor
		if card.ShowsColor() {
			c = colorOf(card.Color)
		}
		vector.FillRect(screen, float32(card.X), float32(card.Y), size, size, c, false)
	}

	for i, b := range g.printer.Active() {
		g.printCentered(screen, b.Visible(), int(float64(g.cfg.Board.Height)*0.3)+i*3*glyphHeight)
	}

	if p := g.controller.Prompt(); p != game.PromptNone {
		r := g.promptRect()
		vector.FillRect(screen, float32(r.x), float32(r.y), float32(r.w), float32(r.h), promptColor, false)
		g.printCentered(screen, p.Label(), int(r.y+10))
	}

	if g.controller.State() == game.Playing {
		var hints []string
		for _, pu := range g.controller.PowerUps.Registry() {
			if n := g.controller.PowerUps.Available(pu.Kind()); n > 0 {
				hints = append(hints, fmt.Sprintf("[%d] %s x%d", int(pu.Kind())+1, pu.Name(), n))
			}
		}
		ebitenutil.DebugPrintAt(screen, strings.Join(hints, "   "), 8, g.cfg.Board.Height-glyphHeight-8)
	}
	status := fmt.Sprintf("LEVEL %d  [A] ABOUT", g.controller.Level())
	if g.audio != nil {
		onOff := "OFF"
		if g.audio.Enabled() {
			onOff = "ON!"
		}
		status += "  [M] AUDIO: " + onOff
	}
	ebitenutil.DebugPrintAt(screen, status, 8, 8)

	if g.showCredits {
		vector.FillRect(screen, 0, 0, float32(g.cfg.Board.Width), float32(g.cfg.Board.Height), overlayColor, false)
		text := game.PlainText(game.Credits()) + "\n\n[C] COPY LINK"
		if g.status != "" {
			text += "\n" + g.status
		}
		g.printCentered(screen, text, g.cfg.Board.Height/3)
	}
}

// printCentered prints each line of text centered horizontally, starting at y.
func (g *Game) printCentered(screen *ebiten.Image, text string, y int) {
	for i, line := range strings.Split(text, "\n") {
		x := (g.cfg.Board.Width - len([]rune(line))*glyphWidth) / 2
		ebitenutil.DebugPrintAt(screen, line, x, y+i*glyphHeight)
	}
}

// Layout implements ebiten.Game.
func (g *Game) Layout(_, _ int) (int, int) {
	return g.cfg.Board.Width, g.cfg.Board.Height
}

// Shutdown stops the game.
func (g *Game) Shutdown() {
	g.controller.Shutdown()
}
