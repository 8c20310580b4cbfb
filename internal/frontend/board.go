package frontend

import (
	"fmt"
	"strings"

	"github.com/janpfeifer/GoMemory/internal/banner"
	"github.com/janpfeifer/GoMemory/internal/game"
	"github.com/maxence-charriere/go-app/v10/pkg/app"
	"k8s.io/klog/v2"
)

// CardBackground is the CSS color of a face-down card.
const CardBackground = "var(--card-background-color)"

// Board is the game page: cards, matrix, banners and buttons.
type Board struct {
	app.Compo

	controller *game.Controller
	printer    *banner.Printer
	err        string
}

func (b *Board) OnAppUpdate(ctx app.Context) {
	klog.Infof("Board component: App update available, not reloading not to interrupt the game...")
}

func (b *Board) OnMount(ctx app.Context) {
	klog.Infof("Board component: OnMount called")
	if app.IsServer {
		return
	}
	State.Listeners["board"] = func() {
		ctx.Dispatch(func(ctx app.Context) {})
	}
	ctx.Async(func() {
		cfg, err := FetchConfig()
		ctx.Dispatch(func(ctx app.Context) {
			if err != nil {
				klog.Errorf("Board component: %v, using default tuning", err)
				State.ConfigError = err.Error()
				cfg = game.DefaultConfig()
			}
			State.Config = cfg
			b.start(ctx)
		})
	})
}

func (b *Board) OnDismount() {
	klog.Infof("Board component: OnDismount called")
	delete(State.Listeners, "board")
	if b.controller != nil {
		b.controller.Shutdown()
		b.controller = nil
	}
}

// start creates the game, with every callback of its scheduler going through
// ctx.Dispatch: they run on the UI goroutine, one at a time, and re-render the board.
func (b *Board) start(ctx app.Context) {
	sched := game.NewTimerScheduler(func(f func()) {
		ctx.Dispatch(func(ctx app.Context) { f() })
	})
	b.printer = banner.NewPrinter(sched)
	controller, err := game.NewController(game.Options{
		Config:    State.Config,
		Scheduler: sched,
		Announcer: b.printer,
		Audio:     webAudio{},
		Listener:  b.onEvent,
	})
	if err != nil {
		b.err = fmt.Sprintf("Failed to start the game: %v", err)
		klog.Errorf("Board component: %s", b.err)
		return
	}
	b.controller = controller
	klog.Infof("Board component: session %s started", controller.Session().ID)
	controller.Boot()
}

func (b *Board) onEvent(e game.Event) {
	switch e.Type {
	case game.EventCardsMoved, game.EventCellGrown, game.EventCellRemoved:
		// Too chatty.
	default:
		klog.V(1).Infof("Board component: %s", e)
	}
}

func (b *Board) onPrompt(ctx app.Context, e app.Event) {
	e.PreventDefault()
	switch b.controller.Prompt() {
	case game.PromptContinue:
		b.controller.Continue()
	case game.PromptStart:
		b.controller.Start()
	case game.PromptRetry:
		b.controller.Retry()
	}
}

func px(v float64) string {
	return fmt.Sprintf("%.1fpx", v)
}

func (b *Board) renderMatrix(cfg *game.Config) app.UI {
	var sb strings.Builder
	fmt.Fprintf(&sb, `<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" class="matrix">`,
		cfg.Board.Width, cfg.Board.Height)
	if grid := b.controller.Growth.Grid(); grid != nil {
		size := cfg.Growth.CellSize
		for _, cell := range grid.Cells() {
			fmt.Fprintf(&sb, `<rect x="%d" y="%d" width="%d" height="%d" fill="%s" />`,
				cell.X*size, cell.Y*size, size, size, grid.At(cell).Color)
		}
	}
	sb.WriteString(`</svg>`)
	return app.Raw(sb.String())
}

func (b *Board) renderCards(cfg *game.Config) []app.UI {
	size := px(float64(cfg.Board.CardSize))
	var cards []app.UI
	for _, card := range b.controller.Match.Cards() {
		color := CardBackground
		if card.ShowsColor() {
			color = card.Color
		}
		index := card.Index
		cards = append(cards, app.Div().
			Class("card").
			Style("left", px(card.X)).
			Style("top", px(card.Y)).
			Style("width", size).
			Style("height", size).
			Style("background-color", color).
			Style("box-shadow", "0px 0px 10px "+color).
			OnClick(func(ctx app.Context, e app.Event) {
				b.controller.SelectCard(index)
			}))
	}
	return cards
}

func (b *Board) renderPowerUps() app.UI {
	var buttons []app.UI
	if b.controller.State() == game.Playing {
		powerUps := b.controller.PowerUps
		for _, pu := range powerUps.Registry() {
			n := powerUps.Available(pu.Kind())
			if n < 1 {
				continue
			}
			kind := pu.Kind()
			buttons = append(buttons, app.Button().
				Class("powerup").
				Title(pu.Description()).
				Text(fmt.Sprintf("%s x%d", pu.Name(), n)).
				OnClick(func(ctx app.Context, e app.Event) {
					b.controller.UsePowerUp(kind)
				}))
		}
	}
	return app.Div().Class("powerups").Body(buttons...)
}

func (b *Board) renderBanners() []app.UI {
	var banners []app.UI
	for i, bn := range b.printer.Active() {
		banners = append(banners, app.Div().
			Class("banner").
			Style("top", fmt.Sprintf("%d%%", 30+12*i)).
			Text(bn.Visible()))
	}
	return banners
}

func (b *Board) Render() app.UI {
	if b.controller == nil {
		msg := "Loading..."
		if b.err != "" {
			msg = b.err
		}
		return app.Main().Class("container").Body(
			&TopBar{},
			app.Div().Aria("busy", "true").Text(msg),
		)
	}

	cfg := b.controller.Session().Config
	body := []app.UI{b.renderMatrix(cfg)}
	body = append(body, b.renderCards(cfg)...)
	body = append(body, b.renderBanners()...)
	body = append(body, b.renderPowerUps())
	if p := b.controller.Prompt(); p != game.PromptNone {
		body = append(body, app.Button().Class("prompt").Text(p.Label()).OnClick(b.onPrompt))
	}

	page := []app.UI{
		&TopBar{},
		app.Div().
			Class("board").
			Style("width", fmt.Sprintf("%dpx", cfg.Board.Width)).
			Style("height", fmt.Sprintf("%dpx", cfg.Board.Height)).
			Body(body...),
	}
	if State.ShowCredits {
		page = append(page, &Credits{})
	}
	return app.Main().Class("game-page").Body(page...)
}
