package frontend

import (
	"github.com/maxence-charriere/go-app/v10/pkg/app"
)

type TopBar struct {
	app.Compo
}

func (t *TopBar) onToggleSound(ctx app.Context, e app.Event) {
	e.PreventDefault()
	State.ToggleSound()
}

func (t *TopBar) onAbout(ctx app.Context, e app.Event) {
	e.PreventDefault()
	State.ToggleCredits()
}

func (t *TopBar) Render() app.UI {
	audio := "AUDIO: ON!"
	if !State.SoundEnabled {
		audio = "AUDIO: OFF"
	}
	return app.Nav().Body(
		app.Ul().Body(
			app.Li().Body(app.Strong().Class("brand").Text("GoMemory")),
		),
		app.Ul().Body(
			app.Li().Body(app.A().Href("#").OnClick(t.onAbout).Text("ABOUT")),
			app.Li().Body(app.A().Href("#").OnClick(t.onToggleSound).Text(audio)),
		),
	)
}
