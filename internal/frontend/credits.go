package frontend

import (
	"strings"

	"github.com/janpfeifer/GoMemory/internal/game"
	"github.com/maxence-charriere/go-app/v10/pkg/app"
)

// Credits is the "ABOUT" dialog.
type Credits struct {
	app.Compo
}

func (c *Credits) onClose(ctx app.Context, e app.Event) {
	e.PreventDefault()
	State.ToggleCredits()
}

func (c *Credits) Render() app.UI {
	var text []app.UI
	for _, segment := range game.Credits() {
		for i, line := range strings.Split(segment.Text, "\n") {
			if i > 0 {
				text = append(text, app.Br())
			}
			if line == "" {
				continue
			}
			if segment.Link != "" {
				text = append(text, app.A().Href(segment.Link).Target("_blank").Text(line))
			} else {
				text = append(text, app.Span().Text(line))
			}
		}
	}
	return app.Dialog().Open(true).Body(
		app.Article().Body(
			app.H3().Text("ABOUT"),
			app.P().Body(text...),
			app.Footer().Body(
				app.Button().OnClick(c.onClose).Text("CLOSE"),
			),
		),
	)
}
