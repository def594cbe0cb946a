package httpapi

import (
	"github.com/flosch/pongo2/v6"
	"github.com/riskibarqy/nba-player-search/internal/usecase"
)

const indexSource = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{ title }}</title>
</head>
<body>
<form id="player-search" method="post" action="/search">
<label for="first-name">First name</label>
<input id="first-name" name="{{ first_field }}" type="text" autocomplete="off">
<label for="last-name">Last name</label>
<input id="last-name" name="{{ last_field }}" type="text" autocomplete="off">
<button type="submit">Search</button>
</form>
<iframe id="player-panel" src="/panel" title="{{ title }} results"></iframe>
</body>
</html>
`

// Panel content is sanitized when rendered, so it is embedded as is.
const panelSource = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta http-equiv="refresh" content="{{ refresh }}">
</head>
<body>{{ content|safe }}</body>
</html>
`

type pages struct {
	index *pongo2.Template
	panel *pongo2.Template
}

func newPages() *pages {
	return &pages{
		index: pongo2.Must(pongo2.FromString(indexSource)),
		panel: pongo2.Must(pongo2.FromString(panelSource)),
	}
}

func (p *pages) Index() (string, error) {
	return p.index.Execute(pongo2.Context{
		"title":       "NBA player search",
		"first_field": usecase.FieldFirstName,
		"last_field":  usecase.FieldLastName,
	})
}

func (p *pages) Panel(content string, loading bool) (string, error) {
	refresh := 3
	if loading {
		refresh = 1
	}
	return p.panel.Execute(pongo2.Context{
		"content": content,
		"refresh": refresh,
	})
}
