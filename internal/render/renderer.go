package render

import (
	"strconv"
	"strings"

	crerr "github.com/cockroachdb/errors"
	"github.com/flosch/pongo2/v6"
	"github.com/microcosm-cc/bluemonday"
	"github.com/riskibarqy/nba-player-search/internal/domain/player"
	"github.com/riskibarqy/nba-player-search/internal/usecase"
)

// LoadingFragment is written while a search is in flight.
const LoadingFragment = `<div class="loading"><div></div><div></div></div>`

const cardSource = `<div class="player-card">
<img class="player-photo" src="{{ image }}" alt="{{ name }}">
<h2 class="player-name">{{ name }}</h2>
<p class="player-team">{{ team }}</p>
<dl class="player-stats">
<dt>Minutes per game</dt><dd class="minutes">{{ minutes }}</dd>
<dt>Points per game</dt><dd class="points">{{ points }}</dd>
<dt>Rebounds per game</dt><dd class="rebounds">{{ rebounds }}</dd>
<dt>Steals per game</dt><dd class="steals">{{ steals }}</dd>
<dt>Free throw percentage</dt><dd class="free-throws">{{ free_throws }}%</dd>
</dl>
</div>`

const failureSource = `<div class="player-error" data-error="{{ message }}">Player not found</div>`

// Renderer produces the three panel fragments. Templates autoescape their
// input and every result is passed through a sanitizing policy.
type Renderer struct {
	card    *pongo2.Template
	failure *pongo2.Template
	policy  *bluemonday.Policy
}

func New() *Renderer {
	return &Renderer{
		card:    pongo2.Must(pongo2.FromString(cardSource)),
		failure: pongo2.Must(pongo2.FromString(failureSource)),
		policy:  newPolicy(),
	}
}

func newPolicy() *bluemonday.Policy {
	policy := bluemonday.UGCPolicy()
	policy.AllowAttrs("class").Globally()
	policy.AllowDataAttributes()
	policy.AllowDataURIImages()
	return policy
}

func (r *Renderer) Loading() string {
	return LoadingFragment
}

func (r *Renderer) Card(card player.Card) (string, error) {
	out, err := r.card.Execute(pongo2.Context{
		"image":       card.DataURI,
		"name":        card.Stats.Name,
		"team":        card.Stats.TeamName,
		"minutes":     FormatNumber(card.Stats.MinutesPerGame),
		"points":      FormatNumber(card.Stats.PointsPerGame),
		"rebounds":    FormatNumber(card.Stats.ReboundsPerGame),
		"steals":      FormatNumber(card.Stats.StealsPerGame),
		"free_throws": FormatNumber(card.Stats.FreeThrowPercentage),
	})
	if err != nil {
		return "", crerr.Wrap(err, "render player card")
	}

	sanitized := r.policy.Sanitize(out)
	if !strings.Contains(sanitized, `src="`+card.DataURI+`"`) {
		return "", crerr.Mark(crerr.Newf("player photo removed by sanitizer: %.40q", card.DataURI), usecase.ErrDecode)
	}
	return sanitized, nil
}

// Failure never fails; the error message is only exposed as metadata.
func (r *Renderer) Failure(err error) string {
	message := "unknown error"
	if err != nil {
		message = err.Error()
	}
	out, execErr := r.failure.Execute(pongo2.Context{"message": message})
	if execErr != nil {
		return `<div class="player-error">Player not found</div>`
	}
	return r.policy.Sanitize(out)
}

// FormatNumber prints v with the fewest digits that round-trip (25, 35.5).
func FormatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
