package nbaplayers

import (
	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/go-playground/validator/v10"
	"github.com/riskibarqy/nba-player-search/internal/domain/player"
	"github.com/riskibarqy/nba-player-search/internal/usecase"
)

var payloadValidator = validator.New()

// Response is a fully read 2xx response from the players API.
type Response struct {
	URL         string
	StatusCode  int
	ContentType string
	Body        []byte
}

// statsPayload mirrors the stats endpoint body. Pointers distinguish a
// missing field from a legitimate zero.
type statsPayload struct {
	Name                string   `json:"name" validate:"required"`
	TeamName            string   `json:"team_name" validate:"required"`
	MinutesPerGame      *float64 `json:"minutes_per_game" validate:"required,gte=0"`
	PointsPerGame       *float64 `json:"points_per_game" validate:"required,gte=0"`
	ReboundsPerGame     *float64 `json:"rebounds_per_game" validate:"required,gte=0"`
	StealsPerGame       *float64 `json:"steals_per_game" validate:"required,gte=0"`
	FreeThrowPercentage *float64 `json:"free_throw_percentage" validate:"required,gte=0,lte=100"`
}

func (r *Response) Stats() (player.Stats, error) {
	var payload statsPayload
	if err := sonic.Unmarshal(r.Body, &payload); err != nil {
		return player.Stats{}, crerr.Mark(crerr.Wrapf(err, "decode stats payload from %s", r.URL), usecase.ErrParse)
	}
	if err := payloadValidator.Struct(payload); err != nil {
		return player.Stats{}, crerr.Mark(crerr.Wrapf(err, "validate stats payload from %s", r.URL), usecase.ErrParse)
	}

	return player.Stats{
		Name:                payload.Name,
		TeamName:            payload.TeamName,
		MinutesPerGame:      *payload.MinutesPerGame,
		PointsPerGame:       *payload.PointsPerGame,
		ReboundsPerGame:     *payload.ReboundsPerGame,
		StealsPerGame:       *payload.StealsPerGame,
		FreeThrowPercentage: *payload.FreeThrowPercentage,
	}, nil
}

func (r *Response) Image() (player.Image, error) {
	if len(r.Body) == 0 {
		return player.Image{}, crerr.Mark(crerr.Newf("empty image body from %s", r.URL), usecase.ErrParse)
	}
	return player.Image{
		Data:        r.Body,
		ContentType: r.ContentType,
	}, nil
}
