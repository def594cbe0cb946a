package usecase

import (
	"context"

	"github.com/riskibarqy/nba-player-search/internal/domain/player"
)

// PlayerResponse is a pending response handle from the players API.
type PlayerResponse interface {
	// Stats parses the body as a validated stat line.
	Stats() (player.Stats, error)
	// Image returns the body as a binary payload.
	Image() (player.Image, error)
}

// PlayerAPI issues GET requests against the players API.
type PlayerAPI interface {
	Get(ctx context.Context, rawURL string) (PlayerResponse, error)
}

// ImageDecoder turns an image payload into a data URI asynchronously.
type ImageDecoder interface {
	Decode(ctx context.Context, image player.Image, done func(dataURI string, err error)) error
}

// Renderer produces display content for each search state.
type Renderer interface {
	Loading() string
	Card(card player.Card) (string, error)
	Failure(err error) string
}

// Output is the single display surface a search writes to.
type Output interface {
	WriteOutput(ctx context.Context, content string) error
}

// Form exposes the submitted input fields.
type Form interface {
	ReadField(name string) string
}

// SubmitEvent is the form submission being handled.
type SubmitEvent interface {
	PreventDefault()
}
