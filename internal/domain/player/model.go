package player

import "strings"

// Endpoint is the fixed path segment selecting a remote resource.
type Endpoint string

const (
	EndpointStats Endpoint = "/players-stats"
	EndpointImage Endpoint = "/players"
)

// SearchQuery is the normalized pair of names sent to the players API.
type SearchQuery struct {
	FirstName string
	LastName  string
}

// NewSearchQuery lowercases both names. Nothing else is validated or trimmed.
func NewSearchQuery(firstName, lastName string) SearchQuery {
	return SearchQuery{
		FirstName: strings.ToLower(firstName),
		LastName:  strings.ToLower(lastName),
	}
}

// Stats is the per-game stat line returned by the stats endpoint.
type Stats struct {
	Name                string
	TeamName            string
	MinutesPerGame      float64
	PointsPerGame       float64
	ReboundsPerGame     float64
	StealsPerGame       float64
	FreeThrowPercentage float64
}

// Image is a binary photo payload as received from the image endpoint.
type Image struct {
	Data        []byte
	ContentType string
}

func (i Image) Empty() bool {
	return len(i.Data) == 0
}

// Card is a resolved search ready to render.
type Card struct {
	Stats   Stats
	DataURI string
}
