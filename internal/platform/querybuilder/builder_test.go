package querybuilder

import "testing"

func TestPlayerURL_LastNameFirst(t *testing.T) {
	tests := []struct {
		name     string
		base     string
		endpoint string
		first    string
		last     string
		want     string
	}{
		{
			name:     "stats endpoint",
			base:     "https://nba-players.herokuapp.com",
			endpoint: "/players-stats",
			first:    "lebron",
			last:     "james",
			want:     "https://nba-players.herokuapp.com/players-stats/james/lebron",
		},
		{
			name:     "image endpoint",
			base:     "https://nba-players.herokuapp.com",
			endpoint: "/players",
			first:    "lebron",
			last:     "james",
			want:     "https://nba-players.herokuapp.com/players/james/lebron",
		},
		{
			name:     "trailing slash on base",
			base:     "http://localhost:8080/",
			endpoint: "players",
			first:    "stephen",
			last:     "curry",
			want:     "http://localhost:8080/players/curry/stephen",
		},
		{
			name:     "empty names pass through",
			base:     "http://api",
			endpoint: "/players-stats",
			want:     "http://api/players-stats//",
		},
		{
			name:     "reserved characters are not escaped",
			base:     "http://api",
			endpoint: "/players",
			first:    "d'angelo",
			last:     "russell?x",
			want:     "http://api/players/russell?x/d'angelo",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := PlayerURL(tt.base, tt.endpoint, tt.first, tt.last)
			if err != nil {
				t.Fatalf("build url: %v", err)
			}
			if got != tt.want {
				t.Fatalf("unexpected url:\nwant: %s\ngot:  %s", tt.want, got)
			}
		})
	}
}

func TestURLBuilder_RequiresBase(t *testing.T) {
	if _, err := URL("  ").Path("/players").ToURL(); err == nil {
		t.Fatalf("expected error for empty base")
	}
}
