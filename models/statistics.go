package models

// TeamStanding is one row of a championship's standings, aggregated from the
// match table on demand.
type TeamStanding struct {
	TeamID   int    `json:"team_id"`
	TeamName string `json:"team_name"`
	Played   int    `json:"played"`
	Wins     int    `json:"wins"`
	Losses   int    `json:"losses"`
}
