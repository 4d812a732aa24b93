package models

import "time"

// Subscription registers a team into a championship.
type Subscription struct {
	ID             int       `json:"id"`
	ChampionshipID int       `json:"championship_id"`
	TeamID         int       `json:"team_id"`
	CreatedAt      time.Time `json:"created_at"`

	Team *Team `json:"team,omitempty"`
}
