package models

import "time"

type Participant struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Nickname  *string   `json:"nickname,omitempty"`
	TeamID    int       `json:"team_id"`
	CreatedAt time.Time `json:"created_at"`
}
