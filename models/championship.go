package models

import "time"

// ChampionshipFormat mirrors the format ENUM in the database.
type ChampionshipFormat string

const (
	FormatSingleElimination ChampionshipFormat = "single"
	FormatDoubleElimination ChampionshipFormat = "double"
)

func (f ChampionshipFormat) Valid() bool {
	return f == FormatSingleElimination || f == FormatDoubleElimination
}

type Championship struct {
	ID          int                `json:"id"`
	Name        string             `json:"name"`
	Description *string            `json:"description,omitempty"`
	Format      ChampionshipFormat `json:"format"`
	UserID      int                `json:"user_id"`
	StartDate   time.Time          `json:"start_date"`
	CreatedAt   time.Time          `json:"created_at"`

	Subscriptions []Subscription `json:"subscriptions,omitempty"`
	Teams         []Team         `json:"teams,omitempty"`
	Matches       []Match        `json:"matches,omitempty"`

	LogoKey *string `json:"-"`
	LogoURL *string `json:"logo_url,omitempty"`
}
