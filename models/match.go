package models

import "time"

// MatchBracket mirrors the bracket ENUM in the database. Single-elimination
// round-1 matches carry no bracket tag at all (NULL column).
type MatchBracket string

const (
	BracketUpper MatchBracket = "upper"
	BracketLower MatchBracket = "lower"
	BracketFinal MatchBracket = "final"
)

type Match struct {
	ID             int           `json:"id"`
	ChampionshipID int           `json:"championship_id"`
	TeamAID        int           `json:"team_a_id"`
	TeamBID        int           `json:"team_b_id"`
	WinnerTeamID   *int          `json:"winner_team_id,omitempty"`
	Score          *string       `json:"score,omitempty"`
	Stage          string        `json:"stage"`
	Bracket        *MatchBracket `json:"bracket,omitempty"`
	Map            string        `json:"map"`
	Date           time.Time     `json:"date"`
	CreatedAt      time.Time     `json:"created_at"`
}

// Completed reports whether the match result has been registered. A completed
// match is immutable from the bracket engine's point of view.
func (m *Match) Completed() bool {
	return m.WinnerTeamID != nil
}

// Loser returns the team that did not win. Zero when the match is pending.
func (m *Match) Loser() int {
	if m.WinnerTeamID == nil {
		return 0
	}
	if *m.WinnerTeamID == m.TeamAID {
		return m.TeamBID
	}
	return m.TeamAID
}

// InBracket reports whether the match carries the given bracket tag.
func (m *Match) InBracket(b MatchBracket) bool {
	return m.Bracket != nil && *m.Bracket == b
}
