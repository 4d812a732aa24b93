package brackets

import (
	"context"

	"github.com/Matari73/Backend-CCE-AS66A-sub000/models"
)

// TeamLister is the subscription lookup the engine depends on. It is satisfied
// by repositories.SubscriptionRepository.
type TeamLister interface {
	SubscribedTeams(ctx context.Context, championshipID int) ([]*models.Team, error)
}

// MatchStore is the persistence surface the engine depends on. It is satisfied
// by repositories.MatchRepository, possibly bound to a transaction. Matches
// returned by ListByChampionship must come back in creation order.
type MatchStore interface {
	Create(ctx context.Context, match *models.Match) error
	CreateBatch(ctx context.Context, matches []*models.Match) error
	ListByChampionship(ctx context.Context, championshipID int) ([]*models.Match, error)
}

// Advancement is the outcome of a single-elimination phase generation.
type Advancement struct {
	Stage           string          `json:"stage"`
	Matches         []*models.Match `json:"matches"`
	WinnersAdvanced int             `json:"winners_advanced"`
}

// Breakdown partitions the matches created by one double-elimination
// advancement by bracket tag.
type Breakdown struct {
	Upper []*models.Match `json:"upper"`
	Lower []*models.Match `json:"lower"`
	Final []*models.Match `json:"final"`
}

// DoubleAdvancement is the outcome of a double-elimination advancement. Stage
// is a best-effort single label for display; Breakdown is authoritative.
type DoubleAdvancement struct {
	Stage     string          `json:"stage"`
	Matches   []*models.Match `json:"matches"`
	Breakdown Breakdown       `json:"breakdown"`
}

func isPowerOfTwo(n int) bool {
	return n > 0 && n&(n-1) == 0
}

func roundsFor(teamCount int) int {
	rounds := 0
	for 1<<rounds < teamCount {
		rounds++
	}
	return rounds
}

func completedMatches(matches []*models.Match) []*models.Match {
	var out []*models.Match
	for _, m := range matches {
		if m.Completed() {
			out = append(out, m)
		}
	}
	return out
}

func pendingMatches(matches []*models.Match) []*models.Match {
	var out []*models.Match
	for _, m := range matches {
		if !m.Completed() {
			out = append(out, m)
		}
	}
	return out
}

func bracketMatches(matches []*models.Match, b models.MatchBracket) []*models.Match {
	var out []*models.Match
	for _, m := range matches {
		if m.InBracket(b) {
			out = append(out, m)
		}
	}
	return out
}

func distinctStages(matches []*models.Match) []string {
	seen := make(map[string]bool)
	var out []string
	for _, m := range matches {
		if !seen[m.Stage] {
			seen[m.Stage] = true
			out = append(out, m.Stage)
		}
	}
	return out
}

// latestStage returns the stage of the most recently created match, relying on
// the store's creation ordering. The two double-elimination brackets progress
// at different paces, so the current stage cannot come from a fixed enum.
func latestStage(matches []*models.Match) string {
	if len(matches) == 0 {
		return ""
	}
	return matches[len(matches)-1].Stage
}

// stageWinners collects the winner of every completed match of a stage, in the
// order the matches were created.
func stageWinners(matches []*models.Match, stage string) []int {
	var winners []int
	for _, m := range matches {
		if m.Stage == stage && m.Completed() {
			winners = append(winners, *m.WinnerTeamID)
		}
	}
	return winners
}

// stageLosers collects the non-winner of every completed match of a stage, in
// creation order.
func stageLosers(matches []*models.Match, stage string) []int {
	var losers []int
	for _, m := range matches {
		if m.Stage == stage && m.Completed() {
			losers = append(losers, m.Loser())
		}
	}
	return losers
}

// zipMerge interleaves two entrant lists position by position and appends the
// surplus of the longer one. This is the canonical merge order when
// upper-bracket losers drop into a lower round alongside lower-bracket
// winners.
func zipMerge(a, b []int) []int {
	merged := make([]int, 0, len(a)+len(b))
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		merged = append(merged, a[i], b[i])
	}
	merged = append(merged, a[n:]...)
	merged = append(merged, b[n:]...)
	return merged
}
