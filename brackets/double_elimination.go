package brackets

import (
	"context"
	"fmt"
	"time"

	"github.com/Matari73/Backend-CCE-AS66A-sub000/models"
)

// DoubleElimination runs the upper and lower brackets of a championship and
// merges them into a grand final. Like SingleElimination it is stateless: the
// whole bracket is derived from the match store on every call.
type DoubleElimination struct {
	teams TeamLister
	store MatchStore
	rand  *Randomizer
}

func NewDoubleElimination(teams TeamLister, store MatchStore, rand *Randomizer) *DoubleElimination {
	return &DoubleElimination{teams: teams, store: store, rand: rand}
}

// GenerateBracket shuffles the subscribed teams into the upper bracket's
// round 1. The lower bracket starts empty and is populated by advancement
// calls as upper-bracket losers drop.
func (e *DoubleElimination) GenerateBracket(ctx context.Context, championshipID int) ([]*models.Match, error) {
	teams, err := e.teams.SubscribedTeams(ctx, championshipID)
	if err != nil {
		return nil, fmt.Errorf("failed to list subscribed teams for championship %d: %w", championshipID, err)
	}
	if !isPowerOfTwo(len(teams)) {
		return nil, &InvalidBracketSizeError{Count: len(teams)}
	}

	shuffled := e.rand.ShuffleTeams(teams)
	matches := e.pairIntoMatches(championshipID, teamIDs(shuffled), StageUpperRound1, models.BracketUpper)
	if err := e.store.CreateBatch(ctx, matches); err != nil {
		return nil, fmt.Errorf("failed to create upper round 1 for championship %d: %w", championshipID, err)
	}
	return matches, nil
}

// AdvanceToNextPhase progresses both brackets in one step: upper winners move
// up, upper losers drop into the lower bracket, lower winners move on, and
// once both brackets have a champion the grand final is scheduled. Every
// match of the championship must be completed before a phase can be
// generated.
func (e *DoubleElimination) AdvanceToNextPhase(ctx context.Context, championshipID int) (*DoubleAdvancement, error) {
	all, err := e.store.ListByChampionship(ctx, championshipID)
	if err != nil {
		return nil, fmt.Errorf("failed to list matches for championship %d: %w", championshipID, err)
	}
	if pending := pendingMatches(all); len(pending) > 0 {
		return nil, &PendingMatchesError{Matches: pending}
	}
	if len(all) == 0 {
		return nil, ErrNoCompletedMatches
	}
	if len(matchesInStage(all, StageGrandFinal)) > 0 {
		return nil, ErrAlreadyFinalized
	}

	upper := bracketMatches(all, models.BracketUpper)
	lower := bracketMatches(all, models.BracketLower)

	upperChampion := UpperChampion(upper)
	lowerChampion := LowerChampion(lower)

	if upperChampion != nil && lowerChampion != nil {
		return e.scheduleGrandFinal(ctx, championshipID, *upperChampion, *lowerChampion)
	}

	currentUpper := latestStage(upper)
	currentLower := latestStage(lower)

	var upperNew []*models.Match
	if upperChampion == nil && currentUpper != "" {
		if next, ok := upperNextStage[currentUpper]; ok {
			if winners := stageWinners(upper, currentUpper); len(winners) >= 2 {
				upperNew = e.pairIntoMatches(championshipID, winners, next, models.BracketUpper)
			}
		}
	}

	lowerNew := e.nextLowerPhase(championshipID, upper, lower, currentUpper, currentLower, upperChampion)

	if len(upperNew) == 0 && len(lowerNew) == 0 {
		switch {
		case upperChampion != nil:
			return nil, ErrUpperWaitingOnLower
		case lowerChampion != nil:
			return nil, ErrLowerWaitingOnUpper
		default:
			return nil, ErrBracketFullyResolved
		}
	}

	batch := make([]*models.Match, 0, len(upperNew)+len(lowerNew))
	batch = append(batch, upperNew...)
	batch = append(batch, lowerNew...)
	if err := e.store.CreateBatch(ctx, batch); err != nil {
		return nil, fmt.Errorf("failed to create next phase for championship %d: %w", championshipID, err)
	}

	stage := ""
	switch {
	case len(upperNew) > 0:
		stage = upperNew[0].Stage
	case len(lowerNew) > 0:
		stage = "Lower Bracket - " + lowerNew[0].Stage
	}

	return &DoubleAdvancement{
		Stage:   stage,
		Matches: batch,
		Breakdown: Breakdown{
			Upper: upperNew,
			Lower: lowerNew,
		},
	}, nil
}

// nextLowerPhase produces the lower bracket's share of an advancement. Three
// regimes exist: the lower bracket has not started yet and is seeded with
// upper losers; the upper bracket finished first and the lower progresses on
// its own; or both brackets are live and upper losers merge with lower
// winners into the same next round.
func (e *DoubleElimination) nextLowerPhase(
	championshipID int,
	upper, lower []*models.Match,
	currentUpper, currentLower string,
	upperChampion *int,
) []*models.Match {
	if currentLower == "" {
		losers := stageLosers(upper, currentUpper)
		if len(losers) < 2 {
			return nil
		}
		return e.pairIntoMatches(championshipID, losers, StageLowerRound1, models.BracketLower)
	}

	if upperChampion != nil {
		if currentLower == StageLowerRound3 {
			// The upper semifinal loser was never dropped; it joins the
			// survivors here.
			entrants := stageWinners(lower, currentLower)
			if semis := matchesInStage(upper, StageUpperSemifinal); len(semis) == 1 && semis[0].Completed() {
				entrants = append(entrants, semis[0].Loser())
			}
			if len(entrants) < 2 {
				return nil
			}
			return e.pairIntoMatches(championshipID, entrants, StageLowerSemifinal, models.BracketLower)
		}
		next, ok := lowerNextStage[currentLower]
		if !ok {
			return nil
		}
		winners := stageWinners(lower, currentLower)
		if len(winners) < 2 {
			return nil
		}
		return e.pairIntoMatches(championshipID, winners, next, models.BracketLower)
	}

	next, ok := lowerNextStage[currentLower]
	if !ok {
		return nil
	}
	entrants := zipMerge(stageWinners(lower, currentLower), stageLosers(upper, currentUpper))
	if len(entrants) < 2 {
		return nil
	}
	return e.pairIntoMatches(championshipID, entrants, next, models.BracketLower)
}

func (e *DoubleElimination) scheduleGrandFinal(ctx context.Context, championshipID, upperChampion, lowerChampion int) (*DoubleAdvancement, error) {
	bracket := models.BracketFinal
	final := &models.Match{
		ChampionshipID: championshipID,
		TeamAID:        upperChampion,
		TeamBID:        lowerChampion,
		Stage:          StageGrandFinal,
		Bracket:        &bracket,
		Map:            e.rand.PickMap(),
		Date:           time.Now(),
	}
	if err := e.store.CreateBatch(ctx, []*models.Match{final}); err != nil {
		return nil, fmt.Errorf("failed to create grand final for championship %d: %w", championshipID, err)
	}
	return &DoubleAdvancement{
		Stage:   StageGrandFinal,
		Matches: []*models.Match{final},
		Breakdown: Breakdown{
			Final: []*models.Match{final},
		},
	}, nil
}

// pairIntoMatches pairs consecutive entrants into pending matches for the
// given stage. An odd trailing entrant is not paired.
func (e *DoubleElimination) pairIntoMatches(championshipID int, entrants []int, stage string, bracket models.MatchBracket) []*models.Match {
	now := time.Now()
	matches := make([]*models.Match, 0, len(entrants)/2)
	for i := 0; i+1 < len(entrants); i += 2 {
		b := bracket
		matches = append(matches, &models.Match{
			ChampionshipID: championshipID,
			TeamAID:        entrants[i],
			TeamBID:        entrants[i+1],
			Stage:          stage,
			Bracket:        &b,
			Map:            e.rand.PickMap(),
			Date:           now,
		})
	}
	return matches
}

func teamIDs(teams []*models.Team) []int {
	ids := make([]int, len(teams))
	for i, t := range teams {
		ids[i] = t.ID
	}
	return ids
}
