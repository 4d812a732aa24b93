package brackets

import (
	"context"
	"fmt"
	"time"

	"github.com/Matari73/Backend-CCE-AS66A-sub000/models"
)

// SingleElimination builds round 1 from the subscribed teams and advances
// winners round by round until the final is decided. It holds no state of its
// own: every call derives the bracket from the match store.
type SingleElimination struct {
	teams TeamLister
	store MatchStore
	rand  *Randomizer
}

func NewSingleElimination(teams TeamLister, store MatchStore, rand *Randomizer) *SingleElimination {
	return &SingleElimination{teams: teams, store: store, rand: rand}
}

// GenerateBracket shuffles the subscribed teams and pairs them into round-1
// matches. The team count must be a power of two. Matches are persisted one by
// one, in pair order, with no winner set.
func (e *SingleElimination) GenerateBracket(ctx context.Context, championshipID int) ([]*models.Match, error) {
	teams, err := e.teams.SubscribedTeams(ctx, championshipID)
	if err != nil {
		return nil, fmt.Errorf("failed to list subscribed teams for championship %d: %w", championshipID, err)
	}
	if !isPowerOfTwo(len(teams)) {
		return nil, &InvalidBracketSizeError{Count: len(teams)}
	}

	shuffled := e.rand.ShuffleTeams(teams)
	stage := StageForRound(1, roundsFor(len(teams)))
	now := time.Now()

	matches := make([]*models.Match, 0, len(shuffled)/2)
	for i := 0; i+1 < len(shuffled); i += 2 {
		m := &models.Match{
			ChampionshipID: championshipID,
			TeamAID:        shuffled[i].ID,
			TeamBID:        shuffled[i+1].ID,
			Stage:          stage,
			Map:            e.rand.PickMap(),
			Date:           now,
		}
		if err := e.store.Create(ctx, m); err != nil {
			return nil, fmt.Errorf("failed to create match %s for championship %d: %w", stage, championshipID, err)
		}
		matches = append(matches, m)
	}
	return matches, nil
}

// AdvanceToNextPhase pairs the winners of the current stage into the next
// stage of the fixed single-elimination ordering. Existing matches are never
// mutated; the new matches are bulk-created with no winner set.
func (e *SingleElimination) AdvanceToNextPhase(ctx context.Context, championshipID int) (*Advancement, error) {
	all, err := e.store.ListByChampionship(ctx, championshipID)
	if err != nil {
		return nil, fmt.Errorf("failed to list matches for championship %d: %w", championshipID, err)
	}
	if len(completedMatches(all)) == 0 {
		return nil, ErrNoCompletedMatches
	}

	currentIdx := -1
	for i, stage := range SingleStageOrder {
		if len(matchesInStage(all, stage)) > 0 {
			currentIdx = i
		}
	}
	if currentIdx == -1 {
		return nil, &UnrecognizedStageError{Stages: distinctStages(all)}
	}
	current := SingleStageOrder[currentIdx]

	if pending := pendingMatches(matchesInStage(all, current)); len(pending) > 0 {
		return nil, &PendingMatchesError{Matches: pending}
	}
	if current == SingleStageOrder[len(SingleStageOrder)-1] {
		return nil, ErrChampionshipFinished
	}

	winners := stageWinners(all, current)
	if len(winners) < 2 {
		return nil, ErrInsufficientWinners
	}
	if len(winners)%2 != 0 {
		// An unpaired winner would be eliminated without playing; refuse
		// instead of silently dropping it.
		return nil, fmt.Errorf("%w: %d winner(s) in stage %q", ErrOddWinnerCount, len(winners), current)
	}

	next := SingleStageOrder[currentIdx+1]
	bracket := models.BracketUpper
	now := time.Now()

	matches := make([]*models.Match, 0, len(winners)/2)
	for i := 0; i+1 < len(winners); i += 2 {
		matches = append(matches, &models.Match{
			ChampionshipID: championshipID,
			TeamAID:        winners[i],
			TeamBID:        winners[i+1],
			Stage:          next,
			Bracket:        &bracket,
			Map:            e.rand.PickMap(),
			Date:           now,
		})
	}
	if err := e.store.CreateBatch(ctx, matches); err != nil {
		return nil, fmt.Errorf("failed to create %s matches for championship %d: %w", next, championshipID, err)
	}

	return &Advancement{
		Stage:           next,
		Matches:         matches,
		WinnersAdvanced: len(winners),
	}, nil
}
