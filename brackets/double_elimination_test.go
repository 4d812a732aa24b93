package brackets

import (
	"context"
	"testing"

	"github.com/Matari73/Backend-CCE-AS66A-sub000/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDoubleElimination(teamCount int, store *fakeMatchStore) *DoubleElimination {
	return NewDoubleElimination(&fakeTeamLister{teams: makeTeams(teamCount)}, store, NewSeededRandomizer(1))
}

func upperCompleted(stage string, teamA, teamB, winner int) *models.Match {
	m := completedMatch(stage, teamA, teamB, winner)
	b := models.BracketUpper
	m.Bracket = &b
	m.ChampionshipID = 1
	return m
}

func lowerCompleted(stage string, teamA, teamB, winner int) *models.Match {
	m := completedMatch(stage, teamA, teamB, winner)
	b := models.BracketLower
	m.Bracket = &b
	m.ChampionshipID = 1
	return m
}

func TestDoubleGenerateBracketRejectsNonPowerOfTwo(t *testing.T) {
	store := newFakeMatchStore()
	_, err := newDoubleElimination(6, store).GenerateBracket(context.Background(), 1)

	require.ErrorIs(t, err, ErrInvalidBracketSize)
	var sizeErr *InvalidBracketSizeError
	require.ErrorAs(t, err, &sizeErr)
	assert.Equal(t, 6, sizeErr.Count)
	assert.Empty(t, store.matches)
}

func TestDoubleGenerateBracketSeedsUpperRoundOne(t *testing.T) {
	store := newFakeMatchStore()
	matches, err := newDoubleElimination(8, store).GenerateBracket(context.Background(), 1)
	require.NoError(t, err)

	require.Len(t, matches, 4)
	for _, m := range matches {
		assert.Equal(t, StageUpperRound1, m.Stage)
		require.NotNil(t, m.Bracket)
		assert.Equal(t, models.BracketUpper, *m.Bracket)
		assert.False(t, m.Completed())
	}
}

func TestDoubleAdvanceRequiresEveryMatchDecided(t *testing.T) {
	store := newFakeMatchStore()
	engine := newDoubleElimination(8, store)

	_, err := engine.GenerateBracket(context.Background(), 1)
	require.NoError(t, err)

	_, err = engine.AdvanceToNextPhase(context.Background(), 1)
	require.ErrorIs(t, err, ErrPendingMatches)

	var pendingErr *PendingMatchesError
	require.ErrorAs(t, err, &pendingErr)
	assert.Len(t, pendingErr.Matches, 4)
}

func TestDoubleAdvanceWithoutMatches(t *testing.T) {
	store := newFakeMatchStore()
	_, err := newDoubleElimination(8, store).AdvanceToNextPhase(context.Background(), 1)
	assert.ErrorIs(t, err, ErrNoCompletedMatches)
}

func TestDoubleAdvanceFourTeams(t *testing.T) {
	store := newFakeMatchStore()
	engine := newDoubleElimination(4, store)

	_, err := engine.GenerateBracket(context.Background(), 1)
	require.NoError(t, err)

	// Upper round 1 decided: winners meet in upper round 2, losers drop
	// into lower round 1.
	decideAll(store)
	adv, err := engine.AdvanceToNextPhase(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, StageUpperRound2, adv.Stage)
	require.Len(t, adv.Breakdown.Upper, 1)
	require.Len(t, adv.Breakdown.Lower, 1)
	assert.Empty(t, adv.Breakdown.Final)
	assert.Equal(t, StageLowerRound1, adv.Breakdown.Lower[0].Stage)

	// Both deciders played: the two bracket champions meet in the grand
	// final, upper champion as team A.
	decideAll(store)
	upperChampion := *adv.Breakdown.Upper[0].WinnerTeamID
	lowerChampion := *adv.Breakdown.Lower[0].WinnerTeamID

	final, err := engine.AdvanceToNextPhase(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, StageGrandFinal, final.Stage)
	require.Len(t, final.Matches, 1)
	require.Len(t, final.Breakdown.Final, 1)

	grandFinal := final.Breakdown.Final[0]
	assert.Equal(t, upperChampion, grandFinal.TeamAID)
	assert.Equal(t, lowerChampion, grandFinal.TeamBID)
	require.NotNil(t, grandFinal.Bracket)
	assert.Equal(t, models.BracketFinal, *grandFinal.Bracket)

	// Once the grand final exists the bracket is immutable.
	decideAll(store)
	_, err = engine.AdvanceToNextPhase(context.Background(), 1)
	assert.ErrorIs(t, err, ErrAlreadyFinalized)
}

func TestDoubleAdvanceEightTeamsConvergesToGrandFinal(t *testing.T) {
	store := newFakeMatchStore()
	engine := newDoubleElimination(8, store)

	_, err := engine.GenerateBracket(context.Background(), 1)
	require.NoError(t, err)

	var lastStage string
	for i := 0; i < 10; i++ {
		decideAll(store)
		adv, err := engine.AdvanceToNextPhase(context.Background(), 1)
		require.NoError(t, err, "advancement %d", i+1)
		lastStage = adv.Stage
		if lastStage == StageGrandFinal {
			break
		}
	}

	assert.Equal(t, StageGrandFinal, lastStage)
	// 8 teams: 7 upper-path matches, 5 lower-path matches, 1 grand final.
	assert.Len(t, store.matches, 13)

	counts := make(map[string]int)
	for _, m := range store.matches {
		counts[m.Stage]++
	}
	assert.Equal(t, 4, counts[StageUpperRound1])
	assert.Equal(t, 2, counts[StageUpperRound2])
	assert.Equal(t, 1, counts[StageUpperRound3])
	assert.Equal(t, 2, counts[StageLowerRound1])
	assert.Equal(t, 2, counts[StageLowerRound2])
	assert.Equal(t, 1, counts[StageLowerRound3])
	assert.Equal(t, 1, counts[StageGrandFinal])
}

func TestDoubleAdvanceSixteenTeamsMergesUpperSemifinalLoser(t *testing.T) {
	store := newFakeMatchStore()
	engine := newDoubleElimination(16, store)

	_, err := engine.GenerateBracket(context.Background(), 1)
	require.NoError(t, err)

	var lastStage string
	for i := 0; i < 12; i++ {
		decideAll(store)
		adv, err := engine.AdvanceToNextPhase(context.Background(), 1)
		require.NoError(t, err, "advancement %d", i+1)
		lastStage = adv.Stage
		if lastStage == StageGrandFinal {
			break
		}
	}
	require.Equal(t, StageGrandFinal, lastStage)

	counts := make(map[string]int)
	for _, m := range store.matches {
		counts[m.Stage]++
	}
	assert.Equal(t, 1, counts[StageUpperSemifinal])
	assert.Equal(t, 2, counts[StageLowerSemifinal])
	assert.Equal(t, 1, counts[StageLowerFinal])

	// The single upper semifinal decides the upper champion; its loser
	// re-enters at the lower semifinal merge point.
	semis := matchesInStage(bracketMatches(store.matches, models.BracketUpper), StageUpperSemifinal)
	require.Len(t, semis, 1)
	require.True(t, semis[0].Completed())
	semifinalLoser := semis[0].Loser()

	var reentered bool
	for _, m := range matchesInStage(bracketMatches(store.matches, models.BracketLower), StageLowerSemifinal) {
		if m.TeamAID == semifinalLoser || m.TeamBID == semifinalLoser {
			reentered = true
		}
	}
	assert.True(t, reentered, "team %d never re-entered the lower bracket", semifinalLoser)
}

func TestDoubleAdvanceEliminatedTeamsNeverReturn(t *testing.T) {
	store := newFakeMatchStore()
	engine := newDoubleElimination(8, store)

	_, err := engine.GenerateBracket(context.Background(), 1)
	require.NoError(t, err)

	losses := make(map[int]int)
	for i := 0; i < 10; i++ {
		decideAll(store)
		losses = make(map[int]int)
		for _, m := range store.matches {
			if m.Completed() {
				losses[m.Loser()]++
			}
		}
		adv, err := engine.AdvanceToNextPhase(context.Background(), 1)
		require.NoError(t, err)

		for _, m := range adv.Matches {
			assert.Less(t, losses[m.TeamAID], 2, "team %d already lost twice", m.TeamAID)
			assert.Less(t, losses[m.TeamBID], 2, "team %d already lost twice", m.TeamBID)
		}
		if adv.Stage == StageGrandFinal {
			return
		}
	}
	t.Fatal("tournament did not reach the grand final")
}

func TestDoubleAdvanceLowerMergesUpperLosers(t *testing.T) {
	store := newFakeMatchStore()
	engine := newDoubleElimination(8, store)

	_, err := engine.GenerateBracket(context.Background(), 1)
	require.NoError(t, err)

	decideAll(store)
	_, err = engine.AdvanceToNextPhase(context.Background(), 1)
	require.NoError(t, err)

	decideAll(store)
	adv, err := engine.AdvanceToNextPhase(context.Background(), 1)
	require.NoError(t, err)

	// Second advancement: lower round 1 winners interleave with upper
	// round 2 losers into lower round 2.
	require.Len(t, adv.Breakdown.Lower, 2)
	lowerWinners := stageWinners(store.matches, StageLowerRound1)
	upperLosers := stageLosers(bracketMatches(store.matches, models.BracketUpper), StageUpperRound2)

	first := adv.Breakdown.Lower[0]
	assert.Equal(t, lowerWinners[0], first.TeamAID)
	assert.Equal(t, upperLosers[0], first.TeamBID)

	second := adv.Breakdown.Lower[1]
	assert.Equal(t, lowerWinners[1], second.TeamAID)
	assert.Equal(t, upperLosers[1], second.TeamBID)
}

func TestDoubleAdvanceUpperWaitingOnLower(t *testing.T) {
	store := newFakeMatchStore()
	ctx := context.Background()
	require.NoError(t, store.Create(ctx, upperCompleted(StageUpperRound3, 1, 2, 1)))
	require.NoError(t, store.Create(ctx, lowerCompleted(StageLowerFinal, 3, 4, 3)))
	require.NoError(t, store.Create(ctx, lowerCompleted(StageLowerFinal, 5, 6, 5)))

	_, err := newDoubleElimination(8, store).AdvanceToNextPhase(ctx, 1)
	assert.ErrorIs(t, err, ErrUpperWaitingOnLower)
}

func TestDoubleAdvanceLowerWaitingOnUpper(t *testing.T) {
	store := newFakeMatchStore()
	ctx := context.Background()
	require.NoError(t, store.Create(ctx, upperCompleted(StageUpperFinal, 1, 2, 1)))
	require.NoError(t, store.Create(ctx, upperCompleted(StageUpperFinal, 3, 4, 3)))
	require.NoError(t, store.Create(ctx, lowerCompleted(StageLowerFinal, 5, 6, 5)))

	_, err := newDoubleElimination(8, store).AdvanceToNextPhase(ctx, 1)
	assert.ErrorIs(t, err, ErrLowerWaitingOnUpper)
}

func TestDoubleAdvanceFullyResolvedBracket(t *testing.T) {
	store := newFakeMatchStore()
	ctx := context.Background()
	require.NoError(t, store.Create(ctx, upperCompleted(StageUpperFinal, 1, 2, 1)))
	require.NoError(t, store.Create(ctx, upperCompleted(StageUpperFinal, 3, 4, 3)))
	require.NoError(t, store.Create(ctx, lowerCompleted(StageLowerFinal, 5, 6, 5)))
	require.NoError(t, store.Create(ctx, lowerCompleted(StageLowerFinal, 7, 8, 7)))

	_, err := newDoubleElimination(8, store).AdvanceToNextPhase(ctx, 1)
	assert.ErrorIs(t, err, ErrBracketFullyResolved)
}

func TestZipMerge(t *testing.T) {
	assert.Equal(t, []int{1, 4, 2, 5, 3, 6}, zipMerge([]int{1, 2, 3}, []int{4, 5, 6}))
	assert.Equal(t, []int{1, 4, 2, 3}, zipMerge([]int{1, 2, 3}, []int{4}))
	assert.Equal(t, []int{1, 4, 5, 6}, zipMerge([]int{1}, []int{4, 5, 6}))
	assert.Equal(t, []int{7, 8}, zipMerge(nil, []int{7, 8}))
	assert.Empty(t, zipMerge(nil, nil))
}
