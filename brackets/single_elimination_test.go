package brackets

import (
	"context"
	"errors"
	"testing"

	"github.com/Matari73/Backend-CCE-AS66A-sub000/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSingleElimination(teamCount int, store *fakeMatchStore) *SingleElimination {
	return NewSingleElimination(&fakeTeamLister{teams: makeTeams(teamCount)}, store, NewSeededRandomizer(1))
}

func TestSingleGenerateBracketRejectsNonPowerOfTwo(t *testing.T) {
	for _, count := range []int{0, 3, 5, 6, 7, 12} {
		store := newFakeMatchStore()
		_, err := newSingleElimination(count, store).GenerateBracket(context.Background(), 1)

		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidBracketSize)

		var sizeErr *InvalidBracketSizeError
		require.ErrorAs(t, err, &sizeErr)
		assert.Equal(t, count, sizeErr.Count)
		assert.Empty(t, store.matches, "no match may be created on failure")
	}
}

func TestSingleGenerateBracketPairsEveryTeamOnce(t *testing.T) {
	store := newFakeMatchStore()
	matches, err := newSingleElimination(8, store).GenerateBracket(context.Background(), 1)
	require.NoError(t, err)

	require.Len(t, matches, 4)
	seen := make(map[int]bool)
	for _, m := range matches {
		assert.Equal(t, 1, m.ChampionshipID)
		assert.Equal(t, "Quartas de final", m.Stage)
		assert.False(t, m.Completed())
		assert.Contains(t, Maps, m.Map)
		assert.False(t, seen[m.TeamAID], "team %d paired twice", m.TeamAID)
		assert.False(t, seen[m.TeamBID], "team %d paired twice", m.TeamBID)
		seen[m.TeamAID] = true
		seen[m.TeamBID] = true
	}
	assert.Len(t, seen, 8)
}

func TestSingleGenerateBracketStageMatchesTeamCount(t *testing.T) {
	tests := []struct {
		teams int
		stage string
	}{
		{2, "Final"},
		{4, "Semifinal"},
		{8, "Quartas de final"},
		{16, "Oitavas de final"},
	}

	for _, tt := range tests {
		store := newFakeMatchStore()
		matches, err := newSingleElimination(tt.teams, store).GenerateBracket(context.Background(), 1)
		require.NoError(t, err)
		require.Len(t, matches, tt.teams/2)
		assert.Equal(t, tt.stage, matches[0].Stage)
	}
}

func TestSingleAdvanceWithoutCompletedMatches(t *testing.T) {
	store := newFakeMatchStore()
	engine := newSingleElimination(4, store)

	_, err := engine.AdvanceToNextPhase(context.Background(), 1)
	assert.ErrorIs(t, err, ErrNoCompletedMatches)

	_, err = engine.GenerateBracket(context.Background(), 1)
	require.NoError(t, err)

	_, err = engine.AdvanceToNextPhase(context.Background(), 1)
	assert.ErrorIs(t, err, ErrNoCompletedMatches)
}

func TestSingleAdvanceReportsPendingMatches(t *testing.T) {
	store := newFakeMatchStore()
	engine := newSingleElimination(8, store)

	_, err := engine.GenerateBracket(context.Background(), 1)
	require.NoError(t, err)

	// Decide only the first quarterfinal.
	first := store.matches[0]
	first.WinnerTeamID = &first.TeamAID

	_, err = engine.AdvanceToNextPhase(context.Background(), 1)
	require.ErrorIs(t, err, ErrPendingMatches)

	var pendingErr *PendingMatchesError
	require.ErrorAs(t, err, &pendingErr)
	assert.Len(t, pendingErr.Matches, 3)
	assert.Len(t, store.matches, 4, "no new match may be created")
}

func TestSingleAdvanceFullTournament(t *testing.T) {
	store := newFakeMatchStore()
	engine := newSingleElimination(8, store)

	_, err := engine.GenerateBracket(context.Background(), 1)
	require.NoError(t, err)

	decideAll(store)
	adv, err := engine.AdvanceToNextPhase(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "Semifinal", adv.Stage)
	assert.Len(t, adv.Matches, 2)
	assert.Equal(t, 4, adv.WinnersAdvanced)
	for _, m := range adv.Matches {
		require.NotNil(t, m.Bracket)
		assert.Equal(t, models.BracketUpper, *m.Bracket)
		assert.False(t, m.Completed())
	}

	decideAll(store)
	adv, err = engine.AdvanceToNextPhase(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "Final", adv.Stage)
	require.Len(t, adv.Matches, 1)
	assert.Equal(t, 2, adv.WinnersAdvanced)

	decideAll(store)
	_, err = engine.AdvanceToNextPhase(context.Background(), 1)
	assert.ErrorIs(t, err, ErrChampionshipFinished)

	// Repeated calls stay rejected and never create new matches.
	_, err = engine.AdvanceToNextPhase(context.Background(), 1)
	assert.ErrorIs(t, err, ErrChampionshipFinished)
	assert.Len(t, store.matches, 7)
}

func TestSingleAdvanceFinishedBeforeCountingWinners(t *testing.T) {
	// A decided final has one winner. It must report the championship as
	// finished, not complain about the winner count.
	store := newFakeMatchStore()
	engine := newSingleElimination(2, store)

	_, err := engine.GenerateBracket(context.Background(), 1)
	require.NoError(t, err)

	decideAll(store)
	_, err = engine.AdvanceToNextPhase(context.Background(), 1)
	assert.ErrorIs(t, err, ErrChampionshipFinished)
	assert.NotErrorIs(t, err, ErrInsufficientWinners)
}

func TestSingleAdvanceInsufficientWinners(t *testing.T) {
	store := newFakeMatchStore()
	require.NoError(t, store.Create(context.Background(), completedMatch("Semifinal", 1, 2, 1)))
	for _, m := range store.matches {
		m.ChampionshipID = 1
	}

	_, err := newSingleElimination(8, store).AdvanceToNextPhase(context.Background(), 1)
	assert.ErrorIs(t, err, ErrInsufficientWinners)
}

func TestSingleAdvanceOddWinnerCount(t *testing.T) {
	store := newFakeMatchStore()
	for i := 0; i < 3; i++ {
		m := completedMatch("Quartas de final", i*2+1, i*2+2, i*2+1)
		m.ChampionshipID = 1
		require.NoError(t, store.Create(context.Background(), m))
	}

	_, err := newSingleElimination(8, store).AdvanceToNextPhase(context.Background(), 1)
	assert.ErrorIs(t, err, ErrOddWinnerCount)
	assert.Len(t, store.matches, 3)
}

func TestSingleAdvanceUnrecognizedStage(t *testing.T) {
	store := newFakeMatchStore()
	m := completedMatch("Fase Desconhecida", 1, 2, 1)
	m.ChampionshipID = 1
	require.NoError(t, store.Create(context.Background(), m))

	_, err := newSingleElimination(8, store).AdvanceToNextPhase(context.Background(), 1)
	require.ErrorIs(t, err, ErrUnrecognizedStage)

	var stageErr *UnrecognizedStageError
	require.ErrorAs(t, err, &stageErr)
	assert.Equal(t, []string{"Fase Desconhecida"}, stageErr.Stages)
}

func TestSingleAdvanceNeverMutatesExistingMatches(t *testing.T) {
	store := newFakeMatchStore()
	engine := newSingleElimination(4, store)

	_, err := engine.GenerateBracket(context.Background(), 1)
	require.NoError(t, err)
	decideAll(store)

	snapshot := make([]models.Match, len(store.matches))
	for i, m := range store.matches {
		snapshot[i] = *m
	}

	_, err = engine.AdvanceToNextPhase(context.Background(), 1)
	require.NoError(t, err)

	for i := range snapshot {
		assert.Equal(t, snapshot[i], *store.matches[i])
	}
}

func TestSingleAdvancePropagatesStoreError(t *testing.T) {
	engine := NewSingleElimination(&fakeTeamLister{}, failingMatchStore{}, NewSeededRandomizer(1))
	_, err := engine.AdvanceToNextPhase(context.Background(), 1)
	assert.Error(t, err)
}

type failingMatchStore struct{}

func (failingMatchStore) Create(ctx context.Context, match *models.Match) error { return errStore }
func (failingMatchStore) CreateBatch(ctx context.Context, matches []*models.Match) error {
	return errStore
}
func (failingMatchStore) ListByChampionship(ctx context.Context, championshipID int) ([]*models.Match, error) {
	return nil, errStore
}

var errStore = errors.New("store unavailable")
