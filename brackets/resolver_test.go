package brackets

import (
	"testing"

	"github.com/Matari73/Backend-CCE-AS66A-sub000/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func completedMatch(stage string, teamA, teamB, winner int) *models.Match {
	return &models.Match{TeamAID: teamA, TeamBID: teamB, WinnerTeamID: &winner, Stage: stage}
}

func pendingMatch(stage string, teamA, teamB int) *models.Match {
	return &models.Match{TeamAID: teamA, TeamBID: teamB, Stage: stage}
}

func TestUpperChampionDecidedSemifinalShortCircuits(t *testing.T) {
	matches := []*models.Match{
		completedMatch(StageUpperRound3, 1, 2, 1),
		completedMatch(StageUpperRound3, 3, 4, 3),
		completedMatch(StageUpperSemifinal, 1, 3, 3),
	}

	champion := UpperChampion(matches)
	require.NotNil(t, champion)
	assert.Equal(t, 3, *champion)
}

func TestUpperChampionSingleDecidedMatchInLatestStage(t *testing.T) {
	matches := []*models.Match{
		completedMatch(StageUpperRound1, 1, 2, 1),
		completedMatch(StageUpperRound1, 3, 4, 4),
		completedMatch(StageUpperRound2, 1, 4, 4),
	}

	champion := UpperChampion(matches)
	require.NotNil(t, champion)
	assert.Equal(t, 4, *champion)
}

func TestUpperChampionNilWhileBracketStillWide(t *testing.T) {
	matches := []*models.Match{
		completedMatch(StageUpperRound1, 1, 2, 1),
		completedMatch(StageUpperRound1, 3, 4, 3),
	}

	assert.Nil(t, UpperChampion(matches))
}

func TestUpperChampionNilForPendingDecider(t *testing.T) {
	matches := []*models.Match{
		completedMatch(StageUpperRound1, 1, 2, 1),
		completedMatch(StageUpperRound1, 3, 4, 3),
		pendingMatch(StageUpperRound2, 1, 3),
	}

	assert.Nil(t, UpperChampion(matches))
}

func TestLowerChampionFromLatestConvergedStage(t *testing.T) {
	matches := []*models.Match{
		completedMatch(StageLowerRound1, 5, 6, 5),
		completedMatch(StageLowerRound1, 7, 8, 8),
		completedMatch(StageLowerRound2, 5, 8, 8),
	}

	champion := LowerChampion(matches)
	require.NotNil(t, champion)
	assert.Equal(t, 8, *champion)
}

func TestLowerChampionStopsAtUnconvergedStage(t *testing.T) {
	// Lower Round 2 still holds two matches, so no champion exists even
	// though Lower Round 1 converged to a single decided match.
	matches := []*models.Match{
		completedMatch(StageLowerRound1, 5, 6, 5),
		completedMatch(StageLowerRound2, 5, 7, 5),
		completedMatch(StageLowerRound2, 8, 9, 9),
	}

	assert.Nil(t, LowerChampion(matches))
}

func TestLowerChampionNilWithoutLowerMatches(t *testing.T) {
	assert.Nil(t, LowerChampion(nil))
}
