package brackets

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStageForRound(t *testing.T) {
	tests := []struct {
		name        string
		round       int
		totalRounds int
		want        string
	}{
		{"final of a 2-team bracket", 1, 1, "Final"},
		{"opening round of 4 teams", 1, 2, "Semifinal"},
		{"opening round of 8 teams", 1, 3, "Quartas de final"},
		{"opening round of 16 teams", 1, 4, "Oitavas de final"},
		{"opening round of 32 teams", 1, 5, "Rodada 2"},
		{"opening round of 64 teams", 1, 6, "Rodada 1"},
		{"second round of 64 teams", 2, 6, "Rodada 2"},
		{"semifinal of 16 teams", 3, 4, "Semifinal"},
		{"final of 16 teams", 4, 4, "Final"},
		{"very deep bracket falls back to numbered rounds", 1, 7, "Rodada 1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StageForRound(tt.round, tt.totalRounds))
		})
	}
}

func TestSingleStageOrderEndsAtFinal(t *testing.T) {
	assert.Equal(t, "Final", SingleStageOrder[len(SingleStageOrder)-1])
}

func TestUpperAndLowerStageChains(t *testing.T) {
	assert.Equal(t, StageUpperFinal, upperNextStage[StageUpperSemifinal])
	assert.Equal(t, StageLowerFinal, lowerNextStage[StageLowerSemifinal])

	_, ok := upperNextStage[StageUpperFinal]
	assert.False(t, ok, "upper final must be terminal")
	_, ok = lowerNextStage[StageLowerFinal]
	assert.False(t, ok, "lower final must be terminal")
}
