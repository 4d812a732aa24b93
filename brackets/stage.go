package brackets

import "fmt"

// Stage labels used by the single-elimination progression, in playing order.
// The labels are part of the persisted data and of the public API, so they are
// kept exactly as the frontend expects them.
var SingleStageOrder = []string{
	"Rodada 1",
	"Rodada 2",
	"Oitavas de final",
	"Quartas de final",
	"Semifinal",
	"Final",
}

// Double-elimination stage labels.
const (
	StageUpperRound1    = "Upper Round 1"
	StageUpperRound2    = "Upper Round 2"
	StageUpperRound3    = "Upper Round 3"
	StageUpperSemifinal = "Upper Semifinal"
	StageUpperFinal     = "Upper Final"

	StageLowerRound1    = "Lower Round 1"
	StageLowerRound2    = "Lower Round 2"
	StageLowerRound3    = "Lower Round 3"
	StageLowerSemifinal = "Lower Semifinal"
	StageLowerFinal     = "Lower Final"

	StageGrandFinal = "Grand Final"
)

var upperNextStage = map[string]string{
	StageUpperRound1:    StageUpperRound2,
	StageUpperRound2:    StageUpperRound3,
	StageUpperRound3:    StageUpperSemifinal,
	StageUpperSemifinal: StageUpperFinal,
}

var lowerNextStage = map[string]string{
	StageLowerRound1:    StageLowerRound2,
	StageLowerRound2:    StageLowerRound3,
	StageLowerRound3:    StageLowerSemifinal,
	StageLowerSemifinal: StageLowerFinal,
}

// Champion resolution scans stages from the latest possible to the earliest.
var (
	upperStagesDescending = []string{
		StageUpperFinal,
		StageUpperSemifinal,
		StageUpperRound3,
		StageUpperRound2,
		StageUpperRound1,
	}
	lowerStagesDescending = []string{
		StageLowerFinal,
		StageLowerSemifinal,
		StageLowerRound3,
		StageLowerRound2,
		StageLowerRound1,
	}
)

// StageForRound maps a 1-based round number to its display label given the
// total number of rounds of the bracket. remaining==1 is the final,
// remaining==2 the semifinal and so on; deeper brackets fall back to the
// numbered "Rodada" label.
func StageForRound(round, totalRounds int) string {
	remaining := totalRounds - round + 1
	switch remaining {
	case 1:
		return "Final"
	case 2:
		return "Semifinal"
	case 3:
		return "Quartas de final"
	case 4:
		return "Oitavas de final"
	case 5:
		return "Rodada 2"
	case 6:
		return "Rodada 1"
	default:
		return fmt.Sprintf("Rodada %d", round)
	}
}
