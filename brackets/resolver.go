package brackets

import "github.com/Matari73/Backend-CCE-AS66A-sub000/models"

// UpperChampion determines whether the upper bracket has produced a single
// remaining winner. A decided Upper Semifinal short-circuits the scan: its
// winner is the bracket champion. Otherwise stages are scanned from the latest
// to the earliest and the first one holding exactly one decided match yields
// the champion.
func UpperChampion(matches []*models.Match) *int {
	for _, m := range matches {
		if m.Stage == StageUpperSemifinal && m.Completed() {
			return m.WinnerTeamID
		}
	}
	for _, stage := range upperStagesDescending {
		inStage := matchesInStage(matches, stage)
		if len(inStage) == 1 && inStage[0].Completed() {
			return inStage[0].WinnerTeamID
		}
	}
	return nil
}

// LowerChampion scans lower stages from the latest to the earliest. The first
// stage holding exactly one completed match yields its winner; a stage still
// holding several matches means the bracket is not converged yet, so the scan
// stops without looking at earlier stages.
func LowerChampion(matches []*models.Match) *int {
	for _, stage := range lowerStagesDescending {
		inStage := matchesInStage(matches, stage)
		if len(inStage) == 0 {
			continue
		}
		if len(inStage) == 1 && inStage[0].Completed() {
			return inStage[0].WinnerTeamID
		}
		return nil
	}
	return nil
}

func matchesInStage(matches []*models.Match, stage string) []*models.Match {
	var out []*models.Match
	for _, m := range matches {
		if m.Stage == stage {
			out = append(out, m)
		}
	}
	return out
}
