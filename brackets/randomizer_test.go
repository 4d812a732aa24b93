package brackets

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestShuffleTeamsPreservesTeamsWithoutMutatingInput(t *testing.T) {
	teams := makeTeams(8)
	original := make([]int, len(teams))
	for i, team := range teams {
		original[i] = team.ID
	}

	shuffled := NewSeededRandomizer(42).ShuffleTeams(teams)

	assert.Len(t, shuffled, len(teams))
	for i, team := range teams {
		assert.Equal(t, original[i], team.ID, "input slice must not be reordered")
	}

	seen := make(map[int]bool)
	for _, team := range shuffled {
		seen[team.ID] = true
	}
	assert.Len(t, seen, len(teams), "every team must appear exactly once")
}

func TestShuffleTeamsIsDeterministicForSeed(t *testing.T) {
	first := NewSeededRandomizer(7).ShuffleTeams(makeTeams(16))
	second := NewSeededRandomizer(7).ShuffleTeams(makeTeams(16))

	for i := range first {
		assert.Equal(t, first[i].ID, second[i].ID)
	}
}

func TestPickMapReturnsKnownVenue(t *testing.T) {
	r := NewRandomizer()
	for i := 0; i < 50; i++ {
		assert.Contains(t, Maps, r.PickMap())
	}
}
