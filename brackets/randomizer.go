package brackets

import (
	"math/rand"
	"time"

	"github.com/Matari73/Backend-CCE-AS66A-sub000/models"
)

// Maps is the pool of venues a match can be scheduled on.
var Maps = []string{
	"Mirage",
	"Inferno",
	"Nuke",
	"Overpass",
	"Vertigo",
	"Ancient",
	"Anubis",
	"Dust II",
}

// Randomizer shuffles bracket entrants and assigns venues. It owns its
// entropy source so tests can seed it deterministically.
type Randomizer struct {
	rnd *rand.Rand
}

func NewRandomizer() *Randomizer {
	return NewSeededRandomizer(time.Now().UnixNano())
}

func NewSeededRandomizer(seed int64) *Randomizer {
	return &Randomizer{rnd: rand.New(rand.NewSource(seed))}
}

// ShuffleTeams returns a random permutation of teams. The input slice is not
// modified.
func (r *Randomizer) ShuffleTeams(teams []*models.Team) []*models.Team {
	shuffled := make([]*models.Team, len(teams))
	copy(shuffled, teams)
	r.rnd.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	return shuffled
}

// PickMap selects the venue for a single match.
func (r *Randomizer) PickMap() string {
	return Maps[r.rnd.Intn(len(Maps))]
}
