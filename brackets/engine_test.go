package brackets

import (
	"context"

	"github.com/Matari73/Backend-CCE-AS66A-sub000/models"
)

// fakeTeamLister serves a fixed subscription list.
type fakeTeamLister struct {
	teams []*models.Team
}

func (f *fakeTeamLister) SubscribedTeams(ctx context.Context, championshipID int) ([]*models.Team, error) {
	return f.teams, nil
}

// fakeMatchStore keeps matches in memory, preserving creation order and
// assigning sequential ids the way the database would.
type fakeMatchStore struct {
	matches []*models.Match
	nextID  int
}

func newFakeMatchStore() *fakeMatchStore {
	return &fakeMatchStore{nextID: 1}
}

func (f *fakeMatchStore) Create(ctx context.Context, match *models.Match) error {
	match.ID = f.nextID
	f.nextID++
	f.matches = append(f.matches, match)
	return nil
}

func (f *fakeMatchStore) CreateBatch(ctx context.Context, matches []*models.Match) error {
	for _, m := range matches {
		if err := f.Create(ctx, m); err != nil {
			return err
		}
	}
	return nil
}

func (f *fakeMatchStore) ListByChampionship(ctx context.Context, championshipID int) ([]*models.Match, error) {
	out := make([]*models.Match, len(f.matches))
	copy(out, f.matches)
	return out, nil
}

func makeTeams(n int) []*models.Team {
	teams := make([]*models.Team, n)
	for i := range teams {
		teams[i] = &models.Team{ID: i + 1}
	}
	return teams
}

// decideAll registers team A as the winner of every pending match.
func decideAll(store *fakeMatchStore) {
	for _, m := range store.matches {
		if !m.Completed() {
			winner := m.TeamAID
			m.WinnerTeamID = &winner
		}
	}
}
