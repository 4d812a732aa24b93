package services

import (
	"context"
	"log/slog"
	"testing"

	"github.com/Matari73/Backend-CCE-AS66A-sub000/brackets"
	"github.com/Matari73/Backend-CCE-AS66A-sub000/models"
	"github.com/stretchr/testify/assert"
)

func newTestBracketService(championships *fakeChampionshipRepo) BracketService {
	hub := brackets.NewHub(slog.Default())
	return NewBracketService(nil, championships, nil, nil, hub, brackets.NewSeededRandomizer(1))
}

func TestGenerateBracketRejectsUnknownFormat(t *testing.T) {
	svc := newTestBracketService(newFakeChampionshipRepo(testChampionship(7)))

	_, err := svc.GenerateBracket(context.Background(), 7, 1, "swiss")
	assert.ErrorIs(t, err, ErrInvalidFormat)
}

func TestGenerateBracketRejectsFormatMismatch(t *testing.T) {
	// The stored championship is single elimination; asking for a double
	// bracket must fail instead of silently generating the stored format.
	svc := newTestBracketService(newFakeChampionshipRepo(testChampionship(7)))

	_, err := svc.GenerateBracket(context.Background(), 7, 1, models.FormatDoubleElimination)
	assert.ErrorIs(t, err, ErrFormatMismatch)
}

func TestGenerateBracketOnlyChampionshipOwner(t *testing.T) {
	svc := newTestBracketService(newFakeChampionshipRepo(testChampionship(7)))

	_, err := svc.GenerateBracket(context.Background(), 99, 1, models.FormatSingleElimination)
	assert.ErrorIs(t, err, ErrForbiddenOperation)
}
