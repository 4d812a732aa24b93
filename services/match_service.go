package services

import (
	"context"
	"strconv"

	"github.com/Matari73/Backend-CCE-AS66A-sub000/brackets"
	"github.com/Matari73/Backend-CCE-AS66A-sub000/models"
	"github.com/Matari73/Backend-CCE-AS66A-sub000/repositories"
)

type MatchResultInput struct {
	WinnerTeamID int     `json:"winner_team_id"`
	Score        *string `json:"score,omitempty"`
}

type MatchService interface {
	GetByID(ctx context.Context, id int) (*models.Match, error)
	ListByChampionship(ctx context.Context, championshipID int) ([]*models.Match, error)
	ReportResult(ctx context.Context, actorID, matchID int, input MatchResultInput) (*models.Match, error)
}

type matchService struct {
	matches       repositories.MatchRepository
	championships repositories.ChampionshipRepository
	hub           *brackets.Hub
}

func NewMatchService(
	matches repositories.MatchRepository,
	championships repositories.ChampionshipRepository,
	hub *brackets.Hub,
) MatchService {
	return &matchService{
		matches:       matches,
		championships: championships,
		hub:           hub,
	}
}

func (s *matchService) GetByID(ctx context.Context, id int) (*models.Match, error) {
	return s.matches.GetByID(ctx, id)
}

func (s *matchService) ListByChampionship(ctx context.Context, championshipID int) ([]*models.Match, error) {
	if _, err := s.championships.GetByID(ctx, championshipID); err != nil {
		return nil, err
	}
	return s.matches.ListByChampionship(ctx, championshipID)
}

// ReportResult registers a match winner. Only the championship owner can
// report, the winner must be one of the two scheduled teams, and a completed
// match is immutable.
func (s *matchService) ReportResult(ctx context.Context, actorID, matchID int, input MatchResultInput) (*models.Match, error) {
	match, err := s.matches.GetByID(ctx, matchID)
	if err != nil {
		return nil, err
	}

	championship, err := s.championships.GetByID(ctx, match.ChampionshipID)
	if err != nil {
		return nil, err
	}
	if championship.UserID != actorID {
		return nil, ErrForbiddenOperation
	}

	if match.Completed() {
		return nil, ErrMatchAlreadyScored
	}
	if input.WinnerTeamID != match.TeamAID && input.WinnerTeamID != match.TeamBID {
		return nil, ErrWinnerNotInMatch
	}

	if err := s.matches.UpdateWinner(ctx, matchID, input.WinnerTeamID, input.Score); err != nil {
		return nil, err
	}
	match.WinnerTeamID = &input.WinnerTeamID
	match.Score = input.Score

	s.hub.BroadcastToRoom(strconv.Itoa(match.ChampionshipID), brackets.Event{
		Type:    brackets.EventMatchUpdated,
		Payload: match,
	})
	return match, nil
}
