package services

import (
	"context"

	"github.com/Matari73/Backend-CCE-AS66A-sub000/models"
	"github.com/Matari73/Backend-CCE-AS66A-sub000/repositories"
)

type SubscriptionService interface {
	Subscribe(ctx context.Context, actorID, championshipID, teamID int) (*models.Subscription, error)
	Unsubscribe(ctx context.Context, actorID, championshipID, teamID int) error
	ListByChampionship(ctx context.Context, championshipID int) ([]*models.Subscription, error)
}

type subscriptionService struct {
	subscriptions repositories.SubscriptionRepository
	championships repositories.ChampionshipRepository
	teams         repositories.TeamRepository
	matches       repositories.MatchRepository
}

func NewSubscriptionService(
	subscriptions repositories.SubscriptionRepository,
	championships repositories.ChampionshipRepository,
	teams repositories.TeamRepository,
	matches repositories.MatchRepository,
) SubscriptionService {
	return &subscriptionService{
		subscriptions: subscriptions,
		championships: championships,
		teams:         teams,
		matches:       matches,
	}
}

// Subscribe registers a team into a championship. Only the team owner can
// subscribe it, and the registration window closes once the bracket exists.
func (s *subscriptionService) Subscribe(ctx context.Context, actorID, championshipID, teamID int) (*models.Subscription, error) {
	if _, err := s.championships.GetByID(ctx, championshipID); err != nil {
		return nil, err
	}
	team, err := s.teams.GetByID(ctx, teamID)
	if err != nil {
		return nil, err
	}
	if team.UserID != actorID {
		return nil, ErrForbiddenOperation
	}
	if err := s.ensureBracketNotStarted(ctx, championshipID); err != nil {
		return nil, err
	}

	subscription := &models.Subscription{
		ChampionshipID: championshipID,
		TeamID:         teamID,
	}
	if err := s.subscriptions.Create(ctx, subscription); err != nil {
		return nil, err
	}
	subscription.Team = team
	return subscription, nil
}

func (s *subscriptionService) Unsubscribe(ctx context.Context, actorID, championshipID, teamID int) error {
	championship, err := s.championships.GetByID(ctx, championshipID)
	if err != nil {
		return err
	}
	team, err := s.teams.GetByID(ctx, teamID)
	if err != nil {
		return err
	}
	if team.UserID != actorID && championship.UserID != actorID {
		return ErrForbiddenOperation
	}
	if err := s.ensureBracketNotStarted(ctx, championshipID); err != nil {
		return err
	}

	return s.subscriptions.Delete(ctx, championshipID, teamID)
}

func (s *subscriptionService) ListByChampionship(ctx context.Context, championshipID int) ([]*models.Subscription, error) {
	if _, err := s.championships.GetByID(ctx, championshipID); err != nil {
		return nil, err
	}
	return s.subscriptions.ListByChampionship(ctx, championshipID)
}

func (s *subscriptionService) ensureBracketNotStarted(ctx context.Context, championshipID int) error {
	matches, err := s.matches.ListByChampionship(ctx, championshipID)
	if err != nil {
		return err
	}
	if len(matches) > 0 {
		return ErrRegistrationClosed
	}
	return nil
}
