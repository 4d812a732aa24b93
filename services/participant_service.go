package services

import (
	"context"

	"github.com/Matari73/Backend-CCE-AS66A-sub000/models"
	"github.com/Matari73/Backend-CCE-AS66A-sub000/repositories"
)

type ParticipantInput struct {
	Name     string  `json:"name"`
	Nickname *string `json:"nickname,omitempty"`
}

// ParticipantService manages a team's roster. All mutations are restricted to
// the team owner.
type ParticipantService interface {
	Create(ctx context.Context, actorID, teamID int, input ParticipantInput) (*models.Participant, error)
	GetByID(ctx context.Context, id int) (*models.Participant, error)
	ListByTeam(ctx context.Context, teamID int) ([]*models.Participant, error)
	Update(ctx context.Context, actorID, id int, input ParticipantInput) (*models.Participant, error)
	Delete(ctx context.Context, actorID, id int) error
}

type participantService struct {
	participants repositories.ParticipantRepository
	teams        repositories.TeamRepository
}

func NewParticipantService(participants repositories.ParticipantRepository, teams repositories.TeamRepository) ParticipantService {
	return &participantService{
		participants: participants,
		teams:        teams,
	}
}

func (s *participantService) Create(ctx context.Context, actorID, teamID int, input ParticipantInput) (*models.Participant, error) {
	if err := s.authorizeTeamOwner(ctx, actorID, teamID); err != nil {
		return nil, err
	}
	if input.Name == "" {
		return nil, ErrNameRequired
	}

	participant := &models.Participant{
		Name:     input.Name,
		Nickname: input.Nickname,
		TeamID:   teamID,
	}
	if err := s.participants.Create(ctx, participant); err != nil {
		return nil, err
	}
	return participant, nil
}

func (s *participantService) GetByID(ctx context.Context, id int) (*models.Participant, error) {
	return s.participants.GetByID(ctx, id)
}

func (s *participantService) ListByTeam(ctx context.Context, teamID int) ([]*models.Participant, error) {
	if _, err := s.teams.GetByID(ctx, teamID); err != nil {
		return nil, err
	}
	return s.participants.ListByTeam(ctx, teamID)
}

func (s *participantService) Update(ctx context.Context, actorID, id int, input ParticipantInput) (*models.Participant, error) {
	participant, err := s.participants.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.authorizeTeamOwner(ctx, actorID, participant.TeamID); err != nil {
		return nil, err
	}
	if input.Name == "" {
		return nil, ErrNameRequired
	}

	participant.Name = input.Name
	participant.Nickname = input.Nickname
	if err := s.participants.Update(ctx, participant); err != nil {
		return nil, err
	}
	return participant, nil
}

func (s *participantService) Delete(ctx context.Context, actorID, id int) error {
	participant, err := s.participants.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.authorizeTeamOwner(ctx, actorID, participant.TeamID); err != nil {
		return err
	}
	return s.participants.Delete(ctx, id)
}

func (s *participantService) authorizeTeamOwner(ctx context.Context, actorID, teamID int) error {
	team, err := s.teams.GetByID(ctx, teamID)
	if err != nil {
		return err
	}
	if team.UserID != actorID {
		return ErrForbiddenOperation
	}
	return nil
}
