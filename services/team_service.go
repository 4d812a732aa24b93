package services

import (
	"context"
	"fmt"
	"io"

	"github.com/Matari73/Backend-CCE-AS66A-sub000/models"
	"github.com/Matari73/Backend-CCE-AS66A-sub000/repositories"
	"github.com/Matari73/Backend-CCE-AS66A-sub000/storage"
)

type TeamInput struct {
	Name string `json:"name"`
}

type TeamService interface {
	Create(ctx context.Context, actorID int, input TeamInput) (*models.Team, error)
	GetByID(ctx context.Context, id int) (*models.Team, error)
	List(ctx context.Context) ([]*models.Team, error)
	Update(ctx context.Context, actorID, id int, input TeamInput) (*models.Team, error)
	Delete(ctx context.Context, actorID, id int) error
	UploadLogo(ctx context.Context, actorID, id int, contentType string, file io.Reader) (*models.Team, error)
}

type teamService struct {
	teams        repositories.TeamRepository
	participants repositories.ParticipantRepository
	uploader     storage.FileUploader
}

func NewTeamService(teams repositories.TeamRepository, participants repositories.ParticipantRepository, uploader storage.FileUploader) TeamService {
	return &teamService{
		teams:        teams,
		participants: participants,
		uploader:     uploader,
	}
}

func (s *teamService) Create(ctx context.Context, actorID int, input TeamInput) (*models.Team, error) {
	if input.Name == "" {
		return nil, ErrNameRequired
	}

	team := &models.Team{
		Name:   input.Name,
		UserID: actorID,
	}
	if err := s.teams.Create(ctx, team); err != nil {
		return nil, err
	}
	return team, nil
}

func (s *teamService) GetByID(ctx context.Context, id int) (*models.Team, error) {
	team, err := s.teams.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	participants, err := s.participants.ListByTeam(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to list team participants: %w", err)
	}
	team.Participants = make([]models.Participant, 0, len(participants))
	for _, p := range participants {
		team.Participants = append(team.Participants, *p)
	}

	s.fillLogoURL(team)
	return team, nil
}

func (s *teamService) List(ctx context.Context) ([]*models.Team, error) {
	teams, err := s.teams.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, t := range teams {
		s.fillLogoURL(t)
	}
	return teams, nil
}

func (s *teamService) Update(ctx context.Context, actorID, id int, input TeamInput) (*models.Team, error) {
	team, err := s.authorizeOwner(ctx, actorID, id)
	if err != nil {
		return nil, err
	}
	if input.Name == "" {
		return nil, ErrNameRequired
	}

	team.Name = input.Name
	if err := s.teams.Update(ctx, team); err != nil {
		return nil, err
	}
	s.fillLogoURL(team)
	return team, nil
}

func (s *teamService) Delete(ctx context.Context, actorID, id int) error {
	team, err := s.authorizeOwner(ctx, actorID, id)
	if err != nil {
		return err
	}

	if err := s.teams.Delete(ctx, id); err != nil {
		return err
	}
	if team.LogoKey != nil {
		if delErr := s.uploader.Delete(ctx, *team.LogoKey); delErr != nil {
			return fmt.Errorf("team deleted, but logo cleanup failed: %w", delErr)
		}
	}
	return nil
}

func (s *teamService) UploadLogo(ctx context.Context, actorID, id int, contentType string, file io.Reader) (*models.Team, error) {
	team, err := s.authorizeOwner(ctx, actorID, id)
	if err != nil {
		return nil, err
	}

	ext, err := logoExtension(contentType)
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("teams/%d/logo%s", id, ext)
	result, err := s.uploader.Upload(ctx, key, contentType, file)
	if err != nil {
		return nil, fmt.Errorf("failed to upload team logo: %w", err)
	}

	if err := s.teams.UpdateLogoKey(ctx, id, &result.Key); err != nil {
		return nil, err
	}

	team.LogoKey = &result.Key
	s.fillLogoURL(team)
	return team, nil
}

func (s *teamService) authorizeOwner(ctx context.Context, actorID, id int) (*models.Team, error) {
	team, err := s.teams.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if team.UserID != actorID {
		return nil, ErrForbiddenOperation
	}
	return team, nil
}

func (s *teamService) fillLogoURL(team *models.Team) {
	if team.LogoKey == nil {
		return
	}
	url := s.uploader.GetPublicURL(*team.LogoKey)
	if url != "" {
		team.LogoURL = &url
	}
}

func logoExtension(contentType string) (string, error) {
	switch contentType {
	case "image/png":
		return ".png", nil
	case "image/jpeg":
		return ".jpg", nil
	default:
		return "", ErrLogoContentType
	}
}
