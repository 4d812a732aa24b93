package services

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/Matari73/Backend-CCE-AS66A-sub000/models"
	"github.com/Matari73/Backend-CCE-AS66A-sub000/repositories"
	"github.com/Matari73/Backend-CCE-AS66A-sub000/storage"
	"golang.org/x/sync/errgroup"
)

type ChampionshipInput struct {
	Name        string                    `json:"name"`
	Description *string                   `json:"description,omitempty"`
	Format      models.ChampionshipFormat `json:"format"`
	StartDate   time.Time                 `json:"start_date"`
}

type ChampionshipService interface {
	Create(ctx context.Context, actorID int, input ChampionshipInput) (*models.Championship, error)
	GetByID(ctx context.Context, id int) (*models.Championship, error)

	// GetFullByID returns the championship with its subscriptions and matches
	// loaded, which is what the bracket views consume.
	GetFullByID(ctx context.Context, id int) (*models.Championship, error)

	List(ctx context.Context) ([]*models.Championship, error)
	Update(ctx context.Context, actorID, id int, input ChampionshipInput) (*models.Championship, error)
	Delete(ctx context.Context, actorID, id int) error
	UploadLogo(ctx context.Context, actorID, id int, contentType string, file io.Reader) (*models.Championship, error)
}

type championshipService struct {
	championships repositories.ChampionshipRepository
	subscriptions repositories.SubscriptionRepository
	matches       repositories.MatchRepository
	uploader      storage.FileUploader
}

func NewChampionshipService(
	championships repositories.ChampionshipRepository,
	subscriptions repositories.SubscriptionRepository,
	matches repositories.MatchRepository,
	uploader storage.FileUploader,
) ChampionshipService {
	return &championshipService{
		championships: championships,
		subscriptions: subscriptions,
		matches:       matches,
		uploader:      uploader,
	}
}

func (s *championshipService) Create(ctx context.Context, actorID int, input ChampionshipInput) (*models.Championship, error) {
	if input.Name == "" {
		return nil, ErrNameRequired
	}
	if !input.Format.Valid() {
		return nil, ErrInvalidFormat
	}

	championship := &models.Championship{
		Name:        input.Name,
		Description: input.Description,
		Format:      input.Format,
		UserID:      actorID,
		StartDate:   input.StartDate,
	}
	if err := s.championships.Create(ctx, championship); err != nil {
		return nil, err
	}
	return championship, nil
}

func (s *championshipService) GetByID(ctx context.Context, id int) (*models.Championship, error) {
	championship, err := s.championships.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.fillLogoURL(championship)
	return championship, nil
}

func (s *championshipService) GetFullByID(ctx context.Context, id int) (*models.Championship, error) {
	championship, err := s.championships.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		subscriptions, err := s.subscriptions.ListByChampionship(gctx, id)
		if err != nil {
			return fmt.Errorf("failed to list subscriptions: %w", err)
		}
		championship.Subscriptions = make([]models.Subscription, 0, len(subscriptions))
		championship.Teams = make([]models.Team, 0, len(subscriptions))
		for _, sub := range subscriptions {
			championship.Subscriptions = append(championship.Subscriptions, *sub)
			if sub.Team != nil {
				championship.Teams = append(championship.Teams, *sub.Team)
			}
		}
		return nil
	})

	g.Go(func() error {
		matches, err := s.matches.ListByChampionship(gctx, id)
		if err != nil {
			return fmt.Errorf("failed to list matches: %w", err)
		}
		championship.Matches = make([]models.Match, 0, len(matches))
		for _, m := range matches {
			championship.Matches = append(championship.Matches, *m)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	s.fillLogoURL(championship)
	return championship, nil
}

func (s *championshipService) List(ctx context.Context) ([]*models.Championship, error) {
	championships, err := s.championships.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, c := range championships {
		s.fillLogoURL(c)
	}
	return championships, nil
}

func (s *championshipService) Update(ctx context.Context, actorID, id int, input ChampionshipInput) (*models.Championship, error) {
	championship, err := s.authorizeOwner(ctx, actorID, id)
	if err != nil {
		return nil, err
	}
	if input.Name == "" {
		return nil, ErrNameRequired
	}

	championship.Name = input.Name
	championship.Description = input.Description
	championship.StartDate = input.StartDate
	if err := s.championships.Update(ctx, championship); err != nil {
		return nil, err
	}
	s.fillLogoURL(championship)
	return championship, nil
}

func (s *championshipService) Delete(ctx context.Context, actorID, id int) error {
	championship, err := s.authorizeOwner(ctx, actorID, id)
	if err != nil {
		return err
	}

	if err := s.championships.Delete(ctx, id); err != nil {
		return err
	}
	if championship.LogoKey != nil {
		if delErr := s.uploader.Delete(ctx, *championship.LogoKey); delErr != nil {
			return fmt.Errorf("championship deleted, but logo cleanup failed: %w", delErr)
		}
	}
	return nil
}

func (s *championshipService) UploadLogo(ctx context.Context, actorID, id int, contentType string, file io.Reader) (*models.Championship, error) {
	championship, err := s.authorizeOwner(ctx, actorID, id)
	if err != nil {
		return nil, err
	}

	ext, err := logoExtension(contentType)
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("championships/%d/logo%s", id, ext)
	result, err := s.uploader.Upload(ctx, key, contentType, file)
	if err != nil {
		return nil, fmt.Errorf("failed to upload championship logo: %w", err)
	}

	if err := s.championships.UpdateLogoKey(ctx, id, &result.Key); err != nil {
		return nil, err
	}

	championship.LogoKey = &result.Key
	s.fillLogoURL(championship)
	return championship, nil
}

func (s *championshipService) authorizeOwner(ctx context.Context, actorID, id int) (*models.Championship, error) {
	championship, err := s.championships.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if championship.UserID != actorID {
		return nil, ErrForbiddenOperation
	}
	return championship, nil
}

func (s *championshipService) fillLogoURL(championship *models.Championship) {
	if championship.LogoKey == nil {
		return
	}
	url := s.uploader.GetPublicURL(*championship.LogoKey)
	if url != "" {
		championship.LogoURL = &url
	}
}
