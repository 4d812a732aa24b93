package services

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"

	"github.com/Matari73/Backend-CCE-AS66A-sub000/brackets"
	"github.com/Matari73/Backend-CCE-AS66A-sub000/models"
	"github.com/Matari73/Backend-CCE-AS66A-sub000/repositories"
)

// PhaseResult is the flattened outcome of an advancement, shared by both
// formats. WinnersAdvanced is only set for single elimination, Breakdown only
// for double.
type PhaseResult struct {
	Format          models.ChampionshipFormat `json:"format"`
	Stage           string                    `json:"stage"`
	Matches         []*models.Match           `json:"matches"`
	WinnersAdvanced int                       `json:"winners_advanced,omitempty"`
	Breakdown       *brackets.Breakdown       `json:"breakdown,omitempty"`
}

type BracketService interface {
	GenerateBracket(ctx context.Context, actorID, championshipID int, format models.ChampionshipFormat) ([]*models.Match, error)
	AdvanceToNextPhase(ctx context.Context, actorID, championshipID int) (*PhaseResult, error)
}

type bracketService struct {
	db            *sql.DB
	championships repositories.ChampionshipRepository
	subscriptions repositories.SubscriptionRepository
	matches       repositories.MatchRepository
	hub           *brackets.Hub
	rand          *brackets.Randomizer
}

func NewBracketService(
	db *sql.DB,
	championships repositories.ChampionshipRepository,
	subscriptions repositories.SubscriptionRepository,
	matches repositories.MatchRepository,
	hub *brackets.Hub,
	rand *brackets.Randomizer,
) BracketService {
	return &bracketService{
		db:            db,
		championships: championships,
		subscriptions: subscriptions,
		matches:       matches,
		hub:           hub,
		rand:          rand,
	}
}

func (s *bracketService) GenerateBracket(ctx context.Context, actorID, championshipID int, format models.ChampionshipFormat) ([]*models.Match, error) {
	if !format.Valid() {
		return nil, ErrInvalidFormat
	}
	championship, err := s.authorizeOwner(ctx, actorID, championshipID)
	if err != nil {
		return nil, err
	}
	// The format is fixed at championship creation; a request asking for the
	// other one is a client mistake, not an override.
	if format != championship.Format {
		return nil, ErrFormatMismatch
	}

	var created []*models.Match
	err = s.withChampionshipLock(ctx, championshipID, func(store brackets.MatchStore) error {
		existing, err := store.ListByChampionship(ctx, championshipID)
		if err != nil {
			return err
		}
		if len(existing) > 0 {
			return ErrBracketAlreadyExists
		}

		switch championship.Format {
		case models.FormatSingleElimination:
			created, err = brackets.NewSingleElimination(s.subscriptions, store, s.rand).GenerateBracket(ctx, championshipID)
		case models.FormatDoubleElimination:
			created, err = brackets.NewDoubleElimination(s.subscriptions, store, s.rand).GenerateBracket(ctx, championshipID)
		default:
			err = ErrInvalidFormat
		}
		return err
	})
	if err != nil {
		return nil, err
	}

	s.hub.BroadcastToRoom(strconv.Itoa(championshipID), brackets.Event{
		Type:    brackets.EventBracketGenerated,
		Payload: created,
	})
	return created, nil
}

func (s *bracketService) AdvanceToNextPhase(ctx context.Context, actorID, championshipID int) (*PhaseResult, error) {
	championship, err := s.authorizeOwner(ctx, actorID, championshipID)
	if err != nil {
		return nil, err
	}

	result := &PhaseResult{Format: championship.Format}
	err = s.withChampionshipLock(ctx, championshipID, func(store brackets.MatchStore) error {
		switch championship.Format {
		case models.FormatSingleElimination:
			advancement, err := brackets.NewSingleElimination(s.subscriptions, store, s.rand).AdvanceToNextPhase(ctx, championshipID)
			if err != nil {
				return err
			}
			result.Stage = advancement.Stage
			result.Matches = advancement.Matches
			result.WinnersAdvanced = advancement.WinnersAdvanced
			return nil
		case models.FormatDoubleElimination:
			advancement, err := brackets.NewDoubleElimination(s.subscriptions, store, s.rand).AdvanceToNextPhase(ctx, championshipID)
			if err != nil {
				return err
			}
			result.Stage = advancement.Stage
			result.Matches = advancement.Matches
			result.Breakdown = &advancement.Breakdown
			return nil
		default:
			return ErrInvalidFormat
		}
	})
	if err != nil {
		return nil, err
	}

	s.hub.BroadcastToRoom(strconv.Itoa(championshipID), brackets.Event{
		Type:    brackets.EventPhaseGenerated,
		Payload: result,
	})
	return result, nil
}

// withChampionshipLock runs fn inside a transaction holding a per-championship
// advisory lock, so concurrent generate or advance calls for the same
// championship serialize instead of double-creating rounds.
func (s *bracketService) withChampionshipLock(ctx context.Context, championshipID int, fn func(store brackets.MatchStore) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock($1)`, championshipID); err != nil {
		return fmt.Errorf("failed to acquire championship lock: %w", err)
	}

	if err := fn(s.matches.WithTx(tx)); err != nil {
		return err
	}
	return tx.Commit()
}

func (s *bracketService) authorizeOwner(ctx context.Context, actorID, championshipID int) (*models.Championship, error) {
	championship, err := s.championships.GetByID(ctx, championshipID)
	if err != nil {
		return nil, err
	}
	if championship.UserID != actorID {
		return nil, ErrForbiddenOperation
	}
	return championship, nil
}
