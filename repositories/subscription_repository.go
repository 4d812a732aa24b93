package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Matari73/Backend-CCE-AS66A-sub000/models"
	"github.com/lib/pq"
)

var (
	ErrSubscriptionNotFound = errors.New("subscription not found")
	ErrSubscriptionConflict = errors.New("team is already subscribed to this championship")
	ErrSubscriptionInvalid  = errors.New("subscription team or championship does not exist")
)

type SubscriptionRepository interface {
	Create(ctx context.Context, subscription *models.Subscription) error
	Delete(ctx context.Context, championshipID, teamID int) error
	ListByChampionship(ctx context.Context, championshipID int) ([]*models.Subscription, error)

	// SubscribedTeams satisfies brackets.TeamLister: the registered teams of
	// a championship, in subscription order.
	SubscribedTeams(ctx context.Context, championshipID int) ([]*models.Team, error)
}

type postgresSubscriptionRepository struct {
	db *sql.DB
}

func NewPostgresSubscriptionRepository(db *sql.DB) SubscriptionRepository {
	return &postgresSubscriptionRepository{db: db}
}

func (r *postgresSubscriptionRepository) Create(ctx context.Context, subscription *models.Subscription) error {
	query := `
		INSERT INTO subscriptions (championship_id, team_id)
		VALUES ($1, $2)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query,
		subscription.ChampionshipID,
		subscription.TeamID,
	).Scan(&subscription.ID, &subscription.CreatedAt)

	if pqErr, ok := err.(*pq.Error); ok {
		switch pqErr.Code {
		case "23505":
			return ErrSubscriptionConflict
		case "23503":
			return ErrSubscriptionInvalid
		}
	}
	return err
}

func (r *postgresSubscriptionRepository) Delete(ctx context.Context, championshipID, teamID int) error {
	query := `DELETE FROM subscriptions WHERE championship_id = $1 AND team_id = $2`

	result, err := r.db.ExecContext(ctx, query, championshipID, teamID)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrSubscriptionNotFound)
}

func (r *postgresSubscriptionRepository) ListByChampionship(ctx context.Context, championshipID int) ([]*models.Subscription, error) {
	query := `
		SELECT s.id, s.championship_id, s.team_id, s.created_at,
		       t.id, t.name, t.user_id, t.created_at
		FROM subscriptions s
		JOIN teams t ON t.id = s.team_id
		WHERE s.championship_id = $1
		ORDER BY s.id ASC`

	rows, err := r.db.QueryContext(ctx, query, championshipID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	subscriptions := make([]*models.Subscription, 0)
	for rows.Next() {
		var s models.Subscription
		var t models.Team
		if scanErr := rows.Scan(
			&s.ID,
			&s.ChampionshipID,
			&s.TeamID,
			&s.CreatedAt,
			&t.ID,
			&t.Name,
			&t.UserID,
			&t.CreatedAt,
		); scanErr != nil {
			return nil, scanErr
		}
		s.Team = &t
		subscriptions = append(subscriptions, &s)
	}
	return subscriptions, rows.Err()
}

func (r *postgresSubscriptionRepository) SubscribedTeams(ctx context.Context, championshipID int) ([]*models.Team, error) {
	query := `
		SELECT t.id, t.name, t.user_id, t.created_at
		FROM subscriptions s
		JOIN teams t ON t.id = s.team_id
		WHERE s.championship_id = $1
		ORDER BY s.id ASC`

	rows, err := r.db.QueryContext(ctx, query, championshipID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	teams := make([]*models.Team, 0)
	for rows.Next() {
		var t models.Team
		if scanErr := rows.Scan(&t.ID, &t.Name, &t.UserID, &t.CreatedAt); scanErr != nil {
			return nil, scanErr
		}
		teams = append(teams, &t)
	}
	return teams, rows.Err()
}
