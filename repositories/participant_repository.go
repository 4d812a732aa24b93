package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Matari73/Backend-CCE-AS66A-sub000/models"
	"github.com/lib/pq"
)

var (
	ErrParticipantNotFound    = errors.New("participant not found")
	ErrParticipantTeamInvalid = errors.New("participant team does not exist")
)

type ParticipantRepository interface {
	Create(ctx context.Context, participant *models.Participant) error
	GetByID(ctx context.Context, id int) (*models.Participant, error)
	ListByTeam(ctx context.Context, teamID int) ([]*models.Participant, error)
	Update(ctx context.Context, participant *models.Participant) error
	Delete(ctx context.Context, id int) error
}

type postgresParticipantRepository struct {
	db *sql.DB
}

func NewPostgresParticipantRepository(db *sql.DB) ParticipantRepository {
	return &postgresParticipantRepository{db: db}
}

func (r *postgresParticipantRepository) Create(ctx context.Context, participant *models.Participant) error {
	query := `
		INSERT INTO participants (name, nickname, team_id)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query,
		participant.Name,
		participant.Nickname,
		participant.TeamID,
	).Scan(&participant.ID, &participant.CreatedAt)
	return r.handleParticipantError(err)
}

func (r *postgresParticipantRepository) GetByID(ctx context.Context, id int) (*models.Participant, error) {
	query := `
		SELECT id, name, nickname, team_id, created_at
		FROM participants
		WHERE id = $1`

	participant := &models.Participant{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&participant.ID,
		&participant.Name,
		&participant.Nickname,
		&participant.TeamID,
		&participant.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrParticipantNotFound
		}
		return nil, err
	}
	return participant, nil
}

func (r *postgresParticipantRepository) ListByTeam(ctx context.Context, teamID int) ([]*models.Participant, error) {
	query := `
		SELECT id, name, nickname, team_id, created_at
		FROM participants
		WHERE team_id = $1
		ORDER BY id ASC`

	rows, err := r.db.QueryContext(ctx, query, teamID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	participants := make([]*models.Participant, 0)
	for rows.Next() {
		var p models.Participant
		if scanErr := rows.Scan(&p.ID, &p.Name, &p.Nickname, &p.TeamID, &p.CreatedAt); scanErr != nil {
			return nil, scanErr
		}
		participants = append(participants, &p)
	}
	return participants, rows.Err()
}

func (r *postgresParticipantRepository) Update(ctx context.Context, participant *models.Participant) error {
	query := `
		UPDATE participants
		SET name = $1, nickname = $2
		WHERE id = $3`

	result, err := r.db.ExecContext(ctx, query, participant.Name, participant.Nickname, participant.ID)
	if err != nil {
		return r.handleParticipantError(err)
	}
	return checkAffectedRows(result, ErrParticipantNotFound)
}

func (r *postgresParticipantRepository) Delete(ctx context.Context, id int) error {
	query := `DELETE FROM participants WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrParticipantNotFound)
}

func (r *postgresParticipantRepository) handleParticipantError(err error) error {
	if err == nil {
		return nil
	}
	if pqErr, ok := err.(*pq.Error); ok {
		if pqErr.Code == "23503" && pqErr.Constraint == "participants_team_id_fkey" {
			return ErrParticipantTeamInvalid
		}
	}
	return err
}
