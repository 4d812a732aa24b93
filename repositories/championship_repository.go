package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Matari73/Backend-CCE-AS66A-sub000/models"
	"github.com/lib/pq"
)

var (
	ErrChampionshipNotFound     = errors.New("championship not found")
	ErrChampionshipNameConflict = errors.New("championship name already in use")
	ErrChampionshipOwnerInvalid = errors.New("championship owner does not exist")
)

type ChampionshipRepository interface {
	Create(ctx context.Context, championship *models.Championship) error
	GetByID(ctx context.Context, id int) (*models.Championship, error)
	List(ctx context.Context) ([]*models.Championship, error)
	Update(ctx context.Context, championship *models.Championship) error
	UpdateLogoKey(ctx context.Context, id int, logoKey *string) error
	Delete(ctx context.Context, id int) error
}

type postgresChampionshipRepository struct {
	db *sql.DB
}

func NewPostgresChampionshipRepository(db *sql.DB) ChampionshipRepository {
	return &postgresChampionshipRepository{db: db}
}

func (r *postgresChampionshipRepository) Create(ctx context.Context, championship *models.Championship) error {
	query := `
		INSERT INTO championships (name, description, format, user_id, start_date)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query,
		championship.Name,
		championship.Description,
		championship.Format,
		championship.UserID,
		championship.StartDate,
	).Scan(&championship.ID, &championship.CreatedAt)
	return r.handleChampionshipError(err)
}

func (r *postgresChampionshipRepository) GetByID(ctx context.Context, id int) (*models.Championship, error) {
	query := `
		SELECT id, name, description, format, user_id, start_date, logo_key, created_at
		FROM championships
		WHERE id = $1`

	championship := &models.Championship{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&championship.ID,
		&championship.Name,
		&championship.Description,
		&championship.Format,
		&championship.UserID,
		&championship.StartDate,
		&championship.LogoKey,
		&championship.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrChampionshipNotFound
		}
		return nil, err
	}
	return championship, nil
}

func (r *postgresChampionshipRepository) List(ctx context.Context) ([]*models.Championship, error) {
	query := `
		SELECT id, name, description, format, user_id, start_date, logo_key, created_at
		FROM championships
		ORDER BY id ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	championships := make([]*models.Championship, 0)
	for rows.Next() {
		var c models.Championship
		if scanErr := rows.Scan(
			&c.ID,
			&c.Name,
			&c.Description,
			&c.Format,
			&c.UserID,
			&c.StartDate,
			&c.LogoKey,
			&c.CreatedAt,
		); scanErr != nil {
			return nil, scanErr
		}
		championships = append(championships, &c)
	}
	return championships, rows.Err()
}

func (r *postgresChampionshipRepository) Update(ctx context.Context, championship *models.Championship) error {
	query := `
		UPDATE championships
		SET name = $1, description = $2, start_date = $3
		WHERE id = $4`

	result, err := r.db.ExecContext(ctx, query,
		championship.Name,
		championship.Description,
		championship.StartDate,
		championship.ID,
	)
	if err != nil {
		return r.handleChampionshipError(err)
	}
	return checkAffectedRows(result, ErrChampionshipNotFound)
}

func (r *postgresChampionshipRepository) UpdateLogoKey(ctx context.Context, id int, logoKey *string) error {
	query := `UPDATE championships SET logo_key = $1 WHERE id = $2`

	result, err := r.db.ExecContext(ctx, query, logoKey, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrChampionshipNotFound)
}

func (r *postgresChampionshipRepository) Delete(ctx context.Context, id int) error {
	query := `DELETE FROM championships WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrChampionshipNotFound)
}

func (r *postgresChampionshipRepository) handleChampionshipError(err error) error {
	if err == nil {
		return nil
	}
	if pqErr, ok := err.(*pq.Error); ok {
		switch {
		case pqErr.Code == "23505" && pqErr.Constraint == "championships_name_key":
			return ErrChampionshipNameConflict
		case pqErr.Code == "23503" && pqErr.Constraint == "championships_user_id_fkey":
			return ErrChampionshipOwnerInvalid
		}
	}
	return err
}
