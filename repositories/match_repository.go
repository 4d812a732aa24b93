package repositories

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"strings"

	"github.com/Matari73/Backend-CCE-AS66A-sub000/models"
	"github.com/lib/pq"
)

var (
	ErrMatchNotFound            = errors.New("match not found")
	ErrMatchTeamInvalid         = errors.New("match team does not exist")
	ErrMatchChampionshipInvalid = errors.New("match championship does not exist")
	ErrMatchDuplicate           = errors.New("match already exists for this stage")
)

type MatchRepository interface {
	Create(ctx context.Context, match *models.Match) error
	CreateBatch(ctx context.Context, matches []*models.Match) error
	GetByID(ctx context.Context, id int) (*models.Match, error)
	ListByChampionship(ctx context.Context, championshipID int) ([]*models.Match, error)
	UpdateWinner(ctx context.Context, id int, winnerTeamID int, score *string) error
	Delete(ctx context.Context, id int) error

	// WithTx returns a repository view bound to the given transaction, so the
	// bracket engine's snapshot read and batch create share one snapshot.
	WithTx(tx *sql.Tx) MatchRepository
}

type postgresMatchRepository struct {
	db executor
}

func NewPostgresMatchRepository(db *sql.DB) MatchRepository {
	return &postgresMatchRepository{db: db}
}

func (r *postgresMatchRepository) WithTx(tx *sql.Tx) MatchRepository {
	return &postgresMatchRepository{db: tx}
}

const matchColumns = `id, championship_id, team_a_id, team_b_id, winner_team_id, score, stage, bracket, map, date, created_at`

func (r *postgresMatchRepository) Create(ctx context.Context, match *models.Match) error {
	query := `
		INSERT INTO matches (championship_id, team_a_id, team_b_id, stage, bracket, map, date)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query,
		match.ChampionshipID,
		match.TeamAID,
		match.TeamBID,
		match.Stage,
		match.Bracket,
		match.Map,
		match.Date,
	).Scan(&match.ID, &match.CreatedAt)
	return r.handleMatchError(err)
}

// CreateBatch inserts a whole round in one statement. The RETURNING rows come
// back in insertion order, so ids and timestamps are written back positionally.
func (r *postgresMatchRepository) CreateBatch(ctx context.Context, matches []*models.Match) error {
	if len(matches) == 0 {
		return nil
	}

	var queryBuilder strings.Builder
	queryBuilder.WriteString(`
		INSERT INTO matches (championship_id, team_a_id, team_b_id, stage, bracket, map, date)
		VALUES `)

	args := make([]any, 0, len(matches)*7)
	for i, m := range matches {
		if i > 0 {
			queryBuilder.WriteString(", ")
		}
		base := i * 7
		queryBuilder.WriteString("(")
		for j := 1; j <= 7; j++ {
			if j > 1 {
				queryBuilder.WriteString(", ")
			}
			queryBuilder.WriteString("$")
			queryBuilder.WriteString(strconv.Itoa(base + j))
		}
		queryBuilder.WriteString(")")
		args = append(args, m.ChampionshipID, m.TeamAID, m.TeamBID, m.Stage, m.Bracket, m.Map, m.Date)
	}
	queryBuilder.WriteString(" RETURNING id, created_at")

	rows, err := r.db.QueryContext(ctx, queryBuilder.String(), args...)
	if err != nil {
		return r.handleMatchError(err)
	}
	defer rows.Close()

	for i := 0; rows.Next(); i++ {
		if scanErr := rows.Scan(&matches[i].ID, &matches[i].CreatedAt); scanErr != nil {
			return scanErr
		}
	}
	return rows.Err()
}

func (r *postgresMatchRepository) GetByID(ctx context.Context, id int) (*models.Match, error) {
	query := `SELECT ` + matchColumns + ` FROM matches WHERE id = $1`

	match := &models.Match{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&match.ID,
		&match.ChampionshipID,
		&match.TeamAID,
		&match.TeamBID,
		&match.WinnerTeamID,
		&match.Score,
		&match.Stage,
		&match.Bracket,
		&match.Map,
		&match.Date,
		&match.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMatchNotFound
		}
		return nil, err
	}
	return match, nil
}

func (r *postgresMatchRepository) ListByChampionship(ctx context.Context, championshipID int) ([]*models.Match, error) {
	query := `SELECT ` + matchColumns + ` FROM matches WHERE championship_id = $1 ORDER BY created_at ASC, id ASC`

	rows, err := r.db.QueryContext(ctx, query, championshipID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	matches := make([]*models.Match, 0)
	for rows.Next() {
		var m models.Match
		if scanErr := rows.Scan(
			&m.ID,
			&m.ChampionshipID,
			&m.TeamAID,
			&m.TeamBID,
			&m.WinnerTeamID,
			&m.Score,
			&m.Stage,
			&m.Bracket,
			&m.Map,
			&m.Date,
			&m.CreatedAt,
		); scanErr != nil {
			return nil, scanErr
		}
		matches = append(matches, &m)
	}
	return matches, rows.Err()
}

func (r *postgresMatchRepository) UpdateWinner(ctx context.Context, id int, winnerTeamID int, score *string) error {
	query := `
		UPDATE matches
		SET winner_team_id = $1, score = $2
		WHERE id = $3`

	result, err := r.db.ExecContext(ctx, query, winnerTeamID, score, id)
	if err != nil {
		return r.handleMatchError(err)
	}
	return checkAffectedRows(result, ErrMatchNotFound)
}

func (r *postgresMatchRepository) Delete(ctx context.Context, id int) error {
	query := `DELETE FROM matches WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrMatchNotFound)
}

func (r *postgresMatchRepository) handleMatchError(err error) error {
	if err == nil {
		return nil
	}
	if pqErr, ok := err.(*pq.Error); ok {
		switch {
		case pqErr.Code == "23505" && pqErr.Constraint == "matches_championship_stage_pairing_key":
			return ErrMatchDuplicate
		case pqErr.Code == "23503" && pqErr.Constraint == "matches_championship_id_fkey":
			return ErrMatchChampionshipInvalid
		case pqErr.Code == "23503":
			return ErrMatchTeamInvalid
		}
	}
	return err
}
