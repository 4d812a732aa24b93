package repositories

import (
	"context"
	"database/sql"

	"github.com/Matari73/Backend-CCE-AS66A-sub000/models"
)

type StatisticsRepository interface {
	Standings(ctx context.Context, championshipID int) ([]*models.TeamStanding, error)
}

type postgresStatisticsRepository struct {
	db *sql.DB
}

func NewPostgresStatisticsRepository(db *sql.DB) StatisticsRepository {
	return &postgresStatisticsRepository{db: db}
}

// Standings aggregates completed matches into per-team win/loss counts for
// every team subscribed to the championship.
func (r *postgresStatisticsRepository) Standings(ctx context.Context, championshipID int) ([]*models.TeamStanding, error) {
	query := `
		SELECT t.id,
		       t.name,
		       COUNT(m.id) FILTER (WHERE m.winner_team_id IS NOT NULL)                        AS played,
		       COUNT(m.id) FILTER (WHERE m.winner_team_id = t.id)                             AS wins,
		       COUNT(m.id) FILTER (WHERE m.winner_team_id IS NOT NULL AND m.winner_team_id <> t.id) AS losses
		FROM subscriptions s
		JOIN teams t ON t.id = s.team_id
		LEFT JOIN matches m
		       ON m.championship_id = s.championship_id
		      AND (m.team_a_id = t.id OR m.team_b_id = t.id)
		WHERE s.championship_id = $1
		GROUP BY t.id, t.name
		ORDER BY wins DESC, losses ASC, t.name ASC`

	rows, err := r.db.QueryContext(ctx, query, championshipID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	standings := make([]*models.TeamStanding, 0)
	for rows.Next() {
		var st models.TeamStanding
		if scanErr := rows.Scan(&st.TeamID, &st.TeamName, &st.Played, &st.Wins, &st.Losses); scanErr != nil {
			return nil, scanErr
		}
		standings = append(standings, &st)
	}
	return standings, rows.Err()
}
