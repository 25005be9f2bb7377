package database

import (
	"context"
	"licznik-schodow/internal/models"
	"time"
)

// UserTotalsSince sums upstairs+downstairs per user over all logs dated on
// or after `since`. Rows come back ordered by total descending with ties
// broken by username ascending, so the ordering is deterministic.
func (q *Queries) UserTotalsSince(ctx context.Context, since time.Time) ([]models.UserTotal, error) {
	query := `
		SELECT u.username, SUM(l.upstairs + l.downstairs) AS total_stairs
		FROM daily_logs l
		JOIN users u ON u.id = l.user_id
		WHERE l.date >= $1
		GROUP BY u.username
		ORDER BY total_stairs DESC, u.username ASC
	`
	rows, err := q.db.Query(ctx, query, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var totals []models.UserTotal
	for rows.Next() {
		var t models.UserTotal
		if err := rows.Scan(&t.Username, &t.TotalStairs); err != nil {
			return nil, err
		}
		totals = append(totals, t)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	if totals == nil {
		return []models.UserTotal{}, nil
	}

	return totals, nil
}
