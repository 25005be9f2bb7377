package database

import (
	"context"
	"licznik-schodow/internal/models"
	"time"
)

type CreateDailyLogParams struct {
	UserID       int64
	Date         time.Time
	Upstairs     int
	Downstairs   int
	LiftUsesUp   int
	LiftUsesDown int
}

// CreateDailyLog inserts a new submission. No range or duplicate-date
// validation happens here; every call produces an independent row.
func (q *Queries) CreateDailyLog(ctx context.Context, arg CreateDailyLogParams) (int64, error) {
	query := `
		INSERT INTO daily_logs (user_id, date, upstairs, downstairs, lift_uses_up, lift_uses_down)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	var id int64
	err := q.db.QueryRow(ctx, query,
		arg.UserID, arg.Date, arg.Upstairs, arg.Downstairs, arg.LiftUsesUp, arg.LiftUsesDown,
	).Scan(&id)
	if err != nil {
		return 0, err
	}

	return id, nil
}

func (q *Queries) GetLogsByUserID(ctx context.Context, userID int64) ([]models.DailyLog, error) {
	query := `
		SELECT id, user_id, date, upstairs, downstairs, lift_uses_up, lift_uses_down
		FROM daily_logs
		WHERE user_id = $1
		ORDER BY date DESC, id DESC
	`
	rows, err := q.db.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var logs []models.DailyLog
	for rows.Next() {
		var l models.DailyLog
		if err := rows.Scan(
			&l.ID,
			&l.UserID,
			&l.Date,
			&l.Upstairs,
			&l.Downstairs,
			&l.LiftUsesUp,
			&l.LiftUsesDown,
		); err != nil {
			return nil, err
		}
		logs = append(logs, l)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	if logs == nil {
		return []models.DailyLog{}, nil
	}

	return logs, nil
}

type LogWithUsername struct {
	models.DailyLog
	Username string `json:"username"`
}

// GetAllLogsWithUsernames feeds the shared calendar/week dashboard: every
// user's submissions joined with the author's username, newest date first.
func (q *Queries) GetAllLogsWithUsernames(ctx context.Context) ([]LogWithUsername, error) {
	query := `
		SELECT l.id, l.user_id, l.date, l.upstairs, l.downstairs, l.lift_uses_up, l.lift_uses_down, u.username
		FROM daily_logs l
		JOIN users u ON u.id = l.user_id
		ORDER BY l.date DESC, l.id DESC
	`
	rows, err := q.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var logs []LogWithUsername
	for rows.Next() {
		var l LogWithUsername
		if err := rows.Scan(
			&l.ID,
			&l.UserID,
			&l.Date,
			&l.Upstairs,
			&l.Downstairs,
			&l.LiftUsesUp,
			&l.LiftUsesDown,
			&l.Username,
		); err != nil {
			return nil, err
		}
		logs = append(logs, l)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	if logs == nil {
		return []LogWithUsername{}, nil
	}

	return logs, nil
}
