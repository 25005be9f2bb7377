package database

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// LogEvent journals an activity-feed event and pushes it to every connected
// websocket client. The journal is the catch-up source for clients that were
// offline when the event happened.
func (s *PostgresStore) LogEvent(ctx context.Context, userID int64, eventType string, payload interface{}) error {
	eventMsg := map[string]interface{}{
		"event_type": eventType,
		"payload":    payload,
	}
	eventBytes, err := json.Marshal(eventMsg)
	if err != nil {
		return fmt.Errorf("failed to marshal event payload: %w", err)
	}

	query := `INSERT INTO event_journal (user_id, event_type, payload) VALUES ($1, $2, $3)`
	_, err = s.pool.Exec(ctx, query, userID, eventType, eventBytes)
	if err != nil {
		return err
	}

	if s.wsHub != nil {
		s.wsHub.PublishEvent(eventBytes)
	}

	return nil
}

type Event struct {
	ID        int64           `json:"id"`
	UserID    int64           `json:"user_id"`
	EventType string          `json:"event_type"`
	EventTime time.Time       `json:"event_time"`
	Payload   json.RawMessage `json:"payload"`
}

// GetEventsSince returns feed events after sinceID. The feed is shared by
// all challengers, so there is no per-user filter.
func (s *PostgresStore) GetEventsSince(ctx context.Context, sinceID int64) ([]Event, error) {
	query := `
		SELECT id, user_id, event_type, event_time, payload
		FROM event_journal
		WHERE id > $1
		ORDER BY id ASC
		LIMIT 100
	`
	rows, err := s.pool.Query(ctx, query, sinceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []Event
	for rows.Next() {
		var event Event
		err := rows.Scan(
			&event.ID,
			&event.UserID,
			&event.EventType,
			&event.EventTime,
			&event.Payload,
		)
		if err != nil {
			return nil, err
		}
		events = append(events, event)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	if events == nil {
		return []Event{}, nil
	}

	return events, nil
}
