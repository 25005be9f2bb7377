package models

import "time"

// DailyLog is a single activity submission. A user may submit more than one
// log for the same calendar day; consumers sum them, they are never merged.
type DailyLog struct {
	ID           int64     `json:"id" db:"id"`
	UserID       int64     `json:"user_id" db:"user_id"`
	Date         time.Time `json:"date" db:"date"`
	Upstairs     int       `json:"upstairs" db:"upstairs"`
	Downstairs   int       `json:"downstairs" db:"downstairs"`
	LiftUsesUp   int       `json:"liftUsesUp" db:"lift_uses_up"`
	LiftUsesDown int       `json:"liftUsesDown" db:"lift_uses_down"`
}

// UserTotal is a derived leaderboard row, never persisted.
type UserTotal struct {
	Username    string `json:"username" example:"anna"`
	TotalStairs int64  `json:"totalStairs" example:"420"`
}
