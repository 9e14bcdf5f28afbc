package model

import "time"

// TowerProgress counts a player's clears of one floor.
type TowerProgress struct {
	PlayerID       string    `json:"player_id"`
	Floor          int       `json:"floor"`
	Clears         int       `json:"clears"`
	FirstClearedAt time.Time `json:"first_cleared_at"`
}

// FirstClear reports whether the latest recorded clear was the first one.
func (p TowerProgress) FirstClear() bool { return p.Clears == 1 }
