package model

import (
	"time"

	"github.com/udisondev/cardarena/internal/game/rating"
)

// PlayerRating is a player's ladder standing stored in the database.
type PlayerRating struct {
	PlayerID  string    `json:"player_id"`
	Rating    int       `json:"rating"`
	Gold      int64     `json:"gold"`
	Wins      int       `json:"wins"`
	Losses    int       `json:"losses"`
	Draws     int       `json:"draws"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewPlayerRating returns a fresh ladder entry at the starting rating.
func NewPlayerRating(playerID string) PlayerRating {
	return PlayerRating{PlayerID: playerID, Rating: rating.StartRating}
}

// Tier returns the display tier of the current rating.
func (p PlayerRating) Tier() rating.Tier { return rating.TierOf(p.Rating) }

// Record applies one finished battle to the entry.
func (p *PlayerRating) Record(o rating.Outcome, delta, gold int) {
	p.Rating = rating.Apply(p.Rating, delta)
	p.Gold += int64(gold)
	switch o {
	case rating.Win:
		p.Wins++
	case rating.Loss:
		p.Losses++
	default:
		p.Draws++
	}
}
