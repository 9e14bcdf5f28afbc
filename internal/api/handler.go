package api

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/udisondev/cardarena/internal/arena"
	"github.com/udisondev/cardarena/internal/db"
	"github.com/udisondev/cardarena/internal/game/card"
	"github.com/udisondev/cardarena/internal/game/combat"
	"github.com/udisondev/cardarena/internal/game/rating"
)

const (
	jsonKeyError = "error"

	defaultListLimit = 10
)

// Handler groups all arena HTTP handlers.
type Handler struct {
	svc *arena.Service
}

// NewHandler creates a Handler over the arena service.
func NewHandler(svc *arena.Service) *Handler {
	return &Handler{svc: svc}
}

// fail maps service errors to HTTP statuses.
func fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, arena.ErrInvalidRequest):
		c.JSON(http.StatusBadRequest, gin.H{jsonKeyError: err.Error()})
	case errors.Is(err, db.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{jsonKeyError: "not found"})
	default:
		slog.Error("request failed", "path", c.FullPath(), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{jsonKeyError: "internal error"})
	}
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{jsonKeyError: msg})
}

func queryLimit(c *gin.Context) (int, bool) {
	s := c.Query("limit")
	if s == "" {
		return defaultListLimit, true
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return n, true
}

type rollRequest struct {
	// "player" (default) or "ai"
	Pool string  `json:"pool"`
	Seed *uint64 `json:"seed"`
}

type rollResponse struct {
	Seed  uint64       `json:"seed"`
	Cards card.Loadout `json:"cards"`
}

// RollCards rolls a three-card loadout.
func (h *Handler) RollCards(c *gin.Context) {
	var req rollRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	var pool card.Pool
	switch req.Pool {
	case "", "player":
		pool = card.PoolPlayer
	case "ai":
		pool = card.PoolAI
	default:
		badRequest(c, "pool must be player or ai")
		return
	}
	cards, seed, err := h.svc.RollCards(pool, req.Seed)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, rollResponse{Seed: seed, Cards: cards})
}

// CreateDuel runs and stores a ranked duel.
func (h *Handler) CreateDuel(c *gin.Context) {
	var req arena.DuelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	rep, err := h.svc.Duel(c.Request.Context(), req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, rep)
}

// Simulate runs an unranked battle and returns the full result.
func (h *Handler) Simulate(c *gin.Context) {
	var req arena.SimulateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	sim, err := h.svc.Simulate(req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, sim)
}

// VerifyBattle replays a stored battle and reports whether it still matches.
func (h *Handler) VerifyBattle(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		badRequest(c, "invalid battle id")
		return
	}
	v, err := h.svc.VerifyBattle(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, v)
}

type previewRequest struct {
	RatingA int             `json:"rating_a"`
	RatingB int             `json:"rating_b"`
	Outcome *rating.Outcome `json:"outcome"`
}

type previewResponse struct {
	rating.Delta
	K         float64     `json:"k"`
	ExpectedA float64     `json:"expected_a"`
	TierA     rating.Tier `json:"tier_a"`
	TierB     rating.Tier `json:"tier_b"`
}

// PreviewRating computes the rating change of a hypothetical result.
func (h *Handler) PreviewRating(c *gin.Context) {
	var req previewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	if req.Outcome == nil {
		badRequest(c, "outcome is required")
		return
	}
	if req.RatingA < rating.MinRating || req.RatingB < rating.MinRating {
		badRequest(c, "ratings must be non-negative")
		return
	}
	c.JSON(http.StatusOK, previewResponse{
		Delta:     rating.Change(req.RatingA, req.RatingB, *req.Outcome),
		K:         rating.KFactor((req.RatingA + req.RatingB) / 2),
		ExpectedA: rating.Expected(req.RatingA, req.RatingB),
		TierA:     rating.TierOf(req.RatingA),
		TierB:     rating.TierOf(req.RatingB),
	})
}

// Leaderboard returns the top players, ?limit=N (1..100).
func (h *Handler) Leaderboard(c *gin.Context) {
	limit, ok := queryLimit(c)
	if !ok {
		badRequest(c, "invalid limit")
		return
	}
	top, err := h.svc.Leaderboard(c.Request.Context(), limit)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, top)
}

// GetRating returns one player's ladder entry.
func (h *Handler) GetRating(c *gin.Context) {
	p, err := h.svc.Rating(c.Request.Context(), c.Param("player"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"rating": p,
		"tier":   p.Tier(),
	})
}

// ListPlayerBattles returns a player's latest battles.
func (h *Handler) ListPlayerBattles(c *gin.Context) {
	limit, ok := queryLimit(c)
	if !ok {
		badRequest(c, "invalid limit")
		return
	}
	list, err := h.svc.History(c.Request.Context(), c.Param("player"), limit)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func floorParam(c *gin.Context) (int, bool) {
	floor, err := strconv.Atoi(c.Param("floor"))
	if err != nil {
		badRequest(c, "invalid floor")
		return 0, false
	}
	return floor, true
}

// GetFloor describes a floor's guardian and rewards, ?first_clear=true|false.
func (h *Handler) GetFloor(c *gin.Context) {
	floor, ok := floorParam(c)
	if !ok {
		return
	}
	firstClear := true
	if s := c.Query("first_clear"); s != "" {
		v, err := strconv.ParseBool(s)
		if err != nil {
			badRequest(c, "invalid first_clear")
			return
		}
		firstClear = v
	}
	info, err := h.svc.Floor(floor, firstClear)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, info)
}

type challengeRequest struct {
	PlayerID string           `json:"player_id"`
	Player   combat.Combatant `json:"player"`
	Seed     *uint64          `json:"seed"`
}

// ChallengeFloor fights the floor guardian.
func (h *Handler) ChallengeFloor(c *gin.Context) {
	floor, ok := floorParam(c)
	if !ok {
		return
	}
	var req challengeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	rep, err := h.svc.ClimbTower(c.Request.Context(), arena.TowerRequest{
		PlayerID: req.PlayerID,
		Floor:    floor,
		Player:   req.Player,
		Seed:     req.Seed,
	})
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, rep)
}
