// Package api exposes the arena service over HTTP (JSON).
package api

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/udisondev/cardarena/internal/arena"
)

const (
	RouteAPIPrefix      = "/api/v1"
	RouteCardsRoll      = "/cards/roll"
	RouteBattles        = "/battles"
	RouteBattleSimulate = "/battles/simulate"
	RouteBattleVerify   = "/battles/:id/verify"
	RouteRatingPreview  = "/ratings/preview"
	RouteRatingTop      = "/ratings/top"
	RouteRatingByPlayer = "/ratings/:player"
	RoutePlayerBattles  = "/players/:player/battles"
	RouteTowerFloor     = "/tower/floors/:floor"
	RouteTowerChallenge = "/tower/floors/:floor/challenge"
)

// NewRouter builds the gin engine with every arena route.
func NewRouter(svc *arena.Service) *gin.Engine {
	h := NewHandler(svc)

	router := gin.New()
	router.Use(gin.Recovery(), requestLogger())

	v1 := router.Group(RouteAPIPrefix)
	{
		v1.POST(RouteCardsRoll, h.RollCards)

		v1.POST(RouteBattles, h.CreateDuel)
		v1.POST(RouteBattleSimulate, h.Simulate)
		v1.GET(RouteBattleVerify, h.VerifyBattle)

		v1.POST(RouteRatingPreview, h.PreviewRating)
		v1.GET(RouteRatingTop, h.Leaderboard)
		v1.GET(RouteRatingByPlayer, h.GetRating)
		v1.GET(RoutePlayerBattles, h.ListPlayerBattles)

		v1.GET(RouteTowerFloor, h.GetFloor)
		v1.POST(RouteTowerChallenge, h.ChallengeFloor)
	}
	return router
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		level := slog.LevelDebug
		if c.Writer.Status() >= 500 {
			level = slog.LevelWarn
		}
		slog.Log(c.Request.Context(), level, "http request",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"latency", time.Since(start))
	}
}
