package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/cardarena/internal/arena"
	"github.com/udisondev/cardarena/internal/game/card"
	"github.com/udisondev/cardarena/internal/game/combat"
	"github.com/udisondev/cardarena/internal/game/stats"
	"github.com/udisondev/cardarena/internal/rng"
	"github.com/udisondev/cardarena/internal/testutil"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

type fixture struct {
	router  *gin.Engine
	battles *testutil.MockBattles
	tower   *testutil.MockTower
	ratings *testutil.MockRatings
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	f := fixture{
		battles: testutil.NewMockBattles(),
		tower:   testutil.NewMockTower(),
		ratings: testutil.NewMockRatings(),
	}
	svc := arena.NewService(f.ratings, f.battles, f.tower,
		testutil.NewMockSettler(f.ratings, f.battles, f.tower),
		arena.WithGenerator(testutil.Generator("api")))
	f.router = NewRouter(svc)
	return f
}

func (f fixture) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		switch b := body.(type) {
		case string:
			buf.WriteString(b)
		default:
			require.NoError(t, json.NewEncoder(&buf).Encode(b))
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func duelBody() arena.DuelRequest {
	seed := uint64(42)
	return arena.DuelRequest{
		PlayerA: "alice",
		PlayerB: "bob",
		A:       testutil.Combatant("alice", testutil.Fixtures.Balanced, 1),
		B:       testutil.Combatant("bob", testutil.Fixtures.Tank, 2),
		Seed:    &seed,
	}
}

func TestRollCards(t *testing.T) {
	f := newFixture(t)

	w := f.do(t, http.MethodPost, "/api/v1/cards/roll", map[string]any{"pool": "ai", "seed": 5})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	resp := decode[rollResponse](t, w)
	assert.Equal(t, uint64(5), resp.Seed)
	require.Len(t, resp.Cards, card.LoadoutSize)
	for _, c := range resp.Cards {
		assert.Equal(t, card.AvailCore, c.Effect.Type.Availability())
	}

	w = f.do(t, http.MethodPost, "/api/v1/cards/roll", map[string]any{"pool": "boss"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateDuelAndVerify(t *testing.T) {
	f := newFixture(t)

	w := f.do(t, http.MethodPost, "/api/v1/battles", duelBody())
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	rep := decode[arena.DuelReport](t, w)
	assert.Equal(t, uint64(42), rep.Seed)
	assert.Zero(t, rep.Delta.A+rep.Delta.B)
	assert.NotEmpty(t, rep.Result.Events)

	w = f.do(t, http.MethodGet, "/api/v1/battles/"+rep.BattleID.String()+"/verify", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	v := decode[arena.Verification](t, w)
	assert.True(t, v.Valid)
	assert.Equal(t, rep.Digest, v.Recomputed)

	w = f.do(t, http.MethodGet, "/api/v1/ratings/alice", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"tier":"BRONZE"`)

	w = f.do(t, http.MethodGet, "/api/v1/ratings/top?limit=5", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]json.RawMessage](t, w), 2)

	w = f.do(t, http.MethodGet, "/api/v1/players/bob/battles", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]json.RawMessage](t, w), 1)
}

func TestCreateDuel_Errors(t *testing.T) {
	f := newFixture(t)

	bad := duelBody()
	bad.A.Stats.Attack = -5
	w := f.do(t, http.MethodPost, "/api/v1/battles", bad)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "negative stat")

	w = f.do(t, http.MethodPost, "/api/v1/battles", `{"player_a": "x", "a": {"loadout": [{"tier": "mythic"}]}}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	f.battles.SaveErr = testutil.ErrSimulated
	w = f.do(t, http.MethodPost, "/api/v1/battles", duelBody())
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "simulated")
}

func TestVerify_NotFoundAndBadID(t *testing.T) {
	f := newFixture(t)

	w := f.do(t, http.MethodGet, "/api/v1/battles/"+uuid.NewString()+"/verify", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = f.do(t, http.MethodGet, "/api/v1/battles/not-a-uuid/verify", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSimulate(t *testing.T) {
	f := newFixture(t)
	body := duelBody()

	w := f.do(t, http.MethodPost, "/api/v1/battles/simulate", arena.SimulateRequest{A: body.A, B: body.B, Seed: body.Seed})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	sim := decode[arena.Simulation](t, w)
	want, err := combat.Resolve(body.A, body.B, rng.New(42))
	require.NoError(t, err)
	assert.Equal(t, want, sim.Result)
	assert.Zero(t, f.battles.Len())
}

func TestPreviewRating(t *testing.T) {
	f := newFixture(t)

	w := f.do(t, http.MethodPost, "/api/v1/ratings/preview", `{"rating_a": 1000, "rating_b": 1000, "outcome": "win"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.JSONEq(t, `{
		"delta_a": 20, "delta_b": -20,
		"k": 40, "expected_a": 0.5,
		"tier_a": "BRONZE", "tier_b": "BRONZE"
	}`, w.Body.String())

	w = f.do(t, http.MethodPost, "/api/v1/ratings/preview", `{"rating_a": 1000, "rating_b": 1000}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = f.do(t, http.MethodPost, "/api/v1/ratings/preview", `{"rating_a": -1, "rating_b": 1000, "outcome": "draw"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = f.do(t, http.MethodPost, "/api/v1/ratings/preview", `{"rating_a": 1, "rating_b": 1, "outcome": "maybe"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTowerFloor(t *testing.T) {
	f := newFixture(t)

	w := f.do(t, http.MethodGet, "/api/v1/tower/floors/10", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	info := decode[struct {
		Floor   int               `json:"floor"`
		Enemy   stats.Profile     `json:"enemy"`
		Rewards []json.RawMessage `json:"rewards"`
	}](t, w)
	assert.Equal(t, 10, info.Floor)
	assert.Equal(t, 100.0, info.Enemy.Attack)
	assert.Len(t, info.Rewards, 2)

	w = f.do(t, http.MethodGet, "/api/v1/tower/floors/10?first_clear=false", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"rewards":[{"kind":"gold","amount":26}]`)

	for _, path := range []string{"/api/v1/tower/floors/0", "/api/v1/tower/floors/abc", "/api/v1/tower/floors/5?first_clear=maybe"} {
		w = f.do(t, http.MethodGet, path, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code, path)
	}
}

func TestTowerChallenge(t *testing.T) {
	f := newFixture(t)
	gold := card.Card{ID: "g", Tier: card.Common, Effect: card.Effect{
		Type: card.GoldBonus, Magnitude: card.DefaultMagnitudes.Lookup(card.Common, card.GoldBonus),
	}}
	player := combat.Combatant{
		Name:    "hero",
		Stats:   stats.Profile{Attack: 1000, Defense: 500, HP: 5000, CritDamage: 150, AttackSpeed: 150},
		Loadout: card.Loadout{gold, gold, gold},
	}

	w := f.do(t, http.MethodPost, "/api/v1/tower/floors/1/challenge", map[string]any{
		"player_id": "alice", "player": player, "seed": 3,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	rep := decode[struct {
		Cleared    bool `json:"cleared"`
		FirstClear bool `json:"first_clear"`
	}](t, w)
	assert.True(t, rep.Cleared)
	assert.True(t, rep.FirstClear)

	w = f.do(t, http.MethodPost, "/api/v1/tower/floors/5/challenge", map[string]any{
		"player_id": "alice", "player": player,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "locked")
}
