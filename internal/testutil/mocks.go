package testutil

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/udisondev/cardarena/internal/db"
	"github.com/udisondev/cardarena/internal/model"
)

// ErrSimulated is a sentinel error for testing error handling paths
var ErrSimulated = errors.New("simulated error for testing")

// MockRatings: in-memory имплементация хранилища рейтингов для unit тестов.
// Не требует реального PostgreSQL.
type MockRatings struct {
	mu      sync.RWMutex
	ratings map[string]model.PlayerRating

	// SaveErr, если задан, возвращается из Save и из MockSettler.
	SaveErr error
}

// NewMockRatings создаёт пустое хранилище рейтингов.
func NewMockRatings() *MockRatings {
	return &MockRatings{ratings: make(map[string]model.PlayerRating)}
}

func (m *MockRatings) Get(_ context.Context, playerID string) (model.PlayerRating, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	p, ok := m.ratings[playerID]
	if !ok {
		return model.PlayerRating{}, fmt.Errorf("rating of %q: %w", playerID, db.ErrNotFound)
	}
	return p, nil
}

func (m *MockRatings) Save(_ context.Context, p model.PlayerRating) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.SaveErr != nil {
		return m.SaveErr
	}
	p.UpdatedAt = time.Now()
	m.ratings[p.PlayerID] = p
	return nil
}

// getOrNew returns the stored entry or a fresh one at the starting rating.
func (m *MockRatings) getOrNew(playerID string) model.PlayerRating {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if p, ok := m.ratings[playerID]; ok {
		return p
	}
	return model.NewPlayerRating(playerID)
}

func (m *MockRatings) put(p model.PlayerRating) model.PlayerRating {
	m.mu.Lock()
	defer m.mu.Unlock()

	p.UpdatedAt = time.Now()
	m.ratings[p.PlayerID] = p
	return p
}

func (m *MockRatings) Top(_ context.Context, limit int) ([]model.PlayerRating, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]model.PlayerRating, 0, len(m.ratings))
	for _, p := range m.ratings {
		out = append(out, p)
	}
	slices.SortFunc(out, func(a, b model.PlayerRating) int {
		if c := cmp.Compare(b.Rating, a.Rating); c != 0 {
			return c
		}
		return cmp.Compare(a.PlayerID, b.PlayerID)
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// MockBattles: in-memory хранилище боёв.
type MockBattles struct {
	mu      sync.RWMutex
	battles map[uuid.UUID]model.Battle
	order   []uuid.UUID

	SaveErr error
}

// NewMockBattles создаёт пустое хранилище боёв.
func NewMockBattles() *MockBattles {
	return &MockBattles{battles: make(map[uuid.UUID]model.Battle)}
}

func (m *MockBattles) Save(_ context.Context, b *model.Battle) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.SaveErr != nil {
		return m.SaveErr
	}
	if _, exists := m.battles[b.ID]; exists {
		return fmt.Errorf("battle %s already exists", b.ID)
	}
	b.CreatedAt = time.Now()
	m.battles[b.ID] = *b
	m.order = append(m.order, b.ID)
	return nil
}

func (m *MockBattles) Get(_ context.Context, id uuid.UUID) (model.Battle, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	b, ok := m.battles[id]
	if !ok {
		return model.Battle{}, fmt.Errorf("battle %s: %w", id, db.ErrNotFound)
	}
	return b, nil
}

func (m *MockBattles) ListByPlayer(_ context.Context, playerID string, limit int) ([]model.Battle, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []model.Battle
	for i := len(m.order) - 1; i >= 0 && len(out) < limit; i-- {
		b := m.battles[m.order[i]]
		if b.PlayerA == playerID || b.PlayerB == playerID {
			out = append(out, b)
		}
	}
	return out, nil
}

// Len returns the number of stored battles.
func (m *MockBattles) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.battles)
}

// Tamper overwrites a stored battle, simulating a forged record.
func (m *MockBattles) Tamper(id uuid.UUID, edit func(*model.Battle)) {
	m.mu.Lock()
	defer m.mu.Unlock()

	b := m.battles[id]
	edit(&b)
	m.battles[id] = b
}

type towerKey struct {
	player string
	floor  int
}

// MockTower: in-memory прогресс башни.
type MockTower struct {
	mu       sync.RWMutex
	progress map[towerKey]model.TowerProgress
}

// NewMockTower создаёт пустой прогресс башни.
func NewMockTower() *MockTower {
	return &MockTower{progress: make(map[towerKey]model.TowerProgress)}
}

func (m *MockTower) RecordClear(_ context.Context, playerID string, floor int) (model.TowerProgress, error) {
	return m.put(m.next(playerID, floor)), nil
}

// next returns the progress a new clear would produce, without storing it.
func (m *MockTower) next(playerID string, floor int) model.TowerProgress {
	m.mu.RLock()
	defer m.mu.RUnlock()

	p, ok := m.progress[towerKey{playerID, floor}]
	if !ok {
		p = model.TowerProgress{PlayerID: playerID, Floor: floor, FirstClearedAt: time.Now()}
	}
	p.Clears++
	return p
}

func (m *MockTower) put(p model.TowerProgress) model.TowerProgress {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.progress[towerKey{p.PlayerID, p.Floor}] = p
	return p
}

func (m *MockTower) HighestFloor(_ context.Context, playerID string) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	highest := 0
	for k := range m.progress {
		if k.player == playerID && k.floor > highest {
			highest = k.floor
		}
	}
	return highest, nil
}

// Unlock marks floors 1..floor as cleared once.
func (m *MockTower) Unlock(playerID string, floor int) {
	for f := 1; f <= floor; f++ {
		_, _ = m.RecordClear(context.Background(), playerID, f)
	}
}

// MockSettler: in-memory Settler поверх трёх mock-хранилищ.
// Бои урегулируются по одному; при ошибке ни одно хранилище не меняется.
type MockSettler struct {
	mu      sync.Mutex
	ratings *MockRatings
	battles *MockBattles
	tower   *MockTower
}

// NewMockSettler связывает settler с хранилищами, которые читает сервис.
func NewMockSettler(ratings *MockRatings, battles *MockBattles, tower *MockTower) *MockSettler {
	return &MockSettler{ratings: ratings, battles: battles, tower: tower}
}

func (m *MockSettler) SettleDuel(
	ctx context.Context,
	b *model.Battle,
	apply func(a, b *model.PlayerRating),
) (model.PlayerRating, model.PlayerRating, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.ratings.SaveErr != nil {
		return model.PlayerRating{}, model.PlayerRating{}, m.ratings.SaveErr
	}
	ra := m.ratings.getOrNew(b.PlayerA)
	rb := m.ratings.getOrNew(b.PlayerB)
	apply(&ra, &rb)

	if err := m.battles.Save(ctx, b); err != nil {
		return model.PlayerRating{}, model.PlayerRating{}, err
	}
	return m.ratings.put(ra), m.ratings.put(rb), nil
}

func (m *MockSettler) SettleTower(
	ctx context.Context,
	b *model.Battle,
	cleared bool,
	reward func(model.TowerProgress) (int, error),
) (model.TowerProgress, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.ratings.SaveErr != nil {
		return model.TowerProgress{}, m.ratings.SaveErr
	}
	var progress model.TowerProgress
	if cleared {
		progress = m.tower.next(b.PlayerA, b.Floor)
		gold, err := reward(progress)
		if err != nil {
			return model.TowerProgress{}, err
		}
		b.GoldA = gold
	}

	if err := m.battles.Save(ctx, b); err != nil {
		return model.TowerProgress{}, err
	}
	if cleared {
		m.tower.put(progress)
	}
	if b.GoldA > 0 {
		p := m.ratings.getOrNew(b.PlayerA)
		p.Gold += int64(b.GoldA)
		m.ratings.put(p)
	}
	return progress, nil
}
