package tower

import (
	"encoding/json"

	"github.com/udisondev/cardarena/internal/game/card"
	"github.com/udisondev/cardarena/internal/game/rating"
)

const (
	// BaseFloorGold + FloorGoldStep × floor is the first-clear gold base.
	BaseFloorGold = 30
	FloorGoldStep = 10

	// RepeatDivisor cuts repeat-clear gold to 20%.
	RepeatDivisor = 5

	// TicketEvery grants a ticket on every n-th floor's first clear.
	TicketEvery = 10
)

// milestonePacks are first-clear card packs at checkpoint floors.
var milestonePacks = map[int]card.Tier{
	25:  card.Rare,
	50:  card.Epic,
	75:  card.Epic,
	100: card.Legendary,
}

// RewardKind tags a RewardItem variant.
type RewardKind string

const (
	KindGold     RewardKind = "gold"
	KindTicket   RewardKind = "ticket"
	KindCardPack RewardKind = "card_pack"
)

// RewardItem is one of Gold, Ticket or CardPack.
type RewardItem interface {
	Kind() RewardKind
	reward()
}

// Gold is a currency reward.
type Gold struct {
	Amount int
}

// Ticket is an enhancement ticket of a level.
type Ticket struct {
	Level int
}

// CardPack grants one card of a fixed tier.
type CardPack struct {
	Tier card.Tier
}

func (Gold) Kind() RewardKind     { return KindGold }
func (Ticket) Kind() RewardKind   { return KindTicket }
func (CardPack) Kind() RewardKind { return KindCardPack }

func (Gold) reward()     {}
func (Ticket) reward()   {}
func (CardPack) reward() {}

func (g Gold) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Kind   RewardKind `json:"kind"`
		Amount int        `json:"amount"`
	}{KindGold, g.Amount})
}

func (t Ticket) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Kind  RewardKind `json:"kind"`
		Level int        `json:"level"`
	}{KindTicket, t.Level})
}

func (p CardPack) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Kind RewardKind `json:"kind"`
		Tier card.Tier  `json:"tier"`
	}{KindCardPack, p.Tier})
}

// ScaleFloorReward returns the clear rewards for floor before any gold bonus.
func ScaleFloorReward(floor int, firstClear bool) ([]RewardItem, error) {
	return Rewards(floor, firstClear, 0)
}

// Rewards returns the clear rewards for floor with the winner's gold bonus
// (percent) applied to the gold item.
//
// Repeat clears pay reduced gold and nothing else; the first clear adds a
// ticket every TicketEvery floors and card packs at milestone floors.
func Rewards(floor int, firstClear bool, goldBonus float64) ([]RewardItem, error) {
	diff, err := DifficultyOf(floor)
	if err != nil {
		return nil, err
	}

	base := BaseFloorGold + FloorGoldStep*floor
	if !firstClear {
		base = max(1, base/RepeatDivisor)
	}
	items := []RewardItem{Gold{Amount: rating.Reward(base, goldBonus, diff.Multiplier)}}
	if !firstClear {
		return items, nil
	}

	if floor%TicketEvery == 0 {
		items = append(items, Ticket{Level: floor / TicketEvery})
	}
	if tier, ok := milestonePacks[floor]; ok {
		items = append(items, CardPack{Tier: tier})
	}
	return items, nil
}

// GoldOf sums the gold items.
func GoldOf(items []RewardItem) int {
	total := 0
	for _, it := range items {
		if g, ok := it.(Gold); ok {
			total += g.Amount
		}
	}
	return total
}
