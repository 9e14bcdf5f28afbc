package rating

// Константы рейтинга и наград PvP арены.
const (
	// StartRating: стартовый рейтинг нового игрока.
	StartRating = 1000

	// MinRating: рейтинг не опускается ниже этого значения.
	MinRating = 0

	// EloScale: делитель в формуле ожидаемого результата.
	EloScale = 400.0

	// WinGold: базовая награда за победу.
	WinGold = 100

	// DrawGold: базовая награда за ничью.
	DrawGold = 40

	// LossGold: базовая награда за поражение.
	LossGold = 20
)

// Band maps a rating range to a K factor and a display tier.
// A band covers ratings below Below; the last band has Below == 0 (open).
type Band struct {
	Below int
	K     float64
	Tier  Tier
}

// Bands is ordered by ascending Below. Low bands move faster for
// placement, the top moves slowly for stability.
var Bands = []Band{
	{Below: 1200, K: 40, Tier: TierBronze},
	{Below: 1600, K: 32, Tier: TierSilver},
	{Below: 2000, K: 24, Tier: TierGold},
	{Below: 2400, K: 16, Tier: TierPlatinum},
	{Below: 0, K: 12, Tier: TierDiamond},
}

// Tier: ранг игрока по рейтингу.
type Tier int32

const (
	TierBronze Tier = iota + 1
	TierSilver
	TierGold
	TierPlatinum
	TierDiamond
)

// String возвращает текстовое представление ранга.
func (t Tier) String() string {
	switch t {
	case TierBronze:
		return "BRONZE"
	case TierSilver:
		return "SILVER"
	case TierGold:
		return "GOLD"
	case TierPlatinum:
		return "PLATINUM"
	case TierDiamond:
		return "DIAMOND"
	default:
		return "UNKNOWN"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (t Tier) MarshalText() ([]byte, error) { return []byte(t.String()), nil }
