package poker

// HoleCategory is a coarse preflop strength bucket for two hole cards.
type HoleCategory uint8

const (
	HoleTrash HoleCategory = iota
	HoleWeak
	HoleMedium
	HoleStrong
	HolePremium
)

func (hc HoleCategory) String() string {
	switch hc {
	case HolePremium:
		return "premium"
	case HoleStrong:
		return "strong"
	case HoleMedium:
		return "medium"
	case HoleWeak:
		return "weak"
	default:
		return "trash"
	}
}

// CategorizeHole buckets two hole cards: premium (JJ+, AK), strong (TT,
// AQ, AJ), medium (77-99, suited broadway), weak (small pairs, suited
// connectors), trash (the rest).
func CategorizeHole(a, b Card) HoleCategory {
	low, high := a.Rank(), b.Rank()
	if low > high {
		low, high = high, low
	}
	if high > 12 {
		return HoleTrash
	}
	suited := a.Suit() == b.Suit()
	pair := low == high

	switch {
	case pair && low >= Jack:
		return HolePremium
	case high == Ace && low == King:
		return HolePremium
	case pair && low == Ten:
		return HoleStrong
	case high == Ace && (low == Queen || low == Jack):
		return HoleStrong
	case pair && low >= Seven:
		return HoleMedium
	case suited && low >= Ten:
		return HoleMedium
	case pair:
		return HoleWeak
	case suited && high-low <= 2:
		return HoleWeak
	default:
		return HoleTrash
	}
}
