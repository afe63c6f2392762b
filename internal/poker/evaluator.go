package poker

import "math/bits"

// Category is the class of a five-card poker hand, ordered weakest to
// strongest.
type Category uint8

const (
	HighCard Category = iota
	Pair
	TwoPair
	ThreeOfAKind
	Straight
	Flush
	FullHouse
	FourOfAKind
	StraightFlush
)

// String returns a human-readable category name.
func (c Category) String() string {
	switch c {
	case HighCard:
		return "High Card"
	case Pair:
		return "Pair"
	case TwoPair:
		return "Two Pair"
	case ThreeOfAKind:
		return "Three of a Kind"
	case Straight:
		return "Straight"
	case Flush:
		return "Flush"
	case FullHouse:
		return "Full House"
	case FourOfAKind:
		return "Four of a Kind"
	case StraightFlush:
		return "Straight Flush"
	default:
		return "Unknown"
	}
}

// HandRank is a comparable hand strength: a larger value always beats a
// smaller one, and equal values tie. The category lives in the high bits
// with five 4-bit rank nibbles below it (primary groups first, then kickers
// highest first), so integer comparison reproduces the full tie-break order.
type HandRank uint32

const rankShift = 20

// Category returns the category encoded in the rank.
func (hr HandRank) Category() Category {
	return Category(hr >> rankShift)
}

// String returns the category name of the rank.
func (hr HandRank) String() string {
	return hr.Category().String()
}

func encodeRank(c Category, nibbles ...uint8) HandRank {
	r := HandRank(c) << rankShift
	shift := rankShift
	for _, n := range nibbles {
		shift -= 4
		r |= HandRank(n) << shift
	}
	return r
}

// Evaluate returns the strength of the best five-card hand contained in h.
// h must hold between five and seven cards. Evaluation is pure: identical
// inputs always produce identical ranks.
func Evaluate(h Hand) HandRank {
	var suitMasks [4]uint16
	var rankMask uint16
	for suit := uint8(0); suit < 4; suit++ {
		m := h.SuitMask(suit)
		suitMasks[suit] = m
		rankMask |= m
	}

	// Flushes first: with at most seven cards only one suit can reach five.
	for _, m := range suitMasks {
		if bits.OnesCount16(m) >= 5 {
			if high := straightHigh(m); high >= 0 {
				return encodeRank(StraightFlush, uint8(high))
			}
			return encodeRank(Flush, topRanks(m, 5)...)
		}
	}

	s0, s1, s2, s3 := suitMasks[0], suitMasks[1], suitMasks[2], suitMasks[3]
	quads := s0 & s1 & s2 & s3
	tripsOrBetter := (s0 & s1 & s2) | (s0 & s1 & s3) | (s0 & s2 & s3) | (s1 & s2 & s3)
	trips := tripsOrBetter &^ quads
	pairs := ((s0 & s1) | (s0 & s2) | (s0 & s3) | (s1 & s2) | (s1 & s3) | (s2 & s3)) &^ tripsOrBetter

	if quads != 0 {
		quad := highestRank(quads)
		kicker := highestRank(rankMask &^ (1 << quad))
		return encodeRank(FourOfAKind, quad, kicker)
	}

	if trips != 0 {
		trip := highestRank(trips)
		// A second set of trips supplies the pair of a full house.
		if fill := (pairs | trips) &^ (1 << trip); fill != 0 {
			return encodeRank(FullHouse, trip, highestRank(fill))
		}
	}

	if high := straightHigh(rankMask); high >= 0 {
		return encodeRank(Straight, uint8(high))
	}

	if trips != 0 {
		trip := highestRank(trips)
		kickers := topRanks(rankMask&^(1<<trip), 2)
		return encodeRank(ThreeOfAKind, trip, kickers[0], kickers[1])
	}

	switch bits.OnesCount16(pairs) {
	case 0:
	case 1:
		pair := highestRank(pairs)
		kickers := topRanks(rankMask&^(1<<pair), 3)
		return encodeRank(Pair, pair, kickers[0], kickers[1], kickers[2])
	default:
		high := highestRank(pairs)
		low := highestRank(pairs &^ (1 << high))
		kicker := highestRank(rankMask &^ (1 << high) &^ (1 << low))
		return encodeRank(TwoPair, high, low, kicker)
	}

	return encodeRank(HighCard, topRanks(rankMask, 5)...)
}

// straightHigh returns the rank of the highest straight in the 13-bit rank
// mask, or -1 when none exists. The wheel (A-2-3-4-5) reports Five as its
// high card, so it ranks below every other straight.
func straightHigh(mask uint16) int {
	run := mask & (mask << 1) & (mask << 2) & (mask << 3) & (mask << 4)
	if run != 0 {
		return bits.Len16(run) - 1
	}
	const wheel = 1<<Ace | 1<<Five | 1<<Four | 1<<Three | 1<<Two
	if mask&wheel == wheel {
		return int(Five)
	}
	return -1
}

// highestRank returns the highest rank set in the mask. The mask must be
// non-empty.
func highestRank(mask uint16) uint8 {
	return uint8(bits.Len16(mask) - 1)
}

// topRanks returns the n highest ranks in the mask, descending.
func topRanks(mask uint16, n int) []uint8 {
	ranks := make([]uint8, 0, n)
	for len(ranks) < n && mask != 0 {
		top := highestRank(mask)
		ranks = append(ranks, top)
		mask &^= 1 << top
	}
	return ranks
}
