package poker

import (
	"math/rand"
	"testing"

	oracle "github.com/chehsunliu/poker"
)

func mustHand(t *testing.T, s string) Hand {
	t.Helper()
	h, err := ParseHand(s)
	if err != nil {
		t.Fatalf("ParseHand(%q): %v", s, err)
	}
	return h
}

func TestEvaluateCategories(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		cards string
		want  Category
	}{
		{"ace high straight flush", "Ah Kh Qh Jh Th 2c 3d", StraightFlush},
		{"steel wheel", "Ah 2h 3h 4h 5h Kc Qd", StraightFlush},
		{"four of a kind", "As Ah Ad Ac Kh 2c 3d", FourOfAKind},
		{"full house", "As Ah Ad Kc Kh 2c 3d", FullHouse},
		{"full house from two trips", "As Ah Ad Kc Kh Ks 3d", FullHouse},
		{"flush", "As Ks 9s 5s 2s 3d 4c", Flush},
		{"broadway straight", "Ac Kd Qh Js Tc 2c 2d", Straight},
		{"wheel straight", "Ac 2d 3h 4s 5c 9d Kh", Straight},
		{"three of a kind", "As Ah Ad Kc Qh 2c 3d", ThreeOfAKind},
		{"two pair", "As Ah Kd Kc Qh 2c 3d", TwoPair},
		{"one pair", "As Ah Kd Qc Jh 2c 3d", Pair},
		{"high card", "As Kd Qc Jh 9s 2c 3d", HighCard},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := Evaluate(mustHand(t, tt.cards)).Category()
			if got != tt.want {
				t.Errorf("Evaluate(%s).Category() = %s, want %s", tt.cards, got, tt.want)
			}
		})
	}
}

func TestRoyalBoardBeatsEverything(t *testing.T) {
	t.Parallel()

	board := mustHand(t, "Ah Kh Qh Jh Th")

	// Any two unrelated hole cards still make the board's straight flush.
	holes := []string{"2c 3d", "As Ks", "7s 2d"}
	for _, hole := range holes {
		h := board | mustHand(t, hole)
		rank := Evaluate(h)
		if rank.Category() != StraightFlush {
			t.Errorf("Hole %s: category %s, want Straight Flush", hole, rank.Category())
		}

		quads := Evaluate(mustHand(t, "As Ac Ad Ah Kc 2d 3h"))
		if rank <= quads {
			t.Errorf("Straight flush should beat four of a kind")
		}
	}
}

func TestWheelRanksBelowSixHighStraight(t *testing.T) {
	t.Parallel()

	wheel := Evaluate(mustHand(t, "Ac 2d 3h 4s 5c Kd 9h"))
	sixHigh := Evaluate(mustHand(t, "2c 3d 4h 5s 6c Kd 9h"))

	if wheel.Category() != Straight || sixHigh.Category() != Straight {
		t.Fatalf("Both hands should be straights, got %s and %s", wheel.Category(), sixHigh.Category())
	}
	if wheel >= sixHigh {
		t.Errorf("Wheel (%d) should rank below six-high straight (%d)", wheel, sixHigh)
	}
}

func TestKickerOrdering(t *testing.T) {
	t.Parallel()

	// Same pair of aces, king kicker vs queen kicker.
	kingKicker := Evaluate(mustHand(t, "As Ah Kd 9c 7h 4s 2d"))
	queenKicker := Evaluate(mustHand(t, "As Ah Qd 9c 7h 4s 2d"))
	if kingKicker <= queenKicker {
		t.Errorf("King kicker should beat queen kicker")
	}

	// Identical best five cards tie even with different spare cards.
	a := Evaluate(mustHand(t, "As Ah Kd Qc Jh 4s 2d"))
	b := Evaluate(mustHand(t, "As Ah Kd Qc Jh 3s 2c"))
	if a != b {
		t.Errorf("Equal best-five hands should tie: %d vs %d", a, b)
	}
}

func TestEvaluateDeterministic(t *testing.T) {
	t.Parallel()

	h := mustHand(t, "As Kd Qc Jh 9s 2c 3d")
	want := Evaluate(h)
	for i := 0; i < 100; i++ {
		if got := Evaluate(h); got != want {
			t.Fatalf("Evaluation not deterministic: %d then %d", want, got)
		}
	}
}

// TestEvaluateAgainstOracle cross-checks category and relative ordering
// against the chehsunliu/poker evaluator on random seven-card hands. The
// oracle ranks low-is-better.
func TestEvaluateAgainstOracle(t *testing.T) {
	t.Parallel()

	classToCategory := map[int32]Category{
		1: StraightFlush,
		2: FourOfAKind,
		3: FullHouse,
		4: Flush,
		5: Straight,
		6: ThreeOfAKind,
		7: TwoPair,
		8: Pair,
		9: HighCard,
	}

	rng := rand.New(rand.NewSource(42))
	var prevMine HandRank
	var prevOracle int32

	for trial := 0; trial < 2000; trial++ {
		deck := NewDeck(rng)
		cards := deck.Deal(7)

		mine := Evaluate(NewHand(cards...))

		oracleCards := make([]oracle.Card, len(cards))
		for i, c := range cards {
			oracleCards[i] = oracle.NewCard(c.String())
		}
		oracleRank := oracle.Evaluate(oracleCards)

		wantCategory, ok := classToCategory[oracle.RankClass(oracleRank)]
		if !ok {
			// Rank class 0 is the oracle's royal flush special case.
			wantCategory = StraightFlush
		}
		if mine.Category() != wantCategory {
			t.Fatalf("Trial %d (%v): category %s, oracle says %s",
				trial, cards, mine.Category(), wantCategory)
		}

		if trial > 0 {
			mineCmp := compareInts(int64(mine), int64(prevMine))
			oracleCmp := compareInts(int64(prevOracle), int64(oracleRank)) // reversed: lower oracle rank is stronger
			if mineCmp != oracleCmp {
				t.Fatalf("Trial %d: ordering disagrees with oracle (mine %d vs %d, oracle %d vs %d)",
					trial, mine, prevMine, oracleRank, prevOracle)
			}
		}
		prevMine = mine
		prevOracle = oracleRank
	}
}

func compareInts(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
