package poker

import (
	"fmt"
	"math/bits"
	"strings"
)

// Card is a single card represented as one bit in a uint64.
// Layout, low to high: [13 clubs][13 diamonds][13 hearts][13 spades].
type Card uint64

// Hand is a set of cards: the union of their bits.
type Hand uint64

// Suit constants.
const (
	Clubs    uint8 = 0
	Diamonds uint8 = 1
	Hearts   uint8 = 2
	Spades   uint8 = 3
)

// Rank constants (0-12 for deuce through ace).
const (
	Two   uint8 = 0
	Three uint8 = 1
	Four  uint8 = 2
	Five  uint8 = 3
	Six   uint8 = 4
	Seven uint8 = 5
	Eight uint8 = 6
	Nine  uint8 = 7
	Ten   uint8 = 8
	Jack  uint8 = 9
	Queen uint8 = 10
	King  uint8 = 11
	Ace   uint8 = 12
)

const (
	ranksPerSuit = 13
	rankMask     = 0x1FFF
)

// NewCard creates a card from rank and suit.
func NewCard(rank, suit uint8) Card {
	return Card(1) << (suit*ranksPerSuit + rank)
}

// Rank returns the rank of the card (0-12), or 255 for the zero Card.
func (c Card) Rank() uint8 {
	if c == 0 {
		return 255
	}
	return uint8(bits.TrailingZeros64(uint64(c))) % ranksPerSuit
}

// Suit returns the suit of the card (0-3), or 255 for the zero Card.
func (c Card) Suit() uint8 {
	if c == 0 {
		return 255
	}
	return uint8(bits.TrailingZeros64(uint64(c))) / ranksPerSuit
}

// String returns the two-character representation, e.g. "As" or "Td".
func (c Card) String() string {
	rank := c.Rank()
	suit := c.Suit()
	if rank > 12 || suit > 3 {
		return "??"
	}
	return string(rankChars[rank]) + string(suitChars[suit])
}

const (
	rankChars = "23456789TJQKA"
	suitChars = "cdhs"
)

// ParseCard parses a two-character string like "As" or "td" into a Card.
func ParseCard(s string) (Card, error) {
	if len(s) != 2 {
		return 0, fmt.Errorf("invalid card %q", s)
	}
	r := s[0]
	if r >= 'a' && r <= 'z' {
		r -= 'a' - 'A'
	}
	rank := strings.IndexByte(rankChars, r)
	if rank < 0 {
		return 0, fmt.Errorf("invalid rank %q", s[0])
	}
	suit := strings.IndexByte(suitChars, s[1]|0x20) // lowercase suit
	if suit < 0 {
		return 0, fmt.Errorf("invalid suit %q", s[1])
	}
	return NewCard(uint8(rank), uint8(suit)), nil
}

// MustParseCard parses a card string and panics on failure. Test helper.
func MustParseCard(s string) Card {
	c, err := ParseCard(s)
	if err != nil {
		panic(err)
	}
	return c
}

// NewHand creates a hand from the given cards.
func NewHand(cards ...Card) Hand {
	var h Hand
	for _, c := range cards {
		h |= Hand(c)
	}
	return h
}

// ParseHand parses a space-separated card list like "As Kd 7c".
func ParseHand(s string) (Hand, error) {
	var h Hand
	for _, field := range strings.Fields(s) {
		c, err := ParseCard(field)
		if err != nil {
			return 0, err
		}
		h |= Hand(c)
	}
	return h, nil
}

// Add adds a card to the hand.
func (h *Hand) Add(c Card) {
	*h |= Hand(c)
}

// Contains reports whether the hand holds the given card.
func (h Hand) Contains(c Card) bool {
	return h&Hand(c) != 0
}

// Count returns the number of cards in the hand.
func (h Hand) Count() int {
	return bits.OnesCount64(uint64(h))
}

// Cards returns the cards in the hand in bit order (clubs low, spades high).
func (h Hand) Cards() []Card {
	cards := make([]Card, 0, h.Count())
	for rest := uint64(h); rest != 0; rest &= rest - 1 {
		cards = append(cards, Card(rest&-rest))
	}
	return cards
}

// Strings returns the cards as their two-character representations.
func (h Hand) Strings() []string {
	cards := h.Cards()
	out := make([]string, len(cards))
	for i, c := range cards {
		out[i] = c.String()
	}
	return out
}

// SuitMask returns the ranks present in the given suit as a 13-bit mask.
func (h Hand) SuitMask(suit uint8) uint16 {
	return uint16((h >> (suit * ranksPerSuit)) & rankMask)
}

// RankMask returns a 13-bit mask of which ranks are present in any suit.
func (h Hand) RankMask() uint16 {
	var mask uint16
	for suit := uint8(0); suit < 4; suit++ {
		mask |= h.SuitMask(suit)
	}
	return mask
}

func (h Hand) String() string {
	return strings.Join(h.Strings(), " ")
}
