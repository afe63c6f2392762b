package poker

import "math/rand"

// Deck is a standard 52-card deck. The RNG is injected so hands can be
// replayed deterministically under test.
type Deck struct {
	cards [52]Card
	next  int
	rng   *rand.Rand
}

// NewDeck creates a new deck shuffled with the given RNG.
func NewDeck(rng *rand.Rand) *Deck {
	d := &Deck{rng: rng}
	i := 0
	for suit := uint8(0); suit < 4; suit++ {
		for rank := uint8(0); rank < ranksPerSuit; rank++ {
			d.cards[i] = NewCard(rank, suit)
			i++
		}
	}
	d.Shuffle()
	return d
}

// NewOrderedDeck creates an unshuffled deck. Test helper: the deal order is
// clubs 2..A, diamonds 2..A, hearts 2..A, spades 2..A.
func NewOrderedDeck() *Deck {
	d := &Deck{}
	i := 0
	for suit := uint8(0); suit < 4; suit++ {
		for rank := uint8(0); rank < ranksPerSuit; rank++ {
			d.cards[i] = NewCard(rank, suit)
			i++
		}
	}
	return d
}

// NewStackedDeck creates a deck that deals the given cards first, then the
// remainder of the pack in bit order. Test helper.
func NewStackedDeck(cards ...Card) *Deck {
	d := &Deck{}
	seen := NewHand(cards...)
	i := copy(d.cards[:], cards)
	for suit := uint8(0); suit < 4; suit++ {
		for rank := uint8(0); rank < ranksPerSuit; rank++ {
			c := NewCard(rank, suit)
			if !seen.Contains(c) {
				d.cards[i] = c
				i++
			}
		}
	}
	return d
}

// Shuffle reshuffles the full deck with Fisher-Yates and rewinds it.
func (d *Deck) Shuffle() {
	d.next = 0
	for i := len(d.cards) - 1; i > 0; i-- {
		j := d.rng.Intn(i + 1)
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	}
}

// Deal deals n cards from the top of the deck. Returns nil if the deck has
// fewer than n cards remaining.
func (d *Deck) Deal(n int) []Card {
	if d.next+n > len(d.cards) {
		return nil
	}
	cards := d.cards[d.next : d.next+n]
	d.next += n
	return cards
}

// Burn discards the top card.
func (d *Deck) Burn() {
	if d.next < len(d.cards) {
		d.next++
	}
}

// Remaining returns the number of undealt cards.
func (d *Deck) Remaining() int {
	return len(d.cards) - d.next
}
