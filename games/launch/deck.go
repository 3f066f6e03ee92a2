package launch

import "math/rand/v2"

// Deck composition, tuned for 2-8 players.
const (
	progressCards  = 48
	actionCopies   = 4
	bugCopies      = 3
	solutionCopies = 3

	// DeckSize is the total card count of a freshly built deck.
	DeckSize = progressCards +
		actionCopies*6 +
		bugCopies*3 +
		solutionCopies*3
)

var (
	actionKinds   = []ActionKind{TargetDiscard, GlobalHalve, SelfDraw, GlobalRotate, SelfGain, Steal}
	trapKinds     = []TrapKind{LaunchDiscard, DrawSkip, StealBack}
	solutionKinds = []SolutionKind{CancelBug, CancelAction, CancelDiscard}
)

// newDeck builds and shuffles the full fixed-composition deck.
func newDeck(rng *rand.Rand) []*Card {
	deck := make([]*Card, 0, DeckSize)

	for range progressCards {
		deck = append(deck, newProgressCard())
	}

	for _, kind := range actionKinds {
		for range actionCopies {
			deck = append(deck, newActionCard(kind))
		}
	}

	for _, kind := range trapKinds {
		for range bugCopies {
			deck = append(deck, newBugCard(kind))
		}
	}

	for _, kind := range solutionKinds {
		for range solutionCopies {
			deck = append(deck, newSolutionCard(kind))
		}
	}

	shuffleCards(rng, deck)

	return deck
}

// shuffleCards is a Fisher-Yates shuffle.
func shuffleCards(rng *rand.Rand, cards []*Card) {
	for i := len(cards) - 1; i > 0; i-- {
		j := rng.IntN(i + 1)
		cards[i], cards[j] = cards[j], cards[i]
	}
}

// draw pops up to n cards from the top of the deck. An empty deck is
// replenished by reshuffling the discard pile; if both are empty, fewer
// cards than requested are returned.
func (r *Room) draw(n int) []*Card {
	out := make([]*Card, 0, n)

	for range n {
		if len(r.deck) == 0 {
			if len(r.discard) == 0 {
				break
			}
			r.deck = r.discard
			r.discard = nil
			shuffleCards(r.rng, r.deck)
		}

		last := len(r.deck) - 1
		out = append(out, r.deck[last])
		r.deck = r.deck[:last]
	}

	return out
}
