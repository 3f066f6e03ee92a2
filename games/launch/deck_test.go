package launch

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDeckComposition(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))
	deck := newDeck(rng)

	require.Len(t, deck, DeckSize)

	byType := make(map[CardType]int)
	actions := make(map[ActionKind]int)
	bugs := make(map[TrapKind]int)
	solutions := make(map[SolutionKind]int)

	for _, c := range deck {
		byType[c.Type]++
		switch c.Type {
		case Action:
			actions[c.Action]++
		case Bug:
			bugs[c.Trap]++
		case Solution:
			solutions[c.Solution]++
		}
	}

	assert.Equal(t, 48, byType[Progress])
	assert.Equal(t, 24, byType[Action])
	assert.Equal(t, 9, byType[Bug])
	assert.Equal(t, 9, byType[Solution])

	for _, kind := range actionKinds {
		assert.Equal(t, 4, actions[kind], "action kind %d", kind)
	}
	for _, kind := range trapKinds {
		assert.Equal(t, 3, bugs[kind], "trap kind %d", kind)
	}
	for _, kind := range solutionKinds {
		assert.Equal(t, 3, solutions[kind], "solution kind %d", kind)
	}
}

func TestNewDeckUniqueIDs(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))
	deck := newDeck(rng)

	seen := make(map[string]bool, len(deck))
	for _, c := range deck {
		require.False(t, seen[c.ID], "duplicate card id %s", c.ID)
		seen[c.ID] = true
	}
}

func TestShufflePreservesCards(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 5))
	deck := newDeck(rng)

	before := make(map[string]bool, len(deck))
	for _, c := range deck {
		before[c.ID] = true
	}

	shuffleCards(rng, deck)

	require.Len(t, deck, DeckSize)
	for _, c := range deck {
		assert.True(t, before[c.ID])
	}
}

func TestDrawReshufflesDiscard(t *testing.T) {
	r := testRoom(t, "alice", "bob")

	r.deck = nil
	r.discard = []*Card{newProgressCard(), newProgressCard(), newProgressCard()}

	drawn := r.draw(2)

	require.Len(t, drawn, 2)
	assert.Len(t, r.deck, 1)
	assert.Empty(t, r.discard)
}

func TestDrawBothEmpty(t *testing.T) {
	r := testRoom(t, "alice", "bob")

	r.deck = nil
	r.discard = nil

	drawn := r.draw(3)

	assert.Empty(t, drawn)
}

func TestDrawPartiallyShort(t *testing.T) {
	r := testRoom(t, "alice", "bob")

	r.deck = []*Card{newProgressCard()}
	r.discard = []*Card{newProgressCard()}

	drawn := r.draw(5)

	assert.Len(t, drawn, 2, "one from deck plus one reshuffled from discard")
}
