package launch

import (
	"fmt"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// testRoom builds a deterministic room with the given player names. The
// first name becomes the host (id "p1"), the rest join as "p2", "p3", ...
func testRoom(t *testing.T, names ...string) *Room {
	t.Helper()

	require.NotEmpty(t, names)

	rng := rand.New(rand.NewPCG(1, 2))
	r := NewRoom("ABCDE", "p1", names[0],
		WithRand(rng),
		WithLaunchWindow(50*time.Millisecond),
	)

	for i, name := range names[1:] {
		r.AddPlayer(fmt.Sprintf("p%d", i+2), name)
	}

	return r
}

// startRoom readies everyone with a neutral role and starts the game.
func startRoom(t *testing.T, r *Room) {
	t.Helper()

	for _, p := range r.Players {
		if p.Role == NoRole {
			p.Role = ITSupport
		}
		p.Ready = true
	}

	require.NoError(t, r.Start("p1"))
}

// progressHand replaces a player's hand with n fresh Progress cards.
// Bypasses the deck, so card-conservation checks don't apply afterwards.
func progressHand(p *Player, n int) {
	p.Hand = nil
	for range n {
		p.Hand = append(p.Hand, newProgressCard())
	}
}

func giveCard(p *Player, c *Card) *Card {
	p.Hand = append(p.Hand, c)
	return c
}

func setFaceDownTrap(p *Player, kind TrapKind) *Card {
	trap := newBugCard(kind)
	trap.FaceDown = true
	p.Traps = append(p.Traps, trap)
	return trap
}

// allCardIDs gathers every card id across the room's containers.
func allCardIDs(r *Room) []string {
	var ids []string
	for _, c := range r.deck {
		ids = append(ids, c.ID)
	}
	for _, c := range r.discard {
		ids = append(ids, c.ID)
	}
	for _, p := range r.Players {
		for _, c := range p.Hand {
			ids = append(ids, c.ID)
		}
		for _, c := range p.Traps {
			ids = append(ids, c.ID)
		}
	}
	return ids
}

// requireConserved asserts the single-container invariant and the fixed
// total card count for a dealt room.
func requireConserved(t *testing.T, r *Room) {
	t.Helper()

	ids := allCardIDs(r)
	require.Len(t, ids, DeckSize)

	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		require.False(t, seen[id], "card %s appears in two containers", id)
		seen[id] = true
	}
}
