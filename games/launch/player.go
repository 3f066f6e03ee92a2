package launch

import "math/rand/v2"

// Player holds the data we store server-side for one room member.
type Player struct {
	ID    string
	Name  string
	Role  Role
	Hand  []*Card
	Traps []*Card
	Ready bool

	// Ability-usage flags. bonusUsed clears on every turn advance,
	// challengeUsed once per full cycle of turns.
	bonusUsed     bool
	challengeUsed bool
}

func newPlayer(id, name string) *Player {
	if name == "" {
		name = "Player"
	}
	return &Player{
		ID:   id,
		Name: name,
	}
}

// ProgressCount counts the Progress cards in the player's hand.
func (p *Player) ProgressCount() int {
	n := 0
	for _, c := range p.Hand {
		if c.Type == Progress {
			n++
		}
	}
	return n
}

func (p *Player) findCard(cardID string) *Card {
	for _, c := range p.Hand {
		if c.ID == cardID {
			return c
		}
	}
	return nil
}

// removeCard takes the card with the given id out of the hand. Returns nil
// if the card is not held.
func (p *Player) removeCard(cardID string) *Card {
	for i, c := range p.Hand {
		if c.ID == cardID {
			p.Hand = append(p.Hand[:i], p.Hand[i+1:]...)
			return c
		}
	}
	return nil
}

// randomCard picks a uniformly-random card from the hand without removing it.
func (p *Player) randomCard(rng *rand.Rand) *Card {
	if len(p.Hand) == 0 {
		return nil
	}
	return p.Hand[rng.IntN(len(p.Hand))]
}

// passRandomCard moves one uniformly-random card from p's hand to another
// player's hand. Returns the moved card, or nil if p's hand was empty.
func (p *Player) passRandomCard(rng *rand.Rand, to *Player) *Card {
	card := p.randomCard(rng)
	if card == nil {
		return nil
	}
	p.removeCard(card.ID)
	to.Hand = append(to.Hand, card)
	return card
}
