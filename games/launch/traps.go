package launch

// launchTrapDiscard is how many Progress cards each LaunchDiscard trap
// strips from a declaring player.
const launchTrapDiscard = 3

// revealTrap flips a face-down trap and moves it from its owner's trap zone
// to the discard pile.
func (r *Room) revealTrap(owner *Player, idx int) *Card {
	trap := owner.Traps[idx]
	owner.Traps = append(owner.Traps[:idx], owner.Traps[idx+1:]...)
	trap.FaceDown = false
	r.discard = append(r.discard, trap)
	return trap
}

// triggerDrawTraps fires the first face-down DrawSkip trap in the room, if
// any. Owners are scanned in player-registration order; that is a tie-break
// policy, not a gameplay rule.
func (r *Room) triggerDrawTraps(drawing *Player) bool {
	for _, owner := range r.Players {
		for i, t := range owner.Traps {
			if t.Trap != DrawSkip || !t.FaceDown {
				continue
			}
			trap := r.revealTrap(owner, i)
			r.log("TRAP! %s flipped %q — %s skips the draw and their turn ends.", owner.Name, trap.Name, drawing.Name)
			return true
		}
	}
	return false
}

// triggerLaunchTraps fires every face-down LaunchDiscard trap across all
// owners, each stripping up to launchTrapDiscard Progress cards from the
// launcher. Earlier traps reduce what is left for later ones. Returns the
// total number of Progress cards discarded.
func (r *Room) triggerLaunchTraps(launcher *Player) int {
	total := 0

	for _, owner := range r.Players {
		for i := 0; i < len(owner.Traps); {
			t := owner.Traps[i]
			if t.Trap != LaunchDiscard || !t.FaceDown {
				i++
				continue
			}
			trap := r.revealTrap(owner, i)
			total += r.discardProgress(launcher, launchTrapDiscard)
			r.log("TRAP! %s flipped %q — %s loses up to %d Progress.", owner.Name, trap.Name, launcher.Name, launchTrapDiscard)
		}
	}

	return total
}

// triggerStealBackTraps fires the victim's face-down StealBack trap after a
// steal, transferring one random card from the thief back to the victim.
func (r *Room) triggerStealBackTraps(victim, thief *Player) bool {
	for i, t := range victim.Traps {
		if t.Trap != StealBack || !t.FaceDown {
			continue
		}
		trap := r.revealTrap(victim, i)
		stolen := thief.passRandomCard(r.rng, victim)
		what := "nothing (no cards)"
		if stolen != nil {
			what = "1 card"
		}
		r.log("TRAP! %s flipped %q and stole back %s from %s.", victim.Name, trap.Name, what, thief.Name)
		return true
	}
	return false
}

// setTrap moves a Bug card from a player's hand to their trap zone,
// face-down. Callers have already validated the card type.
func (r *Room) setTrap(p *Player, card *Card) {
	p.removeCard(card.ID)
	card.FaceDown = true
	p.Traps = append(p.Traps, card)
}
