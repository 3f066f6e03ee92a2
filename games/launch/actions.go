package launch

// PlayCard is the current player's card-play turn action. Bug cards with
// asTrap set go face-down into the trap zone; Action cards resolve
// immediately and move to discard. Progress and Solution cards cannot be
// played this way.
func (r *Room) PlayCard(playerID, cardID, targetID string, asTrap bool) error {
	if !r.Started {
		return ErrNotStarted
	}

	cp := r.CurrentPlayer()
	if cp == nil || cp.ID != playerID {
		return ErrNotCurrentPlayer
	}

	card := cp.findCard(cardID)
	if card == nil {
		return ErrCardNotInHand
	}

	switch card.Type {
	case Bug:
		if !asTrap {
			return ErrWrongCardType
		}
		r.setTrap(cp, card)
		r.log("%s set a face-down trap.", cp.Name)
		r.nextTurn()
		return nil

	case Solution:
		return ErrWrongCardType

	case Progress:
		return ErrWrongCardType

	case Action:
		var target *Player
		if card.NeedsTarget() {
			if targetID == "" || targetID == cp.ID {
				return ErrInvalidTarget
			}
			target = r.Player(targetID)
			if target == nil {
				return ErrInvalidTarget
			}
		}

		r.applyAction(cp, card, target)

		cp.removeCard(card.ID)
		r.discard = append(r.discard, card)

		// Mobile Developer bonus: one extra draw per turn after a
		// self-buff action.
		if cp.Role == MobileDev && card.BenefitsSelf() && !cp.bonusUsed {
			if drawn := r.draw(1); len(drawn) > 0 {
				cp.Hand = append(cp.Hand, drawn...)
				r.log("%s (%s) gains +1 draw from a self-buff action.", cp.Name, cp.Role.DisplayName())
			}
			cp.bonusUsed = true
		}

		r.settleHandLimits()

		r.nextTurn()
		return nil
	}

	return ErrWrongCardType
}

func (r *Room) applyAction(cp *Player, card *Card, target *Player) {
	r.pushEffect(Effect{
		Kind:     EffectAction,
		ActorID:  cp.ID,
		CardName: card.Name,
	})

	switch card.Action {
	case TargetDiscard:
		r.pushEffect(Effect{
			Kind:     EffectDiscard,
			ActorID:  cp.ID,
			TargetID: target.ID,
			CardName: card.Name,
		})
		r.discardProgress(target, 2)
		r.log("%s played %q — %s discards up to 2 Progress.", cp.Name, card.Name, target.Name)

	case GlobalHalve:
		// Tagged as a bug-class effect so the bug-cancelling
		// Solution can answer it.
		r.pushEffect(Effect{
			Kind:     EffectBug,
			ActorID:  cp.ID,
			CardName: card.Name,
		})
		for _, p := range r.Players {
			r.discardProgress(p, p.ProgressCount()/2)
		}
		r.log("%s played %q — everyone loses half their Progress.", cp.Name, card.Name)

	case SelfDraw:
		cp.Hand = append(cp.Hand, r.draw(3)...)
		r.log("%s drew 3 cards via %q.", cp.Name, card.Name)

	case GlobalRotate:
		r.rotateHands()
		r.log("%s played %q — everyone passed 1 random card left.", cp.Name, card.Name)

	case SelfGain:
		gained := r.draw(2)
		cp.Hand = append(cp.Hand, gained...)
		r.log("%s gained %d card(s) from partner support.", cp.Name, len(gained))

	case Steal:
		stolen := target.passRandomCard(r.rng, cp)
		what := "nothing (no cards)"
		if stolen != nil {
			what = "1 card"
		}
		r.log("%s stole %s from %s.", cp.Name, what, target.Name)
		r.triggerStealBackTraps(target, cp)
	}
}

// rotateHands passes one random card from each player to the next in turn
// order, as a single synchronized round: every outgoing pick is made before
// any incoming card lands, so nobody passes on a card they just received.
func (r *Room) rotateHands() {
	n := len(r.Players)
	if n < 2 {
		return
	}

	outgoing := make([]*Card, n)
	for i, p := range r.Players {
		if card := p.randomCard(r.rng); card != nil {
			p.removeCard(card.ID)
			outgoing[i] = card
		}
	}

	for i, card := range outgoing {
		if card == nil {
			continue
		}
		to := r.Players[(i+1)%n]
		to.Hand = append(to.Hand, card)
	}
}

// PoSwap is the Product Owner's start-of-turn ability: exchange one
// uniformly-random card with a chosen player. Tolerates empty hands on
// either side.
func (r *Room) PoSwap(playerID, targetID string) error {
	if !r.Started {
		return ErrNotStarted
	}

	cp := r.CurrentPlayer()
	if cp == nil || cp.ID != playerID {
		return ErrNotCurrentPlayer
	}
	if cp.Role != ProductOwner {
		return ErrRoleMismatch
	}

	if targetID == "" || targetID == cp.ID {
		return ErrInvalidTarget
	}
	target := r.Player(targetID)
	if target == nil {
		return ErrInvalidTarget
	}

	mine := cp.randomCard(r.rng)
	theirs := target.randomCard(r.rng)

	if mine != nil {
		cp.removeCard(mine.ID)
		target.Hand = append(target.Hand, mine)
	}
	if theirs != nil {
		target.removeCard(theirs.ID)
		cp.Hand = append(cp.Hand, theirs)
	}

	r.log("%s (%s) swapped a random card with %s.", cp.Name, cp.Role.DisplayName(), target.Name)

	return nil
}

// Challenge is the QA ability: during another player's turn, reveal one
// uniformly-random card from their hand; if it is a Bug, it is discarded.
// Once per round per challenger.
func (r *Room) Challenge(playerID, targetID string) error {
	if !r.Started {
		return ErrNotStarted
	}

	challenger := r.Player(playerID)
	if challenger == nil {
		return ErrPlayerNotFound
	}
	if challenger.Role != QA {
		return ErrRoleMismatch
	}

	if targetID == "" || targetID == playerID {
		return ErrInvalidTarget
	}
	target := r.Player(targetID)
	if target == nil {
		return ErrInvalidTarget
	}

	cp := r.CurrentPlayer()
	if cp == nil || cp.ID != target.ID {
		return ErrNotCurrentPlayer
	}

	if challenger.challengeUsed {
		return ErrAbilityExhausted
	}
	challenger.challengeUsed = true

	revealed := target.randomCard(r.rng)
	if revealed == nil {
		r.log("%s (%s) challenged %s, but they had no cards.", challenger.Name, challenger.Role.DisplayName(), target.Name)
		return nil
	}

	r.log("%s (%s) revealed a card from %s: %q.", challenger.Name, challenger.Role.DisplayName(), target.Name, revealed.Name)

	if revealed.Type == Bug {
		target.removeCard(revealed.ID)
		r.discard = append(r.discard, revealed)
		r.log("It was a Bug — discarded!")
	}

	return nil
}
