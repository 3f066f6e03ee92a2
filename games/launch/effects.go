package launch

import "time"

// maxEffects bounds the per-room effect stack; oldest entries are evicted.
const maxEffects = 50

// EffectKind tags an effect-stack entry for Solution cancel predicates.
type EffectKind int

const (
	EffectAction EffectKind = iota
	EffectBug
	EffectDiscard
)

// Effect is one entry on the room's recent-effects stack. Cancellation
// removes the entry but does not rewind card movement that already
// happened; only the discard-prevention Solution has a material effect.
type Effect struct {
	Kind     EffectKind
	ActorID  string
	TargetID string
	CardName string
	At       time.Time
}

func (r *Room) pushEffect(e Effect) {
	e.At = time.Now()
	r.effects = append(r.effects, e)
	if len(r.effects) > maxEffects {
		r.effects = r.effects[len(r.effects)-maxEffects:]
	}
}

// popEffect removes and returns the most recent effect matching the
// predicate, scanning newest to oldest.
func (r *Room) popEffect(match func(Effect) bool) (Effect, bool) {
	for i := len(r.effects) - 1; i >= 0; i-- {
		e := r.effects[i]
		if !match(e) {
			continue
		}
		r.effects = append(r.effects[:i], r.effects[i+1:]...)
		return e, true
	}
	return Effect{}, false
}

// React plays a card outside the normal turn flow. Bug cards go face-down
// into the reactor's trap zone; Solution cards consume a matching entry
// from the effect stack and move to discard. Reactions never advance the
// turn.
func (r *Room) React(playerID, cardID string) error {
	if !r.Started {
		return ErrNotStarted
	}

	p := r.Player(playerID)
	if p == nil {
		return ErrPlayerNotFound
	}

	card := p.findCard(cardID)
	if card == nil {
		return ErrCardNotInHand
	}

	switch card.Type {
	case Bug:
		r.setTrap(p, card)
		r.log("%s set a face-down trap during the reaction window.", p.Name)
		return nil

	case Solution:
		r.applySolution(p, card)
		p.removeCard(card.ID)
		r.discard = append(r.discard, card)
		r.settleHandLimits()
		return nil
	}

	return ErrWrongCardType
}

func (r *Room) applySolution(p *Player, card *Card) {
	switch card.Solution {
	case CancelBug:
		e, ok := r.popEffect(func(e Effect) bool {
			return e.Kind == EffectBug && (e.TargetID == "" || e.TargetID == p.ID)
		})
		if ok {
			r.log("%s canceled a Bug effect (%s).", p.Name, e.CardName)
		} else {
			r.log("%s tried to cancel a Bug, but nothing relevant was on the stack.", p.Name)
		}

	case CancelAction:
		e, ok := r.popEffect(func(e Effect) bool {
			return e.Kind == EffectAction && e.ActorID != p.ID
		})
		if ok {
			// State already changed by the action stays changed;
			// the cancellation is narrative.
			r.log("%s canceled an Action effect (%s)!", p.Name, e.CardName)
		} else {
			r.log("%s tried to cancel an Action, but nothing to cancel.", p.Name)
		}

	case CancelDiscard:
		_, ok := r.popEffect(func(e Effect) bool {
			return e.Kind == EffectDiscard && e.TargetID == p.ID
		})
		if ok {
			r.log("%s prevented a discard and draws 1 card.", p.Name)
			p.Hand = append(p.Hand, r.draw(1)...)
		} else {
			r.log("%s tried to prevent a discard, but no pending discard on the stack.", p.Name)
		}
	}
}

// Effects returns the current effect stack, oldest first. Exposed for
// tests and debugging.
func (r *Room) Effects() []Effect {
	return r.effects
}
