package launch

import (
	"strings"

	"github.com/google/uuid"
)

// CardType partitions the deck into its four families.
type CardType int

const (
	Progress CardType = iota
	Action
	Bug
	Solution
)

func (t CardType) String() string {
	switch t {
	case Progress:
		return "PROGRESS"
	case Action:
		return "ACTION"
	case Bug:
		return "BUG"
	case Solution:
		return "SOLUTION"
	}
	return "UNKNOWN"
}

// ActionKind identifies the effect of an Action card.
type ActionKind int

const (
	TargetDiscard ActionKind = iota // target discards up to 2 Progress
	GlobalHalve                     // everyone loses half their Progress
	SelfDraw                        // draw 3 cards
	GlobalRotate                    // everyone passes a random card left
	SelfGain                        // gain 2 cards from the deck
	Steal                           // take a random card from a target
)

// TrapKind identifies the trigger condition of a Bug card set as a trap.
type TrapKind int

const (
	LaunchDiscard TrapKind = iota // launcher discards Progress on declaration
	DrawSkip                      // current player's draw is cancelled, turn ends
	StealBack                     // owner steals one back from a thief
)

// SolutionKind identifies the cancel predicate of a Solution card.
type SolutionKind int

const (
	CancelBug     SolutionKind = iota // cancels a bug-class effect on you or global
	CancelAction                      // cancels the last action played by someone else
	CancelDiscard                     // cancels a discard targeting you, draw 1
)

// Card is a single card instance. The template fields (Type, kinds, Name,
// Text) never change after deck build; FaceDown flips when a Bug card is
// placed as a trap and again when the trap is revealed.
type Card struct {
	ID       string
	Type     CardType
	Name     string
	Text     string
	Action   ActionKind   // meaningful only when Type == Action
	Trap     TrapKind     // meaningful only when Type == Bug
	Solution SolutionKind // meaningful only when Type == Solution
	FaceDown bool
}

// NeedsTarget reports whether playing this Action requires a target player.
func (c *Card) NeedsTarget() bool {
	return c.Type == Action && (c.Action == TargetDiscard || c.Action == Steal)
}

// BenefitsSelf reports whether this Action is a self-buff, which the
// Mobile Developer role converts into a bonus draw.
func (c *Card) BenefitsSelf() bool {
	return c.Type == Action && (c.Action == SelfDraw || c.Action == SelfGain || c.Action == Steal)
}

func newCard(t CardType) *Card {
	var prefix string
	switch t {
	case Progress:
		prefix = "PRG"
	case Action:
		prefix = "ACT"
	case Bug:
		prefix = "BUG"
	case Solution:
		prefix = "SOL"
	}

	return &Card{
		ID:   prefix + "-" + strings.SplitN(uuid.NewString(), "-", 2)[0],
		Type: t,
	}
}

func newProgressCard() *Card {
	c := newCard(Progress)
	c.Name = "Project Progress"
	c.Text = "A step closer to launch."
	return c
}

func newActionCard(kind ActionKind) *Card {
	c := newCard(Action)
	c.Action = kind

	switch kind {
	case TargetDiscard:
		c.Name = "Client Changed Their Mind"
		c.Text = "Choose a player; they discard 2 Progress if possible."
	case GlobalHalve:
		c.Name = "Server Down"
		c.Text = "All players discard half their Progress (rounded down)."
	case SelfDraw:
		c.Name = "Clear Requirements"
		c.Text = "Draw 3 cards."
	case GlobalRotate:
		c.Name = "Agile Rotation"
		c.Text = "Everyone passes a random card to the left."
	case SelfGain:
		c.Name = "Partner Support"
		c.Text = "Gain 2 cards from the deck."
	case Steal:
		c.Name = "Take One Card"
		c.Text = "Steal 1 random card from a player."
	}

	return c
}

func newBugCard(kind TrapKind) *Card {
	c := newCard(Bug)
	c.Trap = kind

	switch kind {
	case LaunchDiscard:
		c.Name = "Failed QA"
		c.Text = "Trap: when someone declares Launch, they discard 3 Progress."
	case DrawSkip:
		c.Name = "Deadline Moved Up"
		c.Text = "Trap: when someone draws, they skip the draw and end their turn."
	case StealBack:
		c.Name = "Security Vulnerability"
		c.Text = "Trap: if someone steals from you, you steal 1 back."
	}

	return c
}

func newSolutionCard(kind SolutionKind) *Card {
	c := newCard(Solution)
	c.Solution = kind

	switch kind {
	case CancelBug:
		c.Name = "IT Support Arrives"
		c.Text = "Cancel a Bug effect (including global)."
	case CancelAction:
		c.Name = "Stack Overflow Answer"
		c.Text = "Cancel the last Action played by someone else."
	case CancelDiscard:
		c.Name = "Funding Guarantee"
		c.Text = "If an effect makes you discard, cancel it and draw 1."
	}

	return c
}
