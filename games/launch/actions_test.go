package launch

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlayCardValidation(t *testing.T) {
	r := testRoom(t, "alice", "bob")
	startRoom(t, r)

	alice := r.Player("p1")

	assert.ErrorIs(t, r.PlayCard("p2", "whatever", "", false), ErrNotCurrentPlayer)
	assert.ErrorIs(t, r.PlayCard("p1", "missing-card", "", false), ErrCardNotInHand)

	progress := giveCard(alice, newProgressCard())
	assert.ErrorIs(t, r.PlayCard("p1", progress.ID, "", false), ErrWrongCardType)

	solution := giveCard(alice, newSolutionCard(CancelBug))
	assert.ErrorIs(t, r.PlayCard("p1", solution.ID, "", false), ErrWrongCardType)

	bug := giveCard(alice, newBugCard(DrawSkip))
	assert.ErrorIs(t, r.PlayCard("p1", bug.ID, "", false), ErrWrongCardType)

	steal := giveCard(alice, newActionCard(Steal))
	assert.ErrorIs(t, r.PlayCard("p1", steal.ID, "", false), ErrInvalidTarget)
	assert.ErrorIs(t, r.PlayCard("p1", steal.ID, "p1", false), ErrInvalidTarget)
	assert.ErrorIs(t, r.PlayCard("p1", steal.ID, "ghost", false), ErrInvalidTarget)

	assert.Equal(t, "p1", r.CurrentPlayer().ID, "failed plays don't consume the turn")
}

func TestSetTrapOnTurn(t *testing.T) {
	r := testRoom(t, "alice", "bob")
	startRoom(t, r)

	alice := r.Player("p1")
	bug := giveCard(alice, newBugCard(LaunchDiscard))

	require.NoError(t, r.PlayCard("p1", bug.ID, "", true))

	require.Len(t, alice.Traps, 1)
	assert.True(t, alice.Traps[0].FaceDown)
	assert.Nil(t, alice.findCard(bug.ID))
	assert.Equal(t, "p2", r.CurrentPlayer().ID, "setting a trap consumes the turn")
}

func TestTargetDiscardAction(t *testing.T) {
	r := testRoom(t, "alice", "bob")
	startRoom(t, r)

	alice := r.Player("p1")
	bob := r.Player("p2")

	progressHand(bob, 3)
	card := giveCard(alice, newActionCard(TargetDiscard))

	require.NoError(t, r.PlayCard("p1", card.ID, "p2", false))

	assert.Equal(t, 1, bob.ProgressCount())
	assert.Contains(t, r.discard, card)

	// The pending discard is on the stack for the counter Solution.
	effects := r.Effects()
	require.NotEmpty(t, effects)
	last := effects[len(effects)-1]
	assert.Equal(t, EffectDiscard, last.Kind)
	assert.Equal(t, "p2", last.TargetID)
}

func TestTargetDiscardFewerAvailable(t *testing.T) {
	r := testRoom(t, "alice", "bob")
	startRoom(t, r)

	bob := r.Player("p2")
	progressHand(bob, 1)
	card := giveCard(r.Player("p1"), newActionCard(TargetDiscard))

	require.NoError(t, r.PlayCard("p1", card.ID, "p2", false))

	assert.Zero(t, bob.ProgressCount())
}

func TestGlobalHalveAction(t *testing.T) {
	r := testRoom(t, "alice", "bob", "carol")
	startRoom(t, r)

	progressHand(r.Player("p1"), 5)
	progressHand(r.Player("p2"), 4)
	progressHand(r.Player("p3"), 1)

	card := giveCard(r.Player("p1"), newActionCard(GlobalHalve))
	require.NoError(t, r.PlayCard("p1", card.ID, "", false))

	assert.Equal(t, 3, r.Player("p1").ProgressCount())
	assert.Equal(t, 2, r.Player("p2").ProgressCount())
	assert.Equal(t, 1, r.Player("p3").ProgressCount(), "floor(1/2) == 0 lost")

	// Tagged bug-class on the stack.
	var kinds []EffectKind
	for _, e := range r.Effects() {
		kinds = append(kinds, e.Kind)
	}
	assert.Contains(t, kinds, EffectBug)
}

func TestSelfDrawAction(t *testing.T) {
	r := testRoom(t, "alice", "bob")
	startRoom(t, r)

	alice := r.Player("p1")
	card := giveCard(alice, newActionCard(SelfDraw))
	before := len(alice.Hand)

	require.NoError(t, r.PlayCard("p1", card.ID, "", false))

	// Played card leaves the hand, three arrive.
	assert.Len(t, alice.Hand, before-1+3)
}

func TestSelfGainAction(t *testing.T) {
	r := testRoom(t, "alice", "bob")
	startRoom(t, r)

	alice := r.Player("p1")
	card := giveCard(alice, newActionCard(SelfGain))
	before := len(alice.Hand)

	require.NoError(t, r.PlayCard("p1", card.ID, "", false))

	assert.Len(t, alice.Hand, before-1+2)
}

func TestGlobalRotateSynchronized(t *testing.T) {
	r := testRoom(t, "alice", "bob", "carol")
	startRoom(t, r)

	// One distinct card each, so every pass is forced.
	a := r.Player("p1")
	b := r.Player("p2")
	c := r.Player("p3")

	a.Hand = []*Card{newProgressCard()}
	b.Hand = []*Card{newBugCard(DrawSkip)}
	c.Hand = []*Card{newSolutionCard(CancelBug)}

	aCard, bCard, cCard := a.Hand[0], b.Hand[0], c.Hand[0]

	r.rotateHands()

	// Each hand holds exactly its predecessor's card: nobody passes on
	// a card received in the same round.
	require.Len(t, a.Hand, 1)
	require.Len(t, b.Hand, 1)
	require.Len(t, c.Hand, 1)
	assert.Equal(t, cCard.ID, a.Hand[0].ID)
	assert.Equal(t, aCard.ID, b.Hand[0].ID)
	assert.Equal(t, bCard.ID, c.Hand[0].ID)
}

func TestGlobalRotateEmptyHand(t *testing.T) {
	r := testRoom(t, "alice", "bob")
	startRoom(t, r)

	r.Player("p1").Hand = []*Card{newProgressCard()}
	r.Player("p2").Hand = nil

	r.rotateHands()

	assert.Empty(t, r.Player("p1").Hand)
	assert.Len(t, r.Player("p2").Hand, 1)
}

func TestStealTriggersStealBackTrap(t *testing.T) {
	r := testRoom(t, "alice", "bob")
	startRoom(t, r)

	alice := r.Player("p1")
	bob := r.Player("p2")
	trap := setFaceDownTrap(bob, StealBack)

	card := giveCard(alice, newActionCard(Steal))
	aliceBefore := len(alice.Hand) - 1 // minus the action card itself
	bobBefore := len(bob.Hand)

	require.NoError(t, r.PlayCard("p1", card.ID, "p2", false))

	// One card each direction: the thief nets zero.
	assert.Len(t, alice.Hand, aliceBefore)
	assert.Len(t, bob.Hand, bobBefore)
	assert.Empty(t, bob.Traps)
	assert.False(t, trap.FaceDown)
	assert.Contains(t, r.discard, trap)
}

func TestMobileDevBonusDraw(t *testing.T) {
	r := testRoom(t, "alice", "bob")
	r.Player("p1").Role = MobileDev
	startRoom(t, r)

	alice := r.Player("p1")
	card := giveCard(alice, newActionCard(SelfDraw))
	before := len(alice.Hand)

	require.NoError(t, r.PlayCard("p1", card.ID, "", false))

	// -1 played, +3 drawn, +1 role bonus.
	assert.Len(t, alice.Hand, before+3)

	// The flag was set during resolution and cleared again by the turn
	// advance at the end of PlayCard.
	assert.False(t, alice.bonusUsed)
}

func TestMobileDevBonusNotForDisruptions(t *testing.T) {
	r := testRoom(t, "alice", "bob")
	r.Player("p1").Role = MobileDev
	startRoom(t, r)

	alice := r.Player("p1")
	bob := r.Player("p2")
	progressHand(bob, 2)

	card := giveCard(alice, newActionCard(TargetDiscard))
	before := len(alice.Hand)

	require.NoError(t, r.PlayCard("p1", card.ID, "p2", false))

	assert.Len(t, alice.Hand, before-1, "no bonus for a non-self-buff")
}

func TestPoSwap(t *testing.T) {
	r := testRoom(t, "alice", "bob")
	r.Player("p1").Role = ProductOwner
	startRoom(t, r)

	assert.ErrorIs(t, r.PoSwap("p2", "p1"), ErrNotCurrentPlayer)
	assert.ErrorIs(t, r.PoSwap("p1", "p1"), ErrInvalidTarget)
	assert.ErrorIs(t, r.PoSwap("p1", "ghost"), ErrInvalidTarget)

	alice := r.Player("p1")
	bob := r.Player("p2")
	aliceBefore := len(alice.Hand)
	bobBefore := len(bob.Hand)

	require.NoError(t, r.PoSwap("p1", "p2"))

	assert.Len(t, alice.Hand, aliceBefore, "one out, one in")
	assert.Len(t, bob.Hand, bobBefore)

	requireConserved(t, r)
}

func TestPoSwapRoleGated(t *testing.T) {
	r := testRoom(t, "alice", "bob")
	startRoom(t, r)

	assert.ErrorIs(t, r.PoSwap("p1", "p2"), ErrRoleMismatch)
}

func TestChallenge(t *testing.T) {
	r := testRoom(t, "alice", "bob")
	r.Player("p2").Role = QA
	startRoom(t, r)

	// Current player is p1, so p2 may challenge them.
	assert.ErrorIs(t, r.Challenge("p1", "p2"), ErrRoleMismatch)
	assert.ErrorIs(t, r.Challenge("p2", "p2"), ErrInvalidTarget)

	// Challenging someone whose turn it is not.
	r.Player("p1").Role = QA
	assert.ErrorIs(t, r.Challenge("p1", "p2"), ErrNotCurrentPlayer)

	alice := r.Player("p1")
	alice.Hand = []*Card{newBugCard(DrawSkip)}

	require.NoError(t, r.Challenge("p2", "p1"))

	assert.Empty(t, alice.Hand, "revealed Bug is discarded")
	assert.ErrorIs(t, r.Challenge("p2", "p1"), ErrAbilityExhausted)
}

func TestChallengeNonBugStays(t *testing.T) {
	r := testRoom(t, "alice", "bob")
	r.Player("p2").Role = QA
	startRoom(t, r)

	alice := r.Player("p1")
	alice.Hand = []*Card{newProgressCard()}

	require.NoError(t, r.Challenge("p2", "p1"))

	assert.Len(t, alice.Hand, 1, "non-Bug cards are only revealed")
}
