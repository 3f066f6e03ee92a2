package launch

import (
	crand "crypto/rand"
	"fmt"
	"math/rand/v2"
	"time"
)

const (
	// CodeLength is the length of a room code.
	CodeLength = 5

	// codeAlphabet excludes easily-confused glyphs (0/O, 1/I).
	codeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

	maxLogEntries = 200

	initialHandSize = 3

	winningProgress = 10

	// DefaultLaunchWindow is how long a launch declaration stays open
	// to reactions before it resolves.
	DefaultLaunchWindow = 15 * time.Second
)

// NewCode generates a human-typeable room code using crypto/rand with
// rejection sampling, so every code is equally likely. Uniqueness across
// live rooms is the caller's responsibility.
func NewCode() string {
	out := make([]byte, CodeLength)
	buf := make([]byte, 1)

	for i := 0; i < CodeLength; {
		if _, err := crand.Read(buf); err != nil {
			panic("crypto/rand failure: " + err.Error())
		}
		if int(buf[0]) >= 256-256%len(codeAlphabet) {
			continue
		}
		out[i] = codeAlphabet[int(buf[0])%len(codeAlphabet)]
		i++
	}

	return string(out)
}

// launchPending records an open launch declaration and its deadline.
type launchPending struct {
	playerID string
	endsAt   time.Time
}

// Room is the canonical state of one game. All methods must be called from
// a single goroutine or under external serialization; the engine does no
// locking of its own.
type Room struct {
	Code      string
	CreatedAt time.Time
	HostID    string
	Players   []*Player
	Started   bool

	deck    []*Card
	discard []*Card
	turn    int
	pending *launchPending
	logs    []string
	effects []Effect
	rng     *rand.Rand
	window  time.Duration
}

// RoomOption adjusts room construction, mainly for tests.
type RoomOption func(*Room)

// WithRand replaces the room's randomness source.
func WithRand(rng *rand.Rand) RoomOption {
	return func(r *Room) {
		r.rng = rng
	}
}

// WithLaunchWindow overrides the reaction window duration.
func WithLaunchWindow(d time.Duration) RoomOption {
	return func(r *Room) {
		r.window = d
	}
}

// NewRoom creates a room with the given code and registers the host as its
// first player.
func NewRoom(code, hostID, hostName string, opts ...RoomOption) *Room {
	r := &Room{
		Code:      code,
		CreatedAt: time.Now(),
		HostID:    hostID,
		rng:       rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
		window:    DefaultLaunchWindow,
	}

	for _, opt := range opts {
		opt(r)
	}

	if hostName == "" {
		hostName = "Host"
	}
	r.Players = append(r.Players, newPlayer(hostID, hostName))

	return r
}

// AddPlayer appends a new player with default state.
func (r *Room) AddPlayer(id, name string) *Player {
	p := newPlayer(id, name)
	r.Players = append(r.Players, p)
	return p
}

// RemovePlayer drops a player from the room, returning their hand and traps
// to the discard pile. The turn pointer stays where it is; CurrentPlayer
// resolves it modulo the shrunk player count.
func (r *Room) RemovePlayer(id string) {
	for i, p := range r.Players {
		if p.ID != id {
			continue
		}
		r.discard = append(r.discard, p.Hand...)
		r.discard = append(r.discard, p.Traps...)
		r.Players = append(r.Players[:i], r.Players[i+1:]...)
		return
	}
}

// Empty reports whether the room has no players left.
func (r *Room) Empty() bool {
	return len(r.Players) == 0
}

// Player looks up a member by id.
func (r *Room) Player(id string) *Player {
	for _, p := range r.Players {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// ChooseRole sets a player's role. Last write wins; duplicate roles across
// players are allowed. Roles are frozen once the game starts.
func (r *Room) ChooseRole(playerID string, role Role) error {
	if r.Started {
		return ErrAlreadyStarted
	}

	p := r.Player(playerID)
	if p == nil {
		return ErrPlayerNotFound
	}
	if role == NoRole {
		return ErrUnknownRole
	}

	p.Role = role

	return nil
}

// SetReady flips a player's readiness flag. Frozen once the game starts.
func (r *Room) SetReady(playerID string, ready bool) error {
	if r.Started {
		return ErrAlreadyStarted
	}

	p := r.Player(playerID)
	if p == nil {
		return ErrPlayerNotFound
	}

	p.Ready = ready

	return nil
}

// Start begins the game: builds and deals the deck, resets the turn pointer,
// and seeds the log. Host-only.
func (r *Room) Start(initiatorID string) error {
	if r.Started {
		return ErrAlreadyStarted
	}
	if initiatorID != r.HostID {
		return ErrNotHost
	}
	if len(r.Players) < 2 {
		return ErrInsufficientPlayers
	}
	for _, p := range r.Players {
		if p.Role == NoRole || !p.Ready {
			return ErrNotAllReady
		}
	}

	r.Started = true
	r.turn = 0
	r.logs = nil
	r.deck = newDeck(r.rng)
	r.discard = nil

	for _, p := range r.Players {
		p.Hand = append(p.Hand, r.draw(initialHandSize)...)
	}

	r.log("Game started!")

	return nil
}

// CurrentPlayer returns the player whose turn it is, or nil before start.
func (r *Room) CurrentPlayer() *Player {
	if !r.Started || len(r.Players) == 0 {
		return nil
	}
	idx := (r.turn%len(r.Players) + len(r.Players)) % len(r.Players)
	return r.Players[idx]
}

// nextTurn advances the turn pointer and resets per-turn flags. Challenge
// flags reset only when the pointer wraps back to the first player, i.e.
// once per full round.
func (r *Room) nextTurn() {
	for _, p := range r.Players {
		p.bonusUsed = false
	}

	r.turn = (r.turn + 1) % len(r.Players)

	if r.turn == 0 {
		for _, p := range r.Players {
			p.challengeUsed = false
		}
	}

	cp := r.CurrentPlayer()
	if cp != nil && cp.Role == ProductOwner {
		r.log("%s (%s) may swap a random card with a chosen player at the start of their turn.", cp.Name, cp.Role.DisplayName())
	}
}

// enforceHandLimit auto-discards overflow beyond the role-adjusted limit.
// The UI prevents this in normal play; this is the server-side backstop.
func (r *Room) enforceHandLimit(p *Player) int {
	limit := p.Role.HandLimit()
	if len(p.Hand) <= limit {
		return 0
	}

	extras := p.Hand[limit:]
	p.Hand = p.Hand[:limit]
	r.discard = append(r.discard, extras...)

	return len(extras)
}

// settleHandLimits corrects any hand that transiently exceeded its limit
// during an effect.
func (r *Room) settleHandLimits() {
	for _, p := range r.Players {
		if n := r.enforceHandLimit(p); n > 0 {
			r.log("%s exceeded the hand limit; auto-discarded %d.", p.Name, n)
		}
	}
}

// discardProgress moves up to n Progress cards from a hand to the discard
// pile, returning how many actually moved.
func (r *Room) discardProgress(p *Player, n int) int {
	moved := 0
	for moved < n {
		found := false
		for i, c := range p.Hand {
			if c.Type != Progress {
				continue
			}
			p.Hand = append(p.Hand[:i], p.Hand[i+1:]...)
			r.discard = append(r.discard, c)
			moved++
			found = true
			break
		}
		if !found {
			break
		}
	}
	return moved
}

func (r *Room) log(format string, args ...any) {
	r.logs = append(r.logs, fmt.Sprintf(format, args...))
	if len(r.logs) > maxLogEntries {
		r.logs = r.logs[len(r.logs)-maxLogEntries:]
	}
}

// Logs returns the room's bounded event log, oldest first.
func (r *Room) Logs() []string {
	return r.logs
}
