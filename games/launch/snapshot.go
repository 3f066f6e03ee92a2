package launch

import (
	"slices"
	"time"
)

// PlayerSummary is the public view of one player: counts only, no card
// contents.
type PlayerSummary struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Role      string `json:"role,omitempty"`
	Ready     bool   `json:"ready"`
	HandCount int    `json:"hand_count"`
	TrapCount int    `json:"trap_count"`
}

// PendingLaunch is the public view of an open launch declaration.
type PendingLaunch struct {
	PlayerID string    `json:"player_id"`
	EndsAt   time.Time `json:"ends_at"`
}

// Snapshot is the public room view broadcast to every member.
type Snapshot struct {
	Code          string          `json:"code"`
	Players       []PlayerSummary `json:"players"`
	HostID        string          `json:"host_id"`
	Started       bool            `json:"started"`
	TurnPlayerID  string          `json:"turn_player_id,omitempty"`
	Logs          []string        `json:"logs"`
	PendingLaunch *PendingLaunch  `json:"pending_launch,omitempty"`
}

// CardView is the wire form of a card a player is allowed to see.
type CardView struct {
	ID       string `json:"id"`
	Type     string `json:"type"`
	Name     string `json:"name"`
	Text     string `json:"text"`
	FaceDown bool   `json:"face_down,omitempty"`
}

// HandView is the private per-player view: full hand and trap contents.
type HandView struct {
	Hand  []CardView `json:"hand"`
	Traps []CardView `json:"traps"`
	Role  string     `json:"role,omitempty"`
}

func cardViews(cards []*Card) []CardView {
	out := make([]CardView, 0, len(cards))
	for _, c := range cards {
		out = append(out, CardView{
			ID:       c.ID,
			Type:     c.Type.String(),
			Name:     c.Name,
			Text:     c.Text,
			FaceDown: c.FaceDown,
		})
	}
	return out
}

// Snapshot derives the public room view from canonical state.
func (r *Room) Snapshot() Snapshot {
	players := make([]PlayerSummary, 0, len(r.Players))
	for _, p := range r.Players {
		players = append(players, PlayerSummary{
			ID:        p.ID,
			Name:      p.Name,
			Role:      p.Role.String(),
			Ready:     p.Ready,
			HandCount: len(p.Hand),
			TrapCount: len(p.Traps),
		})
	}

	// Snapshots outlive the call (marshalled on writer goroutines), so
	// the log slice is copied rather than aliased.
	snap := Snapshot{
		Code:    r.Code,
		Players: players,
		HostID:  r.HostID,
		Started: r.Started,
		Logs:    slices.Clone(r.logs),
	}

	if cp := r.CurrentPlayer(); cp != nil {
		snap.TurnPlayerID = cp.ID
	}

	if r.pending != nil {
		snap.PendingLaunch = &PendingLaunch{
			PlayerID: r.pending.playerID,
			EndsAt:   r.pending.endsAt,
		}
	}

	return snap
}

// HandView derives a player's private view. Returns a zero view for
// unknown players.
func (r *Room) HandView(playerID string) HandView {
	p := r.Player(playerID)
	if p == nil {
		return HandView{}
	}

	return HandView{
		Hand:  cardViews(p.Hand),
		Traps: cardViews(p.Traps),
		Role:  p.Role.String(),
	}
}
