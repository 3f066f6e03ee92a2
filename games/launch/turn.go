package launch

import "time"

// Draw is the current player's draw-one-card turn action. A face-down
// DrawSkip trap anywhere in the room cancels the draw and ends the turn.
func (r *Room) Draw(playerID string) error {
	if !r.Started {
		return ErrNotStarted
	}

	cp := r.CurrentPlayer()
	if cp == nil || cp.ID != playerID {
		return ErrNotCurrentPlayer
	}

	if r.triggerDrawTraps(cp) {
		r.log("%s's draw was skipped by a trap. Turn ends.", cp.Name)
		r.nextTurn()
		return nil
	}

	cp.Hand = append(cp.Hand, r.draw(1)...)
	r.log("%s drew 1 card.", cp.Name)

	if n := r.enforceHandLimit(cp); n > 0 {
		r.log("%s exceeded the hand limit; auto-discarded %d.", cp.Name, n)
	}

	r.nextTurn()

	return nil
}

// DeclareLaunch opens the reaction window for a win declaration. Launch
// traps fire first; if they knock the declarer below 10 Progress the
// declaration fails silently with no window. On success the returned
// deadline is when ResolveLaunch should be invoked.
func (r *Room) DeclareLaunch(playerID string) (time.Time, bool, error) {
	if !r.Started {
		return time.Time{}, false, ErrNotStarted
	}

	if r.pending != nil {
		return time.Time{}, false, ErrLaunchPending
	}

	p := r.Player(playerID)
	if p == nil {
		return time.Time{}, false, ErrPlayerNotFound
	}

	if p.ProgressCount() != winningProgress {
		return time.Time{}, false, ErrLaunchNotReady
	}

	r.triggerLaunchTraps(p)

	if p.ProgressCount() != winningProgress {
		r.log("%s tried to Launch, but lost Progress to traps.", p.Name)
		return time.Time{}, false, nil
	}

	endsAt := time.Now().Add(r.window)
	r.pending = &launchPending{
		playerID: p.ID,
		endsAt:   endsAt,
	}
	r.log("%s DECLARED LAUNCH! Others have %s to react with Solutions or traps.", p.Name, r.window)

	return endsAt, true, nil
}

// ResolveLaunch closes the reaction window opened for playerID. A stale
// timer whose player no longer matches the pending record is a no-op.
// Returns true if the declaration resolved to a win.
func (r *Room) ResolveLaunch(playerID string) bool {
	if r.pending == nil || r.pending.playerID != playerID {
		return false
	}
	r.pending = nil

	p := r.Player(playerID)
	if p == nil {
		return false
	}

	if p.ProgressCount() == winningProgress {
		r.log("%s LAUNCHED SUCCESSFULLY and wins the game!", p.Name)
		r.Started = false
		return true
	}

	r.log("%s's launch was foiled!", p.Name)

	return false
}

// LaunchWindow is the configured reaction window duration.
func (r *Room) LaunchWindow() time.Duration {
	return r.window
}
