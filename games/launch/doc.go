// Package launch implements the Project Launch card game engine.
//
// Each player races to collect exactly 10 Progress cards and declare a
// launch. Action cards disrupt other players or accelerate your own hand,
// Bug cards are set face-down as traps with event triggers, and Solution
// cards are reactions that consume entries from the room's recent-effects
// stack. A launch declaration opens a timed reaction window during which
// anyone may counter with a Solution or set a trap; if the declarer still
// holds exactly 10 Progress when the window closes, they win.
//
// The engine is purely synchronous and does no locking: the transport
// layer serializes all intents per room.
//
// How to play
//   - The host creates a room; others join by its 5-character code
//   - Everyone picks a role and readies up, then the host starts the game
//   - On your turn: draw a card, play an Action, or set a trap
//   - Anytime: set a trap or play a Solution as a reaction
//   - QA may challenge the current player once per round
//   - Collect exactly 10 Progress and declare Launch to win
package launch
