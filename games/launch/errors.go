package launch

import "errors"

// Validation errors surfaced to the offending client. None of these leave
// room state modified.
var (
	ErrRoomNotFound        = errors.New("room not found")
	ErrPlayerNotFound      = errors.New("player not found")
	ErrNotHost             = errors.New("only the host can start the game")
	ErrInsufficientPlayers = errors.New("need at least 2 players")
	ErrNotAllReady         = errors.New("everyone must choose a role and ready up")
	ErrUnknownRole         = errors.New("unknown role")
	ErrAlreadyStarted      = errors.New("game already started")
	ErrNotStarted          = errors.New("game not started")
	ErrNotCurrentPlayer    = errors.New("not your turn")
	ErrCardNotInHand       = errors.New("card not in hand")
	ErrWrongCardType       = errors.New("card cannot be played that way")
	ErrInvalidTarget       = errors.New("invalid target")
	ErrRoleMismatch        = errors.New("your role cannot do that")
	ErrAbilityExhausted    = errors.New("ability already used")
	ErrLaunchNotReady      = errors.New("you must have exactly 10 Progress to declare launch")
	ErrLaunchPending       = errors.New("a launch declaration is already pending")
)
