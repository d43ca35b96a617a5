package match

// PossessionState tracks which team/player currently has the ball and how
// long they've had it, so the Contest Resolver can apply a brief possession
// protection window right after a change of possession (spec §3/§4.10).
type PossessionState struct {
	TeamID       string
	PlayerID     string
	SinceTick    int
	ProtectedUntilTick int
}

// possessionProtectionTicks is how many ticks after gaining the ball a
// player is shielded from an immediate re-contest (prevents ping-pong
// possession flips described in spec §4.10).
const possessionProtectionTicks = 2

// NewPossession builds possession state for a change of possession
// occurring at tick, granting the standard protection window.
func NewPossession(teamID, playerID string, tick int) PossessionState {
	return PossessionState{
		TeamID:             teamID,
		PlayerID:           playerID,
		SinceTick:          tick,
		ProtectedUntilTick: tick + possessionProtectionTicks,
	}
}

// IsProtected reports whether the current possessor is still shielded at
// tick.
func (p PossessionState) IsProtected(tick int) bool {
	return tick < p.ProtectedUntilTick
}

// HasPossessor reports whether any player currently has the ball (false
// between a loose ball and the next pickup).
func (p PossessionState) HasPossessor() bool {
	return p.PlayerID != ""
}

// Duration returns how many ticks the current possessor has held the ball.
func (p PossessionState) Duration(tick int) int {
	return tick - p.SinceTick
}
