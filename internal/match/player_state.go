package match

// ActionKind is the closed set of states in a player's action state machine
// (spec §4.9).
type ActionKind string

const (
	ActionIdle       ActionKind = "idle"
	ActionPreparing  ActionKind = "preparing"
	ActionExecuting  ActionKind = "executing"
	ActionRecovering ActionKind = "recovering"
)

// FailureMemory records a recently failed action so the decision model can
// penalise repeating it (spec §4.8 memory penalty).
type FailureMemory struct {
	Action   string
	ExpireAt int // tick at which the memory no longer applies
}

// PlayerState is the per-tick mutable state the Match owns for one on-pitch
// player, paired with its immutable Player profile by ID (spec §3). Nothing
// here is retained by any component across ticks except the Match itself.
type PlayerState struct {
	PlayerID string
	Role     Role // assigned role for this match (formation slot)

	Position Point
	Velocity Point // dx, dy in pitch units per second
	Facing   float64

	Fatigue float64 // 0..1
	Stamina float64 // 0..100
	Balance float64 // 0..1
	Morale  float64 // 0..10, neutral 7

	YellowCards int // 0 or 1
	SentOff     bool
	SubbedOff   bool
	Goals       int
	Assists     int

	CurrentAction  ActionKind
	ActionTimer    float64 // seconds remaining in the current action state
	ActionCooldowns map[string]int // action name -> tick it becomes available again
	Contested       bool

	LastActionTick int
	FailureMemories []FailureMemory

	// runningActionName and queuedActions back the Scheduler (scheduler.go):
	// the concrete action currently in flight, and pending requests that
	// arrived while a conflicting action was executing.
	runningActionName string
	queuedActions      []queuedAction
}

// NewPlayerState creates the starting per-tick state for a player entering
// the match at position pos in role role. Fatigue starts at zero, stamina
// full, balance steady and morale at the neutral baseline.
func NewPlayerState(playerID string, role Role, pos Point) *PlayerState {
	return &PlayerState{
		PlayerID:        playerID,
		Role:            role,
		Position:        pos,
		Facing:          0,
		Fatigue:         0,
		Stamina:         100,
		Balance:         1,
		Morale:          MoraleNeutral,
		CurrentAction:   ActionIdle,
		ActionCooldowns: make(map[string]int),
	}
}

// OnPitch reports whether the player can still take part in play.
func (s *PlayerState) OnPitch() bool {
	return !s.SentOff && !s.SubbedOff
}

// CooldownReady reports whether action is off cooldown at tick.
func (s *PlayerState) CooldownReady(action string, tick int) bool {
	until, ok := s.ActionCooldowns[action]
	if !ok {
		return true
	}
	return tick >= until
}

// SetCooldown puts action on cooldown until tick+ticks.
func (s *PlayerState) SetCooldown(action string, tick, ticks int) {
	s.ActionCooldowns[action] = tick + ticks
}

// RememberFailure records a failed action attempt, to be consulted (and
// expired) by the decision model.
func (s *PlayerState) RememberFailure(action string, tick, durationTicks int) {
	s.FailureMemories = append(s.FailureMemories, FailureMemory{Action: action, ExpireAt: tick + durationTicks})
}

// FailurePenalty returns 1 if action was recently attempted and failed (not
// yet expired at tick), else 0. The decision model scales this into a
// probability discount (spec §4.8).
func (s *PlayerState) FailurePenalty(action string, tick int) float64 {
	for _, m := range s.FailureMemories {
		if m.Action == action && tick < m.ExpireAt {
			return 1
		}
	}
	return 0
}

// PruneFailureMemories drops expired entries; called once per tick.
func (s *PlayerState) PruneFailureMemories(tick int) {
	if len(s.FailureMemories) == 0 {
		return
	}
	kept := s.FailureMemories[:0]
	for _, m := range s.FailureMemories {
		if tick < m.ExpireAt {
			kept = append(kept, m)
		}
	}
	s.FailureMemories = kept
}

// ApplyFatigueDecay advances fatigue/stamina by one tick of play. Stamina
// drains toward 0 as fatigue rises; natural fitness slows the drain (spec
// §4.3 step 6 context — the fatigue value itself feeds EffectiveAttribute).
func (s *PlayerState) ApplyFatigueDecay(naturalFitness int, highIntensity bool) {
	base := 0.0006
	if highIntensity {
		base = 0.0014
	}
	fitnessRelief := Clamp01(float64(naturalFitness) / 20)
	base *= 1 - 0.4*fitnessRelief
	s.Fatigue = Clamp01(s.Fatigue + base)
	s.Stamina = clampRange(s.Stamina-base*100, 0, 100)
}
