package match

// EventType is the closed set of things Event Detection can emit (spec
// §4.11), named the way the teacher's event.go names its EventType enum.
type EventType string

const (
	EventPass         EventType = "pass"
	EventInterception EventType = "interception"
	EventPassFailed   EventType = "pass_failed"
	EventTackle       EventType = "tackle"
	EventClearance    EventType = "clearance"
	EventPressing     EventType = "pressing"
	EventShotOnTarget EventType = "shot_on_target"
	EventShotOffTarget EventType = "shot_off_target"
	EventGoal         EventType = "goal"
	EventFoul         EventType = "foul"
	EventPenalty      EventType = "penalty"
	EventYellowCard   EventType = "yellow_card"
	EventRedCard      EventType = "red_card"
	EventOffside      EventType = "offside"
	EventCorner       EventType = "corner"
	EventSave         EventType = "save"
	EventCross        EventType = "cross"
	EventSubstitution EventType = "substitution"
)

// Event is one typed occurrence during a tick (spec §4.11). Payload carries
// event-specific fields (receiver, outcome probability, card reason, ...),
// mirroring the teacher's Event{Type, Payload} shape in event.go.
type Event struct {
	Type       EventType
	Tick       int
	Minute     int
	TeamID     string
	PlayerID   string
	TargetID   string // receiver of a pass/cross, or victim of a foul/tackle
	Position   Point
	Payload    map[string]any
}

// NewEvent constructs an Event, defaulting Payload to an empty map so
// downstream consumers never nil-check it (same convenience the teacher's
// NewEvent gives callers).
func NewEvent(t EventType, tick, minute int, teamID, playerID string, pos Point) Event {
	return Event{Type: t, Tick: tick, Minute: minute, TeamID: teamID, PlayerID: playerID, Position: pos, Payload: map[string]any{}}
}

// WithTarget sets TargetID and returns the event for chaining.
func (e Event) WithTarget(id string) Event {
	e.TargetID = id
	return e
}

// WithPayload sets one payload key and returns the event for chaining.
func (e Event) WithPayload(key string, value any) Event {
	e.Payload[key] = value
	return e
}

// foulBaseRate is the small per-tick baseline probability of a foul
// occurring during a tackle-type contest (spec §4.11).
const foulBaseRate = 0.015

// FoulProbability elevates the base rate by the attacker's dribbling and
// the defender's aggression / tackle-harder flag.
func FoulProbability(attackerDribbling, defenderAggression float64, tackleHarder bool) float64 {
	p := foulBaseRate
	p += attackerDribbling / 20 * 0.02
	p += defenderAggression / 20 * 0.03
	if tackleHarder {
		p *= 1.25
	}
	return Clamp01(p)
}

// IsPenaltyArea reports whether a foul at p should be upgraded to a penalty
// (spec §4.11: x > 83 or x < 17, y in [25,75]).
func IsPenaltyArea(p Point) bool {
	return (p.X > 83 || p.X < 17) && p.Y >= 25 && p.Y <= 75
}

// CardEscalation tracks a player's disciplinary state across the match for
// the yellow/red escalation table (spec §4.11: second yellow = red).
type CardEscalation struct {
	Yellows int
}

// Apply records a new card and reports whether it results in a sending-off.
func (c *CardEscalation) Apply(isRed bool) (sentOff bool) {
	if isRed {
		return true
	}
	c.Yellows++
	return c.Yellows >= 2
}

// offsideBaseRate is the stochastic baseline for an offside call (spec
// §4.11: "dependent on opposing line discipline and attacker anticipation").
const offsideBaseRate = 0.04

// OffsideProbability scales the baseline by defensive line discipline (lower
// discipline raises the chance a forward strays offside and it's spotted)
// and by the attacker's anticipation (higher anticipation lowers it).
func OffsideProbability(lineDiscipline, attackerAnticipation float64) float64 {
	p := offsideBaseRate
	p += (1 - lineDiscipline/20) * 0.03
	p -= attackerAnticipation / 20 * 0.02
	return Clamp01(p)
}

// GoalProbabilityInput bundles the factors spec §4.11 lists for a shot
// taken inside the attacking shooting box.
type GoalProbabilityInput struct {
	DistanceToGoal float64
	AngleOffCentre float64 // |y - 50|
	Finishing      float64 // 1-20 effective
	Composure      float64 // 1-20 effective
	Pressure       float64 // 0..1
	Momentum       float64 // -1..1, team's recent momentum
	OneOnOne       bool
}

// oneOnOneBonusCap caps the one-on-one bonus (spec §4.11: "capped 0.6").
const oneOnOneBonusCap = 0.6

// GoalProbability derives a shot's chance of becoming a goal.
func GoalProbability(in GoalProbabilityInput) float64 {
	base := 0.9 - in.DistanceToGoal/40
	base -= in.AngleOffCentre / 50 * 0.4
	base += (in.Finishing - 10) / 20 * 0.25
	base += (in.Composure - 10) / 20 * 0.1
	base -= in.Pressure * 0.2
	base += in.Momentum * 0.05
	if in.OneOnOne {
		base += oneOnOneBonusCap * 0.5
	}
	return Clamp01(base)
}

// ShotOutcome is the closed result of a resolved shot (spec §4.11).
type ShotOutcome string

const (
	ShotGoal         ShotOutcome = "goal"
	ShotOnTargetSaved ShotOutcome = "shot_on_target"
	ShotOffTarget     ShotOutcome = "shot_off_target"
)

// ResolveShot draws the shot's outcome from the seeded RNG: goal with
// probability goalProb; otherwise on-target (savable, may yield a corner)
// with probability onTargetProb, else off target.
func ResolveShot(goalProb, onTargetGivenMissProb float64, rng *RNG) ShotOutcome {
	if rng.Bernoulli(goalProb) {
		return ShotGoal
	}
	if rng.Bernoulli(onTargetGivenMissProb) {
		return ShotOnTargetSaved
	}
	return ShotOffTarget
}
