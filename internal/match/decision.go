package match

import "math"

// DecisionAction is the closed set of choices the ball holder picks from
// every tick they're not already mid-action (spec §4.8).
type DecisionAction string

const (
	DecisionShoot   DecisionAction = "shoot"
	DecisionPass    DecisionAction = "pass"
	DecisionDribble DecisionAction = "dribble"
	DecisionHold    DecisionAction = "hold"
	DecisionCross   DecisionAction = "cross"
)

var allDecisionActions = []DecisionAction{DecisionShoot, DecisionPass, DecisionDribble, DecisionHold, DecisionCross}

// FieldZone classifies ball x relative to the holder's attacking direction
// (spec §4.8).
type FieldZone string

const (
	ZoneDefensiveThird  FieldZone = "defensive_third"
	ZoneMiddleThird     FieldZone = "middle_third"
	ZoneAttackingThird  FieldZone = "attacking_third"
	ZoneAttackingPenalty FieldZone = "attacking_penalty"
)

// ClassifyZone returns the attacking-relative field zone for ballX, given
// the holder's attack direction sign (+1 attacking toward x=100).
func ClassifyZone(ballX float64, sign float64) FieldZone {
	rel := ballX
	if sign < 0 {
		rel = 100 - ballX
	}
	switch {
	case rel >= 83:
		return ZoneAttackingPenalty
	case rel >= 66:
		return ZoneAttackingThird
	case rel >= 33:
		return ZoneMiddleThird
	default:
		return ZoneDefensiveThird
	}
}

// PressureLevel classifies how closely marked the ball holder is (spec §4.8).
type PressureLevel string

const (
	PressureLow    PressureLevel = "low"
	PressureMedium PressureLevel = "medium"
	PressureHigh   PressureLevel = "high"
)

// pressureRadius is the radius (pitch units) within which an opponent
// contributes to pressure (spec §4.8: "opponents within 8 m").
const pressureRadius = 8.0

// ClassifyPressure counts opponents within pressureRadius of the holder and
// buckets the count into a PressureLevel.
func ClassifyPressure(holderPos Point, opponents []Point) (PressureLevel, int) {
	count := 0
	for _, o := range opponents {
		if Distance(holderPos, o) <= pressureRadius {
			count++
		}
	}
	switch {
	case count == 0:
		return PressureLow, count
	case count == 1:
		return PressureMedium, count
	default:
		return PressureHigh, count
	}
}

// PassOption is a teammate the holder could realistically pass to (spec
// §4.8: "teammates at 5-30m with a clear passing lane").
type PassOption struct {
	TeammateID string
	Position   Point
	Distance   float64
}

// passOptionMinDist and passOptionMaxDist bound a usable pass distance.
const (
	passOptionMinDist = 5.0
	passOptionMaxDist = 30.0
	// laneOpponentClearance is how far from the pass line an opponent must
	// stay to not be considered a blocker.
	laneOpponentClearance = 3.0
)

// PassingOptions returns teammates the holder has a clear lane to.
func PassingOptions(holderPos Point, teammates []Point, teammateIDs []string, opponents []Point) []PassOption {
	var options []PassOption
	for i, t := range teammates {
		d := Distance(holderPos, t)
		if d < passOptionMinDist || d > passOptionMaxDist {
			continue
		}
		blocked := false
		for _, o := range opponents {
			if DistanceToSegment(o, holderPos, t) < laneOpponentClearance && Distance(holderPos, o) < d {
				blocked = true
				break
			}
		}
		if !blocked {
			options = append(options, PassOption{TeammateID: teammateIDs[i], Position: t, Distance: d})
		}
	}
	return options
}

// availableSpaceCap is the maximum distance credited toward "available
// space" (spec §4.8: "capped at 10 m").
const availableSpaceCap = 10.0

// AvailableSpace returns the distance to the nearest opponent, capped.
func AvailableSpace(holderPos Point, opponents []Point) float64 {
	nearest := math.Inf(1)
	for _, o := range opponents {
		if d := Distance(holderPos, o); d < nearest {
			nearest = d
		}
	}
	if math.IsInf(nearest, 1) || nearest > availableSpaceCap {
		return availableSpaceCap
	}
	return nearest
}

// GameState is the holder's team's scoreline standing (spec §4.8).
type GameState string

const (
	GameWinning GameState = "winning"
	GameDrawing GameState = "drawing"
	GameLosing  GameState = "losing"
)

// ClassifyGameState compares the holder's team score to the opponent's.
func ClassifyGameState(ownScore, oppScore int) GameState {
	switch {
	case ownScore > oppScore:
		return GameWinning
	case ownScore < oppScore:
		return GameLosing
	default:
		return GameDrawing
	}
}

// TimePhase buckets the match minute (spec §4.8).
type TimePhase string

const (
	PhaseEarly  TimePhase = "early"
	PhaseMiddle TimePhase = "middle"
	PhaseLate   TimePhase = "late"
)

// ClassifyTimePhase buckets minute into early/<30, middle/<70, else late.
func ClassifyTimePhase(minute int) TimePhase {
	switch {
	case minute < 30:
		return PhaseEarly
	case minute < 70:
		return PhaseMiddle
	default:
		return PhaseLate
	}
}

// DecisionContext bundles everything BaseProbabilities and its modifiers
// need, already computed by the caller (the tick loop) from the start-of-
// tick snapshot.
type DecisionContext struct {
	Zone           FieldZone
	Pressure       PressureLevel
	PassOptions    int
	Space          float64
	GameState      GameState
	TimePhase      TimePhase
	MinutesLeft    int
	Role           Role
	Attrs          EffectiveAttributeInput // for deriving shooting/passing/etc.
}

// baseProbabilities implements spec §4.8's base weighting before contextual
// modifiers: a simple, auditable starting point keyed off zone and role
// tendency, scaled by the relevant attribute.
func baseProbabilities(ctx DecisionContext, player *Player, state *PlayerState) map[DecisionAction]float64 {
	finishing := EffectiveAttribute(AttrFinishing, ctx.Attrs) / 20
	passing := EffectiveAttribute(AttrPassing, ctx.Attrs) / 20
	dribbling := EffectiveAttribute(AttrDribbling, ctx.Attrs) / 20
	crossing := EffectiveAttribute(AttrCrossing, ctx.Attrs) / 20

	probs := map[DecisionAction]float64{
		DecisionHold:    0.15,
		DecisionPass:    0.35 + 0.15*passing,
		DecisionDribble: 0.15 + 0.1*dribbling,
		DecisionShoot:   0.05,
		DecisionCross:   0.05,
	}

	switch ctx.Zone {
	case ZoneAttackingPenalty:
		probs[DecisionShoot] = 0.35 + 0.35*finishing
		probs[DecisionCross] = 0.1 + 0.15*crossing
	case ZoneAttackingThird:
		probs[DecisionShoot] = 0.12 + 0.18*finishing
		probs[DecisionCross] = 0.15 + 0.2*crossing
	case ZoneMiddleThird:
		probs[DecisionShoot] = 0.02
	case ZoneDefensiveThird:
		probs[DecisionShoot] = 0.0
		probs[DecisionCross] = 0.0
		probs[DecisionHold] = 0.05
		probs[DecisionPass] += 0.2
	}

	if ctx.PassOptions == 0 {
		probs[DecisionPass] *= 0.3
		probs[DecisionDribble] += 0.1
	} else {
		probs[DecisionPass] *= 1 + 0.05*math.Min(float64(ctx.PassOptions), 4)
	}

	probs[DecisionDribble] *= 0.5 + ctx.Space/availableSpaceCap*0.5

	return probs
}

// applyContextualModifiers implements spec §4.8's "contextual modifiers"
// step.
func applyContextualModifiers(probs map[DecisionAction]float64, ctx DecisionContext) {
	if ctx.Pressure == PressureLow {
		probs[DecisionShoot] *= 1.5
	}
	if ctx.Pressure == PressureHigh {
		probs[DecisionPass] *= 1.3
		probs[DecisionDribble] *= 0.6
	}
	if ctx.GameState == GameLosing && ctx.TimePhase == PhaseLate && ctx.MinutesLeft < 15 {
		probs[DecisionHold] *= 0.3
		probs[DecisionShoot] *= 1.3
	}
	if ctx.GameState == GameWinning && ctx.TimePhase == PhaseLate {
		probs[DecisionHold] *= 1.4
	}
}

// roleModifier is spec §4.8's role modifier table.
var roleModifier = map[Role]map[DecisionAction]float64{
	RoleGK: {DecisionShoot: 0.001, DecisionCross: 0.05, DecisionDribble: 0.2},
	RoleCB: {DecisionShoot: 0.1, DecisionDribble: 0.4, DecisionCross: 0.1},
	RoleST: {DecisionShoot: 2.5, DecisionCross: 0.3},
	RoleCF: {DecisionShoot: 2.2, DecisionCross: 0.3},
	RoleWM: {DecisionCross: 1.8},
	RoleLW: {DecisionCross: 1.8, DecisionDribble: 1.3},
	RoleRW: {DecisionCross: 1.8, DecisionDribble: 1.3},
	RoleWB: {DecisionCross: 1.4},
}

func applyRoleModifier(probs map[DecisionAction]float64, role Role) {
	table, ok := roleModifier[role]
	if !ok {
		return
	}
	for action, mult := range table {
		if _, exists := probs[action]; exists {
			probs[action] *= mult
		}
	}
}

// memoryWindowTicks is how long a failed action depresses its own
// probability (spec §4.8: "within the last 300 ticks").
const memoryWindowTicks = 300

// applyMemoryPenalty implements spec §4.8's memory penalty using
// PlayerState's failure memory, scaling by consecutive failures via the
// stored memory count for that action.
func applyMemoryPenalty(probs map[DecisionAction]float64, state *PlayerState, tick int) {
	for action := range probs {
		consecutive := 0
		for _, m := range state.FailureMemories {
			if m.Action == string(action) && tick < m.ExpireAt {
				consecutive++
			}
		}
		if consecutive > 0 {
			penalty := math.Max(0.5, 1-float64(consecutive)*0.2)
			probs[action] *= penalty
		}
	}
}

// SelectDecision runs the full spec §4.8 pipeline and draws an action from
// the seeded RNG. Actions on cooldown are removed before the draw; if none
// remain, the result defaults to hold.
func SelectDecision(ctx DecisionContext, player *Player, state *PlayerState, tick int, rng *RNG) DecisionAction {
	probs := baseProbabilities(ctx, player, state)
	applyContextualModifiers(probs, ctx)
	applyRoleModifier(probs, ctx.Role)
	applyMemoryPenalty(probs, state, tick)

	actions := make([]DecisionAction, 0, len(allDecisionActions))
	weights := make([]float64, 0, len(allDecisionActions))
	for _, a := range allDecisionActions {
		if !state.CooldownReady(string(a), tick) {
			continue
		}
		w := probs[a]
		if w < 0 {
			w = 0
		}
		actions = append(actions, a)
		weights = append(weights, w)
	}
	if len(actions) == 0 {
		return DecisionHold
	}
	idx := rng.WeightedChoice(weights)
	return actions[idx]
}
