package match

// AttrKey names one of the closed set of numeric player attributes. The
// internal scale is fixed at 1–20 (spec §9 Open Question: attribute scale) —
// a loader sourcing 1–100 data divides by 5 before constructing a Player.
type AttrKey string

// Technical attributes.
const (
	AttrFinishing   AttrKey = "finishing"
	AttrPassing     AttrKey = "passing"
	AttrCrossing    AttrKey = "crossing"
	AttrTackling    AttrKey = "tackling"
	AttrHeading     AttrKey = "heading"
	AttrBallControl AttrKey = "ball_control"
	AttrDribbling   AttrKey = "dribbling"
)

// Physical attributes.
const (
	AttrPace           AttrKey = "pace"
	AttrAcceleration   AttrKey = "acceleration"
	AttrStamina        AttrKey = "stamina"
	AttrStrength       AttrKey = "strength"
	AttrJumping        AttrKey = "jumping"
	AttrNaturalFitness AttrKey = "natural_fitness"
)

// Mental attributes.
const (
	AttrComposure    AttrKey = "composure"
	AttrVision       AttrKey = "vision"
	AttrAnticipation AttrKey = "anticipation"
	AttrAggression   AttrKey = "aggression"
	AttrReactions    AttrKey = "reactions"
)

// Goalkeeping attributes.
const (
	AttrReflexes AttrKey = "reflexes"
	AttrHandling AttrKey = "handling"
	AttrKicking  AttrKey = "kicking"
)

// mentalAttrs is used by the morale modifier (step 3) to pick the larger
// mental coefficient over the smaller technical/physical one.
var mentalAttrs = map[AttrKey]bool{
	AttrComposure: true, AttrVision: true, AttrAnticipation: true,
	AttrAggression: true, AttrReactions: true,
}

// Attributes holds a player's ~20 named numeric ratings on the 1–20 scale.
// Technical, physical, mental and goalkeeping groups partition the set per
// spec §3.
type Attributes struct {
	Finishing   int
	Passing     int
	Crossing    int
	Tackling    int
	Heading     int
	BallControl int
	Dribbling   int

	Pace           int
	Acceleration   int
	Stamina        int
	Strength       int
	Jumping        int
	NaturalFitness int

	Composure    int
	Vision       int
	Anticipation int
	Aggression   int
	Reactions    int

	Reflexes int
	Handling int
	Kicking  int
}

// Base returns the raw (unmodified) value of a named attribute.
func (a Attributes) Base(key AttrKey) float64 {
	switch key {
	case AttrFinishing:
		return float64(a.Finishing)
	case AttrPassing:
		return float64(a.Passing)
	case AttrCrossing:
		return float64(a.Crossing)
	case AttrTackling:
		return float64(a.Tackling)
	case AttrHeading:
		return float64(a.Heading)
	case AttrBallControl:
		return float64(a.BallControl)
	case AttrDribbling:
		return float64(a.Dribbling)
	case AttrPace:
		return float64(a.Pace)
	case AttrAcceleration:
		return float64(a.Acceleration)
	case AttrStamina:
		return float64(a.Stamina)
	case AttrStrength:
		return float64(a.Strength)
	case AttrJumping:
		return float64(a.Jumping)
	case AttrNaturalFitness:
		return float64(a.NaturalFitness)
	case AttrComposure:
		return float64(a.Composure)
	case AttrVision:
		return float64(a.Vision)
	case AttrAnticipation:
		return float64(a.Anticipation)
	case AttrAggression:
		return float64(a.Aggression)
	case AttrReactions:
		return float64(a.Reactions)
	case AttrReflexes:
		return float64(a.Reflexes)
	case AttrHandling:
		return float64(a.Handling)
	case AttrKicking:
		return float64(a.Kicking)
	default:
		return 10 // neutral mid-scale default for an unrecognised key
	}
}

// compatibleRolePairs lists the (natural role, occupied slot) pairs that
// positionFamiliarity scores as compatible (×0.92) under spec §4.3 step 2.
// Identical roles are handled separately (×1.00) before consulting this table.
var compatibleRolePairs = map[Role]map[Role]bool{
	RoleST: {RoleCF: true},
	RoleCF: {RoleST: true},
	RoleCM: {RoleDM: true, RoleAM: true},
	RoleDM: {RoleCM: true},
	RoleAM: {RoleCM: true},
	RoleCB: {RoleRB: true, RoleLB: true, RoleWB: true},
	RoleRB: {RoleCB: true, RoleWB: true},
	RoleLB: {RoleCB: true, RoleWB: true},
	RoleWB: {RoleCB: true, RoleRB: true, RoleLB: true},
}

func positionFamiliarity(natural, slot Role) float64 {
	if natural == slot {
		return 1.00
	}
	natGroup := natural.Group()
	slotGroup := slot.Group()
	if (natGroup == GroupGoalkeeper) != (slotGroup == GroupGoalkeeper) {
		return 0.50 // catastrophic: GK<->outfield either direction
	}
	if compatibleRolePairs[natural][slot] {
		return 0.92
	}
	return 0.75
}

// Morale update deltas (spec §4.3 step 3).
const (
	MoraleDeltaGoalScored = 1.0
	MoraleDeltaAssist     = 0.6
	MoraleDeltaRedCard    = -2.5
	MoraleDeltaYellowCard = -0.3
	MoraleDeltaKeySave    = 0.5
	MoraleDecayPerTick    = 0.05
	MoraleNeutral         = 7.0
	MoraleMin             = 0.0
	MoraleMax             = 10.0
)

// MoraleEvent is a closed set of occurrences that move a player's morale.
type MoraleEvent int

const (
	MoraleEventGoalScored MoraleEvent = iota
	MoraleEventAssist
	MoraleEventRedCard
	MoraleEventYellowCard
	MoraleEventKeySave
)

// ApplyMoraleEvent adjusts morale by the event's fixed delta, clamped to
// [MoraleMin, MoraleMax].
func ApplyMoraleEvent(morale float64, ev MoraleEvent) float64 {
	var delta float64
	switch ev {
	case MoraleEventGoalScored:
		delta = MoraleDeltaGoalScored
	case MoraleEventAssist:
		delta = MoraleDeltaAssist
	case MoraleEventRedCard:
		delta = MoraleDeltaRedCard
	case MoraleEventYellowCard:
		delta = MoraleDeltaYellowCard
	case MoraleEventKeySave:
		delta = MoraleDeltaKeySave
	}
	return clampRange(morale+delta, MoraleMin, MoraleMax)
}

// DecayMorale nudges morale toward the neutral baseline by one tick's worth
// of decay. Called once per tick for every on-pitch player.
func DecayMorale(morale float64) float64 {
	if morale > MoraleNeutral {
		return clampRange(morale-MoraleDecayPerTick, MoraleNeutral, MoraleMax)
	}
	if morale < MoraleNeutral {
		return clampRange(morale+MoraleDecayPerTick, MoraleMin, MoraleNeutral)
	}
	return morale
}

// fatigueK is the fatigue-penalty coefficient used after minute 60 (spec
// §4.3 step 6): chosen so a fatigue of 0.8 at minute 80 yields a ≈0.75
// multiplier, i.e. k ≈ 0.3125.
const fatigueK = 0.3125

// EffectiveAttributeInput bundles the context the pipeline needs beyond the
// player's own static and per-tick state.
type EffectiveAttributeInput struct {
	Player       *Player // static profile (natural role, attributes)
	State        *PlayerState
	OccupiedRole Role
	IsHome       bool
	Tactic       Tactic
	Minute       int
}

// EffectiveAttribute implements the spec §4.3 pipeline: position
// familiarity, morale, home advantage, tactic modifier, fatigue, each
// applied multiplicatively in order, with a final floor clamp to 0.1.
func EffectiveAttribute(key AttrKey, in EffectiveAttributeInput) float64 {
	value := in.Player.Attributes.Base(key)

	value *= positionFamiliarity(in.Player.NaturalRole, in.OccupiedRole)

	mCoeff := 0.02
	if mentalAttrs[key] {
		mCoeff = 0.04
	}
	value *= 1 + (in.State.Morale-MoraleNeutral)*mCoeff

	if in.IsHome {
		if mentalAttrs[key] {
			value *= 1.05
		} else {
			value *= 1.03
		}
	}

	value *= tacticAttributeModifier(in.Tactic, key)

	if in.Minute > 60 {
		k := fatigueK
		if in.Player.Attributes.NaturalFitness > 0 {
			k *= 1 - clampRange(float64(in.Player.Attributes.NaturalFitness)/20*0.5, 0, 0.5)
		}
		value *= 1 - in.State.Fatigue*k
	}

	if value < 0.1 {
		value = 0.1
	}
	return value
}
