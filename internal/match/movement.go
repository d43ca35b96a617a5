package match

import "math"

// MicroAction is the closed set of short-horizon behaviours a player can
// adopt on a given tick (spec §4.7 step 2).
type MicroAction string

const (
	MicroHoldShape    MicroAction = "hold_shape"
	MicroMark         MicroAction = "mark"
	MicroPress        MicroAction = "press"
	MicroCounterPress MicroAction = "counter_press"
	MicroSupport      MicroAction = "support"
	MicroExploitSpace MicroAction = "exploit_space"
	MicroOverlap      MicroAction = "overlap"
	MicroCutInside    MicroAction = "cut_inside"
	MicroHugLine      MicroAction = "hug_line"
	MicroOfferBall    MicroAction = "offer_ball"
	MicroCover        MicroAction = "cover"
	MicroRecover      MicroAction = "recover"
	MicroIdle         MicroAction = "idle"
)

// neighbourRange is the radius (pitch units) within which a teammate or
// opponent is considered part of a player's Perception (spec §4.7 step 1).
const neighbourRange = 30.0

// personalSpaceRange triggers the steering repulsion term (spec §4.7 step 4).
const personalSpaceRange = 2.0

// Perception is the per-player read-only view of the tick's start-of-tick
// snapshot (spec §4.7 step 1). Built fresh every tick; never retained.
type Perception struct {
	NearestTeammates []NeighbourRef
	NearestOpponents []NeighbourRef
	BallPosition     Point
	LineOfSightBall  bool
	TeamInPossession bool
}

// NeighbourRef names a nearby player and the distance to them, closest
// first.
type NeighbourRef struct {
	PlayerID string
	Position Point
	Distance float64
}

// BuildPerception gathers neighbours within neighbourRange of self's
// position from the supplied candidate states, splitting by team.
func BuildPerception(self *PlayerState, selfTeamID string, others []*PlayerState, otherTeamOf func(string) string, ball Point, teamInPossession bool) Perception {
	p := Perception{BallPosition: ball, TeamInPossession: teamInPossession}
	for _, o := range others {
		if o.PlayerID == self.PlayerID || !o.OnPitch() {
			continue
		}
		d := Distance(self.Position, o.Position)
		if d > neighbourRange {
			continue
		}
		ref := NeighbourRef{PlayerID: o.PlayerID, Position: o.Position, Distance: d}
		if otherTeamOf(o.PlayerID) == selfTeamID {
			p.NearestTeammates = append(p.NearestTeammates, ref)
		} else {
			p.NearestOpponents = append(p.NearestOpponents, ref)
		}
	}
	sortNeighbours(p.NearestTeammates)
	sortNeighbours(p.NearestOpponents)
	p.LineOfSightBall = true // open 2D pitch, no occluders modelled
	return p
}

func sortNeighbours(refs []NeighbourRef) {
	for i := 1; i < len(refs); i++ {
		for j := i; j > 0 && refs[j].Distance < refs[j-1].Distance; j-- {
			refs[j], refs[j-1] = refs[j-1], refs[j]
		}
	}
}

// SelectMicroAction picks a behaviour for an off-ball player from role,
// possession phase and a couple of context flags (spec §4.7 step 2), built
// on top of the same role rules Tactical Positioning uses.
func SelectMicroAction(role Role, perception Perception, isBallCarrierTeammate, isNearestMarker bool) MicroAction {
	if !perception.TeamInPossession {
		if isNearestMarker {
			return MicroMark
		}
		nearestOppDist := math.Inf(1)
		if len(perception.NearestOpponents) > 0 {
			nearestOppDist = perception.NearestOpponents[0].Distance
		}
		if nearestOppDist < 8 && (role == RoleDM || role == RoleCM || role == RoleST || role == RoleCF) {
			return MicroPress
		}
		return MicroRecover
	}

	if isBallCarrierTeammate {
		return MicroHoldShape
	}

	switch role.Group() {
	case GroupDefender:
		if role == RoleRB || role == RoleLB || role == RoleWB {
			return MicroOverlap
		}
		return MicroCover
	case GroupMidfielder:
		return MicroSupport
	case GroupForward:
		return MicroExploitSpace
	default:
		return MicroIdle
	}
}

// baseRoleSpeed is a role's unmodified top speed in pitch units/second
// (spec §4.7 step 3 references "base_role_speed").
func baseRoleSpeed(role Role) float64 {
	switch role.Group() {
	case GroupForward:
		return 8.0
	case GroupMidfielder:
		return 7.2
	case GroupDefender:
		return 7.0
	default:
		return 6.0
	}
}

// EffectiveMaxSpeed applies the fatigue penalty (floor 50%) to a role's base
// speed (spec §4.7 step 3).
func EffectiveMaxSpeed(role Role, fatigue float64) float64 {
	factor := 1 - fatigue*0.4
	if factor < 0.5 {
		factor = 0.5
	}
	return baseRoleSpeed(role) * factor
}

// SteeringInput bundles the per-tick movement computation's inputs.
type SteeringInput struct {
	Position  Point
	Target    Point
	MaxSpeed  float64
	Neighbours []NeighbourRef
	DeltaT    float64 // seconds per tick (usually 1.0)
}

// Steer computes one tick's movement (spec §4.7 steps 3-5): desired
// displacement toward target, personal-space repulsion from nearby
// neighbours, magnitude clamp, then integration. Returns the new position
// and facing angle.
func Steer(in SteeringInput) (Point, float64) {
	dx := in.Target.X - in.Position.X
	dy := in.Target.Y - in.Position.Y
	dist := math.Hypot(dx, dy)

	var vx, vy float64
	if dist > 1e-6 {
		vx = dx / dist * in.MaxSpeed
		vy = dy / dist * in.MaxSpeed
	}

	for _, n := range in.Neighbours {
		if n.Distance >= personalSpaceRange || n.Distance <= 1e-6 {
			continue
		}
		overlap := personalSpaceRange - n.Distance
		rx := (in.Position.X - n.Position.X) / n.Distance
		ry := (in.Position.Y - n.Position.Y) / n.Distance
		vx += rx * overlap * 0.8
		vy += ry * overlap * 0.8
	}

	speed := math.Hypot(vx, vy)
	if speed > in.MaxSpeed {
		vx = vx / speed * in.MaxSpeed
		vy = vy / speed * in.MaxSpeed
	}

	dt := in.DeltaT
	if dt <= 0 {
		dt = 1.0
	}
	newPos := ClampPitch(Point{X: in.Position.X + vx*dt, Y: in.Position.Y + vy*dt})
	facing := in.Position.facingTowards(newPos)
	return newPos, facing
}

func (p Point) facingTowards(to Point) float64 {
	dx := to.X - p.X
	dy := to.Y - p.Y
	if dx == 0 && dy == 0 {
		return 0
	}
	return math.Atan2(dy, dx)
}
