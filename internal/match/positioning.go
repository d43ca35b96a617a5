package match

import (
	"log"

	"golang.org/x/time/rate"
)

// Zone is a hard clamp on where a role is allowed to stand, expressed in the
// home-attacking-right convention; away zones are mirrored in x (spec §4.6).
type Zone struct {
	MinX, MaxX, MinY, MaxY float64
}

// roleZones is the closed per-role bound table (spec §4.6).
var roleZones = map[Role]Zone{
	RoleGK: {MinX: 0, MaxX: 16.5, MinY: 25, MaxY: 75},
	RoleCB: {MinX: 0, MaxX: 45, MinY: 5, MaxY: 95},
	RoleRB: {MinX: 0, MaxX: 70, MinY: 55, MaxY: 100},
	RoleLB: {MinX: 0, MaxX: 70, MinY: 0, MaxY: 45},
	RoleWB: {MinX: 0, MaxX: 80, MinY: 0, MaxY: 100},
	RoleDM: {MinX: 10, MaxX: 55, MinY: 10, MaxY: 90},
	RoleCM: {MinX: 15, MaxX: 80, MinY: 10, MaxY: 90},
	RoleAM: {MinX: 35, MaxX: 95, MinY: 10, MaxY: 90},
	RoleWM: {MinX: 20, MaxX: 95, MinY: 0, MaxY: 100},
	RoleLW: {MinX: 30, MaxX: 100, MinY: 0, MaxY: 45},
	RoleRW: {MinX: 30, MaxX: 100, MinY: 55, MaxY: 100},
	RoleST: {MinX: 45, MaxX: 100, MinY: 10, MaxY: 90},
	RoleCF: {MinX: 30, MaxX: 100, MinY: 10, MaxY: 90},
}

// MirrorZone flips a zone for the away team, which attacks toward x=0.
func MirrorZone(z Zone) Zone {
	return Zone{MinX: 100 - z.MaxX, MaxX: 100 - z.MinX, MinY: z.MinY, MaxY: z.MaxY}
}

// ZoneFor returns the enforced zone for role, mirrored for the away side.
func ZoneFor(role Role, isHome bool) Zone {
	z := roleZones[role]
	if isHome {
		return z
	}
	return MirrorZone(z)
}

// positioningWarnLimiter rate-limits the "target exceeded zone bounds" log so
// a persistently misbehaving tactic can't flood logs every tick (same
// golang.org/x/time/rate idiom the event log uses for its per-tick cap).
var positioningWarnLimiter = rate.NewLimiter(rate.Limit(2), 5)

// ClampToZone enforces role's hard zone bounds on p, warning (rate-limited)
// when the unclamped target would have violated them.
func ClampToZone(role Role, isHome bool, p Point) Point {
	z := ZoneFor(role, isHome)
	clamped := Point{
		X: clampRange(p.X, z.MinX, z.MaxX),
		Y: clampRange(p.Y, z.MinY, z.MaxY),
	}
	if (clamped != p) && positioningWarnLimiter.Allow() {
		log.Printf("positioning: role %s target (%.1f,%.1f) exceeded zone bounds, clamped to (%.1f,%.1f)", role, p.X, p.Y, clamped.X, clamped.Y)
	}
	return ClampPitch(clamped)
}

// TargetPointInput bundles the context TargetPoint needs to compute an
// off-ball player's anchor-relative target for this tick.
type TargetPointInput struct {
	Role           Role
	IsHome         bool
	Anchor         Point
	Ball           Point
	TeamInPossession bool // true if this player's team currently has the ball
	Traits         PlayerTraits
}

// attackDirSign is +1 for a team attacking toward x=100, -1 otherwise.
func attackDirSign(isHome bool) float64 {
	if isHome {
		return 1
	}
	return -1
}

// TargetPoint implements the per-role rule set of spec §4.6, returning an
// unclamped target; callers pass the result through ClampToZone.
func TargetPoint(in TargetPointInput) Point {
	sign := attackDirSign(in.IsHome)

	switch in.Role {
	case RoleGK:
		penaltySpot := Point{X: 11, Y: 50}
		if !in.IsHome {
			penaltySpot.X = 89
		}
		mx := (penaltySpot.X + in.Ball.X) / 2
		my := (penaltySpot.Y + in.Ball.Y) / 2
		return Point{X: mx*0.7 + penaltySpot.X*0.3, Y: my*0.7 + penaltySpot.Y*0.3}

	case RoleCB:
		// Push up in possession, drop when defending — in possession line x
		// tracks ball x with heavy dampening; out of possession it sits 3
		// units behind the anchor, toward the defender's own goal.
		lineX := in.Anchor.X + (in.Ball.X-in.Anchor.X)*0.25
		if !in.TeamInPossession {
			lineX = in.Anchor.X - 3*sign
		}
		return Point{X: lineX, Y: in.Anchor.Y}

	case RoleRB, RoleLB, RoleWB:
		x := in.Anchor.X
		attackingThird := (sign > 0 && in.Ball.X > 66) || (sign < 0 && in.Ball.X < 34)
		if in.TeamInPossession && attackingThird {
			x = in.Anchor.X + 15*sign
		}
		return Point{X: x, Y: in.Anchor.Y}

	case RoleDM, RoleCM, RoleAM:
		x := in.Anchor.X + (in.Ball.X-in.Anchor.X)*0.7
		if in.Role == RoleDM {
			if sign > 0 && x > 50 {
				x = 50
			}
			if sign < 0 && x < 50 {
				x = 50
			}
		}
		return Point{X: x, Y: in.Anchor.Y}

	case RoleWM, RoleLW, RoleRW:
		if in.Traits.Inverted {
			return Point{X: in.Anchor.X + 10*sign, Y: 50 + (in.Anchor.Y-50)*0.4}
		}
		return Point{X: in.Anchor.X, Y: in.Anchor.Y}

	case RoleST, RoleCF:
		x := in.Anchor.X + (in.Ball.X-in.Anchor.X)*0.3
		if in.Role == RoleCF && in.Traits.FalseNine {
			x -= 15 * sign
		}
		return Point{X: x, Y: in.Anchor.Y}

	default:
		return in.Anchor
	}
}
