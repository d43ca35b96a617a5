package match

import "math"

// BallStatus is the closed set of states the ball can be in (spec §3).
type BallStatus string

const (
	BallInPlay BallStatus = "in_play"
	BallShot   BallStatus = "shot"
	BallCross  BallStatus = "cross"
	BallLoose  BallStatus = "loose"
	BallDead   BallStatus = "dead"
)

// BallState is the single shared ball record the tick loop owns (spec §3).
// Position and direction/speed are kept separate from velocity components so
// the physics helpers in geometry.go (PredictTrajectory, friction) can work
// directly off them.
type BallState struct {
	Position  Point
	Direction float64 // radians
	Speed     float64 // pitch units per second
	Height    float64 // 0 = ground, >0 = airborne (approximate, for animation)
	Status    BallStatus

	LastTouchPlayerID string
	LastTouchTeamID   string
}

// NewBallState places a stationary ball at the kickoff spot (pitch centre).
func NewBallState() *BallState {
	return &BallState{
		Position: Point{X: 50, Y: 50},
		Status:   BallInPlay,
	}
}

// Velocity returns the ball's velocity as (dx, dy) in pitch units/second.
func (b *BallState) Velocity() (float64, float64) {
	return math.Cos(b.Direction) * b.Speed, math.Sin(b.Direction) * b.Speed
}

// SetVelocity sets direction/speed from (dx, dy) components.
func (b *BallState) SetVelocity(dx, dy float64) {
	b.Speed = math.Hypot(dx, dy)
	if b.Speed > 0 {
		b.Direction = math.Atan2(dy, dx)
	}
}

// Kick sets the ball moving from its current position toward target, at the
// given speed, and marks it with status (shot/cross/pass all drive through
// this — the caller picks the status). Kick leaves Height unchanged; a caller
// that lofts the ball (the shot resolver) sets Height after kicking.
func (b *BallState) Kick(target Point, speed float64, status BallStatus, byPlayerID, byTeamID string) {
	dx := target.X - b.Position.X
	dy := target.Y - b.Position.Y
	dist := math.Hypot(dx, dy)
	if dist > 0 {
		b.Direction = math.Atan2(dy, dx)
	}
	b.Speed = speed
	b.Status = status
	b.LastTouchPlayerID = byPlayerID
	b.LastTouchTeamID = byTeamID
}

// AdvanceOneTick integrates the ball's motion for one simulated second under
// the same multiplicative friction model used for trajectory prediction
// (geometry.go), clamping the result to the pitch. Once speed decays below
// minBallSpeed the ball stops; a stopped shot or cross becomes loose, any
// other status is kept.
func (b *BallState) AdvanceOneTick() {
	if b.Speed < minBallSpeed {
		b.Speed = 0
		if b.Status == BallShot || b.Status == BallCross {
			b.Status = BallLoose
		}
		return
	}
	steps := int(1.0 / trajectorySampleInterval)
	dx := math.Cos(b.Direction)
	dy := math.Sin(b.Direction)
	for i := 0; i < steps; i++ {
		b.Position = ClampPitch(Point{
			X: b.Position.X + dx*b.Speed*trajectorySampleInterval,
			Y: b.Position.Y + dy*b.Speed*trajectorySampleInterval,
		})
		b.Speed *= friction
		if b.Speed < minBallSpeed {
			b.Speed = 0
			break
		}
	}
	if b.Height > 0 {
		b.Height = math.Max(0, b.Height-0.15)
	}
	if b.Speed == 0 && (b.Status == BallShot || b.Status == BallCross) {
		b.Status = BallLoose
	}
}

// Trajectory predicts this ball's future path from its current state, for
// use by the interception solver (InterceptionPoint).
func (b *BallState) Trajectory() []TrajectorySample {
	return PredictTrajectory(b.Position, b.Direction, b.Speed)
}

// ResetToCentre is used after a goal (spec "Goal Reset").
func (b *BallState) ResetToCentre() {
	b.Position = Point{X: 50, Y: 50}
	b.Speed = 0
	b.Height = 0
	b.Status = BallInPlay
}
