package match

import "math"

// ContestType is the closed set of ball duels the Contest Resolver handles.
// It is the only component permitted to change possession (spec §4.10).
type ContestType string

const (
	ContestPass         ContestType = "pass"
	ContestTackle       ContestType = "tackle"
	ContestInterception ContestType = "interception"
	ContestHeader       ContestType = "header"
	ContestLooseBall    ContestType = "loose_ball"
)

// contestRadius is spec §4.10 step 1's type-dependent contestant radius.
func contestRadius(t ContestType) float64 {
	if t == ContestPass {
		return 15.0
	}
	return 8.0
}

// passBallSpeed is the nominal ball speed used to estimate flight time for a
// pass contest (spec §4.10 step 2: "25 m·s⁻¹").
const passBallSpeed = 25.0

// ContestCandidate is one player considered as a contestant, with the
// physics inputs the Score function needs (spec §4.10 step 2).
type ContestCandidate struct {
	PlayerID         string
	TeamID           string
	Position         Point
	EffectivePace    float64 // 1-20 scale, pre-fatigue
	Fatigue          float64
	BallControl      float64
	Reactions        float64
	Composure        float64
	StandingTackle   float64
	HeadingAccuracy  float64
	RecentCooldown   bool
	IsInitiator      bool
	IsTarget         bool
}

// contestantPhysics holds the derived per-contestant numbers spec §4.10
// step 2 lists.
type contestantPhysics struct {
	distanceToBall   float64
	effectiveSpeed   float64
	timeToBall       float64
	ballFlightTime   float64
	distanceToLane   float64
	firstTouch       float64
	composureFactor  float64
}

func computePhysics(c ContestCandidate, ballPos Point, passOrigin Point, passTarget Point, isPass bool, pressure float64) contestantPhysics {
	dist := Distance(c.Position, ballPos)
	speed := (c.EffectivePace / 10) * (1 - c.Fatigue*0.4)
	if speed < 0.1 {
		speed = 0.1
	}
	timeToBall := dist/speed + 0.3

	var flight, laneDist float64
	if isPass {
		passDist := Distance(passOrigin, passTarget)
		flight = passDist / passBallSpeed
		laneDist = DistanceToSegment(c.Position, passOrigin, passTarget)
	}

	firstTouch := (c.BallControl + c.Reactions) / 2 / 100
	composure := c.Composure / 100 * (1 - pressure*0.3)

	return contestantPhysics{
		distanceToBall:  dist,
		effectiveSpeed:  speed,
		timeToBall:      timeToBall,
		ballFlightTime:  flight,
		distanceToLane:  laneDist,
		firstTouch:      firstTouch,
		composureFactor: composure,
	}
}

// laneAngleNearTolerance is how close to perpendicular (90°) an interception
// angle must be to earn the pass-contest angle bonus (spec §4.10 step 3).
const laneAngleNearTolerance = 20.0

func interceptAngleDegrees(pos, origin, target Point) float64 {
	toPos := math.Atan2(pos.Y-origin.Y, pos.X-origin.X)
	toTarget := math.Atan2(target.Y-origin.Y, target.X-origin.X)
	diff := math.Abs(toPos - toTarget)
	for diff > math.Pi {
		diff -= 2 * math.Pi
	}
	return math.Abs(diff) * 180 / math.Pi
}

// ScoreCandidate implements spec §4.10 step 3's scoring formula.
func ScoreCandidate(c ContestCandidate, t ContestType, ballPos, passOrigin, passTarget Point, pressure float64) float64 {
	isPass := t == ContestPass
	phys := computePhysics(c, ballPos, passOrigin, passTarget, isPass, pressure)

	score := 100.0

	timeAdvantage := 0.0
	if isPass {
		if phys.ballFlightTime > 0 {
			timeAdvantage = Clamp01(phys.ballFlightTime / math.Max(phys.timeToBall, 0.01))
		}
	} else {
		timeAdvantage = Clamp01(1.0 / math.Max(phys.timeToBall, 0.01))
	}
	score *= 0.5 + 0.5*timeAdvantage

	score *= math.Max(phys.firstTouch, 0.01)
	score *= math.Max(phys.composureFactor, 0.01)

	switch t {
	case ContestPass:
		if phys.distanceToLane < 5 {
			score *= 1.3
		}
		angle := interceptAngleDegrees(c.Position, passOrigin, passTarget)
		if math.Abs(angle-90) <= laneAngleNearTolerance {
			score *= 1.2
		}
	case ContestTackle:
		score *= c.StandingTackle / 100
	case ContestHeader:
		score *= c.HeadingAccuracy / 100
	}

	fatiguePenalty := math.Max(0.6, 1-c.Fatigue*0.4)
	score *= fatiguePenalty

	if c.RecentCooldown {
		score *= 0.7
	}

	return score
}

// ContestOutcome is the winner and the ranked field (spec §4.10 step 4).
type ContestOutcome struct {
	WinnerID string
	WinnerTeamID string
	Ranked   []ContestCandidate
	Scores   map[string]float64
}

// ResolveContest runs spec §4.10 steps 1-4: score every candidate, rank,
// then probabilistically pick the winner from the top three weighted by
// how large the lead is.
func ResolveContest(t ContestType, candidates []ContestCandidate, ballPos, passOrigin, passTarget Point, pressure float64, rng *RNG) ContestOutcome {
	if len(candidates) == 0 {
		return ContestOutcome{}
	}
	scores := make(map[string]float64, len(candidates))
	for _, c := range candidates {
		scores[c.PlayerID] = ScoreCandidate(c, t, ballPos, passOrigin, passTarget, pressure)
	}
	ranked := make([]ContestCandidate, len(candidates))
	copy(ranked, candidates)
	sortCandidatesByScore(ranked, scores)

	top := ranked
	if len(top) > 3 {
		top = top[:3]
	}

	winner := top[0]
	if len(top) > 1 {
		gap := 0.0
		if scores[top[0].PlayerID] > 0 {
			gap = (scores[top[0].PlayerID] - scores[top[1].PlayerID]) / scores[top[0].PlayerID]
		}
		var pFirst float64
		switch {
		case gap > 0.20:
			pFirst = 0.95
		case gap > 0.10:
			pFirst = 0.75
		default:
			pFirst = 0.60
		}
		if !rng.Bernoulli(pFirst) {
			winner = top[1]
		}
	}

	return ContestOutcome{WinnerID: winner.PlayerID, WinnerTeamID: winner.TeamID, Ranked: ranked, Scores: scores}
}

func sortCandidatesByScore(cands []ContestCandidate, scores map[string]float64) {
	for i := 1; i < len(cands); i++ {
		for j := i; j > 0 && scores[cands[j].PlayerID] > scores[cands[j-1].PlayerID]; j-- {
			cands[j], cands[j-1] = cands[j-1], cands[j]
		}
	}
}

// postContestCooldownTicks is spec §4.10 step 5's cooldown-after-result
// table.
func postContestCooldownTicks(t ContestType) int {
	switch t {
	case ContestPass:
		return 2
	case ContestTackle:
		return 3
	case ContestInterception:
		return 4
	default:
		return 2
	}
}

// ApplyContestResult moves the ball to the winner, zeroes its speed, grants
// the standard possession-protection window, and sets the post-contest
// cooldown for the contest type (spec §4.10 step 5 and "Possession
// protection").
func ApplyContestResult(ball *BallState, outcome ContestOutcome, t ContestType, winnerPos Point, winnerState *PlayerState, tick int) PossessionState {
	ball.Position = winnerPos
	ball.Speed = 0
	ball.Status = BallInPlay
	ball.LastTouchPlayerID = outcome.WinnerID
	ball.LastTouchTeamID = outcome.WinnerTeamID

	winnerState.SetCooldown(string(t), tick, postContestCooldownTicks(t))

	return NewPossession(outcome.WinnerTeamID, outcome.WinnerID, tick)
}
