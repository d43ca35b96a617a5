package match

import (
	"sync"
	"time"
)

// TickPhase is the closed set of match-clock phases (spec §12 supplement).
type TickPhase string

const (
	PhaseFirstHalf  TickPhase = "first_half"
	PhaseHalfTime   TickPhase = "half_time"
	PhaseSecondHalf TickPhase = "second_half"
	PhaseFullTime   TickPhase = "full_time"
)

// ClassifyMatchPhase buckets a minute into the half-time/phase boundary
// rule (spec §12 supplement): 0-45 first half, 45 half time, 46-90 second
// half, 90+ full time.
func ClassifyMatchPhase(minute int) TickPhase {
	switch {
	case minute < 45:
		return PhaseFirstHalf
	case minute == 45:
		return PhaseHalfTime
	case minute < 90:
		return PhaseSecondHalf
	default:
		return PhaseFullTime
	}
}

// Tick is the deep-immutable snapshot of one simulated minute the tick loop
// yields (spec §4.15 step 7). Nothing referenced here is mutated by the
// engine after emission.
type Tick struct {
	Minute        int
	Phase         TickPhase
	HomeScore     int
	AwayScore     int
	Ball          BallState
	Possession    PossessionState
	Zone          string
	Events        []Event
	Commentary    []string
	Animations    []AnimationStep
	Stats         MatchStats
	PlayerFatigue map[string]float64
}

// Runner drives the tick loop as a lazy producer (spec §5: single
// suspension point between tick emission and consumer acknowledgement).
// Grounded on the teacher's Engine.Start/Stop stopChan idiom in engine.go,
// adapted from an async goroutine-plus-ticker loop into a synchronous
// producer that blocks on send until the consumer receives, since the
// engine itself must not pace wall-clock time.
type Runner struct {
	match *Match
	ticks chan Tick
	stop  chan struct{}
	stopOnce sync.Once
}

// NewRunner wraps m in a Runner ready to produce ticks via Run.
func NewRunner(m *Match) *Runner {
	return &Runner{
		match: m,
		ticks: make(chan Tick),
		stop:  make(chan struct{}),
	}
}

// Ticks returns the channel ticks are delivered on. It is closed when the
// match finishes or Stop is called.
func (r *Runner) Ticks() <-chan Tick {
	return r.ticks
}

// Stop requests cooperative cancellation. The producer finishes the tick
// currently in flight (never emits a partial tick) and then returns without
// mutating further (spec §5 Cancellation).
func (r *Runner) Stop() {
	r.stopOnce.Do(func() { close(r.stop) })
}

// Run executes the tick loop until the match reaches full time or Stop is
// called, emitting one Tick per simulated minute on the Ticks channel. Run
// must be called from exactly one goroutine; it owns the Match for its
// entire lifetime (spec §5: PRNG/State Store/event log are owned
// exclusively by the match task).
func (r *Runner) Run() {
	defer close(r.ticks)
	for {
		select {
		case <-r.stop:
			return
		default:
		}

		start := timeNow()
		rec := r.match.advanceOneTick()
		r.match.Metrics.ObserveTickDuration(timeSince(start))

		select {
		case r.ticks <- rec:
		case <-r.stop:
			return
		}

		if r.match.Finished {
			return
		}
	}
}

// timeNow/timeSince indirect time.Now/Since so the rest of the package never
// calls them directly (Date.Now-style nondeterminism must stay confined to
// this one wall-clock instrumentation seam, never the simulation itself).
func timeNow() time.Time { return time.Now() }
func timeSince(t time.Time) float64 { return time.Since(t).Seconds() }

// advanceOneTick runs the full §4.15 step order for one simulated minute and
// returns the resulting Tick snapshot.
func (m *Match) advanceOneTick() Tick {
	m.Tick++
	m.Minute = m.Tick
	m.Events.ResetTickBudget()
	tickEvents := make([]Event, 0, 4)
	commentary := make([]string, 0, 4)
	animations := make([]AnimationStep, 0, 4)

	phase := ClassifyMatchPhase(m.Minute)

	// Step 1: cooldowns/timers/fatigue/morale decay, prune stale memories.
	for _, p := range m.allOnPitch() {
		p.State.PruneFailureMemories(m.Tick)
		p.State.Morale = DecayMorale(p.State.Morale)
		highIntensity := p.State.CurrentAction != ActionIdle
		p.State.ApplyFatigueDecay(p.Player.Attributes.NaturalFitness, highIntensity)
	}

	if m.Minute >= subEligibleMinute {
		tickEvents = append(tickEvents, m.applyFatigueSubstitutions()...)
	}
	if phase == PhaseFullTime {
		m.Finished = true
	}

	// Step 2: team phases are derived on demand from m.Possession; nothing to
	// precompute beyond what BuildPerception already reads.

	// Step 3: off-ball movement for all on-pitch players, computed from the
	// start-of-tick snapshot and applied only after every target is chosen
	// (spec §4.7: snapshot-then-apply, no player sees another mid-tick move).
	m.runOffBallMovement()

	// Step 4: on-ball phase.
	holderID, hasHolder := m.BallHolder()
	if hasHolder {
		holderEvents := m.runOnBallPhase(holderID)
		tickEvents = append(tickEvents, holderEvents...)
	}

	// Step 5: ball physics + pass-interception sweep.
	m.Ball.AdvanceOneTick()
	if m.Ball.Status == BallShot && m.Ball.LastTouchPlayerID != "" {
		if ev, ok := m.runPassInterceptionSweep(); ok {
			tickEvents = append(tickEvents, ev)
		}
	}

	// Step 6: event emission, statistics, commentary.
	for _, ev := range tickEvents {
		m.Events.Append(ev)
		m.Stats.Apply(ev)
		if m.Metrics != nil {
			m.Metrics.RecordEvent(ev.Type)
		}
		line := m.describeEvent(ev)
		if line != "" {
			commentary = append(commentary, line)
		}
		animations = append(animations, SequenceForEvent(ev, nil, ev.Position, m.Ball.Position)...)
		if ev.Type == EventGoal {
			m.applyGoalReset(ev.TeamID)
		}
	}
	m.Stats.RecordPossessionTick(m.Possession.TeamID)
	if m.Metrics != nil && m.Possession.TeamID != "" {
		m.Metrics.RecordPossessionTick(m.Side(m.Possession.TeamID).String())
	}

	return Tick{
		Minute:        m.Minute,
		Phase:         phase,
		HomeScore:     m.HomeScore,
		AwayScore:     m.AwayScore,
		Ball:          *m.Ball,
		Possession:    m.Possession,
		Zone:          m.wireZone(),
		Events:        tickEvents,
		Commentary:    commentary,
		Animations:    animations,
		Stats:         *m.Stats,
		PlayerFatigue: m.playerFatigueMap(),
	}
}

// wireZone derives the Tick's coarse zone field (spec §3, §6: "defensive" |
// "middle" | "attacking"), relative to the possessing team's attacking
// direction, or the home side's when the ball is loose.
func (m *Match) wireZone() string {
	sign := attackDirSign(true)
	if m.Possession.TeamID != "" {
		sign = attackDirSign(m.IsHomeTeam(m.Possession.TeamID))
	}
	switch ClassifyZone(m.Ball.Position.X, sign) {
	case ZoneAttackingThird, ZoneAttackingPenalty:
		return "attacking"
	case ZoneMiddleThird:
		return "middle"
	default:
		return "defensive"
	}
}

// playerFatigueMap snapshots every on-pitch player's fatigue level keyed by
// player ID (spec §3, §6: "player_fatigue: {player_id: float}").
func (m *Match) playerFatigueMap() map[string]float64 {
	fatigue := make(map[string]float64, len(m.homeLineup)+len(m.awayLineup))
	for _, p := range m.allOnPitch() {
		fatigue[p.Player.ID] = p.State.Fatigue
	}
	return fatigue
}

// describeEvent resolves player/team names and calls commentary.Describe.
func (m *Match) describeEvent(ev Event) string {
	playerName := m.nameOf(ev.PlayerID)
	targetName := m.nameOf(ev.TargetID)
	teamName := m.Home.Name
	if ev.TeamID == m.Away.ID {
		teamName = m.Away.Name
	}
	return Describe(ev, playerName, targetName, teamName, m.rng)
}

func (m *Match) nameOf(playerID string) string {
	if playerID == "" {
		return ""
	}
	if p := m.Home.PlayerByID(playerID); p != nil {
		return p.Name
	}
	if p := m.Away.PlayerByID(playerID); p != nil {
		return p.Name
	}
	return playerID
}

// runOffBallMovement implements spec §4.7 across both sides: every player
// not currently the ball holder gets a target and steers toward it.
func (m *Match) runOffBallMovement() {
	holderID, _ := m.BallHolder()
	allStates := m.allOnPitch()

	type move struct {
		id  string
		pos Point
		facing float64
	}
	planned := make([]move, 0, len(allStates))

	m.rebuildGrid(allStates)

	for _, p := range allStates {
		if p.Player.ID == holderID {
			continue
		}
		teamID := m.TeamIDOf(p.Player.ID)
		isHome := m.IsHomeTeam(teamID)
		teamInPossession := m.Possession.TeamID == teamID

		nearby := m.nearbyStates(p.State.Position.X, p.State.Position.Y, neighbourRange, p.Player.ID)
		perception := BuildPerception(p.State, teamID, nearby, m.TeamIDOf, m.Ball.Position, teamInPossession)
		isBallCarrierTeammate := holderID != "" && m.TeamIDOf(holderID) == teamID
		isNearestMarker := len(perception.NearestOpponents) > 0 && perception.NearestOpponents[0].Distance < pressureRadius
		micro := SelectMicroAction(p.Role, perception, isBallCarrierTeammate, isNearestMarker)

		target := TargetPoint(TargetPointInput{
			Role:             p.Role,
			IsHome:           isHome,
			Anchor:           p.Anchor,
			Ball:             m.Ball.Position,
			TeamInPossession: teamInPossession,
			Traits:           p.Player.Traits,
		})

		switch micro {
		case MicroMark:
			if len(perception.NearestOpponents) > 0 {
				target = perception.NearestOpponents[0].Position
			}
		case MicroPress:
			target = m.Ball.Position
		case MicroOverlap:
			target = Point{X: target.X + 8*attackDirSign(isHome), Y: target.Y}
		case MicroRecover:
			ownGoalX := 5.0
			if !isHome {
				ownGoalX = 95.0
			}
			target = Point{X: target.X*0.7 + ownGoalX*0.3, Y: target.Y}
		}
		target = ClampToZone(p.Role, isHome, target)

		neighbours := m.neighboursWithin(p.State.Position.X, p.State.Position.Y, personalSpaceRange*3, p.Player.ID)

		maxSpeed := EffectiveMaxSpeed(p.Role, p.State.Fatigue)
		newPos, facing := Steer(SteeringInput{
			Position:   p.State.Position,
			Target:     target,
			MaxSpeed:   maxSpeed,
			Neighbours: neighbours,
			DeltaT:     1.0,
		})
		planned = append(planned, move{id: p.Player.ID, pos: newPos, facing: facing})
	}

	for _, mv := range planned {
		st := m.states[mv.id]
		st.Position = mv.pos
		st.Facing = mv.facing
	}
}

// runOnBallPhase implements spec §4.15 step 4 for the current ball holder.
func (m *Match) runOnBallPhase(holderID string) []Event {
	st := m.states[holderID]
	active, hasActive := m.activeActions[holderID]

	if hasActive && active.Action != "" {
		completed := Advance(st, active, m.Tick)
		if completed {
			events := m.resolveCompletedAction(holderID, *active)
			delete(m.activeActions, holderID)
			return events
		}
		return nil
	}

	teamID := m.TeamIDOf(holderID)
	player := m.playerOf(holderID)
	isHome := m.IsHomeTeam(teamID)
	role := m.roleOf[holderID]

	ownScore, oppScore := m.HomeScore, m.AwayScore
	if !isHome {
		ownScore, oppScore = m.AwayScore, m.HomeScore
	}

	opponents := m.opponentPositions(teamID)
	teammates, teammateIDs := m.teammatePositions(holderID, teamID)

	sign := attackDirSign(isHome)
	zone := ClassifyZone(m.Ball.Position.X, sign)
	pressureLevel, _ := ClassifyPressure(st.Position, opponents)
	passOpts := PassingOptions(st.Position, teammates, teammateIDs, opponents)
	space := AvailableSpace(st.Position, opponents)

	ctx := DecisionContext{
		Zone:        zone,
		Pressure:    pressureLevel,
		PassOptions: len(passOpts),
		Space:       space,
		GameState:   ClassifyGameState(ownScore, oppScore),
		TimePhase:   ClassifyTimePhase(m.Minute),
		MinutesLeft: 90 - m.Minute,
		Role:        role,
		Attrs: EffectiveAttributeInput{
			Player: player, State: st, OccupiedRole: role, IsHome: isHome,
			Tactic: m.tacticFor(teamID), Minute: m.Minute,
		},
	}

	decision := SelectDecision(ctx, player, st, m.Tick, m.rng)
	scheduled, targetID := m.decisionToScheduledAction(decision, holderID, teamID, passOpts)

	newActive, started := Begin(st, scheduled, targetID, m.Tick)
	if started {
		m.activeActions[holderID] = &newActive
	}
	return nil
}

func (m *Match) decisionToScheduledAction(d DecisionAction, holderID, teamID string, passOpts []PassOption) (ScheduledAction, string) {
	switch d {
	case DecisionShoot:
		return ActionShot, ""
	case DecisionCross:
		if len(passOpts) > 0 {
			return ActionCross, passOpts[0].TeammateID
		}
		return ActionCross, ""
	case DecisionPass:
		if len(passOpts) > 0 {
			idx := m.rng.IntN(len(passOpts))
			return ActionPass, passOpts[idx].TeammateID
		}
		return ActionHold, ""
	case DecisionDribble:
		return ActionDribble, ""
	default:
		return ActionHold, ""
	}
}

// resolveCompletedAction implements spec §4.10/§4.11 once a scheduled action
// finishes: passes and crosses go to the Contest Resolver against nearby
// opponents; shots roll the goal model; dribble/hold just update the ball.
func (m *Match) resolveCompletedAction(holderID string, active ActiveAction) []Event {
	st := m.states[holderID]
	teamID := m.TeamIDOf(holderID)
	player := m.playerOf(holderID)
	isHome := m.IsHomeTeam(teamID)

	switch active.Action {
	case ActionPass, ActionCross:
		return m.resolvePassLikeAction(holderID, active)

	case ActionShot:
		return m.resolveShotAction(holderID, player, isHome)

	case ActionDribble:
		st.Position = ClampPitch(Point{X: st.Position.X + (m.Ball.Position.X-st.Position.X)*0.1 + 2*attackDirSign(isHome), Y: st.Position.Y})
		m.Ball.Position = st.Position
		return m.challengeDribble(holderID, player, st, teamID)

	default:
		return nil
	}
}

// challengeDribble lets the nearest marking opponent contest a completed
// dribble (spec §4.10 contest type tackle, §4.11 foul/card escalation).
func (m *Match) challengeDribble(holderID string, attacker *Player, attackerState *PlayerState, teamID string) []Event {
	opponents := m.opponentLineup(teamID)
	var defender *onPitchPlayer
	nearest := contestRadius(ContestTackle)
	for i := range opponents {
		o := &opponents[i]
		if !o.State.OnPitch() {
			continue
		}
		d := Distance(o.State.Position, attackerState.Position)
		if d < nearest {
			nearest = d
			defender = o
		}
	}
	if defender == nil {
		return nil
	}

	foulProb := FoulProbability(float64(attacker.Attributes.Dribbling), float64(defender.Player.Attributes.Aggression), m.tacticFor(m.TeamIDOf(defender.Player.ID)).Flags.TackleHarder)
	if m.rng.Bernoulli(foulProb) {
		defenderTeamID := m.TeamIDOf(defender.Player.ID)
		isPenalty := IsPenaltyArea(attackerState.Position)
		isRed := m.rng.Bernoulli(0.04)
		sentOff := m.cardEscalation[defender.Player.ID].Apply(isRed)
		events := make([]Event, 0, 2)
		if isPenalty {
			events = append(events, NewEvent(EventPenalty, m.Tick, m.Minute, teamID, holderID, attackerState.Position).WithTarget(defender.Player.ID))
		} else {
			events = append(events, NewEvent(EventFoul, m.Tick, m.Minute, defenderTeamID, defender.Player.ID, attackerState.Position).WithTarget(holderID))
		}
		if sentOff {
			defender.State.SentOff = true
			events = append(events, NewEvent(EventRedCard, m.Tick, m.Minute, defenderTeamID, defender.Player.ID, attackerState.Position))
		} else if m.rng.Bernoulli(0.3) {
			defender.State.YellowCards++
			events = append(events, NewEvent(EventYellowCard, m.Tick, m.Minute, defenderTeamID, defender.Player.ID, attackerState.Position))
		}
		return events
	}

	candidates := []ContestCandidate{
		m.candidateFor(holderID, attackerState, true, false),
		m.toCandidate(*defender, false, false),
	}
	outcome := ResolveContest(ContestTackle, candidates, m.Ball.Position, attackerState.Position, attackerState.Position, 0.3, m.rng)
	if outcome.WinnerID == holderID {
		defenderTeamID := m.TeamIDOf(defender.Player.ID)
		return []Event{NewEvent(EventPressing, m.Tick, m.Minute, defenderTeamID, defender.Player.ID, defender.State.Position).WithTarget(holderID)}
	}
	m.Possession = ApplyContestResult(m.Ball, outcome, ContestTackle, defender.State.Position, defender.State, m.Tick)
	if m.Metrics != nil {
		m.Metrics.RecordContest(ContestTackle)
	}
	return []Event{NewEvent(EventTackle, m.Tick, m.Minute, m.TeamIDOf(defender.Player.ID), defender.Player.ID, defender.State.Position).WithTarget(holderID)}
}

// candidateFor builds a ContestCandidate for a player identified by ID,
// used when the contestant isn't already wrapped in an onPitchPlayer.
func (m *Match) candidateFor(playerID string, state *PlayerState, isInitiator, isTarget bool) ContestCandidate {
	p := m.playerOf(playerID)
	return ContestCandidate{
		PlayerID:        playerID,
		TeamID:          m.TeamIDOf(playerID),
		Position:        state.Position,
		EffectivePace:   float64(p.Attributes.Pace),
		Fatigue:         state.Fatigue,
		BallControl:     float64(p.Attributes.BallControl),
		Reactions:       float64(p.Attributes.Reactions),
		Composure:       float64(p.Attributes.Composure),
		StandingTackle:  float64(p.Attributes.Tackling),
		HeadingAccuracy: float64(p.Attributes.Heading),
		IsInitiator:     isInitiator,
		IsTarget:        isTarget,
	}
}

func (m *Match) resolvePassLikeAction(holderID string, active ActiveAction) []Event {
	st := m.states[holderID]
	teamID := m.TeamIDOf(holderID)
	targetPos := st.Position
	if target := m.states[active.TargetID]; target != nil {
		targetPos = target.Position
	}

	if active.Action == ActionPass && active.TargetID != "" {
		if ev, offside := m.checkOffside(holderID, active.TargetID, teamID, targetPos); offside {
			return []Event{ev}
		}
	}

	opponents := m.opponentLineup(teamID)
	candidates := make([]ContestCandidate, 0, len(opponents)+1)
	for _, o := range opponents {
		if !o.State.OnPitch() {
			continue
		}
		if Distance(o.State.Position, st.Position) > contestRadius(ContestPass) && Distance(o.State.Position, targetPos) > contestRadius(ContestPass) {
			continue
		}
		candidates = append(candidates, m.toCandidate(o, false, false))
	}
	if target := m.states[active.TargetID]; target != nil {
		candidates = append(candidates, ContestCandidate{
			PlayerID: active.TargetID, TeamID: teamID, Position: target.Position,
			EffectivePace:   m.effectivePace(active.TargetID),
			Fatigue:         target.Fatigue,
			BallControl:     float64(m.playerOf(active.TargetID).Attributes.BallControl),
			Reactions:       float64(m.playerOf(active.TargetID).Attributes.Reactions),
			Composure:       float64(m.playerOf(active.TargetID).Attributes.Composure),
			IsTarget:        true,
		})
	}

	if len(candidates) == 0 {
		m.Ball.Kick(targetPos, 10, BallLoose, holderID, teamID)
		return []Event{NewEvent(EventPassFailed, m.Tick, m.Minute, teamID, holderID, st.Position)}
	}

	outcome := ResolveContest(ContestPass, candidates, m.Ball.Position, st.Position, targetPos, 0.2, m.rng)
	winnerPos := targetPos
	for _, c := range candidates {
		if c.PlayerID == outcome.WinnerID {
			winnerPos = c.Position
			break
		}
	}
	winnerState := m.states[outcome.WinnerID]
	m.Possession = ApplyContestResult(m.Ball, outcome, ContestPass, winnerPos, winnerState, m.Tick)
	if m.Metrics != nil {
		m.Metrics.RecordContest(ContestPass)
	}

	completedType := EventPass
	if active.Action == ActionCross {
		completedType = EventCross
	}

	if outcome.WinnerID == active.TargetID {
		return []Event{NewEvent(completedType, m.Tick, m.Minute, teamID, holderID, st.Position).WithTarget(active.TargetID)}
	}
	winnerTeam := m.TeamIDOf(outcome.WinnerID)
	if winnerTeam != teamID {
		return []Event{NewEvent(EventInterception, m.Tick, m.Minute, winnerTeam, outcome.WinnerID, winnerPos)}
	}
	return []Event{NewEvent(EventPassFailed, m.Tick, m.Minute, teamID, holderID, st.Position)}
}

// offsideLineX returns the most advanced outfield defender's x position for
// the team defending against teamID's attack, in teamID's attacking
// direction (spec §4.11: offside is judged against the second-last
// defender, goalkeeper excluded).
func (m *Match) offsideLineX(teamID string, sign float64) float64 {
	line := 50.0
	found := false
	for _, o := range m.opponentLineup(teamID) {
		if o.Role == RoleGK || !o.State.OnPitch() {
			continue
		}
		x := o.State.Position.X
		if !found {
			line, found = x, true
			continue
		}
		if (sign > 0 && x > line) || (sign < 0 && x < line) {
			line = x
		}
	}
	return line
}

// checkOffside rolls spec §4.11's stochastic offside call for a forward
// pass whose receiver is beyond the defending line when it's played.
func (m *Match) checkOffside(holderID, targetID, teamID string, targetPos Point) (Event, bool) {
	isHome := m.IsHomeTeam(teamID)
	sign := attackDirSign(isHome)
	line := m.offsideLineX(teamID, sign)
	beyond := (sign > 0 && targetPos.X > line) || (sign < 0 && targetPos.X < line)
	if !beyond {
		return Event{}, false
	}

	discipline := 10.0
	count := 0
	sumAnticipation := 0.0
	for _, o := range m.opponentLineup(teamID) {
		if o.Role == RoleGK {
			continue
		}
		sumAnticipation += float64(o.Player.Attributes.Anticipation)
		count++
	}
	if count > 0 {
		discipline = sumAnticipation / float64(count)
	}
	attackerAnticipation := float64(m.playerOf(targetID).Attributes.Anticipation)

	prob := OffsideProbability(discipline, attackerAnticipation)
	if !m.rng.Bernoulli(prob) {
		return Event{}, false
	}
	defendingTeamID := m.Away.ID
	if teamID == m.Away.ID {
		defendingTeamID = m.Home.ID
	}
	m.Possession = NewPossession(defendingTeamID, "", m.Tick)
	return NewEvent(EventOffside, m.Tick, m.Minute, teamID, targetID, targetPos), true
}

func (m *Match) resolveShotAction(holderID string, player *Player, isHome bool) []Event {
	st := m.states[holderID]
	goalX := 100.0
	if !isHome {
		goalX = 0.0
	}
	goalPos := Point{X: goalX, Y: 50}
	dist := Distance(st.Position, goalPos)
	angle := abs(st.Position.Y - 50)

	attrs := EffectiveAttributeInput{Player: player, State: st, OccupiedRole: m.roleOf[holderID], IsHome: isHome, Tactic: m.tacticFor(m.TeamIDOf(holderID)), Minute: m.Minute}
	finishing := EffectiveAttribute(AttrFinishing, attrs)
	composure := EffectiveAttribute(AttrComposure, attrs)

	opponents := m.opponentPositions(m.TeamIDOf(holderID))
	_, pressureCount := ClassifyPressure(st.Position, opponents)
	pressure := Clamp01(float64(pressureCount) / 3)

	goalProb := GoalProbability(GoalProbabilityInput{
		DistanceToGoal: dist, AngleOffCentre: angle, Finishing: finishing, Composure: composure, Pressure: pressure,
	})
	outcome := ResolveShot(goalProb, 0.55, m.rng)

	m.Ball.Kick(goalPos, 20, BallShot, holderID, m.TeamIDOf(holderID))
	m.Ball.Height = 1.5

	teamID := m.TeamIDOf(holderID)
	switch outcome {
	case ShotGoal:
		return []Event{NewEvent(EventGoal, m.Tick, m.Minute, teamID, holderID, goalPos)}
	case ShotOnTargetSaved:
		events := []Event{NewEvent(EventShotOnTarget, m.Tick, m.Minute, teamID, holderID, st.Position)}
		if gkID, defendingTeamID, ok := m.goalkeeperOf(teamID); ok {
			events = append(events, NewEvent(EventSave, m.Tick, m.Minute, defendingTeamID, gkID, goalPos))
		}
		if m.rng.Bernoulli(cornerAfterSaveProb) {
			m.Possession = NewPossession(teamID, "", m.Tick)
			events = append(events, NewEvent(EventCorner, m.Tick, m.Minute, teamID, holderID, goalPos))
		}
		return events
	default:
		return []Event{NewEvent(EventShotOffTarget, m.Tick, m.Minute, teamID, holderID, st.Position)}
	}
}

// goalkeeperOf finds the on-pitch goalkeeper defending against teamID's
// attack, for crediting a save.
func (m *Match) goalkeeperOf(attackingTeamID string) (gkID, defendingTeamID string, ok bool) {
	for _, o := range m.opponentLineup(attackingTeamID) {
		if o.Role == RoleGK && o.State.OnPitch() {
			return o.Player.ID, m.TeamIDOf(o.Player.ID), true
		}
	}
	return "", "", false
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

// byelineApproachDistance is how close to a team's own goal line a loose
// ball must land for a failed clearance to go behind for a corner instead
// of staying in play (spec §4.11: "Corner: after a save or deflection past
// the goal line").
const byelineApproachDistance = 12.0

// cornerAfterSaveProb and cornerAfterClearanceProb are the stochastic rates
// at which a saved shot or a goal-line clearance deflects behind for a
// corner rather than staying with the defence (spec §4.11).
const cornerAfterSaveProb = 0.35
const cornerAfterClearanceProb = 0.2

// runPassInterceptionSweep lets any eligible opponent contest a ball already
// in flight from a shot that missed (rebounds/clearances), per spec §4.10
// with contest type pass/loose_ball run every tick the ball stays airborne.
func (m *Match) runPassInterceptionSweep() (Event, bool) {
	if m.Ball.LastTouchTeamID == "" {
		return Event{}, false
	}
	defenders := m.opponentLineup(m.Ball.LastTouchTeamID)
	var nearest *onPitchPlayer
	nearestDist := contestRadius(ContestLooseBall)
	for i := range defenders {
		d := defenders[i]
		if !d.State.OnPitch() {
			continue
		}
		dist := Distance(d.State.Position, m.Ball.Position)
		if dist < nearestDist {
			nearestDist = dist
			nearest = &defenders[i]
		}
	}
	if nearest == nil {
		return Event{}, false
	}
	teamID := m.TeamIDOf(nearest.Player.ID)
	attackingTeamID := m.Ball.LastTouchTeamID
	goalX := 0.0
	if !m.IsHomeTeam(teamID) {
		goalX = 100.0
	}
	nearGoalLine := abs(m.Ball.Position.X-goalX) <= byelineApproachDistance
	if nearGoalLine && m.rng.Bernoulli(cornerAfterClearanceProb) {
		m.Possession = NewPossession(attackingTeamID, "", m.Tick)
		return NewEvent(EventCorner, m.Tick, m.Minute, attackingTeamID, nearest.Player.ID, nearest.State.Position), true
	}
	m.Possession = ApplyContestResult(m.Ball, ContestOutcome{WinnerID: nearest.Player.ID, WinnerTeamID: teamID}, ContestLooseBall, nearest.State.Position, nearest.State, m.Tick)
	return NewEvent(EventClearance, m.Tick, m.Minute, teamID, nearest.Player.ID, nearest.State.Position), true
}

func (m *Match) toCandidate(p onPitchPlayer, isInitiator, isTarget bool) ContestCandidate {
	return ContestCandidate{
		PlayerID:        p.Player.ID,
		TeamID:          m.TeamIDOf(p.Player.ID),
		Position:        p.State.Position,
		EffectivePace:   float64(p.Player.Attributes.Pace),
		Fatigue:         p.State.Fatigue,
		BallControl:     float64(p.Player.Attributes.BallControl),
		Reactions:       float64(p.Player.Attributes.Reactions),
		Composure:       float64(p.Player.Attributes.Composure),
		StandingTackle:  float64(p.Player.Attributes.Tackling),
		HeadingAccuracy: float64(p.Player.Attributes.Heading),
		IsInitiator:     isInitiator,
		IsTarget:        isTarget,
	}
}

func (m *Match) effectivePace(playerID string) float64 {
	if p := m.playerOf(playerID); p != nil {
		return float64(p.Attributes.Pace)
	}
	return 10
}

func (m *Match) playerOf(playerID string) *Player {
	if p := m.Home.PlayerByID(playerID); p != nil {
		return p
	}
	return m.Away.PlayerByID(playerID)
}

func (m *Match) tacticFor(teamID string) Tactic {
	if teamID == m.Home.ID {
		return m.Home.EffectiveTactic()
	}
	return m.Away.EffectiveTactic()
}

func (m *Match) opponentPositions(teamID string) []Point {
	pts := make([]Point, 0, 11)
	for _, p := range m.opponentLineup(teamID) {
		if p.State.OnPitch() {
			pts = append(pts, p.State.Position)
		}
	}
	return pts
}

func (m *Match) teammatePositions(excludeID, teamID string) ([]Point, []string) {
	pts := make([]Point, 0, 10)
	ids := make([]string, 0, 10)
	for _, p := range m.lineupFor(teamID) {
		if p.Player.ID == excludeID || !p.State.OnPitch() {
			continue
		}
		pts = append(pts, p.State.Position)
		ids = append(ids, p.Player.ID)
	}
	return pts, ids
}

// applyGoalReset implements spec §4.15's Goal Reset: ball to centre,
// possession to the conceding team, every player back to their formation
// anchor, fatigue preserved but capped.
func (m *Match) applyGoalReset(scoringTeamID string) {
	if scoringTeamID == m.Home.ID {
		m.HomeScore++
		if m.Metrics != nil {
			m.Metrics.RecordGoal("home")
		}
	} else {
		m.AwayScore++
		if m.Metrics != nil {
			m.Metrics.RecordGoal("away")
		}
	}

	m.Ball.ResetToCentre()
	concedingTeamID := m.Away.ID
	if scoringTeamID == m.Away.ID {
		concedingTeamID = m.Home.ID
	}
	m.Possession = NewPossession(concedingTeamID, "", m.Tick)

	for _, p := range m.homeLineup {
		p.State.Position = p.Anchor
		if p.State.Fatigue > 0.6 {
			p.State.Fatigue = 0.6
		}
	}
	for _, p := range m.awayLineup {
		p.State.Position = p.Anchor
		if p.State.Fatigue > 0.6 {
			p.State.Fatigue = 0.6
		}
	}
	m.activeActions = make(map[string]*ActiveAction)
}

// fatigueSubThreshold and subEligibleMinute gate the automatic substitution
// policy (spec §12 supplement).
const fatigueSubThreshold = 0.85
const subEligibleMinute = 60

// applyFatigueSubstitutions runs every tick from subEligibleMinute onward and
// performs any fatigue-driven substitutions that are due (spec §12
// supplement: up to 3 per team, swapping the most fatigued on-pitch player
// for the first player left on the bench, whatever their position), returning a
// substitution event for each swap made.
func (m *Match) applyFatigueSubstitutions() []Event {
	events := make([]Event, 0, 2)
	var ev Event
	var made bool
	m.homeLineup, m.homeBench, m.homeSubsUsed, ev, made = m.substituteFatigued(m.homeLineup, m.homeBench, m.homeSubsUsed, m.Home.ID)
	if made {
		events = append(events, ev)
	}
	m.awayLineup, m.awayBench, m.awaySubsUsed, ev, made = m.substituteFatigued(m.awayLineup, m.awayBench, m.awaySubsUsed, m.Away.ID)
	if made {
		events = append(events, ev)
	}
	return events
}

func (m *Match) substituteFatigued(lineup []onPitchPlayer, bench []*Player, used int, teamID string) ([]onPitchPlayer, []*Player, int, Event, bool) {
	if used >= MaxSubstitutionsPerTeam || len(bench) == 0 {
		return lineup, bench, used, Event{}, false
	}
	worstIdx := -1
	worstFatigue := fatigueSubThreshold
	for i, p := range lineup {
		if p.State.OnPitch() && p.State.Fatigue > worstFatigue {
			worstFatigue = p.State.Fatigue
			worstIdx = i
		}
	}
	if worstIdx < 0 {
		return lineup, bench, used, Event{}, false
	}
	outgoing := lineup[worstIdx]
	replacement := bench[0]
	bench = bench[1:]

	outgoing.State.SubbedOff = true
	newState := NewPlayerState(replacement.ID, outgoing.Role, outgoing.Anchor)
	m.states[replacement.ID] = newState
	m.roleOf[replacement.ID] = outgoing.Role
	m.teamOf[replacement.ID] = teamID
	m.cardEscalation[replacement.ID] = &CardEscalation{}

	lineup[worstIdx] = onPitchPlayer{Player: replacement, State: newState, Role: outgoing.Role, Anchor: outgoing.Anchor}
	used++
	ev := NewEvent(EventSubstitution, m.Tick, m.Minute, teamID, replacement.ID, outgoing.Anchor).WithTarget(outgoing.Player.ID)
	return lineup, bench, used, ev, true
}
