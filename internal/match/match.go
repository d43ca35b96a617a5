package match

import (
	"github.com/prometheus/client_golang/prometheus"

	"matchengine/internal/match/spatial"
)

// MatchConfig bundles the immutable inputs needed to construct a Match
// (spec §3/§4.4): both teams, the formation each lines up in, and the seed
// that drives the single PRNG stream for the whole match.
type MatchConfig struct {
	HomeTeam      *Team
	AwayTeam      *Team
	HomeFormation string
	AwayFormation string
	Seed          int64
	Registerer    prometheus.Registerer // optional; nil disables metrics
}

// side is an internal convenience tag so shared logic doesn't special-case
// home/away with string comparisons everywhere.
type side int

const (
	sideHome side = iota
	sideAway
)

func (s side) String() string {
	if s == sideHome {
		return "home"
	}
	return "away"
}

// onPitchPlayer pairs a Lineup slot's role assignment with its live
// PlayerState, for one side.
type onPitchPlayer struct {
	Player *Player
	State  *PlayerState
	Role   Role
	Anchor Point
}

// Match is the State Store: the single mutable owner of everything that
// changes during a simulated game (spec §4.4). Every other component
// receives it (or pieces of it) by reference for the duration of one tick
// and retains nothing across tick boundaries.
type Match struct {
	Home *Team
	Away *Team

	homeFormation Formation
	awayFormation Formation

	homeLineup []onPitchPlayer
	awayLineup []onPitchPlayer
	homeBench  []*Player
	awayBench  []*Player

	states map[string]*PlayerState // playerID -> state, both sides
	roleOf map[string]Role
	teamOf map[string]string // playerID -> team ID
	activeActions map[string]*ActiveAction

	Ball       *BallState
	Possession PossessionState
	Stats      *MatchStats
	Events     *EventLog
	Metrics    *Metrics

	rng *RNG

	Tick   int
	Minute int
	HomeScore int
	AwayScore int

	homeSubsUsed int
	awaySubsUsed int

	cardEscalation map[string]*CardEscalation

	grid        *spatial.SpatialGrid
	gridIndexOf map[string]uint32
	gridIDOf    []string

	Finished bool
}

// NewMatch validates MatchConfig and builds a ready-to-simulate Match (spec
// §4.5 for lineup selection, §4.4 for State Store ownership).
func NewMatch(cfg MatchConfig) (*Match, error) {
	if cfg.HomeTeam == nil || len(cfg.HomeTeam.Roster) < 11 {
		return nil, NewConfigurationInvalid("home_team.roster", "must have at least 11 players")
	}
	if cfg.AwayTeam == nil || len(cfg.AwayTeam.Roster) < 11 {
		return nil, NewConfigurationInvalid("away_team.roster", "must have at least 11 players")
	}
	homeBuilder, ok := Formations[cfg.HomeFormation]
	if !ok {
		return nil, NewConfigurationInvalid("home_formation", "unknown formation: "+cfg.HomeFormation)
	}
	awayBuilder, ok := Formations[cfg.AwayFormation]
	if !ok {
		return nil, NewConfigurationInvalid("away_formation", "unknown formation: "+cfg.AwayFormation)
	}

	homeFormation := homeBuilder()
	awayFormation := awayBuilder().MirrorForAway()

	m := &Match{
		Home:          cfg.HomeTeam,
		Away:          cfg.AwayTeam,
		homeFormation: homeFormation,
		awayFormation: awayFormation,
		states:        make(map[string]*PlayerState),
		roleOf:        make(map[string]Role),
		teamOf:        make(map[string]string),
		activeActions: make(map[string]*ActiveAction),
		Ball:          NewBallState(),
		Stats:         &MatchStats{HomeTeamID: cfg.HomeTeam.ID, AwayTeamID: cfg.AwayTeam.ID},
		Events:        NewEventLog(),
		rng:           NewRNG(cfg.Seed),
		cardEscalation: make(map[string]*CardEscalation),
		grid:          spatial.NewPitchGrid(),
		gridIndexOf:   make(map[string]uint32),
	}
	if cfg.Registerer != nil {
		m.Metrics = NewMetrics(cfg.Registerer)
	}

	homeLineupEntries := SelectLineup(cfg.HomeTeam, homeFormation)
	awayLineupEntries := SelectLineup(cfg.AwayTeam, awayFormation)
	m.homeBench = Bench(cfg.HomeTeam, homeLineupEntries)
	m.awayBench = Bench(cfg.AwayTeam, awayLineupEntries)

	m.homeLineup = m.materialiseLineup(homeLineupEntries, cfg.HomeTeam.ID)
	m.awayLineup = m.materialiseLineup(awayLineupEntries, cfg.AwayTeam.ID)

	m.Possession = NewPossession(cfg.HomeTeam.ID, "", 0)

	return m, nil
}

func (m *Match) materialiseLineup(entries []LineupEntry, teamID string) []onPitchPlayer {
	onPitch := make([]onPitchPlayer, 0, len(entries))
	for _, e := range entries {
		st := NewPlayerState(e.Player.ID, e.Slot.Role, e.Slot.Anchor)
		m.states[e.Player.ID] = st
		m.roleOf[e.Player.ID] = e.Slot.Role
		m.teamOf[e.Player.ID] = teamID
		m.cardEscalation[e.Player.ID] = &CardEscalation{}
		onPitch = append(onPitch, onPitchPlayer{Player: e.Player, State: st, Role: e.Slot.Role, Anchor: e.Slot.Anchor})
	}
	return onPitch
}

// TeamIDOf returns the team a given on-pitch player belongs to.
func (m *Match) TeamIDOf(playerID string) string {
	return m.teamOf[playerID]
}

// StateOf returns the live PlayerState for a player ID, or nil.
func (m *Match) StateOf(playerID string) *PlayerState {
	return m.states[playerID]
}

// IsHomeTeam reports whether teamID is the home side.
func (m *Match) IsHomeTeam(teamID string) bool {
	return teamID == m.Home.ID
}

// lineupFor returns the on-pitch roster for a team ID.
func (m *Match) lineupFor(teamID string) []onPitchPlayer {
	if teamID == m.Home.ID {
		return m.homeLineup
	}
	return m.awayLineup
}

// opponentLineup returns the other side's on-pitch roster.
func (m *Match) opponentLineup(teamID string) []onPitchPlayer {
	if teamID == m.Home.ID {
		return m.awayLineup
	}
	return m.homeLineup
}

// allOnPitch returns every currently-on-pitch player across both sides.
func (m *Match) allOnPitch() []onPitchPlayer {
	all := make([]onPitchPlayer, 0, len(m.homeLineup)+len(m.awayLineup))
	for _, p := range m.homeLineup {
		if p.State.OnPitch() {
			all = append(all, p)
		}
	}
	for _, p := range m.awayLineup {
		if p.State.OnPitch() {
			all = append(all, p)
		}
	}
	return all
}

// rebuildGrid re-indexes every on-pitch player into the spatial grid from
// their start-of-tick positions, clearing any stale entries from the
// previous tick (spec §4.7: neighbour queries must see a consistent
// pre-movement snapshot, never positions mid-update by another player).
func (m *Match) rebuildGrid(all []onPitchPlayer) {
	m.grid.Clear()
	if cap(m.gridIDOf) < len(all) {
		m.gridIDOf = make([]string, len(all))
	} else {
		m.gridIDOf = m.gridIDOf[:len(all)]
	}
	for k := range m.gridIndexOf {
		delete(m.gridIndexOf, k)
	}
	for i, p := range all {
		idx := uint32(i)
		m.gridIDOf[idx] = p.Player.ID
		m.gridIndexOf[p.Player.ID] = idx
		m.grid.Insert(idx, p.State.Position.X, p.State.Position.Y)
	}
}

// nearbyStates returns the PlayerState of every on-pitch player (other than
// excludeID) within radius of (x, y), via the same grid broad-phase/exact
// narrow-phase as neighboursWithin, for callers that need full state rather
// than just a NeighbourRef.
func (m *Match) nearbyStates(x, y, radius float64, excludeID string) []*PlayerState {
	out := make([]*PlayerState, 0, 8)
	for _, idx := range m.grid.QueryRadius(x, y, radius) {
		id := m.gridIDOf[idx]
		if id == "" || id == excludeID {
			continue
		}
		st := m.states[id]
		if st == nil || !st.OnPitch() {
			continue
		}
		if Distance(Point{X: x, Y: y}, st.Position) <= radius {
			out = append(out, st)
		}
	}
	return out
}

// neighboursWithin returns every on-pitch player (other than excludeID)
// within radius of (x, y), using the spatial grid's broad phase followed by
// an exact-distance narrow phase (spec: grid cells are coarser than most
// query radii, so candidates must be re-checked precisely).
func (m *Match) neighboursWithin(x, y, radius float64, excludeID string) []NeighbourRef {
	refs := make([]NeighbourRef, 0, 4)
	for _, idx := range m.grid.QueryRadius(x, y, radius) {
		id := m.gridIDOf[idx]
		if id == "" || id == excludeID {
			continue
		}
		st := m.states[id]
		if st == nil || !st.OnPitch() {
			continue
		}
		d := Distance(Point{X: x, Y: y}, st.Position)
		if d <= radius {
			refs = append(refs, NeighbourRef{PlayerID: id, Position: st.Position, Distance: d})
		}
	}
	sortNeighbours(refs)
	return refs
}

// BallHolderRadius and BallHolderFallbackRadius are spec §4.4's thresholds
// for get_ball_holder.
const (
	BallHolderRadius         = 3.0
	BallHolderFallbackRadius = 15.0
)

// BallHolder implements spec §4.4's get_ball_holder: the player within 3m of
// the ball on the possession team, else the nearest same-team player within
// 15m, else none.
func (m *Match) BallHolder() (string, bool) {
	if m.Possession.TeamID == "" {
		return "", false
	}
	lineup := m.lineupFor(m.Possession.TeamID)
	var nearestID string
	nearestDist := BallHolderFallbackRadius
	found := false
	for _, p := range lineup {
		if !p.State.OnPitch() {
			continue
		}
		d := Distance(p.State.Position, m.Ball.Position)
		if d <= BallHolderRadius {
			return p.Player.ID, true
		}
		if d < nearestDist {
			nearestDist = d
			nearestID = p.Player.ID
			found = true
		}
	}
	if found {
		return nearestID, true
	}
	return "", false
}

// Side returns which side teamID plays on.
func (m *Match) Side(teamID string) side {
	if teamID == m.Home.ID {
		return sideHome
	}
	return sideAway
}
