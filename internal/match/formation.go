package match

import "sort"

// FormationSlot pairs a role with its anchor point on the pitch, expressed
// as if the team were attacking toward x=100 (the "home" convention). Away
// teams get their anchors mirrored in x by MirrorForAway (spec §3: Formation).
type FormationSlot struct {
	Role   Role
	Anchor Point
}

// Formation is a named template of 11 (role, anchor) slots.
type Formation struct {
	Name  string
	Slots []FormationSlot
}

// Formation442 is the classic 4-4-2.
func Formation442() Formation {
	return Formation{Name: "4-4-2", Slots: []FormationSlot{
		{RoleGK, Point{5, 50}},
		{RoleCB, Point{20, 35}}, {RoleCB, Point{20, 65}},
		{RoleRB, Point{25, 85}}, {RoleLB, Point{25, 15}},
		{RoleWM, Point{50, 85}}, {RoleCM, Point{48, 40}}, {RoleCM, Point{48, 60}}, {RoleWM, Point{50, 15}},
		{RoleST, Point{80, 40}}, {RoleST, Point{80, 60}},
	}}
}

// Formation433 is the 4-3-3.
func Formation433() Formation {
	return Formation{Name: "4-3-3", Slots: []FormationSlot{
		{RoleGK, Point{5, 50}},
		{RoleCB, Point{20, 35}}, {RoleCB, Point{20, 65}},
		{RoleRB, Point{25, 85}}, {RoleLB, Point{25, 15}},
		{RoleDM, Point{42, 50}}, {RoleCM, Point{55, 32}}, {RoleCM, Point{55, 68}},
		{RoleLW, Point{80, 15}}, {RoleST, Point{85, 50}}, {RoleRW, Point{80, 85}},
	}}
}

// Formation352 is the 3-5-2.
func Formation352() Formation {
	return Formation{Name: "3-5-2", Slots: []FormationSlot{
		{RoleGK, Point{5, 50}},
		{RoleCB, Point{20, 25}}, {RoleCB, Point{18, 50}}, {RoleCB, Point{20, 75}},
		{RoleWB, Point{45, 90}}, {RoleWB, Point{45, 10}},
		{RoleDM, Point{42, 50}}, {RoleCM, Point{58, 35}}, {RoleCM, Point{58, 65}},
		{RoleST, Point{82, 40}}, {RoleST, Point{82, 60}},
	}}
}

// Formation4231 is the 4-2-3-1.
func Formation4231() Formation {
	return Formation{Name: "4-2-3-1", Slots: []FormationSlot{
		{RoleGK, Point{5, 50}},
		{RoleCB, Point{20, 35}}, {RoleCB, Point{20, 65}},
		{RoleRB, Point{25, 85}}, {RoleLB, Point{25, 15}},
		{RoleDM, Point{40, 40}}, {RoleDM, Point{40, 60}},
		{RoleLW, Point{68, 15}}, {RoleAM, Point{70, 50}}, {RoleRW, Point{68, 85}},
		{RoleST, Point{88, 50}},
	}}
}

// Formation343 is the 3-4-3.
func Formation343() Formation {
	return Formation{Name: "3-4-3", Slots: []FormationSlot{
		{RoleGK, Point{5, 50}},
		{RoleCB, Point{20, 25}}, {RoleCB, Point{18, 50}}, {RoleCB, Point{20, 75}},
		{RoleWB, Point{48, 88}}, {RoleCM, Point{50, 38}}, {RoleCM, Point{50, 62}}, {RoleWB, Point{48, 12}},
		{RoleLW, Point{82, 15}}, {RoleST, Point{85, 50}}, {RoleRW, Point{82, 85}},
	}}
}

// Formations is the closed catalogue of named templates (spec §3).
var Formations = map[string]func() Formation{
	"4-4-2":   Formation442,
	"4-3-3":   Formation433,
	"3-5-2":   Formation352,
	"4-2-3-1": Formation4231,
	"3-4-3":   Formation343,
}

// MirrorForAway flips a formation's anchors so the away team (attacking
// toward x=0) uses the same template shape from its own end of the pitch.
func (f Formation) MirrorForAway() Formation {
	mirrored := Formation{Name: f.Name, Slots: make([]FormationSlot, len(f.Slots))}
	for i, s := range f.Slots {
		mirrored.Slots[i] = FormationSlot{Role: s.Role, Anchor: Point{X: 100 - s.Anchor.X, Y: s.Anchor.Y}}
	}
	return mirrored
}

// groupPriority orders roles for bench-fill and lineup-selection purposes:
// goalkeeper first, then outward from defence to attack (spec §4.5).
func groupPriority(r Role) int {
	switch r.Group() {
	case GroupGoalkeeper:
		return 0
	case GroupDefender:
		return 1
	case GroupMidfielder:
		return 2
	default:
		return 3
	}
}

// LineupEntry is one selected starter: the slot it fills and the player
// assigned to it.
type LineupEntry struct {
	Slot   FormationSlot
	Player *Player
}

// SelectLineup picks 11 players from team's roster to fill formation's
// slots (spec §4.5): exactly one goalkeeper (falling back to any player if
// the roster has none), then defenders/midfielders/forwards up to the
// template's counts, topping up from the remaining squad by positional
// priority when a line is short. Selection order is deterministic: by
// position priority, then by player ID.
func SelectLineup(team *Team, f Formation) []LineupEntry {
	pool := make([]*Player, len(team.Roster))
	copy(pool, team.Roster)
	sort.Slice(pool, func(i, j int) bool {
		pi, pj := pool[i], pool[j]
		if groupPriority(pi.NaturalRole) != groupPriority(pj.NaturalRole) {
			return groupPriority(pi.NaturalRole) < groupPriority(pj.NaturalRole)
		}
		return pi.ID < pj.ID
	})

	used := make(map[string]bool, 11)
	entries := make([]LineupEntry, 0, len(f.Slots))

	takeByRole := func(want Role) *Player {
		for _, p := range pool {
			if used[p.ID] {
				continue
			}
			if p.NaturalRole == want {
				used[p.ID] = true
				return p
			}
		}
		return nil
	}
	takeByGroup := func(want PositionGroup) *Player {
		for _, p := range pool {
			if used[p.ID] {
				continue
			}
			if p.NaturalRole.Group() == want {
				used[p.ID] = true
				return p
			}
		}
		return nil
	}
	takeAny := func() *Player {
		for _, p := range pool {
			if !used[p.ID] {
				used[p.ID] = true
				return p
			}
		}
		return nil
	}

	for _, slot := range f.Slots {
		var pick *Player
		if slot.Role == RoleGK {
			pick = takeByRole(RoleGK)
			if pick == nil {
				pick = takeAny() // fallback: no goalkeeper on the roster
			}
		} else {
			pick = takeByRole(slot.Role)
			if pick == nil {
				pick = takeByGroup(slot.Role.Group())
			}
			if pick == nil {
				pick = takeAny()
			}
		}
		if pick != nil {
			entries = append(entries, LineupEntry{Slot: slot, Player: pick})
		}
	}
	return entries
}

// Bench returns the roster members not selected into lineup, in the same
// deterministic priority order SelectLineup used, for substitution purposes
// (spec §12 supplement).
func Bench(team *Team, lineup []LineupEntry) []*Player {
	starters := make(map[string]bool, len(lineup))
	for _, e := range lineup {
		starters[e.Player.ID] = true
	}
	bench := make([]*Player, 0, len(team.Roster)-len(lineup))
	for _, p := range team.Roster {
		if !starters[p.ID] {
			bench = append(bench, p)
		}
	}
	sort.Slice(bench, func(i, j int) bool {
		if groupPriority(bench[i].NaturalRole) != groupPriority(bench[j].NaturalRole) {
			return groupPriority(bench[i].NaturalRole) < groupPriority(bench[j].NaturalRole)
		}
		return bench[i].ID < bench[j].ID
	})
	if len(bench) > MaxBenchSize {
		bench = bench[:MaxBenchSize]
	}
	return bench
}
