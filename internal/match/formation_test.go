package match

import "testing"

func TestMirrorForAway(t *testing.T) {
	f := Formation442()
	mirrored := f.MirrorForAway()

	if mirrored.Name != f.Name {
		t.Fatalf("mirrored name = %v, want %v", mirrored.Name, f.Name)
	}
	if len(mirrored.Slots) != len(f.Slots) {
		t.Fatalf("mirrored slot count = %d, want %d", len(mirrored.Slots), len(f.Slots))
	}
	for i, s := range f.Slots {
		want := Point{X: 100 - s.Anchor.X, Y: s.Anchor.Y}
		if mirrored.Slots[i].Anchor != want {
			t.Fatalf("slot %d anchor = %v, want %v", i, mirrored.Slots[i].Anchor, want)
		}
		if mirrored.Slots[i].Role != s.Role {
			t.Fatalf("slot %d role = %v, want %v", i, mirrored.Slots[i].Role, s.Role)
		}
	}
}

func TestFormationsCatalogue(t *testing.T) {
	for name, builder := range Formations {
		t.Run(name, func(t *testing.T) {
			f := builder()
			if f.Name != name {
				t.Fatalf("builder for %q produced Formation.Name %q", name, f.Name)
			}
			if len(f.Slots) != 11 {
				t.Fatalf("formation %q has %d slots, want 11", name, len(f.Slots))
			}
			gks := 0
			for _, s := range f.Slots {
				if s.Role == RoleGK {
					gks++
				}
			}
			if gks != 1 {
				t.Fatalf("formation %q has %d goalkeeper slots, want 1", name, gks)
			}
		})
	}
}

func makeRoster(n int, role Role, prefix string) []*Player {
	players := make([]*Player, n)
	for i := 0; i < n; i++ {
		players[i] = &Player{ID: prefix + string(rune('a'+i)), NaturalRole: role}
	}
	return players
}

func fullSquad() []*Player {
	var roster []*Player
	roster = append(roster, makeRoster(2, RoleGK, "gk")...)
	roster = append(roster, makeRoster(6, RoleCB, "cb")...)
	roster = append(roster, makeRoster(2, RoleRB, "rb")...)
	roster = append(roster, makeRoster(2, RoleLB, "lb")...)
	roster = append(roster, makeRoster(4, RoleCM, "cm")...)
	roster = append(roster, makeRoster(2, RoleWM, "wm")...)
	roster = append(roster, makeRoster(2, RoleAM, "am")...)
	roster = append(roster, makeRoster(4, RoleST, "st")...)
	return roster
}

func TestSelectLineup(t *testing.T) {
	team := &Team{ID: "home", Roster: fullSquad()}
	f := Formation442()

	lineup := SelectLineup(team, f)
	if len(lineup) != 11 {
		t.Fatalf("expected 11 selected starters, got %d", len(lineup))
	}

	gks := 0
	seen := make(map[string]bool)
	for _, e := range lineup {
		if e.Slot.Role == RoleGK {
			gks++
		}
		if seen[e.Player.ID] {
			t.Fatalf("player %v selected more than once", e.Player.ID)
		}
		seen[e.Player.ID] = true
	}
	if gks != 1 {
		t.Fatalf("expected exactly 1 goalkeeper in lineup, got %d", gks)
	}
}

func TestSelectLineupNoGoalkeeperFallsBackToAnyPlayer(t *testing.T) {
	roster := makeRoster(11, RoleST, "st")
	team := &Team{ID: "home", Roster: roster}

	lineup := SelectLineup(team, Formation442())
	if len(lineup) != 11 {
		t.Fatalf("expected 11 starters even without a natural GK, got %d", len(lineup))
	}
}

func TestSelectLineupDeterministic(t *testing.T) {
	team := &Team{ID: "home", Roster: fullSquad()}
	f := Formation433()

	a := SelectLineup(team, f)
	b := SelectLineup(team, f)

	if len(a) != len(b) {
		t.Fatalf("lineup length differs across calls: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i].Player.ID != b[i].Player.ID {
			t.Fatalf("slot %d differs across calls: %v vs %v", i, a[i].Player.ID, b[i].Player.ID)
		}
	}
}

func TestBench(t *testing.T) {
	team := &Team{ID: "home", Roster: fullSquad()}
	f := Formation442()
	lineup := SelectLineup(team, f)

	bench := Bench(team, lineup)

	if len(bench) > MaxBenchSize {
		t.Fatalf("bench size %d exceeds MaxBenchSize %d", len(bench), MaxBenchSize)
	}

	starters := make(map[string]bool, len(lineup))
	for _, e := range lineup {
		starters[e.Player.ID] = true
	}
	for _, p := range bench {
		if starters[p.ID] {
			t.Fatalf("bench player %v is also a starter", p.ID)
		}
	}
}
