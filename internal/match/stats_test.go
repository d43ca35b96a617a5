package match

import "testing"

func TestTeamStatsUpdateFromEvent(t *testing.T) {
	tests := []struct {
		name string
		ev   EventType
		want TeamStats
	}{
		{"completed pass", EventPass, TeamStats{Passes: 1, PassesCompleted: 1}},
		{"completed cross counts as a completed pass", EventCross, TeamStats{Passes: 1, PassesCompleted: 1}},
		{"failed pass", EventPassFailed, TeamStats{Passes: 1}},
		{"tackle", EventTackle, TeamStats{Tackles: 1}},
		{"interception", EventInterception, TeamStats{Interceptions: 1}},
		{"clearance", EventClearance, TeamStats{Clearances: 1}},
		{"shot on target", EventShotOnTarget, TeamStats{Shots: 1, ShotsOnTarget: 1}},
		{"shot off target", EventShotOffTarget, TeamStats{Shots: 1}},
		{"goal counts as shot on target", EventGoal, TeamStats{Shots: 1, ShotsOnTarget: 1}},
		{"foul", EventFoul, TeamStats{Fouls: 1}},
		{"penalty counts as foul", EventPenalty, TeamStats{Fouls: 1}},
		{"yellow card", EventYellowCard, TeamStats{YellowCards: 1}},
		{"red card", EventRedCard, TeamStats{RedCards: 1}},
		{"offside", EventOffside, TeamStats{Offsides: 1}},
		{"corner", EventCorner, TeamStats{Corners: 1}},
		{"save", EventSave, TeamStats{Saves: 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &TeamStats{}
			s.UpdateFromEvent(Event{Type: tt.ev})
			if *s != tt.want {
				t.Fatalf("UpdateFromEvent(%v) = %+v, want %+v", tt.ev, *s, tt.want)
			}
		})
	}
}

func TestMatchStatsRecordPossessionTick(t *testing.T) {
	m := &MatchStats{HomeTeamID: "home", AwayTeamID: "away"}

	m.RecordPossessionTick("home")
	m.RecordPossessionTick("away")
	m.RecordPossessionTick("away")
	m.RecordPossessionTick("") // loose ball, credited to neither

	if m.Home.PossessionTicks != 1 {
		t.Fatalf("Home.PossessionTicks = %d, want 1", m.Home.PossessionTicks)
	}
	if m.Away.PossessionTicks != 2 {
		t.Fatalf("Away.PossessionTicks = %d, want 2", m.Away.PossessionTicks)
	}
}

func TestMatchStatsPossessionPercent(t *testing.T) {
	tests := []struct {
		name           string
		home, away     int
		wantH, wantA   int
	}{
		{"no ticks yet defaults to 50/50", 0, 0, 50, 50},
		{"even split", 50, 50, 50, 50},
		{"home dominant", 70, 30, 70, 30},
		{"rounds remainder to home", 1, 2, 33, 67},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := &MatchStats{HomeTeamID: "home", AwayTeamID: "away"}
			m.Home.PossessionTicks = tt.home
			m.Away.PossessionTicks = tt.away

			h, a := m.PossessionPercent()
			if h+a != 100 {
				t.Fatalf("percentages must sum to 100, got %d+%d", h, a)
			}
			if h != tt.wantH || a != tt.wantA {
				t.Fatalf("PossessionPercent() = (%d, %d), want (%d, %d)", h, a, tt.wantH, tt.wantA)
			}
		})
	}
}

func TestMatchStatsApply(t *testing.T) {
	m := &MatchStats{HomeTeamID: "home", AwayTeamID: "away"}

	m.Apply(Event{TeamID: "home", Type: EventGoal})
	m.Apply(Event{TeamID: "away", Type: EventYellowCard})
	m.Apply(Event{TeamID: "unknown", Type: EventFoul})

	if m.Home.Shots != 1 || m.Home.ShotsOnTarget != 1 {
		t.Fatalf("expected home goal recorded as shot on target, got %+v", m.Home)
	}
	if m.Away.YellowCards != 1 {
		t.Fatalf("expected away yellow card recorded, got %+v", m.Away)
	}
}
