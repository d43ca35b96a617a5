package match

import "testing"

func TestNewEvent(t *testing.T) {
	e := NewEvent(EventPass, 100, 5, "home", "p1", Point{X: 10, Y: 20})

	if e.Type != EventPass || e.Tick != 100 || e.Minute != 5 {
		t.Fatalf("unexpected base fields: %+v", e)
	}
	if e.TeamID != "home" || e.PlayerID != "p1" {
		t.Fatalf("unexpected team/player: %+v", e)
	}
	if e.Payload == nil {
		t.Fatal("expected Payload to default to a non-nil map")
	}
}

func TestEventWithTargetAndPayload(t *testing.T) {
	e := NewEvent(EventPass, 1, 1, "home", "p1", Point{}).
		WithTarget("p2").
		WithPayload("distance", 12.5)

	if e.TargetID != "p2" {
		t.Fatalf("TargetID = %v, want p2", e.TargetID)
	}
	if e.Payload["distance"] != 12.5 {
		t.Fatalf("Payload[distance] = %v, want 12.5", e.Payload["distance"])
	}
}

func TestFoulProbability(t *testing.T) {
	low := FoulProbability(5, 5, false)
	high := FoulProbability(20, 20, false)
	if high <= low {
		t.Fatalf("higher dribbling/aggression should raise foul probability: low=%v high=%v", low, high)
	}

	harder := FoulProbability(10, 10, true)
	normal := FoulProbability(10, 10, false)
	if harder <= normal {
		t.Fatalf("tackleHarder flag should raise foul probability: normal=%v harder=%v", normal, harder)
	}

	if p := FoulProbability(20, 20, true); p > 1 || p < 0 {
		t.Fatalf("probability must stay in [0,1], got %v", p)
	}
}

func TestIsPenaltyArea(t *testing.T) {
	tests := []struct {
		name string
		p    Point
		want bool
	}{
		{"inside right box", Point{X: 90, Y: 50}, true},
		{"inside left box", Point{X: 10, Y: 50}, true},
		{"right box but outside Y band", Point{X: 90, Y: 10}, false},
		{"midfield not in any box", Point{X: 50, Y: 50}, false},
		{"boundary x exactly 83 excluded", Point{X: 83, Y: 50}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsPenaltyArea(tt.p); got != tt.want {
				t.Fatalf("IsPenaltyArea(%v) = %v, want %v", tt.p, got, tt.want)
			}
		})
	}
}

func TestCardEscalationApply(t *testing.T) {
	t.Run("red card always sends off", func(t *testing.T) {
		c := &CardEscalation{}
		if sentOff := c.Apply(true); !sentOff {
			t.Fatal("red card should send off immediately")
		}
	})

	t.Run("first yellow does not send off", func(t *testing.T) {
		c := &CardEscalation{}
		if sentOff := c.Apply(false); sentOff {
			t.Fatal("first yellow should not send off")
		}
	})

	t.Run("second yellow sends off", func(t *testing.T) {
		c := &CardEscalation{}
		c.Apply(false)
		if sentOff := c.Apply(false); !sentOff {
			t.Fatal("second yellow should send off")
		}
	})
}

func TestOffsideProbability(t *testing.T) {
	lowDiscipline := OffsideProbability(2, 10)
	highDiscipline := OffsideProbability(18, 10)
	if lowDiscipline <= highDiscipline {
		t.Fatalf("poor line discipline should raise offside probability: low=%v high=%v", lowDiscipline, highDiscipline)
	}

	lowAnticipation := OffsideProbability(10, 2)
	highAnticipation := OffsideProbability(10, 18)
	if highAnticipation >= lowAnticipation {
		t.Fatalf("higher anticipation should lower offside probability: low=%v high=%v", lowAnticipation, highAnticipation)
	}
}

func TestGoalProbabilityFactors(t *testing.T) {
	base := GoalProbabilityInput{DistanceToGoal: 10, AngleOffCentre: 0, Finishing: 10, Composure: 10}

	near := base
	near.DistanceToGoal = 5
	far := base
	far.DistanceToGoal = 30

	if GoalProbability(near) <= GoalProbability(far) {
		t.Fatal("closer shots should have higher goal probability")
	}

	wide := base
	wide.AngleOffCentre = 40
	if GoalProbability(wide) >= GoalProbability(base) {
		t.Fatal("a wider angle off centre should lower goal probability")
	}

	goodFinisher := base
	goodFinisher.Finishing = 19
	if GoalProbability(goodFinisher) <= GoalProbability(base) {
		t.Fatal("better finishing should raise goal probability")
	}

	pressured := base
	pressured.Pressure = 0.8
	if GoalProbability(pressured) >= GoalProbability(base) {
		t.Fatal("higher pressure should lower goal probability")
	}

	oneOnOne := base
	oneOnOne.OneOnOne = true
	if GoalProbability(oneOnOne) <= GoalProbability(base) {
		t.Fatal("a one-on-one should raise goal probability")
	}

	if p := GoalProbability(GoalProbabilityInput{DistanceToGoal: 100}); p < 0 || p > 1 {
		t.Fatalf("probability must stay clamped to [0,1], got %v", p)
	}
}

func TestResolveShot(t *testing.T) {
	rng := NewRNG(21)

	if got := ResolveShot(1, 1, rng); got != ShotGoal {
		t.Fatalf("goalProb=1 should always resolve to a goal, got %v", got)
	}
	if got := ResolveShot(0, 1, rng); got != ShotOnTargetSaved {
		t.Fatalf("goalProb=0, onTargetProb=1 should resolve to a saved shot, got %v", got)
	}
	if got := ResolveShot(0, 0, rng); got != ShotOffTarget {
		t.Fatalf("goalProb=0, onTargetProb=0 should resolve off target, got %v", got)
	}
}
