package match

import "testing"

func TestPassStepHeightByDistance(t *testing.T) {
	tests := []struct {
		name       string
		isCross    bool
		start, end Point
		want       BallHeight
	}{
		{"short pass stays grounded", false, Point{0, 0}, Point{10, 0}, HeightGround},
		{"long pass is lofted", false, Point{0, 0}, Point{50, 0}, HeightLofted},
		{"cross is always high regardless of distance", true, Point{0, 0}, Point{5, 0}, HeightHigh},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			step := PassStep(tt.isCross, tt.start, tt.end, "")
			if step.Height != tt.want {
				t.Fatalf("Height = %v, want %v", step.Height, tt.want)
			}
		})
	}
}

func TestPassStepAction(t *testing.T) {
	pass := PassStep(false, Point{}, Point{X: 10}, "p2")
	if pass.Action != StepPass {
		t.Fatalf("Action = %v, want %v", pass.Action, StepPass)
	}
	if pass.TargetID != "p2" {
		t.Fatalf("TargetID = %v, want p2", pass.TargetID)
	}

	cross := PassStep(true, Point{}, Point{X: 10}, "p3")
	if cross.Action != StepCross {
		t.Fatalf("Action = %v, want %v", cross.Action, StepCross)
	}
}

func TestClampDurationMS(t *testing.T) {
	tests := []struct {
		name string
		in   int
		want int
	}{
		{"below floor clamps up", 10, 100},
		{"above ceiling clamps down", 5000, 2000},
		{"within range unchanged", 800, 800},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := clampDurationMS(tt.in); got != tt.want {
				t.Fatalf("clampDurationMS(%d) = %d, want %d", tt.in, got, tt.want)
			}
		})
	}
}

func TestStepsClampToPitch(t *testing.T) {
	step := PassStep(false, Point{X: -10, Y: 200}, Point{X: 150, Y: -50}, "")
	if step.BallStart.X < 0 || step.BallStart.Y > 100 {
		t.Fatalf("BallStart not clamped to pitch: %v", step.BallStart)
	}
	if step.BallEnd.X > 100 || step.BallEnd.Y < 0 {
		t.Fatalf("BallEnd not clamped to pitch: %v", step.BallEnd)
	}
}

func TestSequenceForEventGoal(t *testing.T) {
	ev := Event{Type: EventGoal}
	touches := []Point{{X: 30, Y: 30}, {X: 50, Y: 50}}
	steps := SequenceForEvent(ev, touches, Point{X: 10, Y: 50}, Point{X: 100, Y: 50})

	if len(steps) != len(touches)+2 {
		t.Fatalf("expected %d steps (dribbles + shoot + goal-net), got %d", len(touches)+2, len(steps))
	}
	last := steps[len(steps)-1]
	if last.Action != StepGoalNet {
		t.Fatalf("expected final step to be goal-net, got %v", last.Action)
	}
	shoot := steps[len(steps)-2]
	if shoot.Action != StepShoot {
		t.Fatalf("expected second-to-last step to be shoot, got %v", shoot.Action)
	}
}

func TestSequenceForEventPass(t *testing.T) {
	ev := Event{Type: EventPass, TargetID: "p2"}
	steps := SequenceForEvent(ev, nil, Point{X: 10, Y: 10}, Point{X: 20, Y: 20})

	if len(steps) != 1 {
		t.Fatalf("expected a single pass step, got %d", len(steps))
	}
	if steps[0].Action != StepPass || steps[0].TargetID != "p2" {
		t.Fatalf("unexpected step: %+v", steps[0])
	}
}

func TestSequenceForEventCorner(t *testing.T) {
	ev := Event{Type: EventCorner, TargetID: "p2"}
	steps := SequenceForEvent(ev, nil, Point{X: 100, Y: 0}, Point{X: 95, Y: 50})

	if len(steps) != 2 {
		t.Fatalf("expected cross + header steps, got %d", len(steps))
	}
	if steps[0].Action != StepCross {
		t.Fatalf("expected first step cross, got %v", steps[0].Action)
	}
	if steps[1].Action != StepHeader {
		t.Fatalf("expected second step header, got %v", steps[1].Action)
	}
	if steps[1].BallStart != steps[0].BallEnd {
		t.Fatalf("header should start where the cross ended: %v != %v", steps[1].BallStart, steps[0].BallEnd)
	}
}

func TestSequenceForEventCross(t *testing.T) {
	ev := Event{Type: EventCross, TargetID: "p2"}
	steps := SequenceForEvent(ev, nil, Point{X: 80, Y: 10}, Point{X: 90, Y: 50})

	if len(steps) != 1 {
		t.Fatalf("expected a single cross step, got %d", len(steps))
	}
	if steps[0].Action != StepCross {
		t.Fatalf("expected a cross step, got %v", steps[0].Action)
	}
	if steps[0].Height != HeightHigh {
		t.Fatalf("expected a cross to fly high, got %v", steps[0].Height)
	}
	if steps[0].TargetID != "p2" {
		t.Fatalf("expected TargetID to carry through, got %q", steps[0].TargetID)
	}
}

func TestSequenceForEventUnknownReturnsNil(t *testing.T) {
	ev := Event{Type: EventPressing}
	if steps := SequenceForEvent(ev, nil, Point{}, Point{}); steps != nil {
		t.Fatalf("expected nil steps for an event with no animation, got %v", steps)
	}
}
