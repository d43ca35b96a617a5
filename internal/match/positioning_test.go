package match

import "testing"

func TestMirrorZone(t *testing.T) {
	z := Zone{MinX: 0, MaxX: 45, MinY: 5, MaxY: 95}
	mirrored := MirrorZone(z)

	want := Zone{MinX: 55, MaxX: 100, MinY: 5, MaxY: 95}
	if mirrored != want {
		t.Fatalf("MirrorZone(%+v) = %+v, want %+v", z, mirrored, want)
	}
}

func TestZoneFor(t *testing.T) {
	home := ZoneFor(RoleCB, true)
	away := ZoneFor(RoleCB, false)

	if home == away {
		t.Fatal("home and away zones for the same role should differ (mirrored)")
	}
	wantAway := MirrorZone(roleZones[RoleCB])
	if away != wantAway {
		t.Fatalf("away zone = %+v, want %+v", away, wantAway)
	}
}

func TestClampToZone(t *testing.T) {
	tests := []struct {
		name   string
		role   Role
		isHome bool
		in     Point
		want   Point
	}{
		{"within bounds unchanged", RoleCB, true, Point{X: 20, Y: 50}, Point{X: 20, Y: 50}},
		{"clamped above max X", RoleGK, true, Point{X: 50, Y: 50}, Point{X: 16.5, Y: 50}},
		{"clamped below min Y", RoleGK, true, Point{X: 10, Y: 0}, Point{X: 10, Y: 25}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ClampToZone(tt.role, tt.isHome, tt.in)
			if got != tt.want {
				t.Fatalf("ClampToZone(%v, %v, %v) = %v, want %v", tt.role, tt.isHome, tt.in, got, tt.want)
			}
		})
	}
}

func TestAttackDirSign(t *testing.T) {
	if attackDirSign(true) != 1 {
		t.Fatal("home should attack toward +x")
	}
	if attackDirSign(false) != -1 {
		t.Fatal("away should attack toward -x")
	}
}

func TestTargetPointGoalkeeperStaysNearOwnGoal(t *testing.T) {
	in := TargetPointInput{Role: RoleGK, IsHome: true, Anchor: Point{X: 5, Y: 50}, Ball: Point{X: 80, Y: 50}}
	got := ClampToZone(in.Role, in.IsHome, TargetPoint(in))

	if got.X > 20 {
		t.Fatalf("home goalkeeper target should stay close to their own goal line, got %v", got)
	}
}

func TestTargetPointCentreBackPushesUpInPossession(t *testing.T) {
	anchor := Point{X: 20, Y: 35}
	inPossession := TargetPointInput{Role: RoleCB, IsHome: true, Anchor: anchor, Ball: Point{X: 60, Y: 35}, TeamInPossession: true}
	outOfPossession := inPossession
	outOfPossession.TeamInPossession = false

	withBall := TargetPoint(inPossession)
	without := TargetPoint(outOfPossession)

	if withBall.X <= anchor.X {
		t.Fatalf("CB should push up with the ball forward of anchor, got %v (anchor %v)", withBall, anchor)
	}
	if without.X >= anchor.X {
		t.Fatalf("CB should sit deeper than anchor out of possession, got %v (anchor %v)", without, anchor)
	}
}

func TestTargetPointFullbackOverlapsInAttackingThird(t *testing.T) {
	anchor := Point{X: 25, Y: 85}
	deep := TargetPointInput{Role: RoleRB, IsHome: true, Anchor: anchor, Ball: Point{X: 50, Y: 50}, TeamInPossession: true}
	attacking := deep
	attacking.Ball = Point{X: 80, Y: 50}

	deepTarget := TargetPoint(deep)
	attackingTarget := TargetPoint(attacking)

	if attackingTarget.X <= deepTarget.X {
		t.Fatalf("fullback should push forward when team attacks, deep=%v attacking=%v", deepTarget, attackingTarget)
	}
}

func TestTargetPointDefensiveMidfielderHasDefensiveCap(t *testing.T) {
	in := TargetPointInput{Role: RoleDM, IsHome: true, Anchor: Point{X: 42, Y: 50}, Ball: Point{X: 95, Y: 50}}
	got := TargetPoint(in)
	if got.X > 50 {
		t.Fatalf("home DM should never push past the halfway cap of x=50, got %v", got)
	}
}

func TestTargetPointFalseNineDropsDeeper(t *testing.T) {
	anchor := Point{X: 85, Y: 50}
	normal := TargetPointInput{Role: RoleCF, IsHome: true, Anchor: anchor, Ball: Point{X: 85, Y: 50}, Traits: PlayerTraits{FalseNine: false}}
	falseNine := normal
	falseNine.Traits = PlayerTraits{FalseNine: true}

	normalTarget := TargetPoint(normal)
	falseNineTarget := TargetPoint(falseNine)

	if falseNineTarget.X >= normalTarget.X {
		t.Fatalf("false-nine CF should drop deeper (lower x for home) than a normal CF: normal=%v falseNine=%v", normalTarget, falseNineTarget)
	}
}

func TestTargetPointInvertedWingerCutsInside(t *testing.T) {
	anchor := Point{X: 80, Y: 15}
	normal := TargetPointInput{Role: RoleLW, IsHome: true, Anchor: anchor, Traits: PlayerTraits{Inverted: false}}
	inverted := normal
	inverted.Traits = PlayerTraits{Inverted: true}

	normalTarget := TargetPoint(normal)
	invertedTarget := TargetPoint(inverted)

	if invertedTarget.Y == normalTarget.Y && invertedTarget.X == normalTarget.X {
		t.Fatal("an inverted winger's target should differ from the default wide target")
	}
}
