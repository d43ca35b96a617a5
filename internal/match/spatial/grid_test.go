package spatial

import "testing"

func TestNewPitchGridDimensions(t *testing.T) {
	g := NewPitchGrid()
	cols, rows, cellSize := g.Dimensions()

	if cellSize != PitchCellSize {
		t.Fatalf("cellSize = %v, want %v", cellSize, PitchCellSize)
	}
	wantCols := 9 // ceil(100/12)
	if cols != wantCols {
		t.Fatalf("cols = %d, want %d", cols, wantCols)
	}
	if rows != wantCols {
		t.Fatalf("rows = %d, want %d", rows, wantCols)
	}
}

func TestInsertAndQueryRadius(t *testing.T) {
	g := NewPitchGrid()
	g.Insert(0, 50, 50)
	g.Insert(1, 52, 50)
	g.Insert(2, 90, 90)

	got := g.QueryRadius(50, 50, 5)

	found := map[uint32]bool{}
	for _, id := range got {
		found[id] = true
	}
	if !found[0] || !found[1] {
		t.Fatalf("expected entities 0 and 1 among candidates, got %v", got)
	}
	if found[2] {
		t.Fatalf("entity 2 at (90,90) should not be a candidate near (50,50), got %v", got)
	}
}

func TestQueryRadiusClampsToGridBounds(t *testing.T) {
	g := NewPitchGrid()
	g.Insert(0, 1, 1)

	got := g.QueryRadius(0, 0, 50)

	found := false
	for _, id := range got {
		if id == 0 {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected entity near origin to be found despite radius extending past grid bounds, got %v", got)
	}
}

func TestClearRemovesEntities(t *testing.T) {
	g := NewPitchGrid()
	g.Insert(0, 50, 50)

	g.Clear()
	got := g.QueryRadius(50, 50, 10)

	if len(got) != 0 {
		t.Fatalf("expected no entities after Clear, got %v", got)
	}
}

func TestQueryCell(t *testing.T) {
	g := NewPitchGrid()
	g.Insert(0, 50, 50)
	g.Insert(1, 51, 51) // same cell at this cell size

	got := g.QueryCell(50, 50)
	if len(got) != 2 {
		t.Fatalf("expected 2 entities in the same cell, got %d: %v", len(got), got)
	}
}

func TestQueryRadiusReusesScratchBuffer(t *testing.T) {
	g := NewPitchGrid()
	g.Insert(0, 50, 50)
	g.Insert(1, 20, 20)

	first := g.QueryRadius(50, 50, 5)
	firstLen := len(first)

	second := g.QueryRadius(20, 20, 5)

	if len(second) == firstLen && firstLen != 0 {
		for _, id := range second {
			if id == 0 {
				t.Fatal("scratch buffer from a previous query leaked into this one")
			}
		}
	}
}

func TestStats(t *testing.T) {
	g := NewPitchGrid()
	g.Insert(0, 50, 50)
	g.Insert(1, 51, 51)
	g.Insert(2, 10, 10)

	stats := g.Stats()

	if stats.TotalEntities != 3 {
		t.Fatalf("TotalEntities = %d, want 3", stats.TotalEntities)
	}
	if stats.NonEmptyCells < 1 || stats.NonEmptyCells > 3 {
		t.Fatalf("NonEmptyCells out of expected range: %d", stats.NonEmptyCells)
	}
	if stats.MaxInCell < 2 {
		t.Fatalf("expected at least one cell with 2 entities, MaxInCell = %d", stats.MaxInCell)
	}
}

func TestNewSpatialGridMinimumDimensions(t *testing.T) {
	g := NewSpatialGrid(1, 1, 100, 1)
	cols, rows, _ := g.Dimensions()
	if cols < 1 || rows < 1 {
		t.Fatalf("expected grid to have at least 1x1 cells even for tiny world, got %dx%d", cols, rows)
	}
}
