package domain

import "testing"

func TestTrajectoryStraightLine(t *testing.T) {
	tr := NewTrajectory(Coord{X: 3, Y: 0})
	want := []CardinalDirection{East, East, East}
	if len(tr.Steps) != len(want) {
		t.Fatalf("expected %d steps, got %v", len(want), tr.Steps)
	}
	for i, step := range want {
		if tr.Steps[i] != step {
			t.Fatalf("step %d: want %v, got %v", i, step, tr.Steps[i])
		}
	}
}

func TestTrajectoryReachesTarget(t *testing.T) {
	cases := []Coord{
		{X: 3, Y: 0},
		{X: 0, Y: -4},
		{X: 2, Y: 2},
		{X: -5, Y: 3},
		{X: 1, Y: -7},
	}
	for _, delta := range cases {
		tr := NewTrajectory(delta)
		pos := Coord{}
		for {
			step, ok := tr.Next()
			if !ok {
				break
			}
			pos = pos.Add(step.Coord())
		}
		if pos != delta {
			t.Errorf("trajectory to %+v ended at %+v", delta, pos)
		}
		// Кардинальные шаги: длина пути равна манхэттенскому расстоянию.
		adx, ady := delta.X, delta.Y
		if adx < 0 {
			adx = -adx
		}
		if ady < 0 {
			ady = -ady
		}
		steps := len(NewTrajectory(delta).Steps)
		if steps != adx+ady {
			t.Errorf("trajectory to %+v has %d steps, want %d", delta, steps, adx+ady)
		}
	}
}

func TestTrajectoryNextDrains(t *testing.T) {
	tr := NewTrajectory(Coord{X: 1, Y: 1})
	if tr.Remaining() != 2 {
		t.Fatalf("expected 2 remaining, got %d", tr.Remaining())
	}
	tr.Next()
	tr.Next()
	if _, ok := tr.Next(); ok {
		t.Fatal("drained trajectory produced a step")
	}
	if tr.Remaining() != 0 {
		t.Fatalf("expected 0 remaining, got %d", tr.Remaining())
	}
}
