package domain

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestSpatialOccupancy(t *testing.T) {
	s := NewSpatialTable(Size{Width: 4, Height: 4})
	a := NewEntityAllocator()
	first := a.Alloc()
	second := a.Alloc()

	loc := Location{Coord: Coord{X: 1, Y: 1}, Layer: LayerCharacter}
	if err := s.Update(first, loc); err != nil {
		t.Fatal(err)
	}

	err := s.Update(second, loc)
	var occupied *OccupiedError
	if !errors.As(err, &occupied) {
		t.Fatalf("expected OccupiedError, got %v", err)
	}
	if occupied.Occupant != first {
		t.Fatalf("wrong occupant reported: %s", occupied.Occupant)
	}
	// Неудачный Update ничего не меняет.
	if _, ok := s.LocationOf(second); ok {
		t.Fatal("failed update left a location behind")
	}

	// Тот же слот на другом слое свободен.
	if err := s.Update(second, Location{Coord: loc.Coord, Layer: LayerObject}); err != nil {
		t.Fatal(err)
	}
	layers := s.LayersAtChecked(loc.Coord)
	if layers.Character != first || layers.Object != second {
		t.Fatalf("unexpected cell contents: %+v", layers)
	}
}

func TestSpatialMoveClearsOldSlot(t *testing.T) {
	s := NewSpatialTable(Size{Width: 4, Height: 4})
	a := NewEntityAllocator()
	e := a.Alloc()

	from := Coord{X: 0, Y: 0}
	to := Coord{X: 2, Y: 3}
	if err := s.Update(e, Location{Coord: from, Layer: LayerCharacter}); err != nil {
		t.Fatal(err)
	}
	if err := s.UpdateCoord(e, to); err != nil {
		t.Fatal(err)
	}
	if s.LayersAtChecked(from).Character != NilEntity {
		t.Fatal("old slot not vacated")
	}
	if s.LayersAtChecked(to).Character != e {
		t.Fatal("entity missing from new slot")
	}
	coord, ok := s.CoordOf(e)
	if !ok || coord != to {
		t.Fatalf("location out of sync: %+v %v", coord, ok)
	}
}

func TestSpatialRemoveAbsent(t *testing.T) {
	s := NewSpatialTable(Size{Width: 2, Height: 2})
	a := NewEntityAllocator()
	// Сущность без размещения: Remove - no-op, не паника.
	s.Remove(a.Alloc())
}

func TestSpatialOutOfBounds(t *testing.T) {
	s := NewSpatialTable(Size{Width: 2, Height: 2})
	if _, ok := s.LayersAt(Coord{X: -1, Y: 0}); ok {
		t.Fatal("negative coord reported in bounds")
	}
	if _, ok := s.LayersAt(Coord{X: 2, Y: 0}); ok {
		t.Fatal("coord past edge reported in bounds")
	}
}

func TestSpatialJSONRoundTrip(t *testing.T) {
	s := NewSpatialTable(Size{Width: 5, Height: 3})
	a := NewEntityAllocator()
	wall := a.Alloc()
	npc := a.Alloc()
	if err := s.Update(wall, Location{Coord: Coord{X: 3, Y: 1}, Layer: LayerFeature}); err != nil {
		t.Fatal(err)
	}
	if err := s.Update(npc, Location{Coord: Coord{X: 3, Y: 2}, Layer: LayerCharacter}); err != nil {
		t.Fatal(err)
	}

	data, err := json.Marshal(s)
	if err != nil {
		t.Fatal(err)
	}
	restored := &SpatialTable{}
	if err := json.Unmarshal(data, restored); err != nil {
		t.Fatal(err)
	}

	if restored.GridSize != s.GridSize {
		t.Fatalf("size lost: %+v", restored.GridSize)
	}
	if restored.LayersAtChecked(Coord{X: 3, Y: 1}).Feature != wall {
		t.Fatal("wall lost in round trip")
	}
	if loc, ok := restored.LocationOf(npc); !ok || loc.Layer != LayerCharacter {
		t.Fatalf("npc location lost: %+v %v", loc, ok)
	}
}
