package systems

import (
	"strings"
	"testing"

	"rogue-server/internal/domain"
)

func TestWallBlocksSight(t *testing.T) {
	w, p := buildWorld(t, []string{
		"#######",
		"#@.#..#",
		"#######",
	})
	playerCoord, _ := w.CoordOf(p.PlayerEntity)

	grid := NewVisibilityGrid(w.Size())
	grid.Update(playerCoord, w, AlgorithmShadowcast)

	if got := grid.CellVisibility(domain.Coord{X: 2, Y: 1}); got != VisibilityCurrently {
		t.Fatalf("open cell not visible: %v", got)
	}
	// Сама стена видна, клетка за ней - нет.
	if got := grid.CellVisibility(domain.Coord{X: 3, Y: 1}); got != VisibilityCurrently {
		t.Fatalf("blocking wall not visible: %v", got)
	}
	if got := grid.CellVisibility(domain.Coord{X: 4, Y: 1}); got != VisibilityNever {
		t.Fatalf("cell behind wall visible: %v", got)
	}
}

func TestVisionRadiusLimit(t *testing.T) {
	corridor := "#" + strings.Repeat(".", 23) + "#"
	row := []byte(corridor)
	row[1] = '@'
	w, p := buildWorld(t, []string{
		strings.Repeat("#", 25),
		string(row),
		strings.Repeat("#", 25),
	})
	playerCoord, _ := w.CoordOf(p.PlayerEntity)

	grid := NewVisibilityGrid(w.Size())
	grid.Update(playerCoord, w, AlgorithmShadowcast)

	// Дальность зрения - ровно 10 клеток.
	if got := grid.CellVisibility(domain.Coord{X: 11, Y: 1}); got != VisibilityCurrently {
		t.Fatalf("cell at vision edge not visible: %v", got)
	}
	if got := grid.CellVisibility(domain.Coord{X: 12, Y: 1}); got != VisibilityNever {
		t.Fatalf("cell past vision range visible: %v", got)
	}
}

func TestVisibilityEpochs(t *testing.T) {
	w, p := buildWorld(t, []string{
		"#######",
		"#@.#..#",
		"#..#..#",
		"#######",
	})
	playerCoord, _ := w.CoordOf(p.PlayerEntity)

	grid := NewVisibilityGrid(w.Size())
	left := domain.Coord{X: 2, Y: 1}
	right := domain.Coord{X: 4, Y: 1}

	grid.Update(playerCoord, w, AlgorithmShadowcast)
	if got := grid.CellVisibility(left); got != VisibilityCurrently {
		t.Fatalf("left cell not visible: %v", got)
	}
	if got := grid.CellVisibility(right); got != VisibilityNever {
		t.Fatalf("sealed-off cell visible: %v", got)
	}

	// Игрок телепортируется в правую комнату: левая уходит в "туман".
	if err := w.Spatial.UpdateCoord(p.PlayerEntity, domain.Coord{X: 5, Y: 1}); err != nil {
		t.Fatal(err)
	}
	grid.Update(domain.Coord{X: 5, Y: 1}, w, AlgorithmShadowcast)
	if got := grid.CellVisibility(left); got != VisibilityPreviously {
		t.Fatalf("left cell not remembered: %v", got)
	}
	if got := grid.CellVisibility(right); got != VisibilityCurrently {
		t.Fatalf("right cell not visible: %v", got)
	}
}

func TestOmniscientRevealsEverything(t *testing.T) {
	w, p := buildWorld(t, []string{
		"#######",
		"#@.#..#",
		"#######",
	})
	playerCoord, _ := w.CoordOf(p.PlayerEntity)

	grid := NewVisibilityGrid(w.Size())
	grid.Update(playerCoord, w, AlgorithmOmniscient)
	if got := grid.CellVisibility(domain.Coord{X: 5, Y: 1}); got != VisibilityCurrently {
		t.Fatalf("omniscient mode left a cell hidden: %v", got)
	}
}

func TestVisibilityClear(t *testing.T) {
	w, p := buildWorld(t, []string{
		"####",
		"#@.#",
		"####",
	})
	playerCoord, _ := w.CoordOf(p.PlayerEntity)

	grid := NewVisibilityGrid(w.Size())
	grid.Update(playerCoord, w, AlgorithmShadowcast)
	grid.Clear()
	if got := grid.CellVisibility(playerCoord); got != VisibilityNever {
		t.Fatalf("cleared grid remembers cells: %v", got)
	}
}
