package dungeon

import (
	"math/rand/v2"
	"reflect"
	"testing"

	"rogue-server/internal/domain"
)

var testSize = domain.Size{Width: 60, Height: 40}

func countKind(terrain [][]domain.TerrainTile, kind domain.TerrainKind) int {
	n := 0
	for _, row := range terrain {
		for _, tile := range row {
			if tile.Kind == kind {
				n++
			}
		}
	}
	return n
}

func TestGenerateHasPlayerAndStairs(t *testing.T) {
	rng := rand.New(rand.NewPCG(5, 6))
	terrain := Generate(testSize, 0, rng)

	if got := countKind(terrain, domain.TerrainPlayer); got != 1 {
		t.Fatalf("expected exactly one player start, got %d", got)
	}
	if got := countKind(terrain, domain.TerrainStairs); got != 1 {
		t.Fatalf("expected exactly one stairs, got %d", got)
	}
	if got := countKind(terrain, domain.TerrainFloor); got == 0 {
		t.Fatal("no floor carved")
	}
}

func TestGenerateBordersAreWalls(t *testing.T) {
	rng := rand.New(rand.NewPCG(8, 9))
	terrain := Generate(testSize, 2, rng)

	for x := 0; x < testSize.Width; x++ {
		if terrain[0][x].Kind != domain.TerrainWall || terrain[testSize.Height-1][x].Kind != domain.TerrainWall {
			t.Fatalf("open border at column %d", x)
		}
	}
	for y := 0; y < testSize.Height; y++ {
		if terrain[y][0].Kind != domain.TerrainWall || terrain[y][testSize.Width-1].Kind != domain.TerrainWall {
			t.Fatalf("open border at row %d", y)
		}
	}
}

func TestGenerateDeterministic(t *testing.T) {
	a := Generate(testSize, 1, rand.New(rand.NewPCG(1, 2)))
	b := Generate(testSize, 1, rand.New(rand.NewPCG(1, 2)))
	if !reflect.DeepEqual(a, b) {
		t.Fatal("same seed produced different terrain")
	}
	c := Generate(testSize, 1, rand.New(rand.NewPCG(3, 4)))
	if reflect.DeepEqual(a, c) {
		t.Fatal("different seeds produced identical terrain")
	}
}

func TestNoTrollsOnFirstLevel(t *testing.T) {
	// Вес тролля равен номеру уровня: на нулевом их быть не может.
	for seed := uint64(0); seed < 5; seed++ {
		rng := rand.New(rand.NewPCG(seed, seed+1))
		terrain := Generate(testSize, 0, rng)
		for _, row := range terrain {
			for _, tile := range row {
				if tile.Kind == domain.TerrainNpc && tile.Npc == domain.NpcTroll {
					t.Fatalf("troll on level 0 (seed %d)", seed)
				}
			}
		}
	}
}

func TestPopulatedTerrainIsPlayable(t *testing.T) {
	rng := rand.New(rand.NewPCG(12, 13))
	terrain := Generate(testSize, 3, rng)

	w := domain.NewWorld(testSize)
	populate := w.PopulateFromTerrain(terrain)
	if populate.PlayerEntity == domain.NilEntity {
		t.Fatal("no player after populate")
	}
	if _, ok := w.CoordOf(populate.PlayerEntity); !ok {
		t.Fatal("player has no coord")
	}
}
