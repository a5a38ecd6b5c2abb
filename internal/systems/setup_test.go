package systems

import (
	"os"
	"testing"

	"rogue-server/internal/domain"
	"rogue-server/pkg/logger"
)

func TestMain(m *testing.M) {
	logger.Init()
	os.Exit(m.Run())
}

// buildWorld собирает мир из ASCII-карты: '#' стена, '.' пол,
// '@' игрок, 'o' орк.
func buildWorld(t *testing.T, lines []string) (*domain.World, domain.Populate) {
	t.Helper()
	terrain := make([][]domain.TerrainTile, len(lines))
	for y, line := range lines {
		terrain[y] = make([]domain.TerrainTile, len(line))
		for x, ch := range line {
			switch ch {
			case '#':
				terrain[y][x] = domain.TerrainTile{Kind: domain.TerrainWall}
			case '.':
				terrain[y][x] = domain.TerrainTile{Kind: domain.TerrainFloor}
			case '@':
				terrain[y][x] = domain.TerrainTile{Kind: domain.TerrainPlayer}
			case 'o':
				terrain[y][x] = domain.TerrainTile{Kind: domain.TerrainNpc, Npc: domain.NpcOrc}
			}
		}
	}
	w := domain.NewWorld(domain.Size{Width: len(lines[0]), Height: len(lines)})
	return w, w.PopulateFromTerrain(terrain)
}
