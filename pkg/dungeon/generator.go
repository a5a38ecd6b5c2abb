package dungeon

import (
	"math/rand/v2"

	"rogue-server/internal/domain"
	"rogue-server/pkg/logger"

	"github.com/sirupsen/logrus"
)

// Сколько раз пытаемся поставить комнату. Неудачные попытки (пересечение
// с уже стоящей комнатой) просто пропускаются, так что итоговое число
// комнат плавает от уровня к уровню.
const numRoomAttempts = 100

// Распределения "сколько NPC/предметов в комнате": элемент выбирается
// равновероятно, повторы задают вес.
var (
	npcsPerRoomDistribution  = []int{0, 0, 0, 0, 0, 0, 1, 1, 1, 1, 2, 2, 2, 3, 3, 4}
	itemsPerRoomDistribution = []int{0, 0, 1, 1, 1, 1, 1, 2, 2}
)

type weightedNpc struct {
	npc    domain.NpcType
	weight int
}

type weightedItem struct {
	item   domain.ItemType
	weight int
}

// Тролли появляются с глубиной: на первом уровне их нет вовсе.
func makeNpcDistribution(level int) []weightedNpc {
	return []weightedNpc{
		{npc: domain.NpcOrc, weight: 20},
		{npc: domain.NpcTroll, weight: level},
	}
}

// Свитки и экипировка становятся частыми на глубине, зелья - всегда
// основная добыча.
func makeItemDistribution(level int) []weightedItem {
	var itemChance int
	switch {
	case level <= 1:
		itemChance = 5
	case level <= 3:
		itemChance = 10
	default:
		itemChance = 20
	}
	var fireballChance, confusionChance int
	switch {
	case level <= 1:
		fireballChance, confusionChance = 10, 10
	case level <= 4:
		fireballChance, confusionChance = 50, 30
	default:
		fireballChance, confusionChance = 100, 50
	}
	return []weightedItem{
		{item: domain.ItemHealthPotion, weight: 200},
		{item: domain.ItemFireballScroll, weight: fireballChance},
		{item: domain.ItemConfusionScroll, weight: confusionChance},
		{item: domain.ItemSword, weight: itemChance},
		{item: domain.ItemStaff, weight: itemChance},
		{item: domain.ItemArmour, weight: itemChance},
		{item: domain.ItemRobe, weight: itemChance},
	}
}

func chooseNpc(distribution []weightedNpc, rng *rand.Rand) domain.NpcType {
	sum := 0
	for _, entry := range distribution {
		sum += entry.weight
	}
	choice := rng.IntN(sum)
	for _, entry := range distribution {
		if choice < entry.weight {
			return entry.npc
		}
		choice -= entry.weight
	}
	panic("unreachable")
}

func chooseItem(distribution []weightedItem, rng *rand.Rand) domain.ItemType {
	sum := 0
	for _, entry := range distribution {
		sum += entry.weight
	}
	choice := rng.IntN(sum)
	for _, entry := range distribution {
		if choice < entry.weight {
			return entry.item
		}
		choice -= entry.weight
	}
	panic("unreachable")
}

// room - прямоугольная область карты.
type room struct {
	topLeft domain.Coord
	size    domain.Size
}

// chooseRoom выбирает случайный размер и положение комнаты в границах.
func chooseRoom(bounds domain.Size, rng *rand.Rand) room {
	size := domain.Size{
		Width:  5 + rng.IntN(6), // 5..10
		Height: 5 + rng.IntN(4), // 5..8
	}
	topLeft := domain.Coord{
		X: rng.IntN(bounds.Width - size.Width),
		Y: rng.IntN(bounds.Height - size.Height),
	}
	return room{topLeft: topLeft, size: size}
}

// centre - центр комнаты с округлением вниз.
func (r room) centre() domain.Coord {
	return domain.Coord{
		X: r.topLeft.X + r.size.Width/2,
		Y: r.topLeft.Y + r.size.Height/2,
	}
}

func (r room) forEachCoord(fn func(domain.Coord)) {
	for y := 0; y < r.size.Height; y++ {
		for x := 0; x < r.size.Width; x++ {
			fn(domain.Coord{X: r.topLeft.X + x, Y: r.topLeft.Y + y})
		}
	}
}

// onlyIntersectsEmpty: комната ставится только на нетронутые клетки.
func (r room) onlyIntersectsEmpty(grid workGrid) bool {
	ok := true
	r.forEachCoord(func(c domain.Coord) {
		if grid.at(c) != nil {
			ok = false
		}
	})
	return ok
}

// carveOut вырезает комнату. Верхняя и левая стороны остаются стеной:
// это не дает двум комнатам слипнуться вплотную.
func (r room) carveOut(grid workGrid) {
	r.forEachCoord(func(c domain.Coord) {
		if c.X == r.topLeft.X || c.Y == r.topLeft.Y {
			grid.set(c, domain.TerrainTile{Kind: domain.TerrainWall})
		} else {
			grid.set(c, domain.TerrainTile{Kind: domain.TerrainFloor})
		}
	})
}

// floorCoords - клетки пола комнаты в построчном порядке.
func (r room) floorCoords(grid workGrid) []domain.Coord {
	var coords []domain.Coord
	r.forEachCoord(func(c domain.Coord) {
		if tile := grid.at(c); tile != nil && tile.Kind == domain.TerrainFloor {
			coords = append(coords, c)
		}
	})
	return coords
}

// chooseCoords выбирает до n различных клеток из списка.
func chooseCoords(coords []domain.Coord, n int, rng *rand.Rand) []domain.Coord {
	if n > len(coords) {
		n = len(coords)
	}
	for i := 0; i < n; i++ {
		j := i + rng.IntN(len(coords)-i)
		coords[i], coords[j] = coords[j], coords[i]
	}
	return coords[:n]
}

func (r room) placeNpcs(n int, distribution []weightedNpc, grid workGrid, rng *rand.Rand) {
	for _, coord := range chooseCoords(r.floorCoords(grid), n, rng) {
		grid.set(coord, domain.TerrainTile{Kind: domain.TerrainNpc, Npc: chooseNpc(distribution, rng)})
	}
}

func (r room) placeItems(n int, distribution []weightedItem, grid workGrid, rng *rand.Rand) {
	for _, coord := range chooseCoords(r.floorCoords(grid), n, rng) {
		grid.set(coord, domain.TerrainTile{Kind: domain.TerrainItem, Item: chooseItem(distribution, rng)})
	}
}

// workGrid - черновик карты: nil означает нетронутую клетку, которая
// в конце станет стеной.
type workGrid [][]*domain.TerrainTile

func newWorkGrid(size domain.Size) workGrid {
	grid := make(workGrid, size.Height)
	for y := range grid {
		grid[y] = make([]*domain.TerrainTile, size.Width)
	}
	return grid
}

func (g workGrid) at(c domain.Coord) *domain.TerrainTile {
	return g[c.Y][c.X]
}

func (g workGrid) set(c domain.Coord, tile domain.TerrainTile) {
	g[c.Y][c.X] = &tile
}

// carveCorridor прокладывает Г-образный коридор между двумя точками:
// сперва по горизонтали на высоте start, потом по вертикали на
// колонке end. Пробивает только стены и нетронутые клетки.
func carveCorridor(start, end domain.Coord, grid workGrid) {
	x0, x1 := min(start.X, end.X), max(start.X, end.X)
	for x := x0; x <= x1; x++ {
		c := domain.Coord{X: x, Y: start.Y}
		if tile := grid.at(c); tile == nil || tile.Kind == domain.TerrainWall {
			grid.set(c, domain.TerrainTile{Kind: domain.TerrainFloor})
		}
	}
	y0, y1 := min(start.Y, end.Y), max(start.Y, end.Y)
	for y := y0; y < y1; y++ {
		c := domain.Coord{X: end.X, Y: y}
		if tile := grid.at(c); tile == nil || tile.Kind == domain.TerrainWall {
			grid.set(c, domain.TerrainTile{Kind: domain.TerrainFloor})
		}
	}
}

// Generate строит план уровня: комнаты, Г-образные коридоры между
// центрами соседних по порядку постройки комнат, игрок в центре первой
// комнаты, лестница вниз в центре последней.
func Generate(size domain.Size, level int, rng *rand.Rand) [][]domain.TerrainTile {
	grid := newWorkGrid(size)
	var roomCentres []domain.Coord

	npcDistribution := makeNpcDistribution(level)
	itemDistribution := makeItemDistribution(level)

	for attempt := 0; attempt < numRoomAttempts; attempt++ {
		r := chooseRoom(size, rng)
		if !r.onlyIntersectsEmpty(grid) {
			continue
		}
		r.carveOut(grid)

		centre := r.centre()
		if len(roomCentres) == 0 {
			grid.set(centre, domain.TerrainTile{Kind: domain.TerrainPlayer})
		}
		roomCentres = append(roomCentres, centre)

		numNpcs := npcsPerRoomDistribution[rng.IntN(len(npcsPerRoomDistribution))]
		r.placeNpcs(numNpcs, npcDistribution, grid, rng)

		numItems := itemsPerRoomDistribution[rng.IntN(len(itemsPerRoomDistribution))]
		r.placeItems(numItems, itemDistribution, grid, rng)
	}

	for i := 1; i < len(roomCentres); i++ {
		carveCorridor(roomCentres[i-1], roomCentres[i], grid)
	}

	// Лестница затирает центр последней комнаты (там может стоять NPC
	// или лежать предмет, лестница важнее).
	grid.set(roomCentres[len(roomCentres)-1], domain.TerrainTile{Kind: domain.TerrainStairs})

	logger.Log.WithFields(logrus.Fields{
		"component": "dungeon_generator",
		"level":     level,
		"rooms":     len(roomCentres),
	}).Debug("Dungeon generated.")

	terrain := make([][]domain.TerrainTile, size.Height)
	for y := range terrain {
		terrain[y] = make([]domain.TerrainTile, size.Width)
		for x := range terrain[y] {
			if tile := grid[y][x]; tile != nil {
				terrain[y][x] = *tile
			} else {
				terrain[y][x] = domain.TerrainTile{Kind: domain.TerrainWall}
			}
		}
	}
	return terrain
}
