package systems

import "rogue-server/internal/domain"

// Дальность зрения общая для игрока и NPC.
const (
	VisionDistanceSquared = 100
	VisionRadius          = 10 // floor(sqrt(VisionDistanceSquared))
)

// VisibilityAlgorithm выбирает режим обновления видимости.
type VisibilityAlgorithm uint8

const (
	AlgorithmShadowcast VisibilityAlgorithm = iota
	// AlgorithmOmniscient открывает всю карту. Отладочный режим.
	AlgorithmOmniscient
)

// CellVisibility - статус клетки с точки зрения игрока.
type CellVisibility uint8

const (
	VisibilityNever CellVisibility = iota
	VisibilityPreviously
	VisibilityCurrently
)

// VisibilityGrid хранит для каждой клетки номер хода, на котором она
// была видна в последний раз. Счетчик ходов растет монотонно, поэтому
// сетку не нужно обнулять перед каждым обновлением: устаревший штамп
// сам по себе означает "видел раньше". Стоимость обновления -
// O(видимых клеток), а не O(размера карты).
type VisibilityGrid struct {
	GridSize domain.Size `json:"size"`
	LastSeen []uint64    `json:"last_seen"`
	// Count начинается с 1: штамп 0 зарезервирован за "никогда не видел".
	Count uint64 `json:"count"`
}

func NewVisibilityGrid(size domain.Size) *VisibilityGrid {
	return &VisibilityGrid{
		GridSize: size,
		LastSeen: make([]uint64, size.Count()),
		Count:    1,
	}
}

// CellVisibility: Currently - штамп равен текущему счетчику,
// Never - клетку не видели ни разу, иначе Previously.
func (g *VisibilityGrid) CellVisibility(coord domain.Coord) CellVisibility {
	if !coord.IsValid(g.GridSize) {
		return VisibilityNever
	}
	switch stamp := g.LastSeen[g.GridSize.Index(coord)]; {
	case stamp == g.Count:
		return VisibilityCurrently
	case stamp == 0:
		return VisibilityNever
	default:
		return VisibilityPreviously
	}
}

// Update пересчитывает видимость после хода игрока.
func (g *VisibilityGrid) Update(playerCoord domain.Coord, w *domain.World, algorithm VisibilityAlgorithm) {
	g.Count++
	switch algorithm {
	case AlgorithmOmniscient:
		for i := range g.LastSeen {
			g.LastSeen[i] = g.Count
		}
	case AlgorithmShadowcast:
		ComputeVisibleCells(w, playerCoord, func(coord domain.Coord) {
			g.LastSeen[g.GridSize.Index(coord)] = g.Count
		})
	}
}

// Clear забывает всю разведанную карту. Используется при спуске на
// новый уровень.
func (g *VisibilityGrid) Clear() {
	for i := range g.LastSeen {
		g.LastSeen[i] = 0
	}
	g.Count = 1
}
