package systems

import (
	"rogue-server/internal/domain"
	"rogue-server/pkg/logger"

	"github.com/sirupsen/logrus"
)

const (
	// MaxApproachDistance ограничивает радиус поля расстояний: дальше
	// этого NPC игрока все равно не видят и преследовать не начнут.
	MaxApproachDistance = 20
	// SearchDistance - глубина локального поиска шага вокруг NPC.
	// Тупики длиннее этого NPC обойти не сумеет.
	SearchDistance = 5
)

const unreachable = -1

// NpcActionKind - решение NPC на ход.
type NpcActionKind uint8

const (
	NpcWait NpcActionKind = iota
	NpcMove
)

type NpcAction struct {
	Kind      NpcActionKind
	Direction domain.CardinalDirection
}

// BehaviourContext держит поле расстояний до игрока, общее для всех
// NPC на текущем ходу: BFS считается один раз, ищут по нему все.
type BehaviourContext struct {
	gridSize         domain.Size
	distanceToPlayer []int
	queue            []domain.Coord
}

func NewBehaviourContext(size domain.Size) *BehaviourContext {
	return &BehaviourContext{
		gridSize:         size,
		distanceToPlayer: make([]int, size.Count()),
		queue:            make([]domain.Coord, 0, size.Count()),
	}
}

// Update пересчитывает поле расстояний волной от игрока.
// Проходимость берется без учета других NPC: при планировании соседи
// успеют подвинуться, реальные столкновения решаются на самом шаге.
func (ctx *BehaviourContext) Update(player domain.Entity, w *domain.World) {
	playerCoord, ok := w.CoordOf(player)
	if !ok {
		panic("player has no coord")
	}
	for i := range ctx.distanceToPlayer {
		ctx.distanceToPlayer[i] = unreachable
	}
	ctx.queue = ctx.queue[:0]
	ctx.distanceToPlayer[ctx.gridSize.Index(playerCoord)] = 0
	ctx.queue = append(ctx.queue, playerCoord)
	for head := 0; head < len(ctx.queue); head++ {
		coord := ctx.queue[head]
		distance := ctx.distanceToPlayer[ctx.gridSize.Index(coord)]
		if distance >= MaxApproachDistance {
			continue
		}
		for _, direction := range domain.CardinalDirections {
			next := coord.Add(direction.Coord())
			if !next.IsValid(ctx.gridSize) || !w.CanNpcEnterIgnoringOtherNpcs(next) {
				continue
			}
			idx := ctx.gridSize.Index(next)
			if ctx.distanceToPlayer[idx] != unreachable {
				continue
			}
			ctx.distanceToPlayer[idx] = distance + 1
			ctx.queue = append(ctx.queue, next)
		}
	}

	logger.Log.WithFields(logrus.Fields{
		"component":      "behaviour_system",
		"player_pos":     playerCoord,
		"reached_cells":  len(ctx.queue),
		"max_approach":   MaxApproachDistance,
	}).Debug("Distance field to player updated.")
}

func (ctx *BehaviourContext) distanceAt(coord domain.Coord) int {
	return ctx.distanceToPlayer[ctx.gridSize.Index(coord)]
}

// Agent - состояние поведения одного NPC. Сейчас NPC не помнят ничего
// между ходами, но таблица агентов задает состав участников AI-фазы.
type Agent struct{}

func NewAgent() *Agent {
	return &Agent{}
}

// Act решает, что NPC делает на этом ходу.
// Сначала проверка зрения: игрок дальше дальности зрения или за стеной -
// NPC ждет, к полю расстояний даже не обращается. Иначе - локальный
// поиск шага с наискорейшим спуском по полю.
func (a *Agent) Act(entity, player domain.Entity, w *domain.World, ctx *BehaviourContext) NpcAction {
	npcCoord, ok := w.CoordOf(entity)
	if !ok {
		panic("npc has no coord")
	}
	playerCoord, ok := w.CoordOf(player)
	if !ok {
		panic("player has no coord")
	}

	actLogger := logger.Log.WithFields(logrus.Fields{
		"component": "behaviour_system",
		"npc":       entity,
		"npc_pos":   npcCoord,
	})

	if npcCoord.DistanceSquared(playerCoord) > VisionDistanceSquared {
		actLogger.Debug("Target out of vision range. Action: WAIT")
		return NpcAction{Kind: NpcWait}
	}
	if !canNpcSee(w, npcCoord, playerCoord) {
		actLogger.Debug("Target not visible. Action: WAIT")
		return NpcAction{Kind: NpcWait}
	}

	direction, found := ctx.searchStep(npcCoord, w)
	if !found {
		actLogger.Debug("No descending step found. Action: WAIT")
		return NpcAction{Kind: NpcWait}
	}
	actLogger.WithField("direction", direction).Debug("Action: MOVE")
	return NpcAction{Kind: NpcMove, Direction: direction}
}

// canNpcSee - взгляд NPC: те же стены, что и у игрока, но предикат
// мира, а не сетка видимости (NPC не ведут свою карту разведки).
func canNpcSee(w *domain.World, from, to domain.Coord) bool {
	if from == to {
		return true
	}
	return HasLineOfSight(w, from, to)
}

type searchNode struct {
	coord     domain.Coord
	firstStep domain.CardinalDirection
	depth     int
}

// searchStep ищет в окрестности NPC клетку с минимальным значением
// поля расстояний и возвращает первый шаг к ней. Обход - BFS глубиной
// SearchDistance по реально проходимым клеткам (с учетом других NPC).
// Улучшения относительно текущей клетки нет - шага нет.
func (ctx *BehaviourContext) searchStep(npcCoord domain.Coord, w *domain.World) (domain.CardinalDirection, bool) {
	bestDistance := ctx.distanceAt(npcCoord)
	if bestDistance == unreachable {
		// NPC стоит вне поля: игрок слишком далеко или отрезан.
		bestDistance = int(^uint(0) >> 1)
	}
	bestStep := domain.North
	found := false

	visited := map[domain.Coord]struct{}{npcCoord: {}}
	var frontier []searchNode
	for _, direction := range domain.CardinalDirections {
		next := npcCoord.Add(direction.Coord())
		if !next.IsValid(ctx.gridSize) || !w.CanNpcEnter(next) {
			continue
		}
		visited[next] = struct{}{}
		frontier = append(frontier, searchNode{coord: next, firstStep: direction, depth: 1})
	}

	for head := 0; head < len(frontier); head++ {
		node := frontier[head]
		if d := ctx.distanceAt(node.coord); d != unreachable && d < bestDistance {
			bestDistance = d
			bestStep = node.firstStep
			found = true
		}
		if node.depth >= SearchDistance {
			continue
		}
		for _, direction := range domain.CardinalDirections {
			next := node.coord.Add(direction.Coord())
			if !next.IsValid(ctx.gridSize) || !w.CanNpcEnter(next) {
				continue
			}
			if _, seen := visited[next]; seen {
				continue
			}
			visited[next] = struct{}{}
			frontier = append(frontier, searchNode{coord: next, firstStep: node.firstStep, depth: node.depth + 1})
		}
	}

	return bestStep, found
}
