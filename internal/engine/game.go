package engine

import (
	"encoding/json"
	"fmt"
	"math/rand/v2"

	"github.com/sirupsen/logrus"

	"rogue-server/internal/domain"
	"rogue-server/internal/systems"
	"rogue-server/pkg/dungeon"
	"rogue-server/pkg/logger"
)

// GameState - одна игровая сессия: мир текущего уровня, сетка
// видимости, поведение NPC, журнал сообщений и поток случайных чисел.
// Все операции синхронные, ход либо выполняется целиком, либо не
// начинается.
type GameState struct {
	World        *domain.World
	Visibility   *systems.VisibilityGrid
	Player       domain.Entity
	MessageLog   domain.MessageLog
	DungeonLevel int

	agents    domain.ComponentTable[*systems.Agent]
	behaviour *systems.BehaviourContext
	algorithm systems.VisibilityAlgorithm

	// Весь рандом игры идет через один PCG: сохранив его состояние,
	// мы воспроизводим продолжение партии бит в бит.
	pcg *rand.PCG
	rng *rand.Rand
}

// NewGameState начинает новую партию на нулевом уровне подземелья.
func NewGameState(size domain.Size, seed uint64, algorithm systems.VisibilityAlgorithm) *GameState {
	pcg := rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)
	g := &GameState{
		World:      domain.NewWorld(size),
		Visibility: systems.NewVisibilityGrid(size),
		agents:     domain.NewComponentTable[*systems.Agent](),
		behaviour:  systems.NewBehaviourContext(size),
		algorithm:  algorithm,
		pcg:        pcg,
		rng:        rand.New(pcg),
	}
	terrain := dungeon.Generate(size, g.DungeonLevel, g.rng)
	populate := g.World.PopulateFromTerrain(terrain)
	g.Player = populate.PlayerEntity
	for _, npc := range populate.Npcs {
		g.agents.Insert(npc, systems.NewAgent())
	}
	g.MessageLog.Append(domain.LogMessage{Kind: domain.MsgWelcome})
	g.UpdateVisibility()

	logger.Log.WithFields(logrus.Fields{
		"component": "game_state",
		"seed":      seed,
		"npcs":      len(populate.Npcs),
	}).Info("New game started")
	return g
}

// --- ХОД ИГРОКА ---

// afterPlayerTurn доигрывает остаток хода: снаряды летят до конца,
// NPC ходят, видимость пересчитывается.
func (g *GameState) afterPlayerTurn() {
	for g.World.HasProjectiles() {
		g.World.TickProjectiles(&g.MessageLog)
	}
	g.npcTurn()
	g.UpdateVisibility()
}

// MaybeMovePlayer - шаг или атака в указанном направлении.
// Ход тратится даже если шаг уперся в стену: наказание за невнимательность
// здесь не нужно, но и свободных ходов за проверку стен не положено.
func (g *GameState) MaybeMovePlayer(direction domain.CardinalDirection) {
	if !g.IsPlayerAlive() {
		return
	}
	g.World.MaybeMoveCharacter(g.Player, direction, &g.MessageLog, g.rng)
	g.afterPlayerTurn()
}

// WaitPlayer пропускает ход.
func (g *GameState) WaitPlayer() {
	if !g.IsPlayerAlive() {
		return
	}
	g.afterPlayerTurn()
}

// MaybePlayerGetItem подбирает предмет под ногами. Неудача хода не тратит.
func (g *GameState) MaybePlayerGetItem() bool {
	if !g.IsPlayerAlive() {
		return false
	}
	if !g.World.MaybeGetItem(g.Player, &g.MessageLog) {
		return false
	}
	g.afterPlayerTurn()
	return true
}

// MaybePlayerUseItem применяет предмет из слота. Для прицельных
// предметов ход не завершается: мир ждет MaybePlayerUseItemAim.
func (g *GameState) MaybePlayerUseItem(slot int) (domain.ItemUsage, bool) {
	if !g.IsPlayerAlive() {
		return domain.UsageImmediate, false
	}
	usage, ok := g.World.MaybeUseItem(g.Player, slot, &g.MessageLog)
	if ok && usage == domain.UsageImmediate {
		g.afterPlayerTurn()
	}
	return usage, ok
}

// MaybePlayerUseItemAim завершает применение прицельного предмета.
func (g *GameState) MaybePlayerUseItemAim(slot int, target domain.Coord) bool {
	if !g.IsPlayerAlive() {
		return false
	}
	if !g.World.MaybeUseItemAim(g.Player, slot, target, &g.MessageLog) {
		return false
	}
	g.afterPlayerTurn()
	return true
}

// MaybePlayerDropItem бросает предмет из слота под ноги.
func (g *GameState) MaybePlayerDropItem(slot int) bool {
	if !g.IsPlayerAlive() {
		return false
	}
	if !g.World.MaybeDropItem(g.Player, slot, &g.MessageLog) {
		return false
	}
	g.afterPlayerTurn()
	return true
}

// MaybePlayerDescend спускает игрока по лестнице на следующий уровень.
// Персонаж переносится с инвентарем, мир строится заново, карта
// разведки забывается.
func (g *GameState) MaybePlayerDescend() bool {
	if !g.IsPlayerAlive() {
		return false
	}
	coord, ok := g.World.CoordOf(g.Player)
	if !ok {
		return false
	}
	if !g.World.CoordContainsStairs(coord) {
		return false
	}
	g.DungeonLevel++
	data := g.World.RemoveCharacter(g.Player)
	g.World.Clear()
	g.Visibility.Clear()
	terrain := dungeon.Generate(g.World.Size(), g.DungeonLevel, g.rng)
	populate := g.World.PopulateFromTerrain(terrain)
	g.Player = populate.PlayerEntity
	g.World.ReplaceCharacter(g.Player, data)
	g.agents = domain.NewComponentTable[*systems.Agent]()
	for _, npc := range populate.Npcs {
		g.agents.Insert(npc, systems.NewAgent())
	}
	g.MessageLog.Append(domain.LogMessage{Kind: domain.MsgPlayerDescends})
	g.UpdateVisibility()

	logger.Log.WithFields(logrus.Fields{
		"component": "game_state",
		"level":     g.DungeonLevel,
		"npcs":      len(populate.Npcs),
	}).Info("Player descended")
	return true
}

// LevelUpPlayer применяет выбранное повышение характеристики.
func (g *GameState) LevelUpPlayer(choice domain.LevelUp) {
	if !g.IsPlayerAlive() {
		return
	}
	g.World.LevelUpCharacter(g.Player, choice)
}

// --- ХОД NPC ---

// npcTurn: поле расстояний считается один раз, затем каждый агент
// решает и сразу ходит. Мертвые агенты собираются списком и снимаются
// после обхода, чтобы не менять таблицу под итерацией.
func (g *GameState) npcTurn() {
	g.behaviour.Update(g.Player, g.World)
	var dead []domain.Entity
	g.agents.ForEach(func(e domain.Entity, agent *systems.Agent) {
		if !g.World.IsLivingCharacter(e) {
			dead = append(dead, e)
			return
		}
		action := agent.Act(e, g.Player, g.World, g.behaviour)
		if action.Kind == systems.NpcMove {
			g.World.MaybeMoveCharacter(e, action.Direction, &g.MessageLog, g.rng)
		}
	})
	for _, e := range dead {
		g.agents.Remove(e)
	}
}

// --- ЗАПРОСЫ ---

func (g *GameState) UpdateVisibility() {
	coord, ok := g.World.CoordOf(g.Player)
	if !ok {
		return
	}
	g.Visibility.Update(coord, g.World, g.algorithm)
}

func (g *GameState) IsPlayerAlive() bool {
	return g.World.IsLivingCharacter(g.Player)
}

func (g *GameState) PlayerCoord() domain.Coord {
	coord, _ := g.World.CoordOf(g.Player)
	return coord
}

func (g *GameState) PlayerHitPoints() domain.HitPoints {
	hp, _ := g.World.HitPointsOf(g.Player)
	return hp
}

func (g *GameState) PlayerInventory() *domain.Inventory {
	inventory, _ := g.World.InventoryOf(g.Player)
	return inventory
}

// ExamineCell показывает содержимое клетки, но только если игрок видит
// ее прямо сейчас: по памяти существ не опознать.
func (g *GameState) ExamineCell(coord domain.Coord) (domain.ExamineCell, bool) {
	if g.Visibility.CellVisibility(coord) != systems.VisibilityCurrently {
		return domain.ExamineCell{}, false
	}
	return g.World.ExamineCellAt(coord)
}

// DrainMessages отдает накопленные сообщения начиная с already, для
// инкрементальной доставки клиенту.
func (g *GameState) DrainMessages(already int) []domain.LogMessage {
	if already < 0 || already > len(g.MessageLog) {
		return nil
	}
	return g.MessageLog[already:]
}

// --- СЕРИАЛИЗАЦИЯ ---

type gameStateSave struct {
	World        *domain.World           `json:"world"`
	Visibility   *systems.VisibilityGrid `json:"visibility"`
	Player       domain.Entity           `json:"player"`
	MessageLog   domain.MessageLog       `json:"message_log"`
	DungeonLevel int                     `json:"dungeon_level"`
	Agents       []domain.Entity         `json:"agents"`
	Rng          []byte                  `json:"rng"`
	Omniscient   bool                    `json:"omniscient"`
}

func (g *GameState) MarshalJSON() ([]byte, error) {
	rngState, err := g.pcg.MarshalBinary()
	if err != nil {
		return nil, fmt.Errorf("состояние ГСЧ: %w", err)
	}
	return json.Marshal(gameStateSave{
		World:        g.World,
		Visibility:   g.Visibility,
		Player:       g.Player,
		MessageLog:   g.MessageLog,
		DungeonLevel: g.DungeonLevel,
		Agents:       g.agents.Entities(),
		Rng:          rngState,
		Omniscient:   g.algorithm == systems.AlgorithmOmniscient,
	})
}

func (g *GameState) UnmarshalJSON(data []byte) error {
	var save gameStateSave
	if err := json.Unmarshal(data, &save); err != nil {
		return err
	}
	pcg := rand.NewPCG(0, 0)
	if err := pcg.UnmarshalBinary(save.Rng); err != nil {
		return fmt.Errorf("состояние ГСЧ: %w", err)
	}
	g.World = save.World
	g.Visibility = save.Visibility
	g.Player = save.Player
	g.MessageLog = save.MessageLog
	g.DungeonLevel = save.DungeonLevel
	g.agents = domain.NewComponentTable[*systems.Agent]()
	for _, e := range save.Agents {
		g.agents.Insert(e, systems.NewAgent())
	}
	g.behaviour = systems.NewBehaviourContext(save.World.Size())
	g.algorithm = systems.AlgorithmShadowcast
	if save.Omniscient {
		g.algorithm = systems.AlgorithmOmniscient
	}
	g.pcg = pcg
	g.rng = rand.New(pcg)
	return nil
}
