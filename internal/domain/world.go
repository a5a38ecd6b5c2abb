package domain

import (
	"errors"
	"math/rand/v2"
)

// ItemUsage сообщает вызывающему, чем закончилось применение предмета:
// эффект сработал сразу или нужен выбор цели.
type ItemUsage uint8

const (
	UsageImmediate ItemUsage = iota
	UsageAim
)

// LevelUp - выбор игрока при повышении уровня.
type LevelUp uint8

const (
	LevelUpStrength LevelUp = iota
	LevelUpDexterity
	LevelUpIntelligence
	LevelUpHealth
)

// ExamineCellKind - что игрок видит под курсором осмотра.
type ExamineCellKind uint8

const (
	ExamineNpc ExamineCellKind = iota
	ExamineNpcCorpse
	ExamineItem
	ExaminePlayer
)

type ExamineCell struct {
	Kind ExamineCellKind `json:"kind"`
	Npc  NpcType         `json:"npc,omitempty"`
	Item ItemType        `json:"item,omitempty"`
}

// EquippedInventoryIndices - индексы слотов инвентаря с надетой
// экипировкой. -1 означает "ничего не экипировано".
type EquippedInventoryIndices struct {
	Held int `json:"held"`
	Worn int `json:"worn"`
}

// CharacterData - персонаж, изъятый из мира для переноса между
// уровнями. Хэндлы сущностей после очистки мира недействительны,
// поэтому предметы инвентаря тоже разбираются до данных; слоты
// выровнены с исходным инвентарем, nil - пустой слот.
type CharacterData struct {
	EntityData     EntityData    `json:"entity_data"`
	InventoryItems []*EntityData `json:"inventory_items"`
}

// Populate - результат заселения уровня.
type Populate struct {
	PlayerEntity Entity
	Npcs         []Entity
}

type bumpAttackOutcome uint8

const (
	bumpHit bumpAttackOutcome = iota
	bumpDodge
	bumpKill
)

const healthPotionHeal = 5

// World - модель уровня: аллокатор сущностей, таблицы компонентов и
// пространственный индекс. Вся игровая механика выражена операциями
// над этой тройкой.
type World struct {
	Allocator  *EntityAllocator `json:"allocator"`
	Components *Components      `json:"components"`
	Spatial    *SpatialTable    `json:"spatial"`
}

func NewWorld(size Size) *World {
	return &World{
		Allocator:  NewEntityAllocator(),
		Components: NewComponents(),
		Spatial:    NewSpatialTable(size),
	}
}

// Clear опустошает мир. Хэндлы, выданные до очистки, становятся
// недействительными.
func (w *World) Clear() {
	w.Allocator.Clear()
	w.Components.Clear()
	w.Spatial.Clear()
}

func (w *World) Size() Size {
	return w.Spatial.GridSize
}

// --- СПАВН ---

func (w *World) mustPlace(e Entity, coord Coord, layer Layer) {
	if err := w.Spatial.Update(e, Location{Coord: coord, Layer: layer}); err != nil {
		panic("spawn into occupied slot: " + err.Error())
	}
}

func (w *World) spawnWall(coord Coord) {
	e := w.Allocator.Alloc()
	w.mustPlace(e, coord, LayerFeature)
	w.Components.Tile.Insert(e, Tile{Kind: TileWall})
}

func (w *World) spawnFloor(coord Coord) {
	e := w.Allocator.Alloc()
	w.mustPlace(e, coord, LayerFloor)
	w.Components.Tile.Insert(e, Tile{Kind: TileFloor})
}

func (w *World) spawnStairs(coord Coord) {
	e := w.Allocator.Alloc()
	w.mustPlace(e, coord, LayerFloor)
	w.Components.Tile.Insert(e, Tile{Kind: TileStairs})
	w.Components.Stairs.Insert(e, struct{}{})
}

func (w *World) spawnPlayer(coord Coord) Entity {
	e := w.Allocator.Alloc()
	w.mustPlace(e, coord, LayerCharacter)
	w.Components.Tile.Insert(e, Tile{Kind: TilePlayer})
	w.Components.HitPoints.Insert(e, NewHitPoints(20))
	w.Components.BaseDamage.Insert(e, 1)
	w.Components.Strength.Insert(e, 1)
	w.Components.Dexterity.Insert(e, 1)
	w.Components.Intelligence.Insert(e, 1)
	w.Components.Inventory.Insert(e, NewInventory(10))
	return e
}

func (w *World) spawnNpc(coord Coord, npcType NpcType) Entity {
	e := w.Allocator.Alloc()
	w.mustPlace(e, coord, LayerCharacter)
	w.Components.Tile.Insert(e, NewNpcTile(npcType))
	w.Components.Npc.Insert(e, npcType)
	var hp HitPoints
	var strength, dexterity int
	switch npcType {
	case NpcOrc:
		hp, strength, dexterity = NewHitPoints(2), 1, 1
	case NpcTroll:
		hp, strength, dexterity = NewHitPoints(6), 2, 0
	}
	w.Components.HitPoints.Insert(e, hp)
	w.Components.BaseDamage.Insert(e, 1)
	w.Components.Strength.Insert(e, strength)
	w.Components.Dexterity.Insert(e, dexterity)
	return e
}

func (w *World) spawnItem(coord Coord, itemType ItemType) {
	e := w.Allocator.Alloc()
	w.mustPlace(e, coord, LayerObject)
	w.Components.Tile.Insert(e, NewItemTile(itemType))
	w.Components.Item.Insert(e, itemType)
}

func (w *World) spawnProjectile(from, to Coord, projectile ProjectileType) {
	e := w.Allocator.Alloc()
	w.mustPlace(e, from, LayerProjectile)
	w.Components.Tile.Insert(e, NewProjectileTile(projectile.Kind))
	w.Components.Projectile.Insert(e, projectile)
	w.Components.Trajectory.Insert(e, NewTrajectory(to.Sub(from)))
}

// PopulateFromTerrain заселяет мир по плану уровня.
// План индексируется terrain[y][x] и обязан содержать ровно одну
// клетку TerrainPlayer.
func (w *World) PopulateFromTerrain(terrain [][]TerrainTile) Populate {
	player := NilEntity
	var npcs []Entity
	for y, row := range terrain {
		for x, tile := range row {
			coord := Coord{X: x, Y: y}
			switch tile.Kind {
			case TerrainPlayer:
				w.spawnFloor(coord)
				player = w.spawnPlayer(coord)
			case TerrainFloor:
				w.spawnFloor(coord)
			case TerrainStairs:
				w.spawnStairs(coord)
			case TerrainWall:
				w.spawnFloor(coord)
				w.spawnWall(coord)
			case TerrainNpc:
				npcs = append(npcs, w.spawnNpc(coord, tile.Npc))
				w.spawnFloor(coord)
			case TerrainItem:
				w.spawnItem(coord, tile.Item)
				w.spawnFloor(coord)
			}
		}
	}
	if player == NilEntity {
		panic("terrain without player start")
	}
	return Populate{PlayerEntity: player, Npcs: npcs}
}

// --- ДВИЖЕНИЕ И БОЙ ---

// MaybeMoveCharacter пытается сдвинуть персонажа на шаг.
// Смятение перехватывает намерение: направление заменяется случайным.
// Шаг в персонажа противоположной стороны превращается в атаку, шаг в
// стену съедается молча.
func (w *World) MaybeMoveCharacter(character Entity, direction CardinalDirection, log *MessageLog, rng *rand.Rand) {
	coord, ok := w.Spatial.CoordOf(character)
	if !ok {
		panic("character has no coord")
	}
	if countdown, confused := w.Components.ConfusionCountdown.Get(character); confused {
		if countdown == 0 {
			w.Components.ConfusionCountdown.Remove(character)
			if npcType, isNpc := w.Components.Npc.Get(character); isNpc {
				log.Append(LogMessage{Kind: MsgNpcIsNoLongerConfused, Npc: npcType})
			}
		} else {
			w.Components.ConfusionCountdown.Insert(character, countdown-1)
		}
		direction = CardinalDirections[rng.IntN(len(CardinalDirections))]
	}
	dest := coord.Add(direction.Coord())
	if !dest.IsValid(w.Spatial.GridSize) {
		return
	}
	layers := w.Spatial.LayersAtChecked(dest)
	if layers.Character != NilEntity {
		moverNpc, moverIsNpc := w.Components.Npc.Get(character)
		destNpc, destIsNpc := w.Components.Npc.Get(layers.Character)
		// NPC не дерутся между собой, игрок не бьет сам себя.
		if moverIsNpc != destIsNpc {
			outcome := w.characterBumpAttack(layers.Character, character, rng)
			npcType := moverNpc
			if destIsNpc {
				npcType = destNpc
			}
			writeCombatLogMessages(!moverIsNpc, outcome, npcType, log)
		}
	} else if layers.Feature == NilEntity {
		if err := w.Spatial.UpdateCoord(character, dest); err != nil {
			panic(err)
		}
	}
}

func writeCombatLogMessages(attackerIsPlayer bool, outcome bumpAttackOutcome, npcType NpcType, log *MessageLog) {
	if attackerIsPlayer {
		switch outcome {
		case bumpKill:
			log.Append(LogMessage{Kind: MsgPlayerKillsNpc, Npc: npcType})
		case bumpHit:
			log.Append(LogMessage{Kind: MsgPlayerAttacksNpc, Npc: npcType})
		case bumpDodge:
			log.Append(LogMessage{Kind: MsgNpcDodges, Npc: npcType})
		}
	} else {
		switch outcome {
		case bumpKill:
			log.Append(LogMessage{Kind: MsgNpcKillsPlayer, Npc: npcType})
		case bumpHit:
			log.Append(LogMessage{Kind: MsgNpcAttacksPlayer, Npc: npcType})
		case bumpDodge:
			log.Append(LogMessage{Kind: MsgPlayerDodges, Npc: npcType})
		}
	}
}

// characterBumpAttack разыгрывает контактную атаку.
// Валовый урон = базовый + d(сила), поглощение = d(ловкость жертвы);
// итог ниже нуля срезается, ровно ноль считается уклонением.
func (w *World) characterBumpAttack(victim, attacker Entity, rng *rand.Rand) bumpAttackOutcome {
	baseDamage, _ := w.Components.BaseDamage.Get(attacker)
	strength, _ := w.Components.Strength.Get(attacker)
	dexterity, _ := w.Components.Dexterity.Get(victim)
	gross := baseDamage + rng.IntN(strength+1)
	reduction := rng.IntN(dexterity + 1)
	net := gross - reduction
	if net <= 0 {
		return bumpDodge
	}
	if w.characterDamage(victim, net) {
		return bumpKill
	}
	return bumpHit
}

// characterDamage наносит урон. Возвращает true, если жертва погибла.
func (w *World) characterDamage(victim Entity, damage int) bool {
	hp, ok := w.Components.HitPoints.Get(victim)
	if !ok {
		return false
	}
	hp.Current -= damage
	if hp.Current < 0 {
		hp.Current = 0
	}
	w.Components.HitPoints.Insert(victim, hp)
	if hp.Current == 0 {
		w.characterDie(victim)
		return true
	}
	return false
}

// characterDie превращает персонажа в труп на слое объектов.
// Предмет, лежавший в клетке, уничтожается и замещается трупом.
func (w *World) characterDie(entity Entity) {
	if err := w.Spatial.UpdateLayer(entity, LayerObject); err != nil {
		var occupied *OccupiedError
		if !errors.As(err, &occupied) {
			panic(err)
		}
		w.RemoveEntity(occupied.Occupant)
		if err := w.Spatial.UpdateLayer(entity, LayerObject); err != nil {
			panic(err)
		}
	}
	tile, _ := w.Components.Tile.Get(entity)
	switch tile.Kind {
	case TilePlayer:
		w.Components.Tile.Insert(entity, Tile{Kind: TilePlayerCorpse})
	case TileNpc:
		w.Components.Tile.Insert(entity, NewNpcCorpseTile(tile.Npc))
	default:
		panic("unexpected tile on dying character")
	}
}

// --- ПРЕДМЕТЫ ---

// MaybeGetItem подбирает предмет со слоя объектов под персонажем.
// Возвращает false, если подбирать нечего или инвентарь полон.
func (w *World) MaybeGetItem(character Entity, log *MessageLog) bool {
	coord, ok := w.Spatial.CoordOf(character)
	if !ok {
		panic("character has no coord")
	}
	layers := w.Spatial.LayersAtChecked(coord)
	if layers.Object != NilEntity {
		if itemType, isItem := w.Components.Item.Get(layers.Object); isItem {
			inventory, hasInventory := w.Components.Inventory.Get(character)
			if !hasInventory {
				panic("character has no inventory")
			}
			if err := inventory.Insert(layers.Object); err == nil {
				w.Spatial.Remove(layers.Object)
				log.Append(LogMessage{Kind: MsgPlayerGets, Item: itemType})
				return true
			}
			log.Append(LogMessage{Kind: MsgPlayerInventoryIsFull})
			return false
		}
	}
	log.Append(LogMessage{Kind: MsgNoItemUnderPlayer})
	return false
}

// MaybeUseItem применяет предмет из слота инвентаря.
// Зелье и экипировка срабатывают сразу; свитки требуют прицеливания,
// и предмет остается в слоте до MaybeUseItemAim.
func (w *World) MaybeUseItem(character Entity, inventoryIndex int, log *MessageLog) (ItemUsage, bool) {
	inventory, hasInventory := w.Components.Inventory.Get(character)
	if !hasInventory {
		panic("character has no inventory")
	}
	item, err := inventory.Get(inventoryIndex)
	if err != nil {
		log.Append(LogMessage{Kind: MsgNoItemInInventorySlot})
		return UsageImmediate, false
	}
	itemType, isItem := w.Components.Item.Get(item)
	if !isItem {
		panic("non-item in inventory")
	}
	switch itemType {
	case ItemHealthPotion:
		hp, _ := w.Components.HitPoints.Get(character)
		hp.Current += healthPotionHeal
		if hp.Current > hp.Max {
			hp.Current = hp.Max
		}
		w.Components.HitPoints.Insert(character, hp)
		if _, err := inventory.Remove(inventoryIndex); err != nil {
			panic(err)
		}
		w.RemoveEntity(item)
		log.Append(LogMessage{Kind: MsgPlayerHeals})
		return UsageImmediate, true
	case ItemFireballScroll, ItemConfusionScroll:
		return UsageAim, true
	case ItemSword, ItemStaff:
		w.Components.EquipHeld.Insert(character, inventoryIndex)
		return UsageImmediate, true
	case ItemArmour, ItemRobe:
		w.Components.EquipWorn.Insert(character, inventoryIndex)
		return UsageImmediate, true
	}
	panic("unknown item type")
}

// MaybeUseItemAim запускает снаряд из прицельного предмета в target.
// Свиток расходуется. Цель в собственной клетке или вне карты не
// принимается: координата приходит от клиента как есть.
func (w *World) MaybeUseItemAim(character Entity, inventoryIndex int, target Coord, log *MessageLog) bool {
	coord, ok := w.Spatial.CoordOf(character)
	if !ok {
		panic("character has no coord")
	}
	if coord == target || !target.IsValid(w.Spatial.GridSize) {
		return false
	}
	inventory, hasInventory := w.Components.Inventory.Get(character)
	if !hasInventory {
		panic("character has no inventory")
	}
	item, err := inventory.Remove(inventoryIndex)
	if err != nil {
		panic(err)
	}
	itemType, _ := w.Components.Item.Get(item)
	intelligence, _ := w.Components.Intelligence.Get(character)
	if intelligence < 0 {
		intelligence = 0
	}
	var projectile ProjectileType
	switch itemType {
	case ItemFireballScroll:
		projectile = ProjectileType{Kind: ProjectileFireball, Damage: intelligence}
	case ItemConfusionScroll:
		projectile = ProjectileType{Kind: ProjectileConfusion, Duration: intelligence * 3}
	default:
		panic("invalid item for aim")
	}
	log.Append(LogMessage{Kind: MsgPlayerLaunchesProjectile, Projectile: projectile})
	w.spawnProjectile(coord, target, projectile)
	w.RemoveEntity(item)
	return true
}

// MaybeDropItem кладет предмет из слота инвентаря под ноги.
// Занятый слой объектов блокирует сброс. Сброшенная экипировка
// перестает быть надетой.
func (w *World) MaybeDropItem(character Entity, inventoryIndex int, log *MessageLog) bool {
	coord, ok := w.Spatial.CoordOf(character)
	if !ok {
		panic("character has no coord")
	}
	if w.Spatial.LayersAtChecked(coord).Object != NilEntity {
		log.Append(LogMessage{Kind: MsgNoSpaceToDropItem})
		return false
	}
	inventory, hasInventory := w.Components.Inventory.Get(character)
	if !hasInventory {
		panic("character has no inventory")
	}
	item, err := inventory.Remove(inventoryIndex)
	if err != nil {
		log.Append(LogMessage{Kind: MsgNoItemInInventorySlot})
		return false
	}
	if err := w.Spatial.Update(item, Location{Coord: coord, Layer: LayerObject}); err != nil {
		panic(err)
	}
	itemType, isItem := w.Components.Item.Get(item)
	if !isItem {
		panic("non-item in inventory")
	}
	if held, ok := w.Components.EquipHeld.Get(character); ok && held == inventoryIndex {
		w.Components.EquipHeld.Remove(character)
	}
	if worn, ok := w.Components.EquipWorn.Get(character); ok && worn == inventoryIndex {
		w.Components.EquipWorn.Remove(character)
	}
	log.Append(LogMessage{Kind: MsgPlayerDrops, Item: itemType})
	return true
}

// --- СНАРЯДЫ ---

// TickProjectiles продвигает каждый снаряд на один шаг траектории.
// Эффекты попаданий копятся и применяются после полного прохода, чтобы
// смерть жертвы не меняла раскладку клеток под ногами у других снарядов.
func (w *World) TickProjectiles(log *MessageLog) {
	type hit struct {
		character  Entity
		projectile ProjectileType
	}
	var toRemove []Entity
	var hits []hit
	w.Components.Trajectory.ForEach(func(e Entity, trajectory *Trajectory) {
		direction, ok := trajectory.Next()
		if !ok {
			toRemove = append(toRemove, e)
			return
		}
		coord, hasCoord := w.Spatial.CoordOf(e)
		if !hasCoord {
			panic("projectile has no coord")
		}
		dest := coord.Add(direction.Coord())
		layers := w.Spatial.LayersAtChecked(dest)
		if layers.Feature != NilEntity {
			toRemove = append(toRemove, e)
		} else if layers.Character != NilEntity {
			toRemove = append(toRemove, e)
			if projectile, ok := w.Components.Projectile.Get(e); ok {
				hits = append(hits, hit{character: layers.Character, projectile: projectile})
			}
		}
		// Столкновения снарядов между собой игнорируем.
		_ = w.Spatial.UpdateCoord(e, dest)
	})
	for _, e := range toRemove {
		w.RemoveEntity(e)
	}
	for _, h := range hits {
		switch h.projectile.Kind {
		case ProjectileFireball:
			npcType, isNpc := w.Components.Npc.Get(h.character)
			if w.characterDamage(h.character, h.projectile.Damage) && isNpc {
				log.Append(LogMessage{Kind: MsgNpcDies, Npc: npcType})
			}
		case ProjectileConfusion:
			w.Components.ConfusionCountdown.Insert(h.character, h.projectile.Duration)
			if npcType, isNpc := w.Components.Npc.Get(h.character); isNpc {
				log.Append(LogMessage{Kind: MsgNpcBecomesConfused, Npc: npcType})
			}
		}
	}
}

func (w *World) HasProjectiles() bool {
	return w.Components.Trajectory.Len() > 0
}

// --- ЗАПРОСЫ ---

// IsLivingCharacter: живой персонаж стоит на слое персонажей,
// труп переезжает на слой объектов.
func (w *World) IsLivingCharacter(e Entity) bool {
	layer, ok := w.Spatial.LayerOf(e)
	return ok && layer == LayerCharacter
}

func (w *World) CoordOf(e Entity) (Coord, bool) {
	return w.Spatial.CoordOf(e)
}

func (w *World) HitPointsOf(e Entity) (HitPoints, bool) {
	return w.Components.HitPoints.Get(e)
}

func (w *World) InventoryOf(e Entity) (*Inventory, bool) {
	return w.Components.Inventory.Get(e)
}

func (w *World) ItemTypeOf(e Entity) (ItemType, bool) {
	return w.Components.Item.Get(e)
}

func (w *World) StrengthOf(e Entity) (int, bool) {
	return w.Components.Strength.Get(e)
}

func (w *World) DexterityOf(e Entity) (int, bool) {
	return w.Components.Dexterity.Get(e)
}

func (w *World) IntelligenceOf(e Entity) (int, bool) {
	return w.Components.Intelligence.Get(e)
}

// OpacityAt: стены непрозрачны, все остальное прозрачно.
func (w *World) OpacityAt(coord Coord) uint8 {
	if w.Spatial.LayersAtChecked(coord).Feature != NilEntity {
		return 255
	}
	return 0
}

// CanNpcEnterIgnoringOtherNpcs: проходима ли клетка в принципе.
// Используется полем расстояний, где чужие NPC успеют подвинуться.
func (w *World) CanNpcEnterIgnoringOtherNpcs(coord Coord) bool {
	layers, ok := w.Spatial.LayersAt(coord)
	return ok && layers.Feature == NilEntity
}

// CanNpcEnter: проходима ли клетка прямо сейчас, с учетом других NPC.
// Игрок клетку не "занимает": шаг в него - это атака.
func (w *World) CanNpcEnter(coord Coord) bool {
	layers, ok := w.Spatial.LayersAt(coord)
	if !ok {
		return false
	}
	containsNpc := layers.Character != NilEntity && w.Components.Npc.Contains(layers.Character)
	return !containsNpc && layers.Feature == NilEntity
}

func (w *World) CanNpcSeeThroughCell(coord Coord) bool {
	layers, ok := w.Spatial.LayersAt(coord)
	return ok && layers.Feature == NilEntity
}

// ExamineCellAt описывает клетку для режима осмотра: персонаж
// приоритетнее объекта, прочее не показывается.
func (w *World) ExamineCellAt(coord Coord) (ExamineCell, bool) {
	layers, ok := w.Spatial.LayersAt(coord)
	if !ok {
		return ExamineCell{}, false
	}
	entity := layers.Character
	if entity == NilEntity {
		entity = layers.Object
	}
	if entity == NilEntity {
		return ExamineCell{}, false
	}
	tile, ok := w.Components.Tile.Get(entity)
	if !ok {
		return ExamineCell{}, false
	}
	switch tile.Kind {
	case TileNpc:
		return ExamineCell{Kind: ExamineNpc, Npc: tile.Npc}, true
	case TileNpcCorpse:
		return ExamineCell{Kind: ExamineNpcCorpse, Npc: tile.Npc}, true
	case TileItem:
		return ExamineCell{Kind: ExamineItem, Item: tile.Item}, true
	case TilePlayer:
		return ExamineCell{Kind: ExaminePlayer}, true
	}
	return ExamineCell{}, false
}

// CoordContainsStairs смотрит на слой пола: лестница - это пол.
func (w *World) CoordContainsStairs(coord Coord) bool {
	floor := w.Spatial.LayersAtChecked(coord).Floor
	return floor != NilEntity && w.Components.Stairs.Contains(floor)
}

// LevelUpCharacter применяет выбранное повышение.
func (w *World) LevelUpCharacter(character Entity, levelUp LevelUp) {
	switch levelUp {
	case LevelUpStrength:
		v, _ := w.Components.Strength.Get(character)
		w.Components.Strength.Insert(character, v+1)
	case LevelUpDexterity:
		v, _ := w.Components.Dexterity.Get(character)
		w.Components.Dexterity.Insert(character, v+1)
	case LevelUpIntelligence:
		v, _ := w.Components.Intelligence.Get(character)
		w.Components.Intelligence.Insert(character, v+1)
	case LevelUpHealth:
		const increase = 5
		hp, _ := w.Components.HitPoints.Get(character)
		hp.Current += increase
		hp.Max += increase
		w.Components.HitPoints.Insert(character, hp)
	}
}

func (w *World) EquippedIndices(e Entity) EquippedInventoryIndices {
	indices := EquippedInventoryIndices{Held: -1, Worn: -1}
	if held, ok := w.Components.EquipHeld.Get(e); ok {
		indices.Held = held
	}
	if worn, ok := w.Components.EquipWorn.Get(e); ok {
		indices.Worn = worn
	}
	return indices
}

// --- ЖИЗНЕННЫЙ ЦИКЛ СУЩНОСТЕЙ ---

// RemoveEntity стирает сущность целиком: компоненты, место, хэндл.
func (w *World) RemoveEntity(e Entity) {
	w.Components.RemoveEntity(e)
	w.Spatial.Remove(e)
	w.Allocator.FreeEntity(e)
}

func (w *World) removeEntityData(e Entity) EntityData {
	w.Allocator.FreeEntity(e)
	w.Spatial.Remove(e)
	return w.Components.RemoveEntityData(e)
}

// RemoveCharacter изымает персонажа вместе с содержимым инвентаря
// для переноса на другой уровень.
func (w *World) RemoveCharacter(e Entity) CharacterData {
	data := w.removeEntityData(e)
	inventory := data.Inventory
	if inventory == nil {
		panic("character missing inventory")
	}
	data.Inventory = nil
	items := make([]*EntityData, len(inventory.Slots))
	for i, slot := range inventory.Slots {
		if slot != NilEntity {
			itemData := w.removeEntityData(slot)
			items[i] = &itemData
		}
	}
	return CharacterData{EntityData: data, InventoryItems: items}
}

// ReplaceCharacter вселяет перенесенного персонажа в новый хэндл.
// Предметы инвентаря получают свежие сущности, слоты сохраняют порядок.
func (w *World) ReplaceCharacter(e Entity, data CharacterData) {
	inventory := NewInventory(len(data.InventoryItems))
	for i, itemData := range data.InventoryItems {
		if itemData == nil {
			continue
		}
		item := w.Allocator.Alloc()
		w.Components.UpdateEntityData(item, *itemData)
		inventory.Slots[i] = item
	}
	data.EntityData.Inventory = inventory
	w.Components.UpdateEntityData(e, data.EntityData)
}
