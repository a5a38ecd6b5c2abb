package engine

import (
	"fmt"

	"rogue-server/internal/domain"
	"rogue-server/internal/systems"
	"rogue-server/pkg/api"
)

// tileGlyph - символ и цвет тайла для клиента.
func tileGlyph(tile domain.Tile) (symbol, color string) {
	switch tile.Kind {
	case domain.TilePlayer:
		return "@", "text-cyan-400"
	case domain.TilePlayerCorpse:
		return "%", "text-red-700"
	case domain.TileFloor:
		return ".", "text-gray-500"
	case domain.TileWall:
		return "#", "text-stone-400"
	case domain.TileStairs:
		return ">", "text-yellow-300"
	case domain.TileNpc:
		switch tile.Npc {
		case domain.NpcOrc:
			return "o", "text-green-500"
		case domain.NpcTroll:
			return "T", "text-lime-600"
		}
	case domain.TileNpcCorpse:
		return "%", "text-gray-600"
	case domain.TileItem:
		return itemGlyph(tile.Item)
	case domain.TileProjectile:
		return "*", "text-orange-400"
	}
	return "?", "text-white"
}

func itemGlyph(item domain.ItemType) (symbol, color string) {
	switch item {
	case domain.ItemHealthPotion:
		return "!", "text-pink-400"
	case domain.ItemFireballScroll:
		return "?", "text-orange-400"
	case domain.ItemConfusionScroll:
		return "?", "text-fuchsia-400"
	case domain.ItemSword, domain.ItemStaff:
		return ")", "text-slate-300"
	case domain.ItemArmour, domain.ItemRobe:
		return "[", "text-amber-600"
	}
	return "?", "text-white"
}

// topTile выбирает самый "важный" тайл клетки для отрисовки.
// Живые персонажи поверх снарядов поверх предметов поверх пола.
func (g *GameState) topTile(layers domain.Layers, visible bool) (domain.Tile, bool) {
	order := []domain.Entity{layers.Character, layers.Projectile, layers.Object, layers.Feature, layers.Floor}
	if !visible {
		// По памяти рисуем только статичную геометрию: стены, пол,
		// лестницу. Существа и предметы могли уйти.
		order = []domain.Entity{layers.Feature, layers.Floor}
	}
	for _, e := range order {
		if e == domain.NilEntity {
			continue
		}
		if tile, ok := g.World.Components.Tile.Get(e); ok {
			return tile, true
		}
	}
	return domain.Tile{}, false
}

// BuildMap собирает список исследованных тайлов для клиента.
func (g *GameState) BuildMap() []api.TileView {
	size := g.World.Size()
	views := make([]api.TileView, 0, size.Count())
	for y := 0; y < size.Height; y++ {
		for x := 0; x < size.Width; x++ {
			coord := domain.Coord{X: x, Y: y}
			visibility := g.Visibility.CellVisibility(coord)
			if visibility == systems.VisibilityNever {
				continue
			}
			visible := visibility == systems.VisibilityCurrently
			layers := g.World.Spatial.LayersAtChecked(coord)
			tile, ok := g.topTile(layers, visible)
			if !ok {
				continue
			}
			symbol, color := tileGlyph(tile)
			views = append(views, api.TileView{
				X:          x,
				Y:          y,
				Symbol:     symbol,
				Color:      color,
				IsWall:     layers.Feature != domain.NilEntity,
				IsVisible:  visible,
				IsExplored: true,
			})
		}
	}
	return views
}

// BuildPlayer собирает DTO игрока вместе с инвентарем.
func (g *GameState) BuildPlayer() *api.PlayerView {
	coord := g.PlayerCoord()
	hp := g.PlayerHitPoints()
	strength, _ := g.World.StrengthOf(g.Player)
	dexterity, _ := g.World.DexterityOf(g.Player)
	intelligence, _ := g.World.IntelligenceOf(g.Player)

	view := &api.PlayerView{
		X:            coord.X,
		Y:            coord.Y,
		HP:           hp.Current,
		MaxHP:        hp.Max,
		Strength:     strength,
		Dexterity:    dexterity,
		Intelligence: intelligence,
		IsDead:       !g.IsPlayerAlive(),
	}

	inventory := g.PlayerInventory()
	if inventory == nil {
		return view
	}
	equipped := g.World.EquippedIndices(g.Player)
	for i, slot := range inventory.Slots {
		slotView := api.InventorySlotView{Slot: i}
		if slot == domain.NilEntity {
			slotView.Empty = true
		} else {
			itemType, _ := g.World.ItemTypeOf(slot)
			symbol, color := itemGlyph(itemType)
			slotView.Name = itemType.Name()
			slotView.Symbol = symbol
			slotView.Color = color
			slotView.Equipped = i == equipped.Held || i == equipped.Worn
		}
		view.Inventory = append(view.Inventory, slotView)
	}
	return view
}

// BuildExamine описывает клетку для режима осмотра.
func (g *GameState) BuildExamine(coord domain.Coord) *api.ExamineView {
	cell, ok := g.ExamineCell(coord)
	if !ok {
		return nil
	}
	var name string
	switch cell.Kind {
	case domain.ExamineNpc:
		name = cell.Npc.Name()
	case domain.ExamineNpcCorpse:
		name = fmt.Sprintf("труп (%s)", cell.Npc.Name())
	case domain.ExamineItem:
		name = cell.Item.Name()
	case domain.ExaminePlayer:
		name = "вы"
	}
	return &api.ExamineView{X: coord.X, Y: coord.Y, Name: name}
}

// messageType грубо классифицирует сообщение для подсветки на клиенте.
func messageType(m domain.LogMessage) string {
	switch m.Kind {
	case domain.MsgPlayerAttacksNpc, domain.MsgNpcAttacksPlayer,
		domain.MsgPlayerKillsNpc, domain.MsgNpcKillsPlayer,
		domain.MsgPlayerDodges, domain.MsgNpcDodges, domain.MsgNpcDies:
		return "COMBAT"
	case domain.MsgPlayerGets, domain.MsgPlayerDrops, domain.MsgPlayerHeals,
		domain.MsgPlayerLaunchesProjectile:
		return "ITEM"
	case domain.MsgPlayerInventoryIsFull, domain.MsgNoItemUnderPlayer,
		domain.MsgNoItemInInventorySlot, domain.MsgNoSpaceToDropItem:
		return "ERROR"
	}
	return "INFO"
}

// BuildLogs переводит сообщения журнала в DTO.
func BuildLogs(messages []domain.LogMessage) []api.LogEntry {
	entries := make([]api.LogEntry, 0, len(messages))
	for _, m := range messages {
		entries = append(entries, api.LogEntry{Text: m.Text(), Type: messageType(m)})
	}
	return entries
}
