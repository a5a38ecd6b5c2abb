package domain

// TerrainKind - вид клетки сгенерированного ландшафта.
type TerrainKind uint8

const (
	TerrainPlayer TerrainKind = iota
	TerrainFloor
	TerrainWall
	TerrainNpc
	TerrainItem
	TerrainStairs
)

// TerrainTile - одна клетка плана уровня до заселения мира.
// Генератор выдает план, мир превращает его в сущности.
type TerrainTile struct {
	Kind TerrainKind `json:"kind"`
	Npc  NpcType     `json:"npc,omitempty"`
	Item ItemType    `json:"item,omitempty"`
}
