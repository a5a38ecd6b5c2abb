package domain

// NpcType - вид монстра.
type NpcType uint8

const (
	NpcOrc NpcType = iota
	NpcTroll
)

func (n NpcType) Name() string {
	switch n {
	case NpcOrc:
		return "орк"
	case NpcTroll:
		return "тролль"
	}
	return "неизвестное существо"
}

// ItemType - вид предмета.
type ItemType uint8

const (
	ItemHealthPotion ItemType = iota
	ItemFireballScroll
	ItemConfusionScroll
	ItemSword
	ItemStaff
	ItemArmour
	ItemRobe
)

func (i ItemType) Name() string {
	switch i {
	case ItemHealthPotion:
		return "зелье лечения"
	case ItemFireballScroll:
		return "свиток огненного шара"
	case ItemConfusionScroll:
		return "свиток смятения"
	case ItemSword:
		return "меч"
	case ItemStaff:
		return "посох"
	case ItemArmour:
		return "доспех"
	case ItemRobe:
		return "роба"
	}
	return "неизвестный предмет"
}

// ProjectileKind - вид снаряда.
type ProjectileKind uint8

const (
	ProjectileFireball ProjectileKind = iota
	ProjectileConfusion
)

// ProjectileType несет полезную нагрузку снаряда: урон для огненного
// шара, длительность для смятения.
type ProjectileType struct {
	Kind     ProjectileKind `json:"kind"`
	Damage   int            `json:"damage,omitempty"`
	Duration int            `json:"duration,omitempty"`
}

func (p ProjectileType) Name() string {
	switch p.Kind {
	case ProjectileFireball:
		return "огненный шар"
	case ProjectileConfusion:
		return "заклинание смятения"
	}
	return "неизвестный снаряд"
}

// TileKind - вид тайла для рендеринга и идентификации.
type TileKind uint8

const (
	TilePlayer TileKind = iota
	TilePlayerCorpse
	TileFloor
	TileWall
	TileNpc
	TileNpcCorpse
	TileItem
	TileProjectile
	TileStairs
)

// Tile - рендер-метка сущности. Kind определяет, какое из
// опциональных полей имеет смысл.
type Tile struct {
	Kind       TileKind       `json:"kind"`
	Npc        NpcType        `json:"npc,omitempty"`
	Item       ItemType       `json:"item,omitempty"`
	Projectile ProjectileKind `json:"projectile,omitempty"`
}

func NewNpcTile(npc NpcType) Tile {
	return Tile{Kind: TileNpc, Npc: npc}
}

func NewNpcCorpseTile(npc NpcType) Tile {
	return Tile{Kind: TileNpcCorpse, Npc: npc}
}

func NewItemTile(item ItemType) Tile {
	return Tile{Kind: TileItem, Item: item}
}

func NewProjectileTile(kind ProjectileKind) Tile {
	return Tile{Kind: TileProjectile, Projectile: kind}
}
