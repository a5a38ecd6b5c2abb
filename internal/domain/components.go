package domain

// HitPoints - текущее и максимальное здоровье.
type HitPoints struct {
	Current int `json:"current"`
	Max     int `json:"max"`
}

func NewHitPoints(max int) HitPoints {
	return HitPoints{Current: max, Max: max}
}

// Components - реестр всех таблиц компонентов мира.
// Добавление компонента = добавление поля; сущности не знают о своем
// составе, состав определяется членством в таблицах.
type Components struct {
	Tile               ComponentTable[Tile]            `json:"tile"`
	Npc                ComponentTable[NpcType]         `json:"npc"`
	HitPoints          ComponentTable[HitPoints]       `json:"hit_points"`
	Item               ComponentTable[ItemType]        `json:"item"`
	Inventory          ComponentTable[*Inventory]      `json:"inventory"`
	Trajectory         ComponentTable[*Trajectory]     `json:"trajectory"`
	Projectile         ComponentTable[ProjectileType]  `json:"projectile"`
	ConfusionCountdown ComponentTable[int]             `json:"confusion_countdown"`
	Stairs             ComponentTable[struct{}]        `json:"stairs"`
	BaseDamage         ComponentTable[int]             `json:"base_damage"`
	Strength           ComponentTable[int]             `json:"strength"`
	Dexterity          ComponentTable[int]             `json:"dexterity"`
	Intelligence       ComponentTable[int]             `json:"intelligence"`
	EquipHeld          ComponentTable[int]             `json:"equip_held"`
	EquipWorn          ComponentTable[int]             `json:"equip_worn"`
}

func NewComponents() *Components {
	return &Components{
		Tile:               NewComponentTable[Tile](),
		Npc:                NewComponentTable[NpcType](),
		HitPoints:          NewComponentTable[HitPoints](),
		Item:               NewComponentTable[ItemType](),
		Inventory:          NewComponentTable[*Inventory](),
		Trajectory:         NewComponentTable[*Trajectory](),
		Projectile:         NewComponentTable[ProjectileType](),
		ConfusionCountdown: NewComponentTable[int](),
		Stairs:             NewComponentTable[struct{}](),
		BaseDamage:         NewComponentTable[int](),
		Strength:           NewComponentTable[int](),
		Dexterity:          NewComponentTable[int](),
		Intelligence:       NewComponentTable[int](),
		EquipHeld:          NewComponentTable[int](),
		EquipWorn:          NewComponentTable[int](),
	}
}

// RemoveEntity вычеркивает сущность из всех таблиц.
func (c *Components) RemoveEntity(e Entity) {
	c.Tile.Remove(e)
	c.Npc.Remove(e)
	c.HitPoints.Remove(e)
	c.Item.Remove(e)
	c.Inventory.Remove(e)
	c.Trajectory.Remove(e)
	c.Projectile.Remove(e)
	c.ConfusionCountdown.Remove(e)
	c.Stairs.Remove(e)
	c.BaseDamage.Remove(e)
	c.Strength.Remove(e)
	c.Dexterity.Remove(e)
	c.Intelligence.Remove(e)
	c.EquipHeld.Remove(e)
	c.EquipWorn.Remove(e)
}

func (c *Components) Clear() {
	*c = *NewComponents()
}

// EntityData - слепок компонентов одной сущности вне мира.
// Используется при переносе персонажа между уровнями: хэндлы после
// очистки мира недействительны, а данные живут.
type EntityData struct {
	Tile               *Tile           `json:"tile,omitempty"`
	Npc                *NpcType        `json:"npc,omitempty"`
	HitPoints          *HitPoints      `json:"hit_points,omitempty"`
	Item               *ItemType       `json:"item,omitempty"`
	Inventory          *Inventory      `json:"inventory,omitempty"`
	Trajectory         *Trajectory     `json:"trajectory,omitempty"`
	Projectile         *ProjectileType `json:"projectile,omitempty"`
	ConfusionCountdown *int            `json:"confusion_countdown,omitempty"`
	Stairs             bool            `json:"stairs,omitempty"`
	BaseDamage         *int            `json:"base_damage,omitempty"`
	Strength           *int            `json:"strength,omitempty"`
	Dexterity          *int            `json:"dexterity,omitempty"`
	Intelligence       *int            `json:"intelligence,omitempty"`
	EquipHeld          *int            `json:"equip_held,omitempty"`
	EquipWorn          *int            `json:"equip_worn,omitempty"`
}

func snapshot[T any](t ComponentTable[T], e Entity) *T {
	if v, ok := t.Get(e); ok {
		t.Remove(e)
		return &v
	}
	return nil
}

// RemoveEntityData снимает слепок компонентов сущности и вычеркивает
// ее из таблиц.
func (c *Components) RemoveEntityData(e Entity) EntityData {
	data := EntityData{
		Tile:               snapshot(c.Tile, e),
		Npc:                snapshot(c.Npc, e),
		HitPoints:          snapshot(c.HitPoints, e),
		Item:               snapshot(c.Item, e),
		ConfusionCountdown: snapshot(c.ConfusionCountdown, e),
		BaseDamage:         snapshot(c.BaseDamage, e),
		Strength:           snapshot(c.Strength, e),
		Dexterity:          snapshot(c.Dexterity, e),
		Intelligence:       snapshot(c.Intelligence, e),
		EquipHeld:          snapshot(c.EquipHeld, e),
		EquipWorn:          snapshot(c.EquipWorn, e),
	}
	if inv, ok := c.Inventory.Get(e); ok {
		c.Inventory.Remove(e)
		data.Inventory = inv
	}
	if traj, ok := c.Trajectory.Get(e); ok {
		c.Trajectory.Remove(e)
		data.Trajectory = traj
	}
	if proj, ok := c.Projectile.Get(e); ok {
		c.Projectile.Remove(e)
		data.Projectile = &proj
	}
	if c.Stairs.Contains(e) {
		c.Stairs.Remove(e)
		data.Stairs = true
	}
	return data
}

// UpdateEntityData раскладывает слепок по таблицам для нового хэндла.
func (c *Components) UpdateEntityData(e Entity, data EntityData) {
	if data.Tile != nil {
		c.Tile.Insert(e, *data.Tile)
	}
	if data.Npc != nil {
		c.Npc.Insert(e, *data.Npc)
	}
	if data.HitPoints != nil {
		c.HitPoints.Insert(e, *data.HitPoints)
	}
	if data.Item != nil {
		c.Item.Insert(e, *data.Item)
	}
	if data.Inventory != nil {
		c.Inventory.Insert(e, data.Inventory)
	}
	if data.Trajectory != nil {
		c.Trajectory.Insert(e, data.Trajectory)
	}
	if data.Projectile != nil {
		c.Projectile.Insert(e, *data.Projectile)
	}
	if data.ConfusionCountdown != nil {
		c.ConfusionCountdown.Insert(e, *data.ConfusionCountdown)
	}
	if data.Stairs {
		c.Stairs.Insert(e, struct{}{})
	}
	if data.BaseDamage != nil {
		c.BaseDamage.Insert(e, *data.BaseDamage)
	}
	if data.Strength != nil {
		c.Strength.Insert(e, *data.Strength)
	}
	if data.Dexterity != nil {
		c.Dexterity.Insert(e, *data.Dexterity)
	}
	if data.Intelligence != nil {
		c.Intelligence.Insert(e, *data.Intelligence)
	}
	if data.EquipHeld != nil {
		c.EquipHeld.Insert(e, *data.EquipHeld)
	}
	if data.EquipWorn != nil {
		c.EquipWorn.Insert(e, *data.EquipWorn)
	}
}
