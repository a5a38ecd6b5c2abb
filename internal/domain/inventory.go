package domain

import "errors"

var (
	ErrInventoryFull = errors.New("инвентарь полон")
	ErrSlotEmpty     = errors.New("слот инвентаря пуст")
)

// Inventory - упорядоченный список слотов фиксированной емкости.
// Слот хранит ССЫЛКУ на сущность-предмет: сам предмет продолжает жить
// в таблицах компонентов, но убран из пространственного индекса,
// пока его носят.
type Inventory struct {
	Slots []Entity `json:"slots"`
}

func NewInventory(capacity int) *Inventory {
	return &Inventory{Slots: make([]Entity, capacity)}
}

func (inv *Inventory) Capacity() int {
	return len(inv.Slots)
}

// Insert кладет предмет в первый свободный слот.
// При переполнении инвентарь не меняется.
func (inv *Inventory) Insert(item Entity) error {
	for i, slot := range inv.Slots {
		if slot == NilEntity {
			inv.Slots[i] = item
			return nil
		}
	}
	return ErrInventoryFull
}

// Remove забирает предмет из слота, освобождая его.
func (inv *Inventory) Remove(index int) (Entity, error) {
	if index < 0 || index >= len(inv.Slots) || inv.Slots[index] == NilEntity {
		return NilEntity, ErrSlotEmpty
	}
	item := inv.Slots[index]
	inv.Slots[index] = NilEntity
	return item, nil
}

// Get возвращает предмет в слоте, не забирая его.
func (inv *Inventory) Get(index int) (Entity, error) {
	if index < 0 || index >= len(inv.Slots) || inv.Slots[index] == NilEntity {
		return NilEntity, ErrSlotEmpty
	}
	return inv.Slots[index], nil
}
