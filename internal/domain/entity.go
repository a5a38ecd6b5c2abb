package domain

import (
	"fmt"
	"strconv"
)

// Entity - упакованный идентификатор (Generation + Index).
// Сам по себе данных не несет: все данные живут в таблицах компонентов.
type Entity uint64

// Конфигурация битов
const (
	bitsIndex      = 40
	shiftGen       = bitsIndex
	maskIndex      = (1 << bitsIndex) - 1 // 0x000000FFFFFFFFFF
	maskGeneration = (1 << 24) - 1        // 0xFFFFFF
)

// NilEntity - нулевое значение. Валидные сущности имеют Generation >= 1,
// поэтому 0 никогда не выдается аллокатором.
const NilEntity Entity = 0

func packEntity(generation uint32, index uint64) Entity {
	id := index & maskIndex
	id |= (uint64(generation) & maskGeneration) << shiftGen
	return Entity(id)
}

func (e Entity) Index() uint64 {
	return uint64(e) & maskIndex
}

func (e Entity) Generation() uint32 {
	return uint32((uint64(e) >> shiftGen) & maskGeneration)
}

// String для логов: выводим [Gen:Idx]
func (e Entity) String() string {
	return fmt.Sprintf("[%d:%d]", e.Generation(), e.Index())
}

// MarshalText сериализует ID в десятичную строку: JS теряет точность
// для больших int64, а encoding/json использует TextMarshaler и для
// ключей map.
func (e Entity) MarshalText() ([]byte, error) {
	return []byte(strconv.FormatUint(uint64(e), 10)), nil
}

func (e *Entity) UnmarshalText(data []byte) error {
	val, err := strconv.ParseUint(string(data), 10, 64)
	if err != nil {
		return err
	}
	*e = Entity(val)
	return nil
}

// EntityAllocator выдает уникальные ID. Индекс освобожденной сущности
// переиспользуется, но с новым поколением, так что старый ID никогда
// не укажет на новую сущность.
type EntityAllocator struct {
	// Generations[i] - текущее поколение индекса i.
	Generations []uint32 `json:"generations"`
	// Free - индексы, готовые к переиспользованию.
	Free []uint64 `json:"free"`
}

func NewEntityAllocator() *EntityAllocator {
	return &EntityAllocator{}
}

func (a *EntityAllocator) Alloc() Entity {
	if n := len(a.Free); n > 0 {
		index := a.Free[n-1]
		a.Free = a.Free[:n-1]
		return packEntity(a.Generations[index], index)
	}
	index := uint64(len(a.Generations))
	a.Generations = append(a.Generations, 1)
	return packEntity(1, index)
}

// FreeEntity возвращает индекс в пул и инвалидирует все старые копии ID.
func (a *EntityAllocator) FreeEntity(e Entity) {
	index := e.Index()
	if index >= uint64(len(a.Generations)) || a.Generations[index] != e.Generation() {
		return // уже освобожден или чужой ID
	}
	a.Generations[index]++
	a.Free = append(a.Free, index)
}

// IsLive сообщает, выдан ли этот ID и не освобожден ли он.
func (a *EntityAllocator) IsLive(e Entity) bool {
	index := e.Index()
	return index < uint64(len(a.Generations)) && a.Generations[index] == e.Generation()
}

func (a *EntityAllocator) Clear() {
	a.Generations = a.Generations[:0]
	a.Free = a.Free[:0]
}
