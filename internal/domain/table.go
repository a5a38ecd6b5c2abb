package domain

import "sort"

// ComponentTable - разреженная таблица компонента: Entity -> значение.
// Каждый компонент хранится в своей таблице, независимо от остальных.
type ComponentTable[T any] map[Entity]T

func NewComponentTable[T any]() ComponentTable[T] {
	return make(ComponentTable[T])
}

func (t ComponentTable[T]) Insert(e Entity, value T) {
	t[e] = value
}

func (t ComponentTable[T]) Get(e Entity) (T, bool) {
	v, ok := t[e]
	return v, ok
}

func (t ComponentTable[T]) Contains(e Entity) bool {
	_, ok := t[e]
	return ok
}

func (t ComponentTable[T]) Remove(e Entity) {
	delete(t, e)
}

func (t ComponentTable[T]) Len() int {
	return len(t)
}

// Entities возвращает ключи в возрастающем порядке.
// Порядок map в Go случаен, а нам нужен детерминизм: обход сущностей
// влияет на поток случайных чисел и, значит, на воспроизводимость игры.
func (t ComponentTable[T]) Entities() []Entity {
	keys := make([]Entity, 0, len(t))
	for e := range t {
		keys = append(keys, e)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

// ForEach обходит таблицу в возрастающем порядке сущностей.
func (t ComponentTable[T]) ForEach(fn func(Entity, T)) {
	for _, e := range t.Entities() {
		fn(e, t[e])
	}
}
