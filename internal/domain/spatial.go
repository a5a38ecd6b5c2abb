package domain

import (
	"encoding/json"
	"fmt"
)

// Layer - слой занятости клетки. Клетка может держать по одной
// сущности на каждом слое.
type Layer uint8

const (
	LayerFloor Layer = iota
	LayerFeature
	LayerObject
	LayerCharacter
	LayerProjectile
)

func (l Layer) String() string {
	switch l {
	case LayerFloor:
		return "FLOOR"
	case LayerFeature:
		return "FEATURE"
	case LayerObject:
		return "OBJECT"
	case LayerCharacter:
		return "CHARACTER"
	case LayerProjectile:
		return "PROJECTILE"
	}
	return "UNKNOWN"
}

// Location - текущее размещение сущности в пространственном индексе.
type Location struct {
	Coord Coord `json:"coord"`
	Layer Layer `json:"layer"`
}

// Layers - содержимое одной клетки, по слоту на слой.
// NilEntity означает пустой слот.
type Layers struct {
	Floor      Entity
	Feature    Entity
	Object     Entity
	Character  Entity
	Projectile Entity
}

func (l *Layers) slot(layer Layer) *Entity {
	switch layer {
	case LayerFloor:
		return &l.Floor
	case LayerFeature:
		return &l.Feature
	case LayerObject:
		return &l.Object
	case LayerCharacter:
		return &l.Character
	case LayerProjectile:
		return &l.Projectile
	}
	panic(fmt.Sprintf("unknown layer %d", layer))
}

// OccupiedError возвращается, когда целевой слот уже занят.
// Индекс сообщает ЧЕМ занят: политика разрешения конфликта - забота
// вызывающего кода, а не индекса.
type OccupiedError struct {
	Occupant Entity
}

func (e *OccupiedError) Error() string {
	return fmt.Sprintf("слот занят сущностью %s", e.Occupant)
}

// SpatialTable - пространственный индекс: координата -> не более одной
// сущности на слой. Инварианты:
//   - сущность занимает не более одной пары (координата, слой);
//   - слот слоя держит не более одной сущности.
//
// Индекс гарантирует ТОЛЬКО занятость; правила вида "персонаж не
// ходит сквозь стену" живут у вызывающего.
type SpatialTable struct {
	GridSize  Size
	cells     []Layers
	locations map[Entity]Location
}

func NewSpatialTable(size Size) *SpatialTable {
	return &SpatialTable{
		GridSize:  size,
		cells:     make([]Layers, size.Count()),
		locations: make(map[Entity]Location),
	}
}

// LayersAt возвращает содержимое клетки. ok == false за границами.
func (s *SpatialTable) LayersAt(coord Coord) (Layers, bool) {
	if !coord.IsValid(s.GridSize) {
		return Layers{}, false
	}
	return s.cells[s.GridSize.Index(coord)], true
}

// LayersAtChecked - вариант для координат, валидность которых
// гарантирует вызывающий. Выход за границы - нарушение инварианта.
func (s *SpatialTable) LayersAtChecked(coord Coord) Layers {
	if !coord.IsValid(s.GridSize) {
		panic(fmt.Sprintf("coord %+v out of bounds %+v", coord, s.GridSize))
	}
	return s.cells[s.GridSize.Index(coord)]
}

func (s *SpatialTable) LocationOf(e Entity) (Location, bool) {
	loc, ok := s.locations[e]
	return loc, ok
}

func (s *SpatialTable) CoordOf(e Entity) (Coord, bool) {
	loc, ok := s.locations[e]
	return loc.Coord, ok
}

func (s *SpatialTable) LayerOf(e Entity) (Layer, bool) {
	loc, ok := s.locations[e]
	return loc.Layer, ok
}

// Update размещает сущность в (coord, layer), снимая ее со старого
// места. При занятом слоте возвращает *OccupiedError, ничего не меняя.
func (s *SpatialTable) Update(e Entity, loc Location) error {
	occupant := *s.cellSlot(loc.Coord, loc.Layer)
	if occupant != NilEntity && occupant != e {
		return &OccupiedError{Occupant: occupant}
	}
	s.Remove(e)
	*s.cellSlot(loc.Coord, loc.Layer) = e
	s.locations[e] = loc
	return nil
}

// UpdateCoord двигает сущность на новую координату, сохраняя слой.
func (s *SpatialTable) UpdateCoord(e Entity, coord Coord) error {
	loc, ok := s.locations[e]
	if !ok {
		panic(fmt.Sprintf("entity %s has no location", e))
	}
	return s.Update(e, Location{Coord: coord, Layer: loc.Layer})
}

// UpdateLayer переносит сущность на другой слой той же клетки.
func (s *SpatialTable) UpdateLayer(e Entity, layer Layer) error {
	loc, ok := s.locations[e]
	if !ok {
		panic(fmt.Sprintf("entity %s has no location", e))
	}
	return s.Update(e, Location{Coord: loc.Coord, Layer: layer})
}

// Remove снимает сущность с индекса. Сущность без размещения - не ошибка:
// предметы в инвентаре пространственно отсутствуют.
func (s *SpatialTable) Remove(e Entity) {
	loc, ok := s.locations[e]
	if !ok {
		return
	}
	*s.cellSlot(loc.Coord, loc.Layer) = NilEntity
	delete(s.locations, e)
}

func (s *SpatialTable) Clear() {
	for i := range s.cells {
		s.cells[i] = Layers{}
	}
	s.locations = make(map[Entity]Location)
}

func (s *SpatialTable) cellSlot(coord Coord, layer Layer) *Entity {
	return s.cells[s.GridSize.Index(coord)].slot(layer)
}

// --- СЕРИАЛИЗАЦИЯ ---
// Сетку слотов не пишем: она однозначно восстанавливается из locations.

type spatialTableJSON struct {
	Size      Size                `json:"size"`
	Locations map[Entity]Location `json:"locations"`
}

func (s *SpatialTable) MarshalJSON() ([]byte, error) {
	return json.Marshal(spatialTableJSON{Size: s.GridSize, Locations: s.locations})
}

func (s *SpatialTable) UnmarshalJSON(data []byte) error {
	var raw spatialTableJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*s = *NewSpatialTable(raw.Size)
	for e, loc := range raw.Locations {
		if err := s.Update(e, loc); err != nil {
			return fmt.Errorf("поврежденный пространственный индекс: %w", err)
		}
	}
	return nil
}
