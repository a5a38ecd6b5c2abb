package domain

// Coord - координата клетки на сетке. Ось Y растет вниз.
type Coord struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func (c Coord) Add(other Coord) Coord {
	return Coord{X: c.X + other.X, Y: c.Y + other.Y}
}

func (c Coord) Sub(other Coord) Coord {
	return Coord{X: c.X - other.X, Y: c.Y - other.Y}
}

// IsValid проверяет, что координата лежит внутри сетки заданного размера.
func (c Coord) IsValid(size Size) bool {
	return c.X >= 0 && c.Y >= 0 && c.X < size.Width && c.Y < size.Height
}

// DistanceSquared - квадрат евклидова расстояния (без float и без sqrt).
func (c Coord) DistanceSquared(other Coord) int {
	dx := c.X - other.X
	dy := c.Y - other.Y
	return dx*dx + dy*dy
}

// Size - размер прямоугольной сетки.
type Size struct {
	Width  int `json:"w"`
	Height int `json:"h"`
}

// Count возвращает общее число клеток.
func (s Size) Count() int {
	return s.Width * s.Height
}

// Index: плоский индекс клетки. Ключ: Y * Width + X.
func (s Size) Index(c Coord) int {
	return c.Y*s.Width + c.X
}

// CardinalDirection - одно из четырех направлений движения.
// Диагональных ходов в игре нет.
type CardinalDirection uint8

const (
	North CardinalDirection = iota
	East
	South
	West
)

var cardinalCoords = [4]Coord{
	North: {X: 0, Y: -1},
	East:  {X: 1, Y: 0},
	South: {X: 0, Y: 1},
	West:  {X: -1, Y: 0},
}

// Coord возвращает смещение на один шаг в данном направлении.
func (d CardinalDirection) Coord() Coord {
	return cardinalCoords[d]
}

func (d CardinalDirection) String() string {
	switch d {
	case North:
		return "NORTH"
	case East:
		return "EAST"
	case South:
		return "SOUTH"
	case West:
		return "WEST"
	}
	return "UNKNOWN"
}

// CardinalDirections перечисляет направления в фиксированном порядке.
// Порядок важен для детерминизма обходов.
var CardinalDirections = [4]CardinalDirection{North, East, South, West}
