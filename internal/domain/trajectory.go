package domain

// Trajectory - оставшаяся последовательность шагов снаряда.
// Прямая линия аппроксимируется кардинальными шагами по Брезенхэму:
// диагональ раскладывается на два отдельных шага.
type Trajectory struct {
	Steps []CardinalDirection `json:"steps"`
}

// NewTrajectory строит последовательность шагов от (0,0) до delta.
func NewTrajectory(delta Coord) *Trajectory {
	var steps []CardinalDirection

	dx, dy := delta.X, delta.Y
	adx, ady := dx, dy
	if adx < 0 {
		adx = -adx
	}
	if ady < 0 {
		ady = -ady
	}

	stepX, stepY := East, South
	if dx < 0 {
		stepX = West
	}
	if dy < 0 {
		stepY = North
	}

	x, y := 0, 0
	err := adx - ady
	for x != dx || y != dy {
		e2 := err * 2
		// Кардинальная сетка: за итерацию двигаемся ровно по одной оси.
		if (e2 > -ady && x != dx) || y == dy {
			err -= ady
			x += stepX.Coord().X
			steps = append(steps, stepX)
		} else {
			err += adx
			y += stepY.Coord().Y
			steps = append(steps, stepY)
		}
	}

	return &Trajectory{Steps: steps}
}

// Next снимает следующий шаг. ok == false, когда шагов не осталось.
func (t *Trajectory) Next() (CardinalDirection, bool) {
	if len(t.Steps) == 0 {
		return North, false
	}
	step := t.Steps[0]
	t.Steps = t.Steps[1:]
	return step, true
}

func (t *Trajectory) Remaining() int {
	return len(t.Steps)
}
