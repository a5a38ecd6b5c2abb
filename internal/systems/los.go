package systems

import (
	"rogue-server/internal/domain"
	"rogue-server/pkg/logger"

	"github.com/sirupsen/logrus"
)

// HasLineOfSight проверяет прямую видимость между двумя точками.
// Использует оптимизированный алгоритм Брезенхэма (только целочисленная
// арифметика). Стартовая и конечная клетки препятствием не считаются:
// стоящий в дверном проеме виден, сама стена видна вплотную.
func HasLineOfSight(w *domain.World, from, to domain.Coord) bool {
	if from == to {
		return true
	}

	x0, y0 := from.X, from.Y
	x1, y1 := to.X, to.Y

	dx := x1 - x0
	if dx < 0 {
		dx = -dx
	}
	dy := y1 - y0
	if dy < 0 {
		dy = -dy
	}

	sx := sign(x1 - x0)
	sy := sign(y1 - y0)

	err := dx - dy

	for {
		isStartPoint := x0 == from.X && y0 == from.Y
		isEndPoint := x0 == to.X && y0 == to.Y

		if !isStartPoint && !isEndPoint {
			coord := domain.Coord{X: x0, Y: y0}
			if !w.CanNpcSeeThroughCell(coord) {
				logger.Log.WithFields(logrus.Fields{
					"component":      "los_system",
					"blocking_point": coord,
				}).Debug("Line of sight is blocked.")
				return false
			}
		}

		if x0 == x1 && y0 == y1 {
			break
		}

		e2 := err * 2
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}

	return true
}

func sign(x int) int {
	if x > 0 {
		return 1
	}
	if x < 0 {
		return -1
	}
	return 0
}
