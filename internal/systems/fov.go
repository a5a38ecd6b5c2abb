package systems

import (
	"rogue-server/internal/domain"
	"rogue-server/pkg/logger"

	"github.com/sirupsen/logrus"
)

// Мультипликаторы для трансформации координат в 8 октантов
var multipliers = [4][8]int{
	{1, 0, 0, -1, -1, 0, 0, 1},
	{0, 1, -1, 0, 0, -1, 1, 0},
	{0, 1, 1, 0, 0, -1, -1, 0},
	{1, 0, 0, 1, -1, 0, 0, -1},
}

// ComputeVisibleCells обходит все клетки, видимые из origin, и вызывает
// mark для каждой. Дальность ограничена VisionDistanceSquared, взгляд
// блокируют клетки с непрозрачным слоем препятствий.
func ComputeVisibleCells(w *domain.World, origin domain.Coord, mark func(domain.Coord)) {
	fovLogger := logger.Log.WithFields(logrus.Fields{
		"component":    "fov_system",
		"observer_pos": origin,
	})
	fovLogger.Debug("Starting FOV calculation.")

	// Центр всегда виден
	mark(origin)

	// Рекурсивный Shadowcasting для 8 октантов
	for i := 0; i < 8; i++ {
		castLight(w, origin.X, origin.Y, 1, 1.0, 0.0,
			multipliers[0][i], multipliers[1][i],
			multipliers[2][i], multipliers[3][i], mark)
	}

	fovLogger.Debug("FOV calculation complete.")
}

func castLight(w *domain.World, cx, cy, row int, start, end float64, xx, xy, yx, yy int, mark func(domain.Coord)) {
	if start < end {
		return
	}

	size := w.Size()

	for j := row; j <= VisionRadius; j++ {
		dx, dy := -j-1, -j
		blocked := false
		newStart := start

		for {
			dx++
			if dx > 0 {
				break
			}
			dy = -j

			// Расчет наклонов (Slopes)
			lSlope := (float64(dx) - 0.5) / (float64(dy) + 0.5)
			rSlope := (float64(dx) + 0.5) / (float64(dy) - 0.5)

			if start < rSlope {
				continue
			}
			if end > lSlope {
				break
			}

			// Трансформация координат в глобальные
			coord := domain.Coord{X: cx + dx*xx + dy*xy, Y: cy + dx*yx + dy*yy}

			// Проверка границ и радиуса
			if coord.IsValid(size) {
				if dx*dx+dy*dy <= VisionDistanceSquared {
					mark(coord)
				}
			}

			// Логика теней
			if blocked {
				// Мы идем вдоль стены...
				if isOpaque(w, coord) {
					newStart = rSlope
					continue
				} else {
					// Стена кончилась, началась пустота
					blocked = false
					start = newStart
				}
			} else {
				// Мы шли по пустоте и наткнулись на стену
				if isOpaque(w, coord) && j < VisionRadius {
					blocked = true
					// Рекурсивно запускаем сканирование следующего ряда
					castLight(w, cx, cy, j+1, start, lSlope, xx, xy, yx, yy, mark)
					newStart = rSlope
				}
			}
		}
		if blocked {
			break
		}
	}
}

// isOpaque проверяет, блокирует ли клетка взгляд.
// Выход за границы считается блокирующим.
func isOpaque(w *domain.World, coord domain.Coord) bool {
	if !coord.IsValid(w.Size()) {
		return true
	}
	return w.OpacityAt(coord) == 255
}
