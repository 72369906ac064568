package geometry

import "github.com/shenikar/robosoc/internal/models"

// PointInPolygon проверяет методом ray casting, лежит ли точка внутри
// многоугольника. Луч идет из точки в направлении +x; каждое пересечение
// с ребром меняет четность. Горизонтальные ребра пересечений не дают.
// Многоугольник из менее чем 3 вершин не содержит ни одной точки.
// Чистая функция, безопасна для конкурентных вызовов.
func PointInPolygon(p models.Point, polygon models.RestrictedZone) bool {
	n := len(polygon)
	if n < 3 {
		return false
	}

	inside := false
	p1 := polygon[0]
	for i := 1; i <= n; i++ {
		p2 := polygon[i%n]
		// горизонтальное ребро (p1.Y == p2.Y) сюда не попадает:
		// условие min < y <= max для него невыполнимо
		if min(p1.Y, p2.Y) < p.Y && p.Y <= max(p1.Y, p2.Y) && p.X <= max(p1.X, p2.X) {
			// x пересечения луча с ребром
			xinters := float64(p.Y-p1.Y)*float64(p2.X-p1.X)/float64(p2.Y-p1.Y) + float64(p1.X)
			if p1.X == p2.X || float64(p.X) <= xinters {
				inside = !inside
			}
		}
		p1 = p2
	}
	return inside
}
