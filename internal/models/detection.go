package models

// Point - точка в пиксельных координатах кадра
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// RestrictedZone - запретная зона: простой многоугольник из >=3 вершин.
// Конфигурационные данные, только для чтения во время работы.
type RestrictedZone []Point

// Detection - результат обнаружения человека на одном кадре.
// Не сохраняется в бд, живет только в рамках обработки кадра.
type Detection struct {
	BBox                [4]int  `json:"bbox"` // x1, y1, x2, y2
	Confidence          float64 `json:"confidence"`
	RestrictedViolation bool    `json:"restricted_violation"`
}

// Center возвращает центр bounding box (целочисленное деление)
func (d Detection) Center() Point {
	return Point{
		X: (d.BBox[0] + d.BBox[2]) / 2,
		Y: (d.BBox[1] + d.BBox[3]) / 2,
	}
}
