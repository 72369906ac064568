package detection

import (
	"github.com/shenikar/robosoc/internal/geometry"
	"github.com/shenikar/robosoc/internal/models"
)

// RawDetection - сырой результат детектора для одного объекта на кадре
type RawDetection struct {
	Box        [4]int  `json:"box" validate:"required"` // x1, y1, x2, y2
	Confidence float64 `json:"confidence" validate:"gte=0,lte=1"`
	ClassID    int     `json:"class_id"`
}

// Analyzer фильтрует сырые детекции и проверяет нарушения запретных зон
type Analyzer struct {
	zones       []models.RestrictedZone
	threshold   float64
	personClass int
}

// NewAnalyzer создает анализатор детекций.
// threshold - минимальная уверенность (включительно), personClass - id
// класса "человек" в модели детектора.
func NewAnalyzer(zones []models.RestrictedZone, threshold float64, personClass int) *Analyzer {
	return &Analyzer{
		zones:       zones,
		threshold:   threshold,
		personClass: personClass,
	}
}

// Analyze оставляет только людей с достаточной уверенностью и помечает
// тех, чей центр попадает хотя бы в одну запретную зону
func (a *Analyzer) Analyze(raw []RawDetection) []models.Detection {
	detections := make([]models.Detection, 0, len(raw))
	for _, r := range raw {
		if r.ClassID != a.personClass || r.Confidence < a.threshold {
			continue
		}

		det := models.Detection{
			BBox:       r.Box,
			Confidence: r.Confidence,
		}

		center := det.Center()
		for _, zone := range a.zones {
			if geometry.PointInPolygon(center, zone) {
				det.RestrictedViolation = true
				break
			}
		}

		detections = append(detections, det)
	}
	return detections
}

// Violations возвращает число детекций с нарушением зоны
func Violations(detections []models.Detection) int {
	count := 0
	for _, d := range detections {
		if d.RestrictedViolation {
			count++
		}
	}
	return count
}
