package dispatch

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shenikar/robosoc/internal/models"
)

// Типы юнитов, доступные для диспетчеризации
const (
	UnitDrone = "drone"
	UnitRobot = "robot"
	UnitGuard = "guard"
)

// Location - координаты точки назначения юнита
type Location struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Payload - сообщение диспетчеризации, публикуемое в брокер.
// Поля Altitude/Speed/ContactChannel зависят от типа юнита.
type Payload struct {
	ID             uuid.UUID       `json:"id"`
	Timestamp      time.Time       `json:"timestamp"`
	UnitType       string          `json:"unit_type"`
	Location       Location        `json:"location"`
	Severity       models.Severity `json:"severity"`
	Action         string          `json:"action"`
	Altitude       int             `json:"altitude,omitempty"`
	Speed          float64         `json:"speed,omitempty"`
	ContactChannel string          `json:"contact_channel,omitempty"`
}

// BuildPayload собирает сообщение диспетчеризации для юнита.
// Неизвестный тип юнита - ошибка: брокер не должен получать мусор.
func BuildPayload(unitType string, loc Location, severity models.Severity, contactChannel string) (Payload, error) {
	p := Payload{
		ID:        uuid.New(),
		Timestamp: time.Now().UTC(),
		UnitType:  unitType,
		Location:  loc,
		Severity:  severity,
	}

	switch unitType {
	case UnitDrone:
		p.Action = "aerial_survey"
		p.Altitude = 50 // метров
	case UnitRobot:
		p.Action = "ground_patrol"
		p.Speed = 1.5 // м/с
	case UnitGuard:
		p.Action = "human_dispatch"
		p.ContactChannel = contactChannel
	default:
		return Payload{}, fmt.Errorf("unsupported unit_type %q", unitType)
	}

	return p, nil
}
