package models

import (
	"time"

	"github.com/google/uuid"
)

// ShiftHandover - запись о передаче смены между операторами
type ShiftHandover struct {
	ID        uuid.UUID `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Operator  string    `json:"operator"`
	Notes     string    `json:"notes"`
}
