package models

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// AuditRecord - неизменяемая запись журнала действий по инциденту.
// Hash защищает запись от незаметного изменения: при расхождении
// пересчитанного хэша с сохраненным запись считается поврежденной.
type AuditRecord struct {
	ID         uuid.UUID `json:"id"`
	IncidentID uuid.UUID `json:"incident_id"`
	Timestamp  time.Time `json:"timestamp"`
	Action     string    `json:"action"`
	Details    string    `json:"details"`
	Operator   string    `json:"operator"`
	Hash       string    `json:"hash"`
}

// ComputeHash считает SHA-256 по всем полям записи, кроме самого хэша
func (a *AuditRecord) ComputeHash() string {
	payload := fmt.Sprintf("%s|%s|%s|%s|%s|%s",
		a.ID, a.IncidentID, a.Timestamp.UTC().Format(time.RFC3339Nano),
		a.Action, a.Details, a.Operator)
	sum := sha256.Sum256([]byte(payload))
	return hex.EncodeToString(sum[:])
}

// Seal устанавливает хэш целостности записи. Timestamp должен быть
// обрезан до точности хранилища (timestamptz, микросекунды), иначе
// Verify на прочитанной записи не сойдется.
func (a *AuditRecord) Seal() {
	a.Hash = a.ComputeHash()
}

// Verify сверяет сохраненный хэш с пересчитанным
func (a *AuditRecord) Verify() bool {
	return a.Hash == a.ComputeHash()
}
