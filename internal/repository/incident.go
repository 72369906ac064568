package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/shenikar/robosoc/internal/models"
	"github.com/shenikar/robosoc/internal/service"
)

const recentCacheKey = "incidents:recent"

type IncidentRepository struct {
	db          *pgxpool.Pool
	redisClient *redis.Client
	cacheTTL    time.Duration
}

func NewIncidentRepository(db *pgxpool.Pool, redisClient *redis.Client, cacheTTL time.Duration) service.IncidentRepository {
	return &IncidentRepository{
		db:          db,
		redisClient: redisClient,
		cacheTTL:    cacheTTL,
	}
}

// InsertIncident атомарно сохраняет инцидент вместе с первой записью аудита.
// Транзакция откатывается целиком при любой ошибке: частично записанный
// инцидент не виден последующим чтениям.
func (r *IncidentRepository) InsertIncident(ctx context.Context, incident *models.Incident, audit *models.AuditRecord) error {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("failed to begin insert transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	triageJSON, err := marshalTriage(incident.Triage)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO incidents (id, ts, type, source, details, severity, handled_by, latitude, longitude, status, triage)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err = tx.Exec(ctx, query,
		incident.ID,
		incident.Timestamp,
		incident.Type,
		incident.Source,
		incident.Details,
		incident.Severity,
		incident.HandledBy,
		incident.Latitude,
		incident.Longitude,
		incident.Status,
		triageJSON,
	)
	if err != nil {
		return fmt.Errorf("failed to insert incident: %w", err)
	}

	if err := insertAudit(ctx, tx, audit); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit insert transaction: %w", err)
	}
	return nil
}

// ListRecent возвращает инциденты от новых к старым. Инциденты с одинаковым
// временем упорядочены по порядку вставки (seq).
func (r *IncidentRepository) ListRecent(ctx context.Context, limit int) ([]*models.Incident, error) {
	query := `
		SELECT id, ts, type, source, details, severity, handled_by, latitude, longitude, status, triage
		FROM incidents
		ORDER BY ts DESC, seq DESC
		LIMIT $1;
	`
	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list recent incidents: %w", err)
	}
	defer rows.Close()

	incidents := make([]*models.Incident, 0)
	for rows.Next() {
		incident := &models.Incident{}
		var triageJSON []byte
		err := rows.Scan(
			&incident.ID,
			&incident.Timestamp,
			&incident.Type,
			&incident.Source,
			&incident.Details,
			&incident.Severity,
			&incident.HandledBy,
			&incident.Latitude,
			&incident.Longitude,
			&incident.Status,
			&triageJSON,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan incident row: %w", err)
		}
		if incident.Triage, err = unmarshalTriage(triageJSON); err != nil {
			return nil, err
		}
		incidents = append(incidents, incident)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error list iteration: %w", err)
	}
	return incidents, nil
}

// AppendAudit добавляет запись аудита. Записи аудита никогда не обновляются
// и не удаляются.
func (r *IncidentRepository) AppendAudit(ctx context.Context, audit *models.AuditRecord) error {
	return insertAudit(ctx, r.db, audit)
}

// AuditTrail возвращает журнал аудита инцидента от новых записей к старым
func (r *IncidentRepository) AuditTrail(ctx context.Context, incidentID uuid.UUID) ([]*models.AuditRecord, error) {
	query := `
		SELECT id, incident_id, ts, action, details, operator, hash
		FROM incident_audit
		WHERE incident_id = $1
		ORDER BY ts DESC, seq DESC;
	`
	rows, err := r.db.Query(ctx, query, incidentID)
	if err != nil {
		return nil, fmt.Errorf("failed to get audit trail: %w", err)
	}
	defer rows.Close()

	records := make([]*models.AuditRecord, 0)
	for rows.Next() {
		record := &models.AuditRecord{}
		err := rows.Scan(
			&record.ID,
			&record.IncidentID,
			&record.Timestamp,
			&record.Action,
			&record.Details,
			&record.Operator,
			&record.Hash,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan audit row: %w", err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error audit trail iteration: %w", err)
	}
	return records, nil
}

// SaveHandover сохраняет запись передачи смены
func (r *IncidentRepository) SaveHandover(ctx context.Context, handover *models.ShiftHandover) error {
	query := `
		INSERT INTO shift_handovers (id, ts, operator, notes)
		VALUES ($1, $2, $3, $4);
	`
	_, err := r.db.Exec(ctx, query, handover.ID, handover.Timestamp, handover.Operator, handover.Notes)
	if err != nil {
		return fmt.Errorf("failed to save handover: %w", err)
	}
	return nil
}

// ListHandovers возвращает передачи смен от новых к старым
func (r *IncidentRepository) ListHandovers(ctx context.Context, limit int) ([]*models.ShiftHandover, error) {
	query := `
		SELECT id, ts, operator, notes
		FROM shift_handovers
		ORDER BY ts DESC
		LIMIT $1;
	`
	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list handovers: %w", err)
	}
	defer rows.Close()

	handovers := make([]*models.ShiftHandover, 0)
	for rows.Next() {
		handover := &models.ShiftHandover{}
		if err := rows.Scan(&handover.ID, &handover.Timestamp, &handover.Operator, &handover.Notes); err != nil {
			return nil, fmt.Errorf("failed to scan handover row: %w", err)
		}
		handovers = append(handovers, handover)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error handover iteration: %w", err)
	}
	return handovers, nil
}

// GetRecentFromCache пытается получить ленту инцидентов из Redis
func (r *IncidentRepository) GetRecentFromCache(ctx context.Context) ([]*models.Incident, error) {
	val, err := r.redisClient.Get(ctx, recentCacheKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get recent incidents from cache: %w", err)
	}

	incidents := make([]*models.Incident, 0)
	if err := json.Unmarshal(val, &incidents); err != nil {
		return nil, fmt.Errorf("failed to unmarshal incidents from cache: %w", err)
	}
	return incidents, nil
}

// SetRecentCache сохраняет ленту инцидентов в Redis
func (r *IncidentRepository) SetRecentCache(ctx context.Context, incidents []*models.Incident) error {
	val, err := json.Marshal(incidents)
	if err != nil {
		return fmt.Errorf("failed to marshal incidents for cache: %w", err)
	}
	if err := r.redisClient.Set(ctx, recentCacheKey, val, r.cacheTTL).Err(); err != nil {
		return fmt.Errorf("failed to set recent incidents in cache: %w", err)
	}
	return nil
}

// InvalidateRecentCache удаляет ленту инцидентов из Redis кэша
func (r *IncidentRepository) InvalidateRecentCache(ctx context.Context) error {
	if err := r.redisClient.Del(ctx, recentCacheKey).Err(); err != nil {
		return fmt.Errorf("failed to invalidate recent incidents cache: %w", err)
	}
	return nil
}

// executor покрывает и пул, и транзакцию
type executor interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

func insertAudit(ctx context.Context, db executor, audit *models.AuditRecord) error {
	query := `
		INSERT INTO incident_audit (id, incident_id, ts, action, details, operator, hash)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	_, err := db.Exec(ctx, query,
		audit.ID,
		audit.IncidentID,
		audit.Timestamp,
		audit.Action,
		audit.Details,
		audit.Operator,
		audit.Hash,
	)
	if err != nil {
		return fmt.Errorf("failed to append audit record: %w", err)
	}
	return nil
}

func marshalTriage(t *models.TriageResult) ([]byte, error) {
	if t == nil {
		return nil, nil
	}
	data, err := json.Marshal(t)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal triage result: %w", err)
	}
	return data, nil
}

func unmarshalTriage(data []byte) (*models.TriageResult, error) {
	if len(data) == 0 {
		return nil, nil
	}
	t := &models.TriageResult{}
	if err := json.Unmarshal(data, t); err != nil {
		return nil, fmt.Errorf("failed to unmarshal triage result: %w", err)
	}
	return t, nil
}
