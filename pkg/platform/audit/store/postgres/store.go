package postgres

import (
	"context"
	"database/sql"
	"fmt"

	id "campuspass/pkg/domain"
	audit "campuspass/pkg/platform/audit"
	txcontext "campuspass/pkg/platform/tx"

	"github.com/google/uuid"
)

// Store implements audit.Store on the audit_events table. Appends join the
// transaction in ctx, so an audit row commits or rolls back with the
// verification record it describes.
type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

const eventColumns = `category, timestamp, student_id, university_id, vendor_id, action,
	method, decision, reason, request_id, client_ip, device`

func (s *Store) Append(ctx context.Context, event audit.Event) error {
	category := event.Category
	if category == "" {
		category = audit.AuditEvent(event.Action).Category()
	}
	query := `
		INSERT INTO audit_events (id, ` + eventColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`
	_, err := txcontext.ExecutorFor(ctx, s.db).ExecContext(ctx, query,
		uuid.New(),
		string(category),
		event.Timestamp,
		nullable(uuid.UUID(event.StudentID)),
		nullable(uuid.UUID(event.UniversityID)),
		nullable(uuid.UUID(event.VendorID)),
		event.Action,
		event.Method,
		event.Decision,
		event.Reason,
		event.RequestID,
		event.ClientIP,
		event.Device,
	)
	if err != nil {
		return fmt.Errorf("insert audit event: %w", err)
	}
	return nil
}

// ListByStudent returns a student's events, oldest first.
func (s *Store) ListByStudent(ctx context.Context, studentID id.StudentID) ([]audit.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM audit_events WHERE student_id = $1 ORDER BY timestamp ASC`
	rows, err := txcontext.ExecutorFor(ctx, s.db).QueryContext(ctx, query, uuid.UUID(studentID))
	if err != nil {
		return nil, fmt.Errorf("query audit events: %w", err)
	}
	defer rows.Close()
	return scanEvents(rows)
}

// ListRecent returns the N most recent events.
func (s *Store) ListRecent(ctx context.Context, limit int) ([]audit.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM audit_events ORDER BY timestamp DESC LIMIT $1`
	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("query audit events: %w", err)
	}
	defer rows.Close()
	return scanEvents(rows)
}

func scanEvents(rows *sql.Rows) ([]audit.Event, error) {
	var events []audit.Event
	for rows.Next() {
		var (
			category                          string
			event                             audit.Event
			studentID, universityID, vendorID uuid.NullUUID
		)
		err := rows.Scan(
			&category,
			&event.Timestamp,
			&studentID,
			&universityID,
			&vendorID,
			&event.Action,
			&event.Method,
			&event.Decision,
			&event.Reason,
			&event.RequestID,
			&event.ClientIP,
			&event.Device,
		)
		if err != nil {
			return nil, fmt.Errorf("scan audit event: %w", err)
		}
		event.Category = audit.EventCategory(category)
		event.StudentID = id.StudentID(studentID.UUID)
		event.UniversityID = id.UniversityID(universityID.UUID)
		event.VendorID = id.VendorID(vendorID.UUID)
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate audit events: %w", err)
	}
	return events, nil
}

func nullable(u uuid.UUID) uuid.NullUUID {
	return uuid.NullUUID{UUID: u, Valid: u != uuid.Nil}
}
