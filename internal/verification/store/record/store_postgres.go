package record

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"campuspass/internal/verification/models"
	id "campuspass/pkg/domain"
	"campuspass/pkg/platform/sentinel"
	txcontext "campuspass/pkg/platform/tx"

	"github.com/lib/pq"
)

const uniqueViolation = "23505"

type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Create(ctx context.Context, r *models.Record) error {
	query := `
		INSERT INTO verification_records (id, student_id, method, status, verified_at, expires_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	var expiresAt sql.NullTime
	if r.ExpiresAt != nil {
		expiresAt = sql.NullTime{Time: *r.ExpiresAt, Valid: true}
	}
	_, err := txcontext.ExecutorFor(ctx, s.db).ExecContext(ctx, query,
		uuid.UUID(r.ID), uuid.UUID(r.StudentID), string(r.Method), string(r.Status), r.VerifiedAt, expiresAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("record already exists: %w", sentinel.ErrConflict)
		}
		return fmt.Errorf("insert verification record: %w", err)
	}
	return nil
}

func (s *PostgresStore) LatestByStudent(ctx context.Context, studentID id.StudentID) (*models.Record, error) {
	query := `
		SELECT id, student_id, method, status, verified_at, expires_at
		FROM verification_records
		WHERE student_id = $1
		ORDER BY verified_at DESC, seq DESC
		LIMIT 1
	`
	r, err := scanRecord(txcontext.ExecutorFor(ctx, s.db).QueryRowContext(ctx, query, uuid.UUID(studentID)))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("verification record not found: %w", sentinel.ErrNotFound)
		}
		return nil, fmt.Errorf("find latest verification record: %w", err)
	}
	return r, nil
}

func (s *PostgresStore) ListByStudent(ctx context.Context, studentID id.StudentID) ([]*models.Record, error) {
	query := `
		SELECT id, student_id, method, status, verified_at, expires_at
		FROM verification_records
		WHERE student_id = $1
		ORDER BY verified_at DESC, seq DESC
	`
	rows, err := txcontext.ExecutorFor(ctx, s.db).QueryContext(ctx, query, uuid.UUID(studentID))
	if err != nil {
		return nil, fmt.Errorf("query verification records: %w", err)
	}
	defer rows.Close()

	var out []*models.Record
	for rows.Next() {
		r, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scan verification record: %w", err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate verification records: %w", err)
	}
	return out, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(row scanner) (*models.Record, error) {
	var (
		r                 models.Record
		rawID, rawStudent uuid.UUID
		method, status    string
		expiresAt         sql.NullTime
	)
	if err := row.Scan(&rawID, &rawStudent, &method, &status, &r.VerifiedAt, &expiresAt); err != nil {
		return nil, err
	}
	r.ID = id.RecordID(rawID)
	r.StudentID = id.StudentID(rawStudent)
	r.Method = models.MethodKind(method)
	r.Status = models.RecordStatus(status)
	if expiresAt.Valid {
		exp := expiresAt.Time
		r.ExpiresAt = &exp
	}
	return &r, nil
}

// isUniqueViolation recognises unique violations from either driver.
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == uniqueViolation
	}
	var coded interface{ SQLState() string }
	if errors.As(err, &coded) {
		return coded.SQLState() == uniqueViolation
	}
	return false
}
