package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"campuspass/internal/directory/models"
	id "campuspass/pkg/domain"
	"campuspass/pkg/platform/sentinel"
)

// PostgresStore reads the directory tables. Rows are owned by other services.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) FindStudent(ctx context.Context, studentID id.StudentID) (*models.Student, error) {
	query := `SELECT id, university_id, email, phone, active FROM students WHERE id = $1`
	return scanStudent(s.db.QueryRowContext(ctx, query, studentID.String()))
}

func (s *PostgresStore) FindStudentByEmail(ctx context.Context, email string) (*models.Student, error) {
	query := `SELECT id, university_id, email, phone, active FROM students WHERE lower(email) = lower($1) LIMIT 1`
	return scanStudent(s.db.QueryRowContext(ctx, query, email))
}

func scanStudent(row *sql.Row) (*models.Student, error) {
	var (
		st       models.Student
		rawID    uuid.UUID
		rawUniID uuid.NullUUID
	)
	if err := row.Scan(&rawID, &rawUniID, &st.Email, &st.Phone, &st.Active); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("student not found: %w", sentinel.ErrNotFound)
		}
		return nil, fmt.Errorf("find student: %w", err)
	}
	st.ID = id.StudentID(rawID)
	if rawUniID.Valid {
		st.UniversityID = id.UniversityID(rawUniID.UUID)
	}
	return &st, nil
}

func (s *PostgresStore) FindVendor(ctx context.Context, vendorID id.VendorID) (*models.Vendor, error) {
	query := `SELECT id, name, active, api_key_hash FROM vendors WHERE id = $1`
	var (
		v     models.Vendor
		rawID uuid.UUID
	)
	err := s.db.QueryRowContext(ctx, query, vendorID.String()).Scan(&rawID, &v.Name, &v.Active, &v.APIKeyHash)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("vendor not found: %w", sentinel.ErrNotFound)
		}
		return nil, fmt.Errorf("find vendor: %w", err)
	}
	v.ID = id.VendorID(rawID)
	return &v, nil
}

func (s *PostgresStore) FindProduct(ctx context.Context, productID id.ProductID) (*models.Product, error) {
	query := `SELECT id, vendor_id, name FROM products WHERE id = $1`
	var (
		p           models.Product
		rawID       uuid.UUID
		rawVendorID uuid.UUID
	)
	err := s.db.QueryRowContext(ctx, query, productID.String()).Scan(&rawID, &rawVendorID, &p.Name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("product not found: %w", sentinel.ErrNotFound)
		}
		return nil, fmt.Errorf("find product: %w", err)
	}
	p.ID = id.ProductID(rawID)
	p.VendorID = id.VendorID(rawVendorID)
	return &p, nil
}
