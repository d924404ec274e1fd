package token

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"campuspass/internal/verification/models"
	id "campuspass/pkg/domain"
	"campuspass/pkg/platform/sentinel"
	txcontext "campuspass/pkg/platform/tx"
)

// PostgresStore persists tokens in verification_tokens. Consumption is a single
// conditional UPDATE; the row is only read back to classify a refusal.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const tokenColumns = `token_hash, kind, email, university_id, student_id, vendor_id, product_id,
	issued_at, expires_at, used_at`

func (s *PostgresStore) Create(ctx context.Context, t *models.Token) error {
	var (
		email                   string
		universityID, studentID uuid.NullUUID
		vendorID, productID     uuid.NullUUID
	)
	switch t.Kind {
	case models.TokenKindMagicLink:
		if t.MagicLink != nil {
			email = t.MagicLink.Email
			if t.MagicLink.UniversityID != nil {
				universityID = uuid.NullUUID{UUID: uuid.UUID(*t.MagicLink.UniversityID), Valid: true}
			}
			if t.MagicLink.StudentID != nil {
				studentID = uuid.NullUUID{UUID: uuid.UUID(*t.MagicLink.StudentID), Valid: true}
			}
		}
	case models.TokenKindWidget:
		if t.Widget != nil {
			studentID = uuid.NullUUID{UUID: uuid.UUID(t.Widget.StudentID), Valid: true}
			vendorID = uuid.NullUUID{UUID: uuid.UUID(t.Widget.VendorID), Valid: true}
			if t.Widget.ProductID != nil {
				productID = uuid.NullUUID{UUID: uuid.UUID(*t.Widget.ProductID), Valid: true}
			}
		}
	}

	query := `
		INSERT INTO verification_tokens (` + tokenColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NULL)
		ON CONFLICT (token_hash) DO NOTHING
	`
	res, err := txcontext.ExecutorFor(ctx, s.db).ExecContext(ctx, query,
		t.Hash, string(t.Kind), email, universityID, studentID, vendorID, productID,
		t.IssuedAt, t.ExpiresAt,
	)
	if err != nil {
		return fmt.Errorf("insert token: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("token already exists: %w", sentinel.ErrConflict)
	}
	return nil
}

// Consume marks the token used when it is unexpired, unused, of the expected
// kind and, for widget tokens, owned by the expected vendor.
func (s *PostgresStore) Consume(ctx context.Context, hash string, exp models.Expectation, now time.Time) (*models.Token, error) {
	query := `
		UPDATE verification_tokens
		SET used_at = $2
		WHERE token_hash = $1
		  AND kind = $3
		  AND used_at IS NULL
		  AND expires_at > $2
		  AND (kind <> 'widget' OR vendor_id = $4)
		RETURNING ` + tokenColumns

	var vendorArg uuid.NullUUID
	if !exp.VendorID.IsNil() {
		vendorArg = uuid.NullUUID{UUID: uuid.UUID(exp.VendorID), Valid: true}
	}
	exec := txcontext.ExecutorFor(ctx, s.db)
	t, err := scanToken(exec.QueryRowContext(ctx, query, hash, now, string(exp.Kind), vendorArg))
	if err == nil {
		return t, nil
	}
	if !errors.Is(err, sentinel.ErrNotFound) {
		return nil, fmt.Errorf("consume token: %w", err)
	}

	// Nothing updated: read the row to report why.
	existing, findErr := s.find(ctx, exec, hash)
	if findErr != nil {
		return nil, findErr
	}
	if vErr := existing.Validate(exp, now); vErr != nil {
		return nil, fmt.Errorf("token rejected: %w", vErr)
	}
	// The row became valid-looking only because a concurrent consumer won and
	// our read raced ahead of its commit.
	return nil, fmt.Errorf("token rejected: %w", sentinel.ErrAlreadyUsed)
}

func (s *PostgresStore) Peek(ctx context.Context, hash string, exp models.Expectation, now time.Time) (*models.Token, error) {
	t, err := s.find(ctx, txcontext.ExecutorFor(ctx, s.db), hash)
	if err != nil {
		return nil, err
	}
	if err := t.Validate(exp, now); err != nil {
		return nil, fmt.Errorf("token rejected: %w", err)
	}
	return t, nil
}

func (s *PostgresStore) find(ctx context.Context, exec txcontext.Executor, hash string) (*models.Token, error) {
	query := `SELECT ` + tokenColumns + ` FROM verification_tokens WHERE token_hash = $1`
	t, err := scanToken(exec.QueryRowContext(ctx, query, hash))
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, fmt.Errorf("token not found: %w", sentinel.ErrNotFound)
		}
		return nil, fmt.Errorf("find token: %w", err)
	}
	return t, nil
}

func scanToken(row *sql.Row) (*models.Token, error) {
	var (
		t                       models.Token
		kind, email             string
		universityID, studentID uuid.NullUUID
		vendorID, productID     uuid.NullUUID
		usedAt                  sql.NullTime
	)
	err := row.Scan(&t.Hash, &kind, &email, &universityID, &studentID, &vendorID, &productID,
		&t.IssuedAt, &t.ExpiresAt, &usedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, err
	}
	t.Kind = models.TokenKind(kind)
	if usedAt.Valid {
		u := usedAt.Time
		t.UsedAt = &u
	}

	switch t.Kind {
	case models.TokenKindMagicLink:
		ml := &models.MagicLinkPayload{Email: email}
		if universityID.Valid {
			uid := id.UniversityID(universityID.UUID)
			ml.UniversityID = &uid
		}
		if studentID.Valid {
			sid := id.StudentID(studentID.UUID)
			ml.StudentID = &sid
		}
		t.MagicLink = ml
	case models.TokenKindWidget:
		w := &models.WidgetPayload{
			StudentID: id.StudentID(studentID.UUID),
			VendorID:  id.VendorID(vendorID.UUID),
		}
		if productID.Valid {
			pid := id.ProductID(productID.UUID)
			w.ProductID = &pid
		}
		t.Widget = w
	}
	return &t, nil
}
