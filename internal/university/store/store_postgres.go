package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"campuspass/internal/university/models"
	vmodels "campuspass/internal/verification/models"
	id "campuspass/pkg/domain"
	"campuspass/pkg/platform/sentinel"
)

// PostgresStore reads university configuration from PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed university store.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) FindByID(ctx context.Context, universityID id.UniversityID) (*models.University, error) {
	query := `
		SELECT id, name, primary_domain, domains, active, database_url, lookup_api_key, lookup_auth_header
		FROM universities
		WHERE id = $1
	`
	var (
		u       models.University
		rawID   uuid.UUID
		domains pq.StringArray
	)
	err := s.db.QueryRowContext(ctx, query, universityID.String()).Scan(
		&rawID, &u.Name, &u.PrimaryDomain, &domains, &u.Active,
		&u.DatabaseURL, &u.Lookup.APIKey, &u.Lookup.AuthHeader,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("university not found: %w", sentinel.ErrNotFound)
		}
		return nil, fmt.Errorf("find university: %w", err)
	}
	u.ID = id.UniversityID(rawID)
	u.Domains = []string(domains)
	return &u, nil
}

func (s *PostgresStore) ListMethodConfigs(ctx context.Context, universityID id.UniversityID) ([]models.MethodConfig, error) {
	query := `
		SELECT university_id, method, active, priority, endpoint
		FROM verification_method_configs
		WHERE university_id = $1
		ORDER BY priority ASC
	`
	rows, err := s.db.QueryContext(ctx, query, universityID.String())
	if err != nil {
		return nil, fmt.Errorf("list method configs: %w", err)
	}
	defer rows.Close()

	var configs []models.MethodConfig
	for rows.Next() {
		var (
			cfg    models.MethodConfig
			rawID  uuid.UUID
			method string
		)
		if err := rows.Scan(&rawID, &method, &cfg.Active, &cfg.Priority, &cfg.Endpoint); err != nil {
			return nil, fmt.Errorf("scan method config: %w", err)
		}
		cfg.UniversityID = id.UniversityID(rawID)
		cfg.Method = vmodels.MethodKind(method)
		configs = append(configs, cfg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate method configs: %w", err)
	}
	return configs, nil
}

// Upsert writes a university row. Seeding and tests only.
func (s *PostgresStore) Upsert(ctx context.Context, u *models.University) error {
	query := `
		INSERT INTO universities (id, name, primary_domain, domains, active, database_url, lookup_api_key, lookup_auth_header)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			primary_domain = EXCLUDED.primary_domain,
			domains = EXCLUDED.domains,
			active = EXCLUDED.active,
			database_url = EXCLUDED.database_url,
			lookup_api_key = EXCLUDED.lookup_api_key,
			lookup_auth_header = EXCLUDED.lookup_auth_header
	`
	_, err := s.db.ExecContext(ctx, query,
		u.ID.String(), u.Name, u.PrimaryDomain, pq.Array(u.Domains), u.Active,
		u.DatabaseURL, u.Lookup.APIKey, u.Lookup.AuthHeader,
	)
	if err != nil {
		return fmt.Errorf("upsert university: %w", err)
	}
	return nil
}

// UpsertMethodConfig writes one method row. Seeding and tests only.
func (s *PostgresStore) UpsertMethodConfig(ctx context.Context, cfg models.MethodConfig) error {
	query := `
		INSERT INTO verification_method_configs (university_id, method, active, priority, endpoint)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (university_id, method) DO UPDATE SET
			active = EXCLUDED.active,
			priority = EXCLUDED.priority,
			endpoint = EXCLUDED.endpoint
	`
	_, err := s.db.ExecContext(ctx, query, cfg.UniversityID.String(), string(cfg.Method), cfg.Active, cfg.Priority, cfg.Endpoint)
	if err != nil {
		return fmt.Errorf("upsert method config: %w", err)
	}
	return nil
}
