//go:build integration

package postgres_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	platformpg "campuspass/internal/platform/postgres"
	id "campuspass/pkg/domain"
	audit "campuspass/pkg/platform/audit"
	auditpg "campuspass/pkg/platform/audit/store/postgres"
	"campuspass/pkg/platform/tx"
	"campuspass/pkg/testutil/containers"
)

type AuditStoreSuite struct {
	suite.Suite
	postgres *containers.PostgresContainer
	store    *auditpg.Store
}

func TestAuditStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(AuditStoreSuite))
}

func (s *AuditStoreSuite) SetupSuite() {
	s.postgres = containers.GetManager().GetPostgres(s.T())
	s.Require().NoError(platformpg.ApplySchema(context.Background(), s.postgres.DB))
	s.store = auditpg.New(s.postgres.DB)
}

func (s *AuditStoreSuite) SetupTest() {
	s.Require().NoError(s.postgres.TruncateTables(context.Background(), "audit_events"))
}

func (s *AuditStoreSuite) TestAppendAndList() {
	ctx := context.Background()
	studentID := id.StudentID(uuid.New())
	universityID := id.UniversityID(uuid.New())
	ts := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	s.Require().NoError(s.store.Append(ctx, audit.Event{
		Timestamp:    ts,
		StudentID:    studentID,
		UniversityID: universityID,
		Action:       string(audit.EventVerificationCompleted),
		Method:       "email",
		Decision:     audit.DecisionGranted,
		RequestID:    "req-1",
	}))

	events, err := s.store.ListByStudent(ctx, studentID)
	s.Require().NoError(err)
	s.Require().Len(events, 1)
	s.Equal(audit.CategoryCompliance, events[0].Category)
	s.Equal(universityID, events[0].UniversityID)
	s.True(events[0].VendorID.IsNil())
	s.Equal("email", events[0].Method)
	s.True(ts.Equal(events[0].Timestamp))
}

func (s *AuditStoreSuite) TestAppendRollsBackWithTransaction() {
	ctx := context.Background()
	studentID := id.StudentID(uuid.New())
	runner := tx.SQLRunner{DB: s.postgres.DB}

	err := runner.RunInTx(ctx, func(ctx context.Context) error {
		if err := s.store.Append(ctx, audit.Event{
			Timestamp: time.Now(),
			StudentID: studentID,
			Action:    string(audit.EventVerificationCompleted),
		}); err != nil {
			return err
		}
		return errors.New("abort")
	})
	s.Require().Error(err)

	events, err := s.store.ListByStudent(ctx, studentID)
	s.Require().NoError(err)
	s.Empty(events)
}
