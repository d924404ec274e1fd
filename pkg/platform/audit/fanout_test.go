package audit_test

import (
	"context"
	"errors"
	"testing"

	id "campuspass/pkg/domain"
	audit "campuspass/pkg/platform/audit"
	"campuspass/pkg/platform/audit/store/memory"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type errStore struct{}

func (errStore) Append(context.Context, audit.Event) error { return errors.New("sink down") }

func TestFanout_AppendsToEveryStore(t *testing.T) {
	first := memory.NewInMemoryStore()
	second := memory.NewInMemoryStore()
	studentID := id.StudentID(uuid.New())

	fan := audit.Fanout{errStore{}, first, second}
	err := fan.Append(context.Background(), audit.Event{StudentID: studentID, Action: "a"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sink down")

	for _, s := range []*memory.InMemoryStore{first, second} {
		events, listErr := s.ListByStudent(context.Background(), studentID)
		require.NoError(t, listErr)
		assert.Len(t, events, 1)
	}

	listed, err := fan.ListByStudent(context.Background(), studentID)
	require.NoError(t, err)
	assert.Len(t, listed, 1)
}

func TestEventCategories(t *testing.T) {
	assert.Equal(t, audit.CategoryCompliance, audit.EventVerificationCompleted.Category())
	assert.Equal(t, audit.CategorySecurity, audit.EventVerificationFailed.Category())
	assert.Equal(t, audit.CategoryOperations, audit.AuditEvent("unknown").Category())
}

func TestDeviceSummary(t *testing.T) {
	assert.Empty(t, audit.DeviceSummary(""))
	summary := audit.DeviceSummary("Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.0 Safari/605.1.15")
	assert.Contains(t, summary, "Safari")
	assert.Contains(t, summary, " on ")
}
