package methods

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	unimodels "campuspass/internal/university/models"
	"campuspass/internal/verification/models"
	id "campuspass/pkg/domain"
)

type stubConfigs struct {
	rows []unimodels.MethodConfig
	err  error
}

func (s stubConfigs) ListMethodConfigs(context.Context, id.UniversityID) ([]unimodels.MethodConfig, error) {
	return s.rows, s.err
}

func methodsOf(list []models.MethodAvailability) []models.MethodKind {
	out := make([]models.MethodKind, 0, len(list))
	for _, m := range list {
		out = append(out, m.Method)
	}
	return out
}

func TestOrder_NoConfigurationIsCanonical(t *testing.T) {
	list := Order(nil)
	require.Len(t, list, 4)
	assert.Equal(t, models.CanonicalOrder, methodsOf(list))
	for _, m := range list {
		assert.True(t, m.IsAvailable)
	}
}

func TestOrder_ConfiguredRowsComeFirst(t *testing.T) {
	uni := id.UniversityID(uuid.New())
	list := Order([]unimodels.MethodConfig{
		{UniversityID: uni, Method: models.MethodRegistration, Active: true, Priority: 0},
		{UniversityID: uni, Method: models.MethodEmail, Active: true, Priority: 1},
	})

	assert.Equal(t, []models.MethodKind{
		models.MethodRegistration, models.MethodEmail, models.MethodPortal, models.MethodWhatsApp,
	}, methodsOf(list))
	assert.True(t, list[2].IsAvailable)
	assert.True(t, list[3].IsAvailable)
	assert.Less(t, list[2].Priority, list[3].Priority)
}

func TestOrder_KeepsInactiveFlagAndBreaksTiesCanonically(t *testing.T) {
	uni := id.UniversityID(uuid.New())
	list := Order([]unimodels.MethodConfig{
		{UniversityID: uni, Method: models.MethodWhatsApp, Active: true, Priority: 1},
		{UniversityID: uni, Method: models.MethodEmail, Active: false, Priority: 1},
		{UniversityID: uni, Method: models.MethodPortal, Active: true, Priority: 2},
		{UniversityID: uni, Method: models.MethodRegistration, Active: true, Priority: 0},
	})

	assert.Equal(t, []models.MethodKind{
		models.MethodRegistration, models.MethodEmail, models.MethodWhatsApp, models.MethodPortal,
	}, methodsOf(list))
	assert.False(t, list[1].IsAvailable)
}

func TestOrder_IgnoresUnknownAndDuplicateRows(t *testing.T) {
	uni := id.UniversityID(uuid.New())
	list := Order([]unimodels.MethodConfig{
		{UniversityID: uni, Method: "sms", Active: true, Priority: 0},
		{UniversityID: uni, Method: models.MethodEmail, Active: true, Priority: 0},
		{UniversityID: uni, Method: models.MethodEmail, Active: false, Priority: 9},
	})
	require.Len(t, list, 4)
	assert.Equal(t, models.MethodEmail, list[0].Method)
	assert.True(t, list[0].IsAvailable)
}

func TestRegistry_GetAvailableMethods(t *testing.T) {
	uni := id.UniversityID(uuid.New())

	t.Run("propagates store errors", func(t *testing.T) {
		boom := errors.New("db down")
		_, err := NewRegistry(stubConfigs{err: boom}, nil).GetAvailableMethods(context.Background(), uni)
		assert.ErrorIs(t, err, boom)
	})

	t.Run("orders configured rows", func(t *testing.T) {
		reg := NewRegistry(stubConfigs{rows: []unimodels.MethodConfig{
			{UniversityID: uni, Method: models.MethodWhatsApp, Active: true, Priority: 0},
		}}, nil)
		list, err := reg.GetAvailableMethods(context.Background(), uni)
		require.NoError(t, err)
		assert.Equal(t, models.MethodWhatsApp, list[0].Method)
	})
}

func TestEndpointFor(t *testing.T) {
	configs := []unimodels.MethodConfig{
		{Method: models.MethodEmail, Endpoint: "https://ignored"},
		{Method: models.MethodRegistration, Endpoint: "https://registry.example/lookup"},
	}
	assert.Equal(t, "https://registry.example/lookup", EndpointFor(configs, models.MethodRegistration))
	assert.Empty(t, EndpointFor(nil, models.MethodRegistration))
}
