package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"campuspass/internal/directory/models"
	"campuspass/internal/directory/store"
	id "campuspass/pkg/domain"
	dErrors "campuspass/pkg/domain-errors"
)

func TestAuthenticateVendor(t *testing.T) {
	ctx := context.Background()
	directory := store.NewInMemory()

	hash, err := bcrypt.GenerateFromPassword([]byte("vk_live_123"), bcrypt.MinCost)
	require.NoError(t, err)

	active := models.Vendor{ID: id.VendorID(uuid.New()), Name: "Campus Books", Active: true, APIKeyHash: string(hash)}
	inactive := models.Vendor{ID: id.VendorID(uuid.New()), Name: "Gone", Active: false, APIKeyHash: string(hash)}
	directory.PutVendor(active)
	directory.PutVendor(inactive)

	auth := NewVendorAuthenticator(directory, nil)

	tests := []struct {
		name     string
		vendorID id.VendorID
		key      string
		wantErr  bool
	}{
		{"correct key", active.ID, "vk_live_123", false},
		{"wrong key", active.ID, "vk_live_124", true},
		{"inactive vendor", inactive.ID, "vk_live_123", true},
		{"unknown vendor", id.VendorID(uuid.New()), "vk_live_123", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := auth.AuthenticateVendor(ctx, tt.vendorID, tt.key)
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))
		})
	}
}

func TestHashAPIKey(t *testing.T) {
	hash, err := HashAPIKey("secret")
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(hash), []byte("secret")))
}
