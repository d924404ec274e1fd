package service

import (
	"context"
	"errors"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"campuspass/internal/directory/models"
	id "campuspass/pkg/domain"
	dErrors "campuspass/pkg/domain-errors"
	"campuspass/pkg/platform/sentinel"
)

// VendorReader is the directory lookup the authenticator needs.
type VendorReader interface {
	FindVendor(ctx context.Context, vendorID id.VendorID) (*models.Vendor, error)
}

// VendorAuthenticator checks widget API keys against stored bcrypt hashes.
type VendorAuthenticator struct {
	vendors VendorReader
	logger  *slog.Logger
}

func NewVendorAuthenticator(vendors VendorReader, logger *slog.Logger) *VendorAuthenticator {
	if logger == nil {
		logger = slog.Default()
	}
	return &VendorAuthenticator{vendors: vendors, logger: logger}
}

// AuthenticateVendor returns unauthorized for unknown, inactive or mismatched vendors alike.
func (a *VendorAuthenticator) AuthenticateVendor(ctx context.Context, vendorID id.VendorID, apiKey string) error {
	vendor, err := a.vendors.FindVendor(ctx, vendorID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return dErrors.New(dErrors.CodeUnauthorized, "invalid vendor credentials")
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to load vendor")
	}
	if !vendor.Active || vendor.APIKeyHash == "" {
		return dErrors.New(dErrors.CodeUnauthorized, "invalid vendor credentials")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(vendor.APIKeyHash), []byte(apiKey)); err != nil {
		return dErrors.New(dErrors.CodeUnauthorized, "invalid vendor credentials")
	}
	return nil
}

// HashAPIKey produces the stored form of a vendor API key.
func HashAPIKey(apiKey string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(apiKey), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
