package auth

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	id "campuspass/pkg/domain"
	request "campuspass/pkg/platform/middleware/request"
	"campuspass/pkg/requestcontext"
)

// Headers carrying vendor credentials on widget routes.
const (
	VendorIDHeader  = "X-Vendor-ID"
	VendorKeyHeader = "X-Vendor-Key"
)

// VendorAuthenticator checks a vendor's API key.
type VendorAuthenticator interface {
	AuthenticateVendor(ctx context.Context, vendorID id.VendorID, apiKey string) error
}

// writeJSONError writes a JSON error response with the given status code and error details.
func writeJSONError(w http.ResponseWriter, status int, errCode, errDesc string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(fmt.Appendf(nil, `{"error":"%s","error_description":"%s"}`, errCode, errDesc))
}

// RequireVendor authenticates the calling vendor and stores its ID in the context.
// Unknown vendors and wrong keys are indistinguishable to the caller.
func RequireVendor(authenticator VendorAuthenticator, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			requestID := request.GetRequestID(ctx)

			rawID := r.Header.Get(VendorIDHeader)
			apiKey := r.Header.Get(VendorKeyHeader)
			if rawID == "" || apiKey == "" {
				logger.WarnContext(ctx, "unauthorized vendor access - missing credentials",
					"request_id", requestID,
				)
				writeJSONError(w, http.StatusUnauthorized, "unauthorized", "Missing vendor credentials")
				return
			}

			vendorID, err := id.ParseVendorID(rawID)
			if err != nil {
				writeJSONError(w, http.StatusUnauthorized, "unauthorized", "Invalid vendor credentials")
				return
			}

			if err := authenticator.AuthenticateVendor(ctx, vendorID, apiKey); err != nil {
				logger.WarnContext(ctx, "unauthorized vendor access - invalid credentials",
					"vendor_id", vendorID.String(),
					"error", err,
					"request_id", requestID,
				)
				writeJSONError(w, http.StatusUnauthorized, "unauthorized", "Invalid vendor credentials")
				return
			}

			next.ServeHTTP(w, r.WithContext(requestcontext.WithVendorID(ctx, vendorID)))
		})
	}
}
