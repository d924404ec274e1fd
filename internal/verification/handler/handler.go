// Package handler exposes the verification operations over HTTP.
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"

	"campuspass/internal/verification/models"
	"campuspass/internal/verification/service"
	"campuspass/internal/verification/token"
	id "campuspass/pkg/domain"
	dErrors "campuspass/pkg/domain-errors"
	"campuspass/pkg/platform/httputil"
	"campuspass/pkg/platform/middleware/auth"
	request "campuspass/pkg/platform/middleware/request"
	"campuspass/pkg/requestcontext"
)

const defaultOTPRequestLimit = 5

// Service is the orchestrator surface the routes call.
type Service interface {
	GetAvailableMethods(ctx context.Context, universityID id.UniversityID) ([]models.MethodAvailability, error)
	DetermineBestMethod(ctx context.Context, universityID id.UniversityID, signals service.Signals) (*models.MethodKind, error)
	CheckAcademicEmail(ctx context.Context, email string) (*service.AcademicCheck, error)
	IssueMagicLink(ctx context.Context, email string, universityID id.UniversityID, studentID *id.StudentID) (*service.MagicLinkSent, error)
	ConsumeMagicLink(ctx context.Context, raw string) (*service.VerificationResult, error)
	VerifyRegistrationNumber(ctx context.Context, in service.RegistrationInput) (*service.RegistrationResult, error)
	RequestOTP(ctx context.Context, target string, channel *models.Channel) (*service.OTPSent, error)
	VerifyOTP(ctx context.Context, target, code string, studentID *id.StudentID) (*service.VerificationResult, error)
	GetVerificationStatus(ctx context.Context, studentID id.StudentID) (models.StatusView, error)
	ListVerificationHistory(ctx context.Context, studentID id.StudentID) ([]*models.Record, error)
	IssueWidgetToken(ctx context.Context, studentID id.StudentID, vendorID id.VendorID, productID *id.ProductID) (*token.Issued, error)
	ConsumeWidgetToken(ctx context.Context, raw string, vendorID id.VendorID) (*service.WidgetRedemption, error)
	PeekWidgetToken(ctx context.Context, raw string, vendorID id.VendorID) (*service.WidgetRedemption, error)
}

// Handler serves the verification routes.
type Handler struct {
	svc            Service
	vendors        auth.VendorAuthenticator
	logger         *slog.Logger
	allowedOrigins []string
	otpLimit       int
}

type Option func(*Handler)

// WithAllowedOrigins sets the origins allowed to call widget routes from a browser.
func WithAllowedOrigins(origins []string) Option {
	return func(h *Handler) {
		h.allowedOrigins = origins
	}
}

// WithOTPRequestLimit caps OTP requests per client IP per minute.
func WithOTPRequestLimit(n int) Option {
	return func(h *Handler) {
		if n > 0 {
			h.otpLimit = n
		}
	}
}

func New(svc Service, vendors auth.VendorAuthenticator, logger *slog.Logger, opts ...Option) *Handler {
	h := &Handler{
		svc:            svc,
		vendors:        vendors,
		logger:         logger,
		allowedOrigins: []string{"*"},
		otpLimit:       defaultOTPRequestLimit,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Register mounts the verification routes on r.
func (h *Handler) Register(r chi.Router) {
	r.Get("/universities/{id}/methods", h.handleListMethods)
	r.Post("/universities/{id}/methods/recommend", h.handleRecommend)

	r.Post("/verify/email/academic-check", h.handleAcademicCheck)
	r.Post("/verify/email/magic-link", h.handleIssueMagicLink)
	r.Post("/verify/email/consume", h.handleConsumeMagicLink)
	r.Post("/verify/registration", h.handleVerifyRegistration)
	r.With(httprate.LimitByIP(h.otpLimit, time.Minute)).Post("/verify/otp/request", h.handleRequestOTP)
	r.Post("/verify/otp/confirm", h.handleConfirmOTP)

	r.Get("/students/{id}/verification-status", h.handleGetStatus)
	r.Get("/students/{id}/verification-history", h.handleGetHistory)

	r.Route("/widget/tokens", func(wr chi.Router) {
		wr.Use(cors.Handler(cors.Options{
			AllowedOrigins: h.allowedOrigins,
			AllowedMethods: []string{http.MethodPost, http.MethodOptions},
			AllowedHeaders: []string{"Content-Type", auth.VendorIDHeader, auth.VendorKeyHeader, request.RequestIDHeader},
			ExposedHeaders: []string{request.RequestIDHeader},
			MaxAge:         300,
		}))
		wr.Post("/", h.handleIssueWidgetToken)
		wr.Group(func(vr chi.Router) {
			vr.Use(auth.RequireVendor(h.vendors, h.logger))
			vr.Post("/consume", h.handleConsumeWidgetToken)
			vr.Post("/peek", h.handlePeekWidgetToken)
		})
	})
}

func (h *Handler) handleListMethods(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	universityID, err := id.ParseUniversityID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	methods, err := h.svc.GetAvailableMethods(ctx, universityID)
	if err != nil {
		h.fail(ctx, w, "list methods", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, methodsResponse{UniversityID: universityID.String(), Methods: methods})
}

func (h *Handler) handleRecommend(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	universityID, err := id.ParseUniversityID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	var req recommendRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.WriteError(w, err)
		return
	}
	method, err := h.svc.DetermineBestMethod(ctx, universityID, service.Signals{
		Email:                 req.Email,
		HasRegistrationNumber: req.HasRegistrationNumber,
		HasPhoneNumber:        req.HasPhoneNumber,
	})
	if err != nil {
		h.fail(ctx, w, "recommend method", err)
		return
	}
	resp := recommendResponse{Method: method}
	if method == nil {
		resp.Message = "no verification method available"
	}
	httputil.WriteJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleAcademicCheck(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var req academicCheckRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.WriteError(w, err)
		return
	}
	check, err := h.svc.CheckAcademicEmail(ctx, req.Email)
	if err != nil {
		h.fail(ctx, w, "academic email check", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, academicCheckResponse{
		Email:    check.Email,
		Domain:   check.Domain,
		Academic: check.Academic,
	})
}

func (h *Handler) handleIssueMagicLink(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var req magicLinkRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.WriteError(w, err)
		return
	}
	universityID, err := id.ParseUniversityID(req.UniversityID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	studentID, err := id.ParseOptionalStudentID(req.StudentID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	sent, err := h.svc.IssueMagicLink(ctx, req.Email, universityID, studentID)
	if err != nil {
		h.fail(ctx, w, "issue magic link", err)
		return
	}
	httputil.WriteJSON(w, http.StatusAccepted, magicLinkResponse{Sent: true, ExpiresAt: sent.ExpiresAt})
}

func (h *Handler) handleConsumeMagicLink(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	raw, ok := decodeToken(w, r)
	if !ok {
		return
	}
	result, err := h.svc.ConsumeMagicLink(ctx, raw)
	if err != nil {
		h.fail(ctx, w, "consume magic link", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toVerificationResponse(result))
}

func (h *Handler) handleVerifyRegistration(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var req registrationRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.WriteError(w, err)
		return
	}
	universityID, err := id.ParseUniversityID(req.UniversityID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	studentID, err := id.ParseOptionalStudentID(req.StudentID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	result, err := h.svc.VerifyRegistrationNumber(ctx, service.RegistrationInput{
		UniversityID:       universityID,
		RegistrationNumber: req.RegistrationNumber,
		Name:               req.Name,
		Email:              req.Email,
		StudentID:          studentID,
	})
	if err != nil {
		h.fail(ctx, w, "verify registration number", err)
		return
	}
	resp := toVerificationResponse(&result.VerificationResult)
	resp.StudentData = result.StudentData
	httputil.WriteJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleRequestOTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var req otpRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.WriteError(w, err)
		return
	}
	var channel *models.Channel
	if req.Channel != "" {
		ch := models.Channel(req.Channel)
		channel = &ch
	}
	sent, err := h.svc.RequestOTP(ctx, req.Target, channel)
	if err != nil {
		h.fail(ctx, w, "request otp", err)
		return
	}
	httputil.WriteJSON(w, http.StatusAccepted, otpResponse{Sent: true, Channel: sent.Channel, ExpiresAt: sent.ExpiresAt})
}

func (h *Handler) handleConfirmOTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var req otpConfirmRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.WriteError(w, err)
		return
	}
	studentID, err := id.ParseOptionalStudentID(req.StudentID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	result, err := h.svc.VerifyOTP(ctx, req.Target, req.Code, studentID)
	if err != nil {
		h.fail(ctx, w, "confirm otp", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toVerificationResponse(result))
}

func (h *Handler) handleGetStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	studentID, err := id.ParseStudentID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	view, err := h.svc.GetVerificationStatus(ctx, studentID)
	if err != nil {
		h.fail(ctx, w, "get verification status", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, view)
}

func (h *Handler) handleGetHistory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	studentID, err := id.ParseStudentID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	records, err := h.svc.ListVerificationHistory(ctx, studentID)
	if err != nil {
		h.fail(ctx, w, "list verification history", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toHistoryResponse(studentID.String(), records))
}

func (h *Handler) handleIssueWidgetToken(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var req widgetIssueRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.WriteError(w, err)
		return
	}
	studentID, err := id.ParseStudentID(req.StudentID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	vendorID, err := id.ParseVendorID(req.VendorID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	productID, err := id.ParseOptionalProductID(req.ProductID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	issued, err := h.svc.IssueWidgetToken(ctx, studentID, vendorID, productID)
	if err != nil {
		h.fail(ctx, w, "issue widget token", err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, issued)
}

func (h *Handler) handleConsumeWidgetToken(w http.ResponseWriter, r *http.Request) {
	h.redeemWidgetToken(w, r, "consume widget token", h.svc.ConsumeWidgetToken)
}

func (h *Handler) handlePeekWidgetToken(w http.ResponseWriter, r *http.Request) {
	h.redeemWidgetToken(w, r, "peek widget token", h.svc.PeekWidgetToken)
}

type redeemFunc func(ctx context.Context, raw string, vendorID id.VendorID) (*service.WidgetRedemption, error)

func (h *Handler) redeemWidgetToken(w http.ResponseWriter, r *http.Request, op string, redeem redeemFunc) {
	ctx := r.Context()
	vendorID := requestcontext.VendorID(ctx)
	if vendorID.IsNil() {
		h.logger.ErrorContext(ctx, "vendor missing from context despite auth middleware",
			"request_id", request.GetRequestID(ctx),
		)
		httputil.WriteError(w, dErrors.New(dErrors.CodeInternal, "authentication context error"))
		return
	}
	raw, ok := decodeToken(w, r)
	if !ok {
		return
	}
	redemption, err := redeem(ctx, raw, vendorID)
	if err != nil {
		h.fail(ctx, w, op, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toRedemptionResponse(redemption))
}

func decodeToken(w http.ResponseWriter, r *http.Request) (string, bool) {
	var req tokenRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.WriteError(w, err)
		return "", false
	}
	if req.Token == "" {
		httputil.WriteError(w, dErrors.New(dErrors.CodeInvalidInput, "token is required"))
		return "", false
	}
	return req.Token, true
}

// fail logs server-side failures at error level and client failures at warn.
func (h *Handler) fail(ctx context.Context, w http.ResponseWriter, op string, err error) {
	level := slog.LevelWarn
	if httputil.StatusFor(dErrors.CodeOf(err)) >= http.StatusInternalServerError {
		level = slog.LevelError
	}
	h.logger.Log(ctx, level, op+" failed",
		"request_id", request.GetRequestID(ctx),
		"code", dErrors.CodeOf(err),
		"error", err.Error(),
	)
	httputil.WriteError(w, err)
}
