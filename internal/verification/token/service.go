package token

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	dirmodels "campuspass/internal/directory/models"
	"campuspass/internal/verification/models"
	id "campuspass/pkg/domain"
	dErrors "campuspass/pkg/domain-errors"
	"campuspass/pkg/platform/sentinel"
	"campuspass/pkg/requestcontext"
)

const (
	DefaultMagicLinkTTL = 15 * time.Minute
	DefaultWidgetTTL    = 30 * time.Minute
)

// Store persists tokens by hash. Consume must validate and mark used atomically.
type Store interface {
	Create(ctx context.Context, t *models.Token) error
	Consume(ctx context.Context, hash string, exp models.Expectation, now time.Time) (*models.Token, error)
	Peek(ctx context.Context, hash string, exp models.Expectation, now time.Time) (*models.Token, error)
}

// Directory resolves the parties a widget token is issued between.
type Directory interface {
	FindStudent(ctx context.Context, studentID id.StudentID) (*dirmodels.Student, error)
	FindVendor(ctx context.Context, vendorID id.VendorID) (*dirmodels.Vendor, error)
	FindProduct(ctx context.Context, productID id.ProductID) (*dirmodels.Product, error)
}

// StatusReader reports a student's current verification status.
type StatusReader interface {
	GetVerificationStatus(ctx context.Context, studentID id.StudentID) (models.StatusView, error)
}

// Issued is returned to the caller exactly once; the raw token is not recoverable afterwards.
type Issued struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

type Service struct {
	store        Store
	directory    Directory
	status       StatusReader
	logger       *slog.Logger
	tracer       trace.Tracer
	magicLinkTTL time.Duration
	widgetTTL    time.Duration
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithMagicLinkTTL(ttl time.Duration) Option {
	return func(s *Service) {
		if ttl > 0 {
			s.magicLinkTTL = ttl
		}
	}
}

func WithWidgetTTL(ttl time.Duration) Option {
	return func(s *Service) {
		if ttl > 0 {
			s.widgetTTL = ttl
		}
	}
}

func New(store Store, directory Directory, status StatusReader, opts ...Option) *Service {
	s := &Service{
		store:        store,
		directory:    directory,
		status:       status,
		logger:       slog.Default(),
		tracer:       otel.Tracer("campuspass/token"),
		magicLinkTTL: DefaultMagicLinkTTL,
		widgetTTL:    DefaultWidgetTTL,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// IssueMagicLink persists a pending email verification token.
func (s *Service) IssueMagicLink(ctx context.Context, email string, universityID *id.UniversityID, studentID *id.StudentID) (*Issued, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "email is required")
	}
	now := requestcontext.Now(ctx)
	t := &models.Token{
		Kind:      models.TokenKindMagicLink,
		MagicLink: &models.MagicLinkPayload{Email: email, UniversityID: universityID, StudentID: studentID},
		IssuedAt:  now,
		ExpiresAt: now.Add(s.magicLinkTTL),
	}
	return s.issue(ctx, t)
}

// IssueWidgetToken checks that the student is active and verified, and that
// the vendor may present the product, before persisting a widget token.
func (s *Service) IssueWidgetToken(ctx context.Context, studentID id.StudentID, vendorID id.VendorID, productID *id.ProductID) (*Issued, error) {
	student, err := s.directory.FindStudent(ctx, studentID)
	if err != nil {
		return nil, translateLookup(err, "student not found", "failed to load student")
	}
	if !student.Active {
		return nil, dErrors.New(dErrors.CodeForbidden, "student is not active")
	}

	status, err := s.status.GetVerificationStatus(ctx, studentID)
	if err != nil {
		return nil, err
	}
	if !status.IsVerified {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "student is not verified")
	}

	vendor, err := s.directory.FindVendor(ctx, vendorID)
	if err != nil {
		return nil, translateLookup(err, "vendor not found", "failed to load vendor")
	}
	if !vendor.Active {
		return nil, dErrors.New(dErrors.CodeForbidden, "vendor is not active")
	}

	if productID != nil {
		product, err := s.directory.FindProduct(ctx, *productID)
		if err != nil {
			return nil, translateLookup(err, "product not found", "failed to load product")
		}
		if !product.BelongsTo(vendorID) {
			return nil, dErrors.New(dErrors.CodeForbidden, "product does not belong to vendor")
		}
	}

	now := requestcontext.Now(ctx)
	t := &models.Token{
		Kind:      models.TokenKindWidget,
		Widget:    &models.WidgetPayload{StudentID: studentID, VendorID: vendorID, ProductID: productID},
		IssuedAt:  now,
		ExpiresAt: now.Add(s.widgetTTL),
	}
	return s.issue(ctx, t)
}

func (s *Service) issue(ctx context.Context, t *models.Token) (*Issued, error) {
	raw, err := Generate(t.Kind)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to generate token")
	}
	t.Hash = Hash(raw)
	if err := s.store.Create(ctx, t); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to persist token")
	}
	s.logger.InfoContext(ctx, "token issued",
		"kind", t.Kind,
		"expires_at", t.ExpiresAt,
		"request_id", requestcontext.RequestID(ctx),
	)
	return &Issued{Token: raw, ExpiresAt: t.ExpiresAt}, nil
}

// Consume redeems a token. Exactly one of any number of concurrent callers
// succeeds for a given token.
func (s *Service) Consume(ctx context.Context, raw string, exp models.Expectation) (*models.Token, error) {
	return s.redeem(ctx, "token.consume", raw, exp, s.store.Consume)
}

// Peek answers whether Consume would currently succeed, without consuming.
func (s *Service) Peek(ctx context.Context, raw string, exp models.Expectation) (*models.Token, error) {
	return s.redeem(ctx, "token.peek", raw, exp, s.store.Peek)
}

type storeOp func(ctx context.Context, hash string, exp models.Expectation, now time.Time) (*models.Token, error)

func (s *Service) redeem(ctx context.Context, spanName, raw string, exp models.Expectation, op storeOp) (*models.Token, error) {
	ctx, span := s.tracer.Start(ctx, spanName, trace.WithAttributes(
		attribute.String("token.kind", string(exp.Kind)),
	))
	defer span.End()

	raw = strings.TrimSpace(raw)
	if !wellFormed(raw) {
		span.SetStatus(codes.Error, "malformed")
		return nil, dErrors.New(dErrors.CodeNotFound, "token not found")
	}

	t, err := op(ctx, Hash(raw), exp, requestcontext.Now(ctx))
	if err != nil {
		translated := translateRedeem(err)
		span.SetStatus(codes.Error, string(dErrors.CodeOf(translated)))
		if dErrors.CodeOf(translated) == dErrors.CodeInternal {
			s.logger.ErrorContext(ctx, "token store failure", "error", err)
		}
		return nil, translated
	}
	return t, nil
}

func translateRedeem(err error) error {
	switch {
	case errors.Is(err, sentinel.ErrNotFound):
		return dErrors.New(dErrors.CodeNotFound, "token not found")
	case errors.Is(err, sentinel.ErrExpired):
		return dErrors.New(dErrors.CodeExpired, "token has expired")
	case errors.Is(err, sentinel.ErrAlreadyUsed):
		return dErrors.New(dErrors.CodeAlreadyUsed, "token has already been used")
	case errors.Is(err, sentinel.ErrOwnerMismatch):
		return dErrors.New(dErrors.CodeUnauthorized, "token was issued to a different vendor")
	default:
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to redeem token")
	}
}

func translateLookup(err error, notFoundMsg, internalMsg string) error {
	if errors.Is(err, sentinel.ErrNotFound) {
		return dErrors.New(dErrors.CodeNotFound, notFoundMsg)
	}
	return dErrors.Wrap(err, dErrors.CodeInternal, internalMsg)
}
