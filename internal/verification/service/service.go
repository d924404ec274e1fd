// Package service is the verification orchestrator. It picks a tier for a
// student, runs that tier's credential routine and writes the resulting
// verification record.
package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	dirmodels "campuspass/internal/directory/models"
	"campuspass/internal/notify"
	unimodels "campuspass/internal/university/models"
	"campuspass/internal/verification/lookup"
	"campuspass/internal/verification/methods"
	"campuspass/internal/verification/metrics"
	"campuspass/internal/verification/models"
	"campuspass/internal/verification/token"
	id "campuspass/pkg/domain"
	dErrors "campuspass/pkg/domain-errors"
	audit "campuspass/pkg/platform/audit"
	"campuspass/pkg/platform/sentinel"
	"campuspass/pkg/platform/tx"
	"campuspass/pkg/requestcontext"
)

// DefaultRecordTTL is how long a verification stays valid.
const DefaultRecordTTL = 365 * 24 * time.Hour

type UniversityStore interface {
	FindByID(ctx context.Context, universityID id.UniversityID) (*unimodels.University, error)
	ListMethodConfigs(ctx context.Context, universityID id.UniversityID) ([]unimodels.MethodConfig, error)
}

type RecordStore interface {
	Create(ctx context.Context, r *models.Record) error
	LatestByStudent(ctx context.Context, studentID id.StudentID) (*models.Record, error)
	ListByStudent(ctx context.Context, studentID id.StudentID) ([]*models.Record, error)
}

// ChallengeStore holds OTP challenges. Verify must check and redeem atomically.
type ChallengeStore interface {
	Save(ctx context.Context, c *models.OTPChallenge) error
	Verify(ctx context.Context, target, code string, now time.Time) (*models.OTPChallenge, error)
}

type DirectoryStore interface {
	FindStudent(ctx context.Context, studentID id.StudentID) (*dirmodels.Student, error)
	FindStudentByEmail(ctx context.Context, email string) (*dirmodels.Student, error)
}

// TokenService issues and redeems magic-link and widget tokens.
type TokenService interface {
	IssueMagicLink(ctx context.Context, email string, universityID *id.UniversityID, studentID *id.StudentID) (*token.Issued, error)
	IssueWidgetToken(ctx context.Context, studentID id.StudentID, vendorID id.VendorID, productID *id.ProductID) (*token.Issued, error)
	Consume(ctx context.Context, raw string, exp models.Expectation) (*models.Token, error)
	Peek(ctx context.Context, raw string, exp models.Expectation) (*models.Token, error)
}

type RegistrationLookup interface {
	Lookup(ctx context.Context, req lookup.Request) lookup.Result
}

type EmailSender interface {
	SendEmail(ctx context.Context, to, subject, html string) (notify.SendResult, error)
}

type MessageSender interface {
	SendWhatsApp(ctx context.Context, to, body string) error
}

type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
}

// Deps are the collaborators every Service needs.
type Deps struct {
	Universities UniversityStore
	Records      RecordStore
	Challenges   ChallengeStore
	Directory    DirectoryStore
	Tokens       TokenService
	Lookup       RegistrationLookup
	Email        EmailSender
	WhatsApp     MessageSender
}

type Service struct {
	universities UniversityStore
	records      RecordStore
	challenges   ChallengeStore
	directory    DirectoryStore
	tokens       TokenService
	lookup       RegistrationLookup
	email        EmailSender
	whatsapp     MessageSender
	registry     *methods.Registry
	status       *StatusReader

	auditor     AuditPublisher
	tx          tx.Runner
	logger      *slog.Logger
	metrics     *metrics.Metrics
	frontendURL string
	recordTTL   time.Duration
	otpLength   int
	newRecordID func() id.RecordID
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func WithAuditPublisher(p AuditPublisher) Option {
	return func(s *Service) {
		s.auditor = p
	}
}

// WithTxRunner scopes credential redemption and record creation in one unit of work.
func WithTxRunner(r tx.Runner) Option {
	return func(s *Service) {
		s.tx = r
	}
}

// WithFrontendURL sets the base of magic-link URLs.
func WithFrontendURL(u string) Option {
	return func(s *Service) {
		s.frontendURL = u
	}
}

func WithRecordTTL(ttl time.Duration) Option {
	return func(s *Service) {
		if ttl > 0 {
			s.recordTTL = ttl
		}
	}
}

func WithOTPLength(n int) Option {
	return func(s *Service) {
		s.otpLength = n
	}
}

// New validates deps and applies options.
func New(deps Deps, opts ...Option) (*Service, error) {
	switch {
	case deps.Universities == nil:
		return nil, errors.New("universities store is required")
	case deps.Records == nil:
		return nil, errors.New("records store is required")
	case deps.Challenges == nil:
		return nil, errors.New("challenge store is required")
	case deps.Directory == nil:
		return nil, errors.New("directory store is required")
	case deps.Tokens == nil:
		return nil, errors.New("token service is required")
	case deps.Lookup == nil:
		return nil, errors.New("registration lookup is required")
	case deps.Email == nil:
		return nil, errors.New("email sender is required")
	case deps.WhatsApp == nil:
		return nil, errors.New("whatsapp sender is required")
	}

	s := &Service{
		universities: deps.Universities,
		records:      deps.Records,
		challenges:   deps.Challenges,
		directory:    deps.Directory,
		tokens:       deps.Tokens,
		lookup:       deps.Lookup,
		email:        deps.Email,
		whatsapp:     deps.WhatsApp,
		tx:           tx.NoopRunner{},
		logger:       slog.Default(),
		recordTTL:    DefaultRecordTTL,
		newRecordID:  func() id.RecordID { return id.RecordID(uuid.New()) },
	}
	for _, opt := range opts {
		opt(s)
	}
	s.registry = methods.NewRegistry(s.universities, s.logger)
	s.status = NewStatusReader(s.records)
	return s, nil
}

// loadUniversity reads the university and its ordered methods concurrently.
func (s *Service) loadUniversity(ctx context.Context, universityID id.UniversityID) (*unimodels.University, []models.MethodAvailability, error) {
	var (
		university *unimodels.University
		available  []models.MethodAvailability
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		u, err := s.universities.FindByID(gctx, universityID)
		if err != nil {
			return err
		}
		university = u
		return nil
	})
	g.Go(func() error {
		list, err := s.registry.GetAvailableMethods(gctx, universityID)
		if err != nil {
			return err
		}
		available = list
		return nil
	})
	if err := g.Wait(); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, nil, dErrors.New(dErrors.CodeNotFound, "university not found")
		}
		return nil, nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load university")
	}
	if !university.Active {
		return nil, nil, dErrors.New(dErrors.CodeForbidden, "university is not active")
	}
	return university, available, nil
}

// GetAvailableMethods returns the university's tiers in fallback order.
func (s *Service) GetAvailableMethods(ctx context.Context, universityID id.UniversityID) ([]models.MethodAvailability, error) {
	_, available, err := s.loadUniversity(ctx, universityID)
	if err != nil {
		return nil, err
	}
	return available, nil
}

// GetVerificationStatus derives the student's status from their latest record.
// A student the directory does not know is not_found rather than unverified.
func (s *Service) GetVerificationStatus(ctx context.Context, studentID id.StudentID) (models.StatusView, error) {
	if _, err := s.findStudent(ctx, studentID); err != nil {
		return models.StatusView{}, err
	}
	return s.status.GetVerificationStatus(ctx, studentID)
}

// ListVerificationHistory returns every record for the student, newest first.
func (s *Service) ListVerificationHistory(ctx context.Context, studentID id.StudentID) ([]*models.Record, error) {
	if _, err := s.findStudent(ctx, studentID); err != nil {
		return nil, err
	}
	records, err := s.records.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load verification history")
	}
	return records, nil
}

// completeVerification writes a verified record for studentID when one is known.
func (s *Service) completeVerification(ctx context.Context, studentID *id.StudentID, method models.MethodKind) (*models.Record, error) {
	if studentID == nil || studentID.IsNil() {
		return nil, nil
	}
	now := requestcontext.Now(ctx)
	record := models.NewVerifiedRecord(s.newRecordID(), *studentID, method, now, s.recordTTL)
	if err := s.records.Create(ctx, record); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to save verification record")
	}
	return record, nil
}

// journeyStart is the state a student leaves when a new attempt begins.
func (s *Service) journeyStart(ctx context.Context, studentID *id.StudentID) models.JourneyState {
	if studentID == nil || studentID.IsNil() {
		return models.JourneyUnverified
	}
	view, err := s.status.GetVerificationStatus(ctx, *studentID)
	if err != nil {
		return models.JourneyUnverified
	}
	return models.JourneyFromStatus(view.Status)
}

// transition logs and counts a journey step. Re-verifying an already verified
// student has no edge in the journey and is only logged at debug.
func (s *Service) transition(ctx context.Context, from, to models.JourneyState, method models.MethodKind) {
	if !from.CanTransitionTo(to) {
		s.logger.DebugContext(ctx, "journey transition not applicable",
			"from", from,
			"to", to,
			"method", method,
		)
		return
	}
	s.logger.InfoContext(ctx, "verification journey transition",
		"from", from,
		"to", to,
		"method", method,
		"request_id", requestcontext.RequestID(ctx),
	)
	if s.metrics != nil {
		s.metrics.IncrementTransition(string(from), string(to))
	}
}

func (s *Service) emit(ctx context.Context, event audit.Event) {
	if s.auditor == nil {
		return
	}
	if err := s.auditor.Emit(ctx, event); err != nil {
		s.logger.WarnContext(ctx, "failed to emit audit event",
			"action", event.Action,
			"error", err,
		)
	}
}

func (s *Service) countVerification(method models.MethodKind, err error) {
	if s.metrics == nil {
		return
	}
	outcome := "verified"
	if err != nil {
		outcome = string(dErrors.CodeOf(err))
	}
	s.metrics.IncrementVerification(string(method), outcome)
}

func studentIDOrNil(sid *id.StudentID) id.StudentID {
	if sid == nil {
		return id.StudentID{}
	}
	return *sid
}
