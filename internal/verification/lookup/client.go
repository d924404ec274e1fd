// Package lookup verifies registration numbers against a university's own API.
//
// The client makes exactly one attempt per call. Registries may count attempts,
// so retry policy belongs to the caller.
package lookup

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	unimodels "campuspass/internal/university/models"
	"campuspass/internal/verification/methods"
	"campuspass/internal/verification/models"
	id "campuspass/pkg/domain"
	"campuspass/pkg/platform/circuit"
	"campuspass/pkg/platform/sentinel"
)

// DefaultTimeout bounds each upstream call.
const DefaultTimeout = 10 * time.Second

const maxResponseBytes = 1 << 20

// StudentData is what a registry returns about a verified student.
type StudentData struct {
	Name               string `json:"name,omitempty"`
	Email              string `json:"email,omitempty"`
	RegistrationNumber string `json:"registrationNumber,omitempty"`
	Department         string `json:"department,omitempty"`
	Level              string `json:"level,omitempty"`
}

// Request identifies the student to look up.
type Request struct {
	UniversityID       id.UniversityID
	RegistrationNumber string
	StudentName        string
	StudentEmail       string
}

// Result is always returned; Verified is false whenever Err is set.
type Result struct {
	Verified    bool
	StudentData *StudentData
	Err         *Error
}

// ConfigSource resolves the university and its method rows.
type ConfigSource interface {
	FindByID(ctx context.Context, universityID id.UniversityID) (*unimodels.University, error)
	ListMethodConfigs(ctx context.Context, universityID id.UniversityID) ([]unimodels.MethodConfig, error)
}

// Client calls university registration APIs.
type Client struct {
	source     ConfigSource
	httpClient *http.Client
	timeout    time.Duration
	logger     *slog.Logger
	tracer     trace.Tracer

	breakerOpts []circuit.Option
	mu          sync.Mutex
	breakers    map[id.UniversityID]*circuit.Breaker
}

type Option func(*Client)

func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) {
		if c != nil {
			cl.httpClient = c
		}
	}
}

func WithTimeout(d time.Duration) Option {
	return func(cl *Client) {
		if d > 0 {
			cl.timeout = d
		}
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(cl *Client) {
		if logger != nil {
			cl.logger = logger
		}
	}
}

// WithBreakerOptions tunes the per-university circuit breakers.
func WithBreakerOptions(opts ...circuit.Option) Option {
	return func(cl *Client) {
		cl.breakerOpts = append(cl.breakerOpts, opts...)
	}
}

func New(source ConfigSource, opts ...Option) *Client {
	c := &Client{
		source:     source,
		httpClient: &http.Client{},
		timeout:    DefaultTimeout,
		logger:     slog.Default(),
		tracer:     otel.Tracer("campuspass/lookup"),
		breakers:   make(map[id.UniversityID]*circuit.Breaker),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Lookup verifies a registration number. It never returns a raw transport error.
func (c *Client) Lookup(ctx context.Context, req Request) Result {
	ctx, span := c.tracer.Start(ctx, "lookup.registration", trace.WithAttributes(
		attribute.String("university_id", req.UniversityID.String()),
	))
	defer span.End()

	res := c.lookup(ctx, req)
	span.SetAttributes(attribute.Bool("verified", res.Verified))
	if res.Err != nil {
		span.SetAttributes(attribute.String("lookup.category", string(res.Err.Category)))
		span.SetStatus(codes.Error, string(res.Err.Category))
	}
	return res
}

func (c *Client) lookup(ctx context.Context, req Request) Result {
	endpoint, cfg, err := c.resolve(ctx, req.UniversityID)
	if err != nil {
		return failed(err)
	}

	breaker := c.breakerFor(req.UniversityID)
	if !breaker.Allow() {
		return failed(newError(CategoryUnavailable, "University lookup is temporarily unavailable", nil))
	}

	res := c.call(ctx, endpoint, cfg, req)
	if countsAsFailure(res.Err) {
		if _, change := breaker.RecordFailure(); change.Opened {
			c.logger.WarnContext(ctx, "registration lookup circuit opened",
				"university_id", req.UniversityID.String(),
			)
		}
	} else {
		breaker.RecordSuccess()
	}
	return res
}

// resolve prefers the registration method endpoint over the university's general URL.
func (c *Client) resolve(ctx context.Context, universityID id.UniversityID) (string, unimodels.LookupConfig, *Error) {
	university, err := c.source.FindByID(ctx, universityID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return "", unimodels.LookupConfig{}, newError(CategoryNotConfigured, "University is not configured for registration lookup", nil)
		}
		return "", unimodels.LookupConfig{}, newError(CategoryUnavailable, "University configuration could not be read", err)
	}
	configs, err := c.source.ListMethodConfigs(ctx, universityID)
	if err != nil {
		return "", unimodels.LookupConfig{}, newError(CategoryUnavailable, "University configuration could not be read", err)
	}
	endpoint := methods.EndpointFor(configs, models.MethodRegistration)
	if endpoint == "" {
		endpoint = university.DatabaseURL
	}
	if endpoint == "" {
		return "", unimodels.LookupConfig{}, newError(CategoryNotConfigured, "University has no registration lookup endpoint", nil)
	}
	return endpoint, university.Lookup, nil
}

type lookupPayload struct {
	RegistrationNumber string `json:"registrationNumber"`
	StudentName        string `json:"studentName,omitempty"`
	StudentEmail       string `json:"studentEmail,omitempty"`
}

func (c *Client) call(ctx context.Context, endpoint string, cfg unimodels.LookupConfig, req Request) Result {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	body, err := json.Marshal(lookupPayload{
		RegistrationNumber: req.RegistrationNumber,
		StudentName:        req.StudentName,
		StudentEmail:       req.StudentEmail,
	})
	if err != nil {
		return failed(newError(CategoryLookupFailed, "Failed to encode lookup request", err))
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return failed(newError(CategoryNotConfigured, "University lookup endpoint is invalid", nil))
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	if cfg.APIKey != "" {
		httpReq.Header.Set(cfg.Header(), cfg.APIKey)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return failed(classifyTransportError(ctx, err))
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return failed(classifyTransportError(ctx, err))
	}

	return interpret(resp.StatusCode, respBody)
}

// interpret maps an upstream status and body onto a Result.
func interpret(status int, body []byte) Result {
	switch {
	case status == http.StatusNotFound:
		return failed(&Error{Category: CategoryStudentNotFound, Message: "Student not found with the provided registration number", StatusCode: status})
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return failed(&Error{Category: CategoryAuthenticationFailed, Message: "University API authentication failed", StatusCode: status})
	case status < 200 || status >= 300:
		msg := upstreamMessage(body)
		if msg == "" {
			msg = fmt.Sprintf("University lookup failed with status %d", status)
		}
		return failed(&Error{Category: CategoryLookupFailed, Message: msg, StatusCode: status})
	}

	d := decodeResponse(body)
	switch d.shape {
	case shapeExplicit:
		if !d.verified {
			msg := d.message
			if msg == "" {
				msg = "Registration number could not be verified"
			}
			return failed(&Error{Category: CategoryNotVerified, Message: msg, StatusCode: status})
		}
		return Result{Verified: true, StudentData: d.studentData}
	case shapeImplicit:
		return Result{Verified: true, StudentData: d.studentData}
	default:
		return failed(&Error{Category: CategoryInvalidResponse, Message: "University API returned an unrecognized response", StatusCode: status})
	}
}

// classifyTransportError folds the client deadline and caller cancellation into Timeout.
func classifyTransportError(ctx context.Context, err error) *Error {
	if ctx.Err() != nil || errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return newError(CategoryTimeout, "University lookup timed out", nil)
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return newError(CategoryTimeout, "University lookup timed out", nil)
	}
	return newError(CategoryUnavailable, "University lookup service is unavailable", err)
}

// countsAsFailure is true for outcomes that indicate an unhealthy registry.
func countsAsFailure(err *Error) bool {
	if err == nil {
		return false
	}
	switch err.Category {
	case CategoryTimeout, CategoryUnavailable:
		return true
	case CategoryLookupFailed:
		return err.StatusCode >= 500
	default:
		return false
	}
}

func (c *Client) breakerFor(universityID id.UniversityID) *circuit.Breaker {
	c.mu.Lock()
	defer c.mu.Unlock()
	b, ok := c.breakers[universityID]
	if !ok {
		b = circuit.New("lookup:"+universityID.String(), c.breakerOpts...)
		c.breakers[universityID] = b
	}
	return b
}

func failed(err *Error) Result {
	return Result{Verified: false, Err: err}
}
