package audit

import (
	"context"
	"time"

	id "campuspass/pkg/domain"
	"campuspass/pkg/requestcontext"

	"github.com/mssola/useragent"
)

// EventCategory classifies audit events by their primary purpose.
// Stores and downstream consumers route on it.
type EventCategory string

const (
	// CategoryCompliance covers events that prove a student was verified and how.
	CategoryCompliance EventCategory = "compliance"

	// CategorySecurity covers rejected credentials and failed attempts.
	CategorySecurity EventCategory = "security"

	// CategoryOperations covers routine activity such as method recommendations.
	CategoryOperations EventCategory = "operations"
)

// Event is emitted from domain logic to capture key actions. Keep it
// transport-agnostic so stores and sinks can fan out.
type Event struct {
	Category     EventCategory
	Timestamp    time.Time
	StudentID    id.StudentID
	UniversityID id.UniversityID
	VendorID     id.VendorID
	Action       string
	Method       string
	Decision     string
	Reason       string
	RequestID    string
	ClientIP     string
	// Device is a "<browser> on <os>" summary parsed from the User-Agent.
	Device string
}

type AuditEvent string

const (
	EventMethodRecommended     AuditEvent = "verification_method_recommended"
	EventMagicLinkIssued       AuditEvent = "magic_link_issued"
	EventOTPRequested          AuditEvent = "otp_requested"
	EventVerificationCompleted AuditEvent = "verification_completed"
	EventVerificationFailed    AuditEvent = "verification_failed"
	EventWidgetTokenIssued     AuditEvent = "widget_token_issued"
	EventWidgetTokenConsumed   AuditEvent = "widget_token_consumed"
	EventWidgetTokenRejected   AuditEvent = "widget_token_rejected"
)

var eventCategories = map[AuditEvent]EventCategory{
	EventVerificationCompleted: CategoryCompliance,
	EventWidgetTokenConsumed:   CategoryCompliance,

	EventVerificationFailed:  CategorySecurity,
	EventWidgetTokenRejected: CategorySecurity,

	EventMethodRecommended: CategoryOperations,
	EventMagicLinkIssued:   CategoryOperations,
	EventOTPRequested:      CategoryOperations,
	EventWidgetTokenIssued: CategoryOperations,
}

// Category returns the EventCategory for this audit event.
// Unknown events default to CategoryOperations.
func (e AuditEvent) Category() EventCategory {
	if cat, ok := eventCategories[e]; ok {
		return cat
	}
	return CategoryOperations
}

// Decision values recorded on events.
const (
	DecisionGranted = "granted"
	DecisionDenied  = "denied"
)

// Store persists audit events.
type Store interface {
	Append(ctx context.Context, event Event) error
}

// Lister is implemented by stores that can read events back.
type Lister interface {
	ListByStudent(ctx context.Context, studentID id.StudentID) ([]Event, error)
}

// Emitter is the narrow interface services depend on.
type Emitter interface {
	Emit(ctx context.Context, event Event) error
}

// Enrich fills request correlation fields from ctx when they are unset.
func Enrich(ctx context.Context, event Event) Event {
	if event.Category == "" {
		event.Category = AuditEvent(event.Action).Category()
	}
	if event.RequestID == "" {
		event.RequestID = requestcontext.RequestID(ctx)
	}
	if event.ClientIP == "" {
		event.ClientIP = requestcontext.ClientIP(ctx)
	}
	if event.Device == "" {
		event.Device = DeviceSummary(requestcontext.UserAgent(ctx))
	}
	return event
}

// DeviceSummary renders a User-Agent as "<browser> on <os>".
func DeviceSummary(userAgent string) string {
	if userAgent == "" {
		return ""
	}
	ua := useragent.New(userAgent)
	browser, _ := ua.Browser()
	os := ua.OS()
	switch {
	case browser == "" && os == "":
		return ""
	case os == "":
		return browser
	case browser == "":
		return os
	}
	return browser + " on " + os
}
