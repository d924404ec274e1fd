package service

import (
	"context"

	"campuspass/internal/verification/models"
	"campuspass/internal/verification/token"
	id "campuspass/pkg/domain"
	dErrors "campuspass/pkg/domain-errors"
	audit "campuspass/pkg/platform/audit"
)

// WidgetRedemption is what a vendor learns from a widget token.
type WidgetRedemption struct {
	StudentID id.StudentID
	VendorID  id.VendorID
	ProductID *id.ProductID
	Status    models.StatusView
}

// IssueWidgetToken hands a verified student a short-lived proof for one vendor.
func (s *Service) IssueWidgetToken(ctx context.Context, studentID id.StudentID, vendorID id.VendorID, productID *id.ProductID) (*token.Issued, error) {
	issued, err := s.tokens.IssueWidgetToken(ctx, studentID, vendorID, productID)
	if err != nil {
		return nil, err
	}
	if s.metrics != nil {
		s.metrics.IncrementTokenIssued(string(models.TokenKindWidget))
	}
	s.emit(ctx, audit.Event{
		StudentID: studentID,
		VendorID:  vendorID,
		Action:    string(audit.EventWidgetTokenIssued),
	})
	return issued, nil
}

// ConsumeWidgetToken redeems a widget token for the presenting vendor and
// returns the student's status as of now.
func (s *Service) ConsumeWidgetToken(ctx context.Context, raw string, vendorID id.VendorID) (*WidgetRedemption, error) {
	t, err := s.tokens.Consume(ctx, raw, models.Expectation{Kind: models.TokenKindWidget, VendorID: vendorID})
	s.countRedemption(err)
	if err != nil {
		s.widgetRejected(ctx, vendorID, err)
		return nil, err
	}
	redemption, err := s.redemption(ctx, t)
	if err != nil {
		return nil, err
	}
	s.emit(ctx, audit.Event{
		StudentID: redemption.StudentID,
		VendorID:  vendorID,
		Action:    string(audit.EventWidgetTokenConsumed),
		Decision:  decisionFor(redemption.Status),
	})
	return redemption, nil
}

// PeekWidgetToken validates a widget token without consuming it.
func (s *Service) PeekWidgetToken(ctx context.Context, raw string, vendorID id.VendorID) (*WidgetRedemption, error) {
	t, err := s.tokens.Peek(ctx, raw, models.Expectation{Kind: models.TokenKindWidget, VendorID: vendorID})
	if err != nil {
		return nil, err
	}
	return s.redemption(ctx, t)
}

func (s *Service) redemption(ctx context.Context, t *models.Token) (*WidgetRedemption, error) {
	if t.Widget == nil {
		return nil, dErrors.New(dErrors.CodeInternal, "widget token has no payload")
	}
	status, err := s.status.GetVerificationStatus(ctx, t.Widget.StudentID)
	if err != nil {
		return nil, err
	}
	return &WidgetRedemption{
		StudentID: t.Widget.StudentID,
		VendorID:  t.Widget.VendorID,
		ProductID: t.Widget.ProductID,
		Status:    status,
	}, nil
}

func (s *Service) widgetRejected(ctx context.Context, vendorID id.VendorID, err error) {
	s.logger.WarnContext(ctx, "widget token rejected",
		"vendor_id", vendorID,
		"code", dErrors.CodeOf(err),
	)
	s.emit(ctx, audit.Event{
		VendorID: vendorID,
		Action:   string(audit.EventWidgetTokenRejected),
		Decision: audit.DecisionDenied,
		Reason:   string(dErrors.CodeOf(err)),
	})
}

func (s *Service) countRedemption(err error) {
	if s.metrics == nil {
		return
	}
	outcome := "consumed"
	if err != nil {
		outcome = string(dErrors.CodeOf(err))
	}
	s.metrics.IncrementTokenRedemption(string(models.TokenKindWidget), outcome)
}

func decisionFor(status models.StatusView) string {
	if status.IsVerified {
		return audit.DecisionGranted
	}
	return audit.DecisionDenied
}
