package handler

import (
	"time"

	"campuspass/internal/verification/lookup"
	"campuspass/internal/verification/models"
	"campuspass/internal/verification/service"
)

type recommendRequest struct {
	Email                 string `json:"email"`
	HasRegistrationNumber bool   `json:"has_registration_number"`
	HasPhoneNumber        bool   `json:"has_phone_number"`
}

type recommendResponse struct {
	Method  *models.MethodKind `json:"method"`
	Message string             `json:"message,omitempty"`
}

type methodsResponse struct {
	UniversityID string                     `json:"university_id"`
	Methods      []models.MethodAvailability `json:"methods"`
}

type academicCheckRequest struct {
	Email string `json:"email"`
}

type academicCheckResponse struct {
	Email    string `json:"email"`
	Domain   string `json:"domain"`
	Academic bool   `json:"academic"`
}

type magicLinkRequest struct {
	Email        string `json:"email"`
	UniversityID string `json:"university_id"`
	StudentID    string `json:"student_id,omitempty"`
}

type magicLinkResponse struct {
	Sent      bool      `json:"sent"`
	ExpiresAt time.Time `json:"expires_at"`
}

type tokenRequest struct {
	Token string `json:"token"`
}

type registrationRequest struct {
	UniversityID       string `json:"university_id"`
	RegistrationNumber string `json:"registration_number"`
	Name               string `json:"name,omitempty"`
	Email              string `json:"email,omitempty"`
	StudentID          string `json:"student_id,omitempty"`
}

type otpRequest struct {
	Target  string `json:"target"`
	Channel string `json:"channel,omitempty"`
}

type otpResponse struct {
	Sent      bool           `json:"sent"`
	Channel   models.Channel `json:"channel"`
	ExpiresAt time.Time      `json:"expires_at"`
}

type otpConfirmRequest struct {
	Target    string `json:"target"`
	Code      string `json:"code"`
	StudentID string `json:"student_id,omitempty"`
}

type widgetIssueRequest struct {
	StudentID string `json:"student_id"`
	VendorID  string `json:"vendor_id"`
	ProductID string `json:"product_id,omitempty"`
}

type verificationResponse struct {
	Verified    bool                `json:"verified"`
	Method      models.MethodKind   `json:"method"`
	StudentID   string              `json:"student_id,omitempty"`
	Email       string              `json:"email,omitempty"`
	VerifiedAt  *time.Time          `json:"verified_at,omitempty"`
	ExpiresAt   *time.Time          `json:"expires_at,omitempty"`
	StudentData *lookup.StudentData `json:"student_data,omitempty"`
}

type widgetRedemptionResponse struct {
	StudentID string            `json:"student_id"`
	VendorID  string            `json:"vendor_id"`
	ProductID string            `json:"product_id,omitempty"`
	Status    models.StatusView `json:"status"`
}

type recordResponse struct {
	ID         string              `json:"id"`
	Method     models.MethodKind   `json:"method"`
	Status     models.RecordStatus `json:"status"`
	VerifiedAt time.Time           `json:"verified_at"`
	ExpiresAt  *time.Time          `json:"expires_at,omitempty"`
}

type historyResponse struct {
	StudentID string           `json:"student_id"`
	Records   []recordResponse `json:"records"`
}

func toVerificationResponse(r *service.VerificationResult) verificationResponse {
	resp := verificationResponse{
		Verified: true,
		Method:   r.Method,
		Email:    r.Email,
	}
	if r.StudentID != nil {
		resp.StudentID = r.StudentID.String()
	}
	if r.Record != nil {
		verifiedAt := r.Record.VerifiedAt
		resp.VerifiedAt = &verifiedAt
		resp.ExpiresAt = r.Record.ExpiresAt
	}
	return resp
}

func toRedemptionResponse(r *service.WidgetRedemption) widgetRedemptionResponse {
	resp := widgetRedemptionResponse{
		StudentID: r.StudentID.String(),
		VendorID:  r.VendorID.String(),
		Status:    r.Status,
	}
	if r.ProductID != nil {
		resp.ProductID = r.ProductID.String()
	}
	return resp
}

func toHistoryResponse(studentID string, records []*models.Record) historyResponse {
	out := historyResponse{StudentID: studentID, Records: make([]recordResponse, 0, len(records))}
	for _, r := range records {
		out.Records = append(out.Records, recordResponse{
			ID:         r.ID.String(),
			Method:     r.Method,
			Status:     r.Status,
			VerifiedAt: r.VerifiedAt,
			ExpiresAt:  r.ExpiresAt,
		})
	}
	return out
}
