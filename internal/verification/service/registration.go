package service

import (
	"context"
	"regexp"
	"strings"
	"time"

	"campuspass/internal/verification/lookup"
	"campuspass/internal/verification/models"
	id "campuspass/pkg/domain"
	dErrors "campuspass/pkg/domain-errors"
)

var registrationNumberPattern = regexp.MustCompile(`^[A-Za-z0-9/\-._ ]{1,64}$`)

// RegistrationInput is what a student submits for the registration tier.
type RegistrationInput struct {
	UniversityID       id.UniversityID
	RegistrationNumber string
	Name               string
	Email              string
	StudentID          *id.StudentID
}

// RegistrationResult adds the registry's view of the student.
type RegistrationResult struct {
	VerificationResult
	StudentData *lookup.StudentData
}

// VerifyRegistrationNumber asks the university's registry whether the number
// belongs to an enrolled student. Only an explicit verified answer counts, and
// a named student must be the one the registry returns for the number.
func (s *Service) VerifyRegistrationNumber(ctx context.Context, in RegistrationInput) (*RegistrationResult, error) {
	number := strings.TrimSpace(in.RegistrationNumber)
	if !registrationNumberPattern.MatchString(number) {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "registration number is malformed")
	}
	_, available, err := s.loadUniversity(ctx, in.UniversityID)
	if err != nil {
		return nil, err
	}
	if !methodAvailable(available, models.MethodRegistration) {
		return nil, dErrors.New(dErrors.CodeForbidden, "registration verification is disabled for this university")
	}
	uid := in.UniversityID
	email := strings.ToLower(strings.TrimSpace(in.Email))
	var studentID *id.StudentID
	if in.StudentID != nil && !in.StudentID.IsNil() {
		student, err := s.findStudent(ctx, *in.StudentID)
		if err != nil {
			return nil, err
		}
		if err := bindCredential(student, credential{universityID: &uid, email: email}); err != nil {
			return nil, err
		}
		studentID = &student.ID
		email = strings.ToLower(student.Email)
	}

	from := s.journeyStart(ctx, studentID)
	s.transition(ctx, from, models.JourneyPending, models.MethodRegistration)

	start := time.Now()
	res := s.lookup.Lookup(ctx, lookup.Request{
		UniversityID:       in.UniversityID,
		RegistrationNumber: number,
		StudentName:        strings.TrimSpace(in.Name),
		StudentEmail:       email,
	})
	if s.metrics != nil {
		s.metrics.ObserveLookup(start)
	}
	if res.Err != nil || !res.Verified {
		err := lookupFailure(res)
		s.logLookupFailure(ctx, in.UniversityID, res.Err)
		s.countVerification(models.MethodRegistration, err)
		s.verificationFailed(ctx, studentID, models.MethodRegistration, err)
		return nil, err
	}

	// The registry's email for the number is the proven identity.
	registryEmail := ""
	if res.StudentData != nil {
		registryEmail = strings.ToLower(strings.TrimSpace(res.StudentData.Email))
	}
	if studentID != nil && registryEmail == "" {
		err := dErrors.New(dErrors.CodeUnauthorized, "registry did not confirm the student's email")
		s.countVerification(models.MethodRegistration, err)
		s.verificationFailed(ctx, studentID, models.MethodRegistration, err)
		return nil, err
	}

	var record *models.Record
	err = s.tx.RunInTx(ctx, func(ctx context.Context) error {
		owner, err := s.ownerOf(ctx, studentID, credential{universityID: &uid, email: registryEmail})
		if err != nil {
			return err
		}
		studentID = owner
		r, err := s.completeVerification(ctx, owner, models.MethodRegistration)
		record = r
		return err
	})
	s.countVerification(models.MethodRegistration, err)
	if err != nil {
		s.verificationFailed(ctx, studentID, models.MethodRegistration, err)
		return nil, err
	}

	result := &RegistrationResult{
		VerificationResult: VerificationResult{
			Method:    models.MethodRegistration,
			StudentID: studentID,
			Email:     registryEmail,
			Record:    record,
		},
		StudentData: res.StudentData,
	}
	s.verificationSucceeded(ctx, &result.VerificationResult)
	return result, nil
}

func lookupFailure(res lookup.Result) error {
	if res.Err != nil {
		return res.Err.ToDomain()
	}
	return dErrors.New(dErrors.CodeValidation, "registration number could not be verified")
}

func (s *Service) logLookupFailure(ctx context.Context, universityID id.UniversityID, lerr *lookup.Error) {
	if lerr == nil {
		return
	}
	if lerr.IsOperatorActionable() {
		s.logger.ErrorContext(ctx, "registration lookup needs operator attention",
			"university_id", universityID,
			"category", lerr.Category,
			"operator_action", true,
			"error", lerr.Error(),
		)
		return
	}
	s.logger.WarnContext(ctx, "registration lookup failed",
		"university_id", universityID,
		"category", lerr.Category,
		"status_code", lerr.StatusCode,
	)
}

func methodAvailable(available []models.MethodAvailability, method models.MethodKind) bool {
	for _, entry := range available {
		if entry.Method == method {
			return entry.IsAvailable
		}
	}
	return false
}
