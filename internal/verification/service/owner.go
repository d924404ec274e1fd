package service

import (
	"context"
	"errors"
	"strings"

	dirmodels "campuspass/internal/directory/models"
	id "campuspass/pkg/domain"
	dErrors "campuspass/pkg/domain-errors"
	"campuspass/pkg/platform/sentinel"
)

// credential is what a completed verification proved about its holder.
// Empty fields were not part of the proof.
type credential struct {
	universityID *id.UniversityID
	email        string
	phone        string
}

var errCredentialMismatch = dErrors.New(dErrors.CodeUnauthorized, "credential does not belong to student")

func (s *Service) findStudent(ctx context.Context, studentID id.StudentID) (*dirmodels.Student, error) {
	student, err := s.directory.FindStudent(ctx, studentID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "student not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load student")
	}
	return student, nil
}

// ownerOf returns the student a verified credential belongs to. An explicit
// student must match every proven field or the call is unauthorized. Without
// one, the owner is looked up by the proven email; no match means no owner.
func (s *Service) ownerOf(ctx context.Context, explicit *id.StudentID, cred credential) (*id.StudentID, error) {
	if explicit != nil && !explicit.IsNil() {
		student, err := s.findStudent(ctx, *explicit)
		if err != nil {
			return nil, err
		}
		if err := bindCredential(student, cred); err != nil {
			return nil, err
		}
		return &student.ID, nil
	}

	if cred.email == "" {
		return nil, nil
	}
	student, err := s.directory.FindStudentByEmail(ctx, cred.email)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, nil
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to look up student")
	}
	if cred.universityID != nil && student.UniversityID != *cred.universityID {
		return nil, nil
	}
	return &student.ID, nil
}

// bindCredential checks every proven field against the student's directory entry.
func bindCredential(student *dirmodels.Student, cred credential) error {
	if cred.universityID != nil && student.UniversityID != *cred.universityID {
		return errCredentialMismatch
	}
	if cred.email != "" && !sameEmail(student.Email, cred.email) {
		return errCredentialMismatch
	}
	if cred.phone != "" && !samePhone(student.Phone, cred.phone) {
		return errCredentialMismatch
	}
	return nil
}

func sameEmail(a, b string) bool {
	a = strings.ToLower(strings.TrimSpace(a))
	return a != "" && a == strings.ToLower(strings.TrimSpace(b))
}

func samePhone(a, b string) bool {
	a = strings.TrimPrefix(normalizePhone(a), "+")
	return a != "" && a == strings.TrimPrefix(normalizePhone(b), "+")
}
