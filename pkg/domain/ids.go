// Package domain holds typed identifiers shared across bounded contexts.
//
// Each ID wraps a uuid.UUID so the compiler rejects passing a StudentID where
// a VendorID is expected. Parse functions are the trust boundary: they reject
// empty, malformed, and nil UUIDs with CodeInvalidInput.
package domain

import (
	"github.com/google/uuid"

	dErrors "campuspass/pkg/domain-errors"
)

type (
	UniversityID uuid.UUID
	StudentID    uuid.UUID
	VendorID     uuid.UUID
	ProductID    uuid.UUID
	RecordID     uuid.UUID
)

func (id UniversityID) String() string { return uuid.UUID(id).String() }
func (id StudentID) String() string    { return uuid.UUID(id).String() }
func (id VendorID) String() string     { return uuid.UUID(id).String() }
func (id ProductID) String() string    { return uuid.UUID(id).String() }
func (id RecordID) String() string     { return uuid.UUID(id).String() }

func (id UniversityID) IsNil() bool { return uuid.UUID(id) == uuid.Nil }
func (id StudentID) IsNil() bool    { return uuid.UUID(id) == uuid.Nil }
func (id VendorID) IsNil() bool     { return uuid.UUID(id) == uuid.Nil }
func (id ProductID) IsNil() bool    { return uuid.UUID(id) == uuid.Nil }

func ParseUniversityID(s string) (UniversityID, error) {
	u, err := parseUUID(s, "university_id")
	return UniversityID(u), err
}

func ParseStudentID(s string) (StudentID, error) {
	u, err := parseUUID(s, "student_id")
	return StudentID(u), err
}

func ParseVendorID(s string) (VendorID, error) {
	u, err := parseUUID(s, "vendor_id")
	return VendorID(u), err
}

func ParseProductID(s string) (ProductID, error) {
	u, err := parseUUID(s, "product_id")
	return ProductID(u), err
}

// ParseOptionalProductID returns nil for an empty string.
func ParseOptionalProductID(s string) (*ProductID, error) {
	if s == "" {
		return nil, nil
	}
	pid, err := ParseProductID(s)
	if err != nil {
		return nil, err
	}
	return &pid, nil
}

// ParseOptionalStudentID returns nil for an empty string.
func ParseOptionalStudentID(s string) (*StudentID, error) {
	if s == "" {
		return nil, nil
	}
	sid, err := ParseStudentID(s)
	if err != nil {
		return nil, err
	}
	return &sid, nil
}

func parseUUID(s, field string) (uuid.UUID, error) {
	if s == "" {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, field+" is required")
	}
	u, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, "invalid "+field)
	}
	if u == uuid.Nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, field+" cannot be nil")
	}
	return u, nil
}
