package models

import (
	"time"

	id "campuspass/pkg/domain"
)

// RecordStatus is the persisted outcome of a verification.
type RecordStatus string

const (
	RecordStatusVerified RecordStatus = "verified"
)

// Record is a completed verification. The most recent record per student is
// authoritative; older ones are history.
type Record struct {
	ID         id.RecordID
	StudentID  id.StudentID
	Method     MethodKind
	Status     RecordStatus
	VerifiedAt time.Time
	ExpiresAt  *time.Time
}

// NewVerifiedRecord builds a verified record with the given validity horizon.
// A zero ttl produces a record that never expires.
func NewVerifiedRecord(recordID id.RecordID, studentID id.StudentID, method MethodKind, now time.Time, ttl time.Duration) *Record {
	r := &Record{
		ID:         recordID,
		StudentID:  studentID,
		Method:     method,
		Status:     RecordStatusVerified,
		VerifiedAt: now,
	}
	if ttl > 0 {
		exp := now.Add(ttl)
		r.ExpiresAt = &exp
	}
	return r
}
