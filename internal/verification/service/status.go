package service

import (
	"context"
	"errors"

	"campuspass/internal/verification/models"
	id "campuspass/pkg/domain"
	dErrors "campuspass/pkg/domain-errors"
	"campuspass/pkg/platform/sentinel"
	"campuspass/pkg/requestcontext"
)

// LatestRecordReader is the slice of RecordStore status derivation needs.
type LatestRecordReader interface {
	LatestByStudent(ctx context.Context, studentID id.StudentID) (*models.Record, error)
}

// StatusReader derives a student's status from their most recent record.
// It is shared with the token service for widget preconditions.
type StatusReader struct {
	records LatestRecordReader
}

func NewStatusReader(records LatestRecordReader) *StatusReader {
	return &StatusReader{records: records}
}

// GetVerificationStatus reports unverified when the student has no records.
// Expiry is evaluated against the request time, never persisted.
func (r *StatusReader) GetVerificationStatus(ctx context.Context, studentID id.StudentID) (models.StatusView, error) {
	latest, err := r.records.LatestByStudent(ctx, studentID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return models.DeriveStatus(nil, requestcontext.Now(ctx)), nil
		}
		return models.StatusView{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load verification status")
	}
	return models.DeriveStatus(latest, requestcontext.Now(ctx)), nil
}
