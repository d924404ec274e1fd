package audit

import (
	"context"
	"errors"

	id "campuspass/pkg/domain"
)

// Fanout appends each event to every store in order and joins their errors.
// Reads are served by the first store that implements Lister.
type Fanout []Store

func (f Fanout) Append(ctx context.Context, event Event) error {
	var errs []error
	for _, s := range f {
		if err := s.Append(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (f Fanout) ListByStudent(ctx context.Context, studentID id.StudentID) ([]Event, error) {
	for _, s := range f {
		if l, ok := s.(Lister); ok {
			return l.ListByStudent(ctx, studentID)
		}
	}
	return nil, errors.New("no audit store supports listing")
}
