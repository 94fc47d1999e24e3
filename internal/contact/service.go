package contact

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Receipt acknowledges a stored inquiry.
type Receipt struct {
	ID         uuid.UUID
	ReceivedAt time.Time
}

// Record is an inquiry as persisted by a Store.
type Record struct {
	Receipt
	Inquiry
}

// Submitter accepts contact form submissions. A nil error means the inquiry
// was stored; validation failures satisfy errors.Is(err, ErrInvalid).
type Submitter interface {
	Submit(ctx context.Context, in Inquiry) (Receipt, error)
}

// Service validates inquiries and hands them to a Store.
type Service struct {
	store  Store
	logger *zap.Logger

	now   func() time.Time
	newID func() uuid.UUID
}

var _ Submitter = (*Service)(nil)

// NewService returns a Service persisting into store.
func NewService(store Store, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		store:  store,
		logger: logger,
		now:    time.Now,
		newID:  uuid.New,
	}
}

// Submit normalizes and validates in, then stores it.
func (s *Service) Submit(ctx context.Context, in Inquiry) (Receipt, error) {
	in = in.Normalize()
	if err := in.Validate(); err != nil {
		return Receipt{}, err
	}

	rec := Record{
		Receipt: Receipt{ID: s.newID(), ReceivedAt: s.now().UTC()},
		Inquiry: in,
	}
	if err := s.store.Save(ctx, rec); err != nil {
		return Receipt{}, fmt.Errorf("failed to store inquiry: %w", err)
	}

	s.logger.Info("inquiry received",
		zap.String("id", rec.ID.String()),
		zap.String("projectType", string(in.ProjectType)),
	)
	return rec.Receipt, nil
}
