// Package caregiver serves caregiver, review and service package queries.
//
// The data comes from repositories over static catalogs, and every operation
// waits a configurable delay before completing, so that callers are written
// against the latency a backend would have.
package caregiver

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"go.hackfix.me/kangyang/catalog"
)

// DefaultSimilarLimit is the number of similar caregivers returned when no
// positive limit is given.
const DefaultSimilarLimit = 3

// Service answers caregiver queries.
type Service struct {
	caregivers catalog.CaregiverRepository
	reviews    catalog.ReviewRepository
	packages   []catalog.ServicePackage
	delay      time.Duration
	now        func() time.Time
	newID      func() string
	logger     *slog.Logger
}

// Option is a function that allows configuring the Service.
type Option func(*Service)

// WithDelay sets the simulated latency of every operation.
func WithDelay(d time.Duration) Option {
	return func(s *Service) {
		s.delay = d
	}
}

// WithClock sets the function used to timestamp new reviews.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// WithIDGenerator sets the function used to generate review IDs.
func WithIDGenerator(fn func() string) Option {
	return func(s *Service) {
		s.newID = fn
	}
}

// WithLogger sets the service logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// New returns a new Service.
func New(
	caregivers catalog.CaregiverRepository, reviews catalog.ReviewRepository,
	packages []catalog.ServicePackage, opts ...Option,
) *Service {
	s := &Service{
		caregivers: caregivers,
		reviews:    reviews,
		packages:   packages,
		now:        time.Now,
		newID:      NewReviewID,
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// NewReviewID returns a time-ordered review ID (UUIDv7).
func NewReviewID() string {
	id, err := uuid.NewV7()
	if err != nil {
		// Only fails if the random source does.
		return uuid.NewString()
	}
	return id.String()
}

// wait blocks for the simulated latency, or until ctx is done.
func (s *Service) wait(ctx context.Context) error {
	if s.delay <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(s.delay)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// CaregiverByID returns the caregiver with the given ID from any service
// type catalog.
func (s *Service) CaregiverByID(ctx context.Context, id string) (*catalog.Caregiver, bool, error) {
	if err := s.wait(ctx); err != nil {
		return nil, false, err
	}

	c, ok := s.caregivers.FindByID(id)
	return c, ok, nil
}

// Caregivers returns the caregivers of a service type, or of all types if t
// is empty.
func (s *Service) Caregivers(ctx context.Context, t catalog.ServiceType) ([]catalog.Caregiver, error) {
	if err := s.wait(ctx); err != nil {
		return nil, err
	}

	if t == "" {
		return s.caregivers.All(), nil
	}
	return s.caregivers.ByServiceType(t), nil
}

// Reviews returns the reviews of a caregiver, newest first. It's empty if
// there are none.
func (s *Service) Reviews(ctx context.Context, caregiverID string) ([]catalog.CaregiverReview, error) {
	if err := s.wait(ctx); err != nil {
		return nil, err
	}

	return s.reviews.ListByCaregiver(caregiverID), nil
}

// SimilarCaregivers returns up to limit caregivers of service type t other
// than excludeID. The caregivers are taken in catalog order; there's no
// similarity ranking.
func (s *Service) SimilarCaregivers(
	ctx context.Context, excludeID string, t catalog.ServiceType, limit int,
) ([]catalog.Caregiver, error) {
	if err := s.wait(ctx); err != nil {
		return nil, err
	}

	if limit <= 0 {
		limit = DefaultSimilarLimit
	}

	out := []catalog.Caregiver{}
	for _, c := range s.caregivers.ByServiceType(t) {
		if len(out) == limit {
			break
		}
		if c.ID != excludeID {
			out = append(out, c)
		}
	}

	return out, nil
}

// NewReview is the data of a review submitted by a user.
type NewReview struct {
	CaregiverID string              `json:"caregiverId"`
	UserName    string              `json:"userName"`
	Rating      int                 `json:"rating"`
	Content     string              `json:"content"`
	Tags        []string            `json:"tags,omitempty"`
	ServiceType catalog.ServiceType `json:"serviceType"`
}

// AddReview records a review as the newest of its caregiver. The review is
// assigned a time-ordered ID and the current time. A review without a
// caregiver ID is rejected with catalog.ErrInvalidReview.
func (s *Service) AddReview(ctx context.Context, r NewReview) (bool, error) {
	if err := s.wait(ctx); err != nil {
		return false, err
	}

	review := catalog.CaregiverReview{
		ID:          s.newID(),
		CaregiverID: r.CaregiverID,
		UserName:    r.UserName,
		Rating:      r.Rating,
		Content:     r.Content,
		Tags:        r.Tags,
		ServiceType: r.ServiceType,
		CreatedAt:   s.now().UTC(),
	}
	if err := s.reviews.Append(review); err != nil {
		return false, fmt.Errorf("failed adding review: %w", err)
	}
	s.logger.Debug("added caregiver review",
		"caregiver_id", review.CaregiverID, "review_id", review.ID)

	return true, nil
}

// LikeReview acknowledges that the user found a review helpful. The helpful
// count is not updated.
func (s *Service) LikeReview(ctx context.Context, reviewID string) (bool, error) {
	if err := s.wait(ctx); err != nil {
		return false, err
	}

	// TODO: Increment HelpfulCount once ReviewRepository can update reviews.
	s.logger.Debug("liked caregiver review", "review_id", reviewID)

	return true, nil
}

// ServicePackages returns all service packages.
func (s *Service) ServicePackages(ctx context.Context) ([]catalog.ServicePackage, error) {
	if err := s.wait(ctx); err != nil {
		return nil, err
	}

	out := make([]catalog.ServicePackage, len(s.packages))
	copy(out, s.packages)
	return out, nil
}

// ServicePackageByID returns the service package with the given ID.
func (s *Service) ServicePackageByID(ctx context.Context, id string) (*catalog.ServicePackage, bool, error) {
	if err := s.wait(ctx); err != nil {
		return nil, false, err
	}

	for _, p := range s.packages {
		if p.ID == id {
			return &p, true, nil
		}
	}
	return nil, false, nil
}

// PackagePrice returns the price tier of a service package for a
// qualification, falling back to the package's first tier.
func (s *Service) PackagePrice(
	ctx context.Context, packageID string, q catalog.Qualification,
) (*catalog.PriceTier, bool, error) {
	pkg, ok, err := s.ServicePackageByID(ctx, packageID)
	if err != nil || !ok {
		return nil, false, err
	}

	tier, ok := pkg.TierFor(q)
	if !ok {
		return nil, false, nil
	}
	return &tier, true, nil
}
