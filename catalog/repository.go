package catalog

import (
	"errors"
	"sync"
)

// CaregiverRepository gives read access to caregivers.
type CaregiverRepository interface {
	// All returns every caregiver, grouped by service type in ServiceTypes
	// order, each group in catalog order.
	All() []Caregiver
	ByServiceType(t ServiceType) []Caregiver
	FindByID(id string) (*Caregiver, bool)
}

// ReviewRepository gives access to caregiver reviews.
type ReviewRepository interface {
	FindByID(id string) (*CaregiverReview, bool)
	// ListByCaregiver returns the reviews of a caregiver, newest first.
	ListByCaregiver(caregiverID string) []CaregiverReview
	// Append records a new review as the newest of its caregiver.
	Append(r CaregiverReview) error
}

// ErrInvalidReview is returned when appending a review without an ID or a
// caregiver ID.
var ErrInvalidReview = errors.New("review must have an ID and a caregiver ID")

// StaticCaregivers serves the built-in caregiver catalogs.
type StaticCaregivers struct{}

var _ CaregiverRepository = StaticCaregivers{}

func (StaticCaregivers) All() []Caregiver {
	all := []Caregiver{}
	for _, t := range ServiceTypes() {
		all = append(all, Caregivers(t)...)
	}
	return all
}

func (StaticCaregivers) ByServiceType(t ServiceType) []Caregiver {
	return Caregivers(t)
}

func (s StaticCaregivers) FindByID(id string) (*Caregiver, bool) {
	for _, c := range s.All() {
		if c.ID == id {
			return &c, true
		}
	}
	return nil, false
}

// MemoryReviews is an in-memory ReviewRepository. It's safe for concurrent
// use.
type MemoryReviews struct {
	mx          sync.RWMutex
	byCaregiver map[string][]CaregiverReview
}

var _ ReviewRepository = &MemoryReviews{}

// NewMemoryReviews returns a repository seeded with the given reviews, keyed
// by caregiver ID and sorted newest first. A nil seed starts empty.
func NewMemoryReviews(seed map[string][]CaregiverReview) *MemoryReviews {
	byCaregiver := make(map[string][]CaregiverReview, len(seed))
	for id, rs := range seed {
		byCaregiver[id] = cloneEach(rs, CaregiverReview.clone)
	}
	return &MemoryReviews{byCaregiver: byCaregiver}
}

func (m *MemoryReviews) FindByID(id string) (*CaregiverReview, bool) {
	m.mx.RLock()
	defer m.mx.RUnlock()

	for _, rs := range m.byCaregiver {
		for _, r := range rs {
			if r.ID == id {
				r = r.clone()
				return &r, true
			}
		}
	}
	return nil, false
}

func (m *MemoryReviews) ListByCaregiver(caregiverID string) []CaregiverReview {
	m.mx.RLock()
	defer m.mx.RUnlock()

	rs := cloneEach(m.byCaregiver[caregiverID], CaregiverReview.clone)
	if rs == nil {
		rs = []CaregiverReview{}
	}
	return rs
}

func (m *MemoryReviews) Append(r CaregiverReview) error {
	if r.ID == "" || r.CaregiverID == "" {
		return ErrInvalidReview
	}

	m.mx.Lock()
	defer m.mx.Unlock()

	m.byCaregiver[r.CaregiverID] = append(
		[]CaregiverReview{r.clone()}, m.byCaregiver[r.CaregiverID]...)

	return nil
}
