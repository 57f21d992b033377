// Package catalog holds the static datasets the services are backed by, and
// the repository interfaces used to access them. The datasets are created at
// startup and never modified; a backend API can replace them by implementing
// the same interfaces.
package catalog

import "time"

// ServiceType is the kind of care service a caregiver provides.
type ServiceType string

// Service types.
const (
	ServiceHomeCare       ServiceType = "home-care"
	ServiceHospitalEscort ServiceType = "hospital-escort"
	ServiceRehabNursing   ServiceType = "rehab-nursing"
)

// ServiceTypes returns all service types in catalog order.
func ServiceTypes() []ServiceType {
	return []ServiceType{ServiceHomeCare, ServiceHospitalEscort, ServiceRehabNursing}
}

// Qualification is the certified skill tier of a caregiver. It determines
// pricing.
type Qualification string

// Qualifications.
const (
	PersonalCareWorker Qualification = "personal-care-worker"
	HomeWorker         Qualification = "home-worker"
	RegisteredNurse    Qualification = "registered-nurse"
)

// Caregiver is a care worker that can be booked.
type Caregiver struct {
	ID            string        `json:"id"`
	Name          string        `json:"name"`
	Age           int           `json:"age"`
	Gender        string        `json:"gender"`
	Hometown      string        `json:"hometown"`
	ServiceType   ServiceType   `json:"serviceType"`
	Qualification Qualification `json:"qualification"`
	Experience    int           `json:"experienceYears"`
	Rating        float64       `json:"rating"`
	ServiceCount  int           `json:"serviceCount"`
	Skills        []string      `json:"skills"`
	Certificates  []string      `json:"certificates"`
	Introduction  string        `json:"introduction"`
	Available     bool          `json:"available"`
}

// CaregiverReview is feedback left by a customer about a caregiver.
type CaregiverReview struct {
	ID           string      `json:"id"`
	CaregiverID  string      `json:"caregiverId"`
	UserName     string      `json:"userName"`
	Rating       int         `json:"rating"`
	Content      string      `json:"content"`
	Tags         []string    `json:"tags,omitempty"`
	ServiceType  ServiceType `json:"serviceType"`
	HelpfulCount int         `json:"helpfulCount"`
	CreatedAt    time.Time   `json:"createdAt"`
}

// PriceTier is the price of a service package for a caregiver qualification.
type PriceTier struct {
	Qualification Qualification `json:"qualification"`
	Price         float64       `json:"price"`
	Unit          string        `json:"unit"`
}

// ServicePackage is a bookable bundle of care services.
type ServicePackage struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	ServiceType ServiceType `json:"serviceType"`
	Duration    string      `json:"duration"`
	Features    []string    `json:"features"`
	Tiers       []PriceTier `json:"tiers"`
}

// TierFor returns the price tier for qualification q, falling back to the
// first tier if there's none for q. It returns false only if the package has
// no tiers at all.
func (p ServicePackage) TierFor(q Qualification) (PriceTier, bool) {
	if len(p.Tiers) == 0 {
		return PriceTier{}, false
	}
	for _, t := range p.Tiers {
		if t.Qualification == q {
			return t, true
		}
	}

	return p.Tiers[0], true
}

// Topic is a community discussion topic. IsFollowing is derived per user at
// read time, and is always false in the static catalog.
type Topic struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Followers   int       `json:"followers"`
	Posts       int       `json:"posts"`
	Trend       string    `json:"trend"`
	Tags        []string  `json:"tags"`
	CreatedAt   time.Time `json:"createdAt"`
	IsFollowing bool      `json:"isFollowing"`
}

// Product is an item of the grocery shop.
type Product struct {
	ID       int     `json:"id"`
	Name     string  `json:"name"`
	Category string  `json:"category"`
	Price    float64 `json:"price"`
	Unit     string  `json:"unit"`
}

func date(s string) time.Time {
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		panic(err)
	}
	return t
}
