package recruit

import "github.com/stevemurr/recruit-store/collection"

type OfferStatus string

const (
	OfferDraft     OfferStatus = "Draft"
	OfferExtended  OfferStatus = "Extended"
	OfferAccepted  OfferStatus = "Accepted"
	OfferDeclined  OfferStatus = "Declined"
	OfferWithdrawn OfferStatus = "Withdrawn"
)

// Offer is an employment offer made to a candidate.
type Offer struct {
	ID            string      `json:"id" yaml:"id"`
	CandidateID   string      `json:"candidateId" yaml:"candidateId"`
	CandidateName string      `json:"candidateName,omitempty" yaml:"candidateName"`
	Position      string      `json:"position,omitempty" yaml:"position"`
	Salary        float64     `json:"salary,omitempty" yaml:"salary"`
	Currency      string      `json:"currency,omitempty" yaml:"currency"`
	StartDate     string      `json:"startDate,omitempty" yaml:"startDate"`
	ExpiresAt     string      `json:"expiresAt,omitempty" yaml:"expiresAt"`
	Status        OfferStatus `json:"status" yaml:"status"`
	Notes         string      `json:"notes,omitempty" yaml:"notes"`
}

func (o Offer) GetID() string { return o.ID }

// Offers is the offer collection.
type Offers struct {
	*collection.Collection[Offer]
}

func offerCandidateIs(candidateID string) func(Offer) bool {
	return func(o Offer) bool { return o.CandidateID == candidateID }
}

func offerStatusIs(status string) func(Offer) bool {
	return func(o Offer) bool { return string(o.Status) == status }
}

func (r *Offers) GetByCandidateID(candidateID string) ([]Offer, error) {
	return r.Query(offerCandidateIs(candidateID))
}

func (r *Offers) GetByStatus(status OfferStatus) ([]Offer, error) {
	return r.Query(offerStatusIs(string(status)))
}
