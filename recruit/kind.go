// Package recruit binds the generic collection store to the recruiting
// entities: candidates, interviews, interview feedback and offers.
package recruit

import "github.com/google/uuid"

// Kind names an entity kind. It is also the collection name and store key.
type Kind string

const (
	KindCandidate Kind = "candidates"
	KindInterview Kind = "interviews"
	KindFeedback  Kind = "feedback"
	KindOffer     Kind = "offers"
)

// Kinds returns every entity kind in a stable order.
func Kinds() []Kind {
	return []Kind{KindCandidate, KindInterview, KindFeedback, KindOffer}
}

// ParseKind maps a collection name to its Kind.
func ParseKind(s string) (Kind, bool) {
	for _, k := range Kinds() {
		if string(k) == s {
			return k, true
		}
	}
	return "", false
}

// NewID returns a random record id.
func NewID() string {
	return uuid.NewString()
}
