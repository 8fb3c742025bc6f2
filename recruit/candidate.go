package recruit

import "github.com/stevemurr/recruit-store/collection"

type CandidateStatus string

const (
	CandidateApplied      CandidateStatus = "Applied"
	CandidateScreening    CandidateStatus = "Screening"
	CandidateInterviewing CandidateStatus = "Interviewing"
	CandidateOffered      CandidateStatus = "Offered"
	CandidateHired        CandidateStatus = "Hired"
	CandidateRejected     CandidateStatus = "Rejected"
)

// Candidate is a person in the hiring pipeline.
type Candidate struct {
	ID         string          `json:"id" yaml:"id"`
	Name       string          `json:"name" yaml:"name"`
	Email      string          `json:"email" yaml:"email"`
	Phone      string          `json:"phone,omitempty" yaml:"phone"`
	Position   string          `json:"position,omitempty" yaml:"position"`
	Status     CandidateStatus `json:"status" yaml:"status"`
	Source     string          `json:"source,omitempty" yaml:"source"`
	Skills     []string        `json:"skills,omitempty" yaml:"skills"`
	Experience int             `json:"experience,omitempty" yaml:"experience"`
	Rating     float64         `json:"rating,omitempty" yaml:"rating"`
	AppliedAt  string          `json:"appliedAt,omitempty" yaml:"appliedAt"`
	ResumeURL  string          `json:"resumeUrl,omitempty" yaml:"resumeUrl"`
	Notes      string          `json:"notes,omitempty" yaml:"notes"`
}

func (c Candidate) GetID() string { return c.ID }

// Candidates is the candidate collection.
type Candidates struct {
	*collection.Collection[Candidate]
}

func candidateStatusIs(status string) func(Candidate) bool {
	return func(c Candidate) bool { return string(c.Status) == status }
}

// GetByStatus returns the candidates in the given pipeline stage.
func (r *Candidates) GetByStatus(status CandidateStatus) ([]Candidate, error) {
	return r.Query(candidateStatusIs(string(status)))
}
