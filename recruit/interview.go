package recruit

import "github.com/stevemurr/recruit-store/collection"

type InterviewStatus string

const (
	InterviewScheduled InterviewStatus = "Scheduled"
	InterviewCompleted InterviewStatus = "Completed"
	InterviewCancelled InterviewStatus = "Cancelled"
	InterviewNoShow    InterviewStatus = "NoShow"
)

// Interview is a scheduled conversation with a candidate.
type Interview struct {
	ID              string          `json:"id" yaml:"id"`
	CandidateID     string          `json:"candidateId" yaml:"candidateId"`
	CandidateName   string          `json:"candidateName,omitempty" yaml:"candidateName"`
	Position        string          `json:"position,omitempty" yaml:"position"`
	Interviewer     string          `json:"interviewer,omitempty" yaml:"interviewer"`
	Type            string          `json:"type,omitempty" yaml:"type"`
	ScheduledAt     string          `json:"scheduledAt,omitempty" yaml:"scheduledAt"`
	DurationMinutes int             `json:"durationMinutes,omitempty" yaml:"durationMinutes"`
	Location        string          `json:"location,omitempty" yaml:"location"`
	Status          InterviewStatus `json:"status" yaml:"status"`
	Notes           string          `json:"notes,omitempty" yaml:"notes"`
}

func (i Interview) GetID() string { return i.ID }

// Interviews is the interview collection.
type Interviews struct {
	*collection.Collection[Interview]
}

func interviewCandidateIs(candidateID string) func(Interview) bool {
	return func(i Interview) bool { return i.CandidateID == candidateID }
}

func interviewStatusIs(status string) func(Interview) bool {
	return func(i Interview) bool { return string(i.Status) == status }
}

// GetByCandidateID returns every interview held with a candidate.
func (r *Interviews) GetByCandidateID(candidateID string) ([]Interview, error) {
	return r.Query(interviewCandidateIs(candidateID))
}

func (r *Interviews) GetByStatus(status InterviewStatus) ([]Interview, error) {
	return r.Query(interviewStatusIs(string(status)))
}
