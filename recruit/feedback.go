package recruit

import "github.com/stevemurr/recruit-store/collection"

type Recommendation string

const (
	StrongHire   Recommendation = "StrongHire"
	Hire         Recommendation = "Hire"
	NoHire       Recommendation = "NoHire"
	StrongNoHire Recommendation = "StrongNoHire"
)

// Feedback is an interviewer's assessment of one interview.
type Feedback struct {
	ID             string         `json:"id" yaml:"id"`
	InterviewID    string         `json:"interviewId" yaml:"interviewId"`
	CandidateID    string         `json:"candidateId,omitempty" yaml:"candidateId"`
	Interviewer    string         `json:"interviewer,omitempty" yaml:"interviewer"`
	Rating         int            `json:"rating" yaml:"rating"`
	Recommendation Recommendation `json:"recommendation,omitempty" yaml:"recommendation"`
	Strengths      []string       `json:"strengths,omitempty" yaml:"strengths"`
	Weaknesses     []string       `json:"weaknesses,omitempty" yaml:"weaknesses"`
	Comments       string         `json:"comments,omitempty" yaml:"comments"`
	SubmittedAt    string         `json:"submittedAt,omitempty" yaml:"submittedAt"`
}

func (f Feedback) GetID() string { return f.ID }

// FeedbackSet is the feedback collection.
type FeedbackSet struct {
	*collection.Collection[Feedback]
}

func feedbackInterviewIs(interviewID string) func(Feedback) bool {
	return func(f Feedback) bool { return f.InterviewID == interviewID }
}

func feedbackCandidateIs(candidateID string) func(Feedback) bool {
	return func(f Feedback) bool { return f.CandidateID == candidateID }
}

// GetByInterviewID returns the feedback submitted for an interview.
func (r *FeedbackSet) GetByInterviewID(interviewID string) ([]Feedback, error) {
	return r.Query(feedbackInterviewIs(interviewID))
}
