package recruit

import (
	"context"
	"embed"
	"fmt"
	"sync"

	"github.com/go-pkgz/syncs"

	"github.com/stevemurr/recruit-store/collection"
	"github.com/stevemurr/recruit-store/schema"
	"github.com/stevemurr/recruit-store/store"
)

//go:embed schemas/*.json
var schemaFS embed.FS

// Schema returns the built-in JSON Schema for a kind.
func Schema(kind Kind) (*schema.Schema, error) {
	raw, err := schemaFS.ReadFile("schemas/" + string(kind) + ".json")
	if err != nil {
		return nil, fmt.Errorf("no schema for %s: %w", kind, err)
	}
	return schema.Compile(raw)
}

type options struct {
	validate bool
}

// Option configures a Registry.
type Option func(*options)

// WithValidation checks every record against its kind's built-in schema before writing.
func WithValidation(enabled bool) Option {
	return func(o *options) { o.validate = enabled }
}

// Registry holds one typed collection per entity kind, all backed by the same store.
// Build it once at startup and share it.
type Registry struct {
	Candidates *Candidates
	Interviews *Interviews
	Feedback   *FeedbackSet
	Offers     *Offers

	repos map[Kind]Repository
}

// NewRegistry binds every entity kind to s.
func NewRegistry(s store.Store, opts ...Option) (*Registry, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	candidates, err := bind[Candidate](s, KindCandidate, o)
	if err != nil {
		return nil, err
	}
	interviews, err := bind[Interview](s, KindInterview, o)
	if err != nil {
		return nil, err
	}
	feedback, err := bind[Feedback](s, KindFeedback, o)
	if err != nil {
		return nil, err
	}
	offers, err := bind[Offer](s, KindOffer, o)
	if err != nil {
		return nil, err
	}

	r := &Registry{
		Candidates: &Candidates{candidates},
		Interviews: &Interviews{interviews},
		Feedback:   &FeedbackSet{feedback},
		Offers:     &Offers{offers},
	}
	r.repos = map[Kind]Repository{
		KindCandidate: &repository[Candidate]{
			kind:    KindCandidate,
			coll:    candidates,
			filters: map[string]func(string) func(Candidate) bool{"status": candidateStatusIs},
			setID:   func(c *Candidate, id string) { c.ID = id },
		},
		KindInterview: &repository[Interview]{
			kind: KindInterview,
			coll: interviews,
			filters: map[string]func(string) func(Interview) bool{
				"status":      interviewStatusIs,
				"candidateId": interviewCandidateIs,
			},
			setID: func(i *Interview, id string) { i.ID = id },
		},
		KindFeedback: &repository[Feedback]{
			kind: KindFeedback,
			coll: feedback,
			filters: map[string]func(string) func(Feedback) bool{
				"interviewId": feedbackInterviewIs,
				"candidateId": feedbackCandidateIs,
			},
			setID: func(f *Feedback, id string) { f.ID = id },
		},
		KindOffer: &repository[Offer]{
			kind: KindOffer,
			coll: offers,
			filters: map[string]func(string) func(Offer) bool{
				"status":      offerStatusIs,
				"candidateId": offerCandidateIs,
			},
			setID: func(o *Offer, id string) { o.ID = id },
		},
	}
	return r, nil
}

func bind[T collection.Record](s store.Store, kind Kind, o options) (*collection.Collection[T], error) {
	if !o.validate {
		return collection.New[T](s, string(kind)), nil
	}
	sch, err := Schema(kind)
	if err != nil {
		return nil, err
	}
	return collection.New[T](s, string(kind), collection.WithValidator(func(item T) error {
		return sch.Validate(item)
	})), nil
}

// Repository returns the kind-agnostic view of a kind's collection.
func (r *Registry) Repository(kind Kind) (Repository, bool) {
	repo, ok := r.repos[kind]
	return repo, ok
}

// Counts returns the number of records held per kind.
// Collections are loaded concurrently.
func (r *Registry) Counts() (map[Kind]int, error) {
	var (
		mu       sync.Mutex
		firstErr error
	)
	counts := make(map[Kind]int, len(r.repos))
	wg := syncs.NewSizedGroup(len(r.repos))
	for _, kind := range Kinds() {
		repo := r.repos[kind]
		wg.Go(func(context.Context) {
			items, err := repo.List(nil)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				if firstErr == nil {
					firstErr = fmt.Errorf("count %s: %w", kind, err)
				}
				return
			}
			counts[kind] = len(items)
		})
	}
	wg.Wait()
	if firstErr != nil {
		return nil, firstErr
	}
	return counts, nil
}
