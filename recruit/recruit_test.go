package recruit_test

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stevemurr/recruit-store/collection"
	"github.com/stevemurr/recruit-store/recruit"
	"github.com/stevemurr/recruit-store/schema"
	"github.com/stevemurr/recruit-store/store"
)

func newRegistry(t *testing.T, opts ...recruit.Option) (*recruit.Registry, store.Store) {
	t.Helper()
	s := store.NewMemoryStore()
	reg, err := recruit.NewRegistry(s, opts...)
	require.NoError(t, err)
	return reg, s
}

func TestCandidateStatusLifecycle(t *testing.T) {
	reg, _ := newRegistry(t)
	c := recruit.Candidate{ID: "1", Name: "Ada", Email: "ada@example.com", Position: "Engineer", Status: recruit.CandidateApplied}
	_, err := reg.Candidates.Create(c)
	require.NoError(t, err)

	applied, err := reg.Candidates.GetByStatus(recruit.CandidateApplied)
	require.NoError(t, err)
	assert.Equal(t, []recruit.Candidate{c}, applied)

	_, ok, err := reg.Candidates.Update("1", map[string]any{"status": "Hired"})
	require.NoError(t, err)
	require.True(t, ok)

	applied, err = reg.Candidates.GetByStatus(recruit.CandidateApplied)
	require.NoError(t, err)
	assert.Empty(t, applied)

	hired, err := reg.Candidates.GetByStatus(recruit.CandidateHired)
	require.NoError(t, err)
	want := c
	want.Status = recruit.CandidateHired
	assert.Equal(t, []recruit.Candidate{want}, hired)
}

func TestInterviewLookups(t *testing.T) {
	reg, _ := newRegistry(t)
	for _, i := range []recruit.Interview{
		{ID: "i1", CandidateID: "c1", Status: recruit.InterviewCompleted},
		{ID: "i2", CandidateID: "c2", Status: recruit.InterviewScheduled},
		{ID: "i3", CandidateID: "c1", Status: recruit.InterviewScheduled},
	} {
		_, err := reg.Interviews.Create(i)
		require.NoError(t, err)
	}

	got, err := reg.Interviews.GetByCandidateID("c1")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "i1", got[0].ID)
	assert.Equal(t, "i3", got[1].ID)

	got, err = reg.Interviews.GetByStatus(recruit.InterviewScheduled)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "i2", got[0].ID)

	got, err = reg.Interviews.GetByCandidateID("nobody")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestFeedbackAndOfferLookups(t *testing.T) {
	reg, _ := newRegistry(t)
	_, err := reg.Feedback.Create(recruit.Feedback{ID: "f1", InterviewID: "i1", Rating: 4})
	require.NoError(t, err)
	_, err = reg.Feedback.Create(recruit.Feedback{ID: "f2", InterviewID: "i2", Rating: 2})
	require.NoError(t, err)

	fb, err := reg.Feedback.GetByInterviewID("i2")
	require.NoError(t, err)
	require.Len(t, fb, 1)
	assert.Equal(t, "f2", fb[0].ID)

	_, err = reg.Offers.Create(recruit.Offer{ID: "o1", CandidateID: "c1", Status: recruit.OfferExtended, Salary: 100})
	require.NoError(t, err)
	_, err = reg.Offers.Create(recruit.Offer{ID: "o2", CandidateID: "c2", Status: recruit.OfferAccepted})
	require.NoError(t, err)

	offers, err := reg.Offers.GetByCandidateID("c1")
	require.NoError(t, err)
	require.Len(t, offers, 1)
	assert.Equal(t, 100.0, offers[0].Salary)

	offers, err = reg.Offers.GetByStatus(recruit.OfferAccepted)
	require.NoError(t, err)
	require.Len(t, offers, 1)
	assert.Equal(t, "o2", offers[0].ID)
}

func TestKindsShareStoreUnderSeparateKeys(t *testing.T) {
	reg, s := newRegistry(t)
	_, err := reg.Candidates.Create(recruit.Candidate{ID: "1", Name: "A", Status: recruit.CandidateApplied})
	require.NoError(t, err)
	_, err = reg.Offers.Create(recruit.Offer{ID: "1", CandidateID: "1", Status: recruit.OfferDraft})
	require.NoError(t, err)

	keys, err := s.Keys()
	require.NoError(t, err)
	assert.Equal(t, []string{"candidates", "offers"}, keys)

	counts, err := reg.Counts()
	require.NoError(t, err)
	assert.Equal(t, map[recruit.Kind]int{
		recruit.KindCandidate: 1, recruit.KindInterview: 0, recruit.KindFeedback: 0, recruit.KindOffer: 1,
	}, counts)
}

func TestValidation(t *testing.T) {
	reg, s := newRegistry(t, recruit.WithValidation(true))

	_, err := reg.Candidates.Create(recruit.Candidate{ID: "1", Name: "Ada", Status: "Ghosted"})
	var verr *schema.ValidationError
	require.True(t, errors.As(err, &verr), "got %v", err)

	_, err = reg.Candidates.Create(recruit.Candidate{ID: "1", Name: "Ada", Status: recruit.CandidateApplied})
	require.NoError(t, err)

	_, _, err = reg.Candidates.Update("1", map[string]any{"rating": 11})
	require.True(t, errors.As(err, &verr), "got %v", err)

	_, err = reg.Feedback.Create(recruit.Feedback{ID: "f1", InterviewID: "i1"})
	require.True(t, errors.As(err, &verr), "rating is required, got %v", err)

	_, err = reg.Interviews.Create(recruit.Interview{ID: "i1", Status: recruit.InterviewScheduled})
	require.True(t, errors.As(err, &verr), "candidateId is required, got %v", err)

	_, err = reg.Offers.Create(recruit.Offer{ID: "o1", CandidateID: "1", Status: recruit.OfferDraft, Salary: -5})
	require.True(t, errors.As(err, &verr), "negative salary, got %v", err)

	keys, err := s.Keys()
	require.NoError(t, err)
	assert.Equal(t, []string{"candidates"}, keys)
}

func TestValidationDisabledByDefault(t *testing.T) {
	reg, _ := newRegistry(t)
	_, err := reg.Candidates.Create(recruit.Candidate{ID: "1", Status: "Anything"})
	assert.NoError(t, err)
}

func TestBuiltinSchemas(t *testing.T) {
	for _, kind := range recruit.Kinds() {
		s, err := recruit.Schema(kind)
		require.NoError(t, err, kind)
		assert.NotNil(t, s)
	}
	_, err := recruit.Schema("unknown")
	assert.Error(t, err)
}

func TestRepositoryCreateAssignsID(t *testing.T) {
	reg, _ := newRegistry(t)
	repo, ok := reg.Repository(recruit.KindCandidate)
	require.True(t, ok)
	assert.Equal(t, recruit.KindCandidate, repo.Kind())

	created, err := repo.Create([]byte(`{"name":"Ada","status":"Applied"}`))
	require.NoError(t, err)
	c := created.(recruit.Candidate)
	assert.Len(t, c.ID, 36)

	got, ok, err := repo.Get(c.ID)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, c, got)

	_, err = repo.Create([]byte(`{"id":"`+c.ID+`","name":"dup"}`))
	assert.ErrorIs(t, err, collection.ErrDuplicateID)

	_, err = repo.Create([]byte(`{"name":`))
	assert.ErrorIs(t, err, recruit.ErrInvalidBody)
}

func TestRepositoryList(t *testing.T) {
	reg, _ := newRegistry(t)
	repo, _ := reg.Repository(recruit.KindInterview)
	for _, body := range []string{
		`{"id":"i1","candidateId":"c1","status":"Scheduled"}`,
		`{"id":"i2","candidateId":"c1","status":"Completed"}`,
		`{"id":"i3","candidateId":"c2","status":"Scheduled"}`,
	} {
		_, err := repo.Create([]byte(body))
		require.NoError(t, err)
	}

	all, err := repo.List(nil)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	got, err := repo.List(map[string]string{"candidateId": "c1", "status": "Scheduled"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "i1", got[0].(recruit.Interview).ID)

	_, err = repo.List(map[string]string{"salary": "1"})
	assert.ErrorIs(t, err, recruit.ErrUnknownFilter)
	assert.Equal(t, []string{"candidateId", "status"}, repo.Filters())
}

func TestRepositoryReplace(t *testing.T) {
	reg, _ := newRegistry(t, recruit.WithValidation(true))
	repo, _ := reg.Repository(recruit.KindOffer)
	_, err := repo.Create([]byte(`{"id":"o1","candidateId":"c1","status":"Draft","salary":100,"notes":"first"}`))
	require.NoError(t, err)

	replaced, ok, err := repo.Replace("o1", []byte(`{"candidateId":"c1","status":"Extended"}`))
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, recruit.Offer{ID: "o1", CandidateID: "c1", Status: recruit.OfferExtended}, replaced)

	_, ok, err = repo.Replace("missing", []byte(`{"candidateId":"c1","status":"Draft"}`))
	require.NoError(t, err)
	assert.False(t, ok)

	_, _, err = repo.Replace("o1", []byte(`{"id":"o2","candidateId":"c1","status":"Draft"}`))
	assert.ErrorIs(t, err, collection.ErrInvalidPatch)

	_, _, err = repo.Replace("o1", []byte(`{"candidateId":"c1","status":"Pending"}`))
	var verr *schema.ValidationError
	assert.ErrorAs(t, err, &verr)

	_, _, err = repo.Replace("o1", []byte(`[`))
	assert.ErrorIs(t, err, recruit.ErrInvalidBody)
}

func TestRepositoryUpdateDelete(t *testing.T) {
	reg, _ := newRegistry(t)
	repo, _ := reg.Repository(recruit.KindOffer)
	_, err := repo.Create([]byte(`{"id":"o1","candidateId":"c1","status":"Draft","salary":100}`))
	require.NoError(t, err)

	updated, ok, err := repo.Update("o1", map[string]any{"status": "Extended"})
	require.NoError(t, err)
	require.True(t, ok)
	o := updated.(recruit.Offer)
	assert.Equal(t, recruit.OfferExtended, o.Status)
	assert.Equal(t, 100.0, o.Salary)

	_, ok, err = repo.Update("missing", map[string]any{"status": "Extended"})
	require.NoError(t, err)
	assert.False(t, ok)

	removed, err := repo.Delete("o1")
	require.NoError(t, err)
	assert.True(t, removed)
	_, ok, err = repo.Get("o1")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestParseKind(t *testing.T) {
	k, ok := recruit.ParseKind("offers")
	assert.True(t, ok)
	assert.Equal(t, recruit.KindOffer, k)
	_, ok = recruit.ParseKind("jobs")
	assert.False(t, ok)
}

func TestSeed(t *testing.T) {
	reg, _ := newRegistry(t, recruit.WithValidation(true))
	f, err := recruit.LoadFixtures(filepath.Join("testdata", "fixtures.yaml"))
	require.NoError(t, err)
	require.Len(t, f.Candidates, 2)
	assert.Equal(t, []string{"go", "postgres"}, f.Candidates[0].Skills)
	assert.Equal(t, 4.5, f.Candidates[0].Rating)

	created, err := reg.Seed(f)
	require.NoError(t, err)
	assert.Equal(t, map[recruit.Kind]int{
		recruit.KindCandidate: 2, recruit.KindInterview: 2, recruit.KindFeedback: 1, recruit.KindOffer: 1,
	}, created)

	// populated collections are left alone
	created, err = reg.Seed(f)
	require.NoError(t, err)
	assert.Equal(t, 0, created[recruit.KindCandidate])

	fb, err := reg.Feedback.GetByInterviewID("i1")
	require.NoError(t, err)
	require.Len(t, fb, 1)
	assert.Equal(t, recruit.Hire, fb[0].Recommendation)
}

func TestSeedSkipsOnlyPopulatedKinds(t *testing.T) {
	reg, _ := newRegistry(t)
	_, err := reg.Candidates.Create(recruit.Candidate{ID: "existing", Name: "X", Status: recruit.CandidateApplied})
	require.NoError(t, err)

	f, err := recruit.ParseFixtures([]byte("candidates:\n  - id: c1\n    name: A\n    status: Applied\noffers:\n  - id: o1\n    candidateId: c1\n    status: Draft\n"))
	require.NoError(t, err)
	created, err := reg.Seed(f)
	require.NoError(t, err)
	assert.Equal(t, 0, created[recruit.KindCandidate])
	assert.Equal(t, 1, created[recruit.KindOffer])
}

func TestParseFixturesInvalid(t *testing.T) {
	_, err := recruit.ParseFixtures([]byte("candidates: [unterminated"))
	assert.Error(t, err)
	_, err = recruit.LoadFixtures(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
