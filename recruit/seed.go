package recruit

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/stevemurr/recruit-store/collection"
)

// Fixtures is a set of records per kind, loaded from YAML.
//
//	candidates:
//	  - id: c1
//	    name: Ada Lovelace
//	    status: Applied
//	interviews:
//	  - id: i1
//	    candidateId: c1
//	    status: Scheduled
type Fixtures struct {
	Candidates []Candidate `yaml:"candidates"`
	Interviews []Interview `yaml:"interviews"`
	Feedback   []Feedback  `yaml:"feedback"`
	Offers     []Offer     `yaml:"offers"`
}

// LoadFixtures reads a YAML fixtures file.
func LoadFixtures(path string) (*Fixtures, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixtures: %w", err)
	}
	return ParseFixtures(data)
}

// ParseFixtures decodes YAML fixtures.
func ParseFixtures(data []byte) (*Fixtures, error) {
	var f Fixtures
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse fixtures: %w", err)
	}
	return &f, nil
}

// Seed loads fixtures into collections that hold no records yet; populated
// collections are left alone. It returns how many records were created per kind.
func (r *Registry) Seed(f *Fixtures) (map[Kind]int, error) {
	created := map[Kind]int{}
	var err error
	if created[KindCandidate], err = seedInto(r.Candidates.Collection, f.Candidates); err != nil {
		return created, err
	}
	if created[KindInterview], err = seedInto(r.Interviews.Collection, f.Interviews); err != nil {
		return created, err
	}
	if created[KindFeedback], err = seedInto(r.Feedback.Collection, f.Feedback); err != nil {
		return created, err
	}
	if created[KindOffer], err = seedInto(r.Offers.Collection, f.Offers); err != nil {
		return created, err
	}
	return created, nil
}

func seedInto[T collection.Record](c *collection.Collection[T], items []T) (int, error) {
	existing, err := c.GetAll()
	if err != nil {
		return 0, err
	}
	if len(existing) > 0 {
		return 0, nil
	}
	for i, item := range items {
		if _, err := c.Create(item); err != nil {
			return i, fmt.Errorf("seed %s: %w", c.Name(), err)
		}
	}
	return len(items), nil
}
