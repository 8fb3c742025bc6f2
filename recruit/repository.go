package recruit

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/stevemurr/recruit-store/collection"
)

var (
	// ErrUnknownFilter is returned for a list filter the kind does not support.
	ErrUnknownFilter = errors.New("unknown filter")

	// ErrInvalidBody is returned when a record body is not valid JSON for the kind.
	ErrInvalidBody = errors.New("invalid record body")
)

// Repository is the kind-agnostic view of a collection used by transports.
type Repository interface {
	Kind() Kind
	// Filters lists the filter names List accepts.
	Filters() []string
	// List returns the records matching every filter, in insertion order.
	List(filters map[string]string) ([]any, error)
	Get(id string) (any, bool, error)
	// Create decodes a JSON record, assigns an id if it has none, and stores it.
	Create(body []byte) (any, error)
	Update(id string, partial map[string]any) (any, bool, error)
	// Replace decodes a full JSON record and stores it in place of id.
	// A body without an id takes id.
	Replace(id string, body []byte) (any, bool, error)
	Delete(id string) (bool, error)
}

type repository[T collection.Record] struct {
	kind    Kind
	coll    *collection.Collection[T]
	filters map[string]func(string) func(T) bool
	setID   func(*T, string)
}

func (r *repository[T]) Kind() Kind { return r.kind }

func (r *repository[T]) Filters() []string {
	names := make([]string, 0, len(r.filters))
	for name := range r.filters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (r *repository[T]) List(filters map[string]string) ([]any, error) {
	preds := make([]func(T) bool, 0, len(filters))
	for name, value := range filters {
		mk, ok := r.filters[name]
		if !ok {
			return nil, fmt.Errorf("%w %q for %s (supported: %s)", ErrUnknownFilter, name, r.kind, strings.Join(r.Filters(), ", "))
		}
		preds = append(preds, mk(value))
	}
	items, err := r.coll.Query(func(item T) bool {
		for _, p := range preds {
			if !p(item) {
				return false
			}
		}
		return true
	})
	if err != nil {
		return nil, err
	}
	out := make([]any, len(items))
	for i, item := range items {
		out[i] = item
	}
	return out, nil
}

func (r *repository[T]) Get(id string) (any, bool, error) {
	item, ok, err := r.coll.GetByID(id)
	if err != nil || !ok {
		return nil, ok, err
	}
	return item, true, nil
}

func (r *repository[T]) Create(body []byte) (any, error) {
	var item T
	if err := json.Unmarshal(body, &item); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidBody, err)
	}
	if item.GetID() == "" {
		r.setID(&item, NewID())
	}
	created, err := r.coll.Create(item)
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (r *repository[T]) Update(id string, partial map[string]any) (any, bool, error) {
	item, ok, err := r.coll.Update(id, partial)
	if err != nil || !ok {
		return nil, ok, err
	}
	return item, true, nil
}

func (r *repository[T]) Replace(id string, body []byte) (any, bool, error) {
	var item T
	if err := json.Unmarshal(body, &item); err != nil {
		return nil, false, fmt.Errorf("%w: %w", ErrInvalidBody, err)
	}
	if item.GetID() == "" {
		r.setID(&item, id)
	}
	replaced, ok, err := r.coll.Replace(id, item)
	if err != nil || !ok {
		return nil, ok, err
	}
	return replaced, true, nil
}

func (r *repository[T]) Delete(id string) (bool, error) {
	return r.coll.Delete(id)
}
