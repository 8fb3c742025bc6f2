// Package collection implements a generic record collection persisted as a
// single payload under one backing store key.
package collection

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/stevemurr/recruit-store/store"
)

const idField = "id"

// Record is anything identified by a string id.
type Record interface {
	GetID() string
}

// Collection is an ordered sequence of records of one type kept under a
// fixed store key. Every mutation rewrites the whole sequence.
//
// Mutations are serialized within the process. Writers in other processes
// sharing the same backing store are not coordinated: the last write wins.
type Collection[T Record] struct {
	mu       sync.Mutex
	store    store.Store
	name     string
	validate func(T) error
}

// Option configures a Collection.
type Option[T Record] func(*Collection[T])

// WithValidator runs fn on every record before it is persisted.
func WithValidator[T Record](fn func(T) error) Option[T] {
	return func(c *Collection[T]) { c.validate = fn }
}

// New binds a collection named name to the store s.
func New[T Record](s store.Store, name string, opts ...Option[T]) *Collection[T] {
	c := &Collection[T]{store: s, name: name}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Name returns the collection name, which is also its store key.
func (c *Collection[T]) Name() string {
	return c.name
}

func (c *Collection[T]) load() ([]T, bool, error) {
	raw, ok, err := c.store.Get(c.name)
	if err != nil {
		return nil, false, fmt.Errorf("read collection %q: %w", c.name, err)
	}
	items, err := Decode[T](raw, ok)
	if err != nil {
		return nil, false, fmt.Errorf("collection %q: %w", c.name, err)
	}
	return items, ok, nil
}

func (c *Collection[T]) save(items []T) error {
	raw, err := Encode(items)
	if err != nil {
		return fmt.Errorf("collection %q: %w", c.name, err)
	}
	if err := c.store.Set(c.name, raw); err != nil {
		return fmt.Errorf("write collection %q: %w", c.name, err)
	}
	return nil
}

func (c *Collection[T]) check(item T) error {
	if c.validate == nil {
		return nil
	}
	return c.validate(item)
}

// GetAll returns every record in insertion order. A collection that was
// never written is empty.
func (c *Collection[T]) GetAll() ([]T, error) {
	return c.GetAllOr([]T{})
}

// GetAllOr returns every record, or def if the collection was never written.
func (c *Collection[T]) GetAllOr(def []T) ([]T, error) {
	items, ok, err := c.load()
	if err != nil {
		return nil, err
	}
	if !ok {
		return def, nil
	}
	return items, nil
}

// GetByID returns the first record with the given id.
func (c *Collection[T]) GetByID(id string) (T, bool, error) {
	var zero T
	items, _, err := c.load()
	if err != nil {
		return zero, false, err
	}
	for _, item := range items {
		if item.GetID() == id {
			return item, true, nil
		}
	}
	return zero, false, nil
}

// Create appends item and persists the collection. The item is returned unchanged.
func (c *Collection[T]) Create(item T) (T, error) {
	var zero T
	id := item.GetID()
	if id == "" {
		return zero, ErrMissingID
	}
	if err := c.check(item); err != nil {
		return zero, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	items, _, err := c.load()
	if err != nil {
		return zero, err
	}
	for _, existing := range items {
		if existing.GetID() == id {
			return zero, fmt.Errorf("collection %q, id %q: %w", c.name, id, ErrDuplicateID)
		}
	}
	if err := c.save(append(items, item)); err != nil {
		return zero, err
	}
	return item, nil
}

// Update shallow-merges partial over the record with the given id, keyed by
// JSON field name. Fields absent from partial are kept; the id never changes.
// Keys that are not exact field names of T fail with ErrInvalidPatch.
// ok is false, and nothing is written, if no record has that id.
func (c *Collection[T]) Update(id string, partial map[string]any) (T, bool, error) {
	var zero T
	c.mu.Lock()
	defer c.mu.Unlock()
	items, _, err := c.load()
	if err != nil {
		return zero, false, err
	}
	idx := -1
	for i, item := range items {
		if item.GetID() == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return zero, false, nil
	}

	merged, err := merge(items[idx], partial)
	if err != nil {
		return zero, false, fmt.Errorf("collection %q, id %q: %w", c.name, id, err)
	}
	if err := c.check(merged); err != nil {
		return zero, false, err
	}
	items[idx] = merged
	if err := c.save(items); err != nil {
		return zero, false, err
	}
	return merged, true, nil
}

// Replace swaps the whole record stored under id for item, keeping its
// position. item must carry the same id. ok is false, and nothing is
// written, if no record has that id.
func (c *Collection[T]) Replace(id string, item T) (T, bool, error) {
	var zero T
	if item.GetID() != id {
		return zero, false, fmt.Errorf("%w: record id %q does not match %q", ErrInvalidPatch, item.GetID(), id)
	}
	if err := c.check(item); err != nil {
		return zero, false, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	items, _, err := c.load()
	if err != nil {
		return zero, false, err
	}
	for i, existing := range items {
		if existing.GetID() != id {
			continue
		}
		items[i] = item
		if err := c.save(items); err != nil {
			return zero, false, err
		}
		return item, true, nil
	}
	return zero, false, nil
}

// Delete removes the record with the given id. It writes only if a record was removed.
func (c *Collection[T]) Delete(id string) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	items, _, err := c.load()
	if err != nil {
		return false, err
	}
	kept := make([]T, 0, len(items))
	for _, item := range items {
		if item.GetID() != id {
			kept = append(kept, item)
		}
	}
	if len(kept) == len(items) {
		return false, nil
	}
	if err := c.save(kept); err != nil {
		return false, err
	}
	return true, nil
}

// Query returns the records matching pred, in order. Never nil.
func (c *Collection[T]) Query(pred func(T) bool) ([]T, error) {
	items, _, err := c.load()
	if err != nil {
		return nil, err
	}
	out := make([]T, 0, len(items))
	for _, item := range items {
		if pred(item) {
			out = append(out, item)
		}
	}
	return out, nil
}

// merge overlays partial on the JSON object form of existing and decodes
// the result back into T.
func merge[T Record](existing T, partial map[string]any) (T, error) {
	var zero T
	if err := checkPatch[T](partial); err != nil {
		return zero, err
	}
	b, err := json.Marshal(existing)
	if err != nil {
		return zero, err
	}
	fields := map[string]any{}
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	if err := dec.Decode(&fields); err != nil {
		return zero, fmt.Errorf("%w: record is not an object: %w", ErrInvalidPatch, err)
	}
	for k, v := range partial {
		if k == idField {
			continue
		}
		fields[k] = v
	}
	if b, err = json.Marshal(fields); err != nil {
		return zero, fmt.Errorf("%w: %w", ErrInvalidPatch, err)
	}
	var out T
	if err := json.Unmarshal(b, &out); err != nil {
		return zero, fmt.Errorf("%w: %w", ErrInvalidPatch, err)
	}
	return out, nil
}
