package store

import (
	"io"
	"time"

	"github.com/stevemurr/recruit-store/metrics"
)

// Instrumented records Prometheus metrics for every call to the wrapped Store.
type Instrumented struct {
	next    Store
	backend string
}

// Instrument wraps s, labelling its metrics with backend.
func Instrument(s Store, backend string) *Instrumented {
	return &Instrumented{next: s, backend: backend}
}

func (i *Instrumented) observe(op string, start time.Time, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	metrics.StoreOperations.WithLabelValues(i.backend, op, result).Inc()
	metrics.StoreOperationDuration.WithLabelValues(i.backend, op).Observe(time.Since(start).Seconds())
}

func (i *Instrumented) Get(key string) (string, bool, error) {
	start := time.Now()
	v, ok, err := i.next.Get(key)
	i.observe("get", start, err)
	return v, ok, err
}

func (i *Instrumented) Set(key, value string) error {
	start := time.Now()
	err := i.next.Set(key, value)
	i.observe("set", start, err)
	if err == nil {
		metrics.StorePayloadBytes.WithLabelValues(i.backend, key).Set(float64(len(value)))
	}
	return err
}

func (i *Instrumented) Delete(key string) (bool, error) {
	start := time.Now()
	ok, err := i.next.Delete(key)
	i.observe("delete", start, err)
	if ok && err == nil {
		metrics.StorePayloadBytes.DeleteLabelValues(i.backend, key)
	}
	return ok, err
}

func (i *Instrumented) Keys() ([]string, error) {
	start := time.Now()
	keys, err := i.next.Keys()
	i.observe("keys", start, err)
	return keys, err
}

// Close closes the wrapped store if it holds resources.
func (i *Instrumented) Close() error {
	if c, ok := i.next.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
