package storage

import (
	"context"
	"errors"
	"io"
	"time"

	"geodata-service/internal/metrics"
)

// InstrumentedStore wraps a FileStore and records latency and byte counts for
// every call.
type InstrumentedStore struct {
	FileStore
	metrics *metrics.Metrics
}

func NewInstrumentedStore(inner FileStore, m *metrics.Metrics) *InstrumentedStore {
	return &InstrumentedStore{FileStore: inner, metrics: m}
}

func (s *InstrumentedStore) observe(op string, start time.Time, err error) {
	result := "ok"
	switch {
	case errors.Is(err, ErrNotFound):
		result = "not_found"
	case err != nil:
		result = "error"
	}
	s.metrics.RecordStorageOp(op, result, float64(time.Since(start).Microseconds())/1000.0)
}

func (s *InstrumentedStore) Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error {
	start := time.Now()
	err := s.FileStore.Put(ctx, key, r, size, contentType)
	s.observe("put", start, err)
	if err == nil {
		s.metrics.RecordStorageBytes("in", size)
	}
	return err
}

// Get counts bytes as the caller reads them; the total is recorded on Close.
func (s *InstrumentedStore) Get(ctx context.Context, key string) (io.ReadCloser, int64, error) {
	start := time.Now()
	rc, size, err := s.FileStore.Get(ctx, key)
	s.observe("get", start, err)
	if err != nil {
		return nil, 0, err
	}
	return &countingReadCloser{rc: rc, metrics: s.metrics}, size, nil
}

func (s *InstrumentedStore) Move(ctx context.Context, src, dst string) error {
	start := time.Now()
	err := s.FileStore.Move(ctx, src, dst)
	s.observe("move", start, err)
	return err
}

func (s *InstrumentedStore) Remove(ctx context.Context, key string) error {
	start := time.Now()
	err := s.FileStore.Remove(ctx, key)
	s.observe("remove", start, err)
	return err
}

func (s *InstrumentedStore) Exists(ctx context.Context, key string) (bool, error) {
	start := time.Now()
	ok, err := s.FileStore.Exists(ctx, key)
	s.observe("exists", start, err)
	return ok, err
}

type countingReadCloser struct {
	rc      io.ReadCloser
	bytes   int64
	metrics *metrics.Metrics
	closed  bool
}

func (c *countingReadCloser) Read(p []byte) (int, error) {
	n, err := c.rc.Read(p)
	c.bytes += int64(n)
	return n, err
}

func (c *countingReadCloser) Close() error {
	if !c.closed {
		c.closed = true
		c.metrics.RecordStorageBytes("out", c.bytes)
	}
	return c.rc.Close()
}
