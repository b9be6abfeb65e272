package observability

import (
	"context"
	"errors"
	"time"

	"github.com/heartmarshall/mental-clarity/internal/domain"
)

// Analyzer is the analysis gateway contract.
type Analyzer interface {
	Analyze(ctx context.Context, content string) (string, error)
}

// EntryStore is the entry store gateway contract.
type EntryStore interface {
	ListEntries(ctx context.Context) ([]domain.Entry, error)
	InsertEntry(ctx context.Context, content, analysis string) (*domain.Entry, error)
}

// ErrPingUnsupported is returned by InstrumentedAnalyzer.Ping when the
// wrapped gateway has no connectivity probe.
var ErrPingUnsupported = errors.New("analysis gateway does not support ping")

type pinger interface {
	Ping(ctx context.Context) error
}

type analysisPinger interface {
	Ping(ctx context.Context) (string, error)
}

// InstrumentedAnalyzer records metrics around an analysis gateway.
type InstrumentedAnalyzer struct {
	next    Analyzer
	gateway string
	c       *Collector
}

// InstrumentAnalyzer wraps next; gateway names it in the metric labels.
func InstrumentAnalyzer(next Analyzer, gateway string, c *Collector) *InstrumentedAnalyzer {
	return &InstrumentedAnalyzer{next: next, gateway: gateway, c: c}
}

func (a *InstrumentedAnalyzer) Analyze(ctx context.Context, content string) (string, error) {
	start := time.Now()
	out, err := a.next.Analyze(ctx, content)
	a.c.RecordRemoteCall(a.gateway, "analyze", time.Since(start), err)
	return out, err
}

// Ping forwards the connectivity probe to the wrapped gateway.
func (a *InstrumentedAnalyzer) Ping(ctx context.Context) (string, error) {
	p, ok := a.next.(analysisPinger)
	if !ok {
		return "", ErrPingUnsupported
	}
	start := time.Now()
	out, err := p.Ping(ctx)
	a.c.RecordRemoteCall(a.gateway, "ping", time.Since(start), err)
	return out, err
}

// InstrumentedStore records metrics around an entry store gateway.
type InstrumentedStore struct {
	next    EntryStore
	gateway string
	c       *Collector
}

// InstrumentStore wraps next; gateway names it in the metric labels.
func InstrumentStore(next EntryStore, gateway string, c *Collector) *InstrumentedStore {
	return &InstrumentedStore{next: next, gateway: gateway, c: c}
}

func (s *InstrumentedStore) ListEntries(ctx context.Context) ([]domain.Entry, error) {
	start := time.Now()
	out, err := s.next.ListEntries(ctx)
	s.c.RecordRemoteCall(s.gateway, "list", time.Since(start), err)
	return out, err
}

func (s *InstrumentedStore) InsertEntry(ctx context.Context, content, analysis string) (*domain.Entry, error) {
	start := time.Now()
	out, err := s.next.InsertEntry(ctx, content, analysis)
	s.c.RecordRemoteCall(s.gateway, "insert", time.Since(start), err)
	return out, err
}

// Ping forwards to the wrapped store when it supports health checks.
// Pings are not counted.
func (s *InstrumentedStore) Ping(ctx context.Context) error {
	if p, ok := s.next.(pinger); ok {
		return p.Ping(ctx)
	}
	return nil
}
