package chart

import (
	"errors"
	"sync"
	"sync/atomic"

	"github.com/papapumpkin/natal/internal/interp"
	"github.com/papapumpkin/natal/internal/logging"
)

// ErrNoChart indicates an operation that needs a current snapshot ran
// before any update succeeded.
var ErrNoChart = errors.New("no chart loaded")

// Store holds the current chart generation. Readers call Current and get
// either the previous or the next complete snapshot, never a mix. Writers
// are serialized; a failed update leaves the current generation in place.
type Store struct {
	current atomic.Pointer[Snapshot]
	gen     atomic.Uint64

	mu   sync.Mutex
	opts Options
	dict *interp.Dictionary
	log  logging.Logger
}

// NewStore creates an empty store.
func NewStore(opts Options, dict *interp.Dictionary, logger logging.Logger) *Store {
	return &Store{opts: opts, dict: dict, log: logging.OrNop(logger).Named("chart")}
}

// Current returns the current snapshot, or nil before the first
// successful update.
func (s *Store) Current() *Snapshot {
	return s.current.Load()
}

// Require returns the current snapshot or ErrNoChart.
func (s *Store) Require() (*Snapshot, error) {
	snap := s.current.Load()
	if snap == nil {
		return nil, ErrNoChart
	}
	return snap, nil
}

// Options returns the options used for the next build.
func (s *Store) Options() Options {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.opts
}

// Update rebuilds the chart from raw text. On error the previous snapshot
// stays current and the error is returned unchanged.
func (s *Store) Update(raw string) (*Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rebuild(raw, s.dict, s.opts)
}

// SetOptions rebuilds the current chart with new options. With no chart
// loaded the options are only recorded.
func (s *Store) SetOptions(opts Options) (*Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cur := s.current.Load()
	if cur == nil {
		s.opts = opts
		return nil, nil
	}
	snap, err := s.rebuild(cur.Source, s.dict, opts)
	if err != nil {
		return nil, err
	}
	s.opts = opts
	return snap, nil
}

// SetDictionary swaps the interpretation dictionary and republishes the
// current chart with it.
func (s *Store) SetDictionary(dict *interp.Dictionary) (*Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dict = dict
	cur := s.current.Load()
	if cur == nil {
		return nil, nil
	}
	return s.rebuild(cur.Source, dict, s.opts)
}

func (s *Store) rebuild(raw string, dict *interp.Dictionary, opts Options) (*Snapshot, error) {
	snap, err := Build(raw, dict, opts)
	if err != nil {
		s.log.Warn("chart update rejected", logging.Err(err))
		return nil, err
	}
	snap.Generation = s.gen.Add(1)
	s.current.Store(snap)
	s.log.Debug("chart updated",
		logging.Uint64("generation", snap.Generation),
		logging.Int("bodies", len(snap.Positions)),
		logging.Int("aspects", len(snap.Aspects)),
	)
	return snap, nil
}
