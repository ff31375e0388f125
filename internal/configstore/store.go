package configstore

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/MrSnakeDoc/startpage/internal/domain"
	"github.com/MrSnakeDoc/startpage/internal/logger"
	"github.com/MrSnakeDoc/startpage/internal/store"
)

// DefaultFunc builds the document used when nothing (valid) is persisted.
type DefaultFunc func() *domain.Configuration

// Store owns the single in-memory configuration document.
//
// Mutations only touch memory; the backend is written on Save, Commit and Replace.
// Every document handed out is a deep copy, so callers cannot mutate shared state.
type Store struct {
	mu  sync.RWMutex
	doc *domain.Configuration

	// saveMu serializes backend access. It is taken before mu, never after.
	saveMu sync.Mutex
	saved  []byte // last bytes written to or reloaded from the backend

	backend  store.Backend
	defaults DefaultFunc
	logger   logger.Logger
}

// New creates a store over backend. defaults may be nil, in which case
// domain.DefaultConfiguration is used.
func New(backend store.Backend, defaults DefaultFunc, log logger.Logger) *Store {
	if defaults == nil {
		defaults = domain.DefaultConfiguration
	}
	return &Store{
		doc:      defaults(),
		backend:  backend,
		defaults: defaults,
		logger:   log,
	}
}

// Load reads the persisted document into memory and returns a copy of it.
// A missing, unreadable or corrupt record is treated as "no saved configuration":
// the default document is used and no error is returned.
func (s *Store) Load(ctx context.Context) *domain.Configuration {
	doc := s.readPersisted(ctx)

	s.mu.Lock()
	s.doc = doc
	s.mu.Unlock()

	return doc.Clone()
}

func (s *Store) readPersisted(ctx context.Context) *domain.Configuration {
	data, err := s.backend.Load(ctx)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			s.logger.Info("no saved configuration, using default")
		} else {
			s.logger.Warn("failed to read saved configuration, using default", logger.Error(err))
		}
		return s.defaults()
	}

	doc, err := decode(data)
	if err != nil {
		s.logger.Warn("saved configuration is unusable, using default", logger.Error(err))
		return s.defaults()
	}

	s.logger.Info("loaded saved configuration",
		logger.Int("categories", len(doc.Categories)))
	return doc
}

func decode(data []byte) (*domain.Configuration, error) {
	var doc domain.Configuration
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidConfig, err)
	}
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return &doc, nil
}

// Reload re-reads the backend after an external change. Unlike Load it never falls
// back to the default: a missing or invalid record keeps the current document.
// Content matching the last save is the store's own write echoing back and is ignored,
// so unsaved edits made since then survive. It reports whether the document changed.
func (s *Store) Reload(ctx context.Context) (bool, error) {
	s.saveMu.Lock()
	defer s.saveMu.Unlock()

	data, err := s.backend.Load(ctx)
	if errors.Is(err, store.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if s.saved != nil && bytes.Equal(data, s.saved) {
		return false, nil
	}
	doc, err := decode(data)
	if err != nil {
		return false, err
	}
	s.saved = data

	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := json.Marshal(s.doc)
	if err != nil {
		return false, err
	}
	incoming, err := json.Marshal(doc)
	if err != nil {
		return false, err
	}
	if bytes.Equal(current, incoming) {
		return false, nil
	}

	s.doc = doc
	s.logger.Info("configuration reloaded from backend",
		logger.Int("categories", len(doc.Categories)))
	return true, nil
}

// Snapshot returns a deep copy of the current document.
func (s *Store) Snapshot() *domain.Configuration {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.doc.Clone()
}

// Save writes the current document to the backend, replacing any prior value.
// Saves are serialized, so the last one to finish wrote the latest document.
func (s *Store) Save(ctx context.Context) error {
	s.saveMu.Lock()
	defer s.saveMu.Unlock()

	s.mu.RLock()
	data, err := json.Marshal(s.doc)
	s.mu.RUnlock()
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	return s.persistLocked(ctx, data)
}

// persistLocked writes data and remembers it. saveMu must be held.
func (s *Store) persistLocked(ctx context.Context, data []byte) error {
	if err := s.backend.Save(ctx, data); err != nil {
		return fmt.Errorf("failed to persist config: %w", err)
	}
	s.saved = data
	s.logger.Debug("configuration saved", logger.Int("bytes", len(data)))
	return nil
}

// Replace validates doc, persists it and only then makes it the current document.
// On validation failure domain.ErrInvalidConfig is returned; on either failure nothing changes.
func (s *Store) Replace(ctx context.Context, doc *domain.Configuration) error {
	if err := doc.Validate(); err != nil {
		return err
	}
	next := doc.Clone()
	data, err := json.Marshal(next)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	s.saveMu.Lock()
	defer s.saveMu.Unlock()

	if err := s.persistLocked(ctx, data); err != nil {
		return err
	}

	s.mu.Lock()
	s.doc = next
	s.mu.Unlock()

	s.logger.Info("configuration replaced",
		logger.Int("categories", len(next.Categories)))
	return nil
}

// Dispatch applies a single editor action to the in-memory document.
// A failed action leaves the document unchanged.
func (s *Store) Dispatch(action domain.Action) error {
	return s.DispatchAll([]domain.Action{action})
}

// DispatchAll applies actions in order as one unit: if any fails, none are kept.
func (s *Store) DispatchAll(actions []domain.Action) error {
	return s.Update(func(*domain.Configuration) ([]domain.Action, error) {
		return actions, nil
	})
}

// PlanFunc derives the actions to apply from the current document. It must not modify doc.
type PlanFunc func(doc *domain.Configuration) ([]domain.Action, error)

// Update runs plan and applies the actions it returns under one lock, so the
// actions are always computed against the document they are applied to.
// A plan error or a failed action leaves the document unchanged.
func (s *Store) Update(plan PlanFunc) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	actions, err := plan(s.doc)
	if err != nil {
		return err
	}

	next := s.doc.Clone()
	for _, a := range actions {
		if err := domain.Apply(next, a); err != nil {
			return fmt.Errorf("apply %s: %w", a.Kind, err)
		}
	}
	s.doc = next
	return nil
}

// Commit dispatches actions and then persists the result.
func (s *Store) Commit(ctx context.Context, actions ...domain.Action) error {
	if err := s.DispatchAll(actions); err != nil {
		return err
	}
	return s.Save(ctx)
}

// CommitUpdate is Update followed by Save.
func (s *Store) CommitUpdate(ctx context.Context, plan PlanFunc) error {
	if err := s.Update(plan); err != nil {
		return err
	}
	return s.Save(ctx)
}
