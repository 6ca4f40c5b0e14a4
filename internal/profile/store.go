package profile

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

// Generator produces random profile data.
type Generator interface {
	// Generate returns a fully populated record. The ID field is ignored;
	// the Store assigns its own.
	Generate(ctx context.Context) (Record, error)

	// Avatar returns a fresh avatar reference.
	Avatar(ctx context.Context) (string, error)
}

// Snapshot is a point-in-time copy of the Store state.
type Snapshot struct {
	Record      Record
	Mode        Mode
	Initialized bool
}

// Store owns the current profile record and mode. All mutations go through
// its methods; readers get deep copies via Snapshot.
type Store struct {
	mu     sync.Mutex
	gen    Generator
	logger *log.Logger
	newID  func() string

	record      Record
	mode        Mode
	initialized bool
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithLogger sets the logger used for state transitions.
func WithLogger(l *log.Logger) StoreOption {
	return func(s *Store) { s.logger = l }
}

// WithIDFunc overrides how record IDs are produced.
func WithIDFunc(fn func() string) StoreOption {
	return func(s *Store) { s.newID = fn }
}

// NewStore creates an uninitialized Store backed by gen.
func NewStore(gen Generator, opts ...StoreOption) *Store {
	s := &Store{
		gen:    gen,
		logger: log.New(io.Discard),
		newID:  uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Generator returns the generator backing the store.
func (s *Store) Generator() Generator {
	return s.gen
}

// Initialize installs a freshly generated record and resets the mode to View.
func (s *Store) Initialize(ctx context.Context) (Record, error) {
	rec, err := s.gen.Generate(ctx)
	if err != nil {
		return Record{}, fmt.Errorf("initialize profile: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.installLocked(rec); err != nil {
		return Record{}, fmt.Errorf("initialize profile: %w", err)
	}
	s.mode = ModeView
	s.initialized = true
	s.logger.Info("profile initialized", "id", s.record.ID)
	return s.record.Clone(), nil
}

// Install replaces the whole record with rec. Interests are de-duplicated;
// a record that still breaks an invariant is rejected and the current record
// is kept. The first install starts in View mode; later ones leave the mode
// alone.
func (s *Store) Install(rec Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.installLocked(rec); err != nil {
		return err
	}
	if !s.initialized {
		s.mode = ModeView
		s.initialized = true
	}
	return nil
}

func (s *Store) installLocked(rec Record) error {
	next := rec.Clone()
	next.Interests = NewInterests(next.Interests...)
	if err := next.Check(); err != nil {
		s.logger.Warn("rejected generated record", "err", err)
		return err
	}
	next.ID = s.newID()
	s.record = next
	return nil
}

// SetField replaces exactly one scalar field. Any value is accepted.
func (s *Store) SetField(f Field, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized {
		s.logger.Debug("set field ignored before initialize", "field", f)
		return
	}
	s.record = s.record.With(f, value)
}

// ToggleInterest removes label if present, otherwise appends it.
func (s *Store) ToggleInterest(label string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized {
		s.logger.Debug("toggle interest ignored before initialize", "label", label)
		return
	}
	next := s.record.Clone()
	next.Interests = next.Interests.Toggle(label)
	s.record = next
}

// Randomize replaces the whole record with a newly generated one. On
// generator failure the current record is kept and the error returned.
func (s *Store) Randomize(ctx context.Context) error {
	rec, err := s.gen.Generate(ctx)
	if err != nil {
		s.logger.Warn("randomize failed, keeping current profile", "err", err)
		return fmt.Errorf("randomize profile: %w", err)
	}
	if err := s.Install(rec); err != nil {
		return fmt.Errorf("randomize profile: %w", err)
	}
	s.logger.Info("profile randomized", "id", s.Snapshot().Record.ID)
	return nil
}

// RandomizeAvatar swaps only the avatar for a newly generated one.
func (s *Store) RandomizeAvatar(ctx context.Context) error {
	url, err := s.gen.Avatar(ctx)
	if err != nil {
		return fmt.Errorf("randomize avatar: %w", err)
	}
	s.SetField(FieldAvatarURL, url)
	return nil
}

// ToggleMode flips between View and Edit. The record is left as is.
func (s *Store) ToggleMode() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.mode = s.mode.Toggle()
	s.logger.Debug("mode toggled", "mode", s.mode)
}

// isInitialized never reverts to false once set.
func (s *Store) isInitialized() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.initialized
}

// Mode returns the current mode.
func (s *Store) Mode() Mode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mode
}

// Snapshot returns a deep copy of the current state.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{
		Record:      s.record.Clone(),
		Mode:        s.mode,
		Initialized: s.initialized,
	}
}
