// Package session hosts the single filter model of one user session.
//
// A Session routes every mutation through the filter store and ancestry
// tree, remembers whether the change must reach the search backend, and
// recompiles on an explicit [Session.Flush]. It performs no debouncing:
// callers that emit on every keystroke should rate-limit Flush themselves.
package session

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/Tunnelbliick/umamoe-frontend-sub000/internal/ancestry"
	"github.com/Tunnelbliick/umamoe-frontend-sub000/internal/chip"
	"github.com/Tunnelbliick/umamoe-frontend-sub000/internal/filter"
	"github.com/Tunnelbliick/umamoe-frontend-sub000/internal/logging"
	"github.com/Tunnelbliick/umamoe-frontend-sub000/internal/spark"
	"github.com/Tunnelbliick/umamoe-frontend-sub000/internal/token"
)

// Emitter receives every compiled query that must reach the backend.
type Emitter interface {
	Emit(q spark.Query) error
}

// EmitterFunc adapts a function to [Emitter].
type EmitterFunc func(q spark.Query) error

// Emit calls f(q).
func (f EmitterFunc) Emit(q spark.Query) error {
	return f(q)
}

// Session owns one filter model. It is single-owner and not safe for
// concurrent use.
type Session struct {
	id      uuid.UUID
	model   *filter.Model
	catalog chip.Labels
	emitter Emitter
	log     *logging.Logger
	pending bool
}

// Option configures a Session.
type Option func(*Session)

// WithEmitter sets the query sink. Without one, Flush only recompiles.
func WithEmitter(e Emitter) Option {
	return func(s *Session) { s.emitter = e }
}

// WithLogger sets the logger.
func WithLogger(l *logging.Logger) Option {
	return func(s *Session) { s.log = l }
}

// WithID sets the session identity, e.g. when resuming a stored session.
func WithID(id uuid.UUID) Option {
	return func(s *Session) { s.id = id }
}

// WithModel starts the session from an existing model instead of defaults.
func WithModel(m *filter.Model) Option {
	return func(s *Session) { s.model = m }
}

// New starts a session with an all-default model.
func New(catalog chip.Labels, opts ...Option) *Session {
	s := &Session{
		id:      uuid.New(),
		model:   filter.New(),
		catalog: catalog,
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.log == nil {
		s.log = logging.Nop()
	}

	s.log = s.log.With("session_id", s.id.String())
	s.model.Tree().Refresh(catalog)

	return s
}

// ID returns the session identity.
func (s *Session) ID() uuid.UUID {
	return s.id
}

// Model returns a copy of the current model.
func (s *Session) Model() *filter.Model {
	return s.model.Clone()
}

// Catalog returns the master data the session resolves labels with.
func (s *Session) Catalog() chip.Labels {
	return s.catalog
}

// Pending reports whether a change is waiting for [Session.Flush].
func (s *Session) Pending() bool {
	return s.pending
}

// Add appends a filter to c. A wildcard row is a placeholder and does not
// make the session pending.
func (s *Session) Add(c filter.Category, factorID int) filter.FactorFilter {
	entry, affects := s.model.Add(c, factorID)
	if affects {
		s.pending = true
	}

	return entry
}

// Remove deletes the entry at index in c. Removal always makes the session
// pending, even for placeholder rows.
func (s *Session) Remove(c filter.Category, index int) filter.FactorFilter {
	removed := s.model.Remove(c, index)
	s.pending = true

	return removed
}

// SetFactor changes the factor of entry id.
func (s *Session) SetFactor(id, factorID int) error {
	if err := s.model.SetFactor(id, factorID); err != nil {
		return err
	}

	s.pending = true

	return nil
}

// SetRange changes the level range of entry id.
func (s *Session) SetRange(id, lo, hi int) error {
	if err := s.model.SetRange(id, lo, hi); err != nil {
		return err
	}

	s.pending = true

	return nil
}

// Assign puts identity into slot, clearing any node of the same family line.
func (s *Session) Assign(slot ancestry.Slot, identity int) ancestry.Node {
	s.model.Tree().Assign(slot, identity, s.catalog)
	s.pending = true

	return s.model.Tree().Node(slot)
}

// Clear empties slot and its subtree.
func (s *Session) Clear(slot ancestry.Slot) {
	s.model.Tree().Clear(slot)
	s.pending = true
}

// UpdateScalars applies fn to the model's scalar setters.
func (s *Session) UpdateScalars(fn func(m *filter.Model)) {
	fn(s.model)
	s.pending = true
}

// ResetScalar restores sc to its default.
func (s *Session) ResetScalar(sc filter.Scalar) {
	s.model.ResetScalar(sc)
	s.pending = true
}

// Reset replaces the model with a fresh default one.
func (s *Session) Reset() {
	s.model = filter.New()
	s.pending = true
}

// Query compiles the current model.
func (s *Session) Query() spark.Query {
	return spark.Compile(s.model, s.catalog)
}

// Chips projects the current model.
func (s *Session) Chips() []chip.Chip {
	return chip.Project(s.model, s.catalog)
}

// RemoveChip applies the removal of the chip with the given ID.
func (s *Session) RemoveChip(id string) (chip.Chip, error) {
	c, ok := chip.Find(s.Chips(), id)
	if !ok {
		return chip.Chip{}, fmt.Errorf("%w: %s", ErrChipNotFound, id)
	}

	if err := chip.ApplyRemoval(s.model, c); err != nil {
		return chip.Chip{}, err
	}

	s.pending = true
	s.log.Debug("chip removed", "chip", c.ID, "kind", c.Kind.String())

	return c, nil
}

// Flush recompiles and hands the query to the emitter when a change is
// pending. It reports whether an emission happened.
func (s *Session) Flush() (bool, error) {
	if !s.pending {
		return false, nil
	}

	q := s.Query()

	if s.emitter != nil {
		if err := s.emitter.Emit(q); err != nil {
			return false, fmt.Errorf("emit query: %w", err)
		}
	}

	s.pending = false
	s.log.Debug("query emitted",
		"blue_groups", len(q.BlueSparks),
		"pink_groups", len(q.PinkSparks),
		"green_groups", len(q.GreenSparks),
		"white_groups", len(q.WhiteSparks),
		"empty", q.IsEmpty(),
	)

	return true, nil
}

// Encode returns the shareable token for the current model.
func (s *Session) Encode() string {
	return token.Encode(s.model)
}

// Restore replaces the model with the one encoded in tok. On failure the
// current model is left untouched and the returned error wraps
// [ErrRestoreFailed].
func (s *Session) Restore(tok string) error {
	m, err := token.Decode(tok, s.catalog)
	if err != nil {
		s.log.Warn("restore failed", "error", err, "token_len", len(tok))

		return fmt.Errorf("%w: %w", ErrRestoreFailed, err)
	}

	s.model = m
	s.pending = true
	s.log.Info("session restored from token")

	return nil
}
